package resource

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrNetwork marks a request that never produced a usable HTTP response.
	ErrNetwork = errors.New("network error")
	// ErrMalformedEnvelope marks a response body that matches none of the known shapes.
	ErrMalformedEnvelope = errors.New("malformed response")
)

type envelopeKind int

const (
	kindEmpty       envelopeKind = iota + 1 // no body (204, empty 200)
	kindBareArray                           // [...]
	kindBareObject                          // {...} without envelope keys
	kindData                                // {data: ...}
	kindPaged                               // {success, data, total, page, totalPages}
	kindAck                                 // {success: true, message} without data
	kindFailure                             // {success: false, error, fieldErrors}
)

func (k envelopeKind) String() string {
	switch k {
	case kindEmpty:
		return "empty"
	case kindBareArray:
		return "bare-array"
	case kindBareObject:
		return "bare-object"
	case kindData:
		return "data"
	case kindPaged:
		return "paged"
	case kindAck:
		return "ack"
	case kindFailure:
		return "failure"
	}

	return "unknown"
}

type envelope struct {
	kind        envelopeKind
	data        json.RawMessage
	total       int
	page        int
	totalPages  int
	message     string
	err         string
	fieldErrors map[string]string
}

type wireEnvelope struct {
	Success     *bool             `json:"success"`
	Data        json.RawMessage   `json:"data"`
	Total       *int              `json:"total"`
	Page        *int              `json:"page"`
	TotalPages  *int              `json:"totalPages"`
	Message     string            `json:"message"`
	Error       string            `json:"error"`
	FieldErrors map[string]string `json:"fieldErrors"`
}

var envelopeKeys = []string{"success", "data", "total", "totalPages", "error", "fieldErrors", "message"}

// parseEnvelope classifies a response body. Every response the client receives
// goes through here; consumers only ever see the normalized result types.
func parseEnvelope(status int, body []byte) (envelope, error) {
	trimmed := bytes.TrimSpace(body)

	if status >= http.StatusBadRequest {
		return failureEnvelope(status, trimmed), nil
	}

	if len(trimmed) == 0 {
		return envelope{kind: kindEmpty}, nil
	}

	switch trimmed[0] {
	case '[':
		return envelope{kind: kindBareArray, data: trimmed}, nil
	case '{':
	default:
		return envelope{}, fmt.Errorf("%w: unexpected body starting with %q", ErrMalformedEnvelope, trimmed[0])
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &keys); err != nil {
		return envelope{}, fmt.Errorf("%w: %v", ErrMalformedEnvelope, err)
	}

	if !hasAnyKey(keys, envelopeKeys) {
		return envelope{kind: kindBareObject, data: trimmed}, nil
	}

	var w wireEnvelope
	if err := json.Unmarshal(trimmed, &w); err != nil {
		return envelope{}, fmt.Errorf("%w: %v", ErrMalformedEnvelope, err)
	}

	env := envelope{
		data:        w.Data,
		message:     w.Message,
		err:         w.Error,
		fieldErrors: w.FieldErrors,
	}

	hasData := len(w.Data) > 0 && !bytes.Equal(w.Data, []byte("null"))

	switch {
	case w.Success != nil && !*w.Success:
		env.kind = kindFailure
	case !hasData && (w.Error != "" || len(w.FieldErrors) > 0):
		env.kind = kindFailure
	case w.Total != nil || w.TotalPages != nil:
		env.kind = kindPaged
		env.total = deref(w.Total)
		env.page = deref(w.Page)
		env.totalPages = deref(w.TotalPages)
	case hasData:
		env.kind = kindData
	default:
		env.kind = kindAck
	}

	if env.kind == kindFailure && env.err == "" {
		env.err = firstNonEmpty(w.Message, "request failed")
	}

	return env, nil
}

func failureEnvelope(status int, body []byte) envelope {
	env := envelope{kind: kindFailure}

	var w wireEnvelope
	if len(body) > 0 && body[0] == '{' && json.Unmarshal(body, &w) == nil {
		env.err = firstNonEmpty(w.Error, w.Message)
		env.fieldErrors = w.FieldErrors
	}

	if env.err == "" {
		env.err = fmt.Sprintf("request failed with status %d", status)
		if text := strings.TrimSpace(string(body)); text != "" && len(text) < 200 && body[0] != '{' {
			env.err += ": " + text
		}
	}

	return env
}

func decodeList[T any](status int, body []byte) (ListResult[T], error) {
	env, err := parseEnvelope(status, body)
	if err != nil {
		return ListResult[T]{}, err
	}

	var res ListResult[T]

	switch env.kind {
	case kindFailure:
		return ListResult[T]{Error: env.err, FieldErrors: env.fieldErrors}, nil
	case kindAck:
		res.Data = []T{}
	case kindBareArray, kindData:
		if err := decodeArray(env.data, &res.Data); err != nil {
			return ListResult[T]{}, err
		}
	case kindPaged:
		if err := decodeArray(env.data, &res.Data); err != nil {
			return ListResult[T]{}, err
		}

		res.HasTotals = true
		res.Total = env.total
		res.Page = env.page
		res.TotalPages = env.totalPages
	case kindEmpty, kindBareObject:
		return ListResult[T]{}, fmt.Errorf("%w: expected a collection, got %s body", ErrMalformedEnvelope, env.kind)
	default:
		return ListResult[T]{}, fmt.Errorf("%w: unhandled envelope %s", ErrMalformedEnvelope, env.kind)
	}

	res.Success = true

	return res, nil
}

func decodeDetail[T any](status int, body []byte) (DetailResult[T], error) {
	env, err := parseEnvelope(status, body)
	if err != nil {
		return DetailResult[T]{}, err
	}

	switch env.kind {
	case kindFailure:
		return DetailResult[T]{Error: env.err}, nil
	case kindBareObject, kindData, kindPaged:
		rec, err := decodeObject[T](env.data)
		if err != nil {
			return DetailResult[T]{}, err
		}

		return DetailResult[T]{Success: true, Data: rec}, nil
	case kindEmpty, kindAck, kindBareArray:
		return DetailResult[T]{}, fmt.Errorf("%w: expected a record, got %s body", ErrMalformedEnvelope, env.kind)
	default:
		return DetailResult[T]{}, fmt.Errorf("%w: unhandled envelope %s", ErrMalformedEnvelope, env.kind)
	}
}

func decodeMutation[T any](status int, body []byte) (MutationResult[T], error) {
	env, err := parseEnvelope(status, body)
	if err != nil {
		return MutationResult[T]{}, err
	}

	switch env.kind {
	case kindFailure:
		return MutationResult[T]{Error: env.err, FieldErrors: env.fieldErrors}, nil
	case kindEmpty, kindAck:
		return MutationResult[T]{Success: true, Message: env.message}, nil
	case kindBareObject, kindData, kindPaged:
		res := MutationResult[T]{Success: true, Message: env.message}

		if len(env.data) > 0 && env.data[0] == '{' {
			rec, err := decodeObject[T](env.data)
			if err != nil {
				return MutationResult[T]{}, err
			}

			res.Data = rec
		}

		return res, nil
	case kindBareArray:
		return MutationResult[T]{}, fmt.Errorf("%w: expected a record, got %s body", ErrMalformedEnvelope, env.kind)
	default:
		return MutationResult[T]{}, fmt.Errorf("%w: unhandled envelope %s", ErrMalformedEnvelope, env.kind)
	}
}

func decodeArray[T any](raw json.RawMessage, out *[]T) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		return fmt.Errorf("%w: data is not an array", ErrMalformedEnvelope)
	}

	items := make([]T, 0)
	if err := json.Unmarshal(raw, &items); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedEnvelope, err)
	}

	*out = items

	return nil
}

func decodeObject[T any](raw json.RawMessage) (*T, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return nil, fmt.Errorf("%w: data is not an object", ErrMalformedEnvelope)
	}

	var rec T
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEnvelope, err)
	}

	return &rec, nil
}

func hasAnyKey(m map[string]json.RawMessage, keys []string) bool {
	for _, k := range keys {
		if _, ok := m[k]; ok {
			return true
		}
	}

	return false
}

func deref(p *int) int {
	if p == nil {
		return 0
	}

	return *p
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}
