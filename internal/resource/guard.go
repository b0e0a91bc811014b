package resource

import (
	"encoding/json"
	"fmt"
	"strings"
)

const requiredMessage = "is required"

// Guard rejects payloads that are missing required fields before they reach the network.
type Guard struct {
	required []string
}

func NewGuard(required ...string) Guard {
	return Guard{required: required}
}

// Check returns the field errors of payload, keyed by JSON field name. With partial
// set (updates) only the required fields present in the payload are checked.
func (g Guard) Check(payload any, partial bool) (map[string]string, error) {
	if len(g.required) == 0 {
		return nil, nil
	}

	fields, err := payloadFields(payload)
	if err != nil {
		return nil, err
	}

	var errs map[string]string

	for _, name := range g.required {
		v, ok := fields[name]
		if !ok && partial {
			continue
		}

		if ok && !blank(v) {
			continue
		}

		if errs == nil {
			errs = make(map[string]string)
		}

		errs[name] = requiredMessage
	}

	return errs, nil
}

func payloadFields(payload any) (map[string]any, error) {
	if m, ok := payload.(map[string]any); ok {
		return m, nil
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("payload is not an object: %w", err)
	}

	return fields, nil
}

func blank(v any) bool {
	switch v := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	}

	return false
}
