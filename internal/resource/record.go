package resource

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Record is a row the data layer can page, search and delete by identifier.
type Record interface {
	RecordID() string
}

// ID is a loosely typed identifier. Backends send it either as a string or as a number.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}

	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("decoding id: %w", err)
		}

		*id = ID(s)

		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("decoding id: %w", err)
	}

	*id = ID(n.String())

	return nil
}

func (id ID) String() string { return string(id) }

// Key carries the identifier of a record. It is embedded by domain types so that
// either `id` or `_id` in the payload resolves to the record identity.
type Key struct {
	ID    ID `json:"id,omitempty"`
	AltID ID `json:"_id,omitempty"`
}

// RecordID returns `id`, falling back to `_id`.
func (k Key) RecordID() string {
	if k.ID != "" {
		return string(k.ID)
	}

	return string(k.AltID)
}

// Date is a calendar timestamp that accepts RFC 3339 or date-only payloads.
type Date struct {
	time.Time
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	time.DateOnly,
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		d.Time = time.Time{}
		return nil
	}

	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("decoding date: %w", err)
	}

	if s == "" {
		d.Time = time.Time{}
		return nil
	}

	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			d.Time = t
			return nil
		}
	}

	return fmt.Errorf("decoding date: unsupported format %q", s)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}

	return json.Marshal(d.Format(time.RFC3339))
}

// ISO formats the date as YYYY-MM-DD.
func (d Date) ISO() string {
	if d.IsZero() {
		return ""
	}

	return d.Format(time.DateOnly)
}

// Localized formats the date the way the dashboard displays it (M/D/YYYY).
func (d Date) Localized() string {
	if d.IsZero() {
		return ""
	}

	return d.Format("1/2/2006")
}
