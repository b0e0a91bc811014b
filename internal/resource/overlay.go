package resource

import (
	"strings"

	"golang.org/x/text/cases"
)

// FieldsFunc returns the searchable text of a record, one entry per field.
type FieldsFunc[T any] func(T) []string

// Overlay keeps the full collection fetched for search or local slicing, keyed by
// status filter, and matches records against a term.
type Overlay[T any] struct {
	fields FieldsFunc[T]
	status string
	items  []T
	valid  bool
}

func NewOverlay[T any](fields FieldsFunc[T]) *Overlay[T] {
	return &Overlay[T]{fields: fields}
}

// Cached returns the full collection for status if it is held.
func (o *Overlay[T]) Cached(status string) ([]T, bool) {
	if !o.valid || o.status != status {
		return nil, false
	}

	return o.items, true
}

func (o *Overlay[T]) Store(status string, items []T) {
	o.status = status
	o.items = items
	o.valid = true
}

func (o *Overlay[T]) Invalidate() {
	o.status = ""
	o.items = nil
	o.valid = false
}

// Filter returns the records with any field containing term, ignoring case.
// Order is preserved. An empty term returns every record.
func (o *Overlay[T]) Filter(items []T, term string) []T {
	out := make([]T, 0, len(items))

	term = strings.TrimSpace(term)
	if term == "" || o.fields == nil {
		return append(out, items...)
	}

	fold := cases.Fold()
	needle := fold.String(term)

	for _, item := range items {
		for _, field := range o.fields(item) {
			if field != "" && strings.Contains(fold.String(field), needle) {
				out = append(out, item)
				break
			}
		}
	}

	return out
}
