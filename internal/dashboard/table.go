// Package dashboard assembles the department tables shown to the signed-in user.
// A Table hides the record type of its collection so the CLI and the TUI can
// page, search and mutate every resource the same way.
package dashboard

import (
	"context"

	"github.com/MrJamesThe3rd/deskboard/internal/resource"
	"github.com/MrJamesThe3rd/deskboard/internal/session"
)

type Column struct {
	Title string
	Width int
}

// Field is an input of the create form. Options, when set, are the allowed values.
type Field struct {
	Key     string
	Title   string
	Options []string
}

// View is a rendered snapshot of a table.
type View struct {
	IDs         []string
	Rows        [][]string
	Phase       resource.Phase
	Loading     bool
	Error       string
	FieldErrors map[string]string
	Page        int
	Pages       int
	Total       int
	PageSize    int
	Status      string
	Search      string
	Estimated   bool
	// Empty is the placeholder to show instead of rows, if any.
	Empty string
}

type Outcome struct {
	Success     bool
	Message     string
	Error       string
	FieldErrors map[string]string
}

type Detail struct {
	Success  bool
	Fallback bool
	Error    string
	Record   any
}

type Table interface {
	Name() string
	Department() session.Role
	Columns() []Column
	Fields() []Field
	Statuses() []string
	Strategy() resource.Strategy

	View() View
	Subscribe(fn func(View)) func()

	Refresh(ctx context.Context)
	GoToPage(ctx context.Context, n int) bool
	ChangePageSize(ctx context.Context, n int)
	ChangeStatusFilter(ctx context.Context, status string)
	// Search applies term at once, or after the debounce delay when debounced is set.
	// A debounced search does not block.
	Search(ctx context.Context, term string, debounced bool)

	Create(ctx context.Context, payload map[string]any) Outcome
	Update(ctx context.Context, id string, payload map[string]any) Outcome
	Delete(ctx context.Context, id string) Outcome
	Get(ctx context.Context, id string) Detail

	Close()
}

type table[T resource.Record] struct {
	name       string
	department session.Role
	columns    []Column
	fields     []Field
	statuses   []string
	row        func(T) []string
	coll       *resource.Collection[T]
}

func (t *table[T]) Name() string                { return t.name }
func (t *table[T]) Department() session.Role    { return t.department }
func (t *table[T]) Columns() []Column           { return t.columns }
func (t *table[T]) Fields() []Field             { return t.fields }
func (t *table[T]) Statuses() []string          { return t.statuses }
func (t *table[T]) Strategy() resource.Strategy { return t.coll.Strategy() }

func (t *table[T]) View() View {
	return t.render(t.coll.Snapshot())
}

func (t *table[T]) Subscribe(fn func(View)) func() {
	return t.coll.Subscribe(func(s resource.State[T]) {
		fn(t.render(s))
	})
}

func (t *table[T]) render(s resource.State[T]) View {
	v := View{
		IDs:         make([]string, len(s.Items)),
		Rows:        make([][]string, len(s.Items)),
		Phase:       s.Phase,
		Loading:     s.Loading,
		Error:       s.Error,
		FieldErrors: s.FieldErrors,
		Page:        s.CurrentPage,
		Pages:       s.TotalPages,
		Total:       s.TotalItems,
		PageSize:    s.PageSize,
		Status:      s.StatusFilter,
		Search:      s.SearchTerm,
		Estimated:   s.Estimated,
	}

	for i, item := range s.Items {
		v.IDs[i] = item.RecordID()
		v.Rows[i] = t.row(item)
	}

	switch {
	case s.NoMatches():
		v.Empty = "No records match your search"
	case s.NoRecords():
		v.Empty = "No records found"
	}

	return v
}

func (t *table[T]) Refresh(ctx context.Context) { t.coll.Refresh(ctx) }

func (t *table[T]) GoToPage(ctx context.Context, n int) bool { return t.coll.GoToPage(ctx, n) }

func (t *table[T]) ChangePageSize(ctx context.Context, n int) { t.coll.ChangePageSize(ctx, n) }

func (t *table[T]) ChangeStatusFilter(ctx context.Context, status string) {
	t.coll.ChangeStatusFilter(ctx, status)
}

func (t *table[T]) Search(ctx context.Context, term string, debounced bool) {
	if debounced {
		t.coll.ChangeSearchTerm(ctx, term)
		return
	}

	t.coll.SetSearchTerm(ctx, term)
}

func (t *table[T]) Create(ctx context.Context, payload map[string]any) Outcome {
	return outcome(t.coll.Create(ctx, payload))
}

func (t *table[T]) Update(ctx context.Context, id string, payload map[string]any) Outcome {
	return outcome(t.coll.Update(ctx, id, payload))
}

func (t *table[T]) Delete(ctx context.Context, id string) Outcome {
	return outcome(t.coll.Delete(ctx, id))
}

func (t *table[T]) Get(ctx context.Context, id string) Detail {
	res := t.coll.Get(ctx, id)

	d := Detail{Success: res.Success, Fallback: res.Fallback, Error: res.Error}
	if res.Data != nil {
		d.Record = *res.Data
	}

	return d
}

func (t *table[T]) Close() { t.coll.Close() }

func outcome[T any](res resource.MutationResult[T]) Outcome {
	return Outcome{
		Success:     res.Success,
		Message:     res.Message,
		Error:       res.Error,
		FieldErrors: res.FieldErrors,
	}
}
