package logging

import (
	"context"
	"log/slog"
	"slices"
	"sync"
)

// Entry is one record kept by a Recorder, with its attributes flattened.
type Entry struct {
	Level   slog.Level
	Message string
	Attrs   map[string]any
}

// Recorder is a slog.Handler that keeps records in memory so tests can assert on them.
type Recorder struct {
	mu      *sync.Mutex
	entries *[]Entry
	level   slog.Level
	attrs   []slog.Attr
	group   string
}

func NewRecorder(level slog.Level) *Recorder {
	return &Recorder{
		mu:      &sync.Mutex{},
		entries: &[]Entry{},
		level:   level,
	}
}

// Logger returns a logger backed by r.
func (r *Recorder) Logger() *slog.Logger {
	return slog.New(r)
}

func (r *Recorder) Enabled(_ context.Context, level slog.Level) bool {
	return level >= r.level
}

//nolint:gocritic
func (r *Recorder) Handle(_ context.Context, rec slog.Record) error {
	e := Entry{
		Level:   rec.Level,
		Message: rec.Message,
		Attrs:   make(map[string]any, len(r.attrs)+rec.NumAttrs()),
	}

	for _, a := range r.attrs {
		e.Attrs[a.Key] = a.Value.Resolve().Any()
	}

	rec.Attrs(func(a slog.Attr) bool {
		e.Attrs[r.key(a.Key)] = a.Value.Resolve().Any()
		return true
	})

	r.mu.Lock()
	*r.entries = append(*r.entries, e)
	r.mu.Unlock()

	return nil
}

func (r *Recorder) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *r
	clone.attrs = slices.Clone(r.attrs)

	for _, a := range attrs {
		a.Key = r.key(a.Key)
		clone.attrs = append(clone.attrs, a)
	}

	return &clone
}

func (r *Recorder) WithGroup(name string) slog.Handler {
	if name == "" {
		return r
	}

	clone := *r
	clone.group = r.key(name)

	return &clone
}

func (r *Recorder) key(k string) string {
	if r.group == "" {
		return k
	}

	return r.group + "." + k
}

// Entries returns a copy of everything recorded so far.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	return slices.Clone(*r.entries)
}

// Messages returns the recorded messages in order.
func (r *Recorder) Messages() []string {
	entries := r.Entries()

	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Message
	}

	return out
}

// Find returns the first entry with msg.
func (r *Recorder) Find(msg string) (Entry, bool) {
	for _, e := range r.Entries() {
		if e.Message == msg {
			return e, true
		}
	}

	return Entry{}, false
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	*r.entries = (*r.entries)[:0]
}
