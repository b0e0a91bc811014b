// Package fakeapi is an in-memory stand-in for the dashboard backend. It keeps
// records per resource, answers with the envelope shape configured for each
// resource and can be told to fail the next request of a resource.
//
// It backs the HTTP handlers in internal/http, which are used by cmd/fakeapi for
// local development and by integration tests.
package fakeapi

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound        = errors.New("record not found")
	ErrUnknownResource = errors.New("unknown resource")
)

// Shape is the envelope a resource answers list and detail calls with.
type Shape string

const (
	ShapePaged Shape = "paged" // {success, data, total, page, totalPages}
	ShapeData  Shape = "data"  // {data}
	ShapeBare  Shape = "bare"  // [...] and {...}
)

// Record is a schemaless resource row.
type Record = map[string]any

type Config struct {
	Name  string
	Shape Shape
	// IDKey is "id" or "_id".
	IDKey    string
	Required []string
	// Validate returns field errors beyond missing required fields.
	Validate func(Record) map[string]string
	// UnderReportTotal makes paged lists report the page length as total.
	UnderReportTotal bool
	// IgnorePaging makes lists return every record regardless of page and limit.
	IgnorePaging bool
}

func (c Config) idKey() string {
	if c.IDKey == "" {
		return "id"
	}

	return c.IDKey
}

type Failure struct {
	Status  int
	Message string
}

type ListFilter struct {
	Page   int
	Limit  int
	Status string
}

type Page struct {
	Records []Record
	Total   int
	Page    int
	Pages   int
}

type collection struct {
	cfg     Config
	records []Record
}

type Store struct {
	mu          sync.Mutex
	collections map[string]*collection
	failures    map[string][]Failure
}

func New(configs ...Config) *Store {
	s := &Store{
		collections: make(map[string]*collection, len(configs)),
		failures:    make(map[string][]Failure),
	}

	for _, cfg := range configs {
		s.collections[cfg.Name] = &collection{cfg: cfg}
	}

	return s
}

func (s *Store) Config(name string) (Config, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.collections[name]
	if !ok {
		return Config{}, false
	}

	return c.cfg, true
}

// Seed appends records as given, assigning an id to those without one.
func (s *Store) Seed(name string, records ...Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.collections[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownResource, name)
	}

	for _, rec := range records {
		rec = maps.Clone(rec)
		if id, _ := rec[c.cfg.idKey()].(string); id == "" && rec[c.cfg.idKey()] == nil {
			rec[c.cfg.idKey()] = uuid.NewString()
		}

		c.records = append(c.records, rec)
	}

	return nil
}

// FailNext makes the next request against name answer with f.
func (s *Store) FailNext(name string, f Failure) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.failures[name] = append(s.failures[name], f)
}

// TakeFailure pops the pending failure of name, if any.
func (s *Store) TakeFailure(name string) (Failure, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	queue := s.failures[name]
	if len(queue) == 0 {
		return Failure{}, false
	}

	s.failures[name] = queue[1:]

	return queue[0], true
}

func (s *Store) List(name string, filter ListFilter) (Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.collections[name]
	if !ok {
		return Page{}, fmt.Errorf("%w: %s", ErrUnknownResource, name)
	}

	matched := make([]Record, 0, len(c.records))

	for _, rec := range c.records {
		if filter.Status != "" && filter.Status != "all" && rec["status"] != filter.Status {
			continue
		}

		matched = append(matched, maps.Clone(rec))
	}

	if c.cfg.IgnorePaging {
		return Page{Records: matched, Total: len(matched), Page: 1, Pages: 1}, nil
	}

	page := max(filter.Page, 1)

	limit := filter.Limit
	if limit < 1 {
		limit = 10
	}

	start := min((page-1)*limit, len(matched))
	end := min(start+limit, len(matched))

	return Page{
		Records: matched[start:end],
		Total:   len(matched),
		Page:    page,
		Pages:   (len(matched) + limit - 1) / limit,
	}, nil
}

func (s *Store) Get(name, id string) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, i, err := s.find(name, id)
	if err != nil {
		return nil, err
	}

	return maps.Clone(c.records[i]), nil
}

// Create validates rec and stores it under a new id. Field errors are returned
// without an error.
func (s *Store) Create(name string, rec Record) (Record, map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.collections[name]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", ErrUnknownResource, name)
	}

	if fieldErrors := c.validate(rec, false); len(fieldErrors) > 0 {
		return nil, fieldErrors, nil
	}

	rec = maps.Clone(rec)
	delete(rec, "id")
	delete(rec, "_id")
	rec[c.cfg.idKey()] = uuid.NewString()

	c.records = append(c.records, rec)

	return maps.Clone(rec), nil, nil
}

// Update merges patch into the record. Only fields present in patch are validated.
func (s *Store) Update(name, id string, patch Record) (Record, map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, i, err := s.find(name, id)
	if err != nil {
		return nil, nil, err
	}

	if fieldErrors := c.validate(patch, true); len(fieldErrors) > 0 {
		return nil, fieldErrors, nil
	}

	idKey := c.cfg.idKey()
	current := c.records[i][idKey]

	next := maps.Clone(c.records[i])
	maps.Copy(next, patch)
	next[idKey] = current

	c.records[i] = next

	return maps.Clone(next), nil, nil
}

func (s *Store) Delete(name, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, i, err := s.find(name, id)
	if err != nil {
		return err
	}

	c.records = slices.Delete(c.records, i, i+1)

	return nil
}

// Records returns a copy of every record of name.
func (s *Store) Records(name string) []Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.collections[name]
	if !ok {
		return nil
	}

	out := make([]Record, len(c.records))
	for i, rec := range c.records {
		out[i] = maps.Clone(rec)
	}

	return out
}

// Summary aggregates the transactions resource: income, expenses and their difference.
func (s *Store) Summary() (revenue, expenses, net decimal.Decimal) {
	revenue, expenses = decimal.Zero, decimal.Zero

	for _, rec := range s.Records("transactions") {
		amount := decimalOf(rec["amount"]).Abs()

		switch rec["type"] {
		case "income":
			revenue = revenue.Add(amount)
		case "expense":
			expenses = expenses.Add(amount)
		}
	}

	return revenue, expenses, revenue.Sub(expenses)
}

func (s *Store) find(name, id string) (*collection, int, error) {
	c, ok := s.collections[name]
	if !ok {
		return nil, 0, fmt.Errorf("%w: %s", ErrUnknownResource, name)
	}

	idKey := c.cfg.idKey()

	for i, rec := range c.records {
		if fmt.Sprint(rec[idKey]) == id {
			return c, i, nil
		}
	}

	return nil, 0, fmt.Errorf("%w: %s/%s", ErrNotFound, name, id)
}

func (c *collection) validate(rec Record, partial bool) map[string]string {
	fieldErrors := make(map[string]string)

	for _, field := range c.cfg.Required {
		v, present := rec[field]
		if !present && partial {
			continue
		}

		if s, isString := v.(string); v == nil || (isString && strings.TrimSpace(s) == "") {
			fieldErrors[field] = "is required"
		}
	}

	if c.cfg.Validate != nil {
		for field, msg := range c.cfg.Validate(rec) {
			if _, seen := fieldErrors[field]; !seen {
				fieldErrors[field] = msg
			}
		}
	}

	return fieldErrors
}

func decimalOf(v any) decimal.Decimal {
	switch v := v.(type) {
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case string:
		d, err := decimal.NewFromString(v)
		if err == nil {
			return d
		}
	}

	return decimal.Zero
}
