package resource

import "slices"

// Strategy decides where a collection is paginated.
type Strategy int

const (
	// ServerPaged sends page and limit with every request and trusts the returned totals.
	ServerPaged Strategy = iota
	// FetchAll loads the whole collection once and slices it locally.
	FetchAll
)

func (s Strategy) String() string {
	if s == FetchAll {
		return "fetch-all"
	}

	return "server-paged"
}

// Phase is the lifecycle position of a collection.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseFetching
	PhaseLoaded
	PhaseErrored
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseFetching:
		return "fetching"
	case PhaseLoaded:
		return "loaded"
	case PhaseErrored:
		return "errored"
	}

	return "unknown"
}

// Pager holds the pagination counters of one collection.
type Pager struct {
	CurrentPage int
	PageSize    int
	TotalItems  int
	TotalPages  int
}

func NewPager(pageSize int) Pager {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	return Pager{CurrentPage: 1, PageSize: pageSize}
}

// Allows reports whether page n may be requested. Before any totals are known
// every request passes so the first response can establish them.
func (p Pager) Allows(n int) bool {
	if p.TotalItems == 0 {
		return true
	}

	return n >= 1 && n <= p.TotalPages
}

// SetTotal records the item count and keeps CurrentPage in range.
func (p *Pager) SetTotal(total int) {
	p.TotalItems = max(total, 0)
	p.TotalPages = PageCount(p.TotalItems, p.PageSize)

	if p.TotalPages > 0 && p.CurrentPage > p.TotalPages {
		p.CurrentPage = p.TotalPages
	}

	if p.CurrentPage < 1 {
		p.CurrentPage = 1
	}
}

func (p *Pager) Reset() {
	p.TotalItems = 0
	p.TotalPages = 0
}

// PageCount is ceil(total / size).
func PageCount(total, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}

	return (total + size - 1) / size
}

// Slice returns page (1-based) of items. The result never aliases items.
func Slice[T any](items []T, page, size int) []T {
	if size <= 0 || page < 1 {
		return []T{}
	}

	start := (page - 1) * size
	if start >= len(items) {
		return []T{}
	}

	end := min(start+size, len(items))

	return slices.Clone(items[start:end])
}
