package resource

import (
	"context"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"
)

const (
	StatusAll          = "all"
	DefaultPageSize    = 10
	DefaultSearchLimit = 1000
	DefaultDebounce    = 300 * time.Millisecond
)

type settings struct {
	name        string
	logger      *slog.Logger
	pageSize    int
	searchLimit int
	debounce    time.Duration
	strategy    Strategy
	required    []string
	afterDelete func(context.Context)
}

type Option func(*settings)

// WithName labels the collection in log records.
func WithName(name string) Option {
	return func(s *settings) { s.name = name }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithPageSize(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.pageSize = n
		}
	}
}

// WithSearchLimit bounds the full-collection fetch used by search and FetchAll.
func WithSearchLimit(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.searchLimit = n
		}
	}
}

func WithDebounce(d time.Duration) Option {
	return func(s *settings) { s.debounce = d }
}

func WithStrategy(st Strategy) Option {
	return func(s *settings) { s.strategy = st }
}

// WithRequired lists the JSON fields a create payload must carry.
func WithRequired(fields ...string) Option {
	return func(s *settings) { s.required = fields }
}

// WithAfterDelete registers the recomputation of aggregates derived from the
// collection. It runs after the local removal and before the reconciling refetch.
func WithAfterDelete(fn func(context.Context)) Option {
	return func(s *settings) { s.afterDelete = fn }
}

// State is a point-in-time copy of a collection.
type State[T any] struct {
	Phase        Phase
	Items        []T
	Loading      bool
	Error        string
	FieldErrors  map[string]string
	CurrentPage  int
	PageSize     int
	TotalItems   int
	TotalPages   int
	StatusFilter string
	SearchTerm   string
	// Unfiltered is the size of the collection before the search term was applied.
	Unfiltered int
	// Estimated is set between a local delete and the refetch that confirms the totals.
	Estimated bool
}

func (s State[T]) Searching() bool {
	return s.SearchTerm != ""
}

// NoRecords reports a loaded collection that is empty regardless of any search.
func (s State[T]) NoRecords() bool {
	if s.Phase != PhaseLoaded || s.TotalItems > 0 {
		return false
	}

	return !s.Searching() || s.Unfiltered == 0
}

// NoMatches reports a search that filtered out every record of a non-empty collection.
func (s State[T]) NoMatches() bool {
	return s.Phase == PhaseLoaded && s.Searching() && s.TotalItems == 0 && s.Unfiltered > 0
}

// Collection is the per-resource data holder: it pages, filters and searches one
// remote collection and dispatches mutations against it. It is safe for concurrent
// use; no lock is held while a request is in flight.
type Collection[T Record] struct {
	remote    Remote[T]
	overlay   *Overlay[T]
	guard     Guard
	debouncer *Debouncer
	cfg       settings
	logger    *slog.Logger

	mu          sync.Mutex
	phase       Phase
	pager       Pager
	items       []T
	status      string
	term        string
	unfiltered  int
	estimated   bool
	err         string
	fieldErrors map[string]string
	inflight    int
	seq         uint64
	searchGen   uint64
	cacheGen    uint64
	listeners   map[int]func(State[T])
	nextID      int
	closed      bool
}

func NewCollection[T Record](remote Remote[T], fields FieldsFunc[T], opts ...Option) *Collection[T] {
	cfg := settings{
		logger:      discardLogger(),
		pageSize:    DefaultPageSize,
		searchLimit: DefaultSearchLimit,
		debounce:    DefaultDebounce,
		strategy:    ServerPaged,
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	logger := cfg.logger
	if cfg.name != "" {
		logger = logger.With("resource", cfg.name)
	}

	return &Collection[T]{
		remote:    remote,
		overlay:   NewOverlay(fields),
		guard:     NewGuard(cfg.required...),
		debouncer: NewDebouncer(cfg.debounce),
		cfg:       cfg,
		logger:    logger,
		pager:     NewPager(cfg.pageSize),
		items:     []T{},
		status:    StatusAll,
		listeners: make(map[int]func(State[T])),
	}
}

func (c *Collection[T]) Strategy() Strategy {
	return c.cfg.strategy
}

func (c *Collection[T]) Snapshot() State[T] {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.snapshotLocked()
}

func (c *Collection[T]) snapshotLocked() State[T] {
	return State[T]{
		Phase:        c.phase,
		Items:        slices.Clone(c.items),
		Loading:      c.inflight > 0,
		Error:        c.err,
		FieldErrors:  maps.Clone(c.fieldErrors),
		CurrentPage:  c.pager.CurrentPage,
		PageSize:     c.pager.PageSize,
		TotalItems:   c.pager.TotalItems,
		TotalPages:   c.pager.TotalPages,
		StatusFilter: c.status,
		SearchTerm:   c.term,
		Unfiltered:   c.unfiltered,
		Estimated:    c.estimated,
	}
}

// Loaded returns the full collection for the current status filter when it is
// held locally (FetchAll resources, or while searching), else the current page.
func (c *Collection[T]) Loaded() []T {
	c.mu.Lock()
	defer c.mu.Unlock()

	if all, ok := c.overlay.Cached(c.status); ok {
		return slices.Clone(all)
	}

	return slices.Clone(c.items)
}

// Subscribe registers fn to receive a snapshot after every state change. The
// returned function removes the subscription.
func (c *Collection[T]) Subscribe(fn func(State[T])) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextID
	c.nextID++
	c.listeners[id] = fn

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()

		delete(c.listeners, id)
	}
}

// Close drops pending debounced searches and all subscriptions.
func (c *Collection[T]) Close() {
	c.debouncer.Cancel()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	clear(c.listeners)
}

func (c *Collection[T]) notify() {
	c.mu.Lock()
	if len(c.listeners) == 0 {
		c.mu.Unlock()
		return
	}

	snap := c.snapshotLocked()
	fns := slices.Collect(maps.Values(c.listeners))
	c.mu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}

// Refresh reloads the current page with the current filter and search term.
func (c *Collection[T]) Refresh(ctx context.Context) {
	c.load(ctx)
}

// GoToPage loads page n. It reports false, leaving the state untouched, when n is
// outside [1, TotalPages] while totals are known.
func (c *Collection[T]) GoToPage(ctx context.Context, n int) bool {
	c.mu.Lock()

	if !c.pager.Allows(n) {
		c.mu.Unlock()
		c.logger.Debug("page out of range", "page", n, "total_pages", c.pager.TotalPages)

		return false
	}

	c.pager.CurrentPage = max(n, 1)
	c.mu.Unlock()

	c.load(ctx)

	return true
}

func (c *Collection[T]) ChangePageSize(ctx context.Context, size int) {
	if size < 1 {
		return
	}

	c.mu.Lock()
	c.pager.PageSize = size
	c.pager.CurrentPage = 1
	c.mu.Unlock()

	c.load(ctx)
}

// ChangeStatusFilter loads page 1 filtered by status. An empty status means StatusAll.
func (c *Collection[T]) ChangeStatusFilter(ctx context.Context, status string) {
	if status == "" {
		status = StatusAll
	}

	c.mu.Lock()
	c.status = status
	c.pager.CurrentPage = 1
	c.mu.Unlock()

	c.load(ctx)
}

// SetSearchTerm applies term at once. Clearing a non-empty term drops the search
// cache of server-paged resources and resumes server pagination at page 1.
func (c *Collection[T]) SetSearchTerm(ctx context.Context, term string) {
	if c.applyTerm(strings.TrimSpace(term), c.nextSearch()) {
		c.load(ctx)
	}
}

// ChangeSearchTerm applies term once the debounce delay has passed without a newer
// term. It never blocks: clearing the search updates the state at once and reloads
// in the background. A term superseded by a later call is never applied.
func (c *Collection[T]) ChangeSearchTerm(ctx context.Context, term string) {
	gen := c.nextSearch()
	term = strings.TrimSpace(term)
	ctx = context.WithoutCancel(ctx)

	if term == "" {
		if c.applyTerm("", gen) {
			go c.load(ctx)
		}

		return
	}

	c.debouncer.Trigger(func() {
		if c.applyTerm(term, gen) {
			c.load(ctx)
		}
	})
}

// nextSearch cancels any pending debounced term and returns the generation of the
// caller's term.
func (c *Collection[T]) nextSearch() uint64 {
	c.debouncer.Cancel()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.searchGen++

	return c.searchGen
}

// applyTerm sets term as the current search when gen is still the latest search
// generation. It reports whether the view has to be reloaded.
func (c *Collection[T]) applyTerm(term string, gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || gen != c.searchGen || term == c.term {
		return false
	}

	if term == "" && c.cfg.strategy == ServerPaged {
		c.invalidateLocked()
	}

	c.term = term
	c.pager.CurrentPage = 1

	return true
}

// Create posts payload and reloads the current view on success.
func (c *Collection[T]) Create(ctx context.Context, payload any) MutationResult[T] {
	if res, ok := c.check(payload, false); !ok {
		return res
	}

	done := c.begin()
	defer done()

	res := c.remote.Create(ctx, payload)
	if !c.settle("create", res) {
		return res
	}

	c.invalidate()
	c.load(ctx)

	return res
}

// Update sends payload for id and reloads the current view on success.
func (c *Collection[T]) Update(ctx context.Context, id string, payload any) MutationResult[T] {
	if res, ok := c.check(payload, true); !ok {
		return res
	}

	done := c.begin()
	defer done()

	res := c.remote.Update(ctx, id, payload)
	if !c.settle("update", res) {
		return res
	}

	c.invalidate()
	c.load(ctx)

	return res
}

// Delete removes id remotely. On success the record leaves the current page and the
// totals drop at once, flagged as an estimate, before the reconciling refetch.
func (c *Collection[T]) Delete(ctx context.Context, id string) MutationResult[T] {
	done := c.begin()
	defer done()

	res := c.remote.Delete(ctx, id)
	if !c.settle("delete", res) {
		return res
	}

	c.removeLocal(id)
	c.notify()

	if c.cfg.afterDelete != nil {
		c.cfg.afterDelete(ctx)
	}

	c.load(ctx)

	return res
}

// Get fetches one record. When the request fails and the record is already known
// from the list, the known copy is returned with Fallback set and the error kept.
func (c *Collection[T]) Get(ctx context.Context, id string) DetailResult[T] {
	res := c.remote.Get(ctx, id)
	if res.Success {
		return res
	}

	row, ok := c.known(id)
	if !ok {
		return res
	}

	c.logger.Warn("detail fetch failed, using list copy", "id", id, "error", res.Error)

	return DetailResult[T]{Success: true, Data: &row, Error: res.Error, Fallback: true}
}

func (c *Collection[T]) known(id string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, item := range c.items {
		if item.RecordID() == id {
			return item, true
		}
	}

	if all, ok := c.overlay.Cached(c.status); ok {
		for _, item := range all {
			if item.RecordID() == id {
				return item, true
			}
		}
	}

	var zero T

	return zero, false
}

func (c *Collection[T]) check(payload any, partial bool) (MutationResult[T], bool) {
	fieldErrors, err := c.guard.Check(payload, partial)
	if err != nil {
		res := MutationResult[T]{Error: "Invalid payload: " + err.Error()}
		c.record(res.Error, nil)

		return res, false
	}

	if len(fieldErrors) > 0 {
		res := MutationResult[T]{Error: "Missing required fields", FieldErrors: fieldErrors}
		c.record(res.Error, fieldErrors)
		c.logger.Debug("mutation rejected before request", "fields", slices.Sorted(maps.Keys(fieldErrors)))

		return res, false
	}

	return MutationResult[T]{}, true
}

func (c *Collection[T]) record(msg string, fieldErrors map[string]string) {
	c.mu.Lock()
	c.err = msg
	c.fieldErrors = fieldErrors
	c.mu.Unlock()

	c.notify()
}

// begin marks a call in flight and clears the errors of the previous attempt.
func (c *Collection[T]) begin() func() {
	c.mu.Lock()
	c.inflight++
	c.err = ""
	c.fieldErrors = nil
	c.mu.Unlock()

	c.notify()

	return func() {
		c.mu.Lock()
		c.inflight--
		c.mu.Unlock()

		c.notify()
	}
}

func (c *Collection[T]) settle(op string, res MutationResult[T]) bool {
	if res.Success {
		c.logger.Info("mutation succeeded", "op", op)
		return true
	}

	c.logger.Warn("mutation failed", "op", op, "error", res.Error, "field_errors", len(res.FieldErrors))

	c.mu.Lock()
	c.err = res.Error
	c.fieldErrors = res.FieldErrors
	c.mu.Unlock()

	return false
}

func (c *Collection[T]) removeLocal(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	before := len(c.items)
	c.items = slices.DeleteFunc(c.items, func(item T) bool {
		return item.RecordID() == id
	})

	if removed := before - len(c.items); removed > 0 {
		c.pager.TotalItems = max(c.pager.TotalItems-removed, 0)
		c.pager.TotalPages = PageCount(c.pager.TotalItems, c.pager.PageSize)

		if c.unfiltered > 0 {
			c.unfiltered = max(c.unfiltered-removed, 0)
		}

		c.estimated = true
	}

	c.invalidateLocked()
}

func (c *Collection[T]) invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.invalidateLocked()
}

func (c *Collection[T]) invalidateLocked() {
	c.overlay.Invalidate()
	c.cacheGen++
}

type fetchRequest struct {
	page   int
	size   int
	status string
	term   string
}

type fetchOutcome[T any] struct {
	items       []T
	total       int
	page        int
	unfiltered  int
	err         string
	fieldErrors map[string]string
}

// load fetches the current view. Only the response of the latest issued load is
// applied; older ones are discarded.
func (c *Collection[T]) load(ctx context.Context) {
	c.mu.Lock()
	c.seq++
	seq := c.seq
	req := fetchRequest{
		page:   c.pager.CurrentPage,
		size:   c.pager.PageSize,
		status: c.status,
		term:   c.term,
	}
	c.phase = PhaseFetching
	c.inflight++
	c.err = ""
	c.fieldErrors = nil
	c.mu.Unlock()

	c.notify()

	var out fetchOutcome[T]
	if req.term != "" || c.cfg.strategy == FetchAll {
		out = c.fetchLocal(ctx, req)
	} else {
		out = c.fetchServer(ctx, req, false)
	}

	c.mu.Lock()
	c.inflight--

	if seq != c.seq {
		c.mu.Unlock()
		c.logger.Debug("stale response discarded", "seq", seq, "page", req.page)
		c.notify()

		return
	}

	c.apply(out)
	c.mu.Unlock()

	c.notify()
}

func (c *Collection[T]) apply(out fetchOutcome[T]) {
	c.estimated = false

	if out.err != "" {
		c.logger.Warn("failed to load collection", "error", out.err)

		c.phase = PhaseErrored
		c.items = []T{}
		c.pager.Reset()
		c.unfiltered = 0
		c.err = out.err
		c.fieldErrors = out.fieldErrors

		return
	}

	c.phase = PhaseLoaded
	c.items = out.items
	c.pager.CurrentPage = out.page
	c.pager.SetTotal(out.total)
	c.unfiltered = out.unfiltered
}

// fetchLocal serves the view from the full collection: it is fetched once per
// status filter, filtered by the search term and sliced with the page size.
func (c *Collection[T]) fetchLocal(ctx context.Context, req fetchRequest) fetchOutcome[T] {
	c.mu.Lock()
	all, ok := c.overlay.Cached(req.status)
	gen := c.cacheGen
	c.mu.Unlock()

	if !ok {
		res := c.remote.List(ctx, ListParams{Page: 1, Limit: c.cfg.searchLimit, Status: req.status})
		if !res.Success {
			return fetchOutcome[T]{err: res.Error, fieldErrors: res.FieldErrors}
		}

		all = res.Data

		if res.HasTotals && res.Total > len(all) {
			c.logger.Warn("collection exceeds search limit", "total", res.Total, "limit", c.cfg.searchLimit)
		}

		c.mu.Lock()
		if gen == c.cacheGen {
			c.overlay.Store(req.status, all)
		}
		c.mu.Unlock()

		c.logger.Debug("fetched full collection", "status", req.status, "count", len(all))
	}

	filtered := c.overlay.Filter(all, req.term)
	page := clampPage(req.page, len(filtered), req.size)

	return fetchOutcome[T]{
		items:      Slice(filtered, page, req.size),
		total:      len(filtered),
		page:       page,
		unfiltered: len(all),
	}
}

// fetchServer requests one page. When the reported total is not larger than the
// page it came with, the total is confirmed with a count call.
func (c *Collection[T]) fetchServer(ctx context.Context, req fetchRequest, retried bool) fetchOutcome[T] {
	res := c.remote.List(ctx, ListParams{Page: req.page, Limit: req.size, Status: req.status})
	if !res.Success {
		return fetchOutcome[T]{err: res.Error, fieldErrors: res.FieldErrors}
	}

	items := res.Data
	total := res.Total

	if len(items) > req.size {
		// The backend ignored page and limit and sent everything.
		page := clampPage(req.page, len(items), req.size)

		return fetchOutcome[T]{
			items:      Slice(items, page, req.size),
			total:      len(items),
			page:       page,
			unfiltered: len(items),
		}
	}

	if !res.HasTotals || total <= len(items) {
		seen := (req.page-1)*req.size + len(items)

		switch {
		case len(items) >= req.size || req.page > 1:
			total = c.countAll(ctx, req.status, max(total, seen))
		default:
			total = max(total, seen)
		}
	}

	if last := PageCount(total, req.size); !retried && last > 0 && req.page > last && len(items) == 0 {
		c.logger.Debug("page beyond last page, loading last page", "page", req.page, "last", last)

		req.page = last

		return c.fetchServer(ctx, req, true)
	}

	return fetchOutcome[T]{
		items:      items,
		total:      total,
		page:       max(req.page, 1),
		unfiltered: total,
	}
}

func (c *Collection[T]) countAll(ctx context.Context, status string, fallback int) int {
	res := c.remote.List(ctx, ListParams{Page: 1, Limit: c.cfg.searchLimit, Status: status})
	if !res.Success {
		c.logger.Warn("failed to count collection", "error", res.Error)
		return fallback
	}

	total := len(res.Data)
	if res.HasTotals && res.Total > total {
		total = res.Total
	}

	return max(total, fallback)
}

func clampPage(page, total, size int) int {
	last := PageCount(total, size)
	if last == 0 {
		return 1
	}

	return min(max(page, 1), last)
}
