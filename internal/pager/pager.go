// Package pager tracks paged loading of transaction lists.
//
// A Pager owns the page counter, the loading flag and the accumulated rows for
// one list view. Nothing here performs I/O: callers receive a Request, send it
// however they like, and report the outcome back with Succeed or Fail.
package pager

import (
	"github.com/Veraticus/leasetx/internal/common"
	"github.com/Veraticus/leasetx/internal/model"
)

// DefaultScrollThreshold is the distance from the bottom, in viewport units,
// at which the next page is requested.
const DefaultScrollThreshold = 100

// State is the externally visible phase of a pager.
type State int

// Pager states.
const (
	Idle State = iota
	LoadingFirst
	Ready
	LoadingNext
	Exhausted
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case LoadingFirst:
		return "loading-first-page"
	case Ready:
		return "ready"
	case LoadingNext:
		return "loading-next-page"
	case Exhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// Config sizes a pager.
type Config struct {
	PageSize        int
	ScrollThreshold int
}

// Viewport describes a scrollable region. Offset is the first visible line,
// Height the number of visible lines and Content the total line count.
type Viewport struct {
	Offset  int
	Height  int
	Content int
}

// Request is a page fetch issued by a pager. Generation identifies the search
// it belongs to; outcomes from an older generation are ignored.
type Request[Q any] struct {
	Query      Q
	Page       int
	Append     bool
	Generation uint64
}

// Result is the outcome of a successful page fetch.
type Result struct {
	Rows    []model.TransactionRecord
	HasMore bool
}

// machine is the state shared by the search and building pagers.
type machine[Q any] struct {
	cfg      Config
	withPage func(q Q, page, pageSize int) Q

	query      *Q
	page       int
	total      int
	loading    bool
	appending  bool
	hasMore    bool
	generation uint64
	rows       []model.TransactionRecord
}

func newMachine[Q any](cfg Config, withPage func(Q, int, int) Q) machine[Q] {
	if cfg.PageSize <= 0 {
		cfg.PageSize = model.SearchPageSize
	}
	if cfg.ScrollThreshold <= 0 {
		cfg.ScrollThreshold = DefaultScrollThreshold
	}
	m := machine[Q]{cfg: cfg, withPage: withPage}
	m.clear()
	return m
}

func (m *machine[Q]) clear() {
	m.query = nil
	m.page = 1
	m.total = 0
	m.loading = false
	m.appending = false
	m.hasMore = true
	m.rows = nil
}

func (m *machine[Q]) start(q Q) (Request[Q], error) {
	if m.loading {
		return Request[Q]{}, common.ErrBusy
	}
	m.generation++
	m.page = 1
	m.total = 0
	m.hasMore = true
	m.loading = true
	m.appending = false
	m.rows = nil
	m.query = &q

	return Request[Q]{
		Query:      m.withPage(q, m.page, m.cfg.PageSize),
		Page:       m.page,
		Generation: m.generation,
	}, nil
}

// State reports the current phase.
func (m *machine[Q]) State() State {
	switch {
	case m.loading && m.appending:
		return LoadingNext
	case m.loading:
		return LoadingFirst
	case m.query == nil:
		return Idle
	case !m.hasMore:
		return Exhausted
	default:
		return Ready
	}
}

// Page returns the page number of the most recent request.
func (m *machine[Q]) Page() int { return m.page }

// Total returns the number of rows received for the current search.
func (m *machine[Q]) Total() int { return m.total }

// HasMore reports whether the backend signalled further pages.
func (m *machine[Q]) HasMore() bool { return m.hasMore }

// Loading reports whether a request is outstanding.
func (m *machine[Q]) Loading() bool { return m.loading }

// PageSize returns the configured page size.
func (m *machine[Q]) PageSize() int { return m.cfg.PageSize }

// Generation identifies the current search.
func (m *machine[Q]) Generation() uint64 { return m.generation }

// Rows returns the accumulated rows in arrival order.
func (m *machine[Q]) Rows() []model.TransactionRecord { return m.rows }

// NearBottom reports whether the viewport is within the scroll threshold of
// the end of its content.
func (m *machine[Q]) NearBottom(v Viewport) bool {
	return v.Offset+v.Height >= v.Content-m.cfg.ScrollThreshold
}

// LoadMore requests the next page. It does nothing while a request is in
// flight, after the last page, or before any search.
func (m *machine[Q]) LoadMore() (Request[Q], bool) {
	if m.loading || !m.hasMore || m.query == nil {
		return Request[Q]{}, false
	}
	m.page++
	m.loading = true
	m.appending = true

	return Request[Q]{
		Query:      m.withPage(*m.query, m.page, m.cfg.PageSize),
		Page:       m.page,
		Append:     true,
		Generation: m.generation,
	}, true
}

// OnScroll requests the next page when the viewport is near the bottom.
func (m *machine[Q]) OnScroll(v Viewport) (Request[Q], bool) {
	if !m.NearBottom(v) {
		return Request[Q]{}, false
	}
	return m.LoadMore()
}

// Succeed records a page of results. It returns false when the request is
// stale and the result was dropped.
func (m *machine[Q]) Succeed(req Request[Q], res Result) bool {
	if !m.current(req) {
		return false
	}

	m.loading = false
	m.appending = false
	m.hasMore = res.HasMore && len(res.Rows) > 0

	if req.Append {
		m.total += len(res.Rows)
		m.rows = append(m.rows, res.Rows...)
	} else {
		m.total = len(res.Rows)
		m.rows = append([]model.TransactionRecord(nil), res.Rows...)
	}
	return true
}

// Fail clears the loading flag after a failed fetch and reports whether the
// error should be shown. Only first-page failures are surfaced; a failed
// append keeps the rows already on screen. The page counter stays advanced.
func (m *machine[Q]) Fail(req Request[Q]) bool {
	if !m.current(req) {
		return false
	}
	m.loading = false
	m.appending = false
	return !req.Append
}

// Reset returns to Idle and invalidates any request in flight.
func (m *machine[Q]) Reset() {
	m.generation++
	m.clear()
}

func (m *machine[Q]) current(req Request[Q]) bool {
	return m.loading && req.Generation == m.generation && req.Page == m.page
}

// SearchRequest is a page fetch for the main result list.
type SearchRequest = Request[model.FilterSet]

// Pager drives the main search result list.
type Pager struct {
	machine[model.FilterSet]
}

// New returns an idle pager.
func New(cfg Config) *Pager {
	return &Pager{machine: newMachine(cfg, model.FilterSet.WithPage)}
}

// Submit starts a fresh search. Filters are validated before any state
// changes; a search cannot start while another request is outstanding.
func (p *Pager) Submit(f model.FilterSet) (SearchRequest, error) {
	if err := f.Validate(); err != nil {
		return SearchRequest{}, err
	}
	return p.start(f.Clone())
}

// Filters returns the filters of the current search.
func (p *Pager) Filters() (model.FilterSet, bool) {
	if p.query == nil {
		return model.FilterSet{}, false
	}
	return p.query.Clone(), true
}
