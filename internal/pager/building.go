package pager

import (
	"cmp"
	"slices"
	"time"

	"github.com/Veraticus/leasetx/internal/format"
	"github.com/Veraticus/leasetx/internal/model"
)

// BuildingRequest is a page fetch for the building-detail list.
type BuildingRequest = Request[model.BuildingQuery]

// BuildingPager drives the building-detail list. All pages are kept in an
// unfiltered buffer; the displayed rows are derived from it on demand.
type BuildingPager struct {
	machine[model.BuildingQuery]
	futureOnly bool
}

// NewBuilding returns an idle building pager. A zero page size selects
// model.BuildingPageSize.
func NewBuilding(cfg Config) *BuildingPager {
	if cfg.PageSize <= 0 {
		cfg.PageSize = model.BuildingPageSize
	}
	return &BuildingPager{
		machine: newMachine(cfg, func(q model.BuildingQuery, page, pageSize int) model.BuildingQuery {
			q.Page = page
			q.PageSize = pageSize
			return q
		}),
	}
}

// Open starts loading a building. The future-only toggle is left as is.
func (b *BuildingPager) Open(q model.BuildingQuery) (BuildingRequest, error) {
	if err := q.Validate(); err != nil {
		return BuildingRequest{}, err
	}
	return b.start(q)
}

// Query returns the building being shown.
func (b *BuildingPager) Query() (model.BuildingQuery, bool) {
	if b.query == nil {
		return model.BuildingQuery{}, false
	}
	return *b.query, true
}

// SetFutureOnly toggles the future-contracts filter.
func (b *BuildingPager) SetFutureOnly(on bool) {
	b.futureOnly = on
}

// FutureOnly reports whether the future-contracts filter is on.
func (b *BuildingPager) FutureOnly() bool {
	return b.futureOnly
}

// Visible derives the displayed rows from the buffer. With the future-only
// filter on, rows whose contract ends before the month of now are dropped
// and the rest are sorted by contract end, oldest first. The buffer itself is
// never modified.
func (b *BuildingPager) Visible(now time.Time) []model.TransactionRecord {
	if !b.futureOnly {
		return slices.Clone(b.rows)
	}
	return FutureContracts(b.rows, now)
}

type keyedRecord struct {
	end    string
	record model.TransactionRecord
}

// FutureContracts returns the records whose contract ends in or after the
// month of now, stably sorted by contract end.
func FutureContracts(rows []model.TransactionRecord, now time.Time) []model.TransactionRecord {
	current := format.CurrentYearMonth(now)

	keyed := make([]keyedRecord, 0, len(rows))
	for _, r := range rows {
		end, ok := format.ContractEndYearMonth(r.ContractPeriod)
		if !ok || end < current {
			continue
		}
		keyed = append(keyed, keyedRecord{end: end, record: r})
	}

	slices.SortStableFunc(keyed, func(a, b keyedRecord) int {
		return cmp.Compare(a.end, b.end)
	})

	out := make([]model.TransactionRecord, len(keyed))
	for i, k := range keyed {
		out[i] = k.record
	}
	return out
}
