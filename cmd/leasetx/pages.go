package main

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Veraticus/leasetx/internal/api"
	"github.com/Veraticus/leasetx/internal/common"
	"github.com/Veraticus/leasetx/internal/pager"
)

// pageMachine is the part of a pager the command line drives.
type pageMachine[Q any] interface {
	LoadMore() (pager.Request[Q], bool)
	Succeed(req pager.Request[Q], res pager.Result) bool
	Fail(req pager.Request[Q]) bool
}

// errPartial marks a failure after at least one page was received.
var errPartial = errors.New("later page failed")

// collectPages fetches pages until the backend runs dry, maxPages is reached
// or ctx is canceled. onPage is told how many rows each page delivered.
// A failure after the first page wraps errPartial; the rows already received
// stay in the machine.
func collectPages[Q any](
	ctx context.Context,
	m pageMachine[Q],
	first pager.Request[Q],
	fetch func(context.Context, Q) (*api.Page, error),
	maxPages int,
	onPage func(rows int),
) error {
	req := first
	for pages := 1; ; pages++ {
		var page *api.Page
		err := common.WithRetry(ctx, func() error {
			var fetchErr error
			page, fetchErr = fetch(ctx, req.Query)
			return fetchErr
		}, common.RetryOptions{MaxAttempts: 2, InitialDelay: 500 * time.Millisecond})
		if err != nil {
			if m.Fail(req) {
				return err
			}
			slog.Warn("Page fetch failed, keeping earlier pages", "page", req.Page, "error", err)
			return errors.Join(errPartial, err)
		}

		m.Succeed(req, pager.Result{Rows: page.Data, HasMore: page.HasMore})
		if onPage != nil {
			onPage(len(page.Data))
		}

		if maxPages > 0 && pages >= maxPages {
			return nil
		}
		next, ok := m.LoadMore()
		if !ok {
			return nil
		}
		req = next
	}
}
