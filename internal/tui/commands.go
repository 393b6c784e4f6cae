package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/leasetx/internal/model"
	"github.com/Veraticus/leasetx/internal/pager"
)

// loadSearch fetches one page of search results.
func (m Model) loadSearch(req pager.SearchRequest) tea.Cmd {
	backend, timeout := m.cfg.Backend, m.cfg.RequestTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		page, err := backend.Search(ctx, req.Query)
		return searchPageMsg{req: req, page: page, err: err}
	}
}

// loadBuilding fetches one page of a building's transactions.
func (m Model) loadBuilding(req pager.BuildingRequest) tea.Cmd {
	backend, timeout := m.cfg.Backend, m.cfg.RequestTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		page, err := backend.BuildingTransactions(ctx, req.Query)
		return buildingPageMsg{req: req, page: page, err: err}
	}
}

// loadOwners fetches the owners of record for a lot.
func (m Model) loadOwners(q model.OwnerQuery, title string) tea.Cmd {
	backend, timeout := m.cfg.Backend, m.cfg.RequestTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		info, err := backend.OwnerInfo(ctx, q)
		return ownersLoadedMsg{query: q, title: title, info: info, err: err}
	}
}

// recordHistory stores a completed first page in the search history.
func (m Model) recordHistory(f model.FilterSet, count int) tea.Cmd {
	history := m.cfg.History
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		return historyRecordedMsg{err: history.RecordSearch(ctx, f, count)}
	}
}

// scheduleScroll debounces cursor movement; only the last move in a burst
// produces a scroll check.
func (m Model) scheduleScroll(l list) tea.Cmd {
	seq := m.debounce.Bump()
	return tea.Tick(m.debounce.Delay, func(time.Time) tea.Msg {
		return scrollSettledMsg{list: l, seq: seq}
	})
}
