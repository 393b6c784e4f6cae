package tui

import (
	"context"
	"time"

	"github.com/Veraticus/leasetx/internal/api"
	"github.com/Veraticus/leasetx/internal/model"
	"github.com/Veraticus/leasetx/internal/pager"
	"github.com/Veraticus/leasetx/internal/tui/themes"
)

// Backend is the subset of the API client the browser needs.
type Backend interface {
	Search(ctx context.Context, f model.FilterSet) (*api.Page, error)
	BuildingTransactions(ctx context.Context, q model.BuildingQuery) (*api.Page, error)
	OwnerInfo(ctx context.Context, q model.OwnerQuery) (*api.OwnerInfo, error)
}

// History records completed searches.
type History interface {
	RecordSearch(ctx context.Context, f model.FilterSet, resultCount int) error
}

// Config holds TUI configuration.
type Config struct {
	Theme            themes.Theme
	Backend          Backend
	History          History
	Now              func() time.Time
	Filters          model.FilterSet
	RequestTimeout   time.Duration
	Debounce         time.Duration
	SearchPageSize   int
	BuildingPageSize int
	ScrollThreshold  int
	Width            int
	Height           int
	AutoSearch       bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// DefaultScrollThreshold is how many rows from the end of a list the next
// page is requested.
const DefaultScrollThreshold = 5

func defaultConfig() Config {
	return Config{
		Theme:            themes.Default,
		Now:              time.Now,
		Filters:          model.DefaultFilterSet(),
		RequestTimeout:   30 * time.Second,
		Debounce:         pager.DefaultDebounce,
		SearchPageSize:   model.SearchPageSize,
		BuildingPageSize: model.BuildingPageSize,
		ScrollThreshold:  DefaultScrollThreshold,
		Width:            120,
		Height:           30,
	}
}

// WithBackend sets the API backend.
func WithBackend(b Backend) Option {
	return func(c *Config) {
		c.Backend = b
	}
}

// WithHistory records each new search.
func WithHistory(h History) Option {
	return func(c *Config) {
		c.History = h
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithFilters pre-fills the filter form. With autoSearch the search starts
// immediately.
func WithFilters(f model.FilterSet, autoSearch bool) Option {
	return func(c *Config) {
		c.Filters = f.Clone()
		c.AutoSearch = autoSearch
	}
}

// WithPaging sets page sizes and the scroll threshold in rows. Zero values
// keep the defaults.
func WithPaging(searchPageSize, buildingPageSize, scrollThreshold int) Option {
	return func(c *Config) {
		if searchPageSize > 0 {
			c.SearchPageSize = searchPageSize
		}
		if buildingPageSize > 0 {
			c.BuildingPageSize = buildingPageSize
		}
		if scrollThreshold > 0 {
			c.ScrollThreshold = scrollThreshold
		}
	}
}

// WithDebounce sets the quiet period before a scroll position is evaluated.
func WithDebounce(d time.Duration) Option {
	return func(c *Config) {
		c.Debounce = d
	}
}

// WithRequestTimeout bounds each backend call.
func WithRequestTimeout(d time.Duration) Option {
	return func(c *Config) {
		if d > 0 {
			c.RequestTimeout = d
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Config) {
		c.Now = now
	}
}
