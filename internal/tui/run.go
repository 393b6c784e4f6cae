package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// ErrNoBackend is returned by Run when no backend is configured.
var ErrNoBackend = errors.New("tui: backend is required")

// Run starts the browser and blocks until the user quits or ctx is canceled.
func Run(ctx context.Context, opts ...Option) error {
	m := New(opts...)
	if m.cfg.Backend == nil {
		return ErrNoBackend
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
