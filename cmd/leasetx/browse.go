package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Veraticus/leasetx/internal/model"
	"github.com/Veraticus/leasetx/internal/tui"
	"github.com/Veraticus/leasetx/internal/tui/themes"
)

func browseCmd() *cobra.Command {
	var (
		ff     filterFlags
		preset string
		theme  string
	)

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse lease transactions interactively",
		Long: `Open the interactive browser. Results load page by page as you scroll.

Press enter on a result to open the building's contract list, o for the
owners of record, f to toggle contracts still running and ? for help.
When the filters given on the command line are complete, the search starts
immediately.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg, err := currentConfig()
			if err != nil {
				return err
			}

			opts := []tui.Option{
				tui.WithPaging(cfg.Search.PageSize, cfg.Building.PageSize, cfg.TUI.ScrollThreshold),
				tui.WithDebounce(cfg.TUI.Debounce),
				tui.WithRequestTimeout(cfg.API.Timeout),
			}

			if theme == "" {
				theme = cfg.TUI.Theme
			}
			opts = append(opts, tui.WithTheme(themes.GetTheme(theme)))

			base := model.DefaultFilterSet()
			store, err := initStorage(ctx, cfg)
			switch {
			case err != nil && preset != "":
				return err
			case err != nil:
				slog.Warn("Search history disabled", "error", err)
			default:
				defer func() { _ = store.Close() }()
				opts = append(opts, tui.WithHistory(store))
				if preset != "" {
					p, err := store.GetPreset(ctx, preset)
					if err != nil {
						return fmt.Errorf("failed to load preset %q: %w", preset, err)
					}
					base = p.Filters
					if err := store.MarkPresetUsed(ctx, preset); err != nil {
						slog.Warn("Failed to mark preset used", "preset", preset, "error", err)
					}
				}
			}

			filters, err := ff.apply(cmd, base)
			if err != nil {
				return err
			}
			opts = append(opts, tui.WithFilters(filters, filters.Validate() == nil))

			client, closeClient := newClient(ctx, cfg)
			defer closeClient()
			opts = append(opts, tui.WithBackend(client))

			return tui.Run(ctx, opts...)
		},
	}

	ff.register(cmd)
	cmd.Flags().StringVar(&preset, "preset", "", "start from a saved preset")
	cmd.Flags().StringVar(&theme, "theme", "", "color theme (default, catppuccin-mocha)")

	return cmd
}
