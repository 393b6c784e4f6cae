package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/Veraticus/leasetx/internal/cli"
	"github.com/Veraticus/leasetx/internal/format"
	"github.com/Veraticus/leasetx/internal/model"
	"github.com/Veraticus/leasetx/internal/pager"
	"github.com/Veraticus/leasetx/internal/tui/viewmodel"
)

func searchCmd() *cobra.Command {
	var (
		ff         filterFlags
		preset     string
		savePreset string
		all        bool
		maxPages   int
		pageSize   int
		jsonOut    bool
		noHistory  bool
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search lease transactions by district and contract expiry",
		Long: `Search lease transactions (전월세 실거래) whose contract ends in the given month.

At least one district (--sigungu) and the contract expiry month (--contract-end)
are required, either as flags or through a saved preset. Flags given together
with --preset override the preset's values.`,
		Example: `  leasetx search --sido 서울특별시 --sigungu 강남구,서초구 --contract-end 202512
  leasetx search --preset gangnam --deposit-max 50000 --all`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg, err := currentConfig()
			if err != nil {
				return err
			}

			store, err := initStorage(ctx, cfg)
			if err != nil {
				if preset != "" || savePreset != "" {
					return err
				}
				slog.Warn("Search history disabled", "error", err)
			} else {
				defer func() { _ = store.Close() }()
			}

			base := model.DefaultFilterSet()
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

			filters, err := ff.apply(cmd, base)
			if err != nil {
				return err
			}

			if pageSize <= 0 {
				pageSize = cfg.Search.PageSize
			}
			p := pager.New(pager.Config{PageSize: pageSize})
			req, err := p.Submit(filters)
			if err != nil {
				return err
			}

			client, closeClient := newClient(ctx, cfg)
			defer closeClient()

			limit := 1
			var bar *progressbar.ProgressBar
			if all {
				limit = maxPages
				if !jsonOut {
					bar = newProgressBar(cmd.ErrOrStderr(), "[cyan]거래 내역 조회 중...[reset]")
				}
			}

			interrupt := cli.NewInterruptHandler(cmd.ErrOrStderr())
			runCtx := interrupt.HandleInterrupts(ctx, "지금까지 받은 결과를 표시합니다.")
			err = collectPages(runCtx, p, req, client.Search, limit, func(n int) {
				if bar != nil {
					_ = bar.Add(n)
				}
			})
			interrupt.Stop()
			if bar != nil {
				_ = bar.Finish()
			}

			partial := errors.Is(err, errPartial) || (interrupt.WasInterrupted() && p.Total() > 0)
			if err != nil && !partial {
				return err
			}

			if store != nil && !noHistory {
				if err := store.RecordSearch(ctx, filters, p.Total()); err != nil {
					slog.Warn("Failed to record search history", "error", err)
				}
			}
			if savePreset != "" {
				if err := store.SavePreset(ctx, savePreset, filters); err != nil {
					return fmt.Errorf("failed to save preset: %w", err)
				}
				fmt.Fprintln(cmd.ErrOrStderr(), cli.FormatSuccess(fmt.Sprintf("프리셋 '%s' 저장됨", savePreset)))
			}

			out := cmd.OutOrStdout()
			if jsonOut {
				return writeJSON(out, p.Rows())
			}

			fmt.Fprintln(out, cli.FormatTitle(cli.FilterSummary(filters)))
			fmt.Fprintln(out, format.ResultCount(p.Total(), false))
			if p.Total() > 0 {
				fmt.Fprintln(out, cli.RenderTransactions(viewmodel.NewRecordViews(p.Rows(), time.Now())))
			}
			switch {
			case partial:
				fmt.Fprintln(out, cli.FormatWarning("일부 페이지만 조회되었습니다."))
			case p.HasMore():
				fmt.Fprintln(out, cli.FormatInfo("더 많은 결과가 있습니다. --all 로 전체를 조회하세요."))
			}
			return nil
		},
	}

	ff.register(cmd)
	cmd.Flags().StringVar(&preset, "preset", "", "start from a saved preset")
	cmd.Flags().StringVar(&savePreset, "save-preset", "", "save the effective filters under this name")
	cmd.Flags().BoolVar(&all, "all", false, "keep loading pages until the backend has no more")
	cmd.Flags().IntVar(&maxPages, "max-pages", 0, "with --all, stop after this many pages (0 = no limit)")
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "rows per page (default from config)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "print raw records as JSON")
	cmd.Flags().BoolVar(&noHistory, "no-history", false, "do not record this search in history")

	return cmd
}

func newProgressBar(w io.Writer, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(w)
		}),
	)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
