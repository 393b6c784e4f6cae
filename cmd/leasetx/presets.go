package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/leasetx/internal/cli"
	"github.com/Veraticus/leasetx/internal/model"
	"github.com/Veraticus/leasetx/internal/storage"
)

func presetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "Manage saved search filters",
		Long: `Save, list, show and delete named filter sets.

Use a preset with "leasetx search --preset <name>" or "leasetx browse --preset <name>".`,
	}

	cmd.AddCommand(savePresetCmd())
	cmd.AddCommand(listPresetsCmd())
	cmd.AddCommand(showPresetCmd())
	cmd.AddCommand(deletePresetCmd())

	return cmd
}

// withStore opens storage for the duration of fn.
func withStore(cmd *cobra.Command, fn func(ctx context.Context, store *storage.SQLiteStorage) error) error {
	ctx := cmd.Context()
	cfg, err := currentConfig()
	if err != nil {
		return err
	}
	store, err := initStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()
	return fn(ctx, store)
}

func savePresetCmd() *cobra.Command {
	var ff filterFlags

	cmd := &cobra.Command{
		Use:     "save <name>",
		Short:   "Save filters under a name",
		Example: `  leasetx presets save gangnam --sido 서울특별시 --sigungu 강남구 --contract-end 202512 --type apt`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filters, err := ff.apply(cmd, model.DefaultFilterSet())
			if err != nil {
				return err
			}
			if err := filters.Validate(); err != nil {
				return err
			}

			return withStore(cmd, func(ctx context.Context, store *storage.SQLiteStorage) error {
				if err := store.SavePreset(ctx, args[0], filters); err != nil {
					return fmt.Errorf("failed to save preset: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("프리셋 '%s' 저장됨: %s", args[0], cli.FilterSummary(filters))))
				return nil
			})
		},
	}

	ff.register(cmd)
	return cmd
}

func listPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved presets, most used first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStore(cmd, func(ctx context.Context, store *storage.SQLiteStorage) error {
				presets, err := store.ListPresets(ctx)
				if err != nil {
					return fmt.Errorf("failed to list presets: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), cli.RenderPresets(presets))
				return nil
			})
		},
	}
}

func showPresetCmd() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Show the filters of a preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(ctx context.Context, store *storage.SQLiteStorage) error {
				p, err := store.GetPreset(ctx, args[0])
				if err != nil {
					return fmt.Errorf("failed to load preset %q: %w", args[0], err)
				}
				if jsonOut {
					return writeJSON(cmd.OutOrStdout(), p.Filters)
				}
				body := fmt.Sprintf("%s\n\n사용 %d회 · 수정 %s",
					cli.FilterSummary(p.Filters), p.UseCount, p.UpdatedAt.Local().Format("2006-01-02 15:04"))
				fmt.Fprintln(cmd.OutOrStdout(), cli.RenderBox(p.Name, body))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "print the filter set as JSON")
	return cmd
}

func deletePresetCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(ctx context.Context, store *storage.SQLiteStorage) error {
				if !yes {
					ok, err := cli.Confirm(ctx, cli.NewNonBlockingReader(cmd.InOrStdin()), cmd.OutOrStdout(),
						fmt.Sprintf("프리셋 '%s'을(를) 삭제할까요?", args[0]))
					if err != nil {
						return err
					}
					if !ok {
						fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo("취소되었습니다."))
						return nil
					}
				}

				if err := store.DeletePreset(ctx, args[0]); err != nil {
					return fmt.Errorf("failed to delete preset %q: %w", args[0], err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("프리셋 '%s' 삭제됨", args[0])))
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show or clear recent searches",
	}

	var limit int
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List recent searches, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStore(cmd, func(ctx context.Context, store *storage.SQLiteStorage) error {
				entries, err := store.RecentSearches(ctx, limit)
				if err != nil {
					return fmt.Errorf("failed to read history: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), cli.RenderHistory(entries))
				return nil
			})
		},
	}
	listCmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of entries")

	var yes bool
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all search history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStore(cmd, func(ctx context.Context, store *storage.SQLiteStorage) error {
				if !yes {
					ok, err := cli.Confirm(ctx, cli.NewNonBlockingReader(cmd.InOrStdin()), cmd.OutOrStdout(), "검색 기록을 모두 삭제할까요?")
					if err != nil || !ok {
						return err
					}
				}
				n, err := store.ClearHistory(ctx)
				if err != nil {
					return fmt.Errorf("failed to clear history: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("검색 기록 %d건 삭제됨", n)))
				return nil
			})
		},
	}
	clearCmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")

	cmd.AddCommand(listCmd)
	cmd.AddCommand(clearCmd)
	return cmd
}
