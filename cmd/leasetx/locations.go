package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/leasetx/internal/cli"
	"github.com/Veraticus/leasetx/internal/format"
)

// contractEndMonths is how many expiry months the picker offers.
const contractEndMonths = 24

func locationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "locations",
		Short: "List provinces, districts, neighborhoods and expiry months",
		Long: `Browse the location hierarchy used by search filters.

Location lists are cached locally (and in redis when cache.redis_addr is set).`,
	}

	cmd.AddCommand(sidoCmd())
	cmd.AddCommand(sigunguCmd())
	cmd.AddCommand(umdCmd())
	cmd.AddCommand(monthsCmd())

	return cmd
}

func sidoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sido",
		Short: "List provinces (시도)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg, err := currentConfig()
			if err != nil {
				return err
			}
			client, closeClient := newClient(ctx, cfg)
			defer closeClient()

			sidos, err := client.Sidos(ctx)
			if err != nil {
				return err
			}
			printList(cmd, sidos)
			return nil
		},
	}
}

func sigunguCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sigungu <sido>",
		Short: "List the districts (시군구) of a province",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := currentConfig()
			if err != nil {
				return err
			}
			client, closeClient := newClient(ctx, cfg)
			defer closeClient()

			sigungus, err := client.Sigungus(ctx, args[0])
			if err != nil {
				return err
			}
			printList(cmd, sigungus)
			return nil
		},
	}
}

func umdCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "umd <sido> <sigungu>...",
		Short: "List the neighborhoods (읍면동) of one or more districts",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := currentConfig()
			if err != nil {
				return err
			}
			client, closeClient := newClient(ctx, cfg)
			defer closeClient()

			sigungus := args[1:]
			umds, err := client.Umds(ctx, args[0], sigungus)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, sg := range sigungus {
				fmt.Fprintln(out, cli.BoldStyle.Render(sg))
				names := umds[sg]
				if len(names) == 0 {
					fmt.Fprintln(out, "  "+cli.SubtleStyle.Render("-"))
					continue
				}
				fmt.Fprintln(out, "  "+strings.Join(names, ", "))
			}
			return nil
		},
	}
}

func monthsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "months",
		Short: "List the contract-expiry months offered by the picker",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			for _, opt := range format.ContractEndOptions(time.Now(), contractEndMonths) {
				fmt.Fprintf(out, "%s  %s\n", opt.Value, cli.SubtleStyle.Render(opt.Label))
			}
		},
	}
}

func printList(cmd *cobra.Command, items []string) {
	out := cmd.OutOrStdout()
	if len(items) == 0 {
		fmt.Fprintln(out, cli.FormatInfo("결과가 없습니다."))
		return
	}
	for _, item := range items {
		fmt.Fprintln(out, item)
	}
}

func findCmd() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:     "find <읍면동 지번>",
		Short:   "Find buildings by neighborhood and lot number",
		Example: `  leasetx find "대치동 123"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := currentConfig()
			if err != nil {
				return err
			}
			client, closeClient := newClient(ctx, cfg)
			defer closeClient()

			refs, err := client.SearchBuildings(ctx, strings.Join(args, " "))
			if err != nil {
				return err
			}

			if jsonOut {
				return writeJSON(cmd.OutOrStdout(), refs)
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.RenderBuildings(refs))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "print matches as JSON")
	return cmd
}
