package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/leasetx/internal/cli"
	"github.com/Veraticus/leasetx/internal/format"
	"github.com/Veraticus/leasetx/internal/model"
	"github.com/Veraticus/leasetx/internal/pager"
	"github.com/Veraticus/leasetx/internal/tui/viewmodel"
)

func buildingCmd() *cobra.Command {
	var (
		lot        lotFlags
		name       string
		propType   string
		futureOnly bool
		all        bool
		jsonOut    bool
	)

	cmd := &cobra.Command{
		Use:   "building",
		Short: "Show every recorded lease contract of one building",
		Long: `Show the lease contracts recorded for a single building (필지).

With --future-only, contracts that ended before the current month are hidden
and the rest are ordered by contract end, soonest first.`,
		Example: `  leasetx building --sgg-code 11680 --umd 대치동 --jibun 123-4 --name 래미안 --type apt
  leasetx building --sgg-code 11680 --umd 대치동 --jibun 123-4 --future-only --all`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg, err := currentConfig()
			if err != nil {
				return err
			}

			q := model.BuildingQuery{
				BuildingName: name,
				SigunguCode:  lot.sggCode,
				UmdName:      lot.umd,
				Jibun:        lot.jibun,
			}
			if propType != "" {
				if q.PropertyType, err = parsePropertyType(propType); err != nil {
					return err
				}
			}

			b := pager.NewBuilding(pager.Config{PageSize: cfg.Building.PageSize})
			b.SetFutureOnly(futureOnly)
			req, err := b.Open(q)
			if err != nil {
				return err
			}

			client, closeClient := newClient(ctx, cfg)
			defer closeClient()

			limit := 1
			if all {
				limit = 0
			}
			err = collectPages(ctx, b, req, client.BuildingTransactions, limit, nil)
			partial := errors.Is(err, errPartial)
			if err != nil && !partial {
				return err
			}

			now := time.Now()
			rows := b.Visible(now)
			out := cmd.OutOrStdout()
			if jsonOut {
				return writeJSON(out, rows)
			}

			scope := "전체 계약"
			if futureOnly {
				scope = "만기 도래 예정 계약만"
			}
			fmt.Fprintln(out, cli.FormatTitle(cli.BuildingIcon+" "+q.Title()))
			fmt.Fprintf(out, "%s · 표시 %s건 / 수신 %s건\n",
				scope, format.Thousands(int64(len(rows))), format.Thousands(int64(b.Total())))
			if len(rows) > 0 {
				fmt.Fprintln(out, cli.RenderTransactions(viewmodel.NewRecordViews(rows, now)))
			}
			switch {
			case partial:
				fmt.Fprintln(out, cli.FormatWarning("일부 페이지만 조회되었습니다."))
			case b.HasMore():
				fmt.Fprintln(out, cli.FormatInfo("더 많은 계약이 있습니다. --all 로 전체를 조회하세요."))
			}
			return nil
		},
	}

	lot.register(cmd)
	cmd.Flags().StringVar(&name, "name", "", "building name")
	cmd.Flags().StringVar(&propType, "type", "", "property type: apt, villa, house, officetel")
	cmd.Flags().BoolVar(&futureOnly, "future-only", false, "only contracts ending this month or later")
	cmd.Flags().BoolVar(&all, "all", false, "load every page")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "print raw records as JSON")

	return cmd
}

func ownersCmd() *cobra.Command {
	var (
		lot     lotFlags
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "owners",
		Short: "Show the owners of record for a lot, grouped by unit",
		Example: `  leasetx owners --sgg-code 11680 --umd 대치동 --jibun 123-4`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg, err := currentConfig()
			if err != nil {
				return err
			}

			q := model.OwnerQuery{SggCode: lot.sggCode, UmdName: lot.umd, Jibun: lot.jibun}
			if err := q.Validate(); err != nil {
				return err
			}

			client, closeClient := newClient(ctx, cfg)
			defer closeClient()

			info, err := client.OwnerInfo(ctx, q)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOut {
				return writeJSON(out, info)
			}

			title := cli.KeyIcon + " " + q.UmdName + " " + q.Jibun + " 소유자 정보"
			fmt.Fprintln(out, cli.RenderOwners(viewmodel.NewOwnerPanelView(title, &info.Data, info.Message, time.Now())))
			return nil
		},
	}

	lot.register(cmd)
	cmd.Flags().BoolVar(&jsonOut, "json", false, "print the raw listing as JSON")

	return cmd
}

func unitCmd() *cobra.Command {
	var (
		lot   lotFlags
		floor string
		area  string
	)

	cmd := &cobra.Command{
		Use:     "unit",
		Short:   "Resolve the unit designation (호) for a floor and area",
		Example: `  leasetx unit --sgg-code 11680 --umd 대치동 --jibun 123-4 --floor 12 --area 84.97`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg, err := currentConfig()
			if err != nil {
				return err
			}

			q := model.UnitQuery{SggCode: lot.sggCode, UmdName: lot.umd, Jibun: lot.jibun, Floor: floor, Area: area}
			if err := q.Validate(); err != nil {
				return err
			}

			client, closeClient := newClient(ctx, cfg)
			defer closeClient()

			info, err := client.UnitInfo(ctx, q)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if info.Unit == "" {
				fmt.Fprintln(out, cli.FormatInfo("호수 정보를 찾을 수 없습니다."))
				return nil
			}
			fmt.Fprintf(out, "%s %s\n", cli.BoldStyle.Render(format.UnitLabel(info)), cli.SubtleStyle.Render(format.UnitTooltip(info)))
			return nil
		},
	}

	lot.register(cmd)
	cmd.Flags().StringVar(&floor, "floor", "", "floor (층)")
	cmd.Flags().StringVar(&area, "area", "", "exclusive area in ㎡")

	return cmd
}
