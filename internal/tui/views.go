package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/leasetx/internal/cli"
	"github.com/Veraticus/leasetx/internal/format"
	"github.com/Veraticus/leasetx/internal/pager"
	"github.com/Veraticus/leasetx/internal/tui/themes"
	"github.com/Veraticus/leasetx/internal/tui/viewmodel"
)

var resultColumns = []table.Column{
	{Title: "구분", Width: 12},
	{Title: "시군구", Width: 8},
	{Title: "읍면동", Width: 8},
	{Title: "지번", Width: 8},
	{Title: "건물명", Width: 18},
	{Title: "층", Width: 4},
	{Title: "면적", Width: 7},
	{Title: "유형", Width: 6},
	{Title: "보증금", Width: 12},
	{Title: "월세", Width: 7},
	{Title: "계약일", Width: 10},
	{Title: "계약기간", Width: 20},
	{Title: "호", Width: 8},
	{Title: "판정", Width: 4},
}

var buildingColumns = []table.Column{
	{Title: "계약일", Width: 10},
	{Title: "층", Width: 4},
	{Title: "면적", Width: 7},
	{Title: "호", Width: 8},
	{Title: "유형", Width: 6},
	{Title: "보증금", Width: 12},
	{Title: "월세", Width: 7},
	{Title: "계약기간", Width: 20},
	{Title: "계약구분", Width: 8},
	{Title: "갱신", Width: 4},
	{Title: "판정", Width: 4},
}

func newTable(columns []table.Column, theme themes.Theme) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(20),
	)

	s := table.DefaultStyles()
	s.Header = theme.Header
	s.Selected = theme.Selected
	t.SetStyles(s)
	return t
}

func resultRows(views []viewmodel.RecordView) []table.Row {
	rows := make([]table.Row, len(views))
	for i, v := range views {
		rows[i] = table.Row{
			format.Badge(string(v.PropertyType)),
			v.Record.Sigungu,
			v.Record.Neighborhood,
			v.Record.Jibun,
			v.Name,
			v.Floor,
			v.Area,
			format.Badge(string(v.ContractType)),
			v.Deposit,
			v.MonthlyRent,
			v.ContractDate,
			v.Period,
			v.Unit,
			v.Risk.String(),
		}
	}
	return rows
}

func buildingRows(views []viewmodel.RecordView) []table.Row {
	rows := make([]table.Row, len(views))
	for i, v := range views {
		rows[i] = table.Row{
			v.ContractDate,
			v.Floor,
			v.Area,
			v.Unit,
			format.Badge(string(v.ContractType)),
			v.Deposit,
			v.MonthlyRent,
			v.Period,
			v.ContractKind,
			v.RenewalUsed,
			v.Risk.String(),
		}
	}
	return rows
}

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	switch m.state {
	case StateForm:
		body = m.form.View(m.theme)
	case StateResults:
		body = m.renderResults()
	case StateBuilding:
		body = m.renderBuilding()
	case StateOwners:
		body = m.renderOwners()
	case StateHelp:
		body = m.help.FullHelpView(m.keymap.FullHelp())
	}

	parts := []string{m.theme.Title.Render(cli.BuildingIcon + " 전월세 실거래가 조회"), body}
	if m.err != "" {
		parts = append(parts, m.theme.StatusError.Render(cli.ErrorIcon+" "+m.err))
	}
	parts = append(parts, m.help.View(m.keymap))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderStatus(state pager.State, total int, hasMore bool) string {
	status := viewmodel.NewStatusView(state, total, hasMore, "")
	if status.Loading {
		return m.theme.StatusPending.Render(status.ResultLine)
	}
	return m.theme.StatusInfo.Render(status.ResultLine)
}

func (m Model) renderResults() string {
	lines := []string{}
	if f, ok := m.search.Filters(); ok {
		lines = append(lines, m.theme.Subtitle.Render(cli.FilterSummary(f)))
	}
	lines = append(lines, m.renderStatus(m.search.State(), m.search.Total(), m.search.HasMore()))

	if len(m.resultViews) == 0 && !m.search.Loading() {
		lines = append(lines, "", m.theme.Muted.Render(cli.EmptyResultMessage))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	lines = append(lines, m.results.View())
	if i := m.results.Cursor(); i >= 0 && i < len(m.resultViews) {
		lines = append(lines, m.renderDetail(m.resultViews[i]))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// renderDetail shows what the table has no room for.
func (m Model) renderDetail(v viewmodel.RecordView) string {
	parts := []string{m.theme.Property(v.PropertyType) + " " + v.Name}
	if v.UnitTooltip != "" {
		parts = append(parts, "호: "+v.UnitTooltip)
	}
	if v.Threshold != "" {
		parts = append(parts, "126%: "+v.Threshold+" "+m.theme.Risk(v.Risk))
	}
	if v.PrevDeposit != "" || v.PrevRent != "" {
		parts = append(parts, fmt.Sprintf("종전 %s/%s", dashIfEmpty(v.PrevDeposit), dashIfEmpty(v.PrevRent)))
	}
	return m.theme.Muted.Render(strings.Join(parts, " · "))
}

func (m Model) renderBuilding() string {
	q, _ := m.building.Query()

	mode := "전체 계약"
	if m.building.FutureOnly() {
		mode = "만기 도래 예정 계약만"
	}

	lines := []string{
		m.theme.Title.Render(q.Title()),
		m.theme.Subtitle.Render(fmt.Sprintf("%s · 표시 %s건 / 수신 %s건", mode,
			format.Thousands(int64(len(m.buildingViews))), format.Thousands(int64(m.building.Total())))),
		m.renderStatus(m.building.State(), m.building.Total(), m.building.HasMore()),
	}
	if len(m.buildingViews) == 0 && !m.building.Loading() {
		lines = append(lines, m.theme.Muted.Render(cli.EmptyResultMessage))
	} else {
		lines = append(lines, m.buildingTable.View())
	}
	return m.theme.Modal.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m Model) renderOwners() string {
	if m.owners == nil {
		return m.theme.Modal.Render(m.theme.StatusPending.Render("소유자 정보를 불러오는 중..."))
	}
	return m.theme.Modal.Render(cli.RenderOwners(*m.owners))
}

func dashIfEmpty(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
