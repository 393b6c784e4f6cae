package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/Veraticus/leasetx/internal/format"
	"github.com/Veraticus/leasetx/internal/model"
	"github.com/Veraticus/leasetx/internal/storage"
	"github.com/Veraticus/leasetx/internal/tui/viewmodel"
)

// EmptyResultMessage is shown in place of an empty transaction table.
const EmptyResultMessage = "검색 조건에 맞는 데이터가 없습니다."

// TransactionHeaders are the result table columns.
var TransactionHeaders = []string{
	"구분", "시군구", "읍면동리", "지번", "건물명", "호", "층", "면적",
	"유형", "보증금", "월세", "계약일", "건축년도", "계약구분", "계약기간",
	"종전보증금", "종전월세", "갱신", "126%", "판정",
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(SubtleStyle).
		BorderColumn(false).
		BorderRow(false).
		BorderLeft(false).
		BorderRight(false).
		BorderTop(false).
		BorderBottom(false).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return TableHeaderStyle
			}
			return TableCellStyle
		})
}

// RenderTransactions renders records as a table, one row per record.
func RenderTransactions(rows []viewmodel.RecordView) string {
	if len(rows) == 0 {
		return SubtleStyle.Render(EmptyResultMessage)
	}

	t := newTable(TransactionHeaders...)
	for _, v := range rows {
		t.Row(
			PropertyBadge(v.PropertyType),
			v.Record.Sigungu,
			v.Record.Neighborhood,
			v.Record.Jibun,
			viewmodel.TruncateString(v.Name, 20),
			v.Unit,
			v.Floor,
			v.Area,
			ContractBadge(v.ContractType),
			v.Deposit,
			v.MonthlyRent,
			v.ContractDate,
			v.BuildYear,
			v.ContractKind,
			v.Period,
			v.PrevDeposit,
			v.PrevRent,
			v.RenewalUsed,
			v.Threshold,
			StyleRisk(v.Risk),
		)
	}
	return t.String()
}

// RenderOwners renders the owner panel: the distribution summary followed by
// one block per unit.
func RenderOwners(v viewmodel.OwnerPanelView) string {
	var b strings.Builder
	b.WriteString(FormatTitle(v.Title))
	b.WriteString("\n")

	if v.Distribution != nil {
		b.WriteString(InfoStyle.Render(v.Distribution.Text))
		b.WriteString("\n\n")
	}
	if v.IsEmpty() {
		b.WriteString(SubtleStyle.Render(v.Message))
		return b.String()
	}

	t := newTable("호실", "소유구분", "거주구분", "변동일", "변동원인", "보유기간", "공유인수")
	for _, unit := range v.Units {
		for i, o := range unit.Owners {
			key := unit.Key
			if i > 0 {
				key = ""
			}
			t.Row(key, o.Category, o.Residency, o.ChangeDate, o.Cause, o.Elapsed, o.CoOwners)
		}
	}
	b.WriteString(t.String())
	return b.String()
}

// RenderBuildings renders building search suggestions with a selection index.
func RenderBuildings(refs []model.BuildingRef) string {
	if len(refs) == 0 {
		return SubtleStyle.Render("일치하는 건물이 없습니다.")
	}
	t := newTable("#", "구분", "건물명", "주소", "시군구코드")
	for i, r := range refs {
		t.Row(strconv.Itoa(i+1), PropertyBadge(r.PropertyType), r.BuildingName, r.FullAddress, r.SggCode)
	}
	return t.String()
}

// RenderPresets renders saved filter presets.
func RenderPresets(presets []storage.Preset) string {
	if len(presets) == 0 {
		return SubtleStyle.Render("저장된 프리셋이 없습니다.")
	}
	t := newTable("이름", "조건", "사용", "수정")
	for _, p := range presets {
		t.Row(p.Name, FilterSummary(p.Filters), strconv.Itoa(p.UseCount), p.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}
	return t.String()
}

// RenderHistory renders recent searches, newest first.
func RenderHistory(entries []storage.HistoryEntry) string {
	if len(entries) == 0 {
		return SubtleStyle.Render("검색 기록이 없습니다.")
	}
	t := newTable("#", "시각", "조건", "결과")
	for _, e := range entries {
		t.Row(
			strconv.FormatInt(e.ID, 10),
			e.SearchedAt.Local().Format("2006-01-02 15:04"),
			FilterSummary(e.Filters),
			format.Thousands(int64(e.ResultCount))+"건",
		)
	}
	return t.String()
}

// FilterSummary describes a filter set on one line.
func FilterSummary(f model.FilterSet) string {
	var parts []string
	if loc := strings.TrimSpace(f.Sido + " " + strings.Join(f.Sigungu, ",")); loc != "" {
		parts = append(parts, loc)
	}
	if len(f.Umd) > 0 {
		parts = append(parts, strings.Join(f.Umd, ","))
	}
	if f.ContractEnd != "" {
		parts = append(parts, "만기 "+f.ContractEnd)
	}

	types := f.IncludedTypes()
	if len(types) > 0 && len(types) < len(model.PropertyTypes) {
		names := make([]string, len(types))
		for i, p := range types {
			names[i] = string(p)
		}
		parts = append(parts, strings.Join(names, "/"))
	}

	if r := rangeText(f.DepositMin, f.DepositMax); r != "" {
		parts = append(parts, "보증금 "+r)
	}
	if r := rangeText(f.RentMin, f.RentMax); r != "" {
		parts = append(parts, "월세 "+r)
	}
	return strings.Join(parts, " · ")
}

func rangeText(lo, hi *int64) string {
	switch {
	case lo == nil && hi == nil:
		return ""
	case hi == nil:
		return fmt.Sprintf("%s 이상", format.CurrencyAmountInt(*lo))
	case lo == nil:
		return fmt.Sprintf("%s 이하", format.CurrencyAmountInt(*hi))
	default:
		return fmt.Sprintf("%s~%s", format.CurrencyAmountInt(*lo), format.CurrencyAmountInt(*hi))
	}
}
