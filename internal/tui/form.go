package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/leasetx/internal/common"
	"github.com/Veraticus/leasetx/internal/format"
	"github.com/Veraticus/leasetx/internal/model"
	"github.com/Veraticus/leasetx/internal/tui/themes"
)

// contractEndMonths is how many expiry months the form offers.
const contractEndMonths = 24

type field int

const (
	fieldSido field = iota
	fieldSigungu
	fieldUmd
	fieldContractEnd
	fieldDepositMin
	fieldDepositMax
	fieldRentMax
	fieldTypes
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"시도", "시군구", "읍면동", "계약만기", "보증금 최소(만원)", "보증금 최대(만원)", "월세 최대(만원)", "유형",
}

var fieldPlaceholders = [fieldCount]string{
	"서울특별시", "강남구,서초구", "비우면 전체", "Ctrl+N/P 로 선택", "", "", "", "아파트,오피스텔 (비우면 전체)",
}

// filterForm edits a FilterSet. Fields the form does not show are carried
// over from the set it was built from.
type filterForm struct {
	base   model.FilterSet
	inputs []textinput.Model
	months []format.MonthOption
	focus  field
}

func newFilterForm(f model.FilterSet, now time.Time) filterForm {
	form := filterForm{
		base:   f.Clone(),
		inputs: make([]textinput.Model, fieldCount),
		months: format.ContractEndOptions(now, contractEndMonths),
	}
	for i := range form.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = fieldPlaceholders[i]
		ti.CharLimit = 120
		form.inputs[i] = ti
	}

	form.inputs[fieldSido].SetValue(f.Sido)
	form.inputs[fieldSigungu].SetValue(strings.Join(f.Sigungu, ","))
	form.inputs[fieldUmd].SetValue(strings.Join(f.Umd, ","))
	form.inputs[fieldContractEnd].SetValue(f.ContractEnd)
	form.inputs[fieldDepositMin].SetValue(boundText(f.DepositMin))
	form.inputs[fieldDepositMax].SetValue(boundText(f.DepositMax))
	form.inputs[fieldRentMax].SetValue(boundText(f.RentMax))
	if types := f.IncludedTypes(); len(types) < len(model.PropertyTypes) {
		names := make([]string, len(types))
		for i, p := range types {
			names[i] = string(p)
		}
		form.inputs[fieldTypes].SetValue(strings.Join(names, ","))
	}

	form.inputs[fieldSido].Focus()
	return form
}

// Filters builds the filter set from the form. Only number and type parsing
// is checked here; required selections are checked on submit.
func (f filterForm) Filters() (model.FilterSet, error) {
	out := f.base.Clone()
	out.Sido = strings.TrimSpace(f.value(fieldSido))
	out.Sigungu = splitList(f.value(fieldSigungu))
	out.Umd = splitList(f.value(fieldUmd))
	out.ContractEnd = strings.TrimSpace(f.value(fieldContractEnd))

	var err error
	if out.DepositMin, err = parseBound(f.value(fieldDepositMin), fieldLabels[fieldDepositMin]); err != nil {
		return model.FilterSet{}, err
	}
	if out.DepositMax, err = parseBound(f.value(fieldDepositMax), fieldLabels[fieldDepositMax]); err != nil {
		return model.FilterSet{}, err
	}
	if out.RentMax, err = parseBound(f.value(fieldRentMax), fieldLabels[fieldRentMax]); err != nil {
		return model.FilterSet{}, err
	}

	types := splitList(f.value(fieldTypes))
	out.IncludeApartment = len(types) == 0
	out.IncludeVilla = len(types) == 0
	out.IncludeHouse = len(types) == 0
	out.IncludeOfficetel = len(types) == 0
	for _, name := range types {
		switch model.PropertyType(name) {
		case model.PropertyApartment:
			out.IncludeApartment = true
		case model.PropertyVilla:
			out.IncludeVilla = true
		case model.PropertyHouse:
			out.IncludeHouse = true
		case model.PropertyOfficetel:
			out.IncludeOfficetel = true
		default:
			return model.FilterSet{}, common.NewUserError(fmt.Sprintf("알 수 없는 유형입니다: %s", name), common.ErrValidation)
		}
	}
	return out, nil
}

func (f filterForm) value(i field) string {
	return f.inputs[i].Value()
}

// move shifts focus by delta fields, wrapping around.
func (f *filterForm) move(delta int) tea.Cmd {
	f.inputs[f.focus].Blur()
	f.focus = field((int(f.focus) + delta + int(fieldCount)) % int(fieldCount))
	return f.inputs[f.focus].Focus()
}

// cycleMonth steps the contract expiry through the offered months.
func (f *filterForm) cycleMonth(delta int) {
	if len(f.months) == 0 {
		return
	}
	current := strings.TrimSpace(f.value(fieldContractEnd))
	idx := -1
	for i, m := range f.months {
		if m.Value == current {
			idx = i
			break
		}
	}
	switch {
	case idx < 0 && delta < 0:
		idx = len(f.months) - 1
	case idx < 0:
		idx = 0
	default:
		idx = (idx + delta + len(f.months)) % len(f.months)
	}
	f.inputs[fieldContractEnd].SetValue(f.months[idx].Value)
	f.inputs[fieldContractEnd].CursorEnd()
}

// monthLabel describes the selected expiry month.
func (f filterForm) monthLabel() string {
	current := strings.TrimSpace(f.value(fieldContractEnd))
	for _, m := range f.months {
		if m.Value == current {
			return m.Label
		}
	}
	return ""
}

func (f filterForm) Update(msg tea.Msg) (filterForm, tea.Cmd) {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

func (f filterForm) View(theme themes.Theme) string {
	lines := make([]string, 0, fieldCount+2)
	lines = append(lines, theme.Title.Render("검색 조건"), "")
	for i := range f.inputs {
		label := theme.Label
		if field(i) == f.focus {
			label = theme.FocusedLabel
		}
		line := label.Width(20).Render(fieldLabels[i]) + f.inputs[i].View()
		if field(i) == fieldContractEnd {
			if name := f.monthLabel(); name != "" {
				line += "  " + theme.Muted.Render(name)
			}
		}
		lines = append(lines, line)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseBound(s, label string) (*int64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 {
		return nil, common.NewUserError(label+" 값은 0 이상의 숫자여야 합니다", common.ErrValidation)
	}
	return &n, nil
}

func boundText(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}
