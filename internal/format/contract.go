package format

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ContractType distinguishes deposit-only leases from monthly-rent leases.
type ContractType string

// Contract types.
const (
	ContractJeonse ContractType = "전세"
	ContractWolse  ContractType = "월세"
)

// ClassifyContractType returns 전세 when the monthly rent is zero, empty or
// unparseable and 월세 otherwise.
func ClassifyContractType(monthlyRent string) ContractType {
	n, ok := parseAmount(monthlyRent)
	if !ok || n == 0 {
		return ContractJeonse
	}
	return ContractWolse
}

// YearMonth is a calendar month.
type YearMonth struct {
	Year  int
	Month int
}

// String renders the month as YYYYMM.
func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d%02d", ym.Year, ym.Month)
}

// MonthsUntil returns the signed number of months from ym to other.
func (ym YearMonth) MonthsUntil(other YearMonth) int {
	return (other.Year-ym.Year)*12 + (other.Month - ym.Month)
}

// Period is a parsed "start~end" contract term.
type Period struct {
	Raw    string
	Label  string
	Start  YearMonth
	End    YearMonth
	Months int
}

// ParseContractPeriod parses a contract term written as "YYYYMM~YYYYMM"
// (detached houses) or "YY.MM~YY.MM" (everything else).
func ParseContractPeriod(period string) (Period, bool) {
	parts := strings.Split(period, "~")
	if len(parts) != 2 {
		return Period{}, false
	}

	start, ok := parseYearMonthToken(parts[0])
	if !ok {
		return Period{}, false
	}
	end, ok := parseYearMonthToken(parts[1])
	if !ok {
		return Period{}, false
	}

	months := start.MonthsUntil(end)
	return Period{
		Raw:    period,
		Start:  start,
		End:    end,
		Months: months,
		Label:  PeriodLabel(months),
	}, true
}

// PeriodLabel names a contract length: 11-12 months is 1년, 23-24 months is
// 2년, anything else is a month count.
func PeriodLabel(months int) string {
	switch {
	case months >= 11 && months <= 12:
		return "1년"
	case months >= 23 && months <= 24:
		return "2년"
	default:
		return fmt.Sprintf("%d개월", months)
	}
}

// ContractPeriodBadge prefixes the contract term with its length badge,
// e.g. "[2년] 23.01~25.01". Empty and "-" render as ""; anything that does
// not parse comes back untouched.
func ContractPeriodBadge(period string) string {
	trimmed := strings.TrimSpace(period)
	if trimmed == "" || trimmed == "-" {
		return ""
	}

	p, ok := ParseContractPeriod(period)
	if !ok {
		return period
	}
	return Badge(p.Label) + " " + period
}

// Badge renders a short label as a bracketed badge.
func Badge(label string) string {
	return "[" + label + "]"
}

// ContractEndYearMonth extracts the end of a contract term as YYYYMM.
func ContractEndYearMonth(period string) (string, bool) {
	parts := strings.Split(period, "~")
	if len(parts) != 2 {
		return "", false
	}
	end, ok := parseYearMonthToken(parts[1])
	if !ok {
		return "", false
	}
	return end.String(), true
}

// CurrentYearMonth returns now as YYYYMM.
func CurrentYearMonth(now time.Time) string {
	return now.Format("200601")
}

// parseYearMonthToken accepts "YYYYMM" or "YY.MM" (20xx assumed).
func parseYearMonthToken(token string) (YearMonth, bool) {
	token = strings.TrimSpace(token)

	if strings.Contains(token, ".") {
		yy, mm, found := strings.Cut(token, ".")
		if !found || len(yy) != 2 || len(mm) == 0 || len(mm) > 2 {
			return YearMonth{}, false
		}
		year, err := strconv.Atoi("20" + yy)
		if err != nil {
			return YearMonth{}, false
		}
		month, err := strconv.Atoi(mm)
		if err != nil || !validMonth(month) {
			return YearMonth{}, false
		}
		return YearMonth{Year: year, Month: month}, true
	}

	if len(token) != 6 || !allDigits(token) {
		return YearMonth{}, false
	}
	year, _ := strconv.Atoi(token[:4])
	month, _ := strconv.Atoi(token[4:])
	if !validMonth(month) {
		return YearMonth{}, false
	}
	return YearMonth{Year: year, Month: month}, true
}

func validMonth(m int) bool {
	return m >= 1 && m <= 12
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// MonthOption is one choice in the contract-expiry picker.
type MonthOption struct {
	Value string
	Label string
}

// ContractEndOptions lists n months starting at the month of now, as YYYYMM
// values with "YYYY년 M월" labels.
func ContractEndOptions(now time.Time, n int) []MonthOption {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	opts := make([]MonthOption, 0, n)
	for i := 0; i < n; i++ {
		m := first.AddDate(0, i, 0)
		opts = append(opts, MonthOption{
			Value: m.Format("200601"),
			Label: fmt.Sprintf("%d년 %d월", m.Year(), int(m.Month())),
		})
	}
	return opts
}
