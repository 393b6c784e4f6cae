// Package viewmodel builds display-ready values from backend records. Nothing
// here knows about the terminal; the CLI tables and the TUI both render from
// these views.
package viewmodel

import (
	"strings"
	"time"

	"github.com/Veraticus/leasetx/internal/format"
	"github.com/Veraticus/leasetx/internal/model"
)

// RecordView is one transaction row ready for display.
type RecordView struct {
	Record         model.TransactionRecord
	PropertyType   model.PropertyType
	ContractType   format.ContractType
	Name           string
	Location       string
	Floor          string
	Area           string
	Deposit        string
	MonthlyRent    string
	ContractDate   string
	BuildYear      string
	ContractKind   string
	Period         string
	PrevDeposit    string
	PrevRent       string
	RenewalUsed    string
	Unit           string
	UnitTooltip    string
	Threshold      string
	ContractEnd    string
	Risk           format.Risk
	IsFutureExpiry bool
}

// NewRecordView formats a record. now decides whether the contract ends in
// the future.
func NewRecordView(r model.TransactionRecord, now time.Time) RecordView {
	v := RecordView{
		Record:       r,
		PropertyType: r.PropertyType,
		ContractType: format.ClassifyContractType(r.MonthlyRent.String()),
		Name:         SanitizeForDisplay(r.Name()),
		Location:     joinNonEmpty(" ", r.Sigungu, r.Neighborhood, r.Jibun),
		Floor:        r.Floor.String(),
		Area:         r.Area.String(),
		Deposit:      format.CurrencyAmount(r.Deposit.String()),
		MonthlyRent:  format.CurrencyAmount(r.MonthlyRent.String()),
		ContractDate: ContractDate(r.ContractYearMonth.String(), r.ContractDay.String()),
		BuildYear:    r.BuildYear.String(),
		ContractKind: r.ContractKind,
		Period:       format.ContractPeriodBadge(r.ContractPeriod),
		PrevDeposit:  format.CurrencyAmount(r.PrevDeposit.String()),
		PrevRent:     format.CurrencyAmount(r.PrevMonthlyRent.String()),
		RenewalUsed:  r.RenewalRightUsed,
	}

	info := r.UnitInfo()
	v.Unit = format.UnitLabel(info)
	v.UnitTooltip = format.UnitTooltip(info)

	if threshold, ok := r.Threshold(); ok {
		v.Threshold = format.WonAsManWon(threshold)
		v.Risk = format.DepositRisk(r.Deposit.String(), threshold)
	}

	if end, ok := format.ContractEndYearMonth(r.ContractPeriod); ok {
		v.ContractEnd = end
		v.IsFutureExpiry = end >= format.CurrentYearMonth(now)
	}
	return v
}

// NewRecordViews formats a slice of records.
func NewRecordViews(records []model.TransactionRecord, now time.Time) []RecordView {
	out := make([]RecordView, len(records))
	for i, r := range records {
		out[i] = NewRecordView(r, now)
	}
	return out
}

// ContractDate joins a YYYYMM month and a day into YYYY.MM.DD. Partial input
// is returned as given.
func ContractDate(yearMonth, day string) string {
	yearMonth = strings.TrimSpace(yearMonth)
	day = strings.TrimSpace(day)
	if len(yearMonth) != 6 {
		return joinNonEmpty(" ", yearMonth, day)
	}
	out := yearMonth[:4] + "." + yearMonth[4:]
	if day == "" {
		return out
	}
	if len(day) == 1 {
		day = "0" + day
	}
	return out + "." + day
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
