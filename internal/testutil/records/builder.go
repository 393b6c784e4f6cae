// Package records builds lease transaction records for tests.
//
// Example usage:
//
//	rec := records.Officetel("역삼타워").
//		Lot("11680", "역삼동", "123-4").
//		Deposit("10000").
//		Rent("50").
//		Period("25.01~27.01").
//		Build()
//
//	rows := records.Series(model.PropertyOfficetel, 20, 0)
package records

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/Veraticus/leasetx/internal/model"
)

// Default lot used by builders.
const (
	DefaultSggCode = "11680"
	DefaultSigungu = "강남구"
	DefaultUmd     = "역삼동"
	DefaultSido    = "서울특별시"
)

// Builder assembles a single TransactionRecord.
type Builder struct {
	r model.TransactionRecord
}

// New starts a record of the given type on the default lot: a jeonse of
// 1억 with no contract period.
func New(p model.PropertyType, name string) *Builder {
	return &Builder{r: model.TransactionRecord{
		PropertyType: p,
		Sido:         DefaultSido,
		Sigungu:      DefaultSigungu,
		SigunguCode:  DefaultSggCode,
		Neighborhood: DefaultUmd,
		Jibun:        "1",
		BuildingName: name,
		Deposit:      "10000",
		MonthlyRent:  "0",
	}}
}

// Apartment starts an apartment record. Apartments carry a complex name.
func Apartment(name string) *Builder {
	b := New(model.PropertyApartment, "")
	b.r.ComplexName = name
	return b
}

// Officetel starts an officetel record.
func Officetel(name string) *Builder { return New(model.PropertyOfficetel, name) }

// Villa starts a row-house record.
func Villa(name string) *Builder { return New(model.PropertyVilla, name) }

// Lot places the record on a lot.
func (b *Builder) Lot(sggCode, umd, jibun string) *Builder {
	b.r.SigunguCode = sggCode
	b.r.Neighborhood = umd
	b.r.Jibun = jibun
	return b
}

// Deposit sets the deposit in 만원.
func (b *Builder) Deposit(manWon string) *Builder {
	b.r.Deposit = model.Text(manWon)
	return b
}

// Rent sets the monthly rent in 만원. "0" makes the record a jeonse.
func (b *Builder) Rent(manWon string) *Builder {
	b.r.MonthlyRent = model.Text(manWon)
	return b
}

// Period sets the contract period, e.g. "25.01~27.01".
func (b *Builder) Period(period string) *Builder {
	b.r.ContractPeriod = period
	return b
}

// Contracted sets the contract date.
func (b *Builder) Contracted(yearMonth, day string) *Builder {
	b.r.ContractYearMonth = model.Text(yearMonth)
	b.r.ContractDay = model.Text(day)
	return b
}

// Unit sets floor and area.
func (b *Builder) Unit(floor, area string) *Builder {
	b.r.Floor = model.Text(floor)
	b.r.Area = model.Text(area)
	return b
}

// Units sets the resolved unit designations.
func (b *Builder) Units(unit string, all ...string) *Builder {
	b.r.Unit = unit
	b.r.Units = all
	return b
}

// Threshold sets the 126% joint-housing price in won.
func (b *Builder) Threshold(won string) *Builder {
	b.r.JointHousingThreshold = model.Text(won)
	return b
}

// Build returns the record.
func (b *Builder) Build() model.TransactionRecord {
	out := b.r
	out.Units = append([]string(nil), b.r.Units...)
	return out
}

// Series returns n records of type p on distinct lots numbered from
// offset+1, each named after its lot number.
func Series(p model.PropertyType, n, offset int) []model.TransactionRecord {
	rows := make([]model.TransactionRecord, n)
	for i := range rows {
		num := offset + i + 1
		rows[i] = New(p, fmt.Sprintf("빌딩%d", num)).
			Lot(DefaultSggCode, DefaultUmd, fmt.Sprintf("%d", num)).
			Rent("50").
			Period("25.01~27.01").
			Build()
	}
	return rows
}

// PageJSON renders rows as a search response body.
func PageJSON(t *testing.T, rows []model.TransactionRecord, hasMore bool) string {
	t.Helper()
	data, err := json.Marshal(map[string]any{
		"success":  true,
		"count":    len(rows),
		"has_more": hasMore,
		"data":     rows,
	})
	if err != nil {
		t.Fatalf("failed to encode page: %v", err)
	}
	return string(data)
}
