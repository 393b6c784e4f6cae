package viewmodel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Veraticus/leasetx/internal/format"
	"github.com/Veraticus/leasetx/internal/model"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func officetelRecord() model.TransactionRecord {
	return model.TransactionRecord{
		PropertyType:      model.PropertyOfficetel,
		Sigungu:           "강남구",
		Neighborhood:      "역삼동",
		Jibun:             "123-4",
		BuildingName:      "역삼\n타워",
		Floor:             "12",
		Area:              "29.8",
		Deposit:           "25,000",
		MonthlyRent:       "0",
		ContractYearMonth: "202406",
		ContractDay:       "7",
		BuildYear:         "2015",
		ContractKind:      "신규",
		ContractPeriod:    "24.07~26.06",
		Unit:              "1201호",
		Units:             []string{"1201호", "1202호"},
		StandardThreshold: "300000000",
	}
}

func TestNewRecordView(t *testing.T) {
	v := NewRecordView(officetelRecord(), testNow)

	assert.Equal(t, format.ContractJeonse, v.ContractType)
	assert.Equal(t, "역삼 타워", v.Name)
	assert.Equal(t, "강남구 역삼동 123-4", v.Location)
	assert.Equal(t, "2억 5,000", v.Deposit)
	assert.Empty(t, v.MonthlyRent)
	assert.Equal(t, "2024.06.07", v.ContractDate)
	assert.Equal(t, "[2년] 24.07~26.06", v.Period)
	assert.Equal(t, "1201호+", v.Unit)
	assert.Equal(t, "1201호, 1202호", v.UnitTooltip)
	assert.Equal(t, "3억", v.Threshold)
	assert.Equal(t, format.RiskSafe, v.Risk)
	assert.Equal(t, "202606", v.ContractEnd)
	assert.True(t, v.IsFutureExpiry)
}

func TestNewRecordView_NoEnrichment(t *testing.T) {
	r := model.TransactionRecord{
		PropertyType:   model.PropertyVilla,
		ComplexName:    "한빛빌라",
		Deposit:        "5000",
		MonthlyRent:    "45",
		ContractPeriod: "-",
	}
	v := NewRecordView(r, testNow)

	assert.Equal(t, format.ContractWolse, v.ContractType)
	assert.Equal(t, "5,000", v.Deposit)
	assert.Equal(t, "45", v.MonthlyRent)
	assert.Equal(t, "-", v.Unit)
	assert.Empty(t, v.Threshold)
	assert.Equal(t, format.RiskUnknown, v.Risk)
	assert.Empty(t, v.Period)
	assert.False(t, v.IsFutureExpiry)
}

func TestNewRecordView_OverThreshold(t *testing.T) {
	r := officetelRecord()
	r.Deposit = "30000"
	assert.Equal(t, format.RiskOver, NewRecordView(r, testNow).Risk)
}

func TestNewRecordViews(t *testing.T) {
	views := NewRecordViews([]model.TransactionRecord{officetelRecord(), {ComplexName: "b"}}, testNow)
	assert.Len(t, views, 2)
	assert.Equal(t, "b", views[1].Name)
}

func TestContractDate(t *testing.T) {
	tests := []struct {
		name      string
		yearMonth string
		day       string
		want      string
	}{
		{name: "full", yearMonth: "202401", day: "15", want: "2024.01.15"},
		{name: "single digit day", yearMonth: "202401", day: "5", want: "2024.01.05"},
		{name: "no day", yearMonth: "202401", want: "2024.01"},
		{name: "malformed month", yearMonth: "2024", day: "5", want: "2024 5"},
		{name: "empty", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ContractDate(tt.yearMonth, tt.day))
		})
	}
}
