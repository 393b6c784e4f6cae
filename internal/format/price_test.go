package format

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Veraticus/leasetx/internal/model"
)

func TestDepositRisk(t *testing.T) {
	tests := []struct {
		name      string
		deposit   string
		threshold int64
		want      Risk
	}{
		{"no threshold", "30000", 0, RiskUnknown},
		{"unparseable deposit", "", 300000000, RiskUnknown},
		{"below", "29999", 300000000, RiskSafe},
		{"equal counts as over", "30000", 300000000, RiskOver},
		{"above", "3,5000", 300000000, RiskOver},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DepositRisk(tt.deposit, tt.threshold))
		})
	}
}

func TestWonAsManWon(t *testing.T) {
	assert.Equal(t, "3억 1,500", WonAsManWon(315_009_999))
	assert.Equal(t, "", WonAsManWon(9_999))
}

func TestResultCount(t *testing.T) {
	assert.Equal(t, "검색 결과가 없습니다", ResultCount(0, true))
	assert.Equal(t, "총 20건 (더 많은 데이터 로드 중...)", ResultCount(20, true))
	assert.Equal(t, "총 1,234건", ResultCount(1234, false))
}

func TestUnitTooltip(t *testing.T) {
	var many []string
	for i := 1; i <= 13; i++ {
		many = append(many, fmt.Sprintf("%d호", 100+i))
	}

	tests := []struct {
		name string
		info model.UnitInfo
		want string
	}{
		{"single", model.UnitInfo{Unit: "101동 1001호"}, "101동 1001호"},
		{"short list", model.UnitInfo{Unit: "101호", AllUnits: []string{"101호", "102호"}}, "101호, 102호"},
		{
			"truncated",
			model.UnitInfo{Unit: "101호", AllUnits: many, HasMore: true},
			"101호, 102호, 103호, 104호, 105호, 106호, 107호, 108호, 109호, 110호 외 3개",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UnitTooltip(tt.info))
		})
	}
}

func TestUnitLabel(t *testing.T) {
	assert.Equal(t, "-", UnitLabel(model.UnitInfo{}))
	assert.Equal(t, "101호", UnitLabel(model.UnitInfo{Unit: "101호"}))
	assert.Equal(t, "101호+", UnitLabel(model.UnitInfo{Unit: "101호", HasMore: true}))
}
