package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestText_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Text
	}{
		{name: "string", input: `"1,500"`, want: "1,500"},
		{name: "integer", input: `12000`, want: "12000"},
		{name: "float", input: `84.97`, want: "84.97"},
		{name: "null", input: `null`, want: ""},
		{name: "empty string", input: `""`, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Text
			require.NoError(t, json.Unmarshal([]byte(tt.input), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestText_Int64(t *testing.T) {
	tests := []struct {
		name   string
		text   Text
		want   int64
		wantOK bool
	}{
		{name: "plain", text: "8000", want: 8000, wantOK: true},
		{name: "commas", text: "14,000", want: 14000, wantOK: true},
		{name: "fraction truncated", text: "123456789.6", want: 123456789, wantOK: true},
		{name: "empty", text: "", wantOK: false},
		{name: "garbage", text: "abc", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.text.Int64()
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestTransactionRecord_Decode(t *testing.T) {
	body := `{
		"구분": "오피스텔",
		"시군구코드": "11680",
		"읍면동리": "역삼동",
		"지번": "123-4",
		"건물명": "역삼타워",
		"층": 7,
		"면적": "29.8",
		"보증금": "21,000",
		"월세": "0",
		"계약기간": "24.03~26.03",
		"기준시가_126퍼센트": 252000000,
		"동호명": "701호",
		"동호명_전체목록": ["701호"]
	}`

	var rec TransactionRecord
	require.NoError(t, json.Unmarshal([]byte(body), &rec))

	assert.Equal(t, PropertyOfficetel, rec.PropertyType)
	assert.Equal(t, "역삼타워", rec.Name())
	assert.Equal(t, Text("7"), rec.Floor)
	assert.Equal(t, Text("21,000"), rec.Deposit)

	threshold, ok := rec.Threshold()
	require.True(t, ok)
	assert.Equal(t, int64(252000000), threshold)

	q := rec.BuildingQuery()
	assert.Equal(t, "11680", q.SigunguCode)
	assert.Equal(t, "역삼동", q.UmdName)
	assert.Equal(t, "123-4", q.Jibun)
	assert.Equal(t, "역삼타워", q.BuildingName)
	assert.Equal(t, []string{"701호"}, rec.UnitInfo().AllUnits)
}

func TestTransactionRecord_Threshold(t *testing.T) {
	tests := []struct {
		name   string
		rec    TransactionRecord
		want   int64
		wantOK bool
	}{
		{
			name:   "standard price preferred",
			rec:    TransactionRecord{StandardThreshold: "100", JointHousingThreshold: "200"},
			want:   100,
			wantOK: true,
		},
		{
			name:   "joint housing fallback",
			rec:    TransactionRecord{JointHousingThreshold: "200"},
			want:   200,
			wantOK: true,
		},
		{
			name:   "zero is not a threshold",
			rec:    TransactionRecord{StandardThreshold: "0"},
			wantOK: false,
		},
		{
			name:   "none",
			rec:    TransactionRecord{},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.rec.Threshold()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPropertyType_IsValid(t *testing.T) {
	for _, pt := range PropertyTypes {
		assert.True(t, pt.IsValid(), pt)
	}
	assert.False(t, PropertyType("상가").IsValid())
}
