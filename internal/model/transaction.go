package model

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// PropertyType is the housing classification attached to every record.
type PropertyType string

// Property types as reported by the backend.
const (
	PropertyApartment PropertyType = "아파트"
	PropertyVilla     PropertyType = "연립다세대"
	PropertyHouse     PropertyType = "단독다가구"
	PropertyOfficetel PropertyType = "오피스텔"
)

// PropertyTypes lists every known property type in display order.
var PropertyTypes = []PropertyType{
	PropertyApartment,
	PropertyVilla,
	PropertyHouse,
	PropertyOfficetel,
}

// IsValid reports whether the property type is one of the known kinds.
func (p PropertyType) IsValid() bool {
	for _, known := range PropertyTypes {
		if p == known {
			return true
		}
	}
	return false
}

// Text is a JSON scalar that may arrive as a string, a number, or null.
// The backend is inconsistent about quoting numeric columns, so every
// numeric-looking field is kept as its textual form.
type Text string

// UnmarshalJSON accepts strings, numbers, and null.
func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}
	if bytes.Equal(data, []byte("true")) || bytes.Equal(data, []byte("false")) {
		*t = Text(data)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*t = Text(n.String())
	return nil
}

// String returns the raw text.
func (t Text) String() string {
	return string(t)
}

// Int64 parses the text as a whole number, ignoring thousands separators and
// any fractional part.
func (t Text) Int64() (int64, bool) {
	s := strings.ReplaceAll(strings.TrimSpace(string(t)), ",", "")
	if s == "" {
		return 0, false
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return int64(f), true
}

// TransactionRecord is a single lease transaction row as returned by the
// search and building-transactions endpoints.
type TransactionRecord struct {
	PropertyType      PropertyType `json:"구분"`
	Sido              string       `json:"시도,omitempty"`
	Sigungu           string       `json:"시군구,omitempty"`
	SigunguCode       string       `json:"시군구코드,omitempty"`
	Neighborhood      string       `json:"읍면동리,omitempty"`
	Jibun             string       `json:"지번,omitempty"`
	ComplexName       string       `json:"단지명,omitempty"`
	BuildingName      string       `json:"건물명,omitempty"`
	Floor             Text         `json:"층,omitempty"`
	Area              Text         `json:"면적,omitempty"`
	Deposit           Text         `json:"보증금,omitempty"`
	MonthlyRent       Text         `json:"월세,omitempty"`
	ContractYearMonth Text         `json:"계약년월,omitempty"`
	ContractDay       Text         `json:"계약일,omitempty"`
	BuildYear         Text         `json:"건축년도,omitempty"`
	ContractKind      string       `json:"계약구분,omitempty"`
	ContractPeriod    string       `json:"계약기간,omitempty"`
	PrevDeposit       Text         `json:"종전계약보증금,omitempty"`
	PrevMonthlyRent   Text         `json:"종전계약월세,omitempty"`
	RenewalRightUsed  string       `json:"갱신요구권사용,omitempty"`

	// Enrichment, present only for some property types.
	Unit                  string   `json:"동호명,omitempty"`
	Units                 []string `json:"동호명_전체목록,omitempty"`
	UnitsTruncated        bool     `json:"동호명_더보기,omitempty"`
	JointHousingPrice     Text     `json:"공동주택가격,omitempty"`
	JointHousingThreshold Text     `json:"공동주택가격_126퍼센트,omitempty"`
	StandardPrice         Text     `json:"기준시가_총액,omitempty"`
	StandardThreshold     Text     `json:"기준시가_126퍼센트,omitempty"`
}

// Name returns the complex name, falling back to the building name.
func (r TransactionRecord) Name() string {
	if r.ComplexName != "" {
		return r.ComplexName
	}
	return r.BuildingName
}

// Threshold returns the 126% reference-price figure in won, preferring the
// officetel standard price over the joint-housing price.
func (r TransactionRecord) Threshold() (int64, bool) {
	if n, ok := r.StandardThreshold.Int64(); ok && n > 0 {
		return n, true
	}
	if n, ok := r.JointHousingThreshold.Int64(); ok && n > 0 {
		return n, true
	}
	return 0, false
}

// UnitInfo returns the unit designations carried by the record.
func (r TransactionRecord) UnitInfo() UnitInfo {
	return UnitInfo{
		Unit:     r.Unit,
		AllUnits: r.Units,
		HasMore:  r.UnitsTruncated,
	}
}

// BuildingQuery returns the building-transactions request that drills into
// the building this record belongs to.
func (r TransactionRecord) BuildingQuery() BuildingQuery {
	return BuildingQuery{
		BuildingName: r.Name(),
		PropertyType: r.PropertyType,
		SigunguCode:  r.SigunguCode,
		UmdName:      r.Neighborhood,
		Jibun:        r.Jibun,
		Page:         1,
	}
}

// OwnerQuery returns the owner-info request for the lot this record is on.
func (r TransactionRecord) OwnerQuery() OwnerQuery {
	return OwnerQuery{
		SggCode: r.SigunguCode,
		UmdName: r.Neighborhood,
		Jibun:   r.Jibun,
	}
}
