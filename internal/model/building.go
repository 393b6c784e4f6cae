package model

import (
	"strings"

	"github.com/Veraticus/leasetx/internal/common"
)

// BuildingRef is a building suggestion returned by /api/search-building.
type BuildingRef struct {
	BuildingName string       `json:"building_name"`
	PropertyType PropertyType `json:"property_type"`
	FullAddress  string       `json:"full_address"`
	SggCode      string       `json:"sgg_code"`
	UmdName      string       `json:"umd_name"`
	Jibun        string       `json:"jibun"`
	Sido         string       `json:"sido"`
	Sigungu      string       `json:"sigungu"`
}

// BuildingQuery returns the building-transactions request for this building.
func (b BuildingRef) BuildingQuery() BuildingQuery {
	return BuildingQuery{
		BuildingName: b.BuildingName,
		PropertyType: b.PropertyType,
		SigunguCode:  b.SggCode,
		UmdName:      b.UmdName,
		Jibun:        b.Jibun,
		Page:         1,
		PageSize:     BuildingPageSize,
	}
}

// BuildingQuery is the body of /api/building-transactions.
type BuildingQuery struct {
	BuildingName string       `json:"building_name"`
	PropertyType PropertyType `json:"property_type"`
	SigunguCode  string       `json:"sigungu_code"`
	UmdName      string       `json:"umd_name"`
	Jibun        string       `json:"jibun"`
	Page         int          `json:"page"`
	PageSize     int          `json:"page_size"`
}

// Validate checks that the lot is fully addressed.
func (q BuildingQuery) Validate() error {
	return validateLot(q.SigunguCode, q.UmdName, q.Jibun)
}

// Title returns a short human label for the building.
func (q BuildingQuery) Title() string {
	parts := []string{q.UmdName, q.Jibun}
	if q.BuildingName != "" {
		parts = append(parts, q.BuildingName)
	}
	return strings.Join(parts, " ")
}

// OwnerQuery is the body of /api/owner-info.
type OwnerQuery struct {
	SggCode string `json:"sgg_code"`
	UmdName string `json:"umd_name"`
	Jibun   string `json:"jibun"`
}

// Validate checks that the lot is fully addressed.
func (q OwnerQuery) Validate() error {
	return validateLot(q.SggCode, q.UmdName, q.Jibun)
}

// OwnerQuery returns the owner-info request for the same lot.
func (q BuildingQuery) OwnerQuery() OwnerQuery {
	return OwnerQuery{SggCode: q.SigunguCode, UmdName: q.UmdName, Jibun: q.Jibun}
}

// UnitQuery is the body of /api/fetch-unit-info.
type UnitQuery struct {
	SggCode string `json:"sgg_code"`
	UmdName string `json:"umd_name"`
	Jibun   string `json:"jibun"`
	Floor   string `json:"floor"`
	Area    string `json:"area"`
}

// Validate checks that the lot, floor and area are present.
func (q UnitQuery) Validate() error {
	if err := validateLot(q.SggCode, q.UmdName, q.Jibun); err != nil {
		return err
	}
	if strings.TrimSpace(q.Floor) == "" || strings.TrimSpace(q.Area) == "" {
		return common.NewUserError("층과 면적을 입력해주세요", common.ErrValidation)
	}
	return nil
}

// UnitInfo holds the unit designations resolved for a transaction.
type UnitInfo struct {
	Unit     string   `json:"unit"`
	AllUnits []string `json:"all_units,omitempty"`
	HasMore  bool     `json:"has_more,omitempty"`
}

func validateLot(sggCode, umdName, jibun string) error {
	if strings.TrimSpace(sggCode) == "" || strings.TrimSpace(umdName) == "" || strings.TrimSpace(jibun) == "" {
		return common.NewUserError("시군구코드, 읍면동, 지번이 모두 필요합니다", common.ErrValidation)
	}
	return nil
}
