package model

import (
	"slices"
	"strings"

	"github.com/Veraticus/leasetx/internal/common"
)

// Page sizes used by the two list views.
const (
	SearchPageSize   = 20
	BuildingPageSize = 50
)

// FilterSet is the set of search criteria posted to /api/search.
// Bounds are optional; a nil bound is omitted from the request body.
type FilterSet struct {
	AreaMin          *float64 `json:"area_min,omitempty"`
	AreaMax          *float64 `json:"area_max,omitempty"`
	DepositMin       *int64   `json:"deposit_min,omitempty"`
	DepositMax       *int64   `json:"deposit_max,omitempty"`
	RentMin          *int64   `json:"rent_min,omitempty"`
	RentMax          *int64   `json:"rent_max,omitempty"`
	BuildYearMin     *int     `json:"build_year_min,omitempty"`
	BuildYearMax     *int     `json:"build_year_max,omitempty"`
	ContractEnd      string   `json:"contract_end"`
	Sido             string   `json:"sido"`
	Sigungu          []string `json:"sigungu"`
	Umd              []string `json:"umd"`
	Page             int      `json:"page"`
	PageSize         int      `json:"page_size"`
	IncludeApartment bool     `json:"include_apt"`
	IncludeVilla     bool     `json:"include_villa"`
	IncludeHouse     bool     `json:"include_dagagu"`
	IncludeOfficetel bool     `json:"include_officetel"`
}

// DefaultFilterSet returns the filter state of a freshly reset form: every
// property type included, first page, standard page size.
func DefaultFilterSet() FilterSet {
	return FilterSet{
		IncludeApartment: true,
		IncludeVilla:     true,
		IncludeHouse:     true,
		IncludeOfficetel: true,
		Sigungu:          []string{},
		Umd:              []string{},
		Page:             1,
		PageSize:         SearchPageSize,
	}
}

// Validate checks the two required selections.
func (f FilterSet) Validate() error {
	if strings.TrimSpace(f.ContractEnd) == "" {
		return common.ErrMissingContractEnd
	}
	if len(f.Sigungu) == 0 {
		return common.ErrNoDistrict
	}
	return nil
}

// WithPage returns a copy of the filters targeting the given page.
func (f FilterSet) WithPage(page, pageSize int) FilterSet {
	out := f.Clone()
	out.Page = page
	out.PageSize = pageSize
	return out
}

// Clone returns a deep copy so that stored filters cannot be mutated through
// a caller's slices.
func (f FilterSet) Clone() FilterSet {
	out := f
	out.Sigungu = slices.Clone(f.Sigungu)
	out.Umd = slices.Clone(f.Umd)
	if out.Sigungu == nil {
		out.Sigungu = []string{}
	}
	if out.Umd == nil {
		out.Umd = []string{}
	}
	return out
}

// IncludedTypes returns the property types enabled by the inclusion flags.
func (f FilterSet) IncludedTypes() []PropertyType {
	var types []PropertyType
	if f.IncludeApartment {
		types = append(types, PropertyApartment)
	}
	if f.IncludeVilla {
		types = append(types, PropertyVilla)
	}
	if f.IncludeHouse {
		types = append(types, PropertyHouse)
	}
	if f.IncludeOfficetel {
		types = append(types, PropertyOfficetel)
	}
	return types
}
