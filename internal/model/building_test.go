package model

import (
	"testing"

	"github.com/Veraticus/leasetx/internal/common"
	"github.com/stretchr/testify/assert"
)

func TestBuildingRef_BuildingQuery(t *testing.T) {
	ref := BuildingRef{
		BuildingName: "래미안",
		PropertyType: PropertyApartment,
		SggCode:      "11650",
		UmdName:      "반포동",
		Jibun:        "1-1",
	}

	q := ref.BuildingQuery()
	assert.Equal(t, BuildingPageSize, q.PageSize)
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, "반포동 1-1 래미안", q.Title())
	assert.NoError(t, q.Validate())
	assert.Equal(t, OwnerQuery{SggCode: "11650", UmdName: "반포동", Jibun: "1-1"}, q.OwnerQuery())
}

func TestLotValidation(t *testing.T) {
	assert.ErrorIs(t, BuildingQuery{UmdName: "반포동", Jibun: "1"}.Validate(), common.ErrValidation)
	assert.ErrorIs(t, OwnerQuery{SggCode: "11650", Jibun: "1"}.Validate(), common.ErrValidation)
	assert.ErrorIs(t, UnitQuery{SggCode: "11650", UmdName: "반포동", Jibun: "1"}.Validate(), common.ErrValidation)
	assert.NoError(t, UnitQuery{SggCode: "11650", UmdName: "반포동", Jibun: "1", Floor: "3", Area: "84.9"}.Validate())
}
