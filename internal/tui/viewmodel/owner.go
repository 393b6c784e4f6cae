package viewmodel

import (
	"strconv"
	"time"

	"github.com/Veraticus/leasetx/internal/format"
	"github.com/Veraticus/leasetx/internal/model"
)

// OwnerPanelView is the owner-of-record panel for a lot.
type OwnerPanelView struct {
	Distribution *format.Distribution
	Title        string
	Message      string
	Units        []OwnerUnitView
}

// OwnerUnitView lists the owners of one unit.
type OwnerUnitView struct {
	Key    string
	Owners []OwnerLineView
}

// OwnerLineView is one owner-of-record entry.
type OwnerLineView struct {
	Category   string
	Residency  string
	ChangeDate string
	Cause      string
	Elapsed    string
	CoOwners   string
}

// NewOwnerPanelView builds the panel. Units keep the order the backend sent.
func NewOwnerPanelView(title string, groups *model.OwnerGroups, message string, now time.Time) OwnerPanelView {
	v := OwnerPanelView{
		Title:        title,
		Message:      message,
		Distribution: format.ClassifyOwnershipDistribution(groups),
	}
	if groups.Len() == 0 && v.Message == "" {
		v.Message = "소유자 정보가 없습니다."
	}

	for _, key := range groups.Keys() {
		unit := OwnerUnitView{Key: key}
		for _, r := range groups.Get(key) {
			elapsed, ok := format.ElapsedOwnershipPeriod(r.ChangeDate, now)
			if !ok {
				elapsed = "-"
			}
			unit.Owners = append(unit.Owners, OwnerLineView{
				Category:   dash(r.OwnershipCategory),
				Residency:  dash(r.ResidencyCategory),
				ChangeDate: dash(r.ChangeDate),
				Cause:      dash(r.ChangeCause),
				Elapsed:    elapsed,
				CoOwners:   strconv.Itoa(r.CoOwners()),
			})
		}
		v.Units = append(v.Units, unit)
	}
	return v
}

// IsEmpty reports whether there is nothing to list.
func (v OwnerPanelView) IsEmpty() bool {
	return len(v.Units) == 0
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
