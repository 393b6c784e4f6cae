package format

import (
	"fmt"
	"strings"

	"github.com/Veraticus/leasetx/internal/model"
)

// maxTooltipUnits caps how many unit designations a tooltip lists.
const maxTooltipUnits = 10

// UnitTooltip lists the candidate units for a transaction, truncated to the
// first ten with a " 외 N개" suffix.
func UnitTooltip(info model.UnitInfo) string {
	units := info.AllUnits
	if len(units) == 0 {
		return info.Unit
	}
	if len(units) <= maxTooltipUnits {
		return strings.Join(units, ", ")
	}
	return fmt.Sprintf("%s 외 %d개", strings.Join(units[:maxTooltipUnits], ", "), len(units)-maxTooltipUnits)
}

// UnitLabel is the short unit designation shown in table cells. Truncated
// lists are marked with a trailing "+".
func UnitLabel(info model.UnitInfo) string {
	if info.Unit == "" {
		return "-"
	}
	if info.HasMore || len(info.AllUnits) > 1 {
		return info.Unit + "+"
	}
	return info.Unit
}
