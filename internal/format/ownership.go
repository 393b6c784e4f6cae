package format

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/Veraticus/leasetx/internal/model"
)

// DistributionKind names the shape of unit ownership within a lot.
type DistributionKind int

// Distribution kinds.
const (
	// DistributionUnsold means every unit shares one owner set.
	DistributionUnsold DistributionKind = iota
	// DistributionAllSold means no two units share an owner set.
	DistributionAllSold
	// DistributionBulkHeld means every unit belongs to a multi-unit owner set.
	DistributionBulkHeld
	// DistributionBulkHeldWithRemainder means some units are bulk held and the
	// rest are individually owned.
	DistributionBulkHeldWithRemainder
)

// String returns a short identifier for the kind.
func (k DistributionKind) String() string {
	switch k {
	case DistributionUnsold:
		return "unsold"
	case DistributionAllSold:
		return "all_sold"
	case DistributionBulkHeld:
		return "bulk_held"
	case DistributionBulkHeldWithRemainder:
		return "bulk_held_with_remainder"
	default:
		return "unknown"
	}
}

// BulkGroup is a set of units that share one owner signature.
type BulkGroup struct {
	Units  []string
	Owners int
}

// Distribution summarizes how the units of a lot are held.
type Distribution struct {
	Kind       DistributionKind
	Text       string
	BulkGroups []BulkGroup
	Remainder  int
}

type signatureGroup struct {
	signature string
	units     []string
	owners    int
}

// ClassifyOwnershipDistribution compares the owner records of every unit and
// describes whether the lot looks unsold, fully sold, or bulk held. It
// returns nil when there are fewer than two units to compare.
func ClassifyOwnershipDistribution(groups *model.OwnerGroups) *Distribution {
	if groups.Len() <= 1 {
		return nil
	}

	var ordered []*signatureGroup
	bySignature := make(map[string]*signatureGroup)
	for _, unit := range groups.Keys() {
		records := groups.Get(unit)
		sig := ownerSignature(records)
		g, ok := bySignature[sig]
		if !ok {
			g = &signatureGroup{signature: sig, owners: ownerCount(records)}
			bySignature[sig] = g
			ordered = append(ordered, g)
		}
		g.units = append(g.units, unit)
	}

	unitCount := groups.Len()

	if len(ordered) == 1 {
		owners := ordered[0].owners
		return &Distribution{
			Kind: DistributionUnsold,
			Text: fmt.Sprintf("전체 %d개 호실이 동일 소유자(%d명) 소유, 미분양 추정", unitCount, owners),
			BulkGroups: []BulkGroup{{
				Units:  slices.Clone(ordered[0].units),
				Owners: owners,
			}},
		}
	}

	if len(ordered) == unitCount {
		return allSold(unitCount)
	}

	var bulk []BulkGroup
	remainder := 0
	for _, g := range ordered {
		if len(g.units) >= 2 {
			bulk = append(bulk, BulkGroup{Units: slices.Clone(g.units), Owners: g.owners})
			continue
		}
		remainder += len(g.units)
	}

	if len(bulk) == 0 {
		return allSold(unitCount)
	}

	parts := make([]string, 0, len(bulk))
	for _, b := range bulk {
		parts = append(parts, fmt.Sprintf("%s 동일 소유자(%d명)", strings.Join(b.Units, ", "), b.Owners))
	}
	text := strings.Join(parts, "; ")

	if remainder == 0 {
		return &Distribution{
			Kind:       DistributionBulkHeld,
			Text:       text + " 소유로 추정",
			BulkGroups: bulk,
		}
	}
	return &Distribution{
		Kind:       DistributionBulkHeldWithRemainder,
		Text:       fmt.Sprintf("%s 소유로 추정, 나머지 %d개 호실은 개별 분양", text, remainder),
		BulkGroups: bulk,
		Remainder:  remainder,
	}
}

func allSold(units int) *Distribution {
	return &Distribution{
		Kind: DistributionAllSold,
		Text: fmt.Sprintf("전체 %d개 호실 모두 개별 분양", units),
	}
}

// ownerSignature identifies an owner set independent of record order.
func ownerSignature(records []model.OwnerRecord) string {
	parts := make([]string, 0, len(records))
	for _, r := range records {
		parts = append(parts, strings.Join([]string{
			r.OwnershipCategory,
			r.ResidencyCategory,
			r.ChangeDate,
			r.ChangeCause,
			r.CoOwnerCount.String(),
		}, "|"))
	}
	slices.Sort(parts)
	return strings.Join(parts, ";")
}

// ownerCount is the co-owner count of the first record plus the record holder.
func ownerCount(records []model.OwnerRecord) int {
	if len(records) == 0 {
		return 0
	}
	return records[0].CoOwners() + 1
}

// ElapsedOwnershipPeriod renders the time since an ownership change date
// given as YYYY-MM-DD or YYYYMMDD.
func ElapsedOwnershipPeriod(changeDate string, now time.Time) (string, bool) {
	changed, ok := parseChangeDate(changeDate)
	if !ok {
		return "", false
	}

	years := now.Year() - changed.Year()
	months := int(now.Month()) - int(changed.Month())
	days := now.Day() - changed.Day()

	if days < 0 {
		months--
	}
	if months < 0 {
		years--
		months += 12
	}

	switch {
	case years > 0 && months > 0:
		return fmt.Sprintf("%d년 %d개월", years, months), true
	case years > 0:
		return fmt.Sprintf("%d년", years), true
	case months > 0:
		return fmt.Sprintf("%d개월", months), true
	default:
		return "1개월 미만", true
	}
}

func parseChangeDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	var layout string
	switch {
	case len(s) == 10 && s[4] == '-' && s[7] == '-':
		layout = time.DateOnly
	case len(s) == 8 && allDigits(s):
		layout = "20060102"
	default:
		return time.Time{}, false
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
