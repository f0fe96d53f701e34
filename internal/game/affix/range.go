package affix

import "github.com/udisondev/buildcalc/internal/model"

// RangeViolation is an affix whose value lies outside its declared range.
type RangeViolation struct {
	Slot      model.Slot      `json:"slot"`
	AffixSlot model.AffixSlot `json:"affix_slot"`
	Type      string          `json:"type"`
	Value     float64         `json:"value"`
	Range     model.Range     `json:"range"`
}

// CheckRanges reports every out-of-range affix on the item. Affixes without
// a declared range are never reported.
func CheckRanges(item *model.EquipmentItem) []RangeViolation {
	var out []RangeViolation
	check := func(s model.AffixSlot, a *model.Affix) {
		if a == nil || a.InRange() {
			return
		}
		out = append(out, RangeViolation{
			Slot:      item.Slot,
			AffixSlot: s,
			Type:      a.Type,
			Value:     a.Value,
			Range:     *a.Range,
		})
	}
	for i := range item.Gong {
		check(model.AffixSlotGong, &item.Gong[i])
	}
	for _, s := range model.ModifiableSlots {
		check(s, item.Affix(s))
	}
	return out
}
