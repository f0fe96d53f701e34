package optimize

import (
	"github.com/udisondev/buildcalc/internal/data"
	"github.com/udisondev/buildcalc/internal/model"
)

// Efficiency measures how closely an item's tuning and final affixes match
// the reference layout. Each reference sub-slot scores the value ratio
// (capped at 1) when the stat type matches and 0 otherwise. A layout with no
// reference sub-slots scores 1.
func Efficiency(item *model.EquipmentItem, ref *data.OptimalSlot) float64 {
	var matched float64
	var total int
	for _, s := range model.ModifiableSlots {
		want := ref.Affix(s)
		if want == nil {
			continue
		}
		total++
		have := item.Affix(s)
		if have == nil || have.Type != want.Type {
			continue
		}
		if want.Value > 0 {
			matched += min(1, have.Value/want.Value)
		} else {
			matched++
		}
	}
	if total == 0 {
		return 1
	}
	return matched / float64(total)
}

// Resets suggests re-tuning every item whose efficiency falls below
// 1 - reset threshold. Items without a reference slot are skipped.
func (o *Optimizer) Resets(items []model.EquipmentItem, ref *data.OptimalBuild) []ResetSuggestion {
	if ref == nil {
		return nil
	}
	threshold := o.consts.ResetThreshold

	var out []ResetSuggestion
	for i := range items {
		slot, ok := ref.Slots[items[i].Slot]
		if !ok {
			continue
		}
		eff := Efficiency(&items[i], &slot)
		if eff >= 1-threshold {
			continue
		}
		out = append(out, ResetSuggestion{
			Slot:              items[i].Slot,
			CurrentEfficiency: eff,
			Threshold:         threshold,
			Direction:         "move toward " + ref.Name,
		})
	}
	return out
}
