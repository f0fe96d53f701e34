package data

import "github.com/udisondev/buildcalc/internal/model"

// TestAffix builds an affix for cross-package test setup. The display name
// comes from the stat enumeration.
func TestAffix(statType string, value float64) model.Affix {
	return model.Affix{
		Name:  model.ParseStatKey(statType).Name(),
		Type:  statType,
		Value: value,
	}
}

// TestItem builds an item with the given tuning affixes filled in order
// Shang, Jue, Zhi, Yu. Extra affixes beyond four are ignored.
func TestItem(id string, slot model.Slot, tuning ...model.Affix) model.EquipmentItem {
	item := model.EquipmentItem{ID: id, Slot: slot, Level: 100}
	for i, a := range tuning {
		if i >= len(model.TuningSlots) {
			break
		}
		item = item.WithAffix(model.TuningSlots[i], a)
	}
	return item
}

// TestConstants returns a copy of the embedded game constants so tests can
// tweak thresholds without touching the shared tables.
func TestConstants() GameConstants {
	c := Default().Constants
	c.ResistanceTable = append([]ResistanceEntry(nil), c.ResistanceTable...)
	return c
}
