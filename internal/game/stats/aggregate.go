// Package stats merges base attributes, item affixes, technique bonuses and
// set bonuses into one panel sheet.
package stats

import (
	"slices"

	"github.com/udisondev/buildcalc/internal/model"
)

// UnknownKeyHook is called for every bonus key that names no panel stat.
// source identifies where the key came from ("item <id> <sub-slot>",
// "technique <name>", "set <name>").
type UnknownKeyHook func(source, key string)

type options struct {
	sets      []model.SetBonus
	onUnknown UnknownKeyHook
}

// Option configures a single Aggregate call.
type Option func(*options)

// WithSetBonuses folds active set bonuses into the sheet.
func WithSetBonuses(bonuses ...model.SetBonus) Option {
	return func(o *options) {
		o.sets = append(o.sets, bonuses...)
	}
}

// WithUnknownKeyHook reports dropped keys. Without it they vanish silently.
func WithUnknownKeyHook(fn UnknownKeyHook) Option {
	return func(o *options) {
		o.onUnknown = fn
	}
}

// Aggregate builds the panel sheet:
//
//	total = base + affixes + techniques + set bonuses
//	total += conv.Derive(total)
//
// The attribute conversion runs exactly once against the summed attributes.
// Contributions to each stat are summed in sorted order, so the result does
// not depend on the order of items or techniques, bit for bit.
func Aggregate(conv Conversion, base model.PanelStats, items []model.EquipmentItem, techniques []model.Technique, opts ...Option) model.PanelStats {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	var acc accumulator
	for i := range items {
		acc.addItem(&items[i], o.onUnknown)
	}
	for _, tech := range techniques {
		acc.addBonuses("technique "+tech.Name, tech.Bonuses, o.onUnknown)
	}
	for _, set := range o.sets {
		acc.addBonuses("set "+set.Name, set.Bonuses, o.onUnknown)
	}

	total := base
	for id := model.StatID(1); id < model.StatCount; id++ {
		total[id] += acc.sum(id)
	}

	derived := conv.Derive(&total)
	for id := model.StatID(1); id < model.StatCount; id++ {
		total[id] += derived[id]
	}
	return total
}

// accumulator collects raw contributions per stat.
type accumulator struct {
	parts [model.StatCount][]float64
}

func (a *accumulator) add(id model.StatID, v float64) bool {
	if !id.Valid() {
		return false
	}
	a.parts[id] = append(a.parts[id], v)
	return true
}

func (a *accumulator) addItem(item *model.EquipmentItem, hook UnknownKeyHook) {
	for _, af := range item.Gong {
		a.addAffix(item.ID, model.AffixSlotGong, af, hook)
	}
	for _, s := range model.ModifiableSlots {
		if af := item.Affix(s); af != nil {
			a.addAffix(item.ID, s, *af, hook)
		}
	}
}

func (a *accumulator) addAffix(itemID string, slot model.AffixSlot, af model.Affix, hook UnknownKeyHook) {
	if a.add(af.Stat(), af.Value) || hook == nil {
		return
	}
	hook("item "+itemID+" "+string(slot), af.Type)
}

func (a *accumulator) addBonuses(source string, bonuses map[string]float64, hook UnknownKeyHook) {
	for key, v := range bonuses {
		if !a.add(model.ParseStatKey(key), v) && hook != nil {
			hook(source, key)
		}
	}
}

func (a *accumulator) sum(id model.StatID) float64 {
	parts := a.parts[id]
	if len(parts) == 0 {
		return 0
	}
	slices.Sort(parts)
	var s float64
	for _, v := range parts {
		s += v
	}
	return s
}
