// Package affix validates item affixes and builds candidate pools.
package affix

import (
	"fmt"
	"slices"
	"strings"

	"github.com/udisondev/buildcalc/internal/model"
)

// Conflict is one tuning sub-slot that repeats a stat type.
type Conflict struct {
	Slot            model.Slot        `json:"slot"`
	AffixSlot       model.AffixSlot   `json:"affix_slot"`
	AffixName       string            `json:"affix_name"`
	Type            string            `json:"type"`
	ConflictingWith []model.AffixSlot `json:"conflicting_with"`
}

// ConflictResult lists every conflicting sub-slot.
type ConflictResult struct {
	HasConflict bool       `json:"has_conflict"`
	Conflicts   []Conflict `json:"conflicts"`
}

// Checker detects duplicate stat types among the four tuning sub-slots.
type Checker struct {
	allowed map[string][]string
}

// NewChecker returns a checker for an allow-duplicate table. A stat type t
// may repeat when allowed[t] lists t.
func NewChecker(allowed map[string][]string) Checker {
	return Checker{allowed: allowed}
}

func (c Checker) mayRepeat(t string) bool {
	return slices.Contains(c.allowed[t], t)
}

// Check compares the tuning affixes pairwise. The initial and final
// sub-slots never conflict. Both sides of a conflicting pair are reported,
// each with the deduplicated list of sub-slots it clashes with.
func (c Checker) Check(item *model.EquipmentItem) ConflictResult {
	var res ConflictResult
	index := make(map[model.AffixSlot]int)

	record := func(s, with model.AffixSlot, a *model.Affix) {
		i, ok := index[s]
		if !ok {
			i = len(res.Conflicts)
			index[s] = i
			res.Conflicts = append(res.Conflicts, Conflict{
				Slot:      item.Slot,
				AffixSlot: s,
				AffixName: a.Name,
				Type:      a.Type,
			})
		}
		if !slices.Contains(res.Conflicts[i].ConflictingWith, with) {
			res.Conflicts[i].ConflictingWith = append(res.Conflicts[i].ConflictingWith, with)
		}
	}

	slots := model.TuningSlots
	for i := range slots {
		a := item.Affix(slots[i])
		if a == nil {
			continue
		}
		for j := i + 1; j < len(slots); j++ {
			b := item.Affix(slots[j])
			if b == nil || a.Type != b.Type || c.mayRepeat(a.Type) {
				continue
			}
			record(slots[i], slots[j], a)
			record(slots[j], slots[i], b)
		}
	}

	res.HasConflict = len(res.Conflicts) > 0
	return res
}

// CheckAll aggregates Check over every item.
func (c Checker) CheckAll(items []model.EquipmentItem) ConflictResult {
	var res ConflictResult
	for i := range items {
		r := c.Check(&items[i])
		res.Conflicts = append(res.Conflicts, r.Conflicts...)
	}
	res.HasConflict = len(res.Conflicts) > 0
	return res
}

// SelectedTuningTypes returns the stat types in the filled tuning sub-slots.
func SelectedTuningTypes(item *model.EquipmentItem) []string {
	var out []string
	for _, s := range model.TuningSlots {
		if a := item.Affix(s); a != nil {
			out = append(out, a.Type)
		}
	}
	return out
}

// IsTypeConflicted reports whether adding statType to a tuning sub-slot
// would clash with the already selected types.
func (c Checker) IsTypeConflicted(statType string, selected []string) bool {
	return slices.Contains(selected, statType) && !c.mayRepeat(statType)
}

// Messages renders one line per conflict, e.g.
// "Ring: Shang (Crit Rate) duplicates Jue, Yu".
func Messages(r ConflictResult) []string {
	out := make([]string, 0, len(r.Conflicts))
	for _, c := range r.Conflicts {
		with := make([]string, len(c.ConflictingWith))
		for i, s := range c.ConflictingWith {
			with[i] = string(s)
		}
		out = append(out, fmt.Sprintf("%s: %s (%s) duplicates %s",
			c.Slot, c.AffixSlot, c.AffixName, strings.Join(with, ", ")))
	}
	return out
}
