// Package build owns the current build selections and recomputes the whole
// derived chain (aggregate, effective stats, expected damage, evaluation,
// optimization) from them on demand.
package build

import (
	"fmt"
	"hash/fnv"

	"github.com/udisondev/buildcalc/internal/model"
)

// Selections is everything a user picks for one character.
type Selections struct {
	SubSchool  model.SubSchool                    `json:"sub_school"`
	Base       model.PanelStats                   `json:"base_stats"`
	Equipment  map[model.Slot]model.EquipmentItem `json:"equipment"`
	Techniques [model.TechniqueSlots]string       `json:"techniques"`
	ArmorSet   model.ArmorSetConfig               `json:"armor_set"`
	Target     model.CombatTarget                 `json:"target"`
	Skill      model.Skill                        `json:"skill"`
}

// Items returns the equipped items in slot order.
func (s *Selections) Items() []model.EquipmentItem {
	out := make([]model.EquipmentItem, 0, len(s.Equipment))
	for _, slot := range model.AllSlots {
		if item, ok := s.Equipment[slot]; ok {
			out = append(out, item)
		}
	}
	return out
}

// TechniqueNames returns the filled technique slots in order.
func (s *Selections) TechniqueNames() []string {
	var out []string
	for _, n := range s.Techniques {
		if n != "" {
			out = append(out, n)
		}
	}
	return out
}

func (s *Selections) clone() Selections {
	out := *s
	out.Equipment = make(map[model.Slot]model.EquipmentItem, len(s.Equipment))
	for k, v := range s.Equipment {
		out.Equipment[k] = v.Clone()
	}
	out.Skill.MultiplierPerHit = append([]float64(nil), s.Skill.MultiplierPerHit...)
	out.Skill.FixedDamagePerHit = append([]float64(nil), s.Skill.FixedDamagePerHit...)
	return out
}

// key hashes the canonical encoding of the selections.
func (s *Selections) key() (uint64, error) {
	b, err := model.MarshalCanonical(s)
	if err != nil {
		return 0, fmt.Errorf("encoding selections: %w", err)
	}
	h := fnv.New64a()
	h.Write(b)
	return h.Sum64(), nil
}
