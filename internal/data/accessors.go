package data

import (
	"fmt"

	"github.com/udisondev/buildcalc/internal/model"
)

// ResistanceForLevel returns the hit-type resistance for a target level.
func (t *Tables) ResistanceForLevel(level int) float64 {
	return t.Constants.ResistanceForLevel(level)
}

// AffixDefinition returns the definition of a stat type.
func (t *Tables) AffixDefinition(statType string) (AffixDefinition, bool) {
	d, ok := t.Affixes[statType]
	return d, ok
}

// AffixName returns the display name of a stat type, or the key itself.
func (t *Tables) AffixName(statType string) string {
	if d, ok := t.Affixes[statType]; ok && d.Name != "" {
		return d.Name
	}
	if id := model.ParseStatKey(statType); id.Valid() {
		return id.Name()
	}
	return statType
}

// AffixRange returns the legal range of a stat type in a roll context.
func (t *Tables) AffixRange(statType, context string) (model.Range, bool) {
	d, ok := t.Affixes[statType]
	if !ok {
		return model.Range{}, false
	}
	r, ok := d.Ranges[context]
	return r, ok
}

// SlotCategory returns the pool category of a slot.
func (t *Tables) SlotCategory(s model.Slot) model.SlotCategory {
	if info, ok := t.Pools.Slots[s]; ok {
		return info.Category
	}
	return s.Category()
}

// SubSchool returns the sub-school entry.
func (t *Tables) SubSchool(sub model.SubSchool) (SubSchoolInfo, error) {
	info, ok := t.Pools.SubSchools[sub]
	if !ok {
		return SubSchoolInfo{}, fmt.Errorf("%w %q", ErrUnknownSubSchool, sub)
	}
	return info, nil
}

// ParentSchool returns the parent school of a sub-school.
func (t *Tables) ParentSchool(sub model.SubSchool) (model.School, error) {
	info, err := t.SubSchool(sub)
	if err != nil {
		return "", err
	}
	return info.ParentSchool, nil
}

// InitialTypes returns the stat types allowed in the initial sub-slot.
func (t *Tables) InitialTypes(c model.SlotCategory) []string {
	return t.Pools.Initial[c]
}

// TiaoluTypes returns the generic tuning pool of a slot category.
func (t *Tables) TiaoluTypes(c model.SlotCategory) []string {
	return t.Pools.Tiaolu[c]
}

// ZhunlvTypes returns the school-specific re-tuning pool.
// Armor categories share one pool; the PoZhu_Feng sub-school extends it.
func (t *Tables) ZhunlvTypes(sub model.SubSchool, c model.SlotCategory) []string {
	school, err := t.ParentSchool(sub)
	if err != nil {
		return nil
	}
	pool, ok := t.Pools.Zhunlv[school]
	if !ok {
		return nil
	}
	switch c {
	case model.CategoryWeapon:
		return pool.Weapon
	case model.CategoryAccessory:
		return pool.Accessory
	}
	if sub == model.SubSchoolPoZhuFeng && len(pool.ArmorFeng) > 0 {
		out := make([]string, 0, len(pool.Armor)+len(pool.ArmorFeng))
		out = append(out, pool.Armor...)
		return append(out, pool.ArmorFeng...)
	}
	return pool.Armor
}

// RareAffixes returns the rare rolls of a slot category.
func (t *Tables) RareAffixes(c model.SlotCategory) []RareAffix {
	return t.Pools.Rare[c]
}

// DingyinAffixes returns the final-slot rolls of a slot category. Armor
// finals are a single specific-martial bonus range.
func (t *Tables) DingyinAffixes(c model.SlotCategory) []DingyinAffix {
	if !c.IsArmor() {
		return t.Pools.Dingyin.General
	}
	a := t.Pools.Dingyin.Armor
	key := model.StatDamageBonusSpecificMartial
	return []DingyinAffix{{Type: key.Key(), Name: key.Name(), Min: a.Min, Max: a.Max}}
}

// AllowedDuplicates returns the tuning duplicate whitelist keyed by stat type.
func (t *Tables) AllowedDuplicates() map[string][]string {
	return t.Pools.ConflictRules.AllowedDuplicates
}

// Techniques returns the techniques selectable by a sub-school, followed by
// the universal techniques.
func (t *Tables) Techniques(sub model.SubSchool) []model.Technique {
	own := t.MartialArts[sub].Techniques
	out := make([]model.Technique, 0, len(own)+len(t.Universal.Techniques))
	out = append(out, own...)
	return append(out, t.Universal.Techniques...)
}

// Technique looks a technique up by name within a sub-school's selection.
func (t *Tables) Technique(sub model.SubSchool, name string) (model.Technique, error) {
	for _, tech := range t.Techniques(sub) {
		if tech.Name == name {
			return tech, nil
		}
	}
	return model.Technique{}, fmt.Errorf("%w %q for %s", ErrUnknownTechnique, name, sub)
}

// OptimalBuild returns the reference build of a sub-school, or nil.
func (t *Tables) OptimalBuild(sub model.SubSchool) *OptimalBuild {
	b, ok := t.OptimalBuilds[sub]
	if !ok {
		return nil
	}
	return &b
}

// SetBonus returns the bonus of an armor set.
func (t *Tables) SetBonus(set model.ArmorSet) (model.SetBonus, error) {
	b, ok := t.ArmorSets[set]
	if !ok {
		return model.SetBonus{}, fmt.Errorf("%w %q", ErrUnknownArmorSet, set)
	}
	return b, nil
}

// ActiveSetBonuses returns one bonus per filled set slot.
func (t *Tables) ActiveSetBonuses(cfg model.ArmorSetConfig) ([]model.SetBonus, error) {
	var out []model.SetBonus
	for _, set := range []model.ArmorSet{cfg.Bow, cfg.Skill} {
		if set == model.ArmorSetNone {
			continue
		}
		b, err := t.SetBonus(set)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}
