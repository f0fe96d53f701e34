package data

import "github.com/udisondev/buildcalc/internal/model"

// Range contexts used as keys of AffixDefinition.Ranges.
const (
	RangeInitialWeapon    = "initial_weapon"
	RangeInitialAccessory = "initial_accessory"
	RangeInitialArmor     = "initial_armor"
	RangeTuning           = "tuning"
)

// AffixDefinition describes one stat type that can roll as an affix.
type AffixDefinition struct {
	Name      string                 `yaml:"name"`
	Category  string                 `yaml:"category"`
	IsPercent bool                   `yaml:"is_percent"`
	Ranges    map[string]model.Range `yaml:"ranges"`
}

// InitialRangeContext returns the range key for an initial affix on a slot
// of the given category.
func InitialRangeContext(c model.SlotCategory) string {
	switch c {
	case model.CategoryWeapon:
		return RangeInitialWeapon
	case model.CategoryAccessory:
		return RangeInitialAccessory
	default:
		return RangeInitialArmor
	}
}

// SlotInfo names a slot and its pool category.
type SlotInfo struct {
	Category model.SlotCategory `yaml:"category"`
	Name     string             `yaml:"name"`
}

// SchoolInfo is a parent school entry.
type SchoolInfo struct {
	Name       string            `yaml:"name"`
	SubSchools []model.SubSchool `yaml:"sub_schools"`
}

// SubSchoolInfo is a sub-school entry.
type SubSchoolInfo struct {
	Name         string       `yaml:"name"`
	ParentSchool model.School `yaml:"parent_school"`
	Description  string       `yaml:"description"`
}

// ZhunlvPool lists the school-specific re-tuning stat types.
type ZhunlvPool struct {
	Weapon    []string `yaml:"weapon"`
	Accessory []string `yaml:"accessory"`
	Armor     []string `yaml:"armor"`
	// ArmorFeng extends the armor pool of the PoZhu_Feng sub-school only.
	ArmorFeng []string `yaml:"armor_feng,omitempty"`
}

// RareAffix is a fixed-value rare roll.
type RareAffix struct {
	Type  string  `yaml:"type"`
	Name  string  `yaml:"name"`
	Value float64 `yaml:"value"`
}

// DingyinAffix is a final-slot roll with its legal range.
type DingyinAffix struct {
	Type string  `yaml:"type"`
	Name string  `yaml:"name"`
	Min  float64 `yaml:"min"`
	Max  float64 `yaml:"max"`
}

// ConflictRules holds the tuning duplicate whitelist.
type ConflictRules struct {
	Description       string              `yaml:"description"`
	Strict            bool                `yaml:"strict"`
	AllowedDuplicates map[string][]string `yaml:"allowed_duplicates"`
}

// AffixPools is the allowed-stat-type table per slot category and school.
type AffixPools struct {
	Version     string `yaml:"version"`
	Description string `yaml:"description"`

	Slots      map[model.Slot]SlotInfo            `yaml:"slots"`
	Schools    map[model.School]SchoolInfo        `yaml:"schools"`
	SubSchools map[model.SubSchool]SubSchoolInfo  `yaml:"sub_schools"`
	Initial    map[model.SlotCategory][]string    `yaml:"initial"`
	Tiaolu     map[model.SlotCategory][]string    `yaml:"tiaolu"`
	Zhunlv     map[model.School]ZhunlvPool        `yaml:"zhunlv"`
	Rare       map[model.SlotCategory][]RareAffix `yaml:"rare"`
	Dingyin    struct {
		General []DingyinAffix `yaml:"general"`
		Armor   struct {
			Description string  `yaml:"description"`
			Min         float64 `yaml:"min"`
			Max         float64 `yaml:"max"`
		} `yaml:"armor"`
	} `yaml:"dingyin"`
	ConflictRules ConflictRules `yaml:"conflict_rules"`
}

// MartialArtSchool is a named technique list.
type MartialArtSchool struct {
	Name       string            `yaml:"name"`
	Techniques []model.Technique `yaml:"techniques"`
}

// OptimalSlot is the reference layout of one equipment slot.
type OptimalSlot struct {
	Gong    []model.Affix `yaml:"gong"`
	Shang   *model.Affix  `yaml:"shang"`
	Jue     *model.Affix  `yaml:"jue"`
	Zhi     *model.Affix  `yaml:"zhi"`
	Yu      *model.Affix  `yaml:"yu"`
	DingYin *model.Affix  `yaml:"dingyin"`
}

// Affix returns the reference affix of a modifiable sub-slot (nil if unset).
func (o *OptimalSlot) Affix(s model.AffixSlot) *model.Affix {
	switch s {
	case model.AffixSlotShang:
		return o.Shang
	case model.AffixSlotJue:
		return o.Jue
	case model.AffixSlotZhi:
		return o.Zhi
	case model.AffixSlotYu:
		return o.Yu
	case model.AffixSlotDingYin:
		return o.DingYin
	case model.AffixSlotGong:
		if len(o.Gong) > 0 {
			return &o.Gong[0]
		}
	}
	return nil
}

// OptimalBuild is a precomputed reference build for one sub-school.
type OptimalBuild struct {
	School         model.School               `yaml:"school"`
	SubSchool      model.SubSchool            `yaml:"sub_school"`
	Name           string                     `yaml:"name"`
	Description    string                     `yaml:"description"`
	ExpectedDamage float64                    `yaml:"expected_damage"`
	Version        string                     `yaml:"version"`
	Slots          map[model.Slot]OptimalSlot `yaml:"slots"`
}

// Item materialises the reference layout of slot s as an equipment item.
func (b *OptimalBuild) Item(s model.Slot) (model.EquipmentItem, bool) {
	o, ok := b.Slots[s]
	if !ok {
		return model.EquipmentItem{}, false
	}
	item := model.EquipmentItem{
		ID:      "optimal-" + string(s),
		Slot:    s,
		Gong:    o.Gong,
		Shang:   o.Shang,
		Jue:     o.Jue,
		Zhi:     o.Zhi,
		Yu:      o.Yu,
		DingYin: o.DingYin,
	}
	return item.Clone(), true
}
