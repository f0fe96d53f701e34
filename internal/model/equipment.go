package model

import "fmt"

// Slot is one of the eight equipment slots.
type Slot string

const (
	SlotMainWeapon Slot = "MainWeapon"
	SlotSubWeapon  Slot = "SubWeapon"
	SlotRing       Slot = "Ring"
	SlotPendant    Slot = "Pendant"
	SlotHead       Slot = "Head"
	SlotChest      Slot = "Chest"
	SlotLegs       Slot = "Legs"
	SlotWrist      Slot = "Wrist"
)

// AllSlots lists the equipment slots in display order.
var AllSlots = [...]Slot{
	SlotMainWeapon, SlotSubWeapon,
	SlotRing, SlotPendant,
	SlotHead, SlotChest, SlotLegs, SlotWrist,
}

// SlotCategory groups slots that share affix pools.
type SlotCategory string

const (
	CategoryWeapon      SlotCategory = "weapon"
	CategoryAccessory   SlotCategory = "accessory"
	CategoryArmorTop    SlotCategory = "armor_top"
	CategoryArmorBottom SlotCategory = "armor_bottom"
)

// Category returns the pool category of the slot.
func (s Slot) Category() SlotCategory {
	switch s {
	case SlotMainWeapon, SlotSubWeapon:
		return CategoryWeapon
	case SlotRing, SlotPendant:
		return CategoryAccessory
	case SlotHead, SlotChest:
		return CategoryArmorTop
	default:
		return CategoryArmorBottom
	}
}

// IsArmor reports whether the slot is one of the four armor pieces.
func (c SlotCategory) IsArmor() bool {
	return c == CategoryArmorTop || c == CategoryArmorBottom
}

// Valid reports whether s is a known slot.
func (s Slot) Valid() bool {
	for _, v := range AllSlots {
		if v == s {
			return true
		}
	}
	return false
}

// MaxInitialAffixes caps the initial (Gong) affix list.
const MaxInitialAffixes = 1

// EquipmentItem is one piece of gear.
type EquipmentItem struct {
	ID      string  `json:"id" yaml:"id"`
	Slot    Slot    `json:"slot" yaml:"slot"`
	Level   int     `json:"level" yaml:"level"`
	Gong    []Affix `json:"affix_gong,omitempty" yaml:"affix_gong,omitempty"`
	Shang   *Affix  `json:"affix_shang,omitempty" yaml:"affix_shang,omitempty"`
	Jue     *Affix  `json:"affix_jue,omitempty" yaml:"affix_jue,omitempty"`
	Zhi     *Affix  `json:"affix_zhi,omitempty" yaml:"affix_zhi,omitempty"`
	Yu      *Affix  `json:"affix_yu,omitempty" yaml:"affix_yu,omitempty"`
	DingYin *Affix  `json:"affix_dingyin,omitempty" yaml:"affix_dingyin,omitempty"`
}

// Affix returns the affix in a single-valued sub-slot (nil when empty).
// For Gong it returns the first initial affix.
func (e *EquipmentItem) Affix(slot AffixSlot) *Affix {
	switch slot {
	case AffixSlotGong:
		if len(e.Gong) == 0 {
			return nil
		}
		return &e.Gong[0]
	case AffixSlotShang:
		return e.Shang
	case AffixSlotJue:
		return e.Jue
	case AffixSlotZhi:
		return e.Zhi
	case AffixSlotYu:
		return e.Yu
	case AffixSlotDingYin:
		return e.DingYin
	}
	return nil
}

// WithAffix returns a copy of the item with the given sub-slot replaced.
// The receiver is not modified.
func (e EquipmentItem) WithAffix(slot AffixSlot, a Affix) EquipmentItem {
	out := e.Clone()
	switch slot {
	case AffixSlotGong:
		out.Gong = []Affix{a}
	case AffixSlotShang:
		out.Shang = &a
	case AffixSlotJue:
		out.Jue = &a
	case AffixSlotZhi:
		out.Zhi = &a
	case AffixSlotYu:
		out.Yu = &a
	case AffixSlotDingYin:
		out.DingYin = &a
	}
	return out
}

// Clone returns a deep copy.
func (e EquipmentItem) Clone() EquipmentItem {
	out := e
	if e.Gong != nil {
		out.Gong = append([]Affix(nil), e.Gong...)
	}
	out.Shang = cloneAffix(e.Shang)
	out.Jue = cloneAffix(e.Jue)
	out.Zhi = cloneAffix(e.Zhi)
	out.Yu = cloneAffix(e.Yu)
	out.DingYin = cloneAffix(e.DingYin)
	return out
}

func cloneAffix(a *Affix) *Affix {
	if a == nil {
		return nil
	}
	c := *a
	if a.Range != nil {
		r := *a.Range
		c.Range = &r
	}
	return &c
}

// Affixes returns every attached affix: initial, four tuning, final.
func (e *EquipmentItem) Affixes() []Affix {
	out := make([]Affix, 0, len(e.Gong)+5)
	out = append(out, e.Gong...)
	for _, a := range []*Affix{e.Shang, e.Jue, e.Zhi, e.Yu, e.DingYin} {
		if a != nil {
			out = append(out, *a)
		}
	}
	return out
}

// Validate checks structural invariants (known slot, initial list length).
// Affix conflicts are checked separately by the affix package.
func (e *EquipmentItem) Validate() error {
	if !e.Slot.Valid() {
		return fmt.Errorf("item %q: unknown slot %q", e.ID, e.Slot)
	}
	if len(e.Gong) > MaxInitialAffixes {
		return fmt.Errorf("item %q: %d initial affixes, max %d", e.ID, len(e.Gong), MaxInitialAffixes)
	}
	return nil
}
