package model

import "fmt"

// Quality is the tier of an affix roll.
type Quality string

const (
	QualityCommon    Quality = "Common"
	QualityRare      Quality = "Rare"
	QualityLegendary Quality = "Legendary"
)

// Range is an inclusive [Min, Max] legal value range.
type Range struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// Contains reports whether v lies inside the range.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Affix is a single item modifier.
type Affix struct {
	Name    string  `json:"name" yaml:"name"`
	Type    string  `json:"type" yaml:"type"`
	Value   float64 `json:"value" yaml:"value"`
	Range   *Range  `json:"range,omitempty" yaml:"range,omitempty"`
	Quality Quality `json:"quality,omitempty" yaml:"quality,omitempty"`
}

// Stat returns the enumerated stat this affix modifies.
func (a Affix) Stat() StatID {
	return ParseStatKey(a.Type)
}

// InRange reports whether Value lies within Range. Affixes without a
// declared range are always in range.
func (a Affix) InRange() bool {
	if a.Range == nil {
		return true
	}
	return a.Range.Contains(a.Value)
}

// Same reports whether two affixes have the same type and value.
func (a Affix) Same(b Affix) bool {
	return a.Type == b.Type && a.Value == b.Value
}

func (a Affix) String() string {
	return fmt.Sprintf("%s(%s=%g)", a.Name, a.Type, a.Value)
}

// AffixSlot names the six sub-slots of an item.
type AffixSlot string

const (
	AffixSlotGong    AffixSlot = "Gong"    // initial
	AffixSlotShang   AffixSlot = "Shang"   // tuning 1
	AffixSlotJue     AffixSlot = "Jue"     // tuning 2
	AffixSlotZhi     AffixSlot = "Zhi"     // tuning 3
	AffixSlotYu      AffixSlot = "Yu"      // tuning 4
	AffixSlotDingYin AffixSlot = "DingYin" // final
)

// TuningSlots are the four re-rollable sub-slots, in order.
var TuningSlots = [...]AffixSlot{AffixSlotShang, AffixSlotJue, AffixSlotZhi, AffixSlotYu}

// ModifiableSlots are the sub-slots the optimizer may substitute.
var ModifiableSlots = [...]AffixSlot{AffixSlotShang, AffixSlotJue, AffixSlotZhi, AffixSlotYu, AffixSlotDingYin}

// IsTuning reports whether s is one of the four tuning sub-slots.
func (s AffixSlot) IsTuning() bool {
	switch s {
	case AffixSlotShang, AffixSlotJue, AffixSlotZhi, AffixSlotYu:
		return true
	}
	return false
}
