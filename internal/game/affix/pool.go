package affix

import (
	"github.com/udisondev/buildcalc/internal/data"
	"github.com/udisondev/buildcalc/internal/model"
)

// Pools materialises candidate affixes from the game-data tables. Every
// candidate is rolled at the top of its range with Legendary quality.
type Pools struct {
	tables *data.Tables
}

// NewPools returns pools backed by t.
func NewPools(t *data.Tables) Pools {
	return Pools{tables: t}
}

func (p Pools) fromTypes(types []string, context string) []model.Affix {
	out := make([]model.Affix, 0, len(types))
	for _, t := range types {
		r, ok := p.tables.AffixRange(t, context)
		if !ok {
			continue
		}
		out = append(out, model.Affix{
			Name:    p.tables.AffixName(t),
			Type:    t,
			Value:   r.Max,
			Range:   &model.Range{Min: r.Min, Max: r.Max},
			Quality: model.QualityLegendary,
		})
	}
	return out
}

// Initial returns the initial (Gong) pool of a slot.
func (p Pools) Initial(slot model.Slot) []model.Affix {
	c := p.tables.SlotCategory(slot)
	return p.fromTypes(p.tables.InitialTypes(c), data.InitialRangeContext(c))
}

// Tiaolu returns the generic tuning pool of a slot.
func (p Pools) Tiaolu(slot model.Slot) []model.Affix {
	return p.fromTypes(p.tables.TiaoluTypes(p.tables.SlotCategory(slot)), data.RangeTuning)
}

// Zhunlv returns the school-specific re-tuning pool. PoZhu_Feng armor gets
// the extra defensive options.
func (p Pools) Zhunlv(slot model.Slot, sub model.SubSchool) []model.Affix {
	return p.fromTypes(p.tables.ZhunlvTypes(sub, p.tables.SlotCategory(slot)), data.RangeTuning)
}

// Rare returns the fixed-value rare rolls of a slot.
func (p Pools) Rare(slot model.Slot) []model.Affix {
	rares := p.tables.RareAffixes(p.tables.SlotCategory(slot))
	out := make([]model.Affix, 0, len(rares))
	for _, r := range rares {
		out = append(out, model.Affix{
			Name:    r.Name,
			Type:    r.Type,
			Value:   r.Value,
			Range:   &model.Range{Min: r.Value, Max: r.Value},
			Quality: model.QualityLegendary,
		})
	}
	return out
}

// Dingyin returns the final-slot pool of a slot.
func (p Pools) Dingyin(slot model.Slot) []model.Affix {
	rolls := p.tables.DingyinAffixes(p.tables.SlotCategory(slot))
	out := make([]model.Affix, 0, len(rolls))
	for _, d := range rolls {
		out = append(out, model.Affix{
			Name:    d.Name,
			Type:    d.Type,
			Value:   d.Max,
			Range:   &model.Range{Min: d.Min, Max: d.Max},
			Quality: model.QualityLegendary,
		})
	}
	return out
}

// Candidates returns the substitution pool of one sub-slot: the re-tuning
// pool for tuning sub-slots, the final pool for DingYin and nothing for the
// initial sub-slot.
func (p Pools) Candidates(slot model.Slot, s model.AffixSlot, sub model.SubSchool) []model.Affix {
	switch {
	case s.IsTuning():
		return p.Zhunlv(slot, sub)
	case s == model.AffixSlotDingYin:
		return p.Dingyin(slot)
	}
	return nil
}
