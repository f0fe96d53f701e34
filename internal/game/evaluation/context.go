// Package evaluation grades a build: it detects overflow, dilution,
// cannibalism and breakpoint opportunities and scores the expected damage.
package evaluation

import (
	"github.com/udisondev/buildcalc/internal/game/combat"
	"github.com/udisondev/buildcalc/internal/game/stats"
	"github.com/udisondev/buildcalc/internal/model"
)

// Sources are the non-equipment inputs of the aggregator. Keeping them in the
// context lets the optimizer re-aggregate hypothetical equipment sets.
type Sources struct {
	Conversion   stats.Conversion
	Base         model.PanelStats
	Techniques   []model.Technique
	SetBonuses   []model.SetBonus
	OnUnknownKey stats.UnknownKeyHook
}

// Aggregate folds the sources over an equipment set.
func (s *Sources) Aggregate(items []model.EquipmentItem) model.PanelStats {
	opts := []stats.Option{stats.WithSetBonuses(s.SetBonuses...)}
	if s.OnUnknownKey != nil {
		opts = append(opts, stats.WithUnknownKeyHook(s.OnUnknownKey))
	}
	return stats.Aggregate(s.Conversion, s.Base, items, s.Techniques, opts...)
}

// Context is a read-only snapshot of one aggregated build, shared by the
// evaluation and optimization engines.
type Context struct {
	Sources Sources
	Items   []model.EquipmentItem

	Panel      model.PanelStats
	Effective  model.EffectiveStats
	Resistance float64
	Combat     model.CombatContext

	// ExpectedDamage is the analytic expectation of the skill's first hit.
	ExpectedDamage float64
	// SkillDamage sums the expectation over every hit of the skill.
	SkillDamage float64
}

// NewContext aggregates the sources over items and derives everything the
// engines consume. Resistance comes from the target.
func (e *Evaluator) NewContext(src Sources, items []model.EquipmentItem, target model.CombatTarget, skill model.Skill) *Context {
	panel := src.Aggregate(items)
	eff := combat.CalcEffectiveFor(&panel, target.ResistanceRate, e.consts.Caps)
	cc := model.CombatContext{Attacker: panel, Defender: target, Skill: skill}

	return &Context{
		Sources:        src,
		Items:          items,
		Panel:          panel,
		Effective:      eff,
		Resistance:     target.ResistanceRate,
		Combat:         cc,
		ExpectedDamage: e.formula.ExpectedDamage(cc, eff),
		SkillDamage:    e.formula.ExpectedSkillDamage(cc, eff),
	}
}
