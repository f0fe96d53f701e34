package evaluation

import (
	"cmp"
	"math"
	"slices"

	"github.com/udisondev/buildcalc/internal/data"
	"github.com/udisondev/buildcalc/internal/game/combat"
	"github.com/udisondev/buildcalc/internal/model"
)

// Evaluator grades builds against one constant table. It is safe for
// concurrent use.
type Evaluator struct {
	consts  *data.GameConstants
	formula combat.Formula
}

// NewEvaluator returns an evaluator for the constant table.
func NewEvaluator(c *data.GameConstants) *Evaluator {
	return &Evaluator{consts: c, formula: combat.NewFormula(c)}
}

// Formula returns the damage formula the evaluator scores with.
func (e *Evaluator) Formula() combat.Formula {
	return e.formula
}

// Evaluate runs every detector and builds the graduation report. Problems
// are ordered by severity, suggestions by descending priority.
func (e *Evaluator) Evaluate(ctx *Context) GraduationReport {
	var problems []Problem
	problems = append(problems, e.DetectOverflow(ctx)...)
	problems = append(problems, e.DetectDilution(ctx)...)
	problems = append(problems, e.DetectCannibalism(ctx)...)
	problems = append(problems, e.DetectThresholds(ctx)...)

	suggestions := Suggest(problems)
	score := e.Score(ctx.ExpectedDamage, problems)

	slices.SortStableFunc(problems, func(a, b Problem) int {
		return cmp.Compare(a.Severity.rank(), b.Severity.rank())
	})
	slices.SortStableFunc(suggestions, func(a, b Suggestion) int {
		return cmp.Compare(b.Priority, a.Priority)
	})

	return GraduationReport{
		Score:                 score,
		Grade:                 e.GradeFor(score),
		ExpectedDamage:        ctx.ExpectedDamage,
		StatAnalysis:          e.AnalyzeStats(ctx),
		Problems:              problems,
		Suggestions:           suggestions,
		OptimizationPotential: e.Potential(ctx),
	}
}

// Score starts from the damage ratio to the reference damage, subtracts a
// severity-weighted penalty per problem, adds the completion bonus when no
// Critical problem remains above the competence threshold and clamps to
// [0, 100].
func (e *Evaluator) Score(expected float64, problems []Problem) float64 {
	ev := &e.consts.Evaluation

	var score float64
	if ev.ReferenceDamage > 0 {
		score = min(100, expected/ev.ReferenceDamage*100)
	}

	for _, p := range problems {
		switch p.Severity {
		case SeverityCritical:
			score -= p.Impact * ev.PenaltyWeights.Critical
		case SeverityWarning:
			score -= p.Impact * ev.PenaltyWeights.Warning
		case SeverityInfo:
			score -= p.Impact * ev.PenaltyWeights.Info
		}
	}

	if !hasCritical(problems) && score > ev.CompletionThreshold {
		score += ev.CompletionBonus
	}
	return min(100, max(0, score))
}

// GradeFor maps a score onto a letter grade.
func (e *Evaluator) GradeFor(score float64) Grade {
	g := e.consts.Evaluation.GradeThresholds
	switch {
	case score >= g.S:
		return GradeS
	case score >= g.A:
		return GradeA
	case score >= g.B:
		return GradeB
	case score >= g.C:
		return GradeC
	}
	return GradeD
}

// Suggest derives actionable suggestions from problems. Precision
// opportunities have no suggestion of their own.
func Suggest(problems []Problem) []Suggestion {
	var out []Suggestion
	for _, p := range problems {
		gain := p.Impact * 100
		switch p.Type {
		case ProblemOverflow:
			switch {
			case p.Affects(model.StatCritRate):
				out = append(out, Suggestion{
					Priority:     9,
					Category:     CategoryRefine,
					Message:      "re-tune the overflowing crit affixes into max attack or penetration",
					ExpectedGain: gain,
				})
			case p.Affects(model.StatIntentRate):
				out = append(out, Suggestion{
					Priority:     8,
					Category:     CategoryRefine,
					Message:      "re-tune the overflowing intent affixes into crit or attack",
					ExpectedGain: gain,
				})
			}
		case ProblemDilution:
			out = append(out, Suggestion{
				Priority:     7,
				Category:     CategoryReplace,
				Message:      "replace some attack affixes with damage bonus affixes",
				ExpectedGain: gain,
			})
		case ProblemCannibalism:
			out = append(out, Suggestion{
				Priority:     9,
				Category:     CategoryAdjust,
				Message:      "lower intent or raise crit damage to stop losing value to the squeeze",
				ExpectedGain: gain,
			})
		case ProblemThreshold:
			if p.Affects(model.StatDefensePenetration) {
				out = append(out, Suggestion{
					Priority:     6,
					Category:     CategoryRefine,
					Message:      "re-tune toward the outer penetration breakpoint",
					ExpectedGain: gain,
				})
			}
		}
	}
	return out
}

// Potential is the percentage gain of one gold max-attack affix, with the
// effective stats held constant. It is rounded to one decimal and never
// negative.
func (e *Evaluator) Potential(ctx *Context) float64 {
	base := e.formula.ExpectedDamage(ctx.Combat, ctx.Effective)
	if base <= 0 {
		return 0
	}
	gold := ctx.Combat
	gold.Attacker[model.StatMaxAttack] += e.consts.Evaluation.GoldAffixValues.MaxAttack

	gain := (e.formula.ExpectedDamage(gold, ctx.Effective) - base) / base * 100
	return math.Round(max(0, gain)*10) / 10
}

// AnalyzeStats breaks down precision, crit and intent efficiency.
func (e *Evaluator) AnalyzeStats(ctx *Context) []StatAnalysis {
	return []StatAnalysis{
		e.analyzePrecision(ctx),
		e.analyzeRate(ctx, model.StatCritRate, ctx.Effective.Crit, e.consts.Caps.EffectiveCritRate),
		e.analyzeRate(ctx, model.StatIntentRate, ctx.Effective.Intent, e.consts.Caps.EffectiveIntentRate),
	}
}

func (e *Evaluator) analyzePrecision(ctx *Context) StatAnalysis {
	ps := e.consts.Evaluation.PrecisionStatus
	eff := ctx.Effective.Precision

	status := StatUnderCap
	switch {
	case eff >= ps.OverCap:
		status = StatOverCap
	case eff >= ps.NearCap:
		status = StatNearCap
	}
	return StatAnalysis{
		Key:        model.StatPrecisionRate.Key(),
		Name:       model.StatPrecisionRate.Name(),
		Current:    ctx.Panel[model.StatPrecisionRate],
		Effective:  eff,
		Cap:        1,
		Efficiency: clamp01(eff),
		Status:     status,
	}
}

func (e *Evaluator) analyzeRate(ctx *Context, id model.StatID, eff, capValue float64) StatAnalysis {
	current := ctx.Panel[id]
	raw := combat.Decay(current, ctx.Resistance)

	a := StatAnalysis{
		Key:       id.Key(),
		Name:      id.Name(),
		Current:   current,
		Effective: eff,
		Cap:       capValue,
		Status:    StatUnderCap,
	}
	if capValue > 0 {
		a.Efficiency = clamp01(eff / capValue)
	}
	switch {
	case raw > capValue:
		a.Status = StatWasted
		waste := (raw - capValue) / raw * 100
		a.WastePercentage = &waste
	case eff >= capValue*e.consts.Evaluation.Thresholds.NearCap:
		a.Status = StatNearCap
	}
	return a
}

func clamp01(v float64) float64 {
	return min(1, max(0, v))
}
