package evaluation

import (
	"fmt"
	"math"

	"github.com/udisondev/buildcalc/internal/game/combat"
	"github.com/udisondev/buildcalc/internal/model"
)

// DetectOverflow reports crit or intent whose decayed value exceeds its cap.
// Impact is a fixed fraction of the excess.
func (e *Evaluator) DetectOverflow(ctx *Context) []Problem {
	ev := &e.consts.Evaluation
	caps := e.consts.Caps

	var out []Problem
	check := func(id model.StatID, capValue, goldAffix float64, label string) {
		raw := combat.Decay(ctx.Panel[id], ctx.Resistance)
		if raw <= capValue {
			return
		}
		wasted := raw - capValue
		var affixes float64
		if goldAffix > 0 {
			affixes = wasted / goldAffix
		}
		out = append(out, Problem{
			Type:          ProblemOverflow,
			Severity:      SeverityCritical,
			Message:       fmt.Sprintf("%s overflows by %.1f%%, about %.1f gold affixes wasted", label, wasted*100, affixes),
			AffectedStats: []string{id.Key()},
			Impact:        wasted * ev.OverflowImpactFactor,
		})
	}
	check(model.StatCritRate, caps.EffectiveCritRate, ev.GoldAffixValues.CritRate, "crit rate")
	check(model.StatIntentRate, caps.EffectiveIntentRate, ev.GoldAffixValues.IntentRate, "intent rate")
	return out
}

// DetectDilution reports a high average attack paired with low damage
// bonuses, where stacking more attack has diminishing returns.
func (e *Evaluator) DetectDilution(ctx *Context) []Problem {
	th := e.consts.Evaluation.WarningThresholds.HighAttackLowBonus
	p := &ctx.Panel

	bonus := p[model.StatDamageBonusOuter] + p[model.StatDamageBonusElemental] +
		p[model.StatDamageBonusAllMartial] + p[model.StatDamageBonusIndependent]
	if p.AvgAttack() <= th.AttackThreshold || bonus >= th.BonusThreshold {
		return nil
	}
	return []Problem{{
		Type:     ProblemDilution,
		Severity: SeverityWarning,
		Message:  fmt.Sprintf("attack %.0f is high but damage bonus is only %.1f%%, returns are diminishing", p.AvgAttack(), bonus*100),
		AffectedStats: []string{
			model.StatMinAttack.Key(),
			model.StatMaxAttack.Key(),
			model.StatDamageBonusOuter.Key(),
		},
		Impact: th.Impact,
	}}
}

// DetectCannibalism reports an active squeeze where intent hits are worth
// materially less than the crit hits they displace.
//
//	loss = (final_intent + final_crit - 1) × (critMul - intentMul)
func (e *Evaluator) DetectCannibalism(ctx *Context) []Problem {
	th := e.consts.Evaluation.WarningThresholds.IntentVsCritDamage
	eff := ctx.Effective

	critMul := e.formula.TypeMultiplier(model.HitCrit, &ctx.Panel)
	intentMul := e.formula.TypeMultiplier(model.HitIntent, &ctx.Panel)

	total := eff.FinalIntent + eff.FinalCrit
	if total <= th.TotalRateThreshold || intentMul >= critMul*th.DamageRatio {
		return nil
	}
	squeezed := max(0, total-1)
	loss := math.Abs(squeezed * (critMul - intentMul))
	return []Problem{{
		Type:          ProblemCannibalism,
		Severity:      SeverityCritical,
		Message:       fmt.Sprintf("intent squeezes out crit, losing %.1f%%", loss*100),
		AffectedStats: []string{model.StatCritRate.Key(), model.StatIntentRate.Key()},
		Impact:        loss,
	}}
}

// DetectThresholds reports stats sitting just below a known breakpoint.
func (e *Evaluator) DetectThresholds(ctx *Context) []Problem {
	wt := e.consts.Evaluation.WarningThresholds
	p := &ctx.Panel

	var out []Problem
	pen := wt.PenetrationBreakpoint
	if v := p[model.StatDefensePenetration]; v > pen.Min && v < pen.Threshold {
		out = append(out, Problem{
			Type:          ProblemThreshold,
			Severity:      SeverityInfo,
			Message:       fmt.Sprintf("outer penetration is %.0f short of the %.0f breakpoint", pen.Threshold-v, pen.Threshold),
			AffectedStats: []string{model.StatDefensePenetration.Key()},
			Impact:        pen.Impact,
		})
	}
	prec := wt.PrecisionRange
	if v := p[model.StatPrecisionRate]; v > prec.Min && v < prec.Max {
		out = append(out, Problem{
			Type:          ProblemThreshold,
			Severity:      SeverityInfo,
			Message:       "precision is close to full, more precision removes glancing hits",
			AffectedStats: []string{model.StatPrecisionRate.Key()},
			Impact:        prec.Impact,
		})
	}
	return out
}
