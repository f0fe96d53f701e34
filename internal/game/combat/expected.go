package combat

import "github.com/udisondev/buildcalc/internal/model"

// Outcomes are the probabilities of the four disjoint hit outcomes.
type Outcomes struct {
	Intent   float64
	Crit     float64
	Normal   float64
	Glancing float64
}

// Sum returns the total probability. It is 1 for any table.
func (o Outcomes) Sum() float64 {
	return o.Intent + o.Crit + o.Normal + o.Glancing
}

func clamp01(v float64) float64 {
	return min(1, max(0, v))
}

// Probabilities returns the closed-form outcome distribution of the round table.
//
//	P(Intent)   = I
//	P(Crit)     = p × C'
//	P(Normal)   = p × (1 - I - C') + (1 - p)(1 - I) × g
//	P(Glancing) = (1 - p)(1 - I)(1 - g)
//
// where C' is the squeezed crit and g the glance conversion rate (normally 0).
// Precision above 1 behaves like 1, as it does in the resolver.
func (t Table) Probabilities() Outcomes {
	p := clamp01(t.Precision)
	intent := clamp01(t.Intent)
	crit := clamp01(min(t.Crit, 1-intent))
	g := clamp01(t.GlanceConvert)

	miss := (1 - p) * (1 - intent)
	return Outcomes{
		Intent:   intent,
		Crit:     p * crit,
		Normal:   p*(1-intent-crit) + miss*g,
		Glancing: miss * (1 - g),
	}
}

// Probabilities returns the outcome distribution for effective stats.
func Probabilities(e model.EffectiveStats, glanceConvert float64) Outcomes {
	return NewTable(e, glanceConvert).Probabilities()
}

// branchDamage returns the pre-multiplier damage of each outcome for hit i:
// max attack for Intent, average for Crit and Normal, min for Glancing.
func (f Formula) branchDamage(ctx *model.CombatContext, hit int) Outcomes {
	a := &ctx.Attacker
	avg := a.AvgAttack()
	return Outcomes{
		Intent:   BaseDamage(a[model.StatMaxAttack], ctx, hit) * f.TypeMultiplier(model.HitIntent, a),
		Crit:     BaseDamage(avg, ctx, hit) * f.TypeMultiplier(model.HitCrit, a),
		Normal:   BaseDamage(avg, ctx, hit) * f.TypeMultiplier(model.HitNormal, a),
		Glancing: BaseDamage(a[model.StatMinAttack], ctx, hit) * f.TypeMultiplier(model.HitGlancing, a),
	}
}

func (f Formula) expectedHit(ctx *model.CombatContext, probs Outcomes, hit int) float64 {
	d := f.branchDamage(ctx, hit)
	return probs.Intent*d.Intent + probs.Crit*d.Crit + probs.Normal*d.Normal + probs.Glancing*d.Glancing
}

// ExpectedDamage is the analytic expectation of one hit (ctx.HitIndex).
// Penetration and bonus multipliers do not depend on hit type, so they scale
// the weighted sum once.
func (f Formula) ExpectedDamage(ctx model.CombatContext, e model.EffectiveStats) float64 {
	probs := Probabilities(e, ctx.Attacker[model.StatGlanceConvertRate])
	return f.expectedHit(&ctx, probs, ctx.HitIndex) * f.GlobalMultiplier(&ctx)
}

// ExpectedSkillDamage sums the expectation over every hit of the skill, each
// with its own motion value and fixed damage.
func (f Formula) ExpectedSkillDamage(ctx model.CombatContext, e model.EffectiveStats) float64 {
	probs := Probabilities(e, ctx.Attacker[model.StatGlanceConvertRate])
	var sum float64
	for i := range ctx.Skill.HitCount() {
		sum += f.expectedHit(&ctx, probs, i)
	}
	return sum * f.GlobalMultiplier(&ctx)
}
