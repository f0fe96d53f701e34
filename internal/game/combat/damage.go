package combat

import (
	"fmt"
	"math"

	"github.com/udisondev/buildcalc/internal/data"
	"github.com/udisondev/buildcalc/internal/model"
)

// Formula holds the damage constants. The zero value is not usable; build it
// with NewFormula.
type Formula struct {
	Multipliers            data.DamageMultipliers
	PenetrationCoefficient float64
}

// NewFormula returns the damage formula for a constant table.
func NewFormula(c *data.GameConstants) Formula {
	return Formula{
		Multipliers:            c.DamageMultipliers,
		PenetrationCoefficient: c.PenetrationCoefficient,
	}
}

// TypeMultiplier returns the hit-type multiplier.
// Intent and Crit add the attacker's matching damage bonus; Normal and
// Glancing are flat.
func (f Formula) TypeMultiplier(h model.HitType, attacker *model.PanelStats) float64 {
	switch h {
	case model.HitIntent:
		return f.Multipliers.Intent + attacker[model.StatIntentDamageBonus]
	case model.HitCrit:
		return f.Multipliers.Crit + attacker[model.StatCritDamageBonus]
	case model.HitGlancing:
		return f.Multipliers.Glancing
	case model.HitNormal:
		return f.Multipliers.Normal
	}
	return 0
}

// PenetrationMultiplier returns 1 + defense_penetration / coefficient.
func (f Formula) PenetrationMultiplier(attacker *model.PanelStats) float64 {
	return 1 + attacker[model.StatDefensePenetration]/f.PenetrationCoefficient
}

// BonusMultiplier is the product of the four bonus groups.
//
//	A general:     1 + general
//	B martial:     1 + skill        (Martial skills only)
//	C target:      1 + target       (boss targets only)
//	D independent: 1 + independent
//
// Outer, all-martial, specific-martial and boss bonuses stay on the panel but
// feed no group.
func BonusMultiplier(ctx *model.CombatContext) float64 {
	a := &ctx.Attacker

	general := 1 + a[model.StatDamageBonusGeneral]

	martial := 1.0
	if ctx.Skill.Type == model.SkillMartial {
		martial += a[model.StatDamageBonusSkill]
	}

	target := 1.0
	if ctx.Defender.IsBoss {
		target += a[model.StatDamageBonusTarget]
	}

	independent := 1 + a[model.StatDamageBonusIndependent]

	return general * martial * target * independent
}

// GlobalMultiplier is the hit-type independent part: penetration × bonus.
func (f Formula) GlobalMultiplier(ctx *model.CombatContext) float64 {
	return f.PenetrationMultiplier(&ctx.Attacker) * BonusMultiplier(ctx)
}

// BaseDamage returns
//
//	max(1, attack - defense) × motion + fixed + elemental
//
// for hit i of the context's skill. Negative defense counts as zero.
func BaseDamage(attack float64, ctx *model.CombatContext, hit int) float64 {
	defense := max(0, ctx.Defender.Defense)
	return max(1, attack-defense)*ctx.Skill.MotionValue(hit) +
		ctx.Skill.FixedDamage(hit) +
		ctx.Attacker.AvgElementalDamage()
}

// AttackRoll picks the attack value for a hit type: max attack for Intent,
// min attack for Glancing, uniform in [min, max] otherwise.
func AttackRoll(h model.HitType, attacker *model.PanelStats, rng Rand) float64 {
	lo, hi := attacker[model.StatMinAttack], attacker[model.StatMaxAttack]
	switch h {
	case model.HitIntent:
		return hi
	case model.HitGlancing:
		return lo
	default:
		return lo + orGlobal(rng).Float64()*(hi-lo)
	}
}

// breakdown is every factor of one computed hit.
type breakdown struct {
	attack  float64
	base    float64
	typeMul float64
	penMul  float64
	bonus   float64
	damage  float64
}

func (b breakdown) log() string {
	return fmt.Sprintf("atk=%.0f base=%.0f type=%.2f pen=%.2f bonus=%.2f dmg=%.0f",
		b.attack, b.base, b.typeMul, b.penMul, b.bonus, b.damage)
}

func (f Formula) calc(h model.HitType, ctx *model.CombatContext, rng Rand) breakdown {
	b := breakdown{attack: AttackRoll(h, &ctx.Attacker, rng)}
	b.base = BaseDamage(b.attack, ctx, ctx.HitIndex)
	b.typeMul = f.TypeMultiplier(h, &ctx.Attacker)
	b.penMul = f.PenetrationMultiplier(&ctx.Attacker)
	b.bonus = BonusMultiplier(ctx)
	b.damage = math.Round(b.base * b.typeMul * b.penMul * b.bonus)
	return b
}

// CalcDamage computes the damage of one classified hit, using the motion
// value of ctx.HitIndex.
//
// Returns a rounded value. A Miss classification deals nothing.
func (f Formula) CalcDamage(h model.HitType, ctx model.CombatContext, rng Rand) float64 {
	if h == model.HitMiss {
		return 0
	}
	return f.calc(h, &ctx, rng).damage
}

// SimulateHit resolves one hit on the round table and computes its damage.
// The glance conversion rate is taken from the attacker sheet.
func (f Formula) SimulateHit(ctx model.CombatContext, e model.EffectiveStats, rng Rand) model.DamageResult {
	rng = orGlobal(rng)
	res := ResolveHit(e, ctx.Attacker[model.StatGlanceConvertRate], rng)
	b := f.calc(res.HitType, &ctx, rng)
	return model.DamageResult{
		HitType:        res.HitType,
		Damage:         b.damage,
		IsPrecisionHit: res.IsPrecisionHit,
		Log:            res.Log + "; " + b.log(),
	}
}
