package model

// EffectiveStats are the post-resistance, post-cap ("yellow") probabilities.
// FinalCrit + FinalIntent may exceed 1.0; the round table squeezes crit.
type EffectiveStats struct {
	Precision float64 `json:"effective_precision"`
	Crit      float64 `json:"effective_crit"`
	Intent    float64 `json:"effective_intent"`

	FinalCrit   float64 `json:"final_crit"`
	FinalIntent float64 `json:"final_intent"`

	// Raw (pre-cap, post-resistance) value reached its cap.
	CritCapped   bool `json:"is_crit_capped"`
	IntentCapped bool `json:"is_intent_capped"`
}

// SqueezedCrit returns the crit probability after intent priority is applied.
func (e EffectiveStats) SqueezedCrit() float64 {
	if e.FinalIntent+e.FinalCrit > 1.0 {
		return max(0, 1.0-e.FinalIntent)
	}
	return e.FinalCrit
}

// Squeezed reports whether crit and intent together exceed 100%.
func (e EffectiveStats) Squeezed() bool {
	return e.FinalIntent+e.FinalCrit > 1.0
}

// HitType classifies a single hit.
type HitType string

const (
	HitMiss     HitType = "Miss"
	HitGlancing HitType = "Glancing"
	HitNormal   HitType = "Normal"
	HitCrit     HitType = "Crit"
	HitIntent   HitType = "Intent"
)

// SkillType selects whether the martial bonus group applies.
type SkillType string

const (
	SkillMartial SkillType = "Martial"
	SkillMagic   SkillType = "Magic"
)

// Skill describes the attack being evaluated.
type Skill struct {
	Name              string    `json:"name" yaml:"name"`
	Hits              int       `json:"hits" yaml:"hits"`
	MultiplierPerHit  []float64 `json:"multiplier_per_hit" yaml:"multiplier_per_hit"`
	FixedDamagePerHit []float64 `json:"fixed_damage_per_hit,omitempty" yaml:"fixed_damage_per_hit,omitempty"`
	Type              SkillType `json:"type" yaml:"type"`
}

// MotionValue returns the multiplier of hit i, or 1.0 when absent or zero.
func (s Skill) MotionValue(i int) float64 {
	if i >= 0 && i < len(s.MultiplierPerHit) && s.MultiplierPerHit[i] != 0 {
		return s.MultiplierPerHit[i]
	}
	return 1.0
}

// FixedDamage returns the flat damage of hit i, or 0 when absent.
func (s Skill) FixedDamage(i int) float64 {
	if i >= 0 && i < len(s.FixedDamagePerHit) {
		return s.FixedDamagePerHit[i]
	}
	return 0
}

// HitCount returns the number of hits, at least one.
func (s Skill) HitCount() int {
	n := max(s.Hits, len(s.MultiplierPerHit))
	return max(n, 1)
}

// CombatTarget is the defender stub.
type CombatTarget struct {
	Level          int     `json:"level" yaml:"level"`
	Defense        float64 `json:"defense" yaml:"defense"`
	ResistanceRate float64 `json:"resistance_rate" yaml:"resistance_rate"`
	IsBoss         bool    `json:"is_boss" yaml:"is_boss"`
}

// CombatContext bundles attacker sheet, defender and skill.
type CombatContext struct {
	Attacker PanelStats   `json:"attacker"`
	Defender CombatTarget `json:"defender"`
	Skill    Skill        `json:"skill"`
	Buffs    []string     `json:"buffs,omitempty"`
	// HitIndex selects the skill hit whose motion value is used.
	HitIndex int `json:"hit_index,omitempty"`
}

// WithAttacker returns a copy of the context with a different attacker sheet.
func (c CombatContext) WithAttacker(p PanelStats) CombatContext {
	c.Attacker = p
	return c
}

// DamageResult is one resolved and computed hit.
type DamageResult struct {
	HitType        HitType `json:"hit_type"`
	Damage         float64 `json:"damage"`
	IsPrecisionHit bool    `json:"is_precision_hit"`
	Log            string  `json:"log,omitempty"`
}
