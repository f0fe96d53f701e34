package data

import "github.com/udisondev/buildcalc/internal/model"

// ResistanceEntry maps a target level range to its hit-type resistance.
type ResistanceEntry struct {
	MinLevel   int     `yaml:"min_level"`
	MaxLevel   int     `yaml:"max_level"`
	Resistance float64 `yaml:"resistance"`
	Title      string  `yaml:"title"`
}

// DamageMultipliers are the per-hit-type base multipliers.
type DamageMultipliers struct {
	Intent   float64 `yaml:"intent"`
	Crit     float64 `yaml:"crit"`
	Normal   float64 `yaml:"normal"`
	Glancing float64 `yaml:"glancing"`
}

// Caps holds the probability caps and the precision floor.
type Caps struct {
	EffectiveCritRate   float64 `yaml:"effective_crit_rate"`
	EffectiveIntentRate float64 `yaml:"effective_intent_rate"`
	BasePrecision       float64 `yaml:"base_precision"`
}

// BossDefaults describes the standard evaluation target.
type BossDefaults struct {
	Level      int     `yaml:"level"`
	Defense    float64 `yaml:"defense"`
	Resistance float64 `yaml:"resistance"`
	IsBoss     bool    `yaml:"is_boss"`
}

// CombatDefaults is the target and skill used when the caller supplies none.
type CombatDefaults struct {
	StandardBoss   BossDefaults `yaml:"standard_boss"`
	ReferenceSkill model.Skill  `yaml:"reference_skill"`
}

// GradeThresholds are the minimum scores for each letter grade.
type GradeThresholds struct {
	S float64 `yaml:"s"`
	A float64 `yaml:"a"`
	B float64 `yaml:"b"`
	C float64 `yaml:"c"`
}

// PenaltyWeights scale a problem's impact into score points by severity.
type PenaltyWeights struct {
	Critical float64 `yaml:"critical"`
	Warning  float64 `yaml:"warning"`
	Info     float64 `yaml:"info"`
}

// EvaluationThresholds are generic efficiency cut-offs.
type EvaluationThresholds struct {
	ResetEfficiency float64 `yaml:"reset_efficiency"`
	MinGain         float64 `yaml:"min_gain"`
	NearCap         float64 `yaml:"near_cap"`
	MediumCap       float64 `yaml:"medium_cap"`
}

// GoldAffixValues are reference increments of a max-roll affix.
type GoldAffixValues struct {
	CritRate   float64 `yaml:"crit_rate"`
	IntentRate float64 `yaml:"intent_rate"`
	MaxAttack  float64 `yaml:"max_attack"`
}

// WarningThresholds parameterise the dilution, cannibalism and breakpoint detectors.
type WarningThresholds struct {
	HighAttackLowBonus struct {
		AttackThreshold float64 `yaml:"attack_threshold"`
		BonusThreshold  float64 `yaml:"bonus_threshold"`
		Impact          float64 `yaml:"impact"`
	} `yaml:"high_attack_low_bonus"`
	IntentVsCritDamage struct {
		TotalRateThreshold float64 `yaml:"total_rate_threshold"`
		DamageRatio        float64 `yaml:"damage_ratio"`
	} `yaml:"intent_vs_crit_damage"`
	PrecisionRange struct {
		Min    float64 `yaml:"min"`
		Max    float64 `yaml:"max"`
		Impact float64 `yaml:"impact"`
	} `yaml:"precision_range"`
	PenetrationBreakpoint struct {
		Min       float64 `yaml:"min"`
		Threshold float64 `yaml:"threshold"`
		Impact    float64 `yaml:"impact"`
	} `yaml:"penetration_breakpoint"`
}

// PrecisionStatus are the ratios at which precision is labelled over or near cap.
type PrecisionStatus struct {
	OverCap float64 `yaml:"over_cap"`
	NearCap float64 `yaml:"near_cap"`
}

// EvaluationConstants configures the graduation report.
type EvaluationConstants struct {
	ReferenceDamage      float64              `yaml:"reference_damage"`
	GradeThresholds      GradeThresholds      `yaml:"grade_thresholds"`
	PenaltyWeights       PenaltyWeights       `yaml:"penalty_weights"`
	CompletionBonus      float64              `yaml:"completion_bonus"`
	CompletionThreshold  float64              `yaml:"completion_threshold"`
	OverflowImpactFactor float64              `yaml:"overflow_impact_factor"`
	Thresholds           EvaluationThresholds `yaml:"thresholds"`
	GoldAffixValues      GoldAffixValues      `yaml:"gold_affix_values"`
	WarningThresholds    WarningThresholds    `yaml:"warning_thresholds"`
	PrecisionStatus      PrecisionStatus      `yaml:"precision_status"`
	EfficiencyDefaults   struct {
		Base float64 `yaml:"base"`
	} `yaml:"efficiency_defaults"`
}

// OptimizationConstants configures the substitution search.
type OptimizationConstants struct {
	ResetThreshold   float64 `yaml:"reset_threshold"`
	MinGainThreshold float64 `yaml:"min_gain_threshold"`
	MaxSuggestions   int     `yaml:"max_suggestions"`
	PotentialTopN    int     `yaml:"potential_top_n"`
}

// GameConstants is the immutable constant table passed to every engine.
type GameConstants struct {
	Version     string `yaml:"version"`
	Description string `yaml:"description"`

	LevelCaps struct {
		MaxWorldLevel     int `yaml:"max_world_level"`
		MaxCharacterLevel int `yaml:"max_character_level"`
	} `yaml:"level_caps"`

	ResistanceTable    []ResistanceEntry `yaml:"resistance_table"`
	MaxLevelResistance float64           `yaml:"max_level_resistance"`

	DamageMultipliers      DamageMultipliers `yaml:"damage_multipliers"`
	PenetrationCoefficient float64           `yaml:"penetration_coefficient"`
	Caps                   Caps              `yaml:"caps"`

	// attribute key -> derived stat key -> delta per point
	AttributeConversion map[string]map[string]float64 `yaml:"attribute_conversion"`

	EquipmentSlots struct {
		Total                  int          `yaml:"total"`
		AffixSlotsPerEquipment int          `yaml:"affix_slots_per_equipment"`
		List                   []model.Slot `yaml:"list"`
	} `yaml:"equipment_slots"`
	AffixSlotNames map[model.AffixSlot]string `yaml:"affix_slot_names"`

	Combat       CombatDefaults        `yaml:"combat"`
	Evaluation   EvaluationConstants   `yaml:"evaluation"`
	Optimization OptimizationConstants `yaml:"optimization"`
}

// ResistanceForLevel returns the hit-type resistance of a target of the
// given level. Levels above the table use MaxLevelResistance, levels below
// it have no resistance.
func (c *GameConstants) ResistanceForLevel(level int) float64 {
	top := 0
	for _, e := range c.ResistanceTable {
		if level >= e.MinLevel && level <= e.MaxLevel {
			return e.Resistance
		}
		top = max(top, e.MaxLevel)
	}
	if len(c.ResistanceTable) > 0 && level > top {
		return c.MaxLevelResistance
	}
	return 0
}

// StandardBoss returns the default evaluation target.
func (c *GameConstants) StandardBoss() model.CombatTarget {
	b := c.Combat.StandardBoss
	return model.CombatTarget{
		Level:          b.Level,
		Defense:        b.Defense,
		ResistanceRate: b.Resistance,
		IsBoss:         b.IsBoss,
	}
}

// ReferenceSkill returns a copy of the single-hit reference skill.
func (c *GameConstants) ReferenceSkill() model.Skill {
	s := c.Combat.ReferenceSkill
	s.MultiplierPerHit = append([]float64(nil), s.MultiplierPerHit...)
	s.FixedDamagePerHit = append([]float64(nil), s.FixedDamagePerHit...)
	return s
}

// AffixSlotName returns the display name of an affix sub-slot.
func (c *GameConstants) AffixSlotName(s model.AffixSlot) string {
	if n, ok := c.AffixSlotNames[s]; ok {
		return n
	}
	return string(s)
}
