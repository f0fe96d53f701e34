package model

// StatID enumerates every numeric field of a character sheet.
// External data refers to stats by string key; ParseStatKey is the only
// place those keys are mapped onto this enumeration.
type StatID uint8

const (
	StatUnknown StatID = iota

	// Five core attributes
	StatConstitution
	StatDefenseStat
	StatAgility
	StatTechnique
	StatStrength

	// Survival
	StatHP
	StatDefense

	// Outer attack
	StatMinAttack
	StatMaxAttack

	// Hit-type rates
	StatPrecisionRate
	StatCritRate
	StatIntentRate
	StatDirectCritRate
	StatDirectIntentRate
	StatGlanceConvertRate

	// Damage bonuses (fractions, 0.1 = 10%)
	StatDamageBonusGeneral
	StatDamageBonusOuter
	StatDamageBonusElemental
	StatDamageBonusAllMartial
	StatDamageBonusSpecificMartial
	StatDamageBonusBoss
	StatDamageBonusSkill
	StatDamageBonusTarget
	StatDamageBonusIndependent

	// Healing / mitigation
	StatHealingBonusOuter
	StatHealingBonusElemental
	StatHealingBonusCrit
	StatResistanceOuter
	StatDamageReductionOuter
	StatDamageReductionElemental

	// Magic / PvP
	StatDamageBonusMagicSingle
	StatDamageBonusMagicGroup
	StatDamageBonusPlayer

	// Hit-type damage
	StatCritDamageBonus
	StatIntentDamageBonus

	// Penetration / flat
	StatDefensePenetration
	StatElementalPenetration
	StatFixedDamage

	// Elemental attack pairs
	StatMinMingjinDamage
	StatMaxMingjinDamage
	StatMinLieshiDamage
	StatMaxLieshiDamage
	StatMinQiansiDamage
	StatMaxQiansiDamage
	StatMinPozhuDamage
	StatMaxPozhuDamage
	StatMinWuxiangDamage
	StatMaxWuxiangDamage

	StatCount
)

type statInfo struct {
	key  string
	name string
}

var statTable = [StatCount]statInfo{
	StatUnknown:                    {"", "Unknown"},
	StatConstitution:               {"constitution", "Constitution"},
	StatDefenseStat:                {"defense_stat", "Guard"},
	StatAgility:                    {"agility", "Agility"},
	StatTechnique:                  {"technique", "Momentum"},
	StatStrength:                   {"strength", "Strength"},
	StatHP:                         {"hp", "HP"},
	StatDefense:                    {"defense", "Outer Defense"},
	StatMinAttack:                  {"min_attack", "Min Outer Attack"},
	StatMaxAttack:                  {"max_attack", "Max Outer Attack"},
	StatPrecisionRate:              {"precision_rate", "Precision Rate"},
	StatCritRate:                   {"crit_rate", "Crit Rate"},
	StatIntentRate:                 {"intent_rate", "Intent Rate"},
	StatDirectCritRate:             {"direct_crit_rate", "Direct Crit Rate"},
	StatDirectIntentRate:           {"direct_intent_rate", "Direct Intent Rate"},
	StatGlanceConvertRate:          {"glance_convert_rate", "Glance Conversion Rate"},
	StatDamageBonusGeneral:         {"damage_bonus_general", "General Damage Bonus"},
	StatDamageBonusOuter:           {"damage_bonus_outer", "Outer Damage Bonus"},
	StatDamageBonusElemental:       {"damage_bonus_elemental", "Elemental Damage Bonus"},
	StatDamageBonusAllMartial:      {"damage_bonus_all_martial", "All Martial Arts Bonus"},
	StatDamageBonusSpecificMartial: {"damage_bonus_specific_martial", "Specific Martial Art Bonus"},
	StatDamageBonusBoss:            {"damage_bonus_boss", "Boss Damage Bonus"},
	StatDamageBonusSkill:           {"damage_bonus_skill", "Martial Skill Bonus"},
	StatDamageBonusTarget:          {"damage_bonus_target", "Target Damage Bonus"},
	StatDamageBonusIndependent:     {"damage_bonus_independent", "Independent Damage Bonus"},
	StatHealingBonusOuter:          {"healing_bonus_outer", "Outer Healing Bonus"},
	StatHealingBonusElemental:      {"healing_bonus_elemental", "Elemental Healing Bonus"},
	StatHealingBonusCrit:           {"healing_bonus_crit", "Crit Healing Bonus"},
	StatResistanceOuter:            {"resistance_outer", "Outer Resistance"},
	StatDamageReductionOuter:       {"damage_reduction_outer", "Outer Damage Reduction"},
	StatDamageReductionElemental:   {"damage_reduction_elemental", "Elemental Damage Reduction"},
	StatDamageBonusMagicSingle:     {"damage_bonus_magic_single", "Single-Target Arcane Bonus"},
	StatDamageBonusMagicGroup:      {"damage_bonus_magic_group", "Group Arcane Bonus"},
	StatDamageBonusPlayer:          {"damage_bonus_player", "Player Damage Bonus"},
	StatCritDamageBonus:            {"crit_damage_bonus", "Crit Damage Bonus"},
	StatIntentDamageBonus:          {"intent_damage_bonus", "Intent Damage Bonus"},
	StatDefensePenetration:         {"defense_penetration", "Outer Penetration"},
	StatElementalPenetration:       {"elemental_penetration", "Elemental Penetration"},
	StatFixedDamage:                {"fixed_damage", "Fixed Damage"},
	StatMinMingjinDamage:           {"min_mingjin_damage", "Min Bellstrike Attack"},
	StatMaxMingjinDamage:           {"max_mingjin_damage", "Max Bellstrike Attack"},
	StatMinLieshiDamage:            {"min_lieshi_damage", "Min Stonesplit Attack"},
	StatMaxLieshiDamage:            {"max_lieshi_damage", "Max Stonesplit Attack"},
	StatMinQiansiDamage:            {"min_qiansi_damage", "Min Silkbind Attack"},
	StatMaxQiansiDamage:            {"max_qiansi_damage", "Max Silkbind Attack"},
	StatMinPozhuDamage:             {"min_pozhu_damage", "Min Bamboocut Attack"},
	StatMaxPozhuDamage:             {"max_pozhu_damage", "Max Bamboocut Attack"},
	StatMinWuxiangDamage:           {"min_wuxiang_damage", "Min Formless Attack"},
	StatMaxWuxiangDamage:           {"max_wuxiang_damage", "Max Formless Attack"},
}

// statByKey is built once from statTable.
var statByKey = func() map[string]StatID {
	m := make(map[string]StatID, StatCount)
	for id := StatID(1); id < StatCount; id++ {
		m[statTable[id].key] = id
	}
	return m
}()

// ParseStatKey maps an external stat-type key onto the enumeration.
// Keys that name no PanelStats field yield StatUnknown.
func ParseStatKey(key string) StatID {
	if id, ok := statByKey[key]; ok {
		return id
	}
	return StatUnknown
}

// Key returns the external key ("max_attack"). StatUnknown has an empty key.
func (s StatID) Key() string {
	if s >= StatCount {
		return ""
	}
	return statTable[s].key
}

// Name returns the display name.
func (s StatID) Name() string {
	if s >= StatCount {
		return statTable[StatUnknown].name
	}
	return statTable[s].name
}

// Valid reports whether s names a real PanelStats field.
func (s StatID) Valid() bool {
	return s > StatUnknown && s < StatCount
}

func (s StatID) String() string {
	if !s.Valid() {
		return "unknown"
	}
	return statTable[s].key
}

// ElementalPair is a min/max elemental attack pair.
type ElementalPair struct {
	Min StatID
	Max StatID
}

// ElementalPairs lists the four school pairs followed by the formless pair.
var ElementalPairs = [...]ElementalPair{
	{StatMinMingjinDamage, StatMaxMingjinDamage},
	{StatMinLieshiDamage, StatMaxLieshiDamage},
	{StatMinQiansiDamage, StatMaxQiansiDamage},
	{StatMinPozhuDamage, StatMaxPozhuDamage},
	{StatMinWuxiangDamage, StatMaxWuxiangDamage},
}
