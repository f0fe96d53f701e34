package model

// School is a parent weapon school.
type School string

const (
	SchoolMingJin School = "MingJin"
	SchoolLieShi  School = "LieShi"
	SchoolQianSi  School = "QianSi"
	SchoolPoZhu   School = "PoZhu"
)

// SubSchool is a specialization within a School.
type SubSchool string

const (
	SubSchoolMingJinHong SubSchool = "MingJin_Hong"
	SubSchoolMingJinYing SubSchool = "MingJin_Ying"
	SubSchoolLieShiWei   SubSchool = "LieShi_Wei"
	SubSchoolLieShiJun   SubSchool = "LieShi_Jun"
	SubSchoolQianSiYu    SubSchool = "QianSi_Yu"
	SubSchoolQianSiLin   SubSchool = "QianSi_Lin"
	SubSchoolPoZhuFeng   SubSchool = "PoZhu_Feng"
	SubSchoolPoZhuChen   SubSchool = "PoZhu_Chen"
	SubSchoolPoZhuYuan   SubSchool = "PoZhu_Yuan"
)

// Technique is a selectable passive with a flat bonus map.
type Technique struct {
	Name    string             `json:"name" yaml:"name"`
	Bonuses map[string]float64 `json:"bonuses" yaml:"bonuses"`
}

// TechniqueSlots is the number of techniques a character can equip.
const TechniqueSlots = 4

// ArmorSet identifies a two-piece set (bow + skill slot).
type ArmorSet string

const (
	ArmorSetNone     ArmorSet = ""
	ArmorSetYinYu    ArmorSet = "YinYu"
	ArmorSetJingXian ArmorSet = "JingXian"
	ArmorSetZhuiYing ArmorSet = "ZhuiYing"
)

// SetBonus is a flat stat bonus granted by an active set piece.
type SetBonus struct {
	Set         ArmorSet           `json:"set" yaml:"set"`
	Name        string             `json:"name" yaml:"name"`
	Description string             `json:"description" yaml:"description"`
	Bonuses     map[string]float64 `json:"bonuses" yaml:"bonuses"`
}

// ArmorSetConfig holds the sets in the bow and skill slots.
type ArmorSetConfig struct {
	Bow   ArmorSet `json:"bow" yaml:"bow"`
	Skill ArmorSet `json:"skill" yaml:"skill"`
}
