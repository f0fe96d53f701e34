package optimize

import "github.com/udisondev/buildcalc/internal/model"

// Kind separates re-tuning suggestions from final-slot suggestions.
type Kind string

const (
	KindTiaolu  Kind = "Tiaolu"
	KindDingyin Kind = "Dingyin"
)

// AffixSuggestion is one virtual substitution that raised expected damage.
type AffixSuggestion struct {
	Slot         model.Slot      `json:"slot"`
	AffixSlot    model.AffixSlot `json:"affix_slot"`
	Current      *model.Affix    `json:"current_affix"`
	Target       model.Affix     `json:"target_affix"`
	ExpectedGain float64         `json:"expected_gain"`
	Priority     int             `json:"priority"`
	Kind         Kind            `json:"type"`
	Reason       string          `json:"reason"`
}

// ResetSuggestion flags an item too far from the reference layout to be
// worth tuning one affix at a time.
type ResetSuggestion struct {
	Slot              model.Slot `json:"slot"`
	CurrentEfficiency float64    `json:"current_efficiency"`
	Threshold         float64    `json:"threshold"`
	Direction         string     `json:"recommend_direction"`
}

// Report is the result of Optimize.
type Report struct {
	Affixes        []AffixSuggestion `json:"affix_optimizations"`
	Resets         []ResetSuggestion `json:"reset_suggestions"`
	TotalPotential float64           `json:"total_potential"`
	GapFromOptimal float64           `json:"gap_from_optimal"`
}
