package evaluation

import (
	"slices"

	"github.com/udisondev/buildcalc/internal/model"
)

// Severity ranks a detected problem.
type Severity string

const (
	SeverityCritical Severity = "Critical"
	SeverityWarning  Severity = "Warning"
	SeverityInfo     Severity = "Info"
)

func (s Severity) rank() int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityWarning:
		return 1
	}
	return 2
}

// ProblemType names the detector that produced a problem.
type ProblemType string

const (
	ProblemOverflow    ProblemType = "Overflow"
	ProblemDilution    ProblemType = "Dilution"
	ProblemCannibalism ProblemType = "Cannibalism"
	ProblemThreshold   ProblemType = "Threshold"
)

// Problem is one detected inefficiency or opportunity.
type Problem struct {
	Type          ProblemType `json:"type"`
	Severity      Severity    `json:"severity"`
	Message       string      `json:"message"`
	AffectedStats []string    `json:"affected_stats"`
	Impact        float64     `json:"impact_value"`
}

// Affects reports whether the problem names the stat.
func (p Problem) Affects(id model.StatID) bool {
	return slices.Contains(p.AffectedStats, id.Key())
}

// SuggestionCategory groups suggestions by the kind of action.
type SuggestionCategory string

const (
	CategoryRefine  SuggestionCategory = "Refine"
	CategoryReplace SuggestionCategory = "Replace"
	CategoryAdjust  SuggestionCategory = "Adjust"
)

// Suggestion is an actionable fix derived from a problem.
type Suggestion struct {
	Priority     int                `json:"priority"`
	Category     SuggestionCategory `json:"category"`
	Message      string             `json:"message"`
	ExpectedGain float64            `json:"expected_gain"`
}

// StatStatus labels how close a rate is to its cap.
type StatStatus string

const (
	StatUnderCap StatStatus = "UnderCap"
	StatNearCap  StatStatus = "NearCap"
	StatOverCap  StatStatus = "OverCap"
	StatWasted   StatStatus = "Wasted"
)

// StatAnalysis is the efficiency breakdown of one rate.
type StatAnalysis struct {
	Key        string     `json:"key"`
	Name       string     `json:"name"`
	Current    float64    `json:"current"`
	Effective  float64    `json:"effective"`
	Cap        float64    `json:"cap"`
	Efficiency float64    `json:"efficiency"`
	Status     StatStatus `json:"status"`
	// WastePercentage is set only when the decayed value exceeds the cap.
	WastePercentage *float64 `json:"waste_percentage,omitempty"`
}

// Grade is the letter grade of a score.
type Grade string

const (
	GradeS Grade = "S"
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
)

// GraduationReport is the result of Evaluate.
type GraduationReport struct {
	Score                 float64        `json:"overall_score"`
	Grade                 Grade          `json:"grade"`
	ExpectedDamage        float64        `json:"expected_damage"`
	StatAnalysis          []StatAnalysis `json:"stat_analysis"`
	Problems              []Problem      `json:"problems"`
	Suggestions           []Suggestion   `json:"suggestions"`
	OptimizationPotential float64        `json:"optimization_potential"`
}

// HasCritical reports whether any problem is Critical.
func (r *GraduationReport) HasCritical() bool {
	return hasCritical(r.Problems)
}

func hasCritical(ps []Problem) bool {
	return slices.ContainsFunc(ps, func(p Problem) bool {
		return p.Severity == SeverityCritical
	})
}
