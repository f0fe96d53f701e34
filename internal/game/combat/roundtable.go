package combat

import (
	"math/rand/v2"

	"github.com/udisondev/buildcalc/internal/model"
)

// Rand is a source of uniform numbers in [0, 1). *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }

func orGlobal(r Rand) Rand {
	if r == nil {
		return globalRand{}
	}
	return r
}

// Gate is the outcome of the first round-table stage.
type Gate uint8

const (
	GateHit  Gate = iota // precision check passed
	GateMiss             // precision check failed
)

// Table holds the per-hit probabilities the round table draws against.
// Crit is already squeezed: intent has priority when intent + crit > 1.
type Table struct {
	Precision     float64
	Intent        float64
	Crit          float64
	GlanceConvert float64
}

// NewTable builds the round table for one hit.
func NewTable(e model.EffectiveStats, glanceConvert float64) Table {
	return Table{
		Precision:     e.Precision,
		Intent:        e.FinalIntent,
		Crit:          e.SqueezedCrit(),
		GlanceConvert: glanceConvert,
	}
}

// Gate draws the precision check. r <= precision passes.
func (t Table) Gate(r float64) Gate {
	if r <= t.Precision {
		return GateHit
	}
	return GateMiss
}

// ClassifyHit classifies a precision hit from one draw:
// [0, I) Intent, [I, I+C) Crit, otherwise Normal.
func (t Table) ClassifyHit(r float64) model.HitType {
	switch {
	case r < t.Intent:
		return model.HitIntent
	case r < t.Intent+t.Crit:
		return model.HitCrit
	default:
		return model.HitNormal
	}
}

// ClassifyMiss classifies a precision miss. Intent is checked with the same
// probability as on a hit, so intent ignores precision overall. A miss that
// is not intent becomes Normal with the glance conversion rate, otherwise
// Glancing. The second draw is only taken when intent did not fire.
func (t Table) ClassifyMiss(rng Rand) model.HitType {
	if rng.Float64() < t.Intent {
		return model.HitIntent
	}
	if rng.Float64() < t.GlanceConvert {
		return model.HitNormal
	}
	return model.HitGlancing
}

// Resolution is a classified hit without damage.
type Resolution struct {
	HitType        model.HitType
	IsPrecisionHit bool
	Log            string
}

// Resolve runs one independent trial: the precision gate, then the
// classification of the branch it selected.
func (t Table) Resolve(rng Rand) Resolution {
	rng = orGlobal(rng)
	switch t.Gate(rng.Float64()) {
	case GateHit:
		h := t.ClassifyHit(rng.Float64())
		return Resolution{HitType: h, IsPrecisionHit: true, Log: "precision hit: " + string(h)}
	default:
		h := t.ClassifyMiss(rng)
		return Resolution{HitType: h, IsPrecisionHit: false, Log: "precision miss: " + string(h)}
	}
}

// ResolveHit classifies one hit for the given effective stats.
func ResolveHit(e model.EffectiveStats, glanceConvert float64, rng Rand) Resolution {
	return NewTable(e, glanceConvert).Resolve(rng)
}
