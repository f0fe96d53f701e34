// Package combat turns panel stats into hit probabilities, resolves single
// hits and computes per-hit and expected damage.
package combat

import (
	"github.com/udisondev/buildcalc/internal/data"
	"github.com/udisondev/buildcalc/internal/model"
)

// WhiteRates are the panel ("white") rates that feed CalcEffective.
type WhiteRates struct {
	Precision    float64
	Crit         float64
	Intent       float64
	DirectCrit   float64
	DirectIntent float64
}

// WhiteRatesOf extracts the rate fields of a panel sheet.
func WhiteRatesOf(p *model.PanelStats) WhiteRates {
	return WhiteRates{
		Precision:    p[model.StatPrecisionRate],
		Crit:         p[model.StatCritRate],
		Intent:       p[model.StatIntentRate],
		DirectCrit:   p[model.StatDirectCritRate],
		DirectIntent: p[model.StatDirectIntentRate],
	}
}

// Decay applies hit-type resistance to a white rate: v / (1 + resistance).
func Decay(v, resistance float64) float64 {
	return v / (1 + resistance)
}

// CalcEffective derives the "yellow" probabilities.
//
//	precision = white                              (white <= floor)
//	precision = floor + (white - floor) / (1 + r)  (white >  floor)
//	crit      = min(white / (1 + r), critCap)
//	intent    = min(white / (1 + r), intentCap)
//	final     = effective + direct
//
// Only precision above the floor is resisted. Direct rates bypass both resistance and the caps. The capped flags
// report whether the decayed rate reached its cap.
func CalcEffective(w WhiteRates, resistance float64, caps data.Caps) model.EffectiveStats {
	precision := w.Precision
	if w.Precision > caps.BasePrecision {
		precision = caps.BasePrecision + Decay(w.Precision-caps.BasePrecision, resistance)
	}

	rawCrit := Decay(w.Crit, resistance)
	rawIntent := Decay(w.Intent, resistance)
	crit := min(rawCrit, caps.EffectiveCritRate)
	intent := min(rawIntent, caps.EffectiveIntentRate)

	return model.EffectiveStats{
		Precision:    precision,
		Crit:         crit,
		Intent:       intent,
		FinalCrit:    crit + w.DirectCrit,
		FinalIntent:  intent + w.DirectIntent,
		CritCapped:   rawCrit >= caps.EffectiveCritRate,
		IntentCapped: rawIntent >= caps.EffectiveIntentRate,
	}
}

// CalcEffectiveFor is CalcEffective over a panel sheet.
func CalcEffectiveFor(p *model.PanelStats, resistance float64, caps data.Caps) model.EffectiveStats {
	return CalcEffective(WhiteRatesOf(p), resistance, caps)
}
