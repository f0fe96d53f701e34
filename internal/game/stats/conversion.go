package stats

import (
	"cmp"
	"slices"

	"github.com/udisondev/buildcalc/internal/model"
)

// Attributes are the five core attributes that feed the conversion table.
var Attributes = [...]model.StatID{
	model.StatConstitution,
	model.StatDefenseStat,
	model.StatAgility,
	model.StatTechnique,
	model.StatStrength,
}

type conversionRow struct {
	from  model.StatID
	to    model.StatID
	coeff float64
}

// Conversion is the linear attribute-to-combat-stat table.
type Conversion struct {
	rows []conversionRow
}

// NewConversion builds the table from attribute key -> stat key -> coefficient.
// Rows whose source is not a core attribute, or whose target names no panel
// stat, are skipped.
func NewConversion(table map[string]map[string]float64) Conversion {
	var rows []conversionRow
	for fromKey, targets := range table {
		from := model.ParseStatKey(fromKey)
		if !slices.Contains(Attributes[:], from) {
			continue
		}
		for toKey, coeff := range targets {
			to := model.ParseStatKey(toKey)
			if !to.Valid() || coeff == 0 {
				continue
			}
			rows = append(rows, conversionRow{from: from, to: to, coeff: coeff})
		}
	}
	slices.SortFunc(rows, func(a, b conversionRow) int {
		if c := cmp.Compare(a.from, b.from); c != 0 {
			return c
		}
		return cmp.Compare(a.to, b.to)
	})
	return Conversion{rows: rows}
}

// Derive returns the derived deltas for the attribute totals in p.
// Only the targets of the table are non-zero.
func (c Conversion) Derive(p *model.PanelStats) model.PanelStats {
	var out model.PanelStats
	for _, r := range c.rows {
		out[r.to] += p[r.from] * r.coeff
	}
	return out
}

// Len returns the number of conversion rows.
func (c Conversion) Len() int {
	return len(c.rows)
}
