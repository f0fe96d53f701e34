package model

import (
	"fmt"
	"math"
	"sort"

	"gopkg.in/yaml.v3"
)

// PanelStats is the flat "white" character sheet, indexed by StatID.
// It is a value type: assignment copies every field.
type PanelStats [StatCount]float64

// Get returns the value of stat id (0 for StatUnknown).
func (p *PanelStats) Get(id StatID) float64 {
	if !id.Valid() {
		return 0
	}
	return p[id]
}

// Add adds delta to stat id and reports whether the stat was recognised.
func (p *PanelStats) Add(id StatID, delta float64) bool {
	if !id.Valid() {
		return false
	}
	p[id] += delta
	return true
}

// AvgAttack returns (min_attack + max_attack) / 2.
func (p *PanelStats) AvgAttack() float64 {
	return (p[StatMinAttack] + p[StatMaxAttack]) / 2
}

// AvgElementalDamage sums the average of every elemental attack pair.
func (p *PanelStats) AvgElementalDamage() float64 {
	var sum float64
	for _, pair := range ElementalPairs {
		sum += (p[pair.Min] + p[pair.Max]) / 2
	}
	return sum
}

// Finite reports whether every field is a finite real number.
func (p *PanelStats) Finite() bool {
	for id := StatID(1); id < StatCount; id++ {
		if math.IsNaN(p[id]) || math.IsInf(p[id], 0) {
			return false
		}
	}
	return true
}

// ToMap returns the non-zero fields keyed by external stat key.
func (p PanelStats) ToMap() map[string]float64 {
	m := make(map[string]float64)
	for id := StatID(1); id < StatCount; id++ {
		if p[id] != 0 {
			m[id.Key()] = p[id]
		}
	}
	return m
}

// PanelStatsFromMap builds a sheet from key/value pairs.
// Unknown keys are returned so callers can decide whether to care.
func PanelStatsFromMap(m map[string]float64) (PanelStats, []string) {
	var p PanelStats
	var unknown []string
	for key, v := range m {
		id := ParseStatKey(key)
		if !p.Add(id, v) {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)
	return p, unknown
}

// MarshalYAML encodes the sheet as a mapping of non-zero stats.
func (p PanelStats) MarshalYAML() (any, error) {
	return p.ToMap(), nil
}

// UnmarshalYAML decodes a mapping of stat keys. Unknown keys are an error
// here because sheets are hand-written.
func (p *PanelStats) UnmarshalYAML(node *yaml.Node) error {
	var m map[string]float64
	if err := node.Decode(&m); err != nil {
		return err
	}
	stats, unknown := PanelStatsFromMap(m)
	if len(unknown) > 0 {
		return fmt.Errorf("unknown stat keys %v", unknown)
	}
	*p = stats
	return nil
}

// MarshalJSON encodes the sheet the same way as MarshalYAML.
func (p PanelStats) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.ToMap())
}

// UnmarshalJSON decodes a mapping of stat keys.
func (p *PanelStats) UnmarshalJSON(b []byte) error {
	var m map[string]float64
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	stats, unknown := PanelStatsFromMap(m)
	if len(unknown) > 0 {
		return fmt.Errorf("unknown stat keys %v", unknown)
	}
	*p = stats
	return nil
}
