package main

import (
	"bytes"
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"

	"github.com/udisondev/buildcalc/internal/game/build"
	"github.com/udisondev/buildcalc/internal/model"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func writeJSON(w io.Writer, r *build.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

func writeText(w io.Writer, f build.File, r *build.Result) error {
	var b bytes.Buffer

	fmt.Fprintf(&b, "Build: %s (%d items, %d techniques)\n", f.SubSchool, len(f.Items), len(f.Techniques))
	fmt.Fprintf(&b, "Expected damage: %.1f  (skill %.1f)\n", r.ExpectedDamage, r.SkillDamage)

	e := r.Effective
	fmt.Fprintf(&b, "\nEffective rates\n")
	fmt.Fprintf(&b, "  precision %5.1f%%\n", e.Precision*100)
	fmt.Fprintf(&b, "  crit      %5.1f%%%s\n", e.FinalCrit*100, flag(e.CritCapped, " capped"))
	fmt.Fprintf(&b, "  intent    %5.1f%%%s\n", e.FinalIntent*100, flag(e.IntentCapped, " capped"))
	if e.Squeezed() {
		fmt.Fprintf(&b, "  crit squeezed to %.1f%% by intent\n", e.SqueezedCrit()*100)
	}

	fmt.Fprintf(&b, "\nPanel\n")
	for id := model.StatID(1); id < model.StatCount; id++ {
		if v := r.Panel[id]; v != 0 {
			fmt.Fprintf(&b, "  %-32s %g\n", id.Name(), v)
		}
	}

	g := r.Graduation
	fmt.Fprintf(&b, "\nGraduation: %s (score %.1f, potential +%.1f%%)\n", g.Grade, g.Score, g.OptimizationPotential)
	for _, sa := range g.StatAnalysis {
		fmt.Fprintf(&b, "  %-16s %6.1f%% of %5.1f%%  %s\n", sa.Name, sa.Effective*100, sa.Cap*100, sa.Status)
	}
	for _, p := range g.Problems {
		fmt.Fprintf(&b, "  [%s] %s: %s\n", p.Severity, p.Type, p.Message)
	}
	for _, s := range g.Suggestions {
		fmt.Fprintf(&b, "  -> (%d) %s\n", s.Priority, s.Message)
	}

	o := r.Optimization
	fmt.Fprintf(&b, "\nOptimization: total +%.1f%%, gap from optimal %.1f%%\n", o.TotalPotential, o.GapFromOptimal)
	for _, a := range o.Affixes {
		fmt.Fprintf(&b, "  %-10s %-7s %s (priority %d)\n", a.Slot, a.AffixSlot, a.Reason, a.Priority)
	}
	for _, rs := range o.Resets {
		fmt.Fprintf(&b, "  reset %-10s efficiency %.0f%%, %s\n", rs.Slot, rs.CurrentEfficiency*100, rs.Direction)
	}

	if len(r.RangeViolations) > 0 {
		fmt.Fprintf(&b, "\nOut-of-range affixes\n")
		for _, v := range r.RangeViolations {
			fmt.Fprintf(&b, "  %s %s %s=%g not in [%g, %g]\n", v.Slot, v.AffixSlot, v.Type, v.Value, v.Range.Min, v.Range.Max)
		}
	}

	if _, err := w.Write(b.Bytes()); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

func flag(on bool, s string) string {
	if on {
		return s
	}
	return ""
}
