// Package optimize searches single-affix substitutions for expected-damage
// gains and compares equipped items against the reference build.
package optimize

import (
	"cmp"
	"context"
	"fmt"
	"math"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/buildcalc/internal/data"
	"github.com/udisondev/buildcalc/internal/game/combat"
	"github.com/udisondev/buildcalc/internal/game/evaluation"
	"github.com/udisondev/buildcalc/internal/model"
)

// CandidateSource supplies the substitution pool of one sub-slot.
type CandidateSource interface {
	Candidates(slot model.Slot, s model.AffixSlot, sub model.SubSchool) []model.Affix
}

// ReferenceSource supplies the precomputed reference build of a sub-school.
// A nil build means no reference exists.
type ReferenceSource interface {
	OptimalBuild(sub model.SubSchool) *data.OptimalBuild
}

// Optimizer runs the substitution search. It is safe for concurrent use.
type Optimizer struct {
	consts     data.OptimizationConstants
	formula    combat.Formula
	candidates CandidateSource
	refs       ReferenceSource
	limit      int
}

// Option configures an Optimizer.
type Option func(*Optimizer)

// WithParallelism caps the number of sub-slots searched concurrently.
// Values below 1 select GOMAXPROCS.
func WithParallelism(n int) Option {
	return func(o *Optimizer) {
		if n >= 1 {
			o.limit = n
		}
	}
}

// New returns an optimizer over the given pools and references.
func New(c *data.GameConstants, candidates CandidateSource, refs ReferenceSource, opts ...Option) *Optimizer {
	o := &Optimizer{
		consts:     c.Optimization,
		formula:    combat.NewFormula(c),
		candidates: candidates,
		refs:       refs,
		limit:      runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Optimize searches every modifiable sub-slot of every equipped item and
// compares the items against the sub-school's reference build.
//
// Effective stats are held at ec.Effective for every candidate: substitutions
// re-aggregate panel stats but do not re-derive capped probabilities.
func (o *Optimizer) Optimize(ctx context.Context, ec *evaluation.Context, sub model.SubSchool) (Report, error) {
	all, err := o.search(ctx, ec, sub)
	if err != nil {
		return Report{}, fmt.Errorf("searching substitutions: %w", err)
	}

	ref := o.refs.OptimalBuild(sub)
	rep := Report{
		Resets:         o.Resets(ec.Items, ref),
		TotalPotential: o.totalPotential(all),
		GapFromOptimal: GapFromOptimal(ec.ExpectedDamage, ref),
	}
	rep.Affixes = all[:min(len(all), o.consts.MaxSuggestions)]
	return rep, nil
}

type subSlot struct {
	item int
	slot model.AffixSlot
}

func (o *Optimizer) search(ctx context.Context, ec *evaluation.Context, sub model.SubSchool) ([]AffixSuggestion, error) {
	var jobs []subSlot
	for i := range ec.Items {
		for _, s := range model.ModifiableSlots {
			jobs = append(jobs, subSlot{item: i, slot: s})
		}
	}

	results := make([][]AffixSuggestion, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.limit)
	for j, job := range jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[j] = o.searchSlot(ec, job, sub)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []AffixSuggestion
	for _, r := range results {
		all = append(all, r...)
	}
	slices.SortStableFunc(all, func(a, b AffixSuggestion) int {
		return cmp.Compare(b.ExpectedGain, a.ExpectedGain)
	})
	return all, nil
}

func (o *Optimizer) searchSlot(ec *evaluation.Context, job subSlot, sub model.SubSchool) []AffixSuggestion {
	base := ec.ExpectedDamage
	item := &ec.Items[job.item]
	current := item.Affix(job.slot)

	var out []AffixSuggestion
	for _, cand := range o.candidates.Candidates(item.Slot, job.slot, sub) {
		if current != nil && current.Same(cand) {
			continue
		}
		dmg := o.substitute(ec, job, cand)

		var gain float64
		if base > 0 {
			gain = (dmg - base) / base * 100
		}
		if gain <= o.consts.MinGainThreshold {
			continue
		}

		s := AffixSuggestion{
			Slot:         item.Slot,
			AffixSlot:    job.slot,
			Target:       cand,
			ExpectedGain: gain,
			Priority:     Priority(gain, job.slot),
			Kind:         KindTiaolu,
			Reason:       reason(current, cand, gain),
		}
		if current != nil {
			c := *current
			s.Current = &c
		}
		if job.slot == model.AffixSlotDingYin {
			s.Kind = KindDingyin
		}
		out = append(out, s)
	}
	return out
}

// substitute returns the expected damage with one affix replaced.
func (o *Optimizer) substitute(ec *evaluation.Context, job subSlot, cand model.Affix) float64 {
	items := slices.Clone(ec.Items)
	items[job.item] = items[job.item].WithAffix(job.slot, cand)

	panel := ec.Sources.Aggregate(items)
	return o.formula.ExpectedDamage(ec.Combat.WithAttacker(panel), ec.Effective)
}

// Priority scores a suggestion from 1 to 10: twice the gain, plus 2 for the
// final slot and 1 for the first two tuning slots.
func Priority(gain float64, s model.AffixSlot) int {
	p := min(10, int(math.Round(gain*2)))
	switch s {
	case model.AffixSlotDingYin:
		p = min(10, p+2)
	case model.AffixSlotShang, model.AffixSlotJue:
		p = min(10, p+1)
	}
	return max(1, p)
}

func reason(current *model.Affix, target model.Affix, gain float64) string {
	if current == nil {
		return fmt.Sprintf("add %s, +%.1f%%", target.Name, gain)
	}
	return fmt.Sprintf("%s → %s, +%.1f%%", current.Name, target.Name, gain)
}

// totalPotential is the mean gain of the best suggestions.
func (o *Optimizer) totalPotential(sorted []AffixSuggestion) float64 {
	top := sorted[:min(len(sorted), o.consts.PotentialTopN)]
	if len(top) == 0 {
		return 0
	}
	var sum float64
	for _, s := range top {
		sum += s.ExpectedGain
	}
	return sum / float64(len(top))
}

// GapFromOptimal is the percentage shortfall from the reference damage, or
// 0 without a usable reference.
func GapFromOptimal(current float64, ref *data.OptimalBuild) float64 {
	if ref == nil || ref.ExpectedDamage == 0 {
		return 0
	}
	return (ref.ExpectedDamage - current) / ref.ExpectedDamage * 100
}
