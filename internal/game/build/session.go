package build

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/udisondev/buildcalc/internal/data"
	"github.com/udisondev/buildcalc/internal/game/affix"
	"github.com/udisondev/buildcalc/internal/game/evaluation"
	"github.com/udisondev/buildcalc/internal/game/optimize"
	"github.com/udisondev/buildcalc/internal/game/stats"
	"github.com/udisondev/buildcalc/internal/model"
)

var (
	// ErrAffixConflict rejects an item whose tuning affixes repeat a stat type.
	ErrAffixConflict = errors.New("affix conflict")
	// ErrDuplicateTechnique rejects a technique already held in another slot.
	ErrDuplicateTechnique = errors.New("duplicate technique")
	// ErrTechniqueSlot rejects a technique slot index out of range.
	ErrTechniqueSlot = errors.New("invalid technique slot")
	// ErrNoSubSchool is returned by Compute before a sub-school is selected.
	ErrNoSubSchool = errors.New("no sub-school selected")
)

// memoSize bounds the number of cached results.
const memoSize = 32

// Result is every value derived from one set of selections.
type Result struct {
	Context         *evaluation.Context         `json:"-"`
	Panel           model.PanelStats            `json:"panel_stats"`
	Effective       model.EffectiveStats        `json:"effective_stats"`
	ExpectedDamage  float64                     `json:"expected_damage"`
	SkillDamage     float64                     `json:"skill_damage"`
	Graduation      evaluation.GraduationReport `json:"graduation"`
	Optimization    optimize.Report             `json:"optimization"`
	RangeViolations []affix.RangeViolation      `json:"range_violations,omitempty"`
}

// Session holds the current selections of one character. Edits validate and
// replace selections wholesale; Compute rebuilds every derived value from
// scratch. It is safe for concurrent use.
type Session struct {
	tables    *data.Tables
	consts    *data.GameConstants
	conv      stats.Conversion
	checker   affix.Checker
	evaluator *evaluation.Evaluator
	optimizer *optimize.Optimizer

	mu   sync.Mutex
	sel  Selections
	memo map[uint64]*Result
}

type options struct {
	parallelism int
	targetLevel int
	memo        bool
}

// Option configures a Session.
type Option func(*options)

// WithParallelism caps the optimizer's concurrent sub-slot searches.
func WithParallelism(n int) Option {
	return func(o *options) { o.parallelism = n }
}

// WithTargetLevel evaluates against a target of the given level, taking the
// resistance from the resistance table. Zero keeps the standard boss.
func WithTargetLevel(level int) Option {
	return func(o *options) { o.targetLevel = level }
}

// WithoutMemo disables result caching.
func WithoutMemo() Option {
	return func(o *options) { o.memo = false }
}

// NewSession returns an empty session over the game-data tables.
func NewSession(t *data.Tables, opts ...Option) *Session {
	o := options{memo: true}
	for _, opt := range opts {
		opt(&o)
	}

	c := &t.Constants
	target := c.StandardBoss()
	if o.targetLevel > 0 {
		target.Level = o.targetLevel
		target.ResistanceRate = t.ResistanceForLevel(o.targetLevel)
	}

	s := &Session{
		tables:    t,
		consts:    c,
		conv:      stats.NewConversion(c.AttributeConversion),
		checker:   affix.NewChecker(t.AllowedDuplicates()),
		evaluator: evaluation.NewEvaluator(c),
		optimizer: optimize.New(c, affix.NewPools(t), t, optimize.WithParallelism(o.parallelism)),
		sel: Selections{
			Equipment: make(map[model.Slot]model.EquipmentItem),
			Target:    target,
			Skill:     c.ReferenceSkill(),
		},
	}
	if o.memo {
		s.memo = make(map[uint64]*Result)
	}
	return s
}

// Selections returns a copy of the current selections.
func (s *Session) Selections() Selections {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sel.clone()
}

// SetSubSchool selects a sub-school. Techniques that the new sub-school
// cannot use are cleared.
func (s *Session) SetSubSchool(sub model.SubSchool) error {
	if _, err := s.tables.SubSchool(sub); err != nil {
		return fmt.Errorf("selecting sub-school: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sel.SubSchool = sub
	for i, name := range s.sel.Techniques {
		if name == "" {
			continue
		}
		if _, err := s.tables.Technique(sub, name); err != nil {
			s.sel.Techniques[i] = ""
		}
	}
	return nil
}

// SetBaseStats replaces the base attribute sheet.
func (s *Session) SetBaseStats(p model.PanelStats) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sel.Base = p
}

// Equip validates an item and places it in its slot, replacing any item
// already there. Items with conflicting tuning affixes are rejected.
func (s *Session) Equip(item model.EquipmentItem) error {
	if err := item.Validate(); err != nil {
		return fmt.Errorf("equipping: %w", err)
	}
	if r := s.checker.Check(&item); r.HasConflict {
		return fmt.Errorf("equipping %s: %w: %s", item.Slot, ErrAffixConflict, strings.Join(affix.Messages(r), "; "))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sel.Equipment[item.Slot] = item.Clone()
	return nil
}

// Unequip clears a slot.
func (s *Session) Unequip(slot model.Slot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sel.Equipment, slot)
}

// SetTechnique places a technique of the selected sub-school in slot i.
// An empty name clears the slot.
func (s *Session) SetTechnique(i int, name string) error {
	if i < 0 || i >= model.TechniqueSlots {
		return fmt.Errorf("%w %d", ErrTechniqueSlot, i)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if name == "" {
		s.sel.Techniques[i] = ""
		return nil
	}
	if _, err := s.tables.Technique(s.sel.SubSchool, name); err != nil {
		return fmt.Errorf("setting technique: %w", err)
	}
	for j, held := range s.sel.Techniques {
		if j != i && held == name {
			return fmt.Errorf("setting technique %q: %w in slot %d", name, ErrDuplicateTechnique, j)
		}
	}
	s.sel.Techniques[i] = name
	return nil
}

// SetArmorSet selects the bow and skill set pieces.
func (s *Session) SetArmorSet(cfg model.ArmorSetConfig) error {
	if _, err := s.tables.ActiveSetBonuses(cfg); err != nil {
		return fmt.Errorf("selecting armor set: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sel.ArmorSet = cfg
	return nil
}

// SetTarget replaces the defender stub.
func (s *Session) SetTarget(t model.CombatTarget) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sel.Target = t
}

// SetSkill replaces the evaluated skill.
func (s *Session) SetSkill(sk model.Skill) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sel.Skill = sk
}

// Compute runs the full chain for the current selections. Results are cached
// by a hash of the selections, so repeated calls without edits are cheap.
// The returned result is shared and must not be modified.
func (s *Session) Compute(ctx context.Context) (*Result, error) {
	sel := s.Selections()
	if sel.SubSchool == "" {
		return nil, ErrNoSubSchool
	}

	key, err := sel.key()
	if err != nil {
		return nil, err
	}
	if r := s.cached(key); r != nil {
		return r, nil
	}

	r, err := s.compute(ctx, &sel)
	if err != nil {
		return nil, err
	}
	s.store(key, r)
	return r, nil
}

func (s *Session) compute(ctx context.Context, sel *Selections) (*Result, error) {
	bonuses, err := s.tables.ActiveSetBonuses(sel.ArmorSet)
	if err != nil {
		return nil, fmt.Errorf("resolving armor set: %w", err)
	}
	techniques := make([]model.Technique, 0, model.TechniqueSlots)
	for _, name := range sel.TechniqueNames() {
		t, err := s.tables.Technique(sel.SubSchool, name)
		if err != nil {
			return nil, fmt.Errorf("resolving techniques: %w", err)
		}
		techniques = append(techniques, t)
	}

	src := evaluation.Sources{
		Conversion: s.conv,
		Base:       sel.Base,
		Techniques: techniques,
		SetBonuses: bonuses,
		OnUnknownKey: func(source, key string) {
			slog.Debug("dropped unknown stat key", "source", source, "key", key)
		},
	}
	items := sel.Items()
	ec := s.evaluator.NewContext(src, items, sel.Target, sel.Skill)

	opt, err := s.optimizer.Optimize(ctx, ec, sel.SubSchool)
	if err != nil {
		return nil, fmt.Errorf("optimizing: %w", err)
	}

	r := &Result{
		Context:        ec,
		Panel:          ec.Panel,
		Effective:      ec.Effective,
		ExpectedDamage: ec.ExpectedDamage,
		SkillDamage:    ec.SkillDamage,
		Graduation:     s.evaluator.Evaluate(ec),
		Optimization:   opt,
	}
	for i := range items {
		r.RangeViolations = append(r.RangeViolations, affix.CheckRanges(&items[i])...)
	}
	return r, nil
}

func (s *Session) cached(key uint64) *Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.memo[key]
}

func (s *Session) store(key uint64, r *Result) {
	if s.memo == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.memo) >= memoSize {
		clear(s.memo)
	}
	s.memo[key] = r
}

// Equipped returns the slots that currently hold an item, in slot order.
func (s *Session) Equipped() []model.Slot {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Slot
	for _, slot := range model.AllSlots {
		if _, ok := s.sel.Equipment[slot]; ok {
			out = append(out, slot)
		}
	}
	return out
}
