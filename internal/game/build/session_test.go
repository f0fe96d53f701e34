package build

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/buildcalc/internal/data"
	"github.com/udisondev/buildcalc/internal/model"
)

func newSession(t *testing.T, opts ...Option) *Session {
	t.Helper()
	s := NewSession(data.Default(), opts...)
	require.NoError(t, s.SetSubSchool(model.SubSchoolLieShiJun))
	return s
}

func TestSetSubSchoolUnknown(t *testing.T) {
	t.Parallel()

	s := NewSession(data.Default())
	err := s.SetSubSchool("Nope")
	require.ErrorIs(t, err, data.ErrUnknownSubSchool)
	assert.Empty(t, s.Selections().SubSchool)
}

func TestSetSubSchoolClearsForeignTechniques(t *testing.T) {
	t.Parallel()

	s := newSession(t)
	require.NoError(t, s.SetTechnique(0, "Warlord"))
	require.NoError(t, s.SetTechnique(1, "Keen Eye"))

	require.NoError(t, s.SetSubSchool(model.SubSchoolMingJinHong))
	sel := s.Selections()
	assert.Equal(t, []string{"Keen Eye"}, sel.TechniqueNames())
}

func TestEquip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		item    model.EquipmentItem
		wantErr error
	}{
		{
			name: "distinct",
			item: data.TestItem("r", model.SlotRing, data.TestAffix("crit_rate", 0.05), data.TestAffix("max_attack", 80)),
		},
		{
			name: "allowed duplicate",
			item: data.TestItem("h", model.SlotHead, data.TestAffix("hp", 300), data.TestAffix("hp", 300)),
		},
		{
			name:    "conflict",
			item:    data.TestItem("r", model.SlotRing, data.TestAffix("crit_rate", 0.05), data.TestAffix("crit_rate", 0.04)),
			wantErr: ErrAffixConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := newSession(t)
			err := s.Equip(tt.item)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, s.Equipped())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, []model.Slot{tt.item.Slot}, s.Equipped())
		})
	}

	t.Run("unknown slot", func(t *testing.T) {
		t.Parallel()
		s := newSession(t)
		require.Error(t, s.Equip(model.EquipmentItem{ID: "x", Slot: "Tail"}))
	})
}

func TestEquipCopiesItem(t *testing.T) {
	t.Parallel()

	s := newSession(t)
	item := data.TestItem("w", model.SlotMainWeapon, data.TestAffix("max_attack", 50))
	require.NoError(t, s.Equip(item))

	item.Shang.Value = 999
	got := s.Selections().Equipment[model.SlotMainWeapon]
	assert.Equal(t, 50.0, got.Shang.Value)

	s.Unequip(model.SlotMainWeapon)
	assert.Empty(t, s.Equipped())
}

func TestSetTechnique(t *testing.T) {
	t.Parallel()

	s := newSession(t)
	require.NoError(t, s.SetTechnique(0, "Warlord"))

	require.ErrorIs(t, s.SetTechnique(1, "Warlord"), ErrDuplicateTechnique)
	require.ErrorIs(t, s.SetTechnique(1, "Crimson Edge"), data.ErrUnknownTechnique)
	require.ErrorIs(t, s.SetTechnique(4, "Keen Eye"), ErrTechniqueSlot)
	require.ErrorIs(t, s.SetTechnique(-1, "Keen Eye"), ErrTechniqueSlot)

	// Re-placing the same technique in its own slot is fine.
	require.NoError(t, s.SetTechnique(0, "Warlord"))
	require.NoError(t, s.SetTechnique(0, ""))
	sel := s.Selections()
	assert.Empty(t, sel.TechniqueNames())
}

func TestSetArmorSet(t *testing.T) {
	t.Parallel()

	s := newSession(t)
	require.ErrorIs(t, s.SetArmorSet(model.ArmorSetConfig{Bow: "Nope"}), data.ErrUnknownArmorSet)
	require.NoError(t, s.SetArmorSet(model.ArmorSetConfig{Bow: model.ArmorSetYinYu, Skill: model.ArmorSetYinYu}))

	r, err := s.Compute(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 0.094, r.Panel[model.StatPrecisionRate], 1e-12)
}

func TestComputeRequiresSubSchool(t *testing.T) {
	t.Parallel()

	_, err := NewSession(data.Default()).Compute(context.Background())
	require.ErrorIs(t, err, ErrNoSubSchool)
}

func TestComputeChain(t *testing.T) {
	t.Parallel()

	s := newSession(t)
	require.NoError(t, s.Equip(data.TestItem("w", model.SlotMainWeapon, data.TestAffix("max_attack", 500))))
	require.NoError(t, s.SetTechnique(0, "Keen Eye"))
	require.NoError(t, s.SetTechnique(1, "Meridian Flow"))

	r, err := s.Compute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 500.0, r.Panel[model.StatMaxAttack])
	assert.InDelta(t, 0.02, r.Panel[model.StatPrecisionRate], 1e-12)
	assert.Greater(t, r.ExpectedDamage, 0.0)
	assert.Equal(t, r.ExpectedDamage, r.Graduation.ExpectedDamage)
	assert.Equal(t, r.Context.Effective, r.Effective)
	assert.NotEmpty(t, r.Optimization.Resets)
	assert.Empty(t, r.RangeViolations)
}

func TestComputeMemo(t *testing.T) {
	t.Parallel()

	s := newSession(t)
	var base model.PanelStats
	base[model.StatPrecisionRate] = 0.65
	s.SetBaseStats(base)
	require.NoError(t, s.Equip(data.TestItem("w", model.SlotMainWeapon, data.TestAffix("max_attack", 500))))

	first, err := s.Compute(context.Background())
	require.NoError(t, err)
	again, err := s.Compute(context.Background())
	require.NoError(t, err)
	assert.Same(t, first, again)

	require.NoError(t, s.Equip(data.TestItem("w", model.SlotMainWeapon, data.TestAffix("max_attack", 1000))))
	changed, err := s.Compute(context.Background())
	require.NoError(t, err)
	assert.NotSame(t, first, changed)
	assert.Greater(t, changed.ExpectedDamage, first.ExpectedDamage)

	uncached := newSession(t, WithoutMemo())
	a, err := uncached.Compute(context.Background())
	require.NoError(t, err)
	b, err := uncached.Compute(context.Background())
	require.NoError(t, err)
	assert.NotSame(t, a, b)
	assert.Equal(t, a.ExpectedDamage, b.ExpectedDamage)
}

func TestTargetLevel(t *testing.T) {
	t.Parallel()

	tables := data.Default()
	s := NewSession(tables, WithTargetLevel(50))
	sel := s.Selections()
	assert.Equal(t, 50, sel.Target.Level)
	assert.InDelta(t, tables.ResistanceForLevel(50), sel.Target.ResistanceRate, 1e-12)
}

func TestRangeViolations(t *testing.T) {
	t.Parallel()

	s := newSession(t)
	a := data.TestAffix("max_attack", 500)
	a.Range = &model.Range{Min: 60, Max: 100.2}
	require.NoError(t, s.Equip(data.TestItem("w", model.SlotMainWeapon, a)))

	r, err := s.Compute(context.Background())
	require.NoError(t, err)
	require.Len(t, r.RangeViolations, 1)
	assert.Equal(t, model.AffixSlotShang, r.RangeViolations[0].AffixSlot)
}

const buildYAML = `
sub_school: QianSi_Lin
base_stats:
  min_attack: 400
  max_attack: 900
  intent_rate: 0.3
items:
  - id: main
    slot: MainWeapon
    level: 100
    affix_gong:
      - {name: Max Outer Attack, type: max_attack, value: 46.8}
    affix_shang: {name: Max Outer Attack, type: max_attack, value: 100.2}
    affix_jue: {name: Intent Rate, type: intent_rate, value: 0.033}
    affix_dingyin: {name: Boss Damage Bonus, type: damage_bonus_boss, value: 0.031}
  - id: ring
    slot: Ring
    level: 100
    affix_shang: {name: Precision Rate, type: precision_rate, value: 0.047}
techniques: [Torrent, Keen Eye]
armor_set: {bow: ZhuiYing, skill: ZhuiYing}
`

func TestApplyFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "build.yaml")
	require.NoError(t, os.WriteFile(path, []byte(buildYAML), 0o644))

	f, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, f.Items, 2)

	s := NewSession(data.Default())
	require.NoError(t, s.Apply(f))

	sel := s.Selections()
	assert.Equal(t, model.SubSchoolQianSiLin, sel.SubSchool)
	assert.Equal(t, []string{"Torrent", "Keen Eye"}, sel.TechniqueNames())
	assert.Equal(t, []model.Slot{model.SlotMainWeapon, model.SlotRing}, s.Equipped())

	r, err := s.Compute(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 0.3+0.033+0.03+2*0.026, r.Panel[model.StatIntentRate], 1e-12)
	assert.Greater(t, r.ExpectedDamage, 0.0)
}

func TestApplyFileRejectsAndKeepsState(t *testing.T) {
	t.Parallel()

	s := newSession(t)
	require.NoError(t, s.Equip(data.TestItem("w", model.SlotMainWeapon, data.TestAffix("max_attack", 50))))

	bad := File{
		SubSchool:  model.SubSchoolQianSiLin,
		Techniques: []string{"Torrent", "Torrent"},
	}
	require.ErrorIs(t, s.Apply(bad), ErrDuplicateTechnique)

	sel := s.Selections()
	assert.Equal(t, model.SubSchoolLieShiJun, sel.SubSchool)
	assert.Contains(t, sel.Equipment, model.SlotMainWeapon)
}

func TestLoadFileErrors(t *testing.T) {
	t.Parallel()

	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("base_stats: {chi: 5}\n"), 0o644))
	_, err = LoadFile(path)
	require.Error(t, err)
}
