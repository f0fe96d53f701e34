package affix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/buildcalc/internal/data"
	"github.com/udisondev/buildcalc/internal/model"
)

func TestCheck(t *testing.T) {
	t.Parallel()

	checker := NewChecker(map[string][]string{"hp": {"hp"}})

	tests := []struct {
		name      string
		item      model.EquipmentItem
		conflicts map[model.AffixSlot][]model.AffixSlot
	}{
		{
			name: "distinct types",
			item: data.TestItem("r", model.SlotRing,
				data.TestAffix("crit_rate", 0.05),
				data.TestAffix("max_attack", 80),
				data.TestAffix("precision_rate", 0.03),
				data.TestAffix("intent_rate", 0.02)),
		},
		{
			name: "allowed duplicate",
			item: data.TestItem("h", model.SlotHead,
				data.TestAffix("hp", 300),
				data.TestAffix("hp", 280)),
		},
		{
			name: "pair",
			item: data.TestItem("r", model.SlotRing,
				data.TestAffix("crit_rate", 0.05),
				data.TestAffix("max_attack", 80),
				data.TestAffix("crit_rate", 0.04)),
			conflicts: map[model.AffixSlot][]model.AffixSlot{
				model.AffixSlotShang: {model.AffixSlotZhi},
				model.AffixSlotZhi:   {model.AffixSlotShang},
			},
		},
		{
			name: "triple",
			item: data.TestItem("r", model.SlotRing,
				data.TestAffix("crit_rate", 0.05),
				data.TestAffix("crit_rate", 0.04),
				data.TestAffix("max_attack", 80),
				data.TestAffix("crit_rate", 0.03)),
			conflicts: map[model.AffixSlot][]model.AffixSlot{
				model.AffixSlotShang: {model.AffixSlotJue, model.AffixSlotYu},
				model.AffixSlotJue:   {model.AffixSlotShang, model.AffixSlotYu},
				model.AffixSlotYu:    {model.AffixSlotShang, model.AffixSlotJue},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res := checker.Check(&tt.item)
			assert.Equal(t, len(tt.conflicts) > 0, res.HasConflict)
			require.Len(t, res.Conflicts, len(tt.conflicts))
			for _, c := range res.Conflicts {
				assert.ElementsMatch(t, tt.conflicts[c.AffixSlot], c.ConflictingWith, "slot %s", c.AffixSlot)
				assert.Equal(t, tt.item.Slot, c.Slot)
			}
		})
	}
}

func TestCheckIgnoresInitialAndFinal(t *testing.T) {
	t.Parallel()

	item := data.TestItem("w", model.SlotMainWeapon, data.TestAffix("crit_rate", 0.05))
	item.Gong = []model.Affix{data.TestAffix("crit_rate", 0.04)}
	final := data.TestAffix("crit_rate", 0.03)
	item.DingYin = &final

	res := NewChecker(nil).Check(&item)
	assert.False(t, res.HasConflict)
}

func TestCheckAll(t *testing.T) {
	t.Parallel()

	items := []model.EquipmentItem{
		data.TestItem("a", model.SlotRing, data.TestAffix("crit_rate", 0.05), data.TestAffix("crit_rate", 0.05)),
		data.TestItem("b", model.SlotPendant, data.TestAffix("max_attack", 80)),
		data.TestItem("c", model.SlotHead, data.TestAffix("hp", 100), data.TestAffix("hp", 100)),
	}

	res := NewChecker(data.Default().AllowedDuplicates()).CheckAll(items)
	require.True(t, res.HasConflict)
	require.Len(t, res.Conflicts, 2)
	for _, c := range res.Conflicts {
		assert.Equal(t, model.SlotRing, c.Slot)
	}

	msgs := Messages(res)
	require.Len(t, msgs, 2)
	assert.Equal(t, "Ring: Shang (Crit Rate) duplicates Jue", msgs[0])
}

func TestIsTypeConflicted(t *testing.T) {
	t.Parallel()

	checker := NewChecker(data.Default().AllowedDuplicates())
	item := data.TestItem("h", model.SlotHead, data.TestAffix("hp", 300), data.TestAffix("crit_rate", 0.05))
	selected := SelectedTuningTypes(&item)
	assert.Equal(t, []string{"hp", "crit_rate"}, selected)

	tests := []struct {
		statType string
		want     bool
	}{
		{"hp", false},
		{"crit_rate", true},
		{"intent_rate", false},
	}
	for _, tt := range tests {
		if got := checker.IsTypeConflicted(tt.statType, selected); got != tt.want {
			t.Errorf("IsTypeConflicted(%q) = %v, want %v", tt.statType, got, tt.want)
		}
	}
}

func TestCheckRanges(t *testing.T) {
	t.Parallel()

	in := data.TestAffix("crit_rate", 0.05)
	in.Range = &model.Range{Min: 0.03, Max: 0.066}
	out := data.TestAffix("max_attack", 150)
	out.Range = &model.Range{Min: 60, Max: 100.2}
	free := data.TestAffix("precision_rate", 9)

	item := data.TestItem("w", model.SlotMainWeapon, in, out, free)
	final := data.TestAffix("crit_damage_bonus", 0.01)
	final.Range = &model.Range{Min: 0.04, Max: 0.062}
	item.DingYin = &final

	got := CheckRanges(&item)
	require.Len(t, got, 2)
	assert.Equal(t, model.AffixSlotJue, got[0].AffixSlot)
	assert.Equal(t, "max_attack", got[0].Type)
	assert.Equal(t, model.AffixSlotDingYin, got[1].AffixSlot)
	assert.InDelta(t, 0.04, got[1].Range.Min, 1e-12)
}

func TestPools(t *testing.T) {
	t.Parallel()

	tables := data.Default()
	pools := NewPools(tables)

	t.Run("zhunlv at tuning max", func(t *testing.T) {
		t.Parallel()
		got := pools.Zhunlv(model.SlotMainWeapon, model.SubSchoolLieShiJun)
		require.NotEmpty(t, got)
		byType := make(map[string]model.Affix, len(got))
		for _, a := range got {
			byType[a.Type] = a
			assert.Equal(t, model.QualityLegendary, a.Quality)
			require.NotNil(t, a.Range)
			assert.Equal(t, a.Range.Max, a.Value)
		}
		require.Contains(t, byType, "max_attack")
		assert.InDelta(t, 100.2, byType["max_attack"].Value, 1e-9)
		assert.Contains(t, byType, "max_lieshi_damage")
		assert.NotContains(t, byType, "intent_rate")
	})

	t.Run("feng armor extension", func(t *testing.T) {
		t.Parallel()
		feng := pools.Zhunlv(model.SlotChest, model.SubSchoolPoZhuFeng)
		chen := pools.Zhunlv(model.SlotChest, model.SubSchoolPoZhuChen)
		assert.Len(t, feng, len(chen)+3)
		assert.Len(t, pools.Zhunlv(model.SlotMainWeapon, model.SubSchoolPoZhuFeng),
			len(pools.Zhunlv(model.SlotMainWeapon, model.SubSchoolPoZhuChen)))
	})

	t.Run("candidates by sub-slot", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, pools.Candidates(model.SlotRing, model.AffixSlotGong, model.SubSchoolQianSiYu))
		assert.Equal(t, pools.Zhunlv(model.SlotRing, model.SubSchoolQianSiYu),
			pools.Candidates(model.SlotRing, model.AffixSlotYu, model.SubSchoolQianSiYu))

		finals := pools.Candidates(model.SlotHead, model.AffixSlotDingYin, model.SubSchoolQianSiYu)
		require.Len(t, finals, 1)
		assert.Equal(t, "damage_bonus_specific_martial", finals[0].Type)
		assert.InDelta(t, 0.037, finals[0].Value, 1e-12)

		weaponFinals := pools.Candidates(model.SlotMainWeapon, model.AffixSlotDingYin, model.SubSchoolQianSiYu)
		assert.Len(t, weaponFinals, 5)
	})

	t.Run("unknown sub-school", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, pools.Zhunlv(model.SlotRing, model.SubSchool("Nope")))
	})

	t.Run("initial and tiaolu", func(t *testing.T) {
		t.Parallel()
		assert.NotEmpty(t, pools.Initial(model.SlotMainWeapon))
		assert.NotEmpty(t, pools.Tiaolu(model.SlotMainWeapon))
		assert.NotEmpty(t, pools.Rare(model.SlotMainWeapon))
	})
}
