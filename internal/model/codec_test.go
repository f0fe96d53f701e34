package model

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleItem() EquipmentItem {
	return EquipmentItem{
		ID:    "w-1",
		Slot:  SlotMainWeapon,
		Level: 100,
		Gong:  []Affix{{Name: "Max Outer Attack", Type: "max_attack", Value: 46.8, Range: &Range{Min: 30, Max: 46.8}}},
		Shang: &Affix{Name: "Crit Rate", Type: "crit_rate", Value: 0.066, Quality: QualityLegendary},
		Jue:   &Affix{Name: "Precision Rate", Type: "precision_rate", Value: 0.1 + 0.2},
		Yu:    &Affix{Name: "Cooldown", Type: "skill_cooldown_reduction", Value: 0.05},
		DingYin: &Affix{
			Name:  "Outer Penetration",
			Type:  "defense_penetration",
			Value: 8,
			Range: &Range{Min: 5.2, Max: 8},
		},
	}
}

func TestItemsRoundTrip(t *testing.T) {
	t.Parallel()

	items := []EquipmentItem{sampleItem(), {ID: "r", Slot: SlotRing}}

	var buf bytes.Buffer
	require.NoError(t, EncodeItems(&buf, items))
	got, err := DecodeItems(&buf)
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, items[0], got[0])
	assert.Equal(t, SlotRing, got[1].Slot)
	assert.Nil(t, got[1].Shang)
	// No precision loss on values that are not exactly representable.
	assert.Equal(t, 0.1+0.2, got[0].Jue.Value)
	// Non-panel keys survive unchanged.
	assert.Equal(t, "skill_cooldown_reduction", got[0].Yu.Type)
}

func TestDecodeItemsError(t *testing.T) {
	t.Parallel()

	_, err := DecodeItems(bytes.NewBufferString("{not json"))
	require.Error(t, err)
}

func TestMarshalCanonicalStable(t *testing.T) {
	t.Parallel()

	a := map[Slot]EquipmentItem{SlotRing: {ID: "r", Slot: SlotRing}, SlotHead: {ID: "h", Slot: SlotHead}}
	b := map[Slot]EquipmentItem{SlotHead: {ID: "h", Slot: SlotHead}, SlotRing: {ID: "r", Slot: SlotRing}}

	ab, err := MarshalCanonical(a)
	require.NoError(t, err)
	bb, err := MarshalCanonical(b)
	require.NoError(t, err)
	assert.Equal(t, ab, bb)
}

func TestPanelStatsEncoding(t *testing.T) {
	t.Parallel()

	var p PanelStats
	p[StatMaxAttack] = 1000
	p[StatCritRate] = 0.25

	t.Run("json", func(t *testing.T) {
		t.Parallel()
		b, err := json.Marshal(p)
		require.NoError(t, err)
		assert.JSONEq(t, `{"max_attack":1000,"crit_rate":0.25}`, string(b))

		var got PanelStats
		require.NoError(t, json.Unmarshal(b, &got))
		assert.Equal(t, p, got)
	})

	t.Run("yaml", func(t *testing.T) {
		t.Parallel()
		b, err := yaml.Marshal(p)
		require.NoError(t, err)

		var got PanelStats
		require.NoError(t, yaml.Unmarshal(b, &got))
		assert.Equal(t, p, got)
	})

	t.Run("unknown key", func(t *testing.T) {
		t.Parallel()
		var got PanelStats
		require.Error(t, yaml.Unmarshal([]byte("chi_regen: 5\n"), &got))
		require.Error(t, json.Unmarshal([]byte(`{"chi_regen":5}`), &got))
	})
}

func TestParseStatKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		key   string
		want  StatID
		valid bool
	}{
		{"max_attack", StatMaxAttack, true},
		{"crit_rate", StatCritRate, true},
		{"min_wuxiang_damage", StatMinWuxiangDamage, true},
		{"skill_cooldown_reduction", StatUnknown, false},
		{"", StatUnknown, false},
		{"MAX_ATTACK", StatUnknown, false},
	}
	for _, tt := range tests {
		got := ParseStatKey(tt.key)
		if got != tt.want {
			t.Errorf("ParseStatKey(%q) = %v, want %v", tt.key, got, tt.want)
		}
		if got.Valid() != tt.valid {
			t.Errorf("ParseStatKey(%q).Valid() = %v, want %v", tt.key, got.Valid(), tt.valid)
		}
	}

	for id := StatID(1); id < StatCount; id++ {
		assert.Equal(t, id, ParseStatKey(id.Key()), "key %q", id.Key())
		assert.NotEmpty(t, id.Name())
	}
}

func TestPanelStatsHelpers(t *testing.T) {
	t.Parallel()

	var p PanelStats
	assert.False(t, p.Add(StatUnknown, 5))
	assert.True(t, p.Add(StatMinAttack, 100))
	p[StatMaxAttack] = 300
	p[StatMinMingjinDamage] = 10
	p[StatMaxMingjinDamage] = 30
	p[StatMaxWuxiangDamage] = 8

	assert.Equal(t, 200.0, p.AvgAttack())
	assert.Equal(t, 24.0, p.AvgElementalDamage())
	assert.Equal(t, 0.0, p.Get(StatUnknown))
	assert.True(t, p.Finite())

	p[StatHP] = math.NaN()
	assert.False(t, p.Finite())

	q, unknown := PanelStatsFromMap(map[string]float64{"hp": 10, "zeta": 1, "alpha": 2})
	assert.Equal(t, 10.0, q[StatHP])
	assert.Equal(t, []string{"alpha", "zeta"}, unknown)
}

func TestEquipmentItem(t *testing.T) {
	t.Parallel()

	item := sampleItem()

	t.Run("with affix copies", func(t *testing.T) {
		t.Parallel()
		orig := sampleItem()
		next := orig.WithAffix(AffixSlotShang, Affix{Type: "max_attack", Value: 100})
		assert.Equal(t, "crit_rate", orig.Shang.Type)
		assert.Equal(t, "max_attack", next.Shang.Type)

		next.DingYin.Range.Max = 99
		assert.Equal(t, 8.0, orig.DingYin.Range.Max)
	})

	t.Run("affixes", func(t *testing.T) {
		t.Parallel()
		assert.Len(t, item.Affixes(), 5)
		assert.Nil(t, item.Affix(AffixSlotZhi))
		assert.Equal(t, "max_attack", item.Affix(AffixSlotGong).Type)
	})

	t.Run("validate", func(t *testing.T) {
		t.Parallel()
		ok := sampleItem()
		require.NoError(t, ok.Validate())

		bad := sampleItem()
		bad.Slot = "Tail"
		require.Error(t, bad.Validate())

		two := sampleItem()
		two.Gong = append(two.Gong, two.Gong[0])
		require.Error(t, two.Validate())
	})

	t.Run("in range", func(t *testing.T) {
		t.Parallel()
		assert.True(t, Affix{Value: 1e9}.InRange())
		assert.True(t, item.DingYin.InRange())
		assert.False(t, Affix{Value: 9, Range: &Range{Min: 5.2, Max: 8}}.InRange())
	})
}

func TestEffectiveSqueeze(t *testing.T) {
	t.Parallel()

	tests := []struct {
		crit, intent float64
		want         float64
		squeezed     bool
	}{
		{0.5, 0.3, 0.5, false},
		{0.8, 0.4, 0.6, true},
		{0.8, 1.2, 0, true},
		{0.6, 0.4, 0.6, false},
	}
	for _, tt := range tests {
		e := EffectiveStats{FinalCrit: tt.crit, FinalIntent: tt.intent}
		if got := e.SqueezedCrit(); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("SqueezedCrit(%v, %v) = %v, want %v", tt.crit, tt.intent, got, tt.want)
		}
		if got := e.Squeezed(); got != tt.squeezed {
			t.Errorf("Squeezed(%v, %v) = %v, want %v", tt.crit, tt.intent, got, tt.squeezed)
		}
	}
}

func TestSkill(t *testing.T) {
	t.Parallel()

	s := Skill{Hits: 1, MultiplierPerHit: []float64{1.2, 0, 0.8}, FixedDamagePerHit: []float64{50}}
	assert.Equal(t, 3, s.HitCount())
	assert.Equal(t, 1.2, s.MotionValue(0))
	assert.Equal(t, 1.0, s.MotionValue(1))
	assert.Equal(t, 1.0, s.MotionValue(7))
	assert.Equal(t, 50.0, s.FixedDamage(0))
	assert.Equal(t, 0.0, s.FixedDamage(2))
	assert.Equal(t, 1, Skill{}.HitCount())
}
