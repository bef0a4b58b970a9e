package unit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/hegemony/internal/game/unit"
)

// TestBaseStats_KnownTypes verifies every declared type has a stat row.
func TestBaseStats_KnownTypes(t *testing.T) {
	for _, bt := range unit.Types() {
		s, err := unit.BaseStats(bt)
		require.NoError(t, err, "type %s must have base stats", bt)
		assert.GreaterOrEqual(t, s.Movement, 3, "every brigade type can move")
	}
}

// TestBaseStats_UnknownTypeIsError verifies the closed-set contract:
// an unrecognized type is a hard error, not a zero value.
func TestBaseStats_UnknownTypeIsError(t *testing.T) {
	_, err := unit.BaseStats(unit.Type("zeppelin"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "zeppelin")
}

// TestStats_Add verifies component-wise addition without mutation.
func TestStats_Add(t *testing.T) {
	a := unit.Stats{Skirmish: 1, Defense: 2, Pitch: 3, Rally: 4, Movement: 5}
	b := unit.Stats{Skirmish: 1, Rally: 1}
	sum := a.Add(b)
	assert.Equal(t, unit.Stats{Skirmish: 2, Defense: 2, Pitch: 3, Rally: 5, Movement: 5}, sum)
	assert.Equal(t, 1, b.Skirmish, "operand must not be mutated")
}

// TestResolveStats_Heavy_Garrisoned verifies the fixed garrison bonus:
// heavy base (def 2, pitch 1, rally 1) + garrison (+2 def, +2 rally).
func TestResolveStats_Heavy_Garrisoned(t *testing.T) {
	s, err := unit.ResolveStats(unit.Heavy, "", true)
	require.NoError(t, err)
	assert.Equal(t, 4, s.Defense)
	assert.Equal(t, 3, s.Rally)
	assert.Equal(t, 1, s.Pitch)
}

// TestResolveStats_WithEnhancement verifies enhancement stats are additive.
func TestResolveStats_WithEnhancement(t *testing.T) {
	// Light base: skirmish 2, rally 1. Rangers: +2 skirmish, +1 pitch.
	s, err := unit.ResolveStats(unit.Light, "Rangers", false)
	require.NoError(t, err)
	assert.Equal(t, unit.Stats{Skirmish: 4, Defense: 0, Pitch: 1, Rally: 1, Movement: 4}, s)
}

// TestResolveStats_UnknownEnhancementIsError verifies enhancement lookups
// follow the same closed-set contract as types.
func TestResolveStats_UnknownEnhancementIsError(t *testing.T) {
	_, err := unit.ResolveStats(unit.Heavy, "Death Ray", false)
	require.Error(t, err)
}

// TestGetEnhancement_BattleWiredNames verifies the names the battle engine
// references exist in the table.
func TestGetEnhancement_BattleWiredNames(t *testing.T) {
	for _, name := range []string{unit.EnhancementOfficerCorps, unit.EnhancementLifeGuard} {
		_, err := unit.GetEnhancement(name)
		require.NoError(t, err, "battle-wired enhancement %q missing", name)
	}
}
