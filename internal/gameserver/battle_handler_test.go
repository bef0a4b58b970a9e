package gameserver

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cory-johannsen/hegemony/internal/game/battle"
	"github.com/cory-johannsen/hegemony/internal/game/dice"
	"github.com/cory-johannsen/hegemony/internal/game/siege"
	"github.com/cory-johannsen/hegemony/internal/storage/postgres"
)

type fakeArmies map[int64]*postgres.Army

func (f fakeArmies) GetByID(_ context.Context, id int64) (*postgres.Army, error) {
	a, ok := f[id]
	if !ok {
		return nil, postgres.ErrArmyNotFound
	}
	return a, nil
}

type fakeBrigades struct {
	byArmy  map[int64][]*postgres.Brigade
	deleted []int64
}

func (f *fakeBrigades) ListByArmy(_ context.Context, armyID int64) ([]*postgres.Brigade, error) {
	return f.byArmy[armyID], nil
}

func (f *fakeBrigades) Delete(_ context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type savedOutcome struct {
	level    int
	captured bool
}

type fakeGenerals struct {
	byID  map[int64]*postgres.General
	saved map[int64]savedOutcome
}

func (f *fakeGenerals) GetByID(_ context.Context, id int64) (*postgres.General, error) {
	g, ok := f.byID[id]
	if !ok {
		return nil, postgres.ErrGeneralNotFound
	}
	return g, nil
}

func (f *fakeGenerals) SaveOutcome(_ context.Context, id int64, level int, captured bool) error {
	if f.saved == nil {
		f.saved = make(map[int64]savedOutcome)
	}
	f.saved[id] = savedOutcome{level: level, captured: captured}
	return nil
}

type fakeBattles struct {
	records []*postgres.BattleRecord
}

func (f *fakeBattles) Append(_ context.Context, rec *postgres.BattleRecord) (*postgres.BattleRecord, error) {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	f.records = append(f.records, rec)
	return rec, nil
}

type fixture struct {
	handler  *BattleHandler
	armies   fakeArmies
	brigades *fakeBrigades
	generals *fakeGenerals
	battles  *fakeBattles
}

func newFixture(t *testing.T, seed int64, maxLogLines int) *fixture {
	t.Helper()

	g1 := int64(1)
	g2 := int64(2)
	f := &fixture{
		armies: fakeArmies{
			10: {ID: 10, PlayerID: 1, Name: "I Corps", GeneralID: &g1},
			20: {ID: 20, PlayerID: 2, Name: "Nordarmee", GeneralID: &g2},
			30: {ID: 30, PlayerID: 3, Name: "Hollow Corps"},
		},
		brigades: &fakeBrigades{byArmy: map[int64][]*postgres.Brigade{
			10: {
				{ID: 101, PlayerID: 1, Type: "heavy", Enhancement: "Grenadiers"},
				{ID: 102, PlayerID: 1, Type: "light"},
				{ID: 103, PlayerID: 1, Type: "cavalry"},
			},
			20: {
				{ID: 201, PlayerID: 2, Type: "heavy"},
				{ID: 202, PlayerID: 2, Type: "ranged"},
				{ID: 203, PlayerID: 2, Type: "support", Enhancement: "Officer Corps"},
			},
		}},
		generals: &fakeGenerals{byID: map[int64]*postgres.General{
			1: {ID: 1, PlayerID: 1, Name: "Davout", Level: 3, TraitID: int(battle.TraitDisciplined)},
			2: {ID: 2, PlayerID: 2, Name: "Blucher", Level: 2, TraitID: int(battle.TraitResolute)},
		}},
		battles: &fakeBattles{},
	}

	roller := dice.NewRoller(dice.NewSeededSource(seed), zap.NewNop())
	engine := battle.NewEngine(roller, zap.NewNop())
	f.handler = NewBattleHandler(engine, f.armies, f.brigades, f.generals, f.battles, zap.NewNop(), maxLogLines)
	return f
}

func TestFightBattle_PersistsOutcome(t *testing.T) {
	f := newFixture(t, 42, 0)
	ctx := context.Background()

	report, err := f.handler.FightBattle(ctx, BattleRequest{
		AttackerArmyID: 10,
		DefenderArmyID: 20,
		Location:       "Jena",
	})
	require.NoError(t, err)
	require.NotNil(t, report.Result)
	assert.NotEqual(t, uuid.Nil, report.RecordID)

	require.Len(t, f.battles.records, 1)
	rec := f.battles.records[0]
	assert.Equal(t, "Jena", rec.Location)
	assert.Equal(t, report.Result.Kind.String(), rec.Outcome)
	assert.NotEmpty(t, rec.Log)

	if report.Result.Kind == battle.OutcomeStalemate {
		assert.Nil(t, rec.WinnerID)
	} else {
		require.NotNil(t, rec.WinnerID)
		require.NotNil(t, rec.LoserID)
		assert.NotEqual(t, *rec.WinnerID, *rec.LoserID)
	}

	// Every deleted brigade corresponds to a destroyed one in the report.
	assert.ElementsMatch(t, report.Destroyed, f.brigades.deleted)

	// Both generals' post-battle state was written back.
	assert.Contains(t, f.generals.saved, int64(1))
	assert.Contains(t, f.generals.saved, int64(2))
	assert.GreaterOrEqual(t, f.generals.saved[1].level, 3)
	assert.GreaterOrEqual(t, f.generals.saved[2].level, 2)
}

func TestFightBattle_EmptyArmyRejected(t *testing.T) {
	f := newFixture(t, 1, 0)

	_, err := f.handler.FightBattle(context.Background(), BattleRequest{
		AttackerArmyID: 10,
		DefenderArmyID: 30,
		Location:       "nowhere",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyArmy)
	assert.Empty(t, f.battles.records, "nothing is persisted on a rejected request")
	assert.Empty(t, f.brigades.deleted)
}

func TestFightBattle_UnknownArmy(t *testing.T) {
	f := newFixture(t, 1, 0)

	_, err := f.handler.FightBattle(context.Background(), BattleRequest{
		AttackerArmyID: 999,
		DefenderArmyID: 20,
	})
	assert.ErrorIs(t, err, postgres.ErrArmyNotFound)
}

func TestFightBattle_CorruptBrigadeTypeRejected(t *testing.T) {
	f := newFixture(t, 1, 0)
	f.brigades.byArmy[10] = append(f.brigades.byArmy[10],
		&postgres.Brigade{ID: 109, PlayerID: 1, Type: "phalanx"})

	_, err := f.handler.FightBattle(context.Background(), BattleRequest{
		AttackerArmyID: 10,
		DefenderArmyID: 20,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "phalanx")
	assert.Empty(t, f.battles.records)
}

func TestFightBattle_CapturedGeneralFightsLeaderless(t *testing.T) {
	f := newFixture(t, 7, 0)
	f.generals.byID[1].Captured = true

	_, err := f.handler.FightBattle(context.Background(), BattleRequest{
		AttackerArmyID: 10,
		DefenderArmyID: 20,
		Location:       "Eylau",
	})
	require.NoError(t, err)

	// The captured general never took the field, so no outcome is written.
	assert.NotContains(t, f.generals.saved, int64(1))
	assert.Contains(t, f.generals.saved, int64(2))
}

func TestFightBattle_TruncatesPersistedLog(t *testing.T) {
	f := newFixture(t, 42, 5)

	report, err := f.handler.FightBattle(context.Background(), BattleRequest{
		AttackerArmyID: 10,
		DefenderArmyID: 20,
		Location:       "Wagram",
	})
	require.NoError(t, err)

	require.Len(t, f.battles.records, 1)
	assert.LessOrEqual(t, len(f.battles.records[0].Log), 5)
	assert.Greater(t, len(report.Result.Log), 5, "the in-memory result keeps the full log")
}

func TestAssaultCity_GarrisonNeverPersisted(t *testing.T) {
	f := newFixture(t, 13, 0)

	report, err := f.handler.AssaultCity(context.Background(), AssaultRequest{
		AttackerArmyID: 10,
		City:           siege.City{Name: "Danzig", Tier: 2, DefenderID: 2},
	})
	require.NoError(t, err)

	for _, id := range f.brigades.deleted {
		assert.Positive(t, id, "garrison brigades (negative ids) must never be deleted from storage")
	}
	require.Len(t, f.battles.records, 1)
	assert.Equal(t, "Siege of Danzig", f.battles.records[0].Location)
	assert.Equal(t, report.Result.Kind.String(), f.battles.records[0].Outcome)
}

func TestAssaultCity_InvalidTier(t *testing.T) {
	f := newFixture(t, 1, 0)

	_, err := f.handler.AssaultCity(context.Background(), AssaultRequest{
		AttackerArmyID: 10,
		City:           siege.City{Name: "x", Tier: 0, DefenderID: 2},
	})
	assert.Error(t, err)
	assert.Empty(t, f.battles.records)
}
