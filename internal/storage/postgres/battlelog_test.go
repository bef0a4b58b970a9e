package postgres_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/hegemony/internal/storage/postgres"
)

func TestBattleRepository_AppendAndGet(t *testing.T) {
	s, winnerID := setupPlayer(t)
	ctx := context.Background()

	loser, err := s.players.Create(ctx, uniqueName("loser"))
	require.NoError(t, err)

	rec, err := s.battles.Append(ctx, &postgres.BattleRecord{
		Location: "Marengo",
		Outcome:  "decisive",
		WinnerID: &winnerID,
		LoserID:  &loser.ID,
		HolyWar:  false,
		Log:      []string{"BATTLE AT Marengo", "positive side: player 1"},
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, rec.ID)
	assert.False(t, rec.FoughtAt.IsZero())

	fetched, err := s.battles.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "Marengo", fetched.Location)
	assert.Equal(t, "decisive", fetched.Outcome)
	require.NotNil(t, fetched.WinnerID)
	assert.Equal(t, winnerID, *fetched.WinnerID)
	require.Len(t, fetched.Log, 2)
	assert.Equal(t, "BATTLE AT Marengo", fetched.Log[0])
}

func TestBattleRepository_StalemateHasNoWinner(t *testing.T) {
	s, _ := setupPlayer(t)
	ctx := context.Background()

	rec, err := s.battles.Append(ctx, &postgres.BattleRecord{
		Location: "frozen river",
		Outcome:  "stalemate",
		Log:      []string{"STALEMATE: both sides withdraw"},
	})
	require.NoError(t, err)

	fetched, err := s.battles.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Nil(t, fetched.WinnerID)
	assert.Nil(t, fetched.LoserID)
}

func TestBattleRepository_GetByID_NotFound(t *testing.T) {
	s, _ := setupPlayer(t)
	_, err := s.battles.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, postgres.ErrBattleNotFound)
}

func TestBattleRepository_ListByPlayer(t *testing.T) {
	s, playerID := setupPlayer(t)
	ctx := context.Background()

	other, err := s.players.Create(ctx, uniqueName("other"))
	require.NoError(t, err)

	_, err = s.battles.Append(ctx, &postgres.BattleRecord{
		Location: "first field", Outcome: "rout",
		WinnerID: &playerID, LoserID: &other.ID, Log: []string{"a"},
	})
	require.NoError(t, err)
	_, err = s.battles.Append(ctx, &postgres.BattleRecord{
		Location: "second field", Outcome: "decisive",
		WinnerID: &other.ID, LoserID: &playerID, Log: []string{"b"},
	})
	require.NoError(t, err)

	records, err := s.battles.ListByPlayer(ctx, playerID)
	require.NoError(t, err)
	assert.Len(t, records, 2, "both wins and losses are returned")

	records, err = s.battles.ListByPlayer(ctx, 99999999)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestBattleRepository_PreservesExplicitID(t *testing.T) {
	s, _ := setupPlayer(t)
	ctx := context.Background()

	id := uuid.New()
	rec, err := s.battles.Append(ctx, &postgres.BattleRecord{
		ID: id, Location: "named field", Outcome: "rout", Log: []string{},
	})
	require.NoError(t, err)
	assert.Equal(t, id, rec.ID)
}
