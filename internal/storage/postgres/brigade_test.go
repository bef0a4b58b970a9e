package postgres_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/hegemony/internal/storage/postgres"
	"github.com/cory-johannsen/hegemony/internal/testutil"
)

func uniqueName(prefix string) string {
	return fmt.Sprintf("%s_%d", prefix, time.Now().UnixNano())
}

func setupPlayer(t *testing.T) (*testSetup, int64) {
	t.Helper()
	pool := testutil.NewPool(t)
	playerRepo := postgres.NewPlayerRepository(pool)
	player, err := playerRepo.Create(context.Background(), uniqueName("player"))
	require.NoError(t, err)
	return &testSetup{
		players:  playerRepo,
		brigades: postgres.NewBrigadeRepository(pool),
		generals: postgres.NewGeneralRepository(pool),
		armies:   postgres.NewArmyRepository(pool),
		battles:  postgres.NewBattleRepository(pool),
	}, player.ID
}

type testSetup struct {
	players  *postgres.PlayerRepository
	brigades *postgres.BrigadeRepository
	generals *postgres.GeneralRepository
	armies   *postgres.ArmyRepository
	battles  *postgres.BattleRepository
}

func TestPlayerRepository_Create(t *testing.T) {
	s, playerID := setupPlayer(t)
	ctx := context.Background()

	fetched, err := s.players.GetByID(ctx, playerID)
	require.NoError(t, err)
	assert.Equal(t, playerID, fetched.ID)
	assert.False(t, fetched.CreatedAt.IsZero())
}

func TestPlayerRepository_DuplicateName(t *testing.T) {
	s, _ := setupPlayer(t)
	ctx := context.Background()

	name := uniqueName("dup")
	_, err := s.players.Create(ctx, name)
	require.NoError(t, err)
	_, err = s.players.Create(ctx, name)
	assert.ErrorIs(t, err, postgres.ErrPlayerNameTaken)
}

func TestPlayerRepository_GetByID_NotFound(t *testing.T) {
	s, _ := setupPlayer(t)
	_, err := s.players.GetByID(context.Background(), 99999999)
	assert.ErrorIs(t, err, postgres.ErrPlayerNotFound)
}

func TestBrigadeRepository_CreateAndGet(t *testing.T) {
	s, playerID := setupPlayer(t)
	ctx := context.Background()

	created, err := s.brigades.Create(ctx, &postgres.Brigade{
		PlayerID:    playerID,
		Type:        "heavy",
		Enhancement: "Grenadiers",
	})
	require.NoError(t, err)
	assert.Greater(t, created.ID, int64(0))
	assert.Nil(t, created.ArmyID)

	fetched, err := s.brigades.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "heavy", fetched.Type)
	assert.Equal(t, "Grenadiers", fetched.Enhancement)
}

func TestBrigadeRepository_GetByID_NotFound(t *testing.T) {
	s, _ := setupPlayer(t)
	_, err := s.brigades.GetByID(context.Background(), 99999999)
	assert.ErrorIs(t, err, postgres.ErrBrigadeNotFound)
}

func TestBrigadeRepository_ListByArmy(t *testing.T) {
	s, playerID := setupPlayer(t)
	ctx := context.Background()

	army, err := s.armies.Create(ctx, &postgres.Army{PlayerID: playerID, Name: "First Army"})
	require.NoError(t, err)

	for _, typ := range []string{"heavy", "light", "cavalry"} {
		_, err := s.brigades.Create(ctx, &postgres.Brigade{
			PlayerID: playerID,
			ArmyID:   &army.ID,
			Type:     typ,
		})
		require.NoError(t, err)
	}

	brigades, err := s.brigades.ListByArmy(ctx, army.ID)
	require.NoError(t, err)
	require.Len(t, brigades, 3)
	// id order is the battle roster order
	assert.Equal(t, "heavy", brigades[0].Type)
	assert.Equal(t, "light", brigades[1].Type)
	assert.Equal(t, "cavalry", brigades[2].Type)
}

func TestBrigadeRepository_ListByArmy_Empty(t *testing.T) {
	s, playerID := setupPlayer(t)
	ctx := context.Background()

	army, err := s.armies.Create(ctx, &postgres.Army{PlayerID: playerID, Name: "Empty Army"})
	require.NoError(t, err)

	brigades, err := s.brigades.ListByArmy(ctx, army.ID)
	require.NoError(t, err)
	assert.NotNil(t, brigades)
	assert.Empty(t, brigades)
}

func TestBrigadeRepository_SetEnhancement(t *testing.T) {
	s, playerID := setupPlayer(t)
	ctx := context.Background()

	b, err := s.brigades.Create(ctx, &postgres.Brigade{PlayerID: playerID, Type: "support"})
	require.NoError(t, err)

	require.NoError(t, s.brigades.SetEnhancement(ctx, b.ID, "Officer Corps"))

	fetched, err := s.brigades.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Officer Corps", fetched.Enhancement)

	err = s.brigades.SetEnhancement(ctx, 99999999, "Rangers")
	assert.ErrorIs(t, err, postgres.ErrBrigadeNotFound)
}

func TestBrigadeRepository_Delete(t *testing.T) {
	s, playerID := setupPlayer(t)
	ctx := context.Background()

	b, err := s.brigades.Create(ctx, &postgres.Brigade{PlayerID: playerID, Type: "ranged"})
	require.NoError(t, err)

	require.NoError(t, s.brigades.Delete(ctx, b.ID))

	_, err = s.brigades.GetByID(ctx, b.ID)
	assert.ErrorIs(t, err, postgres.ErrBrigadeNotFound)

	err = s.brigades.Delete(ctx, b.ID)
	assert.ErrorIs(t, err, postgres.ErrBrigadeNotFound)
}
