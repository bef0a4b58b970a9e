package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrPlayerNotFound is returned when a player lookup yields no results.
var ErrPlayerNotFound = errors.New("player not found")

// ErrPlayerNameTaken is returned when creating a player with a name already in use.
var ErrPlayerNameTaken = errors.New("player name already taken")

// Player is one participant in the game world.
type Player struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}

// PlayerRepository provides player persistence operations.
type PlayerRepository struct {
	db *pgxpool.Pool
}

// NewPlayerRepository creates a PlayerRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewPlayerRepository(db *pgxpool.Pool) *PlayerRepository {
	return &PlayerRepository{db: db}
}

// Create inserts a new player and returns it with ID and timestamp set.
//
// Precondition: name must be non-empty.
// Postcondition: Returns the created player, or ErrPlayerNameTaken on duplicate.
func (r *PlayerRepository) Create(ctx context.Context, name string) (Player, error) {
	var p Player
	err := r.db.QueryRow(ctx, `
		INSERT INTO players (name) VALUES ($1)
		RETURNING id, name, created_at`,
		name,
	).Scan(&p.ID, &p.Name, &p.CreatedAt)
	if err != nil {
		if isDuplicateKeyError(err) {
			return Player{}, ErrPlayerNameTaken
		}
		return Player{}, fmt.Errorf("inserting player: %w", err)
	}
	return p, nil
}

// GetByID retrieves a player by its primary key.
//
// Postcondition: Returns the Player or ErrPlayerNotFound.
func (r *PlayerRepository) GetByID(ctx context.Context, id int64) (Player, error) {
	var p Player
	err := r.db.QueryRow(ctx, `
		SELECT id, name, created_at FROM players WHERE id = $1`,
		id,
	).Scan(&p.ID, &p.Name, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Player{}, ErrPlayerNotFound
		}
		return Player{}, fmt.Errorf("querying player: %w", err)
	}
	return p, nil
}
