package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrGeneralNotFound is returned when a general lookup yields no results.
var ErrGeneralNotFound = errors.New("general not found")

// General is the persistent record of one commander. TraitID references the
// fixed trait table (1-20); the battle engine validates it before rolling.
type General struct {
	ID        int64
	PlayerID  int64
	Name      string
	Level     int
	TraitID   int
	Captured  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// GeneralRepository provides general persistence operations.
type GeneralRepository struct {
	db *pgxpool.Pool
}

// NewGeneralRepository creates a GeneralRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewGeneralRepository(db *pgxpool.Pool) *GeneralRepository {
	return &GeneralRepository{db: db}
}

// Create inserts a new general and returns it with ID and timestamps set.
//
// Precondition: g.PlayerID must reference an existing player; g.Name must be non-empty.
func (r *GeneralRepository) Create(ctx context.Context, g *General) (*General, error) {
	var out General
	err := r.db.QueryRow(ctx, `
		INSERT INTO generals (player_id, name, level, trait_id, captured)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, player_id, name, level, trait_id, captured, created_at, updated_at`,
		g.PlayerID, g.Name, g.Level, g.TraitID, g.Captured,
	).Scan(
		&out.ID, &out.PlayerID, &out.Name, &out.Level, &out.TraitID,
		&out.Captured, &out.CreatedAt, &out.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting general: %w", err)
	}
	return &out, nil
}

// GetByID retrieves a general by its primary key.
//
// Postcondition: Returns the General or ErrGeneralNotFound.
func (r *GeneralRepository) GetByID(ctx context.Context, id int64) (*General, error) {
	var g General
	err := r.db.QueryRow(ctx, `
		SELECT id, player_id, name, level, trait_id, captured, created_at, updated_at
		FROM generals WHERE id = $1`,
		id,
	).Scan(
		&g.ID, &g.PlayerID, &g.Name, &g.Level, &g.TraitID,
		&g.Captured, &g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrGeneralNotFound
		}
		return nil, fmt.Errorf("querying general: %w", err)
	}
	return &g, nil
}

// ListByPlayer returns all generals owned by the given player, ordered by created_at.
//
// Postcondition: Returns a slice (may be empty) or a non-nil error.
func (r *GeneralRepository) ListByPlayer(ctx context.Context, playerID int64) ([]*General, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, player_id, name, level, trait_id, captured, created_at, updated_at
		FROM generals WHERE player_id = $1 ORDER BY created_at ASC`,
		playerID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing generals: %w", err)
	}
	defer rows.Close()

	generals := make([]*General, 0)
	for rows.Next() {
		var g General
		if err := rows.Scan(
			&g.ID, &g.PlayerID, &g.Name, &g.Level, &g.TraitID,
			&g.Captured, &g.CreatedAt, &g.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning general row: %w", err)
		}
		generals = append(generals, &g)
	}
	return generals, rows.Err()
}

// SaveOutcome persists a general's post-battle level and captured state.
//
// Precondition: id must be > 0.
// Postcondition: Returns nil on success, ErrGeneralNotFound if no row updated.
func (r *GeneralRepository) SaveOutcome(ctx context.Context, id int64, level int, captured bool) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE generals SET level = $2, captured = $3, updated_at = NOW()
		WHERE id = $1`,
		id, level, captured,
	)
	if err != nil {
		return fmt.Errorf("saving general outcome: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrGeneralNotFound
	}
	return nil
}
