package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrBrigadeNotFound is returned when a brigade lookup yields no results.
var ErrBrigadeNotFound = errors.New("brigade not found")

// Brigade is the persistent record of one military unit. Type and Enhancement
// are stored as their table keys; stats are always re-derived from the unit
// tables, never persisted.
type Brigade struct {
	ID          int64
	PlayerID    int64
	ArmyID      *int64 // nil = unassigned
	Type        string
	Enhancement string // empty = none
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// BrigadeRepository provides brigade persistence operations.
type BrigadeRepository struct {
	db *pgxpool.Pool
}

// NewBrigadeRepository creates a BrigadeRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewBrigadeRepository(db *pgxpool.Pool) *BrigadeRepository {
	return &BrigadeRepository{db: db}
}

// Create inserts a new brigade and returns it with ID and timestamps set.
//
// Precondition: b.PlayerID must reference an existing player.
func (r *BrigadeRepository) Create(ctx context.Context, b *Brigade) (*Brigade, error) {
	var out Brigade
	err := r.db.QueryRow(ctx, `
		INSERT INTO brigades (player_id, army_id, type, enhancement)
		VALUES ($1, $2, $3, $4)
		RETURNING id, player_id, army_id, type, enhancement, created_at, updated_at`,
		b.PlayerID, b.ArmyID, b.Type, b.Enhancement,
	).Scan(
		&out.ID, &out.PlayerID, &out.ArmyID, &out.Type, &out.Enhancement,
		&out.CreatedAt, &out.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting brigade: %w", err)
	}
	return &out, nil
}

// GetByID retrieves a brigade by its primary key.
//
// Postcondition: Returns the Brigade or ErrBrigadeNotFound.
func (r *BrigadeRepository) GetByID(ctx context.Context, id int64) (*Brigade, error) {
	var b Brigade
	err := r.db.QueryRow(ctx, `
		SELECT id, player_id, army_id, type, enhancement, created_at, updated_at
		FROM brigades WHERE id = $1`,
		id,
	).Scan(
		&b.ID, &b.PlayerID, &b.ArmyID, &b.Type, &b.Enhancement,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBrigadeNotFound
		}
		return nil, fmt.Errorf("querying brigade: %w", err)
	}
	return &b, nil
}

// ListByArmy returns all brigades assigned to the given army, ordered by id.
// The order is the roster order used for battle tie-breaking.
//
// Postcondition: Returns a slice (may be empty) or a non-nil error.
func (r *BrigadeRepository) ListByArmy(ctx context.Context, armyID int64) ([]*Brigade, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, player_id, army_id, type, enhancement, created_at, updated_at
		FROM brigades WHERE army_id = $1 ORDER BY id ASC`,
		armyID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing brigades: %w", err)
	}
	defer rows.Close()

	brigades := make([]*Brigade, 0)
	for rows.Next() {
		var b Brigade
		if err := rows.Scan(
			&b.ID, &b.PlayerID, &b.ArmyID, &b.Type, &b.Enhancement,
			&b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning brigade row: %w", err)
		}
		brigades = append(brigades, &b)
	}
	return brigades, rows.Err()
}

// SetEnhancement records a brigade's enhancement.
//
// Postcondition: Returns nil on success, ErrBrigadeNotFound if no row updated.
func (r *BrigadeRepository) SetEnhancement(ctx context.Context, id int64, enhancement string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE brigades SET enhancement = $2, updated_at = NOW()
		WHERE id = $1`,
		id, enhancement,
	)
	if err != nil {
		return fmt.Errorf("setting brigade enhancement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrBrigadeNotFound
	}
	return nil
}

// Delete removes a brigade permanently. Used for brigades destroyed in battle.
//
// Postcondition: Returns nil on success, ErrBrigadeNotFound if no row deleted.
func (r *BrigadeRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM brigades WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting brigade: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrBrigadeNotFound
	}
	return nil
}
