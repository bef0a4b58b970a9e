package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrArmyNotFound is returned when an army lookup yields no results.
var ErrArmyNotFound = errors.New("army not found")

// Army groups brigades under an optional general at a map location.
type Army struct {
	ID        int64
	PlayerID  int64
	Name      string
	Location  string
	GeneralID *int64 // nil = leaderless
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ArmyRepository provides army persistence operations.
type ArmyRepository struct {
	db *pgxpool.Pool
}

// NewArmyRepository creates an ArmyRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewArmyRepository(db *pgxpool.Pool) *ArmyRepository {
	return &ArmyRepository{db: db}
}

// Create inserts a new army and returns it with ID and timestamps set.
//
// Precondition: a.PlayerID must reference an existing player.
func (r *ArmyRepository) Create(ctx context.Context, a *Army) (*Army, error) {
	var out Army
	err := r.db.QueryRow(ctx, `
		INSERT INTO armies (player_id, name, location, general_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, player_id, name, location, general_id, created_at, updated_at`,
		a.PlayerID, a.Name, a.Location, a.GeneralID,
	).Scan(
		&out.ID, &out.PlayerID, &out.Name, &out.Location, &out.GeneralID,
		&out.CreatedAt, &out.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting army: %w", err)
	}
	return &out, nil
}

// GetByID retrieves an army by its primary key.
//
// Postcondition: Returns the Army or ErrArmyNotFound.
func (r *ArmyRepository) GetByID(ctx context.Context, id int64) (*Army, error) {
	var a Army
	err := r.db.QueryRow(ctx, `
		SELECT id, player_id, name, location, general_id, created_at, updated_at
		FROM armies WHERE id = $1`,
		id,
	).Scan(
		&a.ID, &a.PlayerID, &a.Name, &a.Location, &a.GeneralID,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrArmyNotFound
		}
		return nil, fmt.Errorf("querying army: %w", err)
	}
	return &a, nil
}

// ListByPlayer returns all armies owned by the given player, ordered by created_at.
//
// Postcondition: Returns a slice (may be empty) or a non-nil error.
func (r *ArmyRepository) ListByPlayer(ctx context.Context, playerID int64) ([]*Army, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, player_id, name, location, general_id, created_at, updated_at
		FROM armies WHERE player_id = $1 ORDER BY created_at ASC`,
		playerID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing armies: %w", err)
	}
	defer rows.Close()

	armies := make([]*Army, 0)
	for rows.Next() {
		var a Army
		if err := rows.Scan(
			&a.ID, &a.PlayerID, &a.Name, &a.Location, &a.GeneralID,
			&a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning army row: %w", err)
		}
		armies = append(armies, &a)
	}
	return armies, rows.Err()
}

// AssignGeneral attaches a general to the army, or detaches with nil.
//
// Postcondition: Returns nil on success, ErrArmyNotFound if no row updated.
func (r *ArmyRepository) AssignGeneral(ctx context.Context, id int64, generalID *int64) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE armies SET general_id = $2, updated_at = NOW()
		WHERE id = $1`,
		id, generalID,
	)
	if err != nil {
		return fmt.Errorf("assigning general: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrArmyNotFound
	}
	return nil
}

// SetLocation moves the army to a new map location.
//
// Postcondition: Returns nil on success, ErrArmyNotFound if no row updated.
func (r *ArmyRepository) SetLocation(ctx context.Context, id int64, location string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE armies SET location = $2, updated_at = NOW()
		WHERE id = $1`,
		id, location,
	)
	if err != nil {
		return fmt.Errorf("setting army location: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrArmyNotFound
	}
	return nil
}
