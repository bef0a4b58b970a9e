package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrBattleNotFound is returned when a battle record lookup yields no results.
var ErrBattleNotFound = errors.New("battle record not found")

// BattleRecord is the append-only record of one resolved battle. Log holds
// the engine's ordered log lines as JSONB; records are never updated.
type BattleRecord struct {
	ID       uuid.UUID
	Location string
	Outcome  string
	WinnerID *int64 // nil for a stalemate
	LoserID  *int64 // nil for a stalemate
	HolyWar  bool
	Log      []string
	FoughtAt time.Time
}

// BattleRepository provides append-only battle record persistence.
type BattleRepository struct {
	db *pgxpool.Pool
}

// NewBattleRepository creates a BattleRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewBattleRepository(db *pgxpool.Pool) *BattleRepository {
	return &BattleRepository{db: db}
}

// Append inserts a new battle record. A zero rec.ID is assigned a fresh UUID.
//
// Postcondition: Returns the stored record with ID and FoughtAt set.
func (r *BattleRepository) Append(ctx context.Context, rec *BattleRecord) (*BattleRecord, error) {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}

	logJSON, err := json.Marshal(rec.Log)
	if err != nil {
		return nil, fmt.Errorf("encoding battle log: %w", err)
	}

	var out BattleRecord
	var rawLog []byte
	err = r.db.QueryRow(ctx, `
		INSERT INTO battles (id, location, outcome, winner_id, loser_id, holy_war, log)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, location, outcome, winner_id, loser_id, holy_war, log, fought_at`,
		rec.ID, rec.Location, rec.Outcome, rec.WinnerID, rec.LoserID, rec.HolyWar, logJSON,
	).Scan(
		&out.ID, &out.Location, &out.Outcome, &out.WinnerID, &out.LoserID,
		&out.HolyWar, &rawLog, &out.FoughtAt,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting battle record: %w", err)
	}
	if err := json.Unmarshal(rawLog, &out.Log); err != nil {
		return nil, fmt.Errorf("decoding battle log: %w", err)
	}
	return &out, nil
}

// GetByID retrieves a battle record by its UUID.
//
// Postcondition: Returns the BattleRecord or ErrBattleNotFound.
func (r *BattleRepository) GetByID(ctx context.Context, id uuid.UUID) (*BattleRecord, error) {
	var rec BattleRecord
	var rawLog []byte
	err := r.db.QueryRow(ctx, `
		SELECT id, location, outcome, winner_id, loser_id, holy_war, log, fought_at
		FROM battles WHERE id = $1`,
		id,
	).Scan(
		&rec.ID, &rec.Location, &rec.Outcome, &rec.WinnerID, &rec.LoserID,
		&rec.HolyWar, &rawLog, &rec.FoughtAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBattleNotFound
		}
		return nil, fmt.Errorf("querying battle record: %w", err)
	}
	if err := json.Unmarshal(rawLog, &rec.Log); err != nil {
		return nil, fmt.Errorf("decoding battle log: %w", err)
	}
	return &rec, nil
}

// ListByPlayer returns all battle records in which the player won or lost,
// newest first.
//
// Postcondition: Returns a slice (may be empty) or a non-nil error.
func (r *BattleRepository) ListByPlayer(ctx context.Context, playerID int64) ([]*BattleRecord, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, location, outcome, winner_id, loser_id, holy_war, log, fought_at
		FROM battles WHERE winner_id = $1 OR loser_id = $1
		ORDER BY fought_at DESC`,
		playerID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing battle records: %w", err)
	}
	defer rows.Close()

	records := make([]*BattleRecord, 0)
	for rows.Next() {
		var rec BattleRecord
		var rawLog []byte
		if err := rows.Scan(
			&rec.ID, &rec.Location, &rec.Outcome, &rec.WinnerID, &rec.LoserID,
			&rec.HolyWar, &rawLog, &rec.FoughtAt,
		); err != nil {
			return nil, fmt.Errorf("scanning battle row: %w", err)
		}
		if err := json.Unmarshal(rawLog, &rec.Log); err != nil {
			return nil, fmt.Errorf("decoding battle log: %w", err)
		}
		records = append(records, &rec)
	}
	return records, rows.Err()
}
