// Package gameserver wires the battle engine to persistent state: it loads
// army rosters, runs resolutions, and writes the outcomes back.
package gameserver

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/hegemony/internal/game/battle"
	"github.com/cory-johannsen/hegemony/internal/game/siege"
	"github.com/cory-johannsen/hegemony/internal/game/unit"
	"github.com/cory-johannsen/hegemony/internal/storage/postgres"
)

// ErrEmptyArmy is returned when a battle is requested for an army with no
// brigades. The engine itself tolerates an empty side; requesting a battle
// with one is a caller error.
var ErrEmptyArmy = errors.New("army has no brigades")

// ArmyStore loads armies.
type ArmyStore interface {
	GetByID(ctx context.Context, id int64) (*postgres.Army, error)
}

// BrigadeStore loads and updates brigades.
type BrigadeStore interface {
	ListByArmy(ctx context.Context, armyID int64) ([]*postgres.Brigade, error)
	Delete(ctx context.Context, id int64) error
}

// GeneralStore loads and updates generals.
type GeneralStore interface {
	GetByID(ctx context.Context, id int64) (*postgres.General, error)
	SaveOutcome(ctx context.Context, id int64, level int, captured bool) error
}

// BattleStore appends battle records.
type BattleStore interface {
	Append(ctx context.Context, rec *postgres.BattleRecord) (*postgres.BattleRecord, error)
}

// Decisions carries the player decisions that must be made before a battle.
type Decisions struct {
	DeclineSkirmish bool
	OfferLastStand  bool
}

// BattleRequest names the two armies and the battle context.
type BattleRequest struct {
	AttackerArmyID int64
	DefenderArmyID int64
	Location       string
	HolyWar        bool
	Attacker       Decisions
	Defender       Decisions
}

// AssaultRequest names the attacking army and the besieged city.
type AssaultRequest struct {
	AttackerArmyID int64
	City           siege.City
	HolyWar        bool
	Attacker       Decisions
}

// BattleReport is the persisted outcome of a battle or assault.
type BattleReport struct {
	RecordID uuid.UUID
	Result   *battle.Result
	// Destroyed lists the ids of player brigades deleted from storage.
	Destroyed []int64
}

// BattleHandler resolves battles between persisted armies.
type BattleHandler struct {
	engine      *battle.Engine
	armies      ArmyStore
	brigades    BrigadeStore
	generals    GeneralStore
	battles     BattleStore
	logger      *zap.Logger
	maxLogLines int
}

// NewBattleHandler creates a BattleHandler.
//
// Precondition: all pointer arguments must be non-nil; maxLogLines 0 means
// the full battle log is persisted.
func NewBattleHandler(
	engine *battle.Engine,
	armies ArmyStore,
	brigades BrigadeStore,
	generals GeneralStore,
	battles BattleStore,
	logger *zap.Logger,
	maxLogLines int,
) *BattleHandler {
	return &BattleHandler{
		engine:      engine,
		armies:      armies,
		brigades:    brigades,
		generals:    generals,
		battles:     battles,
		logger:      logger,
		maxLogLines: maxLogLines,
	}
}

// FightBattle loads both armies, resolves the battle, and persists the
// outcome: destroyed brigades are deleted, general level and captured state
// saved, and an append-only battle record written.
//
// Precondition: both armies must exist and have at least one brigade.
// Postcondition: Returns the report, or an error with no state changed when
// loading or validation fails.
func (h *BattleHandler) FightBattle(ctx context.Context, req BattleRequest) (*BattleReport, error) {
	attacker, err := h.loadSide(ctx, req.AttackerArmyID, req.Attacker)
	if err != nil {
		return nil, fmt.Errorf("loading attacker army %d: %w", req.AttackerArmyID, err)
	}
	defender, err := h.loadSide(ctx, req.DefenderArmyID, req.Defender)
	if err != nil {
		return nil, fmt.Errorf("loading defender army %d: %w", req.DefenderArmyID, err)
	}

	res, err := h.engine.Resolve(attacker, defender, battle.Options{
		Location: req.Location,
		HolyWar:  req.HolyWar,
	})
	if err != nil {
		return nil, err
	}

	return h.persistOutcome(ctx, res, req.HolyWar, attacker, defender)
}

// AssaultCity resolves a siege assault: the attacker army against the city's
// synthetic garrison. Garrison brigades are transient and never persisted;
// only the attacker's losses and general are written back.
func (h *BattleHandler) AssaultCity(ctx context.Context, req AssaultRequest) (*BattleReport, error) {
	attacker, err := h.loadSide(ctx, req.AttackerArmyID, req.Attacker)
	if err != nil {
		return nil, fmt.Errorf("loading attacker army %d: %w", req.AttackerArmyID, err)
	}

	res, err := siege.Assault(h.engine, attacker, req.City, battle.Options{HolyWar: req.HolyWar})
	if err != nil {
		return nil, err
	}

	return h.persistOutcome(ctx, res.Battle, req.HolyWar, attacker)
}

// loadSide builds a battle side from a persisted army: brigades with fully
// resolved stats and the assigned general, if any. A captured general cannot
// command; the side fights leaderless until a new general is assigned.
func (h *BattleHandler) loadSide(ctx context.Context, armyID int64, d Decisions) (*battle.Side, error) {
	army, err := h.armies.GetByID(ctx, armyID)
	if err != nil {
		return nil, err
	}

	rows, err := h.brigades.ListByArmy(ctx, armyID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrEmptyArmy
	}

	side := &battle.Side{
		PlayerID:        army.PlayerID,
		DeclineSkirmish: d.DeclineSkirmish,
		OfferLastStand:  d.OfferLastStand,
	}

	for _, row := range rows {
		stats, err := unit.ResolveStats(unit.Type(row.Type), row.Enhancement, false)
		if err != nil {
			return nil, fmt.Errorf("brigade %d: %w", row.ID, err)
		}
		side.Brigades = append(side.Brigades, &battle.Brigade{
			ID:          row.ID,
			PlayerID:    row.PlayerID,
			Type:        unit.Type(row.Type),
			Enhancement: row.Enhancement,
			Stats:       stats,
		})
	}

	if army.GeneralID != nil {
		g, err := h.generals.GetByID(ctx, *army.GeneralID)
		if err != nil {
			return nil, err
		}
		if g.Captured {
			h.logger.Warn("assigned general is captured, army fights leaderless",
				zap.Int64("army_id", armyID),
				zap.Int64("general_id", g.ID),
			)
		} else {
			side.General = &battle.General{
				ID:       g.ID,
				PlayerID: g.PlayerID,
				Name:     g.Name,
				Level:    g.Level,
				Trait:    battle.Trait(g.TraitID),
			}
		}
	}

	return side, nil
}

// persistOutcome writes the battle's side effects for the given player sides:
// destroyed brigades deleted, general outcomes saved, battle record appended.
// Garrison sides are simply not passed in.
func (h *BattleHandler) persistOutcome(ctx context.Context, res *battle.Result, holyWar bool, sides ...*battle.Side) (*BattleReport, error) {
	report := &BattleReport{Result: res}

	for _, s := range sides {
		for _, b := range s.Brigades {
			if !b.Destroyed {
				continue
			}
			if err := h.brigades.Delete(ctx, b.ID); err != nil {
				return nil, fmt.Errorf("deleting destroyed brigade %d: %w", b.ID, err)
			}
			report.Destroyed = append(report.Destroyed, b.ID)
		}
		if g := s.General; g != nil {
			if err := h.generals.SaveOutcome(ctx, g.ID, g.Level, g.Captured); err != nil {
				return nil, fmt.Errorf("saving general %d outcome: %w", g.ID, err)
			}
		}
	}

	rec := &postgres.BattleRecord{
		Location: res.Location,
		Outcome:  res.Kind.String(),
		HolyWar:  holyWar,
		Log:      truncateLog(res.Log, h.maxLogLines),
	}
	if res.Winner != nil {
		rec.WinnerID = &res.Winner.PlayerID
		rec.LoserID = &res.Loser.PlayerID
	}

	stored, err := h.battles.Append(ctx, rec)
	if err != nil {
		return nil, fmt.Errorf("appending battle record: %w", err)
	}
	report.RecordID = stored.ID

	h.logger.Info("battle persisted",
		zap.String("record_id", stored.ID.String()),
		zap.String("outcome", res.Kind.String()),
		zap.Int("brigades_destroyed", len(report.Destroyed)),
	)
	return report, nil
}

func truncateLog(log []string, max int) []string {
	if max <= 0 || len(log) <= max {
		return log
	}
	return log[:max]
}
