package battle

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/hegemony/internal/game/dice"
	"github.com/cory-johannsen/hegemony/internal/game/unit"
)

// Rulebook constants. These are game-balance data and must stay stable.
const (
	skirmishersPerSide    = 2
	overrunMargin         = 3
	destructionThreshold  = 2 // overrun and base action report casualty die
	pitchRoundsPerCycle   = 3
	decisiveTally         = 20
	rallyThreshold        = 5
	maxRallyCycles        = 5
	promotionThresholdMin = 5
	captureRoll           = 1
)

// OutcomeKind classifies how a battle ended.
type OutcomeKind int

const (
	OutcomeDecisive OutcomeKind = iota
	OutcomeRout
	OutcomeStalemate
)

// String returns a human-readable outcome label.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeDecisive:
		return "decisive"
	case OutcomeRout:
		return "rout"
	case OutcomeStalemate:
		return "stalemate"
	default:
		return "unknown"
	}
}

// Result is the full outcome of one battle. Winner and Loser are nil for a
// stalemate. Log lines document every roll, threshold check, and state
// transition in execution order.
type Result struct {
	Kind     OutcomeKind
	Winner   *Side
	Loser    *Side
	Location string
	Log      []string
}

// Options carries per-battle context from the caller.
type Options struct {
	Location string
	// HolyWar raises the Zealous pre-battle bonus only. It is passed in
	// explicitly; the engine never reads war state itself.
	HolyWar bool
}

// Engine resolves battles. It performs no I/O and holds no per-battle state;
// a single Engine may resolve any number of battles sequentially.
type Engine struct {
	roller *dice.Roller
	logger *zap.Logger
}

// NewEngine creates a battle Engine rolling with roller.
//
// Precondition: roller and logger must be non-nil.
func NewEngine(roller *dice.Roller, logger *zap.Logger) *Engine {
	return &Engine{roller: roller, logger: logger}
}

// resolution carries the mutable state of one battle in flight: the
// positive/negative designation and the ordered battle log.
type resolution struct {
	roller   *dice.Roller
	logger   *zap.Logger
	positive *Side
	negative *Side
	holyWar  bool
	log      []string
}

func (r *resolution) logf(format string, args ...any) {
	r.log = append(r.log, fmt.Sprintf(format, args...))
}

// Resolve runs a full battle between side1 and side2 and returns the result.
// The sides are mutated in place (routed/destroyed flags, general level and
// captured, battle modifiers); the caller owns persistence of the final
// state. Resolution always runs to a terminal state.
//
// Precondition: both sides must pass validation (known traits and types).
// Postcondition: Returns a Result whose Kind is exactly one of decisive,
// rout, or stalemate, or a validation error with the sides untouched.
func (e *Engine) Resolve(side1, side2 *Side, opts Options) (*Result, error) {
	if err := validateSide(side1); err != nil {
		return nil, err
	}
	if err := validateSide(side2); err != nil {
		return nil, err
	}

	r := &resolution{
		roller:  e.roller,
		logger:  e.logger,
		holyWar: opts.HolyWar,
	}

	r.logf("BATTLE AT %s", opts.Location)
	r.logf("%s vs %s", side1.Label(), side2.Label())

	// The positive/negative designation anchors the pitch tally sign and
	// decisive thresholds. It is uniform random, not attacker/defender.
	if r.roller.Flip("positive side assignment") {
		r.positive, r.negative = side1, side2
	} else {
		r.positive, r.negative = side2, side1
	}
	r.logf("positive side: player %d", r.positive.PlayerID)
	r.logf("negative side: player %d", r.negative.PlayerID)

	r.applyArmyBonuses()
	r.skirmishPhase()
	out := r.pitchRallyCycle()

	if out.kind != OutcomeStalemate {
		r.actionReport(out.winner, out.loser)
	}

	e.logger.Info("battle resolved",
		zap.String("location", opts.Location),
		zap.String("outcome", out.kind.String()),
	)

	return &Result{
		Kind:     out.kind,
		Winner:   out.winner,
		Loser:    out.loser,
		Location: opts.Location,
		Log:      r.log,
	}, nil
}

// applyArmyBonuses layers each general's army-wide trait bonus onto every
// brigade of their side, once, as a battle modifier.
func (r *resolution) applyArmyBonuses() {
	for _, s := range []*Side{r.positive, r.negative} {
		g := s.Commander()
		if g == nil {
			continue
		}
		bonus := g.Trait.ArmyBonus(r.holyWar)
		if bonus == (unit.Stats{}) {
			continue
		}
		for _, b := range s.Brigades {
			b.AddModifier(bonus)
		}
		r.logf("%s (%s) readies player %d's army: +%d skirmish, +%d defense, +%d pitch, +%d rally",
			g.Name, g.Trait, s.PlayerID,
			bonus.Skirmish, bonus.Defense, bonus.Pitch, bonus.Rally)
	}
}

// validateSide rejects configuration errors before any dice are rolled:
// an unknown trait or brigade type indicates corrupt upstream data and must
// abort the battle rather than silently skip a modifier.
func validateSide(s *Side) error {
	if s == nil {
		return fmt.Errorf("battle: side is nil")
	}
	for _, b := range s.Brigades {
		if !b.Type.Valid() {
			return fmt.Errorf("battle: brigade %d has unknown type %q", b.ID, b.Type)
		}
		if b.Enhancement != "" {
			if _, err := unit.GetEnhancement(b.Enhancement); err != nil {
				return fmt.Errorf("battle: brigade %d: %w", b.ID, err)
			}
		}
	}
	if s.General != nil && !s.General.Trait.Valid() {
		return fmt.Errorf("battle: general %q has unknown trait id %d",
			s.General.Name, int(s.General.Trait))
	}
	return nil
}
