// Package siege adapts city assaults onto the field battle engine. A
// besieged city defends itself with a synthetic garrison derived from its
// tier; the assault is then an ordinary battle.
package siege

import (
	"fmt"

	"github.com/cory-johannsen/hegemony/internal/game/battle"
	"github.com/cory-johannsen/hegemony/internal/game/unit"
)

// City describes the besieged settlement.
type City struct {
	Name       string
	Tier       int
	DefenderID int64
}

// Result is the outcome of one assault. Victory is true only when the
// attacker wins outright; a stalemate leaves the siege standing.
type Result struct {
	Victory  bool
	Battle   *battle.Result
	Garrison *battle.Side
}

// Garrison synthesizes the automatic city garrison for a tier: tier heavy
// brigades and tier+1 ranged brigades, each carrying the garrison bonus on
// top of its base type stats. The garrison fights leaderless.
//
// Garrison brigades are transient and never persisted; their IDs are
// negative so they can never collide with player brigade ids.
//
// Precondition: tier must be at least 1.
func Garrison(defenderID int64, tier int) (*battle.Side, error) {
	if tier < 1 {
		return nil, fmt.Errorf("siege: city tier must be at least 1, got %d", tier)
	}

	var brigades []*battle.Brigade
	add := func(t unit.Type, count int) error {
		for i := 0; i < count; i++ {
			stats, err := unit.ResolveStats(t, "", true)
			if err != nil {
				return err
			}
			brigades = append(brigades, &battle.Brigade{
				ID:       -int64(len(brigades) + 1),
				PlayerID: defenderID,
				Type:     t,
				Stats:    stats,
			})
		}
		return nil
	}

	if err := add(unit.Heavy, tier); err != nil {
		return nil, err
	}
	if err := add(unit.Ranged, tier+1); err != nil {
		return nil, err
	}

	return &battle.Side{PlayerID: defenderID, Brigades: brigades}, nil
}

// Assault resolves an assault on city by attacker through engine. The
// attacker side is mutated like in any battle; the garrison is discarded
// afterwards but returned for inspection.
//
// Postcondition: Result.Victory is true iff the attacker won the battle.
func Assault(engine *battle.Engine, attacker *battle.Side, city City, opts battle.Options) (*Result, error) {
	garrison, err := Garrison(city.DefenderID, city.Tier)
	if err != nil {
		return nil, err
	}

	if opts.Location == "" {
		opts.Location = fmt.Sprintf("Siege of %s", city.Name)
	}

	res, err := engine.Resolve(attacker, garrison, opts)
	if err != nil {
		return nil, err
	}

	return &Result{
		Victory:  res.Winner == attacker,
		Battle:   res,
		Garrison: garrison,
	}, nil
}
