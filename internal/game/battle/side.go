// Package battle implements the field battle engine for Hegemony: skirmish,
// pitch-rally cycle, and action report phases between two brigade rosters.
package battle

import (
	"fmt"

	"github.com/cory-johannsen/hegemony/internal/game/unit"
)

// Brigade is one military unit participating in a battle. Stats must arrive
// fully resolved (base type + enhancement + garrison); the engine never
// consults the unit tables itself. Trait and battle bonuses live in a
// separate modifier layer so the same brigade value can be re-evaluated
// without double-applying anything.
type Brigade struct {
	ID          int64
	PlayerID    int64
	Type        unit.Type
	Enhancement string // empty = none
	Stats       unit.Stats

	// Routed toggles with each rally sub-phase. Destroyed is terminal:
	// once set it is never cleared within a battle.
	Routed    bool
	Destroyed bool

	mods []unit.Stats
}

// AddModifier layers an additive stat bonus onto the brigade for the rest of
// the battle.
func (b *Brigade) AddModifier(m unit.Stats) {
	b.mods = append(b.mods, m)
}

// EffectiveStats returns the brigade's resolved stats plus all active
// modifiers, computed fresh on every call.
//
// Postcondition: b.Stats is never mutated.
func (b *Brigade) EffectiveStats() unit.Stats {
	s := b.Stats
	for _, m := range b.mods {
		s = s.Add(m)
	}
	return s
}

// Active reports whether the brigade is currently fighting.
//
// Postcondition: Returns true iff not destroyed and not routed.
func (b *Brigade) Active() bool {
	return !b.Destroyed && !b.Routed
}

// Label returns the short display form used in battle log lines.
func (b *Brigade) Label() string {
	return fmt.Sprintf("#%d %s", b.ID, b.Type)
}

// General is the optional commander of a side. Level and Captured are
// mutated only by the action report phase and the heroic last stand.
type General struct {
	ID       int64
	PlayerID int64
	Name     string
	Level    int
	Trait    Trait
	Captured bool
}

// Side is one belligerent's full roster for a single battle. Brigade order
// is irrelevant to the outcome but stable for display and tie-breaking.
type Side struct {
	PlayerID int64
	Brigades []*Brigade
	General  *General // nil = leaderless force

	// DeclineSkirmish is the caller-supplied decision to skip the skirmish
	// phase. Honored only when the general's trait permits skipping.
	DeclineSkirmish bool
	// OfferLastStand is the caller-supplied decision to sacrifice the
	// general when the side is fully routed. Honored only when the
	// general's trait permits the last stand.
	OfferLastStand bool
}

// ActiveBrigades returns the brigades currently fighting, in roster order.
func (s *Side) ActiveBrigades() []*Brigade {
	var out []*Brigade
	for _, b := range s.Brigades {
		if b.Active() {
			out = append(out, b)
		}
	}
	return out
}

// Survivors counts brigades that are neither destroyed nor routed.
//
// Postcondition: Returns 0 for an empty roster, never an error.
func (s *Side) Survivors() int {
	n := 0
	for _, b := range s.Brigades {
		if b.Active() {
			n++
		}
	}
	return n
}

// HasEnhancement reports whether any not-destroyed brigade in the roster
// carries the named enhancement.
func (s *Side) HasEnhancement(name string) bool {
	for _, b := range s.Brigades {
		if !b.Destroyed && b.Enhancement == name {
			return true
		}
	}
	return false
}

// Commander returns the side's general if present and not captured.
func (s *Side) Commander() *General {
	if s.General == nil || s.General.Captured {
		return nil
	}
	return s.General
}

// Label returns the display form of the side used in battle log lines.
func (s *Side) Label() string {
	n := 0
	for _, b := range s.Brigades {
		if !b.Destroyed {
			n++
		}
	}
	name := "no general"
	if s.General != nil {
		name = s.General.Name
	}
	return fmt.Sprintf("player %d (%d brigades, %s)", s.PlayerID, n, name)
}
