package battle

import (
	"fmt"

	"github.com/cory-johannsen/hegemony/internal/game/unit"
)

// Trait is one of the twenty fixed general personalities. The set is closed:
// an unknown value is rejected during side validation before any phase runs,
// because a corrupt trait id upstream must never silently drop a modifier.
//
// Values 1-20 match the persistent trait table and must not be renumbered.
type Trait int

const (
	TraitAmbitious Trait = iota + 1
	TraitBold
	TraitBrilliant
	TraitBrutal
	TraitCautious
	TraitChivalrous
	TraitConfident
	TraitDefiant
	TraitDisciplined
	TraitDogged
	TraitHeroic
	TraitInspiring
	TraitLucky
	TraitMariner
	TraitMerciless
	TraitProdigious
	TraitRelentless
	TraitResolute
	TraitWary
	TraitZealous
)

var traitNames = map[Trait]string{
	TraitAmbitious:   "Ambitious",
	TraitBold:        "Bold",
	TraitBrilliant:   "Brilliant",
	TraitBrutal:      "Brutal",
	TraitCautious:    "Cautious",
	TraitChivalrous:  "Chivalrous",
	TraitConfident:   "Confident",
	TraitDefiant:     "Defiant",
	TraitDisciplined: "Disciplined",
	TraitDogged:      "Dogged",
	TraitHeroic:      "Heroic",
	TraitInspiring:   "Inspiring",
	TraitLucky:       "Lucky",
	TraitMariner:     "Mariner",
	TraitMerciless:   "Merciless",
	TraitProdigious:  "Prodigious",
	TraitRelentless:  "Relentless",
	TraitResolute:    "Resolute",
	TraitWary:        "Wary",
	TraitZealous:     "Zealous",
}

var traitDescriptions = map[Trait]string{
	TraitAmbitious:   "-1 to promotion number needed after battle",
	TraitBold:        "One skirmisher gets bonus equal to half general level (rounded up)",
	TraitBrilliant:   "Double general level during pitch",
	TraitBrutal:      "Pillaging succeeds on 5-6, razing also counts as sacking",
	TraitCautious:    "May skip the skirmish stage",
	TraitChivalrous:  "Allow enemy reroll on destruction dice for -1 siege timer",
	TraitConfident:   "+2 defense, +1 rally for all brigades",
	TraitDefiant:     "+2 rally for all brigades",
	TraitDisciplined: "+1 pitch, +1 rally for all brigades",
	TraitDogged:      "Choose 2 brigades to assist adjacent tile battles",
	TraitHeroic:      "+1 rally; may sacrifice self for a fresh pitch with general level bonus",
	TraitInspiring:   "Free reroll on rally rolls, celebrating gives +2 rally",
	TraitLucky:       "May reroll a promotion roll of 1 once per battle",
	TraitMariner:     "+1 army movement while embarked, siege from landing",
	TraitMerciless:   "Enemy brigades destroyed on 1-3 during action report",
	TraitProdigious:  "Fights with 2 additional levels (lost if trait rerolled)",
	TraitRelentless:  "+1 army movement on land, may pursue retreating enemies",
	TraitResolute:    "+3 defense for all brigades",
	TraitWary:        "Alerted when enemy can see army, +1 sight, reveal enemy traits",
	TraitZealous:     "+1 rally (+2 rally, +1 pitch in holy wars)",
}

// Valid reports whether t is one of the twenty known traits.
func (t Trait) Valid() bool {
	_, ok := traitNames[t]
	return ok
}

// String returns the trait's display name, or "unknown" for invalid values.
func (t Trait) String() string {
	if s, ok := traitNames[t]; ok {
		return s
	}
	return fmt.Sprintf("unknown(%d)", int(t))
}

// Description returns the one-line player-facing effect text.
func (t Trait) Description() string {
	return traitDescriptions[t]
}

// ArmyBonus returns the army-wide stat bonus applied once before battle to
// every brigade on the general's side. holyWar raises the Zealous bonus only.
//
// Postcondition: Returns the zero Stats for traits without an army bonus.
func (t Trait) ArmyBonus(holyWar bool) unit.Stats {
	switch t {
	case TraitConfident:
		return unit.Stats{Defense: 2, Rally: 1}
	case TraitDefiant:
		return unit.Stats{Rally: 2}
	case TraitDisciplined:
		return unit.Stats{Pitch: 1, Rally: 1}
	case TraitResolute:
		return unit.Stats{Defense: 3}
	case TraitHeroic:
		return unit.Stats{Rally: 1}
	case TraitZealous:
		if holyWar {
			return unit.Stats{Pitch: 1, Rally: 2}
		}
		return unit.Stats{Rally: 1}
	default:
		return unit.Stats{}
	}
}

// SkirmishBonus returns the flat bonus granted to the side's best skirmisher,
// half the general's level rounded up for Bold, zero otherwise.
func (t Trait) SkirmishBonus(level int) int {
	if t == TraitBold {
		return (level + 1) / 2
	}
	return 0
}

// CommandPitchBonus returns the general's contribution to a pitch round.
// Base contribution is the general's level; Brilliant doubles it and
// Prodigious adds two (the trait's bonus levels). A general has exactly one
// trait, so the adjustments never stack.
func (t Trait) CommandPitchBonus(level int) int {
	switch t {
	case TraitBrilliant:
		return level * 2
	case TraitProdigious:
		return level + 2
	default:
		return level
	}
}

// MaySkipSkirmish reports whether the general may decline the skirmish phase.
func (t Trait) MaySkipSkirmish() bool {
	return t == TraitCautious
}

// GrantsRallyReroll reports whether the side's rally rolls are rolled twice,
// keeping the better die.
func (t Trait) GrantsRallyReroll() bool {
	return t == TraitInspiring
}

// AllowsLastStand reports whether the general may be sacrificed to keep a
// fully-routed side fighting.
func (t Trait) AllowsLastStand() bool {
	return t == TraitHeroic
}

// PromotionThreshold adjusts the minimum promotion roll for this general.
func (t Trait) PromotionThreshold(base int) int {
	if t == TraitAmbitious {
		return base - 1
	}
	return base
}

// GrantsPromotionReroll reports whether the general may reroll a promotion
// roll of 1 regardless of the battle's outcome.
func (t Trait) GrantsPromotionReroll() bool {
	return t == TraitLucky
}

// EnemyCasualtyThreshold adjusts the destruction threshold this general
// imposes on a defeated enemy's casualty rolls.
func (t Trait) EnemyCasualtyThreshold(base int) int {
	if t == TraitMerciless {
		return base + 1
	}
	return base
}
