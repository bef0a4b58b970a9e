package unit

import "fmt"

// Enhancement is a single purchasable brigade upgrade. Stats participate in
// ResolveStats; Ability is display text for effects handled elsewhere (the
// two battle-relevant abilities, Officer Corps and Life Guard, are wired in
// the battle engine's action report).
type Enhancement struct {
	Name    string
	Type    Type // empty = universal, usable by any brigade type
	Stats   Stats
	Ability string
}

// Enhancement names referenced by battle code.
const (
	EnhancementOfficerCorps = "Officer Corps"
	EnhancementLifeGuard    = "Life Guard"
)

var enhancements = map[string]Enhancement{
	// Cavalry
	"Life Guard": {Name: "Life Guard", Type: Cavalry, Stats: Stats{Rally: 2},
		Ability: "Allows general to reroll a 1 on the promotion roll once per battle"},
	"Lancers": {Name: "Lancers", Type: Cavalry, Stats: Stats{Skirmish: 2},
		Ability: "Overrun automatically on a won skirmish"},
	"Dragoons": {Name: "Dragoons", Type: Cavalry, Stats: Stats{Defense: 2, Pitch: 1, Rally: 1}},

	// Heavy
	"Artillery Team": {Name: "Artillery Team", Type: Heavy, Stats: Stats{Defense: 1, Pitch: 1},
		Ability: "When garrisoned +1 pitch; -1 defense to all enemy brigades in battle"},
	"Grenadiers":    {Name: "Grenadiers", Type: Heavy, Stats: Stats{Skirmish: 2, Pitch: 2}},
	"Stormtroopers": {Name: "Stormtroopers", Type: Heavy, Stats: Stats{Pitch: 1, Rally: 1, Movement: 1},
		Ability: "Ignores trench movement penalties"},

	// Light
	"Rangers": {Name: "Rangers", Type: Light, Stats: Stats{Skirmish: 2, Pitch: 1}},
	"Assault Team": {Name: "Assault Team", Type: Light, Stats: Stats{Skirmish: 1},
		Ability: "May select skirmish target, negates garrison modifier"},
	"Commando": {Name: "Commando", Type: Light, Stats: Stats{Defense: 2, Pitch: 1},
		Ability: "Cannot be seen by enemy sentry teams"},

	// Ranged
	"Sharpshooters": {Name: "Sharpshooters", Type: Ranged, Stats: Stats{Defense: 2},
		Ability: "When garrisoned +1 pitch; routs failed skirmishers, forcing a destruction roll"},
	"Mobile Platforms": {Name: "Mobile Platforms", Type: Ranged, Stats: Stats{Skirmish: 1, Defense: 2, Movement: 1}},
	"Mortar Team": {Name: "Mortar Team", Type: Ranged, Stats: Stats{Pitch: 1, Rally: 1},
		Ability: "Negates garrison bonus for one random enemy brigade"},

	// Support
	"Field Hospital": {Name: "Field Hospital", Type: Support,
		Ability: "May reroll an action report destruction die, extends to army"},
	"Combat Engineers": {Name: "Combat Engineers", Type: Support,
		Ability: "Builds temporary structures, negates trench penalty, reduces siege time by 1"},
	"Officer Corps": {Name: "Officer Corps", Type: Support, Stats: Stats{Rally: 2},
		Ability: "General needs 4-6 to level up, may choose retreat location"},

	// Universal
	"Sentry Team": {Name: "Sentry Team", Stats: Stats{Defense: 3},
		Ability: "+1 tile sight"},
	"Marines": {Name: "Marines",
		Ability: "Immediate siege when landing, +1 sea tile movement for army"},
}

// GetEnhancement returns the enhancement definition for name.
//
// Postcondition: Returns an error iff name is not a known enhancement.
func GetEnhancement(name string) (Enhancement, error) {
	e, ok := enhancements[name]
	if !ok {
		return Enhancement{}, fmt.Errorf("unit: unknown enhancement %q", name)
	}
	return e, nil
}
