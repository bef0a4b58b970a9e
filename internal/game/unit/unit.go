// Package unit holds the static brigade data for Hegemony: the five brigade
// types with their base combat stats, and the enhancement table. Stat values
// are game-balance data and must stay stable across releases.
package unit

import "fmt"

// Stats is the five-axis combat stat block shared by brigade types,
// enhancements, and battle modifiers. All axes are additive.
type Stats struct {
	Skirmish int `yaml:"skirmish"`
	Defense  int `yaml:"defense"`
	Pitch    int `yaml:"pitch"`
	Rally    int `yaml:"rally"`
	Movement int `yaml:"movement"`
}

// Add returns the component-wise sum of s and o.
//
// Postcondition: Returns a new Stats; neither operand is mutated.
func (s Stats) Add(o Stats) Stats {
	return Stats{
		Skirmish: s.Skirmish + o.Skirmish,
		Defense:  s.Defense + o.Defense,
		Pitch:    s.Pitch + o.Pitch,
		Rally:    s.Rally + o.Rally,
		Movement: s.Movement + o.Movement,
	}
}

// Type classifies a brigade. The set is closed; an unknown value is a data
// integrity error, never silently tolerated.
type Type string

const (
	Cavalry Type = "cavalry"
	Heavy   Type = "heavy"
	Light   Type = "light"
	Ranged  Type = "ranged"
	Support Type = "support"
)

// baseStats maps each brigade type to its base stat block.
var baseStats = map[Type]Stats{
	Cavalry: {Skirmish: 1, Pitch: 1, Movement: 5},
	Heavy:   {Defense: 2, Pitch: 1, Rally: 1, Movement: 3},
	Light:   {Skirmish: 2, Rally: 1, Movement: 4},
	Ranged:  {Defense: 2, Pitch: 1, Movement: 4},
	Support: {Defense: 2, Rally: 1, Movement: 4},
}

// Valid reports whether t is one of the five known brigade types.
func (t Type) Valid() bool {
	_, ok := baseStats[t]
	return ok
}

// BaseStats returns the base stat block for t.
//
// Postcondition: Returns an error iff t is not a known brigade type.
func BaseStats(t Type) (Stats, error) {
	s, ok := baseStats[t]
	if !ok {
		return Stats{}, fmt.Errorf("unit: unknown brigade type %q", t)
	}
	return s, nil
}

// Types returns all brigade types in display order.
func Types() []Type {
	return []Type{Cavalry, Heavy, Light, Ranged, Support}
}

// GarrisonBonus is the flat stat bonus applied to garrisoned brigades.
// Balance data; referenced by the siege adapter and stat resolution.
var GarrisonBonus = Stats{Defense: 2, Rally: 2}

// ResolveStats computes the fully-resolved stat block for a brigade: base
// type stats, plus enhancement stats when enhancement is non-empty, plus the
// garrison bonus when garrisoned. Battle code only ever sees the result.
//
// Postcondition: Returns an error iff t or enhancement is unrecognized.
func ResolveStats(t Type, enhancement string, garrisoned bool) (Stats, error) {
	s, err := BaseStats(t)
	if err != nil {
		return Stats{}, err
	}
	if enhancement != "" {
		e, err := GetEnhancement(enhancement)
		if err != nil {
			return Stats{}, err
		}
		s = s.Add(e.Stats)
	}
	if garrisoned {
		s = s.Add(GarrisonBonus)
	}
	return s, nil
}
