package main

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/hegemony/internal/game/battle"
	"github.com/cory-johannsen/hegemony/internal/game/unit"
)

// scenario is a declarative battle setup. Exactly two sides fight a field
// battle; when siege is set, the first side assaults the city instead and
// the second side must be absent.
type scenario struct {
	Location string         `yaml:"location"`
	HolyWar  bool           `yaml:"holy_war"`
	Sides    []scenarioSide `yaml:"sides"`
	Siege    *scenarioSiege `yaml:"siege"`
}

type scenarioSide struct {
	PlayerID        int64             `yaml:"player_id"`
	DeclineSkirmish bool              `yaml:"decline_skirmish"`
	OfferLastStand  bool              `yaml:"offer_last_stand"`
	General         *scenarioGeneral  `yaml:"general"`
	Brigades        []scenarioBrigade `yaml:"brigades"`
}

type scenarioGeneral struct {
	Name  string `yaml:"name"`
	Level int    `yaml:"level"`
	Trait int    `yaml:"trait"`
}

type scenarioBrigade struct {
	Type        string `yaml:"type"`
	Enhancement string `yaml:"enhancement"`
}

type scenarioSiege struct {
	CityName   string `yaml:"city_name"`
	Tier       int    `yaml:"tier"`
	DefenderID int64  `yaml:"defender_id"`
}

// loadScenario reads and strictly decodes a scenario file. Unknown fields
// are an error so typos in hand-written scenarios surface immediately.
func loadScenario(path string) (*scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario %q: %w", path, err)
	}

	var sc scenario
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&sc); err != nil {
		return nil, fmt.Errorf("parsing scenario %q: %w", path, err)
	}

	if sc.Siege != nil {
		if len(sc.Sides) != 1 {
			return nil, fmt.Errorf("siege scenario needs exactly 1 attacking side, got %d", len(sc.Sides))
		}
	} else if len(sc.Sides) != 2 {
		return nil, fmt.Errorf("battle scenario needs exactly 2 sides, got %d", len(sc.Sides))
	}
	return &sc, nil
}

// buildSide converts one scenario side into a battle side with fully
// resolved brigade stats. Brigade ids are synthetic, numbered from idBase.
func buildSide(s scenarioSide, idBase int64) (*battle.Side, error) {
	side := &battle.Side{
		PlayerID:        s.PlayerID,
		DeclineSkirmish: s.DeclineSkirmish,
		OfferLastStand:  s.OfferLastStand,
	}

	for i, b := range s.Brigades {
		stats, err := unit.ResolveStats(unit.Type(b.Type), b.Enhancement, false)
		if err != nil {
			return nil, fmt.Errorf("player %d brigade %d: %w", s.PlayerID, i+1, err)
		}
		side.Brigades = append(side.Brigades, &battle.Brigade{
			ID:          idBase + int64(i) + 1,
			PlayerID:    s.PlayerID,
			Type:        unit.Type(b.Type),
			Enhancement: b.Enhancement,
			Stats:       stats,
		})
	}

	if s.General != nil {
		side.General = &battle.General{
			PlayerID: s.PlayerID,
			Name:     s.General.Name,
			Level:    s.General.Level,
			Trait:    battle.Trait(s.General.Trait),
		}
	}
	return side, nil
}
