// Package main provides an offline battle simulator: it resolves a YAML
// scenario through the battle engine and prints the full battle log.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/hegemony/internal/config"
	"github.com/cory-johannsen/hegemony/internal/game/battle"
	"github.com/cory-johannsen/hegemony/internal/game/dice"
	"github.com/cory-johannsen/hegemony/internal/game/siege"
	"github.com/cory-johannsen/hegemony/internal/observability"
)

func main() {
	start := time.Now()

	scenarioPath := flag.String("scenario", "", "path to scenario YAML file")
	seed := flag.Int64("seed", 0, "dice seed; 0 uses the crypto source")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	logFormat := flag.String("log-format", "console", "log format: json or console")
	flag.Parse()

	if *scenarioPath == "" {
		log.Fatal("missing required -scenario flag")
	}

	logger, err := observability.NewComponentLogger(config.LoggingConfig{
		Level:  *logLevel,
		Format: *logFormat,
	}, "battlesim")
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	sc, err := loadScenario(*scenarioPath)
	if err != nil {
		logger.Fatal("loading scenario", zap.Error(err))
	}

	var src dice.Source
	if *seed == 0 {
		src = dice.NewCryptoSource()
	} else {
		src = dice.NewSeededSource(*seed)
		logger.Info("using seeded dice", zap.Int64("seed", *seed))
	}
	engine := battle.NewEngine(dice.NewRoller(src, logger), logger)

	res, err := runScenario(engine, sc)
	if err != nil {
		logger.Fatal("resolving scenario", zap.Error(err))
	}

	for _, line := range res.Log {
		fmt.Fprintln(os.Stdout, line)
	}
	fmt.Fprintf(os.Stdout, "\noutcome: %s", res.Kind)
	if res.Winner != nil {
		fmt.Fprintf(os.Stdout, ", winner: player %d", res.Winner.PlayerID)
	}
	fmt.Fprintf(os.Stdout, " [%s]\n", time.Since(start))
}

// runScenario resolves either a field battle or a siege assault.
func runScenario(engine *battle.Engine, sc *scenario) (*battle.Result, error) {
	opts := battle.Options{Location: sc.Location, HolyWar: sc.HolyWar}

	if sc.Siege != nil {
		attacker, err := buildSide(sc.Sides[0], 100)
		if err != nil {
			return nil, err
		}
		res, err := siege.Assault(engine, attacker, siege.City{
			Name:       sc.Siege.CityName,
			Tier:       sc.Siege.Tier,
			DefenderID: sc.Siege.DefenderID,
		}, opts)
		if err != nil {
			return nil, err
		}
		return res.Battle, nil
	}

	side1, err := buildSide(sc.Sides[0], 100)
	if err != nil {
		return nil, err
	}
	side2, err := buildSide(sc.Sides[1], 200)
	if err != nil {
		return nil, err
	}
	return engine.Resolve(side1, side2, opts)
}
