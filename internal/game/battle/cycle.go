package battle

import "github.com/cory-johannsen/hegemony/internal/game/unit"

// cycleOutcome is the terminal state of the pitch-rally cycle.
type cycleOutcome struct {
	kind   OutcomeKind
	winner *Side
	loser  *Side
}

// pitchRallyCycle runs the main decision loop: three pitch rounds accumulate
// a signed tally, the decisive thresholds are checked, then a rally phase
// decides who remains in the fight. The tally resets at the start of every
// iteration. The loop always terminates within maxRallyCycles iterations in
// exactly one of decisive victory, total rout, or stalemate.
func (r *resolution) pitchRallyCycle() cycleOutcome {
	for cycle := 1; cycle <= maxRallyCycles; cycle++ {
		r.logf("PITCH PHASE - round %d", cycle)

		tally := 0
		for round := 1; round <= pitchRoundsPerCycle; round++ {
			tally += r.pitchRound(round)
			r.logf("pitch round %d tally: %+d", round, tally)
		}

		if tally >= decisiveTally {
			r.logf("DECISIVE VICTORY for the positive side (tally %+d)", tally)
			return cycleOutcome{kind: OutcomeDecisive, winner: r.positive, loser: r.negative}
		}
		if tally <= -decisiveTally {
			r.logf("DECISIVE VICTORY for the negative side (tally %+d)", tally)
			return cycleOutcome{kind: OutcomeDecisive, winner: r.negative, loser: r.positive}
		}

		r.logf("RALLY PHASE - round %d", cycle)
		posSurvivors := r.rallySide(r.positive)
		negSurvivors := r.rallySide(r.negative)

		if posSurvivors == 0 {
			if r.lastStand(r.positive) {
				continue
			}
			r.logf("the negative side wins: player %d's army is fully routed", r.positive.PlayerID)
			return cycleOutcome{kind: OutcomeRout, winner: r.negative, loser: r.positive}
		}
		if negSurvivors == 0 {
			if r.lastStand(r.negative) {
				continue
			}
			r.logf("the positive side wins: player %d's army is fully routed", r.negative.PlayerID)
			return cycleOutcome{kind: OutcomeRout, winner: r.positive, loser: r.negative}
		}
	}

	r.logf("STALEMATE: both sides withdraw")
	return cycleOutcome{kind: OutcomeStalemate}
}

// pitchRound resolves one pitch round and returns its signed contribution,
// positive total minus negative total. On the first round of each cycle,
// routed brigades on both sides rejoin the line before any dice are rolled.
func (r *resolution) pitchRound(round int) int {
	if round == 1 {
		for _, s := range []*Side{r.positive, r.negative} {
			for _, b := range s.Brigades {
				if b.Routed && !b.Destroyed {
					b.Routed = false
				}
			}
		}
	}

	pos := r.sidePitchTotal(r.positive)
	neg := r.sidePitchTotal(r.negative)
	r.logf("positive pitch %d, negative pitch %d", pos, neg)
	return pos - neg
}

// sidePitchTotal sums d6 + pitch for every active brigade, plus the
// general's command bonus.
func (r *resolution) sidePitchTotal(s *Side) int {
	total := 0
	for _, b := range s.ActiveBrigades() {
		total += r.roller.D6("pitch") + b.EffectiveStats().Pitch
	}
	if g := s.Commander(); g != nil {
		total += g.Trait.CommandPitchBonus(g.Level)
	}
	return total
}

// rallySide rolls d6 + rally for every not-destroyed brigade; rallyThreshold
// or better keeps the brigade active, anything less routs it. Returns the
// survivor count. A side with no brigades trivially has zero survivors.
func (r *resolution) rallySide(s *Side) int {
	reroll := false
	if g := s.Commander(); g != nil {
		reroll = g.Trait.GrantsRallyReroll()
	}

	survivors := 0
	for _, b := range s.Brigades {
		if b.Destroyed {
			continue
		}

		var die int
		if reroll {
			first, second, best := r.roller.D6Rerolled("rally")
			die = best
			r.logf("%s rally reroll: %d, %d, keeping %d", b.Label(), first, second, best)
		} else {
			die = r.roller.D6("rally")
		}

		roll := die + b.EffectiveStats().Rally
		if roll >= rallyThreshold {
			b.Routed = false
			survivors++
			r.logf("%s rallies (%d)", b.Label(), roll)
		} else {
			b.Routed = true
			r.logf("%s routs (%d)", b.Label(), roll)
		}
	}
	return survivors
}

// lastStand resolves the heroic sacrifice of a fully-routed side's general:
// the general is captured, every routed brigade rejoins the line with a
// permanent pitch bonus equal to the general's level, and the cycle
// continues. Requires the trait, an uncaptured general, and the caller's
// standing decision to make the offer.
func (r *resolution) lastStand(s *Side) bool {
	g := s.Commander()
	if g == nil || !g.Trait.AllowsLastStand() || !s.OfferLastStand {
		return false
	}

	g.Captured = true
	for _, b := range s.Brigades {
		if b.Routed && !b.Destroyed {
			b.Routed = false
			b.AddModifier(unit.Stats{Pitch: g.Level})
		}
	}
	r.logf("%s (%s) makes a last stand: captured, player %d's brigades surge back with +%d pitch",
		g.Name, g.Trait, s.PlayerID, g.Level)
	return true
}
