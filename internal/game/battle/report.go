package battle

import "github.com/cory-johannsen/hegemony/internal/game/unit"

// actionReport runs the post-battle casualty and promotion rolls. It never
// runs after a stalemate: both winner and loser must exist.
func (r *resolution) actionReport(winner, loser *Side) {
	r.logf("ACTION REPORT")
	r.casualtyRolls(winner, winner, loser)
	r.casualtyRolls(loser, winner, loser)
	r.commandReport(winner, true)
	r.commandReport(loser, false)
}

// casualtyRolls rolls the destruction die for every surviving brigade of s.
// The base threshold is raised against a loser facing a merciless winner.
// Winning brigades reroll once when the first roll already qualifies for
// destruction; the reroll replaces the original.
func (r *resolution) casualtyRolls(s, winner, loser *Side) {
	r.logf("player %d casualties:", s.PlayerID)

	threshold := destructionThreshold
	if s == loser {
		if g := winner.Commander(); g != nil {
			threshold = g.Trait.EnemyCasualtyThreshold(threshold)
		}
	}

	for _, b := range s.Brigades {
		if b.Destroyed {
			continue
		}

		roll := r.roller.D6("casualty")
		if s == winner && roll <= threshold {
			reroll := r.roller.D6("casualty reroll")
			r.logf("%s casualty roll: %d, rerolled to %d", b.Label(), roll, reroll)
			roll = reroll
		} else {
			r.logf("%s casualty roll: %d", b.Label(), roll)
		}

		if roll <= threshold {
			b.Destroyed = true
			r.logf("%s is destroyed", b.Label())
		}
	}
}

// commandReport rolls the promotion die for the side's general. A final roll
// of 1 captures the general; capture is checked before promotion. The
// promotion threshold starts at promotionThresholdMin and is lowered by the
// Ambitious trait or an Officer Corps enhancement anywhere in the army.
// A first roll of 1 is rerolled once for the winning side, for a Lucky
// general, or when a Life Guard brigade survives in the army.
func (r *resolution) commandReport(s *Side, won bool) {
	g := s.Commander()
	if g == nil {
		return
	}

	roll := r.roller.D6("promotion")
	canReroll := won || g.Trait.GrantsPromotionReroll() || s.HasEnhancement(unit.EnhancementLifeGuard)
	if roll == captureRoll && canReroll {
		reroll := r.roller.D6("promotion reroll")
		r.logf("general %s promotion roll: %d, rerolled to %d", g.Name, roll, reroll)
		roll = reroll
	} else {
		r.logf("general %s promotion roll: %d", g.Name, roll)
	}

	if roll == captureRoll {
		g.Captured = true
		r.logf("general %s is captured", g.Name)
		return
	}

	threshold := g.Trait.PromotionThreshold(promotionThresholdMin)
	if s.HasEnhancement(unit.EnhancementOfficerCorps) && threshold > promotionThresholdMin-1 {
		threshold = promotionThresholdMin - 1
	}
	if roll >= threshold {
		g.Level++
		r.logf("general %s is promoted to level %d", g.Name, g.Level)
	}
}
