package battle

import "sort"

// skirmishPhase resolves the opening ranged duels. Each side may field up to
// two skirmishers; the positive side's attacks resolve fully before the
// negative side's, which matters only when a destruction shrinks the target
// pool. The phase has no victory condition of its own.
func (r *resolution) skirmishPhase() {
	r.logf("SKIRMISH PHASE")

	posSkirmishers := r.selectSkirmishers(r.positive)
	negSkirmishers := r.selectSkirmishers(r.negative)

	r.resolveSkirmishAttacks(r.positive, posSkirmishers, r.negative)
	r.resolveSkirmishAttacks(r.negative, negSkirmishers, r.positive)
}

// selectSkirmishers picks the side's two best skirmishers, or none when the
// general's trait permits skipping and the caller declined the phase.
// Ties in skirmish stat are broken by roster order.
func (r *resolution) selectSkirmishers(s *Side) []*Brigade {
	if s.DeclineSkirmish {
		g := s.Commander()
		if g != nil && g.Trait.MaySkipSkirmish() {
			r.logf("%s (%s) holds player %d's skirmishers back", g.Name, g.Trait, s.PlayerID)
			return nil
		}
	}

	available := s.ActiveBrigades()
	sort.SliceStable(available, func(i, j int) bool {
		return available[i].EffectiveStats().Skirmish > available[j].EffectiveStats().Skirmish
	})
	if len(available) > skirmishersPerSide {
		available = available[:skirmishersPerSide]
	}
	return available
}

// resolveSkirmishAttacks rolls each skirmisher against a uniformly-random
// not-destroyed defender. An attack that beats the defense roll routs the
// defender; a margin of overrunMargin or more forces an additional
// destruction die.
func (r *resolution) resolveSkirmishAttacks(atkSide *Side, skirmishers []*Brigade, defSide *Side) {
	for i, attacker := range skirmishers {
		targets := notDestroyed(defSide)
		if len(targets) == 0 {
			r.logf("player %d's skirmishers find no targets", atkSide.PlayerID)
			return
		}
		target := targets[r.roller.PickIndex("skirmish target", len(targets))]

		// The best skirmisher may carry a trait-derived flat bonus.
		bonus := 0
		if i == 0 {
			if g := atkSide.Commander(); g != nil {
				bonus = g.Trait.SkirmishBonus(g.Level)
			}
		}

		atkRoll := r.roller.D6("skirmish attack") + attacker.EffectiveStats().Skirmish + bonus
		defRoll := r.roller.D6("skirmish defense") + target.EffectiveStats().Defense
		r.logf("%s attacks %s: %d vs %d", attacker.Label(), target.Label(), atkRoll, defRoll)

		if atkRoll <= defRoll {
			r.logf("%s holds firm", target.Label())
			continue
		}

		target.Routed = true
		r.logf("%s is routed", target.Label())

		if atkRoll-defRoll >= overrunMargin {
			destRoll := r.roller.D6("overrun destruction")
			r.logf("overrun: %s rolls destruction die: %d", target.Label(), destRoll)
			if destRoll <= destructionThreshold {
				target.Destroyed = true
				r.logf("%s is destroyed", target.Label())
			}
		}
	}
}

// notDestroyed returns the side's brigades still on the field, routed or not.
func notDestroyed(s *Side) []*Brigade {
	var out []*Brigade
	for _, b := range s.Brigades {
		if !b.Destroyed {
			out = append(out, b)
		}
	}
	return out
}
