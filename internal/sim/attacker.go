package sim

import "fmt"

// updateAttackers runs the attacker phase: cooldown tick-down, retargeting,
// straight-line movement, and melee. Iteration walks a snapshot of identities
// taken at phase start; entities removed earlier in the tick are skipped by
// the presence re-check.
func (s *Sim) updateAttackers() {
	for _, id := range s.store.AttackerIDs() {
		a, ok := s.store.Attacker(id)
		if !ok {
			continue
		}
		s.updateAttacker(a)
	}
}

func (s *Sim) updateAttacker(a *Attacker) {
	if a.MeleeCooldown > 0 {
		a.MeleeCooldown--
	}

	// Target is re-resolved every tick: no persistent commitment, so a dead or
	// outdistanced target is replaced immediately.
	targetID, ok := s.store.NearestDefender(a.X, a.Y, nil)
	if !ok {
		// No defenders left. Hold position; the judge settles it.
		a.Target = 0
		return
	}
	a.Target = targetID
	d, _ := s.store.Defender(targetID)

	// One straight-line step of length Speed toward the target.
	if dd := dist(a.X, a.Y, d.X, d.Y); dd > 0 {
		a.X += (d.X - a.X) / dd * a.Speed
		a.Y += (d.Y - a.Y) / dd * a.Speed
	}
	s.log.AddVerbose(s.tick, a.Label(), "attacker", "move", "position",
		fmt.Sprintf("(%.2f,%.2f) -> %s", a.X, a.Y, d.Label()), 0)

	if dist(a.X, a.Y, d.X, d.Y) >= meleeRange || a.MeleeCooldown > 0 {
		return
	}

	// Melee hit. The cooldown resets whether or not the blow kills.
	d.Health -= a.MeleeDamage
	s.log.Add(s.tick, a.Label(), "attacker", "combat", "melee_hit",
		fmt.Sprintf("%s -> %s dmg=%.0f hp=%.1f", a.Label(), d.Label(), a.MeleeDamage, d.DisplayHealth()), a.MeleeDamage)
	if t := s.trackers[d.ID]; t != nil {
		t.DamageTaken += a.MeleeDamage
	}
	if d.Health <= 0 {
		s.removeDefender(d)
	}
	a.MeleeCooldown = meleeCooldown
}

// removeDefender takes a defender off the field and books the loss.
func (s *Sim) removeDefender(d *Defender) {
	s.store.RemoveDefender(d.ID)
	s.counters.DefendersLost++
	if t := s.trackers[d.ID]; t != nil {
		t.Survived = false
		t.HealthAtEnd = 0
	}
	s.log.Add(s.tick, d.Label(), "defender", "combat", "defender_down",
		fmt.Sprintf("%s %s destroyed, losses=%d", d.Label(), d.Category, s.counters.DefendersLost),
		float64(s.counters.DefendersLost))
}
