package sim

import "fmt"

// updateDefenders runs the defender phase: cooldown tick-down, melee-pressure
// flag refresh, target acquisition within the attack radius, and firing.
// Projectiles created here are queued, not live, until the end-of-tick flush.
func (s *Sim) updateDefenders() {
	for _, id := range s.store.DefenderIDs() {
		d, ok := s.store.Defender(id)
		if !ok {
			continue
		}
		s.updateDefender(d)
	}
}

func (s *Sim) updateDefender(d *Defender) {
	if d.Cooldown > 0 {
		d.Cooldown--
	}

	_, underMelee := s.store.NearestAttackerInRadius(d.X, d.Y, meleeRange, nil)
	d.UnderMelee = underMelee

	t := s.trackers[d.ID]
	if t != nil {
		t.TicksAlive++
		t.HealthAtEnd = d.DisplayHealth()
		if underMelee {
			t.TicksUnderMelee++
		}
		if d.Cooldown > 0 {
			t.TicksOnCooldown++
		}
	}

	targetID, ok := s.store.NearestAttackerInRadius(d.X, d.Y, d.AttackRadius, nil)
	if !ok {
		if t != nil {
			t.TicksIdle++
		}
		return
	}
	if d.Cooldown > 0 {
		return
	}
	a, _ := s.store.Attacker(targetID)

	pid := s.store.SpawnProjectile(d, a)
	d.Cooldown = d.FireInterval
	if t != nil {
		t.Shots++
		if underMelee {
			t.ShotsUnderMelee++
		}
	}
	s.log.Add(s.tick, d.Label(), "defender", "combat", "fire",
		fmt.Sprintf("%s -> %s proj=P%d dmg=%.0f", d.Label(), a.Label(), pid, d.Damage), float64(pid))
}
