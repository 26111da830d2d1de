package sim

import "fmt"

// updateProjectiles runs the projectile phase. Per projectile, strictly in
// this order: lifetime expiry, stale-target invalidation, movement (homing or
// straight), out-of-bounds removal, then collision. A projectile is consumed
// by ANY collision with a live attacker at its new position, target or not,
// first body found in iteration order; there is deliberately no re-validation
// against the intended target.
func (s *Sim) updateProjectiles() {
	for _, id := range s.store.ProjectileIDs() {
		p, ok := s.store.Projectile(id)
		if !ok {
			continue
		}
		s.updateProjectile(p)
	}
}

func (s *Sim) updateProjectile(p *Projectile) {
	p.Lifetime--
	if p.Lifetime <= 0 {
		s.store.RemoveProjectile(p.ID)
		s.log.AddVerbose(s.tick, p.Label(), "projectile", "projectile", "expire", "lifetime spent", 0)
		return
	}

	if p.Target != 0 {
		if _, ok := s.store.Attacker(p.Target); !ok {
			p.Target = 0
		}
	}

	if p.Target != 0 {
		a, _ := s.store.Attacker(p.Target)
		dd := dist(p.X, p.Y, a.X, a.Y)
		if dd > 0 {
			p.HeadingX = (a.X - p.X) / dd
			p.HeadingY = (a.Y - p.Y) / dd
		}
		// A landing step ends exactly on the target instead of overshooting.
		step := p.Speed
		if dd < step {
			step = dd
		}
		p.X += p.HeadingX * step
		p.Y += p.HeadingY * step
	} else {
		// No live target: fly on along the last heading.
		p.X += p.HeadingX * p.Speed
		p.Y += p.HeadingY * p.Speed
	}

	if !s.field.Contains(p.X, p.Y) {
		s.store.RemoveProjectile(p.ID)
		s.log.AddVerbose(s.tick, p.Label(), "projectile", "projectile", "out_of_bounds",
			fmt.Sprintf("left field at (%.1f,%.1f)", p.X, p.Y), 0)
		return
	}

	hitID, ok := s.store.FirstAttackerInRadius(p.X, p.Y, projectileHitRad)
	if !ok {
		return
	}
	a, _ := s.store.Attacker(hitID)
	a.Health -= p.Damage
	s.log.Add(s.tick, p.Label(), "projectile", "projectile", "hit",
		fmt.Sprintf("%s -> %s dmg=%.0f hp=%.1f", p.Label(), a.Label(), p.Damage, a.DisplayHealth()), p.Damage)
	if t := s.trackers[p.Owner]; t != nil {
		t.Hits++
		t.DamageDealt += p.Damage
	}
	if a.Health <= 0 {
		s.removeAttacker(a, p.Owner)
	}
	// Consumed by the collision, kill or not.
	s.store.RemoveProjectile(p.ID)
}

// removeAttacker takes an attacker off the field and books the destruction
// against the overall and per-category counters, crediting the firing
// defender when it is still standing.
func (s *Sim) removeAttacker(a *Attacker, credit EntityID) {
	s.store.RemoveAttacker(a.ID)
	s.counters.Destroyed++
	s.counters.DestroyedBy[a.Category]++
	if d, ok := s.store.Defender(credit); ok {
		d.Kills++
	}
	if t := s.trackers[credit]; t != nil {
		t.Kills++
	}
	s.log.Add(s.tick, a.Label(), "attacker", "combat", "attacker_down",
		fmt.Sprintf("%s %s destroyed by D%d, total=%d", a.Label(), a.Category, credit, s.counters.Destroyed),
		float64(s.counters.Destroyed))
}
