package sim

// Spatial queries are linear scans over the store's insertion order. Nearest
// ties break to the first entity encountered, which makes repeated runs over
// the same store ordering reproduce the same pick. No spatial index: entity
// counts stay small enough that correctness is worth more than asymptotics.

// NearestDefender returns the live defender closest to (x, y) that satisfies
// filter (nil accepts all). Ties keep the first encountered in iteration order.
func (s *EntityStore) NearestDefender(x, y float64, filter func(*Defender) bool) (EntityID, bool) {
	best := EntityID(0)
	bestDist := 0.0
	found := false
	for _, id := range s.defenderOrder {
		d, ok := s.defenders[id]
		if !ok {
			continue
		}
		if filter != nil && !filter(d) {
			continue
		}
		dd := dist(x, y, d.X, d.Y)
		if !found || dd < bestDist {
			best = id
			bestDist = dd
			found = true
		}
	}
	return best, found
}

// NearestAttacker returns the live attacker closest to (x, y) that satisfies
// filter (nil accepts all).
func (s *EntityStore) NearestAttacker(x, y float64, filter func(*Attacker) bool) (EntityID, bool) {
	best := EntityID(0)
	bestDist := 0.0
	found := false
	for _, id := range s.attackerOrder {
		a, ok := s.attackers[id]
		if !ok {
			continue
		}
		if filter != nil && !filter(a) {
			continue
		}
		dd := dist(x, y, a.X, a.Y)
		if !found || dd < bestDist {
			best = id
			bestDist = dd
			found = true
		}
	}
	return best, found
}

// NearestAttackerInRadius returns the closest attacker within radius of (x, y),
// boundary inclusive.
func (s *EntityStore) NearestAttackerInRadius(x, y, radius float64, filter func(*Attacker) bool) (EntityID, bool) {
	return s.NearestAttacker(x, y, func(a *Attacker) bool {
		if dist(x, y, a.X, a.Y) > radius {
			return false
		}
		return filter == nil || filter(a)
	})
}

// AttackersInRadius returns all live attackers within radius of (x, y) in
// iteration order, boundary inclusive (distance == radius counts).
func (s *EntityStore) AttackersInRadius(x, y, radius float64, filter func(*Attacker) bool) []EntityID {
	var out []EntityID
	for _, id := range s.attackerOrder {
		a, ok := s.attackers[id]
		if !ok {
			continue
		}
		if dist(x, y, a.X, a.Y) > radius {
			continue
		}
		if filter != nil && !filter(a) {
			continue
		}
		out = append(out, id)
	}
	return out
}

// FirstAttackerInRadius returns the first attacker in iteration order within
// radius of (x, y), boundary inclusive. This is the collision rule for
// projectiles: the first body found occupying the overlap zone is struck,
// whichever attacker it is.
func (s *EntityStore) FirstAttackerInRadius(x, y, radius float64) (EntityID, bool) {
	for _, id := range s.attackerOrder {
		a, ok := s.attackers[id]
		if !ok {
			continue
		}
		if dist(x, y, a.X, a.Y) <= radius {
			return id, true
		}
	}
	return 0, false
}

// DefendersInRadius returns all live defenders within radius of (x, y) in
// iteration order, boundary inclusive.
func (s *EntityStore) DefendersInRadius(x, y, radius float64, filter func(*Defender) bool) []EntityID {
	var out []EntityID
	for _, id := range s.defenderOrder {
		d, ok := s.defenders[id]
		if !ok {
			continue
		}
		if dist(x, y, d.X, d.Y) > radius {
			continue
		}
		if filter != nil && !filter(d) {
			continue
		}
		out = append(out, id)
	}
	return out
}
