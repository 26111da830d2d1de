package sim

// EntityStore owns the live defender, attacker, and projectile collections.
// Identities are issued from a single monotonic counter and never reused.
// Iteration order is insertion order, which is also the reproducible tie-break
// order for spatial queries.
//
// Projectiles are created mid-tick (during the defender phase) and therefore
// go through a pending buffer: SpawnProjectile queues, and the projectile only
// becomes visible to iteration, presence checks, and collisions after
// flushProjectiles runs at the end of the tick. Defenders and attackers are
// only ever created between phase iterations (setup and the spawn phase), so
// they insert directly.
type EntityStore struct {
	defenders   map[EntityID]*Defender
	attackers   map[EntityID]*Attacker
	projectiles map[EntityID]*Projectile

	defenderOrder   []EntityID
	attackerOrder   []EntityID
	projectileOrder []EntityID

	pending []*Projectile

	nextID EntityID
}

// NewEntityStore creates an empty store.
func NewEntityStore() *EntityStore {
	return &EntityStore{
		defenders:   make(map[EntityID]*Defender),
		attackers:   make(map[EntityID]*Attacker),
		projectiles: make(map[EntityID]*Projectile),
	}
}

func (s *EntityStore) issueID() EntityID {
	s.nextID++
	return s.nextID
}

// --- Creation ---

// SpawnDefender creates a defender of the given category at (x, y) and returns
// its identity.
func (s *EntityStore) SpawnDefender(cat DefenderCategory, x, y float64) EntityID {
	p := cat.Profile()
	d := &Defender{
		ID:           s.issueID(),
		Category:     cat,
		X:            x,
		Y:            y,
		AttackRadius: p.AttackRadius,
		FireInterval: p.FireInterval,
		Damage:       p.Damage,
		Health:       p.MaxHealth,
		MaxHealth:    p.MaxHealth,
	}
	s.defenders[d.ID] = d
	s.defenderOrder = append(s.defenderOrder, d.ID)
	return d.ID
}

// SpawnAttacker creates an attacker of the given category at (x, y), with its
// profile health scaled by healthMul, and returns its identity.
func (s *EntityStore) SpawnAttacker(cat AttackerCategory, x, y float64, healthMul float64, edge FieldEdge) EntityID {
	p := cat.Profile()
	hp := p.MaxHealth * healthMul
	a := &Attacker{
		ID:          s.issueID(),
		Category:    cat,
		X:           x,
		Y:           y,
		Speed:       p.Speed,
		Health:      hp,
		MaxHealth:   hp,
		MeleeDamage: p.MeleeDamage,
		SpawnEdge:   edge,
	}
	s.attackers[a.ID] = a
	s.attackerOrder = append(s.attackerOrder, a.ID)
	return a.ID
}

// SpawnProjectile queues a projectile fired by owner at (x, y) toward target.
// The returned identity is stable immediately, but the projectile is not
// present in the store until the end-of-tick flush.
func (s *EntityStore) SpawnProjectile(owner *Defender, target *Attacker) EntityID {
	hx, hy := 0.0, 0.0
	if d := dist(owner.X, owner.Y, target.X, target.Y); d > 0 {
		hx = (target.X - owner.X) / d
		hy = (target.Y - owner.Y) / d
	}
	p := &Projectile{
		ID:       s.issueID(),
		Origin:   owner.Category,
		Owner:    owner.ID,
		X:        owner.X,
		Y:        owner.Y,
		Damage:   owner.Damage,
		Speed:    projectileSpeed,
		Target:   target.ID,
		Lifetime: projectileLife,
		HeadingX: hx,
		HeadingY: hy,
	}
	s.pending = append(s.pending, p)
	return p.ID
}

// flushProjectiles moves queued projectiles into the live collection. Called by
// the clock once per tick, after the projectile phase.
func (s *EntityStore) flushProjectiles() {
	for _, p := range s.pending {
		s.projectiles[p.ID] = p
		s.projectileOrder = append(s.projectileOrder, p.ID)
	}
	s.pending = s.pending[:0]
}

// --- Presence ---

// Defender returns the defender with the given identity, if present.
func (s *EntityStore) Defender(id EntityID) (*Defender, bool) {
	d, ok := s.defenders[id]
	return d, ok
}

// Attacker returns the attacker with the given identity, if present.
func (s *EntityStore) Attacker(id EntityID) (*Attacker, bool) {
	a, ok := s.attackers[id]
	return a, ok
}

// Projectile returns the projectile with the given identity, if present.
func (s *EntityStore) Projectile(id EntityID) (*Projectile, bool) {
	p, ok := s.projectiles[id]
	return p, ok
}

// --- Iteration ---

// DefenderIDs returns the live defender identities in insertion order. The
// returned slice is a snapshot: it stays valid while entities are removed
// during iteration, with callers re-checking presence per identity.
func (s *EntityStore) DefenderIDs() []EntityID {
	s.defenderOrder = compactOrder(s.defenderOrder, len(s.defenders), func(id EntityID) bool {
		_, ok := s.defenders[id]
		return ok
	})
	return snapshotOrder(s.defenderOrder, func(id EntityID) bool {
		_, ok := s.defenders[id]
		return ok
	})
}

// AttackerIDs returns the live attacker identities in insertion order.
func (s *EntityStore) AttackerIDs() []EntityID {
	s.attackerOrder = compactOrder(s.attackerOrder, len(s.attackers), func(id EntityID) bool {
		_, ok := s.attackers[id]
		return ok
	})
	return snapshotOrder(s.attackerOrder, func(id EntityID) bool {
		_, ok := s.attackers[id]
		return ok
	})
}

// ProjectileIDs returns the live projectile identities in insertion order.
// Queued projectiles are excluded until the end-of-tick flush.
func (s *EntityStore) ProjectileIDs() []EntityID {
	s.projectileOrder = compactOrder(s.projectileOrder, len(s.projectiles), func(id EntityID) bool {
		_, ok := s.projectiles[id]
		return ok
	})
	return snapshotOrder(s.projectileOrder, func(id EntityID) bool {
		_, ok := s.projectiles[id]
		return ok
	})
}

// compactOrder drops stale identities from an order slice once more than half
// of it is dead, keeping repeated snapshots cheap over long runs.
func compactOrder(order []EntityID, liveCount int, alive func(EntityID) bool) []EntityID {
	if len(order) <= 2*liveCount {
		return order
	}
	kept := order[:0]
	for _, id := range order {
		if alive(id) {
			kept = append(kept, id)
		}
	}
	return kept
}

func snapshotOrder(order []EntityID, alive func(EntityID) bool) []EntityID {
	out := make([]EntityID, 0, len(order))
	for _, id := range order {
		if alive(id) {
			out = append(out, id)
		}
	}
	return out
}

// --- Counts ---

// DefenderCount returns the number of live defenders.
func (s *EntityStore) DefenderCount() int { return len(s.defenders) }

// AttackerCount returns the number of live attackers.
func (s *EntityStore) AttackerCount() int { return len(s.attackers) }

// ProjectileCount returns the number of live projectiles, excluding queued ones.
func (s *EntityStore) ProjectileCount() int { return len(s.projectiles) }

// --- Removal ---

// RemoveDefender removes the defender with the given identity. Removing an
// absent identity is a no-op.
func (s *EntityStore) RemoveDefender(id EntityID) {
	delete(s.defenders, id)
}

// RemoveAttacker removes the attacker with the given identity. Idempotent.
func (s *EntityStore) RemoveAttacker(id EntityID) {
	delete(s.attackers, id)
}

// RemoveProjectile removes the projectile with the given identity. Idempotent.
func (s *EntityStore) RemoveProjectile(id EntityID) {
	delete(s.projectiles, id)
}
