package sim

import "testing"

func TestStoreIdentitiesUniqueAndStable(t *testing.T) {
	st := NewEntityStore()

	seen := map[EntityID]bool{}
	for i := 0; i < 3; i++ {
		id := st.SpawnDefender(DefenderLight, float64(i), 0)
		if id == 0 {
			t.Fatalf("defender %d: identity 0 issued, reserved for no-target", i)
		}
		if seen[id] {
			t.Fatalf("defender %d: identity %d issued twice", i, id)
		}
		seen[id] = true
	}
	for i := 0; i < 3; i++ {
		id := st.SpawnAttacker(AttackerFast, float64(i), 5, 1.0, EdgeNorth)
		if seen[id] {
			t.Fatalf("attacker %d: identity %d issued twice", i, id)
		}
		seen[id] = true
	}

	// Removal must not free identities for reuse.
	victim := st.AttackerIDs()[0]
	st.RemoveAttacker(victim)
	id := st.SpawnAttacker(AttackerTough, 0, 0, 1.0, EdgeSouth)
	if seen[id] {
		t.Fatalf("identity %d reused after removal", id)
	}
}

func TestStoreIterationFollowsInsertionOrder(t *testing.T) {
	st := NewEntityStore()
	var want []EntityID
	for i := 0; i < 5; i++ {
		want = append(want, st.SpawnAttacker(AttackerBalanced, float64(i), 0, 1.0, EdgeWest))
	}

	got := st.AttackerIDs()
	if len(got) != len(want) {
		t.Fatalf("AttackerIDs length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("AttackerIDs[%d] = %d, want %d (insertion order)", i, got[i], want[i])
		}
	}
}

func TestQueuedProjectileInvisibleUntilFlush(t *testing.T) {
	st := NewEntityStore()
	did := st.SpawnDefender(DefenderLight, 0, 0)
	aid := st.SpawnAttacker(AttackerBalanced, 5, 0, 1.0, EdgeEast)
	d, _ := st.Defender(did)
	a, _ := st.Attacker(aid)

	pid := st.SpawnProjectile(d, a)
	if pid == 0 {
		t.Fatal("SpawnProjectile returned identity 0")
	}
	if _, ok := st.Projectile(pid); ok {
		t.Error("queued projectile present before flush")
	}
	if n := st.ProjectileCount(); n != 0 {
		t.Errorf("ProjectileCount = %d before flush, want 0", n)
	}
	if ids := st.ProjectileIDs(); len(ids) != 0 {
		t.Errorf("ProjectileIDs = %v before flush, want empty", ids)
	}

	st.flushProjectiles()
	p, ok := st.Projectile(pid)
	if !ok {
		t.Fatal("projectile absent after flush")
	}
	if st.ProjectileCount() != 1 || len(st.ProjectileIDs()) != 1 {
		t.Error("projectile not iterable after flush")
	}
	if p.X != d.X || p.Y != d.Y {
		t.Errorf("projectile starts at (%.1f,%.1f), want owner position (%.1f,%.1f)", p.X, p.Y, d.X, d.Y)
	}
	if p.Owner != did || p.Target != aid {
		t.Errorf("projectile owner/target = %d/%d, want %d/%d", p.Owner, p.Target, did, aid)
	}
}

func TestRemovalIsIdempotent(t *testing.T) {
	st := NewEntityStore()
	did := st.SpawnDefender(DefenderSniper, 0, 0)
	aid := st.SpawnAttacker(AttackerTough, 1, 1, 1.0, EdgeNorth)

	st.RemoveDefender(did)
	st.RemoveDefender(did)
	st.RemoveAttacker(aid)
	st.RemoveAttacker(aid)
	st.RemoveProjectile(999)

	if st.DefenderCount() != 0 || st.AttackerCount() != 0 {
		t.Errorf("counts after double removal: defenders=%d attackers=%d, want 0/0",
			st.DefenderCount(), st.AttackerCount())
	}
	if _, ok := st.Defender(did); ok {
		t.Error("removed defender still present")
	}
}

func TestSnapshotSurvivesRemovalMidIteration(t *testing.T) {
	st := NewEntityStore()
	var ids []EntityID
	for i := 0; i < 4; i++ {
		ids = append(ids, st.SpawnAttacker(AttackerFast, float64(i), 0, 1.0, EdgeSouth))
	}

	visited := 0
	for _, id := range st.AttackerIDs() {
		if _, ok := st.Attacker(id); !ok {
			continue
		}
		visited++
		// Removing a later entry mid-walk must not disturb the walk.
		st.RemoveAttacker(ids[3])
	}
	if visited != 3 {
		t.Errorf("visited %d attackers, want 3 (removed one skipped by presence check)", visited)
	}
}

func TestAttackerHealthScaledByMultiplier(t *testing.T) {
	st := NewEntityStore()
	id := st.SpawnAttacker(AttackerTough, 0, 0, 1.5, EdgeNorth)
	a, _ := st.Attacker(id)

	want := AttackerTough.Profile().MaxHealth * 1.5
	if a.Health != want || a.MaxHealth != want {
		t.Errorf("scaled health = %.1f/%.1f, want %.1f", a.Health, a.MaxHealth, want)
	}
}
