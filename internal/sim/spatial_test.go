package sim

import "testing"

func TestNearestTieBreaksToFirstInserted(t *testing.T) {
	st := NewEntityStore()
	first := st.SpawnDefender(DefenderLight, 3, 0)
	st.SpawnDefender(DefenderLight, -3, 0)

	// Both defenders sit exactly 3 units from the origin. The pick must be
	// reproducible: first in iteration order, every time.
	for i := 0; i < 10; i++ {
		got, ok := st.NearestDefender(0, 0, nil)
		if !ok {
			t.Fatal("NearestDefender found nothing")
		}
		if got != first {
			t.Fatalf("query %d: nearest = %d, want first-inserted %d", i, got, first)
		}
	}
}

func TestNearestPrefersStrictlyCloser(t *testing.T) {
	st := NewEntityStore()
	st.SpawnAttacker(AttackerFast, 5, 0, 1.0, EdgeNorth)
	closer := st.SpawnAttacker(AttackerFast, 2, 0, 1.0, EdgeNorth)

	got, ok := st.NearestAttacker(0, 0, nil)
	if !ok || got != closer {
		t.Errorf("nearest = %v/%v, want %d", got, ok, closer)
	}
}

func TestNearestHonorsFilter(t *testing.T) {
	st := NewEntityStore()
	nearest := st.SpawnAttacker(AttackerFast, 1, 0, 1.0, EdgeNorth)
	fallback := st.SpawnAttacker(AttackerTough, 4, 0, 1.0, EdgeNorth)

	got, ok := st.NearestAttacker(0, 0, func(a *Attacker) bool {
		return a.ID != nearest
	})
	if !ok || got != fallback {
		t.Errorf("filtered nearest = %v/%v, want %d", got, ok, fallback)
	}
}

func TestInRadiusBoundaryInclusive(t *testing.T) {
	st := NewEntityStore()
	onBoundary := st.SpawnAttacker(AttackerBalanced, 10, 0, 1.0, EdgeEast)
	st.SpawnAttacker(AttackerBalanced, 10.001, 0, 1.0, EdgeEast)

	got, ok := st.NearestAttackerInRadius(0, 0, 10, nil)
	if !ok || got != onBoundary {
		t.Fatalf("boundary attacker not found: got %v/%v", got, ok)
	}

	ids := st.AttackersInRadius(0, 0, 10, nil)
	if len(ids) != 1 || ids[0] != onBoundary {
		t.Errorf("AttackersInRadius = %v, want exactly the boundary attacker %d", ids, onBoundary)
	}

	if _, ok := st.NearestAttackerInRadius(0, 0, 9.999, nil); ok {
		t.Error("attacker found inside a radius that excludes both")
	}
}

func TestFirstAttackerInRadiusUsesIterationOrder(t *testing.T) {
	st := NewEntityStore()
	farButFirst := st.SpawnAttacker(AttackerFast, 0.9, 0, 1.0, EdgeNorth)
	st.SpawnAttacker(AttackerFast, 0.1, 0, 1.0, EdgeNorth)

	// The collision rule takes the first body in iteration order, not the
	// closest one.
	got, ok := st.FirstAttackerInRadius(0, 0, 1.0)
	if !ok || got != farButFirst {
		t.Errorf("first-in-radius = %v/%v, want first-inserted %d", got, ok, farButFirst)
	}
}

func TestNearestOverEmptyStore(t *testing.T) {
	st := NewEntityStore()
	if _, ok := st.NearestDefender(0, 0, nil); ok {
		t.Error("NearestDefender reported a hit on an empty store")
	}
	if _, ok := st.FirstAttackerInRadius(0, 0, 100); ok {
		t.Error("FirstAttackerInRadius reported a hit on an empty store")
	}
}

func TestDefendersInRadius(t *testing.T) {
	st := NewEntityStore()
	a := st.SpawnDefender(DefenderLight, 1, 0)
	b := st.SpawnDefender(DefenderRapid, 0, 2)
	st.SpawnDefender(DefenderSniper, 8, 8)

	ids := st.DefendersInRadius(0, 0, 3, nil)
	if len(ids) != 2 || ids[0] != a || ids[1] != b {
		t.Errorf("DefendersInRadius = %v, want [%d %d] in insertion order", ids, a, b)
	}
}
