package sim

import (
	"math"
	"testing"
)

func TestTrialThresholds(t *testing.T) {
	cases := []struct {
		rate float64
		want [3]float64
	}{
		{0, [3]float64{0, 0, 0}},
		{20, [3]float64{20, 0, 0}},
		{45, [3]float64{45, 20, 10}},
		{100, [3]float64{100, 75, 65}},
		{130, [3]float64{130, 105, 95}},
	}
	for _, c := range cases {
		if got := trialThresholds(c.rate); got != c.want {
			t.Errorf("trialThresholds(%.0f) = %v, want %v", c.rate, got, c.want)
		}
	}
}

func spawnTestConfig() Config {
	cfg := DefaultConfig()
	cfg.SpawnRatePct = 100
	return cfg
}

func TestSpawnCapNeverExceeded(t *testing.T) {
	cfg := spawnTestConfig()
	cfg.SpawnCap = 5

	sc := NewSpawnController(cfg, 1)
	store := NewEntityStore()
	log := NewSimLog(false)
	var counters Counters

	// Rate 100 fires the first trial every tick, and often the stacked ones
	// too. The cap must hold regardless of how many trials succeed per tick.
	for tick := 0; tick < 50; tick++ {
		sc.Run(tick, store, cfg.Field(), &counters, log)
		if counters.Spawned > cfg.SpawnCap {
			t.Fatalf("tick %d: spawned %d past cap %d", tick, counters.Spawned, cfg.SpawnCap)
		}
	}
	if counters.Spawned != cfg.SpawnCap {
		t.Errorf("spawned %d, want cap %d reached", counters.Spawned, cfg.SpawnCap)
	}
	if store.AttackerCount() != cfg.SpawnCap {
		t.Errorf("store holds %d attackers, want %d", store.AttackerCount(), cfg.SpawnCap)
	}
	if !log.HasEntry("spawn", "cap_reached", "") {
		t.Error("cap_reached never logged")
	}
}

func TestSpawnStopsPermanentlyAfterCap(t *testing.T) {
	cfg := spawnTestConfig()
	cfg.SpawnCap = 3

	sc := NewSpawnController(cfg, 2)
	store := NewEntityStore()
	log := NewSimLog(false)
	var counters Counters

	for tick := 0; tick < 20; tick++ {
		sc.Run(tick, store, cfg.Field(), &counters, log)
	}
	at := counters.Spawned
	for tick := 20; tick < 200; tick++ {
		sc.Run(tick, store, cfg.Field(), &counters, log)
	}
	if counters.Spawned != at || at != cfg.SpawnCap {
		t.Errorf("spawned moved %d -> %d after cap %d", at, counters.Spawned, cfg.SpawnCap)
	}
}

func TestZeroRateNeverSpawns(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SpawnRatePct = 0

	sc := NewSpawnController(cfg, 3)
	store := NewEntityStore()
	log := NewSimLog(false)
	var counters Counters

	for tick := 0; tick < 100; tick++ {
		sc.Run(tick, store, cfg.Field(), &counters, log)
	}
	if counters.Spawned != 0 || store.AttackerCount() != 0 {
		t.Errorf("zero rate spawned %d attackers", counters.Spawned)
	}
}

func TestSpawnPositionsSitInsetOnEdges(t *testing.T) {
	cfg := spawnTestConfig()
	field := cfg.Field()

	sc := NewSpawnController(cfg, 4)
	store := NewEntityStore()
	log := NewSimLog(false)
	var counters Counters

	for tick := 0; tick < 40; tick++ {
		sc.Run(tick, store, field, &counters, log)
	}
	if counters.Spawned == 0 {
		t.Fatal("nothing spawned at rate 100")
	}

	edgeX := field.HalfWidth - spawnEdgeInset
	edgeY := field.HalfHeight - spawnEdgeInset
	for _, id := range store.AttackerIDs() {
		a, _ := store.Attacker(id)
		if !field.Contains(a.X, a.Y) {
			t.Errorf("%s spawned out of bounds at (%.2f,%.2f)", a.Label(), a.X, a.Y)
		}
		onEdgeX := math.Abs(math.Abs(a.X)-edgeX) < 1e-9
		onEdgeY := math.Abs(math.Abs(a.Y)-edgeY) < 1e-9
		if !onEdgeX && !onEdgeY {
			t.Errorf("%s at (%.2f,%.2f) sits on no inset edge (edge=%s)", a.Label(), a.X, a.Y, a.SpawnEdge)
		}
	}
}

func TestCategorySplitExtremes(t *testing.T) {
	check := func(fastPct, toughPct float64, want AttackerCategory) {
		t.Helper()
		cfg := spawnTestConfig()
		cfg.FastPct = fastPct
		cfg.ToughPct = toughPct

		sc := NewSpawnController(cfg, 5)
		store := NewEntityStore()
		log := NewSimLog(false)
		var counters Counters
		for tick := 0; tick < 30; tick++ {
			sc.Run(tick, store, cfg.Field(), &counters, log)
		}
		for _, id := range store.AttackerIDs() {
			a, _ := store.Attacker(id)
			if a.Category != want {
				t.Errorf("fast=%.0f tough=%.0f: spawned %s, want only %s", fastPct, toughPct, a.Category, want)
				return
			}
		}
	}

	check(100, 0, AttackerFast)
	check(0, 100, AttackerTough)
	check(0, 0, AttackerBalanced)
}
