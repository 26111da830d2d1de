package main

import (
	"testing"

	"github.com/armanossiloko/tower-defense-netlogo/internal/sim"
)

func TestApplyOverridesKeepsScenarioStrategy(t *testing.T) {
	// A scenario file's non-default strategy must survive when -strategy is
	// not passed, even though it differs from the flag default.
	cfg := sim.DefaultConfig()
	cfg.Strategy = sim.PlacementClustered
	cfg.MaxTicks = 5000

	out, err := applyOverrides(cfg, flagOverrides{
		set:      map[string]bool{},
		strategy: sim.DefaultConfig().Strategy.String(),
		maxTicks: sim.DefaultConfig().MaxTicks,
	})
	if err != nil {
		t.Fatalf("applyOverrides: %v", err)
	}
	if out.Strategy != sim.PlacementClustered {
		t.Errorf("strategy = %s, want clustered", out.Strategy)
	}
	if out.MaxTicks != 5000 {
		t.Errorf("max ticks = %d, want 5000", out.MaxTicks)
	}
}

func TestApplyOverridesExplicitFlagsWin(t *testing.T) {
	cfg := sim.DefaultConfig()
	cfg.Strategy = sim.PlacementClustered
	cfg.LightPct = 40

	out, err := applyOverrides(cfg, flagOverrides{
		set:      map[string]bool{"strategy": true, "light-pct": true},
		strategy: "random",
		lightPct: 75,
	})
	if err != nil {
		t.Fatalf("applyOverrides: %v", err)
	}
	if out.Strategy != sim.PlacementRandom {
		t.Errorf("strategy = %s, want random", out.Strategy)
	}
	if out.LightPct != 75 {
		t.Errorf("light pct = %g, want 75", out.LightPct)
	}

	if _, err := applyOverrides(cfg, flagOverrides{
		set:      map[string]bool{"strategy": true},
		strategy: "spiral",
	}); err == nil {
		t.Error("expected error for unknown strategy name")
	}
}
