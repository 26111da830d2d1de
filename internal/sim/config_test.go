package sim

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestLoadConfigOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	data := []byte("defender_count: 10\nstrategy: grid\nspawn_rate_pct: 80\nspawn_cap: 120\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.DefenderCount != 10 || cfg.Strategy != PlacementGrid || cfg.SpawnRatePct != 80 || cfg.SpawnCap != 120 {
		t.Errorf("overridden fields wrong: %+v", cfg)
	}

	// Untouched fields keep their defaults.
	def := DefaultConfig()
	if cfg.LightPct != def.LightPct || cfg.MaxTicks != def.MaxTicks || cfg.FieldHalfWidth != def.FieldHalfWidth {
		t.Errorf("defaults lost on partial file: %+v", cfg)
	}
}

func TestLoadConfigRejectsUnknownStrategy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("strategy: spiral\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("unknown strategy accepted")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("missing file accepted")
	}
}

func TestConfigYAMLRoundTrip(t *testing.T) {
	want := DefaultConfig()
	want.Strategy = PlacementClustered
	want.SpawnCap = 75

	data, err := yaml.Marshal(want)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got Config
	if err := yaml.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got != want {
		t.Errorf("round trip changed config:\n got %+v\nwant %+v", got, want)
	}
}

func TestRemainderPercentagesFloorAtZero(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LightPct = 80
	cfg.RapidPct = 40
	if got := cfg.SniperPct(); got != 0 {
		t.Errorf("SniperPct = %.1f for an oversubscribed pair, want 0", got)
	}

	cfg.FastPct = 10
	cfg.ToughPct = 20
	if got := cfg.BalancedPct(); got != 70 {
		t.Errorf("BalancedPct = %.1f, want 70", got)
	}
}
