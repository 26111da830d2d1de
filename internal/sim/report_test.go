package sim

import (
	"strings"
	"testing"
)

func TestReportSnapshot(t *testing.T) {
	cfg := scriptedConfig()
	cfg.SpawnCap = 3
	s := New(cfg,
		WithSeed(51),
		WithDefenderAt(DefenderLight, 0, 0),
		WithDefenderAt(DefenderRapid, 5, 5),
		WithAttackerAt(AttackerTough, 20, 20),
	)

	r := s.Report()
	if r.Defenders != 2 || r.Attackers != 1 || r.Projectiles != 0 {
		t.Errorf("field counts = %d/%d/%d, want 2/1/0", r.Defenders, r.Attackers, r.Projectiles)
	}
	if r.Spawned != 1 {
		t.Errorf("spawned = %d, want 1 (scripted attacker counts)", r.Spawned)
	}
	if r.RemainingToSpawn != 2 {
		t.Errorf("remaining = %d, want 2", r.RemainingToSpawn)
	}

	wantAvg := (DefenderLight.Profile().MaxHealth + DefenderRapid.Profile().MaxHealth) / 2
	if r.AvgDefenderHealth != wantAvg {
		t.Errorf("avg health = %.1f, want %.1f", r.AvgDefenderHealth, wantAvg)
	}
}

func TestReportUnlimitedCap(t *testing.T) {
	cfg := scriptedConfig()
	cfg.SpawnCap = 0
	s := New(cfg, WithSeed(53), WithDefenderAt(DefenderLight, 0, 0))

	if got := s.Report().RemainingToSpawn; got != -1 {
		t.Errorf("remaining = %d with no cap, want -1", got)
	}
}

func TestReporterCollectsOnInterval(t *testing.T) {
	s := New(scriptedConfig(),
		WithSeed(55),
		WithDefenderAt(DefenderLight, 0, 0),
	)
	s.RunTicks(2 * reportInterval)

	hist := s.Reporter().History()
	if len(hist) != 2 {
		t.Fatalf("snapshots = %d after %d ticks, want 2", len(hist), 2*reportInterval)
	}
	if latest := s.Reporter().Latest(); latest == nil || latest.Tick != 2*reportInterval {
		t.Errorf("latest snapshot tick wrong: %+v", latest)
	}
}

func TestReporterPrunesHistory(t *testing.T) {
	r := NewReporter(reportWindow)
	for i := 0; i < 300; i++ {
		r.Collect(TickReport{Tick: i * reportInterval})
	}
	if got := len(r.History()); got != 100 {
		t.Errorf("retained %d snapshots, want pruned to 100", got)
	}
	if latest := r.Latest(); latest.Tick != 299*reportInterval {
		t.Errorf("latest tick = %d after pruning, want %d", latest.Tick, 299*reportInterval)
	}
}

func TestWindowSummaryAggregates(t *testing.T) {
	r := NewReporter(600)
	r.Collect(TickReport{Tick: 0, Attackers: 1, Spawned: 2, Destroyed: 0, AvgDefenderHealth: 100})
	r.Collect(TickReport{Tick: 300, Attackers: 3, Spawned: 6, Destroyed: 2, AvgDefenderHealth: 90})
	r.Collect(TickReport{Tick: 600, Attackers: 2, Spawned: 10, Destroyed: 7, AvgDefenderHealth: 80,
		KillRatePct: 70, RemainingToSpawn: -1})

	wr := r.WindowSummary()
	if wr == nil {
		t.Fatal("WindowSummary returned nil")
	}
	if wr.FromTick != 0 || wr.ToTick != 600 || wr.SampleCount != 3 {
		t.Errorf("window span = %d..%d over %d samples, want 0..600 over 3", wr.FromTick, wr.ToTick, wr.SampleCount)
	}
	if wr.AvgAttackers != 2 {
		t.Errorf("avg attackers = %.2f, want 2", wr.AvgAttackers)
	}
	if wr.PeakAttackers != 3 {
		t.Errorf("peak attackers = %d, want 3", wr.PeakAttackers)
	}
	if wr.AvgDefenderHealth != 90 {
		t.Errorf("avg defender health = %.2f, want 90", wr.AvgDefenderHealth)
	}
	if wr.SpawnedDelta != 8 || wr.DestroyedDelta != 7 {
		t.Errorf("deltas = %d/%d, want 8/7", wr.SpawnedDelta, wr.DestroyedDelta)
	}
	if wr.KillRatePct != 70 {
		t.Errorf("kill rate = %.1f, want the newest snapshot's 70", wr.KillRatePct)
	}

	text := wr.Format()
	if !strings.Contains(text, "Pressure Report") || !strings.Contains(text, "remaining to spawn=unlimited") {
		t.Errorf("formatted summary missing sections:\n%s", text)
	}
}

func TestWindowSummaryExcludesOldSnapshots(t *testing.T) {
	r := NewReporter(600)
	r.Collect(TickReport{Tick: 0, Attackers: 50})
	r.Collect(TickReport{Tick: 1000, Attackers: 2})
	r.Collect(TickReport{Tick: 1200, Attackers: 4})

	wr := r.WindowSummary()
	if wr.SampleCount != 2 {
		t.Fatalf("samples = %d, want 2 (tick 0 outside the window)", wr.SampleCount)
	}
	if wr.AvgAttackers != 3 {
		t.Errorf("avg attackers = %.2f, want 3", wr.AvgAttackers)
	}
}

func TestFormatLatestEmpty(t *testing.T) {
	r := NewReporter(0)
	if got := r.FormatLatest(); got != "No data.\n" {
		t.Errorf("FormatLatest on empty reporter = %q", got)
	}
	if r.WindowSummary() != nil {
		t.Error("WindowSummary on empty reporter should be nil")
	}
}
