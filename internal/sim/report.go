package sim

import (
	"fmt"
	"strings"
)

// reportInterval is how often the clock hands a snapshot to the reporter, in ticks.
const reportInterval = 60

// reportWindow is the default sliding window for recent-pressure summaries (~10s at 60TPS).
const reportWindow = 600

// TickReport is a full snapshot of the battle at one tick. Everything the
// front-end monitors and the headless tool prints comes out of this one
// struct, so the two can never disagree.
type TickReport struct {
	Tick int

	Defenders   int
	Attackers   int
	Projectiles int

	Spawned       int
	Destroyed     int
	DestroyedBy   [attackerCategoryCount]int
	DefendersLost int

	AvgDefenderHealth float64 // mean display health of live defenders, 0 when none left
	UnderMelee        int     // defenders currently taking melee pressure
	KillRatePct       float64
	RemainingToSpawn  int // -1 when the spawn cap is unlimited
	Outcome           Outcome
}

// Report assembles the current snapshot.
func (s *Sim) Report() TickReport {
	r := TickReport{
		Tick:          s.tick,
		Defenders:     s.store.DefenderCount(),
		Attackers:     s.store.AttackerCount(),
		Projectiles:   s.store.ProjectileCount(),
		Spawned:       s.counters.Spawned,
		Destroyed:     s.counters.Destroyed,
		DestroyedBy:   s.counters.DestroyedBy,
		DefendersLost: s.counters.DefendersLost,
		KillRatePct:   killRatePct(s.counters.Destroyed, s.counters.Spawned),
		Outcome:       s.outcome,
	}
	if s.cfg.SpawnCap > 0 {
		r.RemainingToSpawn = s.cfg.SpawnCap - s.counters.Spawned
		if r.RemainingToSpawn < 0 {
			r.RemainingToSpawn = 0
		}
	} else {
		r.RemainingToSpawn = -1
	}
	for _, id := range s.store.defenderOrder {
		d, ok := s.store.defenders[id]
		if !ok {
			continue
		}
		r.AvgDefenderHealth += d.DisplayHealth()
		if d.UnderMelee {
			r.UnderMelee++
		}
	}
	if r.Defenders > 0 {
		r.AvgDefenderHealth /= float64(r.Defenders)
	}
	return r
}

// --- Reporter ---

// Reporter keeps periodic TickReport snapshots and summarises them over a
// sliding window. History beyond twice the window is pruned so long runs do
// not grow without bound.
type Reporter struct {
	history     []TickReport
	windowTicks int
}

// NewReporter creates a reporter with the given window size in ticks.
func NewReporter(windowTicks int) *Reporter {
	if windowTicks <= 0 {
		windowTicks = reportWindow
	}
	return &Reporter{windowTicks: windowTicks}
}

// Collect appends a snapshot and prunes old history.
func (r *Reporter) Collect(rpt TickReport) {
	r.history = append(r.history, rpt)

	maxKeep := r.windowTicks / reportInterval * 2
	if maxKeep < 100 {
		maxKeep = 100
	}
	if len(r.history) > maxKeep {
		r.history = r.history[len(r.history)-maxKeep:]
	}
}

// Latest returns the most recent snapshot, or nil if none collected yet.
func (r *Reporter) Latest() *TickReport {
	if len(r.history) == 0 {
		return nil
	}
	return &r.history[len(r.history)-1]
}

// History returns all retained snapshots.
func (r *Reporter) History() []TickReport {
	return r.history
}

// WindowReport is an aggregated pressure summary over a time window.
type WindowReport struct {
	FromTick, ToTick int
	SampleCount      int

	// Averages over the window.
	AvgDefenders      float64
	AvgAttackers      float64
	AvgProjectiles    float64
	AvgDefenderHealth float64
	AvgUnderMelee     float64

	// Window extremes and deltas.
	PeakAttackers      int
	SpawnedDelta       int
	DestroyedDelta     int
	DefendersLostDelta int

	// From the newest snapshot.
	KillRatePct      float64
	RemainingToSpawn int
}

// WindowSummary aggregates the snapshots inside the window. Returns nil when
// nothing has been collected.
func (r *Reporter) WindowSummary() *WindowReport {
	if len(r.history) == 0 {
		return nil
	}

	latest := r.history[len(r.history)-1]
	cutoff := latest.Tick - r.windowTicks
	first := len(r.history) - 1
	for first > 0 && r.history[first-1].Tick >= cutoff {
		first--
	}
	window := r.history[first:]

	n := float64(len(window))
	wr := &WindowReport{
		FromTick:         window[0].Tick,
		ToTick:           latest.Tick,
		SampleCount:      len(window),
		KillRatePct:      latest.KillRatePct,
		RemainingToSpawn: latest.RemainingToSpawn,
	}
	for _, rpt := range window {
		wr.AvgDefenders += float64(rpt.Defenders)
		wr.AvgAttackers += float64(rpt.Attackers)
		wr.AvgProjectiles += float64(rpt.Projectiles)
		wr.AvgDefenderHealth += rpt.AvgDefenderHealth
		wr.AvgUnderMelee += float64(rpt.UnderMelee)
		if rpt.Attackers > wr.PeakAttackers {
			wr.PeakAttackers = rpt.Attackers
		}
	}
	wr.AvgDefenders /= n
	wr.AvgAttackers /= n
	wr.AvgProjectiles /= n
	wr.AvgDefenderHealth /= n
	wr.AvgUnderMelee /= n

	wr.SpawnedDelta = latest.Spawned - window[0].Spawned
	wr.DestroyedDelta = latest.Destroyed - window[0].Destroyed
	wr.DefendersLostDelta = latest.DefendersLost - window[0].DefendersLost
	return wr
}

// Format returns a human-readable multi-line string of the window summary.
func (wr *WindowReport) Format() string {
	if wr == nil {
		return "No data collected yet.\n"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "=== Pressure Report (T=%d..%d, %d samples) ===\n",
		wr.FromTick, wr.ToTick, wr.SampleCount)

	sb.WriteString("\n--- Field ---\n")
	fmt.Fprintf(&sb, "  defenders=%.1f  attackers=%.1f (peak %d)  projectiles=%.1f\n",
		wr.AvgDefenders, wr.AvgAttackers, wr.PeakAttackers, wr.AvgProjectiles)
	fmt.Fprintf(&sb, "  avg defender health=%.1f  under melee=%.1f\n",
		wr.AvgDefenderHealth, wr.AvgUnderMelee)

	sb.WriteString("\n--- Attrition (this window) ---\n")
	fmt.Fprintf(&sb, "  spawned=%+d  destroyed=%+d  defenders lost=%+d\n",
		wr.SpawnedDelta, wr.DestroyedDelta, wr.DefendersLostDelta)

	sb.WriteString("\n--- Totals ---\n")
	fmt.Fprintf(&sb, "  kill rate=%.1f%%", wr.KillRatePct)
	if wr.RemainingToSpawn >= 0 {
		fmt.Fprintf(&sb, "  remaining to spawn=%d", wr.RemainingToSpawn)
	} else {
		sb.WriteString("  remaining to spawn=unlimited")
	}
	sb.WriteByte('\n')
	return sb.String()
}

// FormatLatest returns a concise one-snapshot view of the most recent report.
func (r *Reporter) FormatLatest() string {
	rpt := r.Latest()
	if rpt == nil {
		return "No data.\n"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Snapshot T=%d ---\n", rpt.Tick)
	fmt.Fprintf(&sb, "field:   defenders=%d attackers=%d projectiles=%d\n",
		rpt.Defenders, rpt.Attackers, rpt.Projectiles)
	fmt.Fprintf(&sb, "totals:  spawned=%d destroyed=%d (fast=%d tough=%d balanced=%d) lost=%d\n",
		rpt.Spawned, rpt.Destroyed,
		rpt.DestroyedBy[AttackerFast], rpt.DestroyedBy[AttackerTough], rpt.DestroyedBy[AttackerBalanced],
		rpt.DefendersLost)
	fmt.Fprintf(&sb, "health:  avg=%.1f under_melee=%d  kill_rate=%.1f%%\n",
		rpt.AvgDefenderHealth, rpt.UnderMelee, rpt.KillRatePct)
	if rpt.Outcome != OutcomeOngoing {
		fmt.Fprintf(&sb, "outcome: %s\n", rpt.Outcome)
	}
	return sb.String()
}
