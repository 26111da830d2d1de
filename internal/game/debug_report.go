package game

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/armanossiloko/tower-defense-netlogo/internal/sim"
)

// debugReportTicks is how far back the recent-events section reaches.
const debugReportTicks = 120

// buildDebugReport assembles a plain-text snapshot of the whole run: config,
// current counters, per-defender grades, and the recent event log. The text is
// meant to be pasted into a bug report or a notebook, so it is self-contained.
func (g *Game) buildDebugReport() string {
	s := g.s
	cfg := s.Config()
	rpt := s.Report()

	toTick := s.Tick()
	fromTick := toTick - debugReportTicks + 1
	if fromTick < 0 {
		fromTick = 0
	}

	var b strings.Builder
	b.WriteString("--- tower-defense debug report ---\n")
	fmt.Fprintf(&b, "seed=%d tick=%d outcome=%s\n", s.Seed(), toTick, s.Outcome())
	fmt.Fprintf(&b, "config: defenders=%d (light=%.0f%% rapid=%.0f%% sniper=%.0f%%) strategy=%s\n",
		cfg.DefenderCount, cfg.LightPct, cfg.RapidPct, cfg.SniperPct(), cfg.Strategy)
	fmt.Fprintf(&b, "        spawn_rate=%.0f%% health_mul=%.2f (fast=%.0f%% tough=%.0f%% balanced=%.0f%%) cap=%d\n",
		cfg.SpawnRatePct, cfg.AttackerHealthMul, cfg.FastPct, cfg.ToughPct, cfg.BalancedPct(), cfg.SpawnCap)
	fmt.Fprintf(&b, "        max_ticks=%d field=%.0fx%.0f\n\n",
		cfg.MaxTicks, cfg.FieldHalfWidth*2, cfg.FieldHalfHeight*2)

	fmt.Fprintf(&b, "field:  defenders=%d attackers=%d projectiles=%d\n",
		rpt.Defenders, rpt.Attackers, rpt.Projectiles)
	fmt.Fprintf(&b, "totals: spawned=%d destroyed=%d (fast=%d tough=%d balanced=%d) lost=%d\n",
		rpt.Spawned, rpt.Destroyed,
		rpt.DestroyedBy[sim.AttackerFast], rpt.DestroyedBy[sim.AttackerTough], rpt.DestroyedBy[sim.AttackerBalanced],
		rpt.DefendersLost)
	fmt.Fprintf(&b, "health: avg=%.1f under_melee=%d kill_rate=%.1f%%\n",
		rpt.AvgDefenderHealth, rpt.UnderMelee, rpt.KillRatePct)

	if ws := s.Reporter().WindowSummary(); ws != nil {
		b.WriteByte('\n')
		b.WriteString(ws.Format())
	}

	b.WriteString(sim.FormatDefenderGrades(s.Grades()))

	fmt.Fprintf(&b, "\n=== Events T=%d..%d ===\n", fromTick, toTick)
	events := s.Log().FormatRange(fromTick, toTick)
	if events == "" {
		b.WriteString("(none)\n")
	} else {
		b.WriteString(events)
	}
	return b.String()
}

// copyDebugReport puts the debug report on the system clipboard. Failure is
// reported into the battle log rather than crashing the game.
func (g *Game) copyDebugReport() {
	report := g.buildDebugReport()
	if err := clipboard.WriteAll(report); err != nil {
		g.battleLog.Add(g.s.Tick(), "--", "--", fmt.Sprintf("clipboard copy failed: %v", err))
		return
	}
	g.battleLog.Add(g.s.Tick(), "--", "--",
		fmt.Sprintf("debug report copied (%d bytes)", len(report)))
}
