package main

import (
	"flag"
	"fmt"
	"sort"
	"strings"

	"github.com/armanossiloko/tower-defense-netlogo/internal/sim"
)

// runStats is everything one headless run contributes to the aggregate.
type runStats struct {
	runIndex int
	seed     int64

	final sim.FinalReport

	// Phase markers: first tick each milestone occurred, -1 if never.
	firstSpawnTick   int
	firstKillTick    int
	firstLossTick    int
	capReachedTick   int
	firstMeleeTick   int

	meleeHits  int
	shotsFired int

	windowSummary *sim.WindowReport
	grades        []sim.DefenderGrade
}

// flagOverrides carries flag values plus which of them were explicitly
// passed, so a scenario file loses only to flags the user actually set.
type flagOverrides struct {
	set map[string]bool

	defenders int
	strategy  string
	spawnRate float64
	healthMul float64
	spawnCap  int
}

// applyOverrides layers the explicitly passed flags over cfg.
func applyOverrides(cfg sim.Config, o flagOverrides) (sim.Config, error) {
	if o.set["defenders"] {
		cfg.DefenderCount = o.defenders
	}
	if o.set["strategy"] {
		parsed, err := sim.ParsePlacementStrategy(o.strategy)
		if err != nil {
			return cfg, err
		}
		cfg.Strategy = parsed
	}
	if o.set["spawn-rate"] {
		cfg.SpawnRatePct = o.spawnRate
	}
	if o.set["health-mul"] {
		cfg.AttackerHealthMul = o.healthMul
	}
	if o.set["spawn-cap"] {
		cfg.SpawnCap = o.spawnCap
	}
	return cfg, nil
}

func main() {
	defaults := sim.DefaultConfig()

	var runs int
	var ticks int
	var seedBase int64
	var seedStep int64
	var configPath string
	var defenders int
	var strategy string
	var spawnRate float64
	var healthMul float64
	var spawnCap int
	var showGrades bool

	flag.IntVar(&runs, "runs", 5, "number of headless simulation runs")
	flag.IntVar(&ticks, "ticks", 0, "ticks per run (0 = the config's max_ticks)")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&configPath, "config", "", "YAML scenario file (explicit flags override it)")
	flag.IntVar(&defenders, "defenders", defaults.DefenderCount, "number of defenders")
	flag.StringVar(&strategy, "strategy", defaults.Strategy.String(), "placement strategy: ring, clustered, grid, random")
	flag.Float64Var(&spawnRate, "spawn-rate", defaults.SpawnRatePct, "attacker spawn rate percentage")
	flag.Float64Var(&healthMul, "health-mul", defaults.AttackerHealthMul, "attacker health multiplier")
	flag.IntVar(&spawnCap, "spawn-cap", defaults.SpawnCap, "total attacker cap (0 = unlimited)")
	flag.BoolVar(&showGrades, "grades", true, "print per-defender grade tables")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}

	cfg := defaults
	if configPath != "" {
		loaded, err := sim.LoadConfig(configPath)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			return
		}
		cfg = loaded
	}
	overrides := flagOverrides{
		set:       map[string]bool{},
		defenders: defenders,
		strategy:  strategy,
		spawnRate: spawnRate,
		healthMul: healthMul,
		spawnCap:  spawnCap,
	}
	flag.Visit(func(f *flag.Flag) { overrides.set[f.Name] = true })
	cfg, err := applyOverrides(cfg, overrides)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}
	if ticks <= 0 {
		ticks = cfg.MaxTicks
	}
	if ticks <= 0 {
		fmt.Println("error: -ticks must be > 0 when the config has no max_ticks")
		return
	}

	fmt.Printf("=== Headless Battle Report ===\n")
	fmt.Printf("runs=%d ticks=%d seed_base=%d seed_step=%d\n", runs, ticks, seedBase, seedStep)
	fmt.Printf("config: defenders=%d strategy=%s spawn_rate=%.0f%% health_mul=%.2f cap=%d\n\n",
		cfg.DefenderCount, cfg.Strategy, cfg.SpawnRatePct, cfg.AttackerHealthMul, cfg.SpawnCap)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		stats := runOnce(cfg, i+1, seed, ticks)
		all = append(all, stats)
		printRun(stats, showGrades)
	}

	printAggregate(all)
}

func runOnce(cfg sim.Config, runIndex int, seed int64, ticks int) runStats {
	s := sim.New(cfg, sim.WithSeed(seed))
	s.RunTicks(ticks)

	entries := s.Log().Entries()
	return runStats{
		runIndex:       runIndex,
		seed:           seed,
		final:          s.Final(),
		firstSpawnTick: firstTick(entries, "spawn", "attacker", ""),
		firstKillTick:  firstTick(entries, "combat", "attacker_down", ""),
		firstLossTick:  firstTick(entries, "combat", "defender_down", ""),
		capReachedTick: firstTick(entries, "spawn", "cap_reached", ""),
		firstMeleeTick: firstTick(entries, "combat", "melee_hit", ""),
		meleeHits:      s.Log().CountCategory("combat", "melee_hit"),
		shotsFired:     s.Log().CountCategory("combat", "fire"),
		windowSummary:  s.Reporter().WindowSummary(),
		grades:         s.Grades(),
	}
}

// firstTick returns the tick of the first log entry matching category+key
// (and value substring, if given), or -1 when none matched.
func firstTick(entries []sim.SimLogEntry, category, key, contains string) int {
	for _, e := range entries {
		if e.Category != category || e.Key != key {
			continue
		}
		if contains == "" || strings.Contains(e.Value, contains) {
			return e.Tick
		}
	}
	return -1
}

func printRun(rs runStats, showGrades bool) {
	fr := rs.final
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Printf("outcome=%s ticks_survived=%d\n", fr.Outcome, fr.TicksSurvived)
	fmt.Printf("attackers: spawned=%d destroyed=%d (fast=%d tough=%d balanced=%d) left=%d\n",
		fr.Spawned, fr.Destroyed,
		fr.DestroyedBy[sim.AttackerFast], fr.DestroyedBy[sim.AttackerTough], fr.DestroyedBy[sim.AttackerBalanced],
		fr.AttackersLeft)
	fmt.Printf("defenders: lost=%d left=%d  kill_rate=%.1f%%\n", fr.DefendersLost, fr.DefendersLeft, fr.KillRatePct)
	fmt.Printf("phase_markers: first_spawn=%d first_kill=%d first_loss=%d first_melee=%d cap_reached=%d\n",
		rs.firstSpawnTick, rs.firstKillTick, rs.firstLossTick, rs.firstMeleeTick, rs.capReachedTick)
	fmt.Printf("event_totals: shots=%d melee_hits=%d\n", rs.shotsFired, rs.meleeHits)
	if ws := rs.windowSummary; ws != nil {
		fmt.Printf("window(T=%d..%d): attackers_avg=%.1f (peak %d) defender_hp_avg=%.1f under_melee_avg=%.1f\n",
			ws.FromTick, ws.ToTick, ws.AvgAttackers, ws.PeakAttackers, ws.AvgDefenderHealth, ws.AvgUnderMelee)
	}
	if showGrades {
		fmt.Print(sim.FormatDefenderGrades(rs.grades))
	}
	fmt.Println()
}

func printAggregate(all []runStats) {
	outcomes := map[sim.Outcome]int{}
	totalSpawned := 0
	totalDestroyed := 0
	totalLost := 0
	killRateSum := 0.0
	survived := make([]int, 0, len(all))

	// Aggregate per-defender scores across runs. Labels are stable for a
	// fixed config: placement issues IDs in the same order every run.
	type defenderAgg struct {
		scoreSum float64
		count    int
		survived int
		good     map[string]int
		bad      map[string]int
	}
	defenderAggs := map[string]*defenderAgg{}

	for _, rs := range all {
		fr := rs.final
		outcomes[fr.Outcome]++
		totalSpawned += fr.Spawned
		totalDestroyed += fr.Destroyed
		totalLost += fr.DefendersLost
		killRateSum += fr.KillRatePct
		survived = append(survived, fr.TicksSurvived)

		for _, g := range rs.grades {
			ag, ok := defenderAggs[g.Label]
			if !ok {
				ag = &defenderAgg{good: map[string]int{}, bad: map[string]int{}}
				defenderAggs[g.Label] = ag
			}
			ag.scoreSum += g.Score
			ag.count++
			if g.Survived {
				ag.survived++
			}
			for _, t := range g.GoodTraits {
				ag.good[t]++
			}
			for _, t := range g.BadTraits {
				ag.bad[t]++
			}
		}
	}

	n := len(all)
	minSurv, maxSurv := minMax(survived)

	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d\n", n)
	fmt.Printf("outcomes: victory=%d defeat=%d timeout=%d ongoing=%d\n",
		outcomes[sim.OutcomeVictory], outcomes[sim.OutcomeDefeat],
		outcomes[sim.OutcomeTimeout], outcomes[sim.OutcomeOngoing])
	fmt.Printf("ticks_survived: avg=%.1f min=%d max=%d\n", avg(sumInts(survived), n), minSurv, maxSurv)
	fmt.Printf("avg_per_run: spawned=%.1f destroyed=%.1f defenders_lost=%.1f kill_rate=%.1f%%\n",
		avg(totalSpawned, n), avg(totalDestroyed, n), avg(totalLost, n), killRateSum/float64(n))

	fmt.Println("\n=== Aggregate Defender Performance ===")
	type labelScore struct {
		label    string
		avgScore float64
		survRate float64
		topGood  string
		topBad   string
	}
	var rows []labelScore
	for label, ag := range defenderAggs {
		avgS := 0.0
		if ag.count > 0 {
			avgS = ag.scoreSum / float64(ag.count)
		}
		survR := 0.0
		if ag.count > 0 {
			survR = float64(ag.survived) / float64(ag.count) * 100
		}
		rows = append(rows, labelScore{label, avgS, survR, topTrait(ag.good), topTrait(ag.bad)})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].avgScore != rows[j].avgScore {
			return rows[i].avgScore > rows[j].avgScore
		}
		return rows[i].label < rows[j].label
	})
	for _, r := range rows {
		fmt.Printf("  %-4s %-3s (avg=%.1f)  survival=%.0f%%", r.label, sim.LetterGrade(r.avgScore), r.avgScore, r.survRate)
		if r.topGood != "" {
			fmt.Printf("  good=%s", r.topGood)
		}
		if r.topBad != "" {
			fmt.Printf("  bad=%s", r.topBad)
		}
		fmt.Println()
	}
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func sumInts(vals []int) int {
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return sum
}

func minMax(vals []int) (int, int) {
	if len(vals) == 0 {
		return 0, 0
	}
	lo, hi := vals[0], vals[0]
	for _, v := range vals[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

// topTrait returns the most frequent trait as "name(count)", or "" when none.
func topTrait(counts map[string]int) string {
	if len(counts) == 0 {
		return ""
	}
	best := ""
	bestN := 0
	for k, v := range counts {
		if v > bestN || (v == bestN && k < best) {
			best = k
			bestN = v
		}
	}
	return fmt.Sprintf("%s(%d)", best, bestN)
}
