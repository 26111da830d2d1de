package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/armanossiloko/tower-defense-netlogo/internal/game"
	"github.com/armanossiloko/tower-defense-netlogo/internal/sim"
)

// flagOverrides carries flag values plus which of them were explicitly
// passed, so a scenario file loses only to flags the user actually set.
type flagOverrides struct {
	set map[string]bool

	defenders          int
	lightPct, rapidPct float64
	strategy           string
	spawnRate          float64
	healthMul          float64
	fastPct, toughPct  float64
	spawnCap, maxTicks int
}

// applyOverrides layers the explicitly passed flags over cfg.
func applyOverrides(cfg sim.Config, o flagOverrides) (sim.Config, error) {
	if o.set["defenders"] {
		cfg.DefenderCount = o.defenders
	}
	if o.set["light-pct"] {
		cfg.LightPct = o.lightPct
	}
	if o.set["rapid-pct"] {
		cfg.RapidPct = o.rapidPct
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
	if o.set["fast-pct"] {
		cfg.FastPct = o.fastPct
	}
	if o.set["tough-pct"] {
		cfg.ToughPct = o.toughPct
	}
	if o.set["spawn-cap"] {
		cfg.SpawnCap = o.spawnCap
	}
	if o.set["max-ticks"] {
		cfg.MaxTicks = o.maxTicks
	}
	return cfg, nil
}

func main() {
	defaults := sim.DefaultConfig()

	var configPath string
	var seed int64
	var defenders int
	var lightPct, rapidPct float64
	var strategy string
	var spawnRate, healthMul float64
	var fastPct, toughPct float64
	var spawnCap, maxTicks int

	flag.StringVar(&configPath, "config", "", "YAML scenario file (explicit flags override it)")
	flag.Int64Var(&seed, "seed", 0, "RNG seed (0 = from clock)")
	flag.IntVar(&defenders, "defenders", defaults.DefenderCount, "number of defenders")
	flag.Float64Var(&lightPct, "light-pct", defaults.LightPct, "light defender percentage")
	flag.Float64Var(&rapidPct, "rapid-pct", defaults.RapidPct, "rapid defender percentage (sniper = remainder)")
	flag.StringVar(&strategy, "strategy", defaults.Strategy.String(), "placement strategy: ring, clustered, grid, random")
	flag.Float64Var(&spawnRate, "spawn-rate", defaults.SpawnRatePct, "attacker spawn rate percentage")
	flag.Float64Var(&healthMul, "health-mul", defaults.AttackerHealthMul, "attacker health multiplier")
	flag.Float64Var(&fastPct, "fast-pct", defaults.FastPct, "fast attacker percentage")
	flag.Float64Var(&toughPct, "tough-pct", defaults.ToughPct, "tough attacker percentage (balanced = remainder)")
	flag.IntVar(&spawnCap, "spawn-cap", defaults.SpawnCap, "total attacker cap (0 = unlimited)")
	flag.IntVar(&maxTicks, "max-ticks", defaults.MaxTicks, "tick limit before timeout")
	flag.Parse()

	cfg := defaults
	if configPath != "" {
		loaded, err := sim.LoadConfig(configPath)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			return
		}
		cfg = loaded
	}

	// Explicitly passed flags win over both defaults and the scenario file.
	overrides := flagOverrides{
		set:       map[string]bool{},
		defenders: defenders,
		lightPct:  lightPct,
		rapidPct:  rapidPct,
		strategy:  strategy,
		spawnRate: spawnRate,
		healthMul: healthMul,
		fastPct:   fastPct,
		toughPct:  toughPct,
		spawnCap:  spawnCap,
		maxTicks:  maxTicks,
	}
	flag.Visit(func(f *flag.Flag) { overrides.set[f.Name] = true })
	cfg, err := applyOverrides(cfg, overrides)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}

	ebiten.SetWindowTitle("Tower Defense")
	g := game.New(cfg, seed)
	w, h := g.Layout(0, 0)
	ebiten.SetWindowSize(w, h)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
