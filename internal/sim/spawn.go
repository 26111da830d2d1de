package sim

import (
	"fmt"
	"math/rand"
)

// Spawn edge positions are inset this far from the absolute field boundary.
const spawnEdgeInset = 1.0

// SpawnController introduces attackers at the field edges. Once the spawn cap
// (when configured) is reached, spawning stops permanently for the run.
//
// Per tick the controller performs up to three independent Bernoulli trials
// with success probabilities p, p-25, and p-35 percent (clamped at 0), where p
// is the configured spawn rate. A single tick can therefore introduce zero to
// three attackers, and raising p increases both the per-trial probability and
// the number of trials that can fire. This stacked-trial process is kept
// as-is rather than collapsed into one draw: it produces the burstiness the
// model is tuned around at high spawn rates.
type SpawnController struct {
	ratePct   float64
	fastPct   float64
	toughPct  float64
	healthMul float64
	cap       int // 0 = unlimited

	rng *rand.Rand
}

// NewSpawnController creates a controller from the run config.
func NewSpawnController(cfg Config, seed int64) *SpawnController {
	return &SpawnController{
		ratePct:   cfg.SpawnRatePct,
		fastPct:   cfg.FastPct,
		toughPct:  cfg.ToughPct,
		healthMul: cfg.AttackerHealthMul,
		cap:       cfg.SpawnCap,
		rng:       rand.New(rand.NewSource(seed)), // #nosec G404 -- game only
	}
}

// trialThresholds returns the three stacked success probabilities in percent.
func trialThresholds(ratePct float64) [3]float64 {
	clamp := func(v float64) float64 {
		if v < 0 {
			return 0
		}
		return v
	}
	return [3]float64{ratePct, clamp(ratePct - 25), clamp(ratePct - 35)}
}

// Run executes one tick's spawn trials. The cap is re-checked before each
// individual creation so it is never exceeded even when multiple trials
// succeed in the same tick.
func (sc *SpawnController) Run(tick int, store *EntityStore, field Field, counters *Counters, log *SimLog) {
	if sc.capReached(counters) {
		return
	}
	for _, threshold := range trialThresholds(sc.ratePct) {
		if threshold <= 0 {
			continue
		}
		if sc.rng.Float64()*100 >= threshold {
			continue
		}
		if sc.capReached(counters) {
			return
		}
		sc.spawnOne(tick, store, field, counters, log)
	}
}

func (sc *SpawnController) capReached(counters *Counters) bool {
	return sc.cap > 0 && counters.Spawned >= sc.cap
}

func (sc *SpawnController) spawnOne(tick int, store *EntityStore, field Field, counters *Counters, log *SimLog) {
	edge := FieldEdge(sc.rng.Intn(fieldEdgeCount))
	x, y := sc.edgePosition(edge, field)
	cat := sc.rollCategory()

	id := store.SpawnAttacker(cat, x, y, sc.healthMul, edge)
	counters.Spawned++

	a, _ := store.Attacker(id)
	log.Add(tick, a.Label(), "attacker", "spawn", "attacker",
		fmt.Sprintf("%s at (%.1f,%.1f) edge=%s hp=%.0f", cat, x, y, edge, a.Health), float64(counters.Spawned))
	if sc.capReached(counters) {
		log.Add(tick, "--", "--", "spawn", "cap_reached",
			fmt.Sprintf("spawned=%d cap=%d", counters.Spawned, sc.cap), float64(sc.cap))
	}
}

// edgePosition picks a point on the given edge, one unit inside the boundary,
// with the coordinate along the edge uniform over its full extent.
func (sc *SpawnController) edgePosition(edge FieldEdge, field Field) (float64, float64) {
	along := sc.rng.Float64()*2 - 1
	switch edge {
	case EdgeNorth:
		return along * field.HalfWidth, field.HalfHeight - spawnEdgeInset
	case EdgeSouth:
		return along * field.HalfWidth, -field.HalfHeight + spawnEdgeInset
	case EdgeEast:
		return field.HalfWidth - spawnEdgeInset, along * field.HalfHeight
	default:
		return -field.HalfWidth + spawnEdgeInset, along * field.HalfHeight
	}
}

// rollCategory splits [0,100) into fast, tough, and balanced-remainder bands.
func (sc *SpawnController) rollCategory() AttackerCategory {
	roll := sc.rng.Float64() * 100
	if roll < sc.fastPct {
		return AttackerFast
	}
	if roll < sc.fastPct+sc.toughPct {
		return AttackerTough
	}
	return AttackerBalanced
}
