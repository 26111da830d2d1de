package sim

import (
	"fmt"
	"math/rand"
	"time"
)

// Counters are the run-wide aggregate totals. They only ever increase.
type Counters struct {
	Spawned       int
	Destroyed     int
	DestroyedBy   [attackerCategoryCount]int
	DefendersLost int
}

// Sim is one battle: a field, the entities on it, a spawn controller feeding
// the edges, and a tick clock. It has no rendering dependency; the Ebiten
// front-end and the headless report tool both drive the same struct.
//
// All state changes go through Step. Entities created during a tick become
// visible to queries the following tick: defenders and attackers only spawn
// between phases, and projectiles sit in a pending buffer until the
// end-of-tick flush.
type Sim struct {
	cfg   Config
	field Field
	seed  int64

	store   *EntityStore
	spawner *SpawnController
	rng     *rand.Rand

	tick     int
	outcome  Outcome
	counters Counters

	log      *SimLog
	trackers map[EntityID]*DefenderTracker
	reporter *Reporter
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptInit   simOptionKind = iota // seed, logging; applied before anything is placed
	simOptEntity                      // extra entities; applied after config-driven placement
)

// SimOption is a builder function applied to a Sim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*Sim)
}

// WithSeed fixes the RNG seed for deterministic runs.
func WithSeed(seed int64) SimOption {
	return SimOption{simOptInit, func(s *Sim) {
		s.seed = seed
	}}
}

// WithVerboseLog enables per-tick movement logging.
func WithVerboseLog() SimOption {
	return SimOption{simOptInit, func(s *Sim) {
		s.log = NewSimLog(true)
	}}
}

// WithDefenderAt places an extra defender of the given category at (x, y),
// on top of whatever the config-driven placement produced.
func WithDefenderAt(cat DefenderCategory, x, y float64) SimOption {
	return SimOption{simOptEntity, func(s *Sim) {
		s.addDefender(cat, x, y)
	}}
}

// WithAttackerAt places an attacker of the given category at (x, y). It counts
// against the spawn total exactly like a controller-spawned one.
func WithAttackerAt(cat AttackerCategory, x, y float64) SimOption {
	return SimOption{simOptEntity, func(s *Sim) {
		s.store.SpawnAttacker(cat, x, y, s.cfg.AttackerHealthMul, EdgeNorth)
		s.counters.Spawned++
	}}
}

// New constructs a Sim from the config and options in two ordered passes:
//
//  1. Init options (seed, logging)
//  2. Config-driven defender placement
//  3. Entity options (scripted defenders and attackers, mainly for tests)
func New(cfg Config, opts ...SimOption) *Sim {
	s := &Sim{
		cfg:      cfg,
		field:    cfg.Field(),
		seed:     time.Now().UnixNano(),
		store:    NewEntityStore(),
		log:      NewSimLog(false),
		trackers: make(map[EntityID]*DefenderTracker),
		reporter: NewReporter(reportWindow),
	}
	for _, o := range opts {
		if o.kind == simOptInit {
			o.fn(s)
		}
	}
	s.rng = rand.New(rand.NewSource(s.seed)) // #nosec G404 -- game only
	s.spawner = NewSpawnController(cfg, s.rng.Int63())

	s.placeDefenders()
	for _, o := range opts {
		if o.kind == simOptEntity {
			o.fn(s)
		}
	}

	s.log.Add(0, "--", "--", "setup", "ready",
		fmt.Sprintf("defenders=%d strategy=%s field=%.0fx%.0f seed=%d",
			s.store.DefenderCount(), cfg.Strategy, s.field.HalfWidth*2, s.field.HalfHeight*2, s.seed),
		float64(s.store.DefenderCount()))
	return s
}

// placeDefenders lays out the configured defender force using the placement
// strategy, rolling each unit's category from the configured mix.
func (s *Sim) placeDefenders() {
	positions := GeneratePositions(s.cfg.Strategy, s.cfg.DefenderCount, s.field, s.rng)
	for _, pos := range positions {
		s.addDefender(s.rollDefenderCategory(), pos.X, pos.Y)
	}
}

// rollDefenderCategory splits [0,100) into light, rapid, and sniper-remainder bands.
func (s *Sim) rollDefenderCategory() DefenderCategory {
	roll := s.rng.Float64() * 100
	if roll < s.cfg.LightPct {
		return DefenderLight
	}
	if roll < s.cfg.LightPct+s.cfg.RapidPct {
		return DefenderRapid
	}
	return DefenderSniper
}

func (s *Sim) addDefender(cat DefenderCategory, x, y float64) EntityID {
	id := s.store.SpawnDefender(cat, x, y)
	d, _ := s.store.Defender(id)
	s.trackers[id] = NewDefenderTracker(d)
	s.log.AddVerbose(0, d.Label(), "defender", "setup", "defender",
		fmt.Sprintf("%s at (%.1f,%.1f)", cat, x, y), 0)
	return id
}

// Step advances the clock one tick: spawn trials, attacker phase, defender
// phase, projectile phase, projectile flush, then the termination judge. Once
// the run has a terminal outcome Step does nothing, so the front-end can keep
// calling it and the final field stays frozen.
func (s *Sim) Step() {
	if s.outcome != OutcomeOngoing {
		return
	}
	s.spawner.Run(s.tick, s.store, s.field, &s.counters, s.log)
	s.updateAttackers()
	s.updateDefenders()
	s.updateProjectiles()
	s.store.flushProjectiles()
	s.judge()
	s.tick++

	if s.tick%reportInterval == 0 || s.outcome != OutcomeOngoing {
		s.reporter.Collect(s.Report())
	}
}

// RunTicks advances the clock n ticks, stopping early on a terminal outcome.
func (s *Sim) RunTicks(n int) {
	for i := 0; i < n; i++ {
		if s.outcome != OutcomeOngoing {
			return
		}
		s.Step()
	}
}

// RunUntil advances the clock up to maxTicks, stopping as soon as predicate
// returns true. Returns the completed tick count at the stop, or -1 if the
// predicate never held.
func (s *Sim) RunUntil(predicate func(*Sim) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		s.Step()
		if predicate(s) {
			return s.tick
		}
		if s.outcome != OutcomeOngoing {
			break
		}
	}
	return -1
}

// --- Accessors ---

// Tick returns the number of completed ticks.
func (s *Sim) Tick() int { return s.tick }

// Outcome returns the terminal classification, OutcomeOngoing while running.
func (s *Sim) Outcome() Outcome { return s.outcome }

// Config returns the run configuration.
func (s *Sim) Config() Config { return s.cfg }

// Field returns the play field bounds.
func (s *Sim) Field() Field { return s.field }

// Store exposes the entity collections for queries and rendering.
func (s *Sim) Store() *EntityStore { return s.store }

// Log returns the structured event log.
func (s *Sim) Log() *SimLog { return s.log }

// Reporter returns the windowed history reporter.
func (s *Sim) Reporter() *Reporter { return s.reporter }

// Seed returns the RNG seed the run was built with.
func (s *Sim) Seed() int64 { return s.seed }
