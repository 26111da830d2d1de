package sim

import (
	"fmt"
	"strings"
)

// Outcome is the terminal classification of a run.
type Outcome int

const (
	OutcomeOngoing Outcome = iota
	OutcomeVictory
	OutcomeDefeat
	OutcomeTimeout
)

func (o Outcome) String() string {
	switch o {
	case OutcomeVictory:
		return "victory"
	case OutcomeDefeat:
		return "defeat"
	case OutcomeTimeout:
		return "timeout"
	case OutcomeOngoing:
		return "ongoing"
	default:
		return "unknown"
	}
}

// judge evaluates the termination conditions after all entity updates, in
// priority order: Defeat beats Victory beats Timeout. A run that times out on
// the same tick the victory condition holds is classified Victory.
func (s *Sim) judge() {
	if s.store.DefenderCount() == 0 {
		s.finish(OutcomeDefeat, "all defenders destroyed")
		return
	}

	capReached := s.cfg.SpawnCap > 0 && s.counters.Spawned >= s.cfg.SpawnCap
	victoryHolds := capReached && s.store.AttackerCount() == 0
	if victoryHolds {
		s.finish(OutcomeVictory, "spawn cap exhausted and field cleared")
		return
	}

	if s.cfg.MaxTicks > 0 && s.tick+1 >= s.cfg.MaxTicks {
		s.finish(OutcomeTimeout, fmt.Sprintf("tick limit %d reached", s.cfg.MaxTicks))
	}
}

func (s *Sim) finish(outcome Outcome, why string) {
	s.outcome = outcome
	s.log.Add(s.tick, "--", "--", "outcome", "terminal",
		fmt.Sprintf("%s: %s", outcome, why), float64(s.tick+1))
}

// FinalReport carries the terminal outcome and the run's final counters.
type FinalReport struct {
	Outcome       Outcome
	TicksSurvived int

	Spawned       int
	Destroyed     int
	DestroyedBy   [attackerCategoryCount]int
	DefendersLost int
	DefendersLeft int
	AttackersLeft int
	KillRatePct   float64
}

// Final returns the terminal report. Valid once Outcome() is no longer
// OutcomeOngoing; before that it reflects the run so far.
func (s *Sim) Final() FinalReport {
	fr := FinalReport{
		Outcome:       s.outcome,
		TicksSurvived: s.tick,
		Spawned:       s.counters.Spawned,
		Destroyed:     s.counters.Destroyed,
		DestroyedBy:   s.counters.DestroyedBy,
		DefendersLost: s.counters.DefendersLost,
		DefendersLeft: s.store.DefenderCount(),
		AttackersLeft: s.store.AttackerCount(),
		KillRatePct:   killRatePct(s.counters.Destroyed, s.counters.Spawned),
	}
	return fr
}

func killRatePct(destroyed, spawned int) float64 {
	if spawned <= 0 {
		return 0
	}
	return float64(destroyed) / float64(spawned) * 100
}

// Format returns a human-readable summary block.
func (fr FinalReport) Format() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "=== Final Report ===\n")
	fmt.Fprintf(&sb, "outcome=%s ticks_survived=%d\n", fr.Outcome, fr.TicksSurvived)
	fmt.Fprintf(&sb, "attackers: spawned=%d destroyed=%d (fast=%d tough=%d balanced=%d) left=%d\n",
		fr.Spawned, fr.Destroyed,
		fr.DestroyedBy[AttackerFast], fr.DestroyedBy[AttackerTough], fr.DestroyedBy[AttackerBalanced],
		fr.AttackersLeft)
	fmt.Fprintf(&sb, "defenders: lost=%d left=%d\n", fr.DefendersLost, fr.DefendersLeft)
	fmt.Fprintf(&sb, "kill_rate=%.1f%%\n", fr.KillRatePct)
	return sb.String()
}
