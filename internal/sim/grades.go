package sim

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Grading thresholds.
const (
	gradeMinTicks      = 60 // minimum lifetime before a defender can be graded
	gradeMinMeleeTicks = 10 // minimum melee exposure before pressure is graded
)

// ---------------------------------------------------------------------------
// DefenderTracker: per-defender, per-tick accumulator
// ---------------------------------------------------------------------------

// DefenderTracker accumulates per-tick performance metrics for one defender.
// Trackers outlive their defenders so fallen units still appear in the final
// grade sheet.
type DefenderTracker struct {
	Label    string
	ID       EntityID
	Category DefenderCategory

	// Lifecycle.
	TicksAlive int
	Survived   bool

	// Situation time (ticks).
	TicksIdle       int // no attacker inside the attack radius
	TicksOnCooldown int
	TicksUnderMelee int

	// Combat output.
	Shots           int
	ShotsUnderMelee int
	Hits            int
	Kills           int
	DamageDealt     float64

	// Damage intake.
	DamageTaken float64
	MaxHealth   float64
	HealthAtEnd float64
}

// NewDefenderTracker creates a tracker seeded from the defender's initial state.
func NewDefenderTracker(d *Defender) *DefenderTracker {
	return &DefenderTracker{
		Label:       d.Label(),
		ID:          d.ID,
		Category:    d.Category,
		Survived:    true,
		MaxHealth:   d.MaxHealth,
		HealthAtEnd: d.MaxHealth,
	}
}

// ---------------------------------------------------------------------------
// DefenderGrade: computed performance result
// ---------------------------------------------------------------------------

// DefenderGrade is the computed performance grade for one defender.
type DefenderGrade struct {
	Label    string
	ID       EntityID
	Category DefenderCategory
	Grade    string  // A+, A, B+, B, C+, C, D, F
	Score    float64 // 0-100
	Survived bool

	// Situation scores (0-100; -1 = not enough data to grade).
	OutputScore   float64
	SurvivalScore float64
	PressureScore float64

	// Observed traits.
	GoodTraits []string
	BadTraits  []string

	// Key stats.
	Kills       int
	DamageDealt float64
	DamageTaken float64
	AccuracyPct float64
	EngagedPct  float64
}

// ---------------------------------------------------------------------------
// Grading logic
// ---------------------------------------------------------------------------

// Grades computes per-defender grades from the run's accumulated trackers,
// sorted best score first.
func (s *Sim) Grades() []DefenderGrade {
	return GradeDefenders(s.trackers)
}

// GradeDefenders computes grades from accumulated tracker data.
func GradeDefenders(trackers map[EntityID]*DefenderTracker) []DefenderGrade {
	grades := make([]DefenderGrade, 0, len(trackers))
	for _, dt := range trackers {
		grades = append(grades, computeDefenderGrade(dt))
	}
	sort.Slice(grades, func(i, j int) bool {
		if grades[i].Score != grades[j].Score {
			return grades[i].Score > grades[j].Score
		}
		return grades[i].ID < grades[j].ID
	})
	return grades
}

func computeDefenderGrade(dt *DefenderTracker) DefenderGrade {
	g := DefenderGrade{
		Label:         dt.Label,
		ID:            dt.ID,
		Category:      dt.Category,
		Survived:      dt.Survived,
		Kills:         dt.Kills,
		DamageDealt:   dt.DamageDealt,
		DamageTaken:   dt.DamageTaken,
		OutputScore:   -1,
		SurvivalScore: -1,
		PressureScore: -1,
	}
	if dt.Shots > 0 {
		g.AccuracyPct = perfFrac(dt.Hits, dt.Shots) * 100
	}
	if dt.TicksAlive > 0 {
		g.EngagedPct = (1 - perfFrac(dt.TicksIdle, dt.TicksAlive)) * 100
	}

	// --- Output: how much hurt the defender put out while it had targets ---
	if dt.Shots > 0 {
		s := 40.0
		s += 30.0 * perfFrac(dt.Hits, dt.Shots)
		s += 15.0 * (1.0 - perfFrac(dt.TicksIdle, dt.TicksAlive))
		s += math.Min(15, 3*float64(dt.Kills))
		g.OutputScore = perfClamp(s)
	}

	// --- Survival: how well it held its health ---
	if dt.TicksAlive >= gradeMinTicks {
		s := 40.0
		if dt.MaxHealth > 0 {
			s += 50.0 * dt.HealthAtEnd / dt.MaxHealth
		}
		s += 10.0 * (1.0 - perfFrac(dt.TicksUnderMelee, dt.TicksAlive))
		g.SurvivalScore = perfClamp(s)
	}

	// --- Pressure: behaviour while attackers were in melee range ---
	if dt.TicksUnderMelee >= gradeMinMeleeTicks {
		s := 50.0
		if dt.MaxHealth > 0 {
			s += 25.0 * (1.0 - math.Min(1, dt.DamageTaken/dt.MaxHealth))
		}
		s += 25.0 * perfFrac(dt.ShotsUnderMelee, dt.Shots)
		g.PressureScore = perfClamp(s)
	}

	// --- Overall weighted average ---
	type scoredWeight struct {
		score  float64
		weight float64
	}
	var items []scoredWeight
	if g.OutputScore >= 0 {
		items = append(items, scoredWeight{g.OutputScore, 0.45})
	}
	if g.SurvivalScore >= 0 {
		items = append(items, scoredWeight{g.SurvivalScore, 0.35})
	}
	if g.PressureScore >= 0 {
		items = append(items, scoredWeight{g.PressureScore, 0.20})
	}

	if len(items) > 0 {
		totalW := 0.0
		totalS := 0.0
		for _, it := range items {
			totalW += it.weight
			totalS += it.score * it.weight
		}
		g.Score = totalS / totalW
	} else {
		// Too little data: neutral score nudged by engagement.
		g.Score = 50.0
		if dt.TicksAlive > 0 {
			g.Score += (1 - perfFrac(dt.TicksIdle, dt.TicksAlive)) * 20.0
		}
	}

	if dt.Survived {
		g.Score = math.Min(100, g.Score+5)
	}

	g.Grade = LetterGrade(g.Score)
	g.GoodTraits, g.BadTraits = detectDefenderTraits(dt)
	return g
}

// ---------------------------------------------------------------------------
// Trait detection
// ---------------------------------------------------------------------------

func detectDefenderTraits(dt *DefenderTracker) (good, bad []string) {
	alive := math.Max(1, float64(dt.TicksAlive))

	// ----- GOOD traits -----

	// High output: a meaningful pile of kills.
	if dt.Kills >= 5 {
		good = append(good, "high_output")
	}

	// Sharpshooter: near-perfect hit rate over a real sample.
	if dt.Shots >= 10 && perfFrac(dt.Hits, dt.Shots) > 0.90 {
		good = append(good, "sharpshooter")
	}

	// Untouched: never took a scratch over a graded lifetime.
	if dt.TicksAlive >= gradeMinTicks && dt.DamageTaken == 0 {
		good = append(good, "untouched")
	}

	// Fires under pressure: kept shooting while being hit.
	if dt.TicksUnderMelee >= gradeMinMeleeTicks && perfFrac(dt.ShotsUnderMelee, dt.Shots) > 0.25 {
		good = append(good, "fires_under_pressure")
	}

	// Always engaged: rarely without a target in radius.
	if dt.TicksAlive >= gradeMinTicks && float64(dt.TicksIdle)/alive < 0.10 {
		good = append(good, "always_engaged")
	}

	// ----- BAD traits -----

	// Never fired despite a graded lifetime.
	if dt.TicksAlive >= gradeMinTicks && dt.Shots == 0 {
		bad = append(bad, "never_fired")
	}

	// Low efficiency: too many shots wasted.
	if dt.Shots >= 10 && perfFrac(dt.Hits, dt.Shots) < 0.50 {
		bad = append(bad, "low_efficiency")
	}

	// Punching bag: spent much of its life inside melee range.
	if dt.TicksAlive >= gradeMinTicks && float64(dt.TicksUnderMelee)/alive > 0.30 {
		bad = append(bad, "punching_bag")
	}

	// Early loss: destroyed before it could matter.
	if !dt.Survived && dt.TicksAlive < 300 {
		bad = append(bad, "early_loss")
	}

	// Mostly idle: placed somewhere the fight never reached.
	if dt.TicksAlive >= gradeMinTicks && float64(dt.TicksIdle)/alive > 0.60 {
		bad = append(bad, "mostly_idle")
	}

	return
}

// ---------------------------------------------------------------------------
// Formatting
// ---------------------------------------------------------------------------

// FormatDefenderGrades returns a human-readable performance report.
func FormatDefenderGrades(grades []DefenderGrade) string {
	var sb strings.Builder
	sb.WriteString("\n=== Defender Performance Grades ===\n")

	for _, g := range grades {
		status := "survived"
		if !g.Survived {
			status = "destroyed"
		}
		fmt.Fprintf(&sb, "  %-3s  %-4s %-9s [%s]  kills=%d  dealt=%.0f  taken=%.0f  acc=%.0f%%  engaged=%.0f%%\n",
			g.Grade, g.Label, g.Category, status, g.Kills, g.DamageDealt, g.DamageTaken, g.AccuracyPct, g.EngagedPct)

		if len(g.GoodTraits) > 0 {
			fmt.Fprintf(&sb, "       Good: %s\n", strings.Join(g.GoodTraits, ", "))
		}
		if len(g.BadTraits) > 0 {
			fmt.Fprintf(&sb, "       Bad:  %s\n", strings.Join(g.BadTraits, ", "))
		}

		var scores []string
		if g.OutputScore >= 0 {
			scores = append(scores, fmt.Sprintf("Output=%.0f", g.OutputScore))
		}
		if g.SurvivalScore >= 0 {
			scores = append(scores, fmt.Sprintf("Survival=%.0f", g.SurvivalScore))
		}
		if g.PressureScore >= 0 {
			scores = append(scores, fmt.Sprintf("Pressure=%.0f", g.PressureScore))
		}
		if len(scores) > 0 {
			fmt.Fprintf(&sb, "       Scores: %s\n", strings.Join(scores, "  "))
		}
	}

	return sb.String()
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func perfFrac(num, denom int) float64 {
	if denom <= 0 {
		return 0
	}
	return float64(num) / float64(denom)
}

func perfClamp(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}

// LetterGrade maps a 0-100 score to a letter grade.
func LetterGrade(score float64) string {
	switch {
	case score >= 93:
		return "A+"
	case score >= 85:
		return "A"
	case score >= 78:
		return "B+"
	case score >= 70:
		return "B"
	case score >= 62:
		return "C+"
	case score >= 55:
		return "C"
	case score >= 45:
		return "D"
	default:
		return "F"
	}
}
