package sim

import (
	"fmt"
	"math"
	"math/rand"
)

// --- Placement strategies ---

// PlacementStrategy selects how initial defender positions are laid out.
type PlacementStrategy int

const (
	PlacementRing PlacementStrategy = iota
	PlacementClustered
	PlacementGrid
	PlacementRandom
)

func (ps PlacementStrategy) String() string {
	switch ps {
	case PlacementRing:
		return "ring"
	case PlacementClustered:
		return "clustered"
	case PlacementGrid:
		return "grid"
	case PlacementRandom:
		return "random"
	default:
		return "unknown"
	}
}

// ParsePlacementStrategy converts a strategy name (as used in flags and config
// files) back to its value.
func ParsePlacementStrategy(name string) (PlacementStrategy, error) {
	switch name {
	case "ring":
		return PlacementRing, nil
	case "clustered":
		return PlacementClustered, nil
	case "grid":
		return PlacementGrid, nil
	case "random":
		return PlacementRandom, nil
	default:
		return PlacementRing, fmt.Errorf("unknown placement strategy %q (want ring, clustered, grid, or random)", name)
	}
}

const (
	// Ring radius as a fraction of the smaller half-extent. Tuned so the ring
	// sits well inside bounds and out-of-bounds discards stay rare.
	ringRadiusFrac = 0.6

	// Clustered offsets stay within this fraction of the smaller half-extent
	// around the field centre.
	clusterSpreadFrac = 0.15

	// Grid slots span this fraction of the smaller half-extent on each side
	// of the centre.
	gridSpanFrac = 0.7

	// Attempt budget multiplier shared by grid and random sampling.
	placementAttemptsPerSlot = 20
)

// GeneratePositions produces up to count defender positions for the chosen
// strategy. Deterministic given a seeded rng. A shorter result than count means
// the bounds were pathologically small; callers instantiate fewer defenders
// and carry on.
func GeneratePositions(strategy PlacementStrategy, count int, field Field, rng *rand.Rand) []Position {
	if count <= 0 {
		return nil
	}
	switch strategy {
	case PlacementClustered:
		return clusteredPositions(count, field, rng)
	case PlacementGrid:
		return gridPositions(count, field, rng)
	case PlacementRandom:
		return randomPositions(count, field, rng)
	default:
		return ringPositions(count, field)
	}
}

// ringPositions spaces count slots evenly around a circle, 360/count degrees
// apart. Candidates outside bounds are discarded.
func ringPositions(count int, field Field) []Position {
	radius := ringRadiusFrac * field.MinHalfExtent()
	step := 2 * math.Pi / float64(count)
	out := make([]Position, 0, count)
	for i := 0; i < count; i++ {
		angle := step * float64(i)
		x := radius * math.Cos(angle)
		y := radius * math.Sin(angle)
		if !field.Contains(x, y) {
			continue
		}
		out = append(out, Position{X: x, Y: y})
	}
	return out
}

// clusteredPositions scatters count slots in a small box around the field
// centre. Accepted unconditionally: the spread keeps them in bounds by
// construction.
func clusteredPositions(count int, field Field, rng *rand.Rand) []Position {
	spread := clusterSpreadFrac * field.MinHalfExtent()
	out := make([]Position, 0, count)
	for i := 0; i < count; i++ {
		x := (rng.Float64()*2 - 1) * spread
		y := (rng.Float64()*2 - 1) * spread
		out = append(out, Position{X: x, Y: y})
	}
	return out
}

// gridPositions walks a centred square grid whose side starts at
// ceil(sqrt(count)). If discards exhaust a grid before count is reached the
// side grows by one and enumeration resumes. Residual slots fall back to
// uniform in-bounds sampling. Total attempts are capped so generation always
// terminates.
func gridPositions(count int, field Field, rng *rand.Rand) []Position {
	maxAttempts := placementAttemptsPerSlot * count
	span := gridSpanFrac * field.MinHalfExtent()
	out, attempts := gridEnumerate(count, span, maxAttempts, field.Contains)

	// Fallback: fill what the grid could not.
	for ; len(out) < count && attempts < maxAttempts; attempts++ {
		out = append(out, uniformInBounds(field, rng))
	}
	return out
}

// gridEnumerate emits accepted grid slots, growing the side when a grid is
// exhausted early. Slot coordinates shared between grids (the corners, the
// centre on odd sides) are emitted at most once across grow passes. Returns
// the positions and the attempts consumed.
func gridEnumerate(count int, span float64, maxAttempts int, accept func(x, y float64) bool) ([]Position, int) {
	side := int(math.Ceil(math.Sqrt(float64(count))))
	seen := make(map[[2]float64]bool)
	out := make([]Position, 0, count)
	attempts := 0
	for len(out) < count && attempts < maxAttempts {
		spacing := 0.0
		if side > 1 {
			spacing = 2 * span / float64(side-1)
		}
		for row := 0; row < side && len(out) < count && attempts < maxAttempts; row++ {
			for col := 0; col < side && len(out) < count && attempts < maxAttempts; col++ {
				attempts++
				x := -span + spacing*float64(col)
				y := -span + spacing*float64(row)
				if side == 1 {
					x, y = 0, 0
				}
				key := [2]float64{x, y}
				if seen[key] {
					continue
				}
				seen[key] = true
				if !accept(x, y) {
					continue
				}
				out = append(out, Position{X: x, Y: y})
			}
		}
		side++
	}
	return out, attempts
}

// randomPositions samples uniform in-bounds points until count exist, within
// the shared attempt cap.
func randomPositions(count int, field Field, rng *rand.Rand) []Position {
	maxAttempts := placementAttemptsPerSlot * count
	out := make([]Position, 0, count)
	for attempts := 0; len(out) < count && attempts < maxAttempts; attempts++ {
		out = append(out, uniformInBounds(field, rng))
	}
	return out
}

func uniformInBounds(field Field, rng *rand.Rand) Position {
	return Position{
		X: (rng.Float64()*2 - 1) * field.HalfWidth,
		Y: (rng.Float64()*2 - 1) * field.HalfHeight,
	}
}
