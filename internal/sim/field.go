package sim

import "math"

// Field is the bounded 2D battlefield, centred on the origin.
// Coordinates run from -HalfWidth..+HalfWidth on x and -HalfHeight..+HalfHeight on y.
type Field struct {
	HalfWidth  float64
	HalfHeight float64
}

// Contains reports whether (x, y) lies inside the field, boundary included.
func (f Field) Contains(x, y float64) bool {
	return x >= -f.HalfWidth && x <= f.HalfWidth &&
		y >= -f.HalfHeight && y <= f.HalfHeight
}

// MinHalfExtent returns the smaller of the two half-extents.
func (f Field) MinHalfExtent() float64 {
	return math.Min(f.HalfWidth, f.HalfHeight)
}

// --- Field edges ---

// FieldEdge identifies one of the four spawn edges.
type FieldEdge int

const (
	EdgeNorth FieldEdge = iota
	EdgeSouth
	EdgeEast
	EdgeWest

	fieldEdgeCount = 4
)

func (e FieldEdge) String() string {
	switch e {
	case EdgeNorth:
		return "north"
	case EdgeSouth:
		return "south"
	case EdgeEast:
		return "east"
	case EdgeWest:
		return "west"
	default:
		return "unknown"
	}
}

// Position is a point on the field.
type Position struct {
	X float64
	Y float64
}

// dist returns the Euclidean distance between two points.
func dist(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}
