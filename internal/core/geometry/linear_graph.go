package geometry

import (
	"fmt"
	"math"
)

// crossingEpsilon is the tolerance used to decide that a ray passes through a
// grid corner rather than just one of its lines.
const crossingEpsilon = 1e-9

// LineKind tells which grid line a crossing lies on.
type LineKind int

const (
	// VerticalLine is a crossing of x = const.
	VerticalLine LineKind = iota + 1
	// HorizontalLine is a crossing of y = const.
	HorizontalLine
	// Corner is a simultaneous crossing of both lines. Consumers treat it as
	// the horizontal crossing followed by the vertical one.
	Corner
)

func (k LineKind) String() string {
	switch k {
	case VerticalLine:
		return "vertical"
	case HorizontalLine:
		return "horizontal"
	case Corner:
		return "corner"
	default:
		return fmt.Sprintf("LineKind(%d)", int(k))
	}
}

// Crossing is the next grid-line intersection along a ray.
type Crossing struct {
	At   Coordinate
	Line LineKind
}

// LinearGraph is a ray direction together with its precomputed tangent.
// Rays are ordered and compared by angle.
type LinearGraph struct {
	Radians Radians
	Slope   float64
	dx, dy  float64
}

// NewLinearGraph builds the ray for direction r. The four axis angles get
// exact direction vectors.
func NewLinearGraph(r Radians) LinearGraph {
	switch r {
	case 0:
		return LinearGraph{Radians: r, Slope: 0, dx: 1, dy: 0}
	case Quarter:
		return LinearGraph{Radians: r, Slope: math.Inf(1), dx: 0, dy: 1}
	case Half:
		return LinearGraph{Radians: r, Slope: 0, dx: -1, dy: 0}
	case ThreeQuarter:
		return LinearGraph{Radians: r, Slope: math.Inf(-1), dx: 0, dy: -1}
	}
	return LinearGraph{
		Radians: r,
		Slope:   math.Tan(float64(r)),
		dx:      math.Cos(float64(r)),
		dy:      math.Sin(float64(r)),
	}
}

// GenerateAllRays returns n rays at angles 2πk/n. Indices that land on an
// axis use the exact axis angle.
func GenerateAllRays(n int) []LinearGraph {
	if n <= 0 {
		return nil
	}
	rays := make([]LinearGraph, n)
	for k := 0; k < n; k++ {
		var r Radians
		switch 4 * k {
		case 0:
			r = 0
		case n:
			r = Quarter
		case 2 * n:
			r = Half
		case 3 * n:
			r = ThreeQuarter
		default:
			r = NewRadians(TwoPi * float64(k) / float64(n))
		}
		rays[k] = NewLinearGraph(r)
	}
	return rays
}

// Direction returns the unit direction vector of the ray.
func (g LinearGraph) Direction() (dx, dy float64) {
	return g.dx, g.dy
}

// Less orders rays by angle.
func (g LinearGraph) Less(o LinearGraph) bool {
	return g.Radians < o.Radians
}

// Equal reports whether both rays point the same way.
func (g LinearGraph) Equal(o LinearGraph) bool {
	return g.Radians == o.Radians
}

// Steps returns the grid step sign along each axis. It panics when the
// direction is not normalized; every constructor guarantees it is.
func (g LinearGraph) Steps() (sx, sy int) {
	r := g.Radians
	switch {
	case !r.Valid():
		panic(fmt.Sprintf("geometry: ray direction %v outside [0, 2π)", float64(r)))
	case r == 0:
		return 1, 0
	case r < Quarter:
		return 1, 1
	case r == Quarter:
		return 0, 1
	case r < Half:
		return -1, 1
	case r == Half:
		return -1, 0
	case r < ThreeQuarter:
		return -1, -1
	case r == ThreeQuarter:
		return 0, -1
	default:
		return 1, -1
	}
}

// GetNext returns the first grid-line crossing strictly ahead of current
// along g, whichever of the next vertical or horizontal line comes first.
// When both are reached together the crossing is reported as a Corner.
func GetNext(g LinearGraph, current Coordinate) Crossing {
	sx, sy := g.Steps()

	switch {
	case sy == 0:
		return Crossing{At: Coordinate{X: nextLine(current.X, sx), Y: current.Y}, Line: VerticalLine}
	case sx == 0:
		return Crossing{At: Coordinate{X: current.X, Y: nextLine(current.Y, sy)}, Line: HorizontalLine}
	}

	// Candidate on the next vertical line, then on the next horizontal one.
	vx := nextLine(current.X, sx)
	vy := current.Y + g.Slope*(vx-current.X)
	hy := nextLine(current.Y, sy)
	hx := current.X + (hy-current.Y)/g.Slope

	// Along a non-axis ray, distance is proportional to the x delta.
	vDelta := math.Abs(vx - current.X)
	hDelta := math.Abs(hx - current.X)
	switch {
	case math.Abs(vDelta-hDelta) <= crossingEpsilon:
		return Crossing{At: Coordinate{X: vx, Y: hy}, Line: Corner}
	case hDelta < vDelta:
		return Crossing{At: Coordinate{X: hx, Y: hy}, Line: HorizontalLine}
	default:
		return Crossing{At: Coordinate{X: vx, Y: vy}, Line: VerticalLine}
	}
}

// GetNextFromDistance returns the point at the given distance from point
// along g.
func GetNextFromDistance(g LinearGraph, point Coordinate, distance float64) Coordinate {
	return Coordinate{X: point.X + g.dx*distance, Y: point.Y + g.dy*distance}
}

// nextLine returns the next integer strictly past v in direction step.
func nextLine(v float64, step int) float64 {
	if n := math.Round(v); math.Abs(v-n) <= crossingEpsilon {
		v = n
	}
	if step > 0 {
		return math.Floor(v) + 1
	}
	return math.Ceil(v) - 1
}
