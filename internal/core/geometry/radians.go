// Package geometry provides the angle, grid and ray primitives shared by the
// raycasting and projection stages.
package geometry

import "math"

// Full turn and the exact axis angles. Rays at these angles get exact
// direction vectors instead of cos/sin approximations.
const (
	TwoPi        = 2 * math.Pi
	Quarter      = Radians(math.Pi / 2)
	Half         = Radians(math.Pi)
	ThreeQuarter = Radians(3 * math.Pi / 2)
)

// Radians is an angle normalized into [0, 2π).
type Radians float64

// NewRadians wraps x into [0, 2π).
func NewRadians(x float64) Radians {
	r := math.Mod(x, TwoPi)
	if r < 0 {
		r += TwoPi
	}
	// -tiny + 2π rounds up to 2π
	if r >= TwoPi {
		r = 0
	}
	return Radians(r)
}

// FromDegrees converts degrees to normalized radians.
func FromDegrees(deg float64) Radians {
	return NewRadians(deg * math.Pi / 180)
}

// Add returns r + o, normalized.
func (r Radians) Add(o Radians) Radians {
	return NewRadians(float64(r) + float64(o))
}

// AddFloat returns r + delta, normalized. delta may be negative.
func (r Radians) AddFloat(delta float64) Radians {
	return NewRadians(float64(r) + delta)
}

// Sub returns r - o, normalized. The result is the counter-rotation needed to
// go from o to r in the increasing direction.
func (r Radians) Sub(o Radians) Radians {
	return NewRadians(float64(r) - float64(o))
}

// Valid reports whether r is inside [0, 2π).
func (r Radians) Valid() bool {
	return r >= 0 && float64(r) < TwoPi
}

// Float returns the raw value.
func (r Radians) Float() float64 {
	return float64(r)
}

// Degrees returns r in degrees.
func (r Radians) Degrees() float64 {
	return float64(r) * 180 / math.Pi
}

// Signed returns r mapped into (-π, π].
func (r Radians) Signed() float64 {
	if r > Half {
		return float64(r) - TwoPi
	}
	return float64(r)
}
