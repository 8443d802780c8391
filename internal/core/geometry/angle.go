package geometry

import "math"

// rayIndexEpsilon absorbs rounding when an angle lands exactly on a ray.
const rayIndexEpsilon = 1e-9

// Angle is a field of view sweeping from Start to End in the increasing
// direction (clockwise on screen, since screen y grows downward). End may be
// numerically smaller than Start, in which case the sweep wraps through 0.
type Angle struct {
	Start Radians
	End   Radians
}

// NewAngle builds an angle from its two bounds.
func NewAngle(start, end Radians) Angle {
	return Angle{Start: start, End: end}
}

// AngleAround builds a field of view of the given width centered on heading.
func AngleAround(heading Radians, width float64) Angle {
	return Angle{
		Start: heading.AddFloat(-width / 2),
		End:   heading.AddFloat(width / 2),
	}
}

// Value returns the angular width of the sweep.
func (a Angle) Value() Radians {
	return a.End.Sub(a.Start)
}

// Wraps reports whether the sweep crosses 0.
func (a Angle) Wraps() bool {
	return a.Start > a.End
}

// Center returns the heading halfway through the sweep.
func (a Angle) Center() Radians {
	return a.Start.AddFloat(float64(a.Value()) / 2)
}

// IsInside reports whether r lies on the sweep from Start (inclusive) to End
// (exclusive).
func (a Angle) IsInside(r Radians) bool {
	return r.Sub(a.Start) < a.Value()
}

// Rotate shifts both bounds by delta.
func (a Angle) Rotate(delta float64) Angle {
	return Angle{Start: a.Start.AddFloat(delta), End: a.End.AddFloat(delta)}
}

// IndexRange is a half-open range [Start, End) of ray indices.
type IndexRange struct {
	Start int
	End   int
}

// Len returns the number of indices in the range.
func (r IndexRange) Len() int {
	if r.End < r.Start {
		return 0
	}
	return r.End - r.Start
}

// RaysIndexRange converts the sweep into index ranges over a fan of
// totalRays evenly spaced rays. It returns one range when the sweep does not
// cross 0 and two ranges (tail, then head) when it does. Iterating the ranges
// in order walks the rays left to right on screen.
func (a Angle) RaysIndexRange(totalRays int) []IndexRange {
	if totalRays <= 0 {
		return nil
	}
	start := rayIndex(a.Start, totalRays)
	end := rayIndex(a.End, totalRays)
	if !a.Wraps() {
		return []IndexRange{{Start: start, End: end}}
	}
	return []IndexRange{
		{Start: start, End: totalRays},
		{Start: 0, End: end},
	}
}

// GetRaysAngleRange returns the index ranges of the part-th of parts
// contiguous slices of the sweep. The slices cover the sweep in order with no
// overlap; a slice that straddles index 0 comes back as two ranges.
func (a Angle) GetRaysAngleRange(totalRays, part, parts int) []IndexRange {
	if parts <= 0 || part < 0 || part >= parts {
		return nil
	}
	ranges := a.RaysIndexRange(totalRays)
	total := 0
	for _, r := range ranges {
		total += r.Len()
	}

	lo := part * total / parts
	hi := (part + 1) * total / parts

	var out []IndexRange
	offset := 0
	for _, r := range ranges {
		from := max(lo, offset)
		to := min(hi, offset+r.Len())
		if from < to {
			out = append(out, IndexRange{Start: r.Start + from - offset, End: r.Start + to - offset})
		}
		offset += r.Len()
	}
	return out
}

// rayIndex returns the first ray index whose angle is not below r.
func rayIndex(r Radians, totalRays int) int {
	idx := int(math.Ceil(float64(r)/TwoPi*float64(totalRays) - rayIndexEpsilon))
	if idx < 0 {
		return 0
	}
	if idx > totalRays {
		return totalRays
	}
	return idx
}
