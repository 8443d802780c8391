package raycast

import (
	"chosenoffset.com/gridcaster/internal/core/geometry"
	"chosenoffset.com/gridcaster/internal/world/element"
)

// Aggregator turns the boundaries of consecutive rays into compacted Walls.
// Rays must be added in sweep order.
type Aggregator struct {
	origin geometry.Coordinate
	walls  Walls
}

// NewAggregator creates an aggregator for rays cast from origin.
func NewAggregator(origin geometry.Coordinate) *Aggregator {
	return &Aggregator{origin: origin}
}

// AddRay records the nearest entering boundary of one ray. Rays that hit
// nothing leave the walls untouched.
func (a *Aggregator) AddRay(boundaries []Boundary) {
	for _, b := range boundaries {
		if b.Entering {
			a.Add(b)
			return
		}
	}
}

// Add records a single boundary edge.
func (a *Aggregator) Add(b Boundary) {
	start, end := a.orient(b.From, b.To)
	a.walls.Push(Wall{Start: start, End: end, Color: b.Color})
}

// Walls returns the walls collected so far.
func (a *Aggregator) Walls() Walls {
	return a.walls
}

// orient orders an edge's endpoints so the one the sweep reaches first comes
// first. Edges seen end-on are ordered by coordinate.
func (a *Aggregator) orient(p, q geometry.Point) (geometry.Point, geometry.Point) {
	turn := a.origin.Bearing(q.Coordinate()).Sub(a.origin.Bearing(p.Coordinate()))
	switch {
	case turn == 0:
		if q.X < p.X || q.Y < p.Y {
			return q, p
		}
		return p, q
	case turn < geometry.Half:
		return p, q
	default:
		return q, p
	}
}

// CastRanges casts every ray in ranges, in order, and returns the walls they
// produce.
func (c Caster) CastRanges(rays []geometry.LinearGraph, ranges []geometry.IndexRange, origin geometry.Coordinate, elements []element.Element) Walls {
	agg := NewAggregator(origin)
	for _, r := range ranges {
		for i := r.Start; i < r.End; i++ {
			agg.AddRay(c.Cast(rays[i], origin, elements))
		}
	}
	return agg.Walls()
}
