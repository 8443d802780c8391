package geometry

import "math"

// Coordinate is an exact position in world space, measured in grid cells.
type Coordinate struct {
	X, Y float64
}

// Distance returns the Euclidean distance between c and o.
func (c Coordinate) Distance(o Coordinate) float64 {
	return math.Hypot(o.X-c.X, o.Y-c.Y)
}

// Bearing returns the direction from c towards o.
func (c Coordinate) Bearing(o Coordinate) Radians {
	return NewRadians(math.Atan2(o.Y-c.Y, o.X-c.X))
}

// Cell returns the grid cell containing c.
func (c Coordinate) Cell() Point {
	return Point{X: int(math.Floor(c.X)), Y: int(math.Floor(c.Y))}
}

// Point is an integer grid position: a cell index or a grid-line corner,
// depending on context.
type Point struct {
	X, Y int
}

// Coordinate returns p as a world coordinate.
func (p Point) Coordinate() Coordinate {
	return Coordinate{X: float64(p.X), Y: float64(p.Y)}
}

// Bounds is the extent of a map in cells, anchored at the origin.
type Bounds struct {
	Width, Height int
}

// Contains reports whether cell p lies inside the map.
func (b Bounds) Contains(p Point) bool {
	return p.X >= 0 && p.X < b.Width && p.Y >= 0 && p.Y < b.Height
}

// Diagonal returns the longest straight distance inside the map.
func (b Bounds) Diagonal() float64 {
	return math.Hypot(float64(b.Width), float64(b.Height))
}
