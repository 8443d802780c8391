// Package scene holds the viewer and map elements shared between the game
// loop and the ray-casting workers.
package scene

import (
	"math"
	"sync"
	"time"

	"chosenoffset.com/gridcaster/internal/core/geometry"
	"chosenoffset.com/gridcaster/internal/world/element"
)

// Viewer is the camera: where it stands and what it sees.
type Viewer struct {
	Position geometry.Coordinate
	FOV      geometry.Angle
}

// Heading returns the center of the field of view.
func (v Viewer) Heading() geometry.Radians {
	return v.FOV.Center()
}

// RaysAngleRange returns the ray indices worker part of parts casts.
func (v Viewer) RaysAngleRange(totalRays, part, parts int) []geometry.IndexRange {
	return v.FOV.GetRaysAngleRange(totalRays, part, parts)
}

// Scene is safe for concurrent use. Readers block writers, so mutations
// land between frames.
type Scene struct {
	mu       sync.RWMutex
	viewer   Viewer
	bounds   geometry.Bounds
	elements []element.Element
}

// New creates a scene. The elements slice is copied.
func New(bounds geometry.Bounds, viewer Viewer, elements []element.Element) *Scene {
	els := make([]element.Element, len(elements))
	copy(els, elements)
	return &Scene{viewer: viewer, bounds: bounds, elements: els}
}

// Viewer returns the current viewer.
func (s *Scene) Viewer() Viewer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.viewer
}

// Bounds returns the map extent.
func (s *Scene) Bounds() geometry.Bounds {
	return s.bounds
}

// SetViewer replaces the viewer.
func (s *Scene) SetViewer(v Viewer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.viewer = v
}

// AddElement registers another element.
func (s *Scene) AddElement(el element.Element) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.elements = append(s.elements, el)
}

// ReadElements calls fn with the viewer and elements under the read lock.
// fn must not keep the slice or call back into the scene's writers.
func (s *Scene) ReadElements(fn func(v Viewer, elements []element.Element)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.viewer, s.elements)
}

// Move turns the viewer by turn radians and then walks distance cells along
// the new heading. Movement along each axis is dropped if it would enter an
// occupied cell or leave the map. It returns the new viewer.
func (s *Scene) Move(distance, turn float64) Viewer {
	s.mu.Lock()
	defer s.mu.Unlock()

	if turn != 0 {
		s.viewer.FOV = s.viewer.FOV.Rotate(turn)
	}
	if distance == 0 {
		return s.viewer
	}

	heading := float64(s.viewer.Heading())
	pos := s.viewer.Position
	next := geometry.Coordinate{X: pos.X + distance*math.Cos(heading), Y: pos.Y}
	if s.free(pos, next) {
		pos = next
	}
	next = geometry.Coordinate{X: pos.X, Y: pos.Y + distance*math.Sin(heading)}
	if s.free(pos, next) {
		pos = next
	}
	s.viewer.Position = pos
	return s.viewer
}

// free reports whether the viewer can step from pos to next. The cell the
// viewer already stands in never blocks.
func (s *Scene) free(pos, next geometry.Coordinate) bool {
	cell := next.Cell()
	if !s.bounds.Contains(cell) {
		return false
	}
	if cell == pos.Cell() {
		return true
	}
	for _, el := range s.elements {
		if element.Contains(el, cell) {
			return false
		}
	}
	return true
}

// Tick reports the viewer position to observers and then advances animated
// elements by dt.
func (s *Scene) Tick(dt time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, el := range s.elements {
		if o, ok := el.(element.PositionObserver); ok {
			o.OnPositionUpdate(s.viewer.Position)
		}
	}
	for _, el := range s.elements {
		if a, ok := el.(element.Animated); ok {
			a.Update(dt)
		}
	}
}
