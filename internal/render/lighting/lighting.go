// Package lighting shades wall colors by their distance from the viewer's
// light.
package lighting

import (
	"image/color"
	"math"
)

// LightSource is a light carried by the viewer
type LightSource struct {
	Radius    float64    // Cells until the light fades out
	Intensity float64    // 0.0 to 1.0 at the viewer
	Color     color.RGBA // Tint; white leaves hues alone
}

// Manager combines ambient light with the viewer's light
type Manager struct {
	ambientLight  float64 // 0.0 = pitch black, 1.0 = fully lit
	playerLight   LightSource
	playerLightOn bool
}

// NewManager creates a lighting manager with the given ambient level and a
// white viewer light of the given radius. A radius of zero leaves the light
// off.
func NewManager(ambient, radius float64) *Manager {
	return &Manager{
		ambientLight: clamp(ambient),
		playerLight: LightSource{
			Radius:    radius,
			Intensity: 1,
			Color:     color.RGBA{255, 255, 255, 255},
		},
		playerLightOn: radius > 0,
	}
}

// SetAmbientLight sets the global ambient light level
func (m *Manager) SetAmbientLight(level float64) {
	m.ambientLight = clamp(level)
}

// GetAmbientLight returns the current ambient light level
func (m *Manager) GetAmbientLight() float64 {
	return m.ambientLight
}

// SetPlayerLight configures the viewer's light
func (m *Manager) SetPlayerLight(light LightSource) {
	m.playerLight = light
}

// EnablePlayerLight turns the viewer's light on or off
func (m *Manager) EnablePlayerLight(enabled bool) {
	m.playerLightOn = enabled
}

// IsPlayerLightOn returns whether the viewer's light is on
func (m *Manager) IsPlayerLightOn() bool {
	return m.playerLightOn
}

// Level returns the light level at distance cells from the viewer. The
// viewer's light falls off linearly to zero at its radius.
func (m *Manager) Level(distance float64) float64 {
	level := m.ambientLight
	l := m.playerLight
	if m.playerLightOn && l.Radius > 0 && distance < l.Radius {
		level += l.Intensity * (1 - math.Max(distance, 0)/l.Radius)
	}
	return clamp(level)
}

// Shade returns c lit at distance cells from the viewer. Alpha is kept.
func (m *Manager) Shade(c color.RGBA, distance float64) color.RGBA {
	ambient := m.ambientLight
	light := m.Level(distance) - ambient
	tint := m.playerLight.Color

	channel := func(v, t uint8) uint8 {
		lit := float64(v) * (ambient + light*float64(t)/255)
		return uint8(math.Round(math.Min(lit, 255)))
	}
	return color.RGBA{
		R: channel(c.R, tint.R),
		G: channel(c.G, tint.G),
		B: channel(c.B, tint.B),
		A: c.A,
	}
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
