// Package config provides the viewer and renderer settings.
// Settings are loaded from a JSON file over built-in defaults.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"
	"time"

	"chosenoffset.com/gridcaster/internal/core/geometry"
	"chosenoffset.com/gridcaster/internal/core/projection"
	"chosenoffset.com/gridcaster/internal/core/raycast"
	"chosenoffset.com/gridcaster/internal/render/lighting"
	"chosenoffset.com/gridcaster/internal/world/palette"
)

// Config holds all startup settings
type Config struct {
	// Screen
	Resolution projection.Resolution `json:"resolution"`

	// Camera
	HorizontalFOVDegrees float64 `json:"horizontal_fov_degrees"`
	VerticalFOVDegrees   float64 `json:"vertical_fov_degrees"`
	WallHeight           float64 `json:"wall_height"` // In cells

	// Casting
	RayCount       int     `json:"ray_count"`        // Rays in the full 360° fan
	WorkerCount    int     `json:"worker_count"`     // 0 renders nothing
	MaxDistance    float64 `json:"max_distance"`     // 0 means the map edge
	MaxBoundaries  int     `json:"max_boundaries"`   // Per ray, 0 means unlimited
	FrameTimeoutMS int     `json:"frame_timeout_ms"` // 0 waits forever

	// Movement
	MoveSpeed        float64 `json:"move_speed"`         // Cells per second
	TurnSpeedDegrees float64 `json:"turn_speed_degrees"` // Degrees per second

	// Backdrop, as color names or hex
	CeilingColor string `json:"ceiling_color"`
	FloorColor   string `json:"floor_color"`

	// Lighting
	AmbientLight float64 `json:"ambient_light"` // 0 to 1; 1 disables shading
	LightRadius  float64 `json:"light_radius"`  // Viewer light reach in cells, 0 is off
}

// DefaultConfig returns settings for a 640x400 window
func DefaultConfig() *Config {
	return &Config{
		Resolution:           projection.Resolution{Width: 640, Height: 400},
		HorizontalFOVDegrees: 90,
		VerticalFOVDegrees:   60,
		WallHeight:           1,
		RayCount:             2048,
		WorkerCount:          4,
		MaxDistance:          0,
		MaxBoundaries:        8,
		FrameTimeoutMS:       100,
		MoveSpeed:            3,
		TurnSpeedDegrees:     120,
		CeilingColor:         "midnightblue",
		FloorColor:           "dimgray",
		AmbientLight:         0.35,
		LightRadius:          12,
	}
}

// LoadConfig loads settings from a JSON file. A missing file yields the
// defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		// Return defaults if file doesn't exist
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	config := DefaultConfig() // Start with defaults
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return config, nil
}

// Validate checks the settings are usable
func (c *Config) Validate() error {
	if c.Resolution.Width <= 0 || c.Resolution.Height <= 0 {
		return fmt.Errorf("invalid resolution: %dx%d", c.Resolution.Width, c.Resolution.Height)
	}
	if c.HorizontalFOVDegrees <= 0 || c.HorizontalFOVDegrees >= 360 {
		return fmt.Errorf("horizontal fov must be in (0, 360), got %v", c.HorizontalFOVDegrees)
	}
	if c.VerticalFOVDegrees <= 0 || c.VerticalFOVDegrees >= 180 {
		return fmt.Errorf("vertical fov must be in (0, 180), got %v", c.VerticalFOVDegrees)
	}
	if c.WallHeight <= 0 {
		return fmt.Errorf("wall height must be positive, got %v", c.WallHeight)
	}
	if c.RayCount < 0 || c.WorkerCount < 0 || c.MaxBoundaries < 0 || c.FrameTimeoutMS < 0 {
		return errors.New("counts and timeouts must not be negative")
	}
	if c.MaxDistance < 0 || c.MoveSpeed < 0 || c.TurnSpeedDegrees < 0 {
		return errors.New("distances and speeds must not be negative")
	}
	if c.AmbientLight < 0 || c.AmbientLight > 1 {
		return fmt.Errorf("ambient light must be between 0 and 1, got %v", c.AmbientLight)
	}
	if c.LightRadius < 0 {
		return fmt.Errorf("light radius must not be negative, got %v", c.LightRadius)
	}
	if _, err := palette.ParseColor(c.CeilingColor); err != nil {
		return fmt.Errorf("ceiling color: %w", err)
	}
	if _, err := palette.ParseColor(c.FloorColor); err != nil {
		return fmt.Errorf("floor color: %w", err)
	}
	return nil
}

// Projector returns the projection settings
func (c *Config) Projector() projection.Projector {
	return projection.Projector{
		Resolution:  c.Resolution,
		VerticalFOV: c.VerticalFOVDegrees * math.Pi / 180,
		WallHeight:  c.WallHeight,
	}
}

// FieldOfView returns the horizontal field of view centered on heading
func (c *Config) FieldOfView(heading geometry.Radians) geometry.Angle {
	return geometry.AngleAround(heading, c.HorizontalFOVDegrees*math.Pi/180)
}

// Caster returns the ray caster for a map of the given size
func (c *Config) Caster(bounds geometry.Bounds) raycast.Caster {
	return raycast.Caster{Bounds: bounds, MaxDistance: c.MaxDistance, MaxBoundaries: c.MaxBoundaries}
}

// Backdrop returns the ceiling and floor colors. Call Validate first.
func (c *Config) Backdrop() (ceiling, floor color.RGBA) {
	ceiling, _ = palette.ParseColor(c.CeilingColor)
	floor, _ = palette.ParseColor(c.FloorColor)
	return ceiling, floor
}

// Lighting returns the wall shading, or nil when walls are drawn fully lit
func (c *Config) Lighting() *lighting.Manager {
	if c.AmbientLight >= 1 {
		return nil
	}
	return lighting.NewManager(c.AmbientLight, c.LightRadius)
}

// FrameTimeout returns the per-frame deadline
func (c *Config) FrameTimeout() time.Duration {
	return time.Duration(c.FrameTimeoutMS) * time.Millisecond
}
