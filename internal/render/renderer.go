// Package render abstracts the drawing backend so the game loop can run
// against a window (ebiten) or an offscreen raster (gg).
package render

import (
	"errors"
	"image"
	"image/color"
)

// ErrTerminate is returned from Game.Update to end the game loop normally.
var ErrTerminate = errors.New("render: terminate")

// Point is a vertex in pixel space, y growing downward.
type Point struct {
	X, Y float32
}

// Renderer is the drawing interface the game depends on. Backends implement
// it on top of their own image type.
type Renderer interface {
	// NewImage creates an offscreen surface.
	NewImage(width, height int) Image

	// FillPolygon fills the closed polygon through pts.
	FillPolygon(dst Image, pts []Point, clr color.Color)

	// FillRect fills an axis-aligned rectangle.
	FillRect(dst Image, x, y, width, height float32, clr color.Color)
}

// TextDrawer is implemented by renderers that can print debug text.
type TextDrawer interface {
	DrawText(dst Image, text string, x, y int)
}

// Image represents a renderable image surface that can be drawn to.
type Image interface {
	// Properties
	Bounds() image.Rectangle
	Size() (width, height int)

	// Fill operations
	Fill(clr color.Color)
	Clear()

	// Resource management
	Dispose()
}

// InputManager handles keyboard input.
type InputManager interface {
	IsKeyPressed(key Key) bool
	IsKeyJustPressed(key Key) bool
}

// Key represents a keyboard key.
type Key int

// Key constants for the keys the viewer uses
const (
	KeyW Key = iota
	KeyA
	KeyS
	KeyD
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyTab // HUD toggle
	KeyEscape
	KeyL // Light toggle
)

// Game represents the game interface that the engine will call.
type Game interface {
	// Update updates the game logic. It is called every tick (typically 60 times per second).
	Update() error

	// Draw draws the game screen. It is called every frame.
	Draw(screen Image)

	// Layout accepts the outside size (e.g., window size) and returns the logical screen size.
	Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int)
}

// Engine represents the game engine that manages the game loop and window.
type Engine interface {
	// SetWindowSize sets the window size in pixels.
	SetWindowSize(width, height int)

	// SetWindowTitle sets the window title.
	SetWindowTitle(title string)

	// RunGame runs the game loop with the provided game.
	// This is a blocking call that runs until the game ends.
	RunGame(game Game) error
}
