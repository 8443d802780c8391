package game

import (
	"context"

	"chosenoffset.com/gridcaster/internal/core/pipeline"
)

// FrameSource produces projected frames. *pipeline.Pipeline implements it.
type FrameSource interface {
	Frame(ctx context.Context) (*pipeline.Frame, error)
}

// Message represents an on-screen message that fades over time.
type Message struct {
	Text     string
	TimeLeft float64 // Seconds remaining
	MaxTime  float64 // Initial duration
}

// Stats counts frames for the HUD.
type Stats struct {
	Frames  int
	Dropped int
	Walls   int
}
