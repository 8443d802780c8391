package game

import (
	"chosenoffset.com/gridcaster/internal/config"
	"chosenoffset.com/gridcaster/internal/core/geometry"
	"chosenoffset.com/gridcaster/internal/core/pipeline"
	"chosenoffset.com/gridcaster/internal/world/maploader"
	"chosenoffset.com/gridcaster/internal/world/scene"
)

// NewScene places the viewer at the map's spawn point.
func NewScene(cfg *config.Config, m *maploader.Map) *scene.Scene {
	viewer := scene.Viewer{Position: m.Spawn(), FOV: cfg.FieldOfView(m.Heading())}
	return scene.New(m.Bounds(), viewer, m.Elements())
}

// NewPipeline starts the casting workers for sc. The caller closes it.
func NewPipeline(cfg *config.Config, sc *scene.Scene) *pipeline.Pipeline {
	return pipeline.New(sc, geometry.GenerateAllRays(cfg.RayCount), pipeline.Options{
		Workers:   cfg.WorkerCount,
		Caster:    cfg.Caster(sc.Bounds()),
		Projector: cfg.Projector(),
		Timeout:   cfg.FrameTimeout(),
	})
}
