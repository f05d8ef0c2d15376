package scene

import (
	"github.com/df07/go-weekend-pathtracer/pkg/core"
	"github.com/df07/go-weekend-pathtracer/pkg/geometry"
	"github.com/df07/go-weekend-pathtracer/pkg/integrator"
	"github.com/df07/go-weekend-pathtracer/pkg/renderer"
)

// Background is the sky gradient seen by rays that escape the scene
type Background struct {
	Top    core.Vec3
	Bottom core.Vec3
}

// Scene contains all the elements needed for rendering
type Scene struct {
	Name           string
	World          *geometry.HittableList
	CameraConfig   renderer.CameraConfig
	SamplingConfig renderer.SamplingConfig
	Background     *Background // nil means the default blue-white sky
}

// Integrator builds the path tracer for the scene's depth and background
func (s *Scene) Integrator() *integrator.PathTracingIntegrator {
	pt := integrator.NewPathTracingIntegrator(s.SamplingConfig.MaxDepth)
	if s.Background == nil {
		return pt
	}
	return pt.WithBackground(s.Background.Top, s.Background.Bottom)
}

// Camera builds the camera described by the scene
func (s *Scene) Camera() *renderer.Camera {
	return renderer.NewCamera(s.CameraConfig)
}

// Validate checks the camera and render settings together
func (s *Scene) Validate() error {
	return renderer.ValidateAll(s.CameraConfig, s.SamplingConfig)
}

// Overrides holds optional settings that replace those of a scene. Nil
// fields leave the scene value untouched.
type Overrides struct {
	Width           *int
	Height          *int
	AspectRatio     *float64
	SamplesPerPixel *int
	MaxDepth        *int
	Seed            *uint64
	NumWorkers      *int
	TileSize        *int
}

// Apply merges the overrides into the scene. The image height follows the
// camera aspect ratio unless it is given explicitly, in which case the
// aspect ratio follows the image unless that is given too.
func (o Overrides) Apply(s *Scene) {
	sampling := &s.SamplingConfig
	camera := &s.CameraConfig

	if o.AspectRatio != nil {
		camera.AspectRatio = *o.AspectRatio
	}
	if o.Width != nil {
		sampling.Width = *o.Width
	}

	switch {
	case o.Height != nil:
		sampling.Height = *o.Height
		if o.AspectRatio == nil && sampling.Height > 0 {
			camera.AspectRatio = float64(sampling.Width) / float64(sampling.Height)
		}
	case o.Width != nil || o.AspectRatio != nil:
		sampling.Height = renderer.HeightForAspect(sampling.Width, camera.AspectRatio)
	}

	if o.SamplesPerPixel != nil {
		sampling.SamplesPerPixel = *o.SamplesPerPixel
	}
	if o.MaxDepth != nil {
		sampling.MaxDepth = *o.MaxDepth
	}
	if o.Seed != nil {
		sampling.Seed = *o.Seed
	}
	if o.NumWorkers != nil {
		sampling.NumWorkers = *o.NumWorkers
	}
	if o.TileSize != nil {
		sampling.TileSize = *o.TileSize
	}
}
