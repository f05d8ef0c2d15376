package renderer

import (
	"context"
	"fmt"
	"image"
	"time"

	"go.uber.org/zap"

	"github.com/df07/go-weekend-pathtracer/pkg/core"
	"github.com/df07/go-weekend-pathtracer/pkg/integrator"
)

// Raytracer handles the rendering process. The world, camera and integrator
// are only read while rendering, so one Raytracer is shared by all workers.
type Raytracer struct {
	world      core.Hittable
	camera     *Camera
	integrator integrator.Integrator
	config     SamplingConfig
	logger     core.Logger
}

// NewRaytracer creates a new raytracer after validating config.
// A nil logger discards all output.
func NewRaytracer(world core.Hittable, camera *Camera, config SamplingConfig, logger core.Logger) (*Raytracer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if world == nil {
		return nil, fmt.Errorf("%w: scene has no world", ErrInvalidConfig)
	}
	if camera == nil {
		return nil, fmt.Errorf("%w: scene has no camera", ErrInvalidConfig)
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	return &Raytracer{
		world:      world,
		camera:     camera,
		integrator: integrator.NewPathTracingIntegrator(config.MaxDepth),
		config:     config,
		logger:     logger,
	}, nil
}

// SetIntegrator replaces the light transport algorithm
func (rt *Raytracer) SetIntegrator(integratorInst integrator.Integrator) {
	rt.integrator = integratorInst
}

// samplePixel takes all samples for the pixel in column x of frame row y.
// It returns the number of samples that had to be discarded.
func (rt *Raytracer) samplePixel(x, y int, ps *PixelStats) int {
	width, height := rt.config.Width, rt.config.Height

	// Image space counts rows from the bottom, the frame from the top
	j := height - 1 - y
	sampler := core.NewPixelSampler(rt.config.Seed, y*width+x)

	uDenominator := float64(max(width-1, 1))
	vDenominator := float64(max(height-1, 1))

	nonFinite := 0
	for sample := 0; sample < rt.config.SamplesPerPixel; sample++ {
		// Convert pixel coordinates to normalized coordinates with jitter
		jitter := sampler.Get2D()
		s := (float64(x) + jitter.X) / uDenominator
		t := (float64(j) + jitter.Y) / vDenominator

		ray := rt.camera.GetRay(s, t, sampler)
		color := rt.integrator.RayColor(ray, rt.world, sampler)

		// Keep NaNs from degenerate geometry out of the average
		if !color.IsFinite() {
			nonFinite++
			color = core.Vec3{}
		}
		ps.AddSample(color)
	}

	return nonFinite
}

// RenderBounds renders the pixels within bounds into frame. Different bounds
// touch disjoint pixels, so concurrent calls on non-overlapping tiles are safe.
func (rt *Raytracer) RenderBounds(bounds image.Rectangle, frame *Frame) RenderStats {
	stats := RenderStats{TotalPixels: bounds.Dx() * bounds.Dy()}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			stats.NonFiniteSamples += rt.samplePixel(x, y, frame.At(x, y))
		}
	}

	stats.TotalSamples = stats.TotalPixels * rt.config.SamplesPerPixel
	return stats
}

// RenderSequential renders the whole image on the calling goroutine.
// ctx is checked before every scanline.
func (rt *Raytracer) RenderSequential(ctx context.Context) (*Frame, RenderStats, error) {
	startTime := time.Now()
	frame := NewFrame(rt.config.Width, rt.config.Height)
	stats := RenderStats{Workers: 1}

	for y := 0; y < rt.config.Height; y++ {
		if err := ctx.Err(); err != nil {
			stats.Duration = time.Since(startTime)
			return nil, stats, fmt.Errorf("render aborted: %w", err)
		}
		rt.logger.Debugf("Scanlines remaining: %d", rt.config.Height-y)
		stats.merge(rt.RenderBounds(image.Rect(0, y, rt.config.Width, y+1), frame))
	}

	stats.Duration = time.Since(startTime)
	return frame, stats, nil
}

// Render renders the image with a pool of workers. Tiles finish in any
// order; the returned frame is indexed by pixel, so the output is identical
// to RenderSequential.
func (rt *Raytracer) Render(ctx context.Context) (*Frame, RenderStats, error) {
	startTime := time.Now()
	frame := NewFrame(rt.config.Width, rt.config.Height)
	tiles := NewTileGrid(rt.config.Width, rt.config.Height, rt.config.tileSize())
	progress := NewProgress(rt.config.Width * rt.config.Height)

	workerPool := NewWorkerPool(ctx, rt, progress, len(tiles), rt.config.workers())
	workerPool.Start()

	rt.logger.Infof("Rendering %dx%d, %d samples/pixel, max depth %d, %d tiles on %d workers",
		rt.config.Width, rt.config.Height, rt.config.SamplesPerPixel, rt.config.MaxDepth,
		len(tiles), workerPool.GetNumWorkers())

	for taskID, tile := range tiles {
		workerPool.SubmitTask(TileTask{
			Tile:   tile,
			TaskID: taskID,
			Frame:  frame,
		})
	}

	stats := RenderStats{Workers: workerPool.GetNumWorkers()}
	var renderErr error
	nextReport := 0.1

	for i := 0; i < len(tiles); i++ {
		result, ok := workerPool.GetResult()
		if !ok {
			renderErr = fmt.Errorf("worker pool closed unexpectedly")
			break
		}
		if result.Error != nil {
			if renderErr == nil {
				renderErr = result.Error
			}
			continue
		}
		stats.merge(result.Stats)

		if fraction := progress.Fraction(); fraction >= nextReport {
			rt.logger.Infof("Progress: %d/%d pixels (%.0f%%)", progress.Done(), progress.Total(), fraction*100)
			for nextReport <= fraction {
				nextReport += 0.1
			}
		}
	}

	workerPool.Stop()
	stats.Duration = time.Since(startTime)

	if renderErr != nil {
		return nil, stats, fmt.Errorf("render aborted: %w", renderErr)
	}
	if stats.NonFiniteSamples > 0 {
		rt.logger.Infof("Discarded %d non-finite samples", stats.NonFiniteSamples)
	}

	return frame, stats, nil
}
