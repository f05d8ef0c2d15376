package renderer

import (
	"errors"
	"fmt"
	"runtime"

	"go.uber.org/multierr"
)

// ErrInvalidConfig is wrapped by every configuration validation failure
var ErrInvalidConfig = errors.New("invalid render configuration")

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	Width           int    // Image width in pixels
	Height          int    // Image height in pixels
	SamplesPerPixel int    // Number of rays per pixel
	MaxDepth        int    // Maximum ray bounce depth
	Seed            uint64 // Base seed for the per-pixel random streams
	NumWorkers      int    // Number of parallel workers (0 = use CPU count)
	TileSize        int    // Edge length of a square work unit (0 = DefaultTileSize)
}

// DefaultTileSize is the tile edge used when none is configured
const DefaultTileSize = 16

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		Width:           400,
		Height:          225,
		SamplesPerPixel: 100,
		MaxDepth:        50,
		Seed:            42,
		NumWorkers:      0,
		TileSize:        DefaultTileSize,
	}
}

// HeightForAspect derives an image height from a width and aspect ratio
func HeightForAspect(width int, aspectRatio float64) int {
	if aspectRatio <= 0 {
		return 0
	}
	return max(1, int(float64(width)/aspectRatio))
}

// Validate rejects configurations that cannot be rendered. All problems are
// reported together; the returned error wraps ErrInvalidConfig.
func (c SamplingConfig) Validate() error {
	if err := c.problems(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// ValidateAll checks a camera and a sampling configuration in one pass
func ValidateAll(camera CameraConfig, sampling SamplingConfig) error {
	if err := multierr.Append(camera.Validate(), sampling.problems()); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

func (c SamplingConfig) problems() error {
	var err error
	if c.Width <= 0 {
		err = multierr.Append(err, fmt.Errorf("image width must be positive, got %d", c.Width))
	}
	if c.Height <= 0 {
		err = multierr.Append(err, fmt.Errorf("image height must be positive, got %d", c.Height))
	}
	if c.SamplesPerPixel <= 0 {
		err = multierr.Append(err, fmt.Errorf("samples per pixel must be positive, got %d", c.SamplesPerPixel))
	}
	if c.MaxDepth <= 0 {
		err = multierr.Append(err, fmt.Errorf("max depth must be positive, got %d", c.MaxDepth))
	}
	if c.NumWorkers < 0 {
		err = multierr.Append(err, fmt.Errorf("worker count must not be negative, got %d", c.NumWorkers))
	}
	if c.TileSize < 0 {
		err = multierr.Append(err, fmt.Errorf("tile size must not be negative, got %d", c.TileSize))
	}
	return err
}

// workers returns the effective worker count
func (c SamplingConfig) workers() int {
	if c.NumWorkers <= 0 {
		return runtime.NumCPU()
	}
	return c.NumWorkers
}

// tileSize returns the effective tile edge length
func (c SamplingConfig) tileSize() int {
	if c.TileSize <= 0 {
		return DefaultTileSize
	}
	return c.TileSize
}
