package main

import (
	"bufio"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/df07/go-weekend-pathtracer/pkg/output"
	"github.com/df07/go-weekend-pathtracer/pkg/renderer"
	"github.com/df07/go-weekend-pathtracer/pkg/scene"
)

type renderOptions struct {
	scene      string
	output     string
	format     string
	sequential bool
	verbose    bool

	width    int
	height   int
	aspect   float64
	samples  int
	depth    int
	seed     uint64
	workers  int
	tileSize int
}

func newRenderCmd() *cobra.Command {
	opts := &renderOptions{}
	defaults := renderer.DefaultSamplingConfig()

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a scene to an image",
		Long: `Render a built-in scene or a YAML scene file. Settings from the scene are used
unless overridden by an explicit flag. Without --output the image is written
to stdout as PPM; progress is logged to stderr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.scene, "scene", "s", "random", fmt.Sprintf("built-in scene (%s) or path to a YAML scene file", strings.Join(scene.BuiltinNames(), ", ")))
	flags.StringVarP(&opts.output, "output", "o", "-", "output file, - for stdout")
	flags.StringVarP(&opts.format, "format", "f", "", "image format: ppm, png or bmp (default: from the output extension, else ppm)")
	flags.BoolVar(&opts.sequential, "sequential", false, "render on a single goroutine, scanline by scanline")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	// Unset flags leave the scene's own settings in place
	flags.IntVarP(&opts.width, "width", "W", 0, "image width in pixels")
	flags.IntVarP(&opts.height, "height", "H", 0, "image height in pixels; follows width and aspect when unset")
	flags.Float64Var(&opts.aspect, "aspect", 0, "camera aspect ratio")
	flags.IntVar(&opts.samples, "samples", 0, "samples per pixel")
	flags.IntVar(&opts.depth, "depth", 0, "maximum bounces per path")
	flags.Uint64Var(&opts.seed, "seed", defaults.Seed, "random seed for sampling and scene layout")
	flags.IntVarP(&opts.workers, "workers", "j", 0, "parallel workers (0 = number of CPUs)")
	flags.IntVar(&opts.tileSize, "tile-size", 0, fmt.Sprintf("edge length of a tile of work (0 = %d)", renderer.DefaultTileSize))

	return cmd
}

// overridesFromFlags picks the values the user set explicitly. Everything
// else comes from the scene.
func overridesFromFlags(flags *pflag.FlagSet, opts *renderOptions) scene.Overrides {
	var o scene.Overrides
	if flags.Changed("width") {
		o.Width = &opts.width
	}
	if flags.Changed("height") {
		o.Height = &opts.height
	}
	if flags.Changed("aspect") {
		o.AspectRatio = &opts.aspect
	}
	if flags.Changed("samples") {
		o.SamplesPerPixel = &opts.samples
	}
	if flags.Changed("depth") {
		o.MaxDepth = &opts.depth
	}
	if flags.Changed("seed") {
		o.Seed = &opts.seed
	}
	if flags.Changed("workers") {
		o.NumWorkers = &opts.workers
	}
	if flags.Changed("tile-size") {
		o.TileSize = &opts.tileSize
	}
	return o
}

// createScene resolves a built-in scene name or a YAML scene file path
func createScene(name string, seed uint64) (*scene.Scene, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return scene.LoadFile(name)
	}
	return scene.Build(name, seed)
}

// resolveFormat prefers the explicit format, then the output extension
func resolveFormat(format, outputPath string) (output.Format, error) {
	if format != "" {
		return output.ParseFormat(format)
	}
	if outputPath == "" || outputPath == "-" {
		return output.FormatPPM, nil
	}
	return output.FormatFromPath(outputPath)
}

func runRender(cmd *cobra.Command, opts *renderOptions) error {
	logger, err := newLogger(opts.verbose)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()
	log := logger.Sugar()

	format, err := resolveFormat(opts.format, opts.output)
	if err != nil {
		return err
	}

	s, err := createScene(opts.scene, opts.seed)
	if err != nil {
		return err
	}
	overridesFromFlags(cmd.Flags(), opts).Apply(s)
	if err := s.Validate(); err != nil {
		return err
	}

	rt, err := renderer.NewRaytracer(s.World, s.Camera(), s.SamplingConfig, log)
	if err != nil {
		return err
	}
	rt.SetIntegrator(s.Integrator())

	log.Infow("Rendering scene",
		"scene", s.Name,
		"objects", s.World.Len(),
		"width", s.SamplingConfig.Width,
		"height", s.SamplingConfig.Height,
		"samples", s.SamplingConfig.SamplesPerPixel,
		"depth", s.SamplingConfig.MaxDepth,
		"seed", s.SamplingConfig.Seed)

	var (
		frame *renderer.Frame
		stats renderer.RenderStats
	)
	if opts.sequential {
		frame, stats, err = rt.RenderSequential(cmd.Context())
	} else {
		frame, stats, err = rt.Render(cmd.Context())
	}
	if err != nil {
		return err
	}

	log.Infow("Render completed",
		"duration", stats.Duration,
		"samples", stats.TotalSamples,
		"samplesPerSecond", fmt.Sprintf("%.0f", stats.SamplesPerSecond()),
		"workers", stats.Workers,
		"nonFinite", stats.NonFiniteSamples)

	if opts.output == "" || opts.output == "-" {
		writer := bufio.NewWriter(cmd.OutOrStdout())
		if err := output.Encode(writer, frame, format); err != nil {
			return fmt.Errorf("write image: %w", err)
		}
		return writer.Flush()
	}

	if err := output.Save(opts.output, frame, format); err != nil {
		return err
	}
	log.Infof("Render saved as %s", opts.output)
	return nil
}
