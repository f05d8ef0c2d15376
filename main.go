package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

const version = "1.0.0"

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pathtracer",
		Short: "A Monte Carlo path tracer for sphere scenes",
		Long: `pathtracer renders scenes of spheres with diffuse, metal and glass materials
under a sky gradient. Images are written as ASCII PPM by default, or as PNG
or BMP, and scenes come either built in or from YAML files.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newRenderCmd())
	rootCmd.AddCommand(newScenesCmd())
	return rootCmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
