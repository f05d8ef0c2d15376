package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/df07/go-weekend-pathtracer/pkg/scene"
)

func newScenesCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "scenes",
		Short: "List built-in scenes and YAML scene files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := scene.ListSceneFiles(dir)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "SCENE\tNAME\tDESCRIPTION")
			for _, info := range append(scene.ListBuiltinScenes(), files...) {
				fmt.Fprintf(w, "%s\t%s\t%s\n", info.ID, info.DisplayName, info.Description)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", "scenes", "directory to scan for YAML scene files")
	return cmd
}
