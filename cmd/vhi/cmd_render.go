package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/utkarsh5026/vhi/pkg/render"
	"github.com/utkarsh5026/vhi/pkg/treeio"
)

func newRenderCmd() *cobra.Command {
	var stat bool
	var noColor bool

	cmd := &cobra.Command{
		Use:   "render <tree.json>",
		Short: "Render a previously saved inferred tree as a label tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := treeio.Load(args[0])
			if err != nil {
				return fmt.Errorf("render: %w", err)
			}
			fmt.Println(render.Render(root, render.Options{Stat: stat, Color: !noColor}))
			return nil
		},
	}

	cmd.Flags().BoolVar(&stat, "stat", false, "append added/deleted/modified/divergence to each node")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable ANSI styling")

	return cmd
}
