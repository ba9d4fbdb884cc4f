package main

import (
	"context"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/utkarsh5026/vhi/pkg/forest"
	"github.com/utkarsh5026/vhi/pkg/inference"
	"github.com/utkarsh5026/vhi/pkg/render"
	"github.com/utkarsh5026/vhi/pkg/snapshot"
	"github.com/utkarsh5026/vhi/pkg/tree"
	"github.com/utkarsh5026/vhi/pkg/treeio"
)

// inferFlags are newInferCmd's own flags, layered on top of rootFlags.
type inferFlags struct {
	fileMode  bool
	extension string
	output    string
	stat      bool
}

func newInferCmd(root *rootFlags) *cobra.Command {
	var flags inferFlags

	cmd := &cobra.Command{
		Use:   "infer <corpus-dir>",
		Short: "Infer a version-history tree from a corpus of snapshots",
		Long: `Infer reconstructs a plausible descent tree over a set of snapshots whose
true history is unknown.

In directory mode (the default) every subdirectory of <corpus-dir> is
treated as one snapshot, named after its directory name. In file mode
(--file-mode) every file under <corpus-dir> matching --ext is treated
as its own single-file snapshot instead.

Examples:
  vhi infer ./releases -o tree.json
  vhi infer ./submissions --file-mode --ext=py -o tree.json --stat`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfer(cmd.Context(), args[0], root, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.fileMode, "file-mode", false, "treat each matching file as a single-file snapshot")
	cmd.Flags().StringVar(&flags.extension, "ext", "", "file extension to match in --file-mode (required with --file-mode)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "tree.json", "path to write the inferred tree's JSON representation")
	cmd.Flags().BoolVar(&flags.stat, "stat", false, "print a per-edge added/deleted/modified/divergence table")

	return cmd
}

func runInfer(ctx context.Context, corpusDir string, root *rootFlags, flags inferFlags) error {
	if flags.fileMode && flags.extension == "" {
		return fmt.Errorf("infer: --ext is required with --file-mode")
	}

	var snapshots []snapshot.Snapshot
	var err error
	if flags.fileMode {
		snapshots, err = snapshot.LoadFiles(ctx, corpusDir, flags.extension)
	} else {
		snapshots, err = snapshot.LoadDirectories(ctx, corpusDir)
	}
	if err != nil {
		return fmt.Errorf("infer: load %s: %w", corpusDir, err)
	}
	if len(snapshots) == 0 {
		return fmt.Errorf("infer: no snapshots found under %s", corpusDir)
	}

	var lastDone, lastTotal int
	result, err := inference.Infer(ctx, snapshots, inference.Options{
		Parallel: !root.sequential,
		Progress: func(done, total int) {
			lastDone, lastTotal = done, total
		},
	})
	if err != nil {
		return fmt.Errorf("infer: %w", err)
	}
	if lastTotal > 0 {
		fmt.Fprintf(os.Stderr, "compared %d/%d pairs\n", lastDone, lastTotal)
	}

	if err := treeio.Save(flags.output, result.Tree); err != nil {
		return fmt.Errorf("infer: save tree: %w", err)
	}
	fmt.Printf("wrote %s (%d snapshots)\n", flags.output, len(snapshots)+1)

	if flags.stat {
		printStatTable(result)
	} else {
		fmt.Println(render.Render(result.Tree, render.Options{Color: true}))
	}

	return nil
}

func printStatTable(result *inference.Result) {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Snapshot", "Added", "Deleted", "Modified", "Divergence")

	tree.Walk(result.Tree, func(n *tree.Node[forest.DiffInfo]) {
		if n.Value.Name == snapshot.EmptyName {
			return
		}
		table.Append(
			n.Value.Name,
			fmt.Sprintf("%d", n.Value.Added),
			fmt.Sprintf("%d", n.Value.Deleted),
			fmt.Sprintf("%d", n.Value.Modified),
			fmt.Sprintf("%.2f", n.Value.Divergence),
		)
	})
	table.Render()
}
