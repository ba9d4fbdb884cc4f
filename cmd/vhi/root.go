package main

import (
	"log/slog"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/utkarsh5026/vhi/pkg/vhilog"
)

// rootFlags are the persistent flags shared by every subcommand.
type rootFlags struct {
	workers    int
	sequential bool
	verbose    bool
}

func newRootCmd() *cobra.Command {
	var flags rootFlags

	cmd := &cobra.Command{
		Use:   "vhi",
		Short: "Reconstruct a plausible version-history tree from unordered snapshots",
		Long: `vhi infers a directed "descends from" tree over a set of codebase or file
snapshots whose true history is unknown: forks whose merge history was
lost, a pile of zipped releases, student submissions, or assorted
backups.

It works by pairwise-diffing every snapshot, collapsing each diff into
two asymmetric divergence scores (adding a file is cheaper than
deleting one), and extracting a minimum spanning arborescence rooted at
a synthetic empty snapshot.

Examples:
  # Infer a tree from one subdirectory per snapshot
  vhi infer ./releases -o tree.json

  # Infer a tree from individual files of one extension
  vhi infer ./submissions --file-mode --ext=py -o tree.json

  # Render a previously saved tree
  vhi render tree.json --stat

  # Replay an inferred tree into a real git repository
  vhi gitgen tree.json ./releases ./out-repo`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if flags.verbose {
				vhilog.SetLevel(slog.LevelDebug)
			}
			if flags.workers > 0 {
				runtime.GOMAXPROCS(flags.workers)
			}
			return nil
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().IntVar(&flags.workers, "workers", 0,
		"max concurrent pair comparisons (0 = GOMAXPROCS)")
	cmd.PersistentFlags().BoolVar(&flags.sequential, "sequential", false,
		"disable the parallel comparison driver")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false,
		"enable debug-level structured logging")

	cmd.AddCommand(newInferCmd(&flags))
	cmd.AddCommand(newRenderCmd())
	cmd.AddCommand(newGitgenCmd())

	return cmd
}
