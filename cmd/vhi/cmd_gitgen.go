package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/utkarsh5026/vhi/pkg/gitgen"
	"github.com/utkarsh5026/vhi/pkg/treeio"
)

func newGitgenCmd() *cobra.Command {
	var authorName, authorEmail string

	cmd := &cobra.Command{
		Use:   "gitgen <tree.json> <snapshots-dir> <dest-repo>",
		Short: "Replay an inferred tree into a real git repository",
		Long: `gitgen is an optional, separately invoked collaborator: it is never called
by "vhi infer" itself. It walks the tree saved by "vhi infer" and
replays it into a fresh git repository at <dest-repo>, one commit per
snapshot, branching at every point a snapshot had more than one child.
<snapshots-dir> must be the same directory-mode corpus "vhi infer" was
run against, since each commit's file content is copied from there.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := treeio.Load(args[0])
			if err != nil {
				return fmt.Errorf("gitgen: %w", err)
			}

			trees, err := gitgen.BuildInstructionTrees(root)
			if err != nil {
				return fmt.Errorf("gitgen: %w", err)
			}

			err = gitgen.Generate(trees, gitgen.Options{
				SnapshotsRoot: args[1],
				DestDir:       args[2],
				AuthorName:    authorName,
				AuthorEmail:   authorEmail,
			})
			if err != nil {
				return fmt.Errorf("gitgen: %w", err)
			}

			fmt.Printf("replayed %s into %s\n", args[0], args[2])
			return nil
		},
	}

	cmd.Flags().StringVar(&authorName, "author-name", "vhi", "author/committer name stamped on every generated commit")
	cmd.Flags().StringVar(&authorEmail, "author-email", "vhi@localhost", "author/committer email stamped on every generated commit")

	return cmd
}
