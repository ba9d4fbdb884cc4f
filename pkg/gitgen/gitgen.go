package gitgen

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/utkarsh5026/vhi/pkg/tree"
	"github.com/utkarsh5026/vhi/pkg/vhilog"
)

var logger = vhilog.With("component", "gitgen")

// ErrDestExists is returned when Options.DestDir already exists.
var ErrDestExists = errors.New("gitgen: destination already exists")

// Options configures a repository replay.
type Options struct {
	// SnapshotsRoot is the directory pkg/snapshot.LoadDirectories read
	// from: one subdirectory per snapshot name, holding that snapshot's
	// files.
	SnapshotsRoot string
	// DestDir is the repository to create. Must not already exist.
	DestDir string
	// AuthorName and AuthorEmail stamp every generated commit.
	AuthorName  string
	AuthorEmail string
}

// Generate replays instructionTrees (as produced by BuildInstructionTrees)
// into a fresh git repository at opts.DestDir, sourcing each commit's
// file content from opts.SnapshotsRoot.
func Generate(instructionTrees []*tree.Node[Instruction], opts Options) error {
	if _, err := os.Stat(opts.DestDir); err == nil {
		return fmt.Errorf("%s: %w", opts.DestDir, ErrDestExists)
	}

	repo, err := git.PlainInit(opts.DestDir, false)
	if err != nil {
		return fmt.Errorf("gitgen: init %s: %w", opts.DestDir, err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("gitgen: worktree: %w", err)
	}

	sig := signature(opts)
	if _, err := commitAll(repo, wt, "Initial commit", sig); err != nil {
		return fmt.Errorf("gitgen: initial commit: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		return fmt.Errorf("gitgen: head: %w", err)
	}
	mainBranch := head.Name().Short()

	logger.Info("replaying version tree", "dest", opts.DestDir, "main_branch", mainBranch, "roots", len(instructionTrees))

	for _, root := range instructionTrees {
		if err := executeTree(root, repo, wt, mainBranch, opts, sig); err != nil {
			return err
		}
	}

	return nil
}

func signature(opts Options) object.Signature {
	return object.Signature{Name: opts.AuthorName, Email: opts.AuthorEmail, When: commitTime}
}

// commitTime is fixed rather than time.Now() so replays of the same tree
// are byte-for-byte reproducible; callers that want real timestamps can
// layer that on by committing themselves instead of calling Generate.
var commitTime = time.Unix(0, 0).UTC()

func executeTree(node *tree.Node[Instruction], repo *git.Repository, wt *git.Worktree, origBranch string, opts Options, sig object.Signature) error {
	if err := checkoutBranch(wt, origBranch); err != nil {
		return err
	}

	var versionName, currBranch string
	switch node.Value.Kind {
	case CreateCommit:
		versionName, currBranch = node.Value.VersionName, origBranch
	case CreateBranch:
		if err := createBranch(repo, wt, node.Value.BranchName); err != nil {
			return err
		}
		versionName, currBranch = node.Value.VersionName, node.Value.BranchName
	}

	if err := copyVersion(opts.SnapshotsRoot, opts.DestDir, versionName); err != nil {
		return fmt.Errorf("gitgen: copy version %q: %w", versionName, err)
	}
	if _, err := commitAll(repo, wt, versionName, sig); err != nil {
		return fmt.Errorf("gitgen: commit %q: %w", versionName, err)
	}

	// The commit child (if any) is always children[0]; the rust source
	// this is grounded on executes children in reverse so the commit
	// child runs last, after every branch child has forked off this
	// same commit.
	for i := len(node.Children) - 1; i >= 0; i-- {
		if err := executeTree(node.Children[i], repo, wt, currBranch, opts, sig); err != nil {
			return err
		}
	}

	return nil
}

func checkoutBranch(wt *git.Worktree, branch string) error {
	return wt.Checkout(&git.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(branch),
	})
}

func createBranch(repo *git.Repository, wt *git.Worktree, branch string) error {
	head, err := repo.Head()
	if err != nil {
		return fmt.Errorf("gitgen: head before branch %q: %w", branch, err)
	}
	ref := plumbing.NewHashReference(plumbing.NewBranchReferenceName(branch), head.Hash())
	if err := repo.Storer.SetReference(ref); err != nil {
		return fmt.Errorf("gitgen: create branch %q: %w", branch, err)
	}
	return checkoutBranch(wt, branch)
}

func commitAll(repo *git.Repository, wt *git.Worktree, message string, sig object.Signature) (plumbing.Hash, error) {
	if _, err := wt.Add("."); err != nil {
		return plumbing.ZeroHash, fmt.Errorf("gitgen: stage: %w", err)
	}
	return wt.Commit(message, &git.CommitOptions{
		Author:            &sig,
		Committer:         &sig,
		AllowEmptyCommits: true,
	})
}

// copyVersion replaces destDir's tracked content (everything but .git)
// with a copy of snapshotsRoot/versionName, mirroring the teacher's
// working-copy-swap strategy for version replay.
func copyVersion(snapshotsRoot, destDir, versionName string) error {
	entries, err := os.ReadDir(destDir)
	if err != nil {
		return fmt.Errorf("read %s: %w", destDir, err)
	}
	for _, e := range entries {
		if e.Name() == ".git" {
			continue
		}
		if err := os.RemoveAll(filepath.Join(destDir, e.Name())); err != nil {
			return fmt.Errorf("clear %s: %w", e.Name(), err)
		}
	}

	return copyDir(filepath.Join(snapshotsRoot, versionName), destDir)
}

func copyDir(src, dst string) error {
	entries, err := os.ReadDir(src)
	if err != nil {
		return fmt.Errorf("read %s: %w", src, err)
	}
	for _, e := range entries {
		srcPath := filepath.Join(src, e.Name())
		dstPath := filepath.Join(dst, e.Name())
		if e.IsDir() {
			if err := os.MkdirAll(dstPath, 0o755); err != nil {
				return err
			}
			if err := copyDir(srcPath, dstPath); err != nil {
				return err
			}
			continue
		}
		if err := copyFile(srcPath, dstPath); err != nil {
			return err
		}
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, in)
	return err
}
