// Package gitgen is the optional collaborator that replays an inferred
// forest.DiffInfo tree into a real git repository: one commit per
// snapshot, one branch per point where a snapshot had more than one
// child.
package gitgen

import (
	"fmt"

	"github.com/utkarsh5026/vhi/pkg/forest"
	"github.com/utkarsh5026/vhi/pkg/snapshot"
	"github.com/utkarsh5026/vhi/pkg/tree"
)

// Kind distinguishes the two instructions a version tree compiles down
// to: stay on the current branch and commit, or fork a new branch first.
type Kind int

const (
	CreateCommit Kind = iota
	CreateBranch
)

// Instruction is one step of replaying the version tree into git: which
// snapshot's content to commit, under which branch name.
type Instruction struct {
	Kind        Kind
	VersionName string
	BranchName  string // only meaningful when Kind == CreateBranch
}

type depthTagged struct {
	depth    int
	commit   string
	branch   string
	children []*tree.Node[Instruction]
}

// BuildInstructionTrees compiles an inferred version tree (rooted at the
// synthetic Empty snapshot) into one instruction tree per child of Empty.
// Within each, the child with the deepest remaining subtree stays on the
// same branch as its parent commit (a linear run of commits); every other
// child starts a new branch named after the leaf that ends its own deepest
// chain of descendants (the child's own name when it is a leaf). This keeps the
// branch count proportional to the tree's actual fork points rather than
// creating one branch per snapshot.
func BuildInstructionTrees(root *tree.Node[forest.DiffInfo]) ([]*tree.Node[Instruction], error) {
	if root.Value.Name != snapshot.EmptyName {
		return nil, fmt.Errorf("gitgen: version tree root is %q, want %q", root.Value.Name, snapshot.EmptyName)
	}

	trees := make([]*tree.Node[Instruction], 0, len(root.Children))
	for _, child := range root.Children {
		tagged := compile(child)
		trees = append(trees, &tree.Node[Instruction]{
			Value:    Instruction{Kind: CreateBranch, VersionName: tagged.commit, BranchName: tagged.branch},
			Children: tagged.children,
		})
	}
	return trees, nil
}

func compile(node *tree.Node[forest.DiffInfo]) depthTagged {
	if len(node.Children) == 0 {
		name := node.Value.Name
		return depthTagged{depth: 0, commit: name, branch: name}
	}

	tagged := make([]depthTagged, len(node.Children))
	for i, c := range node.Children {
		tagged[i] = compile(c)
	}

	deepest := 0
	for i := 1; i < len(tagged); i++ {
		if tagged[i].depth > tagged[deepest].depth {
			deepest = i
		}
	}
	next := tagged[deepest]

	children := make([]*tree.Node[Instruction], 0, len(tagged))
	children = append(children, &tree.Node[Instruction]{
		Value:    Instruction{Kind: CreateCommit, VersionName: next.commit},
		Children: next.children,
	})
	for i, t := range tagged {
		if i == deepest {
			continue
		}
		children = append(children, &tree.Node[Instruction]{
			Value:    Instruction{Kind: CreateBranch, VersionName: t.commit, BranchName: t.branch},
			Children: t.children,
		})
	}

	return depthTagged{
		depth:    next.depth + 1,
		commit:   node.Value.Name,
		branch:   next.branch,
		children: children,
	}
}
