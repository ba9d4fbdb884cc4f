// Package render prints an inferred forest.DiffInfo tree as a colored,
// box-drawing indented listing, one line per snapshot.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/utkarsh5026/vhi/pkg/forest"
	"github.com/utkarsh5026/vhi/pkg/tree"
)

// Box-drawing characters for the tree's branch lines.
const (
	branchTee  = "├── "
	branchLast = "└── "
	branchBar  = "│   "
	branchGap  = "    "
)

// Node markers.
const (
	markerRoot = "◆"
	markerNode = "●"
)

// depthColors cycles by tree depth, the same way the teacher's commit
// graph renderer cycles colors by DAG lane.
var depthColors = []lipgloss.Color{
	lipgloss.Color("#00D7FF"), // Cyan
	lipgloss.Color("#AF87FF"), // Purple
	lipgloss.Color("#00FF87"), // Green
	lipgloss.Color("#FFD700"), // Gold
	lipgloss.Color("#FF5F87"), // Pink
	lipgloss.Color("#5FD7FF"), // Light Blue
}

// Options configures Render.
type Options struct {
	// Stat, if true, appends each non-root node's added/deleted/modified
	// file counts and divergence score after its name.
	Stat bool
	// Color disables lipgloss styling entirely when false, for output
	// piped somewhere that doesn't understand ANSI.
	Color bool
}

func colorAt(depth int) lipgloss.Color {
	return depthColors[depth%len(depthColors)]
}

func colorize(enabled bool, text string, color lipgloss.Color) string {
	if !enabled {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}

// Render renders the tree rooted at root as a single multi-line string.
func Render(root *tree.Node[forest.DiffInfo], opts Options) string {
	var out strings.Builder
	writeNode(&out, root, "", true, 0, opts)
	return out.String()
}

func writeNode(out *strings.Builder, n *tree.Node[forest.DiffInfo], prefix string, isRoot bool, depth int, opts Options) {
	marker := markerNode
	if isRoot {
		marker = markerRoot
	}
	color := colorAt(depth)

	line := prefix + colorize(opts.Color, marker, color) + " " + n.Value.Name
	if opts.Stat && !isRoot {
		line += " " + colorize(opts.Color, statSuffix(n.Value), lipgloss.Color("#808080"))
	}
	out.WriteString(line)
	out.WriteString("\n")

	for i, c := range n.Children {
		writeChild(out, c, prefix, i == len(n.Children)-1, depth+1, opts)
	}
}

// writeChild handles one child's own line plus its prefix bookkeeping for
// its descendants, so the branch lines drawn for grandchildren correctly
// continue (│) or stop (blank) beneath a sibling that still has more
// entries to come.
func writeChild(out *strings.Builder, n *tree.Node[forest.DiffInfo], parentPrefix string, isLast bool, depth int, opts Options) {
	connector := branchTee
	continuation := branchBar
	if isLast {
		connector = branchLast
		continuation = branchGap
	}

	color := colorAt(depth)
	line := parentPrefix + connector + colorize(opts.Color, markerNode, color) + " " + n.Value.Name
	if opts.Stat {
		line += " " + colorize(opts.Color, statSuffix(n.Value), lipgloss.Color("#808080"))
	}
	out.WriteString(line)
	out.WriteString("\n")

	childPrefix := parentPrefix + continuation
	for i, c := range n.Children {
		writeChild(out, c, childPrefix, i == len(n.Children)-1, depth+1, opts)
	}
}

func statSuffix(info forest.DiffInfo) string {
	return fmt.Sprintf("(+%d -%d ~%d, %.2f)", info.Added, info.Deleted, info.Modified, info.Divergence)
}
