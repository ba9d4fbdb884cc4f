// Package treeio persists an inferred forest.DiffInfo tree to and from
// JSON, so a CLI invocation can save the result of an (expensive) compare
// pass and re-render or re-inspect it later without re-running inference.
package treeio

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/utkarsh5026/vhi/pkg/forest"
	"github.com/utkarsh5026/vhi/pkg/tree"
)

// record is the on-disk shape: a plain recursive struct with JSON tags,
// deliberately not reusing tree.Node[T] directly since json.Marshal has no
// trouble with generics here but a dedicated wire type keeps the on-disk
// format decoupled from in-memory generic plumbing that may change shape
// independently of what's persisted.
type record struct {
	Name       string   `json:"name"`
	Added      int      `json:"added"`
	Deleted    int      `json:"deleted"`
	Modified   int      `json:"modified"`
	Divergence float32  `json:"divergence"`
	Children   []record `json:"children,omitempty"`
}

func toRecord(n *tree.Node[forest.DiffInfo]) record {
	r := record{
		Name:       n.Value.Name,
		Added:      n.Value.Added,
		Deleted:    n.Value.Deleted,
		Modified:   n.Value.Modified,
		Divergence: n.Value.Divergence,
	}
	if len(n.Children) > 0 {
		r.Children = make([]record, len(n.Children))
		for i, c := range n.Children {
			r.Children[i] = toRecord(c)
		}
	}
	return r
}

func fromRecord(r record) *tree.Node[forest.DiffInfo] {
	n := &tree.Node[forest.DiffInfo]{
		Value: forest.DiffInfo{
			Name:       r.Name,
			Added:      r.Added,
			Deleted:    r.Deleted,
			Modified:   r.Modified,
			Divergence: r.Divergence,
		},
		Children: make([]*tree.Node[forest.DiffInfo], len(r.Children)),
	}
	for i, c := range r.Children {
		n.Children[i] = fromRecord(c)
	}
	return n
}

// Write encodes the tree as indented JSON to w.
func Write(w io.Writer, root *tree.Node[forest.DiffInfo]) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(toRecord(root)); err != nil {
		return fmt.Errorf("treeio: encode: %w", err)
	}
	return nil
}

// Read decodes a tree previously written by Write.
func Read(r io.Reader) (*tree.Node[forest.DiffInfo], error) {
	var rec record
	if err := json.NewDecoder(r).Decode(&rec); err != nil {
		return nil, fmt.Errorf("treeio: decode: %w", err)
	}
	return fromRecord(rec), nil
}

// Save writes the tree to a file at path, truncating it if it exists.
func Save(path string, root *tree.Node[forest.DiffInfo]) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("treeio: create %s: %w", path, err)
	}
	defer f.Close()
	return Write(f, root)
}

// Load reads a tree previously written by Save.
func Load(path string) (*tree.Node[forest.DiffInfo], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("treeio: open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}
