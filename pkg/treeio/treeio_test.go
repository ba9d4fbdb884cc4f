package treeio

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/utkarsh5026/vhi/pkg/forest"
	"github.com/utkarsh5026/vhi/pkg/tree"
)

func sampleTree() *tree.Node[forest.DiffInfo] {
	root := tree.New(forest.DiffInfo{Name: "Empty"})
	child := tree.New(forest.DiffInfo{Name: "v1", Added: 3, Divergence: 6.1})
	grandchild := tree.New(forest.DiffInfo{Name: "v2", Modified: 1, Divergence: 1.02})
	child.Children = append(child.Children, grandchild)
	root.Children = append(root.Children, child)
	return root
}

func TestWriteRead_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleTree()))

	got, err := Read(&buf)
	require.NoError(t, err)
	require.True(t, tree.Equal(sampleTree(), got))
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tree.json")
	require.NoError(t, Save(path, sampleTree()))

	got, err := Load(path)
	require.NoError(t, err)
	require.True(t, tree.Equal(sampleTree(), got))
}

func TestWrite_ProducesIndentedJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleTree()))
	require.Contains(t, buf.String(), "\n  ")
}
