package snapshot

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string, content []byte) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, content, 0o644))
}

func TestLoadDirectories_NamesAndFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "v1", "a.txt"), []byte("hello\n"))
	writeFile(t, filepath.Join(root, "v1", "nested", "b.txt"), []byte("world\n"))
	writeFile(t, filepath.Join(root, "v2", "a.txt"), []byte("hello again\n"))

	snaps, err := LoadDirectories(context.Background(), root)
	require.NoError(t, err)
	require.Len(t, snaps, 2)

	require.Equal(t, "v1", snaps[0].Name)
	require.Equal(t, "v2", snaps[1].Name)

	require.Contains(t, snaps[0].Files, "a.txt")
	require.Contains(t, snaps[0].Files, "nested/b.txt")
	require.True(t, snaps[0].Files["a.txt"].IsText)
	require.Equal(t, "hello\n", snaps[0].Files["a.txt"].Text)
}

func TestLoadDirectories_NonTextSentinel(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "v1", "binary.dat"), []byte{0xff, 0xfe, 0x00, 0xd8})

	snaps, err := LoadDirectories(context.Background(), root)
	require.NoError(t, err)
	require.Len(t, snaps, 1)

	content := snaps[0].Files["binary.dat"]
	require.False(t, content.IsText)
	require.Equal(t, "", content.TextOf())
}

func TestLoadFiles_PseudoFileMain(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "sub", "release-1.txt"), []byte("one\n"))
	writeFile(t, filepath.Join(root, "release-2.txt"), []byte("two\n"))
	writeFile(t, filepath.Join(root, "ignored.md"), []byte("skip me\n"))

	snaps, err := LoadFiles(context.Background(), root, ".txt")
	require.NoError(t, err)
	require.Len(t, snaps, 2)

	for _, s := range snaps {
		require.Contains(t, s.Files, "main")
	}
}
