package snapdiff

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/utkarsh5026/vhi/pkg/snapshot"
)

func textSnapshot(name string, files map[string]string) snapshot.Snapshot {
	contentMap := make(map[string]snapshot.Content, len(files))
	for path, text := range files {
		contentMap[path] = snapshot.Content{Text: text, IsText: true}
	}
	return snapshot.Snapshot{Name: name, Files: contentMap}
}

func TestDiff_ClassifiesEveryFile(t *testing.T) {
	old := textSnapshot("old", map[string]string{
		"modified": "ok_code\n",
		"deleted":  "bad_code\n",
	})
	new := textSnapshot("new", map[string]string{
		"modified": "better_code\n",
		"added":    "good_code\n",
	})

	d := Diff(old, new)

	require.Len(t, d.Added, 1)
	require.Equal(t, "added", d.Added[0].Path)
	require.Len(t, d.Added[0].Changes, 1)

	require.Len(t, d.Deleted, 1)
	require.Equal(t, "deleted", d.Deleted[0].Path)
	require.Len(t, d.Deleted[0].Changes, 1)

	require.Len(t, d.Modified, 1)
	require.Equal(t, "modified", d.Modified[0].Path)
	require.Len(t, d.Modified[0].Changes, 2)
}

func TestDiff_IdenticalFilesAreOmitted(t *testing.T) {
	old := textSnapshot("old", map[string]string{"same.txt": "identical\n"})
	new := textSnapshot("new", map[string]string{"same.txt": "identical\n"})

	d := Diff(old, new)

	require.Empty(t, d.Added)
	require.Empty(t, d.Deleted)
	require.Empty(t, d.Modified)
}

func TestDiff_NonTextSentinelTreatedAsEmpty(t *testing.T) {
	old := snapshot.Snapshot{Name: "old", Files: map[string]snapshot.Content{
		"bin.dat": {IsText: false},
	}}
	new := snapshot.Snapshot{Name: "new", Files: map[string]snapshot.Content{
		"bin.dat": {IsText: false},
	}}

	d := Diff(old, new)
	require.Empty(t, d.Modified)
}

func TestDiff_RenameIsDeletePlusAdd(t *testing.T) {
	old := textSnapshot("old", map[string]string{"old_name.txt": "content\n"})
	new := textSnapshot("new", map[string]string{"new_name.txt": "content\n"})

	d := Diff(old, new)

	require.Len(t, d.Deleted, 1)
	require.Equal(t, "old_name.txt", d.Deleted[0].Path)
	require.Len(t, d.Added, 1)
	require.Equal(t, "new_name.txt", d.Added[0].Path)
}

func TestDiff_EveryPathAccountedForExactlyOnce(t *testing.T) {
	old := textSnapshot("old", map[string]string{
		"a": "1\n", "b": "2\n", "c": "3\n",
	})
	new := textSnapshot("new", map[string]string{
		"a": "1\n", "b": "2b\n", "d": "4\n",
	})

	d := Diff(old, new)

	seen := map[string]int{}
	for _, fc := range d.Added {
		seen[fc.Path]++
	}
	for _, fc := range d.Deleted {
		seen[fc.Path]++
	}
	for _, fc := range d.Modified {
		seen[fc.Path]++
	}

	allPaths := map[string]bool{"a": true, "b": true, "c": true, "d": true}
	for path := range allPaths {
		if path == "a" {
			require.Equal(t, 0, seen[path], "unchanged file a should not appear")
			continue
		}
		require.Equal(t, 1, seen[path], "path %s should appear exactly once", path)
	}
}
