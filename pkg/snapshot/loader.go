package snapshot

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"
)

// LoadDirectories implements directory-mode ingestion: each subdirectory of
// root is one snapshot, named after its directory name, with files
// enumerated recursively. A file whose bytes are not valid UTF-8 becomes the
// non-text sentinel rather than failing the whole load.
func LoadDirectories(ctx context.Context, root string) ([]Snapshot, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("snapshot: read root %q: %w", root, err)
	}

	var snapshots []Snapshot
	for _, entry := range entries {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if !entry.IsDir() {
			continue
		}

		dirPath := filepath.Join(root, entry.Name())
		files, err := walkSnapshotDir(ctx, dirPath)
		if err != nil {
			return nil, fmt.Errorf("snapshot: load directory %q: %w", dirPath, err)
		}

		snapshots = append(snapshots, Snapshot{
			Name:   entry.Name(),
			Origin: dirPath,
			Files:  files,
		})
	}

	sort.Slice(snapshots, func(i, j int) bool { return snapshots[i].Name < snapshots[j].Name })
	return snapshots, nil
}

func walkSnapshotDir(ctx context.Context, dirPath string) (map[string]Content, error) {
	files := make(map[string]Content)

	err := filepath.WalkDir(dirPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(dirPath, path)
		if err != nil {
			return fmt.Errorf("relative path of %q under %q: %w", path, dirPath, err)
		}
		rel = filepath.ToSlash(rel)

		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read file %q: %w", path, err)
		}

		if utf8.Valid(raw) {
			files[rel] = Content{Text: string(raw), IsText: true}
		} else {
			files[rel] = Content{IsText: false}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}

// LoadFiles implements file-mode ingestion: each file under root matching
// extension (with or without a leading dot) becomes one snapshot with a
// single pseudo-file named "main", the snapshot's display name being the
// file's path relative to root.
func LoadFiles(ctx context.Context, root, extension string) ([]Snapshot, error) {
	ext := strings.TrimPrefix(extension, ".")

	var snapshots []Snapshot
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if d.IsDir() {
			return nil
		}
		if strings.TrimPrefix(filepath.Ext(path), ".") != ext {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("relative path of %q under %q: %w", path, root, err)
		}
		rel = filepath.ToSlash(rel)

		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read file %q: %w", path, err)
		}

		content := Content{IsText: false}
		if utf8.Valid(raw) {
			content = Content{Text: string(raw), IsText: true}
		}

		snapshots = append(snapshots, Snapshot{
			Name:   rel,
			Origin: path,
			Files:  map[string]Content{"main": content},
		})

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("snapshot: load files under %q: %w", root, err)
	}

	sort.Slice(snapshots, func(i, j int) bool { return snapshots[i].Name < snapshots[j].Name })
	return snapshots, nil
}
