// Package snapdiff reduces two snapshots to per-file added/deleted/modified
// groups, each carrying the line-level changes textdiff produced for that
// file.
package snapdiff

import (
	"github.com/utkarsh5026/vhi/pkg/snapshot"
	"github.com/utkarsh5026/vhi/pkg/textdiff"
)

// FileChange is one file path together with the text changes attributable
// to it.
type FileChange struct {
	Path    string
	Changes []textdiff.TextChange
}

// Diff is the total per-file classification of two snapshots: every file
// path present in either snapshot appears in exactly one of these three
// groups, or in none (identical content on both sides).
type Diff struct {
	Added    []FileChange
	Deleted  []FileChange
	Modified []FileChange
}

// Diff computes the snapshot-level diff between old and new. Renames are
// never detected; a renamed file always appears as a delete in old's group
// paired with an add in new's group.
func Diff(old, new snapshot.Snapshot) Diff {
	var d Diff

	for path, oldContent := range old.Files {
		oldText := oldContent.TextOf()

		newContent, stillPresent := new.Files[path]
		if !stillPresent {
			d.Deleted = append(d.Deleted, FileChange{
				Path:    path,
				Changes: textdiff.Lines(oldText, ""),
			})
			continue
		}

		newText := newContent.TextOf()
		if oldText == newText {
			continue
		}

		d.Modified = append(d.Modified, FileChange{
			Path:    path,
			Changes: textdiff.Lines(oldText, newText),
		})
	}

	for path, newContent := range new.Files {
		if _, existedBefore := old.Files[path]; existedBefore {
			continue
		}
		d.Added = append(d.Added, FileChange{
			Path:    path,
			Changes: textdiff.Lines("", newContent.TextOf()),
		})
	}

	return d
}
