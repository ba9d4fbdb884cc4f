// Package textdiff produces line-level change records between two text
// blobs using a standard Myers-style line diff. Equal lines are suppressed;
// only inserted and deleted lines survive, each tagged with the line index
// on the side it belongs to.
package textdiff

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// ChangeTag identifies whether a TextChange is an insertion into the new
// side or a deletion from the old side. Equal lines never appear.
type ChangeTag int

const (
	Insert ChangeTag = iota
	Delete
)

// NoIndex marks the absent side of a TextChange: insertions have no old
// index, deletions no new index.
const NoIndex = -1

// TextChange is one non-equal line-level edit.
type TextChange struct {
	Tag      ChangeTag
	OldIndex int
	NewIndex int
	Value    string
}

var dmp = diffmatchpatch.New()

// Lines computes the line-level diff between old and new, in the order the
// underlying line diff emits them. The same (old, new) pair always yields
// an identical sequence (the library's diff is a pure function), and
// applying the insertions to old after deleting the marked lines reproduces
// new exactly.
func Lines(old, new string) []TextChange {
	if old == new {
		return nil
	}

	oldRunes, newRunes, lineArray := dmp.DiffLinesToRunes(old, new)
	diffs := dmp.DiffMainRunes(oldRunes, newRunes, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	var changes []TextChange
	oldLine, newLine := 0, 0

	for _, d := range diffs {
		lines := splitKeepingNewlines(d.Text)

		switch d.Type {
		case diffmatchpatch.DiffEqual:
			oldLine += len(lines)
			newLine += len(lines)
		case diffmatchpatch.DiffDelete:
			for _, line := range lines {
				changes = append(changes, TextChange{
					Tag:      Delete,
					OldIndex: oldLine,
					NewIndex: NoIndex,
					Value:    line,
				})
				oldLine++
			}
		case diffmatchpatch.DiffInsert:
			for _, line := range lines {
				changes = append(changes, TextChange{
					Tag:      Insert,
					OldIndex: NoIndex,
					NewIndex: newLine,
					Value:    line,
				})
				newLine++
			}
		}
	}

	return changes
}

// splitKeepingNewlines splits text into lines, keeping each line's trailing
// "\n" attached (to match how the diff library groups runs of lines), and
// drops the empty trailing element produced when text ends in "\n".
func splitKeepingNewlines(text string) []string {
	if text == "" {
		return nil
	}
	parts := strings.SplitAfter(text, "\n")
	if parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}
