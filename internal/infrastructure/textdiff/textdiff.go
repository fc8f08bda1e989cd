package textdiff

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

const contextLines = 3

type editKind byte

const (
	editKeep   editKind = ' '
	editDelete editKind = '-'
	editInsert editKind = '+'
)

type lineEdit struct {
	kind editKind
	text string
}

// Unified renders a unified diff of one file. Both headers carry the given
// path (also for added or removed files), so a consumer tracking the file
// cursor never sees /dev/null. Identical contents render to an empty string.
func Unified(path, oldContent, newContent string) string {
	if oldContent == newContent {
		return ""
	}

	edits := lineEdits(oldContent, newContent)
	hunks := groupHunks(edits)
	if len(hunks) == 0 {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "--- a/%s\n", path)
	fmt.Fprintf(&b, "+++ b/%s\n", path)

	// Prefix counts: lines of each side consumed before a given edit index
	oldBefore := make([]int, len(edits)+1)
	newBefore := make([]int, len(edits)+1)
	for i, edit := range edits {
		oldBefore[i+1] = oldBefore[i]
		newBefore[i+1] = newBefore[i]
		if edit.kind != editInsert {
			oldBefore[i+1]++
		}
		if edit.kind != editDelete {
			newBefore[i+1]++
		}
	}

	for _, h := range hunks {
		oldCount := oldBefore[h.end] - oldBefore[h.start]
		newCount := newBefore[h.end] - newBefore[h.start]

		oldStart := oldBefore[h.start]
		if oldCount > 0 {
			oldStart++
		}
		newStart := newBefore[h.start]
		if newCount > 0 {
			newStart++
		}

		fmt.Fprintf(&b, "@@ -%d,%d +%d,%d @@\n", oldStart, oldCount, newStart, newCount)
		for _, edit := range edits[h.start:h.end] {
			b.WriteByte(byte(edit.kind))
			b.WriteString(edit.text)
			b.WriteByte('\n')
		}
	}

	return b.String()
}

// lineEdits runs the line-mode diff: lines are mapped to characters so the
// diff works on whole lines, then mapped back.
func lineEdits(oldContent, newContent string) []lineEdit {
	dmp := diffmatchpatch.New()

	oldChars, newChars, lineArray := dmp.DiffLinesToChars(oldContent, newContent)
	diffs := dmp.DiffMain(oldChars, newChars, false)
	diffs = dmp.DiffCleanupSemantic(diffs)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	var edits []lineEdit
	for _, diff := range diffs {
		kind := editKeep
		switch diff.Type {
		case diffmatchpatch.DiffDelete:
			kind = editDelete
		case diffmatchpatch.DiffInsert:
			kind = editInsert
		case diffmatchpatch.DiffEqual:
		}

		lines := strings.Split(diff.Text, "\n")
		if len(lines) > 0 && lines[len(lines)-1] == "" {
			lines = lines[:len(lines)-1]
		}
		for _, line := range lines {
			edits = append(edits, lineEdit{kind: kind, text: line})
		}
	}
	return edits
}

type hunk struct {
	start, end int // edit index range, end exclusive
}

// groupHunks expands every changed line by the context window and merges
// overlapping or touching ranges.
func groupHunks(edits []lineEdit) []hunk {
	var hunks []hunk
	for i, edit := range edits {
		if edit.kind == editKeep {
			continue
		}

		start := max(i-contextLines, 0)
		end := min(i+contextLines+1, len(edits))

		if n := len(hunks); n > 0 && start <= hunks[n-1].end {
			hunks[n-1].end = end
			continue
		}
		hunks = append(hunks, hunk{start: start, end: end})
	}
	return hunks
}
