package git

import (
	"strings"

	fdiff "github.com/go-git/go-git/v5/plumbing/format/diff"
)

// chunk is the subset of go-git's diff.Chunk used to build hunks.
type chunk interface {
	Content() string
	Type() fdiff.Operation
}

// chunkLines flattens patch chunks into numbered lines.
func chunkLines[C chunk](chunks []C) []DiffLine {
	var out []DiffLine
	oldNo, newNo := 0, 0
	for _, ch := range chunks {
		for _, text := range splitLines(ch.Content()) {
			switch ch.Type() {
			case fdiff.Equal:
				oldNo++
				newNo++
				out = append(out, DiffLine{Op: LineContext, Content: text, OldLine: oldNo, NewLine: newNo})
			case fdiff.Add:
				newNo++
				out = append(out, DiffLine{Op: LineAdded, Content: text, NewLine: newNo})
			case fdiff.Delete:
				oldNo++
				out = append(out, DiffLine{Op: LineDeleted, Content: text, OldLine: oldNo})
			}
		}
	}
	return out
}

// splitLines splits s into lines without their terminators. A final line
// without a newline still counts.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// countOps returns the number of added and deleted lines.
func countOps(lines []DiffLine) (added, deleted int) {
	for _, l := range lines {
		switch l.Op {
		case LineAdded:
			added++
		case LineDeleted:
			deleted++
		}
	}
	return added, deleted
}

// buildHunks groups changed lines into hunks with up to context lines of
// surrounding context. Changes separated by at most 2*context unchanged
// lines share a hunk.
func buildHunks(lines []DiffLine, context int) []Hunk {
	if context < 0 {
		context = 0
	}

	var changed []int
	for i, l := range lines {
		if l.Op != LineContext {
			changed = append(changed, i)
		}
	}
	if len(changed) == 0 {
		return nil
	}

	var hunks []Hunk
	groupStart := changed[0]
	prev := changed[0]
	flush := func(first, last int) {
		lo := max(0, first-context)
		hi := min(len(lines)-1, last+context)
		hunks = append(hunks, newHunk(lines, lo, hi))
	}
	for _, idx := range changed[1:] {
		if idx-prev-1 > 2*context {
			flush(groupStart, prev)
			groupStart = idx
		}
		prev = idx
	}
	flush(groupStart, prev)
	return hunks
}

func newHunk(lines []DiffLine, lo, hi int) Hunk {
	oldBefore, newBefore := 0, 0
	for _, l := range lines[:lo] {
		if l.Op != LineAdded {
			oldBefore++
		}
		if l.Op != LineDeleted {
			newBefore++
		}
	}

	h := Hunk{Lines: lines[lo : hi+1]}
	for _, l := range h.Lines {
		if l.Op != LineAdded {
			h.OldLines++
		}
		if l.Op != LineDeleted {
			h.NewLines++
		}
	}

	h.OldStart = oldBefore
	if h.OldLines > 0 {
		h.OldStart++
	}
	h.NewStart = newBefore
	if h.NewLines > 0 {
		h.NewStart++
	}
	return h
}
