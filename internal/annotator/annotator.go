// Package annotator maps comparison results onto formatted lines so that one
// side of a comparison can be highlighted line by line.
package annotator

import "github.com/mcncl/jsoncmp/internal/models"

// entry is the first diff record registered at a path
type entry struct {
	index int
	diff  models.DiffRecord
}

// Annotate returns a copy of lines where every line covered by a difference
// carries that difference's kind and its index in diffs.
//
// A line is covered by a record registered at its own path or at any ancestor
// of it. When several records share a path the first one in diffs is used, and
// when records exist at several ancestors the nearest one wins. Missing
// records only mark the side that actually holds the value: on the side that
// lacks it the line stays unannotated.
func Annotate(lines []models.FormattedLine, diffs []models.DiffRecord, side models.Side) []models.AnnotatedLine {
	byPath := make(map[string]entry, len(diffs))
	for i, d := range diffs {
		key := d.Path.Key()
		if _, ok := byPath[key]; !ok {
			byPath[key] = entry{index: i, diff: d}
		}
	}

	out := make([]models.AnnotatedLine, len(lines))
	for i, line := range lines {
		out[i] = models.AnnotatedLine{FormattedLine: line, Index: -1}

		e, ok := nearest(byPath, line.Path)
		if !ok {
			continue
		}
		if e.diff.Kind == models.Missing && e.diff.Value(side).IsAbsent() {
			continue
		}
		out[i].Kind = e.diff.Kind
		out[i].Index = e.index
	}
	return out
}

// nearest looks up path itself and then each of its ancestors up to the root
func nearest(byPath map[string]entry, path models.Path) (entry, bool) {
	for {
		if e, ok := byPath[path.Key()]; ok {
			return e, true
		}
		if path.IsRoot() {
			return entry{}, false
		}
		path = path.Parent()
	}
}
