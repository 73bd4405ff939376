package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/mcncl/jsoncmp/internal/comparator"
	"github.com/mcncl/jsoncmp/internal/models"
)

type reportRecord struct {
	Path    models.Path     `json:"path"`
	Kind    models.DiffKind `json:"kind"`
	Message string          `json:"message"`
	Left    *models.Value   `json:"left,omitempty"`
	Right   *models.Value   `json:"right,omitempty"`
}

type report struct {
	Summary comparator.Stats `json:"summary"`
	Diffs   []reportRecord   `json:"diffs"`
}

// Report writes the differences and their summary as indented JSON. Kinds
// are snake case and an absent side is left out of its record.
func Report(w io.Writer, diffs []models.DiffRecord, stats comparator.Stats) error {
	out := report{
		Summary: stats,
		Diffs:   make([]reportRecord, len(diffs)),
	}
	for i, d := range diffs {
		rec := reportRecord{Path: d.Path, Kind: d.Kind, Message: d.Message}
		if !d.Left.IsAbsent() {
			left := d.Left
			rec.Left = &left
		}
		if !d.Right.IsAbsent() {
			right := d.Right
			rec.Right = &right
		}
		out.Diffs[i] = rec
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}

// Summary describes stats in one sentence, e.g.
// "3 differences (1 type mismatch, 1 value mismatch, 1 missing). left: 12 nodes, right: 13 nodes."
func Summary(stats comparator.Stats) string {
	nodes := fmt.Sprintf("left: %s, right: %s.",
		plural(stats.LeftNodes, "node", "nodes"),
		plural(stats.RightNodes, "node", "nodes"))

	if stats.Equal() {
		return "documents are identical. " + nodes
	}

	var parts []string
	if stats.TypeMismatches > 0 {
		parts = append(parts, plural(stats.TypeMismatches, "type mismatch", "type mismatches"))
	}
	if stats.ValueMismatches > 0 {
		parts = append(parts, plural(stats.ValueMismatches, "value mismatch", "value mismatches"))
	}
	if stats.Missing > 0 {
		parts = append(parts, plural(stats.Missing, "missing", "missing"))
	}

	return fmt.Sprintf("%s (%s). %s",
		plural(stats.Total(), "difference", "differences"),
		strings.Join(parts, ", "),
		nodes)
}

func plural(n int, one, many string) string {
	word := many
	if n == 1 {
		word = one
	}
	return humanize.Comma(int64(n)) + " " + word
}
