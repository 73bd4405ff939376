package comparator

import "github.com/mcncl/jsoncmp/internal/models"

// Filter returns the records whose path is not at or below any of the ignored
// paths. Order is preserved and diffs is left untouched.
func Filter(diffs []models.DiffRecord, ignore []models.Path) []models.DiffRecord {
	if len(ignore) == 0 {
		return diffs
	}

	kept := make([]models.DiffRecord, 0, len(diffs))
	for _, d := range diffs {
		if !ignored(d.Path, ignore) {
			kept = append(kept, d)
		}
	}
	return kept
}

func ignored(p models.Path, ignore []models.Path) bool {
	for _, ig := range ignore {
		if ig.Covers(p) {
			return true
		}
	}
	return false
}
