package render

import "github.com/mcncl/jsoncmp/internal/models"

// Row is one row of the side-by-side view. A nil cell means that side has no
// line to show at this position.
type Row struct {
	Left  *models.AnnotatedLine
	Right *models.AnnotatedLine
}

// Align pairs the lines of two independently formatted documents.
//
// Lines with the same path are placed on one row. A line whose path has no
// remaining occurrence on the other side gets a row of its own, so subtrees
// present on one side only (or shaped differently on each side) do not push
// the rest of the document out of step.
func Align(left, right []models.AnnotatedLine) []Row {
	remainingLeft := countPaths(left)
	remainingRight := countPaths(right)

	rows := make([]Row, 0, max(len(left), len(right)))
	i, j := 0, 0
	for i < len(left) || j < len(right) {
		switch {
		case i < len(left) && j < len(right) && left[i].Path.Equal(right[j].Path):
			rows = append(rows, Row{Left: &left[i], Right: &right[j]})
			remainingLeft[left[i].Path.Key()]--
			remainingRight[right[j].Path.Key()]--
			i++
			j++
		case i < len(left) && (j >= len(right) || remainingRight[left[i].Path.Key()] == 0):
			rows = append(rows, Row{Left: &left[i]})
			remainingLeft[left[i].Path.Key()]--
			i++
		case j < len(right) && (i >= len(left) || remainingLeft[right[j].Path.Key()] == 0):
			rows = append(rows, Row{Right: &right[j]})
			remainingRight[right[j].Path.Key()]--
			j++
		default:
			// both paths still occur further down the other side
			rows = append(rows, Row{Left: &left[i], Right: &right[j]})
			remainingLeft[left[i].Path.Key()]--
			remainingRight[right[j].Path.Key()]--
			i++
			j++
		}
	}
	return rows
}

func countPaths(lines []models.AnnotatedLine) map[string]int {
	counts := make(map[string]int, len(lines))
	for _, l := range lines {
		counts[l.Path.Key()]++
	}
	return counts
}
