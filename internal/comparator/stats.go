package comparator

import "github.com/mcncl/jsoncmp/internal/models"

// Stats holds counts describing a comparison
type Stats struct {
	LeftNodes  int `json:"left_nodes"`  // count of nodes in the left document
	RightNodes int `json:"right_nodes"` // count of nodes in the right document

	TypeMismatches  int `json:"type_mismatches"`
	ValueMismatches int `json:"value_mismatches"`
	Missing         int `json:"missing"`
}

// Total returns the number of differences
func (s Stats) Total() int {
	return s.TypeMismatches + s.ValueMismatches + s.Missing
}

// Equal reports whether no differences were found
func (s Stats) Equal() bool {
	return s.Total() == 0
}

// Summarize counts the nodes of both documents and the records of each kind
func Summarize(left, right models.Value, diffs []models.DiffRecord) Stats {
	st := Stats{
		LeftNodes:  countNodes(left),
		RightNodes: countNodes(right),
	}
	for _, d := range diffs {
		switch d.Kind {
		case models.TypeMismatch:
			st.TypeMismatches++
		case models.ValueMismatch:
			st.ValueMismatches++
		case models.Missing:
			st.Missing++
		}
	}
	return st
}

func countNodes(v models.Value) int {
	switch v.Kind() {
	case models.KindAbsent:
		return 0
	case models.KindArray:
		n := 1
		for _, item := range v.Items() {
			n += countNodes(item)
		}
		return n
	case models.KindObject:
		n := 1
		for _, k := range v.Keys() {
			child, _ := v.Get(k)
			n += countNodes(child)
		}
		return n
	default:
		return 1
	}
}
