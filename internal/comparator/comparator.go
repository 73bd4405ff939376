// Package comparator finds the structural differences between two JSON
// documents.
//
// Both trees are walked in lock step, depth first. Object keys are visited in
// ascending byte order over the union of both sides and arrays index by index,
// so the resulting records come out in the same order as the lines produced by
// the formatter with sorted keys.
package comparator

import (
	"fmt"
	"sort"

	"github.com/mcncl/jsoncmp/internal/models"
)

// walker accumulates the records of a single Compare call
type walker struct {
	diffs []models.DiffRecord
}

// Compare returns every difference between left and right, in traversal
// order. Equal documents yield no records. Compare never fails; recursion
// depth is bounded by the nesting depth of the documents.
func Compare(left, right models.Value) []models.DiffRecord {
	w := &walker{}

	// A document missing entirely is reported like a missing member rather
	// than as a type mismatch against "absent".
	switch {
	case left.IsAbsent() && right.IsAbsent():
		return nil
	case left.IsAbsent():
		w.missing(models.Root(), "missing document on left", left, right)
	case right.IsAbsent():
		w.missing(models.Root(), "missing document on right", left, right)
	default:
		w.compare(left, right, models.Root())
	}

	return w.diffs
}

// compare records the differences below path. Neither value is absent.
func (w *walker) compare(left, right models.Value, path models.Path) {
	lk, rk := left.Kind(), right.Kind()
	if lk != rk {
		w.add(models.DiffRecord{
			Path:    path,
			Kind:    models.TypeMismatch,
			Message: fmt.Sprintf("type mismatch: left is %s, right is %s", lk, rk),
			Left:    left,
			Right:   right,
		})
		// children of mismatched containers are not compared individually
		return
	}

	switch lk {
	case models.KindObject:
		w.compareObjects(left, right, path)
	case models.KindArray:
		w.compareArrays(left, right, path)
	default:
		if !left.Equal(right) {
			w.add(models.DiffRecord{
				Path:    path,
				Kind:    models.ValueMismatch,
				Message: fmt.Sprintf("value mismatch: %s != %s", left.Compact(), right.Compact()),
				Left:    left,
				Right:   right,
			})
		}
	}
}

func (w *walker) compareObjects(left, right models.Value, path models.Path) {
	for _, key := range unionKeys(left, right) {
		child := path.Child(key)
		lv, hasLeft := left.Get(key)
		rv, hasRight := right.Get(key)

		switch {
		case hasLeft && !hasRight:
			w.missing(child, "missing property on right: "+key, lv, models.Absent())
		case !hasLeft && hasRight:
			w.missing(child, "missing property on left: "+key, models.Absent(), rv)
		default:
			w.compare(lv, rv, child)
		}
	}
}

func (w *walker) compareArrays(left, right models.Value, path models.Path) {
	n := left.Len()
	if right.Len() > n {
		n = right.Len()
	}

	for i := 0; i < n; i++ {
		child := path.Index(i)
		switch {
		case i >= left.Len():
			w.missing(child, fmt.Sprintf("missing element on left: [%d]", i), models.Absent(), right.At(i))
		case i >= right.Len():
			w.missing(child, fmt.Sprintf("missing element on right: [%d]", i), left.At(i), models.Absent())
		default:
			w.compare(left.At(i), right.At(i), child)
		}
	}
}

func (w *walker) missing(path models.Path, msg string, left, right models.Value) {
	w.add(models.DiffRecord{
		Path:    path,
		Kind:    models.Missing,
		Message: msg,
		Left:    left,
		Right:   right,
	})
}

func (w *walker) add(d models.DiffRecord) {
	w.diffs = append(w.diffs, d)
}

// unionKeys returns the keys of both objects, deduplicated and sorted
func unionKeys(left, right models.Value) []string {
	seen := make(map[string]struct{}, left.Len()+right.Len())
	keys := make([]string, 0, left.Len()+right.Len())
	for _, obj := range []models.Value{left, right} {
		for _, k := range obj.Keys() {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}
