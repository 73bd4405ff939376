package render

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/mcncl/jsoncmp/internal/models"
)

// separator sits between the two columns of the side-by-side view
const separator = " │ "

// SideBySide writes the two annotated documents next to each other, one row
// per aligned line pair. Every cell starts with its gutter marker; text wider
// than the column is truncated with an ellipsis.
func SideBySide(w io.Writer, left, right []models.AnnotatedLine, opts Options) error {
	st := newStyles(w, opts)

	width := opts.Width
	if width <= 0 {
		width = DefaultWidth
	}
	// marker + space on each side, plus the separator
	column := (width - runewidth.StringWidth(separator) - 4) / 2
	if column < minColumnWidth {
		column = minColumnWidth
	}

	bw := bufio.NewWriter(w)
	for _, row := range Align(left, right) {
		lcell := cell(st, row.Left, models.Left, column)
		rcell := cell(st, row.Right, models.Right, column)
		line := lcell + st.dim(separator) + rcell
		if _, err := bw.WriteString(strings.TrimRight(line, " ") + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// cell renders one side of a row padded to the column width
func cell(st styles, l *models.AnnotatedLine, side models.Side, column int) string {
	if l == nil {
		return strings.Repeat(" ", column+2)
	}
	text := runewidth.Truncate(l.Indented(), column, "…")
	text = runewidth.FillRight(text, column)
	marker := Marker(l.Kind, side)
	return st.line(l.Kind, side, marker+" "+text)
}

// List writes one line per difference: marker, path and message
func List(w io.Writer, diffs []models.DiffRecord, opts Options) error {
	st := newStyles(w, opts)

	bw := bufio.NewWriter(w)
	for _, d := range diffs {
		side := models.Left
		if d.Kind == models.Missing && d.Left.IsAbsent() {
			side = models.Right
		}
		text := fmt.Sprintf("%s %s: %s", recordMarker(d), d.Path, d.Message)
		if _, err := fmt.Fprintln(bw, st.line(d.Kind, side, text)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Header writes the two document names above the side-by-side columns
func Header(w io.Writer, leftName, rightName string, opts Options) error {
	st := newStyles(w, opts)

	width := opts.Width
	if width <= 0 {
		width = DefaultWidth
	}
	column := (width - runewidth.StringWidth(separator) - 4) / 2
	if column < minColumnWidth {
		column = minColumnWidth
	}

	l := runewidth.FillRight(runewidth.Truncate(leftName, column, "…"), column)
	r := runewidth.Truncate(rightName, column, "…")
	_, err := fmt.Fprintln(w, st.bold("  "+l)+st.dim(separator)+st.bold("  "+r))
	return err
}
