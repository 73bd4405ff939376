// Package render presents comparison results: a side-by-side view of the two
// annotated documents, a flat list of differences, a JSON report and a one
// line summary.
package render

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/mcncl/jsoncmp/internal/models"
)

// DefaultWidth is the terminal width assumed when none is configured
const DefaultWidth = 160

// minColumnWidth keeps each side readable on very narrow terminals
const minColumnWidth = 20

// Palette holds the colours used per difference kind, as hex strings or
// ANSI colour numbers understood by lipgloss.
type Palette struct {
	TypeMismatch  string
	ValueMismatch string
	Missing       string
	Gutter        string
}

// DefaultPalette returns the built-in colours
func DefaultPalette() Palette {
	return Palette{
		TypeMismatch:  "#d75fd7",
		ValueMismatch: "#d7af00",
		Missing:       "#ff5f5f",
		Gutter:        "#808080",
	}
}

// Options controls rendering
type Options struct {
	Color   bool
	Width   int
	Palette Palette
}

// styles binds a palette to a renderer for one output writer
type styles struct {
	color   bool
	kind    map[models.DiffKind]lipgloss.Style
	added   lipgloss.Style
	gutter  lipgloss.Style
	heading lipgloss.Style
}

func newStyles(w io.Writer, opts Options) styles {
	r := lipgloss.NewRenderer(w)
	if opts.Color {
		r.SetColorProfile(termenv.ANSI256)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}

	p := opts.Palette
	if p == (Palette{}) {
		p = DefaultPalette()
	}

	return styles{
		color: opts.Color,
		kind: map[models.DiffKind]lipgloss.Style{
			models.TypeMismatch:  r.NewStyle().Foreground(lipgloss.Color(p.TypeMismatch)).Bold(true),
			models.ValueMismatch: r.NewStyle().Foreground(lipgloss.Color(p.ValueMismatch)),
			models.Missing:       r.NewStyle().Foreground(lipgloss.Color(p.Missing)),
		},
		added:   r.NewStyle().Foreground(lipgloss.Color("#5fd75f")),
		gutter:  r.NewStyle().Foreground(lipgloss.Color(p.Gutter)),
		heading: r.NewStyle().Bold(true),
	}
}

// line styles text for a line of the given kind on the given side. Missing
// content is shown as removed on the left and added on the right.
func (s styles) line(kind models.DiffKind, side models.Side, text string) string {
	if !s.color || kind == models.NoDiff {
		return text
	}
	if kind == models.Missing && side == models.Right {
		return s.added.Render(text)
	}
	return s.kind[kind].Render(text)
}

func (s styles) dim(text string) string {
	if !s.color {
		return text
	}
	return s.gutter.Render(text)
}

func (s styles) bold(text string) string {
	if !s.color {
		return text
	}
	return s.heading.Render(text)
}

// Marker returns the gutter character for a line of the given kind: "!" for
// type mismatches, "~" for value mismatches, "-" for content only the left
// side has and "+" for content only the right side has.
func Marker(kind models.DiffKind, side models.Side) string {
	switch kind {
	case models.TypeMismatch:
		return "!"
	case models.ValueMismatch:
		return "~"
	case models.Missing:
		if side == models.Right {
			return "+"
		}
		return "-"
	default:
		return " "
	}
}

// recordMarker is Marker for a diff record; Missing records take the side
// that holds the value
func recordMarker(d models.DiffRecord) string {
	if d.Kind == models.Missing && d.Left.IsAbsent() {
		return Marker(d.Kind, models.Right)
	}
	return Marker(d.Kind, models.Left)
}
