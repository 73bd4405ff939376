// Package formatter pretty-prints JSON values one line at a time, tagging each
// line with the path of the node it starts and its nesting depth.
package formatter

import (
	"strconv"
	"strings"

	"github.com/mcncl/jsoncmp/internal/models"
)

// printer accumulates the lines of a single Format call
type printer struct {
	sortKeys bool
	lines    []models.FormattedLine
}

// Format renders value as 2-space indented JSON. When sortKeys is true object
// members are written in ascending key order, matching the order in which the
// comparator reports differences; otherwise the native key order is kept.
//
// Line texts carry no indentation, use FormattedLine.Indented or Render for
// that. An absent value produces no lines.
func Format(value models.Value, sortKeys bool) []models.FormattedLine {
	if value.IsAbsent() {
		return nil
	}
	p := &printer{sortKeys: sortKeys}
	p.value(value, "", models.Root(), 0, true)
	return p.lines
}

// Render joins formatted lines into a single indented document
func Render(lines []models.FormattedLine) string {
	var b strings.Builder
	for i, l := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(l.Indented())
	}
	return b.String()
}

// value writes v; prefix is the `"key": ` of an object member and last tells
// whether v is the final child of its parent (the root counts as last).
func (p *printer) value(v models.Value, prefix string, path models.Path, depth int, last bool) {
	suffix := ","
	if last {
		suffix = ""
	}

	switch v.Kind() {
	case models.KindObject:
		keys := v.Keys()
		if p.sortKeys {
			keys = v.SortedKeys()
		}
		if len(keys) == 0 {
			p.emit(prefix+"{}"+suffix, path, depth)
			return
		}
		p.emit(prefix+"{", path, depth)
		for i, key := range keys {
			child, _ := v.Get(key)
			p.value(child, models.Quote(key)+": ", path.Child(key), depth+1, i == len(keys)-1)
		}
		p.emit("}"+suffix, path, depth)

	case models.KindArray:
		items := v.Items()
		if len(items) == 0 {
			p.emit(prefix+"[]"+suffix, path, depth)
			return
		}
		p.emit(prefix+"[", path, depth)
		for i, item := range items {
			p.value(item, "", path.Index(i), depth+1, i == len(items)-1)
		}
		p.emit("]"+suffix, path, depth)

	default:
		p.emit(prefix+scalar(v)+suffix, path, depth)
	}
}

func (p *printer) emit(text string, path models.Path, depth int) {
	p.lines = append(p.lines, models.FormattedLine{Text: text, Path: path, Depth: depth})
}

// scalar returns the literal form of a leaf value
func scalar(v models.Value) string {
	switch v.Kind() {
	case models.KindString:
		return models.Quote(v.StringValue())
	case models.KindNumber:
		return v.Literal()
	case models.KindBool:
		return strconv.FormatBool(v.BoolValue())
	default:
		// null, and absent members which a parsed document never contains
		return "null"
	}
}
