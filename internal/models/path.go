package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidPath is returned by ParsePath for text that is not a JSON path
var ErrInvalidPath = errors.New("invalid JSON path")

// Segment is one step of a Path: an object key or an array index.
type Segment struct {
	key     string
	index   int
	isIndex bool
}

// KeySegment returns a segment descending into the object member key
func KeySegment(key string) Segment { return Segment{key: key} }

// IndexSegment returns a segment descending into the array element i
func IndexSegment(i int) Segment { return Segment{index: i, isIndex: true} }

// IsIndex reports whether the segment is an array index
func (s Segment) IsIndex() bool { return s.isIndex }

// Key returns the object key of the segment
func (s Segment) Key() string { return s.key }

// Index returns the array index of the segment
func (s Segment) Index() int { return s.index }

// String renders the segment as it appears in a path: key or [index]
func (s Segment) String() string {
	if s.isIndex {
		return "[" + strconv.Itoa(s.index) + "]"
	}
	return s.key
}

// Path locates a node inside a JSON document. The zero Path is the root.
//
// Paths are compared segment by segment, so object keys containing "/" or
// looking like "[0]" never collide with other paths. Only the string form
// produced by String is ambiguous for such keys.
type Path struct {
	segments []Segment
}

// Root returns the path of the document root
func Root() Path { return Path{} }

// NewPath returns a path made of the given segments
func NewPath(segments ...Segment) Path {
	return Path{segments: append([]Segment(nil), segments...)}
}

// Child returns the path of the member key below p
func (p Path) Child(key string) Path { return p.with(KeySegment(key)) }

// Index returns the path of the array element i below p
func (p Path) Index(i int) Path { return p.with(IndexSegment(i)) }

// with always copies so sibling paths never share a backing array
func (p Path) with(s Segment) Path {
	segments := make([]Segment, len(p.segments)+1)
	copy(segments, p.segments)
	segments[len(p.segments)] = s
	return Path{segments: segments}
}

// Parent returns the path one level up. The parent of the root is the root.
func (p Path) Parent() Path {
	if len(p.segments) == 0 {
		return p
	}
	return Path{segments: p.segments[:len(p.segments)-1]}
}

// Len returns the number of segments, 0 for the root
func (p Path) Len() int { return len(p.segments) }

// IsRoot reports whether p is the root path
func (p Path) IsRoot() bool { return len(p.segments) == 0 }

// Last returns the final segment; ok is false for the root
func (p Path) Last() (s Segment, ok bool) {
	if len(p.segments) == 0 {
		return Segment{}, false
	}
	return p.segments[len(p.segments)-1], true
}

// Equal reports whether p and q locate the same node
func (p Path) Equal(q Path) bool {
	if len(p.segments) != len(q.segments) {
		return false
	}
	for i := range p.segments {
		if p.segments[i] != q.segments[i] {
			return false
		}
	}
	return true
}

// IsAncestorOf reports whether q lies strictly below p
func (p Path) IsAncestorOf(q Path) bool {
	if len(p.segments) >= len(q.segments) {
		return false
	}
	for i := range p.segments {
		if p.segments[i] != q.segments[i] {
			return false
		}
	}
	return true
}

// Covers reports whether q is p itself or lies below it
func (p Path) Covers(q Path) bool {
	return p.Equal(q) || p.IsAncestorOf(q)
}

// String renders the path as "/", "/a" or "/a/[2]/b"
func (p Path) String() string {
	if len(p.segments) == 0 {
		return "/"
	}
	var b strings.Builder
	for _, s := range p.segments {
		b.WriteByte('/')
		b.WriteString(s.String())
	}
	return b.String()
}

// Key returns an unambiguous string for p, suitable as a map key
func (p Path) Key() string {
	var b strings.Builder
	for _, s := range p.segments {
		if s.isIndex {
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(s.index))
			b.WriteByte(']')
			continue
		}
		b.WriteByte('.')
		b.WriteString(strconv.Quote(s.key))
	}
	return b.String()
}

// MarshalText implements encoding.TextMarshaler using the String form
func (p Path) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using ParsePath
func (p *Path) UnmarshalText(text []byte) error {
	parsed, err := ParsePath(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ParsePath parses the String form of a path. A segment written as [n] with
// a non-negative integer n is an array index, anything else is an object key.
func ParsePath(s string) (Path, error) {
	if !strings.HasPrefix(s, "/") {
		return Path{}, fmt.Errorf("%w: %q must start with /", ErrInvalidPath, s)
	}
	if s == "/" {
		return Root(), nil
	}
	parts := strings.Split(s[1:], "/")
	segments := make([]Segment, len(parts))
	for i, part := range parts {
		segments[i] = parseSegment(part)
	}
	return Path{segments: segments}, nil
}

func parseSegment(part string) Segment {
	if len(part) >= 3 && part[0] == '[' && part[len(part)-1] == ']' {
		if n, err := strconv.Atoi(part[1 : len(part)-1]); err == nil && n >= 0 {
			return IndexSegment(n)
		}
	}
	return KeySegment(part)
}
