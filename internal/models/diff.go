package models

import (
	"fmt"
	"strings"

	"github.com/iancoleman/strcase"
)

// DiffKind classifies a difference between two documents. The zero value,
// NoDiff, marks the absence of a difference.
type DiffKind uint8

const (
	NoDiff DiffKind = iota
	// TypeMismatch means both sides hold values of different kinds
	TypeMismatch
	// ValueMismatch means both sides hold unequal primitives of the same kind
	ValueMismatch
	// Missing means one side lacks an object property or array element
	Missing
)

var diffKindNames = map[DiffKind]string{
	NoDiff:        "NoDiff",
	TypeMismatch:  "TypeMismatch",
	ValueMismatch: "ValueMismatch",
	Missing:       "Missing",
}

func (k DiffKind) String() string {
	if name, ok := diffKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("DiffKind(%d)", uint8(k))
}

// MarshalText encodes the kind in snake case, e.g. "type_mismatch"
func (k DiffKind) MarshalText() ([]byte, error) {
	if _, ok := diffKindNames[k]; !ok {
		return nil, fmt.Errorf("unknown diff kind %d", uint8(k))
	}
	return []byte(strcase.ToSnake(k.String())), nil
}

// UnmarshalText accepts both the snake case and the CamelCase form
func (k *DiffKind) UnmarshalText(text []byte) error {
	want := strings.ToLower(strcase.ToSnake(string(text)))
	for kind, name := range diffKindNames {
		if strcase.ToSnake(name) == want {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown diff kind %q", string(text))
}

// Side selects one of the two compared documents.
type Side uint8

const (
	Left Side = iota
	Right
)

func (s Side) String() string {
	if s == Right {
		return "right"
	}
	return "left"
}

// Other returns the opposite side
func (s Side) Other() Side {
	if s == Right {
		return Left
	}
	return Right
}

// DiffRecord is one difference found between the left and right documents.
// For Missing records exactly one of Left and Right is absent; for the other
// kinds both are present.
type DiffRecord struct {
	Path    Path
	Kind    DiffKind
	Message string
	Left    Value
	Right   Value
}

// Value returns the record's value for the given side
func (d DiffRecord) Value(side Side) Value {
	if side == Right {
		return d.Right
	}
	return d.Left
}

// FormattedLine is one line of pretty-printed JSON. Path is the node that
// starts on the line; closing brace and bracket lines carry the path of the
// container they close. Depth is the nesting level, 0 for the root.
type FormattedLine struct {
	Text  string
	Path  Path
	Depth int
}

// Indent is the indentation unit used per depth level
const Indent = "  "

// Indented returns the line text prefixed with its indentation
func (l FormattedLine) Indented() string {
	return strings.Repeat(Indent, l.Depth) + l.Text
}

// AnnotatedLine is a FormattedLine tagged with the difference that applies to
// it on one side. Index points into the diff list and is -1 when Kind is
// NoDiff.
type AnnotatedLine struct {
	FormattedLine
	Kind  DiffKind
	Index int
}

// HasDiff reports whether a difference applies to the line
func (l AnnotatedLine) HasDiff() bool { return l.Kind != NoDiff }
