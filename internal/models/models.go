package models

import (
	"bytes"
	"encoding"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
)

// Kind classifies a JSON value. The zero Kind is KindAbsent, which stands for
// a missing object property or array element.
type Kind uint8

const (
	KindAbsent Kind = iota
	KindNull
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// String returns the JSON type name of the kind
func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Member is a single key/value pair of a JSON object.
type Member struct {
	Key   string
	Value Value
}

// Value is an immutable JSON value. The zero Value is absent.
//
// Objects remember the order their keys were first seen in; numbers keep the
// literal text they were parsed from and compare numerically.
type Value struct {
	kind    Kind
	boolean bool
	text    string // string contents or number literal
	items   []Value
	members []Member
	index   map[string]int
}

// Absent returns the absent value
func Absent() Value { return Value{} }

// Null returns the JSON null value
func Null() Value { return Value{kind: KindNull} }

// Bool returns a JSON boolean
func Bool(b bool) Value { return Value{kind: KindBool, boolean: b} }

// String returns a JSON string
func String(s string) Value { return Value{kind: KindString, text: s} }

// Number returns a JSON number from its literal text, e.g. "1.50" or "-2e3".
// The literal is not validated; callers pass text that came out of a decoder.
func Number(literal string) Value { return Value{kind: KindNumber, text: literal} }

// Int returns a JSON number for an integer
func Int(i int64) Value { return Number(strconv.FormatInt(i, 10)) }

// Float returns a JSON number for a float. NaN and infinities have no JSON
// form and are rendered as null.
func Float(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Null()
	}
	return Number(strconv.FormatFloat(f, 'g', -1, 64))
}

// Array returns a JSON array holding a copy of items. Absent items are
// dropped, so a document never contains an absent element.
func Array(items ...Value) Value {
	kept := make([]Value, 0, len(items))
	for _, item := range items {
		if !item.IsAbsent() {
			kept = append(kept, item)
		}
	}
	return Value{kind: KindArray, items: kept}
}

// Object returns a JSON object with members in the given order. A repeated
// key keeps its first position and takes the last value, like JSON decoders do.
// Members with an absent value are dropped.
func Object(members ...Member) Value {
	v := Value{
		kind:    KindObject,
		members: make([]Member, 0, len(members)),
		index:   make(map[string]int, len(members)),
	}
	for _, m := range members {
		if m.Value.IsAbsent() {
			continue
		}
		if i, ok := v.index[m.Key]; ok {
			v.members[i].Value = m.Value
			continue
		}
		v.index[m.Key] = len(v.members)
		v.members = append(v.members, m)
	}
	return v
}

// Kind reports the kind of the value
func (v Value) Kind() Kind { return v.kind }

// IsAbsent reports whether v is the absent value
func (v Value) IsAbsent() bool { return v.kind == KindAbsent }

// BoolValue returns the boolean held by v, false for other kinds
func (v Value) BoolValue() bool { return v.boolean }

// StringValue returns the string held by v, empty for other kinds
func (v Value) StringValue() string {
	if v.kind != KindString {
		return ""
	}
	return v.text
}

// Literal returns the literal text of a number, empty for other kinds
func (v Value) Literal() string {
	if v.kind != KindNumber {
		return ""
	}
	return v.text
}

// Float64 parses the number held by v
func (v Value) Float64() (float64, error) {
	if v.kind != KindNumber {
		return 0, fmt.Errorf("value is %s, not number", v.kind)
	}
	return strconv.ParseFloat(v.text, 64)
}

// Len returns the number of array items or object members
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.items)
	case KindObject:
		return len(v.members)
	default:
		return 0
	}
}

// At returns the i-th array item, or absent when i is out of range
func (v Value) At(i int) Value {
	if v.kind != KindArray || i < 0 || i >= len(v.items) {
		return Value{}
	}
	return v.items[i]
}

// Items returns a copy of the array items
func (v Value) Items() []Value {
	if v.kind != KindArray {
		return nil
	}
	return append([]Value(nil), v.items...)
}

// Get returns the member value for key
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindObject {
		return Value{}, false
	}
	i, ok := v.index[key]
	if !ok {
		return Value{}, false
	}
	return v.members[i].Value, true
}

// Has reports whether the object has a member named key
func (v Value) Has(key string) bool {
	_, ok := v.Get(key)
	return ok
}

// Keys returns the object keys in their native order
func (v Value) Keys() []string {
	if v.kind != KindObject {
		return nil
	}
	keys := make([]string, len(v.members))
	for i, m := range v.members {
		keys[i] = m.Key
	}
	return keys
}

// SortedKeys returns the object keys in ascending byte order
func (v Value) SortedKeys() []string {
	keys := v.Keys()
	sort.Strings(keys)
	return keys
}

// Equal reports whether v and other are the same JSON value. Numbers compare
// numerically and object key order is ignored.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindAbsent, KindNull:
		return true
	case KindBool:
		return v.boolean == other.boolean
	case KindString:
		return v.text == other.text
	case KindNumber:
		return NumbersEqual(v.text, other.text)
	case KindArray:
		if len(v.items) != len(other.items) {
			return false
		}
		for i := range v.items {
			if !v.items[i].Equal(other.items[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(v.members) != len(other.members) {
			return false
		}
		for _, m := range v.members {
			o, ok := other.Get(m.Key)
			if !ok || !m.Value.Equal(o) {
				return false
			}
		}
		return true
	}
	return false
}

// NumbersEqual compares two number literals by value. Literals that do not
// parse to a finite float64 fall back to comparing their text.
func NumbersEqual(a, b string) bool {
	if a == b {
		return true
	}
	fa, errA := strconv.ParseFloat(a, 64)
	fb, errB := strconv.ParseFloat(b, 64)
	if errA != nil || errB != nil {
		return false
	}
	return fa == fb
}

// MarshalJSON encodes v as compact JSON with object keys in native order.
// Absent encodes as null.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	v.writeJSON(&buf)
	return buf.Bytes(), nil
}

// Compact returns v as compact JSON text
func (v Value) Compact() string {
	var buf bytes.Buffer
	v.writeJSON(&buf)
	return buf.String()
}

func (v Value) writeJSON(buf *bytes.Buffer) {
	switch v.kind {
	case KindAbsent, KindNull:
		buf.WriteString("null")
	case KindBool:
		buf.WriteString(strconv.FormatBool(v.boolean))
	case KindNumber:
		buf.WriteString(v.text)
	case KindString:
		buf.WriteString(Quote(v.text))
	case KindArray:
		buf.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				buf.WriteByte(',')
			}
			item.writeJSON(buf)
		}
		buf.WriteByte(']')
	case KindObject:
		buf.WriteByte('{')
		for i, m := range v.members {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.WriteString(Quote(m.Key))
			buf.WriteByte(':')
			m.Value.writeJSON(buf)
		}
		buf.WriteByte('}')
	}
}

// FromInterface converts a decoded Go value into a Value. It accepts the
// shapes produced by encoding/json, YAML and TOML decoders: nil, bool, string,
// json.Number, integer and float types, []interface{}, map[string]interface{}
// (keys sorted) and values implementing encoding.TextMarshaler (as strings).
func FromInterface(in interface{}) (Value, error) {
	switch x := in.(type) {
	case nil:
		return Null(), nil
	case Value:
		return x, nil
	case bool:
		return Bool(x), nil
	case string:
		return String(x), nil
	case json.Number:
		return Number(x.String()), nil
	case int:
		return Int(int64(x)), nil
	case int8:
		return Int(int64(x)), nil
	case int16:
		return Int(int64(x)), nil
	case int32:
		return Int(int64(x)), nil
	case int64:
		return Int(x), nil
	case uint:
		return Number(strconv.FormatUint(uint64(x), 10)), nil
	case uint8:
		return Number(strconv.FormatUint(uint64(x), 10)), nil
	case uint16:
		return Number(strconv.FormatUint(uint64(x), 10)), nil
	case uint32:
		return Number(strconv.FormatUint(uint64(x), 10)), nil
	case uint64:
		return Number(strconv.FormatUint(x, 10)), nil
	case float32:
		return fromFloat(float64(x))
	case float64:
		return fromFloat(x)
	case []interface{}:
		items := make([]Value, len(x))
		for i, item := range x {
			v, err := FromInterface(item)
			if err != nil {
				return Value{}, fmt.Errorf("index %d: %w", i, err)
			}
			items[i] = v
		}
		return Array(items...), nil
	case map[string]interface{}:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		members := make([]Member, len(keys))
		for i, k := range keys {
			v, err := FromInterface(x[k])
			if err != nil {
				return Value{}, fmt.Errorf("key %q: %w", k, err)
			}
			members[i] = Member{Key: k, Value: v}
		}
		return Object(members...), nil
	case encoding.TextMarshaler:
		text, err := x.MarshalText()
		if err != nil {
			return Value{}, err
		}
		return String(string(text)), nil
	default:
		return Value{}, fmt.Errorf("unsupported type %T", in)
	}
}

func fromFloat(f float64) (Value, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Value{}, fmt.Errorf("number %v has no JSON representation", f)
	}
	return Float(f), nil
}
