// Package wire implements the Basebase wire format: the tagged Value union
// exchanged with the remote store, the Document that carries a field mapping
// of Values, and the codecs that convert both to and from native Go values.
//
// A Value always has exactly one active kind. Values are built with the
// constructors in this package and are never mutated afterwards; accessors
// hand out copies of array and map payloads.
//
// Native values decode to a small closed set of Go types:
//
//	null    -> nil
//	string  -> string
//	integer -> int64
//	double  -> float64
//	boolean -> bool
//	array   -> []any
//	map     -> map[string]any
package wire

// Kind identifies the active case of a Value.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindInteger
	KindDouble
	KindBoolean
	KindArray
	KindMap
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	case KindDouble:
		return "double"
	case KindBoolean:
		return "boolean"
	case KindArray:
		return "array"
	case KindMap:
		return "map"
	default:
		return "unknown"
	}
}

// Value is a single wire value. The zero Value is the null value.
type Value struct {
	kind Kind

	s   string
	i   int64
	d   float64
	b   bool
	arr []Value
	m   map[string]Value
}

// Null returns the null value.
func Null() Value {
	return Value{kind: KindNull}
}

// String returns a string value.
func String(s string) Value {
	return Value{kind: KindString, s: s}
}

// Integer returns an integer value.
func Integer(i int64) Value {
	return Value{kind: KindInteger, i: i}
}

// Double returns a double value.
func Double(d float64) Value {
	return Value{kind: KindDouble, d: d}
}

// Boolean returns a boolean value.
func Boolean(b bool) Value {
	return Value{kind: KindBoolean, b: b}
}

// Array returns an array value holding a copy of values.
func Array(values ...Value) Value {
	arr := make([]Value, len(values))
	copy(arr, values)
	return Value{kind: KindArray, arr: arr}
}

// Map returns a map value holding a copy of fields.
func Map(fields map[string]Value) Value {
	m := make(map[string]Value, len(fields))
	for k, v := range fields {
		m[k] = v
	}
	return Value{kind: KindMap, m: m}
}

// Kind returns the active case of v.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether v is the null value.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

func (v Value) AsString() (string, bool) {
	return v.s, v.kind == KindString
}

func (v Value) AsInteger() (int64, bool) {
	return v.i, v.kind == KindInteger
}

func (v Value) AsDouble() (float64, bool) {
	return v.d, v.kind == KindDouble
}

func (v Value) AsBoolean() (bool, bool) {
	return v.b, v.kind == KindBoolean
}

// AsArray returns a copy of the elements of an array value.
func (v Value) AsArray() ([]Value, bool) {
	if v.kind != KindArray {
		return nil, false
	}
	arr := make([]Value, len(v.arr))
	copy(arr, v.arr)
	return arr, true
}

// AsMap returns a copy of the fields of a map value.
func (v Value) AsMap() (map[string]Value, bool) {
	if v.kind != KindMap {
		return nil, false
	}
	m := make(map[string]Value, len(v.m))
	for k, f := range v.m {
		m[k] = f
	}
	return m, true
}
