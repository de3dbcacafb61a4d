package value

import (
	"fmt"
	"math"
)

// Kind identifies the concrete shape a [Value] holds.
type Kind int

// The kinds a [Value] can take. The zero Kind is [KindNull], so the zero
// [Value] is a valid representation of an absent/null value.
const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindSequence
	KindMapping
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindInt:
		return "integer"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	default:
		return "unknown"
	}
}

// Value is a recursive, immutable sum type used for both documents and query
// operands: a scalar (null, boolean, integer, float, string), an ordered
// [Sequence], or an ordered [Mapping].
//
// The zero Value is null. Build values with the [Null], [Bool], [Int],
// [Float], [String], [NewSequence], and [NewMapping] constructors.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
	seq  []Value
	m    *Mapping
}

// Null returns the null Value.
func Null() Value { return Value{kind: KindNull} }

// Bool wraps a boolean scalar.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int wraps an integer scalar.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Float wraps a floating-point scalar.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// String wraps a string scalar.
func String(s string) Value { return Value{kind: KindString, s: s} }

// NewSequence wraps an ordered list of Values. The slice is not copied;
// callers must not mutate it afterwards.
func NewSequence(items []Value) Value { return Value{kind: KindSequence, seq: items} }

// NewMapping wraps an ordered [Mapping]. A nil Mapping is treated as empty.
func NewMapping(m *Mapping) Value { return Value{kind: KindMapping, m: m} }

// Kind reports which shape the Value holds.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v represents the absence of a value.
func (v Value) IsNull() bool { return v.kind == KindNull }

// IsNumber reports whether v is an integer or a float.
func (v Value) IsNumber() bool { return v.kind == KindInt || v.kind == KindFloat }

// Bool returns the boolean payload and whether v is actually a boolean.
func (v Value) Bool() (bool, bool) { return v.b, v.kind == KindBool }

// Int returns the integer payload and whether v is actually an integer.
func (v Value) Int() (int64, bool) { return v.i, v.kind == KindInt }

// Float64 returns v widened to float64, and whether v is a number at all
// (integer or float).
func (v Value) Float64() (float64, bool) {
	switch v.kind {
	case KindInt:
		return float64(v.i), true
	case KindFloat:
		return v.f, true
	default:
		return 0, false
	}
}

// String returns the string payload and whether v is actually a string.
func (v Value) String() (string, bool) { return v.s, v.kind == KindString }

// Sequence returns the element slice and whether v is actually a sequence.
// The returned slice must not be mutated.
func (v Value) Sequence() ([]Value, bool) { return v.seq, v.kind == KindSequence }

// Mapping returns the underlying [Mapping] and whether v is actually a
// mapping. The returned Mapping must not be mutated.
func (v Value) Mapping() (*Mapping, bool) {
	if v.kind != KindMapping {
		return nil, false
	}

	if v.m == nil {
		return emptyMapping, true
	}

	return v.m, true
}

// TypeName returns the JSON-style type name used by the $type operator:
// "null", "array", "string", "number", "boolean", or "object".
func TypeName(v Value) string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindInt, KindFloat:
		return "number"
	case KindString:
		return "string"
	case KindSequence:
		return "array"
	case KindMapping:
		return "object"
	default:
		return "unknown"
	}
}

// GoString implements fmt.GoStringer for readable test failure output and
// for rendering a query fragment into a non-matching reason string.
func (v Value) GoString() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		return fmt.Sprintf("%t", v.b)
	case KindInt:
		return fmt.Sprintf("%d", v.i)
	case KindFloat:
		return fmt.Sprintf("%g", v.f)
	case KindString:
		return fmt.Sprintf("%q", v.s)
	case KindSequence:
		return fmt.Sprintf("[%d items]", len(v.seq))
	case KindMapping:
		if v.m == nil {
			return "{}"
		}

		return fmt.Sprintf("{%d keys}", v.m.Len())
	default:
		return "<invalid>"
	}
}

// Equal implements the equality semantics of §4.6: numbers compare as
// double-precision floats, strings are code-point identical, sequences
// compare element-wise, mappings compare by key set and per-key value, and
// null equals only null.
func Equal(a, b Value) bool {
	if a.IsNumber() && b.IsNumber() {
		af, _ := a.Float64()
		bf, _ := b.Float64()

		return af == bf
	}

	if a.kind != b.kind {
		return false
	}

	switch a.kind {
	case KindNull:
		return true
	case KindBool:
		return a.b == b.b
	case KindString:
		return a.s == b.s
	case KindSequence:
		if len(a.seq) != len(b.seq) {
			return false
		}

		for i := range a.seq {
			if !Equal(a.seq[i], b.seq[i]) {
				return false
			}
		}

		return true
	case KindMapping:
		am, _ := a.Mapping()
		bm, _ := b.Mapping()

		if am.Len() != bm.Len() {
			return false
		}

		for _, k := range am.Keys() {
			av, _ := am.Get(k)

			bv, ok := bm.Get(k)
			if !ok || !Equal(av, bv) {
				return false
			}
		}

		return true
	default:
		return false
	}
}

// Compare attempts an ordered comparison between two Values, returning -1,
// 0, or 1 and ok=true when both sides are comparable. Numbers are compared
// as double-precision floats (preserving ordering for integers up to 2^53).
// Strings compare lexicographically. Any other pairing, including a
// not-a-number float on either side, is not comparable.
func Compare(a, b Value) (int, bool) {
	if a.IsNumber() && b.IsNumber() {
		af, _ := a.Float64()
		bf, _ := b.Float64()

		if math.IsNaN(af) || math.IsNaN(bf) {
			return 0, false
		}

		switch {
		case af < bf:
			return -1, true
		case af > bf:
			return 1, true
		default:
			return 0, true
		}
	}

	if a.kind == KindString && b.kind == KindString {
		switch {
		case a.s < b.s:
			return -1, true
		case a.s > b.s:
			return 1, true
		default:
			return 0, true
		}
	}

	return 0, false
}
