package match

import (
	"regexp"

	"github.com/thekitchencoder/jspec/value"
)

// registerBuiltins wires the operators described in §4.3 into reg. $elemMatch
// closes over reg itself (not a snapshot of its contents), so it always
// recurses using whatever operators are registered in reg at call time,
// including operators registered after WithDefaults returns.
func registerBuiltins(reg *Registry) {
	_ = reg.Register("$eq", opEq)
	_ = reg.Register("$ne", opNe)
	_ = reg.Register("$gt", opGt)
	_ = reg.Register("$gte", opGte)
	_ = reg.Register("$lt", opLt)
	_ = reg.Register("$lte", opLte)
	_ = reg.Register("$in", opIn)
	_ = reg.Register("$nin", opNin)
	_ = reg.Register("$all", opAll)
	_ = reg.Register("$size", opSize)
	_ = reg.Register("$exists", opExists)
	_ = reg.Register("$type", opType)
	_ = reg.Register("$regex", opRegex)
	_ = reg.Register("$elemMatch", elemMatchHandler(reg))
}

func opEq(documentValue, operand value.Value) bool {
	return value.Equal(documentValue, operand)
}

func opNe(documentValue, operand value.Value) bool {
	return !value.Equal(documentValue, operand)
}

func opGt(documentValue, operand value.Value) bool {
	cmp, ok := value.Compare(documentValue, operand)

	return ok && cmp > 0
}

func opGte(documentValue, operand value.Value) bool {
	cmp, ok := value.Compare(documentValue, operand)

	return ok && cmp >= 0
}

func opLt(documentValue, operand value.Value) bool {
	cmp, ok := value.Compare(documentValue, operand)

	return ok && cmp < 0
}

func opLte(documentValue, operand value.Value) bool {
	cmp, ok := value.Compare(documentValue, operand)

	return ok && cmp <= 0
}

// opIn reports whether documentValue (scalar) equals any element of the
// operand sequence, or, when documentValue is itself a sequence, whether
// any of its elements equals any element of the operand sequence (§4.3).
func opIn(documentValue, operand value.Value) bool {
	wanted, ok := operand.Sequence()
	if !ok {
		return false
	}

	if haystack, isSeq := documentValue.Sequence(); isSeq {
		for _, have := range haystack {
			if containsValue(wanted, have) {
				return true
			}
		}

		return false
	}

	return containsValue(wanted, documentValue)
}

func opNin(documentValue, operand value.Value) bool {
	return !opIn(documentValue, operand)
}

func containsValue(haystack []value.Value, needle value.Value) bool {
	for _, v := range haystack {
		if value.Equal(v, needle) {
			return true
		}
	}

	return false
}

// opAll reports whether every element of the operand sequence is present
// somewhere in the documentValue sequence. documentValue must itself be a
// sequence (§4.3).
func opAll(documentValue, operand value.Value) bool {
	wanted, ok := operand.Sequence()
	if !ok {
		return false
	}

	haystack, isSeq := documentValue.Sequence()
	if !isSeq {
		return false
	}

	for _, want := range wanted {
		if !containsValue(haystack, want) {
			return false
		}
	}

	return true
}

// opSize reports whether documentValue is a sequence of the length named
// by operand.
func opSize(documentValue, operand value.Value) bool {
	items, ok := documentValue.Sequence()
	if !ok {
		return false
	}

	n, ok := operand.Int()
	if !ok {
		return false
	}

	return int64(len(items)) == n
}

// opExists reports whether the presence of documentValue matches operand.
// Note that the evaluator's absent-value step (§4.2 algorithm step 1) always
// short-circuits a truly absent path to UNDETERMINED before any operator
// mapping is consulted, so in practice this handler only ever sees a
// present value; it is still registered so it can be introspected via
// [Registry.Contains]/[Registry.AvailableOperators] and overridden like any
// other operator.
func opExists(documentValue, operand value.Value) bool {
	want, ok := operand.Bool()
	if !ok {
		want = true
	}

	return !documentValue.IsNull() == want
}

func opType(documentValue, operand value.Value) bool {
	want, ok := operand.String()
	if !ok {
		return false
	}

	return value.TypeName(documentValue) == want
}

// opRegex reports whether documentValue is a string matching the operand
// pattern. Patterns that fail to compile never match rather than panicking,
// so the evaluator reports such a clause as NotMatched, like any other
// failing operator (see evaluator.go).
func opRegex(documentValue, operand value.Value) bool {
	s, ok := documentValue.String()
	if !ok {
		return false
	}

	pattern, ok := operand.String()
	if !ok {
		return false
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return false
	}

	return re.MatchString(s)
}

// elemMatchHandler returns the $elemMatch handler bound to reg: documentValue
// must be a sequence, and at least one element must satisfy the operand
// sub-query when evaluated as a full mapping-query criterion (§4.3).
func elemMatchHandler(reg *Registry) Handler {
	return func(documentValue, operand value.Value) bool {
		items, ok := documentValue.Sequence()
		if !ok {
			return false
		}

		for _, item := range items {
			matched, _, _ := evaluateNode(reg, item, operand, "")
			if matched {
				return true
			}
		}

		return false
	}
}
