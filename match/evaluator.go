package match

import (
	"fmt"
	"log/slog"

	"github.com/thekitchencoder/jspec/value"
)

// evaluateNode implements the recursive criterion-matching algorithm of
// §4.2. It returns whether query matched the subtree at path, the dotted
// paths that were absent along the way, and any unknown-operator warnings
// encountered (which never affect the match result).
func evaluateNode(reg *Registry, doc, query value.Value, path string) (matched bool, missing, warnings []string) {
	if doc.IsNull() {
		return false, []string{displayPath(path)}, nil
	}

	switch query.Kind() {
	case value.KindSequence:
		return evaluateSequenceQuery(reg, doc, query, path)
	case value.KindMapping:
		m, _ := query.Mapping()
		if m.HasOperatorKeys() {
			return evaluateOperatorMapping(reg, doc, m)
		}

		return evaluateFieldMapping(reg, doc, m, path)
	default:
		return value.Equal(doc, query), nil, nil
	}
}

func evaluateSequenceQuery(reg *Registry, doc, query value.Value, path string) (matched bool, missing, warnings []string) {
	docItems, ok := doc.Sequence()
	if !ok {
		return false, nil, nil
	}

	queryItems, _ := query.Sequence()
	if len(docItems) != len(queryItems) {
		return false, nil, nil
	}

	matched = true

	for i, qi := range queryItems {
		m, ms, ws := evaluateNode(reg, docItems[i], qi, buildIndexPath(path, i))
		if !m {
			matched = false
		}

		missing = append(missing, ms...)
		warnings = append(warnings, ws...)
	}

	return matched, missing, warnings
}

// evaluateOperatorMapping treats m as a set of $-prefixed operator clauses
// applied to doc directly. Non-$ keys are ignored. An unknown operator is
// skipped with a warning rather than failing the clause.
func evaluateOperatorMapping(reg *Registry, doc value.Value, m *value.Mapping) (matched bool, missing, warnings []string) {
	matched = true

	m.Range(func(key string, operand value.Value) bool {
		if len(key) == 0 || key[0] != '$' {
			return true
		}

		handler, ok := reg.Get(key)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("unknown operator %q", key))

			return true
		}

		// A handler that panics is treated as having returned false.
		passed := func() (ok bool) {
			defer func() {
				if recover() != nil {
					ok = false
				}
			}()

			return handler(doc, operand)
		}()

		if !passed {
			matched = false

			return false
		}

		return true
	})

	return matched, nil, warnings
}

func evaluateFieldMapping(reg *Registry, doc value.Value, m *value.Mapping, path string) (matched bool, missing, warnings []string) {
	docMapping, ok := doc.Mapping()
	if !ok {
		return false, nil, nil
	}

	matched = true

	m.Range(func(key string, subQuery value.Value) bool {
		childDoc, present := docMapping.Get(key)
		if !present {
			childDoc = value.Null()
		}

		m, ms, ws := evaluateNode(reg, childDoc, subQuery, buildFieldPath(path, key))
		if !m {
			matched = false
		}

		missing = append(missing, ms...)
		warnings = append(warnings, ws...)

		return true
	})

	return matched, missing, warnings
}

// evaluateCriterion runs the full §4.2 algorithm for one [QueryCriterion]
// against a document and builds the resulting [QueryResult], logging any
// unknown-operator warning at warn level (§7, §4.10).
func evaluateCriterion(reg *Registry, doc value.Value, qc *QueryCriterion, logger *slog.Logger) *QueryResult {
	matched, missing, warnings := evaluateNode(reg, doc, qc.Query, "")

	for _, w := range warnings {
		logger.Warn("unknown operator encountered", "criterion", qc.ID, "detail", w)
	}

	result := &QueryResult{ID: qc.ID, MissingPaths: missing}

	switch {
	case matched:
		result.Outcome = Matched
	case len(missing) > 0:
		result.Outcome = Undetermined
		result.Explanation = "Missing data"
	default:
		result.Outcome = NotMatched
		result.Explanation = "Non-matching values at " + qc.Query.GoString()
	}

	return result
}
