package match

import "strings"

// EvaluationState is the tri-valued outcome of matching (§2).
type EvaluationState int

const (
	// NotMatched means the criterion or group was fully evaluated and failed.
	NotMatched EvaluationState = iota
	// Matched means the criterion or group was fully evaluated and passed.
	Matched
	// Undetermined means evaluation could not reach a definite verdict, for
	// example because data the query needs is absent from the document or
	// evaluation was cancelled. An Undetermined child never silently collapses to
	// NotMatched; it propagates through junction aggregation per §4.4.
	Undetermined
)

// String renders the state the way outcomes are reported (§4.9, §6).
func (s EvaluationState) String() string {
	switch s {
	case Matched:
		return "matched"
	case Undetermined:
		return "undetermined"
	default:
		return "not_matched"
	}
}

// Result is satisfied by every node in an evaluation's result tree.
type Result interface {
	// CriterionID is the id of the criterion or group that produced this
	// result.
	CriterionID() string
	// State is this node's tri-valued outcome.
	State() EvaluationState
	// Reason is a short human-readable explanation, empty when the
	// criterion matched cleanly.
	Reason() string
}

// QueryResult is the outcome of evaluating a single [QueryCriterion]
// against a document (§4.2).
type QueryResult struct {
	ID          string
	Outcome     EvaluationState
	Explanation string
	// MissingPaths lists document paths that were absent during
	// evaluation, using "root" to denote the document root itself.
	MissingPaths []string
}

// CriterionID implements [Result].
func (r *QueryResult) CriterionID() string { return r.ID }

// State implements [Result].
func (r *QueryResult) State() EvaluationState { return r.Outcome }

// Reason implements [Result].
func (r *QueryResult) Reason() string { return r.Explanation }

// Statistics summarizes a [CompositeResult]'s children (§4.4).
type Statistics struct {
	Total        int
	Matched      int
	NotMatched   int
	Undetermined int
}

// CompositeResult is the outcome of aggregating a [CompositeCriterion]'s
// children under its junction (§4.4).
type CompositeResult struct {
	ID          string
	JunctionOp  Junction
	Outcome     EvaluationState
	Children    []Result
	Stats       Statistics
	Explanation string
}

// CriterionID implements [Result].
func (r *CompositeResult) CriterionID() string { return r.ID }

// State implements [Result].
func (r *CompositeResult) State() EvaluationState { return r.Outcome }

// Reason implements [Result].
func (r *CompositeResult) Reason() string { return r.Explanation }

// ReferenceResult wraps the result of resolving a [GroupChild.Ref]: it
// carries the same id and state as the referenced criterion or group but
// keeps the id the reference was made under, since a Specification may
// reference the same criterion id from more than one group.
type ReferenceResult struct {
	ID       string
	Resolved Result
}

// CriterionID implements [Result].
func (r *ReferenceResult) CriterionID() string { return r.ID }

// State implements [Result].
func (r *ReferenceResult) State() EvaluationState { return r.Resolved.State() }

// Reason implements [Result].
func (r *ReferenceResult) Reason() string { return r.Resolved.Reason() }

// Summary is the outcome-wide tally computed over every leaf QueryResult
// transitively reachable from an [EvaluationOutcome]'s top-level results,
// including those nested inside groups and behind references (§3).
type Summary struct {
	Total           int
	Matched         int
	NotMatched      int
	Undetermined    int
	FullyDetermined bool
}

// EvaluationOutcome is the result of evaluating an entire [Specification]
// against a document (§4.5).
type EvaluationOutcome struct {
	SpecificationID string
	Criteria        []Result
	Groups          []Result
	Summary         Summary
}

// joinReasons builds a comma-joined reason string from a CompositeResult's
// non-matching children, used by the composite aggregator (§4.4).
func joinReasons(parts []string) string {
	return strings.Join(parts, ", ")
}
