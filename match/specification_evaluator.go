package match

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/thekitchencoder/jspec/value"
)

// Option configures an [Evaluator].
type Option func(*Evaluator)

// WithLogger sets the logger the evaluator uses for unknown-operator
// warnings (§4.10). Defaults to a logger that discards output.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Evaluator) {
		e.logger = logger
	}
}

// WithWorkers bounds the number of criteria evaluated concurrently. A
// value <= 0 leaves the default (GOMAXPROCS) in place (§5).
func WithWorkers(n int) Option {
	return func(e *Evaluator) {
		if n > 0 {
			e.workers = n
		}
	}
}

// Evaluator orchestrates evaluation of a [Specification] against a document
// (§4.5): it fans out top-level criteria, resolves groups (including
// forward/backward id references) and assembles the outcome summary.
type Evaluator struct {
	registry *Registry
	logger   *slog.Logger
	workers  int
}

// NewEvaluator builds an Evaluator bound to reg. reg is consulted at
// evaluation time, not copied, so registering new operators on reg after
// construction takes effect on the next Evaluate call.
func NewEvaluator(reg *Registry, opts ...Option) *Evaluator {
	e := &Evaluator{
		registry: reg,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		workers:  runtime.GOMAXPROCS(0),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Evaluate runs the full specification-evaluator algorithm of §4.5 against
// doc. If ctx is cancelled while criteria are in flight, in-progress and
// not-yet-started leaf evaluations short-circuit to Undetermined with a
// "cancelled" reason (§5); Evaluate itself still returns a complete outcome,
// not an error, matching §7's policy that evaluation mishaps degrade to
// UNDETERMINED rather than propagate. The only error it returns wraps
// [ErrInvalidArgument], for a nil spec.
func (e *Evaluator) Evaluate(ctx context.Context, doc value.Value, spec *Specification) (*EvaluationOutcome, error) {
	if spec == nil {
		return nil, fmt.Errorf("%w: specification must not be nil", ErrInvalidArgument)
	}

	leafResults := e.evaluateLeaves(ctx, doc, spec.Criteria)

	resolver := &groupResolver{
		ctx:         ctx,
		evaluator:   e,
		doc:         doc,
		spec:        spec,
		leafResults: leafResults,
		groupOnce:   make(map[string]*sync.Once),
		groupCache:  make(map[string]Result),
	}

	criteriaResults := make([]Result, len(spec.Criteria))
	for i, qc := range spec.Criteria {
		criteriaResults[i] = leafResults[qc.ID]
	}

	groupResults := make([]Result, len(spec.Groups))
	for i, cc := range spec.Groups {
		groupResults[i] = resolver.resolveGroup(cc.ID)
	}

	outcome := &EvaluationOutcome{
		SpecificationID: spec.ID,
		Criteria:        criteriaResults,
		Groups:          groupResults,
	}
	outcome.Summary = summarizeOutcome(outcome)

	return outcome, nil
}

// evaluateLeaves evaluates every top-level QueryCriterion concurrently,
// bounded by e.workers, and returns the results keyed by criterion id
// (§4.5 step 1).
func (e *Evaluator) evaluateLeaves(ctx context.Context, doc value.Value, criteria []*QueryCriterion) map[string]*QueryResult {
	results := make(map[string]*QueryResult, len(criteria))

	var mu sync.Mutex

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(e.workers)

	for _, qc := range criteria {
		qc := qc

		eg.Go(func() error {
			var result *QueryResult

			if err := egCtx.Err(); err != nil {
				result = cancelledResult(qc.ID)
			} else {
				result = evaluateCriterion(e.registry, doc, qc, e.logger)
			}

			mu.Lock()
			results[qc.ID] = result
			mu.Unlock()

			return nil
		})
	}

	_ = eg.Wait()

	return results
}

func cancelledResult(id string) *QueryResult {
	return &QueryResult{
		ID:          id,
		Outcome:     Undetermined,
		Explanation: "cancelled",
	}
}

// groupResolver memoizes composite-group resolution so that a group
// referenced by more than one other group, in either declaration order, is
// only evaluated once (§4.5 step 2). Cycles are impossible here because
// [NewSpecification] rejects them at construction time.
type groupResolver struct {
	ctx       context.Context
	evaluator *Evaluator
	doc       value.Value
	spec      *Specification

	leafResults map[string]*QueryResult

	mu         sync.Mutex
	groupOnce  map[string]*sync.Once
	groupCache map[string]Result
}

func (r *groupResolver) resolveGroup(id string) Result {
	r.mu.Lock()

	once, ok := r.groupOnce[id]
	if !ok {
		once = &sync.Once{}
		r.groupOnce[id] = once
	}

	r.mu.Unlock()

	once.Do(func() {
		cc, _ := r.spec.Group(id)
		result := r.evaluateComposite(cc)

		r.mu.Lock()
		r.groupCache[id] = result
		r.mu.Unlock()
	})

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.groupCache[id]
}

func (r *groupResolver) evaluateComposite(cc *CompositeCriterion) Result {
	children := make([]Result, len(cc.Children))

	for i, child := range cc.Children {
		children[i] = r.resolveChild(child)
	}

	return aggregateComposite(cc, children)
}

func (r *groupResolver) resolveChild(child GroupChild) Result {
	switch {
	case child.Ref != "":
		return r.resolveReference(child.Ref)
	case child.Composite != nil:
		return r.evaluateComposite(child.Composite)
	case child.Query != nil:
		if err := r.ctx.Err(); err != nil {
			return cancelledResult(child.Query.ID)
		}

		return evaluateCriterion(r.evaluator.registry, r.doc, child.Query, r.evaluator.logger)
	default:
		return cancelledResult("")
	}
}

// resolveReference reuses a top-level criterion's or group's already
// computed result, preserving the referencing id on the wrapper so that
// reporting tools can tell a reference apart from the criterion it points
// to (§3 ReferenceResult).
func (r *groupResolver) resolveReference(id string) Result {
	if leaf, ok := r.leafResults[id]; ok {
		return &ReferenceResult{ID: id, Resolved: leaf}
	}

	return &ReferenceResult{ID: id, Resolved: r.resolveGroup(id)}
}

// summarizeOutcome walks the full result tree and computes the outcome
// summary over every leaf QueryResult transitively reachable (§3, §4.5
// step 3), including those nested inside groups and behind references.
func summarizeOutcome(outcome *EvaluationOutcome) Summary {
	var total, matched, notMatched, undetermined int

	var walk func(r Result)

	walk = func(r Result) {
		switch v := r.(type) {
		case *QueryResult:
			total++

			switch v.Outcome {
			case Matched:
				matched++
			case NotMatched:
				notMatched++
			case Undetermined:
				undetermined++
			}
		case *CompositeResult:
			for _, child := range v.Children {
				walk(child)
			}
		case *ReferenceResult:
			walk(v.Resolved)
		}
	}

	for _, r := range outcome.Criteria {
		walk(r)
	}

	for _, r := range outcome.Groups {
		walk(r)
	}

	return Summary{
		Total:           total,
		Matched:         matched,
		NotMatched:      notMatched,
		Undetermined:    undetermined,
		FullyDetermined: undetermined == 0,
	}
}
