package match_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thekitchencoder/jspec/match"
	"github.com/thekitchencoder/jspec/value"
)

func docOf(pairs ...any) value.Value {
	m := value.NewOrderedMapping()
	for i := 0; i+1 < len(pairs); i += 2 {
		m.Set(pairs[i].(string), pairs[i+1].(value.Value))
	}

	return value.NewMapping(m)
}

func queryOf(pairs ...any) value.Value {
	m := value.NewOrderedMapping()
	for i := 0; i+1 < len(pairs); i += 2 {
		m.Set(pairs[i].(string), pairs[i+1].(value.Value))
	}

	return value.NewMapping(m)
}

func opOf(op string, v value.Value) value.Value {
	return value.NewMapping(mappingOf(op, v))
}

func TestEvaluateSimpleMatch(t *testing.T) {
	t.Parallel()

	doc := docOf("age", value.Int(25))
	qc := &match.QueryCriterion{ID: "age-check", Query: queryOf("age", opOf("$gte", value.Int(18)))}
	spec, err := match.NewSpecification("s", []*match.QueryCriterion{qc}, nil)
	require.NoError(t, err)

	ev := match.NewEvaluator(match.WithDefaults())
	outcome, err := ev.Evaluate(context.Background(), doc, spec)
	require.NoError(t, err)

	require.Len(t, outcome.Criteria, 1)
	qr := outcome.Criteria[0].(*match.QueryResult)
	assert.Equal(t, match.Matched, qr.Outcome)
	assert.Empty(t, qr.MissingPaths)
	assert.Equal(t, match.Summary{Total: 1, Matched: 1, FullyDetermined: true}, outcome.Summary)
}

func TestEvaluateMissingField(t *testing.T) {
	t.Parallel()

	doc := docOf("age", value.Int(25))
	qc := &match.QueryCriterion{ID: "email-check", Query: queryOf("email", opOf("$exists", value.Bool(true)))}
	spec, err := match.NewSpecification("s", []*match.QueryCriterion{qc}, nil)
	require.NoError(t, err)

	ev := match.NewEvaluator(match.WithDefaults())
	outcome, err := ev.Evaluate(context.Background(), doc, spec)
	require.NoError(t, err)

	qr := outcome.Criteria[0].(*match.QueryResult)
	assert.Equal(t, match.Undetermined, qr.Outcome)
	assert.Equal(t, []string{"email"}, qr.MissingPaths)
	assert.Equal(t, "Missing data", qr.Reason())
}

func TestEvaluateValueMismatch(t *testing.T) {
	t.Parallel()

	doc := docOf("country", value.String("UK"))
	qc := &match.QueryCriterion{ID: "country-check", Query: queryOf("country", opOf("$eq", value.String("US")))}
	spec, err := match.NewSpecification("s", []*match.QueryCriterion{qc}, nil)
	require.NoError(t, err)

	ev := match.NewEvaluator(match.WithDefaults())
	outcome, err := ev.Evaluate(context.Background(), doc, spec)
	require.NoError(t, err)

	qr := outcome.Criteria[0].(*match.QueryResult)
	assert.Equal(t, match.NotMatched, qr.Outcome)
	assert.Empty(t, qr.MissingPaths)
	assert.Contains(t, qr.Reason(), "Non-matching values")
}

func TestEvaluateCompositeAndMixed(t *testing.T) {
	t.Parallel()

	doc := docOf("age", value.Int(25))

	ageOK := &match.QueryCriterion{ID: "age-check", Query: queryOf("age", opOf("$gte", value.Int(18)))}
	emailCheck := &match.QueryCriterion{ID: "email-check", Query: queryOf("email", opOf("$exists", value.Bool(true)))}

	group := &match.CompositeCriterion{
		ID:       "g",
		Junction: match.JunctionAnd,
		Children: []match.GroupChild{{Query: ageOK}, {Query: emailCheck}},
	}

	spec, err := match.NewSpecification("s", nil, []*match.CompositeCriterion{group})
	require.NoError(t, err)

	ev := match.NewEvaluator(match.WithDefaults())
	outcome, err := ev.Evaluate(context.Background(), doc, spec)
	require.NoError(t, err)

	cr := outcome.Groups[0].(*match.CompositeResult)
	assert.Equal(t, match.Undetermined, cr.Outcome)
	assert.Equal(t, match.Statistics{Total: 2, Matched: 1, Undetermined: 1}, cr.Stats)
}

func TestEvaluateCompositeOrWithUndeterminedChild(t *testing.T) {
	t.Parallel()

	doc := docOf("role", value.String("admin"))

	roleOK := &match.QueryCriterion{ID: "role-check", Query: queryOf("role", opOf("$eq", value.String("admin")))}
	levelCheck := &match.QueryCriterion{ID: "level-check", Query: queryOf("level", opOf("$gte", value.Int(10)))}

	group := &match.CompositeCriterion{
		ID:       "g",
		Junction: match.JunctionOr,
		Children: []match.GroupChild{{Query: roleOK}, {Query: levelCheck}},
	}

	spec, err := match.NewSpecification("s", nil, []*match.CompositeCriterion{group})
	require.NoError(t, err)

	ev := match.NewEvaluator(match.WithDefaults())
	outcome, err := ev.Evaluate(context.Background(), doc, spec)
	require.NoError(t, err)

	cr := outcome.Groups[0].(*match.CompositeResult)
	assert.Equal(t, match.Matched, cr.Outcome)
	assert.Equal(t, match.Statistics{Total: 2, Matched: 1, Undetermined: 1}, cr.Stats)
}

func TestEvaluateNestedElemMatch(t *testing.T) {
	t.Parallel()

	item1 := docOf("sku", value.String("a"), "qty", value.Int(3))
	item2 := docOf("sku", value.String("b"), "qty", value.Int(1))
	doc := docOf("items", value.NewSequence([]value.Value{item1, item2}))

	elemQuery := opOf("$elemMatch", queryOf("qty", opOf("$gte", value.Int(2))))
	qc := &match.QueryCriterion{ID: "items-check", Query: queryOf("items", elemQuery)}

	spec, err := match.NewSpecification("s", []*match.QueryCriterion{qc}, nil)
	require.NoError(t, err)

	ev := match.NewEvaluator(match.WithDefaults())
	outcome, err := ev.Evaluate(context.Background(), doc, spec)
	require.NoError(t, err)

	qr := outcome.Criteria[0].(*match.QueryResult)
	assert.Equal(t, match.Matched, qr.Outcome)
}

func TestEvaluateGroupReferenceReusesLeafResult(t *testing.T) {
	t.Parallel()

	doc := docOf("age", value.Int(25))
	ageOK := &match.QueryCriterion{ID: "age-check", Query: queryOf("age", opOf("$gte", value.Int(18)))}

	group := &match.CompositeCriterion{
		ID:       "g",
		Junction: match.JunctionAnd,
		Children: []match.GroupChild{{Ref: "age-check"}},
	}

	spec, err := match.NewSpecification("s", []*match.QueryCriterion{ageOK}, []*match.CompositeCriterion{group})
	require.NoError(t, err)

	ev := match.NewEvaluator(match.WithDefaults())
	outcome, err := ev.Evaluate(context.Background(), doc, spec)
	require.NoError(t, err)

	cr := outcome.Groups[0].(*match.CompositeResult)
	require.Len(t, cr.Children, 1)

	ref, ok := cr.Children[0].(*match.ReferenceResult)
	require.True(t, ok)
	assert.Equal(t, "age-check", ref.CriterionID())
	assert.Equal(t, match.Matched, ref.State())
}

func TestEvaluateCancelledContextYieldsUndetermined(t *testing.T) {
	t.Parallel()

	doc := docOf("age", value.Int(25))
	qc := &match.QueryCriterion{ID: "age-check", Query: queryOf("age", opOf("$gte", value.Int(18)))}
	spec, err := match.NewSpecification("s", []*match.QueryCriterion{qc}, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ev := match.NewEvaluator(match.WithDefaults())
	outcome, err := ev.Evaluate(ctx, doc, spec)
	require.NoError(t, err)

	qr := outcome.Criteria[0].(*match.QueryResult)
	assert.Equal(t, match.Undetermined, qr.Outcome)
	assert.Equal(t, "cancelled", qr.Reason())
}

func TestEvaluateIsDeterministicAcrossRuns(t *testing.T) {
	t.Parallel()

	doc := docOf("age", value.Int(25))
	qc := &match.QueryCriterion{ID: "age-check", Query: queryOf("age", opOf("$gte", value.Int(18)))}
	spec, err := match.NewSpecification("s", []*match.QueryCriterion{qc}, nil)
	require.NoError(t, err)

	ev := match.NewEvaluator(match.WithDefaults())

	first, err := ev.Evaluate(context.Background(), doc, spec)
	require.NoError(t, err)

	second, err := ev.Evaluate(context.Background(), doc, spec)
	require.NoError(t, err)

	assert.Equal(t, first.Summary, second.Summary)
}
