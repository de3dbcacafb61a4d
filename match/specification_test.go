package match_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thekitchencoder/jspec/match"
	"github.com/thekitchencoder/jspec/value"
)

func queryCriterion(id string) *match.QueryCriterion {
	return &match.QueryCriterion{ID: id, Query: value.NewMapping(mappingOf("$always", value.Null()))}
}

func TestNewSpecificationRejectsEmptyID(t *testing.T) {
	t.Parallel()

	_, err := match.NewSpecification("s", []*match.QueryCriterion{{ID: ""}}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, match.ErrInvalidArgument)
}

func TestNewSpecificationRejectsDuplicateID(t *testing.T) {
	t.Parallel()

	_, err := match.NewSpecification("s",
		[]*match.QueryCriterion{queryCriterion("a"), queryCriterion("a")}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, match.ErrInvalidArgument)
}

func TestNewSpecificationRejectsUnknownRef(t *testing.T) {
	t.Parallel()

	group := &match.CompositeCriterion{
		ID:       "g",
		Junction: match.JunctionAnd,
		Children: []match.GroupChild{{Ref: "missing"}},
	}

	_, err := match.NewSpecification("s", nil, []*match.CompositeCriterion{group})
	require.Error(t, err)
	assert.ErrorIs(t, err, match.ErrInvalidArgument)
}

func TestNewSpecificationRejectsCycle(t *testing.T) {
	t.Parallel()

	groupA := &match.CompositeCriterion{ID: "a", Junction: match.JunctionAnd, Children: []match.GroupChild{{Ref: "b"}}}
	groupB := &match.CompositeCriterion{ID: "b", Junction: match.JunctionAnd, Children: []match.GroupChild{{Ref: "a"}}}

	_, err := match.NewSpecification("s", nil, []*match.CompositeCriterion{groupA, groupB})
	require.Error(t, err)
	assert.ErrorIs(t, err, match.ErrInvalidArgument)
}

func TestNewSpecificationAcceptsValidReferences(t *testing.T) {
	t.Parallel()

	qc := queryCriterion("leaf")
	group := &match.CompositeCriterion{
		ID:       "g",
		Junction: match.JunctionAnd,
		Children: []match.GroupChild{{Ref: "leaf"}},
	}

	spec, err := match.NewSpecification("s", []*match.QueryCriterion{qc}, []*match.CompositeCriterion{group})
	require.NoError(t, err)

	got, ok := spec.Criterion("leaf")
	require.True(t, ok)
	assert.Same(t, qc, got)
}
