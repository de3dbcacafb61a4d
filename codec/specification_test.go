package codec_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thekitchencoder/jspec/codec"
	"github.com/thekitchencoder/jspec/match"
)

const specYAML = `
id: example
criteria:
  - id: age-check
    query:
      age:
        $gte: 18
groups:
  - id: eligibility
    junction: AND
    criteria:
      - ref: age-check
      - id: email-check
        query:
          email:
            $exists: true
`

func TestDecodeSpecificationYAML(t *testing.T) {
	t.Parallel()

	spec, err := codec.DecodeSpecification([]byte(specYAML), codec.FormatYAML)
	require.NoError(t, err)

	assert.Equal(t, "example", spec.ID)
	require.Len(t, spec.Criteria, 1)
	assert.Equal(t, "age-check", spec.Criteria[0].ID)

	require.Len(t, spec.Groups, 1)
	group := spec.Groups[0]
	assert.Equal(t, match.JunctionAnd, group.Junction)
	require.Len(t, group.Children, 2)
	assert.Equal(t, "age-check", group.Children[0].Ref)
	assert.Equal(t, "email-check", group.Children[1].Query.ID)
}

func TestDecodeSpecificationDefaultsJunctionToAnd(t *testing.T) {
	t.Parallel()

	doc := `
id: s
groups:
  - id: g
    criteria:
      - id: a
        query:
          x: {$eq: 1}
`

	spec, err := codec.DecodeSpecification([]byte(doc), codec.FormatAuto)
	require.NoError(t, err)
	assert.Equal(t, match.JunctionAnd, spec.Groups[0].Junction)
}

func TestDecodeSpecificationRejectsUnrecognizedJunction(t *testing.T) {
	t.Parallel()

	doc := `
id: s
groups:
  - id: g
    junction: XOR
    criteria:
      - id: a
        query: {x: {$eq: 1}}
`

	_, err := codec.DecodeSpecification([]byte(doc), codec.FormatAuto)
	require.Error(t, err)
	assert.ErrorIs(t, err, codec.ErrMalformedSpecification)
}

func TestDecodeSpecificationRejectsMissingID(t *testing.T) {
	t.Parallel()

	_, err := codec.DecodeSpecification([]byte("criteria: []\n"), codec.FormatAuto)
	require.Error(t, err)
	assert.ErrorIs(t, err, codec.ErrMalformedSpecification)
}

func TestDecodeSpecificationRejectsDuplicateKey(t *testing.T) {
	t.Parallel()

	doc := `
id: s
id: duplicate
criteria: []
`

	_, err := codec.DecodeSpecification([]byte(doc), codec.FormatAuto)
	require.Error(t, err)
	assert.ErrorIs(t, err, codec.ErrMalformedDocument)
}

func TestDecodedSpecificationEvaluatesEndToEnd(t *testing.T) {
	t.Parallel()

	spec, err := codec.DecodeSpecification([]byte(specYAML), codec.FormatYAML)
	require.NoError(t, err)

	doc, err := codec.DecodeDocument([]byte("age: 25\n"))
	require.NoError(t, err)

	ev := match.NewEvaluator(match.WithDefaults())
	outcome, err := ev.Evaluate(context.Background(), doc, spec)
	require.NoError(t, err)

	cr := outcome.Groups[0].(*match.CompositeResult)
	assert.Equal(t, match.Undetermined, cr.Outcome, "email-check is missing from the document")
}
