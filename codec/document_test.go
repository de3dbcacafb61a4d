package codec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thekitchencoder/jspec/codec"
)

func TestDecodeDocumentYAMLMapping(t *testing.T) {
	t.Parallel()

	doc, err := codec.DecodeDocument([]byte("age: 25\nname: alice\n"))
	require.NoError(t, err)

	m, ok := doc.Mapping()
	require.True(t, ok)

	age, ok := m.Get("age")
	require.True(t, ok)

	n, ok := age.Int()
	require.True(t, ok)
	assert.Equal(t, int64(25), n)
}

func TestDecodeDocumentJSON(t *testing.T) {
	t.Parallel()

	doc, err := codec.DecodeDocument([]byte(`{"items": [1, 2, 3], "active": true}`))
	require.NoError(t, err)

	m, ok := doc.Mapping()
	require.True(t, ok)

	items, ok := m.Get("items")
	require.True(t, ok)

	seq, ok := items.Sequence()
	require.True(t, ok)
	assert.Len(t, seq, 3)

	active, ok := m.Get("active")
	require.True(t, ok)

	b, ok := active.Bool()
	require.True(t, ok)
	assert.True(t, b)
}

func TestDecodeDocumentEmptyIsNull(t *testing.T) {
	t.Parallel()

	doc, err := codec.DecodeDocument([]byte("   \n"))
	require.NoError(t, err)
	assert.True(t, doc.IsNull())
}

func TestDecodeDocumentInvalidYAML(t *testing.T) {
	t.Parallel()

	_, err := codec.DecodeDocument([]byte("key: [unterminated\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, codec.ErrInvalidYAML)
}

func TestDecodeDocumentRejectsDuplicateKey(t *testing.T) {
	t.Parallel()

	_, err := codec.DecodeDocument([]byte("name: alice\nname: bob\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, codec.ErrMalformedDocument)
}

func TestDecodeDocumentMergeKeyShadowsRatherThanErrors(t *testing.T) {
	t.Parallel()

	doc, err := codec.DecodeDocument([]byte("base: &b\n  role: admin\nuser:\n  <<: *b\n  role: guest\n"))
	require.NoError(t, err)

	m, _ := doc.Mapping()
	user, ok := m.Get("user")
	require.True(t, ok)

	um, ok := user.Mapping()
	require.True(t, ok)

	role, ok := um.Get("role")
	require.True(t, ok)

	s, ok := role.String()
	require.True(t, ok)
	assert.Equal(t, "guest", s)
}

func TestDecodeDocumentAnchorsAndAliases(t *testing.T) {
	t.Parallel()

	doc, err := codec.DecodeDocument([]byte("base: &b\n  role: admin\nuser:\n  <<: *b\n  name: alice\n"))
	require.NoError(t, err)

	m, _ := doc.Mapping()
	user, ok := m.Get("user")
	require.True(t, ok)

	um, ok := user.Mapping()
	require.True(t, ok)

	role, ok := um.Get("role")
	require.True(t, ok)

	s, ok := role.String()
	require.True(t, ok)
	assert.Equal(t, "admin", s)
}
