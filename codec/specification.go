package codec

import (
	"fmt"
	"strings"

	"github.com/thekitchencoder/jspec/match"
	"github.com/thekitchencoder/jspec/value"
)

// DecodeSpecification parses the specification document shape (§6) from
// input into a *match.Specification. format only affects diagnostics; see
// [Detect]. Structural problems -- a missing id, a criterion whose query is
// not a mapping, an unrecognized junction, or (surfaced from
// match.NewSpecification) a duplicate id or reference cycle -- are reported
// wrapping [ErrMalformedSpecification], never match.ErrInvalidArgument.
func DecodeSpecification(input []byte, format Format) (*match.Specification, error) {
	doc, err := DecodeDocument(input)
	if err != nil {
		return nil, fmt.Errorf("specification (%s): %w", Detect(format, input), err)
	}

	root, ok := doc.Mapping()
	if !ok {
		return nil, fmt.Errorf("%w: specification document must be a mapping", ErrMalformedSpecification)
	}

	id, ok := stringField(root, "id")
	if !ok || id == "" {
		return nil, fmt.Errorf("%w: specification missing non-empty id", ErrMalformedSpecification)
	}

	criteria, err := decodeCriteriaList(root, "criteria")
	if err != nil {
		return nil, err
	}

	groups, err := decodeGroupsList(root)
	if err != nil {
		return nil, err
	}

	spec, err := match.NewSpecification(id, criteria, groups)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedSpecification, err)
	}

	return spec, nil
}

func decodeCriteriaList(root *value.Mapping, key string) ([]*match.QueryCriterion, error) {
	raw, ok := root.Get(key)
	if !ok {
		return nil, nil
	}

	items, ok := raw.Sequence()
	if !ok {
		return nil, fmt.Errorf("%w: %q must be a sequence", ErrMalformedSpecification, key)
	}

	criteria := make([]*match.QueryCriterion, 0, len(items))

	for i, item := range items {
		qc, err := decodeQueryCriterion(item)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", key, i, err)
		}

		criteria = append(criteria, qc)
	}

	return criteria, nil
}

func decodeQueryCriterion(v value.Value) (*match.QueryCriterion, error) {
	m, ok := v.Mapping()
	if !ok {
		return nil, fmt.Errorf("%w: criterion must be a mapping", ErrMalformedSpecification)
	}

	id, ok := stringField(m, "id")
	if !ok || id == "" {
		return nil, fmt.Errorf("%w: criterion missing non-empty id", ErrMalformedSpecification)
	}

	query, ok := m.Get("query")
	if !ok || query.Kind() != value.KindMapping {
		return nil, fmt.Errorf("%w: criterion %q: query must be a mapping", ErrMalformedSpecification, id)
	}

	return &match.QueryCriterion{ID: id, Query: query}, nil
}

func decodeGroupsList(root *value.Mapping) ([]*match.CompositeCriterion, error) {
	raw, ok := root.Get("groups")
	if !ok {
		return nil, nil
	}

	items, ok := raw.Sequence()
	if !ok {
		return nil, fmt.Errorf("%w: %q must be a sequence", ErrMalformedSpecification, "groups")
	}

	groups := make([]*match.CompositeCriterion, 0, len(items))

	for i, item := range items {
		cc, err := decodeCompositeCriterion(item)
		if err != nil {
			return nil, fmt.Errorf("groups[%d]: %w", i, err)
		}

		groups = append(groups, cc)
	}

	return groups, nil
}

func decodeCompositeCriterion(v value.Value) (*match.CompositeCriterion, error) {
	m, ok := v.Mapping()
	if !ok {
		return nil, fmt.Errorf("%w: group must be a mapping", ErrMalformedSpecification)
	}

	id, ok := stringField(m, "id")
	if !ok || id == "" {
		return nil, fmt.Errorf("%w: group missing non-empty id", ErrMalformedSpecification)
	}

	junction, err := decodeJunction(m)
	if err != nil {
		return nil, fmt.Errorf("group %q: %w", id, err)
	}

	raw, ok := m.Get("criteria")
	if !ok {
		return nil, fmt.Errorf("%w: group %q has no criteria", ErrMalformedSpecification, id)
	}

	items, ok := raw.Sequence()
	if !ok {
		return nil, fmt.Errorf("%w: group %q: criteria must be a sequence", ErrMalformedSpecification, id)
	}

	children := make([]match.GroupChild, 0, len(items))

	for i, item := range items {
		child, err := decodeGroupChild(item)
		if err != nil {
			return nil, fmt.Errorf("group %q children[%d]: %w", id, i, err)
		}

		children = append(children, child)
	}

	return &match.CompositeCriterion{ID: id, Junction: junction, Children: children}, nil
}

// decodeJunction defaults to AND when the key is absent, per §6.
func decodeJunction(m *value.Mapping) (match.Junction, error) {
	raw, ok := m.Get("junction")
	if !ok {
		return match.JunctionAnd, nil
	}

	s, ok := raw.String()
	if !ok {
		return 0, fmt.Errorf("%w: junction must be a string", ErrMalformedSpecification)
	}

	switch strings.ToUpper(s) {
	case "AND":
		return match.JunctionAnd, nil
	case "OR":
		return match.JunctionOr, nil
	default:
		return 0, fmt.Errorf("%w: unrecognized junction %q", ErrMalformedSpecification, s)
	}
}

// decodeGroupChild distinguishes the three GroupChild shapes described in
// §6: {ref: <id>}, an inline QueryCriterion ({id, query}), or an inline
// nested group ({id, junction, criteria}).
func decodeGroupChild(v value.Value) (match.GroupChild, error) {
	m, ok := v.Mapping()
	if !ok {
		return match.GroupChild{}, fmt.Errorf("%w: group child must be a mapping", ErrMalformedSpecification)
	}

	if ref, ok := stringField(m, "ref"); ok {
		if ref == "" {
			return match.GroupChild{}, fmt.Errorf("%w: ref must not be empty", ErrMalformedSpecification)
		}

		return match.GroupChild{Ref: ref}, nil
	}

	if m.Has("criteria") {
		cc, err := decodeCompositeCriterion(v)
		if err != nil {
			return match.GroupChild{}, err
		}

		return match.GroupChild{Composite: cc}, nil
	}

	qc, err := decodeQueryCriterion(v)
	if err != nil {
		return match.GroupChild{}, err
	}

	return match.GroupChild{Query: qc}, nil
}

func stringField(m *value.Mapping, key string) (string, bool) {
	v, ok := m.Get(key)
	if !ok {
		return "", false
	}

	return v.String()
}
