package match

import (
	"fmt"

	"github.com/thekitchencoder/jspec/value"
)

// Junction is the logical connective of a [CompositeCriterion].
type Junction int

// The two supported junctions.
const (
	JunctionAnd Junction = iota
	JunctionOr
)

// String returns "AND" or "OR".
func (j Junction) String() string {
	if j == JunctionOr {
		return "OR"
	}

	return "AND"
}

// QueryCriterion is an identified leaf constraint: a query expression
// matched against a document subtree (§4.2).
type QueryCriterion struct {
	ID    string
	Query value.Value // must be of KindMapping
}

// GroupChild is one element of a [CompositeCriterion]'s children. Exactly
// one of Query, Composite, or Ref is set: an inline leaf criterion, an
// inline nested group, or an id-reference to a top-level [QueryCriterion]
// or [CompositeCriterion] declared elsewhere in the specification.
type GroupChild struct {
	Query     *QueryCriterion
	Composite *CompositeCriterion
	Ref       string
}

// CompositeCriterion is an identified group of children joined by a
// [Junction] (§4.4).
type CompositeCriterion struct {
	ID       string
	Junction Junction
	Children []GroupChild
}

// Specification is the top-level container bundling loose criteria and
// groups (§3). Build one with [NewSpecification], which validates id
// uniqueness and the absence of reference cycles.
type Specification struct {
	ID       string
	Criteria []*QueryCriterion
	Groups   []*CompositeCriterion

	criteriaByID map[string]*QueryCriterion
	groupsByID   map[string]*CompositeCriterion
}

// NewSpecification validates and constructs a Specification.
//
// Every QueryCriterion and CompositeCriterion, including those nested
// inline inside a group's children, must have a non-empty id, and all ids
// (criteria, groups, and nested inline criteria/groups) must be unique
// within the specification. A GroupChild.Ref must name a top-level
// criterion or group id, and the reference graph formed by Ref edges (and
// by the Ref edges reachable through nested inline groups) must be acyclic.
//
// Returns an error wrapping [ErrInvalidArgument] on any violation.
func NewSpecification(id string, criteria []*QueryCriterion, groups []*CompositeCriterion) (*Specification, error) {
	spec := &Specification{
		ID:           id,
		Criteria:     criteria,
		Groups:       groups,
		criteriaByID: make(map[string]*QueryCriterion, len(criteria)),
		groupsByID:   make(map[string]*CompositeCriterion, len(groups)),
	}

	seen := make(map[string]bool)

	for _, qc := range criteria {
		if err := requireID(qc.ID); err != nil {
			return nil, err
		}

		if err := claimID(seen, qc.ID); err != nil {
			return nil, err
		}

		spec.criteriaByID[qc.ID] = qc
	}

	for _, cc := range groups {
		if err := requireID(cc.ID); err != nil {
			return nil, err
		}

		if err := claimID(seen, cc.ID); err != nil {
			return nil, err
		}

		spec.groupsByID[cc.ID] = cc

		if err := claimNestedIDs(cc, seen); err != nil {
			return nil, err
		}
	}

	for _, cc := range groups {
		if err := validateRefs(cc, spec); err != nil {
			return nil, err
		}
	}

	if err := detectCycles(groups); err != nil {
		return nil, err
	}

	return spec, nil
}

// Criterion looks up a top-level QueryCriterion by id.
func (s *Specification) Criterion(id string) (*QueryCriterion, bool) {
	qc, ok := s.criteriaByID[id]

	return qc, ok
}

// Group looks up a top-level CompositeCriterion by id.
func (s *Specification) Group(id string) (*CompositeCriterion, bool) {
	cc, ok := s.groupsByID[id]

	return cc, ok
}

func requireID(id string) error {
	if id == "" {
		return fmt.Errorf("%w: criterion id must not be empty", ErrInvalidArgument)
	}

	return nil
}

func claimID(seen map[string]bool, id string) error {
	if seen[id] {
		return fmt.Errorf("%w: duplicate criterion id %q", ErrInvalidArgument, id)
	}

	seen[id] = true

	return nil
}

func claimNestedIDs(cc *CompositeCriterion, seen map[string]bool) error {
	for _, child := range cc.Children {
		switch {
		case child.Query != nil:
			if err := requireID(child.Query.ID); err != nil {
				return err
			}

			if err := claimID(seen, child.Query.ID); err != nil {
				return err
			}
		case child.Composite != nil:
			if err := requireID(child.Composite.ID); err != nil {
				return err
			}

			if err := claimID(seen, child.Composite.ID); err != nil {
				return err
			}

			if err := claimNestedIDs(child.Composite, seen); err != nil {
				return err
			}
		}
	}

	return nil
}

func validateRefs(cc *CompositeCriterion, spec *Specification) error {
	for _, child := range cc.Children {
		switch {
		case child.Ref != "":
			_, isCriterion := spec.criteriaByID[child.Ref]
			_, isGroup := spec.groupsByID[child.Ref]

			if !isCriterion && !isGroup {
				return fmt.Errorf("%w: %q in group %q references unknown id %q",
					ErrInvalidArgument, cc.ID, cc.ID, child.Ref)
			}
		case child.Composite != nil:
			if err := validateRefs(child.Composite, spec); err != nil {
				return err
			}
		}
	}

	return nil
}

// detectCycles performs a depth-first, three-color traversal of the
// reference graph induced by top-level groups' Ref children (including Ref
// children reachable through nested inline groups), rejecting any cycle.
func detectCycles(groups []*CompositeCriterion) error {
	const (
		white = 0
		gray  = 1
		black = 2
	)

	byID := make(map[string]*CompositeCriterion, len(groups))
	for _, cc := range groups {
		byID[cc.ID] = cc
	}

	color := make(map[string]int, len(groups))

	var visit func(id string) error

	visit = func(id string) error {
		switch color[id] {
		case gray:
			return fmt.Errorf("%w: reference cycle detected at %q", ErrInvalidArgument, id)
		case black:
			return nil
		}

		color[id] = gray

		if cc, ok := byID[id]; ok {
			for _, ref := range collectRefs(cc) {
				if err := visit(ref); err != nil {
					return err
				}
			}
		}

		color[id] = black

		return nil
	}

	for _, cc := range groups {
		if err := visit(cc.ID); err != nil {
			return err
		}
	}

	return nil
}

// collectRefs returns every Ref target reachable from cc's children,
// recursing into nested inline groups.
func collectRefs(cc *CompositeCriterion) []string {
	var refs []string

	for _, child := range cc.Children {
		switch {
		case child.Ref != "":
			refs = append(refs, child.Ref)
		case child.Composite != nil:
			refs = append(refs, collectRefs(child.Composite)...)
		}
	}

	return refs
}
