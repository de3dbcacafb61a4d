package codec

import "errors"

// ErrInvalidYAML is returned when the input cannot be parsed as YAML
// (JSON is accepted as a YAML subset).
var ErrInvalidYAML = errors.New("invalid yaml")

// ErrMalformedSpecification wraps a structural problem found while
// interpreting a parsed document as a specification: a missing id, an
// unrecognized junction, a criterion whose query is not a mapping, or
// (surfaced from match.NewSpecification) a duplicate id or reference cycle.
var ErrMalformedSpecification = errors.New("malformed specification")

// ErrMalformedDocument wraps a structural problem found while walking a
// parsed YAML/JSON document into a value.Value tree: currently, a mapping
// with a duplicate key, which violates §3's key-uniqueness invariant.
var ErrMalformedDocument = errors.New("malformed document")
