// Package codec decodes YAML or JSON input into the value.Value tree the
// match package operates on, and parses the specification document shape
// described in the external interfaces (criteria, groups, junctions, and
// id-references) into match.Specification values.
//
// Decoding walks a github.com/goccy/go-yaml AST rather than unmarshalling
// into interface{}, so that anchors, aliases, and merge keys resolve the
// same way for both the input document and the specification document, and
// so mapping key order is preserved end to end.
package codec
