package codec

import (
	"fmt"
	"strconv"

	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"

	"github.com/thekitchencoder/jspec/value"
)

// DecodeDocument parses input (YAML, or JSON as a YAML subset) into a
// value.Value tree. Only the first document in a multi-document YAML
// stream is used. Empty or blank input decodes to value.Null().
func DecodeDocument(input []byte) (value.Value, error) {
	if isBlank(input) {
		return value.Null(), nil
	}

	file, err := parser.ParseBytes(input, parser.ParseComments)
	if err != nil {
		return value.Value{}, fmt.Errorf("%w: %w", ErrInvalidYAML, err)
	}

	if len(file.Docs) == 0 || file.Docs[0].Body == nil {
		return value.Null(), nil
	}

	anchors := buildAnchorMap(file.Docs[0].Body)

	return walkNode(file.Docs[0].Body, anchors)
}

// walkNode converts a YAML AST node into a value.Value, resolving aliases
// and tag/anchor wrappers first, the way magicschema's generator walks the
// same AST shape to build JSON Schema instead of document values.
func walkNode(node ast.Node, anchors map[string]ast.Node) (value.Value, error) {
	node = resolveAliases(node, anchors)
	node = unwrapNode(node)

	if node == nil {
		return value.Null(), nil
	}

	switch n := node.(type) {
	case *ast.MappingNode:
		return walkMapping(n.Values, anchors)
	case *ast.MappingValueNode:
		return walkMapping([]*ast.MappingValueNode{n}, anchors)
	case *ast.SequenceNode:
		return walkSequence(n, anchors)
	default:
		return walkScalar(node), nil
	}
}

// walkMapping builds a value.Mapping from a sequence of YAML mapping
// entries, enforcing §3's key-uniqueness invariant via [value.Mapping.SetUnique].
func walkMapping(values []*ast.MappingValueNode, anchors map[string]ast.Node) (value.Value, error) {
	m := value.NewOrderedMapping()
	merged := make(map[string]bool)

	for _, mvn := range values {
		if _, ok := mvn.Key.(*ast.MergeKeyNode); ok {
			before := m.Len()
			if err := mergeInto(m, mvn.Value, anchors); err != nil {
				return value.Value{}, err
			}

			for _, k := range m.Keys()[before:] {
				merged[k] = true
			}

			continue
		}

		key := mvn.Key.GetToken().Value

		v, err := walkNode(mvn.Value, anchors)
		if err != nil {
			return value.Value{}, err
		}

		if merged[key] {
			// An explicit key overrides a value brought in by a merge key.
			m.Set(key, v)
			delete(merged, key)

			continue
		}

		if err := m.SetUnique(key, v); err != nil {
			return value.Value{}, fmt.Errorf("%w: %w", ErrMalformedDocument, err)
		}
	}

	return value.NewMapping(m), nil
}

// mergeInto applies a YAML merge key (<<), copying keys from the merged
// mapping (or sequence of mappings) that are not already present. A key
// already present in m is shadowed rather than rejected: that is normal
// merge-key precedence, not a duplicate-key violation. walkMapping likewise
// lets an explicit key written after the merge key replace the merged value.
func mergeInto(m *value.Mapping, mergeValue ast.Node, anchors map[string]ast.Node) error {
	resolved := unwrapNode(resolveAliases(mergeValue, anchors))

	switch mv := resolved.(type) {
	case *ast.MappingNode:
		return mergeMappingValues(m, mv.Values, anchors)
	case *ast.SequenceNode:
		for _, item := range mv.Values {
			itemResolved := unwrapNode(resolveAliases(item, anchors))
			if mn, ok := itemResolved.(*ast.MappingNode); ok {
				if err := mergeMappingValues(m, mn.Values, anchors); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

func mergeMappingValues(m *value.Mapping, values []*ast.MappingValueNode, anchors map[string]ast.Node) error {
	for _, mvn := range values {
		key := mvn.Key.GetToken().Value
		if m.Has(key) {
			continue
		}

		v, err := walkNode(mvn.Value, anchors)
		if err != nil {
			return err
		}

		if err := m.SetUnique(key, v); err != nil {
			return fmt.Errorf("%w: %w", ErrMalformedDocument, err)
		}
	}

	return nil
}

func walkSequence(seq *ast.SequenceNode, anchors map[string]ast.Node) (value.Value, error) {
	items := make([]value.Value, len(seq.Values))

	for i, v := range seq.Values {
		item, err := walkNode(v, anchors)
		if err != nil {
			return value.Value{}, err
		}

		items[i] = item
	}

	return value.NewSequence(items), nil
}

// walkScalar converts a scalar AST node into a value.Value, dispatching on
// the node's own YAML type classification rather than re-parsing its
// textual form, so "123" (quoted, a StringNode) and 123 (an IntegerNode)
// never collide.
func walkScalar(node ast.Node) value.Value {
	switch n := node.(type) {
	case *ast.NullNode:
		return value.Null()
	case *ast.BoolNode:
		b, err := strconv.ParseBool(n.String())
		if err != nil {
			return value.String(n.String())
		}

		return value.Bool(b)
	case *ast.IntegerNode:
		i, err := strconv.ParseInt(n.String(), 10, 64)
		if err != nil {
			return value.String(n.String())
		}

		return value.Int(i)
	case *ast.FloatNode:
		f, err := strconv.ParseFloat(n.String(), 64)
		if err != nil {
			return value.String(n.String())
		}

		return value.Float(f)
	case *ast.StringNode:
		return value.String(n.Value)
	case *ast.LiteralNode:
		return value.String(n.String())
	default:
		return value.String(node.String())
	}
}

// buildAnchorMap collects every anchor definition reachable from root, the
// way magicschema's generator does before walking the same document to
// resolve aliases.
func buildAnchorMap(root ast.Node) map[string]ast.Node {
	anchors := make(map[string]ast.Node)

	ast.Walk(&anchorCollector{anchors: anchors}, root)

	return anchors
}

type anchorCollector struct {
	anchors map[string]ast.Node
}

// Visit implements ast.Visitor.
func (v *anchorCollector) Visit(node ast.Node) ast.Visitor {
	if anchor, ok := node.(*ast.AnchorNode); ok {
		v.anchors[anchor.Name.String()] = anchor.Value
	}

	return v
}

func resolveAliases(node ast.Node, anchors map[string]ast.Node) ast.Node {
	if node == nil {
		return nil
	}

	alias, ok := node.(*ast.AliasNode)
	if !ok {
		return node
	}

	if resolved, found := anchors[alias.Value.String()]; found {
		return resolved
	}

	return nil
}

func unwrapNode(node ast.Node) ast.Node {
	for {
		switch n := node.(type) {
		case *ast.TagNode:
			node = n.Value
		case *ast.AnchorNode:
			node = n.Value
		default:
			return node
		}
	}
}

func isBlank(data []byte) bool {
	for _, b := range data {
		if b != ' ' && b != '\t' && b != '\n' && b != '\r' {
			return false
		}
	}

	return true
}
