// Package match implements the document-matching engine: the operator
// registry, the recursive criterion evaluator, the composite (AND/OR)
// aggregator, and the specification evaluator that orchestrates both over a
// document.
//
// The typical entry point is:
//
//	reg := match.WithDefaults()
//	ev := match.NewEvaluator(reg)
//	outcome, err := ev.Evaluate(ctx, doc, spec)
//
// where doc and spec are built by a collaborator such as the codec package
// rather than by hand. The package never parses YAML/JSON itself -- see
// [github.com/thekitchencoder/jspec/codec] and
// [github.com/thekitchencoder/jspec/value] for that.
package match
