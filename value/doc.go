// Package value defines the tagged document/query value model shared by the
// matching engine: a small recursive sum type (null, boolean, integer,
// float, string, sequence, mapping) used both to represent a document being
// matched and the query expressions matched against it.
//
// [Mapping] preserves key insertion order so that missing-path reporting and
// repeated evaluations stay deterministic. Values are immutable once
// constructed; callers build them once (typically via a codec) and the
// matching engine only ever reads them.
package value
