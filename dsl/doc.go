// Package dsl provides a small schema DSL over the untyped values produced by
// croissant.DecodeAny (map[string]any, []any, string, bool, json.Number).
//
// Entry points
//   - Object(): object builder; chain Field/Required/Unknown*/Refine/Rule then Build()/MustBuild().
//   - Array(elem): array schema from an element schema (Min).
//   - String()/Bool()/MapAny()/Any(): primitives.
//   - AnyOf(a, b, ...): first variant that parses wins.
//   - Codec(c): wire/domain codec exposed as a schema (see package codec).
//   - SchemaOf[T](s): adapter from Schema[T] to AnyAdapter (to pass into Field).
//
// Every schema also projects itself to JSON Schema, so runtime checks and the
// exported document describe the same shape. Unknown keys map to
// additionalProperties=false (UnknownStrict) or true (UnknownStrip).
//
// Example
//
//	creator := g.Object().
//	    Field("name", g.SchemaOf[string](g.String().NonEmpty())).Required().
//	    UnknownStrip().
//	    MustBuild()
//	doc := g.Object().
//	    Field("name", g.SchemaOf[string](g.String().NonEmpty())).Required().
//	    Field("creator", g.SchemaOf[map[string]any](creator)).
//	    Rule("distribution ids", rules.UniqueBy[map[string]any]("/distribution", "@id")).
//	    UnknownStrip().
//	    MustBuild()
//	_, err := croissant.ParseFrom(ctx, doc, croissant.JSONBytes(data))
package dsl
