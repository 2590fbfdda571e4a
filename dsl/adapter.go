package dsl

import (
	"context"

	croissant "github.com/reoring/croissant"
	js "github.com/reoring/croissant/jsonschema"
)

// AnyAdapter adapts Schema[T] to an any-typed DSL wrapper so that schemas of
// different result types can sit side by side in one object builder.
// AnyAdapter itself implements croissant.Schema[any].
type AnyAdapter struct {
	parse      func(context.Context, any) (any, error)
	jsonSchema func() (*js.Schema, error)
}

var _ croissant.Schema[any] = AnyAdapter{}

// SchemaOf wraps a strongly typed Schema[T] as AnyAdapter for Field builders.
func SchemaOf[T any](s croissant.Schema[T]) AnyAdapter {
	return AnyAdapter{
		parse:      func(ctx context.Context, v any) (any, error) { return s.Parse(ctx, v) },
		jsonSchema: s.JSONSchema,
	}
}

func (ad AnyAdapter) Parse(ctx context.Context, v any) (any, error) {
	if ad.parse == nil {
		return v, nil
	}
	return ad.parse(ctx, v)
}

func (ad AnyAdapter) Validate(ctx context.Context, v any) error {
	_, err := ad.Parse(ctx, v)
	return err
}

func (ad AnyAdapter) JSONSchema() (*js.Schema, error) {
	if ad.jsonSchema == nil {
		return &js.Schema{}, nil
	}
	return ad.jsonSchema()
}

// Nullable wraps an AnyAdapter to accept JSON null. A nil input parses to nil.
func Nullable(ad AnyAdapter) AnyAdapter {
	out := ad
	out.parse = func(ctx context.Context, v any) (any, error) {
		if v == nil {
			return nil, nil
		}
		return ad.Parse(ctx, v)
	}
	out.jsonSchema = func() (*js.Schema, error) {
		inner, err := ad.JSONSchema()
		if err != nil {
			return nil, err
		}
		return &js.Schema{AnyOf: []*js.Schema{inner, {Type: "null"}}}, nil
	}
	return out
}

// Nullable enables fluent chaining: g.SchemaOf[string](g.String()).Nullable()
func (ad AnyAdapter) Nullable() AnyAdapter { return Nullable(ad) }

// Describe sets the JSON Schema description. Runtime behavior is unchanged.
func (ad AnyAdapter) Describe(text string) AnyAdapter {
	out := ad
	out.jsonSchema = func() (*js.Schema, error) {
		s, err := ad.JSONSchema()
		if err != nil {
			return nil, err
		}
		cp := *s
		cp.Description = text
		return &cp, nil
	}
	return out
}

// issuesFromErr converts an error into Issues, wrapping non-Issues with CodeParseError.
func issuesFromErr(path string, err error) croissant.Issues {
	if err == nil {
		return nil
	}
	if iss, ok := croissant.AsIssues(err); ok {
		return iss
	}
	return croissant.Issues{croissant.Issue{Path: path, Code: croissant.CodeParseError, Message: err.Error(), Cause: err}}
}
