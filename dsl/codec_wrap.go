package dsl

import (
	"context"

	croissant "github.com/reoring/croissant"
	js "github.com/reoring/croissant/jsonschema"
)

// Codec adapts a Codec[A,B] into a Schema[B] that accepts wire A and produces domain B.
// Parse: In.Parse -> Decode -> Out.Validate -> Out.Refine
// Validate (wire input): Parse and discard.
// JSONSchema: delegate to Out().JSONSchema().
func Codec[A, B any](c croissant.Codec[A, B]) croissant.Schema[B] { return codecSchema[A, B]{c: c} }

type codecSchema[A, B any] struct{ c croissant.Codec[A, B] }

func (s codecSchema[A, B]) Parse(ctx context.Context, v any) (B, error) {
	var zero B
	a, err := s.c.In().Parse(ctx, v)
	if err != nil {
		return zero, issuesFromErr("/", err)
	}
	b, err := s.c.Decode(ctx, a)
	if err != nil {
		return zero, issuesFromErr("/", err)
	}
	if err := s.c.Out().Validate(ctx, b); err != nil {
		return zero, issuesFromErr("/", err)
	}
	if err := croissant.ApplyRefine[B](ctx, b, s.c.Out()); err != nil {
		return zero, issuesFromErr("/", err)
	}
	return b, nil
}

func (s codecSchema[A, B]) Validate(ctx context.Context, v any) error {
	_, err := s.Parse(ctx, v)
	return err
}

func (s codecSchema[A, B]) JSONSchema() (*js.Schema, error) { return s.c.Out().JSONSchema() }
