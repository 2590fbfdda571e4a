package croissant

import (
	"context"

	js "github.com/reoring/croissant/jsonschema"
)

// Schema checks an untyped JSON value (as produced by DecodeAny) and projects
// it into T.
type Schema[T any] interface {
	// Parse transforms an unknown input into T (Validate -> Refine). It
	// returns Issues when validation fails.
	Parse(ctx context.Context, v any) (T, error)

	// Validate verifies structure and types without producing a value.
	Validate(ctx context.Context, v any) error

	// JSONSchema projects the schema into a JSON Schema representation.
	JSONSchema() (*js.Schema, error)
}

// Refiner provides an optional hook at the end of parsing to perform
// cross-field validation. If it is not implemented, the phase is skipped.
type Refiner[T any] interface {
	Refine(ctx context.Context, v T) error
}

// ApplyRefine calls Refiner[T] if implemented.
func ApplyRefine[T any](ctx context.Context, v T, s Schema[T]) error {
	if r, ok := any(s).(Refiner[T]); ok {
		return r.Refine(ctx, v)
	}
	return nil
}

// Codec converts between a wire representation A and a domain value B.
// In validates the wire side and Out validates the domain side.
type Codec[A, B any] interface {
	In() Schema[A]
	Out() Schema[B]
	Decode(ctx context.Context, a A) (B, error)
	Encode(ctx context.Context, b B) (A, error)
}

// DomainCtx is handed to document-level rules. Ref points at the value the
// rule was attached to.
type DomainCtx[T any] struct {
	Ctx context.Context
	Ref PathRef
}

// SafeParse parses v into T, returning (zero, false) on validation error.
func SafeParse[T any](ctx context.Context, s Schema[T], v any) (T, bool) {
	val, err := s.Parse(ctx, v)
	if err != nil {
		var zero T
		return zero, false
	}
	return val, true
}

// Is returns true if v conforms to the schema s.
func Is[T any](ctx context.Context, s Schema[T], v any) bool {
	return s.Validate(ctx, v) == nil
}

// ---- Parse-time context options (internal wiring, exported for subpackages) ----

type contextKey int

const (
	_ctxKeyFailFast contextKey = iota
)

// WithFailFast returns a child context that marks fail-fast parsing behavior.
// This is set by ParseFrom based on ParseOpt and consumed by schema implementations.
func WithFailFast(ctx context.Context, enabled bool) context.Context {
	return context.WithValue(ctx, _ctxKeyFailFast, enabled)
}

// IsFailFast reports whether the current parse should stop on the first issue.
func IsFailFast(ctx context.Context) bool {
	v := ctx.Value(_ctxKeyFailFast)
	b, _ := v.(bool)
	return b
}
