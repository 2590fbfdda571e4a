package dsl

import (
	"context"
	"strconv"

	croissant "github.com/reoring/croissant"
	"github.com/reoring/croissant/i18n"
	js "github.com/reoring/croissant/jsonschema"
)

// ArrayBuilder exposes chaining methods for array schemas while implementing Schema[[]E].
type ArrayBuilder[E any] interface {
	croissant.Schema[[]E]
	Min(n int) ArrayBuilder[E]
}

// Array returns an array schema with the given element schema.
func Array[E any](elem croissant.Schema[E]) ArrayBuilder[E] {
	return &ArraySchema[E]{elem: elem, minLen: -1}
}

type ArraySchema[E any] struct {
	elem   croissant.Schema[E]
	minLen int
}

// ArrayOf adapts Array[E] to AnyAdapter for use in object builders.
func ArrayOf[E any](elem croissant.Schema[E]) AnyAdapter {
	return SchemaOf[[]E](Array[E](elem))
}

// Min sets the minimum length.
func (a *ArraySchema[E]) Min(n int) ArrayBuilder[E] { a.minLen = n; return a }

// Parse parses every element; element issues are rebased under "/<index>".
// All elements are checked unless fail-fast is set on ctx.
func (a *ArraySchema[E]) Parse(ctx context.Context, v any) ([]E, error) {
	src, ok := v.([]any)
	if !ok {
		return nil, croissant.Issues{croissant.Issue{Path: "/", Code: croissant.CodeInvalidType, Message: i18n.T(croissant.CodeInvalidType, map[string]string{"detail": "expected array"}), Hint: "expected array"}}
	}
	var iss croissant.Issues
	res := make([]E, 0, len(src))
	for i := range src {
		ev, err := a.elem.Parse(ctx, src[i])
		if err != nil {
			iss = croissant.AppendIssues(iss, croissant.RebaseIssues("/"+strconv.Itoa(i), issuesFromErr("/", err))...)
			if croissant.IsFailFast(ctx) {
				return nil, iss
			}
			continue
		}
		res = append(res, ev)
	}
	if a.minLen >= 0 && len(src) < a.minLen {
		iss = croissant.AppendIssues(iss, croissant.Issue{
			Path:    "/",
			Code:    croissant.CodeTooShort,
			Message: i18n.T(croissant.CodeTooShort, map[string]string{"detail": "at least " + strconv.Itoa(a.minLen) + " item(s) required"}),
			Params:  map[string]any{"minItems": a.minLen},
		})
	}
	if len(iss) > 0 {
		return nil, iss
	}
	if err := croissant.ApplyRefine[[]E](ctx, res, a); err != nil {
		return nil, err
	}
	return res, nil
}

func (a *ArraySchema[E]) Validate(ctx context.Context, v any) error {
	_, err := a.Parse(ctx, v)
	return err
}

func (a *ArraySchema[E]) JSONSchema() (*js.Schema, error) {
	items, err := a.elem.JSONSchema()
	if err != nil {
		return nil, err
	}
	out := &js.Schema{Type: "array", Items: items}
	if a.minLen >= 0 {
		out.MinItems = js.IntPtr(a.minLen)
	}
	return out, nil
}
