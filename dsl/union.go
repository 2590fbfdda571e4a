package dsl

import (
	"context"

	croissant "github.com/reoring/croissant"
	js "github.com/reoring/croissant/jsonschema"
)

// AnyOf accepts a value when any variant parses it. Variants are tried in
// order and the first success wins. When all fail, the issues of the variant
// that came closest (fewest issues) are returned.
func AnyOf(variants ...AnyAdapter) AnyAdapter {
	vs := append([]AnyAdapter(nil), variants...)
	return AnyAdapter{
		parse: func(ctx context.Context, v any) (any, error) {
			if len(vs) == 0 {
				return v, nil
			}
			var best croissant.Issues
			for i, ad := range vs {
				out, err := ad.Parse(ctx, v)
				if err == nil {
					return out, nil
				}
				iss := issuesFromErr("/", err)
				if i == 0 || len(iss) < len(best) {
					best = iss
				}
			}
			return nil, best
		},
		jsonSchema: func() (*js.Schema, error) {
			out := &js.Schema{AnyOf: make([]*js.Schema, 0, len(vs))}
			for _, ad := range vs {
				s, err := ad.JSONSchema()
				if err != nil {
					return nil, err
				}
				out.AnyOf = append(out.AnyOf, s)
			}
			return out, nil
		},
	}
}
