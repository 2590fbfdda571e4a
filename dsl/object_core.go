package dsl

import (
	"context"
	"sort"

	croissant "github.com/reoring/croissant"
	"github.com/reoring/croissant/i18n"
	js "github.com/reoring/croissant/jsonschema"
)

type objectSchema struct {
	fields        map[string]AnyAdapter
	required      map[string]struct{}
	unknownPolicy croissant.UnknownPolicy
	refines       []objRefine
	rules         []objRule
	description   string
	sortedKeys    []string
}

type objRefine struct {
	name string
	fn   func(context.Context, map[string]any) error
}

type objRule struct {
	name string
	fn   Rule
}

// Ensure objectSchema implements croissant.Schema[map[string]any]
var _ croissant.Schema[map[string]any] = (*objectSchema)(nil)

// collectKnown parses known fields in key order and enforces required keys.
func (o *objectSchema) collectKnown(ctx context.Context, src map[string]any) (map[string]any, croissant.Issues) {
	out := make(map[string]any, len(src))
	var iss croissant.Issues
	for _, k := range o.sortedKeys {
		val, exists := src[k]
		if !exists {
			if _, req := o.required[k]; req {
				iss = croissant.AppendIssues(iss, croissant.Issue{
					Path:    croissant.Root().Field(k).Pointer(),
					Code:    croissant.CodeRequired,
					Message: i18n.T(croissant.CodeRequired, map[string]string{"detail": k}),
					Hint:    "required property missing",
				})
				if croissant.IsFailFast(ctx) {
					return out, iss
				}
			}
			continue
		}
		parsed, err := o.fields[k].Parse(ctx, val)
		if err != nil {
			base := croissant.Root().Field(k).Pointer()
			iss = croissant.AppendIssues(iss, croissant.RebaseIssues(base, issuesFromErr("/", err))...)
			if croissant.IsFailFast(ctx) {
				return out, iss
			}
			continue
		}
		out[k] = parsed
	}
	return out, iss
}

// collectUnknown reports unknown keys in key order under UnknownStrict.
func (o *objectSchema) collectUnknown(src map[string]any) croissant.Issues {
	if o.unknownPolicy != croissant.UnknownStrict {
		return nil
	}
	uks := make([]string, 0, len(src))
	for k := range src {
		if _, known := o.fields[k]; !known {
			uks = append(uks, k)
		}
	}
	sort.Strings(uks)
	var iss croissant.Issues
	for _, k := range uks {
		iss = croissant.AppendIssues(iss, croissant.Issue{
			Path:    croissant.Root().Field(k).Pointer(),
			Code:    croissant.CodeUnknownKey,
			Message: i18n.T(croissant.CodeUnknownKey, map[string]string{"detail": k}),
		})
	}
	return iss
}

func (o *objectSchema) Parse(ctx context.Context, v any) (map[string]any, error) {
	src, ok := v.(map[string]any)
	if !ok {
		return nil, croissant.Issues{croissant.Issue{Path: "/", Code: croissant.CodeInvalidType, Message: i18n.T(croissant.CodeInvalidType, map[string]string{"detail": "expected object"}), Hint: "expected object"}}
	}
	out, iss := o.collectKnown(ctx, src)
	if croissant.IsFailFast(ctx) && len(iss) > 0 {
		return nil, iss
	}
	iss = croissant.AppendIssues(iss, o.collectUnknown(src)...)
	if len(iss) > 0 {
		return nil, iss
	}
	if err := croissant.ApplyRefine[map[string]any](ctx, out, o); err != nil {
		return nil, err
	}
	return out, nil
}

func (o *objectSchema) Validate(ctx context.Context, v any) error {
	_, err := o.Parse(ctx, v)
	return err
}

func (o *objectSchema) JSONSchema() (*js.Schema, error) {
	props := make(map[string]*js.Schema, len(o.fields))
	for _, k := range o.sortedKeys {
		ps, err := o.fields[k].JSONSchema()
		if err != nil {
			return nil, err
		}
		props[k] = ps
	}
	// Required list (sorted for deterministic output)
	req := make([]string, 0, len(o.required))
	for k := range o.required {
		req = append(req, k)
	}
	sort.Strings(req)
	var additional any
	switch o.unknownPolicy {
	case croissant.UnknownStrict:
		additional = false
	case croissant.UnknownStrip:
		// Runtime accepts then discards unknown keys, so JSON Schema should mark
		// them as accepted (true).
		additional = true
	}
	return &js.Schema{Type: "object", Description: o.description, Properties: props, Required: req, AdditionalProperties: additional}, nil
}

// Refine implements croissant.Refiner[map[string]any] using builder-registered
// refine hooks followed by rules.
func (o *objectSchema) Refine(ctx context.Context, v map[string]any) error {
	var iss croissant.Issues
	for _, r := range o.refines {
		if err := r.fn(ctx, v); err != nil {
			if i2, ok := croissant.AsIssues(err); ok {
				iss = croissant.AppendIssues(iss, i2...)
			} else {
				iss = croissant.AppendIssues(iss, croissant.Issue{Path: "/", Code: croissant.CodeCustom, Message: err.Error(), Cause: err, Rule: r.name})
			}
			if croissant.IsFailFast(ctx) {
				return iss
			}
		}
	}
	d := croissant.DomainCtx[map[string]any]{Ctx: ctx, Ref: croissant.Root()}
	for _, r := range o.rules {
		for _, it := range r.fn(d, v) {
			if it.Rule == "" {
				it.Rule = r.name
			}
			iss = croissant.AppendIssues(iss, it)
		}
		if len(iss) > 0 && croissant.IsFailFast(ctx) {
			return iss
		}
	}
	if len(iss) > 0 {
		return iss
	}
	return nil
}
