package dsl

import (
	"context"
	"sort"

	croissant "github.com/reoring/croissant"
)

// Rule is a document-level check run after all fields parsed. It reports
// problems as Issues with paths relative to the object it is attached to.
type Rule = func(croissant.DomainCtx[map[string]any], map[string]any) []croissant.Issue

type objectBuilder struct {
	fields        map[string]AnyAdapter
	required      map[string]struct{}
	unknownPolicy croissant.UnknownPolicy
	refines       []objRefine
	rules         []objRule
	description   string
}

type fieldStep struct {
	b    *objectBuilder
	name string
}

// Object creates a new object builder with safe defaults (UnknownStrict).
func Object() *objectBuilder {
	return &objectBuilder{
		fields:        map[string]AnyAdapter{},
		required:      map[string]struct{}{},
		unknownPolicy: croissant.UnknownStrict,
	}
}

// Field registers a field with its adapter.
func (b *objectBuilder) Field(name string, ad AnyAdapter) *fieldStep {
	b.fields[name] = ad
	return &fieldStep{b: b, name: name}
}

// Required marks the field as required and returns the builder.
func (f *fieldStep) Required() *objectBuilder {
	f.b.required[f.name] = struct{}{}
	return f.b
}

// Optional marks the field as optional (default) and returns the builder.
func (f *fieldStep) Optional() *objectBuilder {
	delete(f.b.required, f.name)
	return f.b
}

func (f *fieldStep) Field(name string, ad AnyAdapter) *fieldStep { return f.b.Field(name, ad) }
func (f *fieldStep) Require(names ...string) *objectBuilder      { return f.b.Require(names...) }
func (f *fieldStep) UnknownStrict() *objectBuilder              { return f.b.UnknownStrict() }
func (f *fieldStep) UnknownStrip() *objectBuilder               { return f.b.UnknownStrip() }
func (f *fieldStep) Refine(name string, fn func(context.Context, map[string]any) error) *objectBuilder {
	return f.b.Refine(name, fn)
}
func (f *fieldStep) Describe(text string) *objectBuilder              { return f.b.Describe(text) }
func (f *fieldStep) Rule(name string, r Rule) *objectBuilder           { return f.b.Rule(name, r) }
func (f *fieldStep) Build() (croissant.Schema[map[string]any], error) { return f.b.Build() }
func (f *fieldStep) MustBuild() croissant.Schema[map[string]any]      { return f.b.MustBuild() }

// Require marks one or more fields as required.
func (b *objectBuilder) Require(names ...string) *objectBuilder {
	for _, n := range names {
		b.required[n] = struct{}{}
	}
	return b
}

// UnknownStrict sets unknown policy to Strict.
func (b *objectBuilder) UnknownStrict() *objectBuilder {
	b.unknownPolicy = croissant.UnknownStrict
	return b
}

// UnknownStrip sets unknown policy to Strip.
func (b *objectBuilder) UnknownStrip() *objectBuilder {
	b.unknownPolicy = croissant.UnknownStrip
	return b
}

// Describe sets the JSON Schema description of the object.
func (b *objectBuilder) Describe(text string) *objectBuilder {
	b.description = text
	return b
}

// Refine adds an object-level refine function. It runs only when every field parsed.
func (b *objectBuilder) Refine(name string, fn func(context.Context, map[string]any) error) *objectBuilder {
	if fn == nil {
		return b
	}
	b.refines = append(b.refines, objRefine{name: name, fn: fn})
	return b
}

// Rule adds a document-level rule (see package rules). Issues it returns are
// tagged with name.
func (b *objectBuilder) Rule(name string, r Rule) *objectBuilder {
	if r == nil {
		return b
	}
	b.rules = append(b.rules, objRule{name: name, fn: r})
	return b
}

// Build validates the builder and returns a Schema.
func (b *objectBuilder) Build() (croissant.Schema[map[string]any], error) {
	for k := range b.required {
		if _, ok := b.fields[k]; !ok {
			return nil, croissant.Issues{croissant.Issue{Path: "/" + k, Code: croissant.CodeRequired, Message: "required key has no field schema", Hint: "declare it with Field"}}
		}
	}
	// cache sorted keys for deterministic order without per-parse sorting
	kfs := make([]string, 0, len(b.fields))
	for k := range b.fields {
		kfs = append(kfs, k)
	}
	sort.Strings(kfs)
	return &objectSchema{
		fields:        b.fields,
		required:      b.required,
		unknownPolicy: b.unknownPolicy,
		refines:       b.refines,
		rules:         b.rules,
		description:   b.description,
		sortedKeys:    kfs,
	}, nil
}

// MustBuild is like Build but panics on error.
func (b *objectBuilder) MustBuild() croissant.Schema[map[string]any] {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}
