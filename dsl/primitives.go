package dsl

import (
	"context"
	"strings"

	croissant "github.com/reoring/croissant"
	"github.com/reoring/croissant/i18n"
	js "github.com/reoring/croissant/jsonschema"
)

// StringBuilder exposes chaining options for string schemas while implementing Schema[string].
type StringBuilder interface {
	croissant.Schema[string]
	NonEmpty() StringBuilder
	Enum(values ...string) StringBuilder
}

// String returns a string schema. Without options any string is accepted.
func String() StringBuilder { return &stringSchema{} }

type stringSchema struct {
	nonEmpty bool
	enum     []string
}

// NonEmpty rejects "".
func (s *stringSchema) NonEmpty() StringBuilder { s.nonEmpty = true; return s }

// Enum restricts the value to one of values.
func (s *stringSchema) Enum(values ...string) StringBuilder {
	s.enum = append([]string(nil), values...)
	return s
}

func (s *stringSchema) Parse(ctx context.Context, v any) (string, error) {
	str, ok := v.(string)
	if !ok {
		return "", croissant.Issues{{Path: "/", Code: croissant.CodeInvalidType, Message: i18n.T(croissant.CodeInvalidType, map[string]string{"detail": "expected string"}), Hint: "string"}}
	}
	if s.nonEmpty && str == "" {
		return "", croissant.Issues{{Path: "/", Code: croissant.CodeTooShort, Message: i18n.T(croissant.CodeTooShort, nil), Params: map[string]any{"minLength": 1}}}
	}
	if len(s.enum) > 0 && !contains(s.enum, str) {
		return "", croissant.Issues{{
			Path:    "/",
			Code:    croissant.CodeInvalidEnum,
			Message: i18n.T(croissant.CodeInvalidEnum, map[string]string{"detail": "want one of " + strings.Join(s.enum, ", ")}),
			Params:  map[string]any{"allowed": s.enum, "got": str},
		}}
	}
	return str, nil
}

func (s *stringSchema) Validate(ctx context.Context, v any) error {
	_, err := s.Parse(ctx, v)
	return err
}

func (s *stringSchema) JSONSchema() (*js.Schema, error) {
	out := &js.Schema{Type: "string"}
	if s.nonEmpty {
		out.MinLength = js.IntPtr(1)
	}
	for _, e := range s.enum {
		out.Enum = append(out.Enum, e)
	}
	return out, nil
}

// Bool returns the bool schema.
func Bool() croissant.Schema[bool] { return boolSchema{} }

type boolSchema struct{}

func (boolSchema) Parse(ctx context.Context, v any) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, croissant.Issues{{Path: "/", Code: croissant.CodeInvalidType, Message: i18n.T(croissant.CodeInvalidType, map[string]string{"detail": "expected boolean"}), Hint: "boolean"}}
	}
	return b, nil
}

func (boolSchema) Validate(ctx context.Context, v any) error {
	_, err := boolSchema{}.Parse(ctx, v)
	return err
}

func (boolSchema) JSONSchema() (*js.Schema, error) { return &js.Schema{Type: "boolean"}, nil }

// Any accepts every value unchanged.
func Any() AnyAdapter {
	return AnyAdapter{jsonSchema: func() (*js.Schema, error) { return &js.Schema{}, nil }}
}

func contains(list []string, s string) bool {
	for _, it := range list {
		if it == s {
			return true
		}
	}
	return false
}
