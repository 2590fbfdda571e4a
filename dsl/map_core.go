package dsl

import (
	"context"

	croissant "github.com/reoring/croissant"
	"github.com/reoring/croissant/i18n"
	js "github.com/reoring/croissant/jsonschema"
)

// MapAny accepts any JSON object and returns it as-is.
func MapAny() croissant.Schema[map[string]any] { return mapAnySchema{} }

type mapAnySchema struct{}

func (mapAnySchema) Parse(ctx context.Context, v any) (map[string]any, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, croissant.Issues{{Path: "/", Code: croissant.CodeInvalidType, Message: i18n.T(croissant.CodeInvalidType, map[string]string{"detail": "expected object"}), Hint: "expected object"}}
	}
	return m, nil
}

func (mapAnySchema) Validate(ctx context.Context, v any) error {
	_, err := mapAnySchema{}.Parse(ctx, v)
	return err
}

func (mapAnySchema) JSONSchema() (*js.Schema, error) {
	return &js.Schema{Type: "object", AdditionalProperties: true}, nil
}
