package dsl_test

import (
	"context"
	"testing"

	g "github.com/reoring/croissant/dsl"
)

func TestAnyOf_StringOrList(t *testing.T) {
	license := g.AnyOf(
		g.SchemaOf[string](g.String().NonEmpty()),
		g.ArrayOf[string](g.String().NonEmpty()),
	)
	ctx := context.Background()

	if v, err := license.Parse(ctx, "https://example.org/l"); err != nil || v != "https://example.org/l" {
		t.Fatalf("string variant: %v %v", v, err)
	}
	v, err := license.Parse(ctx, []any{"a", "b"})
	if err != nil {
		t.Fatalf("list variant: %v", err)
	}
	if l, ok := v.([]string); !ok || len(l) != 2 {
		t.Fatalf("unexpected list value: %#v", v)
	}
	if _, err := license.Parse(ctx, 12); err == nil {
		t.Fatalf("expected failure for number")
	}
}

func TestAnyOf_ReturnsClosestVariantIssues(t *testing.T) {
	u := g.AnyOf(
		g.SchemaOf[string](g.String()),
		g.SchemaOf(person()),
	)
	_, err := u.Parse(context.Background(), map[string]any{"name": ""})
	got := codes(err)
	// the object variant fails on one field, the string variant on the type;
	// both have a single issue so the first variant wins ties.
	if len(got) != 1 || got[0] != "invalid_type@/" {
		t.Fatalf("unexpected issues: %v", got)
	}
}

func TestAnyOf_Empty(t *testing.T) {
	if v, err := g.AnyOf().Parse(context.Background(), 3); err != nil || v != 3 {
		t.Fatalf("empty AnyOf should pass through: %v %v", v, err)
	}
}
