package dsl_test

import (
	"context"
	"encoding/json"
	"reflect"
	"testing"
	"time"

	croissant "github.com/reoring/croissant"
	"github.com/reoring/croissant/codec"
	g "github.com/reoring/croissant/dsl"
)

// normalize marshals v to JSON and unmarshals back into interface{} to remove ordering effects.
func normalize(v any) any {
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	var out any
	_ = json.Unmarshal(b, &out)
	return out
}

func TestJSONSchema_Primitives(t *testing.T) {
	s, err := g.String().NonEmpty().JSONSchema()
	if err != nil {
		t.Fatalf("string JSONSchema err: %v", err)
	}
	got := normalize(s)
	want := normalize(map[string]any{"type": "string", "minLength": 1})
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("string schema mismatch\n got=%v\nwant=%v", got, want)
	}

	b, _ := g.Bool().JSONSchema()
	if !reflect.DeepEqual(normalize(b), normalize(map[string]any{"type": "boolean"})) {
		t.Fatalf("bool schema mismatch: %v", normalize(b))
	}
}

func TestJSONSchema_Array(t *testing.T) {
	s, err := g.Array[string](g.String()).Min(1).JSONSchema()
	if err != nil {
		t.Fatalf("array JSONSchema err: %v", err)
	}
	got := normalize(s)
	want := normalize(map[string]any{
		"type":     "array",
		"items":    map[string]any{"type": "string"},
		"minItems": 1,
	})
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("array schema mismatch\n got=%v\nwant=%v", got, want)
	}
}

func TestJSONSchema_Object_UnknownPolicies(t *testing.T) {
	strict, _ := person().JSONSchema()
	if normalize(strict).(map[string]any)["additionalProperties"] != false {
		t.Fatalf("strict must export additionalProperties=false")
	}
	if r := normalize(strict).(map[string]any)["required"]; !reflect.DeepEqual(r, []any{"name"}) {
		t.Fatalf("unexpected required: %v", r)
	}

	strip, _ := g.Object().Field("a", g.Any()).UnknownStrip().Describe("loose").MustBuild().JSONSchema()
	m := normalize(strip).(map[string]any)
	if m["additionalProperties"] != true || m["description"] != "loose" {
		t.Fatalf("unexpected strip schema: %v", m)
	}
}

func TestJSONSchema_AnyOfAndNullable(t *testing.T) {
	s, _ := g.AnyOf(g.SchemaOf[string](g.String()), g.SchemaOf[bool](g.Bool())).Describe("either").JSONSchema()
	m := normalize(s).(map[string]any)
	if m["description"] != "either" || len(m["anyOf"].([]any)) != 2 {
		t.Fatalf("unexpected anyOf schema: %v", m)
	}
	n, _ := g.SchemaOf[string](g.String()).Nullable().JSONSchema()
	want := normalize(map[string]any{"anyOf": []any{map[string]any{"type": "string"}, map[string]any{"type": "null"}}})
	if !reflect.DeepEqual(normalize(n), want) {
		t.Fatalf("unexpected nullable schema: %v", normalize(n))
	}
}

func TestCodec_ISODateField(t *testing.T) {
	s := g.Object().
		Field("datePublished", g.SchemaOf[time.Time](g.Codec(codec.ISODate()))).Required().
		MustBuild()
	out, err := s.Parse(context.Background(), map[string]any{"datePublished": "2024-02-29"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if tm, ok := out["datePublished"].(time.Time); !ok || tm.Day() != 29 {
		t.Fatalf("unexpected value: %#v", out["datePublished"])
	}
	_, err = s.Parse(context.Background(), map[string]any{"datePublished": "2023-02-29"})
	iss, _ := croissant.AsIssues(err)
	if len(iss) != 1 || iss[0].Code != croissant.CodeInvalidFormat || iss[0].Path != "/datePublished" {
		t.Fatalf("unexpected issues: %+v", iss)
	}
}
