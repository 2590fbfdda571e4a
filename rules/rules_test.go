package rules

import (
	"context"
	"testing"

	croissant "github.com/reoring/croissant"
)

type doc = map[string]any

func dctx() croissant.DomainCtx[doc] {
	return croissant.DomainCtx[doc]{Ctx: context.Background(), Ref: croissant.Root()}
}

func sample() doc {
	return doc{
		"distribution": []any{
			doc{"@id": "data-file"},
			doc{"@id": "extra"},
		},
		"recordSet": []map[string]any{
			{"@id": "records", "field": []map[string]any{
				{"@id": "records/a", "source": doc{"fileObject": doc{"@id": "data-file"}}},
				{"@id": "records/b", "source": doc{"fileObject": doc{"@id": "data-file"}}},
			}},
		},
	}
}

func TestUniqueBy_OK(t *testing.T) {
	if iss := UniqueBy[doc]("/distribution", "@id")(dctx(), sample()); len(iss) != 0 {
		t.Fatalf("unexpected issues: %v", iss)
	}
}

func TestUniqueBy_Duplicate(t *testing.T) {
	d := sample()
	d["distribution"] = []any{doc{"@id": "x"}, doc{"@id": "y"}, doc{"@id": "x"}}
	iss := UniqueBy[doc]("/distribution", "/@id")(dctx(), d)
	if len(iss) != 1 {
		t.Fatalf("expected 1 issue, got %v", iss)
	}
	if iss[0].Code != croissant.CodeUniqueness || iss[0].Path != "/distribution/2/@id" {
		t.Fatalf("unexpected issue: %+v", iss[0])
	}
	if iss[0].Params["first"] != "/distribution/0/@id" {
		t.Fatalf("unexpected first: %v", iss[0].Params["first"])
	}
}

func TestUniqueBy_AcrossNestedCollections(t *testing.T) {
	d := sample()
	d["recordSet"] = []map[string]any{
		{"field": []map[string]any{{"@id": "records/a"}}},
		{"field": []map[string]any{{"@id": "records/b"}, {"@id": "records/a"}}},
	}
	iss := UniqueBy[doc]("/recordSet/*/field", "@id")(dctx(), d)
	if len(iss) != 1 || iss[0].Path != "/recordSet/1/field/1/@id" {
		t.Fatalf("unexpected issues: %+v", iss)
	}
}

func TestUniqueBy_MissingCollectionIsIgnored(t *testing.T) {
	if iss := UniqueBy[doc]("/nope", "@id")(dctx(), doc{}); len(iss) != 0 {
		t.Fatalf("unexpected issues: %v", iss)
	}
}

func TestRefersTo(t *testing.T) {
	rule := RefersTo[doc]("/recordSet/*/field/*/source/fileObject/@id", "/distribution/*/@id")
	if iss := rule(dctx(), sample()); len(iss) != 0 {
		t.Fatalf("unexpected issues: %v", iss)
	}

	d := sample()
	d["distribution"] = []any{doc{"@id": "other"}}
	iss := rule(dctx(), d)
	if len(iss) != 2 {
		t.Fatalf("expected 2 dangling refs, got %v", iss)
	}
	if iss[0].Code != croissant.CodeDanglingRef || iss[0].Path != "/recordSet/0/field/0/source/fileObject/@id" {
		t.Fatalf("unexpected issue: %+v", iss[0])
	}
}

func TestAtLeastOne(t *testing.T) {
	d := doc{"recordSet": []map[string]any{{"field": []any{}}, {"field": []any{"x"}}}}
	iss := AtLeastOne[doc]("/recordSet/*/field")(dctx(), d)
	if len(iss) != 1 || iss[0].Path != "/recordSet/0/field" || iss[0].Code != croissant.CodeTooShort {
		t.Fatalf("unexpected issues: %+v", iss)
	}
}

func TestEscapedSegments(t *testing.T) {
	d := doc{"a/b": []any{doc{"k": 1}, doc{"k": 1}}}
	iss := UniqueBy[doc]("/a~1b", "k")(dctx(), d)
	if len(iss) != 1 || iss[0].Path != "/a~1b/1/k" {
		t.Fatalf("unexpected issues: %+v", iss)
	}
}

func TestAndOr(t *testing.T) {
	fail := func(croissant.DomainCtx[doc], doc) []croissant.Issue {
		return []croissant.Issue{{Code: "x"}}
	}
	failTwice := func(croissant.DomainCtx[doc], doc) []croissant.Issue {
		return []croissant.Issue{{Code: "y"}, {Code: "z"}}
	}
	pass := func(croissant.DomainCtx[doc], doc) []croissant.Issue { return nil }

	if got := And[doc](fail, failTwice, pass)(dctx(), doc{}); len(got) != 3 {
		t.Fatalf("And should collect all: %v", got)
	}
	ff := croissant.DomainCtx[doc]{Ctx: croissant.WithFailFast(context.Background(), true), Ref: croissant.Root()}
	if got := And[doc](fail, failTwice)(ff, doc{}); len(got) != 1 {
		t.Fatalf("And should stop under fail-fast: %v", got)
	}
	if got := Or[doc](failTwice, pass)(dctx(), doc{}); got != nil {
		t.Fatalf("Or should pass when one branch passes: %v", got)
	}
	if got := Or[doc](failTwice, fail)(dctx(), doc{}); len(got) != 1 || got[0].Code != "x" {
		t.Fatalf("Or should return the smallest failing branch: %v", got)
	}
}
