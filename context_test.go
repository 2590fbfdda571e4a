package croissant_test

import (
	"bytes"
	"encoding/json"
	"testing"

	croissant "github.com/reoring/croissant"
)

func TestContext_MarshalPreservesOrder(t *testing.T) {
	b, err := json.Marshal(croissant.Context{})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !bytes.HasPrefix(b, []byte(`{"@language":"en","@vocab":"https://schema.org/","citeAs":"cr:citeAs"`)) {
		t.Fatalf("unexpected prefix: %s", b)
	}
	if !bytes.Contains(b, []byte(`"dataType":{"@id":"cr:dataType","@type":"@vocab"}`)) {
		t.Fatalf("expanded term missing: %s", b)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("context is not valid JSON: %v", err)
	}
	if len(m) != 35 {
		t.Fatalf("expected 35 bindings, got %d", len(m))
	}
}

func TestContext_TermsIsACopy(t *testing.T) {
	terms := croissant.Context{}.Terms()
	terms[0].IRI = "fr"
	got, ok := croissant.Context{}.Lookup("@language")
	if !ok || got.IRI != "en" {
		t.Fatalf("vocabulary was mutated through Terms(): %+v", got)
	}
	if _, ok := (croissant.Context{}).Lookup("nope"); ok {
		t.Fatalf("unexpected binding")
	}
}

func TestContext_AsMapMatchesMarshal(t *testing.T) {
	b, _ := json.Marshal(croissant.Context{})
	var decoded map[string]any
	_ = json.Unmarshal(b, &decoded)
	m := croissant.Context{}.AsMap()
	if len(m) != len(decoded) {
		t.Fatalf("size mismatch %d vs %d", len(m), len(decoded))
	}
	for k, v := range decoded {
		if s, ok := v.(string); ok && m[k] != s {
			t.Fatalf("binding %s: %v vs %v", k, m[k], s)
		}
	}
}

func TestIsFileObjectType(t *testing.T) {
	for _, s := range []string{"cr:FileObject", "FileObject", "http://mlcommons.org/croissant/FileObject"} {
		if !croissant.IsFileObjectType(s) {
			t.Fatalf("%s should be a file object type", s)
		}
	}
	if croissant.IsFileObjectType("cr:FileSet") {
		t.Fatalf("FileSet is not a FileObject")
	}
	if (croissant.FileObject{}).HasDigest() || !(croissant.FileObject{MD5: "x"}).HasDigest() {
		t.Fatalf("HasDigest mismatch")
	}
}
