package source_test

import (
	"testing"

	croissant "github.com/reoring/croissant"
	"github.com/reoring/croissant/source"
)

func TestUse_SwitchesDriver(t *testing.T) {
	t.Cleanup(func() { _ = source.Use(source.GoJSON) })

	if got := croissant.JSONDriverName(); got != source.GoJSON {
		t.Fatalf("default driver=%q, want %q", got, source.GoJSON)
	}
	if err := source.Use(source.EncodingJSON); err != nil {
		t.Fatalf("Use(encoding/json): %v", err)
	}
	if got := croissant.JSONDriverName(); got != source.EncodingJSON {
		t.Fatalf("driver=%q, want %q", got, source.EncodingJSON)
	}
	if err := source.Use("jsonv2"); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
	if got := croissant.JSONDriverName(); got != source.EncodingJSON {
		t.Fatalf("unknown name must not change the driver, got %q", got)
	}
}

func TestDrivers_DecodeSameDocument(t *testing.T) {
	t.Cleanup(func() { _ = source.Use(source.GoJSON) })
	data := []byte(`{"name":"iris","distribution":[{"sha256":"abc"}],"n":1.5}`)

	for _, name := range []string{source.GoJSON, source.EncodingJSON} {
		if err := source.Use(name); err != nil {
			t.Fatalf("Use(%s): %v", name, err)
		}
		v, err := croissant.DecodeAny(croissant.JSONBytes(data), croissant.ParseOpt{}, nil)
		if err != nil {
			t.Fatalf("%s: decode: %v", name, err)
		}
		m, ok := v.(map[string]any)
		if !ok || m["name"] != "iris" {
			t.Fatalf("%s: unexpected value %#v", name, v)
		}
	}

	v, err := croissant.DecodeAny(source.StdBytes(data), croissant.ParseOpt{}, nil)
	if err != nil || v.(map[string]any)["name"] != "iris" {
		t.Fatalf("StdBytes: v=%#v err=%v", v, err)
	}
}
