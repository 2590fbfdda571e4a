package codec

import (
	"context"
	"testing"
	"time"

	croissant "github.com/reoring/croissant"
)

func TestISODate_Codec_Basic(t *testing.T) {
	c := ISODate()
	ctx := context.Background()

	got, err := c.Decode(ctx, "2025-01-31")
	if err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if !got.Equal(time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected time: %v", got)
	}

	out, err := c.Encode(ctx, got)
	if err != nil {
		t.Fatalf("encode err: %v", err)
	}
	if out != "2025-01-31" {
		t.Fatalf("roundtrip mismatch: %s", out)
	}
}

func TestISODate_AcceptsDateTime(t *testing.T) {
	c := ISODate()
	got, err := c.Decode(context.Background(), "2024-06-01T12:30:00+09:00")
	if err != nil {
		t.Fatalf("decode err: %v", err)
	}
	s, err := c.Encode(context.Background(), got)
	if err != nil {
		t.Fatalf("encode err: %v", err)
	}
	// Encode keeps the value's own calendar day.
	if s != "2024-06-01" {
		t.Fatalf("unexpected date: %s", s)
	}
}

func TestISODate_EncodeUsesLocalCalendarDay(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*3600)
	now := time.Date(2025, 3, 1, 0, 30, 0, 0, loc)
	s, err := ISODate().Encode(context.Background(), now)
	if err != nil {
		t.Fatalf("encode err: %v", err)
	}
	if s != "2025-03-01" {
		t.Fatalf("expected local calendar day, got %s", s)
	}
}

func TestISODate_InvalidFormat(t *testing.T) {
	for _, in := range []string{"", "2025-13-01", "01/02/2025", "2025-1-2", "25", "2025-13", "2025-06-01T"} {
		_, err := ISODate().Decode(context.Background(), in)
		iss, ok := croissant.AsIssues(err)
		if !ok || len(iss) == 0 {
			t.Fatalf("%q: expected issues, got %v", in, err)
		}
		if iss[0].Code != croissant.CodeInvalidFormat {
			t.Fatalf("%q: expected invalid_format, got %s", in, iss[0].Code)
		}
	}
}

func TestISODate_EncodeZero(t *testing.T) {
	if _, err := ISODate().Encode(context.Background(), time.Time{}); err == nil {
		t.Fatalf("expected error for zero time")
	}
}

func TestISODate_Schemas(t *testing.T) {
	c := ISODate()
	if err := c.In().Validate(context.Background(), 12); err == nil {
		t.Fatalf("expected wire schema to reject non-string")
	}
	s, err := c.Out().JSONSchema()
	if err != nil || len(s.AnyOf) != 3 {
		t.Fatalf("unexpected out schema: %+v %v", s, err)
	}
}

func TestISODate_ReducedPrecision(t *testing.T) {
	cases := map[string]time.Time{
		"2024":    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		"2024-06": time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	}
	for in, want := range cases {
		got, err := ISODate().Decode(context.Background(), in)
		if err != nil {
			t.Fatalf("%q: decode err: %v", in, err)
		}
		if !got.Equal(want) {
			t.Fatalf("%q: got %v, want %v", in, got, want)
		}
	}
}
