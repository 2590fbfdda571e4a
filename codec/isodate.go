// Package codec holds wire/domain converters that dsl.Codec turns into schemas.
package codec

import (
	"context"
	"time"

	croissant "github.com/reoring/croissant"
	"github.com/reoring/croissant/i18n"
	js "github.com/reoring/croissant/jsonschema"
)

// DateLayout is the calendar-date form used for datePublished.
const DateLayout = "2006-01-02"

// Reduced-precision ISO 8601 forms (schema.org Date allows them).
const (
	YearMonthLayout = "2006-01"
	YearLayout      = "2006"
)

// ISODate returns a Codec that converts between ISO 8601 date strings and
// time.Time. Decode accepts a calendar date (YYYY-MM-DD), a reduced form
// (YYYY-MM or YYYY, read as the first day of the period) or an RFC3339
// date-time; Encode always writes the calendar date.
func ISODate() croissant.Codec[string, time.Time] {
	return &isoDateCodec{
		in:  stringSchema{},
		out: timeSchema{},
	}
}

type isoDateCodec struct {
	in  croissant.Schema[string]
	out croissant.Schema[time.Time]
}

func (c *isoDateCodec) In() croissant.Schema[string]     { return c.in }
func (c *isoDateCodec) Out() croissant.Schema[time.Time] { return c.out }

func (c *isoDateCodec) Decode(ctx context.Context, a string) (time.Time, error) {
	t, err := parseISODate(a)
	if err != nil {
		return time.Time{}, croissant.Issues{{
			Path:    "/",
			Code:    croissant.CodeInvalidFormat,
			Message: i18n.T(croissant.CodeInvalidFormat, map[string]string{"detail": "expected YYYY-MM-DD, YYYY-MM, YYYY or RFC3339 date-time"}),
			Hint:    "date",
			Cause:   err,
			Offset:  -1,
		}}
	}
	return t, nil
}

func (c *isoDateCodec) Encode(ctx context.Context, b time.Time) (string, error) {
	if b.IsZero() {
		return "", croissant.Issues{{Path: "/", Code: croissant.CodeRequired, Message: "zero time cannot be encoded as a date", Offset: -1}}
	}
	s := b.Format(DateLayout)
	if _, err := c.in.Parse(ctx, s); err != nil {
		return "", err
	}
	return s, nil
}

// ---- helpers ----

type stringSchema struct{}

func (stringSchema) Parse(ctx context.Context, v any) (string, error) {
	if s, ok := v.(string); ok {
		return s, nil
	}
	return "", croissant.Issues{{Path: "/", Code: croissant.CodeInvalidType, Message: i18n.T(croissant.CodeInvalidType, map[string]string{"detail": "expected string"}), Offset: -1}}
}
func (stringSchema) Validate(ctx context.Context, v any) error {
	_, err := (stringSchema{}).Parse(ctx, v)
	return err
}
func (stringSchema) JSONSchema() (*js.Schema, error) { return &js.Schema{Type: "string"}, nil }

type timeSchema struct{}

func (timeSchema) Parse(ctx context.Context, v any) (time.Time, error) {
	if t, ok := v.(time.Time); ok {
		return t, nil
	}
	return time.Time{}, croissant.Issues{{Path: "/", Code: croissant.CodeInvalidType, Message: "expected time.Time", Offset: -1}}
}
func (timeSchema) Validate(ctx context.Context, v any) error {
	_, err := (timeSchema{}).Parse(ctx, v)
	return err
}

// JSONSchema describes the wire form, since that is what documents carry.
func (timeSchema) JSONSchema() (*js.Schema, error) {
	return &js.Schema{AnyOf: []*js.Schema{
		{Type: "string", Format: "date"},
		{Type: "string", Format: "date-time"},
		{Type: "string", Pattern: `^[0-9]{4}(-[0-9]{2})?$`},
	}}, nil
}

func parseISODate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err == nil {
		return t, nil
	}
	// Accept RFC3339Nano (trailing zeros optional)
	if t2, err2 := time.Parse(time.RFC3339Nano, s); err2 == nil {
		return t2, nil
	}
	for _, layout := range []string{YearMonthLayout, YearLayout} {
		if t2, err2 := time.Parse(layout, s); err2 == nil {
			return t2, nil
		}
	}
	return time.Time{}, err
}
