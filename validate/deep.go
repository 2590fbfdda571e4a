package validate

import (
	"context"

	croissant "github.com/reoring/croissant"
)

// DeepValidator is the optional schema-aware check run after the required
// field checks. The variant is chosen once, when the Validator is built.
type DeepValidator interface {
	// Available reports whether the check can run; reason explains why not.
	Available() (ok bool, reason string)
	// Validate checks the decoded document.
	Validate(ctx context.Context, doc map[string]any) error
}

// Available returns a DeepValidator backed by s.
func Available(s croissant.Schema[map[string]any]) DeepValidator { return available{s: s} }

// Unavailable returns a DeepValidator that never runs; reason is reported to
// the user as an informational notice.
func Unavailable(reason string) DeepValidator { return unavailable{reason: reason} }

type available struct{ s croissant.Schema[map[string]any] }

func (available) Available() (bool, string) { return true, "" }

func (a available) Validate(ctx context.Context, doc map[string]any) error {
	_, err := a.s.Parse(ctx, doc)
	return err
}

type unavailable struct{ reason string }

func (u unavailable) Available() (bool, string) { return false, u.reason }

func (unavailable) Validate(context.Context, map[string]any) error { return nil }
