package croissant

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"

	eng "github.com/reoring/croissant/internal/engine"
)

// ParseFrom is the primary entry point. It consumes tokens from the Source,
// builds an any value, and delegates validation to the Schema.
func ParseFrom[T any](ctx context.Context, s Schema[T], src Source, opts ...ParseOpt) (T, error) {
	var zero T
	if s == nil {
		return zero, singleIssue(CodeParseError, "nil schema")
	}
	var opt ParseOpt
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	// propagate fail-fast intent via context for schema implementations
	if opt.FailFast {
		ctx = WithFailFast(ctx, true)
	}
	v, err := DecodeAny(src, opt, nil)
	if err != nil {
		return zero, err
	}
	return s.Parse(ctx, v)
}

// DecodeAny decodes exactly one JSON value from src with runtime enforcement
// (duplicate keys, depth, bytes). Non-fatal enforcement findings, such as
// duplicate keys under OnDuplicateKey=Warn, are forwarded to sink when it is
// non-nil. Fatal problems are returned as Issues; syntax errors carry the
// decoder offset in Issue.Offset and the original error in Issue.Cause.
func DecodeAny(src Source, opt ParseOpt, sink func(Issue)) (any, error) {
	var forward func(eng.SimpleIssue)
	if sink != nil {
		forward = func(si eng.SimpleIssue) {
			sink(Issue{Path: si.Path, Code: si.Code, Message: si.Message, Offset: si.Offset})
		}
	}
	engSrc := EngineTokenSource(src)
	enforced := eng.WrapWithEnforcement(engSrc, eng.EnforceOptions{
		OnDuplicate: toEngineDup(opt.Strictness.OnDuplicateKey),
		MaxDepth:    opt.MaxDepth,
		MaxBytes:    opt.MaxBytes,
		IssueSink:   forward,
		FailFast:    opt.FailFast,
	})
	var (
		v   any
		err error
	)
	// Switch behavior according to the requested NumberMode.
	switch src.NumberMode() {
	case NumberFloat64:
		v, err = eng.DecodeAnyFromSourceAsFloat64(enforced)
	default:
		v, err = eng.DecodeAnyFromSource(enforced)
	}
	if err != nil {
		return nil, toIssues(err, src.Location())
	}
	return v, nil
}

func toEngineDup(s Severity) eng.DuplicateStrictness {
	switch s {
	case Error:
		return eng.DupError
	case Warn, Info:
		return eng.DupWarn
	default:
		return eng.DupIgnore
	}
}

func toIssues(err error, loc int64) Issues {
	if err == nil {
		return nil
	}
	if ii, ok := AsIssues(err); ok {
		return ii
	}
	var ie eng.IssueError
	if errors.As(err, &ie) {
		return AppendIssues(nil, Issue{Code: ie.Code, Path: ie.Path, Message: ie.Message, Offset: ie.Offset, Cause: err})
	}
	var se *eng.SyntaxError
	if errors.As(err, &se) {
		return AppendIssues(nil, Issue{Code: CodeParseError, Path: "/", Message: se.Msg, Offset: se.Offset, Cause: err})
	}
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return AppendIssues(nil, Issue{Code: CodeParseError, Path: "/", Message: "unexpected end of JSON input", Offset: -1, Cause: err})
	}
	return AppendIssues(nil, Issue{Code: CodeParseError, Path: "/", Message: err.Error(), Offset: loc, Cause: err})
}

// ---- Source -> engine.TokenSource adapter ----

type tokenSourceAdapter struct{ inner Source }

func (a *tokenSourceAdapter) NextToken() (eng.Token, error) {
	t, err := a.inner.NextToken()
	if err != nil {
		return eng.Token{}, err
	}
	return eng.Token{Kind: eng.Kind(t.Kind), String: t.String, Number: t.Number, Bool: t.Bool, Offset: t.Offset}, nil
}

func (a *tokenSourceAdapter) Location() int64 { return a.inner.Location() }

// EngineTokenSource exposes the engine.TokenSource view of a croissant.Source for internal users.
func EngineTokenSource(s Source) eng.TokenSource {
	// Fast-path: if s is already an engine-backed source, reuse the inner source.
	if ea, ok := s.(*engineSourceAdapter); ok {
		return ea.inner
	}
	return &tokenSourceAdapter{inner: s}
}

// LineCol converts a byte offset within data into 1-based line and column
// numbers. Offsets past the end clamp to the end of input.
func LineCol(data []byte, offset int64) (line, col int) {
	if offset < 0 {
		offset = 0
	}
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	line, col = 1, 1
	for _, b := range data[:offset] {
		if b == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}
	return line, col
}

// LocateSyntaxError re-checks data with a whole-input scanner and returns the
// first syntax error with the absolute byte offset of the offending character
// (len(data) for truncated input). Streaming decoders report
// offsets relative to the value being decoded, which is not useful to a user.
// ok is false when data is syntactically valid JSON.
func LocateSyntaxError(data []byte) (msg string, offset int64, ok bool) {
	var raw json.RawMessage
	err := json.Unmarshal(data, &raw)
	if err == nil {
		return "", 0, false
	}
	var se *json.SyntaxError
	if errors.As(err, &se) {
		off := se.Offset
		// the scanner counts the offending byte as read
		if strings.HasPrefix(se.Error(), "invalid character") && off > 0 {
			off--
		}
		return se.Error(), off, true
	}
	return err.Error(), int64(len(data)), true
}
