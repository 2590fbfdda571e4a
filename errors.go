package croissant

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeInvalidType    = "invalid_type"
	CodeRequired       = "required"
	CodeUnknownKey     = "unknown_key"
	CodeDuplicateKey   = "duplicate_key"
	CodeTooShort       = "too_short"
	CodeInvalidEnum    = "invalid_enum"
	CodeInvalidFormat  = "invalid_format"
	CodeParseError     = "parse_error"
	CodeTruncated      = "truncated"
	CodeNotFound       = "not_found"
	CodeUniqueness     = "uniqueness"
	CodeDanglingRef    = "dangling_reference"
	CodeCustom         = "custom"
	CodeNonstandardVer = "nonstandard_conformance"
	CodeMissingDigest  = "missing_checksum"
	// Deep (schema-aware) validation outcomes
	CodeDeepFailed  = "deep_validation_failed"
	CodeDeepSkipped = "deep_validation_skipped"
	CodeDeepOK      = "deep_validation_ok"
)

// Sentinel errors for input failures. Callers match them with errors.Is.
var (
	ErrNotFound     = errors.New("croissant: not found")
	ErrInvalidInput = errors.New("croissant: invalid input")
)

// Issue represents a single validation entry.
type Issue struct {
	Path    string // JSON Pointer (for example: /distribution/0/sha256).
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional: remediation hints, format names, etc.
	Cause   error  // Optional: underlying error.
	Offset  int64  // Byte offset in the input source (-1 when unknown).
	// Params carries structured parameters (e.g., {"missing": []string{"license"}})
	// for i18n and observability.
	Params map[string]any
	// Rule optionally records the rule name that produced this issue.
	Rule string
}

// Unwrap exposes the underlying cause.
func (it Issue) Unwrap() error { return it.Cause }

// Issues is a collection of validation errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. invalid_type at /path
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// RebaseIssues prefixes every issue path with base. Child issues rooted at "/"
// collapse onto base itself.
func RebaseIssues(base string, child Issues) Issues {
	out := make(Issues, 0, len(child))
	for _, it := range child {
		p := it.Path
		switch {
		case p == "" || p == "/":
			p = base
		case p[0] == '/':
			p = base + p
		default:
			p = base + "/" + p
		}
		it.Path = p
		out = append(out, it)
	}
	return out
}
