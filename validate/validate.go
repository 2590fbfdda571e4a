// Package validate checks an existing Croissant document: it must be JSON,
// carry the required top-level keys, and (when a deep validator is
// available) match the dataset schema. Findings are collected in a Report
// rather than returned as a single error.
package validate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	croissant "github.com/reoring/croissant"
	"github.com/reoring/croissant/schema"
)

// RequiredFields are the top-level keys every document must carry, in the
// order they are reported.
var RequiredFields = []string{
	"@context",
	"@type",
	"conformsTo",
	"name",
	"description",
	"license",
	"url",
	"creator",
	"datePublished",
	"distribution",
}

// CodeRequiredOK marks the notice emitted when the required-field checks pass.
const CodeRequiredOK = "required_fields_ok"

// DefaultMaxDepth bounds JSON nesting during decoding.
const DefaultMaxDepth = 64

// Validator validates documents. It is safe for sequential reuse.
type Validator struct {
	deep   DeepValidator
	opt    croissant.ParseOpt
	logger *slog.Logger
}

// Option configures a Validator.
type Option func(*Validator)

// WithDeep selects the deep validation capability.
func WithDeep(d DeepValidator) Option { return func(v *Validator) { v.deep = d } }

// WithParseOpt replaces the decoding options.
func WithParseOpt(o croissant.ParseOpt) Option { return func(v *Validator) { v.opt = o } }

// WithLogger sets the logger used for debug tracing.
func WithLogger(l *slog.Logger) Option {
	return func(v *Validator) {
		if l != nil {
			v.logger = l
		}
	}
}

// New returns a Validator. By default deep validation uses schema.Document,
// duplicate JSON keys are warnings, and nesting is limited to DefaultMaxDepth.
func New(opts ...Option) *Validator {
	v := &Validator{
		deep: Available(schema.Document()),
		opt: croissant.ParseOpt{
			Strictness: croissant.Strictness{OnDuplicateKey: croissant.Warn},
			MaxDepth:   DefaultMaxDepth,
		},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, o := range opts {
		o(v)
	}
	if v.deep == nil {
		v.deep = Unavailable("no deep validator configured")
	}
	return v
}

// ValidateFile validates the document stored at path.
func (v *Validator) ValidateFile(ctx context.Context, path string) Report {
	data, err := os.ReadFile(path)
	if err != nil {
		r := Report{Source: path}
		if errors.Is(err, fs.ErrNotExist) {
			r.add(croissant.Error, croissant.Issue{Path: "/", Code: croissant.CodeNotFound, Message: "File not found: " + path, Cause: err, Offset: -1})
			return r
		}
		r.add(croissant.Error, croissant.Issue{Path: "/", Code: croissant.CodeParseError, Message: fmt.Sprintf("failed to read %s: %v", path, err), Cause: err, Offset: -1})
		return r
	}
	r := v.ValidateBytes(ctx, data)
	r.Source = path
	return r
}

// ValidateBytes validates an in-memory document.
func (v *Validator) ValidateBytes(ctx context.Context, data []byte) Report {
	var r Report
	logger := v.logger.With("driver", croissant.JSONDriverName())

	decoded, err := croissant.DecodeAny(croissant.JSONBytes(data), v.opt, func(it croissant.Issue) {
		// fatal findings come back through err as well
		if it.Code != croissant.CodeDuplicateKey || v.opt.Strictness.OnDuplicateKey == croissant.Error || v.opt.FailFast {
			return
		}
		it.Message = fmt.Sprintf("%s at %s", it.Message, it.Path)
		r.add(croissant.Warn, it)
	})
	if err != nil {
		r.add(croissant.Error, decodeFailure(data, err))
		return r
	}
	logger.Debug("decoded document", "bytes", len(data))

	doc, ok := decoded.(map[string]any)
	if !ok {
		r.add(croissant.Error, croissant.Issue{Path: "/", Code: croissant.CodeInvalidType, Message: fmt.Sprintf("Top-level JSON value must be an object, got %s", kindOf(decoded)), Offset: -1})
		return r
	}
	r.Name, _ = doc["name"].(string)

	if missing := missingFields(doc); len(missing) > 0 {
		r.add(croissant.Error, croissant.IssueAt(croissant.Root(), croissant.CodeRequired,
			"Missing required fields: "+strings.Join(missing, ", "),
			map[string]any{"missing": missing}))
		return r
	}

	if doc["conformsTo"] != croissant.ConformsTo10 {
		r.add(croissant.Warn, croissant.Root().Field("conformsTo").Issue(
			croissant.CodeNonstandardVer,
			"conformsTo is not "+croissant.ConformsTo10,
			"got", doc["conformsTo"],
		))
	}

	if dist, ok := doc["distribution"].([]any); ok {
		for i, entry := range dist {
			m, ok := entry.(map[string]any)
			if !ok {
				continue
			}
			t, _ := m["@type"].(string)
			if croissant.IsFileObjectType(t) && !truthy(m["sha256"]) && !truthy(m["md5"]) {
				r.add(croissant.Warn, croissant.Root().Field("distribution").Index(i).Issue(
					croissant.CodeMissingDigest,
					fmt.Sprintf("distribution[%d] FileObject missing sha256/md5 checksum", i),
				))
			}
		}
	}

	if err := ctx.Err(); err != nil {
		r.add(croissant.Error, croissant.Issue{Path: "/", Code: croissant.CodeDeepFailed, Message: err.Error(), Cause: err, Offset: -1})
		return r
	}

	avail, reason := v.deep.Available()
	var deepNotice croissant.Issue
	if !avail {
		logger.Debug("deep validation skipped", "reason", reason)
		deepNotice = croissant.Issue{Path: "/", Code: croissant.CodeDeepSkipped, Message: reason, Offset: -1}
	} else {
		if err := v.deep.Validate(ctx, doc); err != nil {
			logger.Debug("deep validation failed", "error", err)
			r.add(croissant.Error, croissant.Issue{
				Path:    "/",
				Code:    croissant.CodeDeepFailed,
				Message: "deep validation failed: " + err.Error(),
				Cause:   err,
				Offset:  -1,
			})
			return r
		}
		deepNotice = croissant.Issue{Path: "/", Code: croissant.CodeDeepOK, Message: "deep validation OK: " + r.Name, Offset: -1}
	}

	r.add(croissant.Info, croissant.Issue{Path: "/", Code: CodeRequiredOK, Message: "Required field validation passed", Offset: -1})
	r.add(croissant.Info, deepNotice)
	return r
}

// decodeFailure turns a DecodeAny error into the user-facing issue. Syntax
// errors are re-located against the whole input so the message names the
// line and column.
func decodeFailure(data []byte, err error) croissant.Issue {
	iss, ok := croissant.AsIssues(err)
	if !ok || len(iss) == 0 {
		return croissant.Issue{Path: "/", Code: croissant.CodeParseError, Message: "Invalid JSON: " + err.Error(), Cause: err, Offset: -1}
	}
	first := iss[0]
	if msg, off, bad := croissant.LocateSyntaxError(data); bad {
		line, col := croissant.LineCol(data, off)
		first.Code = croissant.CodeParseError
		first.Path = "/"
		first.Offset = off
		first.Message = fmt.Sprintf("Invalid JSON: %s: line %d column %d (char %d)", msg, line, col, off)
		first.Params = map[string]any{"line": line, "column": col, "char": off}
		return first
	}
	// syntactically valid but rejected by enforcement (depth, size, duplicate keys)
	first.Message = fmt.Sprintf("Invalid JSON: %s at %s", first.Message, first.Path)
	return first
}

func missingFields(doc map[string]any) []string {
	var missing []string
	for _, k := range RequiredFields {
		if _, ok := doc[k]; !ok {
			missing = append(missing, k)
		}
	}
	return missing
}

// truthy treats null, false, "", zero numbers and empty arrays or objects
// as absent.
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case string:
		return x != ""
	case bool:
		return x
	case float64:
		return x != 0
	case int:
		return x != 0
	case []any:
		return len(x) > 0
	case map[string]any:
		return len(x) > 0
	case interface{ Float64() (float64, error) }: // json.Number
		f, err := x.Float64()
		return err != nil || f != 0
	default:
		return true
	}
}

func kindOf(v any) string {
	switch v.(type) {
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	case nil:
		return "null"
	default:
		return "number"
	}
}
