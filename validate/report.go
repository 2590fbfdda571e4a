package validate

import croissant "github.com/reoring/croissant"

// Diagnostic is one finding with its severity.
type Diagnostic struct {
	Severity croissant.Severity
	croissant.Issue
}

// Line renders d the way the CLI prints it, e.g. "WARNING: conformsTo is not ...".
// Info diagnostics are success notices and print as "OK".
func (d Diagnostic) Line() string {
	prefix := d.Severity.String()
	if d.Severity == croissant.Info {
		prefix = "OK"
	}
	return prefix + ": " + d.Message
}

// Report is the outcome of validating one document. It passes iff it holds
// no Error diagnostics; warnings never change the outcome.
type Report struct {
	Source      string // file path, or "" for in-memory input
	Name        string // dataset name, when the document has one
	Diagnostics []Diagnostic
}

func (r *Report) add(sev croissant.Severity, it croissant.Issue) {
	r.Diagnostics = append(r.Diagnostics, Diagnostic{Severity: sev, Issue: it})
}

// Passed reports whether the document was accepted.
func (r Report) Passed() bool {
	for _, d := range r.Diagnostics {
		if d.Severity == croissant.Error {
			return false
		}
	}
	return true
}

// Err returns the error diagnostics as croissant.Issues, or nil when passed.
func (r Report) Err() error {
	var iss croissant.Issues
	for _, d := range r.Diagnostics {
		if d.Severity == croissant.Error {
			iss = croissant.AppendIssues(iss, d.Issue)
		}
	}
	if len(iss) == 0 {
		return nil
	}
	return iss
}

// Select returns the diagnostics of the given severity, in report order.
func (r Report) Select(sev croissant.Severity) []Diagnostic {
	var out []Diagnostic
	for _, d := range r.Diagnostics {
		if d.Severity == sev {
			out = append(out, d)
		}
	}
	return out
}
