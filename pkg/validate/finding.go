// Package validate implements the conformance checks for skill packages:
// the identifier grammar, the frontmatter schema, and the structural rules
// for a package directory. Checks are evaluated exhaustively and reported as
// findings; a package is never abandoned after its first problem.
package validate

import (
	"fmt"
	"sort"
)

// Severity classifies a finding.
type Severity int

const (
	// SeverityError blocks export of the package
	SeverityError Severity = iota
	// SeverityWarning is reported but does not block
	SeverityWarning
	// SeverityInfo is a notice with no conformance impact
	SeverityInfo
)

// String returns the uppercase label used in reports.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "ERROR"
	case SeverityWarning:
		return "WARN"
	case SeverityInfo:
		return "INFO"
	default:
		return "UNKNOWN"
	}
}

// Finding codes. These are stable identifiers meant for diffing reports
// between runs.
const (
	CodeMissingSkillFile    = "missing-skill-file"
	CodeFrontmatterMissing  = "frontmatter-missing"
	CodeFrontmatterSyntax   = "frontmatter-syntax"
	CodeNameGrammar         = "name-grammar"
	CodeNameFolderMismatch  = "name-folder-mismatch"
	CodeFieldRequired       = "field-required"
	CodeFieldType           = "field-type"
	CodeFieldTooLong        = "field-too-long"
	CodeMetadataNotFlat     = "metadata-not-flat"
	CodeWeakDescription     = "weak-description"
	CodeBodyTooLong         = "body-too-long"
	CodeScriptHeaderMissing = "script-header-missing"
	CodeUnknownField        = "unknown-field"
)

// Finding is one reported condition for a package. Path is the package
// directory (or a file within it, for script findings); Field is set for
// frontmatter-level findings.
type Finding struct {
	Severity Severity
	Code     string
	Path     string
	Field    string
	Message  string
}

// String renders a finding as a single report line.
func (f Finding) String() string {
	if f.Field != "" {
		return fmt.Sprintf("%s [%s] %s: %s: %s", f.Severity, f.Code, f.Path, f.Field, f.Message)
	}
	return fmt.Sprintf("%s [%s] %s: %s", f.Severity, f.Code, f.Path, f.Message)
}

// Verdict is the aggregate outcome for a package.
type Verdict int

const (
	// VerdictPass means no error-level finding was raised
	VerdictPass Verdict = iota
	// VerdictFail means at least one error-level finding was raised
	VerdictFail
)

// String returns "pass" or "fail".
func (v Verdict) String() string {
	if v == VerdictFail {
		return "fail"
	}
	return "pass"
}

// Result is the outcome of checking one package directory.
type Result struct {
	Dir      string
	Verdict  Verdict
	Findings []Finding

	// Computed package attributes, populated when SKILL.md was readable.
	Name          string
	Description   string
	BodyLineCount int
	HasScripts    bool
	HasReferences bool
	HasAssets     bool
}

// Passed reports whether the package may be exported.
func (r *Result) Passed() bool {
	return r.Verdict == VerdictPass
}

// Warnings returns the warning-level findings.
func (r *Result) Warnings() []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.Severity == SeverityWarning {
			out = append(out, f)
		}
	}
	return out
}

// SortFindings orders findings by path, then severity, then code, then
// field, giving a deterministic report that can be diffed between runs.
func SortFindings(findings []Finding) {
	sort.Slice(findings, func(i, j int) bool {
		a, b := findings[i], findings[j]
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		if a.Severity != b.Severity {
			return a.Severity < b.Severity
		}
		if a.Code != b.Code {
			return a.Code < b.Code
		}
		return a.Field < b.Field
	})
}
