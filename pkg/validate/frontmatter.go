package validate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/skillpack/skillpack/pkg/skill"
)

// DescriptionMaxLength is the hard ceiling for the description field.
const DescriptionMaxLength = 1024

// weakDescriptionMinLength is the point below which a description is
// considered too thin to guide an agent's skill selection.
const weakDescriptionMinLength = 20

// DefaultDescriptionKeywords are the usage-cue words a useful description is
// expected to contain at least one of. The heuristic is advisory only.
var DefaultDescriptionKeywords = []string{"use", "when", "for"}

// CheckFrontmatter validates parsed frontmatter against the schema: required
// name and description, optional license, compatibility, and flat metadata
// map. Unknown top-level fields are tolerated and passed through, but
// reported as info-level findings. The returned findings carry empty Path
// values; callers attach the package directory.
func (c *Checker) CheckFrontmatter(fm map[string]interface{}) []Finding {
	var findings []Finding

	findings = append(findings, checkRequiredString(fm, "name")...)

	descFindings, desc := checkRequiredStringValue(fm, "description")
	findings = append(findings, descFindings...)
	if desc != "" {
		if len(desc) > DescriptionMaxLength {
			findings = append(findings, Finding{
				Severity: SeverityError,
				Code:     CodeFieldTooLong,
				Field:    "description",
				Message:  fmt.Sprintf("must be at most %d characters, got %d", DescriptionMaxLength, len(desc)),
			})
		} else if c.weakDescription(desc) {
			findings = append(findings, Finding{
				Severity: SeverityWarning,
				Code:     CodeWeakDescription,
				Field:    "description",
				Message:  "description carries little signal; say what the skill does and when to use it",
			})
		}
	}

	for _, field := range []string{"license", "compatibility"} {
		if v, present := fm[field]; present {
			if _, ok := v.(string); !ok {
				findings = append(findings, Finding{
					Severity: SeverityError,
					Code:     CodeFieldType,
					Field:    field,
					Message:  fmt.Sprintf("must be a string, got %T", v),
				})
			}
		}
	}

	findings = append(findings, checkMetadata(fm)...)
	findings = append(findings, checkUnknownFields(fm)...)

	return findings
}

func (c *Checker) weakDescription(desc string) bool {
	if len(desc) < weakDescriptionMinLength {
		return true
	}
	lower := strings.ToLower(desc)
	for _, kw := range c.descriptionKeywords {
		if strings.Contains(lower, kw) {
			return false
		}
	}
	return true
}

func checkRequiredString(fm map[string]interface{}, field string) []Finding {
	findings, _ := checkRequiredStringValue(fm, field)
	return findings
}

func checkRequiredStringValue(fm map[string]interface{}, field string) ([]Finding, string) {
	v, present := fm[field]
	if !present {
		return []Finding{{
			Severity: SeverityError,
			Code:     CodeFieldRequired,
			Field:    field,
			Message:  "required field is missing",
		}}, ""
	}
	s, ok := v.(string)
	if !ok {
		return []Finding{{
			Severity: SeverityError,
			Code:     CodeFieldType,
			Field:    field,
			Message:  fmt.Sprintf("must be a string, got %T", v),
		}}, ""
	}
	if s == "" {
		return []Finding{{
			Severity: SeverityError,
			Code:     CodeFieldRequired,
			Field:    field,
			Message:  "required field is empty",
		}}, ""
	}
	return nil, s
}

// checkMetadata enforces that metadata, when present, is a flat mapping of
// string keys to scalar values. Nested structures would complicate exported
// packages, so they are rejected outright.
func checkMetadata(fm map[string]interface{}) []Finding {
	v, present := fm["metadata"]
	if !present {
		return nil
	}

	m, ok := v.(map[string]interface{})
	if !ok {
		return []Finding{{
			Severity: SeverityError,
			Code:     CodeFieldType,
			Field:    "metadata",
			Message:  fmt.Sprintf("must be a mapping, got %T", v),
		}}
	}

	var findings []Finding
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		switch m[k].(type) {
		case map[string]interface{}, []interface{}:
			findings = append(findings, Finding{
				Severity: SeverityError,
				Code:     CodeMetadataNotFlat,
				Field:    "metadata." + k,
				Message:  "metadata values must be scalars, not nested structures",
			})
		}
	}
	return findings
}

func checkUnknownFields(fm map[string]interface{}) []Finding {
	keys := make([]string, 0, len(fm))
	for k := range fm {
		if !skill.KnownFields[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var findings []Finding
	for _, k := range keys {
		findings = append(findings, Finding{
			Severity: SeverityInfo,
			Code:     CodeUnknownField,
			Field:    k,
			Message:  "unknown field is tolerated and passed through unchanged",
		})
	}
	return findings
}
