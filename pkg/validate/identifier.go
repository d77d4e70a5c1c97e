package validate

import (
	"strings"

	"github.com/pkg/errors"
)

// Identifier grammar bounds.
const (
	MinNameLength = 1
	MaxNameLength = 64
)

// IdentifierIssue is one way a skill name can be rejected.
type IdentifierIssue int

const (
	// IssueInvalidGrammar means the name violates the identifier grammar
	IssueInvalidGrammar IdentifierIssue = iota
	// IssueNameFolderMismatch means the name is not byte-identical to the
	// package folder's basename
	IssueNameFolderMismatch
)

// CheckIdentifier evaluates a frontmatter name against the identifier
// grammar and against the package folder's basename. Both checks always run,
// so a name can be rejected for both reasons at once. An empty result means
// the identifier is valid. Violating names are rejected, never rewritten.
func CheckIdentifier(name, folderName string) []IdentifierIssue {
	var issues []IdentifierIssue
	if err := CheckGrammar(name); err != nil {
		issues = append(issues, IssueInvalidGrammar)
	}
	if name != folderName {
		issues = append(issues, IssueNameFolderMismatch)
	}
	return issues
}

// CheckGrammar validates a name against the identifier grammar: 1-64
// characters, lowercase ASCII letters, digits, and hyphens only, with no
// leading, trailing, or doubled hyphen. The returned error names the rule
// that was broken.
func CheckGrammar(name string) error {
	if len(name) < MinNameLength {
		return errors.New("name must not be empty")
	}
	if len(name) > MaxNameLength {
		return errors.Errorf("name must be at most %d characters, got %d", MaxNameLength, len(name))
	}
	for _, c := range []byte(name) {
		if !isNameByte(c) {
			return errors.Errorf("name contains invalid character %q; only lowercase letters, digits, and hyphens are allowed", c)
		}
	}
	if name[0] == '-' || name[len(name)-1] == '-' {
		return errors.New("name must not start or end with a hyphen")
	}
	if strings.Contains(name, "--") {
		return errors.New("name must not contain consecutive hyphens")
	}
	return nil
}

func isNameByte(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '-'
}
