package validate

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/skillpack/skillpack/pkg/skill"
)

// DefaultBodyLineLimit is the progressive-disclosure ceiling for the
// instructional body. Exceeding it is advisory, not fatal: some legitimately
// dense skills run long.
const DefaultBodyLineLimit = 500

// scriptHeaderScanLines bounds how far into a script the header scan looks.
const scriptHeaderScanLines = 15

// Checker runs the structural conformance checks for skill package
// directories.
type Checker struct {
	bodyLineLimit       int
	descriptionKeywords []string
}

// CheckerOption is a function that configures a Checker
type CheckerOption func(*Checker) error

// WithBodyLineLimit overrides the default body line-count ceiling.
func WithBodyLineLimit(limit int) CheckerOption {
	return func(c *Checker) error {
		if limit <= 0 {
			return errors.Errorf("body line limit must be positive, got %d", limit)
		}
		c.bodyLineLimit = limit
		return nil
	}
}

// WithDescriptionKeywords overrides the usage-cue keywords used by the
// weak-description heuristic.
func WithDescriptionKeywords(keywords ...string) CheckerOption {
	return func(c *Checker) error {
		if len(keywords) == 0 {
			return errors.New("at least one description keyword must be specified")
		}
		c.descriptionKeywords = keywords
		return nil
	}
}

// NewChecker creates a checker with the default limits, applying any options.
func NewChecker(opts ...CheckerOption) (*Checker, error) {
	c := &Checker{
		bodyLineLimit:       DefaultBodyLineLimit,
		descriptionKeywords: DefaultDescriptionKeywords,
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// CheckPackage validates a single package directory and returns its verdict
// with the full list of findings. All checks run; the only hard stops are a
// missing SKILL.md and unparsable frontmatter, since nothing further can be
// evaluated without them.
func (c *Checker) CheckPackage(dir string) *Result {
	result := &Result{Dir: dir}

	if _, err := os.Stat(filepath.Join(dir, skill.SkillFileName)); err != nil {
		result.Verdict = VerdictFail
		result.Findings = []Finding{{
			Severity: SeverityError,
			Code:     CodeMissingSkillFile,
			Path:     dir,
			Message:  skill.SkillFileName + " not found at package root",
		}}
		return result
	}

	pkg, err := skill.Load(dir)
	if err != nil {
		code := CodeFrontmatterSyntax
		if errors.Is(err, skill.ErrMissingFrontmatter) {
			code = CodeFrontmatterMissing
		}
		result.Verdict = VerdictFail
		result.Findings = []Finding{{
			Severity: SeverityError,
			Code:     code,
			Path:     dir,
			Message:  err.Error(),
		}}
		return result
	}

	result.Name = pkg.Name
	result.Description = pkg.Description
	result.BodyLineCount = pkg.BodyLineCount
	result.HasScripts = pkg.HasScripts
	result.HasReferences = pkg.HasReferences
	result.HasAssets = pkg.HasAssets

	findings := c.CheckFrontmatter(pkg.Frontmatter)
	for i := range findings {
		findings[i].Path = dir
	}

	findings = append(findings, checkName(pkg.Name, dir)...)
	findings = append(findings, c.checkBody(pkg, dir)...)
	findings = append(findings, checkScripts(dir)...)

	SortFindings(findings)
	result.Findings = findings

	result.Verdict = VerdictPass
	for _, f := range findings {
		if f.Severity == SeverityError {
			result.Verdict = VerdictFail
			break
		}
	}

	return result
}

// checkName translates identifier issues into findings. The required-field
// case is already covered by the frontmatter check, so an empty name adds
// nothing here.
func checkName(name, dir string) []Finding {
	if name == "" {
		return nil
	}

	var findings []Finding
	for _, issue := range CheckIdentifier(name, filepath.Base(dir)) {
		switch issue {
		case IssueInvalidGrammar:
			findings = append(findings, Finding{
				Severity: SeverityError,
				Code:     CodeNameGrammar,
				Path:     dir,
				Field:    "name",
				Message:  CheckGrammar(name).Error(),
			})
		case IssueNameFolderMismatch:
			findings = append(findings, Finding{
				Severity: SeverityError,
				Code:     CodeNameFolderMismatch,
				Path:     dir,
				Field:    "name",
				Message:  fmt.Sprintf("name %q does not match folder name %q", name, filepath.Base(dir)),
			})
		}
	}
	return findings
}

func (c *Checker) checkBody(pkg *skill.Package, dir string) []Finding {
	if pkg.BodyLineCount <= c.bodyLineLimit {
		return nil
	}
	return []Finding{{
		Severity: SeverityWarning,
		Code:     CodeBodyTooLong,
		Path:     dir,
		Message: fmt.Sprintf("body is %d lines (ceiling %d); consider moving detail into %s/",
			pkg.BodyLineCount, c.bodyLineLimit, skill.ReferencesDir),
	}}
}

// checkScripts warns for each script lacking a usage or permission header
// comment near the top of the file. Script correctness itself is out of
// scope.
func checkScripts(dir string) []Finding {
	scriptsDir := filepath.Join(dir, skill.ScriptsDir)
	info, err := os.Stat(scriptsDir)
	if err != nil || !info.IsDir() {
		return nil
	}

	var findings []Finding
	_ = filepath.WalkDir(scriptsDir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil || entry.IsDir() {
			return nil
		}
		if !hasUsageHeader(path) {
			findings = append(findings, Finding{
				Severity: SeverityWarning,
				Code:     CodeScriptHeaderMissing,
				Path:     path,
				Message:  "script has no usage/permission header comment",
			})
		}
		return nil
	})
	return findings
}

func hasUsageHeader(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for i := 0; i < scriptHeaderScanLines && scanner.Scan(); i++ {
		line := strings.ToLower(scanner.Text())
		if strings.Contains(line, "usage") || strings.Contains(line, "permission") {
			return true
		}
	}
	return false
}

// CheckTree discovers every package under root and checks each one. Results
// come back in lexical path order, and a bad package never aborts its
// siblings.
func (c *Checker) CheckTree(root string, opts ...skill.DiscoveryOption) ([]*Result, error) {
	discovery, err := skill.NewDiscovery(root, opts...)
	if err != nil {
		return nil, err
	}

	found, err := discovery.Discover()
	if err != nil {
		return nil, err
	}

	results := make([]*Result, 0, len(found))
	for _, d := range found {
		results = append(results, c.CheckPackage(d.Dir))
	}
	return results, nil
}
