package validate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestSkill(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "SKILL.md"), []byte(content), 0o644))
}

func TestCheckPackageClean(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "web-search")
	writeTestSkill(t, dir, `---
name: web-search
description: Use this skill when the task requires web research
---

# Web Search

Instructions here.
`)

	checker := newTestChecker(t)
	result := checker.CheckPackage(dir)

	assert.True(t, result.Passed())
	assert.Empty(t, result.Findings)
	assert.Equal(t, "web-search", result.Name)
	assert.Equal(t, 3, result.BodyLineCount)
	assert.False(t, result.HasScripts)
}

func TestCheckPackageMissingSkillFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "empty-pkg")
	require.NoError(t, os.MkdirAll(dir, 0o755))

	checker := newTestChecker(t)
	result := checker.CheckPackage(dir)

	require.False(t, result.Passed())
	require.Len(t, result.Findings, 1)
	assert.Equal(t, CodeMissingSkillFile, result.Findings[0].Code)
}

func TestCheckPackageMissingFrontmatter(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "bare")
	writeTestSkill(t, dir, "# No frontmatter\n")

	checker := newTestChecker(t)
	result := checker.CheckPackage(dir)

	require.False(t, result.Passed())
	require.Len(t, result.Findings, 1)
	assert.Equal(t, CodeFrontmatterMissing, result.Findings[0].Code)
}

func TestCheckPackageCapitalizedName(t *testing.T) {
	// A capitalized name in a lowercase folder breaks both the grammar and
	// the name/folder match, and both must be reported.
	dir := filepath.Join(t.TempDir(), "web-search")
	writeTestSkill(t, dir, `---
name: Web-Search
description: Use this skill when the task requires web research
---

Body.
`)

	checker := newTestChecker(t)
	result := checker.CheckPackage(dir)

	require.False(t, result.Passed())
	assert.NotNil(t, findingWithCode(result.Findings, CodeNameGrammar))
	assert.NotNil(t, findingWithCode(result.Findings, CodeNameFolderMismatch))
}

func TestCheckPackageNameFolderMismatch(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "some-folder")
	writeTestSkill(t, dir, `---
name: other-name
description: Use this skill when testing folder mismatch
---

Body.
`)

	checker := newTestChecker(t)
	result := checker.CheckPackage(dir)

	require.False(t, result.Passed())
	assert.Nil(t, findingWithCode(result.Findings, CodeNameGrammar))
	assert.NotNil(t, findingWithCode(result.Findings, CodeNameFolderMismatch))
}

func TestCheckPackageBodyCeiling(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "long-skill")
	body := strings.Repeat("line of instructions\n", 612)
	writeTestSkill(t, dir, `---
name: long-skill
description: Use this skill when testing the line ceiling
---

`+body)

	checker := newTestChecker(t)
	result := checker.CheckPackage(dir)

	// Advisory only: a long body is a warning, never a failure.
	assert.True(t, result.Passed())
	f := findingWithCode(result.Findings, CodeBodyTooLong)
	require.NotNil(t, f)
	assert.Equal(t, SeverityWarning, f.Severity)
	assert.Contains(t, f.Message, "references/")
	assert.Equal(t, 612, result.BodyLineCount)
}

func TestCheckPackageBodyCeilingConfigurable(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "short-skill")
	writeTestSkill(t, dir, `---
name: short-skill
description: Use this skill when testing configurable ceilings
---

one
two
three
`)

	checker := newTestChecker(t, WithBodyLineLimit(2))
	result := checker.CheckPackage(dir)

	assert.True(t, result.Passed())
	assert.NotNil(t, findingWithCode(result.Findings, CodeBodyTooLong))
}

func TestCheckPackageScripts(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "script-skill")
	writeTestSkill(t, dir, `---
name: script-skill
description: Use this skill when testing script headers
---

Body.
`)
	scriptsDir := filepath.Join(dir, "scripts")
	require.NoError(t, os.MkdirAll(scriptsDir, 0o755))

	withHeader := "#!/bin/sh\n# Usage: fetch.sh <url>\necho ok\n"
	require.NoError(t, os.WriteFile(filepath.Join(scriptsDir, "fetch.sh"), []byte(withHeader), 0o755))

	withoutHeader := "#!/bin/sh\necho no header here\n"
	require.NoError(t, os.WriteFile(filepath.Join(scriptsDir, "bare.sh"), []byte(withoutHeader), 0o755))

	checker := newTestChecker(t)
	result := checker.CheckPackage(dir)

	assert.True(t, result.Passed())
	assert.True(t, result.HasScripts)

	f := findingWithCode(result.Findings, CodeScriptHeaderMissing)
	require.NotNil(t, f)
	assert.Equal(t, SeverityWarning, f.Severity)
	assert.Equal(t, filepath.Join(scriptsDir, "bare.sh"), f.Path)
}

func TestCheckPackageUnknownFieldInfo(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "extra-skill")
	writeTestSkill(t, dir, `---
name: extra-skill
description: Use this skill when testing unknown field notices
team: research
---

Body.
`)

	checker := newTestChecker(t)
	result := checker.CheckPackage(dir)

	assert.True(t, result.Passed())
	f := findingWithCode(result.Findings, CodeUnknownField)
	require.NotNil(t, f)
	assert.Equal(t, SeverityInfo, f.Severity)
	assert.Equal(t, "team", f.Field)
}

func TestCheckTree(t *testing.T) {
	tmpDir := t.TempDir()

	writeTestSkill(t, filepath.Join(tmpDir, "a", "good-skill"), `---
name: good-skill
description: Use this skill when testing whole-tree checks
---

Body.
`)
	writeTestSkill(t, filepath.Join(tmpDir, "b", "bad-skill"), `---
name: Bad-Skill
description: Use this skill when testing whole-tree checks
---

Body.
`)
	writeTestSkill(t, filepath.Join(tmpDir, "c", "also-good"), `---
name: also-good
description: Use this skill when testing whole-tree checks
---

Body.
`)

	checker := newTestChecker(t)
	results, err := checker.CheckTree(tmpDir)
	require.NoError(t, err)
	require.Len(t, results, 3)

	// One bad package never aborts its siblings, and order is lexical.
	assert.True(t, results[0].Passed())
	assert.Equal(t, "good-skill", results[0].Name)
	assert.False(t, results[1].Passed())
	assert.True(t, results[2].Passed())
	assert.Equal(t, "also-good", results[2].Name)
}

func TestCheckerOptionValidation(t *testing.T) {
	_, err := NewChecker(WithBodyLineLimit(0))
	assert.Error(t, err)

	_, err = NewChecker(WithDescriptionKeywords())
	assert.Error(t, err)
}
