package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/skillpack/skillpack/pkg/presenter"
	"github.com/skillpack/skillpack/pkg/skill"
	"github.com/skillpack/skillpack/pkg/validate"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <path>",
	Short: "Validate skill packages under a path",
	Long: `Validate a skill package, or every package found under a directory tree.

If the path itself contains a SKILL.md it is validated as a single package;
otherwise the whole tree is walked in lexical order and every discovered
package is checked. Findings are printed to standard error, sorted by path,
and the command exits non-zero if any package failed.

Examples:
  skillpack validate skills/research/web-search
  skillpack validate skills/`,
	Args: cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		runValidate(args[0])
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(path string) {
	checker, err := newCheckerFromConfig()
	if err != nil {
		presenter.Error(err, "Failed to configure checker")
		os.Exit(1)
	}

	var results []*validate.Result
	if _, err := os.Stat(filepath.Join(path, skill.SkillFileName)); err == nil {
		results = []*validate.Result{checker.CheckPackage(path)}
	} else {
		results, err = checker.CheckTree(path, skill.WithIgnorePatterns(ignorePatterns()...))
		if err != nil {
			presenter.Error(err, "Failed to walk tree")
			os.Exit(1)
		}
	}

	if len(results) == 0 {
		presenter.Warning(fmt.Sprintf("No skill packages found under %s", path))
		return
	}

	passed, failed := 0, 0
	for _, result := range results {
		for _, finding := range result.Findings {
			fmt.Fprintln(os.Stderr, finding.String())
		}
		if result.Passed() {
			passed++
		} else {
			failed++
		}
	}

	if failed > 0 {
		presenter.Error(errors.Errorf("%d of %d package(s) failed validation", failed, passed+failed), "Validation failed")
		os.Exit(1)
	}
	presenter.Success(fmt.Sprintf("%d package(s) passed validation", passed))
}
