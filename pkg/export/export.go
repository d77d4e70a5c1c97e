// Package export implements the collision-aware flattening exporter: it
// walks a nested development tree of skill packages and copies each valid
// package into a single-level target directory keyed by skill name.
package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/skillpack/skillpack/pkg/logger"
	"github.com/skillpack/skillpack/pkg/skill"
	"github.com/skillpack/skillpack/pkg/validate"
)

// SkipReason classifies why a discovered package was not exported.
type SkipReason string

const (
	// ReasonValidationFailed means the structural checker returned a fail verdict
	ReasonValidationFailed SkipReason = "validation-failed"
	// ReasonCollision means an earlier package already claimed the flat name
	ReasonCollision SkipReason = "collision"
)

// Skip records one package left out of the export and why.
type Skip struct {
	Name   string     // resolved flat name, or "" when validation never produced one
	Source string     // nested source directory
	Reason SkipReason
	Detail string
}

// Copied records one exported package.
type Copied struct {
	Name   string // flat name in the target directory
	Source string // nested source directory
}

// Report summarizes one export run. Slices follow lexical discovery order.
type Report struct {
	Copied     []Copied
	Skipped    []Skip // validation failures
	Collisions []Skip
}

// Clean reports whether no package was skipped for any reason.
func (r *Report) Clean() bool {
	return len(r.Skipped) == 0 && len(r.Collisions) == 0
}

// Exporter flattens nested skill trees into a single-level directory.
type Exporter struct {
	checker *validate.Checker
	rename  bool
	ignore  []string
}

// Option is a function that configures an Exporter
type Option func(*Exporter) error

// WithChecker sets the structural checker used to gate each package.
func WithChecker(c *validate.Checker) Option {
	return func(e *Exporter) error {
		if c == nil {
			return errors.New("checker must not be nil")
		}
		e.checker = c
		return nil
	}
}

// WithRename enables numeric-suffix disambiguation for colliding flat names.
// It is off by default: silent renaming breaks the name/folder invariant for
// anything consuming the export, so callers must opt in.
func WithRename(rename bool) Option {
	return func(e *Exporter) error {
		e.rename = rename
		return nil
	}
}

// WithIgnorePatterns sets discovery ignore patterns for the nested root.
func WithIgnorePatterns(patterns ...string) Option {
	return func(e *Exporter) error {
		e.ignore = append(e.ignore, patterns...)
		return nil
	}
}

// New creates an exporter. A default checker is used unless one is supplied.
func New(opts ...Option) (*Exporter, error) {
	e := &Exporter{}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	if e.checker == nil {
		checker, err := validate.NewChecker()
		if err != nil {
			return nil, err
		}
		e.checker = checker
	}
	return e, nil
}

// Export flattens every valid package under root into target. The target
// directory is cleared first, so a run is idempotent rather than
// incremental; the nested source tree is never mutated. Per-package
// validation failures and collisions are recorded in the report, while
// target-directory write failures abort the whole run.
func (e *Exporter) Export(ctx context.Context, root, target string) (*Report, error) {
	log := logger.G(ctx)

	discovery, err := skill.NewDiscovery(root, skill.WithIgnorePatterns(e.ignore...))
	if err != nil {
		return nil, err
	}

	found, err := discovery.Discover()
	if err != nil {
		return nil, err
	}

	if err := os.RemoveAll(target); err != nil {
		return nil, errors.Wrapf(err, "failed to clear target directory %s", target)
	}
	if err := os.MkdirAll(target, 0o755); err != nil {
		return nil, errors.Wrapf(err, "failed to create target directory %s", target)
	}

	report := &Report{}
	claimed := make(map[string]string) // flat name -> source dir

	for _, d := range found {
		result := e.checker.CheckPackage(d.Dir)
		if !result.Passed() {
			log.WithField("dir", d.Dir).Debug("skipping package that failed validation")
			report.Skipped = append(report.Skipped, Skip{
				Name:   result.Name,
				Source: d.Dir,
				Reason: ReasonValidationFailed,
				Detail: failDetail(result),
			})
			continue
		}

		flatName, ok := e.resolveName(result.Name, claimed)
		if !ok {
			log.WithFields(map[string]interface{}{
				"name":  result.Name,
				"dir":   d.Dir,
				"first": claimed[result.Name],
			}).Debug("skipping package due to name collision")
			report.Collisions = append(report.Collisions, Skip{
				Name:   result.Name,
				Source: d.Dir,
				Reason: ReasonCollision,
				Detail: fmt.Sprintf("flat name already claimed by %s", claimed[result.Name]),
			})
			continue
		}

		destDir := filepath.Join(target, flatName)
		if err := copyDir(d.Dir, destDir); err != nil {
			return nil, errors.Wrapf(err, "failed to copy %s to %s", d.Dir, destDir)
		}

		claimed[flatName] = d.Dir
		report.Copied = append(report.Copied, Copied{Name: flatName, Source: d.Dir})
	}

	return report, nil
}

// resolveName picks the flat target name for a validated package. The first
// package in discovery order wins a contested name; later ones are either
// skipped or, when renaming is enabled, given the lowest free numeric
// suffix.
func (e *Exporter) resolveName(name string, claimed map[string]string) (string, bool) {
	if _, taken := claimed[name]; !taken {
		return name, true
	}
	if !e.rename {
		return "", false
	}
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s-%d", name, i)
		if _, taken := claimed[candidate]; !taken {
			return candidate, true
		}
	}
}

func failDetail(result *validate.Result) string {
	for _, f := range result.Findings {
		if f.Severity == validate.SeverityError {
			return f.Message
		}
	}
	return "validation failed"
}

func copyDir(src, dst string) error {
	return filepath.Walk(src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}

		destPath := filepath.Join(dst, relPath)

		if info.IsDir() {
			return os.MkdirAll(destPath, info.Mode())
		}

		return copyFile(path, destPath)
	})
}

func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	srcInfo, err := srcFile.Stat()
	if err != nil {
		return err
	}

	dstFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, srcInfo.Mode())
	if err != nil {
		return err
	}
	defer dstFile.Close()

	_, err = io.Copy(dstFile, srcFile)
	return err
}
