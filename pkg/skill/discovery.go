package skill

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pkg/errors"
)

// Discovery walks a nested development tree and finds skill package
// directories. Discovery order is a documented contract: lexical path order,
// so downstream collision resolution and reports are reproducible.
type Discovery struct {
	root   string
	ignore []string
}

// DiscoveryOption is a function that configures a Discovery
type DiscoveryOption func(*Discovery) error

// WithIgnorePatterns sets doublestar glob patterns, matched against
// slash-separated paths relative to the root, for subtrees to skip.
func WithIgnorePatterns(patterns ...string) DiscoveryOption {
	return func(d *Discovery) error {
		for _, p := range patterns {
			if !doublestar.ValidatePattern(p) {
				return errors.Errorf("invalid ignore pattern %q", p)
			}
		}
		d.ignore = append(d.ignore, patterns...)
		return nil
	}
}

// NewDiscovery creates a discovery rooted at the given directory
func NewDiscovery(root string, opts ...DiscoveryOption) (*Discovery, error) {
	d := &Discovery{root: root}
	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// Discovered identifies one package directory found under the root.
type Discovered struct {
	Dir string // full path to the package directory
	Rel string // slash-separated path relative to the discovery root
}

// Discover returns every directory under the root that contains a SKILL.md,
// in lexical path order. A package directory is treated as a unit: its
// subdirectories are not searched for further packages.
func (d *Discovery) Discover() ([]Discovered, error) {
	if _, err := os.Stat(d.root); err != nil {
		return nil, errors.Wrapf(err, "cannot read root %s", d.root)
	}

	var found []Discovered

	err := filepath.WalkDir(d.root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() {
			return nil
		}
		if entry.Name() == ".git" || entry.Name() == "node_modules" {
			return filepath.SkipDir
		}

		rel, err := filepath.Rel(d.root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if rel != "." && d.ignored(rel) {
			return filepath.SkipDir
		}

		if _, err := os.Stat(filepath.Join(path, SkillFileName)); err == nil {
			found = append(found, Discovered{Dir: path, Rel: rel})
			return filepath.SkipDir
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to walk %s", d.root)
	}

	return found, nil
}

func (d *Discovery) ignored(rel string) bool {
	for _, pattern := range d.ignore {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}
