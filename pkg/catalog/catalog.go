// Package catalog reads the master skill catalog and cross-checks it
// against the packages actually discovered on disk. The catalog is an
// external, independently-owned listing: this package only reads and
// compares, it never writes the catalog or touches the tree.
package catalog

import (
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Status values a catalog entry may carry.
const (
	StatusPlanning   = "planning"
	StatusInProgress = "in-progress"
	StatusValidating = "validating"
	StatusComplete   = "complete"
)

var validStatuses = map[string]bool{
	StatusPlanning:   true,
	StatusInProgress: true,
	StatusValidating: true,
	StatusComplete:   true,
}

// Entry is one record in the master catalog.
type Entry struct {
	Name     string `yaml:"name"`
	Domain   string `yaml:"domain"`
	Category string `yaml:"category"`
	Status   string `yaml:"status"`
	Location string `yaml:"location"`
}

type catalogFile struct {
	Skills []Entry `yaml:"skills"`
}

// Load reads a catalog file. Entry-level problems (missing name, unknown
// status) are collected across the whole file and returned together with
// the entries that did parse, so one bad record never hides the rest.
func Load(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read catalog file %s", path)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrapf(err, "failed to parse catalog file %s", path)
	}

	var problems *multierror.Error
	for i, entry := range file.Skills {
		if entry.Name == "" {
			problems = multierror.Append(problems, errors.Errorf("entry %d: missing name", i))
		}
		if entry.Status != "" && !validStatuses[entry.Status] {
			problems = multierror.Append(problems, errors.Errorf("entry %d (%s): unknown status %q", i, entry.Name, entry.Status))
		}
	}

	return file.Skills, problems.ErrorOrNil()
}

// ExpectsPackage reports whether an entry's status implies a package folder
// should exist on disk. Planned and in-progress skills are allowed to have
// no folder yet.
func (e Entry) ExpectsPackage() bool {
	return e.Status == StatusValidating || e.Status == StatusComplete
}
