package catalog

import (
	"path"
	"sort"
	"strings"
)

// PackageRef identifies one discovered skill package for cross-checking.
// Path is slash-separated and relative to the nested root the catalog's
// location fields are written against.
type PackageRef struct {
	Name string
	Path string
}

// StaleEntry pairs a catalog entry with the path its package was actually
// found at.
type StaleEntry struct {
	Entry      Entry
	ActualPath string
}

// Report holds the three consistency sets. All of them are advisory:
// inconsistencies are expected conditions to surface, not errors to fix
// automatically.
type Report struct {
	Dangling []Entry      // entries expecting a package that has no match on disk
	Orphaned []PackageRef // packages with no catalog entry
	Stale    []StaleEntry // entries whose recorded location no longer matches
}

// Clean reports whether all three sets are empty.
func (r *Report) Clean() bool {
	return len(r.Dangling) == 0 && len(r.Orphaned) == 0 && len(r.Stale) == 0
}

// Check compares catalog entries against discovered packages by skill name.
// It is a pure set comparison: neither input is mutated, and output order is
// deterministic (entries by name, packages by path).
func Check(entries []Entry, packages []PackageRef) *Report {
	report := &Report{}

	byName := make(map[string]PackageRef, len(packages))
	for _, pkg := range packages {
		if _, exists := byName[pkg.Name]; !exists {
			byName[pkg.Name] = pkg
		}
	}

	listed := make(map[string]bool, len(entries))
	for _, entry := range entries {
		listed[entry.Name] = true

		pkg, onDisk := byName[entry.Name]
		if !onDisk {
			if entry.ExpectsPackage() {
				report.Dangling = append(report.Dangling, entry)
			}
			continue
		}

		if entry.Location != "" && normalizePath(entry.Location) != normalizePath(pkg.Path) {
			report.Stale = append(report.Stale, StaleEntry{Entry: entry, ActualPath: pkg.Path})
		}
	}

	for _, pkg := range packages {
		if !listed[pkg.Name] {
			report.Orphaned = append(report.Orphaned, pkg)
		}
	}

	sort.Slice(report.Dangling, func(i, j int) bool {
		return report.Dangling[i].Name < report.Dangling[j].Name
	})
	sort.Slice(report.Orphaned, func(i, j int) bool {
		return report.Orphaned[i].Path < report.Orphaned[j].Path
	})
	sort.Slice(report.Stale, func(i, j int) bool {
		return report.Stale[i].Entry.Name < report.Stale[j].Entry.Name
	})

	return report
}

// normalizePath makes location comparisons insensitive to trailing slashes
// and redundant separators, which humans routinely vary in the catalog.
func normalizePath(p string) string {
	return path.Clean(strings.TrimSuffix(strings.ReplaceAll(p, "\\", "/"), "/"))
}
