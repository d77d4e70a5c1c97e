package main

import (
	"fmt"
	"path/filepath"

	"github.com/skillpack/skillpack/pkg/catalog"
	"github.com/skillpack/skillpack/pkg/presenter"
	"github.com/skillpack/skillpack/pkg/skill"
	"github.com/spf13/cobra"
)

var catalogCheckCmd = &cobra.Command{
	Use:   "catalog-check <nested-root> <catalog-file>",
	Short: "Cross-check the skill catalog against packages on disk",
	Long: `Compare the master catalog listing against the skill packages actually
discovered under the nested root, and report three advisory sets:

  dangling  catalog entries expecting a package that has no match on disk
  orphaned  on-disk packages with no catalog entry
  stale     entries whose recorded location no longer matches reality

The catalog is read-only from this tool's point of view and the command
always exits 0; the output is meant to keep documentation and reality in
sync, not to gate anything.`,
	Args: cobra.ExactArgs(2),
	Run: func(_ *cobra.Command, args []string) {
		runCatalogCheck(args[0], args[1])
	},
}

func init() {
	rootCmd.AddCommand(catalogCheckCmd)
}

func runCatalogCheck(root, catalogPath string) {
	entries, err := catalog.Load(catalogPath)
	if err != nil {
		if entries == nil {
			presenter.Error(err, "Failed to read catalog")
			return
		}
		// Entry-level problems: report them but keep checking what parsed.
		presenter.Warning(fmt.Sprintf("Catalog has malformed entries: %v", err))
	}

	packages, err := discoverPackageRefs(root)
	if err != nil {
		presenter.Error(err, "Failed to discover packages")
		return
	}

	report := catalog.Check(entries, packages)

	if report.Clean() {
		presenter.Success(fmt.Sprintf("Catalog is consistent: %d entries, %d packages", len(entries), len(packages)))
		return
	}

	if len(report.Dangling) > 0 {
		presenter.Section("Dangling entries (no package on disk)")
		for _, e := range report.Dangling {
			presenter.Info(fmt.Sprintf("  %s (status %s, location %s)", e.Name, e.Status, e.Location))
		}
	}
	if len(report.Orphaned) > 0 {
		presenter.Section("Orphaned packages (no catalog entry)")
		for _, p := range report.Orphaned {
			presenter.Info(fmt.Sprintf("  %s (%s)", p.Name, p.Path))
		}
	}
	if len(report.Stale) > 0 {
		presenter.Section("Stale locations")
		for _, s := range report.Stale {
			presenter.Info(fmt.Sprintf("  %s: catalog says %s, found at %s", s.Entry.Name, s.Entry.Location, s.ActualPath))
		}
	}
}

// discoverPackageRefs validates the tree and returns one ref per discovered
// package. Packages whose name never parsed fall back to the folder
// basename so they still show up in the comparison.
func discoverPackageRefs(root string) ([]catalog.PackageRef, error) {
	checker, err := newCheckerFromConfig()
	if err != nil {
		return nil, err
	}

	discovery, err := skill.NewDiscovery(root, skill.WithIgnorePatterns(ignorePatterns()...))
	if err != nil {
		return nil, err
	}

	found, err := discovery.Discover()
	if err != nil {
		return nil, err
	}

	refs := make([]catalog.PackageRef, 0, len(found))
	for _, d := range found {
		result := checker.CheckPackage(d.Dir)
		name := result.Name
		if name == "" {
			name = filepath.Base(d.Dir)
		}
		refs = append(refs, catalog.PackageRef{Name: name, Path: d.Rel})
	}
	return refs, nil
}
