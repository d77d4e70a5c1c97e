package main

import (
	"context"
	"fmt"
	"os"

	"github.com/skillpack/skillpack/pkg/export"
	"github.com/skillpack/skillpack/pkg/presenter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var exportCmd = &cobra.Command{
	Use:   "export <nested-root> <flat-target>",
	Short: "Flatten a nested skill tree into a single-level directory",
	Long: `Export every valid skill package under a nested development tree into a
flat target directory, one top-level folder per package, named by the
skill's own name.

The target directory is cleared before each run, so the export is a full
copy rather than an incremental merge. Packages that fail validation are
skipped; when two packages resolve to the same flat name, the first one in
lexical discovery order wins and the later one is reported as a collision.
Automatic renaming of colliding packages is off unless --rename is given.

The command exits with code 2 if any package was skipped.

Examples:
  skillpack export skills/ dist/skills
  skillpack export skills/ dist/skills --rename`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		rename := viper.GetBool("auto_rename")
		if flag, err := cmd.Flags().GetBool("rename"); err == nil && cmd.Flags().Changed("rename") {
			rename = flag
		}
		runExport(cmd.Context(), args[0], args[1], rename)
	},
}

func init() {
	exportCmd.Flags().Bool("rename", false, "Disambiguate colliding names with a numeric suffix instead of skipping")
	rootCmd.AddCommand(exportCmd)
}

func runExport(ctx context.Context, root, target string, rename bool) {
	if ctx == nil {
		ctx = context.Background()
	}

	checker, err := newCheckerFromConfig()
	if err != nil {
		presenter.Error(err, "Failed to configure checker")
		os.Exit(1)
	}

	exporter, err := export.New(
		export.WithChecker(checker),
		export.WithRename(rename),
		export.WithIgnorePatterns(ignorePatterns()...),
	)
	if err != nil {
		presenter.Error(err, "Failed to configure exporter")
		os.Exit(1)
	}

	report, err := exporter.Export(ctx, root, target)
	if err != nil {
		presenter.Error(err, "Export failed")
		os.Exit(1)
	}

	printExportReport(report, target)

	if !report.Clean() {
		os.Exit(2)
	}
}

func printExportReport(report *export.Report, target string) {
	presenter.Section("Export summary")
	presenter.Info(fmt.Sprintf("Copied: %d  Skipped: %d  Collisions: %d",
		len(report.Copied), len(report.Skipped), len(report.Collisions)))

	for _, c := range report.Copied {
		presenter.Info(fmt.Sprintf("  copied   %-30s %s", c.Name, c.Source))
	}
	for _, s := range report.Skipped {
		presenter.Warning(fmt.Sprintf("  skipped  %s: %s", s.Source, s.Detail))
	}
	for _, s := range report.Collisions {
		presenter.Warning(fmt.Sprintf("  collision %s (%s): %s", s.Name, s.Source, s.Detail))
	}

	if report.Clean() {
		presenter.Success(fmt.Sprintf("Exported %d package(s) to %s", len(report.Copied), target))
	}
}
