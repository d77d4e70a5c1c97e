package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/gobwas/glob"
	"github.com/pkg/errors"
	"github.com/skillpack/skillpack/pkg/presenter"
	"github.com/skillpack/skillpack/pkg/skill"
	"github.com/skillpack/skillpack/pkg/validate"
	"github.com/spf13/cobra"
)

type ListConfig struct {
	Filter     string
	JSONOutput bool
	ShowPath   bool
}

func NewListConfig() *ListConfig {
	return &ListConfig{
		Filter:     "",
		JSONOutput: false,
		ShowPath:   false,
	}
}

type ListEntry struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Path        string `json:"path,omitempty"`
}

var listCmd = &cobra.Command{
	Use:   "list [root]",
	Short: "List valid skill packages under a tree",
	Long: `List every skill package under a directory tree (default ".") that passes
validation, with its name and description.

Examples:
  skillpack list skills/
  skillpack list skills/ --filter 'web-*'
  skillpack list skills/ --json`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		root := "."
		if len(args) == 1 {
			root = args[0]
		}
		runList(root, getListConfigFromFlags(cmd))
	},
}

func init() {
	defaults := NewListConfig()
	listCmd.Flags().String("filter", defaults.Filter, "Only list skills whose name matches this glob")
	listCmd.Flags().Bool("json", defaults.JSONOutput, "Output as JSON")
	listCmd.Flags().Bool("show-path", defaults.ShowPath, "Include package paths in the table")
	rootCmd.AddCommand(listCmd)
}

func getListConfigFromFlags(cmd *cobra.Command) *ListConfig {
	config := NewListConfig()
	if filter, err := cmd.Flags().GetString("filter"); err == nil {
		config.Filter = filter
	}
	if jsonOutput, err := cmd.Flags().GetBool("json"); err == nil {
		config.JSONOutput = jsonOutput
	}
	if showPath, err := cmd.Flags().GetBool("show-path"); err == nil {
		config.ShowPath = showPath
	}
	return config
}

func runList(root string, config *ListConfig) {
	checker, err := newCheckerFromConfig()
	if err != nil {
		presenter.Error(err, "Failed to configure checker")
		os.Exit(1)
	}

	results, err := checker.CheckTree(root, skill.WithIgnorePatterns(ignorePatterns()...))
	if err != nil {
		presenter.Error(err, "Failed to walk tree")
		os.Exit(1)
	}

	entries, err := collectListEntries(results, config)
	if err != nil {
		presenter.Error(err, "Failed to filter skills")
		os.Exit(1)
	}

	if len(entries) == 0 {
		presenter.Info("No valid skill packages found")
		return
	}

	if config.JSONOutput {
		if err := renderListJSON(os.Stdout, entries); err != nil {
			presenter.Error(err, "Failed to render JSON")
			os.Exit(1)
		}
		return
	}
	renderListTable(os.Stdout, entries, config.ShowPath)
}

func collectListEntries(results []*validate.Result, config *ListConfig) ([]ListEntry, error) {
	var matcher glob.Glob
	if config.Filter != "" {
		compiled, err := glob.Compile(config.Filter)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid filter %q", config.Filter)
		}
		matcher = compiled
	}

	var entries []ListEntry
	for _, result := range results {
		if !result.Passed() {
			continue
		}
		if matcher != nil && !matcher.Match(result.Name) {
			continue
		}
		entries = append(entries, ListEntry{
			Name:        result.Name,
			Description: result.Description,
			Path:        result.Dir,
		})
	}
	return entries, nil
}

func renderListJSON(w io.Writer, entries []ListEntry) error {
	type jsonOutput struct {
		Skills []ListEntry `json:"skills"`
	}

	data, err := json.MarshalIndent(jsonOutput{Skills: entries}, "", "  ")
	if err != nil {
		return errors.Wrap(err, "error generating JSON output")
	}

	_, err = fmt.Fprintln(w, string(data))
	return err
}

func renderListTable(w io.Writer, entries []ListEntry, showPath bool) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if showPath {
		fmt.Fprintln(tw, "NAME\tPATH\tDESCRIPTION")
		fmt.Fprintln(tw, "----\t----\t-----------")
	} else {
		fmt.Fprintln(tw, "NAME\tDESCRIPTION")
		fmt.Fprintln(tw, "----\t-----------")
	}

	for _, entry := range entries {
		description := entry.Description
		if len(description) > 60 {
			description = description[:57] + "..."
		}
		if showPath {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", entry.Name, entry.Path, description)
		} else {
			fmt.Fprintf(tw, "%s\t%s\n", entry.Name, description)
		}
	}
	tw.Flush()
}
