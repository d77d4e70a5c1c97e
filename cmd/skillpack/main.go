package main

import (
	"fmt"
	"os"

	"github.com/skillpack/skillpack/pkg/logger"
	"github.com/skillpack/skillpack/pkg/presenter"
	"github.com/skillpack/skillpack/pkg/validate"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Environment variables
	viper.SetEnvPrefix("SKILLPACK")
	viper.AutomaticEnv()

	// Config file support
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./.skillpack")
	viper.AddConfigPath("$HOME/.skillpack")

	// Load config file if it exists (ignore errors if it doesn't)
	_ = viper.ReadInConfig()

	viper.SetDefault("body_line_limit", validate.DefaultBodyLineLimit)
	viper.SetDefault("auto_rename", false)
	viper.SetDefault("log_level", "warn")
	viper.SetDefault("log_format", "fmt")
}

var rootCmd = &cobra.Command{
	Use:   "skillpack",
	Short: "Validate, export, and audit agent skill packages",
	Long: `skillpack is a conformance tool for agent skill packages: directories
containing a SKILL.md with YAML frontmatter plus optional scripts/,
references/, and assets/ subdirectories.

It validates naming and structural rules, flattens nested development trees
into a single-level runtime layout, and cross-checks the master skill
catalog against what actually exists on disk.`,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		if err := logger.SetLogLevel(viper.GetString("log_level")); err != nil {
			presenter.Warning(fmt.Sprintf("Invalid log level %q, using default", viper.GetString("log_level")))
		}
		logger.SetLogFormat(viper.GetString("log_format"))

		if quiet, err := cmd.Flags().GetBool("quiet"); err == nil {
			presenter.SetQuiet(quiet)
		}
	},
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Help()
	},
}

func main() {
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "fmt", "Log format (fmt, json)")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress non-essential output")

	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log_format", rootCmd.PersistentFlags().Lookup("log-format"))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newCheckerFromConfig builds a structural checker configured from viper.
func newCheckerFromConfig() (*validate.Checker, error) {
	var opts []validate.CheckerOption
	if limit := viper.GetInt("body_line_limit"); limit > 0 {
		opts = append(opts, validate.WithBodyLineLimit(limit))
	}
	if keywords := viper.GetStringSlice("description_keywords"); len(keywords) > 0 {
		opts = append(opts, validate.WithDescriptionKeywords(keywords...))
	}
	return validate.NewChecker(opts...)
}

func ignorePatterns() []string {
	return viper.GetStringSlice("ignore")
}
