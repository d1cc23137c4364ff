package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/olusolaa/visual-drift-detector/internal/app"
	"github.com/olusolaa/visual-drift-detector/internal/config"
	apperrors "github.com/olusolaa/visual-drift-detector/internal/errors"
)

const envFile = ".env"

var (
	cfgFile  string
	envPath  string
	baseURLs string
)

var rootCmd = &cobra.Command{
	Use:   "visual-drift",
	Short: "Detects visual drift between a live site and a development build.",
	Long: `Visual Drift runs a suite of browser tests against a live and a development
environment, captures screenshots of both and compares them pixel by pixel.
Differences are reported with a percentage and a diff image per page.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		viper.Set(app.BaseURLsKey, baseURLs)

		boot, err := app.BuildApplicationFromViper(cmd.Context(), viper.GetViper(), os.Stderr)
		if err != nil {
			printError(os.Stderr, "application initialization failed", err)
			return err
		}

		if _, err = boot.Application.Run(cmd.Context()); err != nil {
			printError(os.Stderr, "run failed", err)
			return err
		}

		return nil
	},
}

// printError writes err for the user, followed by its user-facing details and
// suggestion when it carries them.
func printError(w io.Writer, stage string, err error) {
	fmt.Fprintf(w, "ERROR: %s: %v\n", stage, err)
	msg, suggestion, ok := apperrors.GetUserFacingMessage(err)
	if !ok {
		return
	}
	fmt.Fprintf(w, "Details: %s\n", msg)
	if suggestion != "" {
		fmt.Fprintf(w, "Suggestion: %s\n", suggestion)
	}
}

func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func init() {
	defaults := config.DefaultConfig()
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&cfgFile, "config", "c", "", "Configuration file path (default is .visual-drift.yaml in . or $HOME)")
	flags.StringVar(&envPath, "env-file", envFile, "Dotenv file loaded before configuration")
	flags.String("log-level", string(defaults.Settings.LogLevel), "Log level (debug, info, warn, error)")
	flags.String("log-format", string(defaults.Settings.LogFormat), "Log format (text, json)")
	flags.StringP("suite", "s", defaults.Suite.Path, "Test suite file (.yaml or .hcl)")
	flags.StringP("output", "o", defaults.OutputDir, "Directory for screenshots, diffs and reports")
	flags.Bool("parallel", defaults.Execution.Parallel, "Run tests of one environment concurrently")
	flags.Int("max-concurrency", defaults.Execution.MaxConcurrency, "Tests per concurrent chunk (0 or 1 runs sequentially)")
	flags.Float64("threshold", defaults.Comparison.Threshold, "Per-pixel colour sensitivity between 0 and 1")
	flags.Bool("fail-on-diff", defaults.Settings.FailOnDiff, "Exit non-zero when any screenshot pair differs")
	flags.StringSlice("reporters", defaults.Settings.Reporters, "Reporters to run (text, json)")
	flags.Bool("progress", defaults.Settings.Progress, "Show a progress bar on stderr")
	flags.StringVar(&baseURLs, "base-urls", "", "Override base URLs (e.g., 'live=https://example.com;dev=http://localhost:3000')")

	bindings := map[string]string{
		"settings.log_level":        "log-level",
		"settings.log_format":       "log-format",
		"suite.path":                "suite",
		"output_dir":                "output",
		"execution.parallel":        "parallel",
		"execution.max_concurrency": "max-concurrency",
		"comparison.threshold":      "threshold",
		"settings.fail_on_diff":     "fail-on-diff",
		"settings.reporters":        "reporters",
		"settings.progress":         "progress",
	}
	for key, flag := range bindings {
		cobra.CheckErr(viper.BindPFlag(key, flags.Lookup(flag)))
	}

	viper.SetEnvPrefix("VISUALDRIFT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

func initializeConfig(cmd *cobra.Command) error {
	if envPath != "" {
		if err := godotenv.Load(envPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			return apperrors.Wrap(err, apperrors.CodeConfigReadError, fmt.Sprintf("failed to load %s", envPath))
		}
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.SetConfigName(".visual-drift")
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using configuration file:", viper.ConfigFileUsed())
	} else {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return apperrors.Wrap(err, apperrors.CodeConfigReadError, "failed to read config file")
		}
		fmt.Fprintln(os.Stderr, "Config file not found, using defaults and environment variables.")
	}

	return nil
}
