package text

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"

	"github.com/olusolaa/visual-drift-detector/internal/core/domain"
	"github.com/olusolaa/visual-drift-detector/internal/core/ports"
)

const ReporterTypeText = "text"

type Config struct {
	NoColor bool `yaml:"no_color" mapstructure:"no_color"`
}

type Reporter struct {
	config Config
	writer io.Writer
	logger ports.Logger
}

func NewReporter(cfg Config, logger ports.Logger) (*Reporter, error) {
	if cfg.NoColor || !isTerminal(os.Stdout) {
		color.NoColor = true
	}

	return &Reporter{
		config: cfg,
		writer: os.Stdout,
		logger: logger,
	}, nil
}

func isTerminal(f *os.File) bool {
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}

func (r *Reporter) Type() string {
	return ReporterTypeText
}

func (r *Reporter) Report(ctx context.Context, summary domain.RunSummary) error {
	tw := tabwriter.NewWriter(r.writer, 0, 8, 2, ' ', 0)
	defer tw.Flush()

	red := color.New(color.FgRed).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	magenta := color.New(color.FgMagenta).SprintFunc()

	fmt.Fprintln(tw, "Visual Drift Report")
	fmt.Fprintln(tw, "===================")
	fmt.Fprintf(tw, "Run:\t%s\n", summary.RunID)

	failed := 0
	for _, res := range summary.Tests {
		if res.Passed {
			continue
		}
		if failed == 0 {
			fmt.Fprintln(tw, "\nFailed Tests:")
			fmt.Fprintln(tw, "Env\tTest\tURL\tError")
			fmt.Fprintln(tw, "---\t----\t---\t-----")
		}
		failed++
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", yellow(res.Environment), res.Name, res.URL, truncate(res.Error))
	}

	if len(summary.Comparisons) == 0 {
		fmt.Fprintln(tw, "\nNo screenshot pairs were compared.")
	} else {
		fmt.Fprintln(tw, "\nComparisons:")
		fmt.Fprintln(tw, "Status\tRoute\tDiff\tDetails")
		fmt.Fprintln(tw, "------\t-----\t----\t-------")
	}

	same, differ, errs := 0, 0, 0
	for _, res := range summary.Comparisons {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		var statusStr, details string
		switch {
		case res.Error != "":
			errs++
			statusStr = magenta("[ERROR]")
			details = truncate(res.Error)
		case res.HasDifferences:
			differ++
			statusStr = red("[DIFF]")
			details = res.DiffScreenshot
		default:
			same++
			statusStr = green("[OK]")
			details = "No visual differences."
		}
		fmt.Fprintf(tw, "%s\t%s\t%.2f%%\t%s\n", statusStr, res.Route, res.DiffPercentage, details)
	}

	fmt.Fprintln(tw, "\nSummary:")
	fmt.Fprintln(tw, "-------")
	fmt.Fprintf(tw, "Tests Run:\t%d\n", len(summary.Tests))
	fmt.Fprintf(tw, "Tests Failed:\t%s\n", yellow(failed))
	fmt.Fprintf(tw, "Pairs Compared:\t%d\n", len(summary.Comparisons))
	fmt.Fprintf(tw, "Identical:\t%s\n", green(same))
	fmt.Fprintf(tw, "Different:\t%s\n", red(differ))
	fmt.Fprintf(tw, "Errors:\t%s\n", magenta(errs))
	if !summary.FinishedAt.IsZero() && !summary.StartedAt.IsZero() {
		fmt.Fprintf(tw, "Duration:\t%s\n", summary.FinishedAt.Sub(summary.StartedAt).Round(time.Millisecond))
	}

	return nil
}

func truncate(s string) string {
	const maxLen = 100
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) > maxLen {
		return s[:maxLen-3] + "..."
	}
	return s
}
