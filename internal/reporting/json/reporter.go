package json

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/olusolaa/visual-drift-detector/internal/core/domain"
	"github.com/olusolaa/visual-drift-detector/internal/core/ports"
	"github.com/olusolaa/visual-drift-detector/internal/errors"
)

const ReporterTypeJSON = "json"

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

type Config struct {
	// Path writes the report to a file instead of stdout.
	Path string `yaml:"path" mapstructure:"path"`
}

type Reporter struct {
	config Config
	writer io.Writer
	logger ports.Logger
}

func NewReporter(cfg Config, logger ports.Logger) (*Reporter, error) {
	return &Reporter{
		config: cfg,
		writer: os.Stdout,
		logger: logger,
	}, nil
}

func (r *Reporter) Type() string {
	return ReporterTypeJSON
}

type jsonReport struct {
	RunID       string                    `json:"run_id"`
	StartedAt   time.Time                 `json:"started_at"`
	FinishedAt  time.Time                 `json:"finished_at"`
	Summary     jsonSummary               `json:"summary"`
	Tests       []domain.TestResult       `json:"tests"`
	Comparisons []domain.ComparisonResult `json:"comparisons"`
}

type jsonSummary struct {
	TestsRun          int     `json:"tests_run"`
	TestsFailed       int     `json:"tests_failed"`
	PairsCompared     int     `json:"pairs_compared"`
	PairsDifferent    int     `json:"pairs_different"`
	MaxDiffPercentage float64 `json:"max_diff_percentage"`
}

func (r *Reporter) Report(ctx context.Context, summary domain.RunSummary) error {
	if ctx.Err() != nil {
		r.logger.Warnf(ctx, "JSON report generation cancelled.")
		return ctx.Err()
	}

	report := jsonReport{
		RunID:      summary.RunID,
		StartedAt:  summary.StartedAt,
		FinishedAt: summary.FinishedAt,
		Summary: jsonSummary{
			TestsRun:          len(summary.Tests),
			TestsFailed:       summary.FailedTests(),
			PairsCompared:     len(summary.Comparisons),
			PairsDifferent:    summary.DifferingComparisons(),
			MaxDiffPercentage: summary.MaxDiffPercentage(),
		},
		Tests:       summary.Tests,
		Comparisons: summary.Comparisons,
	}
	if report.Tests == nil {
		report.Tests = []domain.TestResult{}
	}
	if report.Comparisons == nil {
		report.Comparisons = []domain.ComparisonResult{}
	}

	w := r.writer
	if r.config.Path != "" {
		if err := os.MkdirAll(filepath.Dir(r.config.Path), 0o755); err != nil {
			return errors.Wrap(err, errors.CodeReportError, "cannot create JSON report directory")
		}
		f, err := os.Create(r.config.Path)
		if err != nil {
			return errors.Wrap(err, errors.CodeReportError, fmt.Sprintf("cannot create JSON report %s", r.config.Path))
		}
		defer f.Close()
		w = f
	}

	encoder := jsonAPI.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(report); err != nil {
		r.logger.Errorf(ctx, err, "Failed to encode JSON report")
		return errors.Wrap(err, errors.CodeReportError, "failed to encode JSON report")
	}

	if r.config.Path != "" {
		r.logger.Infof(ctx, "JSON report written to %s", r.config.Path)
	} else {
		r.logger.Debugf(ctx, "JSON report successfully generated.")
	}
	return nil
}
