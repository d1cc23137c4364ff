package metrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/olusolaa/visual-drift-detector/internal/core/domain"
	"github.com/olusolaa/visual-drift-detector/internal/errors"
)

const namespace = "visual_drift"

// Recorder keeps run metrics in its own registry and optionally writes them
// to a node_exporter textfile.
type Recorder struct {
	registry *prometheus.Registry
	textfile string

	testsTotal       *prometheus.CounterVec
	testDuration     *prometheus.HistogramVec
	comparisonsTotal *prometheus.CounterVec
	diffPercentage   prometheus.Histogram
	runDuration      prometheus.Gauge
	lastRun          prometheus.Gauge
}

func NewRecorder(textfile string) *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		textfile: textfile,
		testsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tests_total",
			Help:      "Tests executed, by environment and outcome.",
		}, []string{"environment", "outcome"}),
		testDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "test_duration_seconds",
			Help:      "Wall time of a single test including context setup.",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 30, 60},
		}, []string{"environment"}),
		comparisonsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "comparisons_total",
			Help:      "Screenshot pairs compared, by verdict.",
		}, []string{"verdict"}),
		diffPercentage: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "diff_percentage",
			Help:      "Share of differing pixels per compared pair.",
			Buckets:   []float64{0.01, 0.1, 0.5, 1, 5, 10, 25, 50, 100},
		}),
		runDuration: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Duration of the last run.",
		}),
		lastRun: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last run finished.",
		}),
	}
}

// Observe folds a finished run into the collectors.
func (r *Recorder) Observe(summary domain.RunSummary) {
	for _, t := range summary.Tests {
		outcome := "passed"
		if !t.Passed {
			outcome = "failed"
		}
		env := t.Environment.String()
		r.testsTotal.WithLabelValues(env, outcome).Inc()
		r.testDuration.WithLabelValues(env).Observe(float64(t.DurationMs) / 1000)
	}

	for _, c := range summary.Comparisons {
		r.comparisonsTotal.WithLabelValues(verdict(c)).Inc()
		if c.Error == "" {
			r.diffPercentage.Observe(c.DiffPercentage)
		}
	}

	if !summary.FinishedAt.IsZero() {
		r.lastRun.Set(float64(summary.FinishedAt.Unix()))
		if !summary.StartedAt.IsZero() {
			r.runDuration.Set(summary.FinishedAt.Sub(summary.StartedAt).Seconds())
		}
	}
}

// Record observes summary and writes the textfile when one is configured.
func (r *Recorder) Record(_ context.Context, summary domain.RunSummary) error {
	r.Observe(summary)
	if r.textfile == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(r.textfile, r.registry); err != nil {
		return errors.Wrap(err, errors.CodeArtifactWriteError, "failed to write metrics textfile")
	}
	return nil
}

func verdict(c domain.ComparisonResult) string {
	switch {
	case c.Error != "":
		return "error"
	case c.HasDifferences:
		return "different"
	default:
		return "identical"
	}
}
