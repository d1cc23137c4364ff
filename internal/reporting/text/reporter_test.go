package text

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olusolaa/visual-drift-detector/internal/core/domain"
)

func TestReporter(t *testing.T) {
	r, err := NewReporter(Config{NoColor: true}, nil)
	require.NoError(t, err)
	require.True(t, color.NoColor)

	var buf bytes.Buffer
	r.writer = &buf

	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	summary := domain.RunSummary{
		RunID:      "run-42",
		StartedAt:  start,
		FinishedAt: start.Add(2500 * time.Millisecond),
		Tests: []domain.TestResult{
			{Name: "home", Route: "/", Environment: domain.EnvironmentLive, Passed: true},
			{Name: "cart", Route: "/cart", URL: "http://localhost:3000/cart", Environment: domain.EnvironmentDev, Error: "navigation timeout"},
		},
		Comparisons: []domain.ComparisonResult{
			{Route: "/", DiffPercentage: 0},
			{Route: "/pricing", DiffPercentage: 1.25, HasDifferences: true, DiffScreenshot: "out/diffs/pricing-diff.png"},
			{Route: "/cart", DiffPercentage: 100, HasDifferences: true, Error: "screenshot missing"},
		},
	}

	require.NoError(t, r.Report(context.Background(), summary))
	out := buf.String()

	assert.Contains(t, out, "run-42")
	assert.Contains(t, out, "navigation timeout")
	assert.Contains(t, out, "[OK]")
	assert.Contains(t, out, "[DIFF]")
	assert.Contains(t, out, "1.25%")
	assert.Contains(t, out, "out/diffs/pricing-diff.png")
	assert.Contains(t, out, "[ERROR]")
	assert.Contains(t, out, "2.5s")
	assert.Equal(t, ReporterTypeText, r.Type())
}

func TestReporterEmpty(t *testing.T) {
	r, err := NewReporter(Config{NoColor: true}, nil)
	require.NoError(t, err)
	var buf bytes.Buffer
	r.writer = &buf

	require.NoError(t, r.Report(context.Background(), domain.RunSummary{}))
	assert.Contains(t, buf.String(), "No screenshot pairs were compared.")
	assert.NotContains(t, buf.String(), "Failed Tests")
}

func TestTruncate(t *testing.T) {
	long := make([]byte, 150)
	for i := range long {
		long[i] = 'x'
	}
	assert.Len(t, truncate(string(long)), 100)
	assert.Equal(t, "a b", truncate("a\nb"))
}
