package domain_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/olusolaa/visual-drift-detector/internal/core/domain"
)

func TestBuildURL(t *testing.T) {
	tests := []struct {
		name  string
		base  string
		route string
		mode  domain.RouterMode
		want  string
	}{
		{"Browser Mode", "https://example.com", "/about", domain.RouterBrowser, "https://example.com/about"},
		{"Trailing Slash Base", "https://example.com/", "/about", domain.RouterBrowser, "https://example.com/about"},
		{"Missing Leading Slash", "https://example.com", "about", "", "https://example.com/about"},
		{"Hash Mode", "https://example.com", "/about", domain.RouterHash, "https://example.com/#/about"},
		{"Hash Mode Root", "https://dev.example.com/", "", domain.RouterHash, "https://dev.example.com/#/"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, domain.BuildURL(tc.base, tc.route, tc.mode))
		})
	}
}

func TestScreenshotPaths(t *testing.T) {
	out := filepath.Join("out")

	t.Run("Primary", func(t *testing.T) {
		got := domain.ScreenshotPath(out, domain.EnvironmentLive, "about page")
		assert.Equal(t, filepath.Join("out", "screenshots", "live", "about_page.png"), got)
	})

	t.Run("Unsafe Name", func(t *testing.T) {
		got := domain.ScreenshotPath(out, domain.EnvironmentDev, "/users/:id")
		assert.Equal(t, filepath.Join("out", "screenshots", "dev", "_users__id.png"), got)
		assert.Equal(t, "unnamed", domain.FileName(".."))
	})

	t.Run("Series", func(t *testing.T) {
		primary := filepath.Join("out", "screenshots", "live", "home.png")
		assert.Equal(t, filepath.Join("out", "screenshots", "live", "home-screenshot-3.png"), domain.SeriesPath(primary, 3))
	})

	t.Run("Diff", func(t *testing.T) {
		live := filepath.Join("out", "screenshots", "live", "home-screenshot-1.png")
		assert.Equal(t, filepath.Join("out", "diffs", "home-screenshot-1-diff.png"), domain.DiffPath(filepath.Join("out", "diffs"), live))
	})
}

func TestRunSummary(t *testing.T) {
	s := domain.RunSummary{
		Tests: []domain.TestResult{
			{Name: "home", Environment: domain.EnvironmentLive, Passed: true},
			{Name: "home", Environment: domain.EnvironmentDev, Passed: false},
		},
		Comparisons: []domain.ComparisonResult{
			{Route: "/", DiffPercentage: 0},
			{Route: "/about", DiffPercentage: 12.5, HasDifferences: true},
		},
	}
	assert.Len(t, s.ResultsFor(domain.EnvironmentLive), 1)
	assert.Equal(t, 1, s.FailedTests())
	assert.Equal(t, 1, s.DifferingComparisons())
	assert.InDelta(t, 12.5, s.MaxDiffPercentage(), 1e-9)
}
