package domain

import "time"

type TestResult struct {
	Name        string      `json:"name"`
	Route       string      `json:"route"`
	URL         string      `json:"url"`
	Environment Environment `json:"environment"`
	Passed      bool        `json:"passed"`
	Screenshot  string      `json:"screenshot"`
	DurationMs  int64       `json:"duration_ms"`
	Error       string      `json:"error,omitempty"`
	Steps       []string    `json:"steps,omitempty"`
}

type ComparisonResult struct {
	Route          string  `json:"route"`
	SeriesIndex    int     `json:"series_index,omitempty"`
	LiveScreenshot string  `json:"live_screenshot"`
	DevScreenshot  string  `json:"dev_screenshot"`
	DiffScreenshot string  `json:"diff_screenshot,omitempty"`
	DiffPercentage float64 `json:"diff_percentage"`
	HasDifferences bool    `json:"has_differences"`
	Error          string  `json:"error,omitempty"`
}

// RunSummary aggregates a full run for reporters and publishers.
type RunSummary struct {
	RunID       string             `json:"run_id"`
	StartedAt   time.Time          `json:"started_at"`
	FinishedAt  time.Time          `json:"finished_at"`
	Tests       []TestResult       `json:"tests"`
	Comparisons []ComparisonResult `json:"comparisons"`
}

func (s RunSummary) ResultsFor(env Environment) []TestResult {
	out := make([]TestResult, 0, len(s.Tests)/2)
	for _, r := range s.Tests {
		if r.Environment == env {
			out = append(out, r)
		}
	}
	return out
}

func (s RunSummary) FailedTests() int {
	n := 0
	for _, r := range s.Tests {
		if !r.Passed {
			n++
		}
	}
	return n
}

func (s RunSummary) DifferingComparisons() int {
	n := 0
	for _, c := range s.Comparisons {
		if c.HasDifferences {
			n++
		}
	}
	return n
}

func (s RunSummary) MaxDiffPercentage() float64 {
	highest := 0.0
	for _, c := range s.Comparisons {
		if c.DiffPercentage > highest {
			highest = c.DiffPercentage
		}
	}
	return highest
}
