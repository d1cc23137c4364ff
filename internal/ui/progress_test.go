package ui

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/olusolaa/visual-drift-detector/internal/core/domain"
)

func TestProgressBar(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	p := NewProgressBar(&buf)

	p.TestFinished(domain.TestResult{Passed: true})
	passed, failed := p.Counts()
	assert.Zero(t, passed+failed, "results before RunStarted are ignored")

	p.RunStarted(3)
	p.TestFinished(domain.TestResult{Environment: domain.EnvironmentLive, Passed: true})
	p.TestFinished(domain.TestResult{Environment: domain.EnvironmentLive, Passed: false})
	p.TestFinished(domain.TestResult{Environment: domain.EnvironmentDev, Passed: true})
	p.RunFinished()

	passed, failed = p.Counts()
	assert.Equal(t, 2, passed)
	assert.Equal(t, 1, failed)
	assert.Contains(t, buf.String(), "passed: 2")
	assert.Contains(t, buf.String(), "Capturing dev")
}
