package ui

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"

	"github.com/olusolaa/visual-drift-detector/internal/core/domain"
)

// ProgressBar renders test progress on a terminal. It satisfies
// ports.ProgressObserver.
type ProgressBar struct {
	mu      sync.Mutex
	out     io.Writer
	bar     *progressbar.ProgressBar
	passed  int
	failed  int
	current domain.Environment
}

func NewProgressBar(out io.Writer) *ProgressBar {
	return &ProgressBar{out: out}
}

func (p *ProgressBar) RunStarted(total int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.passed, p.failed = 0, 0
	p.bar = progressbar.NewOptions(total,
		progressbar.OptionSetDescription(p.describe()),
		progressbar.OptionSetWidth(50),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        color.CyanString("█"),
			SaucerHead:    color.CyanString("█"),
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWriter(p.out),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(p.out, "\n")
		}),
		progressbar.OptionSetRenderBlankState(true),
	)
}

func (p *ProgressBar) TestFinished(result domain.TestResult) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.bar == nil {
		return
	}
	if result.Passed {
		p.passed++
	} else {
		p.failed++
	}
	p.current = result.Environment
	p.bar.Describe(p.describe())
	_ = p.bar.Set(p.passed + p.failed)
}

func (p *ProgressBar) RunFinished() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.bar != nil {
		_ = p.bar.Finish()
	}
}

// Counts returns the passed and failed totals seen so far.
func (p *ProgressBar) Counts() (int, int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.passed, p.failed
}

func (p *ProgressBar) describe() string {
	label := "Capturing"
	if p.current != "" {
		label = fmt.Sprintf("Capturing %s", p.current)
	}
	return color.CyanString("%s: ", label) +
		color.GreenString("[passed: %d", p.passed) +
		" | " +
		color.RedString("failed: %d]", p.failed)
}
