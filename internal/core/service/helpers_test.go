package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/olusolaa/visual-drift-detector/internal/core/domain"
	"github.com/olusolaa/visual-drift-detector/internal/core/ports"
	portsmocks "github.com/olusolaa/visual-drift-detector/internal/core/ports/mocks"
)

func quietLogger(t *testing.T) *portsmocks.Logger {
	l := portsmocks.NewLogger(t)
	l.On("Debugf", mock.Anything, mock.Anything, mock.Anything).Maybe()
	l.On("Infof", mock.Anything, mock.Anything, mock.Anything).Maybe()
	l.On("Warnf", mock.Anything, mock.Anything, mock.Anything).Maybe()
	l.On("Errorf", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Maybe()
	l.On("WithFields", mock.Anything).Return(l).Maybe()
	return l
}

// fakeBrowser tracks how many contexts are open at once.
type fakeBrowser struct {
	mu          sync.Mutex
	inFlight    int
	maxInFlight int
	opened      int
	closed      bool
	events      []string
	screenshots []string
}

func (b *fakeBrowser) NewContext(_ context.Context, _ ports.ContextOptions) (ports.BrowserContext, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.inFlight++
	b.opened++
	b.maxInFlight = max(b.maxInFlight, b.inFlight)
	return &fakeContext{browser: b}, nil
}

func (b *fakeBrowser) IsConnected() bool { return true }

func (b *fakeBrowser) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	return nil
}

func (b *fakeBrowser) record(event string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
}

// timedBody records "start:<env>:<name>" and "end:<env>:<name>" around a
// sleep. The environment is the screenshot's parent directory.
func (b *fakeBrowser) timedBody(d time.Duration) domain.TestBody {
	return func(ctx context.Context, _ domain.Page, _, path string, _ domain.StepLogger) error {
		tag := filepath.Base(filepath.Dir(path)) + ":" + strings.TrimSuffix(filepath.Base(path), ".png")
		b.record("start:" + tag)
		time.Sleep(d)
		b.record("end:" + tag)
		return nil
	}
}

type fakeContext struct {
	browser *fakeBrowser
}

func (c *fakeContext) NewPage(context.Context) (domain.Page, error) {
	return &fakePage{browser: c.browser}, nil
}

func (c *fakeContext) Close() error {
	c.browser.mu.Lock()
	defer c.browser.mu.Unlock()
	c.browser.inFlight--
	return nil
}

type fakePage struct {
	browser *fakeBrowser
	url     string
}

func (p *fakePage) Goto(_ context.Context, url string) error {
	p.url = url
	return nil
}
func (p *fakePage) Click(context.Context, string) error           { return nil }
func (p *fakePage) Fill(context.Context, string, string) error    { return nil }
func (p *fakePage) Hover(context.Context, string) error           { return nil }
func (p *fakePage) WaitForSelector(context.Context, string) error { return nil }
func (p *fakePage) Wait(context.Context, float64) error           { return nil }
func (p *fakePage) URL() string                                   { return p.url }

func (p *fakePage) Screenshot(_ context.Context, path string, _ bool) error {
	p.browser.mu.Lock()
	defer p.browser.mu.Unlock()
	p.browser.screenshots = append(p.browser.screenshots, path)
	return nil
}

type fakeLauncher struct {
	browser ports.Browser
	err     error
}

func (l *fakeLauncher) Launch(context.Context) (ports.Browser, error) {
	return l.browser, l.err
}

type countingObserver struct {
	mu       sync.Mutex
	total    int
	finished bool
	results  []domain.TestResult
}

func (o *countingObserver) RunStarted(total int) { o.total = total }
func (o *countingObserver) RunFinished()         { o.finished = true }

func (o *countingObserver) TestFinished(r domain.TestResult) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.results = append(o.results, r)
}

func navigateBody(ctx context.Context, page domain.Page, baseURL, _ string, log domain.StepLogger) error {
	log("navigating to %s", baseURL)
	return page.Goto(ctx, baseURL)
}

func testCases(n int, body domain.TestBody) []domain.TestCase {
	tests := make([]domain.TestCase, n)
	for i := range tests {
		tests[i] = domain.TestCase{
			Name:  fmt.Sprintf("page %d", i),
			Route: fmt.Sprintf("/page-%d", i),
			Body:  body,
		}
	}
	return tests
}

var testBaseURLs = map[domain.Environment]string{
	domain.EnvironmentLive: "https://example.com",
	domain.EnvironmentDev:  "http://localhost:3000",
}
