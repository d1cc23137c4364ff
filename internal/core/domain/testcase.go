package domain

import (
	"context"
	"strings"
)

type RouterMode string

const (
	RouterBrowser RouterMode = "browser"
	RouterHash    RouterMode = "hash"
)

// StepLogger receives human readable progress lines from a running test body.
type StepLogger func(format string, args ...any)

// Page is the subset of a browser tab a test body may drive. Implementations
// live in the browser adapters; the interface is declared here so TestBody can
// reference it without importing ports.
type Page interface {
	Goto(ctx context.Context, url string) error
	Click(ctx context.Context, selector string) error
	Fill(ctx context.Context, selector, value string) error
	Hover(ctx context.Context, selector string) error
	WaitForSelector(ctx context.Context, selector string) error
	Wait(ctx context.Context, millis float64) error
	Screenshot(ctx context.Context, path string, fullPage bool) error
	URL() string
}

// TestBody performs navigation, interaction and capture for one test. It is
// opaque to the scheduler, which only observes the returned error.
type TestBody func(ctx context.Context, page Page, baseURL, screenshotPath string, log StepLogger) error

type TestCase struct {
	Name   string
	Route  string
	Router RouterMode
	Body   TestBody
}

// URL resolves the test's route against baseURL according to its router mode.
func (tc TestCase) URL(baseURL string) string {
	return BuildURL(baseURL, tc.Route, tc.Router)
}

func BuildURL(baseURL, route string, mode RouterMode) string {
	base := strings.TrimRight(baseURL, "/")
	if route == "" {
		route = "/"
	}
	if !strings.HasPrefix(route, "/") {
		route = "/" + route
	}
	if mode == RouterHash {
		return base + "/#" + route
	}
	return base + route
}
