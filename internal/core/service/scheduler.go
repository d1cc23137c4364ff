package service

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/olusolaa/visual-drift-detector/internal/core/domain"
	"github.com/olusolaa/visual-drift-detector/internal/core/ports"
	"github.com/olusolaa/visual-drift-detector/internal/errors"
	"github.com/olusolaa/visual-drift-detector/internal/limiter"
)

type SchedulerConfig struct {
	Viewport          domain.Viewport
	Parallel          bool
	MaxConcurrency    int
	OutputDir         string
	NavigationTimeout time.Duration
}

// ChunkSize is the number of tests dispatched together. Anything but a
// parallel run with a positive bound executes one test at a time.
func (c SchedulerConfig) ChunkSize() int {
	if c.Parallel && c.MaxConcurrency > 0 {
		return c.MaxConcurrency
	}
	return 1
}

type SchedulerOption func(*Scheduler)

func WithLimiter(l *limiter.Limiter) SchedulerOption {
	return func(s *Scheduler) { s.limiter = l }
}

func WithProgressObserver(o ports.ProgressObserver) SchedulerOption {
	return func(s *Scheduler) { s.observer = o }
}

// Scheduler runs every TestCase against both environments on one shared
// browser process. Each test gets its own browsing context.
type Scheduler struct {
	launcher ports.BrowserLauncher
	config   SchedulerConfig
	limiter  *limiter.Limiter
	observer ports.ProgressObserver
	logger   ports.Logger
}

func NewScheduler(launcher ports.BrowserLauncher, cfg SchedulerConfig, logger ports.Logger, opts ...SchedulerOption) (*Scheduler, error) {
	if launcher == nil {
		return nil, errors.New(errors.CodeConfigValidation, "browser launcher cannot be nil")
	}
	if logger == nil {
		return nil, errors.New(errors.CodeConfigValidation, "logger cannot be nil for scheduler")
	}
	if cfg.OutputDir == "" {
		return nil, errors.New(errors.CodeConfigValidation, "scheduler requires an output directory")
	}
	if cfg.Viewport.Width <= 0 || cfg.Viewport.Height <= 0 {
		cfg.Viewport = domain.DefaultViewport()
	}
	s := &Scheduler{
		launcher: launcher,
		config:   cfg,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Execute returns 2*len(tests) results, live results first. Individual test
// failures become failed results; only a browser process failure or an
// unusable output directory is returned as an error.
func (s *Scheduler) Execute(ctx context.Context, tests []domain.TestCase, baseURLs map[domain.Environment]string) (results []domain.TestResult, err error) {
	browser, err := s.launcher.Launch(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeBrowserLaunchError, "failed to launch browser")
	}
	defer func() {
		if closeErr := browser.Close(); closeErr != nil {
			s.logger.Warnf(ctx, "Failed to close browser: %v", closeErr)
		}
	}()

	if s.observer != nil {
		s.observer.RunStarted(len(domain.Environments) * len(tests))
		defer s.observer.RunFinished()
	}

	results = make([]domain.TestResult, 0, len(domain.Environments)*len(tests))
	for _, env := range domain.Environments {
		envResults, runErr := s.runEnvironment(ctx, browser, env, baseURLs[env], tests)
		if runErr != nil {
			return results, runErr
		}
		results = append(results, envResults...)
	}
	return results, nil
}

func (s *Scheduler) runEnvironment(ctx context.Context, browser ports.Browser, env domain.Environment, baseURL string, tests []domain.TestCase) ([]domain.TestResult, error) {
	log := s.logger.WithFields(map[string]any{"environment": env})

	dir := domain.ScreenshotDir(s.config.OutputDir, env)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.WrapUserFacing(err, errors.CodeArtifactWriteError,
			fmt.Sprintf("cannot create screenshot directory %s", dir), "Check output_dir permissions.")
	}

	chunkSize := s.config.ChunkSize()
	log.Infof(ctx, "Running %d tests against %s (chunk size %d)", len(tests), baseURL, chunkSize)

	results := make([]domain.TestResult, len(tests))
	for start := 0; start < len(tests); start += chunkSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		end := min(start+chunkSize, len(tests))
		if err := s.runChunk(ctx, browser, env, baseURL, tests, start, end, results); err != nil {
			return nil, err
		}
		log.Debugf(ctx, "Chunk %d-%d finished", start, end-1)
	}
	return results, nil
}

// runChunk dispatches tests[start:end] concurrently and returns once all of
// them have finished. Results are stored at their input index.
func (s *Scheduler) runChunk(ctx context.Context, browser ports.Browser, env domain.Environment, baseURL string, tests []domain.TestCase, start, end int, results []domain.TestResult) error {
	g, gctx := errgroup.WithContext(ctx)
	for i := start; i < end; i++ {
		i := i
		g.Go(func() error {
			res, err := s.runTest(gctx, browser, env, baseURL, tests[i])
			if err != nil {
				return err
			}
			results[i] = res
			if s.observer != nil {
				s.observer.TestFinished(res)
			}
			return nil
		})
	}
	return g.Wait()
}

func (s *Scheduler) runTest(ctx context.Context, browser ports.Browser, env domain.Environment, baseURL string, tc domain.TestCase) (domain.TestResult, error) {
	start := time.Now()
	result := domain.TestResult{
		Name:        tc.Name,
		Route:       tc.Route,
		URL:         tc.URL(baseURL),
		Environment: env,
		Screenshot:  domain.ScreenshotPath(s.config.OutputDir, env, tc.Name),
	}
	log := s.logger.WithFields(map[string]any{"environment": env, "test": tc.Name, "route": tc.Route})

	var mu sync.Mutex
	stepLog := func(format string, args ...any) {
		msg := fmt.Sprintf(format, args...)
		mu.Lock()
		result.Steps = append(result.Steps, msg)
		mu.Unlock()
		log.Debugf(ctx, "step: %s", msg)
	}
	finish := func(err error) domain.TestResult {
		mu.Lock()
		defer mu.Unlock()
		result.DurationMs = time.Since(start).Milliseconds()
		result.Passed = err == nil
		if err != nil {
			result.Error = err.Error()
			if result.Error == "" {
				result.Error = "test failed without an error message"
			}
			log.Warnf(ctx, "Test failed after %dms: %v", result.DurationMs, err)
		} else {
			log.Infof(ctx, "Test passed in %dms", result.DurationMs)
		}
		return result
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return finish(err), nil
	}

	log.Debugf(ctx, "Opening browser context")
	bctx, err := browser.NewContext(ctx, ports.ContextOptions{
		Viewport:          s.config.Viewport,
		NavigationTimeout: s.config.NavigationTimeout,
	})
	if err != nil {
		if !browser.IsConnected() {
			return result, errors.WrapUserFacing(err, errors.CodeBrowserDisconnected,
				"browser process disconnected", "Check that the browser can run on this machine and has enough memory.")
		}
		return finish(err), nil
	}
	defer func() {
		if closeErr := bctx.Close(); closeErr != nil {
			log.Warnf(ctx, "Failed to close browser context: %v", closeErr)
		}
	}()

	page, err := bctx.NewPage(ctx)
	if err != nil {
		return finish(err), nil
	}

	if err := invoke(ctx, tc, page, baseURL, result.Screenshot, stepLog); err != nil {
		// Best effort: keep whatever the page shows for the report.
		if shotErr := page.Screenshot(context.WithoutCancel(ctx), result.Screenshot, true); shotErr != nil {
			log.Debugf(ctx, "Failure screenshot not captured: %v", shotErr)
		}
		return finish(err), nil
	}
	return finish(nil), nil
}

func invoke(ctx context.Context, tc domain.TestCase, page domain.Page, baseURL, screenshot string, stepLog domain.StepLogger) (err error) {
	if tc.Body == nil {
		return errors.Newf(errors.CodeInternal, "test %q has no body", tc.Name)
	}
	defer func() {
		if r := recover(); r != nil {
			err = errors.Newf(errors.CodeInternal, "test body panicked: %v", r)
		}
	}()
	return tc.Body(ctx, page, baseURL, screenshot, stepLog)
}
