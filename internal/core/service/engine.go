package service

import (
	"context"
	stderrs "errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/olusolaa/visual-drift-detector/internal/config"
	"github.com/olusolaa/visual-drift-detector/internal/core/domain"
	"github.com/olusolaa/visual-drift-detector/internal/core/ports"
	"github.com/olusolaa/visual-drift-detector/internal/errors"
)

type VisualDriftEngine struct {
	registry   *ComponentRegistry
	scheduler  *Scheduler
	comparator *Comparator
	suite      ports.SuiteProvider
	reporters  []ports.Reporter
	metrics    ports.MetricsSink
	logger     ports.Logger
	appConfig  *config.Config
	now        func() time.Time
}

func NewVisualDriftEngine(
	registry *ComponentRegistry,
	scheduler *Scheduler,
	comparator *Comparator,
	metrics ports.MetricsSink,
	logger ports.Logger,
	appConfig *config.Config,
) (*VisualDriftEngine, error) {
	if registry == nil || scheduler == nil || comparator == nil {
		return nil, errors.New(errors.CodeConfigValidation, "engine requires a registry, a scheduler and a comparator")
	}
	if appConfig == nil {
		return nil, errors.New(errors.CodeConfigValidation, "engine requires configuration")
	}

	suite, err := registry.GetSuiteProvider(appConfig.SuiteType())
	if err != nil {
		return nil, err
	}

	reporters := make([]ports.Reporter, 0, len(appConfig.Settings.Reporters))
	for _, reporterType := range appConfig.Settings.Reporters {
		reporter, err := registry.GetReporter(reporterType)
		if err != nil {
			return nil, err
		}
		reporters = append(reporters, reporter)
	}

	return &VisualDriftEngine{
		registry:   registry,
		scheduler:  scheduler,
		comparator: comparator,
		suite:      suite,
		reporters:  reporters,
		metrics:    metrics,
		logger:     logger,
		appConfig:  appConfig,
		now:        time.Now,
	}, nil
}

// Run loads the suite, captures both environments, compares them and hands
// the summary to reporters, publishers and the metrics sink.
func (e *VisualDriftEngine) Run(ctx context.Context) (domain.RunSummary, error) {
	summary := domain.RunSummary{RunID: uuid.NewString(), StartedAt: e.now()}
	log := e.logger.WithFields(map[string]any{"run_id": summary.RunID})

	tests, err := e.loadSuite(ctx, log)
	if err != nil {
		return summary, err
	}

	baseURLs := make(map[domain.Environment]string, len(domain.Environments))
	for _, env := range domain.Environments {
		baseURLs[env] = e.appConfig.BaseURL(env)
	}

	log.Infof(ctx, "Capturing %d tests in %d environments", len(tests), len(domain.Environments))
	summary.Tests, err = e.scheduler.Execute(ctx, tests, baseURLs)
	if err != nil {
		summary.FinishedAt = e.now()
		if stderrs.Is(err, context.Canceled) || stderrs.Is(err, context.DeadlineExceeded) {
			log.Warnf(ctx, "Run cancelled or timed out: %v", err)
			return summary, err
		}
		log.Errorf(ctx, err, "Test execution aborted")
		if len(summary.Tests) > 0 {
			if reportErr := e.report(ctx, log, summary); reportErr != nil {
				log.Errorf(ctx, reportErr, "Failed to report partial results after error")
			}
		}
		return summary, err
	}

	summary.Comparisons, err = e.comparator.Compare(ctx,
		summary.ResultsFor(domain.EnvironmentLive), summary.ResultsFor(domain.EnvironmentDev), e.appConfig.OutputDir)
	summary.FinishedAt = e.now()
	if err != nil {
		return summary, err
	}
	log.Infof(ctx, "Compared %d screenshot pairs, %d differ", len(summary.Comparisons), summary.DifferingComparisons())

	if err := e.report(ctx, log, summary); err != nil {
		return summary, err
	}
	if err := e.export(ctx, log, summary); err != nil {
		return summary, err
	}

	if e.appConfig.Settings.FailOnDiff && summary.DifferingComparisons() > 0 {
		return summary, errors.NewUserFacing(errors.CodeVisualDriftDetected,
			fmt.Sprintf("%d of %d screenshot comparisons differ", summary.DifferingComparisons(), len(summary.Comparisons)),
			fmt.Sprintf("Inspect the diff images in %s.", filepath.Join(e.appConfig.OutputDir, domain.DiffsDir)))
	}

	log.Infof(ctx, "Visual drift run finished")
	return summary, nil
}

func (e *VisualDriftEngine) loadSuite(ctx context.Context, log ports.Logger) ([]domain.TestCase, error) {
	log.Debugf(ctx, "Loading %s suite from %s", e.suite.Type(), e.appConfig.Suite.Path)
	tests, err := e.suite.Load(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeSuiteReadError, "failed to load test suite")
	}
	if len(tests) == 0 {
		return nil, errors.NewUserFacing(errors.CodeSuiteEmpty,
			fmt.Sprintf("suite %s defines no tests", e.appConfig.Suite.Path), "Add at least one test to the suite file.")
	}
	return tests, nil
}

// report runs every reporter even when an earlier one fails and returns the
// first failure.
func (e *VisualDriftEngine) report(ctx context.Context, log ports.Logger, summary domain.RunSummary) error {
	var first error
	for _, reporter := range e.reporters {
		if err := reporter.Report(ctx, summary); err != nil {
			log.Errorf(ctx, err, "Reporter %s failed", reporter.Type())
			if first == nil {
				first = errors.Wrap(err, errors.CodeReportError, fmt.Sprintf("%s reporter failed", reporter.Type()))
			}
		}
	}
	return first
}

// export publishes artifacts and records metrics concurrently. A metrics
// failure is logged but never fails the run.
func (e *VisualDriftEngine) export(ctx context.Context, log ports.Logger, summary domain.RunSummary) error {
	g, gctx := errgroup.WithContext(ctx)

	for _, publisher := range e.registry.ArtifactPublishers() {
		publisher := publisher
		g.Go(func() error {
			log.Infof(gctx, "Publishing artifacts via %s", publisher.Type())
			if err := publisher.Publish(gctx, summary); err != nil {
				return errors.Wrap(err, errors.CodePublishError, fmt.Sprintf("%s publisher failed", publisher.Type()))
			}
			return nil
		})
	}

	if e.metrics != nil {
		g.Go(func() error {
			if err := e.metrics.Record(gctx, summary); err != nil {
				log.Warnf(gctx, "Failed to record metrics: %v", err)
			}
			return nil
		})
	}

	return g.Wait()
}
