package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/viper"

	"github.com/olusolaa/visual-drift-detector/internal/adapters/browser/playwright"
	"github.com/olusolaa/visual-drift-detector/internal/adapters/imaging/pixelmatch"
	"github.com/olusolaa/visual-drift-detector/internal/adapters/publish/s3"
	"github.com/olusolaa/visual-drift-detector/internal/adapters/suite/hclsuite"
	"github.com/olusolaa/visual-drift-detector/internal/adapters/suite/yamlsuite"
	"github.com/olusolaa/visual-drift-detector/internal/config"
	"github.com/olusolaa/visual-drift-detector/internal/core/ports"
	"github.com/olusolaa/visual-drift-detector/internal/core/service"
	"github.com/olusolaa/visual-drift-detector/internal/errors"
	"github.com/olusolaa/visual-drift-detector/internal/limiter"
	"github.com/olusolaa/visual-drift-detector/internal/log"
	"github.com/olusolaa/visual-drift-detector/internal/metrics"
	"github.com/olusolaa/visual-drift-detector/internal/reporting/json"
	"github.com/olusolaa/visual-drift-detector/internal/reporting/text"
	"github.com/olusolaa/visual-drift-detector/internal/ui"
)

// BaseURLsKey holds the "live=URL;dev=URL" override set by the --base-urls flag.
const BaseURLsKey = "base_urls"

type Bootstrap struct {
	Application *Application
	Config      *config.Config
}

// BuildApplicationFromViper loads configuration from v and wires every
// component of a run. Progress output goes to progressOut when enabled.
func BuildApplicationFromViper(ctx context.Context, v *viper.Viper, progressOut io.Writer) (*Bootstrap, error) {
	for env, url := range parseBaseURLOverride(v.GetString(BaseURLsKey)) {
		v.Set(fmt.Sprintf("environments.%s.base_url", env), url)
	}

	cfg, err := config.Load(ctx, v)
	if err != nil {
		return nil, err
	}

	logger, err := log.NewLogger(log.Config{
		Level:      cfg.Settings.LogLevel,
		Format:     cfg.Settings.LogFormat,
		OutputPath: cfg.Settings.LogOutput,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to initialize logger: %v\n", err)
		return nil, err
	}
	logger.Debugf(ctx, "Logger initialized (Level: %s, Format: %s)", cfg.Settings.LogLevel, cfg.Settings.LogFormat)
	if v.ConfigFileUsed() != "" {
		logger.Debugf(ctx, "Using configuration file: %s", v.ConfigFileUsed())
	} else {
		logger.Debugf(ctx, "No configuration file found, using defaults/env/flags.")
	}

	registry, err := buildRegistry(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	scheduler, err := buildScheduler(cfg, logger, progressOut)
	if err != nil {
		return nil, err
	}

	pixels := pixelmatch.NewComparator(pixelmatch.DefaultOptions())
	logger.Debugf(ctx, "Using %s with threshold %.2f", pixels.String(), cfg.Comparison.Threshold)
	comparator, err := service.NewComparator(pixels, pixelmatch.NewPNGCodec(),
		cfg.Comparison.Threshold, logger.WithFields(map[string]any{"component": "comparator"}))
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to initialize comparator")
	}

	var sink ports.MetricsSink
	if cfg.Settings.MetricsTextfile != "" {
		sink = metrics.NewRecorder(cfg.Settings.MetricsTextfile)
		logger.Debugf(ctx, "Writing metrics to %s", cfg.Settings.MetricsTextfile)
	}

	engine, err := service.NewVisualDriftEngine(registry, scheduler, comparator, sink,
		logger.WithFields(map[string]any{"component": "engine"}), cfg)
	if err != nil {
		return nil, err
	}

	logger.Infof(ctx, "Application bootstrap complete")
	return &Bootstrap{Application: NewApplication(engine, logger), Config: cfg}, nil
}

func buildRegistry(ctx context.Context, cfg *config.Config, logger ports.Logger) (*service.ComponentRegistry, error) {
	registry := service.NewComponentRegistry()

	suite, err := buildSuiteProvider(cfg, logger)
	if err != nil {
		return nil, err
	}
	if err := registry.RegisterSuiteProvider(suite); err != nil {
		return nil, err
	}
	logger.Debugf(ctx, "Using %s suite: %s", suite.Type(), cfg.Suite.Path)

	for _, reporterType := range cfg.Settings.Reporters {
		reporter, err := buildReporter(cfg, reporterType, logger)
		if err != nil {
			return nil, err
		}
		if err := registry.RegisterReporter(reporter); err != nil {
			return nil, err
		}
	}

	if cfg.PublishEnabled() {
		pubLog := logger.WithFields(map[string]any{"publisher": s3.PublisherTypeS3})
		publisher, err := s3.NewPublisher(ctx, *cfg.Publish.S3, cfg.OutputDir, pubLog)
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeConfigValidation, "failed to initialize S3 publisher")
		}
		if err := registry.RegisterArtifactPublisher(publisher); err != nil {
			return nil, err
		}
		pubLog.Infof(ctx, "Publishing artifacts to s3://%s/%s", cfg.Publish.S3.Bucket, cfg.Publish.S3.Prefix)
	}

	return registry, nil
}

func buildSuiteProvider(cfg *config.Config, logger ports.Logger) (ports.SuiteProvider, error) {
	switch cfg.SuiteType() {
	case config.SuiteTypeYAML:
		return yamlsuite.NewProvider(cfg.Suite.Path, logger)
	case config.SuiteTypeHCL:
		return hclsuite.NewProvider(cfg.Suite.Path, logger)
	default:
		return nil, errors.NewUserFacing(errors.CodeConfigValidation,
			fmt.Sprintf("unsupported suite type: %s", cfg.SuiteType()), "Supported: yaml, hcl")
	}
}

func buildReporter(cfg *config.Config, reporterType string, logger ports.Logger) (ports.Reporter, error) {
	reportLog := logger.WithFields(map[string]any{"component": "reporter", "type": reporterType})
	defaults := config.DefaultConfig().Settings.Reporter

	switch reporterType {
	case text.ReporterTypeText:
		textCfg := defaults.Text
		if cfg.Settings.Reporter.Text != nil {
			textCfg = cfg.Settings.Reporter.Text
		}
		return text.NewReporter(*textCfg, reportLog)
	case json.ReporterTypeJSON:
		jsonCfg := defaults.JSON
		if cfg.Settings.Reporter.JSON != nil {
			jsonCfg = cfg.Settings.Reporter.JSON
		}
		return json.NewReporter(*jsonCfg, reportLog)
	default:
		return nil, errors.NewUserFacing(errors.CodeConfigValidation,
			fmt.Sprintf("unsupported reporter type: %s", reporterType), "Supported: text, json")
	}
}

func buildScheduler(cfg *config.Config, logger ports.Logger, progressOut io.Writer) (*service.Scheduler, error) {
	launcher, err := playwright.NewLauncher(cfg.Execution.Browser, logger)
	if err != nil {
		return nil, err
	}

	schedLog := logger.WithFields(map[string]any{"component": "scheduler"})
	opts := []service.SchedulerOption{
		service.WithLimiter(limiter.New(cfg.Execution.NavigationRPS, schedLog)),
	}
	if cfg.Settings.Progress && progressOut != nil {
		opts = append(opts, service.WithProgressObserver(ui.NewProgressBar(progressOut)))
	}

	return service.NewScheduler(launcher, service.SchedulerConfig{
		Viewport:          cfg.Execution.Viewport,
		Parallel:          cfg.Execution.Parallel,
		MaxConcurrency:    cfg.Execution.MaxConcurrency,
		OutputDir:         cfg.OutputDir,
		NavigationTimeout: cfg.Execution.NavigationTimeout,
	}, schedLog, opts...)
}
