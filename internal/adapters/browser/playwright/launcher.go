package playwright

import (
	"context"
	"fmt"
	"sync"

	pw "github.com/playwright-community/playwright-go"

	"github.com/olusolaa/visual-drift-detector/internal/core/domain"
	"github.com/olusolaa/visual-drift-detector/internal/core/ports"
	"github.com/olusolaa/visual-drift-detector/internal/errors"
)

const (
	EngineChromium = "chromium"
	EngineFirefox  = "firefox"
	EngineWebKit   = "webkit"
)

type Config struct {
	Engine   string `yaml:"engine" mapstructure:"engine" validate:"omitempty,oneof=chromium firefox webkit"`
	Headless bool   `yaml:"headless" mapstructure:"headless"`
	// InstallDrivers downloads the playwright driver and browser on launch.
	InstallDrivers bool `yaml:"install_drivers" mapstructure:"install_drivers"`
}

func DefaultConfig() Config {
	return Config{Engine: EngineChromium, Headless: true}
}

type Launcher struct {
	config Config
	logger ports.Logger
}

func NewLauncher(cfg Config, logger ports.Logger) (*Launcher, error) {
	if logger == nil {
		return nil, errors.New(errors.CodeConfigValidation, "logger cannot be nil for playwright launcher")
	}
	if cfg.Engine == "" {
		cfg.Engine = EngineChromium
	}
	switch cfg.Engine {
	case EngineChromium, EngineFirefox, EngineWebKit:
	default:
		return nil, errors.NewUserFacing(errors.CodeConfigValidation,
			fmt.Sprintf("unsupported browser engine: %s", cfg.Engine), "Supported: chromium, firefox, webkit")
	}
	return &Launcher{
		config: cfg,
		logger: logger.WithFields(map[string]any{"component": "browser", "engine": cfg.Engine}),
	}, nil
}

// Launch starts the playwright driver and one browser process. Both are
// released by Browser.Close.
func (l *Launcher) Launch(ctx context.Context) (ports.Browser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if l.config.InstallDrivers {
		l.logger.Infof(ctx, "Installing playwright driver and %s", l.config.Engine)
		if err := pw.Install(&pw.RunOptions{Browsers: []string{l.config.Engine}}); err != nil {
			return nil, errors.WrapUserFacing(err, errors.CodeBrowserLaunchError,
				"failed to install playwright browsers", "Check network access or install browsers manually.")
		}
	}

	runtime, err := pw.Run()
	if err != nil {
		return nil, errors.WrapUserFacing(err, errors.CodeBrowserLaunchError,
			"failed to start playwright driver", "Run with browser.install_drivers=true or install playwright browsers.")
	}

	var browserType pw.BrowserType
	switch l.config.Engine {
	case EngineFirefox:
		browserType = runtime.Firefox
	case EngineWebKit:
		browserType = runtime.WebKit
	default:
		browserType = runtime.Chromium
	}

	b, err := browserType.Launch(pw.BrowserTypeLaunchOptions{
		Headless: pw.Bool(l.config.Headless),
	})
	if err != nil {
		if stopErr := runtime.Stop(); stopErr != nil {
			l.logger.Warnf(ctx, "Failed to stop playwright driver after launch failure: %v", stopErr)
		}
		return nil, errors.WrapUserFacing(err, errors.CodeBrowserLaunchError,
			fmt.Sprintf("failed to launch %s", l.config.Engine), "Ensure the browser is installed for this playwright version.")
	}

	l.logger.Infof(ctx, "Browser launched (version %s, headless %t)", b.Version(), l.config.Headless)
	return &browser{runtime: runtime, browser: b, logger: l.logger}, nil
}

type browser struct {
	runtime   *pw.Playwright
	browser   pw.Browser
	logger    ports.Logger
	closeOnce sync.Once
	closeErr  error
}

func (b *browser) NewContext(ctx context.Context, opts ports.ContextOptions) (ports.BrowserContext, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	bc, err := b.browser.NewContext(pw.BrowserNewContextOptions{
		Viewport: &pw.Size{Width: opts.Viewport.Width, Height: opts.Viewport.Height},
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeBrowserContextError, "failed to create browser context")
	}
	if opts.NavigationTimeout > 0 {
		ms := float64(opts.NavigationTimeout.Milliseconds())
		bc.SetDefaultNavigationTimeout(ms)
		bc.SetDefaultTimeout(ms)
	}
	return &browserContext{context: bc}, nil
}

func (b *browser) IsConnected() bool {
	return b.browser.IsConnected()
}

func (b *browser) Close() error {
	b.closeOnce.Do(func() {
		if err := b.browser.Close(); err != nil {
			b.closeErr = errors.Wrap(err, errors.CodeBrowserDisconnected, "failed to close browser")
		}
		if err := b.runtime.Stop(); err != nil && b.closeErr == nil {
			b.closeErr = errors.Wrap(err, errors.CodeInternal, "failed to stop playwright driver")
		}
	})
	return b.closeErr
}

type browserContext struct {
	context pw.BrowserContext
}

func (c *browserContext) NewPage(ctx context.Context) (domain.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p, err := c.context.NewPage()
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeBrowserContextError, "failed to open page")
	}
	return &page{page: p}, nil
}

func (c *browserContext) Close() error {
	return c.context.Close()
}
