package ports

import (
	"context"
	"time"

	"github.com/olusolaa/visual-drift-detector/internal/core/domain"
)

type ContextOptions struct {
	Viewport          domain.Viewport
	NavigationTimeout time.Duration
}

//go:generate mockery --name BrowserLauncher --output ./mocks --outpkg mocks --case underscore
type BrowserLauncher interface {
	Launch(ctx context.Context) (Browser, error)
}

// Browser is one browser process shared by a whole run.
//
//go:generate mockery --name Browser --output ./mocks --outpkg mocks --case underscore
type Browser interface {
	NewContext(ctx context.Context, opts ContextOptions) (BrowserContext, error)
	IsConnected() bool
	Close() error
}

// BrowserContext is an isolated cookie/storage/cache partition owned by a
// single test.
//
//go:generate mockery --name BrowserContext --output ./mocks --outpkg mocks --case underscore
type BrowserContext interface {
	NewPage(ctx context.Context) (domain.Page, error)
	Close() error
}
