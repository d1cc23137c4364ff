package ports

import (
	"context"

	"github.com/olusolaa/visual-drift-detector/internal/core/domain"
)

//go:generate mockery --name Reporter --output ./mocks --outpkg mocks --case underscore
type Reporter interface {
	Type() string
	Report(ctx context.Context, summary domain.RunSummary) error
}

// ArtifactPublisher copies screenshots and diff artifacts of a finished run
// to external storage.
//
//go:generate mockery --name ArtifactPublisher --output ./mocks --outpkg mocks --case underscore
type ArtifactPublisher interface {
	Type() string
	Publish(ctx context.Context, summary domain.RunSummary) error
}
