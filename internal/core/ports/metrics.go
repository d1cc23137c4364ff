package ports

import (
	"context"

	"github.com/olusolaa/visual-drift-detector/internal/core/domain"
)

// MetricsSink records run-level measurements once a run has finished.
//
//go:generate mockery --name MetricsSink --output ./mocks --outpkg mocks --case underscore
type MetricsSink interface {
	Record(ctx context.Context, summary domain.RunSummary) error
}
