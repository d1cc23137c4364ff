package ports

import (
	"context"

	"github.com/olusolaa/visual-drift-detector/internal/core/domain"
)

//go:generate mockery --name VisualDriftEngine --output ./mocks --outpkg mocks --case underscore
type VisualDriftEngine interface {
	Run(ctx context.Context) (domain.RunSummary, error)
}

// ProgressObserver follows a scheduler run. TestFinished calls may arrive
// concurrently from tests within the same chunk.
type ProgressObserver interface {
	RunStarted(total int)
	TestFinished(result domain.TestResult)
	RunFinished()
}
