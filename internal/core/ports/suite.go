package ports

import (
	"context"

	"github.com/olusolaa/visual-drift-detector/internal/core/domain"
)

// SuiteProvider produces the ordered TestCase list for a run.
//
//go:generate mockery --name SuiteProvider --output ./mocks --outpkg mocks --case underscore
type SuiteProvider interface {
	Type() string
	Load(ctx context.Context) ([]domain.TestCase, error)
}
