package app

import (
	"context"

	"github.com/olusolaa/visual-drift-detector/internal/core/domain"
	"github.com/olusolaa/visual-drift-detector/internal/core/ports"
)

// Application represents the main application that runs the visual drift engine
type Application struct {
	Engine ports.VisualDriftEngine
	Logger ports.Logger
}

func NewApplication(engine ports.VisualDriftEngine, logger ports.Logger) *Application {
	return &Application{
		Engine: engine,
		Logger: logger,
	}
}

// Run executes one capture and comparison run.
func (a *Application) Run(ctx context.Context) (domain.RunSummary, error) {
	a.Logger.Infof(ctx, "Starting visual drift run...")

	summary, err := a.Engine.Run(ctx)
	if err != nil {
		a.Logger.Errorf(ctx, err, "Visual drift run failed")
		return summary, err
	}

	a.Logger.Infof(ctx, "Visual drift run completed: %d tests, %d comparisons, %d differ",
		len(summary.Tests), len(summary.Comparisons), summary.DifferingComparisons())
	return summary, nil
}
