package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/wss-platform/wss-backend/internal/logger"
	"github.com/wss-platform/wss-backend/internal/metrics"
)

// Step is one named unit of the startup sequence.
type Step struct {
	Name string
	Run  func(ctx context.Context) error
}

// runSteps executes steps strictly in order and aborts on the first failure.
// Steps after a failed one never run; there is no partial-success recovery,
// the operator restarts the container after fixing the dependency.
func runSteps(ctx context.Context, steps []Step) error {
	for _, s := range steps {
		start := time.Now()
		logger.Logger.Info().Str("step", s.Name).Msg("bootstrap step starting")

		err := s.Run(ctx)
		elapsed := time.Since(start)
		metrics.ObserveBootstrapStep(s.Name, elapsed, err)

		if err != nil {
			logger.Logger.Error().
				Str("step", s.Name).
				Dur("elapsed", elapsed).
				Err(err).
				Msg("bootstrap step failed")
			return fmt.Errorf("bootstrap step %s: %w", s.Name, err)
		}

		logger.Logger.Info().
			Str("step", s.Name).
			Dur("elapsed", elapsed).
			Msg("bootstrap step done")
	}
	return nil
}
