package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/xraph/simflow/stage"
	"github.com/xraph/simflow/workflow"
)

// Logging returns middleware that logs step start and completion.
func Logging(logger *slog.Logger) Middleware {
	return func(ctx context.Context, step *workflow.Step, next Handler) (*stage.Output, error) {
		logger.Info("step started",
			slog.String("step_name", step.Name),
			slog.String("step_id", step.ID.String()),
			slog.String("stage", stageOf(step.Name)),
		)

		start := time.Now()
		out, err := next(ctx)
		elapsed := time.Since(start)

		if err != nil {
			logger.Error("step failed",
				slog.String("step_name", step.Name),
				slog.String("step_id", step.ID.String()),
				slog.Duration("elapsed", elapsed),
				slog.String("error", err.Error()),
			)
		} else {
			logger.Info("step completed",
				slog.String("step_name", step.Name),
				slog.String("step_id", step.ID.String()),
				slog.Duration("elapsed", elapsed),
			)
		}

		return out, err
	}
}
