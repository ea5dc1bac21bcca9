// Package health provides liveness and readiness handlers.
package health

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/schemadeck/core/handler"
	"github.com/dmitrymomot/schemadeck/core/logger"
	"github.com/dmitrymomot/schemadeck/core/response"
)

// Check reports whether a dependency is usable.
type Check func(ctx context.Context) error

// Liveness answers "ALIVE" while the process can serve requests.
func Liveness[C handler.Context](C) handler.Response {
	return response.String("ALIVE")
}

// Readiness answers "READY" when every check passes and 503 otherwise.
// Nil checks are skipped, so optional dependencies can be passed as is.
func Readiness[C handler.Context](log *slog.Logger, checks ...Check) handler.HandlerFunc[C] {
	if log == nil {
		log = slog.Default()
	}
	return func(ctx C) handler.Response {
		for _, check := range checks {
			if check == nil {
				continue
			}
			if err := check(ctx); err != nil {
				log.ErrorContext(ctx, "readiness check failed", logger.Component("health"), logger.Error(err))
				return response.Error(response.ErrServiceUnavailable)
			}
		}
		return response.String("READY")
	}
}
