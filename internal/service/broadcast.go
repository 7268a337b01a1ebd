package service

import (
	"context"
	"log/slog"

	"github.com/phrazzld/taskboard-api/internal/events"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
)

// publish emits a committed change. Delivery is best effort: the write has
// already succeeded, so a failure is logged and swallowed.
func publish(ctx context.Context, emitter events.EventEmitter, def *slog.Logger, eventType string, payload any) {
	if err := events.Emit(ctx, emitter, eventType, payload); err != nil {
		logger.FromContextOrDefault(ctx, def).Warn("failed to publish event",
			slog.String("event_type", eventType),
			slog.String("error", err.Error()))
	}
}
