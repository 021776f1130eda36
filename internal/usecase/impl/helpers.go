// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "blog/internal/delivery/context"
	domainerrors "blog/internal/domain/errors"
	"blog/internal/domain/service"
	"blog/internal/errors"
)

// translateNotFound swaps a repository lookup miss for its domain error and
// leaves every other error untouched.
func translateNotFound(err, sentinel error, appErr *domainerrors.BaseError, message string) error {
	if errors.Is(err, sentinel) {
		return appErr.WrapMessage(message)
	}

	return err
}

// publishContentEvent is best-effort: failures are logged and never reach
// the caller, whose write has already committed.
func publishContentEvent(ctx context.Context, publisher service.EventPublisher, logger *slog.Logger, eventType string, resourceID, postID, actorID int64) {
	if publisher == nil {
		return
	}

	event := &service.ContentEvent{
		RequestID:  deliverycontext.GetRequestIDFromContext(ctx),
		Type:       eventType,
		ResourceID: resourceID,
		PostID:     postID,
		ActorID:    actorID,
		OccurredAt: time.Now().UTC(),
	}

	if err := publisher.PublishContentEvent(ctx, event); err != nil {
		logger.Warn("Failed to publish content event",
			slog.String("event_type", eventType),
			slog.Int64("resource_id", resourceID),
			slog.Any("error", err),
		)
	}
}
