package server

import (
	"context"
	"log/slog"

	"inkwell/internal/middleware"
	"inkwell/internal/notifications"
)

// With Redis the event goes through pub/sub and comes back to every
// instance's hub, this one included. Without it only the local hub is used.

func (s *Server) publishUserEvent(ctx context.Context, userID uint, eventType string, payload any) {
	message, ok := encodeEvent(ctx, eventType, payload)
	if !ok {
		return
	}
	if s.notifier.Enabled() {
		if err := s.notifier.PublishUser(context.WithoutCancel(ctx), userID, message); err != nil {
			middleware.Logger.WarnContext(ctx, "failed to publish user event",
				slog.String("type", eventType),
				slog.Uint64("target_user_id", uint64(userID)),
				slog.String("error", err.Error()),
			)
		}
		return
	}
	s.hub.Broadcast(userID, message)
}

func (s *Server) publishBroadcastEvent(ctx context.Context, eventType string, payload any) {
	message, ok := encodeEvent(ctx, eventType, payload)
	if !ok {
		return
	}
	if s.notifier.Enabled() {
		if err := s.notifier.PublishBroadcast(context.WithoutCancel(ctx), message); err != nil {
			middleware.Logger.WarnContext(ctx, "failed to publish broadcast event",
				slog.String("type", eventType),
				slog.String("error", err.Error()),
			)
		}
		return
	}
	s.hub.BroadcastAll(message)
}

func encodeEvent(ctx context.Context, eventType string, payload any) (string, bool) {
	message, err := notifications.Event{Type: eventType, Payload: payload}.Encode()
	if err != nil {
		middleware.Logger.ErrorContext(ctx, "failed to marshal event",
			slog.String("type", eventType),
			slog.String("error", err.Error()),
		)
		return "", false
	}
	return message, true
}
