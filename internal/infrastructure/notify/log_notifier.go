package notify

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/farm2door/marketplace/internal/core/domain"
)

// LogNotifier writes notifications to the structured log. It stands in for
// real transports (email, push) which are deliberately out of scope.
type LogNotifier struct {
	log zerolog.Logger
}

func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Notify(_ context.Context, notification domain.Notification) error {
	n.log.Info().
		Str("user_id", notification.UserID).
		Str("type", string(notification.Type)).
		Str("title", notification.Title).
		Str("message", notification.Message).
		Time("created_at", notification.CreatedAt).
		Msg("notification")
	return nil
}
