package ports

import (
	"context"

	"github.com/farm2door/marketplace/internal/core/domain"
)

// Notifier delivers a notification to its recipient over some transport.
type Notifier interface {
	Notify(ctx context.Context, n domain.Notification) error
}

// NotificationDispatcher is the interface services use to hand off
// notifications for asynchronous delivery.
type NotificationDispatcher interface {
	Enqueue(n domain.Notification)
}
