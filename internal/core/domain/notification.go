package domain

import "time"

// NotificationType enumerates the events users are notified about.
type NotificationType string

const (
	NotifyOrderConfirmation    NotificationType = "order_confirmation"
	NotifyOrderStatusUpdate    NotificationType = "order_status_update"
	NotifyReservationCreated   NotificationType = "reservation_created"
	NotifyReservationCancelled NotificationType = "reservation_cancelled"
	NotifyPaymentReceived      NotificationType = "payment_received"
	NotifyReviewReceived       NotificationType = "review_received"
	NotifyProductAvailable     NotificationType = "product_available"
)

// Notification is a message addressed to a single user. Delivery transport
// (log, email, push) is an infrastructure concern behind the Notifier port.
type Notification struct {
	UserID    string           `json:"user_id"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	CreatedAt time.Time        `json:"created_at"`
}
