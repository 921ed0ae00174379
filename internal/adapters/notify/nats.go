package notify

import (
	"context"
	"log/slog"

	"github.com/failsafe-org/safeguard-cli/internal/adapters/messaging"
	"github.com/failsafe-org/safeguard-cli/internal/domain/models"
	"github.com/failsafe-org/safeguard-cli/internal/usecase"
)

// NotificationsSubject is where notifications are published
const NotificationsSubject = "safeguard.notifications"

// NATSNotifier publishes notifications to NATS. Delivery failures are logged, never returned.
type NATSNotifier struct {
	conn *messaging.Conn
	log  *slog.Logger
}

// NewNATSNotifier creates a new NATS notifier
func NewNATSNotifier(conn *messaging.Conn, log *slog.Logger) *NATSNotifier {
	return &NATSNotifier{conn: conn, log: log.With("component", "notify")}
}

// Notify publishes the notification as JSON
func (n *NATSNotifier) Notify(ctx context.Context, notification models.Notification) {
	if err := n.conn.PublishJSON(ctx, NotificationsSubject, notification); err != nil {
		n.log.Warn("failed to publish notification", "title", notification.Title, "error", err)
	}
}

var _ usecase.Notifier = (*NATSNotifier)(nil)
