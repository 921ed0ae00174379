package notify

import (
	"context"
	"log/slog"

	"github.com/failsafe-org/safeguard-cli/internal/adapters/messaging"
	"github.com/failsafe-org/safeguard-cli/internal/domain/models"
	"github.com/failsafe-org/safeguard-cli/internal/usecase"
)

// MultiNotifier fans a notification out to several notifiers
type MultiNotifier []usecase.Notifier

// Notify delivers to every notifier in order
func (m MultiNotifier) Notify(ctx context.Context, notification models.Notification) {
	for _, n := range m {
		n.Notify(ctx, notification)
	}
}

// NewNotifier builds the console notifier, plus NATS when configured
func NewNotifier(conn *messaging.Conn, log *slog.Logger) usecase.Notifier {
	notifiers := MultiNotifier{NewConsoleNotifier()}
	if conn.Enabled() {
		notifiers = append(notifiers, NewNATSNotifier(conn, log))
	}
	return notifiers
}
