package notify

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/failsafe-org/safeguard-cli/internal/domain/models"
	"github.com/failsafe-org/safeguard-cli/internal/usecase"
	"github.com/fatih/color"
)

// ConsoleNotifier prints notifications to stderr so stdout stays machine readable
type ConsoleNotifier struct {
	out io.Writer
}

// NewConsoleNotifier creates a new console notifier
func NewConsoleNotifier() *ConsoleNotifier {
	return &ConsoleNotifier{out: os.Stderr}
}

// Notify prints the notification
func (n *ConsoleNotifier) Notify(ctx context.Context, notification models.Notification) {
	var icon string
	var c *color.Color
	switch notification.Status {
	case models.NotificationSuccess:
		icon, c = "✅", color.New(color.FgGreen, color.Bold)
	case models.NotificationError:
		icon, c = "❌", color.New(color.FgRed, color.Bold)
	default:
		icon, c = "ℹ️ ", color.New(color.FgCyan, color.Bold)
	}

	fmt.Fprintf(n.out, "%s %s %s\n", icon, c.Sprint(notification.Title+":"), notification.Description)
	if notification.TxHash != ([32]byte{}) {
		fmt.Fprintf(n.out, "   %s %s\n", color.New(color.Faint).Sprint("tx"), notification.TxHash.Hex())
	}
}

var _ usecase.Notifier = (*ConsoleNotifier)(nil)
