package notify

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/failsafe-org/safeguard-cli/internal/adapters/messaging"
	"github.com/failsafe-org/safeguard-cli/internal/domain/config"
	"github.com/failsafe-org/safeguard-cli/internal/domain/models"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	got []models.Notification
}

func (r *recordingNotifier) Notify(_ context.Context, n models.Notification) {
	r.got = append(r.got, n)
}

func TestConsoleNotifier(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	n := &ConsoleNotifier{out: &buf}

	n.Notify(context.Background(), models.Notification{
		Title:       "Success",
		Description: "Role granted!",
		Status:      models.NotificationSuccess,
		TxHash:      common.Hash{0x01},
	})

	assert.Contains(t, buf.String(), "✅ Success: Role granted!")
	assert.Contains(t, buf.String(), common.Hash{0x01}.Hex())
}

func TestMultiNotifier(t *testing.T) {
	a, b := &recordingNotifier{}, &recordingNotifier{}
	MultiNotifier{a, b}.Notify(context.Background(), models.Notification{Title: "Error"})

	assert.Len(t, a.got, 1)
	assert.Len(t, b.got, 1)
}

func TestNewNotifier(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	disabled, cleanup := messaging.NewConn(&config.RuntimeConfig{}, log)
	defer cleanup()
	n, ok := NewNotifier(disabled, log).(MultiNotifier)
	require.True(t, ok)
	assert.Len(t, n, 1)

	enabled, cleanup2 := messaging.NewConn(&config.RuntimeConfig{NATS: config.NATSConfig{URL: "nats://127.0.0.1:4222"}}, log)
	defer cleanup2()
	n, ok = NewNotifier(enabled, log).(MultiNotifier)
	require.True(t, ok)
	assert.Len(t, n, 2)
}
