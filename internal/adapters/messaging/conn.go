package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/failsafe-org/safeguard-cli/internal/domain/config"
	"github.com/nats-io/nats.go"
)

const publishTimeout = 5 * time.Second

// Conn is a NATS connection opened on first publish.
// A Conn without a URL is disabled and publishing is a no-op.
type Conn struct {
	url string
	log *slog.Logger

	once sync.Once
	nc   *nats.Conn
	err  error
}

// NewConn creates a connection for the configured NATS URL
func NewConn(cfg *config.RuntimeConfig, log *slog.Logger) (*Conn, func()) {
	c := &Conn{
		url: cfg.NATS.URL,
		log: log.With("component", "nats"),
	}
	return c, c.Close
}

// Enabled reports whether a NATS URL is configured
func (c *Conn) Enabled() bool {
	return c.url != ""
}

func (c *Conn) connect() (*nats.Conn, error) {
	c.once.Do(func() {
		nc, err := nats.Connect(c.url,
			nats.Name("safeguard-cli"),
			nats.Timeout(10*time.Second),
			nats.ReconnectWait(1*time.Second),
			nats.MaxReconnects(5),
		)
		if err != nil {
			c.err = fmt.Errorf("failed to connect to NATS: %w", err)
			return
		}
		c.nc = nc
		c.log.Debug("connected", "url", c.url)
	})
	return c.nc, c.err
}

// PublishJSON marshals v and publishes it, waiting for the server to acknowledge the flush
func (c *Conn) PublishJSON(ctx context.Context, subject string, v any) error {
	if !c.Enabled() {
		return nil
	}
	nc, err := c.connect()
	if err != nil {
		return err
	}

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}
	if err := nc.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", subject, err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	if err := nc.FlushWithContext(ctx); err != nil {
		return fmt.Errorf("failed to flush NATS connection: %w", err)
	}

	c.log.Debug("published message", "subject", subject, "bytes", len(data))
	return nil
}

// Close drains and closes the connection if it was opened
func (c *Conn) Close() {
	if c.nc != nil {
		if err := c.nc.Drain(); err != nil {
			c.nc.Close()
		}
	}
}
