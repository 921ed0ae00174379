package blockchain

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/event"
	"github.com/failsafe-org/safeguard-cli/internal/usecase"
)

type logDecoder[T any] func(log *types.Log) (T, error)

// collectLogs runs a historical log query and decodes every match.
// Logs that fail to decode are counted and skipped.
func collectLogs[T any](ctx context.Context, c *Client, query ethereum.FilterQuery, decode logDecoder[T]) (*usecase.EventBatch[T], error) {
	client, err := c.conn(ctx)
	if err != nil {
		return nil, err
	}
	logs, err := client.FilterLogs(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to filter logs: %w", err)
	}

	batch := &usecase.EventBatch[T]{Items: make([]T, 0, len(logs))}
	for i := range logs {
		item, err := decode(&logs[i])
		if err != nil {
			c.log.Warn("dropping malformed log", "tx", logs[i].TxHash.Hex(), "index", logs[i].Index, "error", err)
			batch.Dropped++
			continue
		}
		batch.Items = append(batch.Items, item)
	}
	return batch, nil
}

// subscribeLogs streams decoded logs into sink until the subscription is closed.
// Removed (reorged) and malformed logs are skipped.
func subscribeLogs[T any](ctx context.Context, c *Client, query ethereum.FilterQuery, decode logDecoder[T], sink chan<- T) (ethereum.Subscription, error) {
	client, err := c.subscriber(ctx)
	if err != nil {
		return nil, err
	}

	logs := make(chan types.Log, 16)
	sub, err := client.SubscribeFilterLogs(ctx, query, logs)
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to logs: %w", err)
	}

	return event.NewSubscription(func(quit <-chan struct{}) error {
		defer sub.Unsubscribe()
		for {
			select {
			case log := <-logs:
				if log.Removed {
					continue
				}
				item, err := decode(&log)
				if err != nil {
					c.log.Warn("dropping malformed log", "tx", log.TxHash.Hex(), "index", log.Index, "error", err)
					continue
				}
				select {
				case sink <- item:
				case <-quit:
					return nil
				}
			case err := <-sub.Err():
				return err
			case <-quit:
				return nil
			}
		}
	}), nil
}
