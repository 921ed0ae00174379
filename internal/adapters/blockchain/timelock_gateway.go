package blockchain

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/failsafe-org/safeguard-cli/internal/domain/bindings"
	"github.com/failsafe-org/safeguard-cli/internal/domain/models"
	"github.com/failsafe-org/safeguard-cli/internal/usecase"
)

var timelockEventKinds = map[string]models.TimelockEventKind{
	bindings.TimelockQueueTransactionEventName:   models.TimelockQueued,
	bindings.TimelockCancelTransactionEventName:  models.TimelockCanceled,
	bindings.TimelockExecuteTransactionEventName: models.TimelockExecuted,
}

// TimelockGateway reads timelock state and events
type TimelockGateway struct {
	client   *Client
	contract *bindings.Timelock
}

// NewTimelockGateway creates a new timelock gateway
func NewTimelockGateway(client *Client) *TimelockGateway {
	return &TimelockGateway{
		client:   client,
		contract: bindings.NewTimelock(),
	}
}

// GracePeriod returns GRACE_PERIOD()
func (g *TimelockGateway) GracePeriod(ctx context.Context, timelock common.Address) (time.Duration, error) {
	data, err := g.contract.PackGracePeriod()
	if err != nil {
		return 0, err
	}
	out, err := g.client.call(ctx, timelock, data)
	if err != nil {
		return 0, fmt.Errorf("failed to call GRACE_PERIOD(): %w", err)
	}
	seconds, err := g.contract.UnpackGracePeriod(out)
	if err != nil {
		return 0, err
	}
	return secondsDuration(seconds), nil
}

// Delay returns delay()
func (g *TimelockGateway) Delay(ctx context.Context, timelock common.Address) (time.Duration, error) {
	data, err := g.contract.PackDelay()
	if err != nil {
		return 0, err
	}
	out, err := g.client.call(ctx, timelock, data)
	if err != nil {
		return 0, fmt.Errorf("failed to call delay(): %w", err)
	}
	seconds, err := g.contract.UnpackDelay(out)
	if err != nil {
		return 0, err
	}
	return secondsDuration(seconds), nil
}

// IsQueued returns queuedTransactions(txHash)
func (g *TimelockGateway) IsQueued(ctx context.Context, timelock common.Address, txHash common.Hash) (bool, error) {
	data, err := g.contract.PackQueuedTransactions(txHash)
	if err != nil {
		return false, err
	}
	out, err := g.client.call(ctx, timelock, data)
	if err != nil {
		return false, fmt.Errorf("failed to call queuedTransactions(): %w", err)
	}
	return g.contract.UnpackQueuedTransactions(out)
}

// eventsQuery matches all three transaction events with one topic OR
func (g *TimelockGateway) eventsQuery(timelock common.Address) ethereum.FilterQuery {
	return ethereum.FilterQuery{
		Addresses: []common.Address{timelock},
		Topics: [][]common.Hash{{
			g.contract.EventID(bindings.TimelockQueueTransactionEventName),
			g.contract.EventID(bindings.TimelockCancelTransactionEventName),
			g.contract.EventID(bindings.TimelockExecuteTransactionEventName),
		}},
	}
}

// TransactionEvents returns every queue, cancel and execute event of the timelock
func (g *TimelockGateway) TransactionEvents(ctx context.Context, timelock common.Address) (*usecase.EventBatch[models.TimelockEvent], error) {
	return collectLogs(ctx, g.client, g.eventsQuery(timelock), g.decode)
}

// SubscribeTransactionEvents streams queue, cancel and execute events
func (g *TimelockGateway) SubscribeTransactionEvents(ctx context.Context, timelock common.Address, sink chan<- models.TimelockEvent) (ethereum.Subscription, error) {
	return subscribeLogs(ctx, g.client, g.eventsQuery(timelock), g.decode, sink)
}

func (g *TimelockGateway) decode(log *types.Log) (models.TimelockEvent, error) {
	ev, err := g.contract.UnpackTransactionEvent(log)
	if err != nil {
		return models.TimelockEvent{}, err
	}
	return models.TimelockEvent{
		Kind:        timelockEventKinds[ev.Event],
		TxHash:      ev.TxHash,
		Target:      ev.Target,
		Eta:         unixTime(ev.Eta),
		BlockNumber: log.BlockNumber,
	}, nil
}

var _ usecase.TimelockGateway = (*TimelockGateway)(nil)
