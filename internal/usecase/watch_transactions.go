package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/failsafe-org/safeguard-cli/internal/domain"
	"github.com/failsafe-org/safeguard-cli/internal/domain/config"
	"github.com/failsafe-org/safeguard-cli/internal/domain/models"
)

// DefaultStaleCheckInterval is how often a watch re-evaluates grace periods
const DefaultStaleCheckInterval = 30 * time.Second

// WatchTransactionsParams contains parameters for watching transactions
type WatchTransactionsParams struct {
	SafeGuard          common.Address
	StaleCheckInterval time.Duration
}

// TransactionWatch is a live transaction ledger. Close releases every subscription.
type TransactionWatch struct {
	*watchHandle[domain.Ledger]
	SafeGuard common.Address
	Timelock  common.Address
}

// WatchTransactions keeps the ledger current from live events
type WatchTransactions struct {
	config    *config.RuntimeConfig
	list      *ListTransactions
	safeGuard SafeGuardGateway
	timelock  TimelockGateway
	publisher TransactionPublisher
	metrics   ReconcilerMetrics
	clock     Clock
	log       *slog.Logger
}

// NewWatchTransactions creates a new WatchTransactions use case
func NewWatchTransactions(
	cfg *config.RuntimeConfig,
	list *ListTransactions,
	safeGuard SafeGuardGateway,
	timelock TimelockGateway,
	publisher TransactionPublisher,
	metrics ReconcilerMetrics,
	clock Clock,
	log *slog.Logger,
) *WatchTransactions {
	return &WatchTransactions{
		config:    cfg,
		list:      list,
		safeGuard: safeGuard,
		timelock:  timelock,
		publisher: publisher,
		metrics:   metrics,
		clock:     clock,
		log:       log.With("component", "transactions-watch"),
	}
}

// Start subscribes before loading history so no event between the two is lost.
// Replayed events are harmless because Ledger.Apply is idempotent.
func (uc *WatchTransactions) Start(ctx context.Context, params WatchTransactionsParams) (*TransactionWatch, error) {
	safeGuard, err := resolveSafeGuard(uc.config, params.SafeGuard)
	if err != nil {
		return nil, err
	}
	timelock, err := resolveTimelock(ctx, uc.config, uc.safeGuard, safeGuard)
	if err != nil {
		return nil, err
	}

	queuedCh := make(chan models.Transaction, 64)
	timelockCh := make(chan models.TimelockEvent, 64)

	queuedSub, err := uc.safeGuard.SubscribeQueued(ctx, safeGuard, queuedCh)
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to queue events: %w", err)
	}
	timelockSub, err := uc.timelock.SubscribeTransactionEvents(ctx, timelock, timelockCh)
	if err != nil {
		unsubscribeAll(queuedSub)
		return nil, fmt.Errorf("failed to subscribe to timelock events: %w", err)
	}

	initial, err := uc.list.Run(ctx, ListTransactionsParams{SafeGuard: safeGuard})
	if err != nil {
		unsubscribeAll(queuedSub, timelockSub)
		return nil, err
	}

	interval := params.StaleCheckInterval
	if interval <= 0 {
		interval = DefaultStaleCheckInterval
	}

	w := &TransactionWatch{
		watchHandle: newWatchHandle[domain.Ledger](queuedSub, timelockSub),
		SafeGuard:   safeGuard,
		Timelock:    timelock,
	}

	uc.metrics.ObserveDropped(initial.Dropped)
	uc.metrics.ObserveLedger(initial.Ledger)
	w.updates <- initial.Ledger

	w.run(func() {
		uc.loop(ctx, w, initial.Ledger, interval, queuedCh, timelockCh, queuedSub, timelockSub)
	})

	uc.log.Debug("watching transactions", "safeguard", safeGuard.Hex(), "timelock", timelock.Hex())
	return w, nil
}

func (uc *WatchTransactions) loop(
	ctx context.Context,
	w *TransactionWatch,
	ledger domain.Ledger,
	interval time.Duration,
	queuedCh <-chan models.Transaction,
	timelockCh <-chan models.TimelockEvent,
	queuedSub, timelockSub ethereum.Subscription,
) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		var ev domain.LedgerEvent
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case err := <-queuedSub.Err():
			if err != nil {
				w.fail(fmt.Errorf("queue subscription: %w", err))
			}
			return
		case err := <-timelockSub.Err():
			if err != nil {
				w.fail(fmt.Errorf("timelock subscription: %w", err))
			}
			return
		case tx := <-queuedCh:
			if !verifyTransactionHash(uc.log, tx) {
				uc.metrics.ObserveDropped(1)
				continue
			}
			ev = domain.TransactionQueued{Transaction: tx}
		case te := <-timelockCh:
			ev = ledgerEventFor(te)
		case <-ticker.C:
			ev = domain.ClockTicked{Now: uc.clock.Now()}
		}

		next := ledger.Apply(ev)
		uc.metrics.ObserveEvent(ev.Kind())
		changed := domain.Changed(ledger, next)
		ledger = next
		if len(changed) == 0 {
			continue
		}

		uc.log.Debug("ledger changed", "event", ev.Kind(), "changed", len(changed))
		uc.metrics.ObserveLedger(ledger)
		if err := uc.publisher.PublishTransactions(ctx, w.SafeGuard, changed); err != nil {
			uc.log.Warn("failed to publish transaction update", "error", err)
		}
		if !w.emit(ctx, ledger) {
			return
		}
	}
}

func ledgerEventFor(ev models.TimelockEvent) domain.LedgerEvent {
	switch ev.Kind {
	case models.TimelockCanceled:
		return domain.TransactionCanceled{TxHash: ev.TxHash}
	case models.TimelockExecuted:
		return domain.TransactionExecuted{TxHash: ev.TxHash}
	default:
		return domain.QueueObserved{TxHash: ev.TxHash}
	}
}
