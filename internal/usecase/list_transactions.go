package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/failsafe-org/safeguard-cli/internal/domain"
	"github.com/failsafe-org/safeguard-cli/internal/domain/config"
	"github.com/failsafe-org/safeguard-cli/internal/domain/models"
)

// ListTransactionsParams contains parameters for listing timelocked transactions
type ListTransactionsParams struct {
	// SafeGuard defaults to the configured one when zero
	SafeGuard common.Address
}

// TransactionListResult is the reconciled transaction view of one SafeGuard
type TransactionListResult struct {
	SafeGuard common.Address
	Timelock  common.Address
	Ledger    domain.Ledger
	// Dropped counts logs that could not be decoded or whose hash did not verify
	Dropped int
}

// ListTransactions rebuilds the transaction ledger from historical events
type ListTransactions struct {
	config    *config.RuntimeConfig
	safeGuard SafeGuardGateway
	timelock  TimelockGateway
	clock     Clock
	sink      ProgressSink
	log       *slog.Logger
}

// NewListTransactions creates a new ListTransactions use case
func NewListTransactions(
	cfg *config.RuntimeConfig,
	safeGuard SafeGuardGateway,
	timelock TimelockGateway,
	clock Clock,
	sink ProgressSink,
	log *slog.Logger,
) *ListTransactions {
	return &ListTransactions{
		config:    cfg,
		safeGuard: safeGuard,
		timelock:  timelock,
		clock:     clock,
		sink:      sink,
		log:       log.With("component", "transactions"),
	}
}

// Run executes the list transactions use case
func (uc *ListTransactions) Run(ctx context.Context, params ListTransactionsParams) (*TransactionListResult, error) {
	safeGuard, err := resolveSafeGuard(uc.config, params.SafeGuard)
	if err != nil {
		return nil, err
	}

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   StageLoading,
		Message: "Loading timelocked transactions",
		Spinner: true,
	})
	defer uc.sink.OnProgress(ctx, ProgressEvent{Stage: StageCompleted})

	result, err := uc.reconcile(ctx, safeGuard)
	if err != nil {
		uc.log.Error("reconciliation failed", "safeguard", safeGuard.Hex(), "error", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrReconcileFailed, err)
	}
	return result, nil
}

func (uc *ListTransactions) reconcile(ctx context.Context, safeGuard common.Address) (*TransactionListResult, error) {
	timelock, err := resolveTimelock(ctx, uc.config, uc.safeGuard, safeGuard)
	if err != nil {
		return nil, err
	}

	queued, err := uc.safeGuard.QueuedTransactions(ctx, safeGuard)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch queue events: %w", err)
	}
	events, err := uc.timelock.TransactionEvents(ctx, timelock)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch timelock events: %w", err)
	}
	grace, err := uc.timelock.GracePeriod(ctx, timelock)
	if err != nil {
		return nil, fmt.Errorf("failed to read grace period: %w", err)
	}

	canceled := make(map[common.Hash]bool)
	executed := make(map[common.Hash]bool)
	for _, ev := range events.Items {
		switch ev.Kind {
		case models.TimelockCanceled:
			canceled[ev.TxHash] = true
		case models.TimelockExecuted:
			executed[ev.TxHash] = true
		}
	}

	dropped := queued.Dropped + events.Dropped
	seen := make(map[common.Hash]int)
	var txs []models.Transaction
	for _, tx := range queued.Items {
		if !verifyTransactionHash(uc.log, tx) {
			dropped++
			continue
		}

		isQueued, err := uc.timelock.IsQueued(ctx, timelock, tx.TxHash)
		if err != nil {
			return nil, fmt.Errorf("failed to read queue state of %s: %w", tx.TxHash.Hex(), err)
		}
		tx.CurrentlyQueued = isQueued
		tx.Canceled = canceled[tx.TxHash]
		tx.Executed = executed[tx.TxHash]

		// A re-queued identical call keeps one entry
		if idx, ok := seen[tx.TxHash]; ok {
			txs[idx] = tx
			continue
		}
		seen[tx.TxHash] = len(txs)
		txs = append(txs, tx)
	}

	if dropped > 0 {
		uc.log.Warn("dropped malformed transaction logs", "count", dropped)
	}

	return &TransactionListResult{
		SafeGuard: safeGuard,
		Timelock:  timelock,
		Ledger:    domain.NewLedger(txs, grace, uc.clock.Now()),
		Dropped:   dropped,
	}, nil
}

// verifyTransactionHash checks that the emitted hash matches the timelock's hash of the call
func verifyTransactionHash(log *slog.Logger, tx models.Transaction) bool {
	hash, err := tx.Call().Hash()
	if err != nil {
		log.Warn("cannot hash queued call", "txHash", tx.TxHash.Hex(), "error", err)
		return false
	}
	if hash != tx.TxHash {
		log.Warn("queue event hash does not match call", "txHash", tx.TxHash.Hex(), "computed", hash.Hex())
		return false
	}
	return true
}

// FindTransaction looks a transaction up by its timelock hash
func (r *TransactionListResult) FindTransaction(txHash common.Hash) (models.Transaction, error) {
	tx, ok := r.Ledger.Find(txHash)
	if !ok {
		return models.Transaction{}, fmt.Errorf("%w: transaction %s on safeguard %s", domain.ErrNotFound, txHash.Hex(), r.SafeGuard.Hex())
	}
	return tx, nil
}

// GracePeriod of the timelock the ledger was built from
func (r *TransactionListResult) GracePeriod() time.Duration {
	return r.Ledger.GracePeriod
}
