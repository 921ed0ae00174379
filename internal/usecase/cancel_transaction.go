package usecase

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/failsafe-org/safeguard-cli/internal/domain"
	"github.com/failsafe-org/safeguard-cli/internal/domain/config"
	"github.com/failsafe-org/safeguard-cli/internal/domain/models"
	"github.com/samber/lo"
)

// TimelockActionParams identifies a queued transaction to cancel or execute
type TimelockActionParams struct {
	SafeGuard common.Address
	// TxHash is the timelock hash; when empty an interactive picker is shown
	TxHash string
	ActionOptions
}

// TimelockActionResult contains the confirmed cancel or execute
type TimelockActionResult struct {
	*ActionResult
	Transaction models.Transaction
}

// CancelTransaction cancels a queued transaction. Requires the canceler role.
type CancelTransaction struct {
	config    *config.RuntimeConfig
	list      *ListTransactions
	safeGuard SafeGuardGateway
	selector  TransactionSelector
	runner    *ActionRunner
}

// NewCancelTransaction creates a new CancelTransaction use case
func NewCancelTransaction(
	cfg *config.RuntimeConfig,
	list *ListTransactions,
	safeGuard SafeGuardGateway,
	selector TransactionSelector,
	runner *ActionRunner,
) *CancelTransaction {
	return &CancelTransaction{
		config:    cfg,
		list:      list,
		safeGuard: safeGuard,
		selector:  selector,
		runner:    runner,
	}
}

// Run executes the cancel transaction use case
func (uc *CancelTransaction) Run(ctx context.Context, params TimelockActionParams) (*TimelockActionResult, error) {
	safeGuard, tx, err := lookupQueued(ctx, uc.config, uc.list, uc.selector, params, "Select transaction to cancel")
	if err != nil {
		return nil, err
	}
	if !tx.CurrentlyQueued {
		return nil, domain.ValidationError{Field: "tx-hash", Reason: fmt.Sprintf("transaction is %s, not queued", tx.Status(uc.list.clock.Now()))}
	}

	res, err := uc.runner.run(ctx, actionSpec{
		Kind:         models.ActionCancel,
		SafeGuard:    safeGuard,
		RequiredRole: models.RoleCanceler,
		Summary:      fmt.Sprintf("Cancel transaction %s (%s)", tx.TxHash.Hex(), tx.Description),
		Success:      "Transaction canceled!",
		Submit: func(ctx context.Context) (common.Hash, error) {
			return uc.safeGuard.CancelTransaction(ctx, safeGuard, tx.Call())
		},
	}, params.ActionOptions)
	if err != nil {
		return nil, err
	}
	return &TimelockActionResult{ActionResult: res, Transaction: tx}, nil
}

// lookupQueued resolves the transaction named by params against the reconciled ledger
func lookupQueued(
	ctx context.Context,
	cfg *config.RuntimeConfig,
	list *ListTransactions,
	selector TransactionSelector,
	params TimelockActionParams,
	prompt string,
) (common.Address, models.Transaction, error) {
	var txHash common.Hash
	if params.TxHash != "" {
		var err error
		if txHash, err = ParseTxHash(params.TxHash); err != nil {
			return common.Address{}, models.Transaction{}, err
		}
	} else if cfg.NonInteractive {
		return common.Address{}, models.Transaction{}, domain.ValidationError{Field: "tx-hash", Reason: "is required in non-interactive mode"}
	}

	listed, err := list.Run(ctx, ListTransactionsParams{SafeGuard: params.SafeGuard})
	if err != nil {
		return common.Address{}, models.Transaction{}, err
	}

	if params.TxHash != "" {
		tx, err := listed.FindTransaction(txHash)
		return listed.SafeGuard, tx, err
	}

	queued := lo.Filter(listed.Ledger.Transactions, func(tx models.Transaction, _ int) bool {
		return tx.CurrentlyQueued
	})
	if len(queued) == 0 {
		return common.Address{}, models.Transaction{}, fmt.Errorf("%w: no queued transactions on %s", domain.ErrNotFound, listed.SafeGuard.Hex())
	}
	selected, err := selector.SelectTransaction(ctx, queued, prompt)
	if err != nil {
		return common.Address{}, models.Transaction{}, err
	}
	return listed.SafeGuard, *selected, nil
}
