package usecase

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/failsafe-org/safeguard-cli/internal/domain"
	"github.com/failsafe-org/safeguard-cli/internal/domain/config"
	"github.com/failsafe-org/safeguard-cli/internal/domain/models"
)

// ExecuteTransaction executes a queued transaction whose eta has passed.
// Requires the executor role.
type ExecuteTransaction struct {
	config    *config.RuntimeConfig
	list      *ListTransactions
	safeGuard SafeGuardGateway
	selector  TransactionSelector
	runner    *ActionRunner
}

// NewExecuteTransaction creates a new ExecuteTransaction use case
func NewExecuteTransaction(
	cfg *config.RuntimeConfig,
	list *ListTransactions,
	safeGuard SafeGuardGateway,
	selector TransactionSelector,
	runner *ActionRunner,
) *ExecuteTransaction {
	return &ExecuteTransaction{
		config:    cfg,
		list:      list,
		safeGuard: safeGuard,
		selector:  selector,
		runner:    runner,
	}
}

// Run executes the execute transaction use case
func (uc *ExecuteTransaction) Run(ctx context.Context, params TimelockActionParams) (*TimelockActionResult, error) {
	safeGuard, tx, err := lookupQueued(ctx, uc.config, uc.list, uc.selector, params, "Select transaction to execute")
	if err != nil {
		return nil, err
	}

	switch status := tx.Status(uc.list.clock.Now()); status {
	case models.TransactionStatusReady:
	case models.TransactionStatusPending:
		return nil, domain.ValidationError{Field: "tx-hash", Reason: fmt.Sprintf("eta %s has not been reached", tx.Eta.Format("2006-01-02 15:04:05 MST"))}
	default:
		return nil, domain.ValidationError{Field: "tx-hash", Reason: fmt.Sprintf("transaction is %s", status)}
	}

	res, err := uc.runner.run(ctx, actionSpec{
		Kind:         models.ActionExecute,
		SafeGuard:    safeGuard,
		RequiredRole: models.RoleExecutor,
		Summary:      fmt.Sprintf("Execute transaction %s (%s)", tx.TxHash.Hex(), tx.Description),
		Success:      "Transaction executed!",
		Submit: func(ctx context.Context) (common.Hash, error) {
			return uc.safeGuard.ExecuteTransaction(ctx, safeGuard, tx.Call())
		},
	}, params.ActionOptions)
	if err != nil {
		return nil, err
	}
	return &TimelockActionResult{ActionResult: res, Transaction: tx}, nil
}
