package usecase

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/failsafe-org/safeguard-cli/internal/domain"
	"github.com/failsafe-org/safeguard-cli/internal/domain/bindings"
	"github.com/failsafe-org/safeguard-cli/internal/domain/config"
	"github.com/failsafe-org/safeguard-cli/internal/domain/models"
)

// RequestPaymentParams contains parameters for queueing a token payment
type RequestPaymentParams struct {
	SafeGuard   common.Address
	Recipient   string
	Amount      string
	Description string
	ActionOptions
}

// RequestPaymentResult contains the queued payment
type RequestPaymentResult struct {
	*ActionResult
	Call   models.TimelockCall
	TxHash common.Hash // timelock identity of the queued call
	Amount *big.Int
}

// RequestPayment queues token.transfer(recipient, amount) through the SafeGuard.
// Requires the proposer role.
type RequestPayment struct {
	config    *config.RuntimeConfig
	safeGuard SafeGuardGateway
	timelock  TimelockGateway
	chain     ChainReader
	runner    *ActionRunner
	token     *bindings.ERC20
}

// NewRequestPayment creates a new RequestPayment use case
func NewRequestPayment(
	cfg *config.RuntimeConfig,
	safeGuard SafeGuardGateway,
	timelock TimelockGateway,
	chain ChainReader,
	runner *ActionRunner,
) *RequestPayment {
	return &RequestPayment{
		config:    cfg,
		safeGuard: safeGuard,
		timelock:  timelock,
		chain:     chain,
		runner:    runner,
		token:     bindings.NewERC20(),
	}
}

// Run executes the request payment use case
func (uc *RequestPayment) Run(ctx context.Context, params RequestPaymentParams) (*RequestPaymentResult, error) {
	network, err := requireNetwork(uc.config)
	if err != nil {
		return nil, err
	}
	if err := requireContract(network.Token, "token"); err != nil {
		return nil, err
	}
	safeGuard, err := resolveSafeGuard(uc.config, params.SafeGuard)
	if err != nil {
		return nil, err
	}
	recipient, err := parseAddressField("recipient", params.Recipient)
	if err != nil {
		return nil, err
	}
	amount, err := parsePositiveAmount(params.Amount)
	if err != nil {
		return nil, err
	}
	description := strings.TrimSpace(params.Description)
	if description == "" {
		return nil, domain.ValidationError{Field: "description", Reason: "is required"}
	}

	data, err := uc.token.PackTransfer(recipient, amount)
	if err != nil {
		return nil, err
	}

	result := &RequestPaymentResult{Amount: amount}
	res, err := uc.runner.run(ctx, actionSpec{
		Kind:         models.ActionRequestPayment,
		SafeGuard:    safeGuard,
		RequiredRole: models.RoleProposer,
		Summary:      fmt.Sprintf("Request payment of %s to %s: %q", domain.FormatUnits(amount, domain.EtherDecimals), recipient.Hex(), description),
		Success:      "Payment requested!",
		Submit: func(ctx context.Context) (common.Hash, error) {
			eta, err := uc.eta(ctx, safeGuard)
			if err != nil {
				return common.Hash{}, err
			}
			result.Call = models.TimelockCall{
				Target: network.Token,
				Value:  new(big.Int),
				Data:   data,
				Eta:    eta,
			}
			if result.TxHash, err = result.Call.Hash(); err != nil {
				return common.Hash{}, err
			}
			return uc.safeGuard.QueueTransaction(ctx, safeGuard, result.Call, description)
		},
	}, params.ActionOptions)
	if err != nil {
		return nil, err
	}
	result.ActionResult = res
	return result, nil
}

// eta is computed at submission so the delay is counted from the latest block
func (uc *RequestPayment) eta(ctx context.Context, safeGuard common.Address) (time.Time, error) {
	timelock, err := resolveTimelock(ctx, uc.config, uc.safeGuard, safeGuard)
	if err != nil {
		return time.Time{}, err
	}
	delay, err := uc.timelock.Delay(ctx, timelock)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to read timelock delay: %w", err)
	}
	blockTime, err := uc.chain.LatestBlockTime(ctx)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to read latest block: %w", err)
	}
	return blockTime.Add(delay).Add(uc.config.Actions.EtaMargin).Truncate(time.Second), nil
}

func parsePositiveAmount(value string) (*big.Int, error) {
	amount, err := domain.ParseEther(value)
	if err != nil {
		return nil, err
	}
	if amount.Sign() <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", domain.ErrInvalidAmount)
	}
	return amount, nil
}
