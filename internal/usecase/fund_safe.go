package usecase

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/failsafe-org/safeguard-cli/internal/domain"
	"github.com/failsafe-org/safeguard-cli/internal/domain/config"
	"github.com/failsafe-org/safeguard-cli/internal/domain/models"
)

// FundSafeParams contains parameters for sending tokens to a SafeGuard's timelock
type FundSafeParams struct {
	SafeGuard common.Address
	Amount    string
	ActionOptions
}

// FundSafeResult contains the confirmed transfer
type FundSafeResult struct {
	*ActionResult
	Timelock common.Address
	Amount   *big.Int
}

// FundSafe transfers tokens from the signer to the timelock holding the funds
type FundSafe struct {
	config    *config.RuntimeConfig
	safeGuard SafeGuardGateway
	token     TokenGateway
	runner    *ActionRunner
}

// NewFundSafe creates a new FundSafe use case
func NewFundSafe(cfg *config.RuntimeConfig, safeGuard SafeGuardGateway, token TokenGateway, runner *ActionRunner) *FundSafe {
	return &FundSafe{config: cfg, safeGuard: safeGuard, token: token, runner: runner}
}

// Run executes the fund safe use case
func (uc *FundSafe) Run(ctx context.Context, params FundSafeParams) (*FundSafeResult, error) {
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
	amount, err := parsePositiveAmount(params.Amount)
	if err != nil {
		return nil, err
	}
	timelock, err := resolveTimelock(ctx, uc.config, uc.safeGuard, safeGuard)
	if err != nil {
		return nil, err
	}

	res, err := uc.runner.run(ctx, actionSpec{
		Kind:      models.ActionFundSafe,
		SafeGuard: safeGuard,
		Summary:   fmt.Sprintf("Send %s tokens to timelock %s", domain.FormatUnits(amount, domain.EtherDecimals), timelock.Hex()),
		Success:   "Funds sent!",
		Submit: func(ctx context.Context) (common.Hash, error) {
			return uc.token.Transfer(ctx, network.Token, timelock, amount)
		},
	}, params.ActionOptions)
	if err != nil {
		return nil, err
	}
	return &FundSafeResult{ActionResult: res, Timelock: timelock, Amount: amount}, nil
}
