package usecase

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/failsafe-org/safeguard-cli/internal/domain"
	"github.com/failsafe-org/safeguard-cli/internal/domain/config"
	"github.com/failsafe-org/safeguard-cli/internal/domain/models"
)

// ShowFundsParams contains parameters for showing fund information
type ShowFundsParams struct {
	SafeGuard common.Address
}

// ShowFunds reports the timelock, its token balance, delay and grace period
type ShowFunds struct {
	config    *config.RuntimeConfig
	safeGuard SafeGuardGateway
	timelock  TimelockGateway
	token     TokenGateway
}

// NewShowFunds creates a new ShowFunds use case
func NewShowFunds(cfg *config.RuntimeConfig, safeGuard SafeGuardGateway, timelock TimelockGateway, token TokenGateway) *ShowFunds {
	return &ShowFunds{config: cfg, safeGuard: safeGuard, timelock: timelock, token: token}
}

// Run executes the show funds use case
func (uc *ShowFunds) Run(ctx context.Context, params ShowFundsParams) (*models.FundInfo, error) {
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
	timelock, err := resolveTimelock(ctx, uc.config, uc.safeGuard, safeGuard)
	if err != nil {
		return nil, err
	}

	symbol, err := uc.token.Symbol(ctx, network.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to read token symbol: %w", err)
	}
	balance, err := uc.token.BalanceOf(ctx, network.Token, timelock)
	if err != nil {
		return nil, fmt.Errorf("failed to read timelock balance: %w", err)
	}
	delay, err := uc.timelock.Delay(ctx, timelock)
	if err != nil {
		return nil, fmt.Errorf("failed to read timelock delay: %w", err)
	}
	grace, err := uc.timelock.GracePeriod(ctx, timelock)
	if err != nil {
		return nil, fmt.Errorf("failed to read grace period: %w", err)
	}

	return &models.FundInfo{
		SafeGuard:   safeGuard,
		Timelock:    timelock,
		Token:       network.Token,
		TokenSymbol: symbol,
		Balance:     domain.FormatUnits(balance, domain.EtherDecimals),
		Delay:       delay,
		GracePeriod: grace,
	}, nil
}
