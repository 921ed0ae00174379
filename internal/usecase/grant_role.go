package usecase

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/failsafe-org/safeguard-cli/internal/domain"
	"github.com/failsafe-org/safeguard-cli/internal/domain/config"
	"github.com/failsafe-org/safeguard-cli/internal/domain/models"
)

// RoleChangeParams contains parameters for granting or revoking a role
type RoleChangeParams struct {
	SafeGuard common.Address
	Role      string
	Account   string
	ActionOptions
}

// RoleChangeResult contains the confirmed role change
type RoleChangeResult struct {
	*ActionResult
	Role    models.Role
	Account common.Address
}

// GrantRole grants a role on the SafeGuard. Requires the admin role.
type GrantRole struct {
	config    *config.RuntimeConfig
	safeGuard SafeGuardGateway
	runner    *ActionRunner
}

// NewGrantRole creates a new GrantRole use case
func NewGrantRole(cfg *config.RuntimeConfig, safeGuard SafeGuardGateway, runner *ActionRunner) *GrantRole {
	return &GrantRole{config: cfg, safeGuard: safeGuard, runner: runner}
}

// Run executes the grant role use case
func (uc *GrantRole) Run(ctx context.Context, params RoleChangeParams) (*RoleChangeResult, error) {
	safeGuard, role, account, err := parseRoleChange(uc.config, params)
	if err != nil {
		return nil, err
	}

	res, err := uc.runner.run(ctx, actionSpec{
		Kind:         models.ActionGrantRole,
		SafeGuard:    safeGuard,
		RequiredRole: models.RoleAdmin,
		Summary:      fmt.Sprintf("Grant %s role to %s on %s", role, account.Hex(), safeGuard.Hex()),
		Success:      "Role granted!",
		Submit: func(ctx context.Context) (common.Hash, error) {
			return uc.safeGuard.GrantRole(ctx, safeGuard, role.ID(), account)
		},
	}, params.ActionOptions)
	if err != nil {
		return nil, err
	}
	return &RoleChangeResult{ActionResult: res, Role: role, Account: account}, nil
}

func parseRoleChange(cfg *config.RuntimeConfig, params RoleChangeParams) (common.Address, models.Role, common.Address, error) {
	safeGuard, err := resolveSafeGuard(cfg, params.SafeGuard)
	if err != nil {
		return common.Address{}, "", common.Address{}, err
	}
	if params.Role == "" {
		return common.Address{}, "", common.Address{}, domain.ValidationError{Field: "role", Reason: "is required"}
	}
	role, err := domain.ParseRole(params.Role)
	if err != nil {
		return common.Address{}, "", common.Address{}, err
	}
	account, err := parseAddressField("account", params.Account)
	if err != nil {
		return common.Address{}, "", common.Address{}, err
	}
	return safeGuard, role, account, nil
}
