package usecase

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/failsafe-org/safeguard-cli/internal/domain/config"
	"github.com/failsafe-org/safeguard-cli/internal/domain/models"
)

// RevokeRole revokes a role on the SafeGuard. Requires the admin role.
type RevokeRole struct {
	config    *config.RuntimeConfig
	safeGuard SafeGuardGateway
	runner    *ActionRunner
}

// NewRevokeRole creates a new RevokeRole use case
func NewRevokeRole(cfg *config.RuntimeConfig, safeGuard SafeGuardGateway, runner *ActionRunner) *RevokeRole {
	return &RevokeRole{config: cfg, safeGuard: safeGuard, runner: runner}
}

// Run executes the revoke role use case
func (uc *RevokeRole) Run(ctx context.Context, params RoleChangeParams) (*RoleChangeResult, error) {
	safeGuard, role, account, err := parseRoleChange(uc.config, params)
	if err != nil {
		return nil, err
	}

	res, err := uc.runner.run(ctx, actionSpec{
		Kind:         models.ActionRevokeRole,
		SafeGuard:    safeGuard,
		RequiredRole: models.RoleAdmin,
		Summary:      fmt.Sprintf("Revoke %s role from %s on %s", role, account.Hex(), safeGuard.Hex()),
		Success:      "Role revoked!",
		Submit: func(ctx context.Context) (common.Hash, error) {
			return uc.safeGuard.RevokeRole(ctx, safeGuard, role.ID(), account)
		},
	}, params.ActionOptions)
	if err != nil {
		return nil, err
	}
	return &RoleChangeResult{ActionResult: res, Role: role, Account: account}, nil
}
