package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/failsafe-org/safeguard-cli/internal/domain"
	"github.com/failsafe-org/safeguard-cli/internal/domain/config"
	"github.com/failsafe-org/safeguard-cli/internal/domain/models"
)

// CreateSafeGuardParams contains parameters for deploying a SafeGuard
type CreateSafeGuardParams struct {
	Name  string
	Delay time.Duration
	// Assignments are "role=address" pairs
	Assignments []string
	ActionOptions
}

// CreateSafeResult contains the confirmed factory call
type CreateSafeResult struct {
	*ActionResult
	Name  string
	Delay time.Duration
}

// CreateSafeGuard deploys a SafeGuard with its timelock through the factory.
// The signer becomes admin.
type CreateSafeGuard struct {
	config  *config.RuntimeConfig
	factory FactoryGateway
	runner  *ActionRunner
}

// NewCreateSafeGuard creates a new CreateSafeGuard use case
func NewCreateSafeGuard(cfg *config.RuntimeConfig, factory FactoryGateway, runner *ActionRunner) *CreateSafeGuard {
	return &CreateSafeGuard{config: cfg, factory: factory, runner: runner}
}

// Run executes the create safeguard use case
func (uc *CreateSafeGuard) Run(ctx context.Context, params CreateSafeGuardParams) (*CreateSafeResult, error) {
	network, err := requireNetwork(uc.config)
	if err != nil {
		return nil, err
	}
	if err := requireContract(network.Factory, "factory"); err != nil {
		return nil, err
	}
	name, err := validateSafeParams(params.Name, params.Delay)
	if err != nil {
		return nil, err
	}
	assignments, err := ParseRoleAssignments(params.Assignments)
	if err != nil {
		return nil, err
	}
	admin, err := uc.runner.Sender()
	if err != nil {
		return nil, err
	}

	spec := models.SafeGuardSpec{
		Name:        name,
		Delay:       params.Delay,
		Admin:       admin,
		Assignments: assignments,
	}

	res, err := uc.runner.run(ctx, actionSpec{
		Kind:    models.ActionCreateSafeGuard,
		Summary: fmt.Sprintf("Create SafeGuard %q with delay %s and %d role assignments", name, params.Delay, len(assignments)),
		Success: "SafeGuard created!",
		Submit: func(ctx context.Context) (common.Hash, error) {
			return uc.factory.CreateSafeGuard(ctx, network.Factory, spec)
		},
	}, params.ActionOptions)
	if err != nil {
		return nil, err
	}
	return &CreateSafeResult{ActionResult: res, Name: name, Delay: params.Delay}, nil
}

// ParseRoleAssignments parses "role=address" pairs
func ParseRoleAssignments(values []string) ([]models.RoleAssignment, error) {
	assignments := make([]models.RoleAssignment, 0, len(values))
	for _, value := range values {
		roleName, addr, ok := strings.Cut(value, "=")
		if !ok {
			return nil, domain.ValidationError{Field: "assign", Reason: fmt.Sprintf("%q is not role=address", value)}
		}
		role, err := domain.ParseRole(roleName)
		if err != nil {
			return nil, err
		}
		address, err := parseAddressField("assign", addr)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, models.RoleAssignment{Role: role, Address: address})
	}
	return assignments, nil
}

func validateSafeParams(name string, delay time.Duration) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", domain.ValidationError{Field: "name", Reason: "is required"}
	}
	if delay <= 0 {
		return "", domain.ValidationError{Field: "delay", Reason: "must be positive"}
	}
	if delay%time.Second != 0 {
		return "", domain.ValidationError{Field: "delay", Reason: "must be a whole number of seconds"}
	}
	return name, nil
}
