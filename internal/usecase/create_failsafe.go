package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/failsafe-org/safeguard-cli/internal/domain/config"
	"github.com/failsafe-org/safeguard-cli/internal/domain/models"
)

// CreateFailSafeParams contains parameters for deploying a legacy FailSafe
type CreateFailSafeParams struct {
	Name  string
	Delay time.Duration
	ActionOptions
}

// CreateFailSafe deploys a FailSafe through the factory
type CreateFailSafe struct {
	config  *config.RuntimeConfig
	factory FactoryGateway
	runner  *ActionRunner
}

// NewCreateFailSafe creates a new CreateFailSafe use case
func NewCreateFailSafe(cfg *config.RuntimeConfig, factory FactoryGateway, runner *ActionRunner) *CreateFailSafe {
	return &CreateFailSafe{config: cfg, factory: factory, runner: runner}
}

// Run executes the create failsafe use case
func (uc *CreateFailSafe) Run(ctx context.Context, params CreateFailSafeParams) (*CreateSafeResult, error) {
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

	res, err := uc.runner.run(ctx, actionSpec{
		Kind:    models.ActionCreateFailSafe,
		Summary: fmt.Sprintf("Create FailSafe %q with delay %s", name, params.Delay),
		Success: "FailSafe created!",
		Submit: func(ctx context.Context) (common.Hash, error) {
			return uc.factory.CreateFailSafe(ctx, network.Factory, name, params.Delay)
		},
	}, params.ActionOptions)
	if err != nil {
		return nil, err
	}
	return &CreateSafeResult{ActionResult: res, Name: name, Delay: params.Delay}, nil
}
