package config

import (
	"context"

	"github.com/failsafe-org/safeguard-cli/internal/config"
	domainconfig "github.com/failsafe-org/safeguard-cli/internal/domain/config"
	"github.com/failsafe-org/safeguard-cli/internal/usecase"
)

// NetworkResolverAdapter resolves networks declared in safeguard.toml
type NetworkResolverAdapter struct {
	projectRoot string
}

// NewNetworkResolverAdapter creates a new adapter
func NewNetworkResolverAdapter(cfg *domainconfig.RuntimeConfig) *NetworkResolverAdapter {
	return &NetworkResolverAdapter{
		projectRoot: cfg.ProjectRoot,
	}
}

// GetNetworks returns all configured network names
func (a *NetworkResolverAdapter) GetNetworks(ctx context.Context) []string {
	names, err := config.ProjectNetworkNames(a.projectRoot)
	if err != nil {
		return nil
	}
	return names
}

// ResolveNetwork resolves a network name to its configuration
func (a *NetworkResolverAdapter) ResolveNetwork(ctx context.Context, networkName string) (*domainconfig.Network, error) {
	return config.ResolveProjectNetwork(a.projectRoot, networkName)
}

// Ensure the adapter implements the interface
var _ usecase.NetworkResolver = (*NetworkResolverAdapter)(nil)
