package usecase

import (
	"context"
)

// ListNetworksResult contains the result of listing networks
type ListNetworksResult struct {
	Networks []NetworkStatus
	Current  string
}

// NetworkStatus represents the status of a network
type NetworkStatus struct {
	Name       string
	ChainID    uint64
	RPCURL     string
	HasFactory bool
	Error      error
}

// ListNetworks is a use case for listing available networks
type ListNetworks struct {
	resolver NetworkResolver
	store    LocalConfigRepository
}

// NewListNetworks creates a new ListNetworks use case
func NewListNetworks(resolver NetworkResolver, store LocalConfigRepository) *ListNetworks {
	return &ListNetworks{
		resolver: resolver,
		store:    store,
	}
}

// Run executes the use case
func (uc *ListNetworks) Run(ctx context.Context) (*ListNetworksResult, error) {
	networkNames := uc.resolver.GetNetworks(ctx)

	networks := make([]NetworkStatus, 0, len(networkNames))
	for _, name := range networkNames {
		status := NetworkStatus{
			Name: name,
		}

		info, err := uc.resolver.ResolveNetwork(ctx, name)
		if err != nil {
			status.Error = err
		} else {
			status.ChainID = info.ChainID
			status.RPCURL = info.RPCURL
			status.HasFactory = info.Factory != [20]byte{}
		}

		networks = append(networks, status)
	}

	result := &ListNetworksResult{Networks: networks}
	if local, err := uc.store.Load(ctx); err == nil {
		result.Current = local.Network
	}
	return result, nil
}
