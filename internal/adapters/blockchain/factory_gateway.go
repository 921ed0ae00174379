package blockchain

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/failsafe-org/safeguard-cli/internal/domain/bindings"
	"github.com/failsafe-org/safeguard-cli/internal/domain/models"
	"github.com/failsafe-org/safeguard-cli/internal/usecase"
	"github.com/samber/lo"
)

// FactoryGateway lists and deploys safes through the factory
type FactoryGateway struct {
	client   *Client
	contract *bindings.Factory
}

// NewFactoryGateway creates a new factory gateway
func NewFactoryGateway(client *Client) *FactoryGateway {
	return &FactoryGateway{
		client:   client,
		contract: bindings.NewFactory(),
	}
}

func (g *FactoryGateway) query(factory common.Address, kind models.SafeKind) ethereum.FilterQuery {
	event := bindings.FactorySafeGuardCreatedEventName
	if kind == models.SafeKindFailSafe {
		event = bindings.FactoryRolManagerCreatedEventName
	}
	return ethereum.FilterQuery{
		Addresses: []common.Address{factory},
		Topics:    [][]common.Hash{{g.contract.EventID(event)}},
	}
}

// Safes returns every creation event of the given kind
func (g *FactoryGateway) Safes(ctx context.Context, factory common.Address, kind models.SafeKind) (*usecase.EventBatch[models.Safe], error) {
	return collectLogs(ctx, g.client, g.query(factory, kind), g.decoder(kind))
}

// SubscribeSafes streams new creation events of the given kind
func (g *FactoryGateway) SubscribeSafes(ctx context.Context, factory common.Address, kind models.SafeKind, sink chan<- models.Safe) (ethereum.Subscription, error) {
	return subscribeLogs(ctx, g.client, g.query(factory, kind), g.decoder(kind), sink)
}

func (g *FactoryGateway) decoder(kind models.SafeKind) logDecoder[models.Safe] {
	return func(log *types.Log) (models.Safe, error) {
		ev, err := g.contract.UnpackSafeCreatedEvent(log)
		if err != nil {
			return models.Safe{}, err
		}
		return models.Safe{
			Kind:        kind,
			Name:        ev.SafeName,
			Address:     ev.SafeGuardAddress,
			Timelock:    ev.TimelockAddress,
			Admin:       ev.Admin,
			BlockNumber: log.BlockNumber,
			CreationTx:  log.TxHash,
		}, nil
	}
}

// CreateSafeGuard submits createSafeGuard
func (g *FactoryGateway) CreateSafeGuard(ctx context.Context, factory common.Address, spec models.SafeGuardSpec) (common.Hash, error) {
	roles := lo.Map(spec.Assignments, func(a models.RoleAssignment, _ int) [32]byte { return a.Role.ID() })
	assignees := lo.Map(spec.Assignments, func(a models.RoleAssignment, _ int) common.Address { return a.Address })

	data, err := g.contract.PackCreateSafeGuard(delaySeconds(spec.Delay), spec.Name, spec.Admin, roles, assignees)
	if err != nil {
		return common.Hash{}, err
	}
	return g.client.transact(ctx, factory, data)
}

// CreateFailSafe submits createFailSafe
func (g *FactoryGateway) CreateFailSafe(ctx context.Context, factory common.Address, name string, delay time.Duration) (common.Hash, error) {
	data, err := g.contract.PackCreateFailSafe(delaySeconds(delay), name)
	if err != nil {
		return common.Hash{}, err
	}
	return g.client.transact(ctx, factory, data)
}

func delaySeconds(d time.Duration) *big.Int {
	return big.NewInt(int64(d / time.Second))
}

var _ usecase.FactoryGateway = (*FactoryGateway)(nil)
