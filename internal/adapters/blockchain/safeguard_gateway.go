package blockchain

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/failsafe-org/safeguard-cli/internal/domain/bindings"
	"github.com/failsafe-org/safeguard-cli/internal/domain/models"
	"github.com/failsafe-org/safeguard-cli/internal/usecase"
)

// SafeGuardGateway talks to SafeGuard contracts
type SafeGuardGateway struct {
	client   *Client
	contract *bindings.SafeGuard
}

// NewSafeGuardGateway creates a new SafeGuard gateway
func NewSafeGuardGateway(client *Client) *SafeGuardGateway {
	return &SafeGuardGateway{
		client:   client,
		contract: bindings.NewSafeGuard(),
	}
}

// Timelock returns the timelock owned by the SafeGuard
func (g *SafeGuardGateway) Timelock(ctx context.Context, safeGuard common.Address) (common.Address, error) {
	data, err := g.contract.PackTimelock()
	if err != nil {
		return common.Address{}, err
	}
	out, err := g.client.call(ctx, safeGuard, data)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to call timelock(): %w", err)
	}
	return g.contract.UnpackTimelock(out)
}

func (g *SafeGuardGateway) queuedQuery(safeGuard common.Address) ethereum.FilterQuery {
	return ethereum.FilterQuery{
		Addresses: []common.Address{safeGuard},
		Topics:    [][]common.Hash{{g.contract.QueueTransactionWithDescriptionEventID()}},
	}
}

// QueuedTransactions returns every QueueTransactionWithDescription event of the SafeGuard
func (g *SafeGuardGateway) QueuedTransactions(ctx context.Context, safeGuard common.Address) (*usecase.EventBatch[models.Transaction], error) {
	return collectLogs(ctx, g.client, g.queuedQuery(safeGuard), g.decodeQueued)
}

// SubscribeQueued streams new queue events
func (g *SafeGuardGateway) SubscribeQueued(ctx context.Context, safeGuard common.Address, sink chan<- models.Transaction) (ethereum.Subscription, error) {
	return subscribeLogs(ctx, g.client, g.queuedQuery(safeGuard), g.decodeQueued, sink)
}

func (g *SafeGuardGateway) decodeQueued(log *types.Log) (models.Transaction, error) {
	ev, err := g.contract.UnpackQueueTransactionWithDescriptionEvent(log)
	if err != nil {
		return models.Transaction{}, err
	}
	return models.Transaction{
		TxHash:      ev.TxHash,
		BlockNumber: log.BlockNumber,
		Target:      ev.Target,
		Value:       ev.Value,
		Signature:   ev.Signature,
		Data:        ev.Data,
		Eta:         unixTime(ev.Eta),
		Description: ev.Description,
	}, nil
}

// HasRole checks role membership
func (g *SafeGuardGateway) HasRole(ctx context.Context, safeGuard common.Address, role common.Hash, account common.Address) (bool, error) {
	data, err := g.contract.PackHasRole(role, account)
	if err != nil {
		return false, err
	}
	out, err := g.client.call(ctx, safeGuard, data)
	if err != nil {
		return false, fmt.Errorf("failed to call hasRole(): %w", err)
	}
	return g.contract.UnpackHasRole(out)
}

// RoleMemberCount returns the number of members of a role
func (g *SafeGuardGateway) RoleMemberCount(ctx context.Context, safeGuard common.Address, role common.Hash) (uint64, error) {
	data, err := g.contract.PackGetRoleMemberCount(role)
	if err != nil {
		return 0, err
	}
	out, err := g.client.call(ctx, safeGuard, data)
	if err != nil {
		return 0, fmt.Errorf("failed to call getRoleMemberCount(): %w", err)
	}
	count, err := g.contract.UnpackGetRoleMemberCount(out)
	if err != nil {
		return 0, err
	}
	return count.Uint64(), nil
}

// RoleMember returns the member at index
func (g *SafeGuardGateway) RoleMember(ctx context.Context, safeGuard common.Address, role common.Hash, index uint64) (common.Address, error) {
	data, err := g.contract.PackGetRoleMember(role, new(big.Int).SetUint64(index))
	if err != nil {
		return common.Address{}, err
	}
	out, err := g.client.call(ctx, safeGuard, data)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to call getRoleMember(): %w", err)
	}
	return g.contract.UnpackGetRoleMember(out)
}

// SubscribeRoleChanges streams RoleGranted and RoleRevoked events
func (g *SafeGuardGateway) SubscribeRoleChanges(ctx context.Context, safeGuard common.Address, sink chan<- models.RoleChange) (ethereum.Subscription, error) {
	query := ethereum.FilterQuery{
		Addresses: []common.Address{safeGuard},
		Topics:    [][]common.Hash{{g.contract.RoleGrantedEventID(), g.contract.RoleRevokedEventID()}},
	}
	return subscribeLogs(ctx, g.client, query, func(log *types.Log) (models.RoleChange, error) {
		ev, err := g.contract.UnpackRoleChangedEvent(log)
		if err != nil {
			return models.RoleChange{}, err
		}
		return models.RoleChange{
			RoleID:      ev.Role,
			Account:     ev.Account,
			Sender:      ev.Sender,
			Granted:     ev.Granted,
			BlockNumber: log.BlockNumber,
		}, nil
	}, sink)
}

// QueueTransaction submits queueTransactionWithDescription
func (g *SafeGuardGateway) QueueTransaction(ctx context.Context, safeGuard common.Address, call models.TimelockCall, description string) (common.Hash, error) {
	data, err := g.contract.PackQueueTransactionWithDescription(call.Target, call.ValueOrZero(), call.Signature, call.Data, call.EtaBig(), description)
	if err != nil {
		return common.Hash{}, err
	}
	return g.client.transact(ctx, safeGuard, data)
}

// CancelTransaction submits cancelTransaction
func (g *SafeGuardGateway) CancelTransaction(ctx context.Context, safeGuard common.Address, call models.TimelockCall) (common.Hash, error) {
	data, err := g.contract.PackCancelTransaction(call.Target, call.ValueOrZero(), call.Signature, call.Data, call.EtaBig())
	if err != nil {
		return common.Hash{}, err
	}
	return g.client.transact(ctx, safeGuard, data)
}

// ExecuteTransaction submits executeTransaction
func (g *SafeGuardGateway) ExecuteTransaction(ctx context.Context, safeGuard common.Address, call models.TimelockCall) (common.Hash, error) {
	data, err := g.contract.PackExecuteTransaction(call.Target, call.ValueOrZero(), call.Signature, call.Data, call.EtaBig())
	if err != nil {
		return common.Hash{}, err
	}
	return g.client.transact(ctx, safeGuard, data)
}

// GrantRole submits grantRole
func (g *SafeGuardGateway) GrantRole(ctx context.Context, safeGuard common.Address, role common.Hash, account common.Address) (common.Hash, error) {
	data, err := g.contract.PackGrantRole(role, account)
	if err != nil {
		return common.Hash{}, err
	}
	return g.client.transact(ctx, safeGuard, data)
}

// RevokeRole submits revokeRole
func (g *SafeGuardGateway) RevokeRole(ctx context.Context, safeGuard common.Address, role common.Hash, account common.Address) (common.Hash, error) {
	data, err := g.contract.PackRevokeRole(role, account)
	if err != nil {
		return common.Hash{}, err
	}
	return g.client.transact(ctx, safeGuard, data)
}

func unixTime(seconds *big.Int) time.Time {
	if seconds == nil || !seconds.IsInt64() {
		return time.Time{}
	}
	return time.Unix(seconds.Int64(), 0).UTC()
}

func secondsDuration(seconds *big.Int) time.Duration {
	if seconds == nil || !seconds.IsInt64() {
		return 0
	}
	return time.Duration(seconds.Int64()) * time.Second
}

var _ usecase.SafeGuardGateway = (*SafeGuardGateway)(nil)
