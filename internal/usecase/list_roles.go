package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/ethereum/go-ethereum/common"
	"github.com/failsafe-org/safeguard-cli/internal/domain/config"
	"github.com/failsafe-org/safeguard-cli/internal/domain/models"
	"github.com/samber/lo"
)

// ListRolesParams contains parameters for listing role members
type ListRolesParams struct {
	SafeGuard common.Address
}

// RoleListResult contains the role memberships of a SafeGuard
type RoleListResult struct {
	SafeGuard common.Address
	Roles     []models.GrantedRole
}

// ByRole groups members per role
func (r *RoleListResult) ByRole() map[models.Role][]common.Address {
	grouped := lo.GroupBy(r.Roles, func(g models.GrantedRole) models.Role { return g.Role })
	return lo.MapValues(grouped, func(members []models.GrantedRole, _ models.Role) []common.Address {
		return lo.Map(members, func(g models.GrantedRole, _ int) common.Address { return g.Address })
	})
}

// ListRoles enumerates proposers, executors and cancelers
type ListRoles struct {
	config    *config.RuntimeConfig
	safeGuard SafeGuardGateway
	sink      ProgressSink
}

// NewListRoles creates a new ListRoles use case
func NewListRoles(cfg *config.RuntimeConfig, safeGuard SafeGuardGateway, sink ProgressSink) *ListRoles {
	return &ListRoles{
		config:    cfg,
		safeGuard: safeGuard,
		sink:      sink,
	}
}

// Run executes the list roles use case
func (uc *ListRoles) Run(ctx context.Context, params ListRolesParams) (*RoleListResult, error) {
	safeGuard, err := resolveSafeGuard(uc.config, params.SafeGuard)
	if err != nil {
		return nil, err
	}

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   StageLoading,
		Message: "Loading role members",
		Spinner: true,
	})
	defer uc.sink.OnProgress(ctx, ProgressEvent{Stage: StageCompleted})

	roles, err := uc.enumerate(ctx, safeGuard)
	if err != nil {
		return nil, err
	}
	return &RoleListResult{SafeGuard: safeGuard, Roles: roles}, nil
}

func (uc *ListRoles) enumerate(ctx context.Context, safeGuard common.Address) ([]models.GrantedRole, error) {
	var granted []models.GrantedRole
	for _, role := range models.MemberRoles() {
		roleID := role.ID()
		count, err := uc.safeGuard.RoleMemberCount(ctx, safeGuard, roleID)
		if err != nil {
			return nil, fmt.Errorf("failed to count %s members: %w", role, err)
		}
		for i := uint64(0); i < count; i++ {
			member, err := uc.safeGuard.RoleMember(ctx, safeGuard, roleID, i)
			if err != nil {
				return nil, fmt.Errorf("failed to read %s member %d: %w", role, i, err)
			}
			granted = append(granted, models.GrantedRole{Address: member, RoleID: roleID, Role: role})
		}
	}

	// Membership is a set keyed by (address, role)
	granted = lo.UniqBy(granted, func(g models.GrantedRole) string {
		return g.Address.Hex() + g.RoleID.Hex()
	})
	sort.SliceStable(granted, func(i, j int) bool {
		if granted[i].Role != granted[j].Role {
			return roleOrder(granted[i].Role) < roleOrder(granted[j].Role)
		}
		return granted[i].Address.Cmp(granted[j].Address) < 0
	})
	return granted, nil
}

func roleOrder(r models.Role) int {
	return lo.IndexOf(models.AllRoles(), r)
}

// RoleWatch is a live role membership view
type RoleWatch struct {
	*watchHandle[*RoleListResult]
	SafeGuard common.Address
}

// WatchRoles refreshes the full membership list on every role change
type WatchRoles struct {
	config    *config.RuntimeConfig
	list      *ListRoles
	safeGuard SafeGuardGateway
	log       *slog.Logger
}

// NewWatchRoles creates a new WatchRoles use case
func NewWatchRoles(cfg *config.RuntimeConfig, list *ListRoles, safeGuard SafeGuardGateway, log *slog.Logger) *WatchRoles {
	return &WatchRoles{
		config:    cfg,
		list:      list,
		safeGuard: safeGuard,
		log:       log.With("component", "roles-watch"),
	}
}

// Start subscribes to RoleGranted/RoleRevoked and emits the initial membership
func (uc *WatchRoles) Start(ctx context.Context, params ListRolesParams) (*RoleWatch, error) {
	safeGuard, err := resolveSafeGuard(uc.config, params.SafeGuard)
	if err != nil {
		return nil, err
	}

	changes := make(chan models.RoleChange, 16)
	sub, err := uc.safeGuard.SubscribeRoleChanges(ctx, safeGuard, changes)
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to role events: %w", err)
	}

	initial, err := uc.list.enumerate(ctx, safeGuard)
	if err != nil {
		unsubscribeAll(sub)
		return nil, err
	}

	w := &RoleWatch{watchHandle: newWatchHandle[*RoleListResult](sub), SafeGuard: safeGuard}
	w.updates <- &RoleListResult{SafeGuard: safeGuard, Roles: initial}

	w.run(func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-w.done:
				return
			case err := <-sub.Err():
				if err != nil {
					w.fail(fmt.Errorf("role subscription: %w", err))
				}
				return
			case change := <-changes:
				uc.log.Debug("role changed", "account", change.Account.Hex(), "role", change.RoleID.Hex(), "granted", change.Granted)
				roles, err := uc.list.enumerate(ctx, safeGuard)
				if err != nil {
					w.fail(err)
					return
				}
				if !w.emit(ctx, &RoleListResult{SafeGuard: safeGuard, Roles: roles}) {
					return
				}
			}
		}
	})

	return w, nil
}

// CallerRolesParams contains parameters for checking the signer's roles
type CallerRolesParams struct {
	SafeGuard common.Address
}

// CallerRolesResult lists the roles held by the signer
type CallerRolesResult struct {
	SafeGuard common.Address `json:"safeguard"`
	Address   common.Address `json:"address"`
	Roles     []models.Role  `json:"roles"`
}

// Has reports whether role is among the held roles
func (r *CallerRolesResult) Has(role models.Role) bool {
	return lo.Contains(r.Roles, role)
}

// CallerRoles reports which roles the configured signer holds
type CallerRoles struct {
	config    *config.RuntimeConfig
	safeGuard SafeGuardGateway
	signer    Signer
}

// NewCallerRoles creates a new CallerRoles use case
func NewCallerRoles(cfg *config.RuntimeConfig, safeGuard SafeGuardGateway, signer Signer) *CallerRoles {
	return &CallerRoles{config: cfg, safeGuard: safeGuard, signer: signer}
}

// Run executes the caller roles use case
func (uc *CallerRoles) Run(ctx context.Context, params CallerRolesParams) (*CallerRolesResult, error) {
	safeGuard, err := resolveSafeGuard(uc.config, params.SafeGuard)
	if err != nil {
		return nil, err
	}
	address, err := uc.signer.Address()
	if err != nil {
		return nil, err
	}

	result := &CallerRolesResult{SafeGuard: safeGuard, Address: address}
	for _, role := range models.AllRoles() {
		ok, err := uc.safeGuard.HasRole(ctx, safeGuard, role.ID(), address)
		if err != nil {
			return nil, fmt.Errorf("failed to check %s role: %w", role, err)
		}
		if ok {
			result.Roles = append(result.Roles, role)
		}
	}
	return result, nil
}
