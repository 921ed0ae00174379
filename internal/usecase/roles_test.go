package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/failsafe-org/safeguard-cli/internal/domain/models"
	"github.com/failsafe-org/safeguard-cli/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	alice = common.HexToAddress("0x00000000000000000000000000000000000a11ce")
	bob   = common.HexToAddress("0x0000000000000000000000000000000000000b0b")
)

func noMembers(sg *MockSafeGuardGateway, roles ...models.Role) {
	for _, role := range roles {
		sg.On("RoleMemberCount", mock.Anything, testSafeGuard, role.ID()).Return(uint64(0), nil)
	}
}

func TestListRoles(t *testing.T) {
	t.Run("duplicate grants collapse to one membership", func(t *testing.T) {
		sg := new(MockSafeGuardGateway)
		sg.On("RoleMemberCount", mock.Anything, testSafeGuard, models.RoleProposer.ID()).Return(uint64(3), nil)
		sg.On("RoleMember", mock.Anything, testSafeGuard, models.RoleProposer.ID(), uint64(0)).Return(bob, nil)
		sg.On("RoleMember", mock.Anything, testSafeGuard, models.RoleProposer.ID(), uint64(1)).Return(alice, nil)
		sg.On("RoleMember", mock.Anything, testSafeGuard, models.RoleProposer.ID(), uint64(2)).Return(bob, nil)
		sg.On("RoleMemberCount", mock.Anything, testSafeGuard, models.RoleExecutor.ID()).Return(uint64(1), nil)
		sg.On("RoleMember", mock.Anything, testSafeGuard, models.RoleExecutor.ID(), uint64(0)).Return(bob, nil)
		noMembers(sg, models.RoleCanceler)

		uc := usecase.NewListRoles(testConfig(), sg, usecase.NopProgress{})
		result, err := uc.Run(context.Background(), usecase.ListRolesParams{})
		require.NoError(t, err)

		require.Len(t, result.Roles, 3)
		byRole := result.ByRole()
		assert.Equal(t, []common.Address{bob, alice}, byRole[models.RoleProposer])
		assert.Equal(t, []common.Address{bob}, byRole[models.RoleExecutor])
		assert.Empty(t, byRole[models.RoleCanceler])
	})
}

func TestWatchRoles_RevokeRemovesMember(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sg := new(MockSafeGuardGateway)
	sub := newFakeSubscription()
	var sink chan<- models.RoleChange
	sg.On("SubscribeRoleChanges", mock.Anything, testSafeGuard, mock.Anything).
		Run(func(args mock.Arguments) { sink = args.Get(2).(chan<- models.RoleChange) }).
		Return(sub, nil)

	sg.On("RoleMemberCount", mock.Anything, testSafeGuard, models.RoleProposer.ID()).Return(uint64(2), nil).Once()
	sg.On("RoleMemberCount", mock.Anything, testSafeGuard, models.RoleProposer.ID()).Return(uint64(1), nil)
	sg.On("RoleMember", mock.Anything, testSafeGuard, models.RoleProposer.ID(), uint64(0)).Return(alice, nil)
	sg.On("RoleMember", mock.Anything, testSafeGuard, models.RoleProposer.ID(), uint64(1)).Return(bob, nil)
	noMembers(sg, models.RoleExecutor, models.RoleCanceler)

	cfg := testConfig()
	list := usecase.NewListRoles(cfg, sg, usecase.NopProgress{})
	w, err := usecase.NewWatchRoles(cfg, list, sg, discardLogger()).Start(ctx, usecase.ListRolesParams{})
	require.NoError(t, err)
	defer w.Close()

	initial := <-w.Updates()
	assert.Equal(t, []common.Address{bob, alice}, initial.ByRole()[models.RoleProposer])

	sink <- models.RoleChange{RoleID: models.RoleProposer.ID(), Account: bob, Granted: false}

	select {
	case next := <-w.Updates():
		assert.Equal(t, []common.Address{alice}, next.ByRole()[models.RoleProposer])
	case <-ctx.Done():
		t.Fatal("no update after revoke")
	}

	w.Close()
	assert.True(t, sub.isUnsubscribed())
}

func TestCallerRoles(t *testing.T) {
	sg := new(MockSafeGuardGateway)
	sg.On("HasRole", mock.Anything, testSafeGuard, models.RoleProposer.ID(), testSender).Return(true, nil)
	sg.On("HasRole", mock.Anything, testSafeGuard, models.RoleExecutor.ID(), testSender).Return(false, nil)
	sg.On("HasRole", mock.Anything, testSafeGuard, models.RoleCanceler.ID(), testSender).Return(true, nil)
	sg.On("HasRole", mock.Anything, testSafeGuard, models.RoleAdmin.ID(), testSender).Return(false, nil)

	uc := usecase.NewCallerRoles(testConfig(), sg, staticSigner{address: testSender})
	result, err := uc.Run(context.Background(), usecase.CallerRolesParams{})
	require.NoError(t, err)

	assert.Equal(t, []models.Role{models.RoleProposer, models.RoleCanceler}, result.Roles)
	assert.True(t, result.Has(models.RoleCanceler))
	assert.False(t, result.Has(models.RoleAdmin))
}
