package models

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Role is a named capability granted per address on a SafeGuard
type Role string

const (
	RoleProposer Role = "proposer"
	RoleExecutor Role = "executor"
	RoleCanceler Role = "canceler"
	RoleAdmin    Role = "admin"
)

var (
	proposerRoleID = crypto.Keccak256Hash([]byte("PROPOSER_ROLE"))
	executorRoleID = crypto.Keccak256Hash([]byte("EXECUTOR_ROLE"))
	cancelerRoleID = crypto.Keccak256Hash([]byte("CANCELER_ROLE"))
	// DEFAULT_ADMIN_ROLE is bytes32(0)
	adminRoleID = common.Hash{}
)

// ID returns the on-chain bytes32 role identifier
func (r Role) ID() common.Hash {
	switch r {
	case RoleProposer:
		return proposerRoleID
	case RoleExecutor:
		return executorRoleID
	case RoleCanceler:
		return cancelerRoleID
	default:
		return adminRoleID
	}
}

func (r Role) String() string {
	return string(r)
}

// MemberRoles are the roles enumerated by the role reconciler
func MemberRoles() []Role {
	return []Role{RoleProposer, RoleExecutor, RoleCanceler}
}

// AllRoles includes the admin role
func AllRoles() []Role {
	return []Role{RoleProposer, RoleExecutor, RoleCanceler, RoleAdmin}
}

// RoleFromID maps an on-chain identifier back to its name
func RoleFromID(id common.Hash) (Role, bool) {
	for _, r := range AllRoles() {
		if r.ID() == id {
			return r, true
		}
	}
	return "", false
}

// GrantedRole is one (address, role) membership
type GrantedRole struct {
	Address common.Address `json:"address"`
	RoleID  common.Hash    `json:"roleId"`
	Role    Role           `json:"role"`
}

// RoleChange is a RoleGranted or RoleRevoked event
type RoleChange struct {
	RoleID      common.Hash
	Account     common.Address
	Sender      common.Address
	Granted     bool
	BlockNumber uint64
}
