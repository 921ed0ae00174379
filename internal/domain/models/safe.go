package models

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// SafeKind distinguishes the two factory products
type SafeKind string

const (
	SafeKindSafeGuard SafeKind = "safeguard"
	SafeKindFailSafe  SafeKind = "failsafe"
)

// Safe is a guarded safe created through the factory. Immutable once created.
type Safe struct {
	Kind        SafeKind       `json:"kind"`
	Name        string         `json:"name"`
	Address     common.Address `json:"address"`
	Timelock    common.Address `json:"timelock"`
	Admin       common.Address `json:"admin"`
	Delay       time.Duration  `json:"delay"`
	BlockNumber uint64         `json:"blockNumber"`
	CreationTx  common.Hash    `json:"creationTx"`
}

// RoleAssignment assigns a role to an address at SafeGuard creation
type RoleAssignment struct {
	Role    Role
	Address common.Address
}

// SafeGuardSpec holds the createSafeGuard arguments
type SafeGuardSpec struct {
	Name        string
	Delay       time.Duration
	Admin       common.Address
	Assignments []RoleAssignment
}

// FundInfo describes the token holdings behind a SafeGuard
type FundInfo struct {
	SafeGuard   common.Address `json:"safeguard"`
	Timelock    common.Address `json:"timelock"`
	Token       common.Address `json:"token"`
	TokenSymbol string         `json:"tokenSymbol"`
	Balance     string         `json:"balance"`
	Delay       time.Duration  `json:"delay"`
	GracePeriod time.Duration  `json:"gracePeriod"`
}
