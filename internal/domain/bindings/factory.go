package bindings

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind/v2"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// FactoryMetaData contains the parts of the safe factory ABI used by the CLI.
var FactoryMetaData = bind.MetaData{
	ABI: `[
	{"type":"event","name":"SafeGuardCreated","anonymous":false,"inputs":[
		{"name":"admin","type":"address","indexed":true},
		{"name":"safeGuardAddress","type":"address","indexed":true},
		{"name":"timelockAddress","type":"address","indexed":true},
		{"name":"safeName","type":"string","indexed":false}]},
	{"type":"event","name":"RolManagerCreated","anonymous":false,"inputs":[
		{"name":"admin","type":"address","indexed":true},
		{"name":"safeGuardAddress","type":"address","indexed":true},
		{"name":"timelockAddress","type":"address","indexed":true},
		{"name":"safeName","type":"string","indexed":false}]},
	{"type":"function","name":"createSafeGuard","stateMutability":"nonpayable","inputs":[
		{"name":"delay","type":"uint256"},
		{"name":"safeGuardName","type":"string"},
		{"name":"admin","type":"address"},
		{"name":"roles","type":"bytes32[]"},
		{"name":"rolesAssignees","type":"address[]"}],"outputs":[{"name":"","type":"address"}]},
	{"type":"function","name":"createFailSafe","stateMutability":"nonpayable","inputs":[
		{"name":"delay","type":"uint256"},
		{"name":"safeName","type":"string"}],"outputs":[{"name":"","type":"address"}]}
]`,
	ID: "Factory",
}

const (
	FactorySafeGuardCreatedEventName  = "SafeGuardCreated"
	FactoryRolManagerCreatedEventName = "RolManagerCreated"
)

// Factory deploys SafeGuards and legacy FailSafes
type Factory struct {
	contract
}

// NewFactory creates a new instance of Factory.
func NewFactory() *Factory {
	return &Factory{contract: mustParse(&FactoryMetaData)}
}

// EventID returns topic0 of a factory creation event
func (f *Factory) EventID(eventName string) common.Hash {
	return f.mustEventID(eventName)
}

// FactorySafeCreated represents a SafeGuardCreated or RolManagerCreated event.
type FactorySafeCreated struct {
	Admin            common.Address
	SafeGuardAddress common.Address
	TimelockAddress  common.Address
	SafeName         string
	Event            string
	Raw              *types.Log // Blockchain specific contextual infos
}

// UnpackSafeCreatedEvent unpacks a creation event of either kind.
//
// Solidity: event SafeGuardCreated(address indexed admin, address indexed safeGuardAddress, address indexed timelockAddress, string safeName)
func (f *Factory) UnpackSafeCreatedEvent(log *types.Log) (*FactorySafeCreated, error) {
	if len(log.Topics) == 0 {
		return nil, ErrEventMismatch
	}
	event := FactoryRolManagerCreatedEventName
	if log.Topics[0] == f.mustEventID(FactorySafeGuardCreatedEventName) {
		event = FactorySafeGuardCreatedEventName
	}
	out := new(FactorySafeCreated)
	if err := f.unpackEvent(out, event, log); err != nil {
		return nil, err
	}
	out.Event = event
	out.Raw = log
	return out, nil
}

// PackCreateSafeGuard packs createSafeGuard(uint256,string,address,bytes32[],address[])
func (f *Factory) PackCreateSafeGuard(delay *big.Int, name string, admin common.Address, roles [][32]byte, assignees []common.Address) ([]byte, error) {
	return f.pack("createSafeGuard", delay, name, admin, roles, assignees)
}

// PackCreateFailSafe packs createFailSafe(uint256,string)
func (f *Factory) PackCreateFailSafe(delay *big.Int, name string) ([]byte, error) {
	return f.pack("createFailSafe", delay, name)
}
