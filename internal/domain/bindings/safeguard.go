package bindings

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind/v2"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// SafeGuardMetaData contains the parts of the SafeGuard ABI used by the CLI.
var SafeGuardMetaData = bind.MetaData{
	ABI: `[
	{"type":"event","name":"QueueTransactionWithDescription","anonymous":false,"inputs":[
		{"name":"txHash","type":"bytes32","indexed":true},
		{"name":"target","type":"address","indexed":true},
		{"name":"value","type":"uint256","indexed":false},
		{"name":"signature","type":"string","indexed":false},
		{"name":"data","type":"bytes","indexed":false},
		{"name":"eta","type":"uint256","indexed":false},
		{"name":"description","type":"string","indexed":false}]},
	{"type":"event","name":"RoleGranted","anonymous":false,"inputs":[
		{"name":"role","type":"bytes32","indexed":true},
		{"name":"account","type":"address","indexed":true},
		{"name":"sender","type":"address","indexed":true}]},
	{"type":"event","name":"RoleRevoked","anonymous":false,"inputs":[
		{"name":"role","type":"bytes32","indexed":true},
		{"name":"account","type":"address","indexed":true},
		{"name":"sender","type":"address","indexed":true}]},
	{"type":"function","name":"queueTransactionWithDescription","stateMutability":"nonpayable","inputs":[
		{"name":"target","type":"address"},
		{"name":"value","type":"uint256"},
		{"name":"signature","type":"string"},
		{"name":"data","type":"bytes"},
		{"name":"eta","type":"uint256"},
		{"name":"description","type":"string"}],"outputs":[{"name":"","type":"bytes32"}]},
	{"type":"function","name":"cancelTransaction","stateMutability":"nonpayable","inputs":[
		{"name":"target","type":"address"},
		{"name":"value","type":"uint256"},
		{"name":"signature","type":"string"},
		{"name":"data","type":"bytes"},
		{"name":"eta","type":"uint256"}],"outputs":[]},
	{"type":"function","name":"executeTransaction","stateMutability":"payable","inputs":[
		{"name":"target","type":"address"},
		{"name":"value","type":"uint256"},
		{"name":"signature","type":"string"},
		{"name":"data","type":"bytes"},
		{"name":"eta","type":"uint256"}],"outputs":[{"name":"","type":"bytes"}]},
	{"type":"function","name":"grantRole","stateMutability":"nonpayable","inputs":[
		{"name":"role","type":"bytes32"},
		{"name":"account","type":"address"}],"outputs":[]},
	{"type":"function","name":"revokeRole","stateMutability":"nonpayable","inputs":[
		{"name":"role","type":"bytes32"},
		{"name":"account","type":"address"}],"outputs":[]},
	{"type":"function","name":"hasRole","stateMutability":"view","inputs":[
		{"name":"role","type":"bytes32"},
		{"name":"account","type":"address"}],"outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"getRoleMemberCount","stateMutability":"view","inputs":[
		{"name":"role","type":"bytes32"}],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"getRoleMember","stateMutability":"view","inputs":[
		{"name":"role","type":"bytes32"},
		{"name":"index","type":"uint256"}],"outputs":[{"name":"","type":"address"}]},
	{"type":"function","name":"timelock","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address"}]}
]`,
	ID: "SafeGuard",
}

const (
	SafeGuardQueueTransactionWithDescriptionEventName = "QueueTransactionWithDescription"
	SafeGuardRoleGrantedEventName                     = "RoleGranted"
	SafeGuardRoleRevokedEventName                     = "RoleRevoked"
)

// SafeGuard is the role-gated front of a timelock
type SafeGuard struct {
	contract
}

// NewSafeGuard creates a new instance of SafeGuard.
func NewSafeGuard() *SafeGuard {
	return &SafeGuard{contract: mustParse(&SafeGuardMetaData)}
}

// QueueTransactionWithDescriptionEventID is topic0 of queue events
func (sg *SafeGuard) QueueTransactionWithDescriptionEventID() common.Hash {
	return sg.mustEventID(SafeGuardQueueTransactionWithDescriptionEventName)
}

// RoleGrantedEventID is topic0 of RoleGranted
func (sg *SafeGuard) RoleGrantedEventID() common.Hash {
	return sg.mustEventID(SafeGuardRoleGrantedEventName)
}

// RoleRevokedEventID is topic0 of RoleRevoked
func (sg *SafeGuard) RoleRevokedEventID() common.Hash {
	return sg.mustEventID(SafeGuardRoleRevokedEventName)
}

// SafeGuardQueueTransactionWithDescription represents a QueueTransactionWithDescription event.
type SafeGuardQueueTransactionWithDescription struct {
	TxHash      [32]byte
	Target      common.Address
	Value       *big.Int
	Signature   string
	Data        []byte
	Eta         *big.Int
	Description string
	Raw         *types.Log // Blockchain specific contextual infos
}

// ContractEventName returns the user-defined event name.
func (SafeGuardQueueTransactionWithDescription) ContractEventName() string {
	return SafeGuardQueueTransactionWithDescriptionEventName
}

// UnpackQueueTransactionWithDescriptionEvent unpacks a queue event.
//
// Solidity: event QueueTransactionWithDescription(bytes32 indexed txHash, address indexed target, uint256 value, string signature, bytes data, uint256 eta, string description)
func (sg *SafeGuard) UnpackQueueTransactionWithDescriptionEvent(log *types.Log) (*SafeGuardQueueTransactionWithDescription, error) {
	out := new(SafeGuardQueueTransactionWithDescription)
	if err := sg.unpackEvent(out, SafeGuardQueueTransactionWithDescriptionEventName, log); err != nil {
		return nil, err
	}
	out.Raw = log
	return out, nil
}

// SafeGuardRoleChanged represents a RoleGranted or RoleRevoked event.
type SafeGuardRoleChanged struct {
	Role    [32]byte
	Account common.Address
	Sender  common.Address
	Granted bool
	Raw     *types.Log // Blockchain specific contextual infos
}

// UnpackRoleChangedEvent unpacks either RoleGranted or RoleRevoked.
//
// Solidity: event RoleGranted(bytes32 indexed role, address indexed account, address indexed sender)
func (sg *SafeGuard) UnpackRoleChangedEvent(log *types.Log) (*SafeGuardRoleChanged, error) {
	if len(log.Topics) == 0 {
		return nil, ErrEventMismatch
	}
	event := SafeGuardRoleRevokedEventName
	if log.Topics[0] == sg.RoleGrantedEventID() {
		event = SafeGuardRoleGrantedEventName
	}
	out := new(SafeGuardRoleChanged)
	if err := sg.unpackEvent(out, event, log); err != nil {
		return nil, err
	}
	out.Granted = event == SafeGuardRoleGrantedEventName
	out.Raw = log
	return out, nil
}

// PackQueueTransactionWithDescription is the Go binding used to pack the parameters required for calling
// the contract method queueTransactionWithDescription.
//
// Solidity: function queueTransactionWithDescription(address target, uint256 value, string signature, bytes data, uint256 eta, string description) returns(bytes32)
func (sg *SafeGuard) PackQueueTransactionWithDescription(target common.Address, value *big.Int, signature string, data []byte, eta *big.Int, description string) ([]byte, error) {
	return sg.pack("queueTransactionWithDescription", target, value, signature, data, eta, description)
}

// PackCancelTransaction packs cancelTransaction(address,uint256,string,bytes,uint256)
func (sg *SafeGuard) PackCancelTransaction(target common.Address, value *big.Int, signature string, data []byte, eta *big.Int) ([]byte, error) {
	return sg.pack("cancelTransaction", target, value, signature, data, eta)
}

// PackExecuteTransaction packs executeTransaction(address,uint256,string,bytes,uint256)
func (sg *SafeGuard) PackExecuteTransaction(target common.Address, value *big.Int, signature string, data []byte, eta *big.Int) ([]byte, error) {
	return sg.pack("executeTransaction", target, value, signature, data, eta)
}

// PackGrantRole packs grantRole(bytes32,address)
func (sg *SafeGuard) PackGrantRole(role [32]byte, account common.Address) ([]byte, error) {
	return sg.pack("grantRole", role, account)
}

// PackRevokeRole packs revokeRole(bytes32,address)
func (sg *SafeGuard) PackRevokeRole(role [32]byte, account common.Address) ([]byte, error) {
	return sg.pack("revokeRole", role, account)
}

// PackHasRole packs hasRole(bytes32,address)
func (sg *SafeGuard) PackHasRole(role [32]byte, account common.Address) ([]byte, error) {
	return sg.pack("hasRole", role, account)
}

// UnpackHasRole decodes the hasRole result
func (sg *SafeGuard) UnpackHasRole(output []byte) (bool, error) {
	return unpackOne[bool](sg.contract, "hasRole", output)
}

// PackGetRoleMemberCount packs getRoleMemberCount(bytes32)
func (sg *SafeGuard) PackGetRoleMemberCount(role [32]byte) ([]byte, error) {
	return sg.pack("getRoleMemberCount", role)
}

// UnpackGetRoleMemberCount decodes the getRoleMemberCount result
func (sg *SafeGuard) UnpackGetRoleMemberCount(output []byte) (*big.Int, error) {
	return unpackOne[*big.Int](sg.contract, "getRoleMemberCount", output)
}

// PackGetRoleMember packs getRoleMember(bytes32,uint256)
func (sg *SafeGuard) PackGetRoleMember(role [32]byte, index *big.Int) ([]byte, error) {
	return sg.pack("getRoleMember", role, index)
}

// UnpackGetRoleMember decodes the getRoleMember result
func (sg *SafeGuard) UnpackGetRoleMember(output []byte) (common.Address, error) {
	return unpackOne[common.Address](sg.contract, "getRoleMember", output)
}

// PackTimelock packs timelock()
func (sg *SafeGuard) PackTimelock() ([]byte, error) {
	return sg.pack("timelock")
}

// UnpackTimelock decodes the timelock() result
func (sg *SafeGuard) UnpackTimelock(output []byte) (common.Address, error) {
	return unpackOne[common.Address](sg.contract, "timelock", output)
}
