package bindings

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind/v2"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// TimelockMetaData contains the parts of the Compound-style Timelock ABI used by the CLI.
var TimelockMetaData = bind.MetaData{
	ABI: `[
	{"type":"event","name":"QueueTransaction","anonymous":false,"inputs":[
		{"name":"txHash","type":"bytes32","indexed":true},
		{"name":"target","type":"address","indexed":true},
		{"name":"value","type":"uint256","indexed":false},
		{"name":"signature","type":"string","indexed":false},
		{"name":"data","type":"bytes","indexed":false},
		{"name":"eta","type":"uint256","indexed":false}]},
	{"type":"event","name":"CancelTransaction","anonymous":false,"inputs":[
		{"name":"txHash","type":"bytes32","indexed":true},
		{"name":"target","type":"address","indexed":true},
		{"name":"value","type":"uint256","indexed":false},
		{"name":"signature","type":"string","indexed":false},
		{"name":"data","type":"bytes","indexed":false},
		{"name":"eta","type":"uint256","indexed":false}]},
	{"type":"event","name":"ExecuteTransaction","anonymous":false,"inputs":[
		{"name":"txHash","type":"bytes32","indexed":true},
		{"name":"target","type":"address","indexed":true},
		{"name":"value","type":"uint256","indexed":false},
		{"name":"signature","type":"string","indexed":false},
		{"name":"data","type":"bytes","indexed":false},
		{"name":"eta","type":"uint256","indexed":false}]},
	{"type":"function","name":"GRACE_PERIOD","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"delay","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"queuedTransactions","stateMutability":"view","inputs":[
		{"name":"","type":"bytes32"}],"outputs":[{"name":"","type":"bool"}]}
]`,
	ID: "Timelock",
}

const (
	TimelockQueueTransactionEventName   = "QueueTransaction"
	TimelockCancelTransactionEventName  = "CancelTransaction"
	TimelockExecuteTransactionEventName = "ExecuteTransaction"
)

// Timelock is the Compound-style timelock holding the funds
type Timelock struct {
	contract
}

// NewTimelock creates a new instance of Timelock.
func NewTimelock() *Timelock {
	return &Timelock{contract: mustParse(&TimelockMetaData)}
}

// EventID returns topic0 of one of the timelock events
func (tl *Timelock) EventID(eventName string) common.Hash {
	return tl.mustEventID(eventName)
}

// TimelockTransactionEvent represents a QueueTransaction, CancelTransaction or ExecuteTransaction event.
// The three events share one layout.
type TimelockTransactionEvent struct {
	TxHash    [32]byte
	Target    common.Address
	Value     *big.Int
	Signature string
	Data      []byte
	Eta       *big.Int
	Event     string
	Raw       *types.Log // Blockchain specific contextual infos
}

// ContractEventName returns the user-defined event name.
func (e TimelockTransactionEvent) ContractEventName() string {
	return e.Event
}

// UnpackTransactionEvent unpacks whichever timelock transaction event log carries.
//
// Solidity: event ExecuteTransaction(bytes32 indexed txHash, address indexed target, uint256 value, string signature, bytes data, uint256 eta)
func (tl *Timelock) UnpackTransactionEvent(log *types.Log) (*TimelockTransactionEvent, error) {
	if len(log.Topics) == 0 {
		return nil, ErrEventMismatch
	}
	for _, name := range []string{
		TimelockQueueTransactionEventName,
		TimelockCancelTransactionEventName,
		TimelockExecuteTransactionEventName,
	} {
		if log.Topics[0] != tl.mustEventID(name) {
			continue
		}
		out := new(TimelockTransactionEvent)
		if err := tl.unpackEvent(out, name, log); err != nil {
			return nil, err
		}
		out.Event = name
		out.Raw = log
		return out, nil
	}
	return nil, ErrEventMismatch
}

// PackGracePeriod packs GRACE_PERIOD()
func (tl *Timelock) PackGracePeriod() ([]byte, error) {
	return tl.pack("GRACE_PERIOD")
}

// UnpackGracePeriod decodes GRACE_PERIOD() in seconds
func (tl *Timelock) UnpackGracePeriod(output []byte) (*big.Int, error) {
	return unpackOne[*big.Int](tl.contract, "GRACE_PERIOD", output)
}

// PackDelay packs delay()
func (tl *Timelock) PackDelay() ([]byte, error) {
	return tl.pack("delay")
}

// UnpackDelay decodes delay() in seconds
func (tl *Timelock) UnpackDelay(output []byte) (*big.Int, error) {
	return unpackOne[*big.Int](tl.contract, "delay", output)
}

// PackQueuedTransactions packs queuedTransactions(bytes32)
func (tl *Timelock) PackQueuedTransactions(txHash [32]byte) ([]byte, error) {
	return tl.pack("queuedTransactions", txHash)
}

// UnpackQueuedTransactions decodes queuedTransactions(bytes32)
func (tl *Timelock) UnpackQueuedTransactions(output []byte) (bool, error) {
	return unpackOne[bool](tl.contract, "queuedTransactions", output)
}
