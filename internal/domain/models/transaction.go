package models

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// TransactionStatus is the single display status derived from the lifecycle flags
type TransactionStatus string

const (
	TransactionStatusPending  TransactionStatus = "pending"
	TransactionStatusReady    TransactionStatus = "ready"
	TransactionStatusExecuted TransactionStatus = "executed"
	TransactionStatusCanceled TransactionStatus = "canceled"
	TransactionStatusStale    TransactionStatus = "stale"
	TransactionStatusUnknown  TransactionStatus = "unknown"
)

// TimelockCall is the tuple the timelock hashes to identify a transaction
type TimelockCall struct {
	Target    common.Address
	Value     *big.Int
	Signature string
	Data      []byte
	Eta       time.Time
}

// EtaBig returns the eta as the uint256 the contracts expect
func (c TimelockCall) EtaBig() *big.Int {
	return big.NewInt(c.Eta.Unix())
}

// ValueOrZero never returns nil
func (c TimelockCall) ValueOrZero() *big.Int {
	if c.Value == nil {
		return new(big.Int)
	}
	return c.Value
}

// Hash returns keccak256(abi.encode(target, value, signature, data, eta))
func (c TimelockCall) Hash() (common.Hash, error) {
	packed, err := timelockCallArgs.Pack(c.Target, c.ValueOrZero(), c.Signature, c.Data, c.EtaBig())
	if err != nil {
		return common.Hash{}, err
	}
	return crypto.Keccak256Hash(packed), nil
}

var timelockCallArgs = func() abi.Arguments {
	mustType := func(name string) abi.Type {
		typ, err := abi.NewType(name, "", nil)
		if err != nil {
			panic(err)
		}
		return typ
	}
	return abi.Arguments{
		{Name: "target", Type: mustType("address")},
		{Name: "value", Type: mustType("uint256")},
		{Name: "signature", Type: mustType("string")},
		{Name: "data", Type: mustType("bytes")},
		{Name: "eta", Type: mustType("uint256")},
	}
}()

// Transaction is a timelocked governance transaction as seen through its events
type Transaction struct {
	// Identification
	TxHash      common.Hash `json:"txHash"`
	BlockNumber uint64      `json:"blockNumber"`

	// Call details
	Target      common.Address `json:"target"`
	Value       *big.Int       `json:"value"`
	Signature   string         `json:"signature"`
	Data        []byte         `json:"data"`
	Eta         time.Time      `json:"eta"`
	Description string         `json:"description"`

	// Derived lifecycle flags
	CurrentlyQueued bool `json:"currentlyQueued"`
	Canceled        bool `json:"canceled"`
	Executed        bool `json:"executed"`
	Stale           bool `json:"stale"`
}

// Call returns the timelock tuple needed to cancel or execute the transaction
func (t Transaction) Call() TimelockCall {
	return TimelockCall{
		Target:    t.Target,
		Value:     t.Value,
		Signature: t.Signature,
		Data:      t.Data,
		Eta:       t.Eta,
	}
}

// ExpiresAt is the end of the grace period
func (t Transaction) ExpiresAt(gracePeriod time.Duration) time.Time {
	return t.Eta.Add(gracePeriod)
}

// IsStaleAt reports whether the grace period elapsed without execution
func (t Transaction) IsStaleAt(now time.Time, gracePeriod time.Duration) bool {
	return !t.Executed && !now.Before(t.ExpiresAt(gracePeriod))
}

// Status derives the display status. Executed wins over canceled, canceled over stale.
func (t Transaction) Status(now time.Time) TransactionStatus {
	switch {
	case t.Executed:
		return TransactionStatusExecuted
	case t.Canceled:
		return TransactionStatusCanceled
	case t.Stale:
		return TransactionStatusStale
	case t.CurrentlyQueued && now.Before(t.Eta):
		return TransactionStatusPending
	case t.CurrentlyQueued:
		return TransactionStatusReady
	default:
		return TransactionStatusUnknown
	}
}

// TimelockEventKind distinguishes the three timelock transaction events
type TimelockEventKind string

const (
	TimelockQueued   TimelockEventKind = "queued"
	TimelockCanceled TimelockEventKind = "canceled"
	TimelockExecuted TimelockEventKind = "executed"
)

// TimelockEvent is a QueueTransaction, CancelTransaction or ExecuteTransaction log
type TimelockEvent struct {
	Kind        TimelockEventKind
	TxHash      common.Hash
	Target      common.Address
	Eta         time.Time
	BlockNumber uint64
}
