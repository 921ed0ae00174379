package models

import (
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimelockCall_Hash(t *testing.T) {
	call := TimelockCall{
		Target:    common.HexToAddress("0x00000000000000000000000000000000000000aa"),
		Value:     big.NewInt(0),
		Signature: "",
		Data:      []byte{0xde, 0xad},
		Eta:       time.Unix(1_700_000_000, 0),
	}

	hash, err := call.Hash()
	require.NoError(t, err)

	packed, err := timelockCallArgs.Pack(call.Target, big.NewInt(0), "", []byte{0xde, 0xad}, big.NewInt(1_700_000_000))
	require.NoError(t, err)
	assert.Equal(t, crypto.Keccak256Hash(packed), hash)

	// nil value hashes like zero
	call.Value = nil
	again, err := call.Hash()
	require.NoError(t, err)
	assert.Equal(t, hash, again)

	call.Eta = call.Eta.Add(time.Second)
	other, err := call.Hash()
	require.NoError(t, err)
	assert.NotEqual(t, hash, other)
}

func TestTransaction_Status(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	tests := []struct {
		name string
		tx   Transaction
		want TransactionStatus
	}{
		{"executed wins", Transaction{Executed: true, Canceled: true}, TransactionStatusExecuted},
		{"canceled over stale", Transaction{Canceled: true, Stale: true}, TransactionStatusCanceled},
		{"stale", Transaction{Stale: true, CurrentlyQueued: true}, TransactionStatusStale},
		{"pending before eta", Transaction{CurrentlyQueued: true, Eta: now.Add(time.Minute)}, TransactionStatusPending},
		{"ready at eta", Transaction{CurrentlyQueued: true, Eta: now}, TransactionStatusReady},
		{"unknown", Transaction{}, TransactionStatusUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.tx.Status(now))
		})
	}
}

func TestTransaction_IsStaleAt(t *testing.T) {
	eta := time.Unix(1_700_000_000, 0)
	grace := time.Hour
	tx := Transaction{Eta: eta}

	assert.False(t, tx.IsStaleAt(eta.Add(grace-time.Nanosecond), grace))
	assert.True(t, tx.IsStaleAt(eta.Add(grace), grace))

	tx.Executed = true
	assert.False(t, tx.IsStaleAt(eta.Add(2*grace), grace))
}
