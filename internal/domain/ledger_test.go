package domain

import (
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/failsafe-org/safeguard-cli/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	baseTime    = time.Unix(1_700_000_000, 0).UTC()
	gracePeriod = 14 * 24 * time.Hour
)

func queuedTx(hash byte, eta time.Time) models.Transaction {
	return models.Transaction{
		TxHash:      common.Hash{hash},
		Target:      common.HexToAddress("0x00000000000000000000000000000000000000aa"),
		Value:       big.NewInt(0),
		Eta:         eta,
		Description: "payment",
	}
}

func TestLedger_QueueThenExecute(t *testing.T) {
	l := NewLedger(nil, gracePeriod, baseTime)

	l = l.Apply(TransactionQueued{Transaction: queuedTx(1, baseTime.Add(time.Hour))})
	require.Len(t, l.Transactions, 1)
	assert.True(t, l.Transactions[0].CurrentlyQueued)

	l = l.Apply(TransactionExecuted{TxHash: common.Hash{1}})
	tx, ok := l.Find(common.Hash{1})
	require.True(t, ok)
	assert.True(t, tx.Executed)
	assert.False(t, tx.CurrentlyQueued)
	assert.False(t, tx.Stale)
	assert.Equal(t, models.TransactionStatusExecuted, tx.Status(l.Now))
}

func TestLedger_Cancel(t *testing.T) {
	l := NewLedger([]models.Transaction{queuedTx(1, baseTime)}, gracePeriod, baseTime)
	l = l.Apply(TransactionCanceled{TxHash: common.Hash{1}})

	tx, _ := l.Find(common.Hash{1})
	assert.True(t, tx.Canceled)
	assert.False(t, tx.CurrentlyQueued)
	assert.Equal(t, models.TransactionStatusCanceled, tx.Status(l.Now))
}

func TestLedger_UnmatchedEventsAreIgnored(t *testing.T) {
	l := NewLedger([]models.Transaction{queuedTx(1, baseTime)}, gracePeriod, baseTime)

	for _, ev := range []LedgerEvent{
		QueueObserved{TxHash: common.Hash{9}},
		TransactionExecuted{TxHash: common.Hash{9}},
		TransactionCanceled{TxHash: common.Hash{9}},
	} {
		next := l.Apply(ev)
		assert.Equal(t, l.Transactions, next.Transactions, ev.Kind())
	}
}

func TestLedger_ApplyDoesNotMutateReceiver(t *testing.T) {
	l := NewLedger([]models.Transaction{queuedTx(1, baseTime)}, gracePeriod, baseTime)

	next := l.Apply(TransactionExecuted{TxHash: common.Hash{1}})

	assert.False(t, l.Transactions[0].Executed)
	assert.True(t, next.Transactions[0].Executed)
}

func TestLedger_StaleBoundary(t *testing.T) {
	eta := baseTime
	tests := []struct {
		name     string
		now      time.Time
		executed bool
		want     bool
	}{
		{"before grace end", eta.Add(gracePeriod - time.Second), false, false},
		{"exactly at grace end", eta.Add(gracePeriod), false, true},
		{"after grace end", eta.Add(gracePeriod + time.Hour), false, true},
		{"executed never stale", eta.Add(gracePeriod + time.Hour), true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := queuedTx(1, eta)
			tx.Executed = tt.executed
			l := NewLedger([]models.Transaction{tx}, gracePeriod, tt.now)

			assert.Equal(t, tt.want, l.Transactions[0].Stale)
			assert.False(t, l.Transactions[0].Stale && l.Transactions[0].Executed)
		})
	}
}

func TestLedger_ClockTickMarksStale(t *testing.T) {
	l := NewLedger([]models.Transaction{queuedTx(1, baseTime)}, gracePeriod, baseTime)
	assert.False(t, l.Transactions[0].Stale)

	l = l.Apply(ClockTicked{Now: baseTime.Add(gracePeriod)})
	assert.True(t, l.Transactions[0].Stale)

	// time never moves backwards
	l = l.Apply(ClockTicked{Now: baseTime})
	assert.True(t, l.Transactions[0].Stale)
}

func TestLedger_ExecutionClearsStale(t *testing.T) {
	l := NewLedger([]models.Transaction{queuedTx(1, baseTime)}, gracePeriod, baseTime.Add(gracePeriod*2))
	require.True(t, l.Transactions[0].Stale)

	l = l.Apply(TransactionExecuted{TxHash: common.Hash{1}})
	assert.False(t, l.Transactions[0].Stale)
}

func TestLedger_OrderedByEtaDescending(t *testing.T) {
	l := NewLedger([]models.Transaction{
		queuedTx(1, baseTime),
		queuedTx(2, baseTime.Add(2*time.Hour)),
	}, gracePeriod, baseTime)

	l = l.Apply(TransactionQueued{Transaction: queuedTx(3, baseTime.Add(time.Hour))})

	require.Len(t, l.Transactions, 3)
	assert.Equal(t, common.Hash{2}, l.Transactions[0].TxHash)
	assert.Equal(t, common.Hash{3}, l.Transactions[1].TxHash)
	assert.Equal(t, common.Hash{1}, l.Transactions[2].TxHash)
}

func TestLedger_RequeueKeepsTerminalFlags(t *testing.T) {
	l := NewLedger(nil, gracePeriod, baseTime)
	l = l.Apply(TransactionQueued{Transaction: queuedTx(1, baseTime)})
	l = l.Apply(TransactionCanceled{TxHash: common.Hash{1}})

	l = l.Apply(TransactionQueued{Transaction: queuedTx(1, baseTime)})

	require.Len(t, l.Transactions, 1)
	assert.True(t, l.Transactions[0].Canceled)
	assert.False(t, l.Transactions[0].CurrentlyQueued)
}

func TestChanged(t *testing.T) {
	prev := NewLedger([]models.Transaction{queuedTx(1, baseTime), queuedTx(2, baseTime)}, gracePeriod, baseTime)
	next := prev.Apply(TransactionExecuted{TxHash: common.Hash{2}})

	changed := Changed(prev, next)
	require.Len(t, changed, 1)
	assert.Equal(t, common.Hash{2}, changed[0].TxHash)
}

func TestChanged_ClockPassesEta(t *testing.T) {
	tx := queuedTx(1, baseTime.Add(time.Minute))
	tx.CurrentlyQueued = true
	prev := NewLedger([]models.Transaction{tx}, gracePeriod, baseTime)
	require.Equal(t, models.TransactionStatusPending, prev.Transactions[0].Status(prev.Now))

	next := prev.Apply(ClockTicked{Now: tx.Eta.Add(time.Second)})

	changed := Changed(prev, next)
	require.Len(t, changed, 1)
	assert.Equal(t, models.TransactionStatusReady, changed[0].Status(next.Now))
	assert.Equal(t, map[models.TransactionStatus]int{models.TransactionStatusReady: 1}, next.CountByStatus())

	// a tick that moves no status reports nothing
	assert.Empty(t, Changed(next, next.Apply(ClockTicked{Now: next.Now.Add(time.Minute)})))
}

func TestLedger_CountByStatus(t *testing.T) {
	ready := queuedTx(1, baseTime.Add(-time.Hour))
	ready.CurrentlyQueued = true
	pending := queuedTx(2, baseTime.Add(time.Hour))
	pending.CurrentlyQueued = true
	executed := queuedTx(3, baseTime)
	executed.Executed = true

	l := NewLedger([]models.Transaction{ready, pending, executed}, gracePeriod, baseTime)
	counts := l.CountByStatus()

	assert.Equal(t, 1, counts[models.TransactionStatusReady])
	assert.Equal(t, 1, counts[models.TransactionStatusPending])
	assert.Equal(t, 1, counts[models.TransactionStatusExecuted])
}
