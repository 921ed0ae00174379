package usecase_test

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/failsafe-org/safeguard-cli/internal/domain"
	"github.com/failsafe-org/safeguard-cli/internal/domain/models"
	"github.com/failsafe-org/safeguard-cli/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testGracePeriod = 14 * 24 * time.Hour

// hashedTx builds a queued transaction whose TxHash matches its call
func hashedTx(t *testing.T, nonce int64, eta time.Time, description string) models.Transaction {
	t.Helper()
	tx := models.Transaction{
		Target:      testToken,
		Value:       big.NewInt(nonce),
		Data:        []byte{0xa9, 0x05, 0x9c, 0xbb},
		Eta:         eta,
		Description: description,
	}
	hash, err := tx.Call().Hash()
	require.NoError(t, err)
	tx.TxHash = hash
	return tx
}

type ledgerFixture struct {
	sg    *MockSafeGuardGateway
	tl    *MockTimelockGateway
	clock fixedClock
	sink  *MockProgressSink
	list  *usecase.ListTransactions
}

func newLedgerFixture(t *testing.T) *ledgerFixture {
	t.Helper()
	f := &ledgerFixture{
		sg:    new(MockSafeGuardGateway),
		tl:    new(MockTimelockGateway),
		clock: fixedClock{now: testBaseTime},
		sink:  &MockProgressSink{},
	}
	f.list = usecase.NewListTransactions(testConfig(), f.sg, f.tl, f.clock, f.sink, discardLogger())
	f.sg.On("Timelock", mock.Anything, testSafeGuard).Return(testTimelock, nil)
	f.tl.On("GracePeriod", mock.Anything, testTimelock).Return(testGracePeriod, nil)
	return f
}

func (f *ledgerFixture) history(txs []models.Transaction, dropped int, events ...models.TimelockEvent) {
	f.sg.On("QueuedTransactions", mock.Anything, testSafeGuard).
		Return(&usecase.EventBatch[models.Transaction]{Items: txs, Dropped: dropped}, nil)
	f.tl.On("TransactionEvents", mock.Anything, testTimelock).
		Return(&usecase.EventBatch[models.TimelockEvent]{Items: events}, nil)
}

func TestListTransactions(t *testing.T) {
	ctx := context.Background()

	t.Run("derives lifecycle flags from events", func(t *testing.T) {
		f := newLedgerFixture(t)
		executed := hashedTx(t, 1, testBaseTime.Add(-time.Hour), "executed payment")
		pending := hashedTx(t, 2, testBaseTime.Add(time.Hour), "pending payment")
		canceled := hashedTx(t, 3, testBaseTime.Add(2*time.Hour), "canceled payment")
		stale := hashedTx(t, 4, testBaseTime.Add(-testGracePeriod-time.Hour), "stale payment")

		f.history([]models.Transaction{executed, pending, canceled, stale}, 0,
			models.TimelockEvent{Kind: models.TimelockQueued, TxHash: executed.TxHash},
			models.TimelockEvent{Kind: models.TimelockExecuted, TxHash: executed.TxHash},
			models.TimelockEvent{Kind: models.TimelockCanceled, TxHash: canceled.TxHash},
		)
		f.tl.On("IsQueued", mock.Anything, testTimelock, executed.TxHash).Return(false, nil)
		f.tl.On("IsQueued", mock.Anything, testTimelock, pending.TxHash).Return(true, nil)
		f.tl.On("IsQueued", mock.Anything, testTimelock, canceled.TxHash).Return(false, nil)
		f.tl.On("IsQueued", mock.Anything, testTimelock, stale.TxHash).Return(true, nil)

		result, err := f.list.Run(ctx, usecase.ListTransactionsParams{})
		require.NoError(t, err)
		assert.Equal(t, testSafeGuard, result.SafeGuard)
		assert.Equal(t, testTimelock, result.Timelock)
		require.Len(t, result.Ledger.Transactions, 4)

		statuses := map[string]models.TransactionStatus{}
		for _, tx := range result.Ledger.Transactions {
			statuses[tx.Description] = tx.Status(f.clock.now)
			assert.False(t, tx.Stale && tx.Executed)
		}
		assert.Equal(t, models.TransactionStatusExecuted, statuses["executed payment"])
		assert.Equal(t, models.TransactionStatusPending, statuses["pending payment"])
		assert.Equal(t, models.TransactionStatusCanceled, statuses["canceled payment"])
		assert.Equal(t, models.TransactionStatusStale, statuses["stale payment"])

		// eta descending
		assert.Equal(t, "canceled payment", result.Ledger.Transactions[0].Description)
		assert.Equal(t, "stale payment", result.Ledger.Transactions[3].Description)

		assert.Equal(t, []string{usecase.StageLoading, usecase.StageCompleted}, f.sink.stages())
	})

	t.Run("drops logs whose hash does not match the call", func(t *testing.T) {
		f := newLedgerFixture(t)
		good := hashedTx(t, 1, testBaseTime, "good")
		forged := hashedTx(t, 2, testBaseTime, "forged")
		forged.Value = big.NewInt(999)

		f.history([]models.Transaction{good, forged}, 2)
		f.tl.On("IsQueued", mock.Anything, testTimelock, good.TxHash).Return(true, nil)

		result, err := f.list.Run(ctx, usecase.ListTransactionsParams{})
		require.NoError(t, err)
		require.Len(t, result.Ledger.Transactions, 1)
		assert.Equal(t, good.TxHash, result.Ledger.Transactions[0].TxHash)
		assert.Equal(t, 3, result.Dropped)
	})

	t.Run("requeued call keeps one entry", func(t *testing.T) {
		f := newLedgerFixture(t)
		tx := hashedTx(t, 1, testBaseTime, "payment")
		f.history([]models.Transaction{tx, tx}, 0)
		f.tl.On("IsQueued", mock.Anything, testTimelock, tx.TxHash).Return(true, nil)

		result, err := f.list.Run(ctx, usecase.ListTransactionsParams{})
		require.NoError(t, err)
		assert.Len(t, result.Ledger.Transactions, 1)
	})

	t.Run("history failure is a reconcile failure", func(t *testing.T) {
		f := newLedgerFixture(t)
		f.sg.On("QueuedTransactions", mock.Anything, testSafeGuard).Return(nil, errors.New("rpc: query returned more than 10000 results"))

		_, err := f.list.Run(ctx, usecase.ListTransactionsParams{})
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrReconcileFailed))
		assert.Contains(t, err.Error(), "10000 results")
		assert.Equal(t, usecase.StageCompleted, f.sink.stages()[len(f.sink.stages())-1])
	})

	t.Run("pinned timelock skips the contract read", func(t *testing.T) {
		cfg := testConfig()
		cfg.Network.SafeGuard = testSafeGuard
		cfg.Network.Timelock = testTimelock
		sg := new(MockSafeGuardGateway)
		tl := new(MockTimelockGateway)
		sg.On("QueuedTransactions", mock.Anything, testSafeGuard).Return(&usecase.EventBatch[models.Transaction]{}, nil)
		tl.On("TransactionEvents", mock.Anything, testTimelock).Return(&usecase.EventBatch[models.TimelockEvent]{}, nil)
		tl.On("GracePeriod", mock.Anything, testTimelock).Return(testGracePeriod, nil)

		list := usecase.NewListTransactions(cfg, sg, tl, fixedClock{now: testBaseTime}, usecase.NopProgress{}, discardLogger())
		_, err := list.Run(ctx, usecase.ListTransactionsParams{})
		require.NoError(t, err)
		sg.AssertNotCalled(t, "Timelock", mock.Anything, mock.Anything)
	})
}

func TestWatchTransactions(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	f := newLedgerFixture(t)
	tx := hashedTx(t, 1, testBaseTime.Add(-time.Minute), "payment")
	f.history([]models.Transaction{tx}, 0)
	f.tl.On("IsQueued", mock.Anything, testTimelock, tx.TxHash).Return(true, nil)

	queuedSub := newFakeSubscription()
	timelockSub := newFakeSubscription()
	var timelockSink chan<- models.TimelockEvent
	f.sg.On("SubscribeQueued", mock.Anything, testSafeGuard, mock.Anything).Return(queuedSub, nil)
	f.tl.On("SubscribeTransactionEvents", mock.Anything, testTimelock, mock.Anything).
		Run(func(args mock.Arguments) {
			timelockSink = args.Get(2).(chan<- models.TimelockEvent)
		}).
		Return(timelockSub, nil)

	publisher := new(MockTransactionPublisher)
	publisher.On("PublishTransactions", mock.Anything, testSafeGuard, mock.Anything).Return(nil)
	metrics := &countingMetrics{}

	uc := usecase.NewWatchTransactions(testConfig(), f.list, f.sg, f.tl, publisher, metrics, f.clock, discardLogger())
	w, err := uc.Start(ctx, usecase.WatchTransactionsParams{StaleCheckInterval: time.Hour})
	require.NoError(t, err)

	initial := <-w.Updates()
	require.Len(t, initial.Transactions, 1)
	assert.Equal(t, models.TransactionStatusReady, initial.Transactions[0].Status(f.clock.now))

	timelockSink <- models.TimelockEvent{Kind: models.TimelockExecuted, TxHash: tx.TxHash}

	select {
	case next := <-w.Updates():
		require.Len(t, next.Transactions, 1)
		assert.True(t, next.Transactions[0].Executed)
		assert.False(t, next.Transactions[0].CurrentlyQueued)
	case <-ctx.Done():
		t.Fatal("no update after execution event")
	}

	publisher.AssertNumberOfCalls(t, "PublishTransactions", 1)
	changed := publisher.Calls[0].Arguments.Get(2).([]models.Transaction)
	require.Len(t, changed, 1)
	assert.Equal(t, tx.TxHash, changed[0].TxHash)

	w.Close()
	w.Close()
	_, open := <-w.Updates()
	assert.False(t, open)
	assert.True(t, queuedSub.isUnsubscribed())
	assert.True(t, timelockSub.isUnsubscribed())

	metrics.mu.Lock()
	defer metrics.mu.Unlock()
	assert.Equal(t, []string{"executed"}, metrics.events)
	assert.Equal(t, 2, metrics.ledgers)
}

func TestWatchTransactions_TickPastEta(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	f := newLedgerFixture(t)
	tx := hashedTx(t, 1, testBaseTime.Add(time.Minute), "payment")
	f.history([]models.Transaction{tx}, 0)
	f.tl.On("IsQueued", mock.Anything, testTimelock, tx.TxHash).Return(true, nil)
	f.sg.On("SubscribeQueued", mock.Anything, testSafeGuard, mock.Anything).Return(newFakeSubscription(), nil)
	f.tl.On("SubscribeTransactionEvents", mock.Anything, testTimelock, mock.Anything).Return(newFakeSubscription(), nil)

	publisher := new(MockTransactionPublisher)
	publisher.On("PublishTransactions", mock.Anything, testSafeGuard, mock.Anything).Return(nil)
	clock := &movableClock{now: testBaseTime}

	uc := usecase.NewWatchTransactions(testConfig(), f.list, f.sg, f.tl, publisher, &countingMetrics{}, clock, discardLogger())
	w, err := uc.Start(ctx, usecase.WatchTransactionsParams{StaleCheckInterval: 10 * time.Millisecond})
	require.NoError(t, err)
	defer w.Close()

	initial := <-w.Updates()
	require.Len(t, initial.Transactions, 1)
	assert.Equal(t, models.TransactionStatusPending, initial.Transactions[0].Status(initial.Now))

	clock.Set(tx.Eta.Add(time.Second))

	select {
	case next := <-w.Updates():
		require.Len(t, next.Transactions, 1)
		assert.Equal(t, models.TransactionStatusReady, next.Transactions[0].Status(next.Now))
	case <-ctx.Done():
		t.Fatal("no update when eta passed")
	}
	publisher.AssertNumberOfCalls(t, "PublishTransactions", 1)
}

func TestWatchTransactions_SubscriptionFailure(t *testing.T) {
	f := newLedgerFixture(t)
	f.sg.On("SubscribeQueued", mock.Anything, testSafeGuard, mock.Anything).Return(nil, domain.ErrSubscriptionsUnsupported)

	uc := usecase.NewWatchTransactions(testConfig(), f.list, f.sg, f.tl, new(MockTransactionPublisher), &countingMetrics{}, f.clock, discardLogger())
	_, err := uc.Start(context.Background(), usecase.WatchTransactionsParams{})
	assert.True(t, errors.Is(err, domain.ErrSubscriptionsUnsupported))
}

func TestWatchTransactions_SubscriptionError(t *testing.T) {
	f := newLedgerFixture(t)
	f.history(nil, 0)
	queuedSub := newFakeSubscription()
	f.sg.On("SubscribeQueued", mock.Anything, testSafeGuard, mock.Anything).Return(queuedSub, nil)
	f.tl.On("SubscribeTransactionEvents", mock.Anything, testTimelock, mock.Anything).Return(newFakeSubscription(), nil)

	uc := usecase.NewWatchTransactions(testConfig(), f.list, f.sg, f.tl, new(MockTransactionPublisher), &countingMetrics{}, f.clock, discardLogger())
	w, err := uc.Start(context.Background(), usecase.WatchTransactionsParams{})
	require.NoError(t, err)
	defer w.Close()

	<-w.Updates()
	queuedSub.errs <- errors.New("connection reset")

	select {
	case err := <-w.Err():
		assert.Contains(t, err.Error(), "connection reset")
	case <-time.After(5 * time.Second):
		t.Fatal("subscription error not surfaced")
	}
}

func TestCancelTransaction(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T, queued bool) (*actionFixture, *usecase.CancelTransaction, models.Transaction) {
		f := newActionFixture(t)
		tx := hashedTx(t, 1, testBaseTime.Add(time.Hour), "payment")
		f.sg.On("Timelock", mock.Anything, testSafeGuard).Return(testTimelock, nil)
		f.sg.On("QueuedTransactions", mock.Anything, testSafeGuard).
			Return(&usecase.EventBatch[models.Transaction]{Items: []models.Transaction{tx}}, nil)
		f.tl.On("TransactionEvents", mock.Anything, testTimelock).Return(&usecase.EventBatch[models.TimelockEvent]{}, nil)
		f.tl.On("GracePeriod", mock.Anything, testTimelock).Return(testGracePeriod, nil)
		f.tl.On("IsQueued", mock.Anything, testTimelock, tx.TxHash).Return(queued, nil)

		list := usecase.NewListTransactions(f.cfg, f.sg, f.tl, f.clock, usecase.NopProgress{}, discardLogger())
		return f, usecase.NewCancelTransaction(f.cfg, list, f.sg, firstSelector{}, f.runner), tx
	}

	t.Run("cancels a queued transaction", func(t *testing.T) {
		f, uc, tx := setup(t, true)
		chainTx := common.HexToHash("0xcc")
		f.grantsRole(models.RoleCanceler, true)
		f.sg.On("CancelTransaction", mock.Anything, testSafeGuard, tx.Call()).Return(chainTx, nil)
		f.confirms(chainTx)

		result, err := uc.Run(ctx, usecase.TimelockActionParams{TxHash: tx.TxHash.Hex()})
		require.NoError(t, err)
		assert.Equal(t, tx.TxHash, result.Transaction.TxHash)
		f.sg.AssertNumberOfCalls(t, "CancelTransaction", 1)
	})

	t.Run("requires a tx hash when non-interactive", func(t *testing.T) {
		_, uc, _ := setup(t, true)
		_, err := uc.Run(ctx, usecase.TimelockActionParams{})
		assert.True(t, errors.Is(err, domain.ErrValidation))
	})

	t.Run("rejects malformed hashes", func(t *testing.T) {
		_, uc, _ := setup(t, true)
		_, err := uc.Run(ctx, usecase.TimelockActionParams{TxHash: "0x1234"})
		assert.True(t, errors.Is(err, domain.ErrValidation))
	})

	t.Run("unknown hash", func(t *testing.T) {
		_, uc, _ := setup(t, true)
		_, err := uc.Run(ctx, usecase.TimelockActionParams{TxHash: common.HexToHash("0x99").Hex()})
		assert.True(t, errors.Is(err, domain.ErrNotFound))
	})

	t.Run("rejects transactions no longer queued", func(t *testing.T) {
		f, uc, tx := setup(t, false)
		_, err := uc.Run(ctx, usecase.TimelockActionParams{TxHash: tx.TxHash.Hex()})
		assert.True(t, errors.Is(err, domain.ErrValidation))
		f.sg.AssertNotCalled(t, "CancelTransaction", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestExecuteTransaction(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T, eta time.Time) (*actionFixture, *usecase.ExecuteTransaction, models.Transaction) {
		f := newActionFixture(t)
		f.cfg.NonInteractive = false
		tx := hashedTx(t, 7, eta, "payment")
		f.sg.On("Timelock", mock.Anything, testSafeGuard).Return(testTimelock, nil)
		f.sg.On("QueuedTransactions", mock.Anything, testSafeGuard).
			Return(&usecase.EventBatch[models.Transaction]{Items: []models.Transaction{tx}}, nil)
		f.tl.On("TransactionEvents", mock.Anything, testTimelock).Return(&usecase.EventBatch[models.TimelockEvent]{}, nil)
		f.tl.On("GracePeriod", mock.Anything, testTimelock).Return(testGracePeriod, nil)
		f.tl.On("IsQueued", mock.Anything, testTimelock, tx.TxHash).Return(true, nil)

		list := usecase.NewListTransactions(f.cfg, f.sg, f.tl, f.clock, usecase.NopProgress{}, discardLogger())
		return f, usecase.NewExecuteTransaction(f.cfg, list, f.sg, firstSelector{}, f.runner), tx
	}

	t.Run("executes a ready transaction picked interactively", func(t *testing.T) {
		f, uc, tx := setup(t, testBaseTime.Add(-time.Minute))
		chainTx := common.HexToHash("0xee")
		f.grantsRole(models.RoleExecutor, true)
		f.sg.On("ExecuteTransaction", mock.Anything, testSafeGuard, tx.Call()).Return(chainTx, nil)
		f.confirms(chainTx)

		_, err := uc.Run(ctx, usecase.TimelockActionParams{})
		require.NoError(t, err)
		require.Len(t, f.confirmer.asked, 1)
		assert.Contains(t, f.confirmer.asked[0], tx.TxHash.Hex())
	})

	t.Run("refuses before eta", func(t *testing.T) {
		f, uc, tx := setup(t, testBaseTime.Add(time.Hour))
		_, err := uc.Run(ctx, usecase.TimelockActionParams{TxHash: tx.TxHash.Hex()})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "has not been reached")
		f.sg.AssertNotCalled(t, "ExecuteTransaction", mock.Anything, mock.Anything, mock.Anything)
	})
}
