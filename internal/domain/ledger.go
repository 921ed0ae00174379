package domain

import (
	"sort"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/failsafe-org/safeguard-cli/internal/domain/models"
)

// LedgerEvent is anything that can change the reconciled transaction view
type LedgerEvent interface {
	// Kind is a short label used for logging and metrics
	Kind() string
}

// TransactionQueued is a SafeGuard QueueTransactionWithDescription event
type TransactionQueued struct {
	Transaction models.Transaction
}

// QueueObserved is a timelock QueueTransaction event
type QueueObserved struct {
	TxHash common.Hash
}

// TransactionExecuted is a timelock ExecuteTransaction event
type TransactionExecuted struct {
	TxHash common.Hash
}

// TransactionCanceled is a timelock CancelTransaction event
type TransactionCanceled struct {
	TxHash common.Hash
}

// ClockTicked moves the ledger's notion of now forward
type ClockTicked struct {
	Now time.Time
}

func (TransactionQueued) Kind() string   { return "queued" }
func (QueueObserved) Kind() string       { return "queue_observed" }
func (TransactionExecuted) Kind() string { return "executed" }
func (TransactionCanceled) Kind() string { return "canceled" }
func (ClockTicked) Kind() string         { return "tick" }

// Ledger is the reconciled view of a SafeGuard's timelocked transactions.
// Transactions are kept ordered by eta, latest first.
type Ledger struct {
	GracePeriod  time.Duration
	Now          time.Time
	Transactions []models.Transaction
}

// NewLedger builds a ledger, recomputing stale flags and ordering
func NewLedger(transactions []models.Transaction, gracePeriod time.Duration, now time.Time) Ledger {
	l := Ledger{
		GracePeriod:  gracePeriod,
		Now:          now,
		Transactions: make([]models.Transaction, len(transactions)),
	}
	copy(l.Transactions, transactions)
	l.refreshStale()
	l.sort()
	return l
}

// Find returns the transaction with the given hash
func (l Ledger) Find(txHash common.Hash) (models.Transaction, bool) {
	for _, tx := range l.Transactions {
		if tx.TxHash == txHash {
			return tx, true
		}
	}
	return models.Transaction{}, false
}

// Apply returns the ledger that results from observing ev. The receiver is not modified.
func (l Ledger) Apply(ev LedgerEvent) Ledger {
	next := l.clone()

	switch e := ev.(type) {
	case TransactionQueued:
		idx := next.indexOf(e.Transaction.TxHash)
		if idx < 0 {
			tx := e.Transaction
			tx.CurrentlyQueued = true
			next.Transactions = append(next.Transactions, tx)
			break
		}
		existing := next.Transactions[idx]
		tx := e.Transaction
		tx.Executed = existing.Executed
		tx.Canceled = existing.Canceled
		tx.CurrentlyQueued = !existing.Executed && !existing.Canceled
		next.Transactions[idx] = tx
	case QueueObserved:
		next.update(e.TxHash, func(tx *models.Transaction) {
			tx.CurrentlyQueued = true
		})
	case TransactionExecuted:
		next.update(e.TxHash, func(tx *models.Transaction) {
			tx.Executed = true
			tx.CurrentlyQueued = false
		})
	case TransactionCanceled:
		next.update(e.TxHash, func(tx *models.Transaction) {
			tx.Canceled = true
			tx.CurrentlyQueued = false
		})
	case ClockTicked:
		if e.Now.After(next.Now) {
			next.Now = e.Now
		}
	default:
		return l
	}

	next.refreshStale()
	next.sort()
	return next
}

// Changed returns the transactions of next that differ from prev, including
// those whose display status moved only because the clock passed their eta.
func Changed(prev, next Ledger) []models.Transaction {
	var changed []models.Transaction
	for _, tx := range next.Transactions {
		old, ok := prev.Find(tx.TxHash)
		if !ok || old.CurrentlyQueued != tx.CurrentlyQueued || old.Executed != tx.Executed ||
			old.Canceled != tx.Canceled || old.Stale != tx.Stale ||
			old.Status(prev.Now) != tx.Status(next.Now) {
			changed = append(changed, tx)
		}
	}
	return changed
}

// CountByStatus groups the ledger by display status
func (l Ledger) CountByStatus() map[models.TransactionStatus]int {
	counts := make(map[models.TransactionStatus]int)
	for _, tx := range l.Transactions {
		counts[tx.Status(l.Now)]++
	}
	return counts
}

func (l Ledger) clone() Ledger {
	next := l
	next.Transactions = make([]models.Transaction, len(l.Transactions))
	copy(next.Transactions, l.Transactions)
	return next
}

func (l *Ledger) indexOf(txHash common.Hash) int {
	for i := range l.Transactions {
		if l.Transactions[i].TxHash == txHash {
			return i
		}
	}
	return -1
}

// update ignores hashes the ledger has never seen
func (l *Ledger) update(txHash common.Hash, fn func(tx *models.Transaction)) {
	if idx := l.indexOf(txHash); idx >= 0 {
		fn(&l.Transactions[idx])
	}
}

func (l *Ledger) refreshStale() {
	for i := range l.Transactions {
		l.Transactions[i].Stale = l.Transactions[i].IsStaleAt(l.Now, l.GracePeriod)
	}
}

func (l *Ledger) sort() {
	sort.SliceStable(l.Transactions, func(i, j int) bool {
		return l.Transactions[i].Eta.After(l.Transactions[j].Eta)
	})
}
