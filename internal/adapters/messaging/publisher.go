package messaging

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/failsafe-org/safeguard-cli/internal/domain/models"
	"github.com/failsafe-org/safeguard-cli/internal/usecase"
)

// TransactionsSubjectPrefix prefixes the per-SafeGuard transaction update subject
const TransactionsSubjectPrefix = "safeguard.transactions"

// TransactionsSubject returns the subject for a SafeGuard's transaction updates
func TransactionsSubject(safeGuard common.Address) string {
	return fmt.Sprintf("%s.%s", TransactionsSubjectPrefix, strings.ToLower(safeGuard.Hex()))
}

// TransactionUpdate is the message published when watched transactions change
type TransactionUpdate struct {
	SafeGuard    common.Address       `json:"safeguard"`
	Transactions []models.Transaction `json:"transactions"`
	PublishedAt  time.Time            `json:"publishedAt"`
}

// TransactionPublisher publishes reconciled transaction changes to NATS
type TransactionPublisher struct {
	conn *Conn
}

// NewTransactionPublisher creates a new publisher
func NewTransactionPublisher(conn *Conn) *TransactionPublisher {
	return &TransactionPublisher{conn: conn}
}

// PublishTransactions publishes one update carrying all changed transactions
func (p *TransactionPublisher) PublishTransactions(ctx context.Context, safeGuard common.Address, txs []models.Transaction) error {
	if len(txs) == 0 {
		return nil
	}
	return p.conn.PublishJSON(ctx, TransactionsSubject(safeGuard), TransactionUpdate{
		SafeGuard:    safeGuard,
		Transactions: txs,
		PublishedAt:  time.Now().UTC(),
	})
}

var _ usecase.TransactionPublisher = (*TransactionPublisher)(nil)
