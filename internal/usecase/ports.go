package usecase

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/failsafe-org/safeguard-cli/internal/domain"
	"github.com/failsafe-org/safeguard-cli/internal/domain/config"
	"github.com/failsafe-org/safeguard-cli/internal/domain/models"
)

// EventBatch is the decoded result of a historical log query.
// Dropped counts logs that could not be decoded.
type EventBatch[T any] struct {
	Items   []T
	Dropped int
}

// Contract gateway ports

// SafeGuardGateway reads and writes a SafeGuard contract
type SafeGuardGateway interface {
	Timelock(ctx context.Context, safeGuard common.Address) (common.Address, error)
	QueuedTransactions(ctx context.Context, safeGuard common.Address) (*EventBatch[models.Transaction], error)
	SubscribeQueued(ctx context.Context, safeGuard common.Address, sink chan<- models.Transaction) (ethereum.Subscription, error)

	HasRole(ctx context.Context, safeGuard common.Address, role common.Hash, account common.Address) (bool, error)
	RoleMemberCount(ctx context.Context, safeGuard common.Address, role common.Hash) (uint64, error)
	RoleMember(ctx context.Context, safeGuard common.Address, role common.Hash, index uint64) (common.Address, error)
	SubscribeRoleChanges(ctx context.Context, safeGuard common.Address, sink chan<- models.RoleChange) (ethereum.Subscription, error)

	// Write methods return the hash of the submitted chain transaction
	QueueTransaction(ctx context.Context, safeGuard common.Address, call models.TimelockCall, description string) (common.Hash, error)
	CancelTransaction(ctx context.Context, safeGuard common.Address, call models.TimelockCall) (common.Hash, error)
	ExecuteTransaction(ctx context.Context, safeGuard common.Address, call models.TimelockCall) (common.Hash, error)
	GrantRole(ctx context.Context, safeGuard common.Address, role common.Hash, account common.Address) (common.Hash, error)
	RevokeRole(ctx context.Context, safeGuard common.Address, role common.Hash, account common.Address) (common.Hash, error)
}

// TimelockGateway reads the timelock behind a SafeGuard
type TimelockGateway interface {
	GracePeriod(ctx context.Context, timelock common.Address) (time.Duration, error)
	Delay(ctx context.Context, timelock common.Address) (time.Duration, error)
	IsQueued(ctx context.Context, timelock common.Address, txHash common.Hash) (bool, error)
	TransactionEvents(ctx context.Context, timelock common.Address) (*EventBatch[models.TimelockEvent], error)
	SubscribeTransactionEvents(ctx context.Context, timelock common.Address, sink chan<- models.TimelockEvent) (ethereum.Subscription, error)
}

// FactoryGateway lists and creates safes
type FactoryGateway interface {
	Safes(ctx context.Context, factory common.Address, kind models.SafeKind) (*EventBatch[models.Safe], error)
	SubscribeSafes(ctx context.Context, factory common.Address, kind models.SafeKind, sink chan<- models.Safe) (ethereum.Subscription, error)
	CreateSafeGuard(ctx context.Context, factory common.Address, spec models.SafeGuardSpec) (common.Hash, error)
	CreateFailSafe(ctx context.Context, factory common.Address, name string, delay time.Duration) (common.Hash, error)
}

// TokenGateway talks to the governed ERC-20 token
type TokenGateway interface {
	Symbol(ctx context.Context, token common.Address) (string, error)
	BalanceOf(ctx context.Context, token common.Address, account common.Address) (*big.Int, error)
	Transfer(ctx context.Context, token common.Address, to common.Address, amount *big.Int) (common.Hash, error)
}

// ChainReader exposes chain-level reads
type ChainReader interface {
	LatestBlockTime(ctx context.Context) (time.Time, error)
	// WaitForConfirmations blocks until txHash is mined and has the given number of confirmations
	WaitForConfirmations(ctx context.Context, txHash common.Hash, confirmations uint64) (*models.Receipt, error)
}

// Signer identifies the account that signs write actions
type Signer interface {
	Address() (common.Address, error)
}

// Outbound ports

// Notifier delivers user-facing notifications
type Notifier interface {
	Notify(ctx context.Context, n models.Notification)
}

// TransactionPublisher fans out reconciled transaction changes
type TransactionPublisher interface {
	PublishTransactions(ctx context.Context, safeGuard common.Address, txs []models.Transaction) error
}

// ReconcilerMetrics observes the transaction reconciler
type ReconcilerMetrics interface {
	ObserveEvent(kind string)
	ObserveDropped(n int)
	ObserveLedger(ledger domain.Ledger)
}

// ActionFilter narrows journal queries
type ActionFilter struct {
	State models.ActionState
	Limit int
}

// ActionJournal persists the lifecycle of submitted actions
type ActionJournal interface {
	Create(ctx context.Context, record *models.ActionRecord) error
	Update(ctx context.Context, record *models.ActionRecord) error
	List(ctx context.Context, filter ActionFilter) ([]models.ActionRecord, error)
}

// LocalConfigRepository manages local configuration persistence
type LocalConfigRepository interface {
	Exists() bool
	Load(ctx context.Context) (*config.LocalConfig, error)
	Save(ctx context.Context, config *config.LocalConfig) error
	GetPath() string
}

// NetworkResolver handles network configuration resolution
type NetworkResolver interface {
	GetNetworks(ctx context.Context) []string
	ResolveNetwork(ctx context.Context, networkName string) (*config.Network, error)
}

// Interactive ports

// Confirmer asks the user to approve an action
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// TransactionSelector handles interactive selection of timelocked transactions
type TransactionSelector interface {
	SelectTransaction(ctx context.Context, txs []models.Transaction, prompt string) (*models.Transaction, error)
}

// Clock reports the current time
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall clock
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Progress tracking interfaces

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage    string
	Current  int
	Total    int
	Message  string
	Spinner  bool
	Metadata interface{}
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}

// Stage names shared by progress sinks
const (
	StageLoading    = "loading"
	StageSubmitting = "submitting"
	StageConfirming = "confirming"
	StageCompleted  = "completed"
)
