package usecase_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/failsafe-org/safeguard-cli/internal/domain"
	"github.com/failsafe-org/safeguard-cli/internal/domain/config"
	"github.com/failsafe-org/safeguard-cli/internal/domain/models"
	"github.com/failsafe-org/safeguard-cli/internal/usecase"
	"github.com/stretchr/testify/mock"
)

var (
	testSafeGuard = common.HexToAddress("0x5afe00000000000000000000000000000000beef")
	testTimelock  = common.HexToAddress("0x7100000000000000000000000000000000000001")
	testToken     = common.HexToAddress("0x7000000000000000000000000000000000000002")
	testFactory   = common.HexToAddress("0xfac7000000000000000000000000000000000003")
	testSender    = common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	testBaseTime  = time.Unix(1_700_000_000, 0).UTC()
)

func testConfig() *config.RuntimeConfig {
	return &config.RuntimeConfig{
		Network: &config.Network{
			Name:    "anvil",
			ChainID: 31337,
			Factory: testFactory,
			Token:   testToken,
		},
		SafeGuard:      testSafeGuard,
		NonInteractive: true,
		Output:         config.OutputTable,
		Actions:        config.DefaultActionsConfig(),
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// MockSafeGuardGateway is a mock implementation of SafeGuardGateway
type MockSafeGuardGateway struct {
	mock.Mock
}

func (m *MockSafeGuardGateway) Timelock(ctx context.Context, safeGuard common.Address) (common.Address, error) {
	args := m.Called(ctx, safeGuard)
	return args.Get(0).(common.Address), args.Error(1)
}

func (m *MockSafeGuardGateway) QueuedTransactions(ctx context.Context, safeGuard common.Address) (*usecase.EventBatch[models.Transaction], error) {
	args := m.Called(ctx, safeGuard)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.EventBatch[models.Transaction]), args.Error(1)
}

func (m *MockSafeGuardGateway) SubscribeQueued(ctx context.Context, safeGuard common.Address, sink chan<- models.Transaction) (ethereum.Subscription, error) {
	args := m.Called(ctx, safeGuard, sink)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(ethereum.Subscription), args.Error(1)
}

func (m *MockSafeGuardGateway) HasRole(ctx context.Context, safeGuard common.Address, role common.Hash, account common.Address) (bool, error) {
	args := m.Called(ctx, safeGuard, role, account)
	return args.Bool(0), args.Error(1)
}

func (m *MockSafeGuardGateway) RoleMemberCount(ctx context.Context, safeGuard common.Address, role common.Hash) (uint64, error) {
	args := m.Called(ctx, safeGuard, role)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *MockSafeGuardGateway) RoleMember(ctx context.Context, safeGuard common.Address, role common.Hash, index uint64) (common.Address, error) {
	args := m.Called(ctx, safeGuard, role, index)
	return args.Get(0).(common.Address), args.Error(1)
}

func (m *MockSafeGuardGateway) SubscribeRoleChanges(ctx context.Context, safeGuard common.Address, sink chan<- models.RoleChange) (ethereum.Subscription, error) {
	args := m.Called(ctx, safeGuard, sink)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(ethereum.Subscription), args.Error(1)
}

func (m *MockSafeGuardGateway) QueueTransaction(ctx context.Context, safeGuard common.Address, call models.TimelockCall, description string) (common.Hash, error) {
	args := m.Called(ctx, safeGuard, call, description)
	return args.Get(0).(common.Hash), args.Error(1)
}

func (m *MockSafeGuardGateway) CancelTransaction(ctx context.Context, safeGuard common.Address, call models.TimelockCall) (common.Hash, error) {
	args := m.Called(ctx, safeGuard, call)
	return args.Get(0).(common.Hash), args.Error(1)
}

func (m *MockSafeGuardGateway) ExecuteTransaction(ctx context.Context, safeGuard common.Address, call models.TimelockCall) (common.Hash, error) {
	args := m.Called(ctx, safeGuard, call)
	return args.Get(0).(common.Hash), args.Error(1)
}

func (m *MockSafeGuardGateway) GrantRole(ctx context.Context, safeGuard common.Address, role common.Hash, account common.Address) (common.Hash, error) {
	args := m.Called(ctx, safeGuard, role, account)
	return args.Get(0).(common.Hash), args.Error(1)
}

func (m *MockSafeGuardGateway) RevokeRole(ctx context.Context, safeGuard common.Address, role common.Hash, account common.Address) (common.Hash, error) {
	args := m.Called(ctx, safeGuard, role, account)
	return args.Get(0).(common.Hash), args.Error(1)
}

// MockTimelockGateway is a mock implementation of TimelockGateway
type MockTimelockGateway struct {
	mock.Mock
}

func (m *MockTimelockGateway) GracePeriod(ctx context.Context, timelock common.Address) (time.Duration, error) {
	args := m.Called(ctx, timelock)
	return args.Get(0).(time.Duration), args.Error(1)
}

func (m *MockTimelockGateway) Delay(ctx context.Context, timelock common.Address) (time.Duration, error) {
	args := m.Called(ctx, timelock)
	return args.Get(0).(time.Duration), args.Error(1)
}

func (m *MockTimelockGateway) IsQueued(ctx context.Context, timelock common.Address, txHash common.Hash) (bool, error) {
	args := m.Called(ctx, timelock, txHash)
	return args.Bool(0), args.Error(1)
}

func (m *MockTimelockGateway) TransactionEvents(ctx context.Context, timelock common.Address) (*usecase.EventBatch[models.TimelockEvent], error) {
	args := m.Called(ctx, timelock)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.EventBatch[models.TimelockEvent]), args.Error(1)
}

func (m *MockTimelockGateway) SubscribeTransactionEvents(ctx context.Context, timelock common.Address, sink chan<- models.TimelockEvent) (ethereum.Subscription, error) {
	args := m.Called(ctx, timelock, sink)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(ethereum.Subscription), args.Error(1)
}

// MockFactoryGateway is a mock implementation of FactoryGateway
type MockFactoryGateway struct {
	mock.Mock
}

func (m *MockFactoryGateway) Safes(ctx context.Context, factory common.Address, kind models.SafeKind) (*usecase.EventBatch[models.Safe], error) {
	args := m.Called(ctx, factory, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.EventBatch[models.Safe]), args.Error(1)
}

func (m *MockFactoryGateway) SubscribeSafes(ctx context.Context, factory common.Address, kind models.SafeKind, sink chan<- models.Safe) (ethereum.Subscription, error) {
	args := m.Called(ctx, factory, kind, sink)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(ethereum.Subscription), args.Error(1)
}

func (m *MockFactoryGateway) CreateSafeGuard(ctx context.Context, factory common.Address, spec models.SafeGuardSpec) (common.Hash, error) {
	args := m.Called(ctx, factory, spec)
	return args.Get(0).(common.Hash), args.Error(1)
}

func (m *MockFactoryGateway) CreateFailSafe(ctx context.Context, factory common.Address, name string, delay time.Duration) (common.Hash, error) {
	args := m.Called(ctx, factory, name, delay)
	return args.Get(0).(common.Hash), args.Error(1)
}

// MockTokenGateway is a mock implementation of TokenGateway
type MockTokenGateway struct {
	mock.Mock
}

func (m *MockTokenGateway) Symbol(ctx context.Context, token common.Address) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}

func (m *MockTokenGateway) BalanceOf(ctx context.Context, token common.Address, account common.Address) (*big.Int, error) {
	args := m.Called(ctx, token, account)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*big.Int), args.Error(1)
}

func (m *MockTokenGateway) Transfer(ctx context.Context, token common.Address, to common.Address, amount *big.Int) (common.Hash, error) {
	args := m.Called(ctx, token, to, amount)
	return args.Get(0).(common.Hash), args.Error(1)
}

// MockChainReader is a mock implementation of ChainReader
type MockChainReader struct {
	mock.Mock
}

func (m *MockChainReader) LatestBlockTime(ctx context.Context) (time.Time, error) {
	args := m.Called(ctx)
	return args.Get(0).(time.Time), args.Error(1)
}

func (m *MockChainReader) WaitForConfirmations(ctx context.Context, txHash common.Hash, confirmations uint64) (*models.Receipt, error) {
	args := m.Called(ctx, txHash, confirmations)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Receipt), args.Error(1)
}

// MockTransactionPublisher is a mock implementation of TransactionPublisher
type MockTransactionPublisher struct {
	mock.Mock
}

func (m *MockTransactionPublisher) PublishTransactions(ctx context.Context, safeGuard common.Address, txs []models.Transaction) error {
	args := m.Called(ctx, safeGuard, txs)
	return args.Error(0)
}

type staticSigner struct {
	address common.Address
	err     error
}

func (s staticSigner) Address() (common.Address, error) {
	return s.address, s.err
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

// movableClock can be advanced while a watch loop reads it
type movableClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *movableClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *movableClock) Set(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

// memoryJournal keeps every state a record passed through
type memoryJournal struct {
	mu      sync.Mutex
	records map[string]models.ActionRecord
	history map[string][]models.ActionState
	nextID  int
}

func newMemoryJournal() *memoryJournal {
	return &memoryJournal{
		records: make(map[string]models.ActionRecord),
		history: make(map[string][]models.ActionState),
	}
}

func (j *memoryJournal) Create(_ context.Context, record *models.ActionRecord) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.nextID++
	record.ID = fmt.Sprintf("action-%d", j.nextID)
	j.records[record.ID] = *record
	j.history[record.ID] = append(j.history[record.ID], record.State)
	return nil
}

func (j *memoryJournal) Update(_ context.Context, record *models.ActionRecord) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if _, ok := j.records[record.ID]; !ok {
		return domain.ErrNotFound
	}
	j.records[record.ID] = *record
	j.history[record.ID] = append(j.history[record.ID], record.State)
	return nil
}

func (j *memoryJournal) List(_ context.Context, filter usecase.ActionFilter) ([]models.ActionRecord, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	var out []models.ActionRecord
	for _, r := range j.records {
		if filter.State == "" || r.State == filter.State {
			out = append(out, r)
		}
	}
	return out, nil
}

// only returns the single journaled record
func (j *memoryJournal) only() (models.ActionRecord, []models.ActionState) {
	j.mu.Lock()
	defer j.mu.Unlock()
	for id, r := range j.records {
		return r, j.history[id]
	}
	return models.ActionRecord{}, nil
}

type recordingNotifier struct {
	mu    sync.Mutex
	notes []models.Notification
}

func (n *recordingNotifier) Notify(_ context.Context, note models.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notes = append(n.notes, note)
}

type scriptedConfirmer struct {
	answer bool
	asked  []string
}

func (c *scriptedConfirmer) Confirm(_ context.Context, prompt string) (bool, error) {
	c.asked = append(c.asked, prompt)
	return c.answer, nil
}

type firstSelector struct{}

func (firstSelector) SelectTransaction(_ context.Context, txs []models.Transaction, _ string) (*models.Transaction, error) {
	return &txs[0], nil
}

// MockProgressSink records progress events
type MockProgressSink struct {
	mu     sync.Mutex
	events []usecase.ProgressEvent
}

func (m *MockProgressSink) OnProgress(_ context.Context, event usecase.ProgressEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
}

func (m *MockProgressSink) Info(string)  {}
func (m *MockProgressSink) Error(string) {}

func (m *MockProgressSink) stages() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	stages := make([]string, len(m.events))
	for i, e := range m.events {
		stages[i] = e.Stage
	}
	return stages
}

type countingMetrics struct {
	mu      sync.Mutex
	events  []string
	dropped int
	ledgers int
}

func (m *countingMetrics) ObserveEvent(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, kind)
}

func (m *countingMetrics) ObserveDropped(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dropped += n
}

func (m *countingMetrics) ObserveLedger(domain.Ledger) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ledgers++
}

// fakeSubscription is a subscription that only ends when unsubscribed or failed
type fakeSubscription struct {
	errs         chan error
	mu           sync.Mutex
	unsubscribed bool
}

func newFakeSubscription() *fakeSubscription {
	return &fakeSubscription{errs: make(chan error, 1)}
}

func (s *fakeSubscription) Err() <-chan error { return s.errs }

func (s *fakeSubscription) Unsubscribe() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unsubscribed = true
}

func (s *fakeSubscription) isUnsubscribed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unsubscribed
}

// memoryConfigStore is an in-memory LocalConfigRepository
type memoryConfigStore struct {
	cfg    *config.LocalConfig
	exists bool
	path   string
}

func (s *memoryConfigStore) Exists() bool { return s.exists }

func (s *memoryConfigStore) Load(context.Context) (*config.LocalConfig, error) {
	if s.cfg == nil {
		return config.DefaultLocalConfig(), nil
	}
	cp := *s.cfg
	return &cp, nil
}

func (s *memoryConfigStore) Save(_ context.Context, cfg *config.LocalConfig) error {
	cp := *cfg
	s.cfg = &cp
	s.exists = true
	return nil
}

func (s *memoryConfigStore) GetPath() string { return s.path }

type staticNetworks struct {
	networks map[string]*config.Network
}

func (n staticNetworks) GetNetworks(context.Context) []string {
	names := make([]string, 0, len(n.networks))
	for name := range n.networks {
		names = append(names, name)
	}
	return names
}

func (n staticNetworks) ResolveNetwork(_ context.Context, name string) (*config.Network, error) {
	if net, ok := n.networks[name]; ok {
		return net, nil
	}
	return nil, domain.ErrNotFound
}
