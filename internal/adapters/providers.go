package adapters

import (
	"github.com/failsafe-org/safeguard-cli/internal/adapters/blockchain"
	internalconfig "github.com/failsafe-org/safeguard-cli/internal/adapters/config"
	"github.com/failsafe-org/safeguard-cli/internal/adapters/fs"
	"github.com/failsafe-org/safeguard-cli/internal/adapters/interactive"
	"github.com/failsafe-org/safeguard-cli/internal/adapters/journal"
	"github.com/failsafe-org/safeguard-cli/internal/adapters/messaging"
	"github.com/failsafe-org/safeguard-cli/internal/adapters/metrics"
	"github.com/failsafe-org/safeguard-cli/internal/adapters/notify"
	"github.com/failsafe-org/safeguard-cli/internal/adapters/progress"
	"github.com/failsafe-org/safeguard-cli/internal/usecase"
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
)

// ProvideRegistry provides the registry the reconciler metrics are registered on
func ProvideRegistry() *prometheus.Registry {
	return prometheus.NewRegistry()
}

// FSSet provides filesystem-based implementations
var FSSet = wire.NewSet(
	fs.NewLocalConfigStoreAdapter,
	wire.Bind(new(usecase.LocalConfigRepository), new(*fs.LocalConfigStoreAdapter)),
)

// InteractiveSet provides interactive implementations
var InteractiveSet = wire.NewSet(
	interactive.NewSelectorAdapter,
	wire.Bind(new(usecase.TransactionSelector), new(*interactive.SelectorAdapter)),
	wire.Bind(new(usecase.Confirmer), new(*interactive.SelectorAdapter)),
	progress.NewProgressSink,
)

// ConfigSet provides configuration-based implementations
var ConfigSet = wire.NewSet(
	internalconfig.NewNetworkResolverAdapter,
	wire.Bind(new(usecase.NetworkResolver), new(*internalconfig.NetworkResolverAdapter)),
)

// BlockchainSet provides the RPC client and the contract gateways built on it
var BlockchainSet = wire.NewSet(
	blockchain.NewClient,
	wire.Bind(new(usecase.ChainReader), new(*blockchain.Client)),
	wire.Bind(new(usecase.Signer), new(*blockchain.Client)),

	blockchain.NewSafeGuardGateway,
	wire.Bind(new(usecase.SafeGuardGateway), new(*blockchain.SafeGuardGateway)),

	blockchain.NewTimelockGateway,
	wire.Bind(new(usecase.TimelockGateway), new(*blockchain.TimelockGateway)),

	blockchain.NewFactoryGateway,
	wire.Bind(new(usecase.FactoryGateway), new(*blockchain.FactoryGateway)),

	blockchain.NewTokenGateway,
	wire.Bind(new(usecase.TokenGateway), new(*blockchain.TokenGateway)),
)

// JournalSet provides the sqlite action journal
var JournalSet = wire.NewSet(
	journal.NewStore,
	wire.Bind(new(usecase.ActionJournal), new(*journal.Store)),
)

// MessagingSet provides NATS fan-out and notifications
var MessagingSet = wire.NewSet(
	messaging.NewConn,
	messaging.NewTransactionPublisher,
	wire.Bind(new(usecase.TransactionPublisher), new(*messaging.TransactionPublisher)),
	notify.NewNotifier,
)

// MetricsSet provides the prometheus reconciler metrics
var MetricsSet = wire.NewSet(
	ProvideRegistry,
	wire.Bind(new(prometheus.Registerer), new(*prometheus.Registry)),
	wire.Bind(new(prometheus.Gatherer), new(*prometheus.Registry)),
	metrics.NewMetrics,
	wire.Bind(new(usecase.ReconcilerMetrics), new(*metrics.Metrics)),
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	FSSet,
	InteractiveSet,
	ConfigSet,
	BlockchainSet,
	JournalSet,
	MessagingSet,
	MetricsSet,
	wire.InterfaceValue(new(usecase.Clock), usecase.SystemClock{}),
)
