//go:build wireinject
// +build wireinject

package app

import (
	"github.com/failsafe-org/safeguard-cli/internal/adapters"
	"github.com/failsafe-org/safeguard-cli/internal/config"
	"github.com/failsafe-org/safeguard-cli/internal/logging"
	"github.com/failsafe-org/safeguard-cli/internal/usecase"
	"github.com/google/wire"
	"github.com/spf13/viper"
)

// InitApp creates a fully wired App instance. The returned cleanup closes
// the RPC client, the NATS connection and the journal.
func InitApp(v *viper.Viper) (*App, func(), error) {
	wire.Build(
		// Configuration
		config.Provider,
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Use cases
		usecase.NewActionRunner,
		usecase.NewListTransactions,
		usecase.NewWatchTransactions,
		usecase.NewRequestPayment,
		usecase.NewCancelTransaction,
		usecase.NewExecuteTransaction,
		usecase.NewListRoles,
		usecase.NewWatchRoles,
		usecase.NewCallerRoles,
		usecase.NewGrantRole,
		usecase.NewRevokeRole,
		usecase.NewListSafes,
		usecase.NewCreateSafeGuard,
		usecase.NewCreateFailSafe,
		usecase.NewShowFunds,
		usecase.NewFundSafe,
		usecase.NewListActions,
		usecase.NewListNetworks,
		usecase.NewShowConfig,
		usecase.NewSetConfig,
		usecase.NewRemoveConfig,

		// App
		NewApp,
	)
	return nil, nil, nil
}
