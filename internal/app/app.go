package app

import (
	"log/slog"

	"github.com/failsafe-org/safeguard-cli/internal/domain/config"
	"github.com/failsafe-org/safeguard-cli/internal/usecase"
	"github.com/prometheus/client_golang/prometheus"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig

	// Shared dependencies
	Log     *slog.Logger
	Metrics prometheus.Gatherer

	// Transactions
	ListTransactions   *usecase.ListTransactions
	WatchTransactions  *usecase.WatchTransactions
	RequestPayment     *usecase.RequestPayment
	CancelTransaction  *usecase.CancelTransaction
	ExecuteTransaction *usecase.ExecuteTransaction

	// Roles
	ListRoles   *usecase.ListRoles
	WatchRoles  *usecase.WatchRoles
	CallerRoles *usecase.CallerRoles
	GrantRole   *usecase.GrantRole
	RevokeRole  *usecase.RevokeRole

	// Safes and funds
	ListSafes       *usecase.ListSafes
	CreateSafeGuard *usecase.CreateSafeGuard
	CreateFailSafe  *usecase.CreateFailSafe
	ShowFunds       *usecase.ShowFunds
	FundSafe        *usecase.FundSafe

	// Local state
	ListActions  *usecase.ListActions
	ListNetworks *usecase.ListNetworks
	ShowConfig   *usecase.ShowConfig
	SetConfig    *usecase.SetConfig
	RemoveConfig *usecase.RemoveConfig
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	log *slog.Logger,
	metrics prometheus.Gatherer,
	listTransactions *usecase.ListTransactions,
	watchTransactions *usecase.WatchTransactions,
	requestPayment *usecase.RequestPayment,
	cancelTransaction *usecase.CancelTransaction,
	executeTransaction *usecase.ExecuteTransaction,
	listRoles *usecase.ListRoles,
	watchRoles *usecase.WatchRoles,
	callerRoles *usecase.CallerRoles,
	grantRole *usecase.GrantRole,
	revokeRole *usecase.RevokeRole,
	listSafes *usecase.ListSafes,
	createSafeGuard *usecase.CreateSafeGuard,
	createFailSafe *usecase.CreateFailSafe,
	showFunds *usecase.ShowFunds,
	fundSafe *usecase.FundSafe,
	listActions *usecase.ListActions,
	listNetworks *usecase.ListNetworks,
	showConfig *usecase.ShowConfig,
	setConfig *usecase.SetConfig,
	removeConfig *usecase.RemoveConfig,
) (*App, error) {
	return &App{
		Config:             cfg,
		Log:                log,
		Metrics:            metrics,
		ListTransactions:   listTransactions,
		WatchTransactions:  watchTransactions,
		RequestPayment:     requestPayment,
		CancelTransaction:  cancelTransaction,
		ExecuteTransaction: executeTransaction,
		ListRoles:          listRoles,
		WatchRoles:         watchRoles,
		CallerRoles:        callerRoles,
		GrantRole:          grantRole,
		RevokeRole:         revokeRole,
		ListSafes:          listSafes,
		CreateSafeGuard:    createSafeGuard,
		CreateFailSafe:     createFailSafe,
		ShowFunds:          showFunds,
		FundSafe:           fundSafe,
		ListActions:        listActions,
		ListNetworks:       listNetworks,
		ShowConfig:         showConfig,
		SetConfig:          setConfig,
		RemoveConfig:       removeConfig,
	}, nil
}
