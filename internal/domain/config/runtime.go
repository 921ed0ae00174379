package config

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot string
	DataDir     string

	// Context settings
	Network   *Network       // nil if not specified
	SafeGuard common.Address // zero if not selected

	// Execution settings
	Debug          bool
	NonInteractive bool
	Output         OutputFormat
	JQ             string
	Timeout        time.Duration

	// Resolved configurations
	Signer  SignerConfig
	NATS    NATSConfig
	Actions ActionsConfig

	// Config source tracking
	ConfigSource string // "safeguard.toml" or "defaults"
}

// OutputFormat selects how query results are printed
type OutputFormat string

const (
	OutputTable OutputFormat = "table"
	OutputJSON  OutputFormat = "json"
	OutputYAML  OutputFormat = "yaml"
)

// Network represents network configuration
type Network struct {
	Name        string         `json:"name"`
	ChainID     uint64         `json:"chainId"`
	RPCURL      string         `json:"rpcUrl"`
	ExplorerURL string         `json:"explorerUrl,omitempty"`
	Factory     common.Address `json:"factory"`
	Token       common.Address `json:"token"`
	Registry    common.Address `json:"registry"`
	SafeGuard   common.Address `json:"safeguard,omitempty"`
	Timelock    common.Address `json:"timelock,omitempty"`
}

// SignerConfig holds the key used to sign transactions
type SignerConfig struct {
	PrivateKey string `json:"-"`
}

// Configured reports whether a signing key is available
func (s SignerConfig) Configured() bool {
	return s.PrivateKey != ""
}

// NATSConfig enables publishing notifications and transaction updates
type NATSConfig struct {
	URL string `json:"url,omitempty"`
}

// ActionsConfig tunes how submitted transactions are awaited
type ActionsConfig struct {
	Confirmations       uint64        `json:"confirmations"`
	ConfirmationTimeout time.Duration `json:"confirmationTimeout"`
	EtaMargin           time.Duration `json:"etaMargin"`
	PollInterval        time.Duration `json:"pollInterval"`
}

// DefaultActionsConfig mirrors the values used when safeguard.toml is silent
func DefaultActionsConfig() ActionsConfig {
	return ActionsConfig{
		Confirmations:       3,
		ConfirmationTimeout: 5 * time.Minute,
		EtaMargin:           5 * time.Minute,
		PollInterval:        2 * time.Second,
	}
}
