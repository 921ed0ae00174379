package config

// ProjectFile is the raw safeguard.toml structure
type ProjectFile struct {
	Networks map[string]NetworkFile `toml:"networks"`
	Signer   SignerFile             `toml:"signer"`
	NATS     NATSFile               `toml:"nats"`
	Actions  ActionsFile            `toml:"actions"`
}

// NetworkFile is one [networks.<name>] block
type NetworkFile struct {
	RPCURL      string `toml:"rpc_url"`
	ChainID     uint64 `toml:"chain_id"`
	ExplorerURL string `toml:"explorer_url"`
	Factory     string `toml:"factory"`
	Token       string `toml:"token"`
	Registry    string `toml:"registry"`
	SafeGuard   string `toml:"safeguard"`
	Timelock    string `toml:"timelock"`
}

// SignerFile is the [signer] block
type SignerFile struct {
	PrivateKey string `toml:"private_key"`
}

// NATSFile is the [nats] block
type NATSFile struct {
	URL string `toml:"url"`
}

// ActionsFile is the [actions] block; durations use Go syntax ("90s", "5m")
type ActionsFile struct {
	Confirmations       *uint64 `toml:"confirmations"`
	ConfirmationTimeout string  `toml:"confirmation_timeout"`
	EtaMargin           string  `toml:"eta_margin"`
	PollInterval        string  `toml:"poll_interval"`
}
