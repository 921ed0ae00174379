package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/ethereum/go-ethereum/common"
	"github.com/failsafe-org/safeguard-cli/internal/domain"
	"github.com/failsafe-org/safeguard-cli/internal/domain/config"
	"github.com/joho/godotenv"
)

// ProjectFileName is the project configuration file looked up from the working directory
const ProjectFileName = "safeguard.toml"

// loadEnvFiles loads .env files for variable expansion. Existing variables win.
func loadEnvFiles(projectRoot string) {
	envFiles := []string{
		filepath.Join(projectRoot, ".env"),
		filepath.Join(projectRoot, ".env.local"),
	}

	for _, envFile := range envFiles {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				// Log warning but don't fail
				fmt.Fprintf(os.Stderr, "Warning: Failed to load %s: %v\n", envFile, err)
			}
		}
	}
}

// loadProjectFile loads and parses safeguard.toml.
// Returns (nil, nil) when the file does not exist.
func loadProjectFile(projectRoot string) (*config.ProjectFile, error) {
	path := filepath.Join(projectRoot, ProjectFileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}

	var cfg config.ProjectFile
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", ProjectFileName, err)
	}

	for name, network := range cfg.Networks {
		network.RPCURL = os.ExpandEnv(network.RPCURL)
		network.ExplorerURL = os.ExpandEnv(network.ExplorerURL)
		network.Factory = os.ExpandEnv(network.Factory)
		network.Token = os.ExpandEnv(network.Token)
		network.Registry = os.ExpandEnv(network.Registry)
		network.SafeGuard = os.ExpandEnv(network.SafeGuard)
		network.Timelock = os.ExpandEnv(network.Timelock)
		cfg.Networks[name] = network
	}
	cfg.Signer.PrivateKey = os.ExpandEnv(cfg.Signer.PrivateKey)
	cfg.NATS.URL = os.ExpandEnv(cfg.NATS.URL)

	return &cfg, nil
}

// resolveNetwork converts a [networks.<name>] block into a Network
func resolveNetwork(name string, raw config.NetworkFile) (*config.Network, error) {
	if raw.RPCURL == "" {
		return nil, domain.ValidationError{Field: "networks." + name + ".rpc_url", Reason: "is required"}
	}

	network := &config.Network{
		Name:        name,
		ChainID:     raw.ChainID,
		RPCURL:      raw.RPCURL,
		ExplorerURL: raw.ExplorerURL,
	}

	addresses := []struct {
		field  string
		value  string
		target *common.Address
	}{
		{"factory", raw.Factory, &network.Factory},
		{"token", raw.Token, &network.Token},
		{"registry", raw.Registry, &network.Registry},
		{"safeguard", raw.SafeGuard, &network.SafeGuard},
		{"timelock", raw.Timelock, &network.Timelock},
	}
	for _, a := range addresses {
		if a.value == "" {
			continue
		}
		addr, err := ParseAddress(a.value)
		if err != nil {
			return nil, fmt.Errorf("networks.%s.%s: %w", name, a.field, err)
		}
		*a.target = addr
	}

	return network, nil
}

// resolveActions applies [actions] over the defaults
func resolveActions(raw config.ActionsFile) (config.ActionsConfig, error) {
	actions := config.DefaultActionsConfig()
	if raw.Confirmations != nil {
		actions.Confirmations = *raw.Confirmations
	}

	durations := []struct {
		field  string
		value  string
		target *time.Duration
	}{
		{"confirmation_timeout", raw.ConfirmationTimeout, &actions.ConfirmationTimeout},
		{"eta_margin", raw.EtaMargin, &actions.EtaMargin},
		{"poll_interval", raw.PollInterval, &actions.PollInterval},
	}
	for _, d := range durations {
		if d.value == "" {
			continue
		}
		parsed, err := time.ParseDuration(d.value)
		if err != nil || parsed < 0 {
			return actions, domain.ValidationError{Field: "actions." + d.field, Reason: fmt.Sprintf("invalid duration %q", d.value)}
		}
		*d.target = parsed
	}

	return actions, nil
}

// ParseAddress validates a hex address string
func ParseAddress(value string) (common.Address, error) {
	value = strings.TrimSpace(value)
	if !common.IsHexAddress(value) {
		return common.Address{}, fmt.Errorf("%w: %q", domain.ErrInvalidAddress, value)
	}
	return common.HexToAddress(value), nil
}
