package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/failsafe-org/safeguard-cli/internal/domain"
	"github.com/failsafe-org/safeguard-cli/internal/domain/config"
	"github.com/samber/lo"
)

// SetConfigParams contains parameters for setting configuration
type SetConfigParams struct {
	Key   string
	Value string
}

// SetConfigResult contains the result of setting configuration
type SetConfigResult struct {
	UpdatedConfig *config.LocalConfig
	ConfigPath    string
	Key           config.ConfigKey
	Value         string
}

// SetConfig is a use case for setting configuration values
type SetConfig struct {
	store    LocalConfigRepository
	networks NetworkResolver
}

// NewSetConfig creates a new SetConfig use case
func NewSetConfig(store LocalConfigRepository, networks NetworkResolver) *SetConfig {
	return &SetConfig{
		store:    store,
		networks: networks,
	}
}

// Run executes the set config use case
func (uc *SetConfig) Run(ctx context.Context, params SetConfigParams) (*SetConfigResult, error) {
	normalizedKey, err := normalizeKey(params.Key)
	if err != nil {
		return nil, err
	}

	// Load existing config or create new one
	cfg, err := uc.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	value := strings.TrimSpace(params.Value)
	switch normalizedKey {
	case config.ConfigKeyNetwork:
		names := uc.networks.GetNetworks(ctx)
		if !lo.Contains(names, value) {
			return nil, fmt.Errorf("%w: network %q (available: %s)", domain.ErrNotFound, value, strings.Join(names, ", "))
		}
		cfg.Network = value
	case config.ConfigKeySafeGuard:
		if !common.IsHexAddress(value) {
			return nil, fmt.Errorf("%w: %q", domain.ErrInvalidAddress, value)
		}
		value = common.HexToAddress(value).Hex()
		cfg.SafeGuard = value
	}

	// Save the updated config
	if err := uc.store.Save(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to save config: %w", err)
	}

	return &SetConfigResult{
		UpdatedConfig: cfg,
		ConfigPath:    uc.store.GetPath(),
		Key:           normalizedKey,
		Value:         value,
	}, nil
}

func normalizeKey(key string) (config.ConfigKey, error) {
	key = strings.ToLower(key)
	if !config.IsValidConfigKey(key) {
		validKeys := lo.Map(config.ValidConfigKeys(), func(k config.ConfigKey, _ int) string {
			if k == config.ConfigKeySafeGuard {
				return string(k) + " (sg)"
			}
			return string(k)
		})
		return "", fmt.Errorf("unknown config key: %s\nAvailable keys: %s", key, strings.Join(validKeys, ", "))
	}
	return config.NormalizeConfigKey(key), nil
}
