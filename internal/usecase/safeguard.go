package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/failsafe-org/safeguard-cli/internal/domain"
	"github.com/failsafe-org/safeguard-cli/internal/domain/config"
)

// resolveSafeGuard picks the explicit address, falling back to the configured one
func resolveSafeGuard(cfg *config.RuntimeConfig, explicit common.Address) (common.Address, error) {
	if explicit != (common.Address{}) {
		return explicit, nil
	}
	if cfg.SafeGuard != (common.Address{}) {
		return cfg.SafeGuard, nil
	}
	return common.Address{}, fmt.Errorf("%w: pass --safeguard or run `safeguard config set safeguard <address>`", domain.ErrNoSafeGuard)
}

// resolveTimelock reads safeGuard.timelock() unless the network pins the pair
func resolveTimelock(ctx context.Context, cfg *config.RuntimeConfig, gw SafeGuardGateway, safeGuard common.Address) (common.Address, error) {
	if n := cfg.Network; n != nil && n.Timelock != (common.Address{}) && n.SafeGuard == safeGuard {
		return n.Timelock, nil
	}
	timelock, err := gw.Timelock(ctx, safeGuard)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to read timelock of %s: %w", safeGuard.Hex(), err)
	}
	return timelock, nil
}

func requireNetwork(cfg *config.RuntimeConfig) (*config.Network, error) {
	if cfg.Network == nil {
		return nil, fmt.Errorf("no network selected: pass --network or run `safeguard config set network <name>`")
	}
	return cfg.Network, nil
}

func requireContract(addr common.Address, field string) error {
	if addr == (common.Address{}) {
		return domain.ValidationError{Field: field, Reason: "is not configured for this network"}
	}
	return nil
}

// parseAddressField validates a user-supplied address
func parseAddressField(field, value string) (common.Address, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return common.Address{}, domain.ValidationError{Field: field, Reason: "is required"}
	}
	if !common.IsHexAddress(value) {
		return common.Address{}, fmt.Errorf("%s: %w: %q", field, domain.ErrInvalidAddress, value)
	}
	return common.HexToAddress(value), nil
}

// ParseTxHash validates a 32-byte hex transaction hash
func ParseTxHash(value string) (common.Hash, error) {
	value = strings.TrimSpace(value)
	raw := strings.TrimPrefix(strings.TrimPrefix(value, "0x"), "0X")
	if len(raw) != 2*common.HashLength {
		return common.Hash{}, domain.ValidationError{Field: "tx-hash", Reason: fmt.Sprintf("%q is not a 32-byte hex hash", value)}
	}
	for _, r := range raw {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return common.Hash{}, domain.ValidationError{Field: "tx-hash", Reason: fmt.Sprintf("%q is not a 32-byte hex hash", value)}
		}
	}
	return common.HexToHash(raw), nil
}
