package render

import (
	"fmt"
	"io"

	"github.com/failsafe-org/safeguard-cli/internal/domain/config"
	"github.com/failsafe-org/safeguard-cli/internal/usecase"
)

// ConfigRenderer renders config-related output
type ConfigRenderer struct {
	out io.Writer
}

// NewConfigRenderer creates a new config renderer
func NewConfigRenderer(out io.Writer) *ConfigRenderer {
	return &ConfigRenderer{
		out: out,
	}
}

// RenderConfig renders the configuration display
func (r *ConfigRenderer) RenderConfig(result *usecase.ShowConfigResult) error {
	if !result.Exists {
		fmt.Fprintf(r.out, "❌ No .safeguard/config.local.json file found\n")
		fmt.Fprintf(r.out, "⚠️  Without config, commands require explicit --network and --safeguard flags\n")
		return nil
	}

	fmt.Fprintln(r.out, "📋 Current config:")

	fmt.Fprintf(r.out, "Network:   %s\n", orNotSet(result.Config.Network))
	fmt.Fprintf(r.out, "SafeGuard: %s\n", orNotSet(result.Config.SafeGuard))

	if result.ConfigSource == "safeguard.toml" {
		fmt.Fprintf(r.out, "\n📦 Config source: safeguard.toml\n")
	} else {
		fmt.Fprintf(r.out, "\n📦 Config source: defaults (no safeguard.toml)\n")
	}

	fmt.Fprintf(r.out, "📁 config file: %s\n", getRelativePath(result.ConfigPath))

	return nil
}

func orNotSet(value string) string {
	if value == "" {
		return "(not set)"
	}
	return value
}

// RenderSet renders the result of setting a configuration value
func (r *ConfigRenderer) RenderSet(result *usecase.SetConfigResult) error {
	fmt.Fprintf(r.out, "✅ Set %s to: %s\n", result.Key, result.Value)
	fmt.Fprintf(r.out, "📁 config saved to: %s\n", getRelativePath(result.ConfigPath))
	return nil
}

// RenderRemove renders the result of removing a configuration value
func (r *ConfigRenderer) RenderRemove(result *usecase.RemoveConfigResult) error {
	switch result.Key {
	case config.ConfigKeySafeGuard:
		fmt.Fprintf(r.out, "✅ Removed safeguard from config (will be required as flag)\n")
	case config.ConfigKeyNetwork:
		fmt.Fprintf(r.out, "✅ Removed network from config (will be required as flag)\n")
	}

	fmt.Fprintf(r.out, "📁 config saved to: %s\n", getRelativePath(result.ConfigPath))
	return nil
}
