package config

// LocalConfig represents the local safeguard configuration
type LocalConfig struct {
	Network   string `json:"network"`
	SafeGuard string `json:"safeguard,omitempty"`
}

// ConfigKey represents a configuration key
type ConfigKey string

const (
	ConfigKeyNetwork   ConfigKey = "network"
	ConfigKeySafeGuard ConfigKey = "safeguard"
)

// DefaultLocalConfig returns the default local configuration
func DefaultLocalConfig() *LocalConfig {
	return &LocalConfig{}
}

// ValidConfigKeys returns all valid configuration keys
func ValidConfigKeys() []ConfigKey {
	return []ConfigKey{
		ConfigKeyNetwork,
		ConfigKeySafeGuard,
	}
}

// IsValidConfigKey checks if a key is valid
func IsValidConfigKey(key string) bool {
	for _, validKey := range ValidConfigKeys() {
		if string(validKey) == NormalizeConfigKey(key).String() {
			return true
		}
	}
	return false
}

// NormalizeConfigKey normalizes a config key (e.g., "sg" -> "safeguard")
func NormalizeConfigKey(key string) ConfigKey {
	switch key {
	case "sg", "safe":
		return ConfigKeySafeGuard
	case "net":
		return ConfigKeyNetwork
	}
	return ConfigKey(key)
}

func (k ConfigKey) String() string {
	return string(k)
}
