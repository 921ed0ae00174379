package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/failsafe-org/safeguard-cli/internal/domain"
	"github.com/failsafe-org/safeguard-cli/internal/domain/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// DataDirName holds local state: config.local.json and the action journal
const DataDirName = ".safeguard"

// Provider creates RuntimeConfig for Wire dependency injection
func Provider(v *viper.Viper) (*config.RuntimeConfig, error) {
	// Get project root from viper
	projectRoot := v.GetString("project_root")
	if projectRoot == "" {
		projectRoot = FindProjectRoot()
	}

	cfg := &config.RuntimeConfig{
		ProjectRoot:    projectRoot,
		DataDir:        filepath.Join(projectRoot, DataDirName),
		Debug:          v.GetBool("debug"),
		NonInteractive: v.GetBool("non_interactive"),
		Output:         config.OutputFormat(strings.ToLower(v.GetString("output"))),
		JQ:             v.GetString("jq"),
		Timeout:        v.GetDuration("timeout"),
		Actions:        config.DefaultActionsConfig(),
		ConfigSource:   "defaults",
	}

	switch cfg.Output {
	case "":
		cfg.Output = config.OutputTable
	case config.OutputTable, config.OutputJSON, config.OutputYAML:
	default:
		return nil, domain.ValidationError{Field: "output", Reason: fmt.Sprintf("unknown format %q (table, json, yaml)", cfg.Output)}
	}

	loadEnvFiles(projectRoot)

	project, err := loadProjectFile(projectRoot)
	if err != nil {
		return nil, err
	}
	if project != nil {
		cfg.ConfigSource = ProjectFileName
		cfg.Signer.PrivateKey = project.Signer.PrivateKey
		cfg.NATS.URL = project.NATS.URL
		if cfg.Actions, err = resolveActions(project.Actions); err != nil {
			return nil, err
		}
	}

	// Env and flags override the file
	if key := v.GetString("private_key"); key != "" {
		cfg.Signer.PrivateKey = key
	}
	if url := v.GetString("nats_url"); url != "" {
		cfg.NATS.URL = url
	}
	if v.IsSet("confirmations") && v.GetUint64("confirmations") > 0 {
		cfg.Actions.Confirmations = v.GetUint64("confirmations")
	}

	// Resolve network if specified
	if networkName := v.GetString("network"); networkName != "" {
		if project == nil {
			return nil, fmt.Errorf("network %q: %s not found in %s", networkName, ProjectFileName, projectRoot)
		}
		raw, ok := project.Networks[networkName]
		if !ok {
			return nil, fmt.Errorf("%w: network %q is not defined in %s (available: %s)",
				domain.ErrNotFound, networkName, ProjectFileName, strings.Join(NetworkNames(project), ", "))
		}
		cfg.Network, err = resolveNetwork(networkName, raw)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve network %s: %w", networkName, err)
		}
		cfg.SafeGuard = cfg.Network.SafeGuard
	}

	if sg := v.GetString("safeguard"); sg != "" {
		addr, err := ParseAddress(sg)
		if err != nil {
			return nil, fmt.Errorf("safeguard: %w", err)
		}
		cfg.SafeGuard = addr
	}

	return cfg, nil
}

// NetworkNames lists the networks defined in the project file, sorted
func NetworkNames(project *config.ProjectFile) []string {
	if project == nil {
		return nil
	}
	names := make([]string, 0, len(project.Networks))
	for name := range project.Networks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadNetworks resolves every network of the project file
func LoadNetworks(projectRoot string) ([]*config.Network, error) {
	project, err := loadProjectFile(projectRoot)
	if err != nil || project == nil {
		return nil, err
	}
	networks := make([]*config.Network, 0, len(project.Networks))
	for _, name := range NetworkNames(project) {
		network, err := resolveNetwork(name, project.Networks[name])
		if err != nil {
			return nil, err
		}
		networks = append(networks, network)
	}
	return networks, nil
}

// ProjectNetworkNames lists the network names of the project file under projectRoot
func ProjectNetworkNames(projectRoot string) ([]string, error) {
	project, err := loadProjectFile(projectRoot)
	if err != nil {
		return nil, err
	}
	return NetworkNames(project), nil
}

// ResolveProjectNetwork resolves a single network of the project file under projectRoot
func ResolveProjectNetwork(projectRoot, name string) (*config.Network, error) {
	project, err := loadProjectFile(projectRoot)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, fmt.Errorf("%w: no %s in %s", domain.ErrNotFound, ProjectFileName, projectRoot)
	}
	raw, ok := project.Networks[name]
	if !ok {
		return nil, fmt.Errorf("%w: network %q", domain.ErrNotFound, name)
	}
	return resolveNetwork(name, raw)
}

// FindProjectRoot walks up from the current directory to find safeguard.toml.
// Falls back to the working directory so commands such as `version` work anywhere.
func FindProjectRoot() string {
	cwd, err := os.Getwd()
	if err != nil {
		return "."
	}

	dir := cwd
	for {
		if _, err := os.Stat(filepath.Join(dir, ProjectFileName)); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return cwd
		}
		dir = parent
	}
}

// SetupViper creates and configures a viper instance
func SetupViper(projectRoot string, cmd *cobra.Command) *viper.Viper {
	v := viper.New()

	// Set up config file
	v.SetConfigName("config.local")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(projectRoot, DataDirName))

	// Set up environment variables
	v.SetEnvPrefix("SAFEGUARD")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	// Set defaults
	v.SetDefault("timeout", "5m")
	v.SetDefault("debug", false)
	v.SetDefault("non_interactive", false)
	v.SetDefault("output", string(config.OutputTable))
	v.SetDefault("project_root", projectRoot)

	// Try to read config file (ignore error if not found)
	_ = v.ReadInConfig()

	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		key := strings.ReplaceAll(f.Name, "-", "_")
		if err := v.BindPFlag(key, f); err != nil {
			panic(err)
		}
	})

	return v
}
