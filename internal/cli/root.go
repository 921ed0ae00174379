package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/failsafe-org/safeguard-cli/internal/app"
	"github.com/failsafe-org/safeguard-cli/internal/cli/render"
	"github.com/failsafe-org/safeguard-cli/internal/config"
	domainconfig "github.com/failsafe-org/safeguard-cli/internal/domain/config"
	"github.com/spf13/cobra"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"

	// streamingAnnotation marks commands that run until interrupted and ignore --timeout
	streamingAnnotation = "safeguard/streaming"
)

// session owns the resources created for one command invocation
type session struct {
	cleanup func()
	cancel  context.CancelFunc
}

func (s *session) close() {
	if s.cancel != nil {
		s.cancel()
	}
	if s.cleanup != nil {
		s.cleanup()
	}
}

// Execute runs the root command and releases the app resources afterwards
func Execute(ctx context.Context) error {
	s := &session{}
	defer s.close()
	return newRootCmd(s).ExecuteContext(ctx)
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(&session{})
}

func newRootCmd(s *session) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "safeguard",
		Short: "Operate SafeGuard timelocked treasuries",
		Long: `safeguard manages SafeGuard and FailSafe contracts: it lists and watches the
transactions queued in their timelocks, requests payments, cancels and executes
queued transactions, and administers the roles allowed to do so.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip for help/version commands
			if cmd.Name() == "version" || cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}

			projectRoot := config.FindProjectRoot()
			v := config.SetupViper(projectRoot, cmd)

			appInstance, cleanup, err := app.InitApp(v)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}
			s.cleanup = cleanup

			if shouldWarnMissingProject(cmd.Name(), appInstance.Config) {
				fmt.Fprintln(cmd.ErrOrStderr(), render.FormatWarning(
					fmt.Sprintf("no %s found, only --safeguard and environment settings apply", config.ProjectFileName)))
			}

			ctx := context.WithValue(cmd.Context(), appKey, appInstance)
			if appInstance.Config.Timeout > 0 && !isStreaming(cmd) {
				ctx, s.cancel = context.WithTimeout(ctx, appInstance.Config.Timeout)
			}
			cmd.SetContext(ctx)

			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable interactive prompts")
	rootCmd.PersistentFlags().StringP("network", "n", "", "Network from safeguard.toml (e.g. mainnet, sepolia)")
	rootCmd.PersistentFlags().String("safeguard", "", "SafeGuard address (overrides the network default)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output format: table, json or yaml")
	rootCmd.PersistentFlags().String("jq", "", "jq filter applied to the structured output")
	rootCmd.PersistentFlags().Duration("timeout", 0, "Abort the command after this duration (default 5m)")
	rootCmd.PersistentFlags().String("nats-url", "", "NATS server used to publish transaction and action events")

	rootCmd.AddGroup(&cobra.Group{
		ID:    "main",
		Title: "Main Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "admin",
		Title: "Administration Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands",
	})

	for _, cmd := range []*cobra.Command{NewTransactionsCmd(), NewFundsCmd(), NewFundCmd()} {
		cmd.GroupID = "main"
		rootCmd.AddCommand(cmd)
	}
	for _, cmd := range []*cobra.Command{NewRolesCmd(), NewSafesCmd()} {
		cmd.GroupID = "admin"
		rootCmd.AddCommand(cmd)
	}
	for _, cmd := range []*cobra.Command{NewHistoryCmd(), NewNetworksCmd(), NewConfigCmd()} {
		cmd.GroupID = "management"
		rootCmd.AddCommand(cmd)
	}

	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// shouldWarnMissingProject reports whether the command runs without a safeguard.toml
func shouldWarnMissingProject(cmdName string, cfg *domainconfig.RuntimeConfig) bool {
	if cmdName == "version" || cmdName == "help" || cmdName == "completion" || cmdName == "config" {
		return false
	}
	if cfg.NonInteractive {
		return false
	}
	return cfg.ConfigSource == "defaults"
}

// isStreaming reports whether cmd keeps running until interrupted
func isStreaming(cmd *cobra.Command) bool {
	if cmd.Annotations[streamingAnnotation] == "true" {
		return true
	}
	watch, err := cmd.Flags().GetBool("watch")
	return err == nil && watch
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	app, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return app, nil
}

// newOutput returns the structured writer configured for the invocation
func newOutput(cmd *cobra.Command, a *app.App) *render.Output {
	return render.NewOutput(cmd.OutOrStdout(), a.Config.Output, a.Config.JQ)
}

// Main runs the CLI and returns the process exit code
func Main(ctx context.Context) int {
	if err := Execute(ctx); err != nil {
		fmt.Fprintln(os.Stderr, render.FormatError(err.Error()))
		return 1
	}
	return 0
}
