package cli

import (
	"fmt"

	"github.com/failsafe-org/safeguard-cli/internal/config"
	"github.com/spf13/cobra"
)

// NewVersionCmd creates the version command
func NewVersionCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number of safeguard",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "safeguard version %s\n", config.Version)
			if verbose {
				fmt.Fprintf(cmd.OutOrStdout(), "commit: %s\nbuilt:  %s\n", config.Commit, config.Date)
			}
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Also print the commit and build date")
	return cmd
}
