package cli

import (
	"github.com/failsafe-org/safeguard-cli/internal/cli/render"
	"github.com/failsafe-org/safeguard-cli/internal/usecase"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

type networkView struct {
	Name       string `json:"name"`
	ChainID    uint64 `json:"chainId,omitempty"`
	Current    bool   `json:"current"`
	HasFactory bool   `json:"hasFactory"`
	Error      string `json:"error,omitempty"`
}

// NewNetworksCmd creates the networks command
func NewNetworksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "networks",
		Short: "List the networks defined in safeguard.toml",
		Long: `List all networks configured in the [networks] section of safeguard.toml.

This command shows all available networks and attempts to fetch their chain IDs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ListNetworks.Run(cmd.Context())
			if err != nil {
				return err
			}

			if out := newOutput(cmd, app); out.Structured() {
				return out.Write(lo.Map(result.Networks, func(n usecase.NetworkStatus, _ int) networkView {
					view := networkView{Name: n.Name, ChainID: n.ChainID, Current: n.Name == result.Current, HasFactory: n.HasFactory}
					if n.Error != nil {
						view.Error = n.Error.Error()
					}
					return view
				}))
			}
			return render.NewNetworksRenderer(cmd.OutOrStdout()).RenderNetworksList(result)
		},
	}
}
