package cli

import (
	"github.com/failsafe-org/safeguard-cli/internal/cli/render"
	"github.com/failsafe-org/safeguard-cli/internal/domain"
	"github.com/failsafe-org/safeguard-cli/internal/usecase"
	"github.com/spf13/cobra"
)

// NewFundsCmd creates the funds command
func NewFundsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "funds",
		Short: "Show the timelock's token balance, delay and grace period",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			info, err := app.ShowFunds.Run(cmd.Context(), usecase.ShowFundsParams{})
			if err != nil {
				return err
			}

			if out := newOutput(cmd, app); out.Structured() {
				return out.Write(info)
			}
			return render.NewFundsRenderer(cmd.OutOrStdout()).RenderInfo(info)
		},
	}
}

// NewFundCmd creates the fund command
func NewFundCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "fund <amount>",
		Short: "Transfer governance tokens from the signer to the timelock",
		Long: `Transfer <amount> governance tokens from the signer to the SafeGuard's
timelock, which pays out requested payments.

Examples:
  safeguard fund 10000
  safeguard fund 2.5 --yes`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.FundSafe.Run(cmd.Context(), usecase.FundSafeParams{
				Amount:        args[0],
				ActionOptions: usecase.ActionOptions{SkipConfirm: yes},
			})
			if err != nil {
				return err
			}

			if out := newOutput(cmd, app); out.Structured() {
				return out.Write(newActionView(result.ActionResult, map[string]string{
					"timelock": result.Timelock.Hex(),
					"amount":   domain.FormatUnits(result.Amount, domain.EtherDecimals),
				}))
			}
			return render.NewFundsRenderer(cmd.OutOrStdout()).RenderFunded(result)
		},
	}

	addActionFlags(cmd, &yes)
	return cmd
}
