package cli

import (
	"github.com/failsafe-org/safeguard-cli/internal/cli/render"
	"github.com/failsafe-org/safeguard-cli/internal/domain/models"
	"github.com/failsafe-org/safeguard-cli/internal/usecase"
	"github.com/spf13/cobra"
)

// actionView is the structured form of a confirmed action
type actionView struct {
	Action  *models.ActionRecord `json:"action"`
	Receipt *models.Receipt      `json:"receipt,omitempty"`
	Details any                  `json:"details,omitempty"`
}

func newActionView(result *usecase.ActionResult, details any) actionView {
	view := actionView{Details: details}
	if result != nil {
		view.Action = result.Record
		view.Receipt = result.Receipt
	}
	return view
}

// NewHistoryCmd creates the history command
func NewHistoryCmd() *cobra.Command {
	var (
		state string
		limit int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List the actions recorded in the local journal",
		Long: `List the actions this machine submitted, newest first. Every action ends
confirmed, failed or denied; a denied action never reached the chain.

Examples:
  safeguard history
  safeguard history --state failed --limit 5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			records, err := app.ListActions.Run(cmd.Context(), usecase.ListActionsParams{State: state, Limit: limit})
			if err != nil {
				return err
			}

			if out := newOutput(cmd, app); out.Structured() {
				return out.Write(records)
			}
			return render.NewActionsRenderer(cmd.OutOrStdout()).RenderList(records)
		},
	}

	cmd.Flags().StringVar(&state, "state", "", "Only show actions in this state (pending, submitted, confirmed, failed, denied)")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of actions to show (0 for all)")

	return cmd
}
