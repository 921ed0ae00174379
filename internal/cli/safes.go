package cli

import (
	"time"

	"github.com/failsafe-org/safeguard-cli/internal/app"
	"github.com/failsafe-org/safeguard-cli/internal/cli/render"
	"github.com/failsafe-org/safeguard-cli/internal/domain/models"
	"github.com/failsafe-org/safeguard-cli/internal/usecase"
	"github.com/spf13/cobra"
)

// NewSafesCmd creates the safes command
func NewSafesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "safes",
		Short: "List and create SafeGuards and FailSafes",
		Long: `List the safes created by the network's factory and create new ones.

When run without subcommands, lists the SafeGuards.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listSafes(cmd, models.SafeKindSafeGuard, false)
		},
	}

	cmd.AddCommand(NewSafesListCmd())
	cmd.AddCommand(NewCreateSafeGuardCmd())
	cmd.AddCommand(NewCreateFailSafeCmd())

	return cmd
}

// NewSafesListCmd creates the safes list subcommand
func NewSafesListCmd() *cobra.Command {
	var (
		failsafe bool
		watch    bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the safes created by the factory, oldest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := models.SafeKindSafeGuard
			if failsafe {
				kind = models.SafeKindFailSafe
			}
			return listSafes(cmd, kind, watch)
		},
	}

	cmd.Flags().BoolVar(&failsafe, "failsafe", false, "List FailSafes instead of SafeGuards")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Keep running and append newly created safes")

	return cmd
}

func listSafes(cmd *cobra.Command, kind models.SafeKind, watch bool) error {
	app, err := getApp(cmd)
	if err != nil {
		return err
	}
	params := usecase.ListSafesParams{Kind: kind}

	if !watch {
		result, err := app.ListSafes.Run(cmd.Context(), params)
		if err != nil {
			return err
		}
		return writeSafes(cmd, app, result)
	}

	ctx := cmd.Context()
	w, err := app.ListSafes.Watch(ctx, params)
	if err != nil {
		return err
	}
	defer w.Close()

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-w.Err():
			return err
		case result, ok := <-w.Updates():
			if !ok {
				return nil
			}
			if err := writeSafes(cmd, app, result); err != nil {
				return err
			}
		}
	}
}

func writeSafes(cmd *cobra.Command, app *app.App, result *usecase.SafeListResult) error {
	if out := newOutput(cmd, app); out.Structured() {
		return out.Write(result.Safes)
	}
	return render.NewSafesRenderer(cmd.OutOrStdout()).RenderList(result)
}

// NewCreateSafeGuardCmd creates the safes create-safeguard subcommand
func NewCreateSafeGuardCmd() *cobra.Command {
	var (
		name        string
		delay       time.Duration
		assignments []string
		yes         bool
	)

	cmd := &cobra.Command{
		Use:   "create-safeguard",
		Short: "Create a SafeGuard through the factory",
		Long: `Create a SafeGuard with its own timelock. Each --assign grants a role to an
address at creation; the signer becomes admin.

Examples:
  safeguard safes create-safeguard --name Grants --delay 48h
  safeguard safes create-safeguard --name Ops --delay 24h \
    --assign proposer=0x7099...79C8 --assign executor=0x3C44...93BC`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.CreateSafeGuard.Run(cmd.Context(), usecase.CreateSafeGuardParams{
				Name:          name,
				Delay:         delay,
				Assignments:   assignments,
				ActionOptions: usecase.ActionOptions{SkipConfirm: yes},
			})
			if err != nil {
				return err
			}
			return writeCreated(cmd, app, models.SafeKindSafeGuard, result)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Name recorded in the creation event (required)")
	cmd.Flags().DurationVar(&delay, "delay", 0, "Timelock delay, whole seconds (required)")
	cmd.Flags().StringArrayVar(&assignments, "assign", nil, "Role assignment as role=address (repeatable)")
	addActionFlags(cmd, &yes)
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("delay")

	return cmd
}

// NewCreateFailSafeCmd creates the safes create-failsafe subcommand
func NewCreateFailSafeCmd() *cobra.Command {
	var (
		name  string
		delay time.Duration
		yes   bool
	)

	cmd := &cobra.Command{
		Use:   "create-failsafe",
		Short: "Create a FailSafe through the factory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.CreateFailSafe.Run(cmd.Context(), usecase.CreateFailSafeParams{
				Name:          name,
				Delay:         delay,
				ActionOptions: usecase.ActionOptions{SkipConfirm: yes},
			})
			if err != nil {
				return err
			}
			return writeCreated(cmd, app, models.SafeKindFailSafe, result)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Name recorded in the creation event (required)")
	cmd.Flags().DurationVar(&delay, "delay", 0, "Timelock delay, whole seconds (required)")
	addActionFlags(cmd, &yes)
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("delay")

	return cmd
}

func writeCreated(cmd *cobra.Command, app *app.App, kind models.SafeKind, result *usecase.CreateSafeResult) error {
	if out := newOutput(cmd, app); out.Structured() {
		return out.Write(newActionView(result.ActionResult, map[string]string{
			"kind":  string(kind),
			"name":  result.Name,
			"delay": result.Delay.String(),
		}))
	}
	return render.NewSafesRenderer(cmd.OutOrStdout()).RenderCreated(kind, result)
}
