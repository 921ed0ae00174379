package cli

import (
	"fmt"

	"github.com/failsafe-org/safeguard-cli/internal/app"
	"github.com/failsafe-org/safeguard-cli/internal/cli/render"
	"github.com/failsafe-org/safeguard-cli/internal/usecase"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

// NewRolesCmd creates the roles command
func NewRolesCmd() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "roles",
		Short: "Inspect and administer SafeGuard roles",
		Long: `Inspect and administer the roles of a SafeGuard.

Roles:
  admin      grants and revokes the other roles
  proposer   queues payments
  canceler   cancels queued transactions
  executor   executes transactions whose eta has passed

When run without subcommands, lists the members of every role.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listRoles(cmd, watch)
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Keep running and re-render on grants and revocations")

	cmd.AddCommand(NewRolesListCmd())
	cmd.AddCommand(NewRolesMineCmd())
	cmd.AddCommand(NewRoleChangeCmd(true))
	cmd.AddCommand(NewRoleChangeCmd(false))

	return cmd
}

// NewRolesListCmd creates the roles list subcommand
func NewRolesListCmd() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the members of every role",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listRoles(cmd, watch)
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Keep running and re-render on grants and revocations")
	return cmd
}

func listRoles(cmd *cobra.Command, watch bool) error {
	app, err := getApp(cmd)
	if err != nil {
		return err
	}

	if watch {
		return watchRoles(cmd, app)
	}

	result, err := app.ListRoles.Run(cmd.Context(), usecase.ListRolesParams{})
	if err != nil {
		return err
	}
	return writeRoles(cmd, app, result)
}

func watchRoles(cmd *cobra.Command, app *app.App) error {
	ctx := cmd.Context()
	w, err := app.WatchRoles.Start(ctx, usecase.ListRolesParams{})
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
			if err := writeRoles(cmd, app, result); err != nil {
				return err
			}
		}
	}
}

func writeRoles(cmd *cobra.Command, app *app.App, result *usecase.RoleListResult) error {
	view := render.NewRoleListView(result)
	if out := newOutput(cmd, app); out.Structured() {
		return out.Write(view)
	}
	return render.NewRolesRenderer(cmd.OutOrStdout()).RenderList(view)
}

// NewRolesMineCmd creates the roles mine subcommand
func NewRolesMineCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "mine",
		Aliases: []string{"me"},
		Short:   "Show the roles held by the configured signer",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.CallerRoles.Run(cmd.Context(), usecase.CallerRolesParams{})
			if err != nil {
				return err
			}

			if out := newOutput(cmd, app); out.Structured() {
				return out.Write(result)
			}
			return render.NewRolesRenderer(cmd.OutOrStdout()).RenderCaller(result)
		},
	}
}

// NewRoleChangeCmd creates the grant or revoke subcommand
func NewRoleChangeCmd(grant bool) *cobra.Command {
	var yes bool

	verb := lo.Ternary(grant, "grant", "revoke")
	title := lo.Ternary(grant, "Grant", "Revoke")

	cmd := &cobra.Command{
		Use:   verb + " <role> <account>",
		Short: title + " a role",
		Long: fmt.Sprintf(`%s a SafeGuard role. The signer must hold the admin role.
Available roles: admin, proposer, canceler, executor

Examples:
  safeguard roles %s proposer 0x70997970C51812dc3A010C7d01b50e0d17dc79C8
  safeguard roles %s executor 0x7099...79C8 --yes`, title, verb, verb),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			params := usecase.RoleChangeParams{
				Role:          args[0],
				Account:       args[1],
				ActionOptions: usecase.ActionOptions{SkipConfirm: yes},
			}

			var result *usecase.RoleChangeResult
			if grant {
				result, err = app.GrantRole.Run(cmd.Context(), params)
			} else {
				result, err = app.RevokeRole.Run(cmd.Context(), params)
			}
			if err != nil {
				return err
			}

			if out := newOutput(cmd, app); out.Structured() {
				return out.Write(newActionView(result.ActionResult, map[string]string{
					"role":    string(result.Role),
					"account": result.Account.Hex(),
				}))
			}
			return render.NewRolesRenderer(cmd.OutOrStdout()).RenderChange(grant, result)
		},
	}

	addActionFlags(cmd, &yes)
	return cmd
}
