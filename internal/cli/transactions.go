package cli

import (
	"fmt"
	"time"

	"github.com/failsafe-org/safeguard-cli/internal/adapters/metrics"
	"github.com/failsafe-org/safeguard-cli/internal/cli/render"
	"github.com/failsafe-org/safeguard-cli/internal/domain/models"
	"github.com/failsafe-org/safeguard-cli/internal/usecase"
	"github.com/spf13/cobra"
)

// NewTransactionsCmd creates the transactions command
func NewTransactionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "transactions",
		Aliases: []string{"tx", "txs"},
		Short:   "List and operate timelocked transactions",
		Long: `List the transactions queued in the SafeGuard's timelock and act on them.

The ledger is rebuilt from the timelock's QueueTransaction, CancelTransaction
and ExecuteTransaction events. Each entry's hash is recomputed from its fields
and entries that do not verify are dropped.

When run without subcommands, lists the ledger.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listTransactions(cmd)
		},
	}

	cmd.AddCommand(NewTransactionsListCmd())
	cmd.AddCommand(NewTransactionsShowCmd())
	cmd.AddCommand(NewTransactionsWatchCmd())
	cmd.AddCommand(NewRequestPaymentCmd())
	cmd.AddCommand(NewCancelCmd())
	cmd.AddCommand(NewExecuteCmd())

	return cmd
}

// NewTransactionsListCmd creates the transactions list subcommand
func NewTransactionsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List timelocked transactions, newest eta first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listTransactions(cmd)
		},
	}
}

func listTransactions(cmd *cobra.Command) error {
	app, err := getApp(cmd)
	if err != nil {
		return err
	}

	result, err := app.ListTransactions.Run(cmd.Context(), usecase.ListTransactionsParams{})
	if err != nil {
		return err
	}

	view := render.NewTransactionListView(result.SafeGuard, result.Timelock, result.Ledger, result.Dropped)
	if out := newOutput(cmd, app); out.Structured() {
		return out.Write(view)
	}
	return render.NewTransactionsRenderer(cmd.OutOrStdout()).RenderList(view, result.Ledger.Now)
}

// NewTransactionsShowCmd creates the transactions show subcommand
func NewTransactionsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <tx-hash>",
		Short: "Show a timelocked transaction",
		Long: `Show a single timelocked transaction with its decoded payment, eta and
expiry. The hash is the timelock's identity of the call, not a chain tx hash.

Examples:
  safeguard tx show 0x6c2f...e1a9
  safeguard tx show 0x6c2f...e1a9 -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			txHash, err := usecase.ParseTxHash(args[0])
			if err != nil {
				return err
			}

			result, err := app.ListTransactions.Run(cmd.Context(), usecase.ListTransactionsParams{})
			if err != nil {
				return err
			}
			tx, err := result.FindTransaction(txHash)
			if err != nil {
				return err
			}

			view := render.NewTransactionView(tx, result.GracePeriod(), result.Ledger.Now)
			if out := newOutput(cmd, app); out.Structured() {
				return out.Write(view)
			}
			return render.NewTransactionsRenderer(cmd.OutOrStdout()).RenderDetail(view, result.Ledger.Now)
		},
	}
}

// NewTransactionsWatchCmd creates the transactions watch subcommand
func NewTransactionsWatchCmd() *cobra.Command {
	var (
		metricsAddr   string
		staleInterval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Follow the ledger as transactions are queued, canceled and executed",
		Long: `Subscribe to the timelock's events and re-render the ledger on every change.
Transactions whose grace period runs out are marked stale without a new event.

Each change is published to NATS when a server is configured. With
--metrics-addr, Prometheus metrics are served at /metrics while watching.

Examples:
  safeguard tx watch
  safeguard tx watch -o json --jq '.transactions | length'
  safeguard tx watch --metrics-addr :9102`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{streamingAnnotation: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			if metricsAddr != "" {
				go func() {
					if err := metrics.Serve(ctx, metricsAddr, app.Metrics, app.Log); err != nil {
						app.Log.Error("metrics server stopped", "addr", metricsAddr, "error", err)
					}
				}()
			}

			w, err := app.WatchTransactions.Start(ctx, usecase.WatchTransactionsParams{StaleCheckInterval: staleInterval})
			if err != nil {
				return err
			}
			defer w.Close()

			out := newOutput(cmd, app)
			renderer := render.NewTransactionsRenderer(cmd.OutOrStdout())
			for {
				select {
				case <-ctx.Done():
					return nil
				case err := <-w.Err():
					return err
				case ledger, ok := <-w.Updates():
					if !ok {
						return nil
					}
					view := render.NewTransactionListView(w.SafeGuard, w.Timelock, ledger, 0)
					if out.Structured() {
						if err := out.Write(view); err != nil {
							return err
						}
						continue
					}
					fmt.Fprintf(cmd.OutOrStdout(), "\n── %s ──\n", ledger.Now.Local().Format(time.TimeOnly))
					if err := renderer.RenderList(view, ledger.Now); err != nil {
						return err
					}
				}
			}
		},
	}

	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address while watching")
	cmd.Flags().DurationVar(&staleInterval, "stale-interval", time.Minute, "How often expired transactions are re-evaluated")

	return cmd
}

// NewRequestPaymentCmd creates the request-payment subcommand
func NewRequestPaymentCmd() *cobra.Command {
	var (
		description string
		yes         bool
	)

	cmd := &cobra.Command{
		Use:   "request-payment <recipient> <amount>",
		Short: "Queue a token payment through the timelock",
		Long: `Queue an ERC-20 transfer of <amount> governance tokens from the timelock to
<recipient>. The signer must hold the proposer role. The payment can be executed
once the timelock delay has elapsed.

Examples:
  safeguard tx request-payment 0x70997970C51812dc3A010C7d01b50e0d17dc79C8 1500 -d "Q3 audit"
  safeguard tx request-payment 0x7099...79C8 0.25 -d "Gas refund" --yes`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.RequestPayment.Run(cmd.Context(), usecase.RequestPaymentParams{
				Recipient:     args[0],
				Amount:        args[1],
				Description:   description,
				ActionOptions: usecase.ActionOptions{SkipConfirm: yes},
			})
			if err != nil {
				return err
			}

			if out := newOutput(cmd, app); out.Structured() {
				queued := models.Transaction{
					TxHash:          result.TxHash,
					Target:          result.Call.Target,
					Value:           result.Call.ValueOrZero(),
					Signature:       result.Call.Signature,
					Data:            result.Call.Data,
					Eta:             result.Call.Eta,
					Description:     description,
					CurrentlyQueued: true,
				}
				return out.Write(newActionView(result.ActionResult, render.NewTransactionView(queued, 0, time.Now())))
			}
			return render.NewTransactionsRenderer(cmd.OutOrStdout()).RenderAction(
				fmt.Sprintf("Payment of %s requested, executable after %s", args[1], result.Call.Eta.Local().Format(time.RFC1123)),
				result.ActionResult, result.TxHash)
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "Description recorded with the payment (required)")
	addActionFlags(cmd, &yes)
	_ = cmd.MarkFlagRequired("description")

	return cmd
}

// NewCancelCmd creates the cancel subcommand
func NewCancelCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "cancel [tx-hash]",
		Short: "Cancel a queued transaction",
		Long: `Cancel a transaction that is still queued in the timelock. The signer must
hold the canceler role. Without a hash, an interactive picker lists the queued
transactions.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTimelockAction(cmd, args, yes, false)
		},
	}

	addActionFlags(cmd, &yes)
	return cmd
}

// NewExecuteCmd creates the execute subcommand
func NewExecuteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "execute [tx-hash]",
		Short: "Execute a transaction whose eta has passed",
		Long: `Execute a queued transaction once its eta has passed and before its grace
period ends. The signer must hold the executor role. Without a hash, an
interactive picker lists the ready transactions.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTimelockAction(cmd, args, yes, true)
		},
	}

	addActionFlags(cmd, &yes)
	return cmd
}

func runTimelockAction(cmd *cobra.Command, args []string, yes, execute bool) error {
	app, err := getApp(cmd)
	if err != nil {
		return err
	}

	params := usecase.TimelockActionParams{ActionOptions: usecase.ActionOptions{SkipConfirm: yes}}
	if len(args) == 1 {
		params.TxHash = args[0]
	}

	var (
		result *usecase.TimelockActionResult
		verb   string
	)
	if execute {
		result, err = app.ExecuteTransaction.Run(cmd.Context(), params)
		verb = "executed"
	} else {
		result, err = app.CancelTransaction.Run(cmd.Context(), params)
		verb = "canceled"
	}
	if err != nil {
		return err
	}

	if out := newOutput(cmd, app); out.Structured() {
		return out.Write(newActionView(result.ActionResult, render.NewTransactionView(result.Transaction, 0, time.Now())))
	}
	return render.NewTransactionsRenderer(cmd.OutOrStdout()).RenderAction(
		fmt.Sprintf("Transaction %q %s", result.Transaction.Description, verb),
		result.ActionResult, result.Transaction.TxHash)
}

// addActionFlags registers the flags shared by every state-changing command
func addActionFlags(cmd *cobra.Command, yes *bool) {
	cmd.Flags().BoolVarP(yes, "yes", "y", false, "Skip the confirmation prompt")
	cmd.Flags().Uint64("confirmations", 0, "Block confirmations to wait for (default from safeguard.toml or 3)")
}
