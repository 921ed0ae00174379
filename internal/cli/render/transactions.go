package render

import (
	"fmt"
	"io"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/failsafe-org/safeguard-cli/internal/domain"
	"github.com/failsafe-org/safeguard-cli/internal/domain/bindings"
	"github.com/failsafe-org/safeguard-cli/internal/domain/models"
	"github.com/failsafe-org/safeguard-cli/internal/usecase"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TransactionView is the structured form of a timelocked transaction
type TransactionView struct {
	TxHash          common.Hash              `json:"txHash"`
	Status          models.TransactionStatus `json:"status"`
	Target          common.Address           `json:"target"`
	Value           string                   `json:"value"`
	Signature       string                   `json:"signature,omitempty"`
	Data            hexutil.Bytes            `json:"data"`
	Eta             time.Time                `json:"eta"`
	ExpiresAt       time.Time                `json:"expiresAt"`
	Description     string                   `json:"description"`
	Recipient       *common.Address          `json:"recipient,omitempty"`
	Amount          string                   `json:"amount,omitempty"`
	CurrentlyQueued bool                     `json:"currentlyQueued"`
	Canceled        bool                     `json:"canceled"`
	Executed        bool                     `json:"executed"`
	Stale           bool                     `json:"stale"`
	BlockNumber     uint64                   `json:"blockNumber"`
}

// TransactionListView is the structured form of a reconciled ledger
type TransactionListView struct {
	SafeGuard    common.Address    `json:"safeguard"`
	Timelock     common.Address    `json:"timelock"`
	GracePeriod  string            `json:"gracePeriod"`
	Transactions []TransactionView `json:"transactions"`
	Dropped      int               `json:"dropped,omitempty"`
}

// NewTransactionView derives the display fields of tx at now
func NewTransactionView(tx models.Transaction, gracePeriod time.Duration, now time.Time) TransactionView {
	view := TransactionView{
		TxHash:          tx.TxHash,
		Status:          tx.Status(now),
		Target:          tx.Target,
		Value:           domain.FormatUnits(tx.Value, domain.EtherDecimals),
		Signature:       tx.Signature,
		Data:            tx.Data,
		Eta:             tx.Eta.UTC(),
		ExpiresAt:       tx.ExpiresAt(gracePeriod).UTC(),
		Description:     tx.Description,
		CurrentlyQueued: tx.CurrentlyQueued,
		Canceled:        tx.Canceled,
		Executed:        tx.Executed,
		Stale:           tx.Stale,
		BlockNumber:     tx.BlockNumber,
	}
	if tx.Signature == "" {
		if to, amount, err := bindings.NewERC20().UnpackTransferInput(tx.Data); err == nil {
			view.Recipient = &to
			view.Amount = domain.FormatUnits(amount, domain.EtherDecimals)
		}
	}
	return view
}

// NewTransactionListView converts a reconciled ledger into its structured form
func NewTransactionListView(safeGuard, timelock common.Address, ledger domain.Ledger, dropped int) TransactionListView {
	view := TransactionListView{
		SafeGuard:    safeGuard,
		Timelock:     timelock,
		GracePeriod:  ledger.GracePeriod.String(),
		Transactions: make([]TransactionView, len(ledger.Transactions)),
		Dropped:      dropped,
	}
	for i, tx := range ledger.Transactions {
		view.Transactions[i] = NewTransactionView(tx, ledger.GracePeriod, ledger.Now)
	}
	return view
}

// TransactionsRenderer renders timelocked transactions
type TransactionsRenderer struct {
	out   io.Writer
	title cases.Caser
}

// NewTransactionsRenderer creates a new transactions renderer
func NewTransactionsRenderer(out io.Writer) *TransactionsRenderer {
	return &TransactionsRenderer{
		out:   out,
		title: cases.Title(language.English),
	}
}

// RenderList renders the ledger as a table, newest eta first
func (r *TransactionsRenderer) RenderList(view TransactionListView, now time.Time) error {
	fmt.Fprintf(r.out, "SafeGuard %s  ·  Timelock %s  ·  Grace period %s\n\n",
		addressStyle.Sprint(view.SafeGuard.Hex()), addressStyle.Sprint(view.Timelock.Hex()), view.GracePeriod)

	if len(view.Transactions) == 0 {
		fmt.Fprintln(r.out, "No timelocked transactions found")
		return nil
	}

	t := newTable(6)
	t.AppendHeader(headerRow("STATUS", "TX HASH", "PAYMENT", "ETA", "", "DESCRIPTION"))
	for _, tx := range view.Transactions {
		t.AppendRow([]interface{}{
			r.status(tx.Status),
			shortHash(tx.TxHash),
			payment(tx),
			tx.Eta.Local().Format("2006-01-02 15:04"),
			timestampStyle.Sprint(formatRelative(tx.Eta, now)),
			tx.Description,
		})
	}
	fmt.Fprintln(r.out, t.Render())

	if view.Dropped > 0 {
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out, FormatWarning(fmt.Sprintf("%d malformed or unverifiable events were ignored", view.Dropped)))
	}
	return nil
}

// RenderDetail renders a single transaction
func (r *TransactionsRenderer) RenderDetail(tx TransactionView, now time.Time) error {
	rows := [][2]string{
		{"Tx hash", tx.TxHash.Hex()},
		{"Status", r.status(tx.Status)},
		{"Description", tx.Description},
		{"Target", tx.Target.Hex()},
		{"Value", tx.Value},
	}
	if tx.Recipient != nil {
		rows = append(rows, [2]string{"Payment", fmt.Sprintf("%s → %s", tx.Amount, tx.Recipient.Hex())})
	}
	if tx.Signature != "" {
		rows = append(rows, [2]string{"Signature", tx.Signature})
	}
	rows = append(rows,
		[2]string{"Calldata", tx.Data.String()},
		[2]string{"ETA", fmt.Sprintf("%s (%s)", tx.Eta.Local().Format(time.RFC1123), formatRelative(tx.Eta, now))},
		[2]string{"Expires", fmt.Sprintf("%s (%s)", tx.ExpiresAt.Local().Format(time.RFC1123), formatRelative(tx.ExpiresAt, now))},
		[2]string{"Queued in block", fmt.Sprintf("%d", tx.BlockNumber)},
	)
	for _, row := range rows {
		fmt.Fprintf(r.out, "%s %s\n", labelStyle.Sprintf("%-16s", row[0]+":"), row[1])
	}
	return nil
}

// RenderAction renders a confirmed cancel, execute or payment request
func (r *TransactionsRenderer) RenderAction(message string, result *usecase.ActionResult, timelockHash common.Hash) error {
	fmt.Fprintln(r.out, FormatSuccess(message))
	if timelockHash != (common.Hash{}) {
		fmt.Fprintf(r.out, "   Timelock tx: %s\n", timelockHash.Hex())
	}
	renderReceipt(r.out, result)
	return nil
}

func (r *TransactionsRenderer) status(status models.TransactionStatus) string {
	label := r.title.String(string(status))
	switch status {
	case models.TransactionStatusPending:
		return pendingStyle.Sprint(label)
	case models.TransactionStatusReady:
		return readyStyle.Sprint(label)
	case models.TransactionStatusExecuted:
		return executedStyle.Sprint(label)
	case models.TransactionStatusCanceled:
		return canceledStyle.Sprint(label)
	case models.TransactionStatusStale:
		return staleStyle.Sprint(label)
	default:
		return label
	}
}

func payment(tx TransactionView) string {
	if tx.Recipient == nil {
		return fmt.Sprintf("call %s", shortAddress(tx.Target))
	}
	return fmt.Sprintf("%s → %s", tx.Amount, shortAddress(*tx.Recipient))
}

// renderReceipt prints the chain transaction and block of a confirmed action
func renderReceipt(out io.Writer, result *usecase.ActionResult) {
	if result == nil || result.Receipt == nil {
		return
	}
	fmt.Fprintf(out, "   Chain tx:    %s\n", result.Receipt.TxHash.Hex())
	fmt.Fprintf(out, "   Block:       %d (%d confirmations)\n", result.Receipt.BlockNumber, result.Receipt.Confirmations)
}
