package render

import (
	"bytes"
	"math/big"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/failsafe-org/safeguard-cli/internal/domain"
	"github.com/failsafe-org/safeguard-cli/internal/domain/bindings"
	"github.com/failsafe-org/safeguard-cli/internal/domain/config"
	"github.com/failsafe-org/safeguard-cli/internal/domain/models"
	"github.com/failsafe-org/safeguard-cli/internal/usecase"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	now       = time.Unix(1_700_000_000, 0).UTC()
	recipient = common.HexToAddress("0x1111111111111111111111111111111111111111")
	token     = common.HexToAddress("0x7000000000000000000000000000000000000002")
)

func init() {
	color.NoColor = true
}

func paymentTx(t *testing.T) models.Transaction {
	t.Helper()
	amount, _ := new(big.Int).SetString("1500000000000000000", 10)
	data, err := bindings.NewERC20().PackTransfer(recipient, amount)
	require.NoError(t, err)
	return models.Transaction{
		TxHash:          common.HexToHash("0xaa"),
		Target:          token,
		Value:           new(big.Int),
		Data:            data,
		Eta:             now.Add(-time.Hour),
		Description:     "Audit payment",
		CurrentlyQueued: true,
	}
}

func TestTransactionView_DecodesTransfers(t *testing.T) {
	view := NewTransactionView(paymentTx(t), 14*24*time.Hour, now)

	assert.Equal(t, models.TransactionStatusReady, view.Status)
	require.NotNil(t, view.Recipient)
	assert.Equal(t, recipient, *view.Recipient)
	assert.Equal(t, "1.5", view.Amount)
	assert.Equal(t, now.Add(-time.Hour).Add(14*24*time.Hour), view.ExpiresAt)
}

func TestTransactionsRenderer_List(t *testing.T) {
	var buf bytes.Buffer
	ledger := domain.NewLedger([]models.Transaction{paymentTx(t)}, 14*24*time.Hour, now)
	view := NewTransactionListView(common.HexToAddress("0x5afe"), common.HexToAddress("0x71"), ledger, 2)

	require.NoError(t, NewTransactionsRenderer(&buf).RenderList(view, now))
	out := buf.String()

	assert.Contains(t, out, "Ready")
	assert.Contains(t, out, "1.5 → 0x1111…1111")
	assert.Contains(t, out, "Audit payment")
	assert.Contains(t, out, "1h ago")
	assert.Contains(t, out, "2 malformed or unverifiable events were ignored")
}

func TestTransactionsRenderer_Empty(t *testing.T) {
	var buf bytes.Buffer
	view := NewTransactionListView(common.Address{}, common.Address{}, domain.NewLedger(nil, time.Hour, now), 0)
	require.NoError(t, NewTransactionsRenderer(&buf).RenderList(view, now))
	assert.Contains(t, buf.String(), "No timelocked transactions found")
}

func TestOutput_JSON(t *testing.T) {
	var buf bytes.Buffer
	out := NewOutput(&buf, config.OutputJSON, "")
	require.True(t, out.Structured())

	require.NoError(t, out.Write(NewTransactionView(paymentTx(t), time.Hour, now)))
	assert.Contains(t, buf.String(), `"status": "ready"`)
	assert.Contains(t, buf.String(), `"recipient": "0x1111111111111111111111111111111111111111"`)
}

func TestOutput_YAML(t *testing.T) {
	var buf bytes.Buffer
	out := NewOutput(&buf, config.OutputYAML, "")

	require.NoError(t, out.Write(models.Safe{Name: "Treasury", Address: recipient}))
	assert.Contains(t, buf.String(), "name: Treasury")
	assert.Contains(t, buf.String(), "0x1111111111111111111111111111111111111111")
}

func TestOutput_JQ(t *testing.T) {
	var buf bytes.Buffer
	out := NewOutput(&buf, config.OutputTable, ".transactions[] | select(.status == \"ready\") | .description")
	require.True(t, out.Structured())

	ledger := domain.NewLedger([]models.Transaction{paymentTx(t)}, 14*24*time.Hour, now)
	require.NoError(t, out.Write(NewTransactionListView(common.Address{}, common.Address{}, ledger, 0)))
	assert.Equal(t, "Audit payment\n", buf.String())

	buf.Reset()
	err := NewOutput(&buf, config.OutputJSON, ".[").Write(map[string]int{"a": 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse jq filter")
}

func TestOutput_TableIsNotStructured(t *testing.T) {
	assert.False(t, NewOutput(&bytes.Buffer{}, "", "").Structured())
}

func TestRolesRenderer(t *testing.T) {
	var buf bytes.Buffer
	result := &usecase.RoleListResult{
		SafeGuard: common.HexToAddress("0x5afe"),
		Roles: []models.GrantedRole{
			{Address: recipient, Role: models.RoleProposer, RoleID: models.RoleProposer.ID()},
		},
	}
	view := NewRoleListView(result)
	assert.Empty(t, view.Roles[models.RoleCanceler])
	assert.NotNil(t, view.Roles[models.RoleCanceler])

	require.NoError(t, NewRolesRenderer(&buf).RenderList(view))
	out := buf.String()
	assert.Contains(t, out, "Proposers (1)")
	assert.Contains(t, out, recipient.Hex())
	assert.Contains(t, out, "Cancelers (0)")
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "❌ Permission denied", FormatError("request-payment: permission denied"))
	assert.True(t, strings.HasPrefix(FormatError(`invalid address: "0x12"`), "❌ Invalid address"))
	assert.Equal(t, "2d", formatDuration(48*time.Hour))
	assert.Equal(t, "1d 2h0m0s", formatDuration(26*time.Hour))
	assert.Equal(t, "-", formatDuration(0))
	assert.Equal(t, "in 5m", formatRelative(now.Add(5*time.Minute), now))
	assert.Equal(t, "3d ago", formatRelative(now.Add(-72*time.Hour), now))
	assert.Equal(t, "0x1111…1111", shortAddress(recipient))
}
