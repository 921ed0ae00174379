package render

import (
	"fmt"
	"io"

	"github.com/failsafe-org/safeguard-cli/internal/domain"
	"github.com/failsafe-org/safeguard-cli/internal/domain/models"
	"github.com/failsafe-org/safeguard-cli/internal/usecase"
)

// FundsRenderer renders the token holdings behind a SafeGuard
type FundsRenderer struct {
	out io.Writer
}

// NewFundsRenderer creates a new funds renderer
func NewFundsRenderer(out io.Writer) *FundsRenderer {
	return &FundsRenderer{out: out}
}

// RenderInfo renders the timelock balance and its timing parameters
func (r *FundsRenderer) RenderInfo(info *models.FundInfo) error {
	rows := [][2]string{
		{"SafeGuard", info.SafeGuard.Hex()},
		{"Timelock", info.Timelock.Hex()},
		{"Balance", fmt.Sprintf("%s %s", info.Balance, info.TokenSymbol)},
		{"Token", info.Token.Hex()},
		{"Delay", formatDuration(info.Delay)},
		{"Grace period", formatDuration(info.GracePeriod)},
	}
	for _, row := range rows {
		fmt.Fprintf(r.out, "%s %s\n", labelStyle.Sprintf("%-14s", row[0]+":"), row[1])
	}
	return nil
}

// RenderFunded renders a confirmed token transfer to the timelock
func (r *FundsRenderer) RenderFunded(result *usecase.FundSafeResult) error {
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Sent %s tokens to timelock %s",
		domain.FormatUnits(result.Amount, domain.EtherDecimals), result.Timelock.Hex())))
	renderReceipt(r.out, result.ActionResult)
	return nil
}
