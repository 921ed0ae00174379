package render

import (
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/common"
	"github.com/failsafe-org/safeguard-cli/internal/domain/models"
)

// ActionsRenderer renders the local action journal
type ActionsRenderer struct {
	out io.Writer
}

// NewActionsRenderer creates a new actions renderer
func NewActionsRenderer(out io.Writer) *ActionsRenderer {
	return &ActionsRenderer{out: out}
}

// RenderList renders journal entries, newest first
func (r *ActionsRenderer) RenderList(records []models.ActionRecord) error {
	if len(records) == 0 {
		fmt.Fprintln(r.out, "No actions recorded yet")
		return nil
	}

	t := newTable(5)
	t.AppendHeader(headerRow("WHEN", "ACTION", "STATE", "CHAIN TX", "SUMMARY"))
	for _, rec := range records {
		tx := "-"
		if rec.TxHash != (common.Hash{}) {
			tx = shortHash(rec.TxHash)
		}
		summary := rec.Summary
		if rec.Error != "" {
			summary += canceledStyle.Sprintf(" (%s)", rec.Error)
		}
		t.AppendRow([]interface{}{
			timestampStyle.Sprint(rec.CreatedAt.Local().Format("2006-01-02 15:04:05")),
			string(rec.Kind),
			actionState(rec.State),
			tx,
			summary,
		})
	}
	fmt.Fprintln(r.out, t.Render())
	return nil
}

func actionState(state models.ActionState) string {
	switch state {
	case models.ActionStateConfirmed:
		return executedStyle.Sprint(state)
	case models.ActionStateFailed, models.ActionStateDenied:
		return canceledStyle.Sprint(state)
	default:
		return pendingStyle.Sprint(state)
	}
}
