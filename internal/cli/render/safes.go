package render

import (
	"fmt"
	"io"

	"github.com/failsafe-org/safeguard-cli/internal/domain/models"
	"github.com/failsafe-org/safeguard-cli/internal/usecase"
)

// SafesRenderer renders factory-created safes
type SafesRenderer struct {
	out io.Writer
}

// NewSafesRenderer creates a new safes renderer
func NewSafesRenderer(out io.Writer) *SafesRenderer {
	return &SafesRenderer{out: out}
}

// RenderList renders created safes in creation order
func (r *SafesRenderer) RenderList(result *usecase.SafeListResult) error {
	label := "SafeGuards"
	if result.Kind == models.SafeKindFailSafe {
		label = "FailSafes"
	}
	if len(result.Safes) == 0 {
		fmt.Fprintf(r.out, "No %s found\n", label)
		return nil
	}

	fmt.Fprintf(r.out, "%s (%d)\n\n", headerStyle.Sprint(label), len(result.Safes))
	t := newTable(5)
	t.AppendHeader(headerRow("NAME", "ADDRESS", "TIMELOCK", "DELAY", "BLOCK"))
	for _, safe := range result.Safes {
		t.AppendRow([]interface{}{
			safe.Name,
			addressStyle.Sprint(safe.Address.Hex()),
			shortAddress(safe.Timelock),
			formatDuration(safe.Delay),
			timestampStyle.Sprint(safe.BlockNumber),
		})
	}
	fmt.Fprintln(r.out, t.Render())

	if result.Dropped > 0 {
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out, FormatWarning(fmt.Sprintf("%d malformed creation events were ignored", result.Dropped)))
	}
	return nil
}

// RenderCreated renders a confirmed factory call
func (r *SafesRenderer) RenderCreated(kind models.SafeKind, result *usecase.CreateSafeResult) error {
	label := "SafeGuard"
	if kind == models.SafeKindFailSafe {
		label = "FailSafe"
	}
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("%s %q created with a %s delay", label, result.Name, formatDuration(result.Delay))))
	renderReceipt(r.out, result.ActionResult)
	fmt.Fprintf(r.out, "\nRun `safeguard safes list` to see its address.\n")
	return nil
}
