package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Color styles shared by the table renderers
var (
	headerStyle    = color.New(color.Bold, color.FgHiWhite)
	addressStyle   = color.New(color.FgWhite)
	timestampStyle = color.New(color.Faint)
	pendingStyle   = color.New(color.FgYellow)
	readyStyle     = color.New(color.FgGreen, color.Bold)
	executedStyle  = color.New(color.FgGreen)
	canceledStyle  = color.New(color.FgRed)
	staleStyle     = color.New(color.FgHiBlack)
	labelStyle     = color.New(color.FgCyan)
)

// FormatWarning formats a warning message with the warning icon
func FormatWarning(message string) string {
	return color.New(color.FgYellow).Sprintf("⚠️  %s", message)
}

// FormatError formats an error message with the error icon
func FormatError(message string) string {
	// Extract just the error message part (after the last colon if it's an error chain)
	parts := strings.Split(message, ": ")
	msg := parts[len(parts)-1]
	if len(parts) > 1 && isSentinelSuffix(msg) {
		msg = strings.Join(parts[len(parts)-2:], ": ")
	}

	// Capitalize first letter
	if len(msg) > 0 {
		msg = strings.ToUpper(msg[:1]) + msg[1:]
	}

	return color.New(color.FgRed).Sprintf("❌ %s", msg)
}

// isSentinelSuffix catches wrapped details too short to stand alone, such as a quoted value
func isSentinelSuffix(msg string) bool {
	return strings.HasPrefix(msg, "\"") || strings.HasPrefix(msg, "0x")
}

// FormatSuccess formats a success message with the success icon
func FormatSuccess(message string) string {
	return color.New(color.FgGreen).Sprintf("✅ %s", message)
}

// getRelativePath returns the relative path from current directory
func getRelativePath(path string) string {
	cwd, err := os.Getwd()
	if err != nil {
		return path
	}

	relPath, err := filepath.Rel(cwd, path)
	if err != nil {
		return path
	}

	return relPath
}

// shortAddress abbreviates an address as 0x1234…abcd
func shortAddress(addr common.Address) string {
	hex := addr.Hex()
	return hex[:6] + "…" + hex[len(hex)-4:]
}

// shortHash abbreviates a 32-byte hash
func shortHash(hash common.Hash) string {
	hex := hash.Hex()
	return hex[:10] + "…" + hex[len(hex)-6:]
}

// formatDuration prints whole days and hours the way timelock delays are usually quoted
func formatDuration(d time.Duration) string {
	if d <= 0 {
		return "-"
	}
	days := d / (24 * time.Hour)
	rest := d % (24 * time.Hour)
	switch {
	case days > 0 && rest == 0:
		return fmt.Sprintf("%dd", days)
	case days > 0:
		return fmt.Sprintf("%dd %s", days, rest.Round(time.Second))
	default:
		return d.Round(time.Second).String()
	}
}

// formatRelative prints how far t is from now, e.g. "in 2h" or "3d ago"
func formatRelative(t, now time.Time) string {
	d := t.Sub(now)
	suffix := ""
	prefix := "in "
	if d < 0 {
		d = -d
		prefix = ""
		suffix = " ago"
	}
	var s string
	switch {
	case d < time.Minute:
		s = fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		s = fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 48*time.Hour:
		s = fmt.Sprintf("%dh", int(d.Hours()))
	default:
		s = fmt.Sprintf("%dd", int(d.Hours()/24))
	}
	return prefix + s + suffix
}

// newTable creates the borderless table layout used by every list command
func newTable(columns int) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Options.SeparateRows = false
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateHeader = false
	t.Style().Options.SeparateColumns = false
	t.Style().Box = table.BoxStyle{
		PaddingRight: "   ",
	}
	t.Style().Format.Header = text.FormatDefault

	colConfigs := make([]table.ColumnConfig, columns)
	for i := range colConfigs {
		colConfigs[i] = table.ColumnConfig{
			Number: i + 1,
			Align:  text.AlignLeft,
		}
	}
	t.SetColumnConfigs(colConfigs)
	return t
}

// headerRow styles column titles
func headerRow(titles ...string) table.Row {
	row := make(table.Row, len(titles))
	for i, title := range titles {
		row[i] = headerStyle.Sprint(title)
	}
	return row
}
