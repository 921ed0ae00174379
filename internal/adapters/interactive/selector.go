package interactive

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/failsafe-org/safeguard-cli/internal/domain/config"
	"github.com/failsafe-org/safeguard-cli/internal/domain/models"
	"github.com/failsafe-org/safeguard-cli/internal/usecase"
	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/sahilm/fuzzy"
)

// SelectorAdapter handles interactive selection and confirmation
type SelectorAdapter struct {
	config *config.RuntimeConfig
}

// NewSelectorAdapter creates a new selector adapter
func NewSelectorAdapter(cfg *config.RuntimeConfig) *SelectorAdapter {
	return &SelectorAdapter{config: cfg}
}

// SelectTransaction selects a timelocked transaction from a list
func (s *SelectorAdapter) SelectTransaction(ctx context.Context, txs []models.Transaction, prompt string) (*models.Transaction, error) {
	// In non-interactive mode, we can't select
	if s.config.NonInteractive {
		return nil, fmt.Errorf("interactive selection not available in non-interactive mode")
	}

	if len(txs) == 0 {
		return nil, fmt.Errorf("no transactions provided for selection")
	}

	// If only one match, return it directly
	if len(txs) == 1 {
		return &txs[0], nil
	}

	options := formatTransactionOptions(txs, time.Now())

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "▸ {{ . | cyan }}",
		Inactive: "  {{ . | faint }}",
		Selected: "✓ {{ . | green }}",
		Help:     color.New(color.FgYellow).Sprint("Use arrow keys to navigate, Enter to select"),
	}

	promptSelect := promptui.Select{
		Label:             prompt,
		Items:             options,
		Templates:         templates,
		Size:              10,
		StartInSearchMode: true,
		Searcher:          createFuzzySearchFunc(options),
	}

	index, _, err := promptSelect.Run()
	if err != nil {
		return nil, fmt.Errorf("selection cancelled: %w", err)
	}

	return &txs[index], nil
}

// Confirm asks a yes/no question, defaulting to no
func (s *SelectorAdapter) Confirm(ctx context.Context, prompt string) (bool, error) {
	if s.config.NonInteractive {
		return true, nil
	}

	confirm := promptui.Prompt{
		Label:     prompt,
		IsConfirm: true,
	}

	if _, err := confirm.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		return false, fmt.Errorf("confirmation cancelled: %w", err)
	}
	return true, nil
}

// formatTransactionOptions creates display strings for transaction selection
func formatTransactionOptions(txs []models.Transaction, now time.Time) []string {
	options := make([]string, len(txs))
	for i, tx := range txs {
		hash := tx.TxHash.Hex()
		short := hash[:10] + "…" + hash[len(hash)-4:]

		description := tx.Description
		if description == "" {
			description = "(no description)"
		}

		status := tx.Status(now)
		statusColor := color.New(color.FgYellow)
		if status == models.TransactionStatusReady {
			statusColor = color.New(color.FgGreen)
		}

		options[i] = fmt.Sprintf("%s %s %s %s",
			color.New(color.FgWhite, color.Bold).Sprint(short),
			statusColor.Sprintf("[%s]", status),
			description,
			color.New(color.FgBlue).Sprintf("(eta %s)", tx.Eta.Local().Format("2006-01-02 15:04")),
		)
	}
	return options
}

// createFuzzySearchFunc creates a fuzzy search function for promptui
func createFuzzySearchFunc(items []string) func(input string, index int) bool {
	return func(input string, index int) bool {
		// Empty search shows all items
		if input == "" {
			return true
		}

		// Convert to lowercase for case-insensitive search
		input = strings.ToLower(input)
		item := strings.ToLower(items[index])

		// First try simple substring match
		if strings.Contains(item, input) {
			return true
		}

		// Then try fuzzy match
		pattern := fuzzy.Find(input, []string{item})
		return len(pattern) > 0
	}
}

// Ensure the adapter implements the interfaces
var (
	_ usecase.TransactionSelector = (*SelectorAdapter)(nil)
	_ usecase.Confirmer           = (*SelectorAdapter)(nil)
)
