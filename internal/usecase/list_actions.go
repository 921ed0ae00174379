package usecase

import (
	"context"
	"fmt"

	"github.com/failsafe-org/safeguard-cli/internal/domain"
	"github.com/failsafe-org/safeguard-cli/internal/domain/models"
	"github.com/samber/lo"
)

// ListActionsParams contains parameters for reading the action journal
type ListActionsParams struct {
	State string
	Limit int
}

// ListActions reads the local action journal, newest first
type ListActions struct {
	journal ActionJournal
}

// NewListActions creates a new ListActions use case
func NewListActions(journal ActionJournal) *ListActions {
	return &ListActions{journal: journal}
}

var actionStates = []models.ActionState{
	models.ActionStatePending,
	models.ActionStateSubmitted,
	models.ActionStateConfirmed,
	models.ActionStateFailed,
	models.ActionStateDenied,
}

// Run executes the list actions use case
func (uc *ListActions) Run(ctx context.Context, params ListActionsParams) ([]models.ActionRecord, error) {
	filter := ActionFilter{Limit: params.Limit}
	if params.State != "" {
		state := models.ActionState(params.State)
		if !lo.Contains(actionStates, state) {
			return nil, domain.ValidationError{Field: "state", Reason: fmt.Sprintf("unknown state %q (one of %v)", params.State, actionStates)}
		}
		filter.State = state
	}
	if filter.Limit < 0 {
		return nil, domain.ValidationError{Field: "limit", Reason: "must not be negative"}
	}
	return uc.journal.List(ctx, filter)
}
