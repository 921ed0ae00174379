package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/failsafe-org/safeguard-cli/internal/domain"
	"github.com/failsafe-org/safeguard-cli/internal/domain/config"
	"github.com/failsafe-org/safeguard-cli/internal/domain/models"
)

// PermissionDeniedMessage is shown when the signer lacks the required role
const PermissionDeniedMessage = "You don't have the role needed for this action"

// journalTimeout bounds terminal journal writes after cancellation
const journalTimeout = 5 * time.Second

// ActionOptions are shared by every write action
type ActionOptions struct {
	// SkipConfirm bypasses the interactive confirmation prompt
	SkipConfirm bool
}

// ActionResult is the outcome of a confirmed action
type ActionResult struct {
	Record  *models.ActionRecord
	Receipt *models.Receipt
}

// actionSpec describes one write action for the runner
type actionSpec struct {
	Kind      models.ActionKind
	SafeGuard common.Address
	// RequiredRole is checked with hasRole on SafeGuard; empty means no guard
	RequiredRole models.Role
	Summary      string
	Success      string
	Submit       func(ctx context.Context) (common.Hash, error)
}

// ActionRunner drives the shared action lifecycle:
// role guard, confirmation, submission, confirmations, journal and notifications.
type ActionRunner struct {
	config    *config.RuntimeConfig
	safeGuard SafeGuardGateway
	chain     ChainReader
	signer    Signer
	journal   ActionJournal
	notifier  Notifier
	confirmer Confirmer
	sink      ProgressSink
	clock     Clock
	log       *slog.Logger
}

// NewActionRunner creates the shared action runner
func NewActionRunner(
	cfg *config.RuntimeConfig,
	safeGuard SafeGuardGateway,
	chain ChainReader,
	signer Signer,
	journal ActionJournal,
	notifier Notifier,
	confirmer Confirmer,
	sink ProgressSink,
	clock Clock,
	log *slog.Logger,
) *ActionRunner {
	return &ActionRunner{
		config:    cfg,
		safeGuard: safeGuard,
		chain:     chain,
		signer:    signer,
		journal:   journal,
		notifier:  notifier,
		confirmer: confirmer,
		sink:      sink,
		clock:     clock,
		log:       log.With("component", "actions"),
	}
}

// Sender returns the signer address
func (r *ActionRunner) Sender() (common.Address, error) {
	return r.signer.Address()
}

func (r *ActionRunner) run(ctx context.Context, spec actionSpec, opts ActionOptions) (*ActionResult, error) {
	sender, err := r.signer.Address()
	if err != nil {
		return nil, err
	}

	now := r.clock.Now()
	record := &models.ActionRecord{
		Kind:      spec.Kind,
		State:     models.ActionStatePending,
		SafeGuard: spec.SafeGuard,
		Sender:    sender,
		Summary:   spec.Summary,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := r.journal.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to journal action: %w", err)
	}

	if spec.RequiredRole != "" {
		allowed, err := r.safeGuard.HasRole(ctx, spec.SafeGuard, spec.RequiredRole.ID(), sender)
		if err != nil {
			return nil, r.failed(ctx, spec, record, fmt.Errorf("failed to check %s role: %w", spec.RequiredRole, err))
		}
		if !allowed {
			r.finish(ctx, record, models.ActionStateDenied, PermissionDeniedMessage)
			r.notifier.Notify(ctx, models.Notification{
				Title:       "Error",
				Description: PermissionDeniedMessage,
				Status:      models.NotificationError,
				Action:      spec.Kind,
			})
			return nil, fmt.Errorf("%w: %s requires the %s role", domain.ErrPermissionDenied, spec.Kind, spec.RequiredRole)
		}
	}

	if !opts.SkipConfirm && !r.config.NonInteractive {
		ok, err := r.confirmer.Confirm(ctx, spec.Summary)
		if err != nil {
			return nil, r.failed(ctx, spec, record, err)
		}
		if !ok {
			r.finish(ctx, record, models.ActionStateFailed, domain.ErrAborted.Error())
			return nil, domain.ErrAborted
		}
	}

	r.sink.OnProgress(ctx, ProgressEvent{Stage: StageSubmitting, Message: spec.Summary, Spinner: true})
	defer r.sink.OnProgress(ctx, ProgressEvent{Stage: StageCompleted})

	txHash, err := spec.Submit(ctx)
	if err != nil {
		return nil, r.failed(ctx, spec, record, fmt.Errorf("failed to submit: %w", err))
	}
	record.TxHash = txHash
	r.transition(ctx, record, models.ActionStateSubmitted, "")
	r.log.Info("action submitted", "kind", spec.Kind, "tx", txHash.Hex())

	r.sink.OnProgress(ctx, ProgressEvent{
		Stage:   StageConfirming,
		Message: fmt.Sprintf("Waiting for %d confirmations of %s", r.config.Actions.Confirmations, txHash.Hex()),
		Spinner: true,
	})

	waitCtx, cancel := context.WithTimeout(ctx, r.config.Actions.ConfirmationTimeout)
	defer cancel()
	receipt, err := r.chain.WaitForConfirmations(waitCtx, txHash, r.config.Actions.Confirmations)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			err = fmt.Errorf("%w after %s: %s", domain.ErrConfirmationTimeout, r.config.Actions.ConfirmationTimeout, txHash.Hex())
		}
		return nil, r.failed(ctx, spec, record, err)
	}

	r.finish(ctx, record, models.ActionStateConfirmed, "")
	r.notifier.Notify(ctx, models.Notification{
		Title:       "Success",
		Description: spec.Success,
		Status:      models.NotificationSuccess,
		Action:      spec.Kind,
		TxHash:      txHash,
	})

	return &ActionResult{Record: record, Receipt: receipt}, nil
}

// failed moves the record to failed, notifies and returns err
func (r *ActionRunner) failed(ctx context.Context, spec actionSpec, record *models.ActionRecord, err error) error {
	r.finish(ctx, record, models.ActionStateFailed, err.Error())
	r.notifier.Notify(ctx, models.Notification{
		Title:       "Error",
		Description: err.Error(),
		Status:      models.NotificationError,
		Action:      spec.Kind,
		TxHash:      record.TxHash,
	})
	return err
}

// finish records a terminal state. The journal write must survive a canceled command context.
func (r *ActionRunner) finish(ctx context.Context, record *models.ActionRecord, state models.ActionState, reason string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), journalTimeout)
	defer cancel()
	r.transition(ctx, record, state, reason)
}

func (r *ActionRunner) transition(ctx context.Context, record *models.ActionRecord, state models.ActionState, reason string) {
	record.State = state
	record.Error = reason
	record.UpdatedAt = r.clock.Now()
	if err := r.journal.Update(ctx, record); err != nil {
		r.log.Warn("failed to update action journal", "id", record.ID, "state", state, "error", err)
	}
}
