package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain operations
var (
	// ErrNotFound is returned when a requested resource doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrInvalidAddress is returned when an Ethereum address is invalid
	ErrInvalidAddress = errors.New("invalid address")

	// ErrInvalidAmount is returned when a token amount cannot be parsed
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrValidation is returned when action input is incomplete or malformed
	ErrValidation = errors.New("validation failed")

	// ErrPermissionDenied is returned when the signer lacks the role an action requires
	ErrPermissionDenied = errors.New("permission denied")

	// ErrReconcileFailed is returned when historical events could not be collected
	ErrReconcileFailed = errors.New("failed to reconcile transactions")

	// ErrConfirmationTimeout is returned when a submitted transaction is not confirmed in time
	ErrConfirmationTimeout = errors.New("timed out waiting for confirmations")

	// ErrTransactionReverted is returned when a mined transaction has a failed receipt
	ErrTransactionReverted = errors.New("transaction reverted")

	// ErrNoSigner is returned when a write action runs without a configured signer
	ErrNoSigner = errors.New("no signer configured")

	// ErrNoSafeGuard is returned when no active SafeGuard address is configured
	ErrNoSafeGuard = errors.New("no safeguard selected")

	// ErrAborted is returned when the user declines a confirmation prompt
	ErrAborted = errors.New("aborted by user")

	// ErrSubscriptionsUnsupported is returned when the RPC transport cannot stream logs
	ErrSubscriptionsUnsupported = errors.New("rpc endpoint does not support subscriptions (use ws:// or ipc)")
)

// ValidationError describes a single invalid input field
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e ValidationError) Unwrap() error {
	return ErrValidation
}

// UnknownRoleError is returned when a role name cannot be resolved
type UnknownRoleError struct {
	Name       string
	Suggestion string
}

func (e UnknownRoleError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("unknown role %q (did you mean %q?)", e.Name, e.Suggestion)
	}
	return fmt.Sprintf("unknown role %q (valid: proposer, executor, canceler, admin)", e.Name)
}

func (e UnknownRoleError) Unwrap() error {
	return ErrValidation
}
