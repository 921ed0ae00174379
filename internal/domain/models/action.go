package models

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// ActionKind names a user-initiated contract action
type ActionKind string

const (
	ActionGrantRole       ActionKind = "grant-role"
	ActionRevokeRole      ActionKind = "revoke-role"
	ActionRequestPayment  ActionKind = "request-payment"
	ActionCancel          ActionKind = "cancel"
	ActionExecute         ActionKind = "execute"
	ActionCreateSafeGuard ActionKind = "create-safeguard"
	ActionCreateFailSafe  ActionKind = "create-failsafe"
	ActionFundSafe        ActionKind = "fund"
)

// ActionState is the journal state of an action. Every action ends in a terminal state.
type ActionState string

const (
	ActionStatePending   ActionState = "pending"
	ActionStateSubmitted ActionState = "submitted"
	ActionStateConfirmed ActionState = "confirmed"
	ActionStateFailed    ActionState = "failed"
	ActionStateDenied    ActionState = "denied"
)

// IsTerminal reports whether no further transition is expected
func (s ActionState) IsTerminal() bool {
	return s == ActionStateConfirmed || s == ActionStateFailed || s == ActionStateDenied
}

// ActionRecord is one journal entry
type ActionRecord struct {
	ID        string         `json:"id"`
	Kind      ActionKind     `json:"kind"`
	State     ActionState    `json:"state"`
	SafeGuard common.Address `json:"safeguard"`
	Sender    common.Address `json:"sender"`
	TxHash    common.Hash    `json:"txHash"`
	Summary   string         `json:"summary"`
	Error     string         `json:"error,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// Receipt is the confirmed outcome of a submitted transaction
type Receipt struct {
	TxHash        common.Hash `json:"txHash"`
	BlockNumber   uint64      `json:"blockNumber"`
	GasUsed       uint64      `json:"gasUsed"`
	Confirmations uint64      `json:"confirmations"`
}

// NotificationStatus classifies a notification
type NotificationStatus string

const (
	NotificationSuccess NotificationStatus = "success"
	NotificationError   NotificationStatus = "error"
	NotificationInfo    NotificationStatus = "info"
)

// Notification is a user-facing title/description/status tuple
type Notification struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Status      NotificationStatus `json:"status"`
	Action      ActionKind         `json:"action,omitempty"`
	TxHash      common.Hash        `json:"txHash,omitempty"`
}
