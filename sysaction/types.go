// Package sysaction implements the host call envelope of the escrow.
//
// A host invokes an escrow entry point by handing over a JSON-encoded
// SysAction together with the calling account and any native value attached
// to the call. The Registry decodes the envelope and dispatches it to the
// first handler that accepts its kind.
package sysaction

import "encoding/json"

// ActionKind identifies the type of system action.
type ActionKind string

const (
	// Staking
	ActionDepositToken   ActionKind = "ESCROW_DEPOSIT_TOKEN"
	ActionDepositNative  ActionKind = "ESCROW_DEPOSIT_NATIVE"
	ActionWithdrawToken  ActionKind = "ESCROW_WITHDRAW_TOKEN"
	ActionWithdrawNative ActionKind = "ESCROW_WITHDRAW_NATIVE"

	// Owner
	ActionWithdrawOwner ActionKind = "ESCROW_WITHDRAW_OWNER"
)

// SysAction is the top-level envelope of a host call.
type SysAction struct {
	Action  ActionKind      `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// DepositTokenPayload is the payload for ESCROW_DEPOSIT_TOKEN.
type DepositTokenPayload struct {
	Amount string `json:"amount"` // decimal
}

// WithdrawOwnerPayload is the payload for ESCROW_WITHDRAW_OWNER.
type WithdrawOwnerPayload struct {
	Asset  string `json:"asset"`  // "token" or "native"
	Amount string `json:"amount"` // decimal
}
