// Package staking keeps the per-account stake records of the escrow in the
// storage of params.EscrowAddress and computes the linear profit owed on
// withdrawal.
package staking

import (
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/tos-network/gescrow/asset"
)

// Status represents the lifecycle state of a stake record.
type Status uint8

const (
	// None is the default state; the account never deposited.
	None Status = 0
	// Active means principal is locked and accruing profit.
	Active Status = 1
	// Withdrawn means the last stake was paid out. A new deposit may reopen
	// the record.
	Withdrawn Status = 2
)

func (s Status) String() string {
	switch s {
	case None:
		return "none"
	case Active:
		return "active"
	case Withdrawn:
		return "withdrawn"
	}
	return "unknown"
}

// StakeRecord is the in-memory view of an account's stake read from state.
// The principal is held in exactly one asset class, so a record can never
// carry both a token and a native amount.
type StakeRecord struct {
	Account      common.Address
	ID           uint64
	Asset        asset.Class
	Principal    *big.Int
	DepositBlock uint64
	Status       Status
}

// Active reports whether the record holds locked principal.
func (r StakeRecord) Active() bool { return r.Status == Active }

// TokenAmount returns the token principal, zero unless the record is an
// active token stake.
func (r StakeRecord) TokenAmount() *big.Int { return r.amountOf(asset.Token) }

// NativeAmount returns the native principal, zero unless the record is an
// active native stake.
func (r StakeRecord) NativeAmount() *big.Int { return r.amountOf(asset.Native) }

func (r StakeRecord) amountOf(c asset.Class) *big.Int {
	if r.Status != Active || r.Asset != c || r.Principal == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(r.Principal)
}

// Sentinel errors returned by the stake ledger.
var (
	ErrNoActiveStake      = errors.New("staking: no active stake for asset")
	ErrActiveStake        = errors.New("staking: account already has an active stake")
	ErrMaturityNotReached = errors.New("staking: maturity not reached")
	ErrEscrowAccount      = errors.New("staking: escrow account cannot stake")
)
