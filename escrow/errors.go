package escrow

import (
	"errors"

	"github.com/tos-network/gescrow/asset"
	"github.com/tos-network/gescrow/ownerfee"
	"github.com/tos-network/gescrow/staking"
)

// Error taxonomy of the escrow. Every failing call returns one of these
// (possibly wrapped) and leaves the ledger untouched.
var (
	ErrInvalidAmount         = asset.ErrInvalidAmount
	ErrInsufficientAllowance = asset.ErrInsufficientAllowance
	ErrInsufficientBalance   = asset.ErrInsufficientBalance
	ErrInsufficientLiquidity = asset.ErrInsufficientLiquidity
	ErrAmountOverflow        = asset.ErrAmountOverflow
	ErrUnknownAsset          = asset.ErrUnknownAsset
	ErrNoActiveStake         = staking.ErrNoActiveStake
	ErrActiveStake           = staking.ErrActiveStake
	ErrMaturityNotReached    = staking.ErrMaturityNotReached
	ErrEscrowAccount         = staking.ErrEscrowAccount
	ErrFeeCapExceeded        = ownerfee.ErrFeeCapExceeded

	ErrNotAuthorized   = errors.New("escrow: caller is not the owner")
	ErrInvalidConfig   = errors.New("escrow: invalid configuration")
	ErrConfigMismatch  = errors.New("escrow: configuration differs from the one the ledger was created with")
	ErrNotInitialized  = errors.New("escrow: ledger not initialized")
	ErrUnexpectedValue = errors.New("escrow: call does not accept native value")
)
