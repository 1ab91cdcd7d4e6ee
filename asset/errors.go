package asset

import "errors"

var (
	// ErrInvalidAmount is returned for nil, zero or negative amounts where a
	// positive amount is required.
	ErrInvalidAmount = errors.New("asset: amount must be positive")

	// ErrInsufficientAllowance is returned when the escrow is not approved to
	// pull the requested amount of tokens.
	ErrInsufficientAllowance = errors.New("asset: insufficient allowance")

	// ErrInsufficientBalance is returned when the sender cannot fund a transfer.
	ErrInsufficientBalance = errors.New("asset: insufficient balance")

	// ErrInsufficientLiquidity is returned when the escrow holds less of an
	// asset than a withdrawal needs.
	ErrInsufficientLiquidity = errors.New("asset: insufficient escrow liquidity")

	// ErrAmountOverflow is returned when an amount or a balance would not fit
	// into a 256-bit storage word.
	ErrAmountOverflow = errors.New("asset: amount overflows 256 bits")

	// ErrUnknownAsset is returned for an asset class other than token or native.
	ErrUnknownAsset = errors.New("asset: unknown asset class")
)
