package escrowapi

import (
	"errors"

	"github.com/tos-network/gescrow/escrow"
	"github.com/tos-network/gescrow/sysaction"
)

// Stable application error codes of the escrow_* and dev_* namespaces.
const (
	ErrCodeInvalidAmount         = -39000
	ErrCodeInsufficientAllowance = -39001
	ErrCodeInsufficientBalance   = -39002
	ErrCodeNoActiveStake         = -39003
	ErrCodeMaturityNotReached    = -39004
	ErrCodeInsufficientLiquidity = -39005
	ErrCodeFeeCapExceeded        = -39006
	ErrCodeNotAuthorized         = -39007
	ErrCodeActiveStake           = -39008
	ErrCodeAmountOverflow        = -39009
	ErrCodeUnknownAsset          = -39010
	ErrCodeUnexpectedValue       = -39011
	ErrCodeInvalidAction         = -39012
	ErrCodeEscrowAccount         = -39013
	ErrCodeInternal              = -39099
)

var errorCodes = []struct {
	err  error
	code int
	name string
}{
	{escrow.ErrInvalidAmount, ErrCodeInvalidAmount, "InvalidAmount"},
	{escrow.ErrInsufficientAllowance, ErrCodeInsufficientAllowance, "InsufficientAllowance"},
	{escrow.ErrInsufficientBalance, ErrCodeInsufficientBalance, "InsufficientBalance"},
	{escrow.ErrNoActiveStake, ErrCodeNoActiveStake, "NoActiveStake"},
	{escrow.ErrMaturityNotReached, ErrCodeMaturityNotReached, "MaturityNotReached"},
	{escrow.ErrInsufficientLiquidity, ErrCodeInsufficientLiquidity, "InsufficientLiquidity"},
	{escrow.ErrFeeCapExceeded, ErrCodeFeeCapExceeded, "FeeCapExceeded"},
	{escrow.ErrNotAuthorized, ErrCodeNotAuthorized, "NotAuthorized"},
	{escrow.ErrActiveStake, ErrCodeActiveStake, "ActiveStake"},
	{escrow.ErrAmountOverflow, ErrCodeAmountOverflow, "AmountOverflow"},
	{escrow.ErrUnknownAsset, ErrCodeUnknownAsset, "UnknownAsset"},
	{escrow.ErrUnexpectedValue, ErrCodeUnexpectedValue, "UnexpectedValue"},
	{escrow.ErrEscrowAccount, ErrCodeEscrowAccount, "EscrowAccount"},
	{sysaction.ErrInvalidSysAction, ErrCodeInvalidAction, "InvalidAction"},
	{sysaction.ErrUnknownAction, ErrCodeInvalidAction, "InvalidAction"},
}

// apiError is a JSON-RPC error with a stable application code and the
// taxonomy name as data payload.
type apiError struct {
	code    int
	message string
	data    interface{}
}

func (e *apiError) Error() string          { return e.message }
func (e *apiError) ErrorCode() int         { return e.code }
func (e *apiError) ErrorData() interface{} { return e.data }

// toAPIError maps an escrow error onto its stable code. nil stays nil.
func toAPIError(err error) error {
	if err == nil {
		return nil
	}
	for _, c := range errorCodes {
		if errors.Is(err, c.err) {
			return &apiError{code: c.code, message: err.Error(), data: map[string]string{"kind": c.name}}
		}
	}
	return &apiError{code: ErrCodeInternal, message: err.Error()}
}
