package escrow

import (
	"fmt"
	"math/big"

	"github.com/tos-network/gescrow/asset"
	"github.com/tos-network/gescrow/sysaction"
)

// handler implements sysaction.Handler for the escrow entry points.
type handler struct{ s *Service }

// Handler returns the system action handler serving this escrow.
func (s *Service) Handler() sysaction.Handler { return &handler{s: s} }

func (h *handler) CanHandle(kind sysaction.ActionKind) bool {
	switch kind {
	case sysaction.ActionDepositToken,
		sysaction.ActionDepositNative,
		sysaction.ActionWithdrawToken,
		sysaction.ActionWithdrawNative,
		sysaction.ActionWithdrawOwner:
		return true
	}
	return false
}

func (h *handler) Handle(ctx *sysaction.Context, sa *sysaction.SysAction) error {
	value := ctx.Value
	if value == nil {
		value = new(big.Int)
	}
	if sa.Action != sysaction.ActionDepositNative && value.Sign() != 0 {
		return fmt.Errorf("%w: %s", ErrUnexpectedValue, sa.Action)
	}

	switch sa.Action {
	case sysaction.ActionDepositToken:
		var p sysaction.DepositTokenPayload
		if err := sysaction.DecodePayload(sa, &p); err != nil {
			return err
		}
		amount, err := sysaction.ParseAmount(p.Amount)
		if err != nil {
			return err
		}
		_, err = h.s.DepositToken(ctx.From, amount)
		return err

	case sysaction.ActionDepositNative:
		_, err := h.s.DepositNative(ctx.From, value)
		return err

	case sysaction.ActionWithdrawToken:
		_, err := h.s.WithdrawToken(ctx.From)
		return err

	case sysaction.ActionWithdrawNative:
		_, err := h.s.WithdrawNative(ctx.From)
		return err

	case sysaction.ActionWithdrawOwner:
		var p sysaction.WithdrawOwnerPayload
		if err := sysaction.DecodePayload(sa, &p); err != nil {
			return err
		}
		class, err := asset.ParseClass(p.Asset)
		if err != nil {
			return err
		}
		amount, err := sysaction.ParseAmount(p.Amount)
		if err != nil {
			return err
		}
		return h.s.WithdrawOwner(ctx.From, class, amount)
	}
	return fmt.Errorf("escrow handler: unsupported action %q", sa.Action)
}
