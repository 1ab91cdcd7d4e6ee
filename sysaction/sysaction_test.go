package sysaction

import (
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
)

type recordingHandler struct {
	kinds []ActionKind
	seen  []*SysAction
}

func (h *recordingHandler) CanHandle(kind ActionKind) bool {
	for _, k := range h.kinds {
		if k == kind {
			return true
		}
	}
	return false
}

func (h *recordingHandler) Handle(_ *Context, sa *SysAction) error {
	h.seen = append(h.seen, sa)
	return nil
}

func TestDecodeErrors(t *testing.T) {
	for _, data := range []string{"", "{", `{"payload":{}}`, `[]`} {
		if _, err := Decode([]byte(data)); !errors.Is(err, ErrInvalidSysAction) {
			t.Errorf("Decode(%q): have %v, want ErrInvalidSysAction", data, err)
		}
	}
}

func TestMakeAndDecodePayload(t *testing.T) {
	data, err := MakeSysAction(ActionWithdrawOwner, WithdrawOwnerPayload{Asset: "native", Amount: "42"})
	if err != nil {
		t.Fatalf("make: %v", err)
	}
	sa, err := Decode(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if sa.Action != ActionWithdrawOwner {
		t.Fatalf("action: %s", sa.Action)
	}
	var p WithdrawOwnerPayload
	if err := DecodePayload(sa, &p); err != nil {
		t.Fatalf("payload: %v", err)
	}
	amount, err := ParseAmount(p.Amount)
	if err != nil || amount.Cmp(big.NewInt(42)) != 0 || p.Asset != "native" {
		t.Fatalf("payload mismatch: %+v (%v)", p, err)
	}
	if _, err := ParseAmount("4x"); !errors.Is(err, ErrInvalidSysAction) {
		t.Fatalf("bad amount: %v", err)
	}
}

func TestRegistryDispatch(t *testing.T) {
	deposits := &recordingHandler{kinds: []ActionKind{ActionDepositToken, ActionDepositNative}}
	withdrawals := &recordingHandler{kinds: []ActionKind{ActionWithdrawToken}}
	r := NewRegistry(deposits)
	r.Register(withdrawals)

	ctx := &Context{From: common.Address{0x01}, Value: new(big.Int)}
	data, _ := MakeSysAction(ActionWithdrawToken, nil)
	if err := r.Execute(ctx, data); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(withdrawals.seen) != 1 || len(deposits.seen) != 0 {
		t.Fatalf("dispatch went to the wrong handler")
	}
	data, _ = MakeSysAction(ActionWithdrawOwner, nil)
	if err := r.Execute(ctx, data); !errors.Is(err, ErrUnknownAction) {
		t.Fatalf("unhandled kind: %v", err)
	}
}
