package staking

import (
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/rawdb"
	"github.com/ethereum/go-ethereum/core/state"

	"github.com/tos-network/gescrow/asset"
	"github.com/tos-network/gescrow/params"
)

// newTestState creates a fresh in-memory StateDB for tests.
func newTestState() *state.StateDB {
	db := state.NewDatabase(rawdb.NewMemoryDatabase())
	s, _ := state.New(common.Hash{}, db, nil)
	return s
}

// tAddr generates a deterministic test address.
func tAddr(b byte) common.Address { return common.Address{b} }

func TestProfitTable(t *testing.T) {
	tests := []struct {
		acc       Accrual
		principal int64
		elapsed   uint64
		want      int64
	}{
		{DefaultAccrual(), 1000, 10, 100},
		{DefaultAccrual(), 1000, 0, 0},
		{DefaultAccrual(), 1000, 25, 250},
		{DefaultAccrual(), 99, 10, 9}, // floor(9.9)
		{DefaultAccrual(), 1, 10, 0},  // floor(0.1)
		{Accrual{MaturityBlocks: 10, RateBPS: 100, CapBlocks: 20}, 1000, 50, 200},
		{Accrual{MaturityBlocks: 10, RateBPS: 100, CapBlocks: 20}, 1000, 15, 150},
		{Accrual{MaturityBlocks: 10, RateBPS: 0}, 1000, 15, 0},
		{Accrual{MaturityBlocks: 10, RateBPS: 250}, 400, 10, 100},
	}
	for i, tt := range tests {
		have, err := tt.acc.Profit(big.NewInt(tt.principal), tt.elapsed)
		if err != nil {
			t.Fatalf("case %d: %v", i, err)
		}
		if have.Cmp(big.NewInt(tt.want)) != 0 {
			t.Errorf("case %d: profit %v, want %d", i, have, tt.want)
		}
	}
}

func TestProfitOverflow(t *testing.T) {
	max := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))
	if _, err := DefaultAccrual().Profit(max, 10); !errors.Is(err, asset.ErrAmountOverflow) {
		t.Fatalf("expected overflow, got %v", err)
	}
}

func TestDepositAssignsSequentialIDs(t *testing.T) {
	st := newTestState()
	a, b := tAddr(0x01), tAddr(0x02)

	ra, err := Deposit(st, a, asset.Token, big.NewInt(1000), 5)
	if err != nil {
		t.Fatalf("deposit a: %v", err)
	}
	rb, err := Deposit(st, b, asset.Native, big.NewInt(700), 6)
	if err != nil {
		t.Fatalf("deposit b: %v", err)
	}
	if ra.ID != 1 || rb.ID != 2 {
		t.Fatalf("ids: have %d,%d want 1,2", ra.ID, rb.ID)
	}
	if ra.TokenAmount().Cmp(big.NewInt(1000)) != 0 || ra.NativeAmount().Sign() != 0 {
		t.Fatalf("token record amounts: token=%v native=%v", ra.TokenAmount(), ra.NativeAmount())
	}
	if rb.NativeAmount().Cmp(big.NewInt(700)) != 0 || rb.TokenAmount().Sign() != 0 {
		t.Fatalf("native record amounts: token=%v native=%v", rb.TokenAmount(), rb.NativeAmount())
	}
	if ra.DepositBlock != 5 || ra.Status != Active {
		t.Fatalf("record a: %+v", ra)
	}
	if got := Accounts(st); len(got) != 2 || got[0] != a || got[1] != b {
		t.Fatalf("accounts: %v", got)
	}
}

func TestDepositRejections(t *testing.T) {
	st := newTestState()
	a := tAddr(0x01)

	if _, err := Deposit(st, a, asset.Token, big.NewInt(0), 1); !errors.Is(err, asset.ErrInvalidAmount) {
		t.Fatalf("zero amount: %v", err)
	}
	if _, err := Deposit(st, a, asset.Class(7), big.NewInt(1), 1); !errors.Is(err, asset.ErrUnknownAsset) {
		t.Fatalf("unknown asset: %v", err)
	}
	if _, err := Deposit(st, params.EscrowAddress, asset.Native, big.NewInt(10), 1); !errors.Is(err, ErrEscrowAccount) {
		t.Fatalf("escrow account: %v", err)
	}
	if _, err := Deposit(st, a, asset.Token, big.NewInt(10), 1); err != nil {
		t.Fatalf("deposit: %v", err)
	}
	if _, err := Deposit(st, a, asset.Native, big.NewInt(10), 2); !errors.Is(err, ErrActiveStake) {
		t.Fatalf("second deposit: %v", err)
	}
	if LastStakeID(st) != 1 {
		t.Fatalf("rejected deposits consumed ids: %d", LastStakeID(st))
	}
}

func TestWithdrawMaturityAndAsset(t *testing.T) {
	st := newTestState()
	a := tAddr(0x01)
	acc := DefaultAccrual()

	if _, err := Withdraw(st, a, asset.Token, 100, acc); !errors.Is(err, ErrNoActiveStake) {
		t.Fatalf("no stake: %v", err)
	}
	if _, err := Deposit(st, a, asset.Native, big.NewInt(1000), 10); err != nil {
		t.Fatalf("deposit: %v", err)
	}
	if _, err := Withdraw(st, a, asset.Token, 30, acc); !errors.Is(err, ErrNoActiveStake) {
		t.Fatalf("wrong asset: %v", err)
	}
	if _, err := Withdraw(st, a, asset.Native, 19, acc); !errors.Is(err, ErrMaturityNotReached) {
		t.Fatalf("immature: %v", err)
	}
	payout, err := Withdraw(st, a, asset.Native, 20, acc)
	if err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	if payout.Cmp(big.NewInt(1100)) != 0 {
		t.Fatalf("payout: have %v want 1100", payout)
	}
	rec := ReadStake(st, a)
	if rec.Status != Withdrawn || rec.Principal.Sign() != 0 {
		t.Fatalf("record after withdraw: %+v", rec)
	}
	if rec.TokenAmount().Sign() != 0 || rec.NativeAmount().Sign() != 0 {
		t.Fatal("withdrawn record reports a principal")
	}
	if _, err := Withdraw(st, a, asset.Native, 40, acc); !errors.Is(err, ErrNoActiveStake) {
		t.Fatalf("double withdraw: %v", err)
	}
}

func TestRedepositAfterWithdraw(t *testing.T) {
	st := newTestState()
	a := tAddr(0x01)

	if _, err := Deposit(st, a, asset.Token, big.NewInt(1000), 0); err != nil {
		t.Fatalf("deposit: %v", err)
	}
	if _, err := Withdraw(st, a, asset.Token, 10, DefaultAccrual()); err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	rec, err := Deposit(st, a, asset.Native, big.NewInt(5), 11)
	if err != nil {
		t.Fatalf("redeposit: %v", err)
	}
	if rec.ID != 2 || rec.Asset != asset.Native || rec.DepositBlock != 11 {
		t.Fatalf("redeposit record: %+v", rec)
	}
	if got := Accounts(st); len(got) != 1 {
		t.Fatalf("account listed twice: %v", got)
	}
}

func TestQuoteBeforeDepositBlock(t *testing.T) {
	st := newTestState()
	a := tAddr(0x01)
	if _, err := Deposit(st, a, asset.Token, big.NewInt(1000), 50); err != nil {
		t.Fatalf("deposit: %v", err)
	}
	if _, _, err := Quote(st, a, asset.Token, 10, DefaultAccrual()); !errors.Is(err, ErrMaturityNotReached) {
		t.Fatalf("quote at earlier block: %v", err)
	}
	zero := Accrual{RateBPS: 100}
	_, payout, err := Quote(st, a, asset.Token, 50, zero)
	if err != nil {
		t.Fatalf("quote without maturity: %v", err)
	}
	if payout.Cmp(big.NewInt(1000)) != 0 {
		t.Fatalf("payout at deposit block: %v", payout)
	}
}
