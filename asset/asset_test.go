package asset

import (
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/rawdb"
	"github.com/ethereum/go-ethereum/core/state"
)

var (
	escrowAddr = common.HexToAddress("0x00000000000000000000000000000000000000e5")
	tokenAddr  = common.HexToAddress("0x00000000000000000000000000000000000000e6")
	alice      = common.Address{0x01}
	bob        = common.Address{0x02}
)

func newTestState(t *testing.T) *state.StateDB {
	t.Helper()
	s, err := state.New(common.Hash{}, state.NewDatabase(rawdb.NewMemoryDatabase()), nil)
	if err != nil {
		t.Fatalf("failed to create state db: %v", err)
	}
	return s
}

func TestParseClass(t *testing.T) {
	tests := []struct {
		in   string
		want Class
		err  error
	}{
		{"token", Token, nil},
		{"TOKEN", Token, nil},
		{"native", Native, nil},
		{" ether ", Native, nil},
		{"eth", Native, nil},
		{"btc", 0, ErrUnknownAsset},
		{"", 0, ErrUnknownAsset},
	}
	for _, tt := range tests {
		got, err := ParseClass(tt.in)
		if !errors.Is(err, tt.err) {
			t.Fatalf("ParseClass(%q): err %v, want %v", tt.in, err, tt.err)
		}
		if got != tt.want {
			t.Fatalf("ParseClass(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestClassText(t *testing.T) {
	for _, c := range Classes {
		text, err := c.MarshalText()
		if err != nil {
			t.Fatalf("marshal %v: %v", c, err)
		}
		var back Class
		if err := back.UnmarshalText(text); err != nil {
			t.Fatalf("unmarshal %q: %v", text, err)
		}
		if back != c {
			t.Fatalf("text mismatch: have %v want %v", back, c)
		}
	}
	if _, err := Class(9).MarshalText(); !errors.Is(err, ErrUnknownAsset) {
		t.Fatalf("expected ErrUnknownAsset, got %v", err)
	}
}

func TestCheckAmount(t *testing.T) {
	huge := new(big.Int).Lsh(big.NewInt(1), 256)
	tests := []struct {
		amount *big.Int
		err    error
	}{
		{nil, ErrInvalidAmount},
		{big.NewInt(0), ErrInvalidAmount},
		{big.NewInt(-5), ErrInvalidAmount},
		{big.NewInt(1), nil},
		{new(big.Int).Sub(huge, big.NewInt(1)), nil},
		{huge, ErrAmountOverflow},
	}
	for i, tt := range tests {
		if err := CheckAmount(tt.amount); !errors.Is(err, tt.err) {
			t.Errorf("case %d: have %v, want %v", i, err, tt.err)
		}
	}
}

func TestAddWordOverflow(t *testing.T) {
	max := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))
	if _, err := AddWord(max, big.NewInt(1)); !errors.Is(err, ErrAmountOverflow) {
		t.Fatalf("expected overflow, got %v", err)
	}
	sum, err := AddWord(big.NewInt(40), big.NewInt(2))
	if err != nil || sum.Cmp(big.NewInt(42)) != 0 {
		t.Fatalf("sum mismatch: have %v (%v), want 42", sum, err)
	}
}

func TestNativeTransfers(t *testing.T) {
	st := newTestState(t)
	n := NewNative(st, escrowAddr)
	st.AddBalance(alice, big.NewInt(1000))

	if err := n.TransferIn(alice, big.NewInt(1001)); !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}
	if err := n.TransferIn(alice, big.NewInt(0)); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	if err := n.TransferIn(alice, big.NewInt(1000)); err != nil {
		t.Fatalf("transfer in: %v", err)
	}
	if have := n.BalanceOf(escrowAddr); have.Cmp(big.NewInt(1000)) != 0 {
		t.Fatalf("escrow balance: have %v want 1000", have)
	}
	if have := n.BalanceOf(alice); have.Sign() != 0 {
		t.Fatalf("alice balance: have %v want 0", have)
	}
	if err := n.TransferOut(bob, big.NewInt(1001)); !errors.Is(err, ErrInsufficientLiquidity) {
		t.Fatalf("expected ErrInsufficientLiquidity, got %v", err)
	}
	if err := n.TransferOut(bob, big.NewInt(400)); err != nil {
		t.Fatalf("transfer out: %v", err)
	}
	if have := n.BalanceOf(bob); have.Cmp(big.NewInt(400)) != 0 {
		t.Fatalf("bob balance: have %v want 400", have)
	}
	// BalanceOf must hand out a copy.
	n.BalanceOf(bob).SetInt64(0)
	if have := st.GetBalance(bob); have.Cmp(big.NewInt(400)) != 0 {
		t.Fatalf("balance mutated through BalanceOf: %v", have)
	}
}

func TestTokenMintApproveTransfer(t *testing.T) {
	st := newTestState(t)
	tok := NewToken(st, tokenAddr)

	if err := tok.Mint(alice, big.NewInt(1000)); err != nil {
		t.Fatalf("mint: %v", err)
	}
	if err := tok.Mint(bob, big.NewInt(500)); err != nil {
		t.Fatalf("mint: %v", err)
	}
	if have := tok.TotalSupply(); have.Cmp(big.NewInt(1500)) != 0 {
		t.Fatalf("supply: have %v want 1500", have)
	}
	if err := tok.Transfer(alice, bob, big.NewInt(1001)); !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}
	if err := tok.Transfer(alice, bob, big.NewInt(100)); err != nil {
		t.Fatalf("transfer: %v", err)
	}
	if tok.BalanceOf(alice).Cmp(big.NewInt(900)) != 0 || tok.BalanceOf(bob).Cmp(big.NewInt(600)) != 0 {
		t.Fatalf("balances after transfer: alice=%v bob=%v", tok.BalanceOf(alice), tok.BalanceOf(bob))
	}
	if err := tok.Approve(alice, escrowAddr, big.NewInt(-1)); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	if err := tok.Approve(alice, escrowAddr, big.NewInt(300)); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if err := tok.TransferFrom(escrowAddr, alice, escrowAddr, big.NewInt(301)); !errors.Is(err, ErrInsufficientAllowance) {
		t.Fatalf("expected ErrInsufficientAllowance, got %v", err)
	}
	if err := tok.TransferFrom(escrowAddr, alice, escrowAddr, big.NewInt(200)); err != nil {
		t.Fatalf("transferFrom: %v", err)
	}
	if have := tok.Allowance(alice, escrowAddr); have.Cmp(big.NewInt(100)) != 0 {
		t.Fatalf("allowance: have %v want 100", have)
	}
	if err := tok.Approve(alice, escrowAddr, new(big.Int)); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if have := tok.Allowance(alice, escrowAddr); have.Sign() != 0 {
		t.Fatalf("allowance after revoke: %v", have)
	}
}

func TestTokenAdapterChecksAllowanceBeforeBalance(t *testing.T) {
	st := newTestState(t)
	tok := NewToken(st, tokenAddr)
	a := NewTokenAdapter(tok, escrowAddr)

	// Balance but no allowance.
	if err := tok.Mint(alice, big.NewInt(1000)); err != nil {
		t.Fatalf("mint: %v", err)
	}
	if err := a.TransferIn(alice, big.NewInt(1000)); !errors.Is(err, ErrInsufficientAllowance) {
		t.Fatalf("want ErrInsufficientAllowance, got %v", err)
	}
	// Allowance but not enough balance.
	if err := tok.Mint(bob, big.NewInt(500)); err != nil {
		t.Fatalf("mint: %v", err)
	}
	if err := tok.Approve(bob, escrowAddr, big.NewInt(1000)); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if err := a.TransferIn(bob, big.NewInt(1000)); !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("want ErrInsufficientBalance, got %v", err)
	}
	if have := tok.Allowance(bob, escrowAddr); have.Cmp(big.NewInt(1000)) != 0 {
		t.Fatalf("failed transfer consumed allowance: %v", have)
	}
}

func TestTokenAdapterRoundTrip(t *testing.T) {
	st := newTestState(t)
	tok := NewToken(st, tokenAddr)
	a := NewTokenAdapter(tok, escrowAddr)

	if err := tok.Mint(alice, big.NewInt(1000)); err != nil {
		t.Fatalf("mint: %v", err)
	}
	if err := tok.Approve(alice, escrowAddr, big.NewInt(1000)); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if err := a.TransferIn(alice, big.NewInt(1000)); err != nil {
		t.Fatalf("transfer in: %v", err)
	}
	if have := a.BalanceOf(escrowAddr); have.Cmp(big.NewInt(1000)) != 0 {
		t.Fatalf("escrow balance: have %v want 1000", have)
	}
	if err := a.TransferOut(alice, big.NewInt(1050)); !errors.Is(err, ErrInsufficientLiquidity) {
		t.Fatalf("want ErrInsufficientLiquidity, got %v", err)
	}
	if err := a.TransferOut(alice, big.NewInt(50)); err != nil {
		t.Fatalf("transfer out: %v", err)
	}
	if have := a.BalanceOf(alice); have.Cmp(big.NewInt(50)) != 0 {
		t.Fatalf("alice balance: have %v want 50", have)
	}
}
