package asset

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/vm"
	"github.com/ethereum/go-ethereum/crypto"
)

// tokenSlot hashes (addr[20B] || 0x00 || field) for a per-holder token slot.
func tokenSlot(addr common.Address, field string) common.Hash {
	key := make([]byte, 0, 21+len(field))
	key = append(key, addr.Bytes()...)
	key = append(key, 0x00)
	key = append(key, field...)
	return common.BytesToHash(crypto.Keccak256(key))
}

// allowanceSlot hashes (owner || spender || 0x00 || "allowance").
func allowanceSlot(owner, spender common.Address) common.Hash {
	key := make([]byte, 0, 41+len("allowance"))
	key = append(key, owner.Bytes()...)
	key = append(key, spender.Bytes()...)
	key = append(key, 0x00)
	key = append(key, "allowance"...)
	return common.BytesToHash(crypto.Keccak256(key))
}

var totalSupplySlot = common.BytesToHash(crypto.Keccak256([]byte("token\x00totalSupply")))

// TokenContract is a minimal fungible token whose balances and allowances
// live in the storage slots of its contract address.
type TokenContract struct {
	db      vm.StateDB
	address common.Address
}

// NewToken binds a token to the storage of the given contract address.
func NewToken(db vm.StateDB, address common.Address) *TokenContract {
	return &TokenContract{db: db, address: address}
}

// Address returns the token contract address.
func (t *TokenContract) Address() common.Address { return t.address }

// BalanceOf returns the token balance of holder.
func (t *TokenContract) BalanceOf(holder common.Address) *big.Int {
	return ReadWord(t.db, t.address, tokenSlot(holder, "balance"))
}

// TotalSupply returns the number of tokens minted so far.
func (t *TokenContract) TotalSupply() *big.Int {
	return ReadWord(t.db, t.address, totalSupplySlot)
}

// Allowance returns how many tokens spender may pull from owner.
func (t *TokenContract) Allowance(owner, spender common.Address) *big.Int {
	return ReadWord(t.db, t.address, allowanceSlot(owner, spender))
}

// Mint credits amount new tokens to the given holder.
func (t *TokenContract) Mint(to common.Address, amount *big.Int) error {
	if err := CheckAmount(amount); err != nil {
		return err
	}
	supply, err := AddWord(t.TotalSupply(), amount)
	if err != nil {
		return err
	}
	balance, err := AddWord(t.BalanceOf(to), amount)
	if err != nil {
		return err
	}
	WriteWord(t.db, t.address, totalSupplySlot, supply)
	WriteWord(t.db, t.address, tokenSlot(to, "balance"), balance)
	return nil
}

// Approve sets the allowance of spender over owner's tokens. A zero amount
// revokes the allowance.
func (t *TokenContract) Approve(owner, spender common.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return ErrInvalidAmount
	}
	if amount.Sign() > 0 {
		if err := CheckAmount(amount); err != nil {
			return err
		}
	}
	WriteWord(t.db, t.address, allowanceSlot(owner, spender), amount)
	return nil
}

// Transfer moves amount tokens from one holder to another.
func (t *TokenContract) Transfer(from, to common.Address, amount *big.Int) error {
	if err := CheckAmount(amount); err != nil {
		return err
	}
	fromBal := t.BalanceOf(from)
	if fromBal.Cmp(amount) < 0 {
		return ErrInsufficientBalance
	}
	if from == to {
		return nil
	}
	toBal, err := AddWord(t.BalanceOf(to), amount)
	if err != nil {
		return err
	}
	WriteWord(t.db, t.address, tokenSlot(from, "balance"), new(big.Int).Sub(fromBal, amount))
	WriteWord(t.db, t.address, tokenSlot(to, "balance"), toBal)
	return nil
}

// TransferFrom moves amount tokens from owner to recipient on behalf of
// spender, consuming the allowance.
func (t *TokenContract) TransferFrom(spender, owner, to common.Address, amount *big.Int) error {
	if err := CheckAmount(amount); err != nil {
		return err
	}
	allowance := t.Allowance(owner, spender)
	if allowance.Cmp(amount) < 0 {
		return ErrInsufficientAllowance
	}
	if err := t.Transfer(owner, to, amount); err != nil {
		return err
	}
	WriteWord(t.db, t.address, allowanceSlot(owner, spender), new(big.Int).Sub(allowance, amount))
	return nil
}

var (
	_ Adapter = (*TokenAdapter)(nil)
	_ Adapter = (*NativeAdapter)(nil)
)

// TokenAdapter moves tokens of a TokenContract between accounts and the escrow.
// Deposits go through the allowance the depositor granted to the escrow.
type TokenAdapter struct {
	token  *TokenContract
	escrow common.Address
}

// NewTokenAdapter returns an adapter that holds the token's escrowed funds at
// the escrow address.
func NewTokenAdapter(token *TokenContract, escrow common.Address) *TokenAdapter {
	return &TokenAdapter{token: token, escrow: escrow}
}

func (a *TokenAdapter) Class() Class { return Token }

// TransferIn pulls amount tokens from the depositor using its allowance.
func (a *TokenAdapter) TransferIn(from common.Address, amount *big.Int) error {
	return a.token.TransferFrom(a.escrow, from, a.escrow, amount)
}

// TransferOut pays amount tokens from the escrow to the given account.
func (a *TokenAdapter) TransferOut(to common.Address, amount *big.Int) error {
	if err := CheckAmount(amount); err != nil {
		return err
	}
	if a.token.BalanceOf(a.escrow).Cmp(amount) < 0 {
		return ErrInsufficientLiquidity
	}
	return a.token.Transfer(a.escrow, to, amount)
}

// BalanceOf returns the token balance of account.
func (a *TokenAdapter) BalanceOf(account common.Address) *big.Int {
	return a.token.BalanceOf(account)
}
