package asset

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/vm"
)

// NativeAdapter moves native currency through account balances of the state
// database. The escrow's pooled native liquidity is the balance of its own
// address.
type NativeAdapter struct {
	db     vm.StateDB
	escrow common.Address
}

// NewNative returns a native currency adapter holding funds at escrow.
func NewNative(db vm.StateDB, escrow common.Address) *NativeAdapter {
	return &NativeAdapter{db: db, escrow: escrow}
}

func (n *NativeAdapter) Class() Class { return Native }

// TransferIn moves value attached to a call from the caller to the escrow.
func (n *NativeAdapter) TransferIn(from common.Address, amount *big.Int) error {
	if err := CheckAmount(amount); err != nil {
		return err
	}
	if n.db.GetBalance(from).Cmp(amount) < 0 {
		return ErrInsufficientBalance
	}
	if _, err := AddWord(n.db.GetBalance(n.escrow), amount); err != nil {
		return err
	}
	n.db.SubBalance(from, amount)
	n.db.AddBalance(n.escrow, amount)
	return nil
}

// TransferOut pays amount from the escrow balance to the given account.
func (n *NativeAdapter) TransferOut(to common.Address, amount *big.Int) error {
	if err := CheckAmount(amount); err != nil {
		return err
	}
	if n.db.GetBalance(n.escrow).Cmp(amount) < 0 {
		return ErrInsufficientLiquidity
	}
	if _, err := AddWord(n.db.GetBalance(to), amount); err != nil {
		return err
	}
	n.db.SubBalance(n.escrow, amount)
	n.db.AddBalance(to, amount)
	return nil
}

// BalanceOf returns a copy of the native balance of account.
func (n *NativeAdapter) BalanceOf(account common.Address) *big.Int {
	return new(big.Int).Set(n.db.GetBalance(account))
}
