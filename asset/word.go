package asset

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/vm"
	"github.com/holiman/uint256"
)

// CheckAmount returns ErrInvalidAmount unless amount is positive and
// ErrAmountOverflow if it does not fit into a storage word.
func CheckAmount(amount *big.Int) error {
	if amount == nil || amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	if _, overflow := uint256.FromBig(amount); overflow {
		return ErrAmountOverflow
	}
	return nil
}

// AddWord returns a+b, failing with ErrAmountOverflow if the sum does not fit
// into a storage word.
func AddWord(a, b *big.Int) (*big.Int, error) {
	x, overflow := uint256.FromBig(a)
	if overflow {
		return nil, ErrAmountOverflow
	}
	y, overflow := uint256.FromBig(b)
	if overflow {
		return nil, ErrAmountOverflow
	}
	sum, overflow := new(uint256.Int).AddOverflow(x, y)
	if overflow {
		return nil, ErrAmountOverflow
	}
	return sum.ToBig(), nil
}

// ReadWord loads a storage word as an unsigned integer.
func ReadWord(db vm.StateDB, owner common.Address, slot common.Hash) *big.Int {
	return db.GetState(owner, slot).Big()
}

// WriteWord stores an unsigned integer into a storage word.
func WriteWord(db vm.StateDB, owner common.Address, slot common.Hash, v *big.Int) {
	if v == nil || v.Sign() == 0 {
		db.SetState(owner, slot, common.Hash{})
		return
	}
	db.SetState(owner, slot, common.BigToHash(v))
}
