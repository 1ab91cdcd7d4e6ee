// Package ownerfee tracks the share of every deposit reserved for the
// protocol owner, per asset, and enforces the cap on owner withdrawals.
package ownerfee

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/vm"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"

	"github.com/tos-network/gescrow/asset"
	"github.com/tos-network/gescrow/params"
)

// ErrFeeCapExceeded is returned when the owner asks for more than is reserved.
var ErrFeeCapExceeded = errors.New("ownerfee: amount exceeds reserved fee")

func reservedSlot(c asset.Class) common.Hash {
	return common.BytesToHash(crypto.Keccak256([]byte("escrow\x00ownerFee\x00" + c.String())))
}

// FeeShare returns floor(amount * percent / 100).
func FeeShare(amount *big.Int, percent uint64) (*big.Int, error) {
	if amount == nil {
		return new(big.Int), nil
	}
	a, overflow := uint256.FromBig(amount)
	if overflow || amount.Sign() < 0 {
		return nil, asset.ErrAmountOverflow
	}
	v, overflow := new(uint256.Int).MulOverflow(a, uint256.NewInt(percent))
	if overflow {
		return nil, asset.ErrAmountOverflow
	}
	return v.Div(v, uint256.NewInt(100)).ToBig(), nil
}

// Reserved returns the owner fee currently reserved in asset c.
func Reserved(db vm.StateDB, c asset.Class) *big.Int {
	return asset.ReadWord(db, params.EscrowAddress, reservedSlot(c))
}

// Credit adds share to the reserve of asset c.
func Credit(db vm.StateDB, c asset.Class, share *big.Int) error {
	if !c.Valid() {
		return fmt.Errorf("%w: %d", asset.ErrUnknownAsset, uint8(c))
	}
	if share == nil || share.Sign() == 0 {
		return nil
	}
	sum, err := asset.AddWord(Reserved(db, c), share)
	if err != nil {
		return err
	}
	asset.WriteWord(db, params.EscrowAddress, reservedSlot(c), sum)
	return nil
}

// CheckWithdraw validates an owner withdrawal of amount in asset c against
// the escrow's liquidity and the reserve, without touching state. Liquidity
// is checked before the reserve cap.
func CheckWithdraw(db vm.StateDB, c asset.Class, amount, liquidity *big.Int) error {
	if !c.Valid() {
		return fmt.Errorf("%w: %d", asset.ErrUnknownAsset, uint8(c))
	}
	if err := asset.CheckAmount(amount); err != nil {
		return err
	}
	if liquidity == nil || liquidity.Cmp(amount) < 0 {
		return fmt.Errorf("%w: have %v, want %v", asset.ErrInsufficientLiquidity, liquidity, amount)
	}
	if reserved := Reserved(db, c); reserved.Cmp(amount) < 0 {
		return fmt.Errorf("%w: reserved %v, requested %v", ErrFeeCapExceeded, reserved, amount)
	}
	return nil
}

// Debit validates an owner withdrawal and reduces the reserve by amount.
func Debit(db vm.StateDB, c asset.Class, amount, liquidity *big.Int) error {
	if err := CheckWithdraw(db, c, amount, liquidity); err != nil {
		return err
	}
	left := new(big.Int).Sub(Reserved(db, c), amount)
	asset.WriteWord(db, params.EscrowAddress, reservedSlot(c), left)
	return nil
}
