package staking

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/vm"
	"github.com/ethereum/go-ethereum/log"

	"github.com/tos-network/gescrow/asset"
	"github.com/tos-network/gescrow/params"
)

// CheckDeposit validates a deposit without touching state.
func CheckDeposit(db vm.StateDB, account common.Address, class asset.Class, amount *big.Int) error {
	if !class.Valid() {
		return fmt.Errorf("%w: %d", asset.ErrUnknownAsset, uint8(class))
	}
	if err := asset.CheckAmount(amount); err != nil {
		return err
	}
	// The escrow paying itself moves no value.
	if account == params.EscrowAddress {
		return ErrEscrowAccount
	}
	if readStatus(db, account) == Active {
		return ErrActiveStake
	}
	return nil
}

// Deposit opens a stake for account. The funds must already have been moved
// to the escrow; Deposit only records them. A withdrawn record is reused, an
// active one is rejected with ErrActiveStake.
func Deposit(db vm.StateDB, account common.Address, class asset.Class, amount *big.Int, block uint64) (StakeRecord, error) {
	if err := CheckDeposit(db, account, class, amount); err != nil {
		return StakeRecord{}, err
	}
	id := nextStakeID(db)
	writeUint64(db, stakeSlot(account, "id"), id)
	writeAsset(db, account, class)
	writePrincipal(db, account, amount)
	writeUint64(db, stakeSlot(account, "depositBlock"), block)
	writeStatus(db, account, Active)

	if !readListedFlag(db, account) {
		writeListedFlag(db, account)
		appendAccount(db, account)
	}
	log.Debug("Stake opened", "account", account, "id", id, "asset", class, "amount", amount, "block", block)
	return ReadStake(db, account), nil
}

// Quote returns the active stake of account in the given asset together
// with the payout owed at block. It fails with ErrNoActiveStake if there is
// no active stake in that asset and with ErrMaturityNotReached if fewer than
// MaturityBlocks have elapsed since the deposit.
func Quote(db vm.StateDB, account common.Address, class asset.Class, block uint64, acc Accrual) (StakeRecord, *big.Int, error) {
	rec := ReadStake(db, account)
	if !rec.Active() || rec.Asset != class {
		return rec, nil, ErrNoActiveStake
	}
	var elapsed uint64
	if block > rec.DepositBlock {
		elapsed = block - rec.DepositBlock
	}
	if elapsed < acc.MaturityBlocks {
		return rec, nil, fmt.Errorf("%w: %d of %d blocks elapsed", ErrMaturityNotReached, elapsed, acc.MaturityBlocks)
	}
	payout, err := acc.Payout(rec.Principal, elapsed)
	if err != nil {
		return rec, nil, err
	}
	return rec, payout, nil
}

// Close marks the stake of account withdrawn and clears its principal.
func Close(db vm.StateDB, account common.Address) {
	writePrincipal(db, account, nil)
	writeStatus(db, account, Withdrawn)
}

// Withdraw quotes the stake of account and closes it. The caller pays out
// the returned amount.
func Withdraw(db vm.StateDB, account common.Address, class asset.Class, block uint64, acc Accrual) (*big.Int, error) {
	rec, payout, err := Quote(db, account, class, block, acc)
	if err != nil {
		return nil, err
	}
	Close(db, account)
	log.Debug("Stake closed", "account", account, "id", rec.ID, "asset", class, "payout", payout, "block", block)
	return payout, nil
}
