package escrow

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/tos-network/gescrow/asset"
	"github.com/tos-network/gescrow/ownerfee"
	"github.com/tos-network/gescrow/params"
	"github.com/tos-network/gescrow/staking"
)

// Config returns the immutable configuration of the escrow.
func (s *Service) Config() Config { return s.cfg }

// Owner returns the account allowed to withdraw reserved fees.
func (s *Service) Owner() common.Address { return s.cfg.Owner }

// OwnerFeePercent returns the share of each deposit reserved for the owner.
func (s *Service) OwnerFeePercent() uint64 { return s.cfg.OwnerFeePercent }

// CurrentBlock returns the block height the escrow currently observes.
func (s *Service) CurrentBlock() uint64 { return s.clock.CurrentBlock() }

// Stake returns the stake record of account.
func (s *Service) Stake(account common.Address) staking.StakeRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return staking.ReadStake(s.state, account)
}

// Stakes returns the records of every account that ever deposited.
func (s *Service) Stakes() []staking.StakeRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	accounts := staking.Accounts(s.state)
	out := make([]staking.StakeRecord, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, staking.ReadStake(s.state, a))
	}
	return out
}

// ReservedFee returns the owner fee currently reserved in asset class.
func (s *Service) ReservedFee(class asset.Class) (*big.Int, error) {
	if !class.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownAsset, uint8(class))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return ownerfee.Reserved(s.state, class), nil
}

// Balance returns the escrow's raw holdings of asset class.
func (s *Service) Balance(class asset.Class) (*big.Int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	adapter, ok := s.adapters[class]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownAsset, uint8(class))
	}
	return adapter.BalanceOf(params.EscrowAddress), nil
}

// PendingPayout quotes principal plus the profit accrued up to the current
// block for the active stake of account, whether or not it has matured.
func (s *Service) PendingPayout(account common.Address) (*big.Int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := staking.ReadStake(s.state, account)
	if !rec.Active() {
		return nil, ErrNoActiveStake
	}
	acc := s.accrual
	acc.MaturityBlocks = 0
	_, payout, err := staking.Quote(s.state, account, rec.Asset, s.clock.CurrentBlock(), acc)
	return payout, err
}

func (s *Service) countActive() int {
	var n int
	for _, a := range staking.Accounts(s.state) {
		if staking.ReadStake(s.state, a).Active() {
			n++
		}
	}
	return n
}
