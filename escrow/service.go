// Package escrow implements the two-asset staking escrow: users lock either
// tokens or native currency, withdraw principal plus linear profit after a
// maturity period, and a fixed share of every deposit is reserved for the
// protocol owner.
package escrow

import (
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/vm"
	"github.com/ethereum/go-ethereum/event"
	"github.com/ethereum/go-ethereum/log"

	"github.com/tos-network/gescrow/asset"
	"github.com/tos-network/gescrow/blockclock"
	"github.com/tos-network/gescrow/ownerfee"
	"github.com/tos-network/gescrow/params"
	"github.com/tos-network/gescrow/staking"
)

// StateDB is the state the escrow keeps its ledger in.
type StateDB interface {
	vm.StateDB
	Finalise(deleteEmptyObjects bool)
}

// Adapters builds the asset adapters, one per class, over a state.
type Adapters func(db vm.StateDB) []asset.Adapter

// DefaultAdapters binds the reference adapters: native balances of the state
// and the token kept at params.TokenAddress.
func DefaultAdapters(db vm.StateDB) []asset.Adapter {
	return []asset.Adapter{
		asset.NewTokenAdapter(asset.NewToken(db, params.TokenAddress), params.EscrowAddress),
		asset.NewNative(db, params.EscrowAddress),
	}
}

// Service is the escrow. All calls, reads included, are serialized by a
// single lock; each mutating call runs inside a state snapshot that is
// reverted if the call fails.
type Service struct {
	mu       sync.Mutex
	cfg      Config
	accrual  staking.Accrual
	state    StateDB
	clock    blockclock.Clock
	bind     Adapters
	adapters map[asset.Class]asset.Adapter

	feed  event.Feed
	scope event.SubscriptionScope
	log   log.Logger
}

// New creates the escrow over db with the reference adapters.
//
// On a fresh ledger cfg is validated and stored. On a ledger created before,
// cfg must equal the stored configuration or ErrConfigMismatch is returned.
func New(cfg Config, db StateDB, clock blockclock.Clock) (*Service, error) {
	return NewWithAdapters(cfg, db, clock, DefaultAdapters)
}

// NewWithAdapters is like New but moves funds through the adapters built by
// bind.
func NewWithAdapters(cfg Config, db StateDB, clock blockclock.Clock, bind Adapters) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	adapters, err := bindAdapters(bind, db)
	if err != nil {
		return nil, err
	}
	stored, ok := ReadConfig(db)
	switch {
	case !ok:
		writeConfig(db, cfg)
		db.Finalise(false)
		log.Info("Initialised escrow ledger", "owner", cfg.Owner, "fee", cfg.OwnerFeePercent,
			"maturity", cfg.MaturityBlocks, "rate", cfg.ProfitRateBPS, "cap", cfg.AccrualCapBlocks)
	case stored != cfg:
		return nil, fmt.Errorf("%w: stored %+v, have %+v", ErrConfigMismatch, stored, cfg)
	}
	s := &Service{
		cfg:      cfg,
		accrual:  cfg.Accrual(),
		state:    db,
		clock:    clock,
		bind:     bind,
		adapters: adapters,
		log:      log.New("module", "escrow"),
	}
	activeStakesGauge.Update(int64(s.countActive()))
	return s, nil
}

func bindAdapters(bind Adapters, db vm.StateDB) (map[asset.Class]asset.Adapter, error) {
	byClass := make(map[asset.Class]asset.Adapter, len(asset.Classes))
	for _, a := range bind(db) {
		byClass[a.Class()] = a
	}
	for _, c := range asset.Classes {
		if byClass[c] == nil {
			return nil, fmt.Errorf("%w: no adapter for %v", ErrInvalidConfig, c)
		}
	}
	return byClass, nil
}

// Open attaches to a ledger that was initialized before, using its stored
// configuration.
func Open(db StateDB, clock blockclock.Clock) (*Service, error) {
	cfg, ok := ReadConfig(db)
	if !ok {
		return nil, ErrNotInitialized
	}
	return New(cfg, db, clock)
}

// Persist hands the current state to commit under the service lock and
// continues on the state commit returns, typically a fresh state opened at
// the committed root.
func (s *Service) Persist(commit func(db StateDB) (StateDB, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := commit(s.state)
	if err != nil {
		return err
	}
	adapters, err := bindAdapters(s.bind, next)
	if err != nil {
		return err
	}
	s.state, s.adapters = next, adapters
	return nil
}

// Close unsubscribes all event subscribers.
func (s *Service) Close() {
	s.scope.Close()
}

// apply runs fn under the service lock inside a state snapshot. On error the
// snapshot is reverted, otherwise the changes are finalised.
func (s *Service) apply(fn func(block uint64) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.state.Snapshot()
	if err := fn(s.clock.CurrentBlock()); err != nil {
		s.state.RevertToSnapshot(snap)
		return err
	}
	s.state.Finalise(false)
	return nil
}

// Atomic runs fn against the ledger state with the same locking and revert
// semantics as the escrow calls. The dev ledger uses it for token
// administration.
func (s *Service) Atomic(fn func(db vm.StateDB) error) error {
	return s.apply(func(uint64) error { return fn(s.state) })
}

// DepositToken pulls amount tokens from account into the escrow and opens a
// stake. The escrow must have been approved for at least amount.
func (s *Service) DepositToken(from common.Address, amount *big.Int) (staking.StakeRecord, error) {
	return s.deposit(from, asset.Token, amount, Deposited)
}

// DepositNative locks the native value attached to the call as a stake.
func (s *Service) DepositNative(from common.Address, value *big.Int) (staking.StakeRecord, error) {
	return s.deposit(from, asset.Native, value, NativeDeposited)
}

// WithdrawToken pays out a matured token stake and returns the payout.
func (s *Service) WithdrawToken(from common.Address) (*big.Int, error) {
	return s.withdraw(from, asset.Token)
}

// WithdrawNative pays out a matured native stake and returns the payout.
func (s *Service) WithdrawNative(from common.Address) (*big.Int, error) {
	return s.withdraw(from, asset.Native)
}

func (s *Service) deposit(from common.Address, class asset.Class, amount *big.Int, kind EventKind) (staking.StakeRecord, error) {
	var rec staking.StakeRecord
	err := s.apply(func(block uint64) error {
		// Validation phase (no state writes)
		if err := staking.CheckDeposit(s.state, from, class, amount); err != nil {
			return err
		}
		share, err := ownerfee.FeeShare(amount, s.cfg.OwnerFeePercent)
		if err != nil {
			return err
		}

		// Mutation phase
		if err := s.adapters[class].TransferIn(from, amount); err != nil {
			return transferErr(err, ErrInsufficientBalance)
		}
		if err := ownerfee.Credit(s.state, class, share); err != nil {
			return err
		}
		rec, err = staking.Deposit(s.state, from, class, amount, block)
		return err
	})
	if err != nil {
		depositFailMeter.Mark(1)
		s.log.Debug("Deposit rejected", "account", from, "asset", class, "amount", amount, "err", err)
		return staking.StakeRecord{}, err
	}
	depositMeter.Mark(1)
	activeStakesGauge.Inc(1)
	s.log.Info("Deposit", "account", from, "asset", class, "amount", amount, "id", rec.ID, "block", rec.DepositBlock)
	s.feed.Send(Event{Kind: kind, Account: from, Asset: class, Amount: new(big.Int).Set(amount), Block: rec.DepositBlock})
	return rec, nil
}

func (s *Service) withdraw(from common.Address, class asset.Class) (*big.Int, error) {
	var (
		payout *big.Int
		height uint64
	)
	err := s.apply(func(block uint64) error {
		height = block

		// Validation phase (no state writes)
		_, quote, err := staking.Quote(s.state, from, class, block, s.accrual)
		if err != nil {
			return err
		}
		adapter := s.adapters[class]
		if have := adapter.BalanceOf(params.EscrowAddress); have.Cmp(quote) < 0 {
			return fmt.Errorf("%w: have %v, want %v", ErrInsufficientLiquidity, have, quote)
		}

		// Mutation phase
		if err := adapter.TransferOut(from, quote); err != nil {
			return transferErr(err, ErrInsufficientLiquidity)
		}
		staking.Close(s.state, from)
		payout = quote
		return nil
	})
	if err != nil {
		withdrawFailMeter.Mark(1)
		s.log.Debug("Withdrawal rejected", "account", from, "asset", class, "err", err)
		return nil, err
	}
	withdrawMeter.Mark(1)
	activeStakesGauge.Dec(1)
	s.log.Info("Withdrawal", "account", from, "asset", class, "payout", payout, "block", height)
	s.feed.Send(Event{Kind: UserWithdraw, Account: from, Asset: class, Amount: new(big.Int).Set(payout), Block: height})
	return new(big.Int).Set(payout), nil
}

// WithdrawOwner transfers amount of the reserved owner fee in asset class to
// the owner. Only the owner may call it.
func (s *Service) WithdrawOwner(from common.Address, class asset.Class, amount *big.Int) error {
	var height uint64
	err := s.apply(func(block uint64) error {
		height = block

		// Validation phase (no state writes)
		if from != s.cfg.Owner {
			return ErrNotAuthorized
		}
		adapter, ok := s.adapters[class]
		if !ok {
			return fmt.Errorf("%w: %d", ErrUnknownAsset, uint8(class))
		}
		liquidity := adapter.BalanceOf(params.EscrowAddress)
		if err := ownerfee.CheckWithdraw(s.state, class, amount, liquidity); err != nil {
			return err
		}

		// Mutation phase
		if err := ownerfee.Debit(s.state, class, amount, liquidity); err != nil {
			return err
		}
		if err := adapter.TransferOut(from, amount); err != nil {
			return transferErr(err, ErrInsufficientLiquidity)
		}
		return nil
	})
	if err != nil {
		ownerWithdrawFailMeter.Mark(1)
		s.log.Debug("Owner withdrawal rejected", "caller", from, "asset", class, "amount", amount, "err", err)
		return err
	}
	ownerWithdrawMeter.Mark(1)
	s.log.Info("Owner withdrawal", "owner", from, "asset", class, "amount", amount, "block", height)
	s.feed.Send(Event{Kind: OwnerWithdraw, Account: from, Asset: class, Amount: new(big.Int).Set(amount), Block: height})
	return nil
}

// transferErr keeps taxonomy errors reported by an adapter and classifies
// anything else as fallback.
func transferErr(err, fallback error) error {
	for _, known := range []error{
		ErrInvalidAmount, ErrInsufficientAllowance, ErrInsufficientBalance,
		ErrInsufficientLiquidity, ErrAmountOverflow, ErrUnknownAsset,
	} {
		if errors.Is(err, known) {
			return err
		}
	}
	return fmt.Errorf("%w: %v", fallback, err)
}
