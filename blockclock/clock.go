// Package blockclock provides the monotonically non-decreasing block height
// the escrow measures maturity against.
package blockclock

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/ethereum/go-ethereum/log"
)

// Clock reports the current block height of the host.
type Clock interface {
	CurrentBlock() uint64
}

// Manual is a clock advanced explicitly by its owner. It backs tests and the
// dev ledger, where blocks are produced by `mine` or by a Ticker.
type Manual struct {
	height atomic.Uint64
}

// NewManual returns a clock positioned at height.
func NewManual(height uint64) *Manual {
	m := new(Manual)
	m.height.Store(height)
	return m
}

// CurrentBlock implements Clock.
func (m *Manual) CurrentBlock() uint64 { return m.height.Load() }

// Mine advances the clock by n blocks and returns the new height.
func (m *Manual) Mine(n uint64) uint64 { return m.height.Add(n) }

// Set moves the clock to height. Heights below the current one are ignored
// so the clock never runs backwards.
func (m *Manual) Set(height uint64) uint64 {
	for {
		cur := m.height.Load()
		if height <= cur {
			return cur
		}
		if m.height.CompareAndSwap(cur, height) {
			return height
		}
	}
}

// Ticker produces one block on a Manual clock every period.
type Ticker struct {
	clock   *Manual
	period  time.Duration
	onBlock func(uint64)
}

// NewTicker creates a ticker for clock. onBlock, if non-nil, is called after
// every produced block with the new height.
func NewTicker(clock *Manual, period time.Duration, onBlock func(uint64)) *Ticker {
	return &Ticker{clock: clock, period: period, onBlock: onBlock}
}

// Run produces blocks until ctx is cancelled.
func (t *Ticker) Run(ctx context.Context) error {
	if t.period <= 0 {
		<-ctx.Done()
		return nil
	}
	timer := time.NewTicker(t.period)
	defer timer.Stop()

	log.Info("Block ticker started", "period", t.period, "height", t.clock.CurrentBlock())
	for {
		select {
		case <-ctx.Done():
			log.Info("Block ticker stopped", "height", t.clock.CurrentBlock())
			return nil
		case <-timer.C:
			height := t.clock.Mine(1)
			log.Trace("Produced block", "number", height)
			if t.onBlock != nil {
				t.onBlock(height)
			}
		}
	}
}
