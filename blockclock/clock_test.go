package blockclock

import (
	"context"
	"testing"
	"time"
)

func TestManualMonotonic(t *testing.T) {
	c := NewManual(5)
	if c.CurrentBlock() != 5 {
		t.Fatalf("start height: %d", c.CurrentBlock())
	}
	if h := c.Mine(10); h != 15 {
		t.Fatalf("mine: %d", h)
	}
	if h := c.Set(3); h != 15 {
		t.Fatalf("clock moved backwards to %d", h)
	}
	if h := c.Set(20); h != 20 || c.CurrentBlock() != 20 {
		t.Fatalf("set forward: %d", h)
	}
}

func TestTickerProducesBlocks(t *testing.T) {
	c := NewManual(0)
	blocks := make(chan uint64, 16)
	tk := NewTicker(c, 5*time.Millisecond, func(h uint64) {
		select {
		case blocks <- h:
		default:
		}
	})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- tk.Run(ctx) }()

	for want := uint64(1); want <= 3; want++ {
		select {
		case h := <-blocks:
			if h != want {
				t.Fatalf("block %d reported as %d", want, h)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("timeout waiting for block %d", want)
		}
	}
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("ticker did not stop")
	}
}

func TestTickerDisabled(t *testing.T) {
	c := NewManual(7)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := NewTicker(c, 0, nil).Run(ctx); err != nil {
		t.Fatalf("run: %v", err)
	}
	if c.CurrentBlock() != 7 {
		t.Fatalf("disabled ticker produced blocks: %d", c.CurrentBlock())
	}
}
