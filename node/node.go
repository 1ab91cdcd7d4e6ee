// Package node hosts the escrow on a persistent dev ledger: it owns the
// ledger database, the block clock and the escrow service, commits state
// after every block and serves the RPC endpoint.
package node

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/state"
	"github.com/ethereum/go-ethereum/core/vm"
	"github.com/ethereum/go-ethereum/log"
	"github.com/ethereum/go-ethereum/metrics"
	"github.com/ethereum/go-ethereum/metrics/exp"
	"github.com/rs/cors"
	"golang.org/x/sync/errgroup"

	"github.com/tos-network/gescrow/asset"
	"github.com/tos-network/gescrow/blockclock"
	"github.com/tos-network/gescrow/escrow"
	"github.com/tos-network/gescrow/internal/escrowapi"
	"github.com/tos-network/gescrow/ledgerdb"
	"github.com/tos-network/gescrow/params"
	"github.com/tos-network/gescrow/sysaction"
)

// Node is a ledger node running the escrow.
type Node struct {
	config   *Config
	ledger   *ledgerdb.Ledger
	clock    *blockclock.Manual
	escrow   *escrow.Service
	registry *sysaction.Registry

	closeOnce sync.Once
	log       log.Logger
}

// New opens the ledger configured by conf. If the ledger is empty it is
// created from genesis; an empty ledger without genesis fails with
// escrow.ErrNotInitialized. For an existing ledger a non-nil genesis must
// carry the escrow configuration the ledger was created with.
func New(conf *Config, genesis *Genesis) (*Node, error) {
	db, err := ledgerdb.Open(conf.LedgerDir(), false)
	if err != nil {
		return nil, err
	}
	ledger := ledgerdb.NewLedger(db)
	n, err := open(conf, ledger, genesis)
	if err != nil {
		ledger.Close()
		return nil, err
	}
	return n, nil
}

func open(conf *Config, ledger *ledgerdb.Ledger, genesis *Genesis) (*Node, error) {
	st, err := ledger.State()
	if err != nil {
		return nil, err
	}
	var (
		head  = ledger.Head()
		clock = blockclock.NewManual(0)
		svc   *escrow.Service
	)
	switch {
	case head == nil && genesis == nil:
		return nil, escrow.ErrNotInitialized

	case head == nil:
		if err := genesis.apply(st); err != nil {
			return nil, fmt.Errorf("apply genesis: %w", err)
		}
		if svc, err = escrow.New(genesis.Escrow, st, clock); err != nil {
			return nil, err
		}
		if st, err = ledger.Commit(st, 0); err != nil {
			return nil, err
		}
		if err := svc.Persist(func(escrow.StateDB) (escrow.StateDB, error) { return st, nil }); err != nil {
			return nil, err
		}
		log.Info("Wrote genesis ledger", "accounts", len(genesis.Alloc), "owner", genesis.Escrow.Owner)

	default:
		clock.Set(head.Block)
		if genesis != nil {
			svc, err = escrow.New(genesis.Escrow, st, clock)
		} else {
			svc, err = escrow.Open(st, clock)
		}
		if err != nil {
			return nil, err
		}
	}
	n := &Node{
		config:   conf,
		ledger:   ledger,
		clock:    clock,
		escrow:   svc,
		registry: sysaction.NewRegistry(svc.Handler()),
		log:      log.New("module", "node"),
	}
	n.log.Debug("Opened ledger", "block", clock.CurrentBlock(), "datadir", conf.DataDir)
	return n, nil
}

// Escrow returns the escrow service.
func (n *Node) Escrow() *escrow.Service { return n.escrow }

// Clock returns the block clock of the ledger.
func (n *Node) Clock() *blockclock.Manual { return n.clock }

// Head returns the latest committed head.
func (n *Node) Head() ledgerdb.Head {
	if head := n.ledger.Head(); head != nil {
		return *head
	}
	return ledgerdb.Head{}
}

// SendAction executes an encoded system action on behalf of from with value
// attached.
func (n *Node) SendAction(from common.Address, value *big.Int, data []byte) error {
	return n.registry.Execute(&sysaction.Context{From: from, Value: value}, data)
}

// Mine produces blocks on the ledger clock and commits the state at the new
// height.
func (n *Node) Mine(blocks uint64) (uint64, error) {
	height := n.clock.Mine(blocks)
	if err := n.Commit(); err != nil {
		return 0, err
	}
	return height, nil
}

// Commit writes the current state to the ledger database.
func (n *Node) Commit() error {
	return n.escrow.Persist(func(db escrow.StateDB) (escrow.StateDB, error) {
		// Read under the service lock so no committed stake is newer than
		// the head.
		block := n.clock.CurrentBlock()
		st, ok := db.(*state.StateDB)
		if !ok {
			return nil, fmt.Errorf("unexpected ledger state %T", db)
		}
		next, err := n.ledger.Commit(st, block)
		if err != nil {
			return nil, err
		}
		return next, nil
	})
}

// MintToken credits amount of the reference token to account.
func (n *Node) MintToken(to common.Address, amount *big.Int) error {
	return n.escrow.Atomic(func(db vm.StateDB) error {
		return asset.NewToken(db, params.TokenAddress).Mint(to, amount)
	})
}

// ApproveToken sets the token allowance of spender over owner's balance.
func (n *Node) ApproveToken(owner, spender common.Address, amount *big.Int) error {
	return n.escrow.Atomic(func(db vm.StateDB) error {
		return asset.NewToken(db, params.TokenAddress).Approve(owner, spender, amount)
	})
}

// TokenBalance returns the reference token balance of addr.
func (n *Node) TokenBalance(addr common.Address) (balance *big.Int, err error) {
	err = n.escrow.Atomic(func(db vm.StateDB) error {
		balance = asset.NewToken(db, params.TokenAddress).BalanceOf(addr)
		return nil
	})
	return balance, err
}

// NativeBalance returns the native balance of addr.
func (n *Node) NativeBalance(addr common.Address) (balance *big.Int, err error) {
	err = n.escrow.Atomic(func(db vm.StateDB) error {
		balance = new(big.Int).Set(db.GetBalance(addr))
		return nil
	})
	return balance, err
}

// Serve runs the HTTP endpoint and the block ticker until ctx is cancelled.
func (n *Node) Serve(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	events := make(chan escrow.Event, 64)
	sub := n.escrow.SubscribeEvents(events)
	g.Go(func() error {
		defer sub.Unsubscribe()
		for {
			select {
			case ev := <-events:
				n.log.Info("Escrow event", "kind", ev.Kind, "account", ev.Account, "asset", ev.Asset, "amount", ev.Amount, "block", ev.Block)
			case err := <-sub.Err():
				return err
			case <-ctx.Done():
				return nil
			}
		}
	})

	period := time.Duration(n.config.BlockPeriodMs) * time.Millisecond
	ticker := blockclock.NewTicker(n.clock, period, func(height uint64) {
		if err := n.Commit(); err != nil {
			n.log.Error("Failed to commit block", "number", height, "err", err)
		}
	})
	g.Go(func() error { return ticker.Run(ctx) })

	if n.config.Metrics.Enabled {
		if !metrics.Enabled {
			n.log.Warn("Metrics requested in config but collection is disabled, pass --metrics")
		} else if n.config.Metrics.HTTP != "" {
			address := fmt.Sprintf("%s:%d", n.config.Metrics.HTTP, n.config.Metrics.Port)
			n.log.Info("Enabling stand-alone metrics HTTP endpoint", "address", address)
			exp.Setup(address)
		}
	}

	if endpoint := n.config.HTTPEndpoint(); endpoint != "" {
		handler, err := escrowapi.NewHandler(n, n.config.Dev)
		if err != nil {
			return err
		}
		srv := &http.Server{
			Addr:              endpoint,
			Handler:           newCorsHandler(handler, n.config.HTTPCors),
			ReadHeaderTimeout: 10 * time.Second,
		}
		g.Go(func() error {
			n.log.Info("HTTP server started", "endpoint", "http://"+endpoint, "dev", n.config.Dev)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}
	return g.Wait()
}

func newCorsHandler(srv http.Handler, allowedOrigins []string) http.Handler {
	// disable CORS support if user has not specified a custom CORS configuration
	if len(allowedOrigins) == 0 {
		return srv
	}
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodPost, http.MethodGet},
		AllowedHeaders: []string{"*"},
		MaxAge:         600,
	})
	return c.Handler(srv)
}

// Close commits the state and releases the ledger database.
func (n *Node) Close() error {
	var err error
	n.closeOnce.Do(func() {
		if cerr := n.Commit(); cerr != nil {
			err = cerr
		}
		n.escrow.Close()
		if cerr := n.ledger.Close(); cerr != nil && err == nil {
			err = cerr
		}
	})
	return err
}
