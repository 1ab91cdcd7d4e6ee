package ledgerdb

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/rawdb"
	"github.com/ethereum/go-ethereum/core/state"
	"github.com/ethereum/go-ethereum/ethdb"
	"github.com/ethereum/go-ethereum/log"
)

const (
	// DefaultCache is the leveldb cache allowance in megabytes.
	DefaultCache = 16
	// DefaultHandles is the leveldb open file allowance.
	DefaultHandles = 16
)

// Open opens the ledger database in dir. An empty dir yields an in-memory
// database.
func Open(dir string, readonly bool) (ethdb.Database, error) {
	if dir == "" {
		return rawdb.NewMemoryDatabase(), nil
	}
	db, err := rawdb.NewLevelDBDatabase(dir, DefaultCache, DefaultHandles, "gescrow/db/", readonly)
	if err != nil {
		return nil, fmt.Errorf("open ledger database %s: %w", dir, err)
	}
	return db, nil
}

// Ledger ties a state cache to the database it commits into.
type Ledger struct {
	db    ethdb.Database
	cache state.Database
}

// NewLedger wraps db.
func NewLedger(db ethdb.Database) *Ledger {
	return &Ledger{db: db, cache: state.NewDatabase(db)}
}

// DB returns the underlying key-value database.
func (l *Ledger) DB() ethdb.Database { return l.db }

// Head returns the latest committed head, nil for a fresh database.
func (l *Ledger) Head() *Head { return ReadHead(l.db) }

// State opens the state at the latest committed head, or an empty state if
// nothing was committed yet.
func (l *Ledger) State() (*state.StateDB, error) {
	root := common.Hash{}
	if head := l.Head(); head != nil {
		root = head.Root
	}
	return l.StateAt(root)
}

// StateAt opens the state at root.
func (l *Ledger) StateAt(root common.Hash) (*state.StateDB, error) {
	st, err := state.New(root, l.cache, nil)
	if err != nil {
		return nil, fmt.Errorf("open state %x: %w", root, err)
	}
	return st, nil
}

// Commit writes st to disk, records it as the head at block and returns a
// fresh state opened at the committed root.
func (l *Ledger) Commit(st *state.StateDB, block uint64) (*state.StateDB, error) {
	root, err := st.Commit(false)
	if err != nil {
		return nil, fmt.Errorf("commit state: %w", err)
	}
	if err := l.cache.TrieDB().Commit(root, false, nil); err != nil {
		return nil, fmt.Errorf("commit trie %x: %w", root, err)
	}
	WriteHead(l.db, Head{Root: root, Block: block})
	log.Debug("Committed ledger state", "root", root, "block", block)
	return l.StateAt(root)
}

// Close closes the underlying database.
func (l *Ledger) Close() error { return l.db.Close() }
