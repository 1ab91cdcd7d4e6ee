package ledgerdb

import (
	"math/big"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/rawdb"
)

func TestHeadRoundTrip(t *testing.T) {
	db := rawdb.NewMemoryDatabase()
	if head := ReadHead(db); head != nil {
		t.Fatalf("fresh database has head %+v", head)
	}
	want := Head{Root: common.HexToHash("0x1234"), Block: 42}
	WriteHead(db, want)
	have := ReadHead(db)
	if have == nil || *have != want {
		t.Fatalf("head mismatch: have %+v, want %+v", have, want)
	}
}

func TestCommitAndReopen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "ledger")
	addr := common.Address{0x01}
	slot := common.Hash{0x02}

	db, err := Open(dir, false)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	l := NewLedger(db)
	st, err := l.State()
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	st.AddBalance(addr, big.NewInt(1000))
	st.SetState(addr, slot, common.Hash{0xff})
	next, err := l.Commit(st, 7)
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	if next.GetBalance(addr).Cmp(big.NewInt(1000)) != 0 {
		t.Fatalf("balance lost in reopened state: %v", next.GetBalance(addr))
	}
	if err := l.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	db, err = Open(dir, false)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	l = NewLedger(db)
	defer l.Close()
	head := l.Head()
	if head == nil || head.Block != 7 {
		t.Fatalf("head after reopen: %+v", head)
	}
	st, err = l.State()
	if err != nil {
		t.Fatalf("state after reopen: %v", err)
	}
	if st.GetBalance(addr).Cmp(big.NewInt(1000)) != 0 {
		t.Fatalf("balance after reopen: %v", st.GetBalance(addr))
	}
	if st.GetState(addr, slot) != (common.Hash{0xff}) {
		t.Fatalf("storage after reopen: %x", st.GetState(addr, slot))
	}
}

func TestMemoryLedger(t *testing.T) {
	db, err := Open("", false)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	l := NewLedger(db)
	defer l.Close()
	st, err := l.State()
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	if _, err := l.Commit(st, 0); err != nil {
		t.Fatalf("commit empty state: %v", err)
	}
	if head := l.Head(); head == nil || head.Block != 0 {
		t.Fatalf("head: %+v", head)
	}
}
