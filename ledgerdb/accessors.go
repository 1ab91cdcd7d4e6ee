// Package ledgerdb persists the escrow ledger: the state trie in a key-value
// database plus a head marker naming the latest committed state root and
// block height.
package ledgerdb

import (
	"bytes"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethdb"
	"github.com/ethereum/go-ethereum/log"
	"github.com/ethereum/go-ethereum/rlp"
)

// headKey tracks the latest committed ledger head.
var headKey = []byte("gescrow-LastHead")

// Head is the latest committed ledger state.
type Head struct {
	Root  common.Hash
	Block uint64
}

// ReadHead retrieves the latest committed head, nil if the database holds no
// ledger yet.
func ReadHead(db ethdb.KeyValueReader) *Head {
	data, _ := db.Get(headKey)
	if len(data) == 0 {
		return nil
	}
	head := new(Head)
	if err := rlp.Decode(bytes.NewReader(data), head); err != nil {
		log.Error("Invalid ledger head RLP", "err", err)
		return nil
	}
	return head
}

// WriteHead stores the latest committed head.
func WriteHead(db ethdb.KeyValueWriter, head Head) {
	data, err := rlp.EncodeToBytes(&head)
	if err != nil {
		log.Crit("Failed to RLP encode ledger head", "err", err)
	}
	if err := db.Put(headKey, data); err != nil {
		log.Crit("Failed to store ledger head", "err", err)
	}
}
