package staking

import (
	"encoding/binary"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/vm"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/tos-network/gescrow/asset"
	"github.com/tos-network/gescrow/params"
)

// stakeSlot hashes (addr[20B] || 0x00 || field) for a per-account storage slot.
func stakeSlot(addr common.Address, field string) common.Hash {
	key := make([]byte, 0, 21+len(field))
	key = append(key, addr.Bytes()...)
	key = append(key, 0x00)
	key = append(key, field...)
	return common.BytesToHash(crypto.Keccak256(key))
}

var (
	// stakeSeqSlot stores the id of the most recent deposit (uint64).
	stakeSeqSlot = common.BytesToHash(crypto.Keccak256([]byte("escrow\x00stakeSeq")))

	// accountCountSlot stores the number of accounts that ever deposited.
	accountCountSlot = common.BytesToHash(crypto.Keccak256([]byte("escrow\x00accountCount")))
)

// accountListSlot returns the slot for the i-th depositing account (0-based).
// The list is append-only; withdrawn accounts stay listed.
func accountListSlot(i uint64) common.Hash {
	var idx [8]byte
	binary.BigEndian.PutUint64(idx[:], i)
	return common.BytesToHash(
		crypto.Keccak256(append([]byte("escrow\x00accountList\x00"), idx[:]...)))
}

func readUint64(db vm.StateDB, slot common.Hash) uint64 {
	raw := db.GetState(params.EscrowAddress, slot)
	return binary.BigEndian.Uint64(raw[24:])
}

func writeUint64(db vm.StateDB, slot common.Hash, n uint64) {
	var val common.Hash
	binary.BigEndian.PutUint64(val[24:], n) // right-aligned in 32 bytes
	db.SetState(params.EscrowAddress, slot, val)
}

func nextStakeID(db vm.StateDB) uint64 {
	id := readUint64(db, stakeSeqSlot) + 1
	writeUint64(db, stakeSeqSlot, id)
	return id
}

func readAccountCount(db vm.StateDB) uint64 {
	return readUint64(db, accountCountSlot)
}

func readAccountAt(db vm.StateDB, i uint64) common.Address {
	raw := db.GetState(params.EscrowAddress, accountListSlot(i))
	return common.BytesToAddress(raw[12:]) // address is right-aligned
}

func appendAccount(db vm.StateDB, addr common.Address) {
	n := readAccountCount(db)
	var val common.Hash
	copy(val[12:], addr.Bytes())
	db.SetState(params.EscrowAddress, accountListSlot(n), val)
	writeUint64(db, accountCountSlot, n+1)
}

// readListedFlag returns true if addr was already appended to the account list.
func readListedFlag(db vm.StateDB, addr common.Address) bool {
	raw := db.GetState(params.EscrowAddress, stakeSlot(addr, "listed"))
	return raw[31] != 0
}

func writeListedFlag(db vm.StateDB, addr common.Address) {
	var val common.Hash
	val[31] = 1
	db.SetState(params.EscrowAddress, stakeSlot(addr, "listed"), val)
}

func readStatus(db vm.StateDB, addr common.Address) Status {
	raw := db.GetState(params.EscrowAddress, stakeSlot(addr, "status"))
	return Status(raw[31])
}

func writeStatus(db vm.StateDB, addr common.Address, s Status) {
	var val common.Hash
	val[31] = byte(s)
	db.SetState(params.EscrowAddress, stakeSlot(addr, "status"), val)
}

func readAsset(db vm.StateDB, addr common.Address) asset.Class {
	raw := db.GetState(params.EscrowAddress, stakeSlot(addr, "asset"))
	return asset.Class(raw[31])
}

func writeAsset(db vm.StateDB, addr common.Address, c asset.Class) {
	var val common.Hash
	val[31] = byte(c)
	db.SetState(params.EscrowAddress, stakeSlot(addr, "asset"), val)
}

func readPrincipal(db vm.StateDB, addr common.Address) *big.Int {
	return asset.ReadWord(db, params.EscrowAddress, stakeSlot(addr, "principal"))
}

func writePrincipal(db vm.StateDB, addr common.Address, amount *big.Int) {
	asset.WriteWord(db, params.EscrowAddress, stakeSlot(addr, "principal"), amount)
}

// ReadStake reads the complete stake record for addr. An account that never
// deposited yields a record with Status None and a zero principal.
func ReadStake(db vm.StateDB, addr common.Address) StakeRecord {
	rec := StakeRecord{
		Account:      addr,
		ID:           readUint64(db, stakeSlot(addr, "id")),
		Asset:        readAsset(db, addr),
		Principal:    readPrincipal(db, addr),
		DepositBlock: readUint64(db, stakeSlot(addr, "depositBlock")),
		Status:       readStatus(db, addr),
	}
	return rec
}

// Accounts returns every account that ever deposited, in first-deposit order.
func Accounts(db vm.StateDB) []common.Address {
	n := readAccountCount(db)
	out := make([]common.Address, 0, n)
	for i := uint64(0); i < n; i++ {
		out = append(out, readAccountAt(db, i))
	}
	return out
}

// LastStakeID returns the id assigned to the most recent deposit, 0 if none.
func LastStakeID(db vm.StateDB) uint64 {
	return readUint64(db, stakeSeqSlot)
}
