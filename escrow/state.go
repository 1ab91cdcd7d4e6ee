package escrow

import (
	"encoding/binary"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/vm"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/tos-network/gescrow/params"
)

func configSlot(field string) common.Hash {
	return common.BytesToHash(crypto.Keccak256([]byte("escrow\x00config\x00" + field)))
}

var (
	initializedSlot = configSlot("initialized")
	ownerSlot       = configSlot("owner")
	feeSlot         = configSlot("ownerFeePercent")
	maturitySlot    = configSlot("maturityBlocks")
	rateSlot        = configSlot("profitRateBPS")
	capSlot         = configSlot("accrualCapBlocks")
)

func readConfigUint(db vm.StateDB, slot common.Hash) uint64 {
	raw := db.GetState(params.EscrowAddress, slot)
	return binary.BigEndian.Uint64(raw[24:])
}

func writeConfigUint(db vm.StateDB, slot common.Hash, n uint64) {
	var val common.Hash
	binary.BigEndian.PutUint64(val[24:], n)
	db.SetState(params.EscrowAddress, slot, val)
}

// ReadConfig loads the configuration stored in the ledger. The boolean is
// false if the ledger was never initialized.
func ReadConfig(db vm.StateDB) (Config, bool) {
	if db.GetState(params.EscrowAddress, initializedSlot)[31] == 0 {
		return Config{}, false
	}
	raw := db.GetState(params.EscrowAddress, ownerSlot)
	return Config{
		Owner:            common.BytesToAddress(raw[12:]),
		OwnerFeePercent:  readConfigUint(db, feeSlot),
		MaturityBlocks:   readConfigUint(db, maturitySlot),
		ProfitRateBPS:    readConfigUint(db, rateSlot),
		AccrualCapBlocks: readConfigUint(db, capSlot),
	}, true
}

func writeConfig(db vm.StateDB, cfg Config) {
	var owner common.Hash
	copy(owner[12:], cfg.Owner.Bytes())
	db.SetState(params.EscrowAddress, ownerSlot, owner)
	writeConfigUint(db, feeSlot, cfg.OwnerFeePercent)
	writeConfigUint(db, maturitySlot, cfg.MaturityBlocks)
	writeConfigUint(db, rateSlot, cfg.ProfitRateBPS)
	writeConfigUint(db, capSlot, cfg.AccrualCapBlocks)

	var flag common.Hash
	flag[31] = 1
	db.SetState(params.EscrowAddress, initializedSlot, flag)
}
