// Copyright 2024 The gescrow Authors
// This file is part of the gescrow library.
//
// The gescrow library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The gescrow library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the gescrow library. If not, see <http://www.gnu.org/licenses/>.

package params

import (
	"github.com/ethereum/go-ethereum/common"
)

// Escrow system addresses: fixed, well-known addresses used by the ledger.
var (
	// EscrowAddress holds the pooled balances of both assets and stores the
	// stake records, reserved owner fees and escrow configuration in its
	// storage slots.
	EscrowAddress = common.HexToAddress("0x0000000000000000000000000000000045534331") // "ESC1"

	// TokenAddress stores the balances and allowances of the reference
	// fungible token used by the dev ledger.
	TokenAddress = common.HexToAddress("0x0000000000000000000000000000000045534332") // "ESC2"
)

// Escrow staking parameters.
const (
	// MaturityBlocks is the minimum number of blocks that must elapse between
	// a deposit and the matching user withdrawal.
	MaturityBlocks = uint64(10)

	// ProfitRateBPS is the linear profit accrued per elapsed block, in basis
	// points of the principal. Default: 1% per block.
	ProfitRateBPS = uint64(100)

	// AccrualCapBlocks caps the number of blocks that accrue profit. Zero
	// means profit keeps accruing for every elapsed block.
	AccrualCapBlocks = uint64(0)

	// OwnerFeePercent is the default share of every deposit reserved for the
	// protocol owner.
	OwnerFeePercent = uint64(5)

	// MaxOwnerFeePercent bounds the owner fee; a fee above 100% would reserve
	// more than was deposited.
	MaxOwnerFeePercent = uint64(100)

	// BPSDenominator is the basis point scale.
	BPSDenominator = uint64(10_000)
)
