package staking

import (
	"math/big"

	"github.com/holiman/uint256"

	"github.com/tos-network/gescrow/asset"
	"github.com/tos-network/gescrow/params"
)

// Accrual holds the construction-time profit parameters of the ledger.
type Accrual struct {
	MaturityBlocks uint64 // minimum blocks between deposit and withdrawal
	RateBPS        uint64 // profit per elapsed block in basis points of principal
	CapBlocks      uint64 // blocks that accrue profit at most, 0 = uncapped
}

// DefaultAccrual returns the protocol default: 10 block maturity and 1% of
// principal per elapsed block with no cap.
func DefaultAccrual() Accrual {
	return Accrual{
		MaturityBlocks: params.MaturityBlocks,
		RateBPS:        params.ProfitRateBPS,
		CapBlocks:      params.AccrualCapBlocks,
	}
}

// accrued returns the number of elapsed blocks that earn profit.
func (a Accrual) accrued(elapsed uint64) uint64 {
	if a.CapBlocks != 0 && elapsed > a.CapBlocks {
		return a.CapBlocks
	}
	return elapsed
}

// Profit computes floor(principal * accrued * rate / 10000). The product is
// evaluated in 256-bit arithmetic and fails with asset.ErrAmountOverflow if
// any intermediate value leaves the word range.
func (a Accrual) Profit(principal *big.Int, elapsed uint64) (*big.Int, error) {
	if principal == nil || principal.Sign() == 0 {
		return new(big.Int), nil
	}
	p, overflow := uint256.FromBig(principal)
	if overflow || principal.Sign() < 0 {
		return nil, asset.ErrAmountOverflow
	}
	v, overflow := new(uint256.Int).MulOverflow(p, uint256.NewInt(a.accrued(elapsed)))
	if overflow {
		return nil, asset.ErrAmountOverflow
	}
	if _, overflow = v.MulOverflow(v, uint256.NewInt(a.RateBPS)); overflow {
		return nil, asset.ErrAmountOverflow
	}
	v.Div(v, uint256.NewInt(params.BPSDenominator))
	return v.ToBig(), nil
}

// Payout returns principal plus profit for elapsed blocks.
func (a Accrual) Payout(principal *big.Int, elapsed uint64) (*big.Int, error) {
	profit, err := a.Profit(principal, elapsed)
	if err != nil {
		return nil, err
	}
	return asset.AddWord(principal, profit)
}
