package escrow

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/tos-network/gescrow/params"
	"github.com/tos-network/gescrow/staking"
)

// Config contains the construction-time settings of the escrow. They are
// written into the ledger on first use and can never change afterwards.
type Config struct {
	// Owner is the only account allowed to withdraw reserved fees.
	Owner common.Address

	// OwnerFeePercent is the share of every deposit reserved for the owner.
	OwnerFeePercent uint64

	MaturityBlocks   uint64 // blocks between deposit and withdrawal
	ProfitRateBPS    uint64 // profit per elapsed block, basis points of principal
	AccrualCapBlocks uint64 // 0 = profit accrues for every elapsed block
}

// DefaultConfig contains the default settings. Owner has no default and must
// be supplied.
var DefaultConfig = Config{
	OwnerFeePercent:  params.OwnerFeePercent,
	MaturityBlocks:   params.MaturityBlocks,
	ProfitRateBPS:    params.ProfitRateBPS,
	AccrualCapBlocks: params.AccrualCapBlocks,
}

// Validate checks the configuration for values the escrow cannot honour.
func (c *Config) Validate() error {
	if c.Owner == (common.Address{}) {
		return fmt.Errorf("%w: owner address is not set", ErrInvalidConfig)
	}
	if c.Owner == params.EscrowAddress {
		return fmt.Errorf("%w: owner cannot be the escrow account", ErrInvalidConfig)
	}
	if c.OwnerFeePercent > params.MaxOwnerFeePercent {
		return fmt.Errorf("%w: owner fee %d%% exceeds %d%%", ErrInvalidConfig, c.OwnerFeePercent, params.MaxOwnerFeePercent)
	}
	return nil
}

// Accrual returns the profit parameters of the configuration.
func (c *Config) Accrual() staking.Accrual {
	return staking.Accrual{
		MaturityBlocks: c.MaturityBlocks,
		RateBPS:        c.ProfitRateBPS,
		CapBlocks:      c.AccrualCapBlocks,
	}
}
