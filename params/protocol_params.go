package params

// Dev ledger parameters.
const (
	// DevBlockPeriodMs is the interval at which the serve command advances
	// the block counter when no external height source is attached.
	DevBlockPeriodMs uint64 = 1000

	// DevAllocEther is the native balance granted to each dev account at
	// genesis, in ether.
	DevAllocEther = 1000

	// DevAllocTokens is the reference token balance minted to each dev
	// account at genesis.
	DevAllocTokens = 1_000_000
)
