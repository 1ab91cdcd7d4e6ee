package escrow

import "github.com/ethereum/go-ethereum/metrics"

var (
	depositMeter           = metrics.NewRegisteredMeter("escrow/deposit", nil)
	depositFailMeter       = metrics.NewRegisteredMeter("escrow/deposit/fail", nil)
	withdrawMeter          = metrics.NewRegisteredMeter("escrow/withdraw", nil)
	withdrawFailMeter      = metrics.NewRegisteredMeter("escrow/withdraw/fail", nil)
	ownerWithdrawMeter     = metrics.NewRegisteredMeter("escrow/owner/withdraw", nil)
	ownerWithdrawFailMeter = metrics.NewRegisteredMeter("escrow/owner/withdraw/fail", nil)

	activeStakesGauge = metrics.NewRegisteredGauge("escrow/stakes/active", nil)
)
