package node

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/vm"

	"github.com/tos-network/gescrow/asset"
	"github.com/tos-network/gescrow/escrow"
	"github.com/tos-network/gescrow/params"
)

// GenesisAccount is the initial funding of one account.
type GenesisAccount struct {
	Native *big.Int // native balance in wei
	Tokens *big.Int // reference token balance
}

// GenesisAlloc specifies the initial funding that is part of the genesis state.
type GenesisAlloc map[common.Address]GenesisAccount

// Genesis specifies the escrow configuration and the initial funding of a
// new ledger.
type Genesis struct {
	Escrow escrow.Config
	Alloc  GenesisAlloc
}

// DevGenesis returns a genesis owned by owner that funds owner and every
// given account with the dev allocation of both assets.
func DevGenesis(owner common.Address, accounts ...common.Address) *Genesis {
	cfg := escrow.DefaultConfig
	cfg.Owner = owner

	alloc := make(GenesisAlloc, len(accounts)+1)
	for _, a := range append([]common.Address{owner}, accounts...) {
		alloc[a] = GenesisAccount{
			Native: new(big.Int).Mul(big.NewInt(params.DevAllocEther), big.NewInt(params.Ether)),
			Tokens: new(big.Int).Mul(big.NewInt(params.DevAllocTokens), big.NewInt(params.Ether)),
		}
	}
	return &Genesis{Escrow: cfg, Alloc: alloc}
}

// apply funds the genesis accounts in db.
func (g *Genesis) apply(db vm.StateDB) error {
	token := asset.NewToken(db, params.TokenAddress)
	for addr, account := range g.Alloc {
		if account.Native != nil && account.Native.Sign() > 0 {
			db.AddBalance(addr, account.Native)
		}
		if account.Tokens != nil && account.Tokens.Sign() > 0 {
			if err := token.Mint(addr, account.Tokens); err != nil {
				return err
			}
		}
	}
	return nil
}
