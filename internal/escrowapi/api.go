// Package escrowapi implements the escrow_* and dev_* RPC namespaces and a
// small read-only REST router.
package escrowapi

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/tos-network/gescrow/asset"
	"github.com/tos-network/gescrow/escrow"
	"github.com/tos-network/gescrow/ledgerdb"
	"github.com/tos-network/gescrow/staking"
)

// Backend is the ledger the API serves.
type Backend interface {
	Escrow() *escrow.Service
	Head() ledgerdb.Head
	SendAction(from common.Address, value *big.Int, data []byte) error
	Mine(blocks uint64) (uint64, error)
	MintToken(to common.Address, amount *big.Int) error
	ApproveToken(owner, spender common.Address, amount *big.Int) error
	TokenBalance(addr common.Address) (*big.Int, error)
	NativeBalance(addr common.Address) (*big.Int, error)
}

// RPCStake is the JSON form of a stake record.
type RPCStake struct {
	Account      common.Address `json:"account"`
	ID           hexutil.Uint64 `json:"id"`
	Asset        string         `json:"asset,omitempty"`
	TokenAmount  *hexutil.Big   `json:"tokenAmount"`
	NativeAmount *hexutil.Big   `json:"nativeAmount"`
	DepositBlock hexutil.Uint64 `json:"depositBlock"`
	Status       string         `json:"status"`
}

func newRPCStake(rec staking.StakeRecord) *RPCStake {
	out := &RPCStake{
		Account:      rec.Account,
		ID:           hexutil.Uint64(rec.ID),
		TokenAmount:  (*hexutil.Big)(rec.TokenAmount()),
		NativeAmount: (*hexutil.Big)(rec.NativeAmount()),
		DepositBlock: hexutil.Uint64(rec.DepositBlock),
		Status:       rec.Status.String(),
	}
	if rec.Asset.Valid() {
		out.Asset = rec.Asset.String()
	}
	return out
}

// RPCConfig is the JSON form of the escrow configuration.
type RPCConfig struct {
	Owner            common.Address `json:"owner"`
	OwnerFeePercent  hexutil.Uint64 `json:"ownerFeePercent"`
	MaturityBlocks   hexutil.Uint64 `json:"maturityBlocks"`
	ProfitRateBPS    hexutil.Uint64 `json:"profitRateBps"`
	AccrualCapBlocks hexutil.Uint64 `json:"accrualCapBlocks"`
}

// EscrowAPI implements the escrow_* RPC namespace.
type EscrowAPI struct {
	b Backend
}

// NewEscrowAPI creates the read API over b.
func NewEscrowAPI(b Backend) *EscrowAPI {
	return &EscrowAPI{b: b}
}

// Config returns the immutable escrow configuration.
func (api *EscrowAPI) Config(_ context.Context) RPCConfig {
	cfg := api.b.Escrow().Config()
	return RPCConfig{
		Owner:            cfg.Owner,
		OwnerFeePercent:  hexutil.Uint64(cfg.OwnerFeePercent),
		MaturityBlocks:   hexutil.Uint64(cfg.MaturityBlocks),
		ProfitRateBPS:    hexutil.Uint64(cfg.ProfitRateBPS),
		AccrualCapBlocks: hexutil.Uint64(cfg.AccrualCapBlocks),
	}
}

// Owner returns the fee owner.
func (api *EscrowAPI) Owner(_ context.Context) common.Address {
	return api.b.Escrow().Owner()
}

// OwnerFeePercent returns the share of each deposit reserved for the owner.
func (api *EscrowAPI) OwnerFeePercent(_ context.Context) hexutil.Uint64 {
	return hexutil.Uint64(api.b.Escrow().OwnerFeePercent())
}

// BlockNumber returns the current block height of the ledger.
func (api *EscrowAPI) BlockNumber(_ context.Context) hexutil.Uint64 {
	return hexutil.Uint64(api.b.Escrow().CurrentBlock())
}

// GetStake returns the stake record of account.
func (api *EscrowAPI) GetStake(_ context.Context, account common.Address) *RPCStake {
	return newRPCStake(api.b.Escrow().Stake(account))
}

// Stakes returns the stake records of every account that ever deposited.
func (api *EscrowAPI) Stakes(_ context.Context) []*RPCStake {
	recs := api.b.Escrow().Stakes()
	out := make([]*RPCStake, len(recs))
	for i, rec := range recs {
		out[i] = newRPCStake(rec)
	}
	return out
}

// PendingPayout quotes principal plus profit for the active stake of account.
func (api *EscrowAPI) PendingPayout(_ context.Context, account common.Address) (*hexutil.Big, error) {
	payout, err := api.b.Escrow().PendingPayout(account)
	if err != nil {
		return nil, toAPIError(err)
	}
	return (*hexutil.Big)(payout), nil
}

// ReservedFee returns the owner fee reserved in the named asset.
func (api *EscrowAPI) ReservedFee(_ context.Context, assetName string) (*hexutil.Big, error) {
	class, err := asset.ParseClass(assetName)
	if err != nil {
		return nil, toAPIError(err)
	}
	fee, err := api.b.Escrow().ReservedFee(class)
	if err != nil {
		return nil, toAPIError(err)
	}
	return (*hexutil.Big)(fee), nil
}

// Balance returns the escrow's raw holdings of the named asset.
func (api *EscrowAPI) Balance(_ context.Context, assetName string) (*hexutil.Big, error) {
	class, err := asset.ParseClass(assetName)
	if err != nil {
		return nil, toAPIError(err)
	}
	balance, err := api.b.Escrow().Balance(class)
	if err != nil {
		return nil, toAPIError(err)
	}
	return (*hexutil.Big)(balance), nil
}

// TokenBalance returns the reference token balance of addr.
func (api *EscrowAPI) TokenBalance(_ context.Context, addr common.Address) (*hexutil.Big, error) {
	balance, err := api.b.TokenBalance(addr)
	if err != nil {
		return nil, toAPIError(err)
	}
	return (*hexutil.Big)(balance), nil
}

// NativeBalance returns the native balance of addr.
func (api *EscrowAPI) NativeBalance(_ context.Context, addr common.Address) (*hexutil.Big, error) {
	balance, err := api.b.NativeBalance(addr)
	if err != nil {
		return nil, toAPIError(err)
	}
	return (*hexutil.Big)(balance), nil
}

// DevAPI implements the dev_* RPC namespace. It acts on behalf of any
// account and must only be exposed on development ledgers.
type DevAPI struct {
	b Backend
}

// NewDevAPI creates the dev API over b.
func NewDevAPI(b Backend) *DevAPI {
	return &DevAPI{b: b}
}

// SendAction executes an encoded system action as from, with value attached.
func (api *DevAPI) SendAction(_ context.Context, from common.Address, value *hexutil.Big, data hexutil.Bytes) error {
	v := new(big.Int)
	if value != nil {
		v = value.ToInt()
	}
	return toAPIError(api.b.SendAction(from, v, data))
}

// Mine produces the given number of blocks and returns the new height.
func (api *DevAPI) Mine(_ context.Context, blocks hexutil.Uint64) (hexutil.Uint64, error) {
	height, err := api.b.Mine(uint64(blocks))
	if err != nil {
		return 0, toAPIError(err)
	}
	return hexutil.Uint64(height), nil
}

// MintToken credits amount of the reference token to to.
func (api *DevAPI) MintToken(_ context.Context, to common.Address, amount *hexutil.Big) error {
	if amount == nil {
		return toAPIError(asset.ErrInvalidAmount)
	}
	return toAPIError(api.b.MintToken(to, amount.ToInt()))
}

// ApproveToken sets the allowance of spender over owner's tokens.
func (api *DevAPI) ApproveToken(_ context.Context, owner, spender common.Address, amount *hexutil.Big) error {
	if amount == nil {
		return toAPIError(asset.ErrInvalidAmount)
	}
	return toAPIError(api.b.ApproveToken(owner, spender, amount.ToInt()))
}
