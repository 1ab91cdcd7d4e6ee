// Package asset defines the two asset classes held by the escrow and the
// adapters that move them between accounts and the escrow address.
package asset

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Class identifies one of the two supported value types.
type Class uint8

const (
	// Token is the fungible token asset.
	Token Class = 1
	// Native is the native currency of the host.
	Native Class = 2
)

// Classes lists every supported asset class in display order.
var Classes = []Class{Token, Native}

func (c Class) String() string {
	switch c {
	case Token:
		return "token"
	case Native:
		return "native"
	}
	return fmt.Sprintf("asset(%d)", uint8(c))
}

// Valid reports whether c is a known asset class.
func (c Class) Valid() bool { return c == Token || c == Native }

// ParseClass resolves a user supplied asset name. "ether" and "eth" are
// accepted as aliases of the native class.
func ParseClass(s string) (Class, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "token", "erc20":
		return Token, nil
	case "native", "ether", "eth":
		return Native, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAsset, s)
}

// MarshalText implements encoding.TextMarshaler.
func (c Class) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownAsset, uint8(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Class) UnmarshalText(text []byte) error {
	parsed, err := ParseClass(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Adapter moves value of a single asset class between an account and the
// escrow. Implementations must either complete a transfer or fail without
// moving anything.
type Adapter interface {
	// Class returns the asset class handled by the adapter.
	Class() Class

	// TransferIn pulls amount from the given account into the escrow.
	TransferIn(from common.Address, amount *big.Int) error

	// TransferOut pushes amount from the escrow to the given account.
	TransferOut(to common.Address, amount *big.Int) error

	// BalanceOf returns the balance of account. The escrow's own raw
	// liquidity is BalanceOf(escrow address).
	BalanceOf(account common.Address) *big.Int
}
