package escrow

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/event"

	"github.com/tos-network/gescrow/asset"
)

// EventKind identifies a notification emitted by a successful call.
type EventKind uint8

const (
	Deposited       EventKind = iota + 1 // token deposit
	NativeDeposited                      // native deposit
	UserWithdraw                         // stake paid out to its owner
	OwnerWithdraw                        // reserved fee paid out to the owner
)

func (k EventKind) String() string {
	switch k {
	case Deposited:
		return "Deposited"
	case NativeDeposited:
		return "EtherDeposited"
	case UserWithdraw:
		return "UserWithdraw"
	case OwnerWithdraw:
		return "OwnerWithdraw"
	}
	return fmt.Sprintf("EventKind(%d)", uint8(k))
}

// MarshalText implements encoding.TextMarshaler.
func (k EventKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Event is posted to subscribers after a call has been applied.
type Event struct {
	Kind    EventKind      `json:"kind"`
	Account common.Address `json:"account"`
	Asset   asset.Class    `json:"asset"`
	Amount  *big.Int       `json:"amount"` // deposited principal or paid out amount
	Block   uint64         `json:"block"`
}

// SubscribeEvents registers ch to receive escrow notifications. Delivery is
// synchronous with the call that produced the event, so ch should be
// buffered and drained promptly.
func (s *Service) SubscribeEvents(ch chan<- Event) event.Subscription {
	return s.scope.Track(s.feed.Subscribe(ch))
}
