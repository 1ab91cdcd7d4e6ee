package sysaction

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Context carries information available to a system-action handler.
type Context struct {
	From  common.Address
	Value *big.Int
}

// Handler is implemented by sub-systems that serve system actions.
type Handler interface {
	CanHandle(kind ActionKind) bool
	Handle(ctx *Context, sa *SysAction) error
}

// Registry holds registered handlers.
type Registry struct{ handlers []Handler }

// NewRegistry creates a registry holding the given handlers.
func NewRegistry(handlers ...Handler) *Registry {
	return &Registry{handlers: handlers}
}

// Register adds a handler to the registry.
func (r *Registry) Register(h Handler) { r.handlers = append(r.handlers, h) }

// Execute decodes data and dispatches it to the first handler that accepts
// its kind.
func (r *Registry) Execute(ctx *Context, data []byte) error {
	sa, err := Decode(data)
	if err != nil {
		return err
	}
	for _, h := range r.handlers {
		if h.CanHandle(sa.Action) {
			return h.Handle(ctx, sa)
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownAction, sa.Action)
}
