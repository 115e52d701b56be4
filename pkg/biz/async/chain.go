package async

import (
	"context"

	"github.com/ib-77/fnexec/pkg/biz"
)

// Chain is the fluent form of the adapters. Steps start waiting as soon
// as they are added but each one only runs after the previous has settled.
type Chain struct {
	ctx     context.Context
	pending Pending
}

// From starts a chain over an available state
func From(ctx context.Context, s *biz.State) Chain {
	return Chain{ctx: ctx, pending: Resolve(ctx, s)}
}

// Wrap starts a chain over a pending state
func Wrap(ctx context.Context, p Pending) Chain {
	return Chain{ctx: ctx, pending: p}
}

// New starts a chain over a fresh state
func New(ctx context.Context, opts ...biz.Option) Chain {
	return From(ctx, biz.New(opts...))
}

func (c Chain) Ensure(predicate Predicate, message string) Chain {
	return Chain{ctx: c.ctx, pending: Ensure(c.ctx, c.pending, predicate, message)}
}

// EnsureCheck is Ensure for a synchronous predicate
func (c Chain) EnsureCheck(predicate biz.Predicate, message string) Chain {
	return c.Ensure(Go(predicate), message)
}

func (c Chain) Execute(action Action) Chain {
	return Chain{ctx: c.ctx, pending: Execute(c.ctx, c.pending, action)}
}

// ExecuteFunc is Execute for a blocking action
func (c Chain) ExecuteFunc(action biz.Action) Chain {
	return c.Execute(GoAction(action))
}

// NotNil is the chain form of EnsureNotNil.
func NotNil[T any](c Chain, value T, message string) Chain {
	return Chain{ctx: c.ctx, pending: EnsureNotNil(c.ctx, c.pending, value, message)}
}

// Pending hands the chain's tail over; the chain must not be awaited after.
func (c Chain) Pending() Pending {
	return c.pending
}

// Await suspends until the last step settles.
func (c Chain) Await() (*biz.State, error) {
	return Await(c.ctx, c.pending)
}
