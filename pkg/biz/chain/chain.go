package chain

import (
	"context"

	"github.com/ib-77/fnexec/pkg/biz"
)

// Chain threads a biz.State through combinators. Each step returns a new
// Chain value; keep using the returned one.
type Chain struct {
	ctx   context.Context
	state *biz.State
	fault error
}

// Start creates a chain over an existing state
func Start(ctx context.Context, s *biz.State) Chain {
	return Chain{ctx: ctx, state: s}
}

// New creates a chain over a fresh state
func New(ctx context.Context, opts ...biz.Option) Chain {
	return Start(ctx, biz.New(opts...))
}

func (c Chain) State() *biz.State {
	return c.state
}

// Fault returns the error that stopped the chain in Execute, if any.
func (c Chain) Fault() error {
	return c.fault
}

func (c Chain) Succeeded() bool {
	return c.fault == nil && c.state.Succeeded()
}

// Result returns the state and the fault that stopped the chain.
func (c Chain) Result() (*biz.State, error) {
	return c.state, c.fault
}

func (c Chain) halted() bool {
	return c.fault != nil
}

// Ensure evaluates predicate unless the chain has failed or halted
func (c Chain) Ensure(predicate biz.Predicate, message string) Chain {
	if c.halted() {
		return c
	}
	return Chain{ctx: c.ctx, state: biz.Ensure(c.ctx, c.state, predicate, message)}
}

// EnsureThat records message when cond is false
func (c Chain) EnsureThat(cond bool, message string) Chain {
	return c.Ensure(func(context.Context) (bool, error) { return cond, nil }, message)
}

// Execute runs action; a fault halts the chain
func (c Chain) Execute(action biz.Action) Chain {
	if c.halted() {
		return c
	}
	s, err := biz.Execute(c.ctx, c.state, action)
	return Chain{ctx: c.ctx, state: s, fault: err}
}

// EnsureNotNil fails the chain when value is nil
func EnsureNotNil[T any](c Chain, value T, message string) Chain {
	if c.halted() {
		return c
	}
	return Chain{ctx: c.ctx, state: biz.EnsureNotNil(c.ctx, c.state, value, message)}
}

// Finally collapses the chain into a value: onFault when an action
// faulted, onFailure with the recorded errors when a check failed,
// onSuccess otherwise.
func Finally[Out any](c Chain,
	onSuccess func(ctx context.Context, s *biz.State) Out,
	onFailure func(ctx context.Context, errs []*biz.Error) Out,
	onFault func(ctx context.Context, err error) Out) Out {

	if c.halted() {
		return onFault(c.ctx, c.fault)
	}
	if c.state.Failed() {
		return onFailure(c.ctx, c.state.Errors())
	}
	return onSuccess(c.ctx, c.state)
}
