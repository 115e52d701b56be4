package async

import (
	"context"

	"github.com/ib-77/fnexec/pkg/biz"
)

// Predicate is an asynchronous check. The returned channel must deliver
// one outcome: a success carrying the verdict, or a failure carrying a
// domain error or a fault.
type Predicate func(ctx context.Context) <-chan biz.Outcome[bool]

// Action is an asynchronous step. The returned channel must deliver one
// outcome; a failure carries a domain error or a fault. The state must not
// be used after ctx is done.
type Action func(ctx context.Context, s *biz.State) <-chan biz.Outcome[struct{}]

// Go runs a blocking predicate on its own goroutine. A panic settles as a
// fault built by biz.PanicError.
func Go(p biz.Predicate) Predicate {
	return func(ctx context.Context) <-chan biz.Outcome[bool] {
		ch := make(chan biz.Outcome[bool], 1)

		go func() {
			defer close(ch)
			defer func() {
				if r := recover(); r != nil {
					ch <- biz.Fault[bool](biz.PanicError(r))
				}
			}()

			ok, err := p(ctx)
			ch <- biz.Settle(ok, err)
		}()

		return ch
	}
}

// Check runs a plain boolean function on its own goroutine.
func Check(f func() bool) Predicate {
	return Go(biz.Check(f))
}

// GoAction runs a blocking action on its own goroutine. A panic settles as
// a fault built by biz.PanicError, so it reaches the chain's caller.
//
// Once ctx is done the adapter settles without waiting for a, and the
// caller may read the state at once. a must not touch the state after
// ctx.Done() is closed.
func GoAction(a biz.Action) Action {
	return func(ctx context.Context, s *biz.State) <-chan biz.Outcome[struct{}] {
		ch := make(chan biz.Outcome[struct{}], 1)

		go func() {
			defer close(ch)
			defer func() {
				if r := recover(); r != nil {
					ch <- biz.Fault[struct{}](biz.PanicError(r))
				}
			}()

			ch <- biz.Settle(struct{}{}, a(ctx, s))
		}()

		return ch
	}
}
