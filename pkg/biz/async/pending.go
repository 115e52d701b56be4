package async

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/ib-77/fnexec/pkg/biz"
)

const instrumentationName = "github.com/ib-77/fnexec/pkg/biz/async"

// ErrNoOutcome is the fault settled when a pending channel closes without
// delivering an outcome.
var ErrNoOutcome = errors.New("async: pending closed without outcome")

// Pending is a state that will settle exactly once. It has a single
// consumer: hand it to the next adapter or to Await, not both.
type Pending <-chan biz.Outcome[*biz.State]

// Resolve wraps an available state.
func Resolve(ctx context.Context, s *biz.State) Pending {
	return settled(biz.Success(s))
}

// Await suspends until p settles or ctx is done. A fault or cancellation
// is returned as the error, together with the state when one is known.
// An outcome already settled when ctx ends is still returned.
func Await(ctx context.Context, p Pending) (*biz.State, error) {
	o := receive(ctx, p)
	return o.Value(), o.Err()
}

func settled(o biz.Outcome[*biz.State]) Pending {
	ch := make(chan biz.Outcome[*biz.State], 1)
	ch <- o
	close(ch)
	return ch
}

// receive prefers an outcome that has already settled over ctx being
// done, so a late cancellation never hides a result or a fault.
func receive(ctx context.Context, p Pending) biz.Outcome[*biz.State] {
	if o, ok := poll(p); ok {
		return o
	}

	select {
	case o, ok := <-p:
		return received(o, ok)
	case <-ctx.Done():
		if o, ok := poll(p); ok {
			return o
		}
		return biz.Cancel[*biz.State](ctx.Err())
	}
}

// poll reads p without blocking.
func poll(p Pending) (biz.Outcome[*biz.State], bool) {
	select {
	case o, ok := <-p:
		return received(o, ok), true
	default:
		return biz.Outcome[*biz.State]{}, false
	}
}

func received(o biz.Outcome[*biz.State], ok bool) biz.Outcome[*biz.State] {
	if !ok {
		return biz.Fault[*biz.State](ErrNoOutcome)
	}
	return o
}

type optionKey string

const tracerProviderKey optionKey = "tracer_provider"

// WithTracerProvider makes adapters running under ctx open their spans on
// tp instead of the global provider.
func WithTracerProvider(ctx context.Context, tp trace.TracerProvider) context.Context {
	return context.WithValue(ctx, tracerProviderKey, tp)
}

func tracer(ctx context.Context) trace.Tracer {
	if tp, ok := ctx.Value(tracerProviderKey).(trace.TracerProvider); ok && tp != nil {
		return tp.Tracer(instrumentationName)
	}
	return otel.Tracer(instrumentationName)
}
