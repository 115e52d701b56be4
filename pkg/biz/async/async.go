package async

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/ib-77/fnexec/pkg/biz"
)

// Ensure waits for p, then evaluates predicate unless the state has
// failed. The rules are those of biz.Ensure.
func Ensure(ctx context.Context, p Pending, predicate Predicate, message string) Pending {
	return spawn(p, func(p Pending) biz.Outcome[*biz.State] {
		return ensure(ctx, p, predicate, message)
	})
}

// EnsureNotNil waits for p, then applies biz.EnsureNotNil.
func EnsureNotNil[T any](ctx context.Context, p Pending, value T, message string) Pending {
	return spawn(p, func(p Pending) biz.Outcome[*biz.State] {
		return ensureNotNil(ctx, p, value, message)
	})
}

// Execute waits for p, then runs action unless the state has failed. A
// domain error is recorded; any other error settles the returned pending
// state as a fault carrying the untouched state.
func Execute(ctx context.Context, p Pending, action Action) Pending {
	return spawn(p, func(p Pending) biz.Outcome[*biz.State] {
		return execute(ctx, p, action)
	})
}

// spawn settles an adapter over p. When p has already settled as a fault
// or cancellation the adapter settles inline, otherwise on its own
// goroutine.
func spawn(p Pending, settle func(Pending) biz.Outcome[*biz.State]) Pending {
	if o, ok := poll(p); ok {
		if !o.IsSuccess() {
			return settled(settle(settled(o)))
		}
		p = settled(o)
	}

	out := make(chan biz.Outcome[*biz.State], 1)

	go func() {
		defer close(out)
		out <- settle(p)
	}()

	return out
}

func ensure(ctx context.Context, p Pending, predicate Predicate, message string) biz.Outcome[*biz.State] {
	spanCtx, span := tracer(ctx).Start(ctx, "async.Ensure")
	defer span.End()

	in := receive(spanCtx, p)
	if !in.IsSuccess() {
		return pass(span, in)
	}

	s := in.Value()
	if s.Failed() || predicate == nil {
		// failed states are skipped; a nil predicate is recorded as a fault
		return biz.Success(observe(span, s, func() {
			biz.EnsureOutcome(spanCtx, s, false, biz.ErrNilPredicate, message)
		}))
	}

	if err := spanCtx.Err(); err != nil {
		return cancel(span, s, err)
	}

	verdict, canceled := awaitStep(spanCtx, start(func() <-chan biz.Outcome[bool] {
		return predicate(spanCtx)
	}))
	if canceled {
		return cancel(span, s, spanCtx.Err())
	}

	return biz.Success(observe(span, s, func() {
		biz.EnsureOutcome(spanCtx, s, verdict.Value(), verdict.Err(), message)
	}))
}

func ensureNotNil[T any](ctx context.Context, p Pending, value T, message string) biz.Outcome[*biz.State] {
	spanCtx, span := tracer(ctx).Start(ctx, "async.EnsureNotNil")
	defer span.End()

	in := receive(spanCtx, p)
	if !in.IsSuccess() {
		return pass(span, in)
	}

	s := in.Value()
	return biz.Success(observe(span, s, func() {
		biz.EnsureNotNil(spanCtx, s, value, message)
	}))
}

func execute(ctx context.Context, p Pending, action Action) biz.Outcome[*biz.State] {
	spanCtx, span := tracer(ctx).Start(ctx, "async.Execute")
	defer span.End()

	in := receive(spanCtx, p)
	if !in.IsSuccess() {
		return pass(span, in)
	}

	s := in.Value()
	if s.Failed() || action == nil {
		return settleExecute(span, s, func() (*biz.State, error) {
			return biz.Execute(spanCtx, s, nil)
		})
	}

	if err := spanCtx.Err(); err != nil {
		return cancel(span, s, err)
	}

	done, canceled := awaitStep(spanCtx, start(func() <-chan biz.Outcome[struct{}] {
		return action(spanCtx, s)
	}))
	if canceled {
		return cancel(span, s, spanCtx.Err())
	}

	return settleExecute(span, s, func() (*biz.State, error) {
		return biz.ExecuteOutcome(spanCtx, s, done.Err())
	})
}

// start calls f, turning a panic raised before f hands back its channel
// into a settled fault.
func start[T any](f func() <-chan biz.Outcome[T]) (ch <-chan biz.Outcome[T]) {
	defer func() {
		if r := recover(); r != nil {
			settledCh := make(chan biz.Outcome[T], 1)
			settledCh <- biz.Fault[T](biz.PanicError(r))
			close(settledCh)
			ch = settledCh
		}
	}()
	return f()
}

// awaitStep waits for a predicate or action outcome. It reports canceled
// when ctx ends first, or when the step itself settled as canceled because
// ctx ended.
func awaitStep[T any](ctx context.Context, ch <-chan biz.Outcome[T]) (biz.Outcome[T], bool) {
	if ch == nil {
		return biz.Fault[T](ErrNoOutcome), false
	}

	select {
	case o, ok := <-ch:
		if !ok {
			return biz.Fault[T](ErrNoOutcome), false
		}
		if o.IsCancel() && ctx.Err() != nil {
			return o, true
		}
		return o, false
	case <-ctx.Done():
		return biz.Cancel[T](ctx.Err()), true
	}
}

func settleExecute(span trace.Span, s *biz.State,
	run func() (*biz.State, error)) biz.Outcome[*biz.State] {

	var err error
	observe(span, s, func() {
		_, err = run()
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return biz.FaultWithValue(s, err)
	}
	return biz.Success(s)
}

// observe runs apply and annotates span with what it did to s.
func observe(span trace.Span, s *biz.State, apply func()) *biz.State {
	wasFailed, before := s.Failed(), s.Len()
	span.SetAttributes(attribute.String("fnexec.state_id", s.ID().String()))

	apply()

	if wasFailed {
		span.SetAttributes(attribute.Bool("fnexec.skipped", true))
		return s
	}
	if !s.Failed() {
		return s
	}

	attrs := []attribute.KeyValue{attribute.Bool("fnexec.silent", s.Len() == before)}
	if s.Len() > before {
		last := s.Errors()[s.Len()-1]
		attrs = append(attrs,
			attribute.String("fnexec.message", last.Message()),
			attribute.String("fnexec.code", last.Code()))
	}
	span.AddEvent("business rule rejected", trace.WithAttributes(attrs...))
	return s
}

func pass(span trace.Span, in biz.Outcome[*biz.State]) biz.Outcome[*biz.State] {
	span.SetAttributes(attribute.Bool("fnexec.upstream_settled_early", true))
	if in.IsCancel() {
		span.SetStatus(codes.Error, "canceled")
	}
	return in
}

func cancel(span trace.Span, s *biz.State, err error) biz.Outcome[*biz.State] {
	span.SetStatus(codes.Error, "canceled")
	return biz.CancelWithValue(s, err)
}
