package biz

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"go.uber.org/zap"
)

// ErrNilPredicate is recorded when Ensure is handed a nil predicate.
var ErrNilPredicate = errors.New("biz: nil predicate")

// Predicate is a check about data. It returns false, or an error wrapping
// a *Error, to reject; any other error is an unexpected fault.
type Predicate func(ctx context.Context) (bool, error)

// Check adapts a plain boolean function to a Predicate.
func Check(f func() bool) Predicate {
	return func(context.Context) (bool, error) {
		return f(), nil
	}
}

// Ensure evaluates predicate unless s has already failed.
//
// A false result fails s and records message, or records nothing when
// message is blank. A domain error fails s and is recorded at the state's
// clock with its message and code, unless message is set, in which case
// message is recorded instead. Any other error, and
// any panic, fails s and records an "unexpected failure" error with code
// CodeUnexpected. Ensure never returns or panics with a fault.
func Ensure(ctx context.Context, s *State, predicate Predicate, message string) *State {
	if s.failed {
		return s.skip(ctx, StepEnsure)
	}
	if predicate == nil {
		return s.applyCheck(ctx, StepEnsure, false, ErrNilPredicate, message)
	}
	ok, err := evaluate(ctx, predicate)
	return s.applyCheck(ctx, StepEnsure, ok, err, message)
}

// EnsureOutcome applies the Ensure rules to a check that was evaluated
// elsewhere, e.g. by an asynchronous predicate.
func EnsureOutcome(ctx context.Context, s *State, ok bool, err error, message string) *State {
	if s.failed {
		return s.skip(ctx, StepEnsure)
	}
	return s.applyCheck(ctx, StepEnsure, ok, err, message)
}

// EnsureNotNil fails s when value is nil. A blank message is replaced by
// one naming the declared type T.
func EnsureNotNil[T any](ctx context.Context, s *State, value T, message string) *State {
	if s.failed {
		return s.skip(ctx, StepEnsureNotNil)
	}
	if !IsNil(value) {
		s.opts.hooks.fire(ctx, s.opts.hooks.OnPass, StepEnsureNotNil, s, nil)
		return s
	}
	if isBlank(message) {
		message = NilMessage[T]()
	}
	rec := s.newError(message, CodeNil)
	s.reject(rec)
	s.logReject(StepEnsureNotNil, rec)
	s.opts.hooks.fire(ctx, s.opts.hooks.OnReject, StepEnsureNotNil, s, rec)
	return s
}

// NilMessage is the default EnsureNotNil message for T.
func NilMessage[T any]() string {
	return fmt.Sprintf("object of type %s must not be nil", reflect.TypeOf((*T)(nil)).Elem())
}

func evaluate(ctx context.Context, predicate Predicate) (ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			ok, err = false, PanicError(r)
		}
	}()
	return predicate(ctx)
}

// PanicError turns a recovered panic value into an error. A domain error
// is returned as is.
func PanicError(r any) error {
	if err, isErr := r.(error); isErr {
		if _, isDomain := AsError(err); isDomain {
			return err
		}
		return fmt.Errorf("panic: %w", err)
	}
	return fmt.Errorf("panic: %v", r)
}

func (s *State) applyCheck(ctx context.Context, step Step, ok bool, err error, message string) *State {
	hooks := s.opts.hooks

	if err == nil {
		if ok {
			hooks.fire(ctx, hooks.OnPass, step, s, nil)
			return s
		}
		if isBlank(message) {
			s.reject(nil)
			s.logReject(step, nil)
			hooks.fire(ctx, hooks.OnReject, step, s, nil)
			return s
		}
		rec := s.newError(message, "")
		s.reject(rec)
		s.logReject(step, rec)
		hooks.fire(ctx, hooks.OnReject, step, s, rec)
		return s
	}

	if derr, isDomain := AsError(err); isDomain {
		rec := s.newError(message, "")
		if isBlank(message) {
			rec = s.adopt(derr)
		}
		s.reject(rec)
		s.logReject(step, rec)
		hooks.fire(ctx, hooks.OnReject, step, s, rec)
		return s
	}

	rec := s.newError("unexpected failure: "+err.Error(), CodeUnexpected)
	s.reject(rec)
	s.opts.logger.Debug("fault recorded as business error",
		zap.String("step", string(step)),
		zap.Stringer("state_id", s.id),
		zap.Error(err))
	hooks.fire(ctx, hooks.OnFault, step, s, err)
	return s
}

func (s *State) skip(ctx context.Context, step Step) *State {
	s.opts.hooks.fire(ctx, s.opts.hooks.OnSkip, step, s, nil)
	return s
}

func (s *State) logReject(step Step, rec *Error) {
	if rec == nil {
		s.opts.logger.Debug("check rejected without message",
			zap.String("step", string(step)),
			zap.Stringer("state_id", s.id))
		return
	}
	s.opts.logger.Debug("check rejected",
		zap.String("step", string(step)),
		zap.Stringer("state_id", s.id),
		zap.String("message", rec.message),
		zap.String("code", rec.code))
}
