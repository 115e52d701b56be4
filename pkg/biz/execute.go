package biz

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

// ErrNilAction is returned by Execute when it is handed a nil action.
var ErrNilAction = errors.New("biz: nil action")

// Action is a side-effecting step. It receives the state so it can run
// nested combinators or read recorded errors.
type Action func(ctx context.Context, s *State) error

// Execute runs action only while s has succeeded.
//
// A domain error returned by action fails s and is recorded at the
// state's clock, keeping its message and code. Any other
// error is a fault: s is left as is and the error is returned to the
// caller. Panics raised by action are not recovered.
func Execute(ctx context.Context, s *State, action Action) (*State, error) {
	if s.failed {
		return s.skip(ctx, StepExecute), nil
	}
	if action == nil {
		return ExecuteOutcome(ctx, s, ErrNilAction)
	}
	return ExecuteOutcome(ctx, s, action(ctx, s))
}

// ExecuteOutcome applies the Execute rules to the result of an action that
// ran elsewhere on a state that had not failed. An action that failed s
// through nested combinators and returned nil counts as a rejection.
func ExecuteOutcome(ctx context.Context, s *State, err error) (*State, error) {
	hooks := s.opts.hooks

	if err == nil {
		if s.failed {
			// rejected by combinators nested in the action
			hooks.fire(ctx, hooks.OnReject, StepExecute, s, nil)
			return s, nil
		}
		hooks.fire(ctx, hooks.OnPass, StepExecute, s, nil)
		return s, nil
	}

	if derr, isDomain := AsError(err); isDomain {
		rec := s.adopt(derr)
		s.reject(rec)
		s.logReject(StepExecute, rec)
		hooks.fire(ctx, hooks.OnReject, StepExecute, s, rec)
		return s, nil
	}

	s.opts.logger.Warn("action fault",
		zap.Stringer("state_id", s.id),
		zap.Error(err))
	hooks.fire(ctx, hooks.OnFault, StepExecute, s, err)
	return s, err
}
