package biz

import (
	"context"

	"github.com/google/uuid"
)

// Step names the combinator that produced a StepEvent.
type Step string

const (
	StepEnsure       Step = "ensure"
	StepEnsureNotNil Step = "ensure_not_nil"
	StepExecute      Step = "execute"
)

// StepEvent describes one combinator call on a State.
type StepEvent struct {
	Step    Step
	StateID uuid.UUID
	// Err is the recorded domain error for OnReject (nil for a silent
	// rejection) and the fault for OnFault.
	Err error
}

// Hooks are optional callbacks fired after each combinator call. A nil
// field is skipped.
type Hooks struct {
	OnPass   func(context.Context, *StepEvent)
	OnReject func(context.Context, *StepEvent)
	OnFault  func(context.Context, *StepEvent)
	OnSkip   func(context.Context, *StepEvent)
}

func (h Hooks) fire(ctx context.Context, f func(context.Context, *StepEvent), step Step, s *State, err error) {
	if f == nil {
		return
	}
	f(ctx, &StepEvent{Step: step, StateID: s.id, Err: err})
}
