package biz

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// State is the mutable record of a chain's progress: a failure flag and
// the ordered list of recorded errors. Once failed it stays failed.
//
// A State is owned by the chain threading it through combinators and is
// not safe for concurrent use.
type State struct {
	id        uuid.UUID
	createdAt time.Time
	failed    bool
	errs      []*Error
	opts      options
}

// New returns a fresh, succeeded State with no errors.
func New(opts ...Option) *State {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &State{
		id:        uuid.New(),
		createdAt: o.clock(),
		opts:      o,
	}
}

func (s *State) ID() uuid.UUID {
	return s.id
}

func (s *State) CreatedAt() time.Time {
	return s.createdAt
}

func (s *State) Succeeded() bool {
	return !s.failed
}

func (s *State) Failed() bool {
	return s.failed
}

// Errors returns a copy of the recorded errors in insertion order.
func (s *State) Errors() []*Error {
	out := make([]*Error, len(s.errs))
	copy(out, s.errs)
	return out
}

func (s *State) Len() int {
	return len(s.errs)
}

// Messages returns the recorded error messages in insertion order.
func (s *State) Messages() []string {
	out := make([]string, 0, len(s.errs))
	for _, e := range s.errs {
		out = append(out, e.message)
	}
	return out
}

// FirstError returns the earliest recorded error, or nil. Equal timestamps
// resolve to the earlier insertion.
func (s *State) FirstError() *Error {
	var first *Error
	for _, e := range s.errs {
		if first == nil || e.createdAt.Before(first.createdAt) {
			first = e
		}
	}
	return first
}

// LastError returns the latest recorded error, or nil. Equal timestamps
// resolve to the later insertion.
func (s *State) LastError() *Error {
	var last *Error
	for _, e := range s.errs {
		if last == nil || !e.createdAt.Before(last.createdAt) {
			last = e
		}
	}
	return last
}

// Err joins the recorded errors, nil when there are none.
func (s *State) Err() error {
	if len(s.errs) == 0 {
		return nil
	}
	joined := make([]error, len(s.errs))
	for i, e := range s.errs {
		joined[i] = e
	}
	return errors.Join(joined...)
}

func (s *State) Logger() *zap.Logger {
	return s.opts.logger
}

func (s *State) newError(message, code string) *Error {
	return newError(message, code, s.opts.clock())
}

// adopt records a raised domain error at the state's clock, keeping its
// message and code.
func (s *State) adopt(derr *Error) *Error {
	return s.newError(derr.message, derr.code)
}

// reject flips the flag and records err when it is not nil.
func (s *State) reject(err *Error) {
	s.failed = true
	if err != nil {
		s.errs = append(s.errs, err)
	}
}
