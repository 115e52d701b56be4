package biz

import (
	"context"
	"errors"
)

// Outcome is the settled value of a pending computation: a value on
// success, a fault, or a cancellation carrying the context error.
type Outcome[T any] struct {
	value     T
	err       error
	isSuccess bool
	isCancel  bool
	hasValue  bool
}

func Success[T any](v T) Outcome[T] {
	return Outcome[T]{
		value:     v,
		isSuccess: true,
		hasValue:  true,
	}
}

func Fault[T any](err error) Outcome[T] {
	return Outcome[T]{err: err}
}

func Cancel[T any](err error) Outcome[T] {
	return Outcome[T]{
		err:      err,
		isCancel: true,
	}
}

// FaultWithValue is a fault that still carries the value it happened on.
func FaultWithValue[T any](v T, err error) Outcome[T] {
	o := Fault[T](err)
	o.value, o.hasValue = v, true
	return o
}

// CancelWithValue is a cancellation that still carries the untouched value.
func CancelWithValue[T any](v T, err error) Outcome[T] {
	o := Cancel[T](err)
	o.value, o.hasValue = v, true
	return o
}

// Settle classifies a (value, error) pair. Context cancellation errors
// become a cancel outcome.
func Settle[T any](v T, err error) Outcome[T] {
	switch {
	case err == nil:
		return Success(v)
	case IsCancellationError(err):
		return Cancel[T](err)
	default:
		return Fault[T](err)
	}
}

func (o Outcome[T]) Value() T {
	return o.value
}

func (o Outcome[T]) Err() error {
	return o.err
}

func (o Outcome[T]) IsSuccess() bool {
	return o.isSuccess
}

func (o Outcome[T]) IsCancel() bool {
	return o.isCancel
}

func (o Outcome[T]) HasValue() bool {
	return o.hasValue
}

func (o Outcome[T]) IsFault() bool {
	return !o.isSuccess && !o.isCancel && o.err != nil
}

// IsEmpty reports the zero Outcome, e.g. one read from a closed channel.
func (o Outcome[T]) IsEmpty() bool {
	return o.err == nil && !o.isCancel && !o.isSuccess
}

// Unpack returns the value and the error, nil on success.
func (o Outcome[T]) Unpack() (T, error) {
	return o.value, o.err
}

func IsCancellationError(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
}
