package biz

import (
	"time"

	"go.uber.org/zap"
)

type options struct {
	logger *zap.Logger
	clock  func() time.Time
	hooks  Hooks
}

// Option configures a State created by New.
type Option func(*options)

// WithLogger sets the logger used to report rejected checks and faults.
// A nil logger keeps the default no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithClock replaces the time source used to stamp recorded errors.
func WithClock(clock func() time.Time) Option {
	return func(o *options) {
		if clock != nil {
			o.clock = clock
		}
	}
}

func WithHooks(hooks Hooks) Option {
	return func(o *options) {
		o.hooks = hooks
	}
}

func defaultOptions() options {
	return options{
		logger: zap.NewNop(),
		clock:  func() time.Time { return time.Now().UTC() },
	}
}
