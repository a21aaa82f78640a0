// Package facade mediates between services and backing stores. Every store
// call runs under a bounded timeout; reads may fall back to read-only
// surrogate stores when the primary raises a connectivity-class failure,
// and the result is then marked degraded. Writes go to the primary only:
// a fallback store must never silently accept a write while the durable
// store is down.
package facade

import (
	"context"
	"time"

	"github.com/campushub/campushub/internal/logging"
)

// Op is one store call executed by the facade.
type Op[T any] func(ctx context.Context) (T, error)

// Result carries a read value and whether it was served by a fallback store.
type Result[T any] struct {
	Value    T
	Degraded bool
}

// Facade holds the per-call timeout and failure policy shared by all
// resource services. It is a stateless mediator and safe for concurrent use.
type Facade struct {
	timeout time.Duration
	logger  logging.Logger
}

// New constructs a Facade. A zero timeout disables the per-call deadline.
func New(timeout time.Duration, logger logging.Logger) *Facade {
	return &Facade{timeout: timeout, logger: logger.With("module", "facade")}
}

func (f *Facade) call(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}
	err := fn(ctx)
	if err != nil && Classify(err) == KindTransport {
		f.logger.Warn(ctx, "store call failed", "op", op, "error", err.Error())
	}
	return err
}

// Read executes primary and, only on a transport-class failure, tries each
// fallback in order. A fallback-served value is marked Degraded. Domain
// failures (not-found, conflict, denial) propagate immediately: substituting
// data for them would hide a real answer from the caller.
func Read[T any](ctx context.Context, f *Facade, op string, primary Op[T], fallbacks ...Op[T]) (Result[T], error) {
	var value T
	err := f.call(ctx, op, func(ctx context.Context) error {
		var opErr error
		value, opErr = primary(ctx)
		return opErr
	})
	if err == nil {
		return Result[T]{Value: value}, nil
	}
	if Classify(err) != KindTransport {
		return Result[T]{}, err
	}

	for _, fb := range fallbacks {
		if fb == nil {
			continue
		}
		fbErr := f.call(ctx, op+".fallback", func(ctx context.Context) error {
			var opErr error
			value, opErr = fb(ctx)
			return opErr
		})
		if fbErr == nil {
			f.logger.Warn(ctx, "serving degraded data", "op", op)
			return Result[T]{Value: value, Degraded: true}, nil
		}
	}
	return Result[T]{}, err
}

// Write executes primary with no fallback. Transport failures surface to the
// caller as-is so the formatter can answer 503 instead of faking success.
func Write[T any](ctx context.Context, f *Facade, op string, primary Op[T]) (T, error) {
	var value T
	err := f.call(ctx, op, func(ctx context.Context) error {
		var opErr error
		value, opErr = primary(ctx)
		return opErr
	})
	return value, err
}
