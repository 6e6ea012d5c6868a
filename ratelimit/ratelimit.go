// Package ratelimit provides a blunt fixed-delay throttle for outbound requests.
//
// Unlike a token bucket, a Limiter sleeps for the full interval before every call,
// including the first one. It does not account for overlapping concurrent callers;
// each call site that needs throttling owns its own Limiter.
package ratelimit

import (
	"context"
	"time"

	"github.com/s0up4200/sankaku/apierr"
)

const (
	// DefaultRPS is the default number of requests per second
	DefaultRPS = 3
	// DefaultRPM is the default number of requests per minute
	DefaultRPM = 180
)

// Limiter delays every call by a fixed interval
type Limiter struct {
	interval time.Duration
}

// New creates a Limiter from exactly one of rps or rpm. Zero or negative values
// count as unset.
func New(rps, rpm int) (*Limiter, error) {
	switch {
	case rps > 0 && rpm > 0:
		return nil, apierr.ErrConflictingRateLimit
	case rps > 0:
		return &Limiter{interval: time.Second / time.Duration(rps)}, nil
	case rpm > 0:
		return &Limiter{interval: time.Minute / time.Duration(rpm)}, nil
	default:
		return nil, apierr.ErrMissingRateLimit
	}
}

// Interval returns the delay applied before every call
func (l *Limiter) Interval() time.Duration {
	return l.interval
}

// Wait sleeps for the configured interval or until ctx is done
func (l *Limiter) Wait(ctx context.Context) error {
	timer := time.NewTimer(l.interval)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Wrap returns fn decorated with a Wait before every invocation
func (l *Limiter) Wrap(fn func(ctx context.Context) error) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if err := l.Wait(ctx); err != nil {
			return err
		}
		return fn(ctx)
	}
}
