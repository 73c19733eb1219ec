// Package retry provides a pure retry policy: exponential backoff with a
// configurable cap, optional fractional jitter, and a pluggable predicate
// deciding which errors are worth another attempt.
//
// A Policy performs no I/O and holds no mutable state; the caller owns the
// attempt loop and the sleeping. Delays are computed as
//
//	base = InitialDelay * Multiplier^(attempt-1)
//
// capped at MaxDelay, then scaled by a uniform random factor in
// [1-Jitter, 1+Jitter].
package retry

import (
	"math"
	"math/rand/v2"
	"time"
)

// Default policy values.
const (
	DefaultMaxAttempts  = 3
	DefaultInitialDelay = 500 * time.Millisecond
	DefaultMaxDelay     = 8 * time.Second
	DefaultMultiplier   = 2.0
	DefaultJitter       = 0.2
)

// Policy describes how failed attempts are retried. The zero value is not
// useful; construct policies via Default, None, or a struct literal and
// rely on Normalize to clamp out-of-range fields.
//
// Policies are immutable values: build one once and reuse it across any
// number of concurrent fetches.
type Policy struct {
	// MaxAttempts is the total number of attempts, including the first.
	// 1 means no retries.
	MaxAttempts int

	// InitialDelay is the backoff before the first retry.
	InitialDelay time.Duration

	// MaxDelay caps the computed backoff.
	MaxDelay time.Duration

	// Multiplier is the exponential growth factor per retry.
	Multiplier float64

	// Jitter is the fractional randomization f in [0, 1]. The computed
	// delay is scaled by a uniform factor in [1-f, 1+f]. 0 disables jitter.
	Jitter float64

	// Predicate reports whether an error is retryable. When nil, the
	// caller applies its own default classification.
	Predicate func(error) bool
}

// Default returns the standard policy: 3 attempts, 500ms initial delay
// doubling up to 8s, with 20% jitter. The predicate is left nil so the
// fetch engine applies its default error classification.
func Default() Policy {
	return Policy{
		MaxAttempts:  DefaultMaxAttempts,
		InitialDelay: DefaultInitialDelay,
		MaxDelay:     DefaultMaxDelay,
		Multiplier:   DefaultMultiplier,
		Jitter:       DefaultJitter,
	}
}

// None returns a policy that never retries.
func None() Policy {
	return Policy{MaxAttempts: 1}
}

// Normalize returns a copy of the policy with out-of-range fields clamped
// to sane values: at least one attempt, non-negative delays, MaxDelay at
// least InitialDelay, Multiplier at least 1, and Jitter within [0, 1].
func (p Policy) Normalize() Policy {
	if p.MaxAttempts < 1 {
		p.MaxAttempts = 1
	}
	if p.InitialDelay < 0 {
		p.InitialDelay = 0
	}
	if p.MaxDelay < p.InitialDelay {
		p.MaxDelay = p.InitialDelay
	}
	if p.Multiplier < 1 {
		p.Multiplier = 1
	}
	if p.Jitter < 0 {
		p.Jitter = 0
	}
	if p.Jitter > 1 {
		p.Jitter = 1
	}
	return p
}

// Delay returns the backoff before the next attempt. attempt starts at 1
// for the first retry (the call following the initial failed attempt).
// Without jitter the result is monotonically non-decreasing up to MaxDelay.
func (p Policy) Delay(attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}
	p = p.Normalize()

	d := float64(p.InitialDelay) * math.Pow(p.Multiplier, float64(attempt-1))
	if maxD := float64(p.MaxDelay); d > maxD {
		d = maxD
	}

	if p.Jitter > 0 {
		// Uniform factor in [1-f, 1+f]; f <= 1 keeps it non-negative.
		factor := 1 + p.Jitter*(2*rand.Float64()-1)
		if factor < 0 {
			factor = 0
		}
		d *= factor
	}

	if d < 0 {
		d = 0
	}
	return time.Duration(d)
}

// ShouldRetry reports whether err is retryable under the policy's
// predicate. With a nil predicate every error is considered retryable;
// callers wanting finer classification supply their own predicate or
// check the error before consulting the policy.
func (p Policy) ShouldRetry(err error) bool {
	if err == nil {
		return false
	}
	if p.Predicate == nil {
		return true
	}
	return p.Predicate(err)
}
