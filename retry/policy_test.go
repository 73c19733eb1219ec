package retry

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefault(t *testing.T) {
	p := Default()

	assert.Equal(t, 3, p.MaxAttempts)
	assert.Equal(t, 500*time.Millisecond, p.InitialDelay)
	assert.Equal(t, 8*time.Second, p.MaxDelay)
	assert.InDelta(t, 2.0, p.Multiplier, 0.001)
	assert.InDelta(t, 0.2, p.Jitter, 0.001)
	assert.Nil(t, p.Predicate)
}

func TestNone(t *testing.T) {
	p := None()

	assert.Equal(t, 1, p.MaxAttempts)
	assert.Zero(t, p.Delay(1))
}

func TestDelayExponentialGrowthWithCap(t *testing.T) {
	p := Policy{
		MaxAttempts:  5,
		InitialDelay: 1 * time.Second,
		MaxDelay:     2 * time.Second,
		Multiplier:   2,
	}

	assert.Equal(t, 1*time.Second, p.Delay(1))
	assert.Equal(t, 2*time.Second, p.Delay(2))
	assert.Equal(t, 2*time.Second, p.Delay(3), "delay must stay capped")
}

func TestDelayMonotoneWithoutJitter(t *testing.T) {
	p := Policy{
		MaxAttempts:  10,
		InitialDelay: 100 * time.Millisecond,
		MaxDelay:     5 * time.Second,
		Multiplier:   1.7,
	}

	prev := time.Duration(0)
	for attempt := 1; attempt <= 10; attempt++ {
		d := p.Delay(attempt)
		assert.GreaterOrEqual(t, d, prev, "attempt %d", attempt)
		assert.LessOrEqual(t, d, 5*time.Second)
		prev = d
	}
}

func TestDelayJitterBounds(t *testing.T) {
	p := Policy{
		MaxAttempts:  3,
		InitialDelay: 1 * time.Second,
		MaxDelay:     10 * time.Second,
		Multiplier:   1,
		Jitter:       0.5,
	}

	lo := 500 * time.Millisecond
	hi := 1500 * time.Millisecond
	for i := 0; i < 200; i++ {
		d := p.Delay(1)
		assert.GreaterOrEqual(t, d, lo)
		assert.LessOrEqual(t, d, hi)
	}
}

func TestDelayZeroAttempt(t *testing.T) {
	p := Default()

	assert.Zero(t, p.Delay(0))
	assert.Zero(t, p.Delay(-3))
}

func TestDelayLargeAttemptStaysCapped(t *testing.T) {
	p := Policy{
		MaxAttempts:  100,
		InitialDelay: 1 * time.Second,
		MaxDelay:     4 * time.Second,
		Multiplier:   2,
	}

	// Multiplier^(attempt-1) overflows float range well before this;
	// the cap must still hold.
	assert.Equal(t, 4*time.Second, p.Delay(500))
}

func TestNormalize(t *testing.T) {
	p := Policy{
		MaxAttempts:  0,
		InitialDelay: -1 * time.Second,
		MaxDelay:     -5 * time.Second,
		Multiplier:   0.3,
		Jitter:       2.5,
	}

	n := p.Normalize()
	assert.Equal(t, 1, n.MaxAttempts)
	assert.Equal(t, time.Duration(0), n.InitialDelay)
	assert.Equal(t, time.Duration(0), n.MaxDelay)
	assert.InDelta(t, 1.0, n.Multiplier, 0.001)
	assert.InDelta(t, 1.0, n.Jitter, 0.001)
}

func TestNormalizeRaisesMaxDelayToInitial(t *testing.T) {
	p := Policy{
		MaxAttempts:  2,
		InitialDelay: 3 * time.Second,
		MaxDelay:     1 * time.Second,
		Multiplier:   2,
	}

	n := p.Normalize()
	assert.Equal(t, 3*time.Second, n.MaxDelay)
}

func TestShouldRetry(t *testing.T) {
	errBoom := errors.New("boom")

	t.Run("nil error never retries", func(t *testing.T) {
		assert.False(t, Default().ShouldRetry(nil))
	})

	t.Run("nil predicate retries any error", func(t *testing.T) {
		assert.True(t, Default().ShouldRetry(errBoom))
	})

	t.Run("custom predicate wins", func(t *testing.T) {
		p := Default()
		p.Predicate = func(err error) bool { return false }
		assert.False(t, p.ShouldRetry(errBoom))
	})
}
