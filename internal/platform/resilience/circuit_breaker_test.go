package resilience

import (
	"testing"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCircuitBreaker_BasicTransitions(t *testing.T) {
	b := NewCircuitBreaker("bucket", CircuitBreakerConfig{
		FailureThreshold: 2,
		OpenTimeout:      5 * time.Second,
		HalfOpenMaxReq:   1,
	})

	now := time.Date(2026, 2, 11, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }

	require.NoError(t, b.Allow())

	b.RecordFailure()
	assert.Equal(t, CircuitStateClosed, b.State())

	b.RecordFailure()
	assert.Equal(t, CircuitStateOpen, b.State())
	assert.ErrorIs(t, b.Allow(), ErrCircuitOpen)

	now = now.Add(6 * time.Second)
	require.NoError(t, b.Allow())
	assert.Equal(t, CircuitStateHalfOpen, b.State())

	b.RecordSuccess()
	assert.Equal(t, CircuitStateClosed, b.State())
}

func TestCircuitBreaker_ExecuteIgnoresExpectedErrors(t *testing.T) {
	b := NewCircuitBreaker("bucket", CircuitBreakerConfig{FailureThreshold: 1})
	notFound := crerr.New("not found")
	isNotFound := func(err error) bool { return crerr.Is(err, notFound) }

	err := b.Execute(func() error { return notFound }, isNotFound)
	assert.ErrorIs(t, err, notFound)
	assert.Equal(t, CircuitStateClosed, b.State())

	err = b.Execute(func() error { return crerr.New("boom") }, isNotFound)
	require.Error(t, err)
	assert.Equal(t, CircuitStateOpen, b.State())

	called := false
	err = b.Execute(func() error { called = true; return nil }, isNotFound)
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, called)
}

func TestCircuitBreakerConfig_Defaults(t *testing.T) {
	cfg := CircuitBreakerConfig{}.withDefaults()
	assert.Equal(t, 3, cfg.FailureThreshold)
	assert.Equal(t, 30*time.Second, cfg.OpenTimeout)
	assert.Equal(t, 1, cfg.HalfOpenMaxReq)

	kept := CircuitBreakerConfig{FailureThreshold: 7, OpenTimeout: time.Second, HalfOpenMaxReq: 2}.withDefaults()
	assert.Equal(t, 7, kept.FailureThreshold)
	assert.Equal(t, time.Second, kept.OpenTimeout)
	assert.Equal(t, 2, kept.HalfOpenMaxReq)
}
