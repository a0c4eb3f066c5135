package infra

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCircuitBreakerAbreEFecha(t *testing.T) {
	agora := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 2, SuccessThreshold: 1, OpenTimeout: time.Minute})
	cb.now = func() time.Time { return agora }

	falha := errors.New("redis fora")
	chamadas := 0
	falhar := func() error { chamadas++; return falha }
	ok := func() error { chamadas++; return nil }

	assert.ErrorIs(t, cb.Execute(falhar), falha)
	assert.Equal(t, CBClosed, cb.State())
	assert.ErrorIs(t, cb.Execute(falhar), falha)
	assert.Equal(t, CBOpen, cb.State())

	assert.ErrorIs(t, cb.Execute(ok), ErrCircuitOpen)
	assert.Equal(t, 2, chamadas)

	agora = agora.Add(time.Minute)
	assert.Equal(t, CBHalfOpen, cb.State())
	assert.NoError(t, cb.Execute(ok))
	assert.Equal(t, CBClosed, cb.State())
}

func TestCircuitBreakerSondaFalhaReabre(t *testing.T) {
	agora := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 1, OpenTimeout: time.Second})
	cb.now = func() time.Time { return agora }

	_ = cb.Execute(func() error { return errors.New("x") })
	agora = agora.Add(2 * time.Second)
	_ = cb.Execute(func() error { return errors.New("x") })

	assert.Equal(t, CBOpen, cb.State())
	assert.Equal(t, "open", cb.State().String())
}
