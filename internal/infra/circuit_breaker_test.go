package infra

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCircuitBreaker_AbreTrasFallosConsecutivos(t *testing.T) {
	cb := NewCircuitBreaker(2, time.Minute)
	falla := func() error { return errors.New("smtp caido") }

	assert.Error(t, cb.Ejecutar(falla))
	assert.Equal(t, CircuitoCerrado, cb.Estado())
	assert.Error(t, cb.Ejecutar(falla))
	assert.Equal(t, CircuitoAbierto, cb.Estado())

	llamado := false
	err := cb.Ejecutar(func() error { llamado = true; return nil })
	assert.ErrorIs(t, err, ErrCircuitoAbierto)
	assert.False(t, llamado)
}

func TestCircuitBreaker_SondaCierraElCircuito(t *testing.T) {
	ahora := time.Now()
	cb := NewCircuitBreaker(1, time.Minute)
	cb.ahora = func() time.Time { return ahora }

	assert.Error(t, cb.Ejecutar(func() error { return errors.New("x") }))
	assert.Equal(t, CircuitoAbierto, cb.Estado())

	ahora = ahora.Add(2 * time.Minute)
	assert.Equal(t, CircuitoSemiAbierto, cb.Estado())
	assert.NoError(t, cb.Ejecutar(func() error { return nil }))
	assert.Equal(t, CircuitoCerrado, cb.Estado())
}

func TestCircuitBreaker_SondaFallidaReabre(t *testing.T) {
	ahora := time.Now()
	cb := NewCircuitBreaker(3, time.Minute)
	cb.ahora = func() time.Time { return ahora }
	for i := 0; i < 3; i++ {
		_ = cb.Ejecutar(func() error { return errors.New("x") })
	}
	ahora = ahora.Add(time.Minute)
	assert.Error(t, cb.Ejecutar(func() error { return errors.New("sigue caido") }))
	assert.Equal(t, CircuitoAbierto, cb.Estado())
}
