package infra

import (
	"errors"
	"sync"
	"time"
)

// EstadoCircuito is the state of a CircuitBreaker.
type EstadoCircuito int

const (
	CircuitoCerrado EstadoCircuito = iota
	CircuitoAbierto
	CircuitoSemiAbierto
)

func (e EstadoCircuito) String() string {
	switch e {
	case CircuitoCerrado:
		return "cerrado"
	case CircuitoAbierto:
		return "abierto"
	case CircuitoSemiAbierto:
		return "semi-abierto"
	}
	return "desconocido"
}

// ErrCircuitoAbierto is returned without calling the guarded function while
// the breaker is open.
var ErrCircuitoAbierto = errors.New("circuit breaker abierto")

// CircuitBreaker guards calls to an unreliable dependency (the SMTP relay).
// After maxFallos consecutive failures it opens for espera; the first call
// after that is a probe that either closes it again or re-opens it.
type CircuitBreaker struct {
	mu        sync.Mutex
	estado    EstadoCircuito
	fallos    int
	abiertoEn time.Time
	maxFallos int
	espera    time.Duration
	ahora     func() time.Time
}

// NewCircuitBreaker creates a closed breaker. Non-positive arguments fall back
// to 5 failures and 1 minute.
func NewCircuitBreaker(maxFallos int, espera time.Duration) *CircuitBreaker {
	if maxFallos <= 0 {
		maxFallos = 5
	}
	if espera <= 0 {
		espera = time.Minute
	}
	return &CircuitBreaker{maxFallos: maxFallos, espera: espera, ahora: time.Now}
}

// Estado returns the current state, moving open → half-open once the wait elapsed.
func (cb *CircuitBreaker) Estado() EstadoCircuito {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.estadoLocked()
}

func (cb *CircuitBreaker) estadoLocked() EstadoCircuito {
	if cb.estado == CircuitoAbierto && cb.ahora().Sub(cb.abiertoEn) >= cb.espera {
		cb.estado = CircuitoSemiAbierto
	}
	return cb.estado
}

// Ejecutar runs fn unless the breaker is open.
func (cb *CircuitBreaker) Ejecutar(fn func() error) error {
	cb.mu.Lock()
	if cb.estadoLocked() == CircuitoAbierto {
		cb.mu.Unlock()
		return ErrCircuitoAbierto
	}
	cb.mu.Unlock()

	err := fn()

	cb.mu.Lock()
	defer cb.mu.Unlock()
	if err == nil {
		cb.estado = CircuitoCerrado
		cb.fallos = 0
		return nil
	}
	cb.fallos++
	if cb.estado == CircuitoSemiAbierto || cb.fallos >= cb.maxFallos {
		cb.estado = CircuitoAbierto
		cb.abiertoEn = cb.ahora()
		cb.fallos = 0
	}
	return err
}
