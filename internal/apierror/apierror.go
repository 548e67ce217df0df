// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

import (
	"errors"
	"net/http"
)

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func New(msg string) *APIError {
	return &APIError{Error: msg}
}

// ValidationError wraps multiple field errors.
type ValidationError struct {
	Success bool              `json:"success"`
	Error   string            `json:"error"`
	Campos  map[string]string `json:"campos"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Error: "Error de validacion", Campos: fields}
}

// ── Taxonomía de errores de dominio ──────────────────────────────────────────

// Kind classifies a domain error; handlers translate it into an HTTP status.
type Kind int

const (
	KindValidacion Kind = iota + 1
	KindNoAutenticado
	KindProhibido
	KindNoEncontrado
	KindConflicto
	KindLoteExcedido
)

// Error is a domain error whose message is safe to show to clients.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func Validacion(msg string) error    { return &Error{Kind: KindValidacion, Msg: msg} }
func NoAutenticado(msg string) error { return &Error{Kind: KindNoAutenticado, Msg: msg} }
func Prohibido(msg string) error     { return &Error{Kind: KindProhibido, Msg: msg} }
func NoEncontrado(msg string) error  { return &Error{Kind: KindNoEncontrado, Msg: msg} }
func Conflicto(msg string) error     { return &Error{Kind: KindConflicto, Msg: msg} }
func LoteExcedido(msg string) error  { return &Error{Kind: KindLoteExcedido, Msg: msg} }

// Is reports whether err is a domain error of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// Status maps err to an HTTP status. ok is false for errors outside the
// taxonomy, which must be treated as internal failures.
func Status(err error) (status int, ok bool) {
	var e *Error
	if !errors.As(err, &e) {
		return http.StatusInternalServerError, false
	}
	switch e.Kind {
	case KindNoAutenticado:
		return http.StatusUnauthorized, true
	case KindProhibido:
		return http.StatusForbidden, true
	case KindNoEncontrado:
		return http.StatusNotFound, true
	default:
		// Validacion, Conflicto and LoteExcedido all surface as 400.
		return http.StatusBadRequest, true
	}
}
