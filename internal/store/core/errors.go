package core

import "errors"

var (
	// ErrNotFound indica que el registro solicitado no existe.
	ErrNotFound = errors.New("not found")

	// ErrConflict indica un duplicado (mismo fingerprint ya registrado).
	ErrConflict = errors.New("conflict")

	// ErrInvalid indica datos de entrada inválidos para el store.
	ErrInvalid = errors.New("invalid")
)

// IsNotFound verifica si el error es ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConflict verifica si el error es ErrConflict.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}
