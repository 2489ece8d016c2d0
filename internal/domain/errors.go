package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrInvalidState      = errors.New("operación no válida en el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
	// ErrConcurrencyConflict: el chequeo de stock pasó sin bloqueo pero la
	// revalidación dentro de la transacción lo contradijo (carrera perdida).
	ErrConcurrencyConflict = errors.New("conflicto de concurrencia, reintente")
	ErrUnauthorized        = errors.New("no autorizado")
	ErrForbidden           = errors.New("acceso denegado")
	ErrDuplicate           = errors.New("recurso duplicado")
)
