package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrSelfParent         = errors.New("una categoría no puede ser su propio padre")
	ErrMalformedReference = errors.New("identificador con formato inválido")
	ErrCycleDetected      = errors.New("ciclo detectado en la jerarquía")
)
