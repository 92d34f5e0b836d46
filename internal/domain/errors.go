package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrSourceNotFound = errors.New("archivo de origen no encontrado")
	ErrTableEmpty     = errors.New("tabla de origen vacía")
	ErrMissingColumn  = errors.New("columna requerida ausente")
	ErrMalformedRow   = errors.New("fila de origen malformada")
	ErrNothingToLoad  = errors.New("no hay datos transformados para cargar")
	ErrDuplicate      = errors.New("recurso duplicado")
	ErrIntegrity      = errors.New("violación de integridad referencial")
)
