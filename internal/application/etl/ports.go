package etl

import (
	"context"

	"github.com/jhoicas/northwind-dwh/internal/domain/repository"
)

// SourceReader puerto de extracción: lee una tabla cruda de una fuente.
// Debe devolver domain.ErrSourceNotFound cuando el archivo no existe, para
// que el orquestador distinga tabla ausente de error de lectura.
type SourceReader interface {
	ReadTable(source, table string) ([]Record, error)
}

// TxRunner ejecuta la carga completa dentro de una única transacción:
// o confirma todas las tablas o no confirma ninguna.
type TxRunner interface {
	Run(ctx context.Context, fn func(w repository.WarehouseWriter) error) error
}
