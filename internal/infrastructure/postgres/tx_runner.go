package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/northwind-dwh/internal/application/etl"
	"github.com/jhoicas/northwind-dwh/internal/domain/repository"
)

var _ etl.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta la carga del warehouse dentro de una transacción
// PostgreSQL: la corrida reemplaza el contenido entero o no toca nada
// (contrato de carga todo-o-nada del ETL).
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con un escritor atado a la tx y hace
// Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(w repository.WarehouseWriter) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewWarehouseRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
