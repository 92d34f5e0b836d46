package etl

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/northwind-dwh/internal/application/dto"
	"github.com/jhoicas/northwind-dwh/internal/domain"
	"github.com/jhoicas/northwind-dwh/internal/domain/repository"
)

// Tablas esperadas por fuente. Un archivo ausente no es fatal (la fuente
// puede exportar menos tablas); que no quede nada que cargar sí lo es.
var (
	northwindTables = []string{
		TableProducts, TableCustomers, TableEmployees, TableSuppliers,
		TableOrders, TableOrderDetails, TableOrdersStatus,
		TablePurchaseOrders, TablePurchaseDetails,
	}
	sqlserverTables = []string{
		TableProducts, TableCategories, TableCustomers, TableEmployees,
		TableSuppliers, TableOrders, TableOrderDetails,
	}
)

// RunUseCase orquesta una corrida completa del ETL: extracción de ambas
// fuentes, transformación pura, validación de integridad y carga transaccional.
// Ejecución secuencial y mono-hilo; cualquier error aborta la corrida (sin
// reintentos ni éxito parcial).
type RunUseCase struct {
	source SourceReader
	schema repository.SchemaManager
	tx     TxRunner
	log    zerolog.Logger
}

// NewRunUseCase construye el caso de uso con sus puertos.
func NewRunUseCase(source SourceReader, schema repository.SchemaManager, tx TxRunner, log zerolog.Logger) *RunUseCase {
	return &RunUseCase{source: source, schema: schema, tx: tx, log: log}
}

// Execute corre el ETL de punta a punta y devuelve el resumen de la corrida.
func (uc *RunUseCase) Execute(ctx context.Context) (*dto.RunSummaryDTO, error) {
	runID := uuid.NewString()
	started := time.Now()
	log := uc.log.With().Str("run_id", runID).Logger()

	log.Info().Msg("iniciando corrida ETL")

	// ── Extract ──────────────────────────────────────────────────────────────
	sources, err := uc.extract(log)
	if err != nil {
		return nil, fmt.Errorf("extracción: %w", err)
	}

	// ── Transform ────────────────────────────────────────────────────────────
	result := Transform(sources)
	if result.Schema.IsEmpty() {
		return nil, domain.ErrNothingToLoad
	}
	for stage, n := range result.Rejects {
		log.Warn().Str("etapa", stage).Int64("filas", n).Msg("filas de origen descartadas")
	}

	// ── Validate ─────────────────────────────────────────────────────────────
	report := ValidateIntegrity(result.Schema)
	if report.PlaceholderEmployees > 0 {
		log.Warn().Int64("placeholders", report.PlaceholderEmployees).
			Msg("empleados huérfanos reemplazados por filas placeholder")
	}
	if n := report.DroppedSales + report.DroppedPurchases; n > 0 {
		log.Warn().Int64("filas", n).Msg("hechos con claves huérfanas descartados")
	}

	// ── Load ─────────────────────────────────────────────────────────────────
	if err := uc.schema.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("preparar esquema: %w", err)
	}

	var counts repository.LoadCounts
	err = uc.tx.Run(ctx, func(w repository.WarehouseWriter) error {
		if err := w.TruncateAll(ctx); err != nil {
			return err
		}
		s := result.Schema
		var err error
		if counts.Products, err = w.InsertProducts(ctx, s.Products); err != nil {
			return err
		}
		if counts.Customers, err = w.InsertCustomers(ctx, s.Customers); err != nil {
			return err
		}
		if counts.Employees, err = w.InsertEmployees(ctx, s.Employees); err != nil {
			return err
		}
		if counts.Suppliers, err = w.InsertSuppliers(ctx, s.Suppliers); err != nil {
			return err
		}
		if counts.Sales, err = w.InsertSales(ctx, s.Sales); err != nil {
			return err
		}
		if counts.Purchases, err = w.InsertPurchases(ctx, s.Purchases); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("carga: %w", err)
	}

	finished := time.Now()
	log.Info().
		Int64("filas_totales", counts.Total()).
		Dur("duracion", finished.Sub(started)).
		Msg("corrida ETL completada")

	return &dto.RunSummaryDTO{
		RunID:      runID,
		StartedAt:  started,
		FinishedAt: finished,
		DurationMS: finished.Sub(started).Milliseconds(),
		Loaded: dto.LoadedCountsDTO{
			Products:  counts.Products,
			Customers: counts.Customers,
			Employees: counts.Employees,
			Suppliers: counts.Suppliers,
			Sales:     counts.Sales,
			Purchases: counts.Purchases,
		},
		RejectedRows:         result.Rejects,
		DroppedFacts:         report.DroppedSales + report.DroppedPurchases,
		PlaceholderEmployees: report.PlaceholderEmployees,
	}, nil
}

// extract lee todas las tablas esperadas de ambas fuentes. Un archivo
// inexistente deja la tabla ausente (warn); cualquier otro error es fatal.
func (uc *RunUseCase) extract(log zerolog.Logger) (*Sources, error) {
	src := &Sources{
		Northwind: make(map[string][]Record, len(northwindTables)),
		SQLServer: make(map[string][]Record, len(sqlserverTables)),
	}
	read := func(source string, tables []string, dst map[string][]Record) error {
		for _, table := range tables {
			rows, err := uc.source.ReadTable(source, table)
			if err != nil {
				if errors.Is(err, domain.ErrSourceNotFound) {
					log.Warn().Str("fuente", source).Str("tabla", table).
						Msg("tabla de origen ausente, se omite")
					continue
				}
				return fmt.Errorf("leer %s/%s: %w", source, table, err)
			}
			log.Info().Str("fuente", source).Str("tabla", table).
				Int("filas", len(rows)).Msg("tabla extraída")
			dst[table] = rows
		}
		return nil
	}
	if err := read(SourceNorthwind, northwindTables, src.Northwind); err != nil {
		return nil, err
	}
	if err := read(SourceSQLServer, sqlserverTables, src.SQLServer); err != nil {
		return nil, err
	}
	return src, nil
}
