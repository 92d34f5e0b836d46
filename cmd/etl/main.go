// Comando etl: corrida batch del pipeline CSV -> esquema en estrella.
//
// Lee los CSV de ambas fuentes, transforma en memoria, valida integridad
// referencial y recarga el warehouse dentro de una única transacción.
// Cualquier error es fatal: el proceso termina con código distinto de cero
// y el warehouse conserva la carga anterior.
package main

import (
	"context"
	"os"

	"github.com/jhoicas/northwind-dwh/internal/application/etl"
	"github.com/jhoicas/northwind-dwh/internal/infrastructure/csvsource"
	"github.com/jhoicas/northwind-dwh/internal/infrastructure/postgres"
	"github.com/jhoicas/northwind-dwh/pkg/config"
	"github.com/jhoicas/northwind-dwh/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("northwind", cfg.Sources.NorthwindPath).
		Str("sqlserver", cfg.Sources.SQLServerPath).
		Msg("iniciando corrida de ETL")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	reader := csvsource.NewReader(cfg.Sources.NorthwindPath, cfg.Sources.SQLServerPath, log.Zerolog())
	schemaMgr := postgres.NewSchemaManager(pool)
	txRunner := postgres.NewTxRunner(pool)

	runUC := etl.NewRunUseCase(reader, schemaMgr, txRunner, log.Zerolog())

	summary, err := runUC.Execute(ctx)
	if err != nil {
		log.Error().Err(err).Msg("corrida de ETL fallida, el warehouse conserva la carga anterior")
		pool.Close()
		os.Exit(1)
	}

	var rejected int64
	for _, n := range summary.RejectedRows {
		rejected += n
	}

	log.Info().
		Str("run_id", summary.RunID).
		Int64("dim_product", summary.Loaded.Products).
		Int64("dim_customer", summary.Loaded.Customers).
		Int64("dim_employee", summary.Loaded.Employees).
		Int64("dim_supplier", summary.Loaded.Suppliers).
		Int64("fact_sales", summary.Loaded.Sales).
		Int64("fact_purchases", summary.Loaded.Purchases).
		Int64("rejected_rows", rejected).
		Int64("dropped_facts", summary.DroppedFacts).
		Int64("placeholder_employees", summary.PlaceholderEmployees).
		Int64("duration_ms", summary.DurationMS).
		Msg("corrida de ETL completada")
}
