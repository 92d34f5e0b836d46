package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/northwind-dwh/internal/domain/repository"
)

var _ repository.SchemaManager = (*SchemaManager)(nil)

// SchemaManager crea el esquema en estrella si no existe: cuatro dimensiones
// y dos tablas de hechos con FKs hacia ellas. Idempotente (IF NOT EXISTS);
// no hay tooling de migraciones porque el warehouse se reconstruye entero en
// cada corrida.
type SchemaManager struct {
	pool *pgxpool.Pool
}

// NewSchemaManager construye el administrador de esquema.
func NewSchemaManager(pool *pgxpool.Pool) *SchemaManager {
	return &SchemaManager{pool: pool}
}

const schemaDDL = `
CREATE TABLE IF NOT EXISTS dim_product (
    product_id    BIGINT PRIMARY KEY,
    product_code  VARCHAR(50),
    product_name  VARCHAR(100),
    category      VARCHAR(50),
    standard_cost NUMERIC(18,4),
    list_price    NUMERIC(18,4),
    reorder_level BIGINT
);

CREATE TABLE IF NOT EXISTS dim_customer (
    customer_id    BIGINT PRIMARY KEY,
    company        VARCHAR(50),
    first_name     VARCHAR(50),
    last_name      VARCHAR(50),
    city           VARCHAR(50),
    country_region VARCHAR(50)
);

CREATE TABLE IF NOT EXISTS dim_supplier (
    supplier_id    BIGINT PRIMARY KEY,
    company        VARCHAR(50),
    first_name     VARCHAR(50),
    last_name      VARCHAR(50),
    city           VARCHAR(50),
    country_region VARCHAR(50)
);

CREATE TABLE IF NOT EXISTS dim_employee (
    employee_id BIGINT PRIMARY KEY,
    company     VARCHAR(50),
    first_name  VARCHAR(50),
    last_name   VARCHAR(50),
    job_title   VARCHAR(50)
);

CREATE TABLE IF NOT EXISTS fact_sales (
    sales_key     BIGSERIAL PRIMARY KEY,
    order_date    TIMESTAMP NOT NULL,
    customer_key  BIGINT REFERENCES dim_customer(customer_id),
    employee_key  BIGINT REFERENCES dim_employee(employee_id),
    product_key   BIGINT REFERENCES dim_product(product_id),
    quantity      BIGINT NOT NULL,
    unit_price    NUMERIC(18,4) NOT NULL,
    discount      DOUBLE PRECISION NOT NULL,
    tax_rate      DOUBLE PRECISION NOT NULL,
    total_revenue NUMERIC(18,4) NOT NULL,
    freight_cost  NUMERIC(18,4),
    order_status  VARCHAR(50)
);

CREATE TABLE IF NOT EXISTS fact_purchases (
    purchase_key        BIGSERIAL PRIMARY KEY,
    creation_date       TIMESTAMP NOT NULL,
    supplier_key        BIGINT REFERENCES dim_supplier(supplier_id),
    employee_key        BIGINT REFERENCES dim_employee(employee_id),
    product_key         BIGINT REFERENCES dim_product(product_id),
    quantity            BIGINT NOT NULL,
    unit_cost           NUMERIC(18,4) NOT NULL,
    total_purchase_cost NUMERIC(18,4) NOT NULL
);
`

// EnsureSchema crea las seis tablas del esquema si faltan.
func (m *SchemaManager) EnsureSchema(ctx context.Context) error {
	if _, err := m.pool.Exec(ctx, schemaDDL); err != nil {
		return fmt.Errorf("crear esquema en estrella: %w", err)
	}
	return nil
}
