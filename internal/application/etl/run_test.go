package etl

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/northwind-dwh/internal/domain"
	"github.com/jhoicas/northwind-dwh/internal/domain/entity"
	"github.com/jhoicas/northwind-dwh/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes de los puertos del orquestador
// ──────────────────────────────────────────────────────────────────────────────

// fakeSource sirve tablas desde memoria; las no declaradas responden como
// archivo ausente.
type fakeSource struct {
	tables map[string]map[string][]Record // fuente -> tabla -> filas
	errs   map[string]error               // "fuente/tabla" -> error forzado
}

func (f *fakeSource) ReadTable(source, table string) ([]Record, error) {
	if err, ok := f.errs[source+"/"+table]; ok {
		return nil, err
	}
	rows, ok := f.tables[source][table]
	if !ok {
		return nil, domain.ErrSourceNotFound
	}
	return rows, nil
}

type fakeSchemaManager struct {
	calls int
	err   error
}

func (f *fakeSchemaManager) EnsureSchema(_ context.Context) error {
	f.calls++
	return f.err
}

// fakeWarehouse acumula lo escrito y registra el orden de las operaciones.
// El "commit" lo simula el fakeTxRunner: en error se descarta lo acumulado.
type fakeWarehouse struct {
	truncated bool
	ops       []string
	schema    entity.StarSchema
	failOn    string
}

func (f *fakeWarehouse) op(name string) error {
	f.ops = append(f.ops, name)
	if f.failOn == name {
		return errors.New("fallo inyectado en " + name)
	}
	return nil
}

func (f *fakeWarehouse) TruncateAll(_ context.Context) error {
	f.truncated = true
	return f.op("truncate")
}

func (f *fakeWarehouse) InsertProducts(_ context.Context, rows []entity.DimProduct) (int64, error) {
	f.schema.Products = rows
	return int64(len(rows)), f.op("products")
}

func (f *fakeWarehouse) InsertCustomers(_ context.Context, rows []entity.DimCustomer) (int64, error) {
	f.schema.Customers = rows
	return int64(len(rows)), f.op("customers")
}

func (f *fakeWarehouse) InsertEmployees(_ context.Context, rows []entity.DimEmployee) (int64, error) {
	f.schema.Employees = rows
	return int64(len(rows)), f.op("employees")
}

func (f *fakeWarehouse) InsertSuppliers(_ context.Context, rows []entity.DimSupplier) (int64, error) {
	f.schema.Suppliers = rows
	return int64(len(rows)), f.op("suppliers")
}

func (f *fakeWarehouse) InsertSales(_ context.Context, rows []entity.SalesFact) (int64, error) {
	f.schema.Sales = rows
	return int64(len(rows)), f.op("sales")
}

func (f *fakeWarehouse) InsertPurchases(_ context.Context, rows []entity.PurchasesFact) (int64, error) {
	f.schema.Purchases = rows
	return int64(len(rows)), f.op("purchases")
}

type fakeTxRunner struct {
	w         *fakeWarehouse
	committed bool
}

func (f *fakeTxRunner) Run(_ context.Context, fn func(w repository.WarehouseWriter) error) error {
	if err := fn(f.w); err != nil {
		f.w.schema = entity.StarSchema{} // rollback
		return err
	}
	f.committed = true
	return nil
}

func fullSourceTables() map[string]map[string][]Record {
	return map[string]map[string][]Record{
		SourceNorthwind: {
			TableProducts:  {{"ID": "34", "Product Name": "Cerveza", "Category": "Beverages"}},
			TableCustomers: {{"ID": "27", "Company": "Compañía AA"}},
			TableEmployees: {{"ID": "9", "First Name": "Nancy"}},
			TableSuppliers: {{"ID": "2", "Company": "Proveedor B"}},
			TableOrders: {
				{"Order ID": "30", "Order Date": "2006-01-15", "Customer ID": "27",
					"Employee ID": "9", "Shipping Fee": "550.00", "Status ID": "3"},
			},
			TableOrdersStatus: {{"ID": "3", "Status Name": "Shipped"}},
			TableOrderDetails: {
				{"Order ID": "30", "Product ID": "34", "Quantity": "100", "Unit Price": "14.00", "Discount": "0"},
			},
			TablePurchaseOrders: {
				{"ID": "100", "Creation Date": "2006-01-22", "Supplier ID": "2", "Created By": "9"},
			},
			TablePurchaseDetails: {
				{"Purchase Order ID": "100", "Product ID": "34", "Quantity": "60", "Unit Cost": "10.50"},
			},
		},
		SourceSQLServer: {},
	}
}

func newTestRun(src *fakeSource) (*RunUseCase, *fakeSchemaManager, *fakeTxRunner) {
	schemaMgr := &fakeSchemaManager{}
	tx := &fakeTxRunner{w: &fakeWarehouse{}}
	uc := NewRunUseCase(src, schemaMgr, tx, zerolog.Nop())
	return uc, schemaMgr, tx
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestRun_CorridaCompleta(t *testing.T) {
	uc, schemaMgr, tx := newTestRun(&fakeSource{tables: fullSourceTables()})

	summary, err := uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, schemaMgr.calls, "el esquema se prepara una vez por corrida")
	assert.True(t, tx.committed)
	assert.True(t, tx.w.truncated, "recarga completa: truncar antes de insertar")

	assert.Equal(t, int64(1), summary.Loaded.Products)
	assert.Equal(t, int64(1), summary.Loaded.Sales)
	assert.Equal(t, int64(1), summary.Loaded.Purchases)
	assert.NotEmpty(t, summary.RunID)
	assert.Zero(t, summary.DroppedFacts)

	// Dimensiones antes que hechos dentro de la transacción.
	assert.Equal(t,
		[]string{"truncate", "products", "customers", "employees", "suppliers", "sales", "purchases"},
		tx.w.ops)
}

// Dos corridas sobre el mismo input dejan el warehouse idéntico.
func TestRun_Idempotente(t *testing.T) {
	src := &fakeSource{tables: fullSourceTables()}

	uc1, _, tx1 := newTestRun(src)
	_, err := uc1.Execute(context.Background())
	require.NoError(t, err)

	uc2, _, tx2 := newTestRun(src)
	_, err = uc2.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, tx1.w.schema, tx2.w.schema,
		"la recarga truncate-and-reload debe ser idempotente")
}

func TestRun_TablaAusenteNoEsFatal(t *testing.T) {
	tables := fullSourceTables()
	delete(tables[SourceNorthwind], TablePurchaseOrders)
	delete(tables[SourceNorthwind], TablePurchaseDetails)

	uc, _, tx := newTestRun(&fakeSource{tables: tables})

	summary, err := uc.Execute(context.Background())
	require.NoError(t, err, "un CSV ausente se omite con warning")
	assert.True(t, tx.committed)
	assert.Zero(t, summary.Loaded.Purchases)
	assert.Equal(t, int64(1), summary.Loaded.Sales)
}

func TestRun_ErrorDeLecturaEsFatal(t *testing.T) {
	src := &fakeSource{
		tables: fullSourceTables(),
		errs:   map[string]error{SourceNorthwind + "/" + TableOrders: errors.New("disco corrupto")},
	}
	uc, _, tx := newTestRun(src)

	_, err := uc.Execute(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "extracción")
	assert.False(t, tx.committed, "nada se carga si la extracción falla")
}

func TestRun_SinDatosEsFatal(t *testing.T) {
	uc, _, tx := newTestRun(&fakeSource{tables: map[string]map[string][]Record{
		SourceNorthwind: {},
		SourceSQLServer: {},
	}})

	_, err := uc.Execute(context.Background())
	require.ErrorIs(t, err, domain.ErrNothingToLoad)
	assert.False(t, tx.committed)
}

func TestRun_FalloEnCargaRevierteTodo(t *testing.T) {
	uc, _, tx := newTestRun(&fakeSource{tables: fullSourceTables()})
	tx.w.failOn = "sales"

	_, err := uc.Execute(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "carga")
	assert.False(t, tx.committed)
	assert.Equal(t, entity.StarSchema{}, tx.w.schema,
		"la transacción revierte: no queda carga parcial")
}

func TestRun_EmpleadoHuerfanoReportado(t *testing.T) {
	tables := fullSourceTables()
	// El pedido referencia un empleado que no existe en la dimensión.
	tables[SourceNorthwind][TableOrders][0]["Employee ID"] = "555"

	uc, _, tx := newTestRun(&fakeSource{tables: tables})

	summary, err := uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(1), summary.PlaceholderEmployees)
	assert.Equal(t, int64(2), summary.Loaded.Employees, "el placeholder también se carga")
	assert.True(t, tx.committed)
}
