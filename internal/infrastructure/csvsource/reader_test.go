package csvsource_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/northwind-dwh/internal/application/etl"
	"github.com/jhoicas/northwind-dwh/internal/domain"
	"github.com/jhoicas/northwind-dwh/internal/infrastructure/csvsource"
)

// writeCSV escribe los bytes tal cual (los fixtures latin1 no son UTF-8 válidos).
func writeCSV(t *testing.T, dir, name string, content []byte) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name+".csv"), content, 0o644))
}

func newTestReader(t *testing.T) (*csvsource.Reader, string) {
	t.Helper()
	dir := t.TempDir()
	return csvsource.NewReader(dir, dir, zerolog.Nop()), dir
}

func TestReadTable_FilasMapeadasPorEncabezado(t *testing.T) {
	r, dir := newTestReader(t)
	writeCSV(t, dir, "Products", []byte("ID,Product Name,List Price\n1,Chai,18.00\n2,Chang,19.00\n"))

	rows, err := r.ReadTable(etl.SourceNorthwind, "Products")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "1", rows[0]["ID"])
	assert.Equal(t, "Chai", rows[0]["Product Name"])
	assert.Equal(t, "19.00", rows[1]["List Price"])
}

func TestReadTable_DecodificaLatin1(t *testing.T) {
	r, dir := newTestReader(t)
	// "Año" y "Müller" en ISO-8859-1: ñ = 0xF1, ü = 0xFC.
	writeCSV(t, dir, "Customers", []byte{
		'I', 'D', ',', 'C', 'o', 'm', 'p', 'a', 'n', 'y', '\n',
		'1', ',', 'A', 0xF1, 'o', ' ', 'M', 0xFC, 'l', 'l', 'e', 'r', '\n',
	})

	rows, err := r.ReadTable(etl.SourceNorthwind, "Customers")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Año Müller", rows[0]["Company"])
}

func TestReadTable_SaltaColumnaIndice(t *testing.T) {
	r, dir := newTestReader(t)
	// Primera columna sin nombre: índice de pandas.
	writeCSV(t, dir, "Orders", []byte(",Order ID,Customer ID\n0,30,27\n1,31,4\n"))

	rows, err := r.ReadTable(etl.SourceSQLServer, "Orders")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "30", rows[0]["Order ID"])
	assert.NotContains(t, rows[0], "", "la columna índice no debe aparecer en el registro")
}

func TestReadTable_SaltaColumnaUnnamed(t *testing.T) {
	r, dir := newTestReader(t)
	writeCSV(t, dir, "Orders", []byte("Unnamed: 0,Order ID\n0,30\n"))

	rows, err := r.ReadTable(etl.SourceNorthwind, "Orders")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "30", rows[0]["Order ID"])
}

func TestReadTable_DescartaFilaMalformada(t *testing.T) {
	r, dir := newTestReader(t)
	writeCSV(t, dir, "Products", []byte("ID,Product Name\n1,Chai\n2,Chang,extra,campos\n3,Syrup\n"))

	rows, err := r.ReadTable(etl.SourceNorthwind, "Products")
	require.NoError(t, err, "una fila malformada se descarta, no aborta la tabla")
	require.Len(t, rows, 2)
	assert.Equal(t, "Chai", rows[0]["Product Name"])
	assert.Equal(t, "Syrup", rows[1]["Product Name"])
}

func TestReadTable_ArchivoInexistente(t *testing.T) {
	r, _ := newTestReader(t)

	_, err := r.ReadTable(etl.SourceNorthwind, "No Existe")
	require.ErrorIs(t, err, domain.ErrSourceNotFound)
}

func TestReadTable_ArchivoVacio(t *testing.T) {
	r, dir := newTestReader(t)
	writeCSV(t, dir, "Products", []byte(""))

	_, err := r.ReadTable(etl.SourceNorthwind, "Products")
	require.ErrorIs(t, err, domain.ErrTableEmpty)
}

func TestReadTable_FuenteDesconocida(t *testing.T) {
	r, _ := newTestReader(t)

	_, err := r.ReadTable("oracle", "Products")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fuente desconocida")
}
