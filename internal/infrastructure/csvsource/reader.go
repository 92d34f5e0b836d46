// Package csvsource implementa el puerto de extracción sobre exportes CSV.
// Cada tabla es un archivo `<tabla>.csv` dentro del directorio de su fuente.
// Los exportes vienen en ISO-8859-1 (Access/SQL Server con acentos), por eso
// la lectura pasa por el decoder de charmap antes del parser CSV.
package csvsource

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/northwind-dwh/internal/application/etl"
	"github.com/jhoicas/northwind-dwh/internal/domain"
)

// Reader lee tablas CSV de los directorios de ambas fuentes.
type Reader struct {
	northwindPath string
	sqlserverPath string
	log           zerolog.Logger
}

var _ etl.SourceReader = (*Reader)(nil)

// NewReader construye el extractor con las rutas de cada fuente.
func NewReader(northwindPath, sqlserverPath string, log zerolog.Logger) *Reader {
	return &Reader{northwindPath: northwindPath, sqlserverPath: sqlserverPath, log: log}
}

// ReadTable lee `<dir fuente>/<tabla>.csv` y devuelve sus filas mapeadas por
// encabezado. Archivo inexistente → domain.ErrSourceNotFound. Filas con un
// número de campos distinto al encabezado se descartan con un warn, nunca se
// cargan corruptas.
func (r *Reader) ReadTable(source, table string) ([]etl.Record, error) {
	var base string
	switch source {
	case etl.SourceNorthwind:
		base = r.northwindPath
	case etl.SourceSQLServer:
		base = r.sqlserverPath
	default:
		return nil, fmt.Errorf("fuente desconocida: %q", source)
	}

	path := filepath.Join(base, table+".csv")
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, domain.ErrSourceNotFound)
		}
		return nil, fmt.Errorf("abrir %s: %w", path, err)
	}
	defer f.Close()

	cr := csv.NewReader(transform.NewReader(f, charmap.ISO8859_1.NewDecoder()))
	cr.FieldsPerRecord = -1 // la validación de ancho es nuestra, con descarte y warn

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s: %w", path, domain.ErrTableEmpty)
		}
		return nil, fmt.Errorf("leer encabezado de %s: %w", path, err)
	}
	cols, skip := dropIndexColumn(header)

	var rows []etl.Record
	for line := 2; ; line++ {
		raw, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("leer %s línea %d: %w", path, line, err)
		}
		switch len(raw) {
		case len(cols) + skip:
			raw = raw[skip:]
		case len(cols):
			// exporte sin columna índice en los datos, nada que saltar
		default:
			r.log.Warn().Str("tabla", table).Str("fuente", source).Int("línea", line).
				Int("campos", len(raw)).Int("esperados", len(cols)).
				Msg("fila malformada descartada")
			continue
		}
		rec := make(etl.Record, len(cols))
		for i, name := range cols {
			rec[name] = raw[i]
		}
		rows = append(rows, rec)
	}
	return rows, nil
}

// dropIndexColumn elimina la columna índice sin nombre que pandas exporta
// como primera columna ("", "Unnamed: 0"). Devuelve cuántos campos saltar al
// inicio de cada fila de datos.
func dropIndexColumn(header []string) ([]string, int) {
	if len(header) > 0 {
		first := strings.TrimSpace(header[0])
		if first == "" || strings.HasPrefix(first, "Unnamed:") {
			return header[1:], 1
		}
	}
	return header, 0
}
