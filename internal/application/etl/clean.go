package etl

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Reglas de limpieza: un valor no parseable se reporta como inválido y el
// llamador decide si descarta la fila (campo crítico) o normaliza a cero.

// toInt64 convierte texto a entero. Acepta enteros con parte decimal nula
// ("12.0"), habitual en exportes de planillas.
func toInt64(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int64(f)) {
		return 0, false
	}
	return int64(f), true
}

// toDecimal convierte texto a decimal exacto para columnas de dinero.
func toDecimal(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "$"))
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// toFloat convierte texto a float64 (descuentos y tasas).
func toFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// dateLayouts formatos de fecha observados en los exportes de ambas fuentes.
var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"1/2/2006",
}

// toDate convierte texto a fecha probando los formatos conocidos.
func toDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// splitContactName separa "Nombre Apellido" de un campo ContactName.
// Con una sola palabra, nombre y apellido coinciden.
func splitContactName(s string) (first, last string) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return "", ""
	}
	return fields[0], fields[len(fields)-1]
}
