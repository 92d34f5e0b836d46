package dto

import "time"

// LoadedCountsDTO filas cargadas por tabla del esquema en estrella.
type LoadedCountsDTO struct {
	Products  int64 `json:"dim_product"`
	Customers int64 `json:"dim_customer"`
	Employees int64 `json:"dim_employee"`
	Suppliers int64 `json:"dim_supplier"`
	Sales     int64 `json:"fact_sales"`
	Purchases int64 `json:"fact_purchases"`
}

// RunSummaryDTO resumen de una corrida completa del ETL.
type RunSummaryDTO struct {
	RunID                string           `json:"run_id"`
	StartedAt            time.Time        `json:"started_at"`
	FinishedAt           time.Time        `json:"finished_at"`
	DurationMS           int64            `json:"duration_ms"`
	Loaded               LoadedCountsDTO  `json:"loaded"`
	RejectedRows         map[string]int64 `json:"rejected_rows,omitempty"`
	DroppedFacts         int64            `json:"dropped_facts"`
	PlaceholderEmployees int64            `json:"placeholder_employees"`
}
