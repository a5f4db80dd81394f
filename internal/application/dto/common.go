package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// DateLayout formato de fechas de calendario (vencimientos): sin componente horario.
const DateLayout = "2006-01-02"

// MonthLayout formato de mes para reportes (p. ej. "2026-08").
const MonthLayout = "2006-01"
