package dto

// DisbursementReportRow fila del reporte mensual de dispensaciones aprobadas.
// Las seis columnas en orden fijo del layout de exportación.
type DisbursementReportRow struct {
	ApprovalDate string `json:"approval_date"`
	DrugName     string `json:"drug_name"`
	Quantity     int    `json:"quantity"`
	Unit         string `json:"unit"`
	RequestedBy  string `json:"requested_by"`
	ApprovedBy   string `json:"approved_by"`
}
