package dto

// DashboardSummary resumen del estado del sistema para la vista principal.
type DashboardSummary struct {
	TotalDrugs          int                   `json:"total_drugs"`
	InStock             int                   `json:"in_stock"`
	LowStock            int                   `json:"low_stock"`
	OutOfStock          int                   `json:"out_of_stock"`
	ExpiringSoon        int                   `json:"expiring_soon"`
	Expired             int                   `json:"expired"`
	PendingRequests     int                   `json:"pending_requests"`
	RecentTransactions  []TransactionResponse `json:"recent_transactions"`
}
