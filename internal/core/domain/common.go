package domain

import "time"

// ReportCurrency is the fixed currency code attached to every report. The
// engine is single-currency; upstream callers supply amounts already in VND.
const ReportCurrency = "VND"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID reference
}
