package models

// ChartAccount is the persistence model for a chart-of-accounts row.
type ChartAccount struct {
	AccountCode string `db:"account_code"`
	Name        string `db:"name"`
	Category    string `db:"category"`
	IsActive    bool   `db:"is_active"`
	AuditFields
}
