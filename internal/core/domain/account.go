package domain

// Category is the statement category an account code classifies into.
type Category string

const (
	CategoryRevenue          Category = "REVENUE"
	CategoryCOGS             Category = "COGS"
	CategoryOperatingExpense Category = "OPERATING_EXPENSE"
	CategoryOtherIncome      Category = "OTHER_INCOME"
	CategoryOtherExpense     Category = "OTHER_EXPENSE"
	CategoryAsset            Category = "ASSET"
	CategoryLiability        Category = "LIABILITY"
	CategoryEquity           Category = "EQUITY"
)

// ChartAccount is one row of the chart of accounts. The ledger engine only
// reads this reference data; ownership lives elsewhere.
type ChartAccount struct {
	AccountCode string   `json:"accountCode"` // Primary key, VAS-style numeric code
	Name        string   `json:"name"`
	Category    Category `json:"category"`
	IsActive    bool     `json:"isActive"`
	AuditFields
}

// Well-known account codes used by the convenience entry constructors.
const (
	AccountCash        = "111" // Cash on hand
	AccountBank        = "112" // Cash in bank
	AccountReceivable  = "131" // Trade receivables
	AccountPayable     = "331" // Trade payables
	AccountVATPayable  = "3331"
	AccountRevenue     = "511" // Sales revenue
	AccountCOGS        = "632" // Cost of goods sold
	AccountOpexGeneral = "642" // General administration expenses
	AccountRetained    = "421" // Undistributed profit
)
