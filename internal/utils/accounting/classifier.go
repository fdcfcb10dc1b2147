package accounting

import (
	"sort"
	"strings"

	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DefaultCategory is the named fallback bucket. Classification never fails:
// an unmatched code lands here instead of raising an error. This is a
// deliberate degrade-gracefully choice; the trade-off is recorded in
// DESIGN.md.
const DefaultCategory = domain.CategoryOperatingExpense

// PrefixRule maps an account-code prefix to a statement category.
type PrefixRule struct {
	Prefix   string
	Category domain.Category
}

// Classifier maps account codes to statement categories using an ordered
// rule table: exact-code lookup first, then longest-prefix rules, then
// DefaultCategory.
type Classifier struct {
	exact    map[string]domain.Category
	prefixes []PrefixRule // sorted longest prefix first
}

// NewClassifier builds a classifier with the given exact-code overrides on
// top of the standard VAS prefix rules.
func NewClassifier(exact map[string]domain.Category) *Classifier {
	rules := []PrefixRule{
		{Prefix: "632", Category: domain.CategoryCOGS},
		{Prefix: "1", Category: domain.CategoryAsset},
		{Prefix: "2", Category: domain.CategoryAsset},
		{Prefix: "3", Category: domain.CategoryLiability},
		{Prefix: "4", Category: domain.CategoryEquity},
		{Prefix: "5", Category: domain.CategoryRevenue},
		{Prefix: "6", Category: domain.CategoryOperatingExpense},
		{Prefix: "7", Category: domain.CategoryOtherIncome},
		{Prefix: "8", Category: domain.CategoryOtherExpense},
	}
	// Longest prefix wins, so "632" is checked before "6".
	sort.SliceStable(rules, func(i, j int) bool {
		return len(rules[i].Prefix) > len(rules[j].Prefix)
	})
	if exact == nil {
		exact = map[string]domain.Category{}
	}
	return &Classifier{exact: exact, prefixes: rules}
}

// Classify maps an account code to its statement category. It always
// returns a category; unmatched codes classify to DefaultCategory.
func (c *Classifier) Classify(code string) domain.Category {
	if cat, ok := c.exact[code]; ok {
		return cat
	}
	for _, rule := range c.prefixes {
		if strings.HasPrefix(code, rule.Prefix) {
			return rule.Category
		}
	}
	return DefaultCategory
}

// IsCreditNormal reports whether the category grows on the credit side.
// For these, net = credit - debit; for the rest, net = debit - credit.
func IsCreditNormal(cat domain.Category) bool {
	switch cat {
	case domain.CategoryRevenue, domain.CategoryOtherIncome,
		domain.CategoryLiability, domain.CategoryEquity:
		return true
	default:
		return false
	}
}

// NetAmount applies the category's sign convention to a debit/credit pair.
// Positive means income for income-type accounts and cost for expense-type
// accounts.
func NetAmount(cat domain.Category, debit, credit decimal.Decimal) decimal.Decimal {
	if IsCreditNormal(cat) {
		return credit.Sub(debit)
	}
	return debit.Sub(credit)
}

// IsCashAccount reports whether the code is a cash or bank account
// (VAS group 11x). The cash flow statement pivots on these.
func IsCashAccount(code string) bool {
	return strings.HasPrefix(code, "11")
}

// IsFixedAssetAccount splits assets into current vs fixed for the balance
// sheet: group 2xx is fixed/long-term.
func IsFixedAssetAccount(code string) bool {
	return strings.HasPrefix(code, "2")
}

// IsLongTermLiabilityAccount splits liabilities for the balance sheet:
// group 34x (borrowings) is long-term. Only called for codes that classify
// as Liability; 41x capital accounts classify as Equity and never get here.
func IsLongTermLiabilityAccount(code string) bool {
	return strings.HasPrefix(code, "34")
}

// CashFlowSectionFor buckets a cash movement into Operating, Investing or
// Financing based on the counterpart account. Fixed-asset counterparts are
// investing, borrowings and equity are financing, everything else operating.
func CashFlowSectionFor(c *Classifier, counterpartCode string) CashFlowBucket {
	cat := c.Classify(counterpartCode)
	switch {
	case cat == domain.CategoryAsset && IsFixedAssetAccount(counterpartCode):
		return BucketInvesting
	case cat == domain.CategoryEquity,
		cat == domain.CategoryLiability && IsLongTermLiabilityAccount(counterpartCode):
		return BucketFinancing
	default:
		return BucketOperating
	}
}

// CashFlowBucket names the cash flow statement section.
type CashFlowBucket string

const (
	BucketOperating CashFlowBucket = "operating"
	BucketInvesting CashFlowBucket = "investing"
	BucketFinancing CashFlowBucket = "financing"
)
