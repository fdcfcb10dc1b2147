package accounting_test

import (
	"testing"

	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	"github.com/bizbooks/bizbooks_backend/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestClassifyPrefixRules(t *testing.T) {
	c := accounting.NewClassifier(nil)

	tests := []struct {
		code     string
		expected domain.Category
	}{
		{"111", domain.CategoryAsset},
		{"1121", domain.CategoryAsset},
		{"211", domain.CategoryAsset},
		{"331", domain.CategoryLiability},
		{"3331", domain.CategoryLiability},
		{"411", domain.CategoryEquity},
		{"511", domain.CategoryRevenue},
		{"515", domain.CategoryRevenue},
		{"632", domain.CategoryCOGS},
		{"6321", domain.CategoryCOGS}, // longest prefix wins over "6"
		{"641", domain.CategoryOperatingExpense},
		{"6423", domain.CategoryOperatingExpense},
		{"711", domain.CategoryOtherIncome},
		{"811", domain.CategoryOtherExpense},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, c.Classify(tt.code), "code %s", tt.code)
	}
}

func TestClassifyExactOverrideWinsOverPrefix(t *testing.T) {
	c := accounting.NewClassifier(map[string]domain.Category{
		"6423": domain.CategoryOtherExpense,
	})

	assert.Equal(t, domain.CategoryOtherExpense, c.Classify("6423"))
	// Other codes in the group still follow the prefix rule.
	assert.Equal(t, domain.CategoryOperatingExpense, c.Classify("6421"))
}

func TestClassifyUnknownCodeFallsBackToDefault(t *testing.T) {
	c := accounting.NewClassifier(nil)

	// No rule matches a code outside the numeric groups; classification
	// must still produce a category rather than fail.
	assert.Equal(t, accounting.DefaultCategory, c.Classify("999"))
	assert.Equal(t, accounting.DefaultCategory, c.Classify("X-MISC"))
	assert.Equal(t, accounting.DefaultCategory, c.Classify(""))
}

func TestNetAmountSignConventions(t *testing.T) {
	debit := decimal.NewFromInt(300)
	credit := decimal.NewFromInt(1000)

	// Credit-normal categories: net = credit - debit.
	for _, cat := range []domain.Category{
		domain.CategoryRevenue,
		domain.CategoryOtherIncome,
		domain.CategoryLiability,
		domain.CategoryEquity,
	} {
		assert.True(t, accounting.IsCreditNormal(cat))
		assert.True(t, accounting.NetAmount(cat, debit, credit).Equal(decimal.NewFromInt(700)), "category %s", cat)
	}

	// Debit-normal categories: net = debit - credit.
	for _, cat := range []domain.Category{
		domain.CategoryAsset,
		domain.CategoryCOGS,
		domain.CategoryOperatingExpense,
		domain.CategoryOtherExpense,
	} {
		assert.False(t, accounting.IsCreditNormal(cat))
		assert.True(t, accounting.NetAmount(cat, debit, credit).Equal(decimal.NewFromInt(-700)), "category %s", cat)
	}
}

func TestIsCashAccount(t *testing.T) {
	assert.True(t, accounting.IsCashAccount("111"))
	assert.True(t, accounting.IsCashAccount("112"))
	assert.True(t, accounting.IsCashAccount("1121"))
	assert.False(t, accounting.IsCashAccount("131"))
	assert.False(t, accounting.IsCashAccount("211"))
}

func TestBalanceSheetSplits(t *testing.T) {
	assert.True(t, accounting.IsFixedAssetAccount("211"))
	assert.False(t, accounting.IsFixedAssetAccount("131"))

	assert.True(t, accounting.IsLongTermLiabilityAccount("341"))
	assert.False(t, accounting.IsLongTermLiabilityAccount("331"))
	assert.False(t, accounting.IsLongTermLiabilityAccount("3331"))
	// 41x capital accounts are equity, not liabilities; the split must not
	// claim them.
	assert.False(t, accounting.IsLongTermLiabilityAccount("411"))
}

func TestCashFlowSectionFor(t *testing.T) {
	c := accounting.NewClassifier(nil)

	// Fixed-asset counterparts are investing activity.
	assert.Equal(t, accounting.BucketInvesting, accounting.CashFlowSectionFor(c, "211"))
	// Borrowings and equity are financing activity.
	assert.Equal(t, accounting.BucketFinancing, accounting.CashFlowSectionFor(c, "341"))
	assert.Equal(t, accounting.BucketFinancing, accounting.CashFlowSectionFor(c, "411"))
	// Revenue, expenses and working-capital accounts are operating activity.
	assert.Equal(t, accounting.BucketOperating, accounting.CashFlowSectionFor(c, "511"))
	assert.Equal(t, accounting.BucketOperating, accounting.CashFlowSectionFor(c, "131"))
	assert.Equal(t, accounting.BucketOperating, accounting.CashFlowSectionFor(c, "331"))
	assert.Equal(t, accounting.BucketOperating, accounting.CashFlowSectionFor(c, "642"))
}
