package utils_test

import (
	"testing"

	"github.com/bizbooks/bizbooks_backend/internal/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatReportAmount(t *testing.T) {
	assert.Equal(t, "1000000", utils.FormatReportAmount(decimal.NewFromFloat(1000000.4)))
	assert.Equal(t, "-500", utils.FormatReportAmount(decimal.NewFromFloat(-499.6)))
	assert.Equal(t, "0", utils.FormatReportAmount(decimal.Zero))
}

func TestFormatWithPrecision(t *testing.T) {
	amount := decimal.NewFromFloat(1234.567)

	assert.Equal(t, "1235", utils.FormatWithPrecision(amount, 0))
	assert.Equal(t, "1234.57", utils.FormatWithPrecision(amount, 2))
}
