package utils

import (
	"github.com/shopspring/decimal"
)

// VNDPrecision is the display precision for the report currency. VND has no
// minor unit.
const VNDPrecision = 0

// FormatReportAmount formats a statement amount with the report currency's
// precision.
// Example: amount 1000000.4 returns "1000000"
func FormatReportAmount(amount decimal.Decimal) string {
	return FormatWithPrecision(amount, VNDPrecision)
}

// FormatWithPrecision formats an amount with the given precision
// This is a convenience function when you only have the precision value
func FormatWithPrecision(amount decimal.Decimal, precision int) string {
	return amount.Round(int32(precision)).String()
}
