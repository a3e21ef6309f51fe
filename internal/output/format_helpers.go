package output

import (
	"strconv"

	money "github.com/nrtax/nra-tax-calculator/pkg/decimal"
	"github.com/shopspring/decimal"
)

// FormatCurrency formats a decimal as grouped USD with 2 decimals.
func FormatCurrency(amount decimal.Decimal) string { return money.FormatUSD(amount) }

// FormatPercentage formats a decimal as a percentage with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(2) + "%" }

// FormatCents formats a decimal with exactly 2 decimals and no symbol, for machine-readable output.
func FormatCents(amount decimal.Decimal) string { return amount.StringFixed(2) }

func intToString(i int) string { return strconv.Itoa(i) }

func boolToString(b bool) string { return strconv.FormatBool(b) }

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
