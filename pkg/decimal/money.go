package decimal

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Money represents a monetary amount with proper financial precision
type Money struct {
	decimal.Decimal
}

// ParseCurrency parses a currency value that may carry decoration such as
// "$1,234.56", " 1 000 " or "(250.00)". Currency symbols, thousands
// separators and whitespace are stripped; a value wrapped in parentheses is
// negative. Empty or unparsable input yields zero and ok=false.
func ParseCurrency(value string) (m Money, ok bool) {
	s := strings.TrimSpace(value)
	if s == "" {
		return Zero(), false
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}

	s = strings.Map(func(r rune) rune {
		switch {
		case r == ',' || r == '$' || unicode.IsSpace(r):
			return -1
		case unicode.Is(unicode.Sc, r):
			return -1
		}
		return r
	}, s)
	if s == "" {
		return Zero(), false
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return Zero(), false
	}
	if negative {
		d = d.Neg()
	}
	return Money{d}, true
}

// RoundCents rounds a decimal amount to two places.
func RoundCents(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Sub subtracts another Money amount
func (m Money) Sub(other Money) Money {
	return Money{m.Decimal.Sub(other.Decimal)}
}

// Zero returns a zero Money amount
func Zero() Money {
	return Money{decimal.Zero}
}

// String returns the amount fixed to two decimal places
func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}

var usd = message.NewPrinter(language.AmericanEnglish)

// FormatUSD renders d as "$1,234.56" (or "-$1,234.56").
func FormatUSD(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	whole := d.Truncate(0)
	cents := d.Sub(whole).Mul(decimal.NewFromInt(100)).Round(0)
	if cents.GreaterThanOrEqual(decimal.NewFromInt(100)) {
		whole = whole.Add(decimal.NewFromInt(1))
		cents = decimal.Zero
	}
	return sign + "$" + usd.Sprintf("%d", whole.IntPart()) + fmt.Sprintf(".%02d", cents.IntPart())
}

// FormatWholeUSD renders d rounded to whole dollars, e.g. "$48,475".
func FormatWholeUSD(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	return sign + "$" + usd.Sprintf("%d", d.Round(0).IntPart())
}
