package calculation

import (
	"github.com/nrtax/nra-tax-calculator/internal/domain"
	money "github.com/nrtax/nra-tax-calculator/pkg/decimal"
	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"
)

// TAX CALCULATION ASSUMPTIONS:
//
// 1. Federal Tax Brackets: one fixed seven-row table per tax year (2025
//    single-filer thresholds by default), top bracket unbounded
// 2. No standard deduction is applied here; callers pass taxable income
// 3. Zero or negative taxable income owes nothing and reports the lowest bracket

// BracketTaxCalculator applies a progressive bracket table to taxable income
type BracketTaxCalculator struct {
	Year     int
	Brackets []domain.TaxBracket
}

// NewBracketTaxCalculator2025 creates a calculator with the built-in 2025 table
func NewBracketTaxCalculator2025() *BracketTaxCalculator {
	return &BracketTaxCalculator{
		Year:     2025,
		Brackets: domain.DefaultBrackets2025(),
	}
}

// NewBracketTaxCalculator creates a calculator from configurable rules
func NewBracketTaxCalculator(rules domain.TaxRules) *BracketTaxCalculator {
	brackets := rules.Brackets
	if len(brackets) == 0 { // fallback defaults
		brackets = domain.DefaultBrackets2025()
	}
	return &BracketTaxCalculator{Year: rules.TaxYear, Brackets: brackets}
}

// bracketWalk is the immutable accumulator threaded through the bracket fold.
type bracketWalk struct {
	tax       decimal.Decimal
	remaining decimal.Decimal
	prevMax   decimal.Decimal
	matched   int
	done      bool
}

// step taxes the slice of remaining income that falls into bracket b.
func (w bracketWalk) step(i int, b domain.TaxBracket) bracketWalk {
	if b.Unbounded() {
		return bracketWalk{tax: w.tax.Add(w.remaining.Mul(b.Rate)), matched: i, done: true}
	}
	width := b.Max.Sub(w.prevMax)
	if w.remaining.GreaterThan(width) {
		return bracketWalk{
			tax:       w.tax.Add(width.Mul(b.Rate)),
			remaining: w.remaining.Sub(width),
			prevMax:   *b.Max,
			matched:   i,
		}
	}
	return bracketWalk{tax: w.tax.Add(w.remaining.Mul(b.Rate)), matched: i, done: true}
}

// Calculate returns the tax owed on taxableIncome together with the marginal bracket
func (c *BracketTaxCalculator) Calculate(taxableIncome decimal.Decimal) domain.BracketTaxResult {
	if len(c.Brackets) == 0 {
		return domain.BracketTaxResult{TaxableIncome: decimal.Max(taxableIncome, decimal.Zero), Tax: decimal.Zero}
	}

	if !taxableIncome.IsPositive() {
		lowest := c.Brackets[0]
		return domain.BracketTaxResult{
			TaxableIncome: decimal.Zero,
			Tax:           decimal.Zero,
			Bracket:       lowest,
			BracketRange:  BracketRange(lowest),
		}
	}

	walk := bracketWalk{remaining: taxableIncome}
	for i, b := range c.Brackets {
		walk = walk.step(i, b)
		if walk.done {
			break
		}
	}

	// Income above the last finite threshold is taxed at the top rate
	if !walk.done {
		top := len(c.Brackets) - 1
		walk = bracketWalk{
			tax:     walk.tax.Add(walk.remaining.Mul(c.Brackets[top].Rate)),
			matched: top,
			done:    true,
		}
	}

	marginal := c.Brackets[walk.matched]
	return domain.BracketTaxResult{
		TaxableIncome: taxableIncome,
		Tax:           money.RoundCents(walk.tax),
		Bracket:       marginal,
		BracketRange:  BracketRange(marginal),
	}
}

// BracketRange renders a bracket's thresholds, e.g. "$11,925 - $48,475" or "$626,350+"
func BracketRange(b domain.TaxBracket) string {
	if b.Unbounded() {
		return money.FormatWholeUSD(b.Min) + "+"
	}
	return money.FormatWholeUSD(b.Min) + " - " + money.FormatWholeUSD(*b.Max)
}

// ValidateBrackets checks that a bracket table is ascending and contiguous,
// that rates lie in [0, 1] and that only the last bracket is unbounded.
func ValidateBrackets(brackets []domain.TaxBracket) error {
	if len(brackets) == 0 {
		return eris.New("bracket table is empty")
	}
	one := decimal.NewFromInt(1)
	for i, b := range brackets {
		if b.Rate.IsNegative() || b.Rate.GreaterThan(one) {
			return eris.Errorf("bracket %d: rate %s outside [0, 1]", i, b.Rate)
		}
		if b.Unbounded() {
			if i != len(brackets)-1 {
				return eris.Errorf("bracket %d: only the top bracket may be unbounded", i)
			}
		} else if !b.Max.GreaterThan(b.Min) {
			return eris.Errorf("bracket %d: max %s must exceed min %s", i, b.Max, b.Min)
		}
		if i == 0 {
			if !b.Min.IsZero() {
				return eris.Errorf("bracket 0: must start at zero, got %s", b.Min)
			}
			continue
		}
		prev := brackets[i-1]
		if prev.Max == nil || !prev.Max.Equal(b.Min) {
			return eris.Errorf("bracket %d: min %s does not continue previous bracket", i, b.Min)
		}
		if b.Rate.LessThan(prev.Rate) {
			return eris.Errorf("bracket %d: rate %s lower than previous %s", i, b.Rate, prev.Rate)
		}
	}
	return nil
}
