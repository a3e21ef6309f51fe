package calculation

import (
	"context"

	"github.com/nrtax/nra-tax-calculator/internal/domain"
	"github.com/rotisserie/eris"
)

// CalculationEngine runs every calculation a case file asks for. It holds no
// mutable state beyond its configuration and is safe for concurrent use.
type CalculationEngine struct {
	Rules    domain.TaxRules
	TaxCalc  *BracketTaxCalculator
	W2       *W2Aggregator
	Presence *PresenceDayCounter
	Vehicle  *VehicleLoanEngine
	Logger   Logger
}

// NewCalculationEngine creates a new calculation engine with the built-in rules
func NewCalculationEngine() *CalculationEngine {
	return NewCalculationEngineWithRules(domain.DefaultTaxRules())
}

// NewCalculationEngineWithRules creates a new calculation engine with configurable rules
func NewCalculationEngineWithRules(rules domain.TaxRules) *CalculationEngine {
	w2 := NewW2Aggregator(rules)
	return &CalculationEngine{
		Rules:    rules,
		TaxCalc:  w2.TaxCalc,
		W2:       w2,
		Presence: NewPresenceDayCounter(),
		Vehicle:  NewVehicleLoanEngine(rules.VehicleLoan),
		Logger:   NopLogger{},
	}
}

// SetLogger sets the logger for the engine and its calculators. If nil is
// provided, a no-op logger is used.
func (ce *CalculationEngine) SetLogger(l Logger) {
	l = orNop(l)
	ce.Logger = l
	ce.W2.SetLogger(l)
	ce.Presence.SetLogger(l)
	ce.Vehicle.SetLogger(l)
}

// RunCase calculates every section present in the case file. Vehicle loan
// interest is only calculated when the loan is eligible. Any structural
// failure aborts the case and no partial report is returned.
func (ce *CalculationEngine) RunCase(ctx context.Context, c *domain.CaseFile) (*domain.CaseReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if c == nil {
		return nil, eris.Wrap(ErrAggregateInput, "nil case file")
	}
	year := c.Filing.TaxYear
	if year <= 0 {
		return nil, eris.Wrapf(ErrInvalidFilingContext, "case %q: tax year %d", c.Name, year)
	}

	report := &domain.CaseReport{Name: c.Name, TaxYear: year}

	if len(c.W2s) > 0 {
		tax, err := ce.W2.Aggregate(c.W2s, c.Filing)
		if err != nil {
			return nil, eris.Wrapf(err, "case %q: w2 aggregation", c.Name)
		}
		report.Tax = tax
	}

	if c.Presence != nil {
		q := *c.Presence
		if q.Year == 0 {
			q.Year = year
		}
		presence, err := ce.Presence.Count(q)
		if err != nil {
			return nil, eris.Wrapf(err, "case %q: presence", c.Name)
		}
		report.Presence = presence
	}

	if v := c.Vehicle; v != nil {
		eligibility := ce.Vehicle.CheckEligibility(year, v.Loan, v.Facts, v.Flags)
		report.Eligibility = &eligibility
		if eligibility.Eligible {
			interest, err := ce.Vehicle.CalculateInterest(v.Loan, c.Filing)
			if err != nil {
				return nil, eris.Wrapf(err, "case %q: vehicle loan interest", c.Name)
			}
			report.Interest = interest
		} else {
			ce.Logger.Infof("case %q: vehicle loan not eligible (%d reasons)", c.Name, len(eligibility.Reasons))
		}
	}

	return report, nil
}
