// Package payroll converts between Thai monthly gross and net pay: the
// progressive personal income tax brackets, social security contributions,
// and the standard employment deductions. All arithmetic is decimal; results
// are rounded to satang only at the boundary.
package payroll

import "github.com/shopspring/decimal"

// Bracket is one progressive tax band over annual taxable income. A nil
// Ceiling means the band is unbounded.
type Bracket struct {
	Floor   decimal.Decimal
	Ceiling *decimal.Decimal
	Rate    decimal.Decimal
}

func bound(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

// Brackets are the Thai personal income tax bands (annual THB).
var Brackets = []Bracket{
	{Floor: decimal.Zero, Ceiling: bound(150_000), Rate: decimal.Zero},
	{Floor: decimal.NewFromInt(150_000), Ceiling: bound(300_000), Rate: decimal.NewFromFloat(0.05)},
	{Floor: decimal.NewFromInt(300_000), Ceiling: bound(500_000), Rate: decimal.NewFromFloat(0.10)},
	{Floor: decimal.NewFromInt(500_000), Ceiling: bound(750_000), Rate: decimal.NewFromFloat(0.15)},
	{Floor: decimal.NewFromInt(750_000), Ceiling: bound(1_000_000), Rate: decimal.NewFromFloat(0.20)},
	{Floor: decimal.NewFromInt(1_000_000), Ceiling: bound(2_000_000), Rate: decimal.NewFromFloat(0.25)},
	{Floor: decimal.NewFromInt(2_000_000), Ceiling: bound(5_000_000), Rate: decimal.NewFromFloat(0.30)},
	{Floor: decimal.NewFromInt(5_000_000), Ceiling: nil, Rate: decimal.NewFromFloat(0.35)},
}

var (
	ssoRate              = decimal.NewFromFloat(0.05)
	ssoMonthlyCap        = decimal.NewFromInt(750)
	personalAllowance    = decimal.NewFromInt(60_000)
	employmentExpenseCap = decimal.NewFromInt(100_000)
	half                 = decimal.NewFromFloat(0.5)
	twelve               = decimal.NewFromInt(12)
	two                  = decimal.NewFromInt(2)
)

// Calculator carries the per-employee deduction inputs. The zero value is a
// valid calculator with no provident fund and no extra deductions.
type Calculator struct {
	// PVDRate is the provident fund contribution rate on monthly gross.
	PVDRate decimal.Decimal
	// ExtraDeductions is the annual sum of additional allowances.
	ExtraDeductions decimal.Decimal
}

// TaxableIncome reduces annual gross by the standard deductions: the 50%
// employment expense (capped), the personal allowance, provident fund
// contributions, and any extra deductions. Never negative.
func (c Calculator) TaxableIncome(annualGross decimal.Decimal) decimal.Decimal {
	expense := decimal.Min(annualGross.Mul(half), employmentExpenseCap)
	pvd := annualGross.Mul(c.PVDRate)

	taxable := annualGross.Sub(personalAllowance).Sub(expense).Sub(pvd).Sub(c.ExtraDeductions)
	if taxable.Sign() < 0 {
		return decimal.Zero
	}
	return taxable
}

// AnnualTax applies the progressive brackets to annual taxable income.
func AnnualTax(taxable decimal.Decimal) decimal.Decimal {
	tax := decimal.Zero
	for _, b := range Brackets {
		if taxable.LessThanOrEqual(b.Floor) {
			break
		}
		top := taxable
		if b.Ceiling != nil && top.GreaterThan(*b.Ceiling) {
			top = *b.Ceiling
		}
		tax = tax.Add(top.Sub(b.Floor).Mul(b.Rate))
	}
	return tax
}

// MonthlySSO is the social security contribution on monthly gross, capped.
func MonthlySSO(monthlyGross decimal.Decimal) decimal.Decimal {
	return decimal.Min(monthlyGross.Mul(ssoRate), ssoMonthlyCap)
}

// NetFromGross computes monthly take-home pay from monthly gross, rounded to
// satang.
func (c Calculator) NetFromGross(monthlyGross decimal.Decimal) decimal.Decimal {
	annualGross := monthlyGross.Mul(twelve)
	monthlyTax := AnnualTax(c.TaxableIncome(annualGross)).Div(twelve)
	monthlyPVD := monthlyGross.Mul(c.PVDRate)

	return monthlyGross.Sub(monthlyTax).Sub(MonthlySSO(monthlyGross)).Sub(monthlyPVD).Round(2)
}

const grossSearchIterations = 50

var grossSearchTolerance = decimal.NewFromInt(10)

// GrossFromNet inverts NetFromGross by bisection: it finds the monthly gross
// whose computed net lands within 10 THB of the target. The net-to-gross
// mapping is monotonic, so the search brackets [net, 2*net] always contain
// the answer for realistic salaries.
func (c Calculator) GrossFromNet(monthlyNet decimal.Decimal) decimal.Decimal {
	if monthlyNet.Sign() <= 0 {
		return decimal.Zero
	}

	lower := monthlyNet
	upper := monthlyNet.Mul(two)

	for i := 0; i < grossSearchIterations; i++ {
		mid := lower.Add(upper).Div(two)
		net := c.NetFromGross(mid)

		diff := net.Sub(monthlyNet)
		if diff.Abs().LessThan(grossSearchTolerance) {
			return mid.Round(2)
		}
		if diff.Sign() > 0 {
			upper = mid
		} else {
			lower = mid
		}
	}
	return lower.Add(upper).Div(two).Round(2)
}
