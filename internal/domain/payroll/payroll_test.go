package payroll

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func TestTaxableIncome(t *testing.T) {
	var calc Calculator

	t.Run("employment expense is capped at 100k", func(t *testing.T) {
		// 600,000 gross: expense min(300k, 100k) = 100k, allowance 60k
		assert.Equal(t, "440000", calc.TaxableIncome(d(600_000)).String())
	})

	t.Run("low income bottoms out at zero", func(t *testing.T) {
		// 120,000 gross: expense 60k + allowance 60k consume everything
		assert.True(t, calc.TaxableIncome(d(120_000)).IsZero())
	})

	t.Run("provident fund reduces taxable income", func(t *testing.T) {
		withPVD := Calculator{PVDRate: d(0.05)}
		// 600,000 gross: 440,000 - 30,000 PVD
		assert.Equal(t, "410000", withPVD.TaxableIncome(d(600_000)).String())
	})
}

func TestAnnualTax(t *testing.T) {
	tests := []struct {
		taxable float64
		want    string
	}{
		{100_000, "0"},
		{150_000, "0"},
		{300_000, "7500"},    // 150k at 5%
		{440_000, "21500"},   // 7,500 + 140k at 10%
		{1_000_000, "115000"}, // 7.5k + 20k + 37.5k + 50k
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, AnnualTax(d(tt.taxable)).String(), "taxable %v", tt.taxable)
	}
}

func TestMonthlySSO(t *testing.T) {
	assert.Equal(t, "500", MonthlySSO(d(10_000)).String())
	assert.Equal(t, "750", MonthlySSO(d(15_000)).String(), "capped at 750")
	assert.Equal(t, "750", MonthlySSO(d(80_000)).String())
}

func TestNetFromGross(t *testing.T) {
	var calc Calculator

	t.Run("mid-range salary", func(t *testing.T) {
		// 50,000 gross: tax 21,500/12 = 1,791.67, SSO 750
		assert.Equal(t, "47458.33", calc.NetFromGross(d(50_000)).StringFixed(2))
	})

	t.Run("below the tax threshold only SSO applies", func(t *testing.T) {
		assert.Equal(t, "9500.00", calc.NetFromGross(d(10_000)).StringFixed(2))
	})
}

func TestGrossFromNet(t *testing.T) {
	var calc Calculator

	t.Run("inverts NetFromGross within tolerance", func(t *testing.T) {
		for _, gross := range []float64{18_000, 35_000, 50_000, 84_150, 120_000} {
			net := calc.NetFromGross(d(gross))
			recovered, _ := calc.GrossFromNet(net).Float64()
			assert.InDelta(t, gross, recovered, 25, "gross %v", gross)
		}
	})

	t.Run("non-positive net yields zero", func(t *testing.T) {
		assert.True(t, calc.GrossFromNet(decimal.Zero).IsZero())
		assert.True(t, calc.GrossFromNet(d(-100)).IsZero())
	})
}
