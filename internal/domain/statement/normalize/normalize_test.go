package normalize

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateConverter_GregorianYear(t *testing.T) {
	c := NewDateConverter(0)

	tests := []struct {
		name string
		in   int
		want int
	}{
		{"Buddhist four-digit", 2568, 2025},
		{"Buddhist boundary", 2400, 1857},
		{"Gregorian four-digit is a no-op", 2025, 2025},
		{"two-digit Buddhist", 68, 2025},
		{"two-digit at cutoff", 60, 2017},
		{"two-digit Gregorian", 25, 2025},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.GregorianYear(tt.in))
		})
	}

	t.Run("idempotent", func(t *testing.T) {
		once := c.GregorianYear(2568)
		assert.Equal(t, once, c.GregorianYear(once))
	})

	t.Run("custom cutoff", func(t *testing.T) {
		strict := NewDateConverter(50)
		assert.Equal(t, 2012, strict.GregorianYear(55))
	})
}

func TestDateConverter_ParseDMY(t *testing.T) {
	c := NewDateConverter(0)

	t.Run("slash-separated Buddhist year", func(t *testing.T) {
		d, err := c.ParseDMY("30/09/68")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, time.September, 30, 0, 0, 0, 0, time.UTC), d)
	})

	t.Run("dash-separated Gregorian year", func(t *testing.T) {
		d, err := c.ParseDMY("01-04-25")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC), d)
	})

	t.Run("four-digit year", func(t *testing.T) {
		d, err := c.ParseDMY("15/01/2568")
		require.NoError(t, err)
		assert.Equal(t, 2025, d.Year())
	})

	t.Run("rejects junk", func(t *testing.T) {
		_, err := c.ParseDMY("not-a-date")
		assert.Error(t, err)

		_, err = c.ParseDMY("99/99/25")
		assert.Error(t, err)
	})
}

func TestDateConverter_ParseThaiDate(t *testing.T) {
	c := NewDateConverter(0)

	d, err := c.ParseThaiDate("30 ก.ย. 68")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.September, 30, 0, 0, 0, 0, time.UTC), d)

	d, err = c.ParseThaiDate("1 เม.ย. 68")
	require.NoError(t, err)
	assert.Equal(t, time.April, d.Month())

	_, err = c.ParseThaiDate("30 Sep 68")
	assert.Error(t, err)

	assert.True(t, IsThaiDate("25 ต.ค. 68"))
	assert.False(t, IsThaiDate("25/10/68"))
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"12,278.00", "12278"},
		{"875.50", "875.5"},
		{"1,234,567.89", "1234567.89"},
		{"0.01", "0.01"},
	}
	for _, tt := range tests {
		d, err := ParseAmount(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, d.String(), tt.in)
	}

	_, err := ParseAmount("")
	assert.Error(t, err)
	_, err = ParseAmount("abc")
	assert.Error(t, err)
}

func TestParseSignedAmount(t *testing.T) {
	amount, isCredit, err := ParseSignedAmount("+25,000.00")
	require.NoError(t, err)
	assert.True(t, isCredit)
	assert.True(t, amount.Equal(decimal.NewFromInt(25000)))

	amount, isCredit, err = ParseSignedAmount("-24,600.00")
	require.NoError(t, err)
	assert.False(t, isCredit)
	assert.True(t, amount.Equal(decimal.NewFromInt(24600)))

	_, isCredit, err = ParseSignedAmount("100,421.94")
	require.NoError(t, err)
	assert.True(t, isCredit)
}

func TestMoneyPatterns(t *testing.T) {
	assert.True(t, IsMoney("12,278.00"))
	assert.True(t, IsMoney("875.50"))
	assert.False(t, IsMoney("875.5"))
	assert.False(t, IsMoney("+875.50"))
	assert.True(t, IsSignedMoney("+875.50"))
	assert.True(t, IsSignedMoney("875.50"))
	assert.True(t, IsLooseMoney("84,150.00"))
	assert.True(t, IsLooseMoney("1107.55"))
}

func TestInferDirection(t *testing.T) {
	amt := decimal.NewFromInt(500)

	t.Run("credit when balance rises by the amount", func(t *testing.T) {
		isCredit, err := InferDirection(amt, decimal.NewFromInt(1000), decimal.NewFromInt(1500))
		require.NoError(t, err)
		assert.True(t, isCredit)
	})

	t.Run("debit when balance falls by the amount", func(t *testing.T) {
		isCredit, err := InferDirection(amt, decimal.NewFromInt(1500), decimal.NewFromInt(1000))
		require.NoError(t, err)
		assert.False(t, isCredit)
	})

	t.Run("satang rounding tolerated", func(t *testing.T) {
		isCredit, err := InferDirection(decimal.NewFromFloat(500.00), decimal.NewFromFloat(1000.00), decimal.NewFromFloat(1500.01))
		require.NoError(t, err)
		assert.True(t, isCredit)
	})

	t.Run("mismatched delta is inconsistent", func(t *testing.T) {
		_, err := InferDirection(amt, decimal.NewFromInt(1000), decimal.NewFromInt(1300))
		assert.ErrorIs(t, err, ErrInconsistentBalance)
	})
}

func TestInferDirectionWithFallback(t *testing.T) {
	amt := decimal.NewFromFloat(10313.33)
	before := decimal.NewFromFloat(143500.02)
	after := decimal.NewFromFloat(153813.35)
	hints := []string{"SALARY", "CHEQUE DEP"}

	t.Run("balance wins over keywords", func(t *testing.T) {
		got := InferDirectionWithFallback(amt, &before, &after, "TRF. PROMPTPAY", hints)
		assert.True(t, got)
	})

	t.Run("keyword fallback when balances disagree", func(t *testing.T) {
		bad := decimal.NewFromInt(1)
		got := InferDirectionWithFallback(amt, &bad, &before, "SALARY Auto", hints)
		assert.True(t, got)
	})

	t.Run("defaults to debit", func(t *testing.T) {
		got := InferDirectionWithFallback(amt, nil, nil, "TRF. PROMPTPAY", hints)
		assert.False(t, got)
	})
}

func TestFold(t *testing.T) {
	assert.Equal(t, "HELLO WORLD", Fold("  hello   world "))
	// Thai characters must survive folding untouched.
	assert.Equal(t, "เงินเดือน/อื่นๆ (BSD02)", Fold("เงินเดือน/อื่นๆ  (bsd02)"))
	assert.True(t, ContainsAny("รับโอนเงินอัตโนมัติ จาก SG CAPITAL", []string{"เงินเดือน", "รับโอนเงิน"}))
	assert.False(t, ContainsAny("ถอนเงินสด", []string{"เงินเดือน"}))
}

func TestCleanLines(t *testing.T) {
	in := []string{" a ", "", "\t", "b"}
	assert.Equal(t, []string{"a", "b"}, CleanLines(in))
}
