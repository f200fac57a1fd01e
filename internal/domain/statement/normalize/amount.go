package normalize

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Thai statements render Baht amounts with comma thousands separators and a
// fixed two-decimal fraction. TTB additionally prefixes a sign.
var (
	moneyRe       = regexp.MustCompile(`^\d{1,3}(?:,\d{3})*\.\d{2}$`)
	looseMoneyRe  = regexp.MustCompile(`^[\d,]+\.\d{2}$`)
	signedMoneyRe = regexp.MustCompile(`^[+-]?\d{1,3}(?:,\d{3})*\.\d{2}$`)
)

// IsMoney reports whether s is an unsigned Baht amount with strict grouping
// ("12,278.00", "875.50").
func IsMoney(s string) bool { return moneyRe.MatchString(s) }

// IsLooseMoney accepts amounts whose thousands grouping may be irregular, as
// seen on KTB statements.
func IsLooseMoney(s string) bool { return looseMoneyRe.MatchString(s) }

// IsSignedMoney reports whether s is a Baht amount with an optional +/- sign.
func IsSignedMoney(s string) bool { return signedMoneyRe.MatchString(s) }

// ParseAmount parses an unsigned Baht amount, stripping thousands separators.
func ParseAmount(s string) (decimal.Decimal, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return d, nil
}

// ParseSignedAmount parses a signed Baht amount into its magnitude and
// direction: "+" means credit, "-" means debit. Unsigned input is treated as
// a credit, matching how TTB renders incoming transfers.
func ParseSignedAmount(s string) (decimal.Decimal, bool, error) {
	s = strings.TrimSpace(s)
	isCredit := true
	switch {
	case strings.HasPrefix(s, "-"):
		isCredit = false
		s = s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}

	amount, err := ParseAmount(s)
	if err != nil {
		return decimal.Zero, false, err
	}
	return amount, isCredit, nil
}
