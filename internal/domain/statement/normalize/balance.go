package normalize

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrInconsistentBalance signals that a running-balance delta does not match
// the transaction amount. It never escapes a parser; it only routes the
// caller onto its keyword-fallback path.
var ErrInconsistentBalance = errors.New("balance delta does not match transaction amount")

// balanceTolerance absorbs the rounding slack seen between consecutive
// printed balances (satang-level).
var balanceTolerance = decimal.NewFromFloat(0.01)

// InferDirection decides credit/debit from the running-balance delta around a
// transaction: delta = after - before. When |delta| matches the amount within
// the absolute tolerance, the sign of the delta is the direction. Otherwise
// it returns ErrInconsistentBalance and the caller falls back to keywords.
func InferDirection(amount, balanceBefore, balanceAfter decimal.Decimal) (bool, error) {
	delta := balanceAfter.Sub(balanceBefore)
	if delta.Abs().Sub(amount).Abs().GreaterThan(balanceTolerance) {
		return false, ErrInconsistentBalance
	}
	return delta.Sign() > 0, nil
}

// InferDirectionWithFallback applies InferDirection and, when the balances
// disagree with the amount, falls back to scanning text for credit-hint
// keywords. With no balance and no keyword match it defaults to debit, the
// conservative reading for unmarked movements.
func InferDirectionWithFallback(amount decimal.Decimal, balanceBefore, balanceAfter *decimal.Decimal, text string, creditHints []string) bool {
	if balanceBefore != nil && balanceAfter != nil {
		if isCredit, err := InferDirection(amount, *balanceBefore, *balanceAfter); err == nil {
			return isCredit
		}
	}

	folded := Fold(text)
	for _, hint := range creditHints {
		if hint != "" && containsFolded(folded, hint) {
			return true
		}
	}
	return false
}
