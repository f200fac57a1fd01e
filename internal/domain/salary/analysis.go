package salary

import (
	"github.com/shopspring/decimal"

	"github.com/FACorreiaa/thai-statement-engine/internal/domain/statement"
)

// Confidence grades the salary estimate.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
	ConfidenceNone   Confidence = "none"
)

// Hints are the caller-supplied expectations. Both fields are optional.
type Hints struct {
	// ExpectedEmployer is compared, case and whitespace normalized, against
	// each credit's extracted payer.
	ExpectedEmployer string

	// ExpectedGross, when set, triggers the difference / matches-expected
	// validation on the result.
	ExpectedGross *decimal.Decimal
}

// Analysis is the engine's final output for one statement. It is immutable
// once computed.
type Analysis struct {
	DetectedAmount decimal.Decimal
	Confidence     Confidence

	TransactionsAnalyzed int
	ClustersFound        int
	TopCandidatesCount   int

	// Populated only when Hints.ExpectedGross was supplied.
	MatchesExpected      *bool
	Difference           *decimal.Decimal
	DifferencePercentage *decimal.Decimal

	// Scored copies of the credit transactions, in source order, with Score
	// and ClusterID written. The parsed statement itself is never mutated.
	Scored []statement.Transaction

	// ClosestPayer is a diagnostic: when an employer hint was given but no
	// payer matched it exactly, this names the most similar payer seen.
	ClosestPayer string
}

// Winner returns the highest-scoring transaction, if any scored positive.
func (a *Analysis) Winner() (statement.Transaction, bool) {
	if a.Confidence == ConfidenceNone {
		return statement.Transaction{}, false
	}
	best := -1
	for i, tx := range a.Scored {
		if best == -1 || betterCandidate(tx, a.Scored[best]) {
			best = i
		}
	}
	if best == -1 || a.Scored[best].Score <= 0 {
		return statement.Transaction{}, false
	}
	return a.Scored[best], true
}

// betterCandidate orders candidates: higher score first, ties broken by the
// later date, then by the larger amount.
func betterCandidate(a, b statement.Transaction) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if !a.Date.Equal(b.Date) {
		return a.Date.After(b.Date)
	}
	return a.Amount.GreaterThan(b.Amount)
}
