// Package salary classifies which credit transactions of a parsed statement
// most likely represent a recurring salary deposit. The pipeline is
// deterministic: amount clustering, multi-factor integer scoring against an
// immutable keyword configuration, then confidence grading and an optional
// check against an externally supplied expected gross amount.
package salary

import "github.com/shopspring/decimal"

// Config is the immutable scoring configuration. It carries no mutable
// state, so one value may be shared across any number of concurrent
// analyses.
type Config struct {
	// SalaryKeywords mark a description as payroll-like. Thai entries must
	// stay in Thai script; matching is done on case-folded text with the
	// Thai Unicode block preserved.
	SalaryKeywords []string

	// ExclusionKeywords hard-disqualify a transaction: e-wallets, cash and
	// cheque movements, ATM codes, convenience chains. A match zeroes the
	// score regardless of every other factor.
	ExclusionKeywords []string

	// ClusterTolerance is the relative deviation from a cluster's running
	// mean within which an amount still joins that cluster.
	ClusterTolerance decimal.Decimal

	// PayrollHourStart and PayrollHourEnd bound the posting window (local
	// hour, both inclusive) in which Thai payroll batches land.
	PayrollHourStart int
	PayrollHourEnd   int

	// HighConfidenceScore is the winning score at or above which the
	// analysis is graded high confidence.
	HighConfidenceScore int

	// MatchTolerancePercent is the inclusive relative difference, in
	// percent, within which a detected amount counts as matching the
	// caller's expected gross.
	MatchTolerancePercent decimal.Decimal
}

// Scoring weights. The magnitude buckets exist because a month of small QR
// transfers would otherwise statistically outvote one large payroll credit.
const (
	keywordScore  = 5
	employerScore = 3
	windowScore   = 2
	clusterScore  = 3

	magnitudeLarge  = 8  // cluster mean >= 50,000
	magnitudeMedium = 5  // cluster mean >= 20,000
	magnitudeSmall  = 3  // cluster mean >= 10,000
	magnitudeTiny   = -5 // cluster mean < 1,000
)

var (
	magnitudeLargeFloor  = decimal.NewFromInt(50_000)
	magnitudeMediumFloor = decimal.NewFromInt(20_000)
	magnitudeSmallFloor  = decimal.NewFromInt(10_000)
	magnitudeTinyCeiling = decimal.NewFromInt(1_000)
)

// DefaultConfig returns the production keyword lists and thresholds tuned
// for Thai statements.
func DefaultConfig() Config {
	return Config{
		SalaryKeywords: []string{
			"เงินเดือน",
			"BSD02",
			"IORSDT",
			"PAYROLL",
			"SALARY",
			"เงินโอนเข้า",
			"รับโอนเงินอัตโนมัติ",
		},
		ExclusionKeywords: []string{
			"TRUEMONEY",
			"WALLET",
			"ทรูมันนี่",
			"EWALLETID",
			"PROMPTPAY",
			"พร้อมเพย์",
			"ถอนเงิน",
			"เช็ค",
			"CHEQUE WITHDRAW",
			"ATM",
			"MORISW",
			"MORWSW",
			"NMIDSW",
			"ATSWCR",
			"เซเว่น อีเลฟเว่น",
			"7-ELEVEN",
			"โลตัส",
			"LOTUS",
		},
		ClusterTolerance:      decimal.NewFromFloat(0.03),
		PayrollHourStart:      1,
		PayrollHourEnd:        6,
		HighConfidenceScore:   10,
		MatchTolerancePercent: decimal.NewFromInt(5),
	}
}
