package salary

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/FACorreiaa/thai-statement-engine/internal/domain/statement"
	"github.com/FACorreiaa/thai-statement-engine/internal/domain/statement/normalize"
)

// Scorer computes salary analyses from parsed statements. Build one per
// configuration and reuse it; all state is immutable after construction.
type Scorer struct {
	cfg        Config
	keywords   *KeywordMatcher
	exclusions *KeywordMatcher
}

// NewScorer compiles the configuration's keyword sets into matchers.
func NewScorer(cfg Config) *Scorer {
	return &Scorer{
		cfg:        cfg,
		keywords:   NewKeywordMatcher(cfg.SalaryKeywords),
		exclusions: NewKeywordMatcher(cfg.ExclusionKeywords),
	}
}

// Analyze runs clustering and scoring over the statement's credits and
// produces the salary estimate. It never fails: a statement with no
// positive-scoring credit yields ConfidenceNone with a zero amount.
func (s *Scorer) Analyze(st *statement.Statement, hints Hints) *Analysis {
	credits := st.Credits()

	clusters, assignments := ClusterCredits(credits, s.cfg.ClusterTolerance)

	analysis := &Analysis{
		DetectedAmount:       decimal.Zero,
		Confidence:           ConfidenceNone,
		TransactionsAnalyzed: len(st.Transactions),
		ClustersFound:        len(clusters),
		Scored:               make([]statement.Transaction, len(credits)),
	}

	employer := normalize.Fold(hints.ExpectedEmployer)
	employerMatched := false

	for i, tx := range credits {
		clusterID := assignments[i]
		scored := tx
		scored.ClusterID = &clusterID
		scored.Score = s.scoreTransaction(&scored, clusters[clusterID], employer)
		if employer != "" && normalize.Fold(scored.Payer) == employer {
			employerMatched = true
		}
		analysis.Scored[i] = scored
	}

	if employer != "" && !employerMatched {
		analysis.ClosestPayer = ClosestPayer(hints.ExpectedEmployer, payers(credits))
	}

	winner, ok := pickWinner(analysis.Scored)
	if !ok {
		return analysis
	}

	analysis.DetectedAmount = clusters[*winner.ClusterID].Mean
	analysis.TopCandidatesCount = countTopCandidates(analysis.Scored)
	if winner.Score >= s.cfg.HighConfidenceScore {
		analysis.Confidence = ConfidenceHigh
	} else {
		analysis.Confidence = ConfidenceMedium
	}

	if hints.ExpectedGross != nil {
		s.compareExpected(analysis, *hints.ExpectedGross)
	}
	return analysis
}

// scoreTransaction sums the independent factors. An exclusion-keyword match
// disqualifies the transaction outright: the score is zero no matter what
// else matches.
func (s *Scorer) scoreTransaction(tx *statement.Transaction, cluster Cluster, foldedEmployer string) int {
	if s.exclusions.Matches(tx.Description) {
		return 0
	}

	score := 0
	if s.keywords.Matches(tx.Description) {
		score += keywordScore
	}
	if foldedEmployer != "" && normalize.Fold(tx.Payer) == foldedEmployer {
		score += employerScore
	}
	if h := tx.Hour(); h >= s.cfg.PayrollHourStart && h <= s.cfg.PayrollHourEnd {
		score += windowScore
	}
	if cluster.Size >= 2 {
		score += clusterScore
	}
	score += magnitudeFactor(cluster.Mean)
	return score
}

// magnitudeFactor buckets the cluster's mean amount.
func magnitudeFactor(mean decimal.Decimal) int {
	switch {
	case mean.GreaterThanOrEqual(magnitudeLargeFloor):
		return magnitudeLarge
	case mean.GreaterThanOrEqual(magnitudeMediumFloor):
		return magnitudeMedium
	case mean.GreaterThanOrEqual(magnitudeSmallFloor):
		return magnitudeSmall
	case mean.LessThan(magnitudeTinyCeiling):
		return magnitudeTiny
	default:
		return 0
	}
}

// pickWinner returns the best positive-scoring candidate: highest score,
// ties broken by the latest date, then the largest amount.
func pickWinner(scored []statement.Transaction) (statement.Transaction, bool) {
	best := -1
	for i := range scored {
		if scored[i].Score <= 0 {
			continue
		}
		if best == -1 || betterCandidate(scored[i], scored[best]) {
			best = i
		}
	}
	if best == -1 {
		return statement.Transaction{}, false
	}
	return scored[best], true
}

// countTopCandidates counts transactions scoring at or above the median of
// the positive scores. Comparisons are done on doubled values so an even
// sized set needs no fractional arithmetic.
func countTopCandidates(scored []statement.Transaction) int {
	positive := make([]int, 0, len(scored))
	for _, tx := range scored {
		if tx.Score > 0 {
			positive = append(positive, tx.Score)
		}
	}
	if len(positive) == 0 {
		return 0
	}
	sort.Ints(positive)

	n := len(positive)
	medianTwice := 2 * positive[n/2]
	if n%2 == 0 {
		medianTwice = positive[n/2-1] + positive[n/2]
	}

	count := 0
	for _, tx := range scored {
		if tx.Score > 0 && 2*tx.Score >= medianTwice {
			count++
		}
	}
	return count
}

// compareExpected fills in the difference fields against the caller's
// expected gross. The match tolerance boundary is inclusive.
func (s *Scorer) compareExpected(analysis *Analysis, expected decimal.Decimal) {
	if expected.Sign() <= 0 {
		return
	}

	diff := analysis.DetectedAmount.Sub(expected)
	pct := diff.Div(expected).Mul(decimal.NewFromInt(100))
	matches := pct.Abs().LessThanOrEqual(s.cfg.MatchTolerancePercent)

	analysis.Difference = &diff
	analysis.DifferencePercentage = &pct
	analysis.MatchesExpected = &matches
}

func payers(credits []statement.Transaction) []string {
	out := make([]string, 0, len(credits))
	for _, tx := range credits {
		if tx.Payer != "" {
			out = append(out, tx.Payer)
		}
	}
	return out
}
