// Package archive persists completed salary analyses so past runs can be
// queried and aged out. Amounts are stored as integer satang.
package archive

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/FACorreiaa/thai-statement-engine/internal/domain/salary"
	"github.com/FACorreiaa/thai-statement-engine/internal/domain/statement"
	"github.com/FACorreiaa/thai-statement-engine/pkg/money"
)

// AnalysisRecord is one archived analysis run.
type AnalysisRecord struct {
	ID         uuid.UUID
	SourceFile string
	Bank       statement.Bank

	DetectedAmountSatang int64
	Confidence           salary.Confidence
	TransactionsAnalyzed int
	ClustersFound        int
	TopCandidates        int

	ExpectedAmountSatang *int64
	MatchesExpected      *bool
	DifferenceSatang     *int64
	DifferencePercentage *decimal.Decimal

	ClosestPayer string
	CreatedAt    time.Time
}

// ScoredRecord is one scored credit belonging to an archived analysis.
type ScoredRecord struct {
	ID         uuid.UUID
	AnalysisID uuid.UUID

	Page         int
	LineIndex    int
	Date         time.Time
	Time         string
	Channel      string
	Description  string
	AmountSatang int64
	IsCredit     bool
	Payer        string
	Score        int
	ClusterID    *int
}

// NewRecord converts an analysis result into its storable form.
func NewRecord(sourceFile string, bank statement.Bank, analysis *salary.Analysis, hints salary.Hints) (AnalysisRecord, []ScoredRecord) {
	rec := AnalysisRecord{
		SourceFile:           sourceFile,
		Bank:                 bank,
		DetectedAmountSatang: money.SatangFromDecimal(analysis.DetectedAmount),
		Confidence:           analysis.Confidence,
		TransactionsAnalyzed: analysis.TransactionsAnalyzed,
		ClustersFound:        analysis.ClustersFound,
		TopCandidates:        analysis.TopCandidatesCount,
		MatchesExpected:      analysis.MatchesExpected,
		ClosestPayer:         analysis.ClosestPayer,
	}
	if hints.ExpectedGross != nil {
		expected := money.SatangFromDecimal(*hints.ExpectedGross)
		rec.ExpectedAmountSatang = &expected
	}
	if analysis.Difference != nil {
		diff := money.SatangFromDecimal(*analysis.Difference)
		rec.DifferenceSatang = &diff
	}
	if analysis.DifferencePercentage != nil {
		pct := analysis.DifferencePercentage.Round(4)
		rec.DifferencePercentage = &pct
	}

	scored := make([]ScoredRecord, 0, len(analysis.Scored))
	for _, tx := range analysis.Scored {
		scored = append(scored, ScoredRecord{
			Page:         tx.Page,
			LineIndex:    tx.LineIndex,
			Date:         tx.Date,
			Time:         tx.Time,
			Channel:      tx.Channel,
			Description:  tx.Description,
			AmountSatang: money.SatangFromDecimal(tx.Amount),
			IsCredit:     tx.IsCredit,
			Payer:        tx.Payer,
			Score:        tx.Score,
			ClusterID:    tx.ClusterID,
		})
	}
	return rec, scored
}

// DetectedAmount returns the archived estimate as a baht decimal.
func (r *AnalysisRecord) DetectedAmount() decimal.Decimal {
	return money.DecimalFromSatang(r.DetectedAmountSatang)
}

// ArchiveRepository defines the persistence operations for analysis runs.
type ArchiveRepository interface {
	SaveAnalysis(ctx context.Context, rec AnalysisRecord, scored []ScoredRecord) (uuid.UUID, error)
	GetAnalysis(ctx context.Context, id uuid.UUID) (*AnalysisRecord, error)
	GetScored(ctx context.Context, analysisID uuid.UUID) ([]ScoredRecord, error)
	ListRecent(ctx context.Context, limit int) ([]AnalysisRecord, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
