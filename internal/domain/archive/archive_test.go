package archive

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/thai-statement-engine/internal/domain/salary"
	"github.com/FACorreiaa/thai-statement-engine/internal/domain/statement"
)

func TestNewRecord(t *testing.T) {
	expected := decimal.RequireFromString("84000")
	diff := decimal.RequireFromString("150")
	pct := decimal.RequireFromString("0.17857142")
	matches := true
	cluster := 0

	analysis := &salary.Analysis{
		DetectedAmount:       decimal.RequireFromString("84150"),
		Confidence:           salary.ConfidenceHigh,
		TransactionsAnalyzed: 12,
		ClustersFound:        2,
		TopCandidatesCount:   3,
		MatchesExpected:      &matches,
		Difference:           &diff,
		DifferencePercentage: &pct,
		Scored: []statement.Transaction{
			{
				Page:        1,
				LineIndex:   4,
				Date:        time.Date(2025, 9, 30, 0, 0, 0, 0, time.UTC),
				Time:        "02:30",
				Description: "เงินเดือน/อื่นๆ (BSD02)",
				Amount:      decimal.RequireFromString("84150.00"),
				IsCredit:    true,
				Payer:       "SG CAPITAL",
				Score:       19,
				ClusterID:   &cluster,
			},
		},
	}

	rec, scored := NewRecord("statement.pdf", statement.BankKTB, analysis, salary.Hints{
		ExpectedEmployer: "SG CAPITAL",
		ExpectedGross:    &expected,
	})

	assert.Equal(t, "statement.pdf", rec.SourceFile)
	assert.Equal(t, statement.BankKTB, rec.Bank)
	assert.Equal(t, int64(8415000), rec.DetectedAmountSatang)
	assert.Equal(t, salary.ConfidenceHigh, rec.Confidence)
	require.NotNil(t, rec.ExpectedAmountSatang)
	assert.Equal(t, int64(8400000), *rec.ExpectedAmountSatang)
	require.NotNil(t, rec.DifferenceSatang)
	assert.Equal(t, int64(15000), *rec.DifferenceSatang)
	require.NotNil(t, rec.DifferencePercentage)
	assert.Equal(t, "0.1786", rec.DifferencePercentage.String())
	require.NotNil(t, rec.MatchesExpected)
	assert.True(t, *rec.MatchesExpected)

	require.Len(t, scored, 1)
	assert.Equal(t, int64(8415000), scored[0].AmountSatang)
	assert.Equal(t, "SG CAPITAL", scored[0].Payer)
	assert.Equal(t, 19, scored[0].Score)
	require.NotNil(t, scored[0].ClusterID)
	assert.Equal(t, 0, *scored[0].ClusterID)

	assert.True(t, rec.DetectedAmount().Equal(decimal.RequireFromString("84150")))
}

func TestRepository_SaveAnalysis(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewRepository(mock)
	id := uuid.New()
	cluster := 1

	rec := AnalysisRecord{
		SourceFile:           "kbank_2025.pdf",
		Bank:                 statement.BankKBANK,
		DetectedAmountSatang: 5010000,
		Confidence:           salary.ConfidenceHigh,
		TransactionsAnalyzed: 40,
		ClustersFound:        3,
		TopCandidates:        2,
		ClosestPayer:         "ACME CO",
	}
	scored := []ScoredRecord{
		{
			Page:         1,
			LineIndex:    0,
			Date:         time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
			Time:         "01:30",
			Channel:      "K PLUS",
			Description:  "รับโอนเงินอัตโนมัติ",
			AmountSatang: 5000000,
			IsCredit:     true,
			Payer:        "ACME CO",
			Score:        13,
			ClusterID:    &cluster,
		},
	}

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO salary_analyses`).
		WithArgs(
			rec.SourceFile, "KBANK", rec.DetectedAmountSatang, "high",
			rec.TransactionsAnalyzed, rec.ClustersFound, rec.TopCandidates,
			rec.ExpectedAmountSatang, rec.MatchesExpected, rec.DifferenceSatang,
			rec.DifferencePercentage, rec.ClosestPayer,
		).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(id))
	mock.ExpectExec(`INSERT INTO scored_transactions`).
		WithArgs(
			id, scored[0].Page, scored[0].LineIndex, scored[0].Date,
			scored[0].Time, scored[0].Channel, scored[0].Description,
			scored[0].AmountSatang, scored[0].IsCredit, scored[0].Payer,
			scored[0].Score, scored[0].ClusterID,
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	got, err := repo.SaveAnalysis(context.Background(), rec, scored)
	require.NoError(t, err)
	assert.Equal(t, id, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetAnalysis(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewRepository(mock)
	id := uuid.New()
	now := time.Now()

	columns := []string{
		"id", "source_file", "bank", "detected_amount_minor", "confidence",
		"transactions_analyzed", "clusters_found", "top_candidates",
		"expected_amount_minor", "matches_expected", "difference_minor",
		"difference_percentage", "closest_payer", "created_at",
	}

	mock.ExpectQuery(`SELECT (.+) FROM salary_analyses WHERE id`).
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows(columns).AddRow(
			id, "scb_oct.pdf", statement.BankSCB, int64(6000000),
			salary.ConfidenceMedium, 25, 2, 1,
			nil, nil, nil, nil, "", now,
		))

	rec, err := repo.GetAnalysis(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, statement.BankSCB, rec.Bank)
	assert.Equal(t, int64(6000000), rec.DetectedAmountSatang)
	assert.True(t, rec.DetectedAmount().Equal(decimal.RequireFromString("60000")))
	assert.Nil(t, rec.ExpectedAmountSatang)
	assert.Nil(t, rec.MatchesExpected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListRecent(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewRepository(mock)
	now := time.Now()

	columns := []string{
		"id", "source_file", "bank", "detected_amount_minor", "confidence",
		"transactions_analyzed", "clusters_found", "top_candidates",
		"expected_amount_minor", "matches_expected", "difference_minor",
		"difference_percentage", "closest_payer", "created_at",
	}

	mock.ExpectQuery(`SELECT (.+) FROM salary_analyses`).
		WithArgs(10).
		WillReturnRows(pgxmock.NewRows(columns).
			AddRow(uuid.New(), "a.pdf", statement.BankKTB, int64(8415000),
				salary.ConfidenceHigh, 12, 2, 3, nil, nil, nil, nil, "", now).
			AddRow(uuid.New(), "b.pdf", statement.BankTTB, int64(2500000),
				salary.ConfidenceMedium, 8, 1, 1, nil, nil, nil, nil, "", now.Add(-time.Hour)))

	recs, err := repo.ListRecent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "a.pdf", recs[0].SourceFile)
	assert.Equal(t, statement.BankTTB, recs[1].Bank)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_DeleteOlderThan(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewRepository(mock)
	cutoff := time.Now().AddDate(0, -6, 0)

	mock.ExpectExec(`DELETE FROM salary_analyses`).
		WithArgs(cutoff).
		WillReturnResult(pgxmock.NewResult("DELETE", 4))

	deleted, err := repo.DeleteOlderThan(context.Background(), cutoff)
	require.NoError(t, err)
	assert.Equal(t, int64(4), deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
