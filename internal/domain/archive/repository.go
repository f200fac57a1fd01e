package archive

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBPool is the subset of pgxpool.Pool the repository needs. It is satisfied
// by *pgxpool.Pool and by pgxmock in tests.
type DBPool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Ensure Repository implements ArchiveRepository
var _ ArchiveRepository = (*Repository)(nil)

// Repository stores analysis runs in PostgreSQL.
type Repository struct {
	db DBPool
}

// NewRepository creates a new archive repository.
func NewRepository(db DBPool) *Repository {
	return &Repository{db: db}
}

const analysisColumns = `id, source_file, bank, detected_amount_minor, confidence,
	transactions_analyzed, clusters_found, top_candidates,
	expected_amount_minor, matches_expected, difference_minor,
	difference_percentage, closest_payer, created_at`

// SaveAnalysis writes the analysis and its scored credits in one transaction.
func (r *Repository) SaveAnalysis(ctx context.Context, rec AnalysisRecord, scored []ScoredRecord) (uuid.UUID, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return uuid.Nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	var id uuid.UUID
	err = tx.QueryRow(ctx, `
		INSERT INTO salary_analyses (
			source_file, bank, detected_amount_minor, confidence,
			transactions_analyzed, clusters_found, top_candidates,
			expected_amount_minor, matches_expected, difference_minor,
			difference_percentage, closest_payer
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`,
		rec.SourceFile,
		string(rec.Bank),
		rec.DetectedAmountSatang,
		string(rec.Confidence),
		rec.TransactionsAnalyzed,
		rec.ClustersFound,
		rec.TopCandidates,
		rec.ExpectedAmountSatang,
		rec.MatchesExpected,
		rec.DifferenceSatang,
		rec.DifferencePercentage,
		rec.ClosestPayer,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert analysis: %w", err)
	}

	for _, s := range scored {
		_, err = tx.Exec(ctx, `
			INSERT INTO scored_transactions (
				analysis_id, page, line_index, tx_date, tx_time, channel,
				description, amount_minor, is_credit, payer, score, cluster_id
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		`,
			id,
			s.Page,
			s.LineIndex,
			s.Date,
			s.Time,
			s.Channel,
			s.Description,
			s.AmountSatang,
			s.IsCredit,
			s.Payer,
			s.Score,
			s.ClusterID,
		)
		if err != nil {
			return uuid.Nil, fmt.Errorf("insert scored transaction: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return uuid.Nil, fmt.Errorf("commit: %w", err)
	}
	return id, nil
}

// GetAnalysis fetches one archived analysis by id.
func (r *Repository) GetAnalysis(ctx context.Context, id uuid.UUID) (*AnalysisRecord, error) {
	query := `SELECT ` + analysisColumns + ` FROM salary_analyses WHERE id = $1`

	var rec AnalysisRecord
	err := r.db.QueryRow(ctx, query, id).Scan(
		&rec.ID, &rec.SourceFile, &rec.Bank, &rec.DetectedAmountSatang,
		&rec.Confidence, &rec.TransactionsAnalyzed, &rec.ClustersFound,
		&rec.TopCandidates, &rec.ExpectedAmountSatang, &rec.MatchesExpected,
		&rec.DifferenceSatang, &rec.DifferencePercentage, &rec.ClosestPayer,
		&rec.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// GetScored fetches the scored credits of an archived analysis in source order.
func (r *Repository) GetScored(ctx context.Context, analysisID uuid.UUID) ([]ScoredRecord, error) {
	query := `
		SELECT id, analysis_id, page, line_index, tx_date, tx_time, channel,
			description, amount_minor, is_credit, payer, score, cluster_id
		FROM scored_transactions
		WHERE analysis_id = $1
		ORDER BY page, line_index
	`

	rows, err := r.db.Query(ctx, query, analysisID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scored []ScoredRecord
	for rows.Next() {
		var s ScoredRecord
		err := rows.Scan(
			&s.ID, &s.AnalysisID, &s.Page, &s.LineIndex, &s.Date, &s.Time,
			&s.Channel, &s.Description, &s.AmountSatang, &s.IsCredit,
			&s.Payer, &s.Score, &s.ClusterID,
		)
		if err != nil {
			return nil, err
		}
		scored = append(scored, s)
	}
	return scored, rows.Err()
}

// ListRecent returns the newest analyses first.
func (r *Repository) ListRecent(ctx context.Context, limit int) ([]AnalysisRecord, error) {
	query := `SELECT ` + analysisColumns + `
		FROM salary_analyses
		ORDER BY created_at DESC
		LIMIT $1`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []AnalysisRecord
	for rows.Next() {
		var rec AnalysisRecord
		err := rows.Scan(
			&rec.ID, &rec.SourceFile, &rec.Bank, &rec.DetectedAmountSatang,
			&rec.Confidence, &rec.TransactionsAnalyzed, &rec.ClustersFound,
			&rec.TopCandidates, &rec.ExpectedAmountSatang, &rec.MatchesExpected,
			&rec.DifferenceSatang, &rec.DifferencePercentage, &rec.ClosestPayer,
			&rec.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// DeleteOlderThan removes analyses created before the cutoff. Scored rows go
// with them through the foreign key cascade.
func (r *Repository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM salary_analyses WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
