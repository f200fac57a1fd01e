// Package service orchestrates the full statement pipeline: text extraction,
// bank detection, parsing, salary analysis, PII masking, audit indexing,
// archiving and report generation.
package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/FACorreiaa/thai-statement-engine/internal/domain/archive"
	"github.com/FACorreiaa/thai-statement-engine/internal/domain/audit"
	"github.com/FACorreiaa/thai-statement-engine/internal/domain/masking"
	"github.com/FACorreiaa/thai-statement-engine/internal/domain/report"
	"github.com/FACorreiaa/thai-statement-engine/internal/domain/salary"
	"github.com/FACorreiaa/thai-statement-engine/internal/domain/statement"
	"github.com/FACorreiaa/thai-statement-engine/internal/domain/statement/detect"
	"github.com/FACorreiaa/thai-statement-engine/internal/domain/statement/parse"
	"github.com/FACorreiaa/thai-statement-engine/internal/pdftext"
	"github.com/FACorreiaa/thai-statement-engine/pkg/config"
	"github.com/FACorreiaa/thai-statement-engine/pkg/metrics"
	"github.com/FACorreiaa/thai-statement-engine/pkg/storage"
)

// Service runs the statement pipeline. Collaborators are optional; a bare
// Service still detects, parses and analyzes.
type Service struct {
	scorer *salary.Scorer
	logger *slog.Logger
	tracer trace.Tracer

	metrics     *metrics.Metrics
	index       *audit.Index
	archiveRepo archive.ArchiveRepository
	store       storage.Storage
	limiter     *rate.Limiter

	maskPII     bool
	pdfPassword string
}

// New creates a pipeline service with the given scoring configuration.
func New(cfg salary.Config, logger *slog.Logger) *Service {
	return &Service{
		scorer:  salary.NewScorer(cfg),
		logger:  logger,
		tracer:  otel.Tracer("thai-statement-engine"),
		maskPII: true,
	}
}

// WithMetrics attaches Prometheus instrumentation.
func (s *Service) WithMetrics(m *metrics.Metrics) *Service {
	s.metrics = m
	return s
}

// WithAuditIndex attaches the searchable transaction index.
func (s *Service) WithAuditIndex(idx *audit.Index) *Service {
	s.index = idx
	return s
}

// WithArchive attaches the persistent analysis archive.
func (s *Service) WithArchive(repo archive.ArchiveRepository) *Service {
	s.archiveRepo = repo
	return s
}

// WithStorage attaches the report artifact store.
func (s *Service) WithStorage(store storage.Storage) *Service {
	s.store = store
	return s
}

// WithRateLimit throttles Analyze calls, mainly for watch mode.
func (s *Service) WithRateLimit(perSecond float64, burst int) *Service {
	s.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	return s
}

// WithMasking toggles PII masking of exported and indexed text.
func (s *Service) WithMasking(enabled bool) *Service {
	s.maskPII = enabled
	return s
}

// WithPDFPassword sets the password used for encrypted statements.
func (s *Service) WithPDFPassword(password string) *Service {
	s.pdfPassword = password
	return s
}

// SalaryConfig merges the environment engine settings into the default
// scoring configuration.
func SalaryConfig(cfg config.EngineConfig) salary.Config {
	sc := salary.DefaultConfig()
	if cfg.ClusterTolerancePercent > 0 {
		sc.ClusterTolerance = decimal.NewFromFloat(cfg.ClusterTolerancePercent / 100)
	}
	if cfg.PayrollHourStart > 0 || cfg.PayrollHourEnd > 0 {
		sc.PayrollHourStart = cfg.PayrollHourStart
		sc.PayrollHourEnd = cfg.PayrollHourEnd
	}
	if cfg.MatchTolerancePercent > 0 {
		sc.MatchTolerancePercent = decimal.NewFromFloat(cfg.MatchTolerancePercent)
	}
	return sc
}

// AnalyzeRequest identifies one statement to process. Either SourcePath or a
// pre-extracted Document must be set; Document wins when both are present.
type AnalyzeRequest struct {
	SourcePath string
	Document   *statement.Document
	Hints      salary.Hints
}

// AnalyzeResult is the outcome of one pipeline run. When masking is enabled,
// Statement and Analysis carry placeholder tokens and MaskMapping holds the
// reversible token table.
type AnalyzeResult struct {
	RunID uuid.UUID
	Bank  statement.Bank

	Statement *statement.Statement
	Analysis  *salary.Analysis
	Skipped   []parse.BlockError

	// AnalysisID is the archive row id, set only when archiving is enabled
	// and succeeded.
	AnalysisID *uuid.UUID

	MaskMapping map[string]string
	Artifacts   []*storage.ArtifactInfo
}

// Analyze runs the full pipeline for one statement.
func (s *Service) Analyze(ctx context.Context, req AnalyzeRequest) (*AnalyzeResult, error) {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	ctx, span := s.tracer.Start(ctx, "statement.Analyze")
	defer span.End()

	start := time.Now()

	doc := req.Document
	if doc == nil {
		var err error
		doc, err = pdftext.Extract(req.SourcePath, s.pdfPassword)
		if err != nil {
			s.countFailure(err)
			span.RecordError(err)
			return nil, fmt.Errorf("extract %s: %w", req.SourcePath, err)
		}
	}

	bank, err := detect.DetectDocument(doc)
	if err != nil {
		s.countFailure(err)
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.String("bank", string(bank)))

	parser, err := parse.ForBank(bank)
	if err != nil {
		s.countFailure(err)
		return nil, err
	}

	res, err := parser.Parse(doc)
	if err != nil {
		s.countFailure(err)
		span.RecordError(err)
		return nil, err
	}

	st := res.Statement(bank)
	for _, skip := range res.Skipped {
		s.logger.Warn("skipped malformed block",
			slog.Int("page", skip.Page),
			slog.Int("line", skip.Line),
			slog.String("reason", skip.Message),
		)
	}
	if s.metrics != nil {
		s.metrics.TransactionsParsed.WithLabelValues(string(bank), "credit").Add(float64(len(st.Credits())))
		s.metrics.TransactionsParsed.WithLabelValues(string(bank), "debit").Add(float64(len(st.Debits())))
	}

	// Score on the raw text; masking would destroy keyword and employer
	// matches. Masked copies are derived afterwards for everything that
	// leaves the process.
	analysis := s.scorer.Analyze(st, req.Hints)

	out := &AnalyzeResult{
		RunID:     uuid.New(),
		Bank:      bank,
		Statement: st,
		Analysis:  analysis,
		Skipped:   res.Skipped,
	}

	if s.maskPII {
		masker := masking.NewMasker()
		out.Statement = masker.MaskStatement(st)
		out.Analysis = maskAnalysis(masker, analysis)
		out.MaskMapping = masker.Mapping()
	}

	if s.index != nil {
		if err := s.index.IndexTransactions(out.RunID.String(), bank, out.Analysis.Scored); err != nil {
			s.logger.Error("audit indexing failed", slog.Any("error", err))
		}
	}

	if s.archiveRepo != nil {
		rec, scored := archive.NewRecord(req.SourcePath, bank, out.Analysis, req.Hints)
		id, err := s.archiveRepo.SaveAnalysis(ctx, rec, scored)
		if err != nil {
			s.logger.Error("archiving analysis failed", slog.Any("error", err))
		} else {
			out.AnalysisID = &id
			if s.metrics != nil {
				s.metrics.ArchivedAnalyses.Inc()
			}
		}
	}

	if s.store != nil {
		out.Artifacts = s.writeArtifacts(ctx, out)
	}

	if s.metrics != nil {
		s.metrics.StatementsProcessed.WithLabelValues(string(bank)).Inc()
		s.metrics.ConfidenceOutcomes.WithLabelValues(string(analysis.Confidence)).Inc()
		s.metrics.ProcessingDuration.WithLabelValues(string(bank)).Observe(time.Since(start).Seconds())
	}
	span.SetAttributes(
		attribute.Int("transactions", len(st.Transactions)),
		attribute.String("confidence", string(analysis.Confidence)),
	)

	s.logger.Info("statement analyzed",
		slog.String("bank", string(bank)),
		slog.Int("transactions", len(st.Transactions)),
		slog.Int("skipped_blocks", len(res.Skipped)),
		slog.String("confidence", string(analysis.Confidence)),
		slog.String("detected_amount", analysis.DetectedAmount.String()),
		slog.Duration("took", time.Since(start)),
	)
	return out, nil
}

// countFailure buckets a pipeline failure into a metrics label.
func (s *Service) countFailure(err error) {
	if s.metrics == nil {
		return
	}
	reason := "parse"
	switch {
	case errors.Is(err, statement.ErrEmptyDocument):
		reason = "empty_document"
	case errors.Is(err, statement.ErrUnsupportedFormat):
		reason = "unsupported_format"
	case errors.Is(err, statement.ErrAuthentication):
		reason = "authentication"
	}
	s.metrics.ParseFailures.WithLabelValues(reason).Inc()
}

// maskAnalysis derives a masked copy of the analysis, sharing the masker's
// token table so identical values keep identical placeholders.
func maskAnalysis(m *masking.Masker, a *salary.Analysis) *salary.Analysis {
	masked := *a
	masked.Scored = make([]statement.Transaction, len(a.Scored))
	for i, tx := range a.Scored {
		tx.Description = m.MaskText(tx.Description)
		tx.Payer = m.MaskText(tx.Payer)
		masked.Scored[i] = tx
	}
	masked.ClosestPayer = m.MaskText(a.ClosestPayer)
	return &masked
}

// writeArtifacts renders the CSV, XLSX and mask-mapping artifacts for one
// run. Artifact failures are logged, never fatal.
func (s *Service) writeArtifacts(ctx context.Context, out *AnalyzeResult) []*storage.ArtifactInfo {
	var artifacts []*storage.ArtifactInfo

	var csvBuf bytes.Buffer
	if err := report.WriteCSV(&csvBuf, out.Analysis.Scored); err != nil {
		s.logger.Error("csv artifact failed", slog.Any("error", err))
	} else if info, err := s.store.Save(ctx, out.RunID, "scored_transactions.csv", storage.ContentTypeCSV, &csvBuf); err != nil {
		s.logger.Error("csv artifact failed", slog.Any("error", err))
	} else {
		artifacts = append(artifacts, info)
	}

	var xlsxBuf bytes.Buffer
	if err := report.WriteXLSX(&xlsxBuf, out.Bank, out.Analysis); err != nil {
		s.logger.Error("xlsx artifact failed", slog.Any("error", err))
	} else if info, err := s.store.Save(ctx, out.RunID, "salary_analysis.xlsx", storage.ContentTypeXLSX, &xlsxBuf); err != nil {
		s.logger.Error("xlsx artifact failed", slog.Any("error", err))
	} else {
		artifacts = append(artifacts, info)
	}

	if len(out.MaskMapping) > 0 {
		data, err := json.MarshalIndent(out.MaskMapping, "", "  ")
		if err != nil {
			s.logger.Error("mask mapping artifact failed", slog.Any("error", err))
		} else if info, err := s.store.Save(ctx, out.RunID, "mask_mapping.json", storage.ContentTypeJSON, bytes.NewReader(data)); err != nil {
			s.logger.Error("mask mapping artifact failed", slog.Any("error", err))
		} else {
			artifacts = append(artifacts, info)
		}
	}

	return artifacts
}
