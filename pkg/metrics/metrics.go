// Package metrics exposes Prometheus instrumentation for the statement
// engine.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds every collector the pipeline reports into.
type Metrics struct {
	StatementsProcessed *prometheus.CounterVec
	ParseFailures       *prometheus.CounterVec
	TransactionsParsed  *prometheus.CounterVec
	ConfidenceOutcomes  *prometheus.CounterVec
	ProcessingDuration  *prometheus.HistogramVec
	ArchivedAnalyses    prometheus.Counter
	RetentionDeleted    prometheus.Counter

	registry *prometheus.Registry
}

// New creates a metrics set on its own registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		StatementsProcessed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "statements_processed_total",
			Help: "Statements fully processed, labelled by bank format.",
		}, []string{"bank"}),
		ParseFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "statement_parse_failures_total",
			Help: "Documents rejected before analysis, labelled by reason.",
		}, []string{"reason"}),
		TransactionsParsed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "statement_transactions_parsed_total",
			Help: "Transactions extracted from statements, labelled by bank and direction.",
		}, []string{"bank", "direction"}),
		ConfidenceOutcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "salary_confidence_outcomes_total",
			Help: "Salary analyses grouped by confidence grade.",
		}, []string{"confidence"}),
		ProcessingDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "statement_processing_duration_seconds",
			Help:    "Wall time for the full pipeline per statement.",
			Buckets: prometheus.DefBuckets,
		}, []string{"bank"}),
		ArchivedAnalyses: factory.NewCounter(prometheus.CounterOpts{
			Name: "salary_analyses_archived_total",
			Help: "Analysis results persisted to the archive.",
		}),
		RetentionDeleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "salary_analyses_retention_deleted_total",
			Help: "Archived analyses removed by the retention sweep.",
		}),
		registry: reg,
	}
}

// Handler returns the scrape handler for this metrics set.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve runs a scrape endpoint on the given port until ctx is cancelled.
func (m *Metrics) Serve(ctx context.Context, port int, logger *slog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("metrics server shutdown", "error", err)
		}
	}()

	logger.Info("metrics endpoint listening", "port", port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
