// Command analyzer detects the salary of a Thai bank statement PDF.
//
// One-shot mode analyzes a single file and prints a summary; watch mode
// polls a directory and processes every new statement it finds.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/FACorreiaa/thai-statement-engine/internal/domain/payroll"
	"github.com/FACorreiaa/thai-statement-engine/internal/domain/salary"
	"github.com/FACorreiaa/thai-statement-engine/internal/domain/statement/service"
	"github.com/FACorreiaa/thai-statement-engine/pkg/config"
)

func main() {
	var (
		file     = flag.String("file", "", "statement PDF to analyze")
		watch    = flag.Bool("watch", false, "watch the input directory for new statements")
		employer = flag.String("employer", "", "expected employer name")
		expected = flag.String("expected", "", "expected gross monthly salary in baht")
	)
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("loading configuration", slog.Any("error", err))
		os.Exit(1)
	}

	deps, err := InitDependencies(cfg, logger)
	if err != nil {
		logger.Error("initializing dependencies", slog.Any("error", err))
		os.Exit(1)
	}
	defer deps.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Observability.MetricsEnabled {
		go func() {
			if err := deps.Metrics.Serve(ctx, cfg.Observability.MetricsPort, logger); err != nil {
				logger.Error("metrics server failed", slog.Any("error", err))
			}
		}()
	}

	hints := salary.Hints{ExpectedEmployer: *employer}
	if *expected != "" {
		gross, err := decimal.NewFromString(*expected)
		if err != nil {
			logger.Error("invalid -expected value", slog.String("value", *expected))
			os.Exit(1)
		}
		hints.ExpectedGross = &gross
	}

	if deps.Scheduler != nil {
		if err := deps.Scheduler.Start(); err != nil {
			logger.Error("starting retention scheduler", slog.Any("error", err))
			os.Exit(1)
		}
	}

	switch {
	case *watch:
		w := service.NewWatcher(deps.Pipeline, cfg.Watch.InputDir, cfg.Watch.PollInterval, hints, logger)
		if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("watcher stopped", slog.Any("error", err))
			os.Exit(1)
		}
	case *file != "":
		result, err := deps.Pipeline.Analyze(ctx, service.AnalyzeRequest{
			SourcePath: *file,
			Hints:      hints,
		})
		if err != nil {
			logger.Error("analysis failed", slog.Any("error", err))
			os.Exit(1)
		}
		printSummary(result)
	default:
		flag.Usage()
		os.Exit(2)
	}
}

// printSummary writes the human-readable result of a one-shot run to stdout.
func printSummary(result *service.AnalyzeResult) {
	a := result.Analysis

	fmt.Printf("Bank:                 %s\n", result.Bank)
	fmt.Printf("Transactions:         %d (%d skipped blocks)\n", len(result.Statement.Transactions), len(result.Skipped))
	fmt.Printf("Credits analyzed:     %d in %d clusters\n", a.TransactionsAnalyzed, a.ClustersFound)
	fmt.Printf("Detected salary:      %s THB (%s confidence, %d candidates)\n",
		a.DetectedAmount.StringFixed(2), a.Confidence, a.TopCandidatesCount)

	if a.MatchesExpected != nil {
		verdict := "no"
		if *a.MatchesExpected {
			verdict = "yes"
		}
		fmt.Printf("Matches expected:     %s (off by %s THB, %s%%)\n",
			verdict, a.Difference.StringFixed(2), a.DifferencePercentage.StringFixed(2))
	}
	if a.ClosestPayer != "" {
		fmt.Printf("Closest payer:        %s\n", a.ClosestPayer)
	}

	// The statement shows what landed in the account; estimate what the
	// employer paid out before tax and social security.
	if a.Confidence != salary.ConfidenceNone && a.DetectedAmount.IsPositive() {
		calc := payroll.Calculator{}
		gross := calc.GrossFromNet(a.DetectedAmount)
		fmt.Printf("Estimated gross:      %s THB/month\n", gross.StringFixed(2))
		fmt.Printf("Estimated SSO:        %s THB/month\n", payroll.MonthlySSO(gross).StringFixed(2))
	}

	if result.AnalysisID != nil {
		fmt.Printf("Archived as:          %s\n", result.AnalysisID)
	}
	for _, artifact := range result.Artifacts {
		fmt.Printf("Artifact:             %s (%d bytes)\n", artifact.Name, artifact.Size)
	}
}
