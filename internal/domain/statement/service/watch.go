package service

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/FACorreiaa/thai-statement-engine/internal/domain/salary"
)

// Watcher polls a directory for new statement PDFs and feeds them through
// the pipeline. Files are identified by name; a file is processed once per
// watcher lifetime even if its analysis failed.
type Watcher struct {
	svc      *Service
	dir      string
	interval time.Duration
	hints    salary.Hints
	logger   *slog.Logger

	seen map[string]struct{}
}

// NewWatcher creates a watcher over the given directory.
func NewWatcher(svc *Service, dir string, interval time.Duration, hints salary.Hints, logger *slog.Logger) *Watcher {
	return &Watcher{
		svc:      svc,
		dir:      dir,
		interval: interval,
		hints:    hints,
		logger:   logger,
		seen:     make(map[string]struct{}),
	}
}

// Run polls until the context is cancelled. The first scan happens
// immediately.
func (w *Watcher) Run(ctx context.Context) error {
	w.logger.Info("watching for statements",
		slog.String("dir", w.dir),
		slog.Duration("interval", w.interval),
	)

	w.scan(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.scan(ctx)
		}
	}
}

// scan processes every unseen PDF in the watched directory.
func (w *Watcher) scan(ctx context.Context) {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		w.logger.Error("reading watch directory", slog.Any("error", err))
		return
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			continue
		}
		if _, ok := w.seen[entry.Name()]; ok {
			continue
		}
		w.seen[entry.Name()] = struct{}{}

		path := filepath.Join(w.dir, entry.Name())
		result, err := w.svc.Analyze(ctx, AnalyzeRequest{
			SourcePath: path,
			Hints:      w.hints,
		})
		if err != nil {
			w.logger.Error("statement analysis failed",
				slog.String("file", entry.Name()),
				slog.Any("error", err),
			)
			continue
		}

		w.logger.Info("statement processed",
			slog.String("file", entry.Name()),
			slog.String("bank", string(result.Bank)),
			slog.String("confidence", string(result.Analysis.Confidence)),
			slog.String("detected_amount", result.Analysis.DetectedAmount.String()),
		)

		if ctx.Err() != nil {
			return
		}
	}
}
