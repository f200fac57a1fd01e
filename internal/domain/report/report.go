// Package report serializes analysis results for human review: an audit CSV
// of every transaction and a multi-sheet XLSX workbook with scores, the
// winning group, and the summary verdict.
package report

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
	"github.com/xuri/excelize/v2"

	"github.com/FACorreiaa/thai-statement-engine/internal/domain/salary"
	"github.com/FACorreiaa/thai-statement-engine/internal/domain/statement"
)

// WriteCSV writes the audit CSV for the given transactions in source order.
func WriteCSV(w io.Writer, txs []statement.Transaction) error {
	rows := statement.ExportRows(txs)
	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("failed to write audit csv: %w", err)
	}
	return nil
}

// Sheet names of the XLSX workbook.
const (
	sheetAllScored = "all_scored"
	sheetBestGroup = "best_group"
	sheetSummary   = "summary"
)

// WriteXLSX writes the review workbook: every scored credit, the winning
// cluster's transactions, and the one-page summary.
func WriteXLSX(w io.Writer, bank statement.Bank, analysis *salary.Analysis) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeScoredSheet(f, sheetAllScored, analysis.Scored); err != nil {
		return err
	}
	if err := writeScoredSheet(f, sheetBestGroup, winningCluster(analysis)); err != nil {
		return err
	}
	if err := writeSummarySheet(f, bank, analysis); err != nil {
		return err
	}

	// The workbook opens on the summary; drop the default sheet.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to drop default sheet: %w", err)
	}
	idx, err := f.GetSheetIndex(sheetSummary)
	if err != nil {
		return fmt.Errorf("failed to locate summary sheet: %w", err)
	}
	f.SetActiveSheet(idx)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

var scoredHeader = []interface{}{
	"date", "time", "channel", "description", "payer", "amount", "direction", "score", "cluster_id",
}

func writeScoredSheet(f *excelize.File, name string, txs []statement.Transaction) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", name, err)
	}
	if err := f.SetSheetRow(name, "A1", &scoredHeader); err != nil {
		return fmt.Errorf("failed to write header of %s: %w", name, err)
	}

	for i, tx := range txs {
		direction := "DEBIT"
		if tx.IsCredit {
			direction = "CREDIT"
		}
		clusterID := ""
		if tx.ClusterID != nil {
			clusterID = fmt.Sprintf("%d", *tx.ClusterID)
		}
		amount, _ := tx.Amount.Float64()

		row := []interface{}{
			tx.Date.Format("2006-01-02"), tx.Time, tx.Channel, tx.Description,
			tx.Payer, amount, direction, tx.Score, clusterID,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to address row %d of %s: %w", i+2, name, err)
		}
		if err := f.SetSheetRow(name, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d of %s: %w", i+2, name, err)
		}
	}
	return nil
}

func writeSummarySheet(f *excelize.File, bank statement.Bank, analysis *salary.Analysis) error {
	if _, err := f.NewSheet(sheetSummary); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}

	detected, _ := analysis.DetectedAmount.Float64()
	rows := [][]interface{}{
		{"bank", string(bank)},
		{"detected_amount", detected},
		{"confidence", string(analysis.Confidence)},
		{"transactions_analyzed", analysis.TransactionsAnalyzed},
		{"clusters_found", analysis.ClustersFound},
		{"top_candidates", analysis.TopCandidatesCount},
	}
	if analysis.MatchesExpected != nil {
		diff, _ := analysis.Difference.Float64()
		pct, _ := analysis.DifferencePercentage.Float64()
		rows = append(rows,
			[]interface{}{"matches_expected", *analysis.MatchesExpected},
			[]interface{}{"difference", diff},
			[]interface{}{"difference_percentage", pct},
		)
	}
	if analysis.ClosestPayer != "" {
		rows = append(rows, []interface{}{"closest_payer", analysis.ClosestPayer})
	}

	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("failed to address summary row %d: %w", i+1, err)
		}
		if err := f.SetSheetRow(sheetSummary, cell, &rows[i]); err != nil {
			return fmt.Errorf("failed to write summary row %d: %w", i+1, err)
		}
	}
	return nil
}

// winningCluster returns the scored transactions sharing the winner's
// cluster, in source order.
func winningCluster(analysis *salary.Analysis) []statement.Transaction {
	winner, ok := analysis.Winner()
	if !ok || winner.ClusterID == nil {
		return nil
	}
	out := make([]statement.Transaction, 0)
	for _, tx := range analysis.Scored {
		if tx.ClusterID != nil && *tx.ClusterID == *winner.ClusterID {
			out = append(out, tx)
		}
	}
	return out
}
