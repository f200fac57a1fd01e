package statement

import "strconv"

// ExportRow is the row-oriented audit view of a Transaction, shaped for CSV
// serialization with gocsv. Amounts are rendered with two decimals and the
// direction as CREDIT/DEBIT so the file is readable without the schema.
type ExportRow struct {
	Page        int    `csv:"page"`
	LineIndex   int    `csv:"line_index"`
	Date        string `csv:"date"`
	Time        string `csv:"time"`
	Channel     string `csv:"channel"`
	Description string `csv:"description"`
	Amount      string `csv:"amount"`
	Direction   string `csv:"direction"`
	Payer       string `csv:"payer"`
	Score       int    `csv:"score"`
	ClusterID   string `csv:"cluster_id"`
}

// ExportRows flattens transactions into audit rows, preserving source order.
func ExportRows(txs []Transaction) []ExportRow {
	rows := make([]ExportRow, 0, len(txs))
	for _, tx := range txs {
		direction := "DEBIT"
		if tx.IsCredit {
			direction = "CREDIT"
		}
		clusterID := ""
		if tx.ClusterID != nil {
			clusterID = strconv.Itoa(*tx.ClusterID)
		}
		rows = append(rows, ExportRow{
			Page:        tx.Page,
			LineIndex:   tx.LineIndex,
			Date:        tx.Date.Format("2006-01-02"),
			Time:        tx.Time,
			Channel:     tx.Channel,
			Description: tx.Description,
			Amount:      tx.Amount.StringFixed(2),
			Direction:   direction,
			Payer:       tx.Payer,
			Score:       tx.Score,
			ClusterID:   clusterID,
		})
	}
	return rows
}

