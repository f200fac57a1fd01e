package audit

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/thai-statement-engine/internal/domain/statement"
)

func TestIndex(t *testing.T) {
	idx, err := NewIndex("")
	require.NoError(t, err)
	defer idx.Close()

	cluster := 0
	txs := []statement.Transaction{
		{
			Date:        time.Date(2025, time.September, 30, 0, 0, 0, 0, time.UTC),
			Description: "PAYROLL SG CAPITAL",
			Payer:       "SG CAPITAL",
			Channel:     "108682",
			Amount:      decimal.NewFromInt(84150),
			IsCredit:    true,
			Score:       19,
			ClusterID:   &cluster,
		},
		{
			Date:        time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC),
			Description: "transfer out",
			Amount:      decimal.NewFromInt(500),
		},
	}

	require.NoError(t, idx.IndexTransactions("stmt-1", statement.BankKTB, txs))

	count, err := idx.Count()
	require.NoError(t, err)
	assert.Equal(t, uint64(2), count)

	t.Run("finds transactions by payer text", func(t *testing.T) {
		results, err := idx.Search("capital", 10)
		require.NoError(t, err)
		require.NotEmpty(t, results)

		doc := results[0].Document
		assert.Equal(t, "stmt-1", doc.StatementID)
		assert.Equal(t, "KTB", doc.Bank)
		assert.Equal(t, "CREDIT", doc.Direction)
		assert.Equal(t, float64(84150), doc.Amount)
		assert.Equal(t, float64(19), doc.Score)
	})

	t.Run("no hits for unrelated text", func(t *testing.T) {
		results, err := idx.Search("groceries", 10)
		require.NoError(t, err)
		assert.Empty(t, results)
	})
}
