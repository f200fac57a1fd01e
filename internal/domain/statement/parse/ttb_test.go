package parse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/thai-statement-engine/internal/domain/statement"
)

func TestTTBParser(t *testing.T) {
	p, err := ForBank(statement.BankTTB)
	require.NoError(t, err)

	t.Run("parses a signed credit block with channel", func(t *testing.T) {
		res, err := p.Parse(makeDoc([]string{
			"05:44",
			"30 ก.ย. 68",
			"รับเงินโอน",
			"KTB",
			"+25,000.00",
			"100,421.94",
		}))
		require.NoError(t, err)
		require.Len(t, res.Transactions, 1)

		tx := res.Transactions[0]
		assert.Equal(t, time.Date(2025, time.September, 30, 0, 0, 0, 0, time.UTC), tx.Date)
		assert.Equal(t, "05:44", tx.Time)
		assert.Equal(t, "KTB", tx.Channel)
		assert.Equal(t, "รับเงินโอน", tx.Description)
		assert.Equal(t, "25000.00", tx.Amount.StringFixed(2))
		assert.True(t, tx.IsCredit)
		assert.Equal(t, "KTB", tx.Payer)
	})

	t.Run("negative amounts are debits", func(t *testing.T) {
		res, err := p.Parse(makeDoc([]string{
			"18:02",
			"1 ต.ค. 68",
			"ชำระค่าสินค้าและบริการ",
			"-1,250.00",
			"99,171.94",
		}))
		require.NoError(t, err)
		require.Len(t, res.Transactions, 1)
		assert.False(t, res.Transactions[0].IsCredit)
		assert.Empty(t, res.Transactions[0].Channel)
		assert.Empty(t, res.Transactions[0].Payer)
	})

	t.Run("multi-line descriptions are joined", func(t *testing.T) {
		res, err := p.Parse(makeDoc([]string{
			"09:15",
			"2 ต.ค. 68",
			"รับเงินโอน",
			"บจก. ตัวอย่าง จำกัด",
			"SCB",
			"+52,300.00",
			"151,471.94",
		}))
		require.NoError(t, err)
		require.Len(t, res.Transactions, 1)
		assert.Equal(t, "รับเงินโอน บจก. ตัวอย่าง จำกัด", res.Transactions[0].Description)
		assert.Equal(t, "SCB", res.Transactions[0].Channel)
	})

	t.Run("time line without Thai date does not open a block", func(t *testing.T) {
		res, err := p.Parse(makeDoc([]string{
			"12:00",
			"หน้าที่ 1 จาก 3",
			"05:44",
			"30 ก.ย. 68",
			"รับเงินโอน",
			"+1,000.00",
			"1,000.00",
		}))
		require.NoError(t, err)
		require.Len(t, res.Transactions, 1)
		assert.Equal(t, "05:44", res.Transactions[0].Time)
	})
}

func TestTTBPayer(t *testing.T) {
	assert.Equal(t, "KTB", ttbPayer("รับเงินโอน", "KTB", true))
	assert.Equal(t, "BBL", ttbPayer("รับเงินโอน BBL X123", "", true))
	assert.Equal(t, "", ttbPayer("รับเงินโอน", "", true))
	assert.Equal(t, "", ttbPayer("ชำระเงิน", "KTB", false))
}
