package parse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/thai-statement-engine/internal/domain/statement"
)

func TestKBankParser(t *testing.T) {
	p, err := ForBank(statement.BankKBANK)
	require.NoError(t, err)

	t.Run("parses a K PLUS credit block", func(t *testing.T) {
		res, err := p.Parse(makeDoc([]string{
			"01-04-25",
			"05:27",
			"K PLUS",
			"12,278.00",
			"จาก SCB X5247 นาย กฤษฎา รักเพื่++",
			"รับโอนเงิน",
			"875.50",
		}))
		require.NoError(t, err)
		require.Len(t, res.Transactions, 1)

		tx := res.Transactions[0]
		assert.Equal(t, time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC), tx.Date)
		assert.Equal(t, "05:27", tx.Time)
		assert.Equal(t, "K PLUS", tx.Channel)
		assert.Equal(t, "875.50", tx.Amount.StringFixed(2))
		assert.True(t, tx.IsCredit)
		assert.Equal(t, "นาย กฤษฎา รักเพื่", tx.Payer)
		assert.Equal(t, 1, tx.Page)
		assert.Equal(t, 0, tx.LineIndex)
	})

	t.Run("classifies payment blocks as debits without payer", func(t *testing.T) {
		res, err := p.Parse(makeDoc([]string{
			"02-04-25",
			"09:10",
			"K PLUS",
			"11,402.50",
			"เซเว่น อีเลฟเว่น",
			"ชำระเงิน",
			"875.50",
		}))
		require.NoError(t, err)
		require.Len(t, res.Transactions, 1)
		assert.False(t, res.Transactions[0].IsCredit)
		assert.Empty(t, res.Transactions[0].Payer)
	})

	t.Run("skips carry-forward balance markers", func(t *testing.T) {
		res, err := p.Parse(makeDoc([]string{
			"05-04-25",
			"5,575.20",
			"ยอดยกมา",
			"06-04-25",
			"06:00",
			"K PLUS",
			"6,575.20",
			"จาก KTB X4993 NUT SUBWIR++",
			"รับโอนเงิน",
			"1,000.00",
		}))
		require.NoError(t, err)
		require.Len(t, res.Transactions, 1)
		assert.Equal(t, "NUT SUBWIR", res.Transactions[0].Payer)
		assert.Equal(t, "1000.00", res.Transactions[0].Amount.StringFixed(2))
	})

	t.Run("one corrupted block drops only itself", func(t *testing.T) {
		res, err := p.Parse(makeDoc([]string{
			"01-04-25",
			"05:27",
			"K PLUS",
			"12,278.00",
			"จาก SCB X5247 นาย สมชาย++",
			"รับโอนเงิน",
			"875.50",
			"02-04-25", // truncated: no balance before the next date
			"08:00",
			"K PLUS",
			"03-04-25",
			"10:15",
			"K PLUS",
			"13,278.00",
			"โอนไป KBANK X1111",
			"โอนเงิน",
			"500.00",
		}))
		require.NoError(t, err)
		assert.Len(t, res.Transactions, 2)
		require.Len(t, res.Skipped, 1)
		assert.Equal(t, 7, res.Skipped[0].Line)
	})

	t.Run("parses the table layout with single-line channel", func(t *testing.T) {
		res, err := p.Parse(makeDoc([]string{
			"วันที่ รายการ ถอนเงิน ฝากเงิน ยอดคงเหลือ",
			"01-03-25",
			"12:00",
			"K PLUS",
			"50,000.00",
			"จาก KTB X4993 NUT SUBWIR++",
			"รับโอนเงิน",
			"35,000.00",
		}))
		require.NoError(t, err)
		require.Len(t, res.Transactions, 1)
		assert.Equal(t, "K PLUS", res.Transactions[0].Channel)
		assert.Equal(t, "NUT SUBWIR", res.Transactions[0].Payer)
	})
}

func TestKBankPayer(t *testing.T) {
	tests := []struct {
		desc string
		want string
	}{
		{"จาก SCB X5247 นาย กฤษฎา รักเพื่++", "นาย กฤษฎา รักเพื่"},
		{"จาก KTB X4993 NUT SUBWIR++", "NUT SUBWIR"},
		{"จาก SCB X5027++", "SCB"},
		{"ชำระค่าสินค้า", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, kbankPayer(tt.desc), tt.desc)
	}
}
