package masking

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/thai-statement-engine/internal/domain/statement"
)

func TestMaskText(t *testing.T) {
	t.Run("masks Thai national IDs", func(t *testing.T) {
		m := NewMasker()
		out := m.MaskText("บัตรประชาชน 1234567890123 ของลูกค้า")
		assert.Equal(t, "บัตรประชาชน THAIID_001 ของลูกค้า", out)
		assert.Equal(t, "1234567890123", m.Mapping()["THAIID_001"])
	})

	t.Run("masks account numbers", func(t *testing.T) {
		m := NewMasker()
		out := m.MaskText("โอนเข้าบัญชี 014-1-11476-5")
		assert.Equal(t, "โอนเข้าบัญชี ACCOUNT_001", out)
	})

	t.Run("masks honorific names, longest honorific first", func(t *testing.T) {
		m := NewMasker()
		out := m.MaskText("จาก นางสาว สมหญิง ใจดี และ นาย สมชาย รักดี")
		assert.Equal(t, "จาก NAME_001 และ NAME_002", out)
	})

	t.Run("masks phones and emails", func(t *testing.T) {
		m := NewMasker()
		out := m.MaskText("ติดต่อ 081-234-5678 หรือ somchai@example.co.th")
		assert.NotContains(t, out, "081-234-5678")
		assert.NotContains(t, out, "somchai@example.co.th")
		assert.Len(t, m.Mapping(), 2)
	})

	t.Run("same value maps to the same token", func(t *testing.T) {
		m := NewMasker()
		first := m.MaskText("1234567890123")
		second := m.MaskText("อ้างอิง 1234567890123")
		assert.Equal(t, "THAIID_001", first)
		assert.Contains(t, second, "THAIID_001")
		assert.Len(t, m.Mapping(), 1)
	})

	t.Run("plain transaction text passes through", func(t *testing.T) {
		m := NewMasker()
		text := "เงินเดือน/อื่นๆ (BSD02) | SG CAPITAL/เอสจี แคปตอล/200000"
		assert.Equal(t, text, m.MaskText(text))
	})
}

func TestMaskStatement(t *testing.T) {
	st := &statement.Statement{
		BankName: statement.BankKBANK,
		Transactions: []statement.Transaction{
			{
				Description: "จาก SCB X5247 นาย กฤษฎา รักเพื่อน",
				Payer:       "นาย กฤษฎา รักเพื่อน",
				Amount:      decimal.NewFromInt(875),
				IsCredit:    true,
			},
		},
		PagesProcessed: 1,
	}

	m := NewMasker()
	masked := m.MaskStatement(st)

	require.Len(t, masked.Transactions, 1)
	assert.Equal(t, "จาก SCB X5247 NAME_001", masked.Transactions[0].Description)
	assert.Equal(t, "NAME_001", masked.Transactions[0].Payer)
	assert.Equal(t, "875", masked.Transactions[0].Amount.String())

	// source untouched
	assert.Contains(t, st.Transactions[0].Description, "กฤษฎา")
}

func TestUnmask(t *testing.T) {
	m := NewMasker()
	masked := m.MaskText("โทร 0812345678 บัญชี 014-1-11476-5")
	restored := Unmask(masked, m.Mapping())
	assert.Equal(t, "โทร 0812345678 บัญชี 014-1-11476-5", restored)
}
