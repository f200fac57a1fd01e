package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/thai-statement-engine/internal/domain/statement"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		text string
		want statement.Bank
	}{
		{"SCB by Thai name", "ใบแจ้งรายการบัญชี ธนาคารไทยพาณิชย์ จำกัด (มหาชน)", statement.BankSCB},
		{"SCB by English name", "Account statement - Siam Commercial Bank PCL", statement.BankSCB},
		{"KTB by Thai name", "ธนาคารกรุงไทย จำกัด (มหาชน) รายการเดินบัญชี", statement.BankKTB},
		{"KBANK by Thai name", "ธนาคารกสิกรไทย สรุปรายการเดินบัญชี", statement.BankKBANK},
		{"KBANK by app name", "generated by K PLUS mobile banking", statement.BankKBANK},
		{"BBL by English name", "BANGKOK BANK PUBLIC COMPANY LIMITED", statement.BankBBL},
		{"TTB by domain", "ดูรายละเอียดเพิ่มเติมที่ ttbbank.com", statement.BankTTB},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bank, err := Detect(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, bank)
		})
	}
}

// SCB statements quote กสิกรไทย as a counterparty in transfer descriptions.
// The priority order must keep those documents classified as SCB.
func TestDetect_SCBBeforeKBANK(t *testing.T) {
	text := "ธนาคารไทยพาณิชย์ จำกัด (มหาชน)\n01/02/25 15:31 X1 ENET 35,000.00 กสิกรไทย (KBANK) /X685027"
	bank, err := Detect(text)
	require.NoError(t, err)
	assert.Equal(t, statement.BankSCB, bank)
}

func TestDetect_Errors(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		_, err := Detect("   \n\t ")
		assert.ErrorIs(t, err, statement.ErrEmptyDocument)
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := Detect("Some random document that is not a bank statement")
		assert.ErrorIs(t, err, statement.ErrUnsupportedFormat)
	})
}

func TestDetectDocument(t *testing.T) {
	t.Run("uses only the first two pages", func(t *testing.T) {
		doc := &statement.Document{Pages: []statement.Page{
			{PageNumber: 1, Lines: []string{"no identity here"}},
			{PageNumber: 2, Lines: []string{"still nothing"}},
			{PageNumber: 3, Lines: []string{"ธนาคารกรุงไทย"}},
		}}
		_, err := DetectDocument(doc)
		assert.ErrorIs(t, err, statement.ErrUnsupportedFormat)
	})

	t.Run("detects from header page", func(t *testing.T) {
		doc := &statement.Document{Pages: []statement.Page{
			{PageNumber: 1, Lines: []string{"รายการเดินบัญชี", "ธนาคารกรุงเทพ"}},
		}}
		bank, err := DetectDocument(doc)
		require.NoError(t, err)
		assert.Equal(t, statement.BankBBL, bank)
	})

	t.Run("nil and empty documents", func(t *testing.T) {
		_, err := DetectDocument(nil)
		assert.ErrorIs(t, err, statement.ErrEmptyDocument)

		_, err = DetectDocument(&statement.Document{Pages: []statement.Page{{PageNumber: 1, Lines: []string{""}}}})
		assert.ErrorIs(t, err, statement.ErrEmptyDocument)
	})
}
