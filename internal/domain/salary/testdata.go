package salary

import (
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/shopspring/decimal"

	"github.com/FACorreiaa/thai-statement-engine/internal/domain/statement"
)

// SyntheticStatement builds a deterministic statement for tests and load
// fixtures: monthly salary credits from one employer plus a stream of small
// incidental transfers. The same seed always yields the same statement.
func SyntheticStatement(seed int64, months int, salaryAmount decimal.Decimal, smallTransfers int) *statement.Statement {
	faker := gofakeit.New(seed)

	txs := make([]statement.Transaction, 0, months+smallTransfers)
	start := time.Date(2025, time.January, 28, 0, 0, 0, 0, time.UTC)

	for m := 0; m < months; m++ {
		txs = append(txs, statement.Transaction{
			Page:        m + 1,
			LineIndex:   0,
			Date:        start.AddDate(0, m, 0),
			Time:        fmt.Sprintf("0%d:%02d", 1+faker.Number(0, 5), faker.Number(0, 59)),
			Channel:     "K PLUS",
			Description: "เงินเดือน " + faker.Company(),
			Amount:      salaryAmount,
			IsCredit:    true,
			Payer:       "ACME CO",
		})
	}

	for i := 0; i < smallTransfers; i++ {
		txs = append(txs, statement.Transaction{
			Page:        1 + i/12,
			LineIndex:   10 + i,
			Date:        start.AddDate(0, 0, faker.Number(0, 180)),
			Time:        fmt.Sprintf("%02d:%02d", faker.Number(9, 21), faker.Number(0, 59)),
			Channel:     "K PLUS",
			Description: "รับโอนเงิน " + faker.FirstName(),
			Amount:      decimal.NewFromInt(int64(faker.Number(50, 900))),
			IsCredit:    true,
			Payer:       faker.FirstName(),
		})
	}

	return &statement.Statement{
		BankName:       statement.BankKBANK,
		Transactions:   txs,
		PagesProcessed: months,
	}
}
