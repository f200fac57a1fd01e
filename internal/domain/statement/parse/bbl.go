package parse

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/FACorreiaa/thai-statement-engine/internal/domain/statement"
	"github.com/FACorreiaa/thai-statement-engine/internal/domain/statement/normalize"
)

// BBL statements carry three lines per transaction, with the date and a
// short transaction label sharing the first line:
//
//	01/02/25 SALARY
//	35,000.00
//	35,038.89 Auto Direct Credit
//
// There is no credit/debit mark and no per-transaction time. Direction
// comes from the running balance when it reconciles with the amount, and
// from the label keywords when it does not. A two-line brought-forward
// variant ("01/02/25 B/F" followed by a bare balance) seeds the opening
// balance without producing a transaction.
type BBLParser struct {
	dates normalize.DateConverter
}

var bblDateDescRe = regexp.MustCompile(`^(\d{2}/\d{2}/\d{2})\s+(.+)$`)

var bblCreditHints = []string{"SALARY", "CHEQUE DEP", "DEP", "DEPOSIT"}

func (p *BBLParser) Bank() statement.Bank { return statement.BankBBL }

func (p *BBLParser) Parse(doc *statement.Document) (*Result, error) {
	if err := checkDocument(doc); err != nil {
		return nil, err
	}

	result := &Result{PagesProcessed: len(doc.Pages)}

	var prevBalance *decimal.Decimal
	for _, page := range doc.Pages {
		prevBalance = p.parsePage(normalize.CleanLines(page.Lines), page.PageNumber, prevBalance, result)
	}
	return result, nil
}

func (p *BBLParser) parsePage(lines []string, pageNum int, prevBalance *decimal.Decimal, result *Result) *decimal.Decimal {
	i := 0
	n := len(lines)

	for i < n {
		m := bblDateDescRe.FindStringSubmatch(lines[i])
		if m == nil {
			i++
			continue
		}
		dateStr, label := m[1], strings.TrimSpace(m[2])

		// Brought-forward rows have no amount line, just the balance.
		if strings.Contains(strings.ToUpper(label), "B/F") {
			if i+1 < n && normalize.IsMoney(lines[i+1]) {
				if bal, err := normalize.ParseAmount(lines[i+1]); err == nil {
					prevBalance = &bal
					i += 2
					continue
				}
			}
			i++
			continue
		}

		if i+2 >= n || !normalize.IsMoney(lines[i+1]) {
			i++
			continue
		}
		balVia := strings.SplitN(lines[i+2], " ", 2)
		if !normalize.IsMoney(balVia[0]) {
			result.Skipped = append(result.Skipped, BlockError{Page: pageNum, Line: i, Message: "missing balance line", RawData: lines[i+2]})
			i++
			continue
		}

		date, err := p.dates.ParseDMY(dateStr)
		if err != nil {
			result.Skipped = append(result.Skipped, BlockError{Page: pageNum, Line: i, Message: "invalid date", RawData: dateStr})
			i++
			continue
		}
		amount, err := normalize.ParseAmount(lines[i+1])
		if err != nil || amount.Sign() <= 0 {
			result.Skipped = append(result.Skipped, BlockError{Page: pageNum, Line: i, Message: "invalid amount", RawData: lines[i+1]})
			i++
			continue
		}
		balanceAfter, err := normalize.ParseAmount(balVia[0])
		if err != nil {
			result.Skipped = append(result.Skipped, BlockError{Page: pageNum, Line: i, Message: "invalid balance", RawData: balVia[0]})
			i++
			continue
		}

		viaDetail := ""
		if len(balVia) == 2 {
			viaDetail = strings.TrimSpace(balVia[1])
		}

		isCredit := normalize.InferDirectionWithFallback(amount, prevBalance, &balanceAfter, label, bblCreditHints)

		payer := ""
		if isCredit {
			payer = bblPayer(label, viaDetail)
		}

		result.Transactions = append(result.Transactions, statement.Transaction{
			Page:        pageNum,
			LineIndex:   i,
			Date:        date,
			Channel:     label,
			Description: viaDetail,
			Amount:      amount,
			IsCredit:    isCredit,
			Payer:       payer,
		})

		prevBalance = &balanceAfter
		i += 3
	}

	return prevBalance
}

// bblPayer favors the transaction label for payroll-looking rows and
// falls back to the settlement channel from the balance line.
func bblPayer(label, viaDetail string) string {
	upper := strings.ToUpper(label)
	if strings.Contains(upper, "SALARY") || strings.Contains(upper, "CHEQUE DEP") {
		return label
	}
	if viaDetail != "" {
		return viaDetail
	}
	return label
}
