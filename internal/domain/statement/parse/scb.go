package parse

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/FACorreiaa/thai-statement-engine/internal/domain/statement"
	"github.com/FACorreiaa/thai-statement-engine/internal/domain/statement/normalize"
)

// SCB renders each transaction as a fixed six-line block with no explicit
// credit/debit mark:
//
//	01/02/25                          date (two-digit Gregorian year)
//	15:31                             time
//	X1                                code
//	ENET                              channel
//	35,000.00                         amount, unsigned
//	35,038.89 กสิกรไทย (KBANK) /X685027   balance-after + description
//
// Direction is inferred purely from the running balance: each page opens
// with a "ยอดเงินคงเหลือยกมา (BALANCE BROUGHT FORWARD)" marker seeding the
// previous balance, and a transaction is a credit exactly when its
// balance-after exceeds the balance before it.
type SCBParser struct {
	dates normalize.DateConverter
}

var (
	scbDateRe        = regexp.MustCompile(`^\d{2}/\d{2}/\d{2}$`)
	scbTimeRe        = regexp.MustCompile(`^\d{2}:\d{2}$`)
	scbCodeRe        = regexp.MustCompile(`^[A-Z]\d$`)
	scbChannelRe     = regexp.MustCompile(`^[A-Z]+$`)
	scbBalanceDescRe = regexp.MustCompile(`^(\d{1,3}(?:,\d{3})*\.\d{2})\s+(.+)$`)
)

const scbBlockLen = 6

func (p *SCBParser) Bank() statement.Bank { return statement.BankSCB }

func (p *SCBParser) Parse(doc *statement.Document) (*Result, error) {
	if err := checkDocument(doc); err != nil {
		return nil, err
	}

	result := &Result{PagesProcessed: len(doc.Pages)}

	// The running balance survives page boundaries; each page's brought-
	// forward marker re-seeds it anyway.
	var prevBalance *decimal.Decimal
	for _, page := range doc.Pages {
		prevBalance = p.parsePage(normalize.CleanLines(page.Lines), page.PageNumber, prevBalance, result)
	}
	return result, nil
}

func (p *SCBParser) parsePage(lines []string, pageNum int, prevBalance *decimal.Decimal, result *Result) *decimal.Decimal {
	i := 0
	n := len(lines)

	for i < n {
		cur := lines[i]

		// Brought-forward marker seeds the running balance for the page.
		if strings.Contains(cur, "ยอดเงินคงเหลือยกมา") ||
			strings.Contains(strings.ToUpper(cur), "BALANCE BROUGHT FORWARD") {
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

		if !scbDateRe.MatchString(cur) || i+scbBlockLen-1 >= n {
			i++
			continue
		}

		timeLine := lines[i+1]
		codeLine := lines[i+2]
		channelLine := lines[i+3]
		amountLine := lines[i+4]
		balDescLine := lines[i+5]

		validShape := scbTimeRe.MatchString(timeLine) &&
			scbCodeRe.MatchString(codeLine) &&
			scbChannelRe.MatchString(channelLine) &&
			normalize.IsMoney(amountLine)
		if !validShape {
			i++
			continue
		}

		balDesc := scbBalanceDescRe.FindStringSubmatch(balDescLine)
		if balDesc == nil {
			result.Skipped = append(result.Skipped, BlockError{Page: pageNum, Line: i, Message: "missing balance/description line", RawData: balDescLine})
			i++
			continue
		}

		date, err := p.dates.ParseDMY(cur)
		if err != nil {
			result.Skipped = append(result.Skipped, BlockError{Page: pageNum, Line: i, Message: "invalid date", RawData: cur})
			i++
			continue
		}

		amount, err := normalize.ParseAmount(amountLine)
		if err != nil || amount.Sign() <= 0 {
			result.Skipped = append(result.Skipped, BlockError{Page: pageNum, Line: i, Message: "invalid amount", RawData: amountLine})
			i++
			continue
		}
		balanceAfter, err := normalize.ParseAmount(balDesc[1])
		if err != nil {
			result.Skipped = append(result.Skipped, BlockError{Page: pageNum, Line: i, Message: "invalid balance", RawData: balDesc[1]})
			i++
			continue
		}
		description := strings.TrimSpace(balDesc[2])

		// With no earlier balance the direction is unknowable; the first
		// movement after an absent brought-forward marker reads as credit,
		// matching how SCB orders deposits first on a fresh page.
		isCredit := true
		if prevBalance != nil {
			isCredit = balanceAfter.GreaterThan(*prevBalance)
		}

		payer := ""
		if isCredit {
			payer = scbPayer(description)
		}

		result.Transactions = append(result.Transactions, statement.Transaction{
			Page:        pageNum,
			LineIndex:   i,
			Date:        date,
			Time:        timeLine,
			Channel:     codeLine + " " + channelLine,
			Description: description,
			Amount:      amount,
			IsCredit:    isCredit,
			Payer:       payer,
		})

		prevBalance = &balanceAfter
		i += scbBlockLen
	}

	return prevBalance
}

// scbPayer takes the counterparty from the left of the separator in the
// description: "กสิกรไทย (KBANK) /X685027" -> "กสิกรไทย (KBANK)".
func scbPayer(description string) string {
	if left, _, found := strings.Cut(description, "/"); found {
		return strings.TrimSpace(left)
	}
	return ""
}
