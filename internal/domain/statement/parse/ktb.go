package parse

import (
	"regexp"
	"strings"

	"github.com/FACorreiaa/thai-statement-engine/internal/domain/statement"
	"github.com/FACorreiaa/thai-statement-engine/internal/domain/statement/normalize"
)

// Krungthai renders one transaction as a fixed seven-line block:
//
//	30/09/68                          date (two-digit Buddhist year)
//	เงินเดือน/อื่นๆ (BSD02)            type with a parenthesized code
//	SG CAPITAL/เอสจี แคปตอล/200000    detail / counterparty / reference
//	84,150.00                         amount
//	84,715.87                         balance after
//	108682                            branch or channel code
//	04:04                             time
//
// Metadata trailers ("~ Tran:", "Future Amount:") may follow a block; the
// parser jumps to start+7 and lets the date anchor resynchronize. Page
// headers repeat dates ("วันที่ส่งคำขอ" then "24/10/68"), so a date line only
// opens a block when the next line carries the parenthesized type code.
type KTBParser struct {
	dates normalize.DateConverter
}

var (
	ktbDateRe   = regexp.MustCompile(`^\d{2}/\d{2}/\d{2}$`)
	ktbTimeRe   = regexp.MustCompile(`^\d{2}:\d{2}$`)
	ktbBranchRe = regexp.MustCompile(`^\d{3,9}$`)
)

// Direction comes from the transaction type line. The parenthesized codes
// are the reliable signal; the Thai verbs are a fallback for codes not yet
// catalogued.
var (
	ktbCreditKeywords = []string{
		"เงินเดือน", "เงินโอนเข้า", "ฝากเงิน",
		"BSD02", "IORSDT", "SDCH",
	}
	ktbDebitKeywords = []string{
		"โอนเงินออก", "ถอนเงิน", "จ่ายค่าสินค้า", "จ่ายค่าบริการ",
		"IORSWT", "NBSWT", "MORWSW", "MORISW", "NMIDSW", "MORPSW",
		"NBSWP", "CGSWP", "ATSWCR",
	}
)

const ktbBlockLen = 7

func (p *KTBParser) Bank() statement.Bank { return statement.BankKTB }

func (p *KTBParser) Parse(doc *statement.Document) (*Result, error) {
	if err := checkDocument(doc); err != nil {
		return nil, err
	}

	result := &Result{PagesProcessed: len(doc.Pages)}
	for _, page := range doc.Pages {
		p.parsePage(normalize.CleanLines(page.Lines), page.PageNumber, result)
	}
	return result, nil
}

func (p *KTBParser) parsePage(lines []string, pageNum int, result *Result) {
	i := 0
	n := len(lines)

	for i < n {
		if !ktbDateRe.MatchString(lines[i]) {
			i++
			continue
		}

		// Header false-positive guard: a real transaction's next line is the
		// type with its "(CODE)" suffix.
		next := ""
		if i+1 < n {
			next = lines[i+1]
		}
		if !strings.Contains(next, "(") || !strings.Contains(next, ")") {
			i++
			continue
		}

		tx, blockErr := p.parseBlock(lines, i, pageNum)
		if blockErr != nil {
			result.Skipped = append(result.Skipped, *blockErr)
			i++
			continue
		}

		result.Transactions = append(result.Transactions, *tx)
		i += ktbBlockLen
	}
}

func (p *KTBParser) parseBlock(lines []string, start, pageNum int) (*statement.Transaction, *BlockError) {
	if start+ktbBlockLen-1 >= len(lines) {
		return nil, &BlockError{Page: pageNum, Line: start, Message: "truncated block", RawData: lines[start]}
	}

	date, err := p.dates.ParseDMY(lines[start])
	if err != nil {
		return nil, &BlockError{Page: pageNum, Line: start, Message: "invalid date", RawData: lines[start]}
	}

	txType := lines[start+1]
	detail := lines[start+2]

	amountLine := lines[start+3]
	if !normalize.IsLooseMoney(amountLine) {
		return nil, &BlockError{Page: pageNum, Line: start, Message: "amount line is not money", RawData: amountLine}
	}
	amount, err := normalize.ParseAmount(amountLine)
	if err != nil || amount.Sign() <= 0 {
		return nil, &BlockError{Page: pageNum, Line: start, Message: "invalid amount", RawData: amountLine}
	}

	// Balance (start+4) is present but unused: KTB marks direction through
	// the type code, so the delta is not needed.

	channel := ""
	if ktbBranchRe.MatchString(lines[start+5]) {
		channel = lines[start+5]
	}

	txTime := ""
	if ktbTimeRe.MatchString(lines[start+6]) {
		txTime = lines[start+6]
	}

	isCredit := ktbIsCredit(txType)

	payer := ""
	if isCredit {
		payer = ktbPayer(detail)
	}

	return &statement.Transaction{
		Page:        pageNum,
		LineIndex:   start,
		Date:        date,
		Time:        txTime,
		Channel:     channel,
		Description: txType + " | " + detail,
		Amount:      amount,
		IsCredit:    isCredit,
		Payer:       payer,
	}, nil
}

// ktbIsCredit classifies the type line. Explicit code keywords first, Thai
// verbs as fallback, debit when nothing matches.
func ktbIsCredit(txType string) bool {
	folded := normalize.Fold(txType)
	for _, kw := range ktbCreditKeywords {
		if strings.Contains(folded, strings.ToUpper(kw)) {
			return true
		}
	}
	for _, kw := range ktbDebitKeywords {
		if strings.Contains(folded, strings.ToUpper(kw)) {
			return false
		}
	}
	if strings.Contains(txType, "รับ") || strings.Contains(txType, "ฝาก") {
		return true
	}
	return false
}

// ktbPayer pulls the counterparty from the detail line. Salary credits print
// "SG CAPITAL/เอสจี แคปตอล/200000"; account references like "014-1114765247"
// carry no name.
func ktbPayer(detail string) string {
	if detail == "" {
		return ""
	}

	if left, _, found := strings.Cut(detail, "/"); found {
		left = strings.TrimSpace(left)
		if len([]rune(left)) > 3 && !isDigitsAndDashes(left) {
			return left
		}
	}

	fields := strings.Fields(detail)
	if len(fields) > 0 {
		first := fields[0]
		if len(first) > 2 && first == strings.ToUpper(first) && hasASCIIUpper(first) && !isDigitsAndDashes(first) {
			return first
		}
	}
	return ""
}

func hasASCIIUpper(s string) bool {
	for _, r := range s {
		if r >= 'A' && r <= 'Z' {
			return true
		}
	}
	return false
}

func isDigitsAndDashes(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r != '-' && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}
