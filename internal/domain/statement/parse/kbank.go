package parse

import (
	"regexp"
	"strings"

	"github.com/FACorreiaa/thai-statement-engine/internal/domain/statement"
	"github.com/FACorreiaa/thai-statement-engine/internal/domain/statement/normalize"
)

// KBank renders one transaction as a vertical block:
//
//	01-04-25            date
//	05:27               time
//	K PLUS              channel (may span lines in the block layout)
//	12,278.00           balance after the movement
//	จาก SCB X5247 ...   description (variable length)
//	รับโอนเงิน           transaction type keyword
//	875.50              amount
//
// Two layouts exist in the wild: the K PLUS app export above ("block") and a
// column-style statement ("table") whose blocks are nearly identical but with
// a single-line channel. A header-keyword sub-detector picks the layout per
// page before dispatch.
type KBankParser struct {
	dates normalize.DateConverter
}

var (
	kbankDateRe = regexp.MustCompile(`^\d{2}-\d{2}-\d{2}$`)
	kbankTimeRe = regexp.MustCompile(`^\d{2}:\d{2}$`)
)

// Transaction type keywords printed as their own line at the end of a block.
// KBank marks direction explicitly through these.
var (
	kbankCreditTypes = map[string]bool{
		"รับโอนเงิน":           true,
		"รับโอนเงินอัตโนมัติ":  true, // payroll posting
		"รับโอนเงินผ่าน QR":    true,
	}
	kbankDebitTypes = map[string]bool{
		"ชำระเงิน":  true,
		"โอนเงิน":   true,
		"ถอนเงินสด": true,
	}
)

func kbankIsTxType(s string) bool { return kbankCreditTypes[s] || kbankDebitTypes[s] }

func (p *KBankParser) Bank() statement.Bank { return statement.BankKBANK }

func (p *KBankParser) Parse(doc *statement.Document) (*Result, error) {
	if err := checkDocument(doc); err != nil {
		return nil, err
	}

	result := &Result{PagesProcessed: len(doc.Pages)}
	for _, page := range doc.Pages {
		lines := normalize.CleanLines(page.Lines)
		if p.isTableLayout(lines) {
			p.parsePage(lines, page.PageNumber, true, result)
		} else {
			p.parsePage(lines, page.PageNumber, false, result)
		}
	}
	return result, nil
}

// isTableLayout looks for the column headers of the table-style statement in
// the first lines of a page.
func (p *KBankParser) isTableLayout(lines []string) bool {
	n := len(lines)
	if n > 30 {
		n = 30
	}
	header := strings.Join(lines[:n], " ")

	hasDate := strings.Contains(header, "วันที่")
	hasChannel := strings.Contains(header, "ช่องทาง") || strings.Contains(header, "รายการ")
	hasBalance := strings.Contains(header, "ยอดคงเหลือ")
	return hasDate && hasChannel && hasBalance
}

// parsePage runs the block state machine over one page. The table layout
// differs only in the channel field: a single line instead of a run.
func (p *KBankParser) parsePage(lines []string, pageNum int, table bool, result *Result) {
	i := 0
	n := len(lines)

	for i < n {
		if !kbankDateRe.MatchString(lines[i]) {
			i++
			continue
		}

		start := i
		date, err := p.dates.ParseDMY(lines[i])
		if err != nil {
			result.Skipped = append(result.Skipped, BlockError{Page: pageNum, Line: start, Message: "invalid date", RawData: lines[i]})
			i++
			continue
		}
		i++

		// Brought/carried-forward pseudo-blocks (date, balance, ยอดยกมา)
		// are balance markers, not movements.
		if isCarryForward(lines, start) {
			i = start + 3
			continue
		}
		if table && i < n && strings.Contains(lines[i], "ยอดยกมา") {
			i++
			continue
		}

		txTime := ""
		if i < n && kbankTimeRe.MatchString(lines[i]) {
			txTime = lines[i]
			i++
		}

		// Channel, then balance-after. When a new date shows up before any
		// money line the block is truncated; skip it and restart there.
		var channelParts []string
		truncated := false
		for i < n && !normalize.IsMoney(lines[i]) {
			if kbankDateRe.MatchString(lines[i]) {
				truncated = true
				break
			}
			channelParts = append(channelParts, lines[i])
			i++
			if table && len(channelParts) == 1 {
				break
			}
		}
		if truncated || i >= n || !normalize.IsMoney(lines[i]) {
			result.Skipped = append(result.Skipped, BlockError{Page: pageNum, Line: start, Message: "block missing balance", RawData: lines[start]})
			continue
		}
		channel := strings.Join(channelParts, " ")
		i++ // balance-after, parsed only for block validation

		// Description lines run until the transaction type keyword.
		var descLines []string
		txType := ""
		for i < n {
			if kbankIsTxType(lines[i]) {
				txType = lines[i]
				i++
				break
			}
			if kbankDateRe.MatchString(lines[i]) {
				break
			}
			descLines = append(descLines, lines[i])
			i++
		}
		description := strings.Join(descLines, " ")

		if txType == "" {
			result.Skipped = append(result.Skipped, BlockError{Page: pageNum, Line: start, Message: "block missing transaction type", RawData: description})
			continue
		}

		if i >= n || !normalize.IsMoney(lines[i]) {
			result.Skipped = append(result.Skipped, BlockError{Page: pageNum, Line: start, Message: "block missing amount", RawData: txType})
			continue
		}
		amount, err := normalize.ParseAmount(lines[i])
		if err != nil || amount.Sign() <= 0 {
			result.Skipped = append(result.Skipped, BlockError{Page: pageNum, Line: start, Message: "invalid amount", RawData: lines[i]})
			i++
			continue
		}
		i++

		isCredit := kbankCreditTypes[txType]
		payer := ""
		if isCredit {
			payer = kbankPayer(description)
		}

		result.Transactions = append(result.Transactions, statement.Transaction{
			Page:        pageNum,
			LineIndex:   start,
			Date:        date,
			Time:        txTime,
			Channel:     channel,
			Description: description,
			Amount:      amount,
			IsCredit:    isCredit,
			Payer:       payer,
		})
	}
}

// isCarryForward detects the three-line balance marker:
//
//	05-04-25
//	5,575.20
//	ยอดยกมา
func isCarryForward(lines []string, i int) bool {
	if i+2 >= len(lines) {
		return false
	}
	if !kbankDateRe.MatchString(lines[i]) || !normalize.IsMoney(lines[i+1]) {
		return false
	}
	return strings.Contains(lines[i+2], "ยอดยกมา") || strings.Contains(lines[i+2], "ยอดยกไป")
}

var kbankTrailerRe = regexp.MustCompile(`\+\+.*$`)

// kbankPayer extracts the sender from a credit description. KBank writes the
// counterparty as "จาก <bank> X#### <name>++", so the name is the run of
// tokens after the masked account token.
//
//	"จาก SCB X5247 นาย กฤษฎา รักเพื่++"  -> "นาย กฤษฎา รักเพื่"
//	"จาก KTB X4993 NUT SUBWIR++"        -> "NUT SUBWIR"
func kbankPayer(description string) string {
	_, after, found := strings.Cut(description, "จาก")
	if !found {
		return ""
	}
	after = strings.TrimSpace(kbankTrailerRe.ReplaceAllString(after, ""))

	if before, tail, ok := strings.Cut(after, " X"); ok {
		// First token after "X" is the masked account number; the rest is
		// the holder's name.
		tokens := strings.Fields(tail)
		if len(tokens) > 1 {
			name := strings.TrimSpace(strings.Join(tokens[1:], " "))
			if len([]rune(name)) >= 3 {
				return name
			}
		}
		// No name printed; the sending bank is the best we have.
		if before = strings.TrimSpace(before); len(before) >= 2 {
			return before
		}
	}

	if fields := strings.Fields(after); len(fields) > 0 {
		return fields[0]
	}
	return ""
}
