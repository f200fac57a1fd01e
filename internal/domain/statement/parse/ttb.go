package parse

import (
	"regexp"
	"strings"

	"github.com/FACorreiaa/thai-statement-engine/internal/domain/statement"
	"github.com/FACorreiaa/thai-statement-engine/internal/domain/statement/normalize"
)

// TTB statements come out of extraction as vertically stacked fields, one
// column value per line, with a variable-length description:
//
//	05:44               time
//	30 ก.ย. 68           Thai-rendered date, two-digit Buddhist year
//	รับเงินโอน            description (one or more lines)
//	KTB                 optional channel (short all-caps bank code)
//	+25,000.00          signed amount: + credit, - debit
//	100,421.94          balance after
//
// Because the description length varies, blocks are delimited by regex
// anchors (time line, Thai date line, signed money line) rather than fixed
// offsets.
type TTBParser struct {
	dates normalize.DateConverter
}

var (
	ttbTimeRe    = regexp.MustCompile(`^\d{1,2}:\d{2}$`)
	ttbChannelRe = regexp.MustCompile(`^[A-Z]{2,6}$`)
)

func (p *TTBParser) Bank() statement.Bank { return statement.BankTTB }

func (p *TTBParser) Parse(doc *statement.Document) (*Result, error) {
	if err := checkDocument(doc); err != nil {
		return nil, err
	}

	result := &Result{PagesProcessed: len(doc.Pages)}
	for _, page := range doc.Pages {
		p.parsePage(normalize.CleanLines(page.Lines), page.PageNumber, result)
	}
	return result, nil
}

func (p *TTBParser) parsePage(lines []string, pageNum int, result *Result) {
	i := 0
	n := len(lines)

	for i < n {
		if !ttbTimeRe.MatchString(lines[i]) {
			i++
			continue
		}

		// A time line opens a block only when a Thai date follows directly.
		if i+1 >= n || !normalize.IsThaiDate(lines[i+1]) {
			i++
			continue
		}

		date, err := p.dates.ParseThaiDate(lines[i+1])
		if err != nil {
			result.Skipped = append(result.Skipped, BlockError{Page: pageNum, Line: i, Message: "invalid Thai date", RawData: lines[i+1]})
			i++
			continue
		}

		// Description runs from i+2 until the signed amount line.
		var descChunks []string
		amountIdx := -1
		for j := i + 2; j < n; j++ {
			if normalize.IsSignedMoney(lines[j]) {
				amountIdx = j
				break
			}
			descChunks = append(descChunks, lines[j])
		}
		if amountIdx == -1 {
			result.Skipped = append(result.Skipped, BlockError{Page: pageNum, Line: i, Message: "block missing amount", RawData: lines[i]})
			i++
			continue
		}

		// A short all-caps line just before the amount is the channel, not
		// part of the description.
		channel := ""
		if len(descChunks) > 0 {
			last := descChunks[len(descChunks)-1]
			if ttbChannelRe.MatchString(last) {
				channel = last
				descChunks = descChunks[:len(descChunks)-1]
			}
		}
		description := normalize.CleanSpaces(strings.Join(descChunks, " "))

		amount, isCredit, err := normalize.ParseSignedAmount(lines[amountIdx])
		if err != nil || amount.Sign() <= 0 {
			result.Skipped = append(result.Skipped, BlockError{Page: pageNum, Line: i, Message: "invalid amount", RawData: lines[amountIdx]})
			i = amountIdx + 1
			continue
		}

		result.Transactions = append(result.Transactions, statement.Transaction{
			Page:        pageNum,
			LineIndex:   i,
			Date:        date,
			Time:        lines[i],
			Channel:     channel,
			Description: description,
			Amount:      amount,
			IsCredit:    isCredit,
			Payer:       ttbPayer(description, channel, isCredit),
		})

		// Skip past the balance line that trails the amount.
		i = amountIdx + 2
	}
}

// ttbPayer names the sender of a credit. The channel column carries the
// originating bank's code ("KTB", "BBL") when the money came from another
// bank; failing that, a bank code embedded after รับเงินโอน in the
// description is used.
func ttbPayer(description, channel string, isCredit bool) string {
	if !isCredit {
		return ""
	}
	if channel != "" {
		return channel
	}

	tokens := strings.Fields(description)
	if len(tokens) > 1 && strings.HasPrefix(tokens[0], "รับเงินโอน") {
		for _, tk := range tokens[1:] {
			if ttbChannelRe.MatchString(tk) {
				return tk
			}
		}
	}
	return ""
}
