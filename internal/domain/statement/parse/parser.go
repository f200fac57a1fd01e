// Package parse converts extracted statement page text into ordered
// transaction lists, one parser per supported bank format.
//
// All five parsers follow the same shape: a single forward pass over the
// page's lines with a bounded lookahead window, anchored on each bank's date
// pattern. A block that fails shape validation is recorded and skipped;
// parsing always resumes at the next line, so one mangled block never takes
// the rest of the document with it. Only whole-document failures (no pages,
// no text) are returned as errors.
package parse

import (
	"fmt"

	"github.com/FACorreiaa/thai-statement-engine/internal/domain/statement"
	"github.com/FACorreiaa/thai-statement-engine/internal/domain/statement/normalize"
)

// maxLookahead bounds how far past a block anchor a parser may peek while
// validating block shape.
const maxLookahead = 3

// BlockError describes one malformed transaction block that was skipped.
// It is diagnostic output, never a failure.
type BlockError struct {
	Page    int
	Line    int
	Message string
	RawData string
}

func (e BlockError) Error() string {
	return fmt.Sprintf("page %d, line %d: %s", e.Page, e.Line, e.Message)
}

// Result is the outcome of parsing one document.
type Result struct {
	Transactions   []statement.Transaction
	Skipped        []BlockError
	PagesProcessed int
}

// Statement wraps the result into the read-only aggregate.
func (r *Result) Statement(bank statement.Bank) *statement.Statement {
	return &statement.Statement{
		BankName:       bank,
		Transactions:   r.Transactions,
		PagesProcessed: r.PagesProcessed,
	}
}

// Parser converts one bank's page text into transactions.
type Parser interface {
	Bank() statement.Bank
	Parse(doc *statement.Document) (*Result, error)
}

// ForBank returns the parser for a detected bank format.
func ForBank(bank statement.Bank) (Parser, error) {
	dates := normalize.NewDateConverter(0)
	switch bank {
	case statement.BankKBANK:
		return &KBankParser{dates: dates}, nil
	case statement.BankKTB:
		return &KTBParser{dates: dates}, nil
	case statement.BankTTB:
		return &TTBParser{dates: dates}, nil
	case statement.BankSCB:
		return &SCBParser{dates: dates}, nil
	case statement.BankBBL:
		return &BBLParser{dates: dates}, nil
	default:
		return nil, fmt.Errorf("%w: %q", statement.ErrUnsupportedFormat, bank)
	}
}

// checkDocument applies the shared whole-document guard.
func checkDocument(doc *statement.Document) error {
	if doc == nil || len(doc.Pages) == 0 || doc.IsEmpty() {
		return statement.ErrEmptyDocument
	}
	return nil
}
