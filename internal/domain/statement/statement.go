// Package statement defines the core domain model for parsed Thai bank
// statements: the supported bank formats, individual transactions, and the
// statement aggregate produced by a single parsing run.
package statement

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Bank identifies a supported statement format.
type Bank string

const (
	BankKBANK Bank = "KBANK" // Kasikornbank (K PLUS / table layouts)
	BankKTB   Bank = "KTB"   // Krungthai Bank
	BankTTB   Bank = "TTB"   // TMB Thanachart Bank
	BankSCB   Bank = "SCB"   // Siam Commercial Bank
	BankBBL   Bank = "BBL"   // Bangkok Bank
)

// Banks lists all supported formats in detection priority order.
// SCB must come before KBANK: SCB statements routinely name กสิกรไทย as a
// transfer counterparty, so testing KBANK first misclassifies them.
var Banks = []Bank{BankSCB, BankKTB, BankKBANK, BankBBL, BankTTB}

// Whole-document failures surfaced to the caller. Block-level anomalies are
// recovered inside the parsers and never escape.
var (
	ErrUnsupportedFormat = errors.New("statement format not recognized")
	ErrEmptyDocument     = errors.New("statement has no extractable text")
	ErrAuthentication    = errors.New("document is encrypted and the password is missing or wrong")
)

// Page is one page of machine-extracted statement text, as delivered by the
// text-extraction collaborator.
type Page struct {
	PageNumber int      `json:"page_number"`
	Lines      []string `json:"lines"`
}

// Document is the raw input to the pipeline: extracted pages plus the
// encryption flag from the extractor.
type Document struct {
	Pages       []Page `json:"pages"`
	IsEncrypted bool   `json:"is_encrypted"`
}

// IsEmpty reports whether the document carries no usable text at all.
func (d *Document) IsEmpty() bool {
	for _, p := range d.Pages {
		for _, ln := range p.Lines {
			if strings.TrimSpace(ln) != "" {
				return false
			}
		}
	}
	return true
}

// Transaction is a single financial movement parsed from a statement.
//
// Parsers populate everything except Score and ClusterID; those two fields
// belong to the salary analysis stage, which writes them onto enriched copies
// rather than mutating the parsed slice.
type Transaction struct {
	Page        int    // 1-based source page
	LineIndex   int    // 0-based line where the block started
	Date        time.Time
	Time        string // "HH:MM" local time, empty when the bank omits it
	Channel     string // e.g. "K PLUS", "ENET", branch code; empty when unknown
	Description string
	Amount      decimal.Decimal // magnitude only, always > 0
	IsCredit    bool
	Payer       string // best-effort counterparty for credits, empty when unknown

	Score     int  // written by the salary scorer only
	ClusterID *int // written by the clustering stage only
}

// HasTime reports whether the bank recorded a time-of-day for this movement.
func (t *Transaction) HasTime() bool { return t.Time != "" }

// Hour returns the local hour of the transaction, or -1 when no time is known.
func (t *Transaction) Hour() int {
	if len(t.Time) < 2 {
		return -1
	}
	h := 0
	for _, r := range t.Time {
		if r == ':' {
			return h
		}
		if r < '0' || r > '9' {
			return -1
		}
		h = h*10 + int(r-'0')
	}
	return -1
}

// Statement is the aggregate produced by one parsing run. It is read-only
// after construction; downstream stages derive from it without reordering.
type Statement struct {
	BankName       Bank
	Transactions   []Transaction
	PagesProcessed int
}

// Credits returns the credit subset in source order.
func (s *Statement) Credits() []Transaction {
	out := make([]Transaction, 0, len(s.Transactions))
	for _, tx := range s.Transactions {
		if tx.IsCredit {
			out = append(out, tx)
		}
	}
	return out
}

// Debits returns the debit subset in source order.
func (s *Statement) Debits() []Transaction {
	out := make([]Transaction, 0, len(s.Transactions))
	for _, tx := range s.Transactions {
		if !tx.IsCredit {
			out = append(out, tx)
		}
	}
	return out
}

// TotalCredit sums all credit amounts.
func (s *Statement) TotalCredit() decimal.Decimal {
	total := decimal.Zero
	for _, tx := range s.Transactions {
		if tx.IsCredit {
			total = total.Add(tx.Amount)
		}
	}
	return total
}

// TotalDebit sums all debit amounts.
func (s *Statement) TotalDebit() decimal.Decimal {
	total := decimal.Zero
	for _, tx := range s.Transactions {
		if !tx.IsCredit {
			total = total.Add(tx.Amount)
		}
	}
	return total
}
