// Package detect classifies raw statement text as one of the supported Thai
// bank formats using ordered keyword matching.
package detect

import (
	"strings"

	"github.com/FACorreiaa/thai-statement-engine/internal/domain/statement"
)

// signature pairs a bank with the keywords that identify its statements.
// Thai keywords are matched verbatim; Latin keywords are matched case-folded.
type signature struct {
	bank     statement.Bank
	keywords []string
}

// signatures is tested strictly in order and the first match wins. The order
// is a contract, not a tuning knob: SCB statements mention กสิกรไทย (Kasikorn)
// as a transfer counterparty, so SCB must be tried before KBANK or real SCB
// documents get classified as KBANK.
var signatures = []signature{
	{statement.BankSCB, []string{"ธนาคารไทยพาณิชย์", "SIAM COMMERCIAL"}},
	{statement.BankKTB, []string{"ธนาคารกรุงไทย", "KRUNGTHAI"}},
	{statement.BankKBANK, []string{
		"ธนาคารกสิกรไทย", "KASIKORNBANK",
		"K-MOBILE BANKING", "K PLUS", "K-PLUS",
		"กสิกร", "KBANK",
	}},
	{statement.BankBBL, []string{"ธนาคารกรุงเทพ", "BANGKOK BANK"}},
	{statement.BankTTB, []string{
		"ธนาคารทหารไทยธนชาต", "TMB", "THANACHART",
		"TTB", "ทีทีบี", "TTBBANK.COM",
	}},
}

// samplePages bounds how much of the document is scanned. Bank identity sits
// in headers and footers, so the first two pages are enough.
const samplePages = 2

// Detect classifies concatenated statement text. It returns
// statement.ErrEmptyDocument for blank input and
// statement.ErrUnsupportedFormat when no keyword set matches.
func Detect(text string) (statement.Bank, error) {
	if strings.TrimSpace(text) == "" {
		return "", statement.ErrEmptyDocument
	}

	upper := strings.ToUpper(text)
	for _, sig := range signatures {
		for _, kw := range sig.keywords {
			if strings.Contains(upper, strings.ToUpper(kw)) {
				return sig.bank, nil
			}
		}
	}

	return "", statement.ErrUnsupportedFormat
}

// DetectDocument classifies an extracted page document from its first pages.
func DetectDocument(doc *statement.Document) (statement.Bank, error) {
	if doc == nil || doc.IsEmpty() {
		return "", statement.ErrEmptyDocument
	}

	var sb strings.Builder
	for i, page := range doc.Pages {
		if i >= samplePages {
			break
		}
		for _, ln := range page.Lines {
			sb.WriteString(ln)
			sb.WriteByte('\n')
		}
	}

	return Detect(sb.String())
}
