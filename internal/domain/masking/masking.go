// Package masking replaces personally identifiable data in statement text
// with stable placeholder tokens before anything leaves the process, per
// PDPA. The token-to-original mapping is returned to the caller and must
// never travel with the masked output.
package masking

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/FACorreiaa/thai-statement-engine/internal/domain/statement"
)

// category pairs a detection pattern with its token prefix. Order matters:
// the 13-digit Thai ID must run before the account pattern or the account
// rule eats its digit runs first.
type category struct {
	prefix   string
	patterns []*regexp.Regexp
}

var categories = []category{
	{"THAIID", []*regexp.Regexp{
		regexp.MustCompile(`\b\d{13}\b`),
	}},
	{"ACCOUNT", []*regexp.Regexp{
		regexp.MustCompile(`\b\d{3,4}-\d+-\d{5,7}-?\d?\b`),
	}},
	{"NAME", []*regexp.Regexp{
		regexp.MustCompile(`นางสาว\s*[ก-๙]+\s+[ก-๙]+`),
		regexp.MustCompile(`นาย\s*[ก-๙]+\s+[ก-๙]+`),
		regexp.MustCompile(`นาง\s*[ก-๙]+\s+[ก-๙]+`),
	}},
	{"PHONE", []*regexp.Regexp{
		regexp.MustCompile(`\b0\d{2}-\d{3}-\d{4}\b`),
		regexp.MustCompile(`\b0\d{9}\b`),
	}},
	{"EMAIL", []*regexp.Regexp{
		regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
	}},
}

// Masker accumulates one token mapping across every piece of text it masks,
// so the same original value always maps to the same token within a run.
// Not safe for concurrent use; create one per statement.
type Masker struct {
	mapping map[string]string // token -> original
	tokens  map[string]string // original -> token
}

func NewMasker() *Masker {
	return &Masker{
		mapping: make(map[string]string),
		tokens:  make(map[string]string),
	}
}

// MaskText replaces every detected identifier in text with its token.
func (m *Masker) MaskText(text string) string {
	for _, cat := range categories {
		for _, re := range cat.patterns {
			text = re.ReplaceAllStringFunc(text, func(original string) string {
				return m.token(cat.prefix, original)
			})
		}
	}
	return text
}

func (m *Masker) token(prefix, original string) string {
	if tok, ok := m.tokens[original]; ok {
		return tok
	}
	tok := fmt.Sprintf("%s_%03d", prefix, len(m.mapping)+1)
	m.mapping[tok] = original
	m.tokens[original] = tok
	return tok
}

// Mapping returns the token-to-original mapping built so far. The caller
// owns keeping it off any external surface.
func (m *Masker) Mapping() map[string]string {
	out := make(map[string]string, len(m.mapping))
	for k, v := range m.mapping {
		out[k] = v
	}
	return out
}

// MaskStatement returns a masked copy of the statement. Descriptions and
// payers are masked; amounts, dates and provenance pass through unchanged.
// The input statement is not modified.
func (m *Masker) MaskStatement(st *statement.Statement) *statement.Statement {
	masked := &statement.Statement{
		BankName:       st.BankName,
		PagesProcessed: st.PagesProcessed,
		Transactions:   make([]statement.Transaction, len(st.Transactions)),
	}
	for i, tx := range st.Transactions {
		out := tx
		out.Description = m.MaskText(tx.Description)
		out.Payer = m.MaskText(tx.Payer)
		masked.Transactions[i] = out
	}
	return masked
}

// Unmask restores original values in text using a mapping produced by a
// Masker.
func Unmask(text string, mapping map[string]string) string {
	for tok, original := range mapping {
		text = strings.ReplaceAll(text, tok, original)
	}
	return text
}
