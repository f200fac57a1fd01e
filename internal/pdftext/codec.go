package pdftext

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/FACorreiaa/thai-statement-engine/internal/domain/statement"
)

// jsonPage accepts both wire shapes for a page: pre-split lines, or one
// text blob that still needs splitting.
type jsonPage struct {
	PageNumber int      `json:"page_number"`
	Lines      []string `json:"lines"`
	Text       string   `json:"text"`
}

type jsonDocument struct {
	Pages       []jsonPage `json:"pages"`
	IsEncrypted bool       `json:"is_encrypted"`
}

// DecodeDocument reads a JSON document produced by an external extractor.
func DecodeDocument(r io.Reader) (*statement.Document, error) {
	var wire jsonDocument
	if err := json.NewDecoder(r).Decode(&wire); err != nil {
		return nil, fmt.Errorf("failed to decode document json: %w", err)
	}

	doc := &statement.Document{IsEncrypted: wire.IsEncrypted}
	for _, p := range wire.Pages {
		lines := p.Lines
		if len(lines) == 0 && p.Text != "" {
			lines = splitLines(p.Text)
		}
		doc.Pages = append(doc.Pages, statement.Page{
			PageNumber: p.PageNumber,
			Lines:      lines,
		})
	}

	if doc.IsEmpty() {
		return nil, statement.ErrEmptyDocument
	}
	return doc, nil
}

// EncodeDocument writes the document back out in the lines shape.
func EncodeDocument(w io.Writer, doc *statement.Document) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode document json: %w", err)
	}
	return nil
}

func splitLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, ln := range raw {
		if trimmed := strings.TrimSpace(ln); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}
