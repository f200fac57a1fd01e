// Package pdftext turns statement PDFs into the page/line document the
// parsing pipeline consumes. It also decodes documents that were extracted
// elsewhere and delivered as JSON.
package pdftext

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/FACorreiaa/thai-statement-engine/internal/domain/statement"
)

// Extract reads the PDF at path and returns its text split into pages and
// lines. password may be empty; an encrypted document with a missing or
// wrong password yields statement.ErrAuthentication.
func Extract(path, password string) (doc *statement.Document, err error) {
	// The pdf library panics on some malformed documents.
	defer func() {
		if r := recover(); r != nil {
			doc = nil
			err = fmt.Errorf("pdf extraction crashed: %v", r)
		}
	}()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	// The password func is invoked only when the document is encrypted;
	// that is also our encryption signal. Returning the same password a
	// second time would loop, so the second call gives up.
	encrypted := false
	attempts := 0
	reader, err := pdf.NewReaderEncrypted(f, info.Size(), func() string {
		encrypted = true
		attempts++
		if attempts > 1 {
			return ""
		}
		return password
	})
	if err != nil {
		if errors.Is(err, pdf.ErrInvalidPassword) {
			return nil, fmt.Errorf("%s: %w", path, statement.ErrAuthentication)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	doc = &statement.Document{IsEncrypted: encrypted}
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		doc.Pages = append(doc.Pages, statement.Page{
			PageNumber: i,
			Lines:      pageLines(page),
		})
	}

	if doc.IsEmpty() {
		return nil, fmt.Errorf("%s: %w", path, statement.ErrEmptyDocument)
	}
	return doc, nil
}

// pageLines reconstructs text lines from the page's positioned rows. Words
// in a row are joined with single spaces; blank rows are dropped.
func pageLines(page pdf.Page) []string {
	rows, err := page.GetTextByRow()
	if err != nil {
		return nil
	}

	var lines []string
	for _, row := range rows {
		parts := make([]string, 0, len(row.Content))
		for _, word := range row.Content {
			parts = append(parts, word.S)
		}
		if line := strings.TrimSpace(strings.Join(parts, " ")); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
