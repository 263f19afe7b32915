// Package parser provides document parsing adapters.
// Clean Architecture: Adapter implementing ports.DocumentParser.
package parser

import (
	"bytes"
	"context"

	"github.com/ledongthuc/pdf"

	"github.com/ddtdanilo/OpenAI-Document-Analyzer/internal/domain/errs"
)

// PDFParser implements ports.DocumentParser using the pdf text layer.
// No OCR, no fallback extraction: a PDF that cannot be parsed fails.
type PDFParser struct{}

// NewPDFParser creates a new PDF parser.
func NewPDFParser() *PDFParser {
	return &PDFParser{}
}

// Parse extracts the text of each page, in page order.
func (p *PDFParser) Parse(ctx context.Context, data []byte, filename string) (pages []string, err error) {
	// The pdf package panics on some malformed files.
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = errs.Wrap(errs.ErrExtraction, "%s: %v", filename, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, errs.Wrap(errs.ErrExtraction, "%s: %v", filename, err)
	}

	total := reader.NumPage()
	if total == 0 {
		return nil, errs.Wrap(errs.ErrExtraction, "%s: no extractable pages", filename)
	}

	pages = make([]string, 0, total)
	for i := 1; i <= total; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, errs.Wrap(errs.ErrExtraction, "%s: page %d: %v", filename, i, err)
		}
		pages = append(pages, text)
	}
	return pages, nil
}

// SupportedFormats returns formats this parser handles.
func (p *PDFParser) SupportedFormats() []string {
	return []string{"pdf"}
}
