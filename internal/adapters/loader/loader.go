// Package loader provides document loading adapters.
package loader

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ddtdanilo/OpenAI-Document-Analyzer/internal/domain/entities"
	"github.com/ddtdanilo/OpenAI-Document-Analyzer/internal/domain/errs"
	"github.com/ddtdanilo/OpenAI-Document-Analyzer/internal/domain/ports"
)

// DetectFormat maps a file extension to a document format. The mapping is a
// closed enumeration: anything but .txt and .pdf is an error, so adding a
// format is a localized change here plus one loader.
func DetectFormat(path string) (entities.Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt":
		return entities.FormatText, nil
	case ".pdf":
		return entities.FormatPDF, nil
	default:
		return "", errs.Wrap(errs.ErrUnsupportedFormat, "%s: use .txt or .pdf", filepath.Ext(path))
	}
}

// TextLoader loads plain text documents (.txt) as UTF-8, verbatim.
type TextLoader struct{}

// NewTextLoader creates a new text document loader.
func NewTextLoader() *TextLoader {
	return &TextLoader{}
}

// Load reads a text document from the given path.
func (l *TextLoader) Load(ctx context.Context, path string) (*entities.Document, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.Wrap(errs.ErrFileNotFound, "%s", path)
		}
		return nil, err
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	return &entities.Document{
		ID:       generateDocID(path),
		Name:     filepath.Base(path),
		Path:     path,
		Format:   entities.FormatText,
		Content:  string(content),
		LoadedAt: time.Now(),
	}, nil
}

// SupportedExtensions returns file extensions this loader handles.
func (l *TextLoader) SupportedExtensions() []string {
	return []string{".txt"}
}

// PDFLoader loads PDF documents through a DocumentParser.
type PDFLoader struct {
	parser ports.DocumentParser
}

// NewPDFLoader creates a PDF loader backed by the given parser.
func NewPDFLoader(parser ports.DocumentParser) *PDFLoader {
	return &PDFLoader{parser: parser}
}

// Load reads a PDF and extracts its text layer, pages joined with a single
// newline, in page order.
func (l *PDFLoader) Load(ctx context.Context, path string) (*entities.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.Wrap(errs.ErrFileNotFound, "%s", path)
		}
		return nil, err
	}

	pages, err := l.parser.Parse(ctx, data, filepath.Base(path))
	if err != nil {
		return nil, err
	}

	return &entities.Document{
		ID:       generateDocID(path),
		Name:     filepath.Base(path),
		Path:     path,
		Format:   entities.FormatPDF,
		Content:  strings.Join(pages, "\n"),
		LoadedAt: time.Now(),
	}, nil
}

// SupportedExtensions returns file extensions this loader handles.
func (l *PDFLoader) SupportedExtensions() []string {
	return []string{".pdf"}
}

// FormatLoader dispatches to the loader for the detected format.
type FormatLoader struct {
	text *TextLoader
	pdf  *PDFLoader
}

// NewFormatLoader creates a loader that handles every supported format.
func NewFormatLoader(parser ports.DocumentParser) *FormatLoader {
	return &FormatLoader{
		text: NewTextLoader(),
		pdf:  NewPDFLoader(parser),
	}
}

// Load checks the path exists, then dispatches on the detected format.
// The existence check comes first so a missing .docx reports file-not-found
// rather than unsupported-format.
func (m *FormatLoader) Load(ctx context.Context, path string) (*entities.Document, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, errs.Wrap(errs.ErrFileNotFound, "%s", path)
		}
		return nil, err
	}

	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	switch format {
	case entities.FormatPDF:
		return m.pdf.Load(ctx, path)
	default:
		return m.text.Load(ctx, path)
	}
}

// SupportedExtensions returns all supported extensions.
func (m *FormatLoader) SupportedExtensions() []string {
	return append(m.text.SupportedExtensions(), m.pdf.SupportedExtensions()...)
}

// generateDocID creates a deterministic ID for a document.
func generateDocID(path string) string {
	hash := sha256.Sum256([]byte(path))
	return hex.EncodeToString(hash[:8])
}
