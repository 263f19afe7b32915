// Package ports defines interfaces for external dependencies.
// Clean Architecture: These are the boundaries - usecases depend on these abstractions,
// not concrete implementations. Adapters implement these interfaces.
package ports

import (
	"context"

	"github.com/ddtdanilo/OpenAI-Document-Analyzer/internal/domain/entities"
)

// DocumentLoader reads a document from disk and reduces it to plain text.
type DocumentLoader interface {
	// Load reads the document at path. The file handle is scoped to the
	// call and released on every exit path.
	Load(ctx context.Context, path string) (*entities.Document, error)

	// SupportedExtensions returns file extensions this loader handles.
	SupportedExtensions() []string
}

// DocumentParser extracts text from binary document formats (currently PDF).
// Interface Segregation: separate from DocumentLoader so extraction can be
// swapped without touching path handling.
type DocumentParser interface {
	// Parse extracts the text content from document bytes, one string per
	// page, in page order.
	Parse(ctx context.Context, data []byte, filename string) ([]string, error)

	// SupportedFormats returns formats this parser handles (e.g., "pdf").
	SupportedFormats() []string
}

// ChatCompleter sends one assembled message sequence to the remote
// chat-completion endpoint. One outbound call per invocation, synchronous,
// non-streaming, never retried here.
type ChatCompleter interface {
	Complete(ctx context.Context, req entities.CompletionRequest) (entities.Analysis, error)
}

// HistoryStore persists answered questions for operator recall.
type HistoryStore interface {
	// Save records one answered question.
	Save(ctx context.Context, entry entities.HistoryEntry) error

	// Recent returns up to limit entries for a document, newest first.
	Recent(ctx context.Context, documentID string, limit int) ([]entities.HistoryEntry, error)

	// Close releases the underlying storage.
	Close() error
}

// FileWatcher monitors a single file for changes.
type FileWatcher interface {
	// Watch starts monitoring the file and emits events until ctx is done.
	Watch(ctx context.Context, path string) (<-chan FileEvent, error)

	// Stop stops the watcher.
	Stop() error
}

// FileEvent represents a file system change.
type FileEvent struct {
	Path      string
	Operation FileOperation
}

// FileOperation is the type of file change.
type FileOperation int

const (
	FileModified FileOperation = iota
	FileDeleted
)
