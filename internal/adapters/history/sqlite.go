// Package history provides Q&A transcript stores.
// Clean Architecture: Adapter implementing ports.HistoryStore.
// Entries are local operator bookkeeping; nothing here is ever sent back to
// the model.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/ddtdanilo/OpenAI-Document-Analyzer/internal/domain/entities"
	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteStore implements ports.HistoryStore with SQLite-based persistence.
type SQLiteStore struct {
	mu sync.Mutex
	db *sql.DB
}

// NewSQLiteStore creates a persistent history store under dataPath.
func NewSQLiteStore(dataPath string) (*SQLiteStore, error) {
	if dataPath == "" {
		dataPath = "./data"
	}

	if err := os.MkdirAll(dataPath, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataPath, "history.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	return store, nil
}

// initSchema creates the necessary tables.
func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		document_id TEXT NOT NULL,
		question TEXT NOT NULL,
		answer TEXT NOT NULL,
		model TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_history_document_id ON history(document_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Save records one answered question.
func (s *SQLiteStore) Save(ctx context.Context, entry entities.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO history (document_id, question, answer, model, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, entry.DocumentID, entry.Question, entry.Answer, entry.Model, createdAt)
	if err != nil {
		return fmt.Errorf("inserting history entry: %w", err)
	}
	return nil
}

// Recent returns up to limit entries for a document, newest first.
func (s *SQLiteStore) Recent(ctx context.Context, documentID string, limit int) ([]entities.HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, document_id, question, answer, model, created_at
		FROM history
		WHERE document_id = ?
		ORDER BY id DESC
		LIMIT ?
	`, documentID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []entities.HistoryEntry
	for rows.Next() {
		var e entities.HistoryEntry
		if err := rows.Scan(&e.ID, &e.DocumentID, &e.Question, &e.Answer, &e.Model, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning history entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
