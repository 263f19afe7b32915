// In-memory history store. Open-Closed: interchangeable with the SQLite
// adapter without changing usecases; handy for tests and ephemeral runs.
package history

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/ddtdanilo/OpenAI-Document-Analyzer/internal/domain/entities"
)

// InMemoryStore keeps history entries per document in process memory.
type InMemoryStore struct {
	mu      sync.RWMutex
	entries map[string][]entities.HistoryEntry // docID -> entries, oldest first
	nextID  int
}

// NewInMemoryStore creates a new in-memory history store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		entries: make(map[string][]entities.HistoryEntry),
		nextID:  1,
	}
}

// Save records one answered question.
func (s *InMemoryStore) Save(ctx context.Context, entry entities.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry.ID = strconv.Itoa(s.nextID)
	s.nextID++
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	s.entries[entry.DocumentID] = append(s.entries[entry.DocumentID], entry)
	return nil
}

// Recent returns up to limit entries for a document, newest first.
func (s *InMemoryStore) Recent(ctx context.Context, documentID string, limit int) ([]entities.HistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 10
	}

	all := s.entries[documentID]
	var recent []entities.HistoryEntry
	for i := len(all) - 1; i >= 0 && len(recent) < limit; i-- {
		recent = append(recent, all[i])
	}
	return recent, nil
}

// Close is a no-op for the in-memory store.
func (s *InMemoryStore) Close() error {
	return nil
}
