package history

import (
	"context"
	"os"
	"testing"

	"github.com/ddtdanilo/OpenAI-Document-Analyzer/internal/domain/entities"
	"github.com/ddtdanilo/OpenAI-Document-Analyzer/internal/domain/ports"
)

func stores(t *testing.T) map[string]ports.HistoryStore {
	t.Helper()

	dir, err := os.MkdirTemp("", "history-test-*")
	if err != nil {
		t.Fatalf("temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })

	sqlite, err := NewSQLiteStore(dir)
	if err != nil {
		t.Fatalf("creating sqlite store: %v", err)
	}
	t.Cleanup(func() { sqlite.Close() })

	return map[string]ports.HistoryStore{
		"sqlite": sqlite,
		"memory": NewInMemoryStore(),
	}
}

func TestHistoryStore_SaveAndRecent(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			for _, q := range []string{"first", "second", "third"} {
				err := store.Save(ctx, entities.HistoryEntry{
					DocumentID: "doc-1",
					Question:   q,
					Answer:     "answer to " + q,
					Model:      "gpt-4o",
				})
				if err != nil {
					t.Fatalf("save failed: %v", err)
				}
			}

			entries, err := store.Recent(ctx, "doc-1", 2)
			if err != nil {
				t.Fatalf("recent failed: %v", err)
			}
			if len(entries) != 2 {
				t.Fatalf("expected 2 entries, got %d", len(entries))
			}
			// Newest first
			if entries[0].Question != "third" || entries[1].Question != "second" {
				t.Errorf("wrong order: %s, %s", entries[0].Question, entries[1].Question)
			}
			if entries[0].Model != "gpt-4o" {
				t.Errorf("model not persisted: %s", entries[0].Model)
			}
			if entries[0].CreatedAt.IsZero() {
				t.Error("created_at not set")
			}
		})
	}
}

func TestHistoryStore_IsolatesDocuments(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			store.Save(ctx, entities.HistoryEntry{DocumentID: "doc-a", Question: "qa", Answer: "aa", Model: "gpt-4o"})
			store.Save(ctx, entities.HistoryEntry{DocumentID: "doc-b", Question: "qb", Answer: "ab", Model: "gpt-4o"})

			entries, err := store.Recent(ctx, "doc-a", 10)
			if err != nil {
				t.Fatalf("recent failed: %v", err)
			}
			if len(entries) != 1 || entries[0].Question != "qa" {
				t.Errorf("expected only doc-a entries, got %+v", entries)
			}
		})
	}
}

func TestHistoryStore_EmptyDocument(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			entries, err := store.Recent(context.Background(), "never-seen", 10)
			if err != nil {
				t.Fatalf("recent failed: %v", err)
			}
			if len(entries) != 0 {
				t.Errorf("expected no entries, got %d", len(entries))
			}
		})
	}
}

func TestSQLiteStore_ReopensExistingDatabase(t *testing.T) {
	dir, _ := os.MkdirTemp("", "history-test-*")
	defer os.RemoveAll(dir)

	ctx := context.Background()

	first, err := NewSQLiteStore(dir)
	if err != nil {
		t.Fatalf("creating store: %v", err)
	}
	first.Save(ctx, entities.HistoryEntry{DocumentID: "doc-1", Question: "q", Answer: "a", Model: "gpt-4o"})
	first.Close()

	second, err := NewSQLiteStore(dir)
	if err != nil {
		t.Fatalf("reopening store: %v", err)
	}
	defer second.Close()

	entries, err := second.Recent(ctx, "doc-1", 10)
	if err != nil {
		t.Fatalf("recent failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("history not persisted across opens: %d entries", len(entries))
	}
}
