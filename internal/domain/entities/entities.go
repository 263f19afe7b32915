// Package entities contains core business entities.
// These are the enterprise business rules - pure domain objects with no external dependencies.
package entities

import "time"

// Format identifies a supported document format. It is a closed enumeration:
// dispatch on it with a switch, not with open-ended type inspection.
type Format string

const (
	FormatText Format = "text"
	FormatPDF  Format = "pdf"
)

// Document represents a source document (.txt or .pdf) reduced to plain text.
// This is a core entity - no knowledge of storage or external systems.
type Document struct {
	ID       string
	Name     string
	Path     string
	Format   Format
	Content  string
	LoadedAt time.Time
}

// Message roles accepted by the chat-completion endpoint.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one role-tagged entry in a chat-completion request.
type Message struct {
	Role    string
	Content string
}

// PromptContext is the grounding material for one completion request:
// the instruction, a one-shot example pair, and the text under analysis.
// All four fields should be non-empty for a well-formed request; validation
// belongs to the caller.
type PromptContext struct {
	Prompt          string
	ExamplePrompt   string
	ExampleResponse string
	Text            string
}

// CompletionRequest is what gets dispatched to the completion endpoint.
type CompletionRequest struct {
	Model    string
	Messages []Message
}

// Analysis is the extracted answer plus the model that produced it.
type Analysis struct {
	Answer string
	Model  string
}

// HistoryEntry records one answered question for operator recall.
// It is local bookkeeping only and is never sent back to the model.
type HistoryEntry struct {
	ID         string
	DocumentID string
	Question   string
	Answer     string
	Model      string
	CreatedAt  time.Time
}
