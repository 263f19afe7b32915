// Package usecases contains application business rules.
// Clean Architecture: Usecases orchestrate entities and depend on port interfaces.
// They contain NO framework code, NO external dependencies - just pure business logic.
package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/ddtdanilo/OpenAI-Document-Analyzer/internal/domain/entities"
	"github.com/ddtdanilo/OpenAI-Document-Analyzer/internal/domain/errs"
	"github.com/ddtdanilo/OpenAI-Document-Analyzer/internal/domain/ports"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gpt-4o"

// AvailableModels is the closed allow-list of chat models the engine accepts.
var AvailableModels = []string{
	"gpt-4o",
	"gpt-4o-mini",
	"gpt-4-turbo",
	"gpt-4-turbo-preview",
	"gpt-3.5-turbo",
	"gpt-3.5-turbo-16k",
}

const (
	askSystemPrompt = "You are a helpful assistant and you give answers in a list. " +
		"People generally ask about text and books."
	analyzeSystemPrompt = "You are a helpful assistant that analyzes text and documents."
)

// AnalysisUseCase composes grounded chat requests and extracts answers.
// It owns the current model selection. The selection is plain unsynchronized
// state: use one instance per concurrent flow.
type AnalysisUseCase struct {
	chat   ports.ChatCompleter
	loader ports.DocumentLoader
	model  string
}

// NewAnalysisUseCase creates an AnalysisUseCase with injected dependencies.
// Dependency Injection: Adapters are passed in, not created here.
func NewAnalysisUseCase(chat ports.ChatCompleter, loader ports.DocumentLoader, defaultModel string) *AnalysisUseCase {
	if defaultModel == "" {
		defaultModel = DefaultModel
	}
	return &AnalysisUseCase{
		chat:   chat,
		loader: loader,
		model:  defaultModel,
	}
}

// Model returns the currently selected model identifier.
func (uc *AnalysisUseCase) Model() string {
	return uc.model
}

// SetModel switches the stored model selection. The update is atomic: on an
// unknown identifier the previous selection is retained unchanged.
func (uc *AnalysisUseCase) SetModel(identifier string) error {
	if !IsAvailableModel(identifier) {
		return errs.Wrap(errs.ErrUnknownModel, "%q is not in the supported model list", identifier)
	}
	uc.model = identifier
	return nil
}

// IsAvailableModel reports whether identifier is in the allow-list.
func IsAvailableModel(identifier string) bool {
	for _, m := range AvailableModels {
		if m == identifier {
			return true
		}
	}
	return false
}

// Ask answers a question about a text using one-shot example prompting.
// The message order is significant: instruction, example question, example
// answer, then the real query, so the model infers the expected answer shape
// before seeing the real input. An explicit model overrides the stored
// selection for this call only and does not mutate it.
func (uc *AnalysisUseCase) Ask(ctx context.Context, pc entities.PromptContext, model string) (string, error) {
	req := entities.CompletionRequest{
		Model: uc.resolve(model),
		Messages: []entities.Message{
			{Role: entities.RoleSystem, Content: askSystemPrompt},
			{Role: entities.RoleUser, Content: pc.ExamplePrompt},
			{Role: entities.RoleAssistant, Content: pc.ExampleResponse},
			{Role: entities.RoleUser, Content: fmt.Sprintf("Now, about this following text, %s: %s", pc.Prompt, pc.Text)},
		},
	}

	result, err := uc.chat.Complete(ctx, req)
	if err != nil {
		return "", fmt.Errorf("generating response: %w", err)
	}
	return strings.TrimSpace(result.Answer), nil
}

// Analyze runs a plain analysis prompt over a text, without the one-shot pair.
func (uc *AnalysisUseCase) Analyze(ctx context.Context, text, prompt, model string) (string, error) {
	if prompt == "" {
		prompt = "Analyze this text"
	}
	req := entities.CompletionRequest{
		Model: uc.resolve(model),
		Messages: []entities.Message{
			{Role: entities.RoleSystem, Content: analyzeSystemPrompt},
			{Role: entities.RoleUser, Content: fmt.Sprintf("%s: %s", prompt, text)},
		},
	}

	result, err := uc.chat.Complete(ctx, req)
	if err != nil {
		return "", fmt.Errorf("analyzing text: %w", err)
	}
	return strings.TrimSpace(result.Answer), nil
}

// AnalyzeDocument loads a document and analyzes its content.
func (uc *AnalysisUseCase) AnalyzeDocument(ctx context.Context, path, prompt, model string) (string, error) {
	doc, err := uc.loader.Load(ctx, path)
	if err != nil {
		return "", err
	}
	return uc.Analyze(ctx, doc.Content, prompt, model)
}

// resolve picks the model for one call: explicit override wins, otherwise the
// stored selection.
func (uc *AnalysisUseCase) resolve(model string) string {
	if model != "" {
		return model
	}
	return uc.model
}
