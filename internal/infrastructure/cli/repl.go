// Package cli provides the interactive question loop.
// Clean Architecture: Framework/driver layer - outermost circle. All
// user-facing text and error presentation lives here; the core stays silent.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/ddtdanilo/OpenAI-Document-Analyzer/internal/domain/entities"
	"github.com/ddtdanilo/OpenAI-Document-Analyzer/internal/domain/errs"
	"github.com/ddtdanilo/OpenAI-Document-Analyzer/internal/domain/ports"
	"github.com/ddtdanilo/OpenAI-Document-Analyzer/internal/domain/usecases"
)

// REPL runs the interactive analysis session over one document.
type REPL struct {
	engine  *usecases.AnalysisUseCase
	loader  ports.DocumentLoader
	history ports.HistoryStore
	watcher ports.FileWatcher // optional
	in      io.Reader
	out     io.Writer
}

// New creates a REPL. watcher may be nil to disable document reloading.
func New(engine *usecases.AnalysisUseCase, docLoader ports.DocumentLoader, store ports.HistoryStore, watcher ports.FileWatcher, in io.Reader, out io.Writer) *REPL {
	return &REPL{
		engine:  engine,
		loader:  docLoader,
		history: store,
		watcher: watcher,
		in:      in,
		out:     out,
	}
}

// Run loads the example pair and the document, then answers questions until
// the operator types exit. Non-fatal errors are reported and the loop
// continues.
func (r *REPL) Run(ctx context.Context, examplePromptPath, exampleResponsePath, documentPath string) error {
	examplePrompt, err := r.loader.Load(ctx, examplePromptPath)
	if err != nil {
		return fmt.Errorf("loading example prompt: %w", err)
	}
	exampleResponse, err := r.loader.Load(ctx, exampleResponsePath)
	if err != nil {
		return fmt.Errorf("loading example response: %w", err)
	}
	doc, err := r.loader.Load(ctx, documentPath)
	if err != nil {
		return fmt.Errorf("loading document: %w", err)
	}

	var stale atomic.Bool
	if r.watcher != nil {
		events, err := r.watcher.Watch(ctx, documentPath)
		if err != nil {
			log.Printf("[WARN] document watcher disabled: %v", err)
		} else {
			go func() {
				for ev := range events {
					switch ev.Operation {
					case ports.FileModified:
						stale.Store(true)
					case ports.FileDeleted:
						log.Printf("[WARN] %s was removed from disk", ev.Path)
					}
				}
			}()
		}
	}

	r.banner(doc.Name)

	scanner := bufio.NewScanner(r.in)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	for {
		fmt.Fprint(r.out, "\nWhat do you want to ask about the text? ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())

		switch strings.ToLower(line) {
		case "exit", "quit":
			fmt.Fprintln(r.out, "Goodbye!")
			return nil
		case "model":
			r.changeModel(scanner)
			continue
		case "history":
			r.printHistory(ctx, doc.ID)
			continue
		case "reload":
			if fresh := r.reload(ctx, documentPath); fresh != nil {
				doc = fresh
				stale.Store(false)
			}
			continue
		case "":
			fmt.Fprintln(r.out, "Please enter a question or command.")
			continue
		}

		if stale.Swap(false) {
			if fresh := r.reload(ctx, documentPath); fresh != nil {
				doc = fresh
			}
		}

		fmt.Fprintln(r.out, "\nGenerating response...")
		answer, err := r.engine.Ask(ctx, entities.PromptContext{
			Prompt:          line,
			ExamplePrompt:   examplePrompt.Content,
			ExampleResponse: exampleResponse.Content,
			Text:            doc.Content,
		}, "")
		if err != nil {
			fmt.Fprintln(r.out, errorMessage(err))
			continue
		}

		fmt.Fprintln(r.out, "\nAnswer:")
		fmt.Fprintln(r.out, answer)

		if err := r.history.Save(ctx, entities.HistoryEntry{
			DocumentID: doc.ID,
			Question:   line,
			Answer:     answer,
			Model:      r.engine.Model(),
		}); err != nil {
			log.Printf("[WARN] failed to record history: %v", err)
		}
	}
}

// banner prints the session header, mirroring the original tool.
func (r *REPL) banner(docName string) {
	fmt.Fprintln(r.out, "Text Analysis with OpenAI Models")
	fmt.Fprintln(r.out, strings.Repeat("=", 40))
	fmt.Fprintf(r.out, "Document: %s\n", docName)
	fmt.Fprintf(r.out, "Using model: %s\n", r.engine.Model())
	fmt.Fprintln(r.out, "\nCommands:")
	fmt.Fprintln(r.out, "- Type your question about the text")
	fmt.Fprintln(r.out, "- Type 'model' to change the model")
	fmt.Fprintln(r.out, "- Type 'history' to review past answers")
	fmt.Fprintln(r.out, "- Type 'reload' to re-read the document")
	fmt.Fprintln(r.out, "- Type 'exit' to quit")
	fmt.Fprintln(r.out, strings.Repeat("=", 40))
}

// changeModel lists the allow-listed models and applies the selection.
func (r *REPL) changeModel(scanner *bufio.Scanner) {
	fmt.Fprintln(r.out, "\nAvailable models:")
	for i, m := range usecases.AvailableModels {
		marker := ""
		if m == r.engine.Model() {
			marker = " (current)"
		}
		fmt.Fprintf(r.out, "%d. %s%s\n", i+1, m, marker)
	}

	fmt.Fprint(r.out, "\nEnter model number or name: ")
	if !scanner.Scan() {
		return
	}
	choice := resolveModelChoice(strings.TrimSpace(scanner.Text()))

	if err := r.engine.SetModel(choice); err != nil {
		fmt.Fprintln(r.out, errorMessage(err))
		return
	}
	fmt.Fprintf(r.out, "Model changed to: %s\n", r.engine.Model())
}

// printHistory shows the most recent answers for the current document.
func (r *REPL) printHistory(ctx context.Context, docID string) {
	entries, err := r.history.Recent(ctx, docID, 10)
	if err != nil {
		fmt.Fprintf(r.out, "Could not read history: %v\n", err)
		return
	}
	if len(entries) == 0 {
		fmt.Fprintln(r.out, "No questions asked yet.")
		return
	}
	for _, e := range entries {
		fmt.Fprintf(r.out, "\n[%s] %s\nQ: %s\nA: %s\n",
			e.CreatedAt.Format("2006-01-02 15:04"), e.Model, e.Question, e.Answer)
	}
}

// reload re-reads the document, reporting failures without ending the loop.
func (r *REPL) reload(ctx context.Context, path string) *entities.Document {
	doc, err := r.loader.Load(ctx, path)
	if err != nil {
		fmt.Fprintln(r.out, errorMessage(err))
		return nil
	}
	log.Printf("[INFO] reloaded %s", doc.Name)
	return doc
}

// resolveModelChoice turns a numeric menu selection into a model name.
// Anything else passes through for the engine to validate.
func resolveModelChoice(input string) string {
	if n, err := strconv.Atoi(input); err == nil {
		if n >= 1 && n <= len(usecases.AvailableModels) {
			return usecases.AvailableModels[n-1]
		}
	}
	return input
}

// errorMessage maps each error kind to a distinct human-readable message.
func errorMessage(err error) string {
	switch {
	case errors.Is(err, errs.ErrFileNotFound):
		return fmt.Sprintf("File not found: %v", err)
	case errors.Is(err, errs.ErrUnsupportedFormat):
		return fmt.Sprintf("Unsupported file format: %v", err)
	case errors.Is(err, errs.ErrExtraction):
		return fmt.Sprintf("Could not extract text: %v", err)
	case errors.Is(err, errs.ErrUnknownModel):
		return "Invalid model selection."
	case errors.Is(err, errs.ErrAuthentication):
		return "Authentication with OpenAI failed. Check OPENAI_API_KEY."
	case errors.Is(err, errs.ErrRateLimit):
		return "OpenAI is rate limiting requests. Try again in a moment."
	case errors.Is(err, errs.ErrRequest):
		return fmt.Sprintf("OpenAI rejected the request: %v", err)
	case errors.Is(err, errs.ErrTransport):
		return fmt.Sprintf("Network error talking to OpenAI: %v", err)
	default:
		return fmt.Sprintf("Error: %v", err)
	}
}
