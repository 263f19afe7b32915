// Command analyzer answers questions about a text or PDF document using
// OpenAI chat models, grounded by a one-shot example pair.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ddtdanilo/OpenAI-Document-Analyzer/internal/adapters/filewatcher"
	"github.com/ddtdanilo/OpenAI-Document-Analyzer/internal/adapters/history"
	"github.com/ddtdanilo/OpenAI-Document-Analyzer/internal/adapters/llm"
	"github.com/ddtdanilo/OpenAI-Document-Analyzer/internal/adapters/loader"
	"github.com/ddtdanilo/OpenAI-Document-Analyzer/internal/adapters/parser"
	"github.com/ddtdanilo/OpenAI-Document-Analyzer/internal/domain/ports"
	"github.com/ddtdanilo/OpenAI-Document-Analyzer/internal/domain/usecases"
	"github.com/ddtdanilo/OpenAI-Document-Analyzer/internal/infrastructure/cli"
	"github.com/ddtdanilo/OpenAI-Document-Analyzer/internal/infrastructure/config"
)

func main() {
	var model string

	root := &cobra.Command{
		Use:   "analyzer <example_prompt> <example_response> <document>",
		Short: "Interactive document analysis with OpenAI chat models",
		Long: "Loads a document (.txt or .pdf) together with a one-shot example\n" +
			"prompt/response pair and answers free-text questions about it.",
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, model)
		},
	}
	root.Flags().StringVar(&model, "model", "", "chat model to start with (overrides OPENAI_MODEL)")

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string, model string) error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	chat, err := llm.NewOpenAIAdapter(cfg.APIKey, llm.Options{
		BaseURL:     cfg.BaseURL,
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxTokens,
		Timeout:     cfg.RequestTimeout,
	})
	if err != nil {
		return err
	}

	docLoader := loader.NewFormatLoader(parser.NewPDFParser())
	engine := usecases.NewAnalysisUseCase(chat, docLoader, cfg.DefaultModel)
	if model != "" {
		if err := engine.SetModel(model); err != nil {
			return err
		}
	}

	var store ports.HistoryStore
	if sqlStore, err := history.NewSQLiteStore(cfg.DataDir); err != nil {
		log.Printf("[WARN] history persistence unavailable (%v), keeping history in memory", err)
		store = history.NewInMemoryStore()
	} else {
		store = sqlStore
	}
	defer store.Close()

	var watcher ports.FileWatcher
	if w, err := filewatcher.NewFSNotifyWatcher(); err != nil {
		log.Printf("[WARN] document watcher unavailable: %v", err)
	} else {
		watcher = w
		defer w.Stop()
	}

	repl := cli.New(engine, docLoader, store, watcher, os.Stdin, os.Stdout)
	return repl.Run(cmd.Context(), args[0], args[1], args[2])
}
