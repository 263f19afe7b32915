// Package config loads runtime configuration from the environment.
// Clean Architecture: Framework/driver layer. The core never reads the
// environment itself; it receives resolved values from here.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/ddtdanilo/OpenAI-Document-Analyzer/internal/domain/errs"
)

// Config carries everything the CLI needs to wire the adapters.
type Config struct {
	APIKey         string
	BaseURL        string
	DefaultModel   string
	DataDir        string
	Temperature    float32
	MaxTokens      int
	RequestTimeout time.Duration
}

// Load reads configuration from environment variables. A missing API key is
// an unrecoverable setup failure.
func Load() (*Config, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, errs.Wrap(errs.ErrAuthentication, "OPENAI_API_KEY is not set")
	}

	return &Config{
		APIKey:         apiKey,
		BaseURL:        os.Getenv("OPENAI_BASE_URL"),
		DefaultModel:   getenv("OPENAI_MODEL", "gpt-4o"),
		DataDir:        getenv("ANALYZER_DATA_DIR", "./data"),
		Temperature:    0.7,
		MaxTokens:      2000,
		RequestTimeout: time.Duration(getenvInt("ANALYZER_TIMEOUT_SECONDS", 90)) * time.Second,
	}, nil
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getenvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
