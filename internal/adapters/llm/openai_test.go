package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ddtdanilo/OpenAI-Document-Analyzer/internal/domain/entities"
	"github.com/ddtdanilo/OpenAI-Document-Analyzer/internal/domain/errs"
)

func testRequest() entities.CompletionRequest {
	return entities.CompletionRequest{
		Model: "gpt-4o",
		Messages: []entities.Message{
			{Role: entities.RoleSystem, Content: "instruction"},
			{Role: entities.RoleUser, Content: "example question"},
			{Role: entities.RoleAssistant, Content: "example answer"},
			{Role: entities.RoleUser, Content: "real question"},
		},
	}
}

func newTestAdapter(t *testing.T, handler http.HandlerFunc) (*OpenAIAdapter, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	adapter, err := NewOpenAIAdapter("test-key", Options{BaseURL: server.URL})
	if err != nil {
		server.Close()
		t.Fatalf("creating adapter: %v", err)
	}
	return adapter, server
}

func writeCompletion(w http.ResponseWriter, content string) {
	json.NewEncoder(w).Encode(map[string]interface{}{
		"id":    "chatcmpl-test",
		"model": "gpt-4o",
		"choices": []map[string]interface{}{
			{
				"index":         0,
				"message":       map[string]string{"role": "assistant", "content": content},
				"finish_reason": "stop",
			},
		},
	})
}

func writeAPIError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]interface{}{
			"message": message,
			"type":    "invalid_request_error",
		},
	})
}

func TestComplete_DispatchesModelAndMessageOrder(t *testing.T) {
	var got struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}

	adapter, server := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("missing bearer credential: %q", r.Header.Get("Authorization"))
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		writeCompletion(w, "Summary: cat on mat.")
	})
	defer server.Close()

	result, err := adapter.Complete(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if result.Answer != "Summary: cat on mat." {
		t.Errorf("unexpected answer: %q", result.Answer)
	}
	if result.Model != "gpt-4o" {
		t.Errorf("unexpected model: %q", result.Model)
	}

	if got.Model != "gpt-4o" {
		t.Errorf("dispatched model: %q", got.Model)
	}
	wantRoles := []string{"system", "user", "assistant", "user"}
	if len(got.Messages) != len(wantRoles) {
		t.Fatalf("expected %d messages, got %d", len(wantRoles), len(got.Messages))
	}
	for i, role := range wantRoles {
		if got.Messages[i].Role != role {
			t.Errorf("message %d: expected role %s, got %s", i, role, got.Messages[i].Role)
		}
	}
	if got.Messages[3].Content != "real question" {
		t.Errorf("final message content: %q", got.Messages[3].Content)
	}
}

func TestComplete_MapsAuthenticationError(t *testing.T) {
	adapter, server := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		writeAPIError(w, http.StatusUnauthorized, "invalid api key")
	})
	defer server.Close()

	_, err := adapter.Complete(context.Background(), testRequest())
	if !errors.Is(err, errs.ErrAuthentication) {
		t.Errorf("expected authentication error, got %v", err)
	}
}

func TestComplete_MapsRateLimitError(t *testing.T) {
	adapter, server := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		writeAPIError(w, http.StatusTooManyRequests, "rate limit reached")
	})
	defer server.Close()

	_, err := adapter.Complete(context.Background(), testRequest())
	if !errors.Is(err, errs.ErrRateLimit) {
		t.Errorf("expected rate limit error, got %v", err)
	}
}

func TestComplete_MapsRequestError(t *testing.T) {
	adapter, server := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		writeAPIError(w, http.StatusBadRequest, "missing required field")
	})
	defer server.Close()

	_, err := adapter.Complete(context.Background(), testRequest())
	if !errors.Is(err, errs.ErrRequest) {
		t.Errorf("expected request error, got %v", err)
	}
}

func TestComplete_MapsTransportError(t *testing.T) {
	adapter, server := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {})
	server.Close() // nothing listening anymore

	_, err := adapter.Complete(context.Background(), testRequest())
	if !errors.Is(err, errs.ErrTransport) {
		t.Errorf("expected transport error, got %v", err)
	}
}

func TestComplete_EmptyChoices(t *testing.T) {
	adapter, server := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":      "chatcmpl-test",
			"model":   "gpt-4o",
			"choices": []interface{}{},
		})
	})
	defer server.Close()

	_, err := adapter.Complete(context.Background(), testRequest())
	if !errors.Is(err, errs.ErrRequest) {
		t.Errorf("expected request error for empty choices, got %v", err)
	}
}

func TestNewOpenAIAdapter_RequiresCredential(t *testing.T) {
	_, err := NewOpenAIAdapter("", Options{})
	if !errors.Is(err, errs.ErrAuthentication) {
		t.Errorf("expected authentication error, got %v", err)
	}
}
