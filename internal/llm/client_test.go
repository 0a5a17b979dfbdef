package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClassifyAPIError(t *testing.T) {
	err := classifyAPIError(400, "This model's maximum context length is 65536 tokens")
	if !errors.Is(err, ErrContextTooLarge) {
		t.Errorf("expected ErrContextTooLarge, got %v", err)
	}

	err = classifyAPIError(401, "invalid api key")
	if errors.Is(err, ErrContextTooLarge) {
		t.Errorf("generic error misclassified as context overflow: %v", err)
	}
	var gwErr *GatewayError
	if !errors.As(err, &gwErr) {
		t.Fatalf("expected *GatewayError, got %T", err)
	}
	if gwErr.StatusCode != 401 || gwErr.Message != "invalid api key" {
		t.Errorf("provider message not preserved: %+v", gwErr)
	}
}

func TestChat_Success(t *testing.T) {
	var gotReq chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("unexpected auth header %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "  the answer  "}},
			},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", "test-model", nil)
	got, err := c.Chat(context.Background(), []Message{
		{Role: RoleSystem, Content: "sys"},
		{Role: RoleUser, Content: "hi"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if got != "the answer" {
		t.Errorf("expected trimmed answer, got %q", got)
	}
	if gotReq.Model != "test-model" || gotReq.Stream || len(gotReq.Messages) != 2 {
		t.Errorf("unexpected request: %+v", gotReq)
	}
}

func TestChat_ContextTooLarge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"message": "This model's maximum context length is 65536 tokens"},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k", "m", nil)
	_, err := c.Chat(context.Background(), []Message{{Role: RoleUser, Content: "q"}})
	if !errors.Is(err, ErrContextTooLarge) {
		t.Fatalf("expected ErrContextTooLarge, got %v", err)
	}
}

func TestWithCredentials(t *testing.T) {
	base := NewClient("http://example.com", "default-key", "default-model", nil)

	derived := base.WithCredentials("user-key", "")
	if derived.apiKey != "user-key" || derived.model != "default-model" {
		t.Errorf("override mismatch: %+v", derived)
	}
	if base.apiKey != "default-key" {
		t.Errorf("base client mutated")
	}
	if derived.httpClient != base.httpClient {
		t.Errorf("derived client should share the http.Client")
	}
}
