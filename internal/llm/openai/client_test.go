package openai

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/docutab/docutab/internal/common"
	"github.com/docutab/docutab/internal/llm"
)

func testClient(baseURL string) *Client {
	return NewClient(Config{
		APIKey:  "test-key",
		BaseURL: baseURL,
		Model:   "gpt-4o-mini",
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestCompleteParsesChatResponse(t *testing.T) {
	var gotAuth, gotPath string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": "  {\"title\": \"doc\"}  "}},
			},
		})
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	got, err := c.Complete(context.Background(), llm.Request{System: "sys", User: "usr"})
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if got != `{"title": "doc"}` {
		t.Errorf("content = %q, want trimmed JSON", got)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotPath != "/chat/completions" {
		t.Errorf("path = %q", gotPath)
	}
	if gotBody["model"] != "gpt-4o-mini" {
		t.Errorf("model = %v", gotBody["model"])
	}
	if temp, ok := gotBody["temperature"].(float64); !ok || temp != 0 {
		t.Errorf("temperature = %v, want 0", gotBody["temperature"])
	}
	msgs, _ := gotBody["messages"].([]any)
	if len(msgs) != 2 {
		t.Fatalf("messages = %v, want system + user", gotBody["messages"])
	}
}

func TestCompleteNon2xxStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "quota exceeded"}}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Complete(context.Background(), llm.Request{User: "x"})
	if !errors.Is(err, common.ErrModelUnavailable) {
		t.Errorf("error = %v, want ErrModelUnavailable", err)
	}
}

func TestCompleteNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices": []}`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Complete(context.Background(), llm.Request{User: "x"})
	if !errors.Is(err, common.ErrModelUnavailable) {
		t.Errorf("error = %v, want ErrModelUnavailable", err)
	}
}

func TestCompleteTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // connection refused from here on

	_, err := testClient(srv.URL).Complete(context.Background(), llm.Request{User: "x"})
	if !errors.Is(err, common.ErrModelUnavailable) {
		t.Errorf("error = %v, want ErrModelUnavailable", err)
	}
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient(Config{APIKey: "k"}, nil)
	if c.cfg.BaseURL != "https://api.openai.com/v1" {
		t.Errorf("BaseURL = %q", c.cfg.BaseURL)
	}
	if c.cfg.Model == "" {
		t.Error("model default missing")
	}
	if c.httpClient.Timeout <= 0 {
		t.Error("timeout default missing")
	}
}
