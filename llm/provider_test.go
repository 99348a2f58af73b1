package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

// newStubServer returns an httptest server speaking just enough of the
// OpenAI API for the provider to work against.
func newStubServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		resp := map[string]any{
			"id":     "cmpl-test",
			"object": "chat.completion",
			"model":  body["model"],
			"choices": []map[string]any{
				{
					"index":         0,
					"finish_reason": "stop",
					"message":       map[string]any{"role": "assistant", "content": "A helper class."},
				},
			},
			"usage": map[string]any{"prompt_tokens": 12, "completion_tokens": 4, "total_tokens": 16},
		}
		json.NewEncoder(w).Encode(resp)
	})
	mux.HandleFunc("/v1/embeddings", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Input []string `json:"input"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		data := make([]map[string]any, len(body.Input))
		for i := range body.Input {
			data[i] = map[string]any{
				"object":    "embedding",
				"index":     i,
				"embedding": []float32{0.1, 0.2, 0.3},
			}
		}
		json.NewEncoder(w).Encode(map[string]any{"object": "list", "data": data})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestOpenAIChat(t *testing.T) {
	srv := newStubServer(t)

	p := NewOpenAI(Config{APIKey: "test-key", BaseURL: srv.URL + "/v1", Model: "gpt-4o-mini"})
	resp, err := p.Chat(context.Background(), ChatRequest{
		Messages: []Message{{Role: "user", Content: "Summarize this method."}},
	})
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}

	if resp.Content != "A helper class." {
		t.Errorf("content = %q", resp.Content)
	}
	// Config model is used when the request names none.
	if resp.Model != "gpt-4o-mini" {
		t.Errorf("model = %q, want gpt-4o-mini", resp.Model)
	}
	if resp.TotalTokens != 16 {
		t.Errorf("total tokens = %d, want 16", resp.TotalTokens)
	}
}

func TestOpenAIChatModelOverride(t *testing.T) {
	srv := newStubServer(t)

	p := NewOpenAI(Config{APIKey: "test-key", BaseURL: srv.URL + "/v1"})
	resp, err := p.Chat(context.Background(), ChatRequest{
		Model:    "gpt-4o",
		Messages: []Message{{Role: "user", Content: "hi"}},
	})
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if resp.Model != "gpt-4o" {
		t.Errorf("model = %q, want request override gpt-4o", resp.Model)
	}
}

func TestOpenAIEmbed(t *testing.T) {
	srv := newStubServer(t)

	p := NewOpenAI(Config{APIKey: "test-key", BaseURL: srv.URL + "/v1"})
	vectors, err := p.Embed(context.Background(), []string{"one", "two"})
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if len(vectors) != 2 || len(vectors[0]) != 3 {
		t.Fatalf("vectors = %v, want 2 vectors of dim 3", vectors)
	}

	// Empty input short-circuits without a network call.
	vectors, err = p.Embed(context.Background(), nil)
	if err != nil || vectors != nil {
		t.Errorf("Embed(nil) = %v, %v, want nil, nil", vectors, err)
	}
}
