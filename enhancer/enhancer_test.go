package enhancer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/menotliam/Chatbot-AI-4Enterprise/config"
)

func newTestEnhancer(t *testing.T, handler http.HandlerFunc) (*Enhancer, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := config.AppConfig{}
	cfg.Assistant.BaseURL = srv.URL
	cfg.Enhancer.Model = "gpt-4.1"
	cfg.Enhancer.MaxTokens = 1000
	return New(cfg), srv
}

func completionResponse(content string) []byte {
	body, _ := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"role": "assistant", "content": content}},
		},
	})
	return body
}

func TestRewriteReturnsEnhancedText(t *testing.T) {
	e, _ := newTestEnhancer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)

		var req chatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "gpt-4.1", req.Model)
		require.Len(t, req.Messages, 2)

		w.Header().Set("Content-Type", "application/json")
		w.Write(completionResponse("**Detergent X**\nGentle on skin."))
	})

	got := e.Rewrite(context.Background(), "Detergent X is gentle on skin.", "what detergent?")
	assert.Equal(t, "**Detergent X**\nGentle on skin.", got)
}

func TestRewriteFallsBackOnServerError(t *testing.T) {
	e, _ := newTestEnhancer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	raw := "Detergent X is gentle on skin."
	got := e.Rewrite(context.Background(), raw, "what detergent?")
	assert.Equal(t, raw, got, "enhancer failure must return the raw reply unchanged")
}

func TestRewriteFallsBackOnEmptyResult(t *testing.T) {
	e, _ := newTestEnhancer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write(completionResponse(""))
	})

	raw := "Detergent X is gentle on skin."
	got := e.Rewrite(context.Background(), raw, "what detergent?")
	assert.Equal(t, raw, got)
}

func TestRewriteRejectsFabricatedLinks(t *testing.T) {
	e, _ := newTestEnhancer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write(completionResponse("Buy it at [Shopee](https://shopee.vn/fake-link)!"))
	})

	raw := "Detergent X is gentle on skin."
	got := e.Rewrite(context.Background(), raw, "what detergent?")
	assert.Equal(t, raw, got, "output introducing a URL absent from the raw reply must be rejected")
}

func TestRewriteKeepsRealLinks(t *testing.T) {
	enhanced := "Buy it at [Shopee](https://shopee.vn/detergent-x)."
	e, _ := newTestEnhancer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write(completionResponse(enhanced))
	})

	raw := "Detergent X: https://shopee.vn/detergent-x"
	got := e.Rewrite(context.Background(), raw, "what detergent?")
	assert.Equal(t, enhanced, got, "URLs already present in the raw reply are allowed")
}

func TestIntroducesLinks(t *testing.T) {
	assert.False(t, introducesLinks("no links", "still no links"))
	assert.False(t, introducesLinks("see https://a.example/x", "see [A](https://a.example/x)"))
	assert.True(t, introducesLinks("no links", "see https://a.example/x"))
}
