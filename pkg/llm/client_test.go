package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"support-desk-go/internal/config"
)

func newTestClient(baseURL string) Client {
	return NewClient(config.ClassifierConfig{
		APIKey:  "test-key",
		BaseURL: baseURL,
		Model:   "test-model",
	})
}

func TestChatCompletion(t *testing.T) {
	var gotReq map[string]interface{}
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"FAQ_AGENT"}}]}`))
	}))
	defer srv.Close()

	temperature := 0.0
	maxTokens := 16
	out, err := newTestClient(srv.URL).ChatCompletion(context.Background(),
		[]Message{{Role: "user", Content: "hello"}},
		&GenerationParams{Temperature: &temperature, MaxTokens: &maxTokens},
	)

	require.NoError(t, err)
	assert.Equal(t, "FAQ_AGENT", out)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "test-model", gotReq["model"])
	assert.Equal(t, float64(0), gotReq["temperature"])
	assert.Equal(t, float64(16), gotReq["max_tokens"])
	assert.Equal(t, false, gotReq["stream"])
}

func TestChatCompletionNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).ChatCompletion(context.Background(),
		[]Message{{Role: "user", Content: "hello"}}, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-200")
	assert.Contains(t, err.Error(), "rate limited")
}

func TestChatCompletionEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).ChatCompletion(context.Background(),
		[]Message{{Role: "user", Content: "hello"}}, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}
