package scorer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzePerplexity(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/analyze_perplexity", r.URL.Path)

		var req analyzeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "the proposal text", req.Text)
		assert.Equal(t, 180, req.Threshold)

		_, _ = w.Write([]byte(`{
			"score": 195.5,
			"threshold": 180,
			"flaggedSentences": [
				{"text": "It is worth noting that.", "suggestion": "Note:", "index": 2}
			]
		}`))
	}))
	defer server.Close()

	client, err := NewClient(&Config{BaseURL: server.URL})
	require.NoError(t, err)

	result, err := client.AnalyzePerplexity(context.Background(), "the proposal text", 180)
	require.NoError(t, err)
	assert.Equal(t, 195.5, result.Score)
	assert.Equal(t, 180, result.Threshold)
	require.Len(t, result.FlaggedSentences, 1)
	assert.Equal(t, 2, result.FlaggedSentences[0].Index)
	assert.Equal(t, "Note:", result.FlaggedSentences[0].Suggestion)
}

func TestAnalyzePerplexityBackendError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model loading", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client, err := NewClient(&Config{BaseURL: server.URL})
	require.NoError(t, err)

	_, err = client.AnalyzePerplexity(context.Background(), "text", 180)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestAnalyzePerplexityUnreachable(t *testing.T) {
	client, err := NewClient(&Config{BaseURL: "http://127.0.0.1:1"})
	require.NoError(t, err)

	_, err = client.AnalyzePerplexity(context.Background(), "text", 180)
	assert.Error(t, err)
}

func TestAnalyzePerplexityMalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer server.Close()

	client, err := NewClient(&Config{BaseURL: server.URL})
	require.NoError(t, err)

	_, err = client.AnalyzePerplexity(context.Background(), "text", 180)
	assert.Error(t, err)
}

func TestNewClientValidation(t *testing.T) {
	_, err := NewClient(&Config{})
	assert.Error(t, err)
}

func TestAnalyzePerplexityCancelledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"score": 100, "threshold": 180, "flaggedSentences": []}`))
	}))
	defer server.Close()

	client, err := NewClient(&Config{BaseURL: server.URL})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = client.AnalyzePerplexity(ctx, "text", 180)
	assert.Error(t, err)
}
