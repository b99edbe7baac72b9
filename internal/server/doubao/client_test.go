package doubao

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAnswer_ParsesContentAndUsage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer key-secret", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "test-model", req.Model)
		require.Len(t, req.Messages, 2)
		require.Equal(t, "system", req.Messages[0].Role)
		require.True(t, strings.Contains(req.Messages[1].Content, "What is the past tense of go?"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"choices": [{"message": {"role": "assistant", "content": "went"}}],
			"usage": {"total_tokens": 1500}
		}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-model")

	answer, tokens, err := c.Answer(context.Background(), "key-secret", "What is the past tense of go?")
	require.NoError(t, err)
	require.Equal(t, "went", answer)
	require.Equal(t, 1500, tokens)
}

func TestAnswer_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-model")

	_, _, err := c.Answer(context.Background(), "k", "Q")
	require.Error(t, err)
	require.Contains(t, err.Error(), "429")
}

func TestAnswer_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	c := NewClient(srv.URL, "test-model")

	_, _, err := c.Answer(context.Background(), "k", "Q")
	require.Error(t, err)
}

func TestAnswer_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices": [], "usage": {"total_tokens": 0}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-model")

	_, _, err := c.Answer(context.Background(), "k", "Q")
	require.Error(t, err)
}
