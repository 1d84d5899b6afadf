package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/go-site-keeper/internal/config"
	"github.com/MKhiriev/go-site-keeper/internal/logger"
	"github.com/MKhiriev/go-site-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const completionResponse = `{
  "id": "chatcmpl-1",
  "object": "chat.completion",
  "created": 1700000000,
  "model": "test-model",
  "choices": [{"index": 0, "message": {"role": "assistant", "content": "pong"}, "finish_reason": "stop"}],
  "usage": {"prompt_tokens": 12, "completion_tokens": 1, "total_tokens": 13}
}`

func newTestAIProvider() *OpenAIProvider {
	return NewOpenAIProvider(config.AI{RequestTimeout: 5 * time.Second}, logger.Nop())
}

func TestResolveBaseURL(t *testing.T) {
	tests := []struct {
		provider string
		apiURL   string
		want     string
		wantErr  error
	}{
		{ProviderOpenAI, "", "https://api.openai.com/v1", nil},
		{ProviderDeepSeek, "", "https://api.deepseek.com/v1", nil},
		{ProviderOpenRouter, "", "https://openrouter.ai/api/v1", nil},
		{ProviderOpenAI, "https://proxy.example/v1/", "https://proxy.example/v1", nil},
		{ProviderCustom, "", "", ErrMissingAPIURL},
		{"anthropic", "", "", ErrUnsupportedProvider},
	}

	for _, tt := range tests {
		t.Run(tt.provider+tt.apiURL, func(t *testing.T) {
			got, err := ResolveBaseURL(tt.provider, tt.apiURL)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOpenAIProvider_Complete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var body struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "test-model", body.Model)
		require.Len(t, body.Messages, 2)
		assert.Equal(t, "system", body.Messages[0].Role)
		assert.Equal(t, "be brief", body.Messages[0].Content)
		assert.Equal(t, "ping", body.Messages[1].Content)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completionResponse))
	}))
	defer srv.Close()

	got, err := newTestAIProvider().Complete(context.Background(), models.AITestRequest{
		Provider: ProviderCustom,
		Model:    "test-model",
		APIURL:   srv.URL + "/v1",
		APIKey:   "sk-test",
		Prompt:   "be brief",
		Content:  "ping",
	})
	require.NoError(t, err)
	assert.Equal(t, "pong", got.Response)
	assert.Equal(t, 12, got.PromptTokens)
	assert.Equal(t, 1, got.CompletionTokens)
	assert.Equal(t, ProviderCustom, got.Provider)
}

func TestOpenAIProvider_APIErrorDoesNotLeakKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": {"message": "Incorrect API key provided", "type": "invalid_request_error"}}`))
	}))
	defer srv.Close()

	_, err := newTestAIProvider().Complete(context.Background(), models.AITestRequest{
		Provider: ProviderOpenAI,
		APIURL:   srv.URL,
		APIKey:   "sk-very-secret",
	})
	require.ErrorIs(t, err, ErrAIProvider)
	assert.Contains(t, err.Error(), "401")
	assert.NotContains(t, err.Error(), "sk-very-secret")
}

func TestOpenAIProvider_EmptyAnswer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "x", "object": "chat.completion", "choices": []}`))
	}))
	defer srv.Close()

	_, err := newTestAIProvider().Complete(context.Background(), models.AITestRequest{APIURL: srv.URL, APIKey: "k"})
	require.ErrorIs(t, err, ErrEmptyCompletion)
}

func TestOpenAIProvider_MissingKey(t *testing.T) {
	_, err := newTestAIProvider().Complete(context.Background(), models.AITestRequest{Provider: ProviderOpenAI})
	require.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestOpenAIProvider_HonoursContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := newTestAIProvider().Complete(ctx, models.AITestRequest{APIURL: srv.URL, APIKey: "k"})
	require.ErrorIs(t, err, ErrAIProvider)
}
