package utils

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedRequest struct {
	method, path, auth string
	body               map[string]any
}

func newCompletionServer(t *testing.T, status int, payload string, captured *capturedRequest) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if captured != nil {
			captured.method = r.Method
			captured.path = r.URL.Path
			captured.auth = r.Header.Get("Authorization")
			_ = json.NewDecoder(r.Body).Decode(&captured.body)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(payload))
	}))
	t.Cleanup(srv.Close)
	return srv
}

const completionOK = `{
  "id": "cmpl-1",
  "object": "chat.completion",
  "model": "mistral-tiny",
  "choices": [
    {"index": 0, "message": {"role": "assistant", "content": "Day 1: Walk the old town."}, "finish_reason": "stop"}
  ]
}`

func TestChatCompletionClient_Generate(t *testing.T) {
	var got capturedRequest
	srv := newCompletionServer(t, http.StatusOK, completionOK, &got)

	client := NewChatCompletionClient("mistral", "token-123", srv.URL+"/v1/", "mistral-tiny", srv.Client())
	text, err := client.Generate(context.Background(), "plan my trip")
	require.NoError(t, err)

	assert.Equal(t, "Day 1: Walk the old town.", text)
	assert.Equal(t, http.MethodPost, got.method)
	assert.Equal(t, "/v1/chat/completions", got.path)
	assert.Equal(t, "Bearer token-123", got.auth)
	assert.Equal(t, "mistral-tiny", got.body["model"])

	messages, ok := got.body["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 1)
	msg := messages[0].(map[string]any)
	assert.Equal(t, "user", msg["role"])
	assert.Equal(t, "plan my trip", msg["content"])

	assert.Equal(t, "mistral", client.Provider())
	assert.Equal(t, "mistral-tiny", client.Model())
}

func TestChatCompletionClient_NonOKStatus(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
	}{
		{"unauthorized", http.StatusUnauthorized, `{"message":"Unauthorized"}`},
		{"server error", http.StatusInternalServerError, `oops`},
		// a 2xx that is not 200 is still a failure, even with a valid body
		{"accepted", http.StatusAccepted, completionOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := newCompletionServer(t, tc.status, tc.body, nil)
			client := NewChatCompletionClient("mistral", "bad", srv.URL, "mistral-tiny", srv.Client())

			text, err := client.Generate(context.Background(), "prompt")
			require.Error(t, err)
			assert.Empty(t, text)
			assert.ErrorIs(t, err, ErrRemoteService)

			var remoteErr *RemoteServiceError
			require.ErrorAs(t, err, &remoteErr)
			assert.Equal(t, tc.status, remoteErr.StatusCode)
			assert.Equal(t, "mistral", remoteErr.Provider)
		})
	}
}

func TestChatCompletionClient_NoChoices(t *testing.T) {
	srv := newCompletionServer(t, http.StatusOK, `{"id":"x","choices":[]}`, nil)
	client := NewChatCompletionClient("openai", "k", srv.URL, "gpt-4o-mini", srv.Client())

	_, err := client.Generate(context.Background(), "prompt")
	assert.ErrorIs(t, err, ErrRemoteService)
}

func TestChatCompletionClient_TransportFailure(t *testing.T) {
	srv := newCompletionServer(t, http.StatusOK, completionOK, nil)
	url := srv.URL
	srv.Close()

	client := NewChatCompletionClient("mistral", "k", url, "mistral-tiny", nil)
	_, err := client.Generate(context.Background(), "prompt")

	var remoteErr *RemoteServiceError
	require.ErrorAs(t, err, &remoteErr)
	assert.Zero(t, remoteErr.StatusCode)
}
