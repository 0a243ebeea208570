package utils

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// TextGenerator turns a prompt into a single completion.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Provider() string
	Model() string
}

// ChatCompletionClient talks to any OpenAI-compatible /chat/completions endpoint
// (OpenAI itself, Mistral) with bearer authentication.
type ChatCompletionClient struct {
	client   *openai.Client
	provider string
	model    string
}

// NewChatCompletionClient builds a client for baseURL. An empty baseURL keeps the
// OpenAI default. httpClient may be nil.
func NewChatCompletionClient(provider, apiKey, baseURL, model string, httpClient *http.Client) *ChatCompletionClient {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	cfg.HTTPClient = &okOnlyDoer{next: httpClient}

	return &ChatCompletionClient{
		client:   openai.NewClientWithConfig(cfg),
		provider: provider,
		model:    model,
	}
}

func (c *ChatCompletionClient) Provider() string { return c.provider }

func (c *ChatCompletionClient) Model() string { return c.model }

func (c *ChatCompletionClient) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", &RemoteServiceError{Provider: c.provider, StatusCode: statusOf(err), Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &RemoteServiceError{
			Provider:   c.provider,
			StatusCode: http.StatusOK,
			Err:        errors.New("no completion choices returned"),
		}
	}
	return resp.Choices[0].Message.Content, nil
}

// unexpectedStatusError marks a response whose status is not 200.
type unexpectedStatusError struct {
	code int
	body string
}

func (e *unexpectedStatusError) Error() string {
	if e.body == "" {
		return fmt.Sprintf("unexpected status %d", e.code)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.code, e.body)
}

// okOnlyDoer rejects every response that is not exactly 200 OK before the
// openai client tries to decode it.
type okOnlyDoer struct {
	next *http.Client
}

func (d *okOnlyDoer) Do(req *http.Request) (*http.Response, error) {
	resp, err := d.next.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusOK {
		return resp, nil
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return nil, &unexpectedStatusError{code: resp.StatusCode, body: strings.TrimSpace(string(body))}
}

func statusOf(err error) int {
	var statusErr *unexpectedStatusError
	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &statusErr):
		return statusErr.code
	case errors.As(err, &apiErr):
		return apiErr.HTTPStatusCode
	case errors.As(err, &reqErr):
		return reqErr.HTTPStatusCode
	default:
		return 0
	}
}
