package provider

import (
	"context"
	"errors"
	"net/http"

	anthropicapi "github.com/tjfontaine/halo-conversation-gateway/internal/api/anthropic"
	"github.com/tjfontaine/halo-conversation-gateway/internal/config"
	"github.com/tjfontaine/halo-conversation-gateway/internal/domain"
)

const claudeMaxTokens = 1024

// ClaudeOption configures the Claude adapter.
type ClaudeOption func(*ClaudeAdapter)

// WithClaudeBaseURL points the adapter at a different endpoint.
func WithClaudeBaseURL(baseURL string) ClaudeOption {
	return func(a *ClaudeAdapter) {
		a.baseURL = baseURL
	}
}

// WithClaudeHTTPClient sets a custom HTTP client.
func WithClaudeHTTPClient(httpClient *http.Client) ClaudeOption {
	return func(a *ClaudeAdapter) {
		a.httpClient = httpClient
	}
}

// ClaudeAdapter is the long-context / vision chat adapter, backed by
// the Anthropic Messages API.
type ClaudeAdapter struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
	client     *anthropicapi.Client
}

// NewClaude creates the adapter.
func NewClaude(apiKey, model string, opts ...ClaudeOption) *ClaudeAdapter {
	a := &ClaudeAdapter{apiKey: apiKey, model: model}
	for _, opt := range opts {
		opt(a)
	}

	var clientOpts []anthropicapi.ClientOption
	if a.baseURL != "" {
		clientOpts = append(clientOpts, anthropicapi.WithBaseURL(a.baseURL))
	}
	if a.httpClient != nil {
		clientOpts = append(clientOpts, anthropicapi.WithHTTPClient(a.httpClient))
	}
	a.client = anthropicapi.NewClient(apiKey, clientOpts...)

	return a
}

func (a *ClaudeAdapter) ID() domain.ProviderID {
	return domain.ProviderClaude
}

func (a *ClaudeAdapter) Send(ctx context.Context, utterance string) (*domain.Reply, error) {
	if a.apiKey == "" {
		return nil, domain.ErrMissingConfig(config.EnvClaudeAPIKey)
	}

	resp, err := a.client.CreateMessage(ctx, &anthropicapi.MessagesRequest{
		Model:     a.model,
		MaxTokens: claudeMaxTokens,
		Messages: []anthropicapi.Message{
			{Role: "user", Content: utterance},
		},
	})
	if err != nil {
		return nil, err
	}

	text := resp.Text()
	if text == "" {
		return nil, &domain.PayloadError{Err: errors.New("response carried no text content")}
	}

	return &domain.Reply{
		Text: text,
		Note: "claude_messages",
	}, nil
}
