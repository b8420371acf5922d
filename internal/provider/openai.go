package provider

import (
	"context"
	"errors"
	"net/http"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/tjfontaine/halo-conversation-gateway/internal/config"
	"github.com/tjfontaine/halo-conversation-gateway/internal/domain"
)

// OpenAIOption configures the OpenAI adapter.
type OpenAIOption func(*OpenAIAdapter)

// WithOpenAIBaseURL points the adapter at a different endpoint, used by
// tests to target a fake upstream.
func WithOpenAIBaseURL(baseURL string) OpenAIOption {
	return func(a *OpenAIAdapter) {
		a.baseURL = baseURL
	}
}

// WithOpenAIHTTPClient sets a custom HTTP client.
func WithOpenAIHTTPClient(httpClient *http.Client) OpenAIOption {
	return func(a *OpenAIAdapter) {
		a.httpClient = httpClient
	}
}

// OpenAIAdapter is the primary chat adapter, backed by the official
// OpenAI SDK.
type OpenAIAdapter struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
	client     openai.Client
}

// NewOpenAI creates the adapter. An empty apiKey is allowed; Send then
// degrades with a missing-config error instead of calling out.
func NewOpenAI(apiKey, model string, opts ...OpenAIOption) *OpenAIAdapter {
	a := &OpenAIAdapter{apiKey: apiKey, model: model}
	for _, opt := range opts {
		opt(a)
	}

	clientOpts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if a.baseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(a.baseURL))
	}
	if a.httpClient != nil {
		clientOpts = append(clientOpts, option.WithHTTPClient(a.httpClient))
	}
	a.client = openai.NewClient(clientOpts...)

	return a
}

func (a *OpenAIAdapter) ID() domain.ProviderID {
	return domain.ProviderOpenAI
}

func (a *OpenAIAdapter) Send(ctx context.Context, utterance string) (*domain.Reply, error) {
	if a.apiKey == "" {
		return nil, domain.ErrMissingConfig(config.EnvOpenAIAPIKey)
	}

	resp, err := a.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(a.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(utterance),
		},
	})
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return nil, &domain.UpstreamStatusError{StatusCode: apiErr.StatusCode, Body: apiErr.Message}
		}
		return nil, err
	}

	if len(resp.Choices) == 0 {
		return nil, &domain.PayloadError{Err: errors.New("response carried no choices")}
	}

	return &domain.Reply{
		Text: resp.Choices[0].Message.Content,
		Note: "openai_chat_completions",
	}, nil
}
