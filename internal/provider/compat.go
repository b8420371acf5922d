package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/tjfontaine/halo-conversation-gateway/internal/api/chatcompat"
	"github.com/tjfontaine/halo-conversation-gateway/internal/domain"
)

// RequiredSetting pairs a configured value with the environment
// variable that supplies it, for missing-config reporting.
type RequiredSetting struct {
	Value  string
	EnvKey string
}

// CompatSpec describes one OpenAI-compatible backend. Perplexity, the
// Hugging Face router, Gemini's compatibility endpoint and the
// operator-configured pro_actor endpoint all dispatch through the same
// adapter with different specs.
type CompatSpec struct {
	ID      domain.ProviderID
	BaseURL string
	APIKey  string
	Model   string

	// Required lists the settings checked before any outbound call, in
	// reporting order.
	Required []RequiredSetting
}

// CompatAdapter sends utterances to an OpenAI-compatible chat endpoint.
type CompatAdapter struct {
	spec   CompatSpec
	client *chatcompat.Client
}

// NewCompat creates an adapter for the given backend spec.
func NewCompat(spec CompatSpec, httpClient *http.Client) *CompatAdapter {
	var opts []chatcompat.ClientOption
	if httpClient != nil {
		opts = append(opts, chatcompat.WithHTTPClient(httpClient))
	}
	return &CompatAdapter{
		spec:   spec,
		client: chatcompat.NewClient(spec.APIKey, spec.BaseURL, opts...),
	}
}

func (a *CompatAdapter) ID() domain.ProviderID {
	return a.spec.ID
}

func (a *CompatAdapter) Send(ctx context.Context, utterance string) (*domain.Reply, error) {
	for _, req := range a.spec.Required {
		if req.Value == "" {
			return nil, domain.ErrMissingConfig(req.EnvKey)
		}
	}

	resp, err := a.client.CreateChatCompletion(ctx, &chatcompat.ChatCompletionRequest{
		Model: a.spec.Model,
		Messages: []chatcompat.Message{
			{Role: "user", Content: utterance},
		},
	})
	if err != nil {
		return nil, err
	}

	text, ok := resp.FirstChoiceText()
	if !ok {
		return nil, &domain.PayloadError{Err: errors.New("response carried no choices")}
	}

	return &domain.Reply{
		Text: text,
		Note: fmt.Sprintf("%s_chat_completions", a.spec.ID),
	}, nil
}
