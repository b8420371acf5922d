package provider

import (
	"net/http"

	"github.com/tjfontaine/halo-conversation-gateway/internal/config"
	"github.com/tjfontaine/halo-conversation-gateway/internal/domain"
)

// Default endpoints for the OpenAI-compatible backends.
const (
	perplexityBaseURL  = "https://api.perplexity.ai"
	huggingfaceBaseURL = "https://router.huggingface.co/v1"
	cloudAIBaseURL     = "https://generativelanguage.googleapis.com/v1beta/openai"
)

// BuildAdapters creates one adapter per ProviderID from configuration.
// Unconfigured adapters are still registered; they degrade at dispatch
// time with a missing-config note instead of being absent from the
// table.
func BuildAdapters(cfg *config.Config, httpClient *http.Client) []domain.Adapter {
	return []domain.Adapter{
		NewOpenAI(cfg.OpenAI.APIKey, cfg.OpenAI.Model, openAIClientOption(httpClient)...),
		NewCompat(CompatSpec{
			ID:      domain.ProviderPerplexity,
			BaseURL: perplexityBaseURL,
			APIKey:  cfg.Perplexity.APIKey,
			Model:   cfg.Perplexity.Model,
			Required: []RequiredSetting{
				{Value: cfg.Perplexity.APIKey, EnvKey: config.EnvPerplexityAPIKey},
			},
		}, httpClient),
		NewClaude(cfg.Claude.APIKey, cfg.Claude.Model, claudeClientOption(httpClient)...),
		NewCompat(CompatSpec{
			ID:      domain.ProviderHuggingFace,
			BaseURL: huggingfaceBaseURL,
			APIKey:  cfg.HuggingFace.APIToken,
			Model:   cfg.HuggingFace.Model,
			Required: []RequiredSetting{
				{Value: cfg.HuggingFace.APIToken, EnvKey: config.EnvHuggingFaceAPIToken},
			},
		}, httpClient),
		NewCompat(CompatSpec{
			ID:      domain.ProviderCloudAI,
			BaseURL: cloudAIBaseURL,
			APIKey:  cfg.CloudAI.APIKey,
			Model:   cfg.CloudAI.Model,
			Required: []RequiredSetting{
				{Value: cfg.CloudAI.APIKey, EnvKey: config.EnvCloudAIAPIKey},
			},
		}, httpClient),
		NewCalendar(cfg.Calendar.AccountEmail),
		NewCompat(CompatSpec{
			ID:      domain.ProviderProActor,
			BaseURL: cfg.ProActor.BaseURL,
			APIKey:  cfg.ProActor.APIKey,
			Model:   cfg.ProActor.Model,
			Required: []RequiredSetting{
				{Value: cfg.ProActor.BaseURL, EnvKey: config.EnvProActorBaseURL},
				{Value: cfg.ProActor.APIKey, EnvKey: config.EnvProActorAPIKey},
			},
		}, httpClient),
		NewEcho(),
	}
}

func openAIClientOption(httpClient *http.Client) []OpenAIOption {
	if httpClient == nil {
		return nil
	}
	return []OpenAIOption{WithOpenAIHTTPClient(httpClient)}
}

func claudeClientOption(httpClient *http.Client) []ClaudeOption {
	if httpClient == nil {
		return nil
	}
	return []ClaudeOption{WithClaudeHTTPClient(httpClient)}
}
