// Package config loads gateway configuration from HALO_-prefixed
// environment variables.
package config

import (
	"strings"
	"time"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"

	"github.com/tjfontaine/halo-conversation-gateway/internal/domain"
)

// Environment variable names for provider credentials. The dispatcher
// embeds these verbatim in degraded_missing_* routing notes, so they
// are part of the observable taxonomy and must stay stable.
const (
	EnvOpenAIAPIKey         = "HALO_OPENAI_API_KEY"
	EnvPerplexityAPIKey     = "HALO_PERPLEXITY_API_KEY"
	EnvClaudeAPIKey         = "HALO_CLAUDE_API_KEY"
	EnvHuggingFaceAPIToken  = "HALO_HUGGINGFACE_API_TOKEN"
	EnvCloudAIAPIKey        = "HALO_CLOUDAI_API_KEY"
	EnvProActorBaseURL      = "HALO_PROACTOR_BASE_URL"
	EnvProActorAPIKey       = "HALO_PROACTOR_API_KEY"
	EnvCalendarAccountEmail = "HALO_CALENDAR_ACCOUNT_EMAIL"
)

type Config struct {
	Server      ServerConfig      `koanf:"server"`
	Routing     RoutingConfig     `koanf:"routing"`
	Upstream    UpstreamConfig    `koanf:"upstream"`
	Intent      IntentConfig      `koanf:"intent"`
	OpenAI      OpenAIConfig      `koanf:"openai"`
	Perplexity  PerplexityConfig  `koanf:"perplexity"`
	Claude      ClaudeConfig      `koanf:"claude"`
	HuggingFace HuggingFaceConfig `koanf:"huggingface"`
	CloudAI     CloudAIConfig     `koanf:"cloudai"`
	ProActor    ProActorConfig    `koanf:"proactor"`
	Calendar    CalendarConfig    `koanf:"calendar"`
}

type ServerConfig struct {
	Port int `koanf:"port"`
}

type RoutingConfig struct {
	// DefaultProvider is applied on a session's first unlocked turn and
	// then pinned. Invalid or empty values fall back to echo.
	DefaultProvider string `koanf:"default_provider"`

	// MaxTenants caps distinct tenants; 0 admits unboundedly.
	MaxTenants int `koanf:"max_tenants"`
}

type UpstreamConfig struct {
	// TimeoutSeconds bounds every outbound adapter call. One value
	// shared by all adapters.
	TimeoutSeconds int `koanf:"timeout_seconds"`
}

type IntentConfig struct {
	// AliasesFile optionally points at a YAML alias table replacing the
	// built-in provider-switch vocabulary.
	AliasesFile string `koanf:"aliases_file"`
}

type OpenAIConfig struct {
	APIKey string `koanf:"api_key"`
	Model  string `koanf:"model"`
}

type PerplexityConfig struct {
	APIKey string `koanf:"api_key"`
	Model  string `koanf:"model"`
}

type ClaudeConfig struct {
	APIKey string `koanf:"api_key"`
	Model  string `koanf:"model"`
}

type HuggingFaceConfig struct {
	APIToken string `koanf:"api_token"`
	Model    string `koanf:"model"`
}

type CloudAIConfig struct {
	APIKey string `koanf:"api_key"`
	Model  string `koanf:"model"`
}

type ProActorConfig struct {
	BaseURL string `koanf:"base_url"`
	APIKey  string `koanf:"api_key"`
	Model   string `koanf:"model"`
}

type CalendarConfig struct {
	AccountEmail string `koanf:"account_email"`
}

// Load reads configuration from the environment. HALO_SECTION_KEY maps
// to section.key, e.g. HALO_OPENAI_API_KEY -> openai.api_key.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(env.Provider("HALO_", ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, "HALO_"))
		parts := strings.SplitN(key, "_", 2)
		if len(parts) == 1 {
			return parts[0]
		}
		return parts[0] + "." + parts[1]
	}), nil); err != nil {
		return nil, err
	}

	setDefault(k, "server.port", 8080)
	setDefault(k, "routing.default_provider", string(domain.ProviderEcho))
	setDefault(k, "routing.max_tenants", 0)
	setDefault(k, "upstream.timeout_seconds", 60)
	setDefault(k, "openai.model", "gpt-4o-mini")
	setDefault(k, "perplexity.model", "sonar")
	setDefault(k, "claude.model", "claude-3-5-sonnet-latest")
	setDefault(k, "huggingface.model", "meta-llama/Llama-3.1-8B-Instruct")
	setDefault(k, "cloudai.model", "gemini-1.5-flash")

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefault(k *koanf.Koanf, key string, value any) {
	if !k.Exists(key) {
		k.Set(key, value)
	}
}

// DefaultProvider resolves the configured default provider, falling
// back to echo when the value is unset or not a known ProviderID.
func (c *Config) DefaultProvider() domain.ProviderID {
	id, ok := domain.ParseProviderID(strings.ToLower(strings.TrimSpace(c.Routing.DefaultProvider)))
	if !ok {
		return domain.ProviderEcho
	}
	return id
}

// UpstreamTimeout returns the shared adapter call timeout.
func (c *Config) UpstreamTimeout() time.Duration {
	if c.Upstream.TimeoutSeconds <= 0 {
		return 60 * time.Second
	}
	return time.Duration(c.Upstream.TimeoutSeconds) * time.Second
}
