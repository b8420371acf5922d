package intent

import (
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/tjfontaine/halo-conversation-gateway/internal/domain"
)

// Rule binds a provider to the alias token sets that select it. An
// alias matches when all of its tokens appear in the utterance; a rule
// matches when any of its aliases does.
type Rule struct {
	Provider domain.ProviderID
	Aliases  [][]string
}

// DefaultRules is the built-in alias table, scanned in order. Each
// provider carries a canonical name plus at least one alias tolerant of
// speech-to-text misrecognition ("eco" for echo, "perplessità" as the
// Italian transcription of perplexity, "hf" as spelled-out shorthand).
func DefaultRules() []Rule {
	return []Rule{
		{Provider: domain.ProviderOpenAI, Aliases: [][]string{
			{"chatgpt"}, {"chat", "gpt"}, {"openai"}, {"open", "ai"}, {"gpt"},
		}},
		{Provider: domain.ProviderPerplexity, Aliases: [][]string{
			{"perplexity"}, {"perplessità"}, {"perplessita"}, {"perplexi"},
		}},
		{Provider: domain.ProviderClaude, Aliases: [][]string{
			{"claude"}, {"claud"}, {"clode"}, {"anthropic"},
		}},
		{Provider: domain.ProviderHuggingFace, Aliases: [][]string{
			{"hugging", "face"}, {"huggingface"}, {"hf"},
		}},
		{Provider: domain.ProviderCloudAI, Aliases: [][]string{
			{"cloud", "ai"}, {"cloud", "ia"}, {"gemini"}, {"jemini"},
		}},
		{Provider: domain.ProviderNotionCalendar, Aliases: [][]string{
			{"notion", "calendar"}, {"calendario", "notion"}, {"notion"},
		}},
		{Provider: domain.ProviderProActor, Aliases: [][]string{
			{"pro", "actor"}, {"proactor"}, {"pro", "attore"},
		}},
		{Provider: domain.ProviderEcho, Aliases: [][]string{
			{"echo"}, {"eco"},
		}},
	}
}

// DefaultIntentVocabulary gates provider switching: an utterance with no
// switch verb never changes providers, however many provider names it
// happens to contain. English and Italian forms.
func DefaultIntentVocabulary() []string {
	return []string{
		"use", "switch", "set", "select",
		"usa", "passa", "imposta", "cambia", "seleziona", "attiva",
	}
}

// aliasFile is the YAML shape for an operator-supplied alias table:
//
//	providers:
//	  - provider: openai
//	    aliases:
//	      - [chatgpt]
//	      - [chat, gpt]
type aliasFile struct {
	Providers []struct {
		Provider string     `koanf:"provider"`
		Aliases  [][]string `koanf:"aliases"`
	} `koanf:"providers"`
}

// LoadRules reads an alias table from a YAML file. The file fully
// replaces DefaultRules so operators control matching priority too.
// Unknown provider names are rejected rather than silently dropped.
func LoadRules(path string) ([]Rule, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load alias table %s: %w", path, err)
	}

	var af aliasFile
	if err := k.Unmarshal("", &af); err != nil {
		return nil, fmt.Errorf("failed to parse alias table %s: %w", path, err)
	}

	if len(af.Providers) == 0 {
		return nil, fmt.Errorf("alias table %s defines no providers", path)
	}

	rules := make([]Rule, 0, len(af.Providers))
	for _, entry := range af.Providers {
		id, ok := domain.ParseProviderID(entry.Provider)
		if !ok {
			return nil, fmt.Errorf("alias table %s names unknown provider %q", path, entry.Provider)
		}
		if len(entry.Aliases) == 0 {
			return nil, fmt.Errorf("alias table %s has no aliases for provider %q", path, entry.Provider)
		}
		rules = append(rules, Rule{Provider: id, Aliases: entry.Aliases})
	}

	return rules, nil
}
