// Package intent parses free-form voice-transcribed utterances into
// explicit audio-route and provider-switch overrides.
package intent

import (
	"github.com/tjfontaine/halo-conversation-gateway/internal/domain"
	"github.com/tjfontaine/halo-conversation-gateway/internal/textnorm"
)

// Classifier detects provider-switch commands. Detection is
// intent-gated and alias-subset-based, never plain substring search:
// "today's news" must not switch to echo just because "eco" can appear
// inside another word.
type Classifier struct {
	vocabulary map[string]struct{}
	rules      []Rule
}

// ClassifierOption configures the classifier.
type ClassifierOption func(*Classifier)

// WithRules replaces the built-in alias table.
func WithRules(rules []Rule) ClassifierOption {
	return func(c *Classifier) {
		c.rules = rules
	}
}

// WithVocabulary replaces the built-in intent-token vocabulary.
func WithVocabulary(tokens []string) ClassifierOption {
	return func(c *Classifier) {
		c.vocabulary = make(map[string]struct{}, len(tokens))
		for _, tok := range tokens {
			c.vocabulary[tok] = struct{}{}
		}
	}
}

// NewClassifier builds a classifier with the default vocabulary and
// alias table unless options override them.
func NewClassifier(opts ...ClassifierOption) *Classifier {
	c := &Classifier{rules: DefaultRules()}
	WithVocabulary(DefaultIntentVocabulary())(c)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ProviderOverride detects an explicit provider switch in the
// utterance. Stage one gates on the intent vocabulary; stage two scans
// the alias table in priority order and returns the first provider with
// an alias set fully contained in the utterance's tokens.
func (c *Classifier) ProviderOverride(text string) (domain.ProviderID, bool) {
	tokens := textnorm.TokenSet(text)
	if len(tokens) == 0 {
		return "", false
	}

	gated := false
	for tok := range tokens {
		if _, ok := c.vocabulary[tok]; ok {
			gated = true
			break
		}
	}
	if !gated {
		return "", false
	}

	for _, rule := range c.rules {
		for _, alias := range rule.Aliases {
			if containsAll(tokens, alias) {
				return rule.Provider, true
			}
		}
	}

	return "", false
}

// AudioRouteOverride exposes audio-route detection alongside provider
// detection so callers hold a single classifier.
func (c *Classifier) AudioRouteOverride(text string) (domain.AudioRoute, bool) {
	return AudioRouteOverride(text)
}

func containsAll(tokens map[string]struct{}, alias []string) bool {
	if len(alias) == 0 {
		return false
	}
	for _, tok := range alias {
		if _, ok := tokens[tok]; !ok {
			return false
		}
	}
	return true
}
