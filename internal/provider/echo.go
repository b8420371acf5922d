package provider

import (
	"context"

	"github.com/tjfontaine/halo-conversation-gateway/internal/domain"
)

// EchoPrefix marks deterministic echo replies, both for the echo
// provider itself and for degraded dispatches.
const EchoPrefix = "ECHO: "

// EchoText builds the canonical echo reply for an utterance.
func EchoText(utterance string) string {
	return EchoPrefix + utterance
}

// EchoAdapter is the terminal fallback: no configuration, no network,
// never fails.
type EchoAdapter struct{}

// NewEcho creates the echo adapter.
func NewEcho() *EchoAdapter {
	return &EchoAdapter{}
}

func (a *EchoAdapter) ID() domain.ProviderID {
	return domain.ProviderEcho
}

func (a *EchoAdapter) Send(_ context.Context, utterance string) (*domain.Reply, error) {
	return &domain.Reply{
		Text: EchoText(utterance),
		Note: "echo_local",
	}, nil
}
