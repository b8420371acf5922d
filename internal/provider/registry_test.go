package provider

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/tjfontaine/halo-conversation-gateway/internal/config"
	"github.com/tjfontaine/halo-conversation-gateway/internal/domain"
)

func TestBuildAdapters_CoversEveryProvider(t *testing.T) {
	adapters := BuildAdapters(&config.Config{}, nil)

	ids := make(map[domain.ProviderID]bool, len(adapters))
	for _, a := range adapters {
		if ids[a.ID()] {
			t.Errorf("provider %s registered twice", a.ID())
		}
		ids[a.ID()] = true
	}

	for _, p := range domain.AllProviders {
		if !ids[p] {
			t.Errorf("no adapter registered for %s", p)
		}
	}
	if len(adapters) != len(domain.AllProviders) {
		t.Errorf("adapter count = %d, want %d", len(adapters), len(domain.AllProviders))
	}
}

func TestBuildAdapters_UnconfiguredDegradeNotMissing(t *testing.T) {
	// An empty config still yields a full table; each remote adapter
	// reports its missing credential instead of being absent.
	d := NewDispatcher(time.Second, slog.New(slog.DiscardHandler), BuildAdapters(&config.Config{}, nil)...)

	wantNotes := map[domain.ProviderID]string{
		domain.ProviderOpenAI:      "degraded_missing_" + config.EnvOpenAIAPIKey,
		domain.ProviderPerplexity:  "degraded_missing_" + config.EnvPerplexityAPIKey,
		domain.ProviderClaude:      "degraded_missing_" + config.EnvClaudeAPIKey,
		domain.ProviderHuggingFace: "degraded_missing_" + config.EnvHuggingFaceAPIToken,
		domain.ProviderCloudAI:     "degraded_missing_" + config.EnvCloudAIAPIKey,
		domain.ProviderProActor:    "degraded_missing_" + config.EnvProActorBaseURL,
	}

	for id, want := range wantNotes {
		res := d.Dispatch(context.Background(), "hi", id)
		if res.RoutingNote != want {
			t.Errorf("%s: RoutingNote = %q, want %q", id, res.RoutingNote, want)
		}
		if res.ProviderApplied != domain.ProviderEcho {
			t.Errorf("%s: ProviderApplied = %v, want echo sentinel", id, res.ProviderApplied)
		}
	}
}

func TestBuildAdapters_CalendarPromptsWithoutAccount(t *testing.T) {
	adapters := BuildAdapters(&config.Config{}, nil)

	var cal domain.Adapter
	for _, a := range adapters {
		if a.ID() == domain.ProviderNotionCalendar {
			cal = a
		}
	}
	if cal == nil {
		t.Fatal("calendar adapter not registered")
	}

	reply, err := cal.Send(context.Background(), "open calendar")
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if reply.Note != "notion_calendar_prompt_account_email" {
		t.Errorf("Note = %q", reply.Note)
	}

	var missing *domain.MissingConfigError
	if errors.As(err, &missing) {
		t.Error("calendar must prompt, not degrade, on missing account")
	}
}
