package provider

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tjfontaine/halo-conversation-gateway/internal/domain"
)

func TestCompatSend(t *testing.T) {
	var gotAuth string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"cc-1","choices":[{"index":0,"message":{"role":"assistant","content":"sunny in rome"},"finish_reason":"stop"}]}`))
	}))
	defer upstream.Close()

	a := NewCompat(CompatSpec{
		ID:      domain.ProviderPerplexity,
		BaseURL: upstream.URL,
		APIKey:  "pk-test",
		Model:   "sonar",
		Required: []RequiredSetting{
			{Value: "pk-test", EnvKey: "HALO_PERPLEXITY_API_KEY"},
		},
	}, nil)

	reply, err := a.Send(context.Background(), "weather in rome")
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if gotAuth != "Bearer pk-test" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if reply.Text != "sunny in rome" {
		t.Errorf("Text = %q", reply.Text)
	}
	if reply.Note != "perplexity_chat_completions" {
		t.Errorf("Note = %q", reply.Note)
	}
}

func TestCompatSend_MissingRequiredSetting(t *testing.T) {
	a := NewCompat(CompatSpec{
		ID:      domain.ProviderProActor,
		BaseURL: "",
		APIKey:  "ak-test",
		Model:   "custom",
		Required: []RequiredSetting{
			{Value: "", EnvKey: "HALO_PROACTOR_BASE_URL"},
			{Value: "ak-test", EnvKey: "HALO_PROACTOR_API_KEY"},
		},
	}, nil)

	_, err := a.Send(context.Background(), "hi")

	var missing *domain.MissingConfigError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingConfigError, got %v", err)
	}
	// The first unsatisfied setting is the one reported.
	if missing.Key != "HALO_PROACTOR_BASE_URL" {
		t.Errorf("Key = %q", missing.Key)
	}
}

func TestCompatSend_EmptyChoices(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"cc-2","choices":[]}`))
	}))
	defer upstream.Close()

	a := NewCompat(CompatSpec{
		ID:      domain.ProviderHuggingFace,
		BaseURL: upstream.URL,
		APIKey:  "hf-test",
		Model:   "meta-llama/Llama-3.1-8B-Instruct",
	}, nil)

	_, err := a.Send(context.Background(), "hi")

	var payloadErr *domain.PayloadError
	if !errors.As(err, &payloadErr) {
		t.Fatalf("expected PayloadError, got %v", err)
	}
}

func TestOpenAISend_MissingKey(t *testing.T) {
	a := NewOpenAI("", "gpt-4o-mini")

	_, err := a.Send(context.Background(), "hi")

	var missing *domain.MissingConfigError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingConfigError, got %v", err)
	}
	if missing.Key != "HALO_OPENAI_API_KEY" {
		t.Errorf("Key = %q", missing.Key)
	}
}

func TestClaudeSend(t *testing.T) {
	var gotKey, gotVersion string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-api-key")
		gotVersion = r.Header.Get("anthropic-version")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"msg-1","type":"message","role":"assistant","content":[{"type":"text","text":"ciao!"}],"stop_reason":"end_turn"}`))
	}))
	defer upstream.Close()

	a := NewClaude("sk-ant-test", "claude-3-5-sonnet-latest", WithClaudeBaseURL(upstream.URL))

	reply, err := a.Send(context.Background(), "say hello in italian")
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if gotKey != "sk-ant-test" {
		t.Errorf("x-api-key = %q", gotKey)
	}
	if gotVersion == "" {
		t.Error("anthropic-version header missing")
	}
	if reply.Text != "ciao!" {
		t.Errorf("Text = %q", reply.Text)
	}
	if reply.Note != "claude_messages" {
		t.Errorf("Note = %q", reply.Note)
	}
}

func TestClaudeSend_MissingKey(t *testing.T) {
	a := NewClaude("", "claude-3-5-sonnet-latest")

	_, err := a.Send(context.Background(), "hi")

	var missing *domain.MissingConfigError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingConfigError, got %v", err)
	}
	if missing.Key != "HALO_CLAUDE_API_KEY" {
		t.Errorf("Key = %q", missing.Key)
	}
}
