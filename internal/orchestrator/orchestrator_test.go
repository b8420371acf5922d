package orchestrator

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/tjfontaine/halo-conversation-gateway/internal/domain"
	"github.com/tjfontaine/halo-conversation-gateway/internal/intent"
	"github.com/tjfontaine/halo-conversation-gateway/internal/provider"
	"github.com/tjfontaine/halo-conversation-gateway/internal/session"
	"github.com/tjfontaine/halo-conversation-gateway/internal/tenant"
)

func newTestOrchestrator(t *testing.T, maxTenants int) *Orchestrator {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)
	// Echo is the only adapter wired, so any other provider degrades the
	// same way a misconfigured upstream would.
	dispatcher := provider.NewDispatcher(time.Second, logger, provider.NewEcho())
	return New(
		intent.NewClassifier(),
		session.NewStore(),
		tenant.NewGuard(maxTenants),
		dispatcher,
		domain.ProviderEcho,
		logger,
	)
}

func TestHandleTurn_FirstTurnPinsDefault(t *testing.T) {
	o := newTestOrchestrator(t, 0)

	resp, err := o.HandleTurn(context.Background(), Request{
		SessionID: "s1",
		Utterance: "what time is it",
	})
	if err != nil {
		t.Fatalf("HandleTurn() error = %v", err)
	}

	if resp.AIProviderRequested != "echo" {
		t.Errorf("AIProviderRequested = %q, want echo", resp.AIProviderRequested)
	}
	if !strings.HasPrefix(resp.AIRoutingReason, "default_policy:") {
		t.Errorf("AIRoutingReason = %q, want default_policy prefix", resp.AIRoutingReason)
	}
	if resp.AudioRouteApplied != domain.RouteGlasses {
		t.Errorf("AudioRouteApplied = %v, want glasses", resp.AudioRouteApplied)
	}
	if len(resp.AudioCues) != 1 || resp.AudioCues[0] != "session_start" {
		t.Errorf("AudioCues = %v", resp.AudioCues)
	}
	if resp.ReplyText != "ECHO: what time is it" {
		t.Errorf("ReplyText = %q", resp.ReplyText)
	}
}

func TestHandleTurn_SecondTurnIsSessionLocked(t *testing.T) {
	o := newTestOrchestrator(t, 0)
	ctx := context.Background()

	if _, err := o.HandleTurn(ctx, Request{SessionID: "s1", Utterance: "first"}); err != nil {
		t.Fatalf("first turn: %v", err)
	}
	resp, err := o.HandleTurn(ctx, Request{SessionID: "s1", Utterance: "second"})
	if err != nil {
		t.Fatalf("second turn: %v", err)
	}

	if !strings.HasPrefix(resp.AIRoutingReason, "session_locked:") {
		t.Errorf("AIRoutingReason = %q, want session_locked prefix", resp.AIRoutingReason)
	}
}

func TestHandleTurn_ExplicitOverrideLocksProvider(t *testing.T) {
	o := newTestOrchestrator(t, 0)
	ctx := context.Background()

	resp, err := o.HandleTurn(ctx, Request{SessionID: "s1", Utterance: "use claude"})
	if err != nil {
		t.Fatalf("HandleTurn() error = %v", err)
	}

	if resp.AIProviderRequested != "claude" {
		t.Errorf("AIProviderRequested = %q, want claude", resp.AIProviderRequested)
	}
	if !strings.HasPrefix(resp.AIRoutingReason, "explicit_override:") {
		t.Errorf("AIRoutingReason = %q, want explicit_override prefix", resp.AIRoutingReason)
	}
	// confirm cue joins session_start on an override turn.
	if len(resp.AudioCues) != 2 || resp.AudioCues[1] != "confirm" {
		t.Errorf("AudioCues = %v", resp.AudioCues)
	}
	// No claude adapter is wired, so the turn degrades to echo.
	if resp.AIProviderApplied != "echo" {
		t.Errorf("AIProviderApplied = %q, want echo sentinel", resp.AIProviderApplied)
	}
	if !strings.Contains(resp.AIRoutingReason, "degraded_missing_adapter_claude") {
		t.Errorf("AIRoutingReason = %q, want degraded note", resp.AIRoutingReason)
	}

	// The lock sticks across the next plain turn.
	next, err := o.HandleTurn(ctx, Request{SessionID: "s1", Utterance: "and now"})
	if err != nil {
		t.Fatalf("follow-up turn: %v", err)
	}
	if next.AIProviderRequested != "claude" {
		t.Errorf("follow-up AIProviderRequested = %q, want claude", next.AIProviderRequested)
	}
	if !strings.HasPrefix(next.AIRoutingReason, "session_locked:") {
		t.Errorf("follow-up AIRoutingReason = %q", next.AIRoutingReason)
	}
}

func TestHandleTurn_OverrideReplacesExistingLock(t *testing.T) {
	o := newTestOrchestrator(t, 0)
	ctx := context.Background()

	if _, err := o.HandleTurn(ctx, Request{SessionID: "s1", Utterance: "use claude"}); err != nil {
		t.Fatalf("first override: %v", err)
	}
	resp, err := o.HandleTurn(ctx, Request{SessionID: "s1", Utterance: "usa eco"})
	if err != nil {
		t.Fatalf("second override: %v", err)
	}

	if resp.AIProviderRequested != "echo" {
		t.Errorf("AIProviderRequested = %q, want echo", resp.AIProviderRequested)
	}
	if !strings.HasPrefix(resp.AIRoutingReason, "explicit_override:") {
		t.Errorf("AIRoutingReason = %q", resp.AIRoutingReason)
	}
}

func TestHandleTurn_AudioOverrideSticks(t *testing.T) {
	o := newTestOrchestrator(t, 0)
	ctx := context.Background()

	resp, err := o.HandleTurn(ctx, Request{SessionID: "s1", Utterance: "use earbuds"})
	if err != nil {
		t.Fatalf("HandleTurn() error = %v", err)
	}
	if resp.AudioRouteApplied != domain.RoutePairedDevice {
		t.Errorf("AudioRouteApplied = %v, want paired_device", resp.AudioRouteApplied)
	}
	if len(resp.AudioCues) != 2 || resp.AudioCues[1] != "confirm" {
		t.Errorf("AudioCues = %v", resp.AudioCues)
	}

	next, err := o.HandleTurn(ctx, Request{SessionID: "s1", Utterance: "plain question"})
	if err != nil {
		t.Fatalf("follow-up turn: %v", err)
	}
	if next.AudioRouteApplied != domain.RoutePairedDevice {
		t.Errorf("follow-up AudioRouteApplied = %v, route did not stick", next.AudioRouteApplied)
	}
	if len(next.AudioCues) != 1 {
		t.Errorf("follow-up AudioCues = %v, want session_start only", next.AudioCues)
	}
}

func TestHandleTurn_GeneratesSessionID(t *testing.T) {
	o := newTestOrchestrator(t, 0)

	resp, err := o.HandleTurn(context.Background(), Request{Utterance: "hello"})
	if err != nil {
		t.Fatalf("HandleTurn() error = %v", err)
	}
	if resp.SessionID == "" {
		t.Error("SessionID not generated")
	}
}

func TestHandleTurn_TenantIsolation(t *testing.T) {
	o := newTestOrchestrator(t, 0)
	ctx := context.Background()

	if _, err := o.HandleTurn(ctx, Request{TenantID: "a", SessionID: "shared", Utterance: "use claude"}); err != nil {
		t.Fatalf("tenant a: %v", err)
	}
	resp, err := o.HandleTurn(ctx, Request{TenantID: "b", SessionID: "shared", Utterance: "hello"})
	if err != nil {
		t.Fatalf("tenant b: %v", err)
	}
	if resp.AIProviderRequested != "echo" {
		t.Errorf("tenant b inherited tenant a's lock: %q", resp.AIProviderRequested)
	}
}

func TestHandleTurn_TenantCap(t *testing.T) {
	o := newTestOrchestrator(t, 1)
	ctx := context.Background()

	if _, err := o.HandleTurn(ctx, Request{TenantID: "a", Utterance: "hi"}); err != nil {
		t.Fatalf("tenant a: %v", err)
	}

	_, err := o.HandleTurn(ctx, Request{TenantID: "b", Utterance: "hi"})
	var admErr *domain.AdmissionError
	if !errors.As(err, &admErr) {
		t.Fatalf("expected AdmissionError, got %v", err)
	}
	if admErr.Tenant != "b" || admErr.Limit != 1 {
		t.Errorf("AdmissionError = %+v", admErr)
	}

	// The admitted tenant keeps working.
	if _, err := o.HandleTurn(ctx, Request{TenantID: "a", Utterance: "still here"}); err != nil {
		t.Errorf("tenant a after cap: %v", err)
	}
}

func TestHandleTurn_EmptyTenantUsesDefault(t *testing.T) {
	o := newTestOrchestrator(t, 1)
	ctx := context.Background()

	// The blank tenant consumes the single slot as "public"...
	if _, err := o.HandleTurn(ctx, Request{Utterance: "hi"}); err != nil {
		t.Fatalf("blank tenant: %v", err)
	}
	// ...so an explicit "public" caller is the same tenant, not a second one.
	if _, err := o.HandleTurn(ctx, Request{TenantID: "public", Utterance: "hi again"}); err != nil {
		t.Errorf("explicit public tenant: %v", err)
	}
}

func TestNew_InvalidDefaultFallsBackToEcho(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)
	o := New(
		intent.NewClassifier(),
		session.NewStore(),
		tenant.NewGuard(0),
		provider.NewDispatcher(time.Second, logger, provider.NewEcho()),
		domain.ProviderID("not-a-provider"),
		logger,
	)

	resp, err := o.HandleTurn(context.Background(), Request{Utterance: "hello"})
	if err != nil {
		t.Fatalf("HandleTurn() error = %v", err)
	}
	if resp.AIProviderRequested != "echo" {
		t.Errorf("AIProviderRequested = %q, want echo fallback", resp.AIProviderRequested)
	}
}
