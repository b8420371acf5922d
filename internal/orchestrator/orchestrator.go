// Package orchestrator composes one conversational turn: classify the
// utterance, update session routing state, resolve the effective
// provider, dispatch, and assemble the response.
package orchestrator

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tjfontaine/halo-conversation-gateway/internal/domain"
	"github.com/tjfontaine/halo-conversation-gateway/internal/intent"
	"github.com/tjfontaine/halo-conversation-gateway/internal/provider"
	"github.com/tjfontaine/halo-conversation-gateway/internal/session"
	"github.com/tjfontaine/halo-conversation-gateway/internal/tenant"
)

// Request is one inbound conversational turn.
type Request struct {
	SessionID string
	TenantID  string
	Utterance string
}

// Response is the normalized turn outcome returned to the client.
type Response struct {
	SessionID    string    `json:"session_id"`
	ReplyText    string    `json:"reply_text"`
	TimestampUTC time.Time `json:"timestamp_utc"`

	AudioRouteApplied domain.AudioRoute `json:"audio_route_applied"`
	AudioCues         []string          `json:"audio_cues"`

	AIProviderRequested string `json:"ai_provider_requested"`
	AIProviderApplied   string `json:"ai_provider_applied"`
	AIRoutingReason     string `json:"ai_routing_reason"`

	ClientActions []domain.ClientAction `json:"client_actions"`
}

// Orchestrator wires the classifier, session store, tenant guard and
// dispatcher together. All shared state lives in the injected
// collaborators; the orchestrator itself is stateless per request.
type Orchestrator struct {
	classifier      *intent.Classifier
	sessions        *session.Store
	tenants         *tenant.Guard
	dispatcher      *provider.Dispatcher
	defaultProvider domain.ProviderID
	logger          *slog.Logger
}

// New creates an orchestrator. An invalid defaultProvider falls back to
// echo so the first unlocked turn always resolves.
func New(
	classifier *intent.Classifier,
	sessions *session.Store,
	tenants *tenant.Guard,
	dispatcher *provider.Dispatcher,
	defaultProvider domain.ProviderID,
	logger *slog.Logger,
) *Orchestrator {
	if _, ok := domain.ParseProviderID(string(defaultProvider)); !ok {
		defaultProvider = domain.ProviderEcho
	}
	return &Orchestrator{
		classifier:      classifier,
		sessions:        sessions,
		tenants:         tenants,
		dispatcher:      dispatcher,
		defaultProvider: defaultProvider,
		logger:          logger,
	}
}

// HandleTurn runs one turn end to end. The only error it can return is
// a *domain.AdmissionError; every routing or dispatch failure is folded
// into the response as a degraded reply.
func (o *Orchestrator) HandleTurn(ctx context.Context, req Request) (*Response, error) {
	tenantID := req.TenantID
	if tenantID == "" {
		tenantID = domain.DefaultTenant
	}
	if err := o.tenants.Admit(tenantID); err != nil {
		return nil, err
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	cues := []string{"session_start"}
	var (
		requested domain.ProviderID
		reason    domain.RoutingReason
		route     domain.AudioRoute
	)

	// The whole read-modify-write runs inside the store lock so two
	// turns on the same session cannot interleave mid-resolution.
	o.sessions.Update(session.Key{Tenant: tenantID, Session: sessionID}, func(st *session.State) {
		if override, ok := o.classifier.AudioRouteOverride(req.Utterance); ok {
			st.AudioRoute = override
			cues = append(cues, "confirm")
		}

		if override, ok := o.classifier.ProviderOverride(req.Utterance); ok {
			st.LockedProvider = override
			reason = domain.ReasonExplicitOverride
			cues = append(cues, "confirm")
		} else if st.LockedProvider != "" {
			reason = domain.ReasonSessionLocked
		} else {
			// First unlocked turn pins the default for the rest of the
			// session; later turns resolve as session_locked.
			st.LockedProvider = o.defaultProvider
			reason = domain.ReasonDefaultPolicy
		}

		requested = st.LockedProvider
		route = st.AudioRoute
	})

	result := o.dispatcher.Dispatch(domain.WithSessionID(ctx, sessionID), req.Utterance, requested)

	if o.logger != nil {
		o.logger.Info("turn routed",
			slog.String("tenant", tenantID),
			slog.String("session", sessionID),
			slog.String("provider_requested", string(requested)),
			slog.String("provider_applied", string(result.ProviderApplied)),
			slog.String("routing_reason", string(reason)),
			slog.String("routing_note", result.RoutingNote),
		)
	}

	return &Response{
		SessionID:           sessionID,
		ReplyText:           result.ReplyText,
		TimestampUTC:        time.Now().UTC(),
		AudioRouteApplied:   route,
		AudioCues:           cues,
		AIProviderRequested: string(requested),
		AIProviderApplied:   string(result.ProviderApplied),
		AIRoutingReason:     string(reason) + ":" + result.RoutingNote,
		ClientActions:       result.Actions,
	}, nil
}
