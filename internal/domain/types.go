// Package domain holds the core types shared across the gateway:
// provider identifiers, audio routes, routing metadata and the
// adapter result shapes.
package domain

import "context"

// ProviderID identifies a downstream AI or action backend.
type ProviderID string

const (
	// ProviderOpenAI is the primary chat backend.
	ProviderOpenAI ProviderID = "openai"

	// ProviderPerplexity is the web-search-grounded chat backend.
	ProviderPerplexity ProviderID = "perplexity"

	// ProviderClaude is the long-context / vision chat backend.
	ProviderClaude ProviderID = "claude"

	// ProviderHuggingFace routes to hosted models behind the
	// Hugging Face inference router.
	ProviderHuggingFace ProviderID = "huggingface"

	// ProviderCloudAI is the Gemini backend, reachable through its
	// OpenAI-compatible endpoint.
	ProviderCloudAI ProviderID = "cloud_ai"

	// ProviderNotionCalendar is a local calendar action, not a chat
	// backend. It never makes a network call.
	ProviderNotionCalendar ProviderID = "notion_calendar"

	// ProviderProActor is an operator-configured generic
	// OpenAI-compatible endpoint.
	ProviderProActor ProviderID = "pro_actor"

	// ProviderEcho is the terminal fallback. It always succeeds.
	ProviderEcho ProviderID = "echo"
)

// AllProviders lists every ProviderID in dispatch-table order.
var AllProviders = []ProviderID{
	ProviderOpenAI,
	ProviderPerplexity,
	ProviderClaude,
	ProviderHuggingFace,
	ProviderCloudAI,
	ProviderNotionCalendar,
	ProviderProActor,
	ProviderEcho,
}

// ParseProviderID returns the ProviderID for s, or false if s is not a
// known provider.
func ParseProviderID(s string) (ProviderID, bool) {
	for _, p := range AllProviders {
		if string(p) == s {
			return p, true
		}
	}
	return "", false
}

// AudioRoute identifies the output device a reply should be played on.
type AudioRoute string

const (
	// RouteGlasses is the paired wearable. New sessions start here.
	RouteGlasses AudioRoute = "glasses"

	// RoutePhoneSpeaker is the on-device speaker.
	RoutePhoneSpeaker AudioRoute = "phone_speaker"

	// RoutePairedDevice is a paired BT headset or earbuds.
	RoutePairedDevice AudioRoute = "paired_device"
)

// DefaultAudioRoute is the route assigned to a freshly created session.
const DefaultAudioRoute = RouteGlasses

// DefaultTenant is the sentinel tenant used when the caller supplies no
// tenant identity.
const DefaultTenant = "public"

// RoutingReason records why a provider was selected for a turn.
type RoutingReason string

const (
	// ReasonExplicitOverride means the utterance contained a switch command.
	ReasonExplicitOverride RoutingReason = "explicit_override"

	// ReasonSessionLocked means a previously pinned provider was reused.
	ReasonSessionLocked RoutingReason = "session_locked"

	// ReasonDefaultPolicy means the configured default was applied and
	// pinned for the rest of the session.
	ReasonDefaultPolicy RoutingReason = "default_policy"
)

// ClientAction is a structured side effect the client should perform,
// e.g. opening a calendar deep-link.
type ClientAction struct {
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload"`
}

// Reply is what an adapter produces on success. Note is the stable
// "<provider>_<api-shape>" diagnostic tag for the call.
type Reply struct {
	Text    string
	Note    string
	Actions []ClientAction
}

// ProviderResult is the total outcome of a dispatch attempt. Every
// failure path still yields a usable result; ProviderApplied is the
// echo sentinel whenever the reply was degraded.
type ProviderResult struct {
	ReplyText       string
	ProviderApplied ProviderID
	RoutingNote     string
	Actions         []ClientAction
}

// Adapter is the uniform capability every provider exposes to the
// dispatcher: send one utterance, get a reply or an error.
type Adapter interface {
	ID() ProviderID
	Send(ctx context.Context, utterance string) (*Reply, error)
}

type sessionIDKey struct{}

// WithSessionID attaches the conversation session id to ctx so local
// adapters (the calendar action) can reference it.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionIDKey{}, sessionID)
}

// SessionIDFromContext returns the session id set by WithSessionID, or
// an empty string.
func SessionIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(sessionIDKey{}).(string); ok {
		return id
	}
	return ""
}
