// Package conversation is the HTTP frontdoor for the conversation API.
package conversation

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tjfontaine/halo-conversation-gateway/internal/domain"
	"github.com/tjfontaine/halo-conversation-gateway/internal/orchestrator"
	"github.com/tjfontaine/halo-conversation-gateway/internal/server"
)

// TenantHeader is the side channel carrying the tenant identity.
const TenantHeader = "X-Tenant-ID"

// ServiceName identifies this service in health responses.
const ServiceName = "halo-conversation-gateway"

// messageRequest is the POST body for a conversation turn.
type messageRequest struct {
	SessionID     string `json:"session_id,omitempty"`
	UserUtterance string `json:"user_utterance"`
}

// Handler serves the conversation endpoints.
type Handler struct {
	orch *orchestrator.Orchestrator
}

// NewHandler creates the frontdoor handler.
func NewHandler(orch *orchestrator.Orchestrator) *Handler {
	return &Handler{orch: orch}
}

// Register mounts the conversation routes on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/api/v1/conversation/message", h.HandleMessage)
	r.Get("/health", h.HandleHealth)
}

// HandleMessage runs one conversational turn. Routing and dispatch
// failures never surface as transport errors; only a tenant admission
// rejection short-circuits with a non-200 status.
func (h *Handler) HandleMessage(w http.ResponseWriter, r *http.Request) {
	var req messageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "request body is not valid JSON")
		return
	}
	if req.UserUtterance == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "user_utterance is required")
		return
	}

	resp, err := h.orch.HandleTurn(r.Context(), orchestrator.Request{
		SessionID: req.SessionID,
		TenantID:  r.Header.Get(TenantHeader),
		Utterance: req.UserUtterance,
	})
	if err != nil {
		var admission *domain.AdmissionError
		if errors.As(err, &admission) {
			server.AddError(r.Context(), err)
			writeJSON(w, http.StatusTooManyRequests, map[string]any{
				"error":  "tenant_limit_reached",
				"tenant": admission.Tenant,
				"limit":  admission.Limit,
			})
			return
		}
		server.AddError(r.Context(), err)
		writeError(w, http.StatusInternalServerError, "internal", "unexpected error")
		return
	}

	server.AddLogField(r.Context(), "session_id", resp.SessionID)
	server.AddLogField(r.Context(), "ai_routing_reason", resp.AIRoutingReason)

	writeJSON(w, http.StatusOK, resp)
}

// HandleHealth reports service liveness.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":        "ok",
		"service":       ServiceName,
		"timestamp_utc": time.Now().UTC().Format(time.RFC3339),
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]string{
		"error":   code,
		"message": message,
	})
}
