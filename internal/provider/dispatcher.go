// Package provider maps provider identifiers to upstream adapters and
// normalizes every outcome, success or failure, into a uniform result.
package provider

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/tjfontaine/halo-conversation-gateway/internal/domain"
)

// Dispatcher invokes the adapter for a requested provider under a
// shared bounded timeout. Dispatch is total: every failure becomes a
// degraded echo-shaped result, never an error to the caller.
type Dispatcher struct {
	adapters map[domain.ProviderID]domain.Adapter
	timeout  time.Duration
	logger   *slog.Logger
}

// NewDispatcher builds the capability table from the given adapters.
// timeout bounds each outbound call; a non-positive value falls back to
// 60 seconds.
func NewDispatcher(timeout time.Duration, logger *slog.Logger, adapters ...domain.Adapter) *Dispatcher {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	table := make(map[domain.ProviderID]domain.Adapter, len(adapters))
	for _, a := range adapters {
		table[a.ID()] = a
	}
	return &Dispatcher{
		adapters: table,
		timeout:  timeout,
		logger:   logger,
	}
}

// Dispatch sends the utterance to the requested provider's adapter.
// On success the result keeps the adapter's note and the requested
// provider tag. On any failure the result degrades uniformly: echoed
// reply text, echo sentinel as the applied provider, and a diagnostic
// routing note naming the cause.
func (d *Dispatcher) Dispatch(ctx context.Context, utterance string, requested domain.ProviderID) domain.ProviderResult {
	adapter, ok := d.adapters[requested]
	if !ok {
		// Closed enum; only reachable if wiring skipped an adapter.
		return d.degraded(utterance, fmt.Sprintf("degraded_missing_adapter_%s", requested))
	}

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	reply, err := adapter.Send(ctx, utterance)
	if err != nil {
		return d.degradedFromError(utterance, requested, err)
	}

	return domain.ProviderResult{
		ReplyText:       reply.Text,
		ProviderApplied: requested,
		RoutingNote:     reply.Note,
		Actions:         reply.Actions,
	}
}

func (d *Dispatcher) degradedFromError(utterance string, requested domain.ProviderID, err error) domain.ProviderResult {
	var note string
	var missing *domain.MissingConfigError
	if errors.As(err, &missing) {
		note = "degraded_missing_" + missing.Key
	} else {
		note = fmt.Sprintf("degraded_%s_error:%s", requested, domain.ClassifyFailure(err))
	}

	if d.logger != nil {
		d.logger.Warn("provider call degraded",
			slog.String("provider", string(requested)),
			slog.String("routing_note", note),
			slog.String("error", err.Error()),
		)
	}

	return d.degraded(utterance, note)
}

func (d *Dispatcher) degraded(utterance, note string) domain.ProviderResult {
	return domain.ProviderResult{
		ReplyText:       EchoText(utterance),
		ProviderApplied: domain.ProviderEcho,
		RoutingNote:     note,
	}
}
