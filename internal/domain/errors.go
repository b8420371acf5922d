package domain

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// MissingConfigError reports that a provider cannot be called because a
// credential or endpoint is not configured. Key is the environment
// variable that would supply it; the dispatcher embeds it verbatim in
// the "degraded_missing_<Key>" routing note.
type MissingConfigError struct {
	Key string
}

func (e *MissingConfigError) Error() string {
	return fmt.Sprintf("missing configuration: %s", e.Key)
}

// ErrMissingConfig builds a MissingConfigError for the given env key.
func ErrMissingConfig(key string) error {
	return &MissingConfigError{Key: key}
}

// AdmissionError reports that the tenant cap was reached. Unlike
// dispatch failures it is surfaced to the caller as an explicit
// rejection rather than a degraded reply.
type AdmissionError struct {
	Tenant string
	Limit  int
}

func (e *AdmissionError) Error() string {
	return fmt.Sprintf("tenant %q rejected: tenant limit %d reached", e.Tenant, e.Limit)
}

// UpstreamStatusError reports a non-2xx response from an upstream API.
type UpstreamStatusError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamStatusError) Error() string {
	return fmt.Sprintf("upstream returned status %d: %s", e.StatusCode, e.Body)
}

// PayloadError reports a response body that could not be decoded or was
// missing the expected reply text.
type PayloadError struct {
	Err error
}

func (e *PayloadError) Error() string {
	return fmt.Sprintf("unusable upstream payload: %v", e.Err)
}

func (e *PayloadError) Unwrap() error {
	return e.Err
}

// FailureKind is the stable classification embedded in
// "degraded_<provider>_error:<kind>" routing notes.
type FailureKind string

const (
	FailureTimeout        FailureKind = "timeout"
	FailureNetwork        FailureKind = "network"
	FailureUpstreamStatus FailureKind = "upstream_status"
	FailureBadPayload     FailureKind = "bad_payload"
)

// ClassifyFailure maps an adapter error to its FailureKind. The order
// matters: a timeout surfaced through a net error is still a timeout.
func ClassifyFailure(err error) FailureKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return FailureTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return FailureTimeout
		}
		return FailureNetwork
	}
	var statusErr *UpstreamStatusError
	if errors.As(err, &statusErr) {
		return FailureUpstreamStatus
	}
	var payloadErr *PayloadError
	if errors.As(err, &payloadErr) {
		return FailureBadPayload
	}
	return FailureNetwork
}
