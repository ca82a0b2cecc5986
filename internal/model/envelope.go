package model

import "net/http"

// InvocationEnvelope is the wire contract between the dispatcher and a
// compute unit: an HTTP-like status code wrapping a task-specific body.
// 400 signals a validation failure (caller-correctable), 500 an internal
// failure (message may be redacted).
type InvocationEnvelope struct {
	StatusCode int            `json:"statusCode"`
	Body       InvocationBody `json:"body"`
}

// InvocationBody carries the compute unit's domain-specific output. Exactly
// one of ParsedData/Invoice/LeadScore is set on success, matched by its
// processed/generated/scored timestamp.
type InvocationBody struct {
	Success     bool         `json:"success"`
	ParsedData  *ParsedEmail `json:"parsed_data,omitempty"`
	ProcessedAt string       `json:"processed_at,omitempty"`
	Invoice     *Invoice     `json:"invoice,omitempty"`
	GeneratedAt string       `json:"generated_at,omitempty"`
	LeadScore   *LeadScore   `json:"lead_score,omitempty"`
	ScoredAt    string       `json:"scored_at,omitempty"`
	Error       string       `json:"error,omitempty"`
}

// OK reports whether the envelope carries a successful invocation.
func (e InvocationEnvelope) OK() bool {
	return e.StatusCode == http.StatusOK && e.Body.Success
}
