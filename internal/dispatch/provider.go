package dispatch

import (
	"context"

	"automation-dashboard/internal/model"
)

// Provider invokes one compute unit and returns its envelope. The choice of
// provider (remote call vs. local deterministic stand-in) is made once at
// startup, not per request.
type Provider interface {
	// Invoke runs the compute unit for taskType. A returned error means the
	// invocation itself failed (transport, timeout); evaluator-level
	// failures are carried inside the envelope instead.
	Invoke(ctx context.Context, taskType model.TaskType, params model.TaskParameters) (model.InvocationEnvelope, error)
	// Name identifies the provider in logs.
	Name() string
}
