package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"automation-dashboard/internal/faults"
	"automation-dashboard/internal/model"
	"automation-dashboard/pkg/circuitbreaker"
	"automation-dashboard/pkg/metrics"
	"automation-dashboard/pkg/trace"
)

// RemoteProvider calls the compute-unit service over HTTP, guarded by a
// circuit breaker and an explicit per-call timeout.
type RemoteProvider struct {
	baseURL    string
	httpClient *http.Client
	cb         *circuitbreaker.CircuitBreaker
	logger     *zap.Logger
}

func NewRemoteProvider(baseURL string, timeout time.Duration, logger *zap.Logger) *RemoteProvider {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	cbConfig := circuitbreaker.Config{
		FailureThreshold:    3,
		SuccessThreshold:    2,
		Timeout:             30 * time.Second,
		HalfOpenMaxRequests: 2,
	}

	return &RemoteProvider{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		cb:     circuitbreaker.NewCircuitBreaker(cbConfig),
		logger: logger,
	}
}

func (p *RemoteProvider) Name() string { return "remote" }

// Invoke posts the task parameters to the compute service and decodes the
// envelope. Transport failures come back classified: unreachable/timeout/5xx
// as transient, anything else as internal.
func (p *RemoteProvider) Invoke(ctx context.Context, taskType model.TaskType, params model.TaskParameters) (model.InvocationEnvelope, error) {
	function := taskType.FunctionName()
	var envelope model.InvocationEnvelope

	err := p.cb.Execute(func() error {
		start := time.Now()
		b, marshalErr := json.Marshal(params)
		if marshalErr != nil {
			return marshalErr
		}

		req, reqErr := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/invoke/"+function, bytes.NewReader(b))
		if reqErr != nil {
			return reqErr
		}
		req.Header.Set("Content-Type", "application/json")
		if traceID := trace.FromContext(ctx); traceID != "" {
			req.Header.Set(trace.HeaderName(), traceID)
		}

		resp, doErr := p.httpClient.Do(req)
		latency := time.Since(start)
		status := "success"

		if doErr != nil {
			status = "error"
			metrics.RecordComputeCallLatency(function, status, latency)
			return doErr
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 500 {
			status = "5xx"
			metrics.RecordComputeCallLatency(function, status, latency)
			return fmt.Errorf("%w: %d", errComputeServer, resp.StatusCode)
		}
		if resp.StatusCode != http.StatusOK {
			status = fmt.Sprintf("%d", resp.StatusCode)
			metrics.RecordComputeCallLatency(function, status, latency)
			return fmt.Errorf("compute service error: %d", resp.StatusCode)
		}

		metrics.RecordComputeCallLatency(function, status, latency)
		return json.NewDecoder(resp.Body).Decode(&envelope)
	})

	if err != nil {
		return model.InvocationEnvelope{}, p.classify(err)
	}
	return envelope, nil
}

var errComputeServer = errors.New("compute service 5xx")

func (p *RemoteProvider) classify(err error) error {
	if errors.Is(err, circuitbreaker.ErrCircuitBreakerOpen) {
		return faults.Transient("compute unit unavailable", err)
	}
	if errors.Is(err, errComputeServer) {
		return faults.Transient("compute unit failing", err)
	}
	return faults.ClassifyTransport(err)
}

// Healthy probes the compute service once with a short timeout. Used at
// startup to decide between the remote and local providers.
func (p *RemoteProvider) Healthy(ctx context.Context) bool {
	probeCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(probeCtx, http.MethodGet, p.baseURL+"/healthz", nil)
	if err != nil {
		return false
	}
	resp, err := p.httpClient.Do(req)
	if err != nil {
		p.logger.Warn("Compute service probe failed", zap.Error(err))
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
