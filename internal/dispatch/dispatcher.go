package dispatch

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"automation-dashboard/internal/event"
	"automation-dashboard/internal/faults"
	"automation-dashboard/internal/model"
	"automation-dashboard/internal/store"
	"automation-dashboard/pkg/logger"
	"automation-dashboard/pkg/metrics"
)

// EventPublisher publishes task lifecycle events. A nil publisher disables
// publishing.
type EventPublisher interface {
	Publish(routingKey string, payload any) error
}

// Dispatcher routes a task request to a compute unit, normalizes the outcome
// into a TaskRecord, and persists exactly one record per request regardless
// of outcome.
type Dispatcher struct {
	primary   Provider
	fallback  Provider // optional; used when primary fails transiently
	store     store.TaskStore
	publisher EventPublisher
	logger    *zap.Logger
}

func NewDispatcher(primary, fallback Provider, taskStore store.TaskStore, publisher EventPublisher, log *zap.Logger) *Dispatcher {
	return &Dispatcher{
		primary:   primary,
		fallback:  fallback,
		store:     taskStore,
		publisher: publisher,
		logger:    log,
	}
}

// Dispatch runs one request end to end. The returned record is terminal and
// already persisted. A non-nil error accompanies a failed record and carries
// the failure kind for the HTTP layer.
func (d *Dispatcher) Dispatch(ctx context.Context, taskType model.TaskType, rawParams json.RawMessage) (*model.TaskRecord, error) {
	log := logger.WithTrace(ctx, d.logger)

	if !taskType.Valid() {
		return nil, faults.Validation("unknown task type: %s", taskType)
	}

	taskID := newTaskID(taskType)
	timestamp := time.Now().UTC().Format(time.RFC3339)

	record := model.TaskRecord{
		TaskID:    taskID,
		TaskType:  taskType,
		Timestamp: timestamp,
	}

	envelope, usedFallback, err := d.invoke(ctx, log, taskType, rawParams)
	switch {
	case err != nil:
		record.Status = model.TaskStatusFailed
		record.Error = failureMessage(err)
		log.Error("Task failed",
			zap.String("task_id", taskID),
			zap.String("task_type", string(taskType)),
			zap.String("kind", faults.KindOf(err).String()),
			zap.Error(err),
		)
	case envelope.OK():
		record.Status = model.TaskStatusCompleted
		body := envelope.Body
		record.Result = &body
		log.Info("Task completed",
			zap.String("task_id", taskID),
			zap.String("task_type", string(taskType)),
			zap.Bool("fallback", usedFallback),
		)
	default:
		record.Status = model.TaskStatusFailed
		record.Error = envelope.Body.Error
		if envelope.StatusCode == 400 {
			err = faults.Validation("%s", envelope.Body.Error)
		} else {
			err = faults.Internal(envelope.Body.Error, nil)
		}
		log.Warn("Task rejected by compute unit",
			zap.String("task_id", taskID),
			zap.String("task_type", string(taskType)),
			zap.Int("status_code", envelope.StatusCode),
			zap.String("reason", envelope.Body.Error),
		)
	}

	if putErr := d.store.Put(ctx, record); putErr != nil {
		log.Error("Failed to persist task record",
			zap.String("task_id", taskID),
			zap.Error(putErr),
		)
		return &record, faults.Internal("failed to persist task record", putErr)
	}

	metrics.IncrementTaskDispatch(string(taskType), string(record.Status))
	d.publishRecorded(log, record, usedFallback)

	return &record, err
}

// invoke tries the primary provider and degrades to the fallback on a
// transient failure. The fallback path is a deliberate degraded mode, not an
// error path.
func (d *Dispatcher) invoke(ctx context.Context, log *zap.Logger, taskType model.TaskType, rawParams json.RawMessage) (model.InvocationEnvelope, bool, error) {
	params, err := model.DecodeParameters(taskType, rawParams)
	if err != nil {
		return model.InvocationEnvelope{}, false, err
	}

	envelope, err := d.primary.Invoke(ctx, taskType, params)
	if err == nil {
		return envelope, d.primary.Name() == "local", nil
	}

	if faults.KindOf(err) == faults.KindTransient && d.fallback != nil {
		log.Warn("Compute unit unreachable, degrading to fallback provider",
			zap.String("task_type", string(taskType)),
			zap.Error(err),
		)
		envelope, ferr := d.fallback.Invoke(ctx, taskType, params)
		return envelope, true, ferr
	}

	return model.InvocationEnvelope{}, false, err
}

func (d *Dispatcher) publishRecorded(log *zap.Logger, record model.TaskRecord, usedFallback bool) {
	if d.publisher == nil {
		return
	}
	payload := event.TaskRecordedPayload{
		TaskID:    record.TaskID,
		TaskType:  string(record.TaskType),
		Status:    string(record.Status),
		Fallback:  usedFallback,
		Timestamp: record.Timestamp,
	}
	if err := d.publisher.Publish(event.RoutingKeyTaskRecorded, payload); err != nil {
		// fire-and-forget: publishing must not affect the dispatch outcome
		log.Warn("Failed to publish task.recorded event",
			zap.String("task_id", record.TaskID),
			zap.Error(err),
		)
	}
}

// failureMessage maps an invocation error to the record's error field.
// Validation messages pass through verbatim; internal detail stays in logs.
func failureMessage(err error) string {
	switch faults.KindOf(err) {
	case faults.KindValidation:
		return err.Error()
	case faults.KindTransient:
		return err.Error()
	default:
		return "internal error"
	}
}

// newTaskID stamps a type prefix plus a monotonic component and a short
// random suffix so concurrent requests never collide.
func newTaskID(taskType model.TaskType) string {
	return fmt.Sprintf("%s_%d_%s",
		taskType.IDPrefix(),
		time.Now().UTC().UnixNano(),
		uuid.NewString()[:8],
	)
}
