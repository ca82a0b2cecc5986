package store

import (
	"context"
	"errors"

	"automation-dashboard/internal/model"
)

// ErrNotFound is returned by Get when no record exists for the task id.
var ErrNotFound = errors.New("task record not found")

// TaskStore holds terminal task records. Records are write-once: Put is
// called exactly once per dispatched task and nothing mutates a record
// afterwards. Implementations must be safe for concurrent use.
type TaskStore interface {
	Put(ctx context.Context, record model.TaskRecord) error
	Get(ctx context.Context, taskID string) (*model.TaskRecord, error)
	List(ctx context.Context) ([]model.TaskRecord, error)
	Ping(ctx context.Context) error
}
