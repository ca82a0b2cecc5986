package model

import "encoding/json"

// TaskType identifies one of the three supported automation tasks.
type TaskType string

const (
	TaskTypeEmailParse      TaskType = "email-parse"
	TaskTypeInvoiceGenerate TaskType = "invoice-generate"
	TaskTypeLeadScore       TaskType = "lead-score"
)

// Valid reports whether t is one of the supported task types.
func (t TaskType) Valid() bool {
	switch t {
	case TaskTypeEmailParse, TaskTypeInvoiceGenerate, TaskTypeLeadScore:
		return true
	}
	return false
}

// IDPrefix is the task-id prefix for this task type.
func (t TaskType) IDPrefix() string {
	switch t {
	case TaskTypeEmailParse:
		return "email"
	case TaskTypeInvoiceGenerate:
		return "invoice"
	case TaskTypeLeadScore:
		return "lead"
	}
	return "task"
}

// FunctionName is the compute-unit function handling this task type.
func (t TaskType) FunctionName() string {
	switch t {
	case TaskTypeEmailParse:
		return "email-parser"
	case TaskTypeInvoiceGenerate:
		return "invoice-generator"
	case TaskTypeLeadScore:
		return "lead-scorer"
	}
	return ""
}

// TaskStatus is the terminal status of a dispatched task.
type TaskStatus string

const (
	TaskStatusCompleted TaskStatus = "completed"
	TaskStatusFailed    TaskStatus = "failed"
)

// TaskRequest is the front-door submission payload. Immutable once received.
type TaskRequest struct {
	TaskType   TaskType        `json:"task_type"`
	Parameters json.RawMessage `json:"parameters"`
}

// TaskRecord is the normalized outcome of one dispatch. Created exactly once
// per request and never mutated afterwards; a failed attempt produces its own
// terminal record.
type TaskRecord struct {
	TaskID    string          `json:"task_id"`
	TaskType  TaskType        `json:"task_type"`
	Status    TaskStatus      `json:"status"`
	Result    *InvocationBody `json:"result,omitempty"`
	Error     string          `json:"error,omitempty"`
	Timestamp string          `json:"timestamp"`
}
