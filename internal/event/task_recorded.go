package event

// RoutingKeyTaskRecorded is published once per terminal task record.
const RoutingKeyTaskRecorded = "task.recorded"

type TaskRecordedPayload struct {
	TaskID    string `json:"task_id"`
	TaskType  string `json:"task_type"`
	Status    string `json:"status"`
	Fallback  bool   `json:"fallback"`
	Timestamp string `json:"timestamp"`
}
