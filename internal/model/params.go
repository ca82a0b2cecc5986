package model

import (
	"encoding/json"

	"automation-dashboard/internal/faults"
)

// EmailParseParams is the input for the email-parser function.
// EmailContent is a pointer so an absent field is distinguishable from an
// empty one.
type EmailParseParams struct {
	EmailContent *string `json:"email_content"`
}

// InvoiceGenerateParams is the input for the invoice-generator function.
// Item fields stay loosely typed here; numeric coercion and validation
// happen in the calculator.
type InvoiceGenerateParams struct {
	ClientInfo map[string]any   `json:"client_info"`
	Items      []map[string]any `json:"items"`
}

// LeadScoreParams is the input for the lead-scorer function.
type LeadScoreParams struct {
	LeadData map[string]any `json:"lead_data"`
}

// TaskParameters is a closed tagged union over the three task inputs.
// Exactly one variant is non-nil after a successful decode.
type TaskParameters struct {
	EmailParse      *EmailParseParams
	InvoiceGenerate *InvoiceGenerateParams
	LeadScore       *LeadScoreParams
}

// IsZero reports whether no variant carries any caller-supplied data.
func (p TaskParameters) IsZero() bool {
	switch {
	case p.EmailParse != nil:
		return p.EmailParse.EmailContent == nil
	case p.InvoiceGenerate != nil:
		return p.InvoiceGenerate.ClientInfo == nil && p.InvoiceGenerate.Items == nil
	case p.LeadScore != nil:
		return p.LeadScore.LeadData == nil
	}
	return true
}

// MarshalJSON emits the wire shape of whichever variant is set, so the
// union round-trips as the task-type-specific parameters object.
func (p TaskParameters) MarshalJSON() ([]byte, error) {
	switch {
	case p.EmailParse != nil:
		return json.Marshal(p.EmailParse)
	case p.InvoiceGenerate != nil:
		return json.Marshal(p.InvoiceGenerate)
	case p.LeadScore != nil:
		return json.Marshal(p.LeadScore)
	}
	return []byte(`{}`), nil
}

// DecodeParameters validates raw against the task type and returns the
// matching union variant. Malformed JSON is a validation failure.
func DecodeParameters(taskType TaskType, raw json.RawMessage) (TaskParameters, error) {
	if len(raw) == 0 {
		raw = json.RawMessage(`{}`)
	}

	switch taskType {
	case TaskTypeEmailParse:
		var p EmailParseParams
		if err := json.Unmarshal(raw, &p); err != nil {
			return TaskParameters{}, faults.Validation("invalid parameters for %s: %v", taskType, err)
		}
		return TaskParameters{EmailParse: &p}, nil
	case TaskTypeInvoiceGenerate:
		var p InvoiceGenerateParams
		if err := json.Unmarshal(raw, &p); err != nil {
			return TaskParameters{}, faults.Validation("invalid parameters for %s: %v", taskType, err)
		}
		return TaskParameters{InvoiceGenerate: &p}, nil
	case TaskTypeLeadScore:
		var p LeadScoreParams
		if err := json.Unmarshal(raw, &p); err != nil {
			return TaskParameters{}, faults.Validation("invalid parameters for %s: %v", taskType, err)
		}
		return TaskParameters{LeadScore: &p}, nil
	}
	return TaskParameters{}, faults.Validation("unknown task type: %s", taskType)
}
