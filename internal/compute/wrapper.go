package compute

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"automation-dashboard/internal/evaluator"
	"automation-dashboard/internal/faults"
	"automation-dashboard/internal/model"
)

// Wrapper hosts the three evaluators behind the uniform invocation contract:
// validate input, run the evaluator, return a structured envelope. Evaluator
// failures never escape as raw errors; they are folded into the envelope.
type Wrapper struct {
	emailParser       *evaluator.EmailParser
	invoiceCalculator *evaluator.InvoiceCalculator
	leadScorer        *evaluator.LeadScorer
	logger            *zap.Logger
}

func NewWrapper(logger *zap.Logger) *Wrapper {
	return &Wrapper{
		emailParser:       evaluator.NewEmailParser(logger),
		invoiceCalculator: evaluator.NewInvoiceCalculator(logger),
		leadScorer:        evaluator.NewLeadScorer(logger),
		logger:            logger,
	}
}

// Invoke runs the evaluator for taskType on params. Validation failures map
// to a 400 envelope with the specific message; anything else maps to a 500
// envelope with a generic message, full detail going to the log only.
func (w *Wrapper) Invoke(ctx context.Context, taskType model.TaskType, params model.TaskParameters) model.InvocationEnvelope {
	now := time.Now().UTC().Format(time.RFC3339)

	switch taskType {
	case model.TaskTypeEmailParse:
		if params.EmailParse == nil || params.EmailParse.EmailContent == nil {
			return validationEnvelope("email_content is required")
		}
		parsed, err := w.emailParser.Parse(*params.EmailParse.EmailContent)
		if err != nil {
			return w.errorEnvelope(taskType, err)
		}
		return model.InvocationEnvelope{
			StatusCode: http.StatusOK,
			Body:       model.InvocationBody{Success: true, ParsedData: parsed, ProcessedAt: now},
		}

	case model.TaskTypeInvoiceGenerate:
		if params.InvoiceGenerate == nil {
			return validationEnvelope("client_info and items are required")
		}
		invoice, err := w.invoiceCalculator.Generate(params.InvoiceGenerate.ClientInfo, params.InvoiceGenerate.Items)
		if err != nil {
			return w.errorEnvelope(taskType, err)
		}
		return model.InvocationEnvelope{
			StatusCode: http.StatusOK,
			Body:       model.InvocationBody{Success: true, Invoice: invoice, GeneratedAt: now},
		}

	case model.TaskTypeLeadScore:
		if params.LeadScore == nil {
			return validationEnvelope("lead_data is required")
		}
		score, err := w.leadScorer.Score(params.LeadScore.LeadData)
		if err != nil {
			return w.errorEnvelope(taskType, err)
		}
		return model.InvocationEnvelope{
			StatusCode: http.StatusOK,
			Body:       model.InvocationBody{Success: true, LeadScore: score, ScoredAt: now},
		}
	}

	return validationEnvelope("unknown task type: " + string(taskType))
}

// errorEnvelope folds an evaluator failure into the wire envelope. Anything
// outside the validation kind is reclassified as internal; its cause is
// logged, not surfaced.
func (w *Wrapper) errorEnvelope(taskType model.TaskType, err error) model.InvocationEnvelope {
	if faults.IsValidation(err) {
		w.logger.Warn("Evaluator rejected input",
			zap.String("task_type", string(taskType)),
			zap.String("reason", err.Error()),
		)
		return validationEnvelope(err.Error())
	}

	w.logger.Error("Evaluator failed",
		zap.String("task_type", string(taskType)),
		zap.Error(err),
	)
	return model.InvocationEnvelope{
		StatusCode: http.StatusInternalServerError,
		Body:       model.InvocationBody{Success: false, Error: "internal error"},
	}
}

func validationEnvelope(message string) model.InvocationEnvelope {
	return model.InvocationEnvelope{
		StatusCode: http.StatusBadRequest,
		Body:       model.InvocationBody{Success: false, Error: message},
	}
}
