package compute

import (
	"context"
	"net/http"
	"testing"

	"go.uber.org/zap"

	"automation-dashboard/internal/model"
)

func emailParams(content string) model.TaskParameters {
	return model.TaskParameters{EmailParse: &model.EmailParseParams{EmailContent: &content}}
}

func TestWrapper_EmailParseSuccess(t *testing.T) {
	w := NewWrapper(zap.NewNop())

	env := w.Invoke(context.Background(), model.TaskTypeEmailParse,
		emailParams("From: a@b.c\nSubject: hello"))

	if env.StatusCode != http.StatusOK || !env.Body.Success {
		t.Fatalf("envelope = %d success=%v, want 200 success", env.StatusCode, env.Body.Success)
	}
	if env.Body.ParsedData == nil {
		t.Fatal("parsed_data missing from success body")
	}
	if env.Body.ParsedData.Sender != "a@b.c" {
		t.Errorf("sender = %q, want a@b.c", env.Body.ParsedData.Sender)
	}
	if env.Body.ProcessedAt == "" {
		t.Error("processed_at missing from success body")
	}
}

func TestWrapper_EmailParseMissingField(t *testing.T) {
	w := NewWrapper(zap.NewNop())

	// email_content absent from the payload entirely
	env := w.Invoke(context.Background(), model.TaskTypeEmailParse,
		model.TaskParameters{EmailParse: &model.EmailParseParams{}})

	if env.StatusCode != http.StatusBadRequest {
		t.Fatalf("statusCode = %d, want 400", env.StatusCode)
	}
	if env.Body.Success {
		t.Error("body.success = true on a validation failure")
	}
	if env.Body.Error != "email_content is required" {
		t.Errorf("error = %q, want email_content is required", env.Body.Error)
	}
}

func TestWrapper_InvoiceValidationFailure(t *testing.T) {
	w := NewWrapper(zap.NewNop())

	env := w.Invoke(context.Background(), model.TaskTypeInvoiceGenerate,
		model.TaskParameters{InvoiceGenerate: &model.InvoiceGenerateParams{
			ClientInfo: map[string]any{"name": "Acme"},
			Items:      []map[string]any{},
		}})

	if env.StatusCode != http.StatusBadRequest {
		t.Fatalf("statusCode = %d, want 400", env.StatusCode)
	}
	if env.Body.Error == "" {
		t.Error("validation failure should carry the specific message")
	}
}

func TestWrapper_LeadScoreSuccess(t *testing.T) {
	w := NewWrapper(zap.NewNop())

	env := w.Invoke(context.Background(), model.TaskTypeLeadScore,
		model.TaskParameters{LeadScore: &model.LeadScoreParams{
			LeadData: map[string]any{"company_size": 1500, "industry": "technology"},
		}})

	if !env.OK() {
		t.Fatalf("envelope = %d success=%v, want OK", env.StatusCode, env.Body.Success)
	}
	if env.Body.LeadScore == nil || env.Body.LeadScore.Score != 55 {
		t.Errorf("lead_score = %+v, want score 55", env.Body.LeadScore)
	}
	if env.Body.ScoredAt == "" {
		t.Error("scored_at missing from success body")
	}
}

func TestWrapper_UnknownTaskType(t *testing.T) {
	w := NewWrapper(zap.NewNop())

	env := w.Invoke(context.Background(), model.TaskType("shred-documents"), model.TaskParameters{})
	if env.StatusCode != http.StatusBadRequest {
		t.Fatalf("statusCode = %d, want 400", env.StatusCode)
	}
}
