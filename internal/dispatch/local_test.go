package dispatch

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"automation-dashboard/internal/model"
)

// A bare fallback invocation (no caller parameters) must still produce a
// plausible completed result from the demo defaults.
func TestLocalProvider_DemoDefaults(t *testing.T) {
	p := NewLocalProvider(zap.NewNop())
	ctx := context.Background()

	t.Run("email-parse", func(t *testing.T) {
		env, err := p.Invoke(ctx, model.TaskTypeEmailParse, model.TaskParameters{})
		if err != nil {
			t.Fatalf("Invoke: %v", err)
		}
		if !env.OK() {
			t.Fatalf("envelope = %d success=%v, want OK", env.StatusCode, env.Body.Success)
		}
		parsed := env.Body.ParsedData
		if parsed.Sender != "sarah.johnson@techcorp.com" {
			t.Errorf("sender = %q", parsed.Sender)
		}
		if parsed.Priority != "high" {
			t.Errorf("priority = %q, want high (demo mail is urgent)", parsed.Priority)
		}
		if len(parsed.Attachments) != 2 {
			t.Errorf("attachments = %v, want 2", parsed.Attachments)
		}
		if len(parsed.ActionItems) != 6 {
			t.Errorf("action_items = %v, want 6", parsed.ActionItems)
		}
	})

	t.Run("invoice-generate", func(t *testing.T) {
		env, err := p.Invoke(ctx, model.TaskTypeInvoiceGenerate, model.TaskParameters{})
		if err != nil {
			t.Fatalf("Invoke: %v", err)
		}
		if !env.OK() {
			t.Fatalf("envelope = %d success=%v, want OK", env.StatusCode, env.Body.Success)
		}
		inv := env.Body.Invoice
		if inv.Subtotal != 8400.00 || inv.TaxAmount != 672.00 || inv.Total != 9072.00 {
			t.Errorf("totals = %v/%v/%v, want 8400/672/9072", inv.Subtotal, inv.TaxAmount, inv.Total)
		}
		if inv.Client.Name != "Acme Corporation" {
			t.Errorf("client = %q", inv.Client.Name)
		}
	})

	t.Run("lead-score", func(t *testing.T) {
		env, err := p.Invoke(ctx, model.TaskTypeLeadScore, model.TaskParameters{})
		if err != nil {
			t.Fatalf("Invoke: %v", err)
		}
		if !env.OK() {
			t.Fatalf("envelope = %d success=%v, want OK", env.StatusCode, env.Body.Success)
		}
		score := env.Body.LeadScore
		if score.Score != 130 || score.Quality != "hot" {
			t.Errorf("score = %d/%s, want 130/hot", score.Score, score.Quality)
		}
	})
}

func TestLocalProvider_UsesCallerParameters(t *testing.T) {
	p := NewLocalProvider(zap.NewNop())

	content := "From: someone@example.com\nSubject: quarterly report"
	env, err := p.Invoke(context.Background(), model.TaskTypeEmailParse,
		model.TaskParameters{EmailParse: &model.EmailParseParams{EmailContent: &content}})
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if !env.OK() {
		t.Fatalf("envelope = %d, want OK", env.StatusCode)
	}
	if env.Body.ParsedData.Sender != "someone@example.com" {
		t.Errorf("sender = %q, caller parameters should win over demo defaults", env.Body.ParsedData.Sender)
	}
}
