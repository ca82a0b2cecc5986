package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"automation-dashboard/internal/dispatch"
	"automation-dashboard/internal/handler"
	"automation-dashboard/internal/httpserver"
	"automation-dashboard/internal/model"
	"automation-dashboard/internal/store"
	"automation-dashboard/pkg/config"
)

// newTestAPI wires the whole front door against the in-process provider and
// the memory store, the same degraded mode the service runs in when the
// compute service is down.
func newTestAPI(t *testing.T) (*gin.Engine, store.TaskStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()

	memStore := store.NewMemoryStore()
	local := dispatch.NewLocalProvider(logger)
	dispatcher := dispatch.NewDispatcher(local, nil, memStore, nil, logger)
	taskHandler := handler.NewTaskHandler(dispatcher, memStore, logger)

	corsCfg := config.CORSConfig{AllowedOrigins: []string{"*"}}
	router := httpserver.NewAPIRouter(taskHandler, memStore, nil, corsCfg)
	return router.Engine, memStore
}

func postTask(t *testing.T, r *gin.Engine, taskType, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/tasks/"+taskType, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateTask_EmailParse(t *testing.T) {
	r, _ := newTestAPI(t)

	w := postTask(t, r, "email-parse",
		`{"task_type": "email-parse", "parameters": {"email_content": "From: a@b.c\nSubject: URGENT: outage"}}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var record model.TaskRecord
	if err := json.Unmarshal(w.Body.Bytes(), &record); err != nil {
		t.Fatalf("decode record: %v", err)
	}
	if record.Status != model.TaskStatusCompleted {
		t.Errorf("status = %q, want completed", record.Status)
	}
	if record.Result == nil || record.Result.ParsedData == nil {
		t.Fatal("record missing parsed_data result")
	}
	if record.Result.ParsedData.Priority != "high" {
		t.Errorf("priority = %q, want high", record.Result.ParsedData.Priority)
	}
}

func TestCreateTask_ValidationFailure(t *testing.T) {
	r, memStore := newTestAPI(t)

	w := postTask(t, r, "invoice-generate",
		`{"parameters": {"client_info": {"name": "Acme"}, "items": [{"quantity": 0, "price": 10}]}}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400; body = %s", w.Code, w.Body.String())
	}

	var record model.TaskRecord
	if err := json.Unmarshal(w.Body.Bytes(), &record); err != nil {
		t.Fatalf("decode record: %v", err)
	}
	if record.Status != model.TaskStatusFailed {
		t.Errorf("status = %q, want failed", record.Status)
	}
	if record.Error == "" {
		t.Error("failed record should carry the validation message")
	}

	// the failed attempt still produced its own terminal record
	records, _ := memStore.List(context.Background())
	if len(records) != 1 {
		t.Fatalf("stored records = %d, want 1", len(records))
	}
}

func TestCreateTask_UnknownType(t *testing.T) {
	r, _ := newTestAPI(t)

	w := postTask(t, r, "coffee-brew", `{"parameters": {}}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestCreateTask_TypeMismatch(t *testing.T) {
	r, _ := newTestAPI(t)

	w := postTask(t, r, "email-parse", `{"task_type": "lead-score", "parameters": {}}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestListTasks(t *testing.T) {
	r, _ := newTestAPI(t)

	for i := 0; i < 3; i++ {
		w := postTask(t, r, "lead-score",
			`{"parameters": {"lead_data": {"company_size": 1500, "industry": "technology"}}}`)
		if w.Code != http.StatusOK {
			t.Fatalf("seed request %d: status = %d", i, w.Code)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var resp struct {
		Tasks []model.TaskRecord `json:"tasks"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Tasks) != 3 {
		t.Fatalf("tasks = %d, want 3", len(resp.Tasks))
	}
	seen := make(map[string]bool)
	for _, task := range resp.Tasks {
		if seen[task.TaskID] {
			t.Fatalf("duplicate task_id %q", task.TaskID)
		}
		seen[task.TaskID] = true
	}
}

func TestGetTask(t *testing.T) {
	r, _ := newTestAPI(t)

	w := postTask(t, r, "email-parse", `{"parameters": {"email_content": "hello"}}`)
	var record model.TaskRecord
	if err := json.Unmarshal(w.Body.Bytes(), &record); err != nil {
		t.Fatalf("decode record: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/tasks/"+record.TaskID, nil)
	got := httptest.NewRecorder()
	r.ServeHTTP(got, req)
	if got.Code != http.StatusOK {
		t.Fatalf("status = %d", got.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/tasks/never_made", nil)
	missing := httptest.NewRecorder()
	r.ServeHTTP(missing, req)
	if missing.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", missing.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	r, _ := newTestAPI(t)

	req := httptest.NewRequest(http.MethodOptions, "/tasks", nil)
	req.Header.Set("Origin", "http://dashboard.example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
}

func TestTraceHeaderPropagated(t *testing.T) {
	r, _ := newTestAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	req.Header.Set("X-Trace-ID", "abc123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := w.Header().Get("X-Trace-ID"); got != "abc123" {
		t.Errorf("X-Trace-ID = %q, want abc123", got)
	}
}
