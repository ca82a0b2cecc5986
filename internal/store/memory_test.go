package store

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"automation-dashboard/internal/model"
)

func sampleRecord(id string) model.TaskRecord {
	return model.TaskRecord{
		TaskID:    id,
		TaskType:  model.TaskTypeEmailParse,
		Status:    model.TaskStatusCompleted,
		Timestamp: "2024-01-15T14:30:00Z",
	}
}

func TestMemoryStore_PutGetList(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	for _, id := range []string{"email_1", "email_2", "email_3"} {
		if err := s.Put(ctx, sampleRecord(id)); err != nil {
			t.Fatalf("Put(%s): %v", id, err)
		}
	}

	got, err := s.Get(ctx, "email_2")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.TaskID != "email_2" {
		t.Errorf("task_id = %q, want email_2", got.TaskID)
	}

	records, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("records = %d, want 3", len(records))
	}
	// insertion order preserved
	for i, id := range []string{"email_1", "email_2", "email_3"} {
		if records[i].TaskID != id {
			t.Errorf("records[%d] = %q, want %q", i, records[i].TaskID, id)
		}
	}
}

func TestMemoryStore_GetNotFound(t *testing.T) {
	s := NewMemoryStore()

	_, err := s.Get(context.Background(), "nope")
	if err != ErrNotFound {
		t.Fatalf("Get: err = %v, want ErrNotFound", err)
	}
}

func TestMemoryStore_ConcurrentPuts(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	const n = 100
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			if err := s.Put(ctx, sampleRecord(fmt.Sprintf("email_%d", i))); err != nil {
				t.Errorf("Put: %v", err)
			}
		}(i)
	}
	wg.Wait()

	records, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != n {
		t.Fatalf("records = %d, want %d", len(records), n)
	}
}
