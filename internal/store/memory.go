package store

import (
	"context"
	"sync"

	"automation-dashboard/internal/model"
)

// MemoryStore is the default volatile backend: a lock-guarded map that lives
// for the process lifetime and is cleared only on restart. No eviction.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]model.TaskRecord
	order   []string // insertion order for stable listing
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]model.TaskRecord),
	}
}

func (s *MemoryStore) Put(_ context.Context, record model.TaskRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.records[record.TaskID]; !exists {
		s.order = append(s.order, record.TaskID)
	}
	s.records[record.TaskID] = record
	return nil
}

func (s *MemoryStore) Get(_ context.Context, taskID string) (*model.TaskRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[taskID]
	if !ok {
		return nil, ErrNotFound
	}
	return &record, nil
}

func (s *MemoryStore) List(_ context.Context) ([]model.TaskRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records := make([]model.TaskRecord, 0, len(s.order))
	for _, id := range s.order {
		records = append(records, s.records[id])
	}
	return records, nil
}

func (s *MemoryStore) Ping(_ context.Context) error {
	return nil
}
