package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"automation-dashboard/internal/model"
)

const (
	taskKeyPrefix = "task:"
	taskIndexKey  = "task:ids"
)

// RedisStore keeps task records in Redis, one JSON value per task plus a
// list index preserving insertion order.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Put(ctx context.Context, record model.TaskRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal task record: %w", err)
	}

	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, taskKeyPrefix+record.TaskID, data, 0)
	pipe.RPush(ctx, taskIndexKey, record.TaskID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store task record: %w", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, taskID string) (*model.TaskRecord, error) {
	data, err := s.rdb.Get(ctx, taskKeyPrefix+taskID).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch task record: %w", err)
	}

	var record model.TaskRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal task record: %w", err)
	}
	return &record, nil
}

func (s *RedisStore) List(ctx context.Context) ([]model.TaskRecord, error) {
	ids, err := s.rdb.LRange(ctx, taskIndexKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list task ids: %w", err)
	}

	records := make([]model.TaskRecord, 0, len(ids))
	for _, id := range ids {
		record, err := s.Get(ctx, id)
		if err == ErrNotFound {
			continue
		}
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	return records, nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}
