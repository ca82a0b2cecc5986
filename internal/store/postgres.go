package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"automation-dashboard/internal/model"
)

// PostgresStore is the durable backend option. Schema:
//
//	CREATE TABLE IF NOT EXISTS task_records (
//	    task_id    TEXT PRIMARY KEY,
//	    task_type  TEXT NOT NULL,
//	    status     TEXT NOT NULL,
//	    result     JSONB NULL,
//	    error      TEXT NULL,
//	    created_at TEXT NOT NULL,
//	    seq        BIGSERIAL
//	);
type PostgresStore struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewPostgresStore(db *pgxpool.Pool, logger *zap.Logger) *PostgresStore {
	return &PostgresStore{db: db, logger: logger}
}

func (s *PostgresStore) Put(ctx context.Context, record model.TaskRecord) error {
	var result []byte
	if record.Result != nil {
		var err error
		result, err = json.Marshal(record.Result)
		if err != nil {
			return fmt.Errorf("failed to marshal task result: %w", err)
		}
	}

	query := `
        INSERT INTO task_records (task_id, task_type, status, result, error, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)
    `
	_, err := s.db.Exec(ctx, query,
		record.TaskID,
		string(record.TaskType),
		string(record.Status),
		result,
		nullable(record.Error),
		record.Timestamp,
	)
	if err != nil {
		s.logger.Error("Failed to insert task record",
			zap.String("task_id", record.TaskID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, taskID string) (*model.TaskRecord, error) {
	query := `
        SELECT task_id, task_type, status, result, error, created_at
        FROM task_records
        WHERE task_id = $1
    `
	record, err := scanRecord(s.db.QueryRow(ctx, query, taskID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]model.TaskRecord, error) {
	query := `
        SELECT task_id, task_type, status, result, error, created_at
        FROM task_records
        ORDER BY seq
    `
	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []model.TaskRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	return records, rows.Err()
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*model.TaskRecord, error) {
	var (
		record   model.TaskRecord
		taskType string
		status   string
		result   []byte
		errMsg   *string
	)
	if err := row.Scan(&record.TaskID, &taskType, &status, &result, &errMsg, &record.Timestamp); err != nil {
		return nil, err
	}
	record.TaskType = model.TaskType(taskType)
	record.Status = model.TaskStatus(status)
	if errMsg != nil {
		record.Error = *errMsg
	}
	if len(result) > 0 {
		var body model.InvocationBody
		if err := json.Unmarshal(result, &body); err != nil {
			return nil, fmt.Errorf("failed to unmarshal task result: %w", err)
		}
		record.Result = &body
	}
	return &record, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
