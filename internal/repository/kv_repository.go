package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Entry is one stored value.
type Entry struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}

// KVRepository is the durable key-value store backed by the kv_store table.
type KVRepository struct {
	db *sql.DB
}

func NewKVRepository(db *sql.DB) *KVRepository {
	return &KVRepository{db: db}
}

func (r *KVRepository) Get(ctx context.Context, key string) (*Entry, error) {
	row := r.db.QueryRowContext(
		ctx,
		`SELECT key, value, updated_at FROM kv_store WHERE key = ?`,
		key,
	)

	var entry Entry
	var updatedAt string
	if err := row.Scan(&entry.Key, &entry.Value, &updatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get %s: %w", key, err)
	}

	parsedUpdatedAt, err := parseTime(updatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse %s updated_at: %w", key, err)
	}
	entry.UpdatedAt = parsedUpdatedAt
	return &entry, nil
}

// Put writes value under key, replacing any previous value.
func (r *KVRepository) Put(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO kv_store (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key,
		value,
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}

func (r *KVRepository) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM kv_store WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func parseTime(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err == nil {
		return t.UTC(), nil
	}
	t, err = time.Parse(time.RFC3339, raw)
	if err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, err
}
