// SPDX-FileCopyrightText: 2025 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package configuration

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const timeFormat = time.RFC3339Nano

const schema = `
CREATE TABLE IF NOT EXISTS configuration (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	module TEXT NOT NULL,
	name TEXT NOT NULL,
	value TEXT NULL,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL,
	UNIQUE (module, name)
);`

const upsert = `
INSERT INTO configuration (module, name, value, created_at, updated_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT (module, name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

// SQLiteStore is the durable configuration store.
type SQLiteStore struct {
	sqlDB *sql.DB
	now   func() time.Time
}

// OpenSQLite opens (and creates when missing) the database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	sqlDB, err := sql.Open("sqlite", filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// A single connection serializes writers and avoids SQLITE_BUSY.
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	for _, stmt := range []string{"PRAGMA journal_mode=WAL", "PRAGMA busy_timeout=5000", schema} {
		if _, err := sqlDB.Exec(stmt); err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("prepare schema: %w", err)
		}
	}

	return &SQLiteStore{
		sqlDB: sqlDB,
		now:   func() time.Time { return time.Now().UTC() },
	}, nil
}

// Close closes the underlying SQLite database.
func (s *SQLiteStore) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *SQLiteStore) FetchValueByKey(ctx context.Context, key Key) (string, bool, error) {
	var value sql.NullString
	err := s.sqlDB.QueryRowContext(ctx,
		"SELECT value FROM configuration WHERE module = ? AND name = ?", key.Module, key.Name).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("fetch %s: %w", key, err)
	}
	if !value.Valid {
		return "", false, nil
	}
	return value.String, true, nil
}

func (s *SQLiteStore) FetchValuesByNames(ctx context.Context, module string, names []string) (map[string]string, error) {
	result := map[string]string{}
	if len(names) == 0 {
		return result, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(names)), ",")
	args := make([]any, 0, len(names)+1)
	args = append(args, module)
	for _, name := range names {
		args = append(args, name)
	}
	query := fmt.Sprintf(
		"SELECT name, value FROM configuration WHERE module = ? AND name IN (%s) AND value IS NOT NULL", placeholders)

	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetch %s values: %w", module, err)
	}
	defer rows.Close()

	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return nil, fmt.Errorf("scan %s value: %w", module, err)
		}
		result[name] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s values: %w", module, err)
	}
	return result, nil
}

func (s *SQLiteStore) InsertOrUpdate(ctx context.Context, module string, values map[string]string) error {
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	now := s.now().Format(timeFormat)
	for name, value := range values {
		if _, err := tx.ExecContext(ctx, upsert, module, name, value, now, now); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("store %s.%s: %w", module, name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (s *SQLiteStore) InsertOrUpdateOne(ctx context.Context, key Key, value string) error {
	return s.InsertOrUpdate(ctx, key.Module, map[string]string{key.Name: value})
}

var _ Store = (*SQLiteStore)(nil)
