/*
   Copyright 2026 The UltraSuite Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"ultrasuite.dev/ultraerr/apis"
	"ultrasuite.dev/ultraerr/errcode"
	"ultrasuite.dev/ultraerr/policy"
)

const schema = `
CREATE TABLE IF NOT EXISTS error_occurrences (
	id          TEXT PRIMARY KEY,
	error_code  TEXT NOT NULL,
	severity    TEXT NOT NULL,
	message     TEXT NOT NULL,
	context     TEXT NOT NULL DEFAULT '{}',
	cause       TEXT,
	occurred_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_error_occurrences_code ON error_occurrences (error_code, occurred_at);
`

// Occurrence is one persisted error report.
type Occurrence struct {
	ID         string
	Code       errcode.Code
	Severity   policy.Severity
	Message    string
	Context    map[string]any
	Cause      string
	OccurredAt time.Time
}

// Store persists error occurrences in SQLite for later inspection.
type Store struct {
	db *sql.DB
}

// OpenStore opens (and migrates) the occurrence database at dsn.
// Use ":memory:" for an ephemeral store.
func OpenStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("handlers: open occurrence store: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("handlers: migrate occurrence store: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// Record inserts one occurrence and returns its generated id.
func (s *Store) Record(ctx context.Context, rep apis.Report) (string, error) {
	ectx, err := json.Marshal(rep.Context)
	if err != nil {
		ectx = []byte("{}")
	}
	var cause sql.NullString
	if rep.Cause != nil {
		cause = sql.NullString{String: rep.Cause.Error(), Valid: true}
	}
	id := uuid.NewString()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO error_occurrences (id, error_code, severity, message, context, cause, occurred_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, string(rep.Code), string(rep.Config.Type), rep.Message, string(ectx), cause, time.Now().UTC(),
	)
	if err != nil {
		return "", fmt.Errorf("handlers: record occurrence: %w", err)
	}
	return id, nil
}

// Recent returns the latest occurrences, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Occurrence, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, error_code, severity, message, context, cause, occurred_at
		 FROM error_occurrences ORDER BY occurred_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("handlers: query occurrences: %w", err)
	}
	defer rows.Close()

	var out []Occurrence
	for rows.Next() {
		var (
			o     Occurrence
			ectx  string
			cause sql.NullString
		)
		if err := rows.Scan(&o.ID, &o.Code, &o.Severity, &o.Message, &ectx, &cause, &o.OccurredAt); err != nil {
			return nil, fmt.Errorf("handlers: scan occurrence: %w", err)
		}
		if err := json.Unmarshal([]byte(ectx), &o.Context); err != nil {
			o.Context = nil
		}
		o.Cause = cause.String
		out = append(out, o)
	}
	return out, rows.Err()
}

// CountByCode returns how many occurrences of c were recorded since t.
func (s *Store) CountByCode(ctx context.Context, c errcode.Code, since time.Time) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM error_occurrences WHERE error_code = ? AND occurred_at >= ?`,
		string(c), since.UTC(),
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("handlers: count occurrences: %w", err)
	}
	return n, nil
}

// Persist is the handler that records occurrences in a Store. Notices are
// skipped; everything else is kept.
type Persist struct {
	store *Store
}

// NewPersist returns the persistence handler over store.
func NewPersist(store *Store) *Persist {
	return &Persist{store: store}
}

func (h *Persist) Name() string { return "persist" }

func (h *Persist) ShouldHandle(cfg apis.Config) bool {
	return cfg.Type != policy.SeverityNotice
}

func (h *Persist) Handle(ctx context.Context, rep apis.Report) error {
	_, err := h.store.Record(ctx, rep)
	return err
}
