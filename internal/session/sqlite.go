package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ziadkadry99/splatdocs/internal/db"
)

// SQLStore keeps records in the visitor_sessions table.
type SQLStore struct {
	db *db.DB
}

// NewSQLStore creates a Store backed by the given database.
func NewSQLStore(database *db.DB) *SQLStore {
	return &SQLStore{db: database}
}

const timeLayout = "2006-01-02 15:04:05"

func (s *SQLStore) Get(ctx context.Context, id string) (*Record, error) {
	var (
		rec      Record
		expanded string
		updated  string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, lang, expanded, updated_at FROM visitor_sessions WHERE id = ?`, id,
	).Scan(&rec.ID, &rec.Lang, &expanded, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying session: %w", err)
	}
	if err := json.Unmarshal([]byte(expanded), &rec.Expanded); err != nil {
		return nil, fmt.Errorf("decoding expanded parts: %w", err)
	}
	rec.UpdatedAt = parseTime(updated)
	return &rec, nil
}

func (s *SQLStore) Save(ctx context.Context, rec *Record) error {
	expanded := rec.Expanded
	if expanded == nil {
		expanded = []string{}
	}
	data, err := json.Marshal(expanded)
	if err != nil {
		return fmt.Errorf("encoding expanded parts: %w", err)
	}
	now := time.Now().UTC()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO visitor_sessions (id, lang, expanded, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			lang = excluded.lang,
			expanded = excluded.expanded,
			updated_at = excluded.updated_at`,
		rec.ID, rec.Lang, string(data), now.Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	rec.UpdatedAt = now.Truncate(time.Second)
	return nil
}

func (s *SQLStore) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM visitor_sessions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

func (s *SQLStore) Purge(ctx context.Context, olderThan time.Time) (int, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM visitor_sessions WHERE updated_at < ?`, olderThan.UTC().Format(timeLayout))
	if err != nil {
		return 0, fmt.Errorf("purging sessions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting purged sessions: %w", err)
	}
	return int(n), nil
}

func parseTime(s string) time.Time {
	for _, layout := range []string{timeLayout, time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
