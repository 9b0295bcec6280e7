// Package session persists per-visitor navigation state: the selected
// language and the set of expanded sidebar parts.
package session

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Get when no record exists for the id.
var ErrNotFound = errors.New("session not found")

// Record is the stored state of one visitor.
type Record struct {
	ID        string    `json:"id"`
	Lang      string    `json:"lang"`
	Expanded  []string  `json:"expanded"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Store persists visitor records.
type Store interface {
	Get(ctx context.Context, id string) (*Record, error)
	Save(ctx context.Context, rec *Record) error
	Delete(ctx context.Context, id string) error
	// Purge removes records not updated since the cutoff and returns how
	// many were removed.
	Purge(ctx context.Context, olderThan time.Time) (int, error)
}

func cloneRecord(r *Record) *Record {
	c := *r
	c.Expanded = append([]string(nil), r.Expanded...)
	return &c
}
