// Package queries manages support threads between students and the academy
// support team. The backend exposes no queries API yet, so the gateway owns
// this data; a seeded in-memory store stands in behind the same Store
// contract a real service would implement.
package queries

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/learnova/gateway/internal/models"
)

var (
	// ErrNotFound is returned when no thread matches.
	ErrNotFound = errors.New("query thread not found")
	// ErrResolved is returned when replying to a resolved thread.
	ErrResolved = errors.New("query thread already resolved")
)

// Store persists support threads. Threads are listed newest-activity first;
// messages within a thread are ordered oldest first.
type Store interface {
	ListByStudent(ctx context.Context, studentID string) ([]models.QueryThread, error)
	Get(ctx context.Context, id uuid.UUID) (*models.QueryThread, error)
	Create(ctx context.Context, studentID, subject, content string) (*models.QueryThread, error)
	Reply(ctx context.Context, id uuid.UUID, sender, content string) (*models.QueryThread, error)
	Resolve(ctx context.Context, id uuid.UUID) error

	// Revision increases on every mutation. Derived selectors memoize on it
	// so dashboards do not recount threads on every request. The counter is
	// per-process; it only needs to change when this process's data does.
	Revision() uint64
}
