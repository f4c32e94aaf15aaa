package queries

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/learnova/gateway/internal/models"
)

// MemoryStore is an in-memory Store. It backs deployments without a
// database and every queries test.
type MemoryStore struct {
	mu       sync.RWMutex
	threads  map[uuid.UUID]*models.QueryThread
	revision uint64
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{threads: make(map[uuid.UUID]*models.QueryThread)}
}

// NewSeededStore creates a store preloaded with the demo threads.
func NewSeededStore() *MemoryStore {
	s := NewMemoryStore()
	for _, t := range DemoThreads(time.Now()) {
		s.Put(t)
	}
	return s
}

// Put inserts or replaces a thread. Used for seeding.
func (s *MemoryStore) Put(t models.QueryThread) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := cloneThread(&t)
	s.threads[t.ID] = cp
	atomic.AddUint64(&s.revision, 1)
}

// ListByStudent returns the student's threads, most recently updated first.
func (s *MemoryStore) ListByStudent(_ context.Context, studentID string) ([]models.QueryThread, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.QueryThread, 0)
	for _, t := range s.threads {
		if t.StudentID == studentID {
			out = append(out, *cloneThread(t))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

// Get returns one thread by id.
func (s *MemoryStore) Get(_ context.Context, id uuid.UUID) (*models.QueryThread, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.threads[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneThread(t), nil
}

// Create opens a new thread with an initial student message.
func (s *MemoryStore) Create(_ context.Context, studentID, subject, content string) (*models.QueryThread, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	t := &models.QueryThread{
		ID:        uuid.New(),
		StudentID: studentID,
		Subject:   subject,
		Status:    models.QueryStatusOpen,
		Messages: []models.QueryMessage{{
			ID:      uuid.New(),
			Sender:  models.SenderStudent,
			Content: content,
			SentAt:  now,
		}},
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.threads[t.ID] = t
	atomic.AddUint64(&s.revision, 1)
	return cloneThread(t), nil
}

// Reply appends a message to an open thread.
func (s *MemoryStore) Reply(_ context.Context, id uuid.UUID, sender, content string) (*models.QueryThread, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.threads[id]
	if !ok {
		return nil, ErrNotFound
	}
	if t.Status == models.QueryStatusResolved {
		return nil, ErrResolved
	}

	now := time.Now()
	t.Messages = append(t.Messages, models.QueryMessage{
		ID:      uuid.New(),
		Sender:  sender,
		Content: content,
		SentAt:  now,
	})
	t.UpdatedAt = now
	atomic.AddUint64(&s.revision, 1)
	return cloneThread(t), nil
}

// Resolve marks a thread resolved. Resolving twice is a no-op.
func (s *MemoryStore) Resolve(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.threads[id]
	if !ok {
		return ErrNotFound
	}
	if t.Status == models.QueryStatusResolved {
		return nil
	}
	t.Status = models.QueryStatusResolved
	t.UpdatedAt = time.Now()
	atomic.AddUint64(&s.revision, 1)
	return nil
}

// Revision reports the mutation counter.
func (s *MemoryStore) Revision() uint64 {
	return atomic.LoadUint64(&s.revision)
}

func cloneThread(t *models.QueryThread) *models.QueryThread {
	cp := *t
	cp.Messages = make([]models.QueryMessage, len(t.Messages))
	copy(cp.Messages, t.Messages)
	return &cp
}
