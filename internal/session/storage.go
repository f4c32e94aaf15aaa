package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/learnova/gateway/internal/models"
)

// ErrNotFound is returned when no persisted session matches.
var ErrNotFound = errors.New("session not found")

// Record is the persisted session payload: the upstream bearer token plus
// the student record (the gateway analog of the browser's local storage
// token/user pair).
type Record struct {
	UpstreamToken string          `json:"upstreamToken"`
	Student       *models.Student `json:"student"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// Storage persists session records. Implementations must support lookup by
// upstream token so the network layer can force-clear an expired session.
type Storage interface {
	Save(ctx context.Context, id uuid.UUID, rec *Record, ttl time.Duration) error
	Load(ctx context.Context, id uuid.UUID) (*Record, error)
	Delete(ctx context.Context, id uuid.UUID) error
	FindIDByToken(ctx context.Context, upstreamToken string) (uuid.UUID, error)
	SetFlag(ctx context.Context, id uuid.UUID, name string, ttl time.Duration) error
	HasFlag(ctx context.Context, id uuid.UUID, name string) (bool, error)
}

// MemoryStorage is an in-process Storage for tests and local development.
// TTLs are ignored.
type MemoryStorage struct {
	mu      sync.Mutex
	records map[uuid.UUID]*Record
	byToken map[string]uuid.UUID
	flags   map[string]bool
}

// NewMemoryStorage creates an empty in-memory storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		records: make(map[uuid.UUID]*Record),
		byToken: make(map[string]uuid.UUID),
		flags:   make(map[string]bool),
	}
}

func (m *MemoryStorage) Save(_ context.Context, id uuid.UUID, rec *Record, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *rec
	m.records[id] = &cp
	m.byToken[rec.UpstreamToken] = id
	return nil
}

func (m *MemoryStorage) Load(_ context.Context, id uuid.UUID) (*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

func (m *MemoryStorage) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if rec, ok := m.records[id]; ok {
		delete(m.byToken, rec.UpstreamToken)
	}
	delete(m.records, id)
	return nil
}

func (m *MemoryStorage) FindIDByToken(_ context.Context, upstreamToken string) (uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.byToken[upstreamToken]
	if !ok {
		return uuid.Nil, ErrNotFound
	}
	return id, nil
}

func (m *MemoryStorage) SetFlag(_ context.Context, id uuid.UUID, name string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.flags[id.String()+":"+name] = true
	return nil
}

func (m *MemoryStorage) HasFlag(_ context.Context, id uuid.UUID, name string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.flags[id.String()+":"+name], nil
}
