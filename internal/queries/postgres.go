package queries

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/learnova/gateway/internal/models"
)

// PostgresStore persists support threads in the gateway's own database.
// It implements the same semantics as MemoryStore. The revision counter is
// in-process; stat selectors only need to refresh when this process mutates.
type PostgresStore struct {
	pool     *pgxpool.Pool
	revision uint64
}

// NewPostgresStore creates a Postgres-backed store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool, revision: 1}
}

// ListByStudent returns the student's threads, most recently updated first.
func (s *PostgresStore) ListByStudent(ctx context.Context, studentID string) ([]models.QueryThread, error) {
	const query = `SELECT id, student_id, subject, status, created_at, updated_at
		FROM query_threads WHERE student_id = $1 ORDER BY updated_at DESC`
	rows, err := s.pool.Query(ctx, query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	threads := make([]models.QueryThread, 0)
	for rows.Next() {
		var t models.QueryThread
		if err := rows.Scan(&t.ID, &t.StudentID, &t.Subject, &t.Status, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		threads = append(threads, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range threads {
		msgs, err := s.messages(ctx, threads[i].ID)
		if err != nil {
			return nil, err
		}
		threads[i].Messages = msgs
	}
	return threads, nil
}

// Get returns one thread by id.
func (s *PostgresStore) Get(ctx context.Context, id uuid.UUID) (*models.QueryThread, error) {
	const query = `SELECT id, student_id, subject, status, created_at, updated_at
		FROM query_threads WHERE id = $1`
	var t models.QueryThread
	err := s.pool.QueryRow(ctx, query, id).
		Scan(&t.ID, &t.StudentID, &t.Subject, &t.Status, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	t.Messages, err = s.messages(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Create opens a new thread with an initial student message.
func (s *PostgresStore) Create(ctx context.Context, studentID, subject, content string) (*models.QueryThread, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	now := time.Now()
	threadID := uuid.New()
	const insertThread = `INSERT INTO query_threads (id, student_id, subject, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)`
	if _, err := tx.Exec(ctx, insertThread, threadID, studentID, subject, models.QueryStatusOpen, now); err != nil {
		return nil, err
	}

	msgID := uuid.New()
	const insertMsg = `INSERT INTO query_messages (id, thread_id, sender, content, sent_at)
		VALUES ($1, $2, $3, $4, $5)`
	if _, err := tx.Exec(ctx, insertMsg, msgID, threadID, models.SenderStudent, content, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	atomic.AddUint64(&s.revision, 1)

	return &models.QueryThread{
		ID:        threadID,
		StudentID: studentID,
		Subject:   subject,
		Status:    models.QueryStatusOpen,
		Messages: []models.QueryMessage{{
			ID:      msgID,
			Sender:  models.SenderStudent,
			Content: content,
			SentAt:  now,
		}},
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Reply appends a message to an open thread.
func (s *PostgresStore) Reply(ctx context.Context, id uuid.UUID, sender, content string) (*models.QueryThread, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var status string
	const lock = `SELECT status FROM query_threads WHERE id = $1 FOR UPDATE`
	err = tx.QueryRow(ctx, lock, id).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if status == models.QueryStatusResolved {
		return nil, ErrResolved
	}

	now := time.Now()
	const insertMsg = `INSERT INTO query_messages (id, thread_id, sender, content, sent_at)
		VALUES ($1, $2, $3, $4, $5)`
	if _, err := tx.Exec(ctx, insertMsg, uuid.New(), id, sender, content, now); err != nil {
		return nil, err
	}
	const touch = `UPDATE query_threads SET updated_at = $2 WHERE id = $1`
	if _, err := tx.Exec(ctx, touch, id, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	atomic.AddUint64(&s.revision, 1)

	return s.Get(ctx, id)
}

// Resolve marks a thread resolved. Resolving twice is a no-op.
func (s *PostgresStore) Resolve(ctx context.Context, id uuid.UUID) error {
	const query = `UPDATE query_threads SET status = $2, updated_at = NOW()
		WHERE id = $1 AND status <> $2`
	tag, err := s.pool.Exec(ctx, query, id, models.QueryStatusResolved)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		// Either missing or already resolved; only the former is an error.
		var exists bool
		const check = `SELECT EXISTS (SELECT 1 FROM query_threads WHERE id = $1)`
		if err := s.pool.QueryRow(ctx, check, id).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return ErrNotFound
		}
		return nil
	}
	atomic.AddUint64(&s.revision, 1)
	return nil
}

// Revision reports the mutation counter.
func (s *PostgresStore) Revision() uint64 {
	return atomic.LoadUint64(&s.revision)
}

func (s *PostgresStore) messages(ctx context.Context, threadID uuid.UUID) ([]models.QueryMessage, error) {
	const query = `SELECT id, sender, content, sent_at
		FROM query_messages WHERE thread_id = $1 ORDER BY sent_at ASC`
	rows, err := s.pool.Query(ctx, query, threadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	msgs := make([]models.QueryMessage, 0)
	for rows.Next() {
		var m models.QueryMessage
		if err := rows.Scan(&m.ID, &m.Sender, &m.Content, &m.SentAt); err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}
