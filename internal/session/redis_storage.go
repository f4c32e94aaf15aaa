package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisStorage persists session records in Redis. Each session writes two
// keys: the record itself and an upstream-token index used for forced
// invalidation on 401.
type RedisStorage struct {
	rdb *redis.Client
}

// NewRedisStorage creates a Redis-backed session storage.
func NewRedisStorage(rdb *redis.Client) *RedisStorage {
	return &RedisStorage{rdb: rdb}
}

func sessionKey(id uuid.UUID) string       { return "session:" + id.String() }
func tokenKey(token string) string         { return "session:token:" + token }
func flagKey(id uuid.UUID, f string) string { return "session:" + id.String() + ":flag:" + f }

func (s *RedisStorage) Save(ctx context.Context, id uuid.UUID, rec *Record, ttl time.Duration) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, sessionKey(id), payload, ttl)
	pipe.Set(ctx, tokenKey(rec.UpstreamToken), id.String(), ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}

func (s *RedisStorage) Load(ctx context.Context, id uuid.UUID) (*Record, error) {
	raw, err := s.rdb.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		// Malformed persisted state counts as absent; the caller discards it.
		return nil, ErrNotFound
	}
	return &rec, nil
}

func (s *RedisStorage) Delete(ctx context.Context, id uuid.UUID) error {
	rec, err := s.Load(ctx, id)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	pipe := s.rdb.TxPipeline()
	pipe.Del(ctx, sessionKey(id))
	if rec != nil {
		pipe.Del(ctx, tokenKey(rec.UpstreamToken))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *RedisStorage) FindIDByToken(ctx context.Context, upstreamToken string) (uuid.UUID, error) {
	raw, err := s.rdb.Get(ctx, tokenKey(upstreamToken)).Result()
	if errors.Is(err, redis.Nil) {
		return uuid.Nil, ErrNotFound
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("find session by token: %w", err)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, ErrNotFound
	}
	return id, nil
}

func (s *RedisStorage) SetFlag(ctx context.Context, id uuid.UUID, name string, ttl time.Duration) error {
	if err := s.rdb.Set(ctx, flagKey(id, name), "1", ttl).Err(); err != nil {
		return fmt.Errorf("set session flag: %w", err)
	}
	return nil
}

func (s *RedisStorage) HasFlag(ctx context.Context, id uuid.UUID, name string) (bool, error) {
	_, err := s.rdb.Get(ctx, flagKey(id, name)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get session flag: %w", err)
	}
	return true, nil
}
