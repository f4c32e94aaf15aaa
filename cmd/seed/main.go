// Package main loads the demo support threads into Postgres. One-shot; safe
// to skip entirely when running with the in-memory store.
package main

import (
	"context"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/learnova/gateway/config"
	"github.com/learnova/gateway/internal/queries"
	"github.com/learnova/gateway/pkg/database"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}
	if cfg.Database.URL == "" {
		logger.Fatal("DATABASE_URL is required to seed")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg.Database.URL, logger)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	const insertThread = `INSERT INTO query_threads (id, student_id, subject, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6) ON CONFLICT (id) DO NOTHING`
	const insertMsg = `INSERT INTO query_messages (id, thread_id, sender, content, sent_at)
		VALUES ($1, $2, $3, $4, $5) ON CONFLICT (id) DO NOTHING`

	threads := queries.DemoThreads(time.Now())
	for _, t := range threads {
		if _, err := pool.Exec(ctx, insertThread, t.ID, t.StudentID, t.Subject, t.Status, t.CreatedAt, t.UpdatedAt); err != nil {
			logger.Fatal("insert thread", zap.String("subject", t.Subject), zap.Error(err))
		}
		for _, m := range t.Messages {
			if _, err := pool.Exec(ctx, insertMsg, m.ID, t.ID, m.Sender, m.Content, m.SentAt); err != nil {
				logger.Fatal("insert message", zap.Error(err))
			}
		}
	}

	logger.Info("seeded demo threads", zap.Int("count", len(threads)))
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
