package app

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/careerpath/careerpath-backend/internal/modules/notify"
	"github.com/careerpath/careerpath-backend/internal/platform/gemini"
	"github.com/careerpath/careerpath-backend/internal/platform/logger"
	"github.com/careerpath/careerpath-backend/internal/platform/sendgrid"
)

type Clients struct {
	Gemini    *gemini.Client
	Mailer    sendgrid.Client
	Redis     *goredis.Client
	NotifyStore notify.Store
}

func wireClients(ctx context.Context, log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")

	// Gemini
	gc, err := gemini.New(ctx, log, gemini.ConfigFromEnv())
	if err != nil {
		return Clients{}, fmt.Errorf("init gemini client: %w", err)
	}

	// SendGrid (optional; contact form reports misconfiguration when absent)
	var mailer sendgrid.Client
	if m, err := sendgrid.New(log, sendgrid.ConfigFromEnv()); err != nil {
		log.Warn("contact email disabled", "error", err)
	} else {
		mailer = m
	}

	// Redis (optional; notifications fall back to process memory)
	var rdb *goredis.Client
	var store notify.Store = notify.NewMemoryStore()
	if cfg.RedisAddr != "" {
		rdb = goredis.NewClient(&goredis.Options{
			Addr:        cfg.RedisAddr,
			DialTimeout: 5 * time.Second,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			_ = rdb.Close()
			return Clients{}, fmt.Errorf("redis ping: %w", err)
		}
		store = notify.NewRedisStore(rdb, cfg.NotificationTTL)
	}

	return Clients{
		Gemini:    gc,
		Mailer:    mailer,
		Redis:     rdb,
		NotifyStore: store,
	}, nil
}

func (c *Clients) Close() {
	if c == nil {
		return
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
}
