package app

import (
	"time"

	"github.com/careerpath/careerpath-backend/internal/modules/quota"
	"github.com/careerpath/careerpath-backend/internal/platform/envutil"
	"github.com/careerpath/careerpath-backend/internal/platform/logger"
)

const defaultJWTSecret = "defaultsecret"

type Config struct {
	Port            string
	JWTSecretKey    string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	Quota quota.Policy

	RedisAddr       string
	NotificationTTL time.Duration

	ContactEmail   string
	AllowedOrigins []string

	RateLimitRPS   float64
	RateLimitBurst int

	ServiceName string
}

func LoadConfig(log *logger.Logger) Config {
	cfg := Config{
		Port:            envutil.String("PORT", "8080"),
		JWTSecretKey:    envutil.String("JWT_SECRET_KEY", defaultJWTSecret),
		AccessTokenTTL:  envutil.Duration("ACCESS_TOKEN_TTL", time.Hour),
		RefreshTokenTTL: envutil.Duration("REFRESH_TOKEN_TTL", 24*time.Hour),
		Quota: quota.Policy{
			AssessmentLimit:       envutil.Int("QUOTA_ASSESSMENT_LIMIT", quota.AssessmentLimit),
			SavedPerCategoryLimit: envutil.Int("QUOTA_SAVED_PER_CATEGORY", quota.SavedPerCategoryLimit),
		},
		RedisAddr:       envutil.String("REDIS_ADDR", ""),
		NotificationTTL: envutil.Duration("NOTIFICATION_TTL", 30*24*time.Hour),
		ContactEmail:    envutil.String("CONTACT_EMAIL", ""),
		AllowedOrigins:  envutil.List("CORS_ALLOWED_ORIGINS", nil),
		RateLimitRPS:    envutil.Float("RATE_LIMIT_RPS", 1),
		RateLimitBurst:  envutil.Int("RATE_LIMIT_BURST", 5),
		ServiceName:     envutil.String("OTEL_SERVICE_NAME", "careerpath-api"),
	}
	if cfg.JWTSecretKey == defaultJWTSecret {
		log.Warn("JWT_SECRET_KEY not set; using the development default")
	}
	return cfg
}
