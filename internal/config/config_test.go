package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("JWT_SECRET", "secret")

	cfg := Load()

	assert.Equal(t, "test", cfg.AppEnv)
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, StorePostgres, cfg.StoreDriver)
	assert.Equal(t, 30*24*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, 10*time.Second, cfg.RedditTimeout)
	assert.Equal(t, 60, cfg.RedditRatePerMinute)
	assert.Equal(t, 3, cfg.RegisterRateLimit)
	assert.Equal(t, time.Hour, cfg.RegisterRateWindow)
	assert.Equal(t, 5, cfg.LoginRateLimit)
	assert.Equal(t, 15*time.Minute, cfg.LoginRateWindow)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("REDDIT_TIMEOUT", "2s")
	t.Setenv("REDDIT_RATE_PER_MINUTE", "not-a-number")
	t.Setenv("JWT_EXPIRY", "garbage")

	cfg := Load()

	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, 2*time.Second, cfg.RedditTimeout)
	assert.Equal(t, 60, cfg.RedditRatePerMinute)
	assert.Equal(t, 30*24*time.Hour, cfg.JWTExpiry)
}

func TestAdminEmailList(t *testing.T) {
	cfg := &Config{AdminEmails: " Root@Example.com, ,ops@example.com"}
	assert.Equal(t, []string{"root@example.com", "ops@example.com"}, cfg.AdminEmailList())

	assert.Nil(t, (&Config{}).AdminEmailList())
}

func TestDSN(t *testing.T) {
	cfg := &Config{DBHost: "db", DBUser: "u", DBPassword: "p", DBName: "n", DBPort: "5432", DBSSLMode: "disable"}
	assert.Equal(t, "host=db user=u password=p dbname=n port=5432 sslmode=disable TimeZone=UTC", cfg.DSN())
}
