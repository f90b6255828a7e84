package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	StorePostgres = "postgres"
	StoreMemory   = "memory"

	RedditLive    = "live"
	RedditFixture = "fixture"
)

type Config struct {
	AppEnv string

	// Database
	StoreDriver string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string

	// Redis (OAuth state). Empty address keeps states in process memory.
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// JWT
	JWTSecret string
	JWTExpiry time.Duration

	BcryptCost int

	// Admin
	AdminEmails string

	// Server
	Port        string
	CORSOrigins string
	SentryDSN   string

	// Inbound rate limits
	APIRateLimit       int
	APIRateWindow      time.Duration
	LoginRateLimit     int
	LoginRateWindow    time.Duration
	RegisterRateLimit  int
	RegisterRateWindow time.Duration

	// Reddit
	RedditMode          string
	RedditClientID      string
	RedditClientSecret  string
	RedditRedirectURI   string
	RedditUserAgent     string
	RedditPublicURL     string
	RedditOAuthURL      string
	RedditAuthorizeURL  string
	RedditTokenURL      string
	RedditTimeout       time.Duration
	RedditRatePerMinute int
	RedditSubreddits    string
	RedditFeedLimit     int
	OAuthStateTTL       time.Duration
}

// Load reads .env files (if present) and then the process environment.
func Load() *Config {
	loadDotEnvs(getEnv("APP_ENV", EnvDevelopment))

	return &Config{
		AppEnv: getEnv("APP_ENV", EnvDevelopment),

		StoreDriver: getEnv("STORE_DRIVER", StorePostgres),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPassword:  getEnv("DB_PASSWORD", ""),
		DBName:      getEnv("DB_NAME", "creator_dash"),
		DBSSLMode:   getEnv("DB_SSLMODE", "disable"),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       parseInt(getEnv("REDIS_DB", "0"), 0),

		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTExpiry: parseDuration(getEnv("JWT_EXPIRY", "720h"), 30*24*time.Hour),

		BcryptCost: parseInt(getEnv("BCRYPT_COST", "10"), 10),

		AdminEmails: getEnv("ADMIN_EMAILS", ""),

		Port:        getEnv("PORT", "5000"),
		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:5173,http://localhost:3000"),
		SentryDSN:   getEnv("SENTRY_DSN", ""),

		APIRateLimit:       parseInt(getEnv("API_RATE_LIMIT", "100"), 100),
		APIRateWindow:      parseDuration(getEnv("API_RATE_WINDOW", "15m"), 15*time.Minute),
		LoginRateLimit:     parseInt(getEnv("LOGIN_RATE_LIMIT", "5"), 5),
		LoginRateWindow:    parseDuration(getEnv("LOGIN_RATE_WINDOW", "15m"), 15*time.Minute),
		RegisterRateLimit:  parseInt(getEnv("REGISTER_RATE_LIMIT", "3"), 3),
		RegisterRateWindow: parseDuration(getEnv("REGISTER_RATE_WINDOW", "1h"), time.Hour),

		RedditMode:          getEnv("REDDIT_MODE", RedditLive),
		RedditClientID:      getEnv("REDDIT_CLIENT_ID", ""),
		RedditClientSecret:  getEnv("REDDIT_CLIENT_SECRET", ""),
		RedditRedirectURI:   getEnv("REDDIT_REDIRECT_URI", ""),
		RedditUserAgent:     getEnv("REDDIT_USER_AGENT", "CreatorDash/1.0 (by /u/creatordash)"),
		RedditPublicURL:     getEnv("REDDIT_PUBLIC_URL", "https://www.reddit.com"),
		RedditOAuthURL:      getEnv("REDDIT_OAUTH_URL", "https://oauth.reddit.com"),
		RedditAuthorizeURL:  getEnv("REDDIT_AUTHORIZE_URL", "https://www.reddit.com/api/v1/authorize"),
		RedditTokenURL:      getEnv("REDDIT_TOKEN_URL", "https://www.reddit.com/api/v1/access_token"),
		RedditTimeout:       parseDuration(getEnv("REDDIT_TIMEOUT", "10s"), 10*time.Second),
		RedditRatePerMinute: parseInt(getEnv("REDDIT_RATE_PER_MINUTE", "60"), 60),
		RedditSubreddits:    getEnv("REDDIT_SUBREDDITS", "Entrepreneur+startups+smallbusiness+marketing+socialmedia"),
		RedditFeedLimit:     parseInt(getEnv("REDDIT_FEED_LIMIT", "10"), 10),
		OAuthStateTTL:       parseDuration(getEnv("OAUTH_STATE_TTL", "10m"), 10*time.Minute),
	}
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == EnvDevelopment
}

// AdminEmailList returns the configured admin emails, lower-cased.
func (c *Config) AdminEmailList() []string {
	if c.AdminEmails == "" {
		return nil
	}
	parts := strings.Split(c.AdminEmails, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.ToLower(strings.TrimSpace(p))
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// loadDotEnvs follows the dotenv convention: .env.<env>.local wins over
// .env.local, which wins over .env.<env>, which wins over .env. godotenv
// never overrides variables that are already set.
func loadDotEnvs(env string) {
	_ = godotenv.Load(".env." + env + ".local")
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env." + env)
	_ = godotenv.Load(".env")
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}
