package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/ahmetcoskunkizilkaya/creatordash/internal/config"
	"github.com/ahmetcoskunkizilkaya/creatordash/internal/database"
	"github.com/ahmetcoskunkizilkaya/creatordash/internal/feeds"
	"github.com/ahmetcoskunkizilkaya/creatordash/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/creatordash/internal/logging"
	"github.com/ahmetcoskunkizilkaya/creatordash/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/creatordash/internal/oauthstate"
	"github.com/ahmetcoskunkizilkaya/creatordash/internal/repository"
	"github.com/ahmetcoskunkizilkaya/creatordash/internal/routes"
	"github.com/ahmetcoskunkizilkaya/creatordash/internal/services"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	cfg := config.Load()

	// Structured logging (JSON to stdout)
	logging.Setup(cfg.IsDevelopment())

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if cfg.StoreDriver == config.StorePostgres && cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}

	ctx := context.Background()

	// Credential store
	var (
		users       repository.UserRepository
		db          *gorm.DB
		pgLog       *logging.PGHandler
		cleanupCron *cron.Cron
	)
	switch cfg.StoreDriver {
	case config.StoreMemory:
		slog.Warn("using in-memory store, data is lost on restart")
		users = repository.NewMemoryUserRepository()
	default:
		var err error
		db, err = database.Connect(cfg)
		if err != nil {
			slog.Error("database connection failed", "error", err)
			os.Exit(1)
		}
		if err := database.Migrate(db); err != nil {
			slog.Error("migration failed", "error", err)
			os.Exit(1)
		}
		users = repository.NewGormUserRepository(db)

		// PostgreSQL log handler (ERROR+ async batch)
		pgLog = logging.NewPGHandler(db)
		level := slog.LevelInfo
		if cfg.IsDevelopment() {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(logging.NewMultiHandler(logging.StdoutHandler(level), pgLog)))

		// Log cleanup (30-day retention)
		cleanupCron, err = logging.StartCleanup(db)
		if err != nil {
			slog.Error("log cleanup schedule failed", "error", err)
			os.Exit(1)
		}
	}

	// OAuth state store
	var states oauthstate.Store
	if cfg.RedisAddr != "" {
		client, err := oauthstate.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			slog.Error("redis connection failed", "addr", cfg.RedisAddr, "error", err)
			os.Exit(1)
		}
		defer client.Close()
		states = oauthstate.NewRedisStore(client)
	} else {
		states = oauthstate.NewMemoryStore()
	}

	// Platforms
	var reddit interface {
		feeds.Platform
		feeds.Lister
	}
	if cfg.RedditMode == config.RedditFixture {
		slog.Info("reddit running on fixtures")
		reddit = feeds.NewRedditFixture()
	} else {
		reddit = feeds.NewRedditClient(feeds.RedditConfig{
			PublicURL:     cfg.RedditPublicURL,
			OAuthURL:      cfg.RedditOAuthURL,
			UserAgent:     cfg.RedditUserAgent,
			Timeout:       cfg.RedditTimeout,
			RatePerMinute: cfg.RedditRatePerMinute,
			Subreddits:    cfg.RedditSubreddits,
			FeedLimit:     cfg.RedditFeedLimit,
		})
	}
	aggregator := feeds.NewAggregator(reddit, feeds.NewLinkedInFixture())

	// Services
	ledger := services.NewLedger(users, services.DefaultRewardPolicy())
	tokens := services.NewTokenIssuer(cfg.JWTSecret, cfg.JWTExpiry)
	authService := services.NewAuthService(users, ledger, tokens, cfg.BcryptCost)
	userService := services.NewUserService(users, ledger)
	redditOAuth := services.NewRedditOAuth(users, states, services.RedditOAuthConfig{
		ClientID:     cfg.RedditClientID,
		ClientSecret: cfg.RedditClientSecret,
		RedirectURI:  cfg.RedditRedirectURI,
		AuthorizeURL: cfg.RedditAuthorizeURL,
		TokenURL:     cfg.RedditTokenURL,
		UserAgent:    cfg.RedditUserAgent,
		Timeout:      cfg.RedditTimeout,
		StateTTL:     cfg.OAuthStateTTL,
	})
	socialService := services.NewSocialService(users, ledger, aggregator, redditOAuth, services.NewContentFilter())
	reportService := services.NewReportService(users)

	// Sentry error tracking
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		Immutable:    true,
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: handlers.NewErrorHandler(cfg),
	})

	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${locals:requestid}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		return c.Next()
	})

	routes.Setup(app, cfg, users, routes.Handlers{
		Auth:   handlers.NewAuthHandler(authService),
		User:   handlers.NewUserHandler(userService),
		Reddit: handlers.NewRedditHandler(reddit, ledger),
		Social: handlers.NewSocialHandler(socialService, redditOAuth, ledger),
		Report: handlers.NewReportHandler(reportService),
		Health: handlers.NewHealthHandler(users),
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.AppEnv, "store", cfg.StoreDriver, "reddit", cfg.RedditMode)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	if cleanupCron != nil {
		<-cleanupCron.Stop().Done()
	}
	if pgLog != nil {
		pgLog.Stop()
	}
	sentry.Flush(2 * time.Second)

	if db != nil {
		if err := database.Close(db); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}
