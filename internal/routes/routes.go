package routes

import (
	"github.com/ahmetcoskunkizilkaya/creatordash/internal/config"
	"github.com/ahmetcoskunkizilkaya/creatordash/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/creatordash/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/creatordash/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/creatordash/internal/repository"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
)

type Handlers struct {
	Auth   *handlers.AuthHandler
	User   *handlers.UserHandler
	Reddit *handlers.RedditHandler
	Social *handlers.SocialHandler
	Report *handlers.ReportHandler
	Health *handlers.HealthHandler
}

func Setup(app *fiber.App, cfg *config.Config, users repository.UserRepository, h Handlers) {
	api := app.Group("/api")
	api.Use(metrics.Middleware())

	// Health and metrics sit outside the general limiter
	api.Get("/health", h.Health.Check)
	api.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	api.Use(middleware.RateLimit(cfg.APIRateLimit, cfg.APIRateWindow,
		"Too many requests from this IP, please try again later."))

	protected := middleware.JWTProtected(cfg)
	adminOnly := middleware.AdminRequired(users, cfg)

	// Auth: stricter per-route limits
	auth := api.Group("/auth")
	auth.Post("/register",
		middleware.RateLimit(cfg.RegisterRateLimit, cfg.RegisterRateWindow,
			"Too many accounts created from this IP, please try again later."),
		h.Auth.Register)
	auth.Post("/login",
		middleware.RateLimit(cfg.LoginRateLimit, cfg.LoginRateWindow,
			"Too many login attempts, please try again later."),
		h.Auth.Login)
	auth.Get("/me", protected, h.Auth.Me)

	userRoutes := api.Group("/users", protected)
	userRoutes.Get("/profile", h.User.Profile)
	userRoutes.Put("/profile", h.User.UpdateProfile)
	userRoutes.Get("/credits", h.User.Credits)
	userRoutes.Get("/all", adminOnly, h.User.List)
	userRoutes.Put("/credits/:userId", adminOnly, h.User.SetCredits)

	reddit := api.Group("/reddit")
	reddit.Get("/posts", h.Reddit.Posts)
	reddit.Post("/share/:postId", protected, h.Reddit.Share)
	reddit.Post("/view/:postId", protected, h.Reddit.View)

	social := api.Group("/social", protected)
	social.Get("/reddit/auth", h.Social.RedditAuth)
	social.Get("/reddit/callback", h.Social.RedditCallback)
	social.Post("/reddit/refresh", h.Social.RedditRefresh)
	social.Delete("/reddit", h.Social.RedditDisconnect)
	social.Get("/feed", h.Social.Feed)
	social.Post("/share/:platform", h.Social.Share)
	social.Post("/save/:postId", h.Social.Save)
	social.Delete("/save/:postId", h.Social.Unsave)
	social.Get("/saved", h.Social.Saved)
	social.Post("/report/:postId", h.Report.CreateReport)

	admin := api.Group("/admin", protected, adminOnly)
	admin.Get("/reports", h.Report.ListReports)
	admin.Put("/reports/:id", h.Report.ActionReport)
}
