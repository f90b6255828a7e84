package handlers

import (
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/creatordash/internal/authctx"
	"github.com/ahmetcoskunkizilkaya/creatordash/internal/config"
	"github.com/ahmetcoskunkizilkaya/creatordash/internal/dto"
	"github.com/ahmetcoskunkizilkaya/creatordash/internal/feeds"
	"github.com/ahmetcoskunkizilkaya/creatordash/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/creatordash/internal/services"
	"github.com/ahmetcoskunkizilkaya/creatordash/internal/validation"
	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// clientErrors maps sentinel errors to status and client-facing message.
var clientErrors = []struct {
	err     error
	status  int
	message string
}{
	{services.ErrUsernameTaken, fiber.StatusBadRequest, "Username already taken"},
	{services.ErrEmailTaken, fiber.StatusBadRequest, "Email already registered"},
	{services.ErrDuplicateUser, fiber.StatusBadRequest, "Username or email already registered"},
	{services.ErrInvalidReferral, fiber.StatusBadRequest, "Invalid referral code"},
	{services.ErrInvalidCredentials, fiber.StatusUnauthorized, "Invalid credentials"},
	{services.ErrUserNotFound, fiber.StatusNotFound, "User not found"},
	{services.ErrReportNotFound, fiber.StatusNotFound, "Report not found"},
	{services.ErrEmptyPostID, fiber.StatusBadRequest, "Post ID is required"},
	{services.ErrInvalidCredits, fiber.StatusBadRequest, "Credits must be a positive number"},
	{services.ErrContentRequired, fiber.StatusBadRequest, "Content is required"},
	{services.ErrRedditPostFields, fiber.StatusBadRequest, "Title and subreddit are required for Reddit posts"},
	{services.ErrOAuthNotConfigured, fiber.StatusInternalServerError, "Reddit API credentials not configured"},
	{services.ErrMissingCode, fiber.StatusBadRequest, "Invalid authorization code"},
	{services.ErrInvalidState, fiber.StatusBadRequest, "Invalid or expired authorization state"},
	{services.ErrTokenExchange, fiber.StatusInternalServerError, "Failed to complete Reddit authentication"},
	{services.ErrNoRefreshToken, fiber.StatusBadRequest, "No refresh token available"},
	{feeds.ErrInvalidSort, fiber.StatusBadRequest, "Invalid sort parameter"},
	{feeds.ErrUnknownPlatform, fiber.StatusBadRequest, "Invalid platform"},
	{feeds.ErrNotConnected, fiber.StatusBadRequest, "Reddit not connected"},
}

// upstreamErrors is checked after clientErrors; fallback covers ErrUpstream.
var upstreamErrors = []struct {
	err     error
	status  int
	message string
}{
	{feeds.ErrForbidden, fiber.StatusForbidden, "Access to Reddit API is restricted. Please try again later."},
	{feeds.ErrRateLimited, fiber.StatusTooManyRequests, "Too many requests to Reddit API. Please try again in a few minutes."},
	{feeds.ErrNotFound, fiber.StatusNotFound, "Reddit API endpoint not found."},
	{feeds.ErrInvalidResponse, fiber.StatusBadGateway, "Invalid response format from Reddit API"},
}

// respondError writes the envelope for a known error. Unknown errors are
// returned to the app ErrorHandler. fallback is the message used for
// generic upstream failures.
func respondError(c *fiber.Ctx, err error, fallback string) error {
	var verr *validation.Error
	if errors.As(err, &verr) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   "Validation error",
			Details: verr.Fields,
		})
	}

	var rejected *services.ContentRejectedError
	if errors.As(err, &rejected) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   services.RejectionMessage(rejected.Code),
			Details: fiber.Map{"reason": rejected.Code},
		})
	}

	var upstream *feeds.UpstreamError
	if errors.As(err, &upstream) {
		slog.Error("upstream request failed",
			"platform", upstream.Platform,
			"operation", upstream.Operation,
			"status", upstream.StatusCode,
			"request_id", authctx.RequestID(c),
			"error", err,
		)
		for _, m := range upstreamErrors {
			if errors.Is(err, m.err) {
				return c.Status(m.status).JSON(dto.Fail(m.message))
			}
		}
		return c.Status(fiber.StatusBadGateway).JSON(dto.Fail(fallback))
	}

	for _, m := range clientErrors {
		if errors.Is(err, m.err) {
			if m.status >= fiber.StatusInternalServerError {
				slog.Error("request failed", "path", c.Path(), "request_id", authctx.RequestID(c), "error", err)
			}
			return c.Status(m.status).JSON(dto.Fail(m.message))
		}
	}

	return err
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.Fail(message))
}

// currentUser returns the authenticated user id or writes a 401.
func currentUser(c *fiber.Ctx) (uuid.UUID, bool, error) {
	id, err := authctx.GetUserID(c)
	if err != nil {
		return uuid.Nil, false, c.Status(fiber.StatusUnauthorized).JSON(dto.Fail(middleware.UnauthorizedMessage))
	}
	return id, true, nil
}

// NewErrorHandler returns the app-wide Fiber ErrorHandler. Server errors
// are logged, reported to Sentry and, outside development, shown without
// details.
func NewErrorHandler(cfg *config.Config) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Server error"
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			message = fe.Message
		}

		if code < fiber.StatusInternalServerError {
			return c.Status(code).JSON(dto.Fail(message))
		}

		slog.Error("unhandled server error",
			"method", c.Method(),
			"path", c.Path(),
			"request_id", authctx.RequestID(c),
			"error", err.Error(),
		)
		if hub := sentryfiber.GetHubFromContext(c); hub != nil {
			hub.CaptureException(err)
		} else {
			sentry.CaptureException(err)
		}

		resp := dto.Fail("Server error")
		if cfg.IsDevelopment() {
			resp.Details = err.Error()
		}
		return c.Status(code).JSON(resp)
	}
}
