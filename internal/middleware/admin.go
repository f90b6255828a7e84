package middleware

import (
	"log/slog"
	"strings"

	"github.com/ahmetcoskunkizilkaya/creatordash/internal/authctx"
	"github.com/ahmetcoskunkizilkaya/creatordash/internal/config"
	"github.com/ahmetcoskunkizilkaya/creatordash/internal/dto"
	"github.com/ahmetcoskunkizilkaya/creatordash/internal/repository"
	"github.com/gofiber/fiber/v2"
)

// AdminRequired must run after JWTProtected. A caller is an admin when the
// stored role is admin or the account email is listed in ADMIN_EMAILS.
func AdminRequired(users repository.UserRepository, cfg *config.Config) fiber.Handler {
	adminEmails := cfg.AdminEmailList()

	return func(c *fiber.Ctx) error {
		userID, err := authctx.GetUserID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail(UnauthorizedMessage))
		}

		user, err := users.FindByID(c.UserContext(), userID)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail(UnauthorizedMessage))
		}

		if user.IsAdmin() || contains(adminEmails, strings.ToLower(user.Email)) {
			return c.Next()
		}

		slog.Warn("admin access denied", "user_id", userID.String(), "path", c.Path())
		return c.Status(fiber.StatusForbidden).JSON(dto.Fail("Admin access required"))
	}
}

func contains(list []string, val string) bool {
	for _, item := range list {
		if item == val {
			return true
		}
	}
	return false
}
