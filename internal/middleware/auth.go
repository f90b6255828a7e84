package middleware

import (
	"github.com/ahmetcoskunkizilkaya/creatordash/internal/authctx"
	"github.com/ahmetcoskunkizilkaya/creatordash/internal/config"
	"github.com/ahmetcoskunkizilkaya/creatordash/internal/dto"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
)

// UnauthorizedMessage is returned for every missing, malformed or expired
// bearer token.
const UnauthorizedMessage = "Not authorized to access this route"

func JWTProtected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		ContextKey: authctx.TokenKey,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail(UnauthorizedMessage))
		},
	})
}
