package authctx

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, locals interface{}) string {
	t.Helper()
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		if locals != nil {
			c.Locals(TokenKey, locals)
		}
		id, err := GetUserID(c)
		if err != nil {
			return c.SendString("error")
		}
		return c.SendString(id.String())
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func TestGetUserID(t *testing.T) {
	id := uuid.New()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": id.String()})
	assert.Equal(t, id.String(), run(t, token))
}

func TestGetUserIDMissing(t *testing.T) {
	assert.Equal(t, "error", run(t, nil))
	assert.Equal(t, "error", run(t, jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{})))
	assert.Equal(t, "error", run(t, jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "not-a-uuid"})))
}
