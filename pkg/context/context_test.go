package context

import (
	"context"
	"net/http/httptest"
	"testing"

	"TaaraAgent/internal/entity"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "unknown", GetRequestID(ctx))
	assert.Equal(t, entity.AnonymousUser, GetUser(ctx))
}

func TestFromFiberCtx(t *testing.T) {
	app := fiber.New()

	var requestID, user string
	app.Get("/", func(c *fiber.Ctx) error {
		c.Locals("X-Request-ID", "01HXYZ")
		c.Locals(LocalsUser, entity.UserLoginData{ID: "u-1", Username: "nadia"})
		ctx := FromFiberCtx(c)
		requestID = GetRequestID(ctx)
		user = GetUser(ctx)
		return nil
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "01HXYZ", requestID)
	assert.Equal(t, "nadia", user)
}
