package context

import (
	"context"

	"TaaraAgent/internal/entity"

	"github.com/gofiber/fiber/v2"
)

type contextKey string

const (
	RequestIDKey contextKey = "request_id"
	UserKey      contextKey = "user"

	// LocalsUser is the fiber locals key the token middleware stores the
	// caller under.
	LocalsUser = "user"
)

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

func GetRequestID(ctx context.Context) string {
	requestID, ok := ctx.Value(RequestIDKey).(string)
	if !ok || requestID == "" {
		return "unknown"
	}
	return requestID
}

func WithUser(ctx context.Context, user string) context.Context {
	return context.WithValue(ctx, UserKey, user)
}

// GetUser returns the audit name of the caller, anonymous when none was set.
func GetUser(ctx context.Context) string {
	user, ok := ctx.Value(UserKey).(string)
	if !ok || user == "" {
		return entity.AnonymousUser
	}
	return user
}

func FromFiberCtx(c *fiber.Ctx) context.Context {
	ctx := c.UserContext()

	requestID, ok := c.Locals("X-Request-ID").(string)
	if !ok || requestID == "" {
		requestID = c.Get("X-Request-ID")

		if requestID == "" {
			requestID = "unknown"
		}
	}
	ctx = WithRequestID(ctx, requestID)

	if user, ok := c.Locals(LocalsUser).(entity.UserLoginData); ok {
		ctx = WithUser(ctx, user.AuditName())
	}

	return ctx
}
