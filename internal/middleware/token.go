package middleware

import (
	"errors"
	"strings"

	"TaaraAgent/internal/entity"
	contextPkg "TaaraAgent/pkg/context"
	jwtPkg "TaaraAgent/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

const (
	AccessTokenSecret = "JWT_ACCESS_TOKEN_SECRET"
)

var errInvalidClaims = errors.New("token claims are missing required fields")

func (m *middleware) NewTokenMiddleware(ctx *fiber.Ctx) error {
	if ctx.Get("Authorization") == "" {
		m.log.WithFields(logrus.Fields{
			"path":  ctx.Path(),
			"error": "Authorization header is missing",
		}).Warn("Authorization header check")
		return unauthorized(ctx)
	}

	return m.authenticate(ctx)
}

// NewOptionalTokenMiddleware lets anonymous callers through but still rejects
// a token that is present and invalid.
func (m *middleware) NewOptionalTokenMiddleware(ctx *fiber.Ctx) error {
	if ctx.Get("Authorization") == "" {
		return ctx.Next()
	}

	return m.authenticate(ctx)
}

func (m *middleware) authenticate(ctx *fiber.Ctx) error {
	authHeader := ctx.Get("Authorization")

	if !strings.HasPrefix(authHeader, "Bearer ") {
		m.log.WithFields(logrus.Fields{
			"error": "Authorization header format is invalid",
		}).Warn("Authorization header check")
		return unauthorized(ctx)
	}

	userToken, err := jwtPkg.VerifyTokenHeader(ctx, AccessTokenSecret)
	if err != nil {
		m.log.WithFields(logrus.Fields{
			"error": err.Error(),
		}).Warn("Token verification failed")
		return unauthorized(ctx)
	}

	user, err := userFromClaims(userToken)
	if err != nil {
		m.log.WithFields(logrus.Fields{
			"error": err.Error(),
		}).Warn("Token claims check")
		return unauthorized(ctx)
	}

	ctx.Locals(contextPkg.LocalsUser, user)

	m.log.WithFields(logrus.Fields{
		"user_id": user.ID,
	}).Debug("Authentication successful")
	return ctx.Next()
}

func userFromClaims(token *jwt.Token) (entity.UserLoginData, error) {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return entity.UserLoginData{}, errInvalidClaims
	}

	id, _ := claims["id"].(string)
	if id == "" {
		return entity.UserLoginData{}, errInvalidClaims
	}
	username, _ := claims["username"].(string)
	email, _ := claims["email"].(string)

	return entity.UserLoginData{
		ID:       id,
		Username: username,
		Email:    email,
	}, nil
}

func unauthorized(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": "Unauthorized, access token invalid or expired",
	})
}
