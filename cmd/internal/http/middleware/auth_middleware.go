package middleware

import (
	"net/http"

	"bookshelf/cmd/internal/auth"
	"bookshelf/cmd/internal/domain/entity"
	"bookshelf/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type UserRepository interface {
	FindActiveByID(id int64) (*entity.User, error)
}

type AuthMiddlewareConfig struct {
	Tokens   *auth.AccessTokens
	UserRepo UserRepository
}

// NewAuthMiddleware creates the handler with dependencies injected.
// The bearer token is validated locally against the signing secret, then
// the asserted user is loaded and must be active and verified.
func NewAuthMiddleware(cfg *AuthMiddlewareConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			userID, err := cfg.Tokens.Validate(header)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, apierror.InvalidAuthTokenError)
			}

			user, err := cfg.UserRepo.FindActiveByID(userID)
			if err != nil {
				return c.JSON(http.StatusInternalServerError, apierror.InternalServerError)
			}

			if user == nil {
				// User deleted in DB but still has a valid token???
				return c.JSON(apierror.InvalidAuthTokenError.Code(), apierror.InvalidAuthTokenError)
			}

			if !user.IsVerified {
				return c.JSON(http.StatusForbidden, apierror.NewForbiddenError("Missing access"))
			}

			c.Set("user", user)
			return next(c)
		}
	}
}
