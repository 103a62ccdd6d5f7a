package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"catalog-service/internal/model"
	"catalog-service/internal/store"
	"catalog-service/pkg/database"
	"catalog-service/pkg/jwtutil"
	"catalog-service/pkg/logger"
	"catalog-service/prometheus"
)

const userContextKey = "user"

// AuthMiddleware resolves the session token, taken from the token cookie
// or the Authorization header, to a live user. The token signature must
// verify, the user row must still hold this exact token (a newer login
// invalidates it), and the stored expiry must be in the future.
func AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logger.FromContext(c)

		token := ""
		if cookie, err := c.Cookie("token"); err == nil {
			token = cookie.Value
		}
		if token == "" {
			parts := strings.Split(c.Request().Header.Get("Authorization"), " ")
			if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
				token = parts[1]
			}
		}
		if token == "" {
			log.Warn("Missing session token")
			prometheus.RecordAuthError("token_missing")
			return c.JSON(http.StatusUnauthorized, echo.Map{
				"success": false,
				"message": "Token is not provided",
			})
		}

		if _, err := jwtutil.ValidateToken(token); err != nil {
			log.Warn("Session token failed validation", zap.Error(err))
			prometheus.RecordAuthError("token_invalid")
			return c.JSON(http.StatusUnauthorized, echo.Map{
				"success": false,
				"message": "Invalid token",
			})
		}

		users := store.NewUserStore(database.GetDB())
		user, err := users.FindLiveByToken(token)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				log.Warn("Session token does not match any live user")
				prometheus.RecordAuthError("token_unknown")
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"success": false,
					"message": "Invalid token",
				})
			}
			log.Error("Failed to resolve session token", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"success": false,
				"message": "Something went wrong. Please try again.",
			})
		}

		if user.TokenExpire == nil || time.Now().After(*user.TokenExpire) {
			log.Warn("Session token expired", zap.Uint("user_id", user.ID))
			prometheus.RecordAuthError("token_expired")
			return c.JSON(http.StatusUnauthorized, echo.Map{
				"success": false,
				"message": "Token expired",
			})
		}

		c.Set(userContextKey, user)
		return next(c)
	}
}

// CurrentUser retrieves the authenticated user stashed by AuthMiddleware.
func CurrentUser(c echo.Context) (*model.User, bool) {
	user, ok := c.Get(userContextKey).(*model.User)
	return user, ok
}
