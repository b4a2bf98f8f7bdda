package middlewares

import (
	"net/http"
	"strings"

	"github.com/c14220110/poliklinik-analytics/internal/common/models"
	"github.com/c14220110/poliklinik-analytics/pkg/utils"
	"github.com/labstack/echo/v4"
)

type contextKey string

// ContextKeyClaims is where JWTMiddleware stores the *utils.Claims.
const ContextKeyClaims contextKey = "claims"

// JWTMiddleware validates the Bearer token and stores its claims on the
// echo context. WebSocket handshakes may carry the token in the "token"
// query parameter since browsers cannot set headers on them.
func JWTMiddleware(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, msg := bearerToken(c)
			if token == "" {
				return c.JSON(http.StatusUnauthorized, models.NewResponse(http.StatusUnauthorized, msg, nil))
			}
			claims, err := utils.ValidateJWTToken(secret, token)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, models.NewResponse(http.StatusUnauthorized, "Invalid token: "+err.Error(), nil))
			}
			c.Set(string(ContextKeyClaims), claims)
			return next(c)
		}
	}
}

func bearerToken(c echo.Context) (string, string) {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		if c.IsWebSocket() {
			if token := c.QueryParam("token"); token != "" {
				return token, ""
			}
		}
		return "", "Authorization header missing"
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", "Invalid authorization header"
	}
	return parts[1], ""
}

// ClaimsFrom returns the claims stored by JWTMiddleware, if any.
func ClaimsFrom(c echo.Context) (*utils.Claims, bool) {
	claims, ok := c.Get(string(ContextKeyClaims)).(*utils.Claims)
	return claims, ok && claims != nil
}
