package middlewares

import (
	"net/http"
	"strings"

	"github.com/c14220110/poliklinik-analytics/internal/common/models"
	"github.com/labstack/echo/v4"
)

// RequireRole lets the request through when the token role is one of roles.
// It must run after JWTMiddleware.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := ClaimsFrom(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, models.NewResponse(http.StatusUnauthorized, "Missing or invalid JWT claims", nil))
			}
			for _, role := range roles {
				if strings.EqualFold(claims.Role, role) {
					return next(c)
				}
			}
			return c.JSON(http.StatusForbidden, models.NewResponse(http.StatusForbidden, "Accès refusé pour le rôle "+claims.Role, nil))
		}
	}
}
