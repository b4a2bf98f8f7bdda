package routes

import (
	"github.com/c14220110/poliklinik-analytics/internal/dokter/controllers"
	"github.com/labstack/echo/v4"
)

func RegisterComparisonRoutes(api *echo.Group, cc *controllers.ComparisonController, mw ...echo.MiddlewareFunc) {
	api.POST("/doctor-comparison", cc.CompareDoctors, mw...)
}
