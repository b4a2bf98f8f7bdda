package routes

import (
	"github.com/c14220110/poliklinik-analytics/internal/rentabilite/controllers"
	"github.com/labstack/echo/v4"
)

func RegisterRentabiliteRoutes(api *echo.Group, rc *controllers.RentabiliteController, mw ...echo.MiddlewareFunc) {
	simulateur := api.Group("/simulateur-rentabilite", mw...)
	simulateur.GET("", rc.GetRentabilite)
	simulateur.GET("/suggestion-tarifs", rc.GetSuggestionTarifs)
}
