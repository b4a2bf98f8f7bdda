package routes

import (
	"github.com/c14220110/poliklinik-analytics/internal/simulation/controllers"
	"github.com/labstack/echo/v4"
)

// RegisterSimulationRoutes mounts the simulation slot endpoints. clearGuard
// protects the DELETE route.
func RegisterSimulationRoutes(api *echo.Group, sc *controllers.SimulationController, clearGuard []echo.MiddlewareFunc, mw ...echo.MiddlewareFunc) {
	simulation := api.Group("/simulation", mw...)
	simulation.POST("", sc.RunSimulation)
	simulation.GET("", sc.GetSimulation)
	simulation.DELETE("", sc.ClearSimulation, clearGuard...)
	simulation.GET("/stats", sc.GetStats)
	simulation.GET("/actes", sc.GetActes)
}
