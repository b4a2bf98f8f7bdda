package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/c14220110/poliklinik-analytics/internal/common/middlewares"
	dokterControllers "github.com/c14220110/poliklinik-analytics/internal/dokter/controllers"
	dokterRoutes "github.com/c14220110/poliklinik-analytics/internal/dokter/routes"
	dokterServices "github.com/c14220110/poliklinik-analytics/internal/dokter/services"
	rentControllers "github.com/c14220110/poliklinik-analytics/internal/rentabilite/controllers"
	rentRoutes "github.com/c14220110/poliklinik-analytics/internal/rentabilite/routes"
	rentServices "github.com/c14220110/poliklinik-analytics/internal/rentabilite/services"
	simControllers "github.com/c14220110/poliklinik-analytics/internal/simulation/controllers"
	simRoutes "github.com/c14220110/poliklinik-analytics/internal/simulation/routes"
	simServices "github.com/c14220110/poliklinik-analytics/internal/simulation/services"
	"github.com/c14220110/poliklinik-analytics/internal/simulation/store"
	"github.com/c14220110/poliklinik-analytics/ws"
)

// ClearRoles may delete the stored simulation when JWT auth is enabled.
var ClearRoles = []string{"admin", "manager"}

// Dependencies are the backends selected at startup.
type Dependencies struct {
	Procedures rentServices.ProcedureAggregateProvider
	Doctors    dokterServices.DoctorAggregateProvider
	Store      store.Store
	Hub        *ws.Hub
	JWTSecret  string
	Logger     *zap.Logger
}

// Init wires services and controllers and registers every route on e.
func Init(e *echo.Echo, deps Dependencies) {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var notifier simServices.Notifier
	if deps.Hub != nil {
		notifier = deps.Hub
	}

	comparisonService := dokterServices.NewComparisonService(deps.Doctors, logger)
	simulationService := simServices.NewSimulationService(deps.Store, deps.Procedures, notifier, logger)

	rentabiliteController := rentControllers.NewRentabiliteController(deps.Procedures, logger)
	comparisonController := dokterControllers.NewComparisonController(comparisonService, logger)
	simulationController := simControllers.NewSimulationController(simulationService, logger)

	var auth, clearGuard []echo.MiddlewareFunc
	if deps.JWTSecret != "" {
		auth = append(auth, middlewares.JWTMiddleware(deps.JWTSecret))
		clearGuard = append(clearGuard, middlewares.RequireRole(ClearRoles...))
	} else {
		logger.Warn("JWT_SECRET not set, API routes are not authenticated")
	}

	api := e.Group("/api")
	rentRoutes.RegisterRentabiliteRoutes(api, rentabiliteController, auth...)
	dokterRoutes.RegisterComparisonRoutes(api, comparisonController, auth...)
	simRoutes.RegisterSimulationRoutes(api, simulationController, clearGuard, auth...)

	if deps.Hub != nil {
		e.GET("/ws", ws.ServeWS(deps.Hub), auth...)
	}
}
