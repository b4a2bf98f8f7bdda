package controllers

import (
	"net/http"
	"strconv"

	commonModels "github.com/c14220110/poliklinik-analytics/internal/common/models"
	"github.com/c14220110/poliklinik-analytics/internal/simulation/models"
	"github.com/c14220110/poliklinik-analytics/internal/simulation/services"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type SimulationController struct {
	Service *services.SimulationService
	Logger  *zap.Logger
}

func NewSimulationController(service *services.SimulationService, logger *zap.Logger) *SimulationController {
	return &SimulationController{Service: service, Logger: logger}
}

func (sc *SimulationController) fail(c echo.Context, err error, message string) error {
	status := commonModels.StatusForError(err)
	if status >= http.StatusInternalServerError {
		sc.Logger.Error(message, zap.Error(err))
		return c.JSON(status, commonModels.NewResponse(status, message, nil))
	}
	return c.JSON(status, commonModels.NewResponse(status, err.Error(), nil))
}

// RunSimulation computes a simulation and stores it as the current one.
func (sc *SimulationController) RunSimulation(c echo.Context) error {
	var req models.RunRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, commonModels.NewResponse(http.StatusBadRequest, "invalid request payload", nil))
	}
	record, err := sc.Service.Run(c.Request().Context(), req)
	if err != nil {
		return sc.fail(c, err, "Erreur lors de la simulation")
	}
	return c.JSON(http.StatusCreated, commonModels.NewResponse(http.StatusCreated, "Simulation enregistrée", record))
}

// GetSimulation returns the stored simulation; data is null when none exists.
func (sc *SimulationController) GetSimulation(c echo.Context) error {
	record, err := sc.Service.Load(c.Request().Context())
	if err != nil {
		return sc.fail(c, err, "Erreur lors de la lecture de la simulation")
	}
	return c.JSON(http.StatusOK, commonModels.NewResponse(http.StatusOK, services.Info(record), record))
}

func (sc *SimulationController) ClearSimulation(c echo.Context) error {
	if err := sc.Service.Clear(c.Request().Context()); err != nil {
		return sc.fail(c, err, "Erreur lors de la suppression de la simulation")
	}
	return c.JSON(http.StatusOK, commonModels.NewResponse(http.StatusOK, "Simulation supprimée", nil))
}

// GetStats handles GET /api/simulation/stats?doctorId.
func (sc *SimulationController) GetStats(c echo.Context) error {
	stats, err := sc.Service.GlobalStats(c.Request().Context(), c.QueryParam("doctorId"))
	if err != nil {
		return sc.fail(c, err, "Erreur lors du calcul des statistiques")
	}
	return c.JSON(http.StatusOK, commonModels.NewResponse(http.StatusOK, "ok", stats))
}

// GetActes handles GET /api/simulation/actes. It accepts an acte name, or a
// below/above margin threshold applied after the doctorId filter.
func (sc *SimulationController) GetActes(c echo.Context) error {
	ctx := c.Request().Context()
	doctorFilter := c.QueryParam("doctorId")

	if name := c.QueryParam("acte"); name != "" {
		row, err := sc.Service.ProcedureByName(ctx, name)
		if err != nil {
			return sc.fail(c, err, "Erreur lors de la lecture des actes")
		}
		if row == nil {
			return c.JSON(http.StatusNotFound, commonModels.NewResponse(http.StatusNotFound, "Acte introuvable: "+name, nil))
		}
		return c.JSON(http.StatusOK, commonModels.NewResponse(http.StatusOK, "ok", row))
	}

	for _, bound := range []string{"below", "above"} {
		raw := c.QueryParam(bound)
		if raw == "" {
			continue
		}
		threshold, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return sc.fail(c, commonModels.NewValidationError(bound, "must be a number, got %q", raw), "")
		}
		selectRows := sc.Service.ProceduresAboveMargin
		if bound == "below" {
			selectRows = sc.Service.ProceduresBelowMargin
		}
		rows, err := selectRows(ctx, threshold, doctorFilter)
		if err != nil {
			return sc.fail(c, err, "Erreur lors de la lecture des actes")
		}
		return c.JSON(http.StatusOK, commonModels.NewResponse(http.StatusOK, "ok", rows))
	}

	rows, err := sc.Service.FilteredProcedures(ctx, doctorFilter)
	if err != nil {
		return sc.fail(c, err, "Erreur lors de la lecture des actes")
	}
	return c.JSON(http.StatusOK, commonModels.NewResponse(http.StatusOK, "ok", rows))
}
