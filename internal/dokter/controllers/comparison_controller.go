package controllers

import (
	"errors"
	"net/http"

	commonModels "github.com/c14220110/poliklinik-analytics/internal/common/models"
	"github.com/c14220110/poliklinik-analytics/internal/dokter/models"
	"github.com/c14220110/poliklinik-analytics/internal/dokter/services"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type ComparisonController struct {
	Service *services.ComparisonService
	Logger  *zap.Logger
}

func NewComparisonController(service *services.ComparisonService, logger *zap.Logger) *ComparisonController {
	return &ComparisonController{Service: service, Logger: logger}
}

// CompareDoctors handles POST /api/doctor-comparison.
func (cc *ComparisonController) CompareDoctors(c echo.Context) error {
	var req models.ComparisonRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, commonModels.NewResponse(http.StatusBadRequest, "invalid request payload", nil))
	}

	resp, err := cc.Service.Compare(c.Request().Context(), req)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, resp)
	case errors.Is(err, services.ErrDoctorNotFound):
		return c.JSON(http.StatusNotFound, commonModels.NewResponse(http.StatusNotFound, err.Error(), nil))
	case commonModels.IsValidationError(err):
		return c.JSON(http.StatusBadRequest, commonModels.NewResponse(http.StatusBadRequest, err.Error(), nil))
	default:
		cc.Logger.Error("doctor comparison failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, commonModels.NewResponse(http.StatusInternalServerError,
			"Erreur lors de la comparaison des médecins", nil))
	}
}
