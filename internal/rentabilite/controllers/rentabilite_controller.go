package controllers

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	commonModels "github.com/c14220110/poliklinik-analytics/internal/common/models"
	"github.com/c14220110/poliklinik-analytics/internal/rentabilite/models"
	"github.com/c14220110/poliklinik-analytics/internal/rentabilite/services"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// RentabiliteController serves the profitability simulator.
type RentabiliteController struct {
	Provider services.ProcedureAggregateProvider
	Logger   *zap.Logger
}

func NewRentabiliteController(provider services.ProcedureAggregateProvider, logger *zap.Logger) *RentabiliteController {
	return &RentabiliteController{Provider: provider, Logger: logger}
}

// PctParam reads a percentage query parameter. A missing value takes def;
// a value that is not a number is rejected.
func PctParam(c echo.Context, name string, def float64) (float64, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, commonModels.NewValidationError(name, "must be a number, got %q", raw)
	}
	return v, nil
}

// DoctorIDParam reads the optional doctorId query parameter.
func DoctorIDParam(c echo.Context) (*int, error) {
	raw := strings.TrimSpace(c.QueryParam("doctorId"))
	if raw == "" || raw == "all" {
		return nil, nil
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return nil, commonModels.NewValidationError("doctorId", "must be an integer, got %q", raw)
	}
	return &id, nil
}

func (rc *RentabiliteController) query(c echo.Context) (services.ProcedureQuery, error) {
	start, end, err := commonModels.ParsePeriod(c.QueryParam("start"), c.QueryParam("end"))
	if err != nil {
		return services.ProcedureQuery{}, err
	}
	doctorID, err := DoctorIDParam(c)
	if err != nil {
		return services.ProcedureQuery{}, err
	}
	return services.ProcedureQuery{Start: start, End: end, DoctorID: doctorID}, nil
}

func (rc *RentabiliteController) fail(c echo.Context, err error, message string) error {
	status := commonModels.StatusForError(err)
	if status >= http.StatusInternalServerError {
		rc.Logger.Error(message, zap.Error(err))
	}
	return c.JSON(status, commonModels.NewResponse(status, message+": "+err.Error(), nil))
}

// GetRentabilite handles GET /api/simulateur-rentabilite.
func (rc *RentabiliteController) GetRentabilite(c echo.Context) error {
	q, err := rc.query(c)
	if err != nil {
		return rc.fail(c, err, "Paramètres invalides")
	}
	rem, err := PctParam(c, "remunerationMedecin", services.DefaultRemunerationPct)
	if err != nil {
		return rc.fail(c, err, "Paramètres invalides")
	}
	cost, err := PctParam(c, "coutCentre", services.DefaultCostPct)
	if err != nil {
		return rc.fail(c, err, "Paramètres invalides")
	}
	if err := services.ValidateMarginParams(rem, cost); err != nil {
		return rc.fail(c, err, "Paramètres invalides")
	}

	procedures, err := rc.Provider.FetchProcedures(c.Request().Context(), q)
	if err != nil {
		return rc.fail(c, err, "Erreur lors du calcul de la rentabilité")
	}
	batch, err := services.ComputeMargins(procedures, rem, cost)
	if err != nil {
		return rc.fail(c, err, "Paramètres invalides")
	}
	return c.JSON(http.StatusOK, models.RentabiliteResponse{
		Parametres: batch.Parameters.Wire(),
		Actes:      batch.Rows(),
	})
}

// GetSuggestionTarifs handles GET /api/simulateur-rentabilite/suggestion-tarifs.
func (rc *RentabiliteController) GetSuggestionTarifs(c echo.Context) error {
	q, err := rc.query(c)
	if err != nil {
		return rc.fail(c, err, "Paramètres invalides")
	}
	rem, err := PctParam(c, "remunerationMedecin", services.DefaultRemunerationPct)
	if err != nil {
		return rc.fail(c, err, "Paramètres invalides")
	}
	cost, err := PctParam(c, "coutCentre", services.DefaultCostPct)
	if err != nil {
		return rc.fail(c, err, "Paramètres invalides")
	}
	target, err := PctParam(c, "margeCible", services.DefaultTargetMarginPct)
	if err != nil {
		return rc.fail(c, err, "Paramètres invalides")
	}
	mode := models.InversionMode(c.QueryParam("mode"))
	if err := services.ValidateSuggestionParams(rem, cost, target, mode); err != nil {
		return rc.fail(c, err, "Paramètres invalides")
	}

	procedures, err := rc.Provider.FetchProcedures(c.Request().Context(), q)
	if err != nil {
		return rc.fail(c, err, "Erreur lors du calcul des suggestions")
	}
	suggestions, err := services.ComputeSuggestionsWithMode(procedures, rem, cost, target, mode)
	if err != nil {
		return rc.fail(c, err, "Paramètres invalides")
	}
	summary := services.SummarizeSuggestions(suggestions)
	params := models.SimulationParameters{RemunerationPct: rem, CostPct: cost, TargetMarginPct: &target}
	return c.JSON(http.StatusOK, models.SuggestionResponse{
		Parametres:  params.Wire(),
		Suggestions: suggestions,
		Summary:     &summary,
	})
}
