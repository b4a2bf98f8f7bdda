package services

import (
	"math"

	commonModels "github.com/c14220110/poliklinik-analytics/internal/common/models"
	"github.com/c14220110/poliklinik-analytics/internal/rentabilite/models"
)

// Defaults applied by the HTTP layer when a percentage is not supplied.
const (
	DefaultRemunerationPct = 40.0
	DefaultCostPct         = 25.0
	DefaultTargetMarginPct = 30.0
)

func checkPct(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return commonModels.NewValidationError(field, "must be a number")
	}
	if v < 0 || v > 100 {
		return commonModels.NewValidationError(field, "must be within [0,100], got %v", v)
	}
	return nil
}

// ValidateMarginParams checks the remuneration/cost pair.
func ValidateMarginParams(remunerationPct, costPct float64) error {
	if err := checkPct("remunerationMedecin", remunerationPct); err != nil {
		return err
	}
	if err := checkPct("coutCentre", costPct); err != nil {
		return err
	}
	if remunerationPct+costPct > 100 {
		return commonModels.NewValidationError("coutCentre",
			"remunerationMedecin + coutCentre must not exceed 100, got %v", remunerationPct+costPct)
	}
	return nil
}

// ValidateSuggestionParams adds the target margin and the three-way bound.
func ValidateSuggestionParams(remunerationPct, costPct, targetMarginPct float64, mode models.InversionMode) error {
	if err := ValidateMarginParams(remunerationPct, costPct); err != nil {
		return err
	}
	if err := checkPct("margeCible", targetMarginPct); err != nil {
		return err
	}
	if sum := remunerationPct + costPct + targetMarginPct; sum > 100 {
		return commonModels.NewValidationError("margeCible",
			"remunerationMedecin + coutCentre + margeCible must not exceed 100, got %v", sum)
	}
	switch mode {
	case models.InversionProportional, "":
		if remunerationPct+costPct == 100 {
			return commonModels.NewValidationError("coutCentre",
				"current margin is 0%%, a proportional price cannot be derived")
		}
	case models.InversionFixedCost:
		if targetMarginPct == 100 {
			return commonModels.NewValidationError("margeCible", "must be below 100 in fixed_cost mode")
		}
		if remunerationPct+costPct == 0 {
			return commonModels.NewValidationError("coutCentre", "fixed_cost mode needs a non-zero cost base")
		}
	default:
		return commonModels.NewValidationError("mode", "unknown inversion mode %q", mode)
	}
	return nil
}
